package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

func TestCommunicationServiceMessages(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	svc := NewCommunicationService(s.store, nil)
	teacher := principalFor(s.teacher)
	ann := principalFor(s.students[0])
	bob := principalFor(s.students[1])

	// the sender is always the caller, whatever the payload says
	msg, err := svc.Send(ctx, teacher, models.Message{SenderID: s.admin.ID, ReceiverID: s.students[0].ID, Message: "see me", Read: true})
	require.NoError(t, err)
	assert.Equal(t, s.teacher.ID, msg.SenderID)
	assert.False(t, msg.Read)

	inbox, err := svc.ListMessages(ctx, ann, MessageFilter{})
	require.NoError(t, err)
	require.Len(t, inbox, 1)

	_, err = svc.ListMessages(ctx, bob, MessageFilter{ReceiverID: &s.students[0].ID})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	all, err := svc.ListMessages(ctx, principalFor(s.admin), MessageFilter{ReceiverID: &s.students[0].ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.MarkRead(ctx, teacher, msg.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	read, err := svc.MarkRead(ctx, ann, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	assert.ErrorIs(t, svc.DeleteMessage(ctx, ann, msg.ID), appErrors.ErrForbidden)
	require.NoError(t, svc.DeleteMessage(ctx, teacher, msg.ID))
	assert.ErrorIs(t, svc.DeleteMessage(ctx, teacher, msg.ID), appErrors.ErrNotFound)
}

func TestCommunicationServiceAnnouncements(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	svc := NewCommunicationService(s.store, nil)
	teacher := principalFor(s.teacher)

	general, err := svc.Announce(ctx, teacher, models.Announcement{Title: "Trip", Content: "Friday"})
	require.NoError(t, err)
	require.NotNil(t, general.TargetRole)
	assert.Equal(t, models.AudienceAll, *general.TargetRole)
	assert.Equal(t, s.teacher.ID, general.UserID)

	_, err = svc.Announce(ctx, principalFor(s.admin), models.Announcement{Title: "Staff", Content: "Meeting", TargetRole: ptr("teacher")})
	require.NoError(t, err)

	forStudents, err := svc.ListAnnouncements(ctx, AnnouncementFilter{Role: ptr("student")})
	require.NoError(t, err)
	require.Len(t, forStudents, 1)
	assert.Equal(t, general.ID, forStudents[0].ID)

	everything, err := svc.ListAnnouncements(ctx, AnnouncementFilter{})
	require.NoError(t, err)
	assert.Len(t, everything, 2)

	_, err = svc.UpdateAnnouncement(ctx, principalFor(s.students[0]), general.ID, models.AnnouncementPatch{Title: ptr("Hacked")})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	updated, err := svc.UpdateAnnouncement(ctx, principalFor(s.admin), general.ID, models.AnnouncementPatch{Title: ptr("School trip")})
	require.NoError(t, err)
	assert.Equal(t, "School trip", updated.Title)

	require.NoError(t, svc.DeleteAnnouncement(ctx, teacher, general.ID))
}
