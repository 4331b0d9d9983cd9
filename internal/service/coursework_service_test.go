package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type invalidationCounter struct{ calls int }

func (c *invalidationCounter) Invalidate(context.Context) { c.calls++ }

func TestCourseworkServiceSubmissionLifecycle(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	reports := &invalidationCounter{}
	svc := NewCourseworkService(s.store, nil, reports)

	assignment, err := svc.CreateAssignment(ctx, models.Assignment{Title: "HW", SubjectAssignmentID: s.sa.ID, MaxMarks: ptr(100)})
	require.NoError(t, err)

	sub, err := svc.Submit(ctx, principalFor(s.students[0]), models.Submission{AssignmentID: assignment.ID, SubmissionURL: ptr("https://example.com/hw")})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionSubmitted, sub.Status)

	marked, err := svc.UpdateSubmission(ctx, sub.ID, models.SubmissionPatch{Marks: ptr(88)})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionMarked, marked.Status)
	assert.Equal(t, 88, *marked.Marks)

	_, err = svc.UpdateSubmission(ctx, sub.ID, models.SubmissionPatch{Marks: ptr(101)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	byStudent, err := svc.ListSubmissions(ctx, SubmissionFilter{StudentID: &s.profiles[0].ID})
	require.NoError(t, err)
	assert.Len(t, byStudent, 1)

	require.NoError(t, svc.DeleteSubmission(ctx, sub.ID))
	assert.ErrorIs(t, svc.DeleteSubmission(ctx, sub.ID), appErrors.ErrNotFound)

	assert.Equal(t, 4, reports.calls)
}

func TestCourseworkServiceSubmitValidation(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	svc := NewCourseworkService(s.store, nil, nil)

	staff := principalFor(s.teacher)
	_, err := svc.Submit(ctx, staff, models.Submission{AssignmentID: 404, StudentID: s.profiles[0].ID})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	assignment, err := svc.CreateAssignment(ctx, models.Assignment{Title: "HW", SubjectAssignmentID: s.sa.ID, MaxMarks: ptr(10)})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, staff, models.Submission{AssignmentID: assignment.ID, StudentID: s.profiles[0].ID, Marks: ptr(11)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Submit(ctx, staff, models.Submission{AssignmentID: assignment.ID, StudentID: s.profiles[0].ID, Status: "lost"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCourseworkServiceSubmitAsStudent(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	svc := NewCourseworkService(s.store, nil, nil)
	ann := principalFor(s.students[0])

	assignment, err := svc.CreateAssignment(ctx, models.Assignment{Title: "HW", SubjectAssignmentID: s.sa.ID})
	require.NoError(t, err)

	sub, err := svc.Submit(ctx, ann, models.Submission{AssignmentID: assignment.ID, StudentID: s.profiles[1].ID})
	require.NoError(t, err)
	assert.Equal(t, s.profiles[0].ID, sub.StudentID)

	cases := map[string]models.Submission{
		"marks":    {AssignmentID: assignment.ID, Marks: ptr(100)},
		"feedback": {AssignmentID: assignment.ID, Feedback: ptr("great")},
		"status":   {AssignmentID: assignment.ID, Status: models.SubmissionMarked},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Submit(ctx, ann, payload)
			assert.ErrorIs(t, err, appErrors.ErrForbidden)
		})
	}

	draft, err := svc.Submit(ctx, ann, models.Submission{AssignmentID: assignment.ID, Status: models.SubmissionDraft})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionDraft, draft.Status)

	_, err = svc.Submit(ctx, principalFor(s.admin), models.Submission{AssignmentID: assignment.ID, StudentID: s.profiles[1].ID, Marks: ptr(5)})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, nil, models.Submission{AssignmentID: assignment.ID})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestCourseworkServiceListsNeedAFilter(t *testing.T) {
	s := newSchool(t)
	svc := NewCourseworkService(s.store, nil, nil)

	_, err := svc.ListAssignments(context.Background(), nil)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.ListSubmissions(context.Background(), SubmissionFilter{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	items, err := svc.ListAssignments(context.Background(), &s.sa.ID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
