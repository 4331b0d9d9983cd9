package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

func TestResourceServiceOwnership(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	svc := NewResourceService(s.store, nil)

	res, err := svc.CreateResource(ctx, principalFor(s.teacher), models.Resource{Name: "Notes", URL: "https://example.com/notes.pdf", UploadedBy: s.admin.ID})
	require.NoError(t, err)
	assert.Equal(t, s.teacher.ID, res.UploadedBy)

	_, err = svc.UpdateResource(ctx, principalFor(s.students[0]), res.ID, models.ResourcePatch{Name: ptr("Mine")})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	listed, err := svc.ListResources(ctx, ResourceFilter{UserID: &s.teacher.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, svc.DeleteResource(ctx, principalFor(s.admin), res.ID))
}

func TestResourceServiceStudentDocuments(t *testing.T) {
	s := newSchool(t)
	ctx := context.Background()
	svc := NewResourceService(s.store, nil)
	ann := principalFor(s.students[0])

	doc, err := svc.AttachDocument(ctx, ann, models.StudentDocument{StudentID: s.profiles[0].ID, Name: "ID card", Type: "id", URL: "https://example.com/id.png"})
	require.NoError(t, err)

	_, err = svc.AttachDocument(ctx, ann, models.StudentDocument{StudentID: s.profiles[1].ID, Name: "Forged", Type: "id", URL: "https://example.com/x.png"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.ListDocuments(ctx, principalFor(s.students[1]), &s.profiles[0].ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	docs, err := svc.ListDocuments(ctx, principalFor(s.teacher), &s.profiles[0].ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)

	_, err = svc.ListDocuments(ctx, ann, nil)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.DeleteDocument(ctx, doc.ID))
}
