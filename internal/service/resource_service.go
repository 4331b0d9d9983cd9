package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type resourceStore interface {
	repository.ResourceStore
	repository.StudentDocumentStore
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
}

// ResourceFilter selects resources by uploader or subject.
type ResourceFilter struct {
	UserID    *int64
	SubjectID *int64
}

// ResourceService manages shared resources and student documents.
type ResourceService struct {
	store     resourceStore
	validator *validator.Validate
}

// NewResourceService constructs a ResourceService.
func NewResourceService(store resourceStore, validate *validator.Validate) *ResourceService {
	return &ResourceService{store: store, validator: newValidator(validate)}
}

func (s *ResourceService) ListResources(ctx context.Context, filter ResourceFilter) ([]models.Resource, error) {
	var (
		items []models.Resource
		err   error
	)
	switch {
	case filter.UserID != nil:
		items, err = s.store.ListResourcesByUser(ctx, *filter.UserID)
	case filter.SubjectID != nil:
		items, err = s.store.ListResourcesBySubject(ctx, *filter.SubjectID)
	default:
		items, err = s.store.ListResources(ctx)
	}
	return listed(items, err, "resources")
}

func (s *ResourceService) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	r, err := s.store.GetResource(ctx, id)
	return found(r, err, "resource")
}

// CreateResource stores a resource uploaded by the principal.
func (s *ResourceService) CreateResource(ctx context.Context, principal *models.Principal, r models.Resource) (*models.Resource, error) {
	r.UploadedBy = principal.User.ID
	if err := s.validator.Struct(r); err != nil {
		return nil, validationError(err, "invalid resource payload")
	}
	created, err := s.store.CreateResource(ctx, r)
	if err != nil {
		return nil, storageError(err, "failed to create resource")
	}
	return created, nil
}

func (s *ResourceService) UpdateResource(ctx context.Context, principal *models.Principal, id int64, patch models.ResourcePatch) (*models.Resource, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid resource payload")
	}
	r, err := s.store.GetResource(ctx, id)
	if r, err = found(r, err, "resource"); err != nil {
		return nil, err
	}
	if err := ownOrAdmin(principal, r.UploadedBy); err != nil {
		return nil, err
	}
	r, err = s.store.UpdateResource(ctx, id, patch)
	return found(r, err, "resource")
}

func (s *ResourceService) DeleteResource(ctx context.Context, principal *models.Principal, id int64) error {
	r, err := s.store.GetResource(ctx, id)
	if r, err = found(r, err, "resource"); err != nil {
		return err
	}
	if err := ownOrAdmin(principal, r.UploadedBy); err != nil {
		return err
	}
	ok, err := s.store.DeleteResource(ctx, id)
	return removed(ok, err, "resource")
}

// ListDocuments returns the documents attached to a student. Students only
// see their own.
func (s *ResourceService) ListDocuments(ctx context.Context, principal *models.Principal, studentID *int64) ([]models.StudentDocument, error) {
	if studentID == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId is required")
	}
	if err := s.checkStudentAccess(ctx, principal, *studentID); err != nil {
		return nil, err
	}
	items, err := s.store.ListStudentDocumentsByStudent(ctx, *studentID)
	return listed(items, err, "student documents")
}

// AttachDocument stores a document reference on a student profile.
func (s *ResourceService) AttachDocument(ctx context.Context, principal *models.Principal, doc models.StudentDocument) (*models.StudentDocument, error) {
	if err := s.validator.Struct(doc); err != nil {
		return nil, validationError(err, "invalid student document payload")
	}
	if err := s.checkStudentAccess(ctx, principal, doc.StudentID); err != nil {
		return nil, err
	}
	created, err := s.store.CreateStudentDocument(ctx, doc)
	if err != nil {
		return nil, storageError(err, "failed to create student document")
	}
	return created, nil
}

func (s *ResourceService) DeleteDocument(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteStudentDocument(ctx, id)
	return removed(ok, err, "student document")
}

func (s *ResourceService) checkStudentAccess(ctx context.Context, principal *models.Principal, studentID int64) error {
	if principal == nil {
		return appErrors.ErrUnauthorized
	}
	if !principal.HasRole(models.RoleStudent) {
		return nil
	}
	student, err := s.store.GetStudent(ctx, studentID)
	if student, err = found(student, err, "student"); err != nil {
		return err
	}
	if student.UserID != principal.User.ID {
		return appErrors.Clone(appErrors.ErrForbidden, "students can only access their own documents")
	}
	return nil
}
