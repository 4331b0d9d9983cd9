package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type subjectAssignmentStore interface {
	repository.SubjectAssignmentStore
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	GetTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// SubjectAssignmentFilter selects assignments by exactly one key, checked in
// the order teacher, class, subject.
type SubjectAssignmentFilter struct {
	TeacherID *int64
	ClassID   *int64
	SubjectID *int64
}

// SubjectAssignmentService manages who teaches what to whom.
type SubjectAssignmentService struct {
	store     subjectAssignmentStore
	validator *validator.Validate
}

// NewSubjectAssignmentService constructs a SubjectAssignmentService.
func NewSubjectAssignmentService(store subjectAssignmentStore, validate *validator.Validate) *SubjectAssignmentService {
	return &SubjectAssignmentService{store: store, validator: newValidator(validate)}
}

// List returns assignments matching filter with subject, teacher and class.
func (s *SubjectAssignmentService) List(ctx context.Context, filter SubjectAssignmentFilter) ([]dto.SubjectAssignmentView, error) {
	var (
		items []models.SubjectAssignment
		err   error
	)
	switch {
	case filter.TeacherID != nil:
		items, err = s.store.ListSubjectAssignmentsByTeacher(ctx, *filter.TeacherID)
	case filter.ClassID != nil:
		items, err = s.store.ListSubjectAssignmentsByClass(ctx, *filter.ClassID)
	case filter.SubjectID != nil:
		items, err = s.store.ListSubjectAssignmentsBySubject(ctx, *filter.SubjectID)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId, classId or subjectId is required")
	}
	if err != nil {
		return nil, storageError(err, "failed to list subject assignments")
	}

	users := newUserSummaries(s.store)
	out := make([]dto.SubjectAssignmentView, 0, len(items))
	for _, sa := range items {
		view, err := s.view(ctx, sa, users)
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

// Get returns one assignment with its relations resolved.
func (s *SubjectAssignmentService) Get(ctx context.Context, id int64) (*dto.SubjectAssignmentView, error) {
	sa, err := s.store.GetSubjectAssignment(ctx, id)
	if sa, err = found(sa, err, "subject assignment"); err != nil {
		return nil, err
	}
	return s.view(ctx, *sa, newUserSummaries(s.store))
}

func (s *SubjectAssignmentService) Create(ctx context.Context, sa models.SubjectAssignment) (*models.SubjectAssignment, error) {
	if err := s.validator.Struct(sa); err != nil {
		return nil, validationError(err, "invalid subject assignment payload")
	}
	created, err := s.store.CreateSubjectAssignment(ctx, sa)
	if err != nil {
		return nil, storageError(err, "failed to create subject assignment")
	}
	return created, nil
}

func (s *SubjectAssignmentService) Update(ctx context.Context, id int64, patch models.SubjectAssignmentPatch) (*models.SubjectAssignment, error) {
	sa, err := s.store.UpdateSubjectAssignment(ctx, id, patch)
	return found(sa, err, "subject assignment")
}

func (s *SubjectAssignmentService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteSubjectAssignment(ctx, id)
	return removed(ok, err, "subject assignment")
}

func (s *SubjectAssignmentService) view(ctx context.Context, sa models.SubjectAssignment, users *userSummaries) (*dto.SubjectAssignmentView, error) {
	subject, err := s.store.GetSubject(ctx, sa.SubjectID)
	if err != nil {
		return nil, storageError(err, "failed to load subject")
	}
	class, err := s.store.GetClass(ctx, sa.ClassID)
	if err != nil {
		return nil, storageError(err, "failed to load class")
	}
	teacher, err := s.store.GetTeacher(ctx, sa.TeacherID)
	if err != nil {
		return nil, storageError(err, "failed to load teacher")
	}

	view := &dto.SubjectAssignmentView{SubjectAssignment: sa, Subject: subject, Class: class}
	if teacher != nil {
		user, err := users.get(ctx, teacher.UserID)
		if err != nil {
			return nil, err
		}
		view.Teacher = &dto.TeacherView{Teacher: *teacher, User: user}
	}
	return view, nil
}
