package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
)

type teacherStore interface {
	repository.TeacherStore
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// TeacherService manages teacher profiles.
type TeacherService struct {
	store     teacherStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(store teacherStore, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: store, validator: newValidator(validate), logger: logger}
}

// List returns all teachers with their users.
func (s *TeacherService) List(ctx context.Context) ([]dto.TeacherView, error) {
	teachers, err := s.store.ListTeachers(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list teachers")
	}
	users := newUserSummaries(s.store)
	out := make([]dto.TeacherView, 0, len(teachers))
	for _, t := range teachers {
		user, err := users.get(ctx, t.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.TeacherView{Teacher: t, User: user})
	}
	return out, nil
}

// Get returns one teacher with its user.
func (s *TeacherService) Get(ctx context.Context, id int64) (*dto.TeacherView, error) {
	teacher, err := s.store.GetTeacher(ctx, id)
	if teacher, err = found(teacher, err, "teacher"); err != nil {
		return nil, err
	}
	user, err := newUserSummaries(s.store).get(ctx, teacher.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.TeacherView{Teacher: *teacher, User: user}, nil
}

// Create adds a teacher profile.
func (s *TeacherService) Create(ctx context.Context, teacher models.Teacher) (*models.Teacher, error) {
	if err := s.validator.Struct(teacher); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	created, err := s.store.CreateTeacher(ctx, teacher)
	if err != nil {
		return nil, storageError(err, "failed to create teacher")
	}
	return created, nil
}

// Update applies a partial update.
func (s *TeacherService) Update(ctx context.Context, id int64, patch models.TeacherPatch) (*models.Teacher, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	teacher, err := s.store.UpdateTeacher(ctx, id, patch)
	return found(teacher, err, "teacher")
}

// Delete removes a teacher profile.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteTeacher(ctx, id)
	return removed(ok, err, "teacher")
}
