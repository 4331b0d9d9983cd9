package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
)

type studentStore interface {
	repository.StudentStore
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
}

// StudentService manages student profiles.
type StudentService struct {
	store     studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(store studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: store, validator: newValidator(validate), logger: logger}
}

// List returns every student, or the roster of classID when set. An unknown
// class yields an empty list.
func (s *StudentService) List(ctx context.Context, classID *int64) ([]dto.StudentView, error) {
	var (
		students []models.Student
		err      error
	)
	if classID != nil {
		students, err = s.store.ListStudentsByClass(ctx, *classID)
	} else {
		students, err = s.store.ListStudents(ctx)
	}
	if err != nil {
		return nil, storageError(err, "failed to list students")
	}
	return s.views(ctx, students)
}

// Roster returns the students of an existing class.
func (s *StudentService) Roster(ctx context.Context, classID int64) ([]dto.StudentView, error) {
	class, err := s.store.GetClass(ctx, classID)
	if _, err := found(class, err, "class"); err != nil {
		return nil, err
	}
	return s.List(ctx, &classID)
}

// Get returns one student with its user.
func (s *StudentService) Get(ctx context.Context, id int64) (*dto.StudentView, error) {
	student, err := s.store.GetStudent(ctx, id)
	if student, err = found(student, err, "student"); err != nil {
		return nil, err
	}
	views, err := s.views(ctx, []models.Student{*student})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Create adds a student profile.
func (s *StudentService) Create(ctx context.Context, student models.Student) (*models.Student, error) {
	if err := s.validator.Struct(student); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	created, err := s.store.CreateStudent(ctx, student)
	if err != nil {
		return nil, storageError(err, "failed to create student")
	}
	return created, nil
}

// Update applies a partial update.
func (s *StudentService) Update(ctx context.Context, id int64, patch models.StudentPatch) (*models.Student, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	student, err := s.store.UpdateStudent(ctx, id, patch)
	return found(student, err, "student")
}

// Delete removes a student profile. Attendance and submissions referencing
// it are kept.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteStudent(ctx, id)
	return removed(ok, err, "student")
}

func (s *StudentService) views(ctx context.Context, students []models.Student) ([]dto.StudentView, error) {
	users := newUserSummaries(s.store)
	out := make([]dto.StudentView, 0, len(students))
	for _, st := range students {
		user, err := users.get(ctx, st.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.StudentView{Student: st, User: user})
	}
	return out, nil
}
