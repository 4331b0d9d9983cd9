package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
)

type classStore interface {
	repository.ClassStore
	GetBranch(ctx context.Context, id int64) (*models.Branch, error)
	GetSection(ctx context.Context, id int64) (*models.Section, error)
}

// ClassFilter narrows class listings. BranchID wins when both are set.
type ClassFilter struct {
	BranchID  *int64
	YearLevel *int
}

// ClassService manages classes.
type ClassService struct {
	store     classStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(store classStore, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{store: store, validator: newValidator(validate), logger: logger}
}

// List returns classes with branch and section resolved.
func (s *ClassService) List(ctx context.Context, filter ClassFilter) ([]dto.ClassView, error) {
	var (
		classes []models.Class
		err     error
	)
	switch {
	case filter.BranchID != nil:
		classes, err = s.store.ListClassesByBranch(ctx, *filter.BranchID)
	case filter.YearLevel != nil:
		classes, err = s.store.ListClassesByYear(ctx, *filter.YearLevel)
	default:
		classes, err = s.store.ListClasses(ctx)
	}
	if err != nil {
		return nil, storageError(err, "failed to list classes")
	}

	out := make([]dto.ClassView, 0, len(classes))
	for _, c := range classes {
		view, err := s.view(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

// Get returns a class with branch and section resolved.
func (s *ClassService) Get(ctx context.Context, id int64) (*dto.ClassView, error) {
	class, err := s.store.GetClass(ctx, id)
	if class, err = found(class, err, "class"); err != nil {
		return nil, err
	}
	return s.view(ctx, *class)
}

// Create adds a class.
func (s *ClassService) Create(ctx context.Context, class models.Class) (*models.Class, error) {
	if err := s.validator.Struct(class); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	created, err := s.store.CreateClass(ctx, class)
	if err != nil {
		return nil, storageError(err, "failed to create class")
	}
	return created, nil
}

// Update applies a partial update. Changing the triple changes the roster.
func (s *ClassService) Update(ctx context.Context, id int64, patch models.ClassPatch) (*models.Class, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class, err := s.store.UpdateClass(ctx, id, patch)
	return found(class, err, "class")
}

// Delete removes a class.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteClass(ctx, id)
	return removed(ok, err, "class")
}

func (s *ClassService) view(ctx context.Context, class models.Class) (*dto.ClassView, error) {
	branch, err := s.store.GetBranch(ctx, class.BranchID)
	if err != nil {
		return nil, storageError(err, "failed to load branch")
	}
	section, err := s.store.GetSection(ctx, class.SectionID)
	if err != nil {
		return nil, storageError(err, "failed to load section")
	}
	return &dto.ClassView{Class: class, Branch: branch, Section: section}, nil
}
