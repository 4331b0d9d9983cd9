package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
)

type structureStore interface {
	repository.BranchStore
	repository.SectionStore
	repository.SubjectStore
}

// StructureService manages branches, sections and subjects.
type StructureService struct {
	store     structureStore
	validator *validator.Validate
}

// NewStructureService constructs a StructureService.
func NewStructureService(store structureStore, validate *validator.Validate) *StructureService {
	return &StructureService{store: store, validator: newValidator(validate)}
}

func (s *StructureService) ListBranches(ctx context.Context) ([]models.Branch, error) {
	branches, err := s.store.ListBranches(ctx)
	return listed(branches, err, "branches")
}

func (s *StructureService) GetBranch(ctx context.Context, id int64) (*models.Branch, error) {
	branch, err := s.store.GetBranch(ctx, id)
	return found(branch, err, "branch")
}

func (s *StructureService) CreateBranch(ctx context.Context, branch models.Branch) (*models.Branch, error) {
	if err := s.validator.Struct(branch); err != nil {
		return nil, validationError(err, "invalid branch payload")
	}
	created, err := s.store.CreateBranch(ctx, branch)
	if err != nil {
		return nil, storageError(err, "failed to create branch")
	}
	return created, nil
}

func (s *StructureService) UpdateBranch(ctx context.Context, id int64, patch models.BranchPatch) (*models.Branch, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid branch payload")
	}
	branch, err := s.store.UpdateBranch(ctx, id, patch)
	return found(branch, err, "branch")
}

func (s *StructureService) DeleteBranch(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteBranch(ctx, id)
	return removed(ok, err, "branch")
}

func (s *StructureService) ListSections(ctx context.Context) ([]models.Section, error) {
	sections, err := s.store.ListSections(ctx)
	return listed(sections, err, "sections")
}

func (s *StructureService) GetSection(ctx context.Context, id int64) (*models.Section, error) {
	section, err := s.store.GetSection(ctx, id)
	return found(section, err, "section")
}

func (s *StructureService) CreateSection(ctx context.Context, section models.Section) (*models.Section, error) {
	if err := s.validator.Struct(section); err != nil {
		return nil, validationError(err, "invalid section payload")
	}
	created, err := s.store.CreateSection(ctx, section)
	if err != nil {
		return nil, storageError(err, "failed to create section")
	}
	return created, nil
}

func (s *StructureService) UpdateSection(ctx context.Context, id int64, patch models.SectionPatch) (*models.Section, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid section payload")
	}
	section, err := s.store.UpdateSection(ctx, id, patch)
	return found(section, err, "section")
}

func (s *StructureService) DeleteSection(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteSection(ctx, id)
	return removed(ok, err, "section")
}

func (s *StructureService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.store.ListSubjects(ctx)
	return listed(subjects, err, "subjects")
}

func (s *StructureService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.store.GetSubject(ctx, id)
	return found(subject, err, "subject")
}

func (s *StructureService) CreateSubject(ctx context.Context, subject models.Subject) (*models.Subject, error) {
	if err := s.validator.Struct(subject); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}
	created, err := s.store.CreateSubject(ctx, subject)
	if err != nil {
		return nil, storageError(err, "failed to create subject")
	}
	return created, nil
}

func (s *StructureService) UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid subject payload")
	}
	subject, err := s.store.UpdateSubject(ctx, id, patch)
	return found(subject, err, "subject")
}

func (s *StructureService) DeleteSubject(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteSubject(ctx, id)
	return removed(ok, err, "subject")
}
