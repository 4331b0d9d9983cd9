package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type plannerStore interface {
	repository.TimetableStore
	repository.TaskStore
	GetSubjectAssignment(ctx context.Context, id int64) (*models.SubjectAssignment, error)
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
}

// TimetableFilter selects entries by subject assignment or weekday.
type TimetableFilter struct {
	SubjectAssignmentID *int64
	Day                 *string
}

// PlannerService manages the weekly timetable and personal tasks.
type PlannerService struct {
	store     plannerStore
	validator *validator.Validate
}

// NewPlannerService constructs a PlannerService.
func NewPlannerService(store plannerStore, validate *validator.Validate) *PlannerService {
	return &PlannerService{store: store, validator: newValidator(validate)}
}

// Timetable returns entries with their subject assignment, subject and class.
func (s *PlannerService) Timetable(ctx context.Context, filter TimetableFilter) ([]dto.TimetableEntryView, error) {
	var (
		entries []models.TimetableEntry
		err     error
	)
	switch {
	case filter.SubjectAssignmentID != nil:
		entries, err = s.store.ListTimetableBySubjectAssignment(ctx, *filter.SubjectAssignmentID)
	case filter.Day != nil:
		entries, err = s.store.ListTimetableByDay(ctx, *filter.Day)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "subjectAssignmentId or day is required")
	}
	if err != nil {
		return nil, storageError(err, "failed to list timetable")
	}

	// Entries on the same day often share a subject assignment.
	resolved := make(map[int64]*dto.TimetableSubjectAssignment)
	out := make([]dto.TimetableEntryView, 0, len(entries))
	for _, e := range entries {
		sa, ok := resolved[e.SubjectAssignmentID]
		if !ok {
			sa, err = s.resolve(ctx, e.SubjectAssignmentID)
			if err != nil {
				return nil, err
			}
			resolved[e.SubjectAssignmentID] = sa
		}
		out = append(out, dto.TimetableEntryView{TimetableEntry: e, SubjectAssignment: sa})
	}
	return out, nil
}

func (s *PlannerService) resolve(ctx context.Context, id int64) (*dto.TimetableSubjectAssignment, error) {
	sa, err := s.store.GetSubjectAssignment(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to load subject assignment")
	}
	if sa == nil {
		return nil, nil
	}
	subject, err := s.store.GetSubject(ctx, sa.SubjectID)
	if err != nil {
		return nil, storageError(err, "failed to load subject")
	}
	class, err := s.store.GetClass(ctx, sa.ClassID)
	if err != nil {
		return nil, storageError(err, "failed to load class")
	}
	return &dto.TimetableSubjectAssignment{SubjectAssignment: *sa, Subject: subject, Class: class}, nil
}

func (s *PlannerService) GetEntry(ctx context.Context, id int64) (*models.TimetableEntry, error) {
	e, err := s.store.GetTimetableEntry(ctx, id)
	return found(e, err, "timetable entry")
}

func (s *PlannerService) CreateEntry(ctx context.Context, e models.TimetableEntry) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(e); err != nil {
		return nil, validationError(err, "invalid timetable payload")
	}
	if e.EndTime <= e.StartTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}
	created, err := s.store.CreateTimetableEntry(ctx, e)
	if err != nil {
		return nil, storageError(err, "failed to create timetable entry")
	}
	return created, nil
}

func (s *PlannerService) UpdateEntry(ctx context.Context, id int64, patch models.TimetableEntryPatch) (*models.TimetableEntry, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid timetable payload")
	}
	e, err := s.store.UpdateTimetableEntry(ctx, id, patch)
	return found(e, err, "timetable entry")
}

func (s *PlannerService) DeleteEntry(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteTimetableEntry(ctx, id)
	return removed(ok, err, "timetable entry")
}

// Tasks lists a user's tasks, defaulting to the principal. Only admins see
// other users' planners.
func (s *PlannerService) Tasks(ctx context.Context, principal *models.Principal, userID *int64) ([]models.Task, error) {
	owner := principal.User.ID
	if userID != nil {
		if err := ownOrAdmin(principal, *userID); err != nil {
			return nil, err
		}
		owner = *userID
	}
	items, err := s.store.ListTasksByUser(ctx, owner)
	return listed(items, err, "tasks")
}

// CreateTask adds a task to the principal's planner.
func (s *PlannerService) CreateTask(ctx context.Context, principal *models.Principal, t models.Task) (*models.Task, error) {
	t.UserID = principal.User.ID
	if err := s.validator.Struct(t); err != nil {
		return nil, validationError(err, "invalid task payload")
	}
	created, err := s.store.CreateTask(ctx, t)
	if err != nil {
		return nil, storageError(err, "failed to create task")
	}
	return created, nil
}

func (s *PlannerService) UpdateTask(ctx context.Context, principal *models.Principal, id int64, patch models.TaskPatch) (*models.Task, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid task payload")
	}
	t, err := s.store.GetTask(ctx, id)
	if t, err = found(t, err, "task"); err != nil {
		return nil, err
	}
	if err := ownOrAdmin(principal, t.UserID); err != nil {
		return nil, err
	}
	t, err = s.store.UpdateTask(ctx, id, patch)
	return found(t, err, "task")
}

func (s *PlannerService) DeleteTask(ctx context.Context, principal *models.Principal, id int64) error {
	t, err := s.store.GetTask(ctx, id)
	if t, err = found(t, err, "task"); err != nil {
		return err
	}
	if err := ownOrAdmin(principal, t.UserID); err != nil {
		return err
	}
	ok, err := s.store.DeleteTask(ctx, id)
	return removed(ok, err, "task")
}
