package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type courseworkStore interface {
	repository.AssignmentStore
	repository.SubmissionStore
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// SubmissionFilter selects submissions by assignment or, failing that, by student.
type SubmissionFilter struct {
	AssignmentID *int64
	StudentID    *int64
}

// CourseworkService manages assignments and their submissions.
type CourseworkService struct {
	store     courseworkStore
	validator *validator.Validate
	reports   reportInvalidator
}

// NewCourseworkService constructs a CourseworkService.
func NewCourseworkService(store courseworkStore, validate *validator.Validate, reports reportInvalidator) *CourseworkService {
	return &CourseworkService{store: store, validator: newValidator(validate), reports: reports}
}

// ListAssignments returns the assignments published for a subject assignment.
func (s *CourseworkService) ListAssignments(ctx context.Context, subjectAssignmentID *int64) ([]models.Assignment, error) {
	if subjectAssignmentID == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subjectAssignmentId is required")
	}
	items, err := s.store.ListAssignmentsBySubjectAssignment(ctx, *subjectAssignmentID)
	return listed(items, err, "assignments")
}

func (s *CourseworkService) GetAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	a, err := s.store.GetAssignment(ctx, id)
	return found(a, err, "assignment")
}

func (s *CourseworkService) CreateAssignment(ctx context.Context, a models.Assignment) (*models.Assignment, error) {
	if err := s.validator.Struct(a); err != nil {
		return nil, validationError(err, "invalid assignment payload")
	}
	created, err := s.store.CreateAssignment(ctx, a)
	if err != nil {
		return nil, storageError(err, "failed to create assignment")
	}
	invalidate(ctx, s.reports)
	return created, nil
}

func (s *CourseworkService) UpdateAssignment(ctx context.Context, id int64, patch models.AssignmentPatch) (*models.Assignment, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid assignment payload")
	}
	a, err := s.store.UpdateAssignment(ctx, id, patch)
	if a, err = found(a, err, "assignment"); err != nil {
		return nil, err
	}
	invalidate(ctx, s.reports)
	return a, nil
}

func (s *CourseworkService) DeleteAssignment(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteAssignment(ctx, id)
	if err := removed(ok, err, "assignment"); err != nil {
		return err
	}
	invalidate(ctx, s.reports)
	return nil
}

// ListSubmissions returns submissions for an assignment or a student.
func (s *CourseworkService) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	var (
		items []models.Submission
		err   error
	)
	switch {
	case filter.AssignmentID != nil:
		items, err = s.store.ListSubmissionsByAssignment(ctx, *filter.AssignmentID)
	case filter.StudentID != nil:
		items, err = s.store.ListSubmissionsByStudent(ctx, *filter.StudentID)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignmentId or studentId is required")
	}
	return listed(items, err, "submissions")
}

func (s *CourseworkService) GetSubmission(ctx context.Context, id int64) (*models.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	return found(sub, err, "submission")
}

// Submit stores a submission for an existing assignment. Students always
// submit as their own profile and cannot mark their work.
func (s *CourseworkService) Submit(ctx context.Context, principal *models.Principal, sub models.Submission) (*models.Submission, error) {
	if principal == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if principal.HasRole(models.RoleStudent) {
		own, err := s.store.GetStudentByUserID(ctx, principal.User.ID)
		if err != nil {
			return nil, storageError(err, "failed to load student profile")
		}
		if own == nil {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "no student profile for this account")
		}
		sub.StudentID = own.ID
	}
	if !principal.HasRole(models.RoleAdmin, models.RoleTeacher) &&
		(sub.Marks != nil || sub.Feedback != nil || sub.Status == models.SubmissionMarked) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only staff can mark submissions")
	}
	if err := s.validator.Struct(sub); err != nil {
		return nil, validationError(err, "invalid submission payload")
	}
	assignment, err := s.store.GetAssignment(ctx, sub.AssignmentID)
	if assignment, err = found(assignment, err, "assignment"); err != nil {
		return nil, err
	}
	if err := checkMarks(sub.Marks, assignment); err != nil {
		return nil, err
	}
	created, err := s.store.CreateSubmission(ctx, sub)
	if err != nil {
		return nil, storageError(err, "failed to create submission")
	}
	invalidate(ctx, s.reports)
	return created, nil
}

// UpdateSubmission applies a partial update. Setting marks without a status
// moves the submission to marked.
func (s *CourseworkService) UpdateSubmission(ctx context.Context, id int64, patch models.SubmissionPatch) (*models.Submission, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid submission payload")
	}
	if patch.Marks != nil {
		current, err := s.store.GetSubmission(ctx, id)
		if current, err = found(current, err, "submission"); err != nil {
			return nil, err
		}
		assignmentID := current.AssignmentID
		if patch.AssignmentID != nil {
			assignmentID = *patch.AssignmentID
		}
		assignment, err := s.store.GetAssignment(ctx, assignmentID)
		if err != nil {
			return nil, storageError(err, "failed to load assignment")
		}
		if err := checkMarks(patch.Marks, assignment); err != nil {
			return nil, err
		}
		if patch.Status == nil {
			marked := models.SubmissionMarked
			patch.Status = &marked
		}
	}
	sub, err := s.store.UpdateSubmission(ctx, id, patch)
	if sub, err = found(sub, err, "submission"); err != nil {
		return nil, err
	}
	invalidate(ctx, s.reports)
	return sub, nil
}

func (s *CourseworkService) DeleteSubmission(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteSubmission(ctx, id)
	if err := removed(ok, err, "submission"); err != nil {
		return err
	}
	invalidate(ctx, s.reports)
	return nil
}

func checkMarks(marks *int, assignment *models.Assignment) error {
	if marks == nil || assignment == nil || assignment.MaxMarks == nil {
		return nil
	}
	if *marks > *assignment.MaxMarks {
		return appErrors.Clone(appErrors.ErrValidation, "marks exceed the assignment maximum")
	}
	return nil
}
