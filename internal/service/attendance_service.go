package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

// AttendanceFilter selects attendance records. StudentID with
// SubjectAssignmentID wins over Date; a lone key lists by that key.
type AttendanceFilter struct {
	StudentID           *int64
	SubjectAssignmentID *int64
	Date                *time.Time
}

// AttendanceService records and queries attendance.
type AttendanceService struct {
	store     repository.AttendanceStore
	validator *validator.Validate
	reports   reportInvalidator
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(store repository.AttendanceStore, validate *validator.Validate, reports reportInvalidator) *AttendanceService {
	return &AttendanceService{store: store, validator: newValidator(validate), reports: reports}
}

// List returns records matching filter.
func (s *AttendanceService) List(ctx context.Context, filter AttendanceFilter) ([]models.Attendance, error) {
	var (
		records []models.Attendance
		err     error
	)
	switch {
	case filter.StudentID != nil && filter.SubjectAssignmentID != nil:
		records, err = s.store.ListAttendanceByStudentAndSubject(ctx, *filter.StudentID, *filter.SubjectAssignmentID)
	case filter.Date != nil:
		records, err = s.store.ListAttendanceByDate(ctx, *filter.Date)
	case filter.StudentID != nil:
		records, err = s.store.ListAttendanceByStudent(ctx, *filter.StudentID)
	case filter.SubjectAssignmentID != nil:
		records, err = s.store.ListAttendanceBySubjectAssignment(ctx, *filter.SubjectAssignmentID)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId, subjectAssignmentId or date is required")
	}
	return listed(records, err, "attendance")
}

func (s *AttendanceService) Get(ctx context.Context, id int64) (*models.Attendance, error) {
	record, err := s.store.GetAttendance(ctx, id)
	return found(record, err, "attendance")
}

// Record stores one attendance entry.
func (s *AttendanceService) Record(ctx context.Context, record models.Attendance) (*models.Attendance, error) {
	if err := s.validator.Struct(record); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	created, err := s.store.CreateAttendance(ctx, record)
	if err != nil {
		return nil, storageError(err, "failed to record attendance")
	}
	invalidate(ctx, s.reports)
	return created, nil
}

func (s *AttendanceService) Update(ctx context.Context, id int64, patch models.AttendancePatch) (*models.Attendance, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	record, err := s.store.UpdateAttendance(ctx, id, patch)
	if record, err = found(record, err, "attendance"); err != nil {
		return nil, err
	}
	invalidate(ctx, s.reports)
	return record, nil
}

func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.DeleteAttendance(ctx, id)
	if err := removed(ok, err, "attendance"); err != nil {
		return err
	}
	invalidate(ctx, s.reports)
	return nil
}
