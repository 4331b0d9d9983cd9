package repository

import (
	"context"
	"time"

	"github.com/noah-isme/edusync-api/internal/models"
)

const attendanceColumns = "id, student_id, subject_assignment_id, date, status, notes"

func (s *DatabaseStorage) GetAttendance(ctx context.Context, id int64) (*models.Attendance, error) {
	return getOne[models.Attendance](ctx, s, "get attendance", "SELECT "+attendanceColumns+" FROM attendance WHERE id = $1", id)
}

func (s *DatabaseStorage) ListAttendanceByStudentAndSubject(ctx context.Context, studentID, subjectAssignmentID int64) ([]models.Attendance, error) {
	const query = "SELECT " + attendanceColumns + " FROM attendance WHERE student_id = $1 AND subject_assignment_id = $2 ORDER BY id"
	return selectMany[models.Attendance](ctx, s, "list attendance by student and subject", query, studentID, subjectAssignmentID)
}

func (s *DatabaseStorage) ListAttendanceByStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	return selectMany[models.Attendance](ctx, s, "list attendance by student", "SELECT "+attendanceColumns+" FROM attendance WHERE student_id = $1 ORDER BY id", studentID)
}

func (s *DatabaseStorage) ListAttendanceBySubjectAssignment(ctx context.Context, subjectAssignmentID int64) ([]models.Attendance, error) {
	return selectMany[models.Attendance](ctx, s, "list attendance by subject assignment", "SELECT "+attendanceColumns+" FROM attendance WHERE subject_assignment_id = $1 ORDER BY id", subjectAssignmentID)
}

// ListAttendanceByDate matches on the UTC calendar date, ignoring time of day.
func (s *DatabaseStorage) ListAttendanceByDate(ctx context.Context, date time.Time) ([]models.Attendance, error) {
	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	const query = "SELECT " + attendanceColumns + " FROM attendance WHERE date >= $1 AND date < $2 ORDER BY id"
	return selectMany[models.Attendance](ctx, s, "list attendance by date", query, start, start.AddDate(0, 0, 1))
}

func (s *DatabaseStorage) CreateAttendance(ctx context.Context, a models.Attendance) (*models.Attendance, error) {
	const query = `INSERT INTO attendance (student_id, subject_assignment_id, date, status, notes) VALUES ($1, $2, $3, $4, $5) RETURNING ` + attendanceColumns
	return insertOne[models.Attendance](ctx, s, "create attendance", query, a.StudentID, a.SubjectAssignmentID, a.Date.UTC(), a.Status, a.Notes)
}

func (s *DatabaseStorage) UpdateAttendance(ctx context.Context, id int64, patch models.AttendancePatch) (*models.Attendance, error) {
	return updateOne[models.Attendance](ctx, s, "update attendance", "attendance", attendanceColumns, id, patch)
}

func (s *DatabaseStorage) DeleteAttendance(ctx context.Context, id int64) (bool, error) {
	return deleteOne(ctx, s, "delete attendance", "attendance", id)
}
