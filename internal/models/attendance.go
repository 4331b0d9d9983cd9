package models

import "time"

// AttendanceStatus is the outcome recorded for a student on a date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Attendance records one student's presence for a subject assignment on a date.
type Attendance struct {
	ID                  int64            `db:"id" json:"id"`
	StudentID           int64            `db:"student_id" json:"studentId" validate:"required"`
	SubjectAssignmentID int64            `db:"subject_assignment_id" json:"subjectAssignmentId" validate:"required"`
	Date                time.Time        `db:"date" json:"date" validate:"required"`
	Status              AttendanceStatus `db:"status" json:"status" validate:"required,oneof=present absent late"`
	Notes               *string          `db:"notes" json:"notes,omitempty"`
}

type AttendancePatch struct {
	StudentID           *int64            `db:"student_id" json:"studentId,omitempty"`
	SubjectAssignmentID *int64            `db:"subject_assignment_id" json:"subjectAssignmentId,omitempty"`
	Date                *time.Time        `db:"date" json:"date,omitempty"`
	Status              *AttendanceStatus `db:"status" json:"status,omitempty" validate:"omitempty,oneof=present absent late"`
	Notes               *string           `db:"notes" json:"notes,omitempty"`
}

func (p AttendancePatch) IsEmpty() bool { return p == AttendancePatch{} }

func (p AttendancePatch) Apply(a *Attendance) {
	assign(&a.StudentID, p.StudentID)
	assign(&a.SubjectAssignmentID, p.SubjectAssignmentID)
	assign(&a.Date, p.Date)
	assign(&a.Status, p.Status)
	assignOptional(&a.Notes, p.Notes)
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// AttendanceStats aggregates attendance records by status.
type AttendanceStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Total   int `json:"total"`
}

// Add counts one record.
func (s *AttendanceStats) Add(status AttendanceStatus) {
	switch status {
	case AttendancePresent:
		s.Present++
	case AttendanceAbsent:
		s.Absent++
	case AttendanceLate:
		s.Late++
	}
	s.Total++
}
