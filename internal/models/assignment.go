package models

import "time"

// Assignment is coursework published for a subject assignment.
type Assignment struct {
	ID                  int64      `db:"id" json:"id"`
	Title               string     `db:"title" json:"title" validate:"required"`
	Description         *string    `db:"description" json:"description,omitempty"`
	SubjectAssignmentID int64      `db:"subject_assignment_id" json:"subjectAssignmentId" validate:"required"`
	DueDate             *time.Time `db:"due_date" json:"dueDate,omitempty"`
	MaxMarks            *int       `db:"max_marks" json:"maxMarks,omitempty" validate:"omitempty,min=0"`
	ResourceURL         *string    `db:"resource_url" json:"resourceUrl,omitempty" validate:"omitempty,url"`
	CreatedAt           time.Time  `db:"created_at" json:"createdAt"`
}

type AssignmentPatch struct {
	Title               *string    `db:"title" json:"title,omitempty" validate:"omitempty,min=1"`
	Description         *string    `db:"description" json:"description,omitempty"`
	SubjectAssignmentID *int64     `db:"subject_assignment_id" json:"subjectAssignmentId,omitempty"`
	DueDate             *time.Time `db:"due_date" json:"dueDate,omitempty"`
	MaxMarks            *int       `db:"max_marks" json:"maxMarks,omitempty" validate:"omitempty,min=0"`
	ResourceURL         *string    `db:"resource_url" json:"resourceUrl,omitempty" validate:"omitempty,url"`
}

func (p AssignmentPatch) IsEmpty() bool { return p == AssignmentPatch{} }

func (p AssignmentPatch) Apply(a *Assignment) {
	assign(&a.Title, p.Title)
	assignOptional(&a.Description, p.Description)
	assign(&a.SubjectAssignmentID, p.SubjectAssignmentID)
	assignOptional(&a.DueDate, p.DueDate)
	assignOptional(&a.MaxMarks, p.MaxMarks)
	assignOptional(&a.ResourceURL, p.ResourceURL)
}

// SubmissionStatus tracks a submission through marking.
type SubmissionStatus string

const (
	SubmissionDraft     SubmissionStatus = "draft"
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionMarked    SubmissionStatus = "marked"
)

// Submission is a student's answer to an assignment.
type Submission struct {
	ID            int64            `db:"id" json:"id"`
	AssignmentID  int64            `db:"assignment_id" json:"assignmentId" validate:"required"`
	StudentID     int64            `db:"student_id" json:"studentId" validate:"required"`
	SubmissionURL *string          `db:"submission_url" json:"submissionUrl,omitempty" validate:"omitempty,url"`
	SubmittedAt   time.Time        `db:"submitted_at" json:"submittedAt"`
	Marks         *int             `db:"marks" json:"marks,omitempty" validate:"omitempty,min=0"`
	Feedback      *string          `db:"feedback" json:"feedback,omitempty"`
	Status        SubmissionStatus `db:"status" json:"status" validate:"omitempty,oneof=draft submitted marked"`
}

type SubmissionPatch struct {
	AssignmentID  *int64            `db:"assignment_id" json:"assignmentId,omitempty"`
	StudentID     *int64            `db:"student_id" json:"studentId,omitempty"`
	SubmissionURL *string           `db:"submission_url" json:"submissionUrl,omitempty" validate:"omitempty,url"`
	Marks         *int              `db:"marks" json:"marks,omitempty" validate:"omitempty,min=0"`
	Feedback      *string           `db:"feedback" json:"feedback,omitempty"`
	Status        *SubmissionStatus `db:"status" json:"status,omitempty" validate:"omitempty,oneof=draft submitted marked"`
}

func (p SubmissionPatch) IsEmpty() bool { return p == SubmissionPatch{} }

func (p SubmissionPatch) Apply(s *Submission) {
	assign(&s.AssignmentID, p.AssignmentID)
	assign(&s.StudentID, p.StudentID)
	assignOptional(&s.SubmissionURL, p.SubmissionURL)
	assignOptional(&s.Marks, p.Marks)
	assignOptional(&s.Feedback, p.Feedback)
	assign(&s.Status, p.Status)
}

// AssignmentStats summarises submissions for an assignment against its class roster.
type AssignmentStats struct {
	AssignmentID  int64 `json:"assignmentId"`
	TotalStudents int   `json:"totalStudents"`
	Submitted     int   `json:"submitted"`
	NotSubmitted  int   `json:"notSubmitted"`
	Marked        int   `json:"marked"`
	NotMarked     int   `json:"notMarked"`
}
