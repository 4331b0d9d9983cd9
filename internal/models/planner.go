package models

import "time"

// TimetableEntry is a weekly slot for a subject assignment.
type TimetableEntry struct {
	ID                  int64   `db:"id" json:"id"`
	SubjectAssignmentID int64   `db:"subject_assignment_id" json:"subjectAssignmentId" validate:"required"`
	Day                 string  `db:"day" json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime           string  `db:"start_time" json:"startTime" validate:"required,datetime=15:04:05"`
	EndTime             string  `db:"end_time" json:"endTime" validate:"required,datetime=15:04:05"`
	Room                *string `db:"room" json:"room,omitempty"`
}

type TimetableEntryPatch struct {
	SubjectAssignmentID *int64  `db:"subject_assignment_id" json:"subjectAssignmentId,omitempty"`
	Day                 *string `db:"day" json:"day,omitempty" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	StartTime           *string `db:"start_time" json:"startTime,omitempty" validate:"omitempty,datetime=15:04:05"`
	EndTime             *string `db:"end_time" json:"endTime,omitempty" validate:"omitempty,datetime=15:04:05"`
	Room                *string `db:"room" json:"room,omitempty"`
}

func (p TimetableEntryPatch) IsEmpty() bool { return p == TimetableEntryPatch{} }

func (p TimetableEntryPatch) Apply(e *TimetableEntry) {
	assign(&e.SubjectAssignmentID, p.SubjectAssignmentID)
	assign(&e.Day, p.Day)
	assign(&e.StartTime, p.StartTime)
	assign(&e.EndTime, p.EndTime)
	assignOptional(&e.Room, p.Room)
}

// Task is a personal to-do item on a user's planner.
type Task struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"userId" validate:"required"`
	Title       string     `db:"title" json:"title" validate:"required"`
	Description *string    `db:"description" json:"description,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`
	DueTime     *string    `db:"due_time" json:"dueTime,omitempty" validate:"omitempty,datetime=15:04:05"`
	Completed   bool       `db:"completed" json:"completed"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

type TaskPatch struct {
	Title       *string    `db:"title" json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string    `db:"description" json:"description,omitempty"`
	DueDate     *time.Time `db:"due_date" json:"dueDate,omitempty"`
	DueTime     *string    `db:"due_time" json:"dueTime,omitempty" validate:"omitempty,datetime=15:04:05"`
	Completed   *bool      `db:"completed" json:"completed,omitempty"`
}

func (p TaskPatch) IsEmpty() bool { return p == TaskPatch{} }

func (p TaskPatch) Apply(t *Task) {
	assign(&t.Title, p.Title)
	assignOptional(&t.Description, p.Description)
	assignOptional(&t.DueDate, p.DueDate)
	assignOptional(&t.DueTime, p.DueTime)
	assign(&t.Completed, p.Completed)
}
