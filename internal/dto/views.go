// Package dto holds the composed read models returned by the HTTP API.
package dto

import "github.com/noah-isme/edusync-api/internal/models"

// StudentView is a student with the public part of its user.
type StudentView struct {
	models.Student
	User *models.UserSummary `json:"user"`
}

// TeacherView is a teacher with the public part of its user.
type TeacherView struct {
	models.Teacher
	User *models.UserSummary `json:"user"`
}

// ClassView is a class with its branch and section resolved.
type ClassView struct {
	models.Class
	Branch  *models.Branch  `json:"branch"`
	Section *models.Section `json:"section"`
}

// SubjectAssignmentView resolves the subject, teacher and class of an assignment.
type SubjectAssignmentView struct {
	models.SubjectAssignment
	Subject *models.Subject `json:"subject"`
	Teacher *TeacherView    `json:"teacher"`
	Class   *models.Class   `json:"class"`
}

// TimetableSubjectAssignment is the subject assignment nested in a timetable entry.
type TimetableSubjectAssignment struct {
	models.SubjectAssignment
	Subject *models.Subject `json:"subject"`
	Class   *models.Class   `json:"class"`
}

// TimetableEntryView is a timetable slot with what is taught in it. The
// subject assignment is omitted when it no longer exists.
type TimetableEntryView struct {
	models.TimetableEntry
	SubjectAssignment *TimetableSubjectAssignment `json:"subjectAssignment,omitempty"`
}
