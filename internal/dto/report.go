package dto

import (
	"time"

	"github.com/noah-isme/edusync-api/internal/models"
)

// AttendanceStatsQuery selects the attendance records summarised by a report.
// Set either a student, a subject assignment, both, or a date.
type AttendanceStatsQuery struct {
	StudentID           *int64
	SubjectAssignmentID *int64
	Date                *time.Time
}

// StudentPerformance is one student's marked work in a class.
type StudentPerformance struct {
	StudentID         int64   `json:"studentId"`
	StudentCode       string  `json:"studentCode"`
	Name              string  `json:"name"`
	MarkedSubmissions int     `json:"markedSubmissions"`
	AveragePercentage float64 `json:"averagePercentage"`
}

// ClassPerformance lists per-student averages for a class.
type ClassPerformance struct {
	ClassID           int64                `json:"classId"`
	ClassName         string               `json:"className"`
	AveragePercentage float64              `json:"averagePercentage"`
	Students          []StudentPerformance `json:"students"`
}

// StudentAttendance is one roster row of a class attendance export.
type StudentAttendance struct {
	StudentID   int64                  `json:"studentId"`
	StudentCode string                 `json:"studentCode"`
	Name        string                 `json:"name"`
	Stats       models.AttendanceStats `json:"stats"`
}

// ExportFile is a rendered report ready to download.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
