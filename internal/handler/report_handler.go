package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// ReportHandler exposes dashboard statistics and exports.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// AttendanceStats godoc
// @Summary Attendance statistics
// @Description Count present, absent and late records for a student, a subject assignment, both, or a date
// @Tags Reports
// @Produce json
// @Security SessionAuth
// @Param studentId query int false "Student"
// @Param subjectAssignmentId query int false "Subject assignment"
// @Param date query string false "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=models.AttendanceStats}
// @Failure 400 {object} response.Envelope
// @Router /reports/attendance-stats [get]
func (h *ReportHandler) AttendanceStats(c *gin.Context) {
	var (
		q   dto.AttendanceStatsQuery
		err error
	)
	if q.StudentID, err = queryID(c, "studentId"); err != nil {
		response.Error(c, err)
		return
	}
	if q.SubjectAssignmentID, err = queryID(c, "subjectAssignmentId"); err != nil {
		response.Error(c, err)
		return
	}
	if q.Date, err = queryDate(c, "date"); err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.service.AttendanceStats(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// AssignmentStats godoc
// @Summary Assignment statistics
// @Description Submitted and marked counts against the class roster
// @Tags Reports
// @Produce json
// @Security SessionAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope{data=models.AssignmentStats}
// @Failure 404 {object} response.Envelope
// @Router /reports/assignments/{id}/stats [get]
func (h *ReportHandler) AssignmentStats(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.service.AssignmentStats(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// ClassPerformance godoc
// @Summary Class performance
// @Description Average marked percentage per rostered student
// @Tags Reports
// @Produce json
// @Security SessionAuth
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope{data=dto.ClassPerformance}
// @Failure 404 {object} response.Envelope
// @Router /reports/classes/{id}/performance [get]
func (h *ReportHandler) ClassPerformance(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	perf, err := h.service.ClassPerformance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, perf)
}

// ExportClassAttendance godoc
// @Summary Export class attendance
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Security SessionAuth
// @Param id path int true "Class ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/classes/{id}/attendance/export [get]
func (h *ReportHandler) ExportClassAttendance(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.service.ExportClassAttendance(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
