package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs a AttendanceHandler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// List godoc
// @Summary List attendance
// @Tags Attendance
// @Produce json
// @Security SessionAuth
// @Param studentId query int false "Student filter"
// @Param subjectAssignmentId query int false "Subject assignment filter"
// @Param date query string false "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope{data=[]models.Attendance}
// @Failure 400 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	var (
		filter service.AttendanceFilter
		err    error
	)
	if filter.StudentID, err = queryID(c, "studentId"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.SubjectAssignmentID, err = queryID(c, "subjectAssignmentId"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.Date, err = queryDate(c, "date"); err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records)
}

// Get godoc
// @Summary Get attendance record
// @Tags Attendance
// @Produce json
// @Security SessionAuth
// @Param id path int true "Attendance record ID"
// @Success 200 {object} response.Envelope{data=models.Attendance}
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Record godoc
// @Summary Create attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Attendance true "Attendance payload"
// @Success 201 {object} response.Envelope{data=models.Attendance}
// @Failure 400 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var payload models.Attendance
	if err := bindJSON(c, &payload, "invalid attendance payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.Record(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Attendance ID"
// @Param payload body models.AttendancePatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Attendance}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [patch]
func (h *AttendanceHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.AttendancePatch
	if err := bindJSON(c, &patch, "invalid attendance payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Delete attendance record
// @Tags Attendance
// @Security SessionAuth
// @Param id path int true "Attendance record ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /attendance/{id} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
