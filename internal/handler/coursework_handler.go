package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// CourseworkHandler exposes assignment and submission endpoints.
type CourseworkHandler struct {
	service *service.CourseworkService
}

// NewCourseworkHandler constructs a CourseworkHandler.
func NewCourseworkHandler(svc *service.CourseworkService) *CourseworkHandler {
	return &CourseworkHandler{service: svc}
}

// ListAssignments godoc
// @Summary List assignments
// @Tags Coursework
// @Produce json
// @Security SessionAuth
// @Param subjectAssignmentId query int true "Subject assignment"
// @Success 200 {object} response.Envelope{data=[]models.Assignment}
// @Failure 400 {object} response.Envelope
// @Router /assignments [get]
func (h *CourseworkHandler) ListAssignments(c *gin.Context) {
	saID, err := queryID(c, "subjectAssignmentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListAssignments(c.Request.Context(), saID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetAssignment godoc
// @Summary Get assignment
// @Tags Coursework
// @Produce json
// @Security SessionAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} response.Envelope{data=models.Assignment}
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id} [get]
func (h *CourseworkHandler) GetAssignment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetAssignment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// CreateAssignment godoc
// @Summary Create assignment
// @Tags Coursework
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Assignment true "Assignment payload"
// @Success 201 {object} response.Envelope{data=models.Assignment}
// @Failure 400 {object} response.Envelope
// @Router /assignments [post]
func (h *CourseworkHandler) CreateAssignment(c *gin.Context) {
	var payload models.Assignment
	if err := bindJSON(c, &payload, "invalid assignment payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.CreateAssignment(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateAssignment godoc
// @Summary Update assignment
// @Tags Coursework
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Assignment ID"
// @Param payload body models.AssignmentPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Assignment}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id} [patch]
func (h *CourseworkHandler) UpdateAssignment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.AssignmentPatch
	if err := bindJSON(c, &patch, "invalid assignment payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateAssignment(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteAssignment godoc
// @Summary Delete assignment
// @Tags Coursework
// @Security SessionAuth
// @Param id path int true "Assignment ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /assignments/{id} [delete]
func (h *CourseworkHandler) DeleteAssignment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteAssignment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSubmissions godoc
// @Summary List submissions
// @Description One of assignmentId or studentId is required
// @Tags Coursework
// @Produce json
// @Security SessionAuth
// @Param assignmentId query int false "Assignment filter"
// @Param studentId query int false "Student filter"
// @Success 200 {object} response.Envelope{data=[]models.Submission}
// @Failure 400 {object} response.Envelope
// @Router /submissions [get]
func (h *CourseworkHandler) ListSubmissions(c *gin.Context) {
	var (
		filter service.SubmissionFilter
		err    error
	)
	if filter.AssignmentID, err = queryID(c, "assignmentId"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.StudentID, err = queryID(c, "studentId"); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListSubmissions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetSubmission godoc
// @Summary Get submission
// @Tags Coursework
// @Produce json
// @Security SessionAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} response.Envelope{data=models.Submission}
// @Failure 404 {object} response.Envelope
// @Router /submissions/{id} [get]
func (h *CourseworkHandler) GetSubmission(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetSubmission(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Submit godoc
// @Summary Create submission
// @Tags Coursework
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Submission true "Submission payload"
// @Success 201 {object} response.Envelope{data=models.Submission}
// @Failure 400 {object} response.Envelope
// @Router /submissions [post]
func (h *CourseworkHandler) Submit(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload models.Submission
	if err := bindJSON(c, &payload, "invalid submission payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.Submit(c.Request.Context(), p, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateSubmission godoc
// @Summary Update submission
// @Description Setting marks without a status marks the submission
// @Tags Coursework
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Submission ID"
// @Param payload body models.SubmissionPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Submission}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /submissions/{id} [patch]
func (h *CourseworkHandler) UpdateSubmission(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.SubmissionPatch
	if err := bindJSON(c, &patch, "invalid submission payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateSubmission(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteSubmission godoc
// @Summary Delete submission
// @Tags Coursework
// @Security SessionAuth
// @Param id path int true "Submission ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /submissions/{id} [delete]
func (h *CourseworkHandler) DeleteSubmission(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteSubmission(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
