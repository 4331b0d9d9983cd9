package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// SubjectAssignmentHandler exposes teaching assignment endpoints.
type SubjectAssignmentHandler struct {
	service *service.SubjectAssignmentService
}

// NewSubjectAssignmentHandler constructs a SubjectAssignmentHandler.
func NewSubjectAssignmentHandler(svc *service.SubjectAssignmentService) *SubjectAssignmentHandler {
	return &SubjectAssignmentHandler{service: svc}
}

// List godoc
// @Summary List subject assignments
// @Description One of teacherId, classId or subjectId is required
// @Tags SubjectAssignments
// @Produce json
// @Security SessionAuth
// @Param teacherId query int false "Teacher filter"
// @Param classId query int false "Class filter"
// @Param subjectId query int false "Subject filter"
// @Success 200 {object} response.Envelope{data=[]dto.SubjectAssignmentView}
// @Failure 400 {object} response.Envelope
// @Router /subject-assignments [get]
func (h *SubjectAssignmentHandler) List(c *gin.Context) {
	var (
		filter service.SubjectAssignmentFilter
		err    error
	)
	if filter.TeacherID, err = queryID(c, "teacherId"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.ClassID, err = queryID(c, "classId"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.SubjectID, err = queryID(c, "subjectId"); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// Get godoc
// @Summary Get subject assignment
// @Tags SubjectAssignments
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject assignment ID"
// @Success 200 {object} response.Envelope{data=dto.SubjectAssignmentView}
// @Failure 404 {object} response.Envelope
// @Router /subject-assignments/{id} [get]
func (h *SubjectAssignmentHandler) Get(c *gin.Context) {
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

// Create godoc
// @Summary Create subject assignment
// @Tags SubjectAssignments
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.SubjectAssignment true "Subject assignment payload"
// @Success 201 {object} response.Envelope{data=models.SubjectAssignment}
// @Failure 400 {object} response.Envelope
// @Router /subject-assignments [post]
func (h *SubjectAssignmentHandler) Create(c *gin.Context) {
	var payload models.SubjectAssignment
	if err := bindJSON(c, &payload, "invalid subject assignment payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update subject assignment
// @Tags SubjectAssignments
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject assignment ID"
// @Param payload body models.SubjectAssignmentPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.SubjectAssignment}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subject-assignments/{id} [patch]
func (h *SubjectAssignmentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.SubjectAssignmentPatch
	if err := bindJSON(c, &patch, "invalid subject assignment payload"); err != nil {
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
// @Summary Delete subject assignment
// @Tags SubjectAssignments
// @Security SessionAuth
// @Param id path int true "Subject assignment ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /subject-assignments/{id} [delete]
func (h *SubjectAssignmentHandler) Delete(c *gin.Context) {
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
