package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// ClassHandler exposes class endpoints.
type ClassHandler struct {
	service  *service.ClassService
	students *service.StudentService
}

// NewClassHandler constructs a ClassHandler.
func NewClassHandler(svc *service.ClassService, students *service.StudentService) *ClassHandler {
	return &ClassHandler{service: svc, students: students}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Security SessionAuth
// @Param branchId query int false "Branch filter"
// @Param year query int false "Year level filter"
// @Success 200 {object} response.Envelope{data=[]dto.ClassView}
// @Failure 400 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	branchID, err := queryID(c, "branchId")
	if err != nil {
		response.Error(c, err)
		return
	}
	year, err := queryInt(c, "year")
	if err != nil {
		response.Error(c, err)
		return
	}
	classes, err := h.service.List(c.Request.Context(), service.ClassFilter{BranchID: branchID, YearLevel: year})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, classes)
}

// Get godoc
// @Summary Get class
// @Tags Classes
// @Produce json
// @Security SessionAuth
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope{data=dto.ClassView}
// @Failure 404 {object} response.Envelope
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
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

// Students godoc
// @Summary List class roster
// @Description Students whose year level, branch and section match the class
// @Tags Classes
// @Produce json
// @Security SessionAuth
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope{data=[]dto.StudentView}
// @Failure 404 {object} response.Envelope
// @Router /classes/{id}/students [get]
func (h *ClassHandler) Students(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.students.Roster(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, students)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Class true "Class payload"
// @Success 201 {object} response.Envelope{data=models.Class}
// @Failure 400 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var payload models.Class
	if err := bindJSON(c, &payload, "invalid class payload"); err != nil {
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
// @Summary Update class
// @Tags Classes
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Class ID"
// @Param payload body models.ClassPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Class}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id} [patch]
func (h *ClassHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.ClassPatch
	if err := bindJSON(c, &patch, "invalid class payload"); err != nil {
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
// @Summary Delete class
// @Tags Classes
// @Security SessionAuth
// @Param id path int true "Class ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
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
