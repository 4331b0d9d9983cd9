package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// StudentHandler exposes student profile endpoints.
type StudentHandler struct {
	service *service.StudentService
}

// NewStudentHandler constructs a StudentHandler.
func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Security SessionAuth
// @Param classId query int false "Only students in this class"
// @Success 200 {object} response.Envelope{data=[]dto.StudentView}
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	classID, err := queryID(c, "classId")
	if err != nil {
		response.Error(c, err)
		return
	}
	students, err := h.service.List(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, students)
}

// Get godoc
// @Summary Get student
// @Tags Students
// @Produce json
// @Security SessionAuth
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope{data=dto.StudentView}
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Create godoc
// @Summary Create student profile
// @Tags Students
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Student true "Student payload"
// @Success 201 {object} response.Envelope{data=models.Student}
// @Failure 400 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var student models.Student
	if err := bindJSON(c, &student, "invalid student payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.Create(c.Request.Context(), student)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Student ID"
// @Param payload body models.StudentPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Student}
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [patch]
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.StudentPatch
	if err := bindJSON(c, &patch, "invalid student payload"); err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// Delete godoc
// @Summary Delete student
// @Tags Students
// @Security SessionAuth
// @Param id path int true "Student ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
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
