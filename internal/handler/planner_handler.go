package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// PlannerHandler exposes timetable and task endpoints.
type PlannerHandler struct {
	service *service.PlannerService
}

// NewPlannerHandler constructs a PlannerHandler.
func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: svc}
}

// Timetable godoc
// @Summary List timetable entries
// @Description One of subjectAssignmentId or day is required
// @Tags Planner
// @Produce json
// @Security SessionAuth
// @Param subjectAssignmentId query int false "Subject assignment filter"
// @Param day query string false "Weekday, e.g. monday"
// @Success 200 {object} response.Envelope{data=[]dto.TimetableEntryView}
// @Failure 400 {object} response.Envelope
// @Router /timetable [get]
func (h *PlannerHandler) Timetable(c *gin.Context) {
	var (
		filter service.TimetableFilter
		err    error
	)
	if filter.SubjectAssignmentID, err = queryID(c, "subjectAssignmentId"); err != nil {
		response.Error(c, err)
		return
	}
	filter.Day = queryString(c, "day")
	items, err := h.service.Timetable(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetEntry godoc
// @Summary Get timetable entry
// @Tags Planner
// @Produce json
// @Security SessionAuth
// @Param id path int true "Timetable entry ID"
// @Success 200 {object} response.Envelope{data=models.TimetableEntry}
// @Failure 404 {object} response.Envelope
// @Router /timetable/{id} [get]
func (h *PlannerHandler) GetEntry(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// CreateEntry godoc
// @Summary Create timetable entry
// @Tags Planner
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.TimetableEntry true "Timetable entry payload"
// @Success 201 {object} response.Envelope{data=models.TimetableEntry}
// @Failure 400 {object} response.Envelope
// @Router /timetable [post]
func (h *PlannerHandler) CreateEntry(c *gin.Context) {
	var payload models.TimetableEntry
	if err := bindJSON(c, &payload, "invalid timetable entry payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.CreateEntry(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateEntry godoc
// @Summary Update timetable entry
// @Tags Planner
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Timetable entry ID"
// @Param payload body models.TimetableEntryPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.TimetableEntry}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetable/{id} [patch]
func (h *PlannerHandler) UpdateEntry(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.TimetableEntryPatch
	if err := bindJSON(c, &patch, "invalid timetable entry payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateEntry(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteEntry godoc
// @Summary Delete timetable entry
// @Tags Planner
// @Security SessionAuth
// @Param id path int true "Timetable entry ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /timetable/{id} [delete]
func (h *PlannerHandler) DeleteEntry(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Tasks godoc
// @Summary List tasks
// @Tags Planner
// @Produce json
// @Security SessionAuth
// @Param userId query int false "Owner; defaults to the caller"
// @Success 200 {object} response.Envelope{data=[]models.Task}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /tasks [get]
func (h *PlannerHandler) Tasks(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	userID, err := queryID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.Tasks(c.Request.Context(), p, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// CreateTask godoc
// @Summary Create task
// @Description Tasks always belong to the caller
// @Tags Planner
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Task true "Task payload"
// @Success 201 {object} response.Envelope{data=models.Task}
// @Failure 400 {object} response.Envelope
// @Router /tasks [post]
func (h *PlannerHandler) CreateTask(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload models.Task
	if err := bindJSON(c, &payload, "invalid task payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.CreateTask(c.Request.Context(), p, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateTask godoc
// @Summary Update task
// @Tags Planner
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Task ID"
// @Param payload body models.TaskPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Task}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [patch]
func (h *PlannerHandler) UpdateTask(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.TaskPatch
	if err := bindJSON(c, &patch, "invalid task payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateTask(c.Request.Context(), p, id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteTask godoc
// @Summary Delete task
// @Tags Planner
// @Security SessionAuth
// @Param id path int true "Task ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /tasks/{id} [delete]
func (h *PlannerHandler) DeleteTask(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteTask(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
