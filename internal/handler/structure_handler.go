package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// StructureHandler exposes branch, section and subject endpoints.
type StructureHandler struct {
	service *service.StructureService
}

// NewStructureHandler constructs a StructureHandler.
func NewStructureHandler(svc *service.StructureService) *StructureHandler {
	return &StructureHandler{service: svc}
}

// ListBranches godoc
// @Summary List branches
// @Tags Structure
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Envelope{data=[]models.Branch}
// @Router /branches [get]
func (h *StructureHandler) ListBranches(c *gin.Context) {
	items, err := h.service.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetBranch godoc
// @Summary Get branch
// @Tags Structure
// @Produce json
// @Security SessionAuth
// @Param id path int true "Branch ID"
// @Success 200 {object} response.Envelope{data=models.Branch}
// @Failure 404 {object} response.Envelope
// @Router /branches/{id} [get]
func (h *StructureHandler) GetBranch(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// CreateBranch godoc
// @Summary Create branch
// @Tags Structure
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Branch true "Branch payload"
// @Success 201 {object} response.Envelope{data=models.Branch}
// @Failure 400 {object} response.Envelope
// @Router /branches [post]
func (h *StructureHandler) CreateBranch(c *gin.Context) {
	var payload models.Branch
	if err := bindJSON(c, &payload, "invalid branch payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.CreateBranch(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateBranch godoc
// @Summary Update branch
// @Tags Structure
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Branch ID"
// @Param payload body models.BranchPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Branch}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /branches/{id} [patch]
func (h *StructureHandler) UpdateBranch(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.BranchPatch
	if err := bindJSON(c, &patch, "invalid branch payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateBranch(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteBranch godoc
// @Summary Delete branch
// @Tags Structure
// @Security SessionAuth
// @Param id path int true "Branch ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /branches/{id} [delete]
func (h *StructureHandler) DeleteBranch(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSections godoc
// @Summary List sections
// @Tags Structure
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Envelope{data=[]models.Section}
// @Router /sections [get]
func (h *StructureHandler) ListSections(c *gin.Context) {
	items, err := h.service.ListSections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetSection godoc
// @Summary Get section
// @Tags Structure
// @Produce json
// @Security SessionAuth
// @Param id path int true "Section ID"
// @Success 200 {object} response.Envelope{data=models.Section}
// @Failure 404 {object} response.Envelope
// @Router /sections/{id} [get]
func (h *StructureHandler) GetSection(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetSection(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// CreateSection godoc
// @Summary Create section
// @Tags Structure
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Section true "Section payload"
// @Success 201 {object} response.Envelope{data=models.Section}
// @Failure 400 {object} response.Envelope
// @Router /sections [post]
func (h *StructureHandler) CreateSection(c *gin.Context) {
	var payload models.Section
	if err := bindJSON(c, &payload, "invalid section payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.CreateSection(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateSection godoc
// @Summary Update section
// @Tags Structure
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Section ID"
// @Param payload body models.SectionPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Section}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sections/{id} [patch]
func (h *StructureHandler) UpdateSection(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.SectionPatch
	if err := bindJSON(c, &patch, "invalid section payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateSection(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteSection godoc
// @Summary Delete section
// @Tags Structure
// @Security SessionAuth
// @Param id path int true "Section ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /sections/{id} [delete]
func (h *StructureHandler) DeleteSection(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteSection(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Structure
// @Produce json
// @Security SessionAuth
// @Success 200 {object} response.Envelope{data=[]models.Subject}
// @Router /subjects [get]
func (h *StructureHandler) ListSubjects(c *gin.Context) {
	items, err := h.service.ListSubjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetSubject godoc
// @Summary Get subject
// @Tags Structure
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} response.Envelope{data=models.Subject}
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [get]
func (h *StructureHandler) GetSubject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetSubject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// CreateSubject godoc
// @Summary Create subject
// @Tags Structure
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Subject true "Subject payload"
// @Success 201 {object} response.Envelope{data=models.Subject}
// @Failure 400 {object} response.Envelope
// @Router /subjects [post]
func (h *StructureHandler) CreateSubject(c *gin.Context) {
	var payload models.Subject
	if err := bindJSON(c, &payload, "invalid subject payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.CreateSubject(c.Request.Context(), payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateSubject godoc
// @Summary Update subject
// @Tags Structure
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Param payload body models.SubjectPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Subject}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [patch]
func (h *StructureHandler) UpdateSubject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.SubjectPatch
	if err := bindJSON(c, &patch, "invalid subject payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateSubject(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteSubject godoc
// @Summary Delete subject
// @Tags Structure
// @Security SessionAuth
// @Param id path int true "Subject ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /subjects/{id} [delete]
func (h *StructureHandler) DeleteSubject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteSubject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
