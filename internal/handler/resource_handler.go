package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// ResourceHandler exposes shared resource and student document endpoints.
type ResourceHandler struct {
	service *service.ResourceService
}

// NewResourceHandler constructs a ResourceHandler.
func NewResourceHandler(svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// ListResources godoc
// @Summary List resources
// @Tags Resources
// @Produce json
// @Security SessionAuth
// @Param userId query int false "Uploader filter"
// @Param subjectId query int false "Subject filter"
// @Success 200 {object} response.Envelope{data=[]models.Resource}
// @Failure 400 {object} response.Envelope
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var (
		filter service.ResourceFilter
		err    error
	)
	if filter.UserID, err = queryID(c, "userId"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.SubjectID, err = queryID(c, "subjectId"); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListResources(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetResource godoc
// @Summary Get resource
// @Tags Resources
// @Produce json
// @Security SessionAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Envelope{data=models.Resource}
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetResource(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// CreateResource godoc
// @Summary Create resource
// @Description The uploader is always the caller
// @Tags Resources
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Resource true "Resource payload"
// @Success 201 {object} response.Envelope{data=models.Resource}
// @Failure 400 {object} response.Envelope
// @Router /resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload models.Resource
	if err := bindJSON(c, &payload, "invalid resource payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.CreateResource(c.Request.Context(), p, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateResource godoc
// @Summary Update resource
// @Tags Resources
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Resource ID"
// @Param payload body models.ResourcePatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Resource}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [patch]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
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
	var patch models.ResourcePatch
	if err := bindJSON(c, &patch, "invalid resource payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateResource(c.Request.Context(), p, id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteResource godoc
// @Summary Delete resource
// @Tags Resources
// @Security SessionAuth
// @Param id path int true "Resource ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
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
	if err := h.service.DeleteResource(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListDocuments godoc
// @Summary List student documents
// @Tags Resources
// @Produce json
// @Security SessionAuth
// @Param studentId query int true "Student"
// @Success 200 {object} response.Envelope{data=[]models.StudentDocument}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /student-documents [get]
func (h *ResourceHandler) ListDocuments(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	studentID, err := queryID(c, "studentId")
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListDocuments(c.Request.Context(), p, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// AttachDocument godoc
// @Summary Create student document
// @Tags Resources
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.StudentDocument true "Student document payload"
// @Success 201 {object} response.Envelope{data=models.StudentDocument}
// @Failure 400 {object} response.Envelope
// @Router /student-documents [post]
func (h *ResourceHandler) AttachDocument(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload models.StudentDocument
	if err := bindJSON(c, &payload, "invalid student document payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.AttachDocument(c.Request.Context(), p, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// DeleteDocument godoc
// @Summary Delete student document
// @Tags Resources
// @Security SessionAuth
// @Param id path int true "Student document ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /student-documents/{id} [delete]
func (h *ResourceHandler) DeleteDocument(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.DeleteDocument(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
