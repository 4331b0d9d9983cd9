package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// CommunicationHandler exposes message and announcement endpoints.
type CommunicationHandler struct {
	service *service.CommunicationService
}

// NewCommunicationHandler constructs a CommunicationHandler.
func NewCommunicationHandler(svc *service.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{service: svc}
}

// ListMessages godoc
// @Summary List messages
// @Description Without filters the caller's inbox is returned
// @Tags Communication
// @Produce json
// @Security SessionAuth
// @Param senderId query int false "Sender filter"
// @Param receiverId query int false "Receiver filter"
// @Success 200 {object} response.Envelope{data=[]models.Message}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /messages [get]
func (h *CommunicationHandler) ListMessages(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var filter service.MessageFilter
	if filter.SenderID, err = queryID(c, "senderId"); err != nil {
		response.Error(c, err)
		return
	}
	if filter.ReceiverID, err = queryID(c, "receiverId"); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListMessages(c.Request.Context(), p, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// Send godoc
// @Summary Create message
// @Description The sender is always the caller
// @Tags Communication
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Message true "Message payload"
// @Success 201 {object} response.Envelope{data=models.Message}
// @Failure 400 {object} response.Envelope
// @Router /messages [post]
func (h *CommunicationHandler) Send(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload models.Message
	if err := bindJSON(c, &payload, "invalid message payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.Send(c.Request.Context(), p, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// MarkRead godoc
// @Summary Mark message read
// @Tags Communication
// @Produce json
// @Security SessionAuth
// @Param id path int true "Message ID"
// @Success 200 {object} response.Envelope{data=models.Message}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /messages/{id}/read [patch]
func (h *CommunicationHandler) MarkRead(c *gin.Context) {
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
	msg, err := h.service.MarkRead(c.Request.Context(), p, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msg)
}

// DeleteMessage godoc
// @Summary Delete message
// @Tags Communication
// @Security SessionAuth
// @Param id path int true "Message ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /messages/{id} [delete]
func (h *CommunicationHandler) DeleteMessage(c *gin.Context) {
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
	if err := h.service.DeleteMessage(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAnnouncements godoc
// @Summary List announcements
// @Tags Communication
// @Produce json
// @Security SessionAuth
// @Param userId query int false "Author filter"
// @Param role query string false "Audience role; includes announcements for all roles"
// @Param classId query int false "Target class filter"
// @Success 200 {object} response.Envelope{data=[]models.Announcement}
// @Failure 400 {object} response.Envelope
// @Router /announcements [get]
func (h *CommunicationHandler) ListAnnouncements(c *gin.Context) {
	var (
		filter service.AnnouncementFilter
		err    error
	)
	if filter.UserID, err = queryID(c, "userId"); err != nil {
		response.Error(c, err)
		return
	}
	filter.Role = queryString(c, "role")
	if filter.ClassID, err = queryID(c, "classId"); err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListAnnouncements(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, items)
}

// GetAnnouncement godoc
// @Summary Get announcement
// @Tags Communication
// @Produce json
// @Security SessionAuth
// @Param id path int true "Announcement ID"
// @Success 200 {object} response.Envelope{data=models.Announcement}
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [get]
func (h *CommunicationHandler) GetAnnouncement(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.GetAnnouncement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Announce godoc
// @Summary Create announcement
// @Description The author is always the caller
// @Tags Communication
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Announcement true "Announcement payload"
// @Success 201 {object} response.Envelope{data=models.Announcement}
// @Failure 400 {object} response.Envelope
// @Router /announcements [post]
func (h *CommunicationHandler) Announce(c *gin.Context) {
	p, err := principal(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var payload models.Announcement
	if err := bindJSON(c, &payload, "invalid announcement payload"); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.service.Announce(c.Request.Context(), p, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateAnnouncement godoc
// @Summary Update announcement
// @Tags Communication
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Announcement ID"
// @Param payload body models.AnnouncementPatch true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Announcement}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [patch]
func (h *CommunicationHandler) UpdateAnnouncement(c *gin.Context) {
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
	var patch models.AnnouncementPatch
	if err := bindJSON(c, &patch, "invalid announcement payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.UpdateAnnouncement(c.Request.Context(), p, id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteAnnouncement godoc
// @Summary Delete announcement
// @Tags Communication
// @Security SessionAuth
// @Param id path int true "Announcement ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /announcements/{id} [delete]
func (h *CommunicationHandler) DeleteAnnouncement(c *gin.Context) {
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
	if err := h.service.DeleteAnnouncement(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
