package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/dto"
	"github.com/noah-isme/edusync-api/internal/service"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// TutorHandler exposes the AI tutor endpoints.
type TutorHandler struct {
	service *service.TutorService
}

// NewTutorHandler constructs a TutorHandler.
func NewTutorHandler(svc *service.TutorService) *TutorHandler {
	return &TutorHandler{service: svc}
}

// Summarize godoc
// @Summary Summarize text
// @Tags AI
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body dto.SummarizeRequest true "Text to summarize"
// @Success 200 {object} response.Envelope{data=dto.SummarizeResponse}
// @Failure 400 {object} response.Envelope
// @Router /ai/summarize [post]
func (h *TutorHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := bindJSON(c, &req, "text is required"); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.Summarize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Question godoc
// @Summary Ask the tutor a question
// @Tags AI
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body dto.QuestionRequest true "Question"
// @Success 200 {object} response.Envelope{data=dto.AnswerResponse}
// @Failure 400 {object} response.Envelope
// @Router /ai/question [post]
func (h *TutorHandler) Question(c *gin.Context) {
	var req dto.QuestionRequest
	if err := bindJSON(c, &req, "question is required"); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.service.Ask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
