package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"meetscribe/internal/api/middleware"
	"meetscribe/internal/api/v1/dto"
	"meetscribe/internal/api/v1/services"
)

// TranscriptionHandler handles transcription polling endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Poll handles POST /api/v1/transcriptions/poll
// Polls a provider job and returns its report when finished. A Pending
// status means the caller should poll again later; the response is 200
// either way because polling itself succeeded.
func (h *TranscriptionHandler) Poll(c *gin.Context) {
	var req dto.PollRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Poll(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
