package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"meetscribe/internal/api/middleware"
	"meetscribe/internal/api/v1/dto"
	"meetscribe/internal/api/v1/services"
)

// VoiceprintHandler handles gallery enrollment and search endpoints
type VoiceprintHandler struct {
	service services.VoiceprintService
}

// NewVoiceprintHandler creates a new voiceprint handler
func NewVoiceprintHandler(service services.VoiceprintService) *VoiceprintHandler {
	return &VoiceprintHandler{
		service: service,
	}
}

// Enroll handles POST /api/v1/voiceprints
func (h *VoiceprintHandler) Enroll(c *gin.Context) {
	var req dto.EnrollVoiceprintRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Enroll(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Search handles POST /api/v1/voiceprints/search
func (h *VoiceprintHandler) Search(c *gin.Context) {
	var req dto.SearchVoiceprintRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
