package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"meetscribe/internal/api/middleware"
	"meetscribe/internal/api/v1/dto"
	"meetscribe/internal/api/v1/services"
)

// TenantHandler handles tenant quota endpoints
type TenantHandler struct {
	service services.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(service services.TenantService) *TenantHandler {
	return &TenantHandler{
		service: service,
	}
}

// CheckQuota handles POST /api/v1/tenants/quota/check
// Reports whether the tenant can afford the requested hours; with
// reserve=true the hours are charged atomically.
func (h *TenantHandler) CheckQuota(c *gin.Context) {
	var req dto.QuotaCheckRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.CheckQuota(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/v1/tenants/:name
func (h *TenantHandler) Get(c *gin.Context) {
	response, err := h.service.GetTenant(c.Request.Context(), c.Param("name"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
