package routes

import (
	"github.com/gin-gonic/gin"
	"meetscribe/internal/api/v1/handlers"
	"meetscribe/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	TenantService        services.TenantService
	VoiceprintService    services.VoiceprintService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("/poll", transcriptionHandler.Poll)
	}

	tenantHandler := handlers.NewTenantHandler(container.TenantService)
	tenants := router.Group("/tenants")
	{
		tenants.POST("/quota/check", tenantHandler.CheckQuota)
		tenants.GET("/:name", tenantHandler.Get)
	}

	if container.VoiceprintService != nil {
		voiceprintHandler := handlers.NewVoiceprintHandler(container.VoiceprintService)
		voiceprints := router.Group("/voiceprints")
		{
			voiceprints.POST("", voiceprintHandler.Enroll)
			voiceprints.POST("/search", voiceprintHandler.Search)
		}
	}
}
