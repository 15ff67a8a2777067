// Package app assembles the transcription pipeline from its parts.
package app

import (
	"go.uber.org/zap"

	"meetscribe/internal/app/identity"
	"meetscribe/internal/app/pipeline"
	"meetscribe/internal/app/provider"
	"meetscribe/internal/app/quota"
	"meetscribe/internal/config"
)

// App is the assembled application. The orchestrator is the main entry
// point; the other fields are exposed for the HTTP layer and the CLI.
type App struct {
	Env          *config.Env
	Providers    *config.ProvidersConfig
	Logger       *zap.Logger
	Registry     *provider.Registry
	TenantStore  quota.TenantStore
	Guard        *quota.Guard
	Gallery      identity.Gallery
	Encoder      identity.Encoder
	Orchestrator *pipeline.Orchestrator
}

func newApp(
	env *config.Env,
	providers *config.ProvidersConfig,
	logger *zap.Logger,
	registry *provider.Registry,
	tenants quota.TenantStore,
	guard *quota.Guard,
	gallery identity.Gallery,
	encoder identity.Encoder,
	orchestrator *pipeline.Orchestrator,
) *App {
	return &App{
		Env:          env,
		Providers:    providers,
		Logger:       logger,
		Registry:     registry,
		TenantStore:  tenants,
		Guard:        guard,
		Gallery:      gallery,
		Encoder:      encoder,
		Orchestrator: orchestrator,
	}
}
