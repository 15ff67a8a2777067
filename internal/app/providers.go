package app

import (
	"fmt"
	"os"
	"time"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"meetscribe/internal/app/audio"
	"meetscribe/internal/app/cache"
	"meetscribe/internal/app/identity"
	"meetscribe/internal/app/metrics"
	"meetscribe/internal/app/pipeline"
	"meetscribe/internal/app/provider"
	"meetscribe/internal/app/provider/azure"
	"meetscribe/internal/app/provider/fanolab"
	"meetscribe/internal/app/quota"
	"meetscribe/internal/app/repository/pg"
	"meetscribe/internal/app/repository/sqlite"
	"meetscribe/internal/app/storage"
	"meetscribe/internal/app/summary"
	"meetscribe/internal/config"
	"meetscribe/internal/logger"
)

var appSet = wire.NewSet(
	provideEnv,
	provideProvidersConfig,
	provideLogger,
	provideRegistry,
	provideStorageBackends,
	provideTenantStore,
	provideGallery,
	provideGuard,
	provideCodec,
	provideEncoder,
	provideClipStore,
	provideResolver,
	provideReportCache,
	provideMetrics,
	provideSummarizer,
	provideOrchestrator,
	newApp,
)

func provideEnv() (*config.Env, error) {
	return config.InitializeConfig()
}

// provideProvidersConfig loads ~/.meetscribe/providers.yaml, falling
// back to built-in defaults when no file exists.
func provideProvidersConfig() (*config.ProvidersConfig, error) {
	path := config.GetDefaultConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.CreateDefaultConfig(), nil
	}
	return config.LoadProvidersConfig(path)
}

func provideLogger() (*zap.Logger, error) {
	development := os.Getenv("APP_ENV") != "production"
	return logger.NewLogger(development)
}

// provideRegistry registers one adapter per enabled provider. The
// config default decides which adapter handles requests that do not
// name a provider.
func provideRegistry(env *config.Env, cfg *config.ProvidersConfig) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	for name, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}

		client := provider.NewHTTPClient(time.Duration(pc.Performance.TimeoutSec) * time.Second)
		retry := provider.RetryPolicy{
			MaxAttempts: pc.Retry.MaxAttempts,
			Backoff:     time.Duration(pc.Retry.BackoffSec) * time.Second,
		}

		var adapter provider.Adapter
		switch name {
		case "azure":
			apiKey := pc.APIKey
			if apiKey == "" {
				apiKey = env.AzureAPIKey
			}
			adapter = azure.New(apiKey, client, retry)
		case "fanolab":
			apiKey := pc.APIKey
			if apiKey == "" {
				apiKey = env.FanoLabAPIKey
			}
			adapter = fanolab.New(apiKey, client, retry)
		default:
			return nil, fmt.Errorf("unknown provider in config: %s", name)
		}

		if err := registry.Register(adapter); err != nil {
			return nil, err
		}
	}

	if cfg.DefaultProvider != "" {
		if err := registry.SetDefault(cfg.DefaultProvider); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// storageBackends groups the persistence handles that share one
// underlying connection.
type storageBackends struct {
	tenants quota.TenantStore
	gallery identity.Gallery
}

// provideStorageBackends picks the persistence by deploy mode: Postgres
// with pgvector on cloud, SQLite plus an in-process gallery on
// premises.
func provideStorageBackends(env *config.Env) (*storageBackends, func(), error) {
	switch env.Mode {
	case config.ModeOnCloud:
		store, err := pg.NewPostgresStore(env.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &storageBackends{tenants: store, gallery: store}, func() { store.Close() }, nil

	default:
		store, err := sqlite.NewSqliteTenantStore(env.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &storageBackends{
			tenants: store,
			gallery: identity.NewMemoryGallery(),
		}, func() { store.Close() }, nil
	}
}

func provideTenantStore(backends *storageBackends) quota.TenantStore {
	return backends.tenants
}

func provideGallery(backends *storageBackends) identity.Gallery {
	return backends.gallery
}

func provideGuard(store quota.TenantStore, log *zap.Logger) *quota.Guard {
	return quota.NewGuard(store, log)
}

func provideCodec() audio.Codec {
	return audio.NewFFmpegCodec()
}

func provideEncoder(env *config.Env) identity.Encoder {
	return identity.NewHTTPEncoder(env.EncoderURL)
}

// provideClipStore falls back to a no-op store when MinIO is not
// reachable; evidence archiving is best-effort.
func provideClipStore(env *config.Env, log *zap.Logger) storage.ClipStore {
	store, err := storage.NewMinioClipStore(env)
	if err != nil {
		log.Warn("evidence clip archiving disabled", zap.Error(err))
		return storage.NewNopClipStore()
	}
	return store
}

func provideResolver(
	codec audio.Codec,
	encoder identity.Encoder,
	gallery identity.Gallery,
	clips storage.ClipStore,
	log *zap.Logger,
	cfg *config.ProvidersConfig,
) *identity.Resolver {
	return identity.NewResolver(codec, encoder, gallery, clips, log, cfg.Pipeline.ConfidenceThreshold)
}

func provideReportCache(env *config.Env, cfg *config.ProvidersConfig) cache.ReportCache {
	if env.RedisAddr == "" {
		return cache.NewNopReportCache()
	}
	ttl := time.Duration(cfg.Pipeline.ReportTTLHours) * time.Hour
	return cache.NewRedisReportCache(env.RedisAddr, ttl)
}

func provideMetrics() *metrics.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

func provideSummarizer(env *config.Env, log *zap.Logger) summary.Summarizer {
	if env.OpenAIAPIKey == "" {
		return summary.NewNopSummarizer()
	}
	return summary.NewOpenAISummarizer(env.OpenAIAPIKey, log)
}

func provideOrchestrator(
	registry *provider.Registry,
	guard *quota.Guard,
	resolver *identity.Resolver,
	summarizer summary.Summarizer,
	reports cache.ReportCache,
	m *metrics.Metrics,
	log *zap.Logger,
	cfg *config.ProvidersConfig,
) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(registry, guard, resolver, summarizer, reports, m, log, pipeline.Options{
		EvidenceTopK: cfg.Pipeline.EvidenceTopK,
		Workers:      cfg.Pipeline.Workers,
		ScratchDir:   os.TempDir(),
	})
}
