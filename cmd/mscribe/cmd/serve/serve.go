package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"meetscribe/internal/api/server"
	v1routes "meetscribe/internal/api/v1/routes"
	"meetscribe/internal/api/v1/services"
	"meetscribe/internal/app"
)

var host string
var port string

func init() {
	Cmd.Flags().StringVarP(&host, "host", "H", "0.0.0.0", "address to bind the API server to")
	Cmd.Flags().StringVarP(&port, "port", "p", "8080", "port to bind the API server to")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server

- POST /api/v1/transcriptions/poll polls a provider job and builds the report
- POST /api/v1/tenants/quota/check checks or reserves tenant quota
- POST /api/v1/voiceprints enrolls voiceprints, /search matches a clip
- GET /metrics exposes Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			return err
		}
		defer cleanup()

		environment := os.Getenv("APP_ENV")
		logLevel := slog.LevelInfo
		if environment != "production" {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

		container := &v1routes.ServiceContainer{
			TranscriptionService: services.NewTranscriptionService(application.Orchestrator),
			TenantService:        services.NewTenantService(application.Guard, application.TenantStore),
			VoiceprintService:    services.NewVoiceprintService(application.Encoder, application.Gallery),
		}

		srv := server.NewServer(server.Config{
			Host:         host,
			Port:         port,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  2 * time.Minute,
			Environment:  environment,
		}, container, logger)

		if err := srv.Start(); err != nil {
			return err
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
		return nil
	},
}
