package process

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"meetscribe/internal/app"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/pipeline"
	"meetscribe/internal/app/progress"
)

var (
	providerName string
	tenantName   string
	audioPath    string
	outputDir    string
	pollInterval time.Duration
	pollTimeout  time.Duration
)

func init() {
	Cmd.Flags().StringVarP(&providerName, "provider", "P", "",
		"transcription provider to poll (azure or fanolab), defaults to the configured default")
	Cmd.Flags().StringVarP(&tenantName, "tenant", "t", "", "tenant the audio hours are charged to")
	Cmd.Flags().StringVarP(&audioPath, "audio", "a", "",
		"local source recording used to crop evidence clips, omit to skip identity resolution")
	Cmd.Flags().StringVarP(&outputDir, "outputDir", "o", ".", "directory the report JSON files are written to")
	Cmd.Flags().DurationVar(&pollInterval, "interval", 10*time.Second, "wait between polls while a job is still running")
	Cmd.Flags().DurationVar(&pollTimeout, "timeout", 30*time.Minute, "give up on a job that stays pending this long")

	Cmd.MarkFlagRequired("tenant")
}

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process [job-url...]",
	Short: "Poll provider jobs and write the finished reports",
	Long: `Poll provider jobs and write the finished reports

- Poll each job URL until the provider reports a terminal status
- Resolve speaker identities when a local recording is supplied
- Write one report JSON file per succeeded job`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		application, cleanup, err := app.InitializeApp()
		if err != nil {
			log.Fatalf("initialization failed: %v", err)
		}
		defer cleanup()

		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			log.Fatalf("cannot create output directory: %v", err)
		}

		manager := progress.NewManager(progress.Config{Enabled: true})
		bar := manager.NewBar(len(args), "jobs")

		failures := 0
		for _, jobURL := range args {
			if err := processJob(cmd.Context(), application, jobURL); err != nil {
				log.Printf("job %s: %v", jobURL, err)
				failures++
			}
			bar.Increment()
		}
		manager.Wait()

		if failures > 0 {
			log.Fatalf("%d of %d jobs failed", failures, len(args))
		}
		fmt.Printf("processed %d jobs, reports written to %s\n", len(args), outputDir)
	},
}

func processJob(ctx context.Context, application *app.App, jobURL string) error {
	deadline := time.Now().Add(pollTimeout)
	for {
		result, err := application.Orchestrator.Process(ctx, pipeline.Request{
			Provider:  providerName,
			JobURL:    jobURL,
			Tenant:    tenantName,
			AudioPath: audioPath,
		})
		if err != nil {
			return err
		}

		switch result.Status {
		case model.StatusSucceeded:
			return writeReport(result.Report)
		case model.StatusFailed:
			return fmt.Errorf("provider reported failure: %s", result.ErrorMessage)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("job still pending after %s", pollTimeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func writeReport(report *model.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("report-%s.json", uuid.NewString()))
	return os.WriteFile(path, data, 0o644)
}
