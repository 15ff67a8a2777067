package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DeployMode selects where the service runs; it decides which database
// connection string is used (deployments run either against Azure
// Postgres or a fully on-premises stack).
type DeployMode string

const (
	ModeOnCloud    DeployMode = "on_cloud"
	ModeOnPremises DeployMode = "on_premises"
)

// Env holds all environment-derived configuration.
type Env struct {
	Mode DeployMode

	// Provider credentials
	AzureAPIKey   string
	FanoLabAPIKey string

	// Optional: enables meeting summaries
	OpenAIAPIKey string

	// Storage and infrastructure
	PostgresDSN   string
	SQLitePath    string
	RedisAddr     string
	MinioEndpoint string
	MinioAccess   string
	MinioSecret   string
	MinioBucket   string
	MinioUseSSL   bool

	EncoderURL string
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetEnv reads and validates the environment configuration.
func GetEnv() (*Env, error) {
	env := &Env{
		Mode:          DeployMode(strings.TrimSpace(os.Getenv("DEPLOY_MODE"))),
		AzureAPIKey:   strings.TrimSpace(os.Getenv("AZURE_API_KEY")),
		FanoLabAPIKey: strings.TrimSpace(os.Getenv("FANOLAB_API_KEY")),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		SQLitePath:    strings.TrimSpace(os.Getenv("SQLITE_PATH")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		MinioEndpoint: strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
		MinioAccess:   strings.TrimSpace(os.Getenv("MINIO_ACCESS_KEY")),
		MinioSecret:   strings.TrimSpace(os.Getenv("MINIO_SECRET_KEY")),
		MinioBucket:   strings.TrimSpace(os.Getenv("MINIO_BUCKET")),
		MinioUseSSL:   os.Getenv("MINIO_USE_SSL") == "true",
		EncoderURL:    strings.TrimSpace(os.Getenv("VOICE_ENCODER_URL")),
	}

	if env.Mode == "" {
		env.Mode = ModeOnCloud
	}
	if env.Mode != ModeOnCloud && env.Mode != ModeOnPremises {
		return nil, fmt.Errorf("invalid DEPLOY_MODE %q: must be %q or %q",
			env.Mode, ModeOnCloud, ModeOnPremises)
	}

	switch env.Mode {
	case ModeOnCloud:
		env.PostgresDSN = strings.TrimSpace(os.Getenv("AZURE_POSTGRES_CONNECTION"))
	case ModeOnPremises:
		env.PostgresDSN = strings.TrimSpace(os.Getenv("ON_PREMISES_POSTGRES_CONNECTION"))
	}

	if env.OpenAIAPIKey != "" && !strings.HasPrefix(env.OpenAIAPIKey, "sk-") {
		return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
	}

	// Local defaults matching the docker-compose development setup
	if env.MinioEndpoint == "" {
		env.MinioEndpoint = "localhost:9000"
	}
	if env.MinioAccess == "" {
		env.MinioAccess = "minioadmin"
	}
	if env.MinioSecret == "" {
		env.MinioSecret = "minioadmin"
	}
	if env.MinioBucket == "" {
		env.MinioBucket = "meetscribe-clips"
	}
	if env.RedisAddr == "" {
		env.RedisAddr = "localhost:6379"
	}

	return env, nil
}

// RequireProviderKeys checks that at least one ASR provider is usable.
func RequireProviderKeys(env *Env) error {
	if env.AzureAPIKey == "" && env.FanoLabAPIKey == "" {
		return fmt.Errorf("transcription requires AZURE_API_KEY or FANOLAB_API_KEY in environment or .env file")
	}
	return nil
}

// GetProjectRoot finds the project root directory by looking for go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

// InitializeConfig loads environment and validates configuration
// This is the main entry point for configuration loading
func InitializeConfig() (*Env, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	env, err := GetEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	return env, nil
}
