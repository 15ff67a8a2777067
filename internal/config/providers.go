package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig represents the overall configuration for all providers
// and the pipeline settings they feed.
type ProvidersConfig struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
	Pipeline        PipelineConfig            `yaml:"pipeline,omitempty"`
}

// ProviderConfig represents configuration for a single ASR provider.
type ProviderConfig struct {
	Enabled     bool              `yaml:"enabled"`
	APIKey      string            `yaml:"api_key,omitempty"`
	BaseURL     string            `yaml:"base_url,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	Performance PerformanceConfig `yaml:"performance,omitempty"`
	Retry       RetryConfig       `yaml:"retry,omitempty"`
}

// PerformanceConfig represents performance settings for a provider
type PerformanceConfig struct {
	TimeoutSec     int `yaml:"timeout_sec,omitempty"`
	MaxConcurrency int `yaml:"max_concurrency,omitempty"`
}

// RetryConfig represents retry settings for a provider
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts,omitempty"`
	BackoffSec  int `yaml:"backoff_sec,omitempty"`
}

// PipelineConfig holds the knobs of the normalization and identity
// resolution pipeline.
type PipelineConfig struct {
	// Minimum similarity required to accept an identity match.
	ConfidenceThreshold float64 `yaml:"confidence_threshold,omitempty"`

	// Number of longest segments per speaker used as identity evidence.
	EvidenceTopK int `yaml:"evidence_top_k,omitempty"`

	// Bounded worker pool size for per-speaker identity work.
	Workers int `yaml:"workers,omitempty"`

	// How long finished reports stay in the cache, in hours.
	ReportTTLHours int `yaml:"report_ttl_hours,omitempty"`
}

// LoadProvidersConfig loads provider configuration from a YAML file.
func LoadProvidersConfig(configPath string) (*ProvidersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ProvidersConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.expandEnvironmentVariables()
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// expandEnvironmentVariables expands ${VAR} references in credential and
// endpoint fields.
func (c *ProvidersConfig) expandEnvironmentVariables() {
	expand := func(value string) string {
		if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
			envVar := strings.TrimSuffix(strings.TrimPrefix(value, "${"), "}")
			return os.Getenv(envVar)
		}
		return value
	}

	for name, provider := range c.Providers {
		provider.APIKey = expand(provider.APIKey)
		provider.BaseURL = expand(provider.BaseURL)
		for key, value := range provider.Headers {
			provider.Headers[key] = expand(value)
		}
		c.Providers[name] = provider
	}
}

// setDefaults sets default values for the configuration
func (c *ProvidersConfig) setDefaults() {
	if c.DefaultProvider == "" && len(c.Providers) > 0 {
		if _, ok := c.Providers["azure"]; ok {
			c.DefaultProvider = "azure"
		} else {
			for name, provider := range c.Providers {
				if provider.Enabled {
					c.DefaultProvider = name
					break
				}
			}
		}
	}

	for name, provider := range c.Providers {
		if provider.Performance.TimeoutSec == 0 {
			provider.Performance.TimeoutSec = 30
		}
		if provider.Performance.MaxConcurrency == 0 {
			provider.Performance.MaxConcurrency = 4
		}
		if provider.Retry.MaxAttempts == 0 {
			provider.Retry.MaxAttempts = 3
		}
		if provider.Retry.BackoffSec == 0 {
			provider.Retry.BackoffSec = 2
		}
		c.Providers[name] = provider
	}

	if c.Pipeline.ConfidenceThreshold == 0 {
		c.Pipeline.ConfidenceThreshold = 0.8
	}
	if c.Pipeline.EvidenceTopK == 0 {
		c.Pipeline.EvidenceTopK = 3
	}
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = 4
	}
	if c.Pipeline.ReportTTLHours == 0 {
		c.Pipeline.ReportTTLHours = 24
	}
}

// Validate validates the configuration
func (c *ProvidersConfig) Validate() error {
	hasEnabledProvider := false
	for _, provider := range c.Providers {
		if provider.Enabled {
			hasEnabledProvider = true
			break
		}
	}

	if !hasEnabledProvider {
		return fmt.Errorf("at least one provider must be enabled")
	}

	if c.DefaultProvider != "" {
		provider, exists := c.Providers[c.DefaultProvider]
		if !exists {
			return fmt.Errorf("default provider '%s' does not exist", c.DefaultProvider)
		}
		if !provider.Enabled {
			return fmt.Errorf("default provider '%s' is not enabled", c.DefaultProvider)
		}
	}

	validNames := map[string]bool{
		"azure":   true,
		"fanolab": true,
	}

	for name, provider := range c.Providers {
		if !validNames[name] {
			return fmt.Errorf("unknown provider '%s'", name)
		}
		if err := ValidateTimeout(time.Duration(provider.Performance.TimeoutSec)*time.Second, name); err != nil {
			return err
		}
		if err := ValidateConcurrency(provider.Performance.MaxConcurrency, name); err != nil {
			return err
		}
		if err := ValidateRetries(provider.Retry.MaxAttempts, name); err != nil {
			return err
		}
	}

	if t := c.Pipeline.ConfidenceThreshold; t < 0 || t > 1 {
		return fmt.Errorf("confidence_threshold must be between 0 and 1, got %v", t)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	if path := os.Getenv("PROVIDERS_CONFIG_PATH"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "providers.yaml"
	}

	return filepath.Join(home, ".meetscribe", "providers.yaml")
}

// CreateDefaultConfig creates a default configuration
func CreateDefaultConfig() *ProvidersConfig {
	return &ProvidersConfig{
		DefaultProvider: "azure",
		Providers: map[string]ProviderConfig{
			"azure": {
				Enabled: true,
				APIKey:  "${AZURE_API_KEY}",
				Performance: PerformanceConfig{
					TimeoutSec:     30,
					MaxConcurrency: 4,
				},
			},
			"fanolab": {
				Enabled: true,
				APIKey:  "${FANOLAB_API_KEY}",
				BaseURL: "https://portal-demo.fano.ai",
				Performance: PerformanceConfig{
					TimeoutSec:     30,
					MaxConcurrency: 4,
				},
			},
		},
		Pipeline: PipelineConfig{
			ConfidenceThreshold: 0.8,
			EvidenceTopK:        3,
			Workers:             4,
			ReportTTLHours:      24,
		},
	}
}
