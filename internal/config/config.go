package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/timalander/cuebox-takehome/internal/reconcile"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	TagService TagServiceConfig `yaml:"tag_service"`
	Upload     UploadConfig     `yaml:"upload"`
	Processing ProcessingConfig `yaml:"processing"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection.
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// TagServiceConfig holds tag vocabulary service settings.
type TagServiceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
}

// Timeout returns the configured timeout as a duration.
func (c TagServiceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UploadConfig holds multipart upload limits.
type UploadConfig struct {
	MaxUploadMB int64 `yaml:"max_upload_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (c UploadConfig) MaxBytes() int64 {
	return c.MaxUploadMB << 20
}

// ProcessingConfig holds reconciliation engine settings.
type ProcessingConfig struct {
	Workers      int    `yaml:"workers"`
	RefundPolicy string `yaml:"refund_policy"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.TagService.TimeoutSeconds == 0 {
		cfg.TagService.TimeoutSeconds = 30
	}
	if cfg.TagService.MaxRetries == 0 {
		cfg.TagService.MaxRetries = 3
	}
	if cfg.Upload.MaxUploadMB == 0 {
		cfg.Upload.MaxUploadMB = 50
	}
	if cfg.Processing.Workers == 0 {
		cfg.Processing.Workers = 4
	}
	if cfg.Processing.RefundPolicy == "" {
		cfg.Processing.RefundPolicy = string(reconcile.RefundPolicySubtract)
	}

	return &cfg, nil
}

// Validate rejects configuration the engine cannot honor.
func (c *Config) Validate() error {
	if !reconcile.RefundPolicy(c.Processing.RefundPolicy).Valid() {
		return fmt.Errorf("unsupported refund_policy %q (supported: %q)",
			c.Processing.RefundPolicy, reconcile.RefundPolicySubtract)
	}
	if c.TagService.BaseURL == "" {
		return fmt.Errorf("tag_service.base_url is required")
	}
	return nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so local settings can live in .env and real env vars win in deployment.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if baseURL := os.Getenv("TAG_SERVICE_BASE_URL"); baseURL != "" {
		cfg.TagService.BaseURL = baseURL
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if workers := os.Getenv("RECONCILE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Processing.Workers = w
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
