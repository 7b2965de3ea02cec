// Package config provides doclint's configuration: defaults, an optional
// YAML file, then environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Worker pool
	WorkerCount  int `yaml:"worker_count"`
	MaxQueueSize int `yaml:"max_queue_size"`

	// Upload limits
	MaxUploadBytes   int64 `yaml:"max_upload_bytes"`
	MaxSyncDocuments int   `yaml:"max_sync_documents"`

	// Job state
	JobTTL time.Duration `yaml:"job_ttl"`

	// Watch mode
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// Load builds the configuration. When path is non-empty the YAML file at
// path is read first; environment variables override file values, and
// defaults fill whatever remains.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.Port = envOr("DOCLINT_PORT", cfg.Port)
	cfg.APIKey = envOr("DOCLINT_API_KEY", cfg.APIKey)
	cfg.WorkerCount = envInt("DOCLINT_WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("DOCLINT_MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxUploadBytes = envInt64("DOCLINT_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.MaxSyncDocuments = envInt("DOCLINT_MAX_SYNC_DOCUMENTS", cfg.MaxSyncDocuments)
	cfg.JobTTL = envDuration("DOCLINT_JOB_TTL", cfg.JobTTL)
	cfg.WatchDebounce = envDuration("DOCLINT_WATCH_DEBOUNCE", cfg.WatchDebounce)

	ApplyDefaults(&cfg)
	return cfg, nil
}

// ApplyDefaults fills zero values.
func ApplyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8091"
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760 // 10MB
	}
	if cfg.MaxSyncDocuments <= 0 {
		cfg.MaxSyncDocuments = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 400 * time.Millisecond
	}
}

// ValidateServe checks the fields the HTTP server requires. The check and
// watch commands run without an API key.
func (c Config) ValidateServe() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("DOCLINT_API_KEY is required to serve")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
