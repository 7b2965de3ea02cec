package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8091" {
		t.Errorf("expected default port, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected default worker count, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected default job TTL, got %v", cfg.JobTTL)
	}
	if cfg.WatchDebounce != 400*time.Millisecond {
		t.Errorf("expected default debounce, got %v", cfg.WatchDebounce)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCLINT_PORT", "9000")
	t.Setenv("DOCLINT_WORKER_COUNT", "8")
	t.Setenv("DOCLINT_JOB_TTL", "30m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected env port, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected env worker count, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected env job TTL, got %v", cfg.JobTTL)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doclint.yaml")
	content := "port: \"7777\"\napi_key: file-key\nworker_count: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7777" || cfg.APIKey != "file-key" || cfg.WorkerCount != 2 {
		t.Errorf("unexpected config from file: %+v", cfg)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doclint.yaml")
	if err := os.WriteFile(path, []byte("port: \"7777\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOCLINT_PORT", "9000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("expected env to override file, got %q", cfg.Port)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateServe(t *testing.T) {
	cfg := Config{}
	if err := cfg.ValidateServe(); err == nil {
		t.Error("expected error without API key")
	}
	cfg.APIKey = "secret"
	if err := cfg.ValidateServe(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
