package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"melodygram/internal/config"
)

func TestNewDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if cfg.App.LogLevel != "info" {
		t.Errorf("got log level %q, want info", cfg.App.LogLevel)
	}

	if cfg.Job.Workers != 2 {
		t.Errorf("got %d workers, want 2", cfg.Job.Workers)
	}

	if cfg.Job.Timeout != 60*time.Second {
		t.Errorf("got job timeout %v, want 60s", cfg.Job.Timeout)
	}

	if cfg.Extractor.SocketTimeout != 20*time.Second {
		t.Errorf("got socket timeout %v, want 20s", cfg.Extractor.SocketTimeout)
	}

	if cfg.Extractor.ChunkSize != "10M" {
		t.Errorf("got chunk size %q, want 10M", cfg.Extractor.ChunkSize)
	}

	if cfg.Extractor.Retries != 2 || cfg.Extractor.FragmentRetries != 2 {
		t.Errorf("got retries %d/%d, want 2/2", cfg.Extractor.Retries, cfg.Extractor.FragmentRetries)
	}

	if !filepath.IsAbs(cfg.Dir.Cache) {
		t.Errorf("expected absolute cache path, got %s", cfg.Dir.Cache)
	}

	if !filepath.IsAbs(cfg.DepManager.BinsDir) {
		t.Errorf("expected absolute bins dir, got %s", cfg.DepManager.BinsDir)
	}
}

func TestNewOverrides(t *testing.T) {
	os.Clearenv()

	t.Setenv("MELODYGRAM_TELEGRAM_TOKEN", "123:abc")
	t.Setenv("MELODYGRAM_JOB_WORKERS", "4")
	t.Setenv("MELODYGRAM_JOB_TIMEOUT", "90s")
	t.Setenv("MELODYGRAM_DIR_WORK_PARENT", "./scratch")

	cfg, err := config.New()
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("got token %q, want 123:abc", cfg.Telegram.Token)
	}

	if cfg.Job.Workers != 4 {
		t.Errorf("got %d workers, want 4", cfg.Job.Workers)
	}

	if cfg.Job.Timeout != 90*time.Second {
		t.Errorf("got job timeout %v, want 90s", cfg.Job.Timeout)
	}

	if !filepath.IsAbs(cfg.Dir.WorkParent) {
		t.Errorf("expected absolute work parent, got %s", cfg.Dir.WorkParent)
	}
}
