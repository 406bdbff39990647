package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cronos/internal/platform/config"
	apperrors "cronos/internal/platform/errors"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PollInterval != 200*time.Millisecond {
		t.Fatalf("expected 200ms poll interval, got %s", cfg.PollInterval)
	}
	if cfg.Storage != config.StorageSQLite {
		t.Fatalf("expected sqlite storage, got %s", cfg.Storage)
	}
	if cfg.DBPath != filepath.Join(dir, "cronos.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
}

func TestLoadYAMLThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := "storage: file\npoll_interval: 100ms\nsound: false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CRONOS_POLL_INTERVAL", "250ms")
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage != config.StorageFile {
		t.Fatalf("expected file storage from yaml, got %s", cfg.Storage)
	}
	if cfg.Sound {
		t.Fatalf("expected sound disabled from yaml")
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("expected env to override poll interval, got %s", cfg.PollInterval)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CRONOS_POLL_INTERVAL", "5s")
	if _, err := config.Load(dir); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for slow poll interval, got %v", err)
	}
	t.Setenv("CRONOS_POLL_INTERVAL", "")
	t.Setenv("CRONOS_STORAGE", "postgres")
	if _, err := config.Load(dir); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown storage, got %v", err)
	}
}
