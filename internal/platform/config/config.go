package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "cronos/internal/platform/errors"
)

const (
	appName        = "cronos"
	configFileName = "config.yaml"

	StorageSQLite = "sqlite"
	StorageFile   = "file"

	minPollInterval = 10 * time.Millisecond
	maxPollInterval = time.Second
)

type Config struct {
	DataDir       string        `yaml:"-"`
	DBPath        string        `yaml:"-"`
	LogPath       string        `yaml:"-"`
	Storage       string        `yaml:"storage"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	StartCueDelay time.Duration `yaml:"start_cue_delay"`
	Sound         bool          `yaml:"sound"`
	Notifications bool          `yaml:"notifications"`
	WakeLock      bool          `yaml:"wake_lock"`
	LogLevel      string        `yaml:"log_level"`
}

// Defaults returns the configuration used when neither a file nor the environment says otherwise.
func Defaults(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "cronos.db"),
		LogPath:       filepath.Join(dataDir, "cronos.log"),
		Storage:       StorageSQLite,
		PollInterval:  200 * time.Millisecond,
		StartCueDelay: 500 * time.Millisecond,
		Sound:         true,
		Notifications: true,
		WakeLock:      true,
		LogLevel:      "info",
	}
}

// DefaultDataDir resolves the per-user data directory.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Load builds a Config using defaults < config.yaml < .env < CRONOS_* environment.
// A missing config.yaml or .env is not an error.
func Load(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		resolved, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		dataDir = resolved
	}
	cfg := Defaults(dataDir)

	if err := loadYAML(&cfg, filepath.Join(dataDir, configFileName)); err != nil {
		return Config{}, fmt.Errorf("config yaml: %w", err)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config dotenv: %w", err)
	}
	if err := loadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config validate: %w", err)
	}
	return cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	setString(&cfg.Storage, "CRONOS_STORAGE")
	setString(&cfg.LogLevel, "CRONOS_LOG_LEVEL")
	if err := setDuration(&cfg.PollInterval, "CRONOS_POLL_INTERVAL"); err != nil {
		return err
	}
	if err := setDuration(&cfg.StartCueDelay, "CRONOS_START_CUE_DELAY"); err != nil {
		return err
	}
	if err := setBool(&cfg.Sound, "CRONOS_SOUND"); err != nil {
		return err
	}
	if err := setBool(&cfg.Notifications, "CRONOS_NOTIFICATIONS"); err != nil {
		return err
	}
	return setBool(&cfg.WakeLock, "CRONOS_WAKE_LOCK")
}

func validate(cfg Config) error {
	switch cfg.Storage {
	case StorageSQLite, StorageFile:
	default:
		return fmt.Errorf("%w: storage must be %q or %q, got %q", apperrors.ErrInvalidInput, StorageSQLite, StorageFile, cfg.Storage)
	}
	if cfg.PollInterval < minPollInterval || cfg.PollInterval > maxPollInterval {
		return fmt.Errorf("%w: poll_interval must be within %s..%s, got %s", apperrors.ErrInvalidInput, minPollInterval, maxPollInterval, cfg.PollInterval)
	}
	if cfg.StartCueDelay < 0 {
		return fmt.Errorf("%w: start_cue_delay must not be negative", apperrors.ErrInvalidInput)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("%w: unknown log_level %q", apperrors.ErrInvalidInput, cfg.LogLevel)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, key, err)
	}
	*dst = d
	return nil
}

func setBool(dst *bool, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, key, err)
	}
	*dst = b
	return nil
}
