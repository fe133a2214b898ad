package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nuchoate/league-archive/internal/platform/logging"
)

const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config stores runtime configuration for the archive pipeline.
type Config struct {
	LeagueID    string        `validate:"required,numeric"`
	BaseURL     string        `validate:"required,url"`
	HTTPTimeout time.Duration `validate:"required"`
	RawDir      string        `validate:"required"`
	MungedDir   string        `validate:"required"`
	ReportsDir  string        `validate:"required"`
	PublishDir  string        `validate:"required"`
	PreviewAddr string        `validate:"required"`
	LogFormat   string        `validate:"oneof=console json"`
	LogLevel    logging.Level
}

func Load() (Config, error) {
	httpTimeout, err := time.ParseDuration(getEnv("SLEEPER_TIMEOUT", "20s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SLEEPER_TIMEOUT: %w", err)
	}
	if httpTimeout <= 0 {
		return Config{}, fmt.Errorf("SLEEPER_TIMEOUT must be > 0")
	}

	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", LogFormatConsole)))

	cfg := Config{
		LeagueID:    strings.TrimSpace(getEnv("SLEEPER_LEAGUE_ID", "")),
		BaseURL:     strings.TrimRight(strings.TrimSpace(getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1")), "/"),
		HTTPTimeout: httpTimeout,
		RawDir:      strings.TrimSpace(getEnv("ARCHIVE_RAW_DIR", "data/raw")),
		MungedDir:   strings.TrimSpace(getEnv("ARCHIVE_MUNGED_DIR", "data/munged")),
		ReportsDir:  strings.TrimSpace(getEnv("ARCHIVE_REPORTS_DIR", "reports")),
		PublishDir:  strings.TrimSpace(getEnv("ARCHIVE_PUBLISH_DIR", "docs")),
		PreviewAddr: strings.TrimSpace(getEnv("PREVIEW_ADDR", "127.0.0.1:8090")),
		LogFormat:   logFormat,
		LogLevel:    parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}
