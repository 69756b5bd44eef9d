package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Validator tree (YAML or TOML)
	ConfigPath string `env:"DOCINSPECT_CONFIG" envDefault:"docinspect.yaml"`

	// Language of the inspected documents, selects the character table
	Language string `env:"DOCINSPECT_LANG" envDefault:"en"`

	// Output
	Format string `env:"DOCINSPECT_FORMAT" envDefault:"plain"`

	// Worker pool
	WorkerCount  int           `env:"DOCINSPECT_WORKERS" envDefault:"4"`
	MaxQueueSize int           `env:"DOCINSPECT_QUEUE_SIZE" envDefault:"100"`
	JobTTL       time.Duration `env:"DOCINSPECT_JOB_TTL" envDefault:"1h"`

	// Input limits
	MaxInputBytes int64 `env:"DOCINSPECT_MAX_INPUT_BYTES" envDefault:"52428800"` // 50MB

	// Logging
	LogLevel  string `env:"DOCINSPECT_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"DOCINSPECT_LOG_FORMAT" envDefault:"text"`

	// PDF
	PDFFallbackPdftotext bool `env:"DOCINSPECT_PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	// The .env file is optional.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}
	if cfg.MaxInputBytes <= 0 {
		cfg.MaxInputBytes = 52428800
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ConfigPath == "" {
		return errors.New("DOCINSPECT_CONFIG is required")
	}
	switch c.Format {
	case "plain", "json":
	default:
		return fmt.Errorf("DOCINSPECT_FORMAT must be plain or json, got %q", c.Format)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("DOCINSPECT_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("DOCINSPECT_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
