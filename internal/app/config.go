package app

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultOutput is used when neither the setup nor the caller names one.
const DefaultOutput = "output/selection_result.out"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SetupPath string // .hcl file or directory

	// Output and Connector override the values of the setup file.
	Output    string
	Connector string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if strings.TrimSpace(cfg.SetupPath) == "" {
		return nil, errors.New("SetupPath is a required configuration field and cannot be empty")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}
