package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/factoryflow/internal/analysis"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LayoutPath   string   // blueprint string, JSON or YAML
	CatalogPaths []string // hcl files or directories; empty means the embedded catalog

	LogFormat string
	LogLevel  string

	Output           analysis.Format
	FailOnUnresolved bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LayoutPath == "" {
		return nil, errors.New("LayoutPath is a required configuration field and cannot be empty")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.Output == "" {
		cfg.Output = analysis.FormatYAML
	}
	if cfg.Output != analysis.FormatYAML && cfg.Output != analysis.FormatJSON {
		return nil, fmt.Errorf("invalid output format %q: must be 'yaml' or 'json'", cfg.Output)
	}

	return &cfg, nil
}
