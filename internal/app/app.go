package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/factoryflow/internal/catalog"
	"github.com/specialistvlad/factoryflow/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	catalog *catalog.Catalog
	config  *Config
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW. The catalog is loaded here so a bad catalog fails before any
// layout is read.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cat := catalog.Default()
	if len(cfg.CatalogPaths) > 0 {
		var err error
		cat, err = catalog.Load(ctx, cfg.CatalogPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	} else {
		logger.Debug("Using embedded catalog.")
	}

	return &App{
		outW:    outW,
		logger:  logger,
		catalog: cat,
		config:  cfg,
	}, nil
}

// Catalog returns the catalog entities are resolved against.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}
