package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/latentgrid/internal/assemble"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	errW      io.Writer
	logger    *slog.Logger
	loader    config.Loader
	catalog   *resolver.Catalog
	assembler *assemble.Assembler
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and model catalog.
func NewApp(outW, errW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	catalog, err := resolver.Load(ctx, appConfig.ModelsPath)
	if err != nil {
		// A failure to load the model catalog is a fatal startup error.
		panic(fmt.Errorf("failed to load model catalog: %w", err))
	}
	logger.Debug("Model catalog loaded.", "models", catalog.Len())

	return &App{
		outW:      outW,
		errW:      errW,
		logger:    logger,
		loader:    loader,
		catalog:   catalog,
		assembler: assemble.New(catalog),
	}
}

// Catalog returns the application's model catalog. This is primarily for testing.
func (a *App) Catalog() *resolver.Catalog {
	return a.catalog
}
