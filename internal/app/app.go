package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/toymeas/internal/catalog"
	"github.com/specialistvlad/toymeas/internal/config"
	"github.com/specialistvlad/toymeas/internal/ctxlog"
	"github.com/specialistvlad/toymeas/internal/setup"
	"github.com/specialistvlad/toymeas/internal/sources"
	"github.com/specialistvlad/toymeas/internal/toygen"
)

// App encapsulates the pipeline's dependencies and configuration.
type App struct {
	cfg       *Config
	logger    *slog.Logger
	loader    config.Loader
	reader    catalog.SourceReader
	connector toygen.DataConnector
	runID     string
}

// Option customizes an App.
type Option func(*App)

// WithSourceReader replaces the extension-based source dispatch.
func WithSourceReader(r catalog.SourceReader) Option {
	return func(a *App) { a.reader = r }
}

// WithConnector forces a data connector regardless of the setup file.
func WithConnector(c toygen.DataConnector) Option {
	return func(a *App) { a.connector = c }
}

// NewApp creates an App with its own logger. Logs go to logW.
func NewApp(logW io.Writer, cfg *Config, loader config.Loader, opts ...Option) *App {
	a := &App{
		cfg:    cfg,
		loader: loader,
		reader: sources.NewDispatch(),
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", a.runID)
	a.logger.Debug("Logger configured successfully.")
	return a
}

// RunID identifies this App's run in every log line.
func (a *App) RunID() string {
	return a.runID
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load reads the setup file and populates an Open MeasurementSetup.
func (a *App) Load(ctx context.Context) (*config.Model, *setup.MeasurementSetup, error) {
	ctx = a.context(ctx)
	a.logger.Debug("Loading setup.", "path", a.cfg.SetupPath)

	m, err := a.loader.Load(ctx, a.cfg.SetupPath)
	if err != nil {
		return nil, nil, err
	}

	s := setup.New(a.reader)
	if err := config.Apply(ctx, m, s); err != nil {
		return nil, nil, err
	}
	a.logger.Info("Setup loaded.", "sources", len(m.Sources), "distributions", len(m.Distributions), "pol_configs", len(m.PolConfigs))
	return m, s, nil
}
