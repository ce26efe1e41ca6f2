package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/cometgo/internal/catalog"
	"github.com/vk/cometgo/internal/ctxlog"
	"github.com/vk/cometgo/internal/input"
	"github.com/vk/cometgo/internal/params"
	"github.com/vk/cometgo/internal/search"
	"github.com/vk/cometgo/internal/version"
)

// App encapsulates the dependencies and configuration of one run.
type App struct {
	logger  *slog.Logger
	config  *Config
	catalog *catalog.Catalog
	engine  search.Engine
}

// NewApp builds an App logging to logW. A nil engine selects
// search.LogEngine.
func NewApp(logW io.Writer, cfg *Config, engine search.Engine) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load parameter catalog: %w", err)
	}
	if engine == nil {
		engine = search.LogEngine{}
	}
	return &App{logger: logger, config: cfg, catalog: cat, engine: engine}, nil
}

// Run writes the template parameter file when asked to, otherwise loads
// the parameter file, applies command-line overrides, resolves the input
// files and runs the search.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	for _, w := range a.config.Warnings {
		a.logger.Warn(w)
	}

	if a.config.PrintParams {
		path := filepath.Join(a.config.WorkDir, params.TemplateName)
		if err := params.WriteTemplateFile(path, a.catalog, version.String()); err != nil {
			return err
		}
		a.logger.Info("Created: "+params.TemplateName, "path", path)
		return nil
	}

	p, err := params.Load(ctx, a.config.ParamsFile, a.catalog)
	if err != nil {
		return err
	}
	mgr := search.NewManager(p, a.engine)
	if err := a.config.Overrides.Apply(mgr); err != nil {
		return fmt.Errorf("failed to apply command-line options: %w", err)
	}
	database, _ := mgr.GetParam("database_name")
	a.logger.Debug("Command-line options applied.", "database", database)

	scanRange, err := params.Get[params.IntRange](mgr.Params(), "scan_range")
	if err != nil {
		return err
	}
	for _, arg := range a.config.Inputs {
		f, err := input.Parse(arg, scanRange, nil)
		if err != nil {
			return err
		}
		a.logger.Debug("Input file added.", "file", f.Name, "analysis", f.Analysis.String(), "first_scan", f.FirstScan, "last_scan", f.LastScan)
		mgr.AddInputFiles(f)
	}
	if a.config.BaseName != "" {
		mgr.SetOutputFileBaseName(a.config.BaseName)
	}

	if err := mgr.DoSearch(ctx); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
