package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/dshills/consolewind/internal/config"
	"github.com/dshills/consolewind/internal/platform/termsize"
	"github.com/dshills/consolewind/internal/renderer/console"
	"github.com/dshills/consolewind/internal/renderer/core"
	"github.com/dshills/consolewind/internal/renderer/cursor"
	"github.com/dshills/consolewind/internal/renderer/subscreen"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := app.loadConfig()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	app.session = uuid.New().String()
	if err := app.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	app.logger.Debug("configuration loaded from %q", app.opts.ConfigPath)

	// 3. Geometry
	size := app.resolveSize(context.Background())
	app.logger.Info("console size %v", size)

	// 4. Console and panes
	if err := app.buildConsole(size); err != nil {
		return &InitError{Component: "console", Err: err}
	}

	return nil
}

// loadConfig loads the configuration and applies the option overrides.
func (app *Application) loadConfig() (*config.Config, error) {
	cfg := app.opts.Config
	if cfg == nil {
		var err error
		cfg, err = app.readConfig()
		if err != nil {
			return nil, err
		}
	}

	app.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readConfig loads the configuration file, or stdin for StdinPath.
func (app *Application) readConfig() (*config.Config, error) {
	if app.opts.ConfigPath != StdinPath {
		return config.Load(app.opts.ConfigPath)
	}
	r := app.opts.Stdin
	if r == nil {
		r = os.Stdin
	}
	return config.LoadReader(r, app.opts.ConfigFormat)
}

// applyOverrides applies the command-line options, which take precedence
// over every other configuration layer.
func (app *Application) applyOverrides(cfg *config.Config) {
	if app.opts.Title != "" {
		cfg.Console.Title = app.opts.Title
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	if app.opts.UseTerminal {
		cfg.Probe.UseTerminal = true
	}
	if app.opts.ScriptPath != "" {
		cfg.Probe.ScriptPath = app.opts.ScriptPath
	}
}

// initLogger creates the session logger. While a terminal backend owns the
// screen, logs go to the configured file or are discarded.
func (app *Application) initLogger() error {
	var out io.Writer
	switch {
	case app.opts.LogOutput != nil:
		out = app.opts.LogOutput
	case app.config.Logging.File != "":
		f, err := os.OpenFile(app.config.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	case app.opts.Dump:
		out = os.Stderr
	default:
		out = io.Discard
	}

	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(app.config.Logging.Level)
	cfg.Output = out
	app.logger = NewLogger(cfg).WithField("session", app.session)
	return nil
}

// resolveSize determines the console size. Configured dimensions win; the
// rest comes from the terminal probe, falling back to the console default.
func (app *Application) resolveSize(ctx context.Context) core.Size {
	cfg := app.config
	want := core.NewSize(cfg.Console.Width, cfg.Console.Height)
	if want.Width > 0 && want.Height > 0 && !cfg.Probe.UseTerminal {
		return want
	}

	log := app.logger.WithComponent("termsize")
	prober := app.opts.Prober
	if prober == nil {
		opts := termsize.DefaultOptions()
		opts.MinWidth = cfg.Probe.MinWidth
		opts.MinHeight = cfg.Probe.MinHeight
		opts.Timeout = cfg.Probe.Timeout.Duration
		opts.Logger = log
		prober = termsize.New(opts)
	}

	def := console.DefaultConfig()
	fallback := core.NewSize(def.Width, def.Height)
	size := termsize.Resolve(ctx, prober, cfg.Console.Title, cfg.Probe.ScriptPath, cfg.Probe.UseTerminal, fallback, log)

	if want.Width > 0 {
		size.Width = want.Width
	}
	if want.Height > 0 {
		size.Height = want.Height
	}
	return size
}

// buildConsole creates the console screen and its configured panes.
func (app *Application) buildConsole(size core.Size) error {
	cfg := app.config

	app.registry = subscreen.NewRegistry()
	app.panes = subscreen.NewFactory(app.registry, subscreen.NewIDSource(1), subscreen.Options{
		Fill:       cfg.Buffer.Fill(),
		BackPolicy: cfg.Buffer.BackPolicy(),
	})

	app.screen = console.NewFactory(
		console.Config{
			Title:  cfg.Console.Title,
			Width:  size.Width,
			Height: size.Height,
			Theme:  cfg.Console.Theme,
		},
		app.registry,
		cursor.Config{Position: cfg.Cursor.Position(), Visible: cfg.Cursor.Visible},
	).Create()

	configured := cfg.Panes
	for i, p := range cfg.Layout(size) {
		pane, err := app.panes.Create(p.Origin(), core.NewSize(p.Width, p.Height))
		if err != nil {
			return err
		}

		slot := paneSlot{pane: pane, cfg: config.PaneConfig{Text: p.Text}}
		if i < len(configured) {
			slot.cfg = configured[i]
		}
		app.layout = append(app.layout, slot)

		if err := writeLines(pane, p.Text); err != nil {
			return NewComponentError(fmt.Sprintf("pane %d", pane.ID()), "write", err)
		}
		app.logger.WithPane(pane).Debug("created at %v, size %v, back buffer %v", pane.Origin(), pane.Size(), pane.BackSize())
	}
	return nil
}

// writeLines writes text into pane one line per row starting at the top
// left. Lines past the last row are dropped.
func writeLines(pane *subscreen.SubScreen, text string) error {
	if text == "" {
		return nil
	}
	for row, line := range strings.Split(text, "\n") {
		if row >= pane.Size().Height {
			break
		}
		if _, err := pane.WriteText(row, 0, line); err != nil {
			return err
		}
	}
	return nil
}
