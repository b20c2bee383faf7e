// Package app provides the main application structure and coordination
// for consolewind. It wires configuration, the terminal size probe, the
// console and its panes, and a display backend, and manages the lifecycle.
package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/consolewind/internal/config"
	"github.com/dshills/consolewind/internal/platform/termsize"
	"github.com/dshills/consolewind/internal/renderer/backend"
	"github.com/dshills/consolewind/internal/renderer/console"
	"github.com/dshills/consolewind/internal/renderer/subscreen"
)

// Application is the central coordinator for all consolewind components.
type Application struct {
	mu sync.RWMutex

	config  *config.Config
	logger  *Logger
	logFile *os.File
	session string

	// Console components
	registry  *subscreen.Registry
	panes     *subscreen.Factory
	layout    []paneSlot
	screen    *console.Screen
	backend   backend.Backend
	presenter *backend.Presenter

	// State
	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
	reloads  chan struct{}

	// Options
	opts Options
}

// StdinPath is the ConfigPath that reads the configuration from Stdin.
const StdinPath = "-"

// paneSlot pairs a live pane with the configuration it was created from.
type paneSlot struct {
	pane *subscreen.SubScreen
	cfg  config.PaneConfig
}

// Options configures the application. Non-zero fields override the
// configuration file and environment.
type Options struct {
	// ConfigPath is the path to the configuration file. StdinPath reads
	// the configuration from Stdin instead.
	ConfigPath string

	// ConfigFormat names the format of configuration read from Stdin:
	// "toml" (default) or "yaml".
	ConfigFormat string

	// Stdin is read when ConfigPath is StdinPath. Defaults to os.Stdin.
	Stdin io.Reader

	// Config is used instead of loading ConfigPath when set.
	Config *config.Config

	// Title overrides console.title.
	Title string

	// LogLevel overrides logging.level.
	LogLevel string

	// UseTerminal opens a new terminal window to discover the geometry.
	UseTerminal bool

	// ScriptPath overrides probe.scriptPath.
	ScriptPath string

	// Dump renders the console once as plain text instead of running the
	// interactive terminal.
	Dump bool

	// Prober replaces the platform terminal size probe.
	Prober termsize.Prober

	// LogOutput receives log output instead of the configured destination.
	LogOutput io.Writer
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		reloads: make(chan struct{}, 1),
	}

	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}

	return app, nil
}

// SetBackend sets the display backend used by Run.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.mu.Lock()
	defer app.mu.Unlock()
	app.backend = b
	app.presenter = backend.NewPresenter(b)
	return nil
}

// Dump writes the composed console to w, one line per row.
func (app *Application) Dump(w io.Writer) error {
	for _, line := range backend.ComposeLines(app.screen) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown initiates graceful shutdown and releases resources.
func (app *Application) Shutdown() {
	app.stop()
	app.closeLog()
}

// stop ends the event loop. Safe to call more than once.
func (app *Application) stop() {
	app.stopOnce.Do(func() {
		close(app.done)
	})
}

func (app *Application) closeLog() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Session returns the identifier of this application session.
func (app *Application) Session() string {
	return app.session
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Screen returns the console screen.
func (app *Application) Screen() *console.Screen {
	return app.screen
}

// Panes returns the pane registry.
func (app *Application) Panes() *subscreen.Registry {
	return app.registry
}
