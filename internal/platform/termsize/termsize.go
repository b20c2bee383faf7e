// Package termsize discovers the column and row count of the hosting
// terminal.
//
// Discovery either measures the terminal the process is attached to, or
// opens a new terminal window running a script and reports the geometry of
// that window. Either path may fail to produce a size; callers treat
// ErrSizeUnknown as recoverable and fall back to a configured default with
// Resolve.
package termsize

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dshills/consolewind/internal/renderer/core"
)

// ErrSizeUnknown indicates the probe could not determine the dimensions.
var ErrSizeUnknown = errors.New("terminal size unknown")

// ChildEnv is set in the environment of processes started in a launched
// terminal so they measure instead of launching again.
const ChildEnv = "CONSOLEWIND_PROBE_CHILD"

// Prober discovers terminal dimensions.
type Prober interface {
	// Discover returns the terminal size. With useTerminal set, a new
	// terminal window titled title is opened running scriptPath.
	Discover(ctx context.Context, title, scriptPath string, useTerminal bool) (core.Size, error)
}

// Logger is the logging surface the probe needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Options configures a Probe.
type Options struct {
	// MinWidth and MinHeight are the geometry requested for a launched
	// terminal when the current one is smaller or unknown.
	MinWidth  int
	MinHeight int

	// Timeout bounds the external commands run by the probe.
	Timeout time.Duration

	// CleanupDelay is how long temporary probe files are kept before a
	// background goroutine removes them.
	CleanupDelay time.Duration

	Logger Logger
}

// DefaultOptions returns the default probe options.
func DefaultOptions() Options {
	return Options{
		MinWidth:     120,
		MinHeight:    29,
		Timeout:      10 * time.Second,
		CleanupDelay: 2 * time.Second,
	}
}

// Probe is the platform Prober.
type Probe struct {
	opts    Options
	measure func() (core.Size, error)
	launch  launcher
}

// launcher opens a terminal window and reports its geometry.
type launcher func(ctx context.Context, p *Probe, title, scriptPath string, want core.Size) (core.Size, error)

// New creates a probe for the current platform.
func New(opts Options) *Probe {
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	return &Probe{
		opts:    opts,
		measure: measure,
		launch:  platformLauncher(),
	}
}

// Discover implements Prober.
func (p *Probe) Discover(ctx context.Context, title, scriptPath string, useTerminal bool) (core.Size, error) {
	current, err := p.measure()
	if err != nil {
		p.opts.Logger.Debug("measuring attached terminal: %v", err)
	}

	if !useTerminal || os.Getenv(ChildEnv) != "" {
		if err != nil {
			return core.Size{}, err
		}
		return current, nil
	}

	want := core.NewSize(max(current.Width, p.opts.MinWidth), max(current.Height, p.opts.MinHeight))

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	size, err := p.launch(ctx, p, title, scriptPath, want)
	if err != nil {
		return core.Size{}, err
	}
	if size.IsZero() {
		return core.Size{}, ErrSizeUnknown
	}
	return size, nil
}

// Resolve asks prober for the terminal size and returns fallback when the
// size cannot be determined. It never fails.
func Resolve(ctx context.Context, prober Prober, title, scriptPath string, useTerminal bool, fallback core.Size, log Logger) core.Size {
	if log == nil {
		log = nopLogger{}
	}
	size, err := prober.Discover(ctx, title, scriptPath, useTerminal)
	if err != nil {
		log.Warn("terminal size unavailable, using %v: %v", fallback, err)
		return fallback
	}
	if size.IsZero() {
		log.Warn("terminal reported empty size, using %v", fallback)
		return fallback
	}
	return size
}

// scriptCommand returns the program to run in a launched terminal.
// An empty scriptPath re-runs the current executable.
func scriptCommand(scriptPath string) string {
	if scriptPath != "" {
		return scriptPath
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return exe
}
