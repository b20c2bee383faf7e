package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/consolewind/internal/config"
	"github.com/dshills/consolewind/internal/platform/termsize"
	"github.com/dshills/consolewind/internal/renderer/backend"
	"github.com/dshills/consolewind/internal/renderer/core"
)

type fakeProber struct {
	size        core.Size
	err         error
	useTerminal bool
}

func (f *fakeProber) Discover(ctx context.Context, title, scriptPath string, useTerminal bool) (core.Size, error) {
	f.useTerminal = useTerminal
	return f.size, f.err
}

func sizedConfig(width, height int) *config.Config {
	cfg := config.Default()
	cfg.Console.Width = width
	cfg.Console.Height = height
	return cfg
}

func newTestApp(t *testing.T, opts Options) (*Application, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	if opts.LogOutput == nil {
		opts.LogOutput = &logs
	}
	if opts.Prober == nil {
		opts.Prober = &fakeProber{err: termsize.ErrSizeUnknown}
	}
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(app.Shutdown)
	return app, &logs
}

func dumpLines(t *testing.T, app *Application) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := app.Dump(&buf); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, expected %q", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestNewDefaultPane(t *testing.T) {
	cfg := sizedConfig(10, 3)
	cfg.Panes = []config.PaneConfig{{Text: "hello"}}

	app, _ := newTestApp(t, Options{Config: cfg})

	assertLines(t, dumpLines(t, app), []string{
		"hello-----",
		"----------",
		"----------",
	})
	if app.Panes().Len() != 1 {
		t.Errorf("Len() = %d, expected 1", app.Panes().Len())
	}
}

func TestNewFullScreenPaneKeepsAllLines(t *testing.T) {
	cfg := sizedConfig(80, 24)
	long := strings.Repeat("a", 70) + "0123456789"
	cfg.Panes = []config.PaneConfig{{Text: "top\n" + long}}

	app, _ := newTestApp(t, Options{Config: cfg})

	lines := dumpLines(t, app)
	if len(lines) != 24 || len(lines[0]) != 80 {
		t.Fatalf("dump should be 24 rows of 80, got %d rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "top-") {
		t.Errorf("line 0 = %q, expected the first pane line", lines[0])
	}
	if lines[1] != long {
		t.Errorf("line 1 = %q, expected %q", lines[1], long)
	}
}

func TestNewPaneLayout(t *testing.T) {
	cfg := sizedConfig(8, 3)
	cfg.Panes = []config.PaneConfig{
		{Row: 0, Col: 0, Width: 4, Height: 2, Text: "ab\ncd\nef"},
		{Row: 1, Col: 5, Width: 3, Height: 1, Text: "xyz"},
	}

	app, _ := newTestApp(t, Options{Config: cfg})

	assertLines(t, dumpLines(t, app), []string{
		"ab--    ",
		"cd-- xyz",
		"        ",
	})

	items := app.Panes().Items()
	if items[0].ID != 1 || items[1].ID != 2 {
		t.Errorf("pane ids = %d, %d; expected 1, 2", items[0].ID, items[1].ID)
	}
}

func TestNewUsesProbe(t *testing.T) {
	prober := &fakeProber{size: core.NewSize(12, 2)}
	app, _ := newTestApp(t, Options{Config: sizedConfig(0, 0), Prober: prober, UseTerminal: true})

	if got := app.Screen().Size(); got != core.NewSize(12, 2) {
		t.Errorf("Size() = %v, expected 12x2", got)
	}
	if !prober.useTerminal {
		t.Error("UseTerminal option should reach the probe")
	}
}

func TestNewProbeFallback(t *testing.T) {
	app, logs := newTestApp(t, Options{
		Config: sizedConfig(0, 0),
		Prober: &fakeProber{err: termsize.ErrSizeUnknown},
	})

	if got := app.Screen().Size(); got != core.NewSize(80, 24) {
		t.Errorf("Size() = %v, expected the 80x24 fallback", got)
	}
	if !strings.Contains(logs.String(), "terminal size unavailable") {
		t.Errorf("expected a fallback warning, logs: %s", logs.String())
	}
}

func TestNewPartialConfiguredSize(t *testing.T) {
	app, _ := newTestApp(t, Options{
		Config: sizedConfig(30, 0),
		Prober: &fakeProber{size: core.NewSize(100, 50)},
	})

	if got := app.Screen().Size(); got != core.NewSize(30, 50) {
		t.Errorf("Size() = %v, expected 30x50", got)
	}
}

func TestNewOverrides(t *testing.T) {
	app, _ := newTestApp(t, Options{
		Config:     sizedConfig(4, 1),
		Title:      "Flag Title",
		LogLevel:   "debug",
		ScriptPath: "/bin/true",
	})

	cfg := app.Config()
	if cfg.Console.Title != "Flag Title" || app.Screen().Title() != "Flag Title" {
		t.Errorf("title = %q / %q", cfg.Console.Title, app.Screen().Title())
	}
	if cfg.Logging.Level != "debug" || cfg.Probe.ScriptPath != "/bin/true" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestNewInvalidOverride(t *testing.T) {
	_, err := New(Options{Config: sizedConfig(4, 1), LogLevel: "loud", LogOutput: &bytes.Buffer{}})

	if !errors.Is(err, config.ErrValidationFailed) {
		t.Fatalf("New() error = %v, expected ErrValidationFailed", err)
	}
	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Errorf("expected config InitError, got %v", err)
	}
}

func TestNewMissingConfigFile(t *testing.T) {
	_, err := New(Options{ConfigPath: filepath.Join(t.TempDir(), "none.toml"), LogOutput: &bytes.Buffer{}})
	if !errors.Is(err, config.ErrFileNotFound) {
		t.Errorf("New() error = %v, expected ErrFileNotFound", err)
	}
}

func TestSessionLogged(t *testing.T) {
	app, logs := newTestApp(t, Options{Config: sizedConfig(4, 1)})

	if _, err := uuid.Parse(app.Session()); err != nil {
		t.Errorf("Session() = %q is not a UUID: %v", app.Session(), err)
	}
	if !strings.Contains(logs.String(), "session="+app.Session()) {
		t.Errorf("logs should carry the session id: %s", logs.String())
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consolewind.log")
	cfg := sizedConfig(4, 1)
	cfg.Logging.File = path

	app, err := New(Options{Config: cfg, Prober: &fakeProber{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	app.Shutdown()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "console size 4x1") {
		t.Errorf("log file content = %q", data)
	}
}

func startRun(t *testing.T, app *Application) <-chan error {
	t.Helper()
	result := make(chan error, 1)
	go func() { result <- app.Run() }()
	return result
}

func waitRun(t *testing.T, result <-chan error) error {
	t.Helper()
	select {
	case err := <-result:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestRunPresentsAndQuits(t *testing.T) {
	cfg := sizedConfig(5, 2)
	cfg.Panes = []config.PaneConfig{{Text: "hi"}}
	app, _ := newTestApp(t, Options{Config: cfg})

	nb := backend.NewNullBackend(5, 2)
	if err := app.SetBackend(nb); err != nil {
		t.Fatalf("SetBackend() error = %v", err)
	}

	nb.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'x'})
	nb.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'})

	if err := waitRun(t, startRun(t, app)); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, expected ErrQuit", err)
	}
	if nb.Lines()[0] != "hi---" {
		t.Errorf("backend row 0 = %q", nb.Lines()[0])
	}
	if nb.Title() != config.DefaultTitle {
		t.Errorf("backend title = %q", nb.Title())
	}
	if app.IsRunning() {
		t.Error("application should not be running after Run returns")
	}
}

func TestRunResize(t *testing.T) {
	cfg := sizedConfig(4, 2)
	cfg.Panes = []config.PaneConfig{
		{},
		{Row: 0, Col: 0, Width: 2, Height: 1},
	}
	app, _ := newTestApp(t, Options{Config: cfg})

	nb := backend.NewNullBackend(4, 2)
	_ = app.SetBackend(nb)

	nb.Resize(6, 3)
	nb.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyEscape})

	if err := waitRun(t, startRun(t, app)); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, expected ErrQuit", err)
	}

	if got := app.Screen().Size(); got != core.NewSize(6, 3) {
		t.Errorf("console size = %v, expected 6x3", got)
	}
	items := app.Panes().Items()
	if got := items[0].Screen.Size(); got != core.NewSize(6, 3) {
		t.Errorf("edge pane size = %v, expected 6x3", got)
	}
	if got := items[1].Screen.Size(); got != core.NewSize(2, 1) {
		t.Errorf("fixed pane size = %v, expected 2x1", got)
	}
	if nb.Lines()[2] != "------" {
		t.Errorf("backend row 2 = %q", nb.Lines()[2])
	}
}

func TestRunShutdown(t *testing.T) {
	app, _ := newTestApp(t, Options{Config: sizedConfig(3, 1)})
	_ = app.SetBackend(backend.NewNullBackend(3, 1))

	result := startRun(t, app)
	app.Shutdown()

	if err := waitRun(t, result); err != nil {
		t.Errorf("Run() after Shutdown = %v, expected nil", err)
	}
}

func TestRunWithoutBackend(t *testing.T) {
	app, _ := newTestApp(t, Options{Config: sizedConfig(3, 1)})
	if err := app.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("Run() = %v, expected ErrNoBackend", err)
	}
}

func TestHandleKeyEvent(t *testing.T) {
	app, _ := newTestApp(t, Options{Config: sizedConfig(3, 1)})
	nb := backend.NewNullBackend(3, 1)
	_ = nb.Init()
	_ = app.SetBackend(nb)

	tests := []struct {
		name string
		ev   backend.Event
		quit bool
	}{
		{"q", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'q'}, true},
		{"Q", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'Q'}, true},
		{"escape", backend.Event{Type: backend.EventKey, Key: backend.KeyEscape}, true},
		{"ctrl-c", backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlC}, true},
		{"ctrl-l", backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlL}, false},
		{"other rune", backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'a'}, false},
		{"enter", backend.Event{Type: backend.EventKey, Key: backend.KeyEnter}, false},
		{"interrupt", backend.Event{Type: backend.EventInterrupt}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.handleBackendEvent(tt.ev)
			if got := errors.Is(err, ErrQuit); got != tt.quit {
				t.Errorf("handleBackendEvent() = %v, quit expected %v", err, tt.quit)
			}
		})
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "consolewind.toml")
	write := func(content string) {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write(`
[console]
title = "Before"
width = 6
height = 2

[[panes]]
text = "one"
`)

	app, _ := newTestApp(t, Options{ConfigPath: path})
	assertLines(t, dumpLines(t, app), []string{"one---", "------"})

	write(`
[console]
title = "After"
theme = "blue"
width = 6
height = 2

[cursor]
row = 1
col = 4
visible = false

[[panes]]
text = "two"
`)
	if err := app.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	s := app.Screen()
	if s.Title() != "After" || s.Theme() != "blue" {
		t.Errorf("title/theme = %q/%q", s.Title(), s.Theme())
	}
	pos, visible := s.Cursor().State()
	if pos != core.NewScreenPos(1, 4) || visible {
		t.Errorf("cursor = %v visible=%v", pos, visible)
	}
	assertLines(t, dumpLines(t, app), []string{"two---", "------"})

	write(`[buffer]
fillChar = "xx"
`)
	if err := app.Reload(); !errors.Is(err, config.ErrValidationFailed) {
		t.Errorf("Reload() with invalid file = %v, expected ErrValidationFailed", err)
	}
	if s.Title() != "After" {
		t.Error("a failed reload should keep the current settings")
	}
}

func TestNewConfigFromStdin(t *testing.T) {
	stdin := strings.NewReader(`
console:
  title: piped
  width: 5
  height: 1
panes:
  - text: abc
`)
	app, _ := newTestApp(t, Options{ConfigPath: StdinPath, ConfigFormat: "yaml", Stdin: stdin})

	if got := app.Screen().Title(); got != "piped" {
		t.Errorf("Title() = %q, expected piped", got)
	}
	assertLines(t, dumpLines(t, app), []string{"abc--"})

	if err := app.Reload(); !errors.Is(err, ErrNotReloadable) {
		t.Errorf("Reload() = %v, expected ErrNotReloadable", err)
	}
}
