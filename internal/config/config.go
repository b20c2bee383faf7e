package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/consolewind/internal/config/loader"
	"github.com/dshills/consolewind/internal/renderer/core"
	"github.com/dshills/consolewind/internal/renderer/grid"
)

// DefaultTitle is the console title used when none is configured.
const DefaultTitle = "New Screen, Last Era!"

// Config is the complete consolewind configuration.
type Config struct {
	Console ConsoleConfig `toml:"console"`
	Buffer  BufferConfig  `toml:"buffer"`
	Cursor  CursorConfig  `toml:"cursor"`
	Probe   ProbeConfig   `toml:"probe"`
	Logging LoggingConfig `toml:"logging"`
	Panes   []PaneConfig  `toml:"panes"`

	// Watch enables live reload of the configuration file.
	Watch bool `toml:"watch"`
}

// ConsoleConfig configures the console surface.
// A zero Width or Height is taken from the terminal probe.
type ConsoleConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Theme  string `toml:"theme"`
}

// BufferConfig configures pane buffers.
type BufferConfig struct {
	FillChar            string `toml:"fillChar"`
	AdjustmentThreshold int    `toml:"adjustmentThreshold"`
	MaxBackWidth        int    `toml:"maxBackWidth"`
	MaxBackHeight       int    `toml:"maxBackHeight"`
}

// Fill returns the fill character as a rune.
func (b BufferConfig) Fill() rune {
	for _, r := range b.FillChar {
		return r
	}
	return core.DefaultFillChar
}

// BackPolicy returns the sizing policy for back buffers.
func (b BufferConfig) BackPolicy() grid.SizePolicy {
	return grid.ClampedSize(b.AdjustmentThreshold, b.MaxBackWidth, b.MaxBackHeight)
}

// CursorConfig configures the initial cursor state.
type CursorConfig struct {
	Row     int  `toml:"row"`
	Col     int  `toml:"col"`
	Visible bool `toml:"visible"`
}

// Position returns the configured cursor position.
func (c CursorConfig) Position() core.ScreenPos {
	return core.NewScreenPos(c.Row, c.Col)
}

// ProbeConfig configures terminal size discovery.
type ProbeConfig struct {
	UseTerminal bool     `toml:"useTerminal"`
	ScriptPath  string   `toml:"scriptPath"`
	MinWidth    int      `toml:"minWidth"`
	MinHeight   int      `toml:"minHeight"`
	Timeout     Duration `toml:"timeout"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output while the terminal is in use.
	// Empty discards it.
	File string `toml:"file"`
}

// PaneConfig places one sub-screen on the console.
// A zero Width or Height extends the pane to the console edge.
type PaneConfig struct {
	Row    int    `toml:"row"`
	Col    int    `toml:"col"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Text   string `toml:"text"`
}

// Origin returns the pane's top-left cell on the console.
func (p PaneConfig) Origin() core.ScreenPos {
	return core.NewScreenPos(p.Row, p.Col)
}

// Size resolves the pane size against the console size.
func (p PaneConfig) Size(console core.Size) core.Size {
	w, h := p.Width, p.Height
	if w == 0 {
		w = max(console.Width-p.Col, 0)
	}
	if h == 0 {
		h = max(console.Height-p.Row, 0)
	}
	return core.NewSize(w, h)
}

// Duration is a time.Duration read from strings such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Console: ConsoleConfig{
			Title: DefaultTitle,
			Theme: core.DefaultTheme,
		},
		Buffer: BufferConfig{
			FillChar:            string(core.DefaultFillChar),
			AdjustmentThreshold: core.DefaultAdjustmentThreshold,
			MaxBackWidth:        core.DefaultMaxBackWidth,
			MaxBackHeight:       core.DefaultMaxBackHeight,
		},
		Cursor: CursorConfig{Visible: true},
		Probe: ProbeConfig{
			MinWidth:  120,
			MinHeight: 29,
			Timeout:   Duration{10 * time.Second},
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Layout returns the panes to create on a console of the given size with
// zero dimensions resolved. Without configured panes a single pane covers
// the console.
func (c *Config) Layout(console core.Size) []PaneConfig {
	panes := c.Panes
	if len(panes) == 0 {
		panes = []PaneConfig{{}}
	}
	out := make([]PaneConfig, len(panes))
	for i, p := range panes {
		size := p.Size(console)
		p.Width, p.Height = size.Width, size.Height
		out[i] = p
	}
	return out
}

// Load builds the configuration from defaults, the file at path and
// CONSOLEWIND_ environment variables. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	return LoadWithFS(loader.DefaultFS(), path)
}

// LoadWithFS is Load reading the file from fsys.
func LoadWithFS(fsys loader.FileSystem, path string) (*Config, error) {
	var data map[string]any
	if path != "" {
		fl, err := loader.ForPath(fsys, path)
		if err != nil {
			return nil, err
		}
		data, err = fl.Load()
		if err != nil {
			return nil, err
		}
		if data == nil {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	}
	return build(data)
}

// LoadReader is Load taking the file layer from r, in the named format
// ("toml" or "yaml").
func LoadReader(r io.Reader, format string) (*Config, error) {
	rl, err := loader.ForFormat(format)
	if err != nil {
		return nil, err
	}
	data, err := rl.LoadFromReader(r)
	if err != nil {
		return nil, err
	}
	return build(data)
}

// build layers the environment over the file settings and decodes the
// result onto the defaults.
func build(file map[string]any) (*Config, error) {
	merged := loader.DeepMerge(make(map[string]any), file)

	env, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
	if err != nil {
		return nil, err
	}
	merged = loader.DeepMerge(merged, env)

	cfg := Default()
	if err := Decode(merged, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode applies the settings in data on top of cfg. Settings absent from
// data keep their current values.
func Decode(data map[string]any, cfg *Config) error {
	if len(data) == 0 {
		return nil
	}
	raw, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}
	return nil
}

// LogLevels lists the accepted logging.level names. Matching ignores case.
var LogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks every setting and returns all failures joined.
// Each failure matches ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	fail := func(path, msg string, value any, code ValidationErrorCode) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Code: code})
	}
	nonNegative := func(path string, v int) {
		if v < 0 {
			fail(path, "must not be negative", v, ErrCodeOutOfRange)
		}
	}
	positive := func(path string, v int) {
		if v <= 0 {
			fail(path, "must be positive", v, ErrCodeOutOfRange)
		}
	}

	nonNegative("console.width", c.Console.Width)
	nonNegative("console.height", c.Console.Height)

	if n := len([]rune(c.Buffer.FillChar)); n != 1 {
		fail("buffer.fillChar", "must be exactly one character", c.Buffer.FillChar, ErrCodeInvalidRune)
	} else if runewidth.StringWidth(c.Buffer.FillChar) != 1 {
		fail("buffer.fillChar", "must occupy one terminal cell", c.Buffer.FillChar, ErrCodeInvalidRune)
	}
	nonNegative("buffer.adjustmentThreshold", c.Buffer.AdjustmentThreshold)
	positive("buffer.maxBackWidth", c.Buffer.MaxBackWidth)
	positive("buffer.maxBackHeight", c.Buffer.MaxBackHeight)

	nonNegative("cursor.row", c.Cursor.Row)
	nonNegative("cursor.col", c.Cursor.Col)

	positive("probe.minWidth", c.Probe.MinWidth)
	positive("probe.minHeight", c.Probe.MinHeight)
	if c.Probe.Timeout.Duration < 0 {
		fail("probe.timeout", "must not be negative", c.Probe.Timeout, ErrCodeOutOfRange)
	}

	if !ValidLogLevel(c.Logging.Level) {
		fail("logging.level", "must be one of "+strings.Join(LogLevels, ", "), c.Logging.Level, ErrCodeInvalidEnum)
	}

	for i, p := range c.Panes {
		prefix := fmt.Sprintf("panes[%d].", i)
		nonNegative(prefix+"row", p.Row)
		nonNegative(prefix+"col", p.Col)
		nonNegative(prefix+"width", p.Width)
		nonNegative(prefix+"height", p.Height)
	}

	return errors.Join(errs...)
}

// ValidLogLevel reports whether level names one of LogLevels.
func ValidLogLevel(level string) bool {
	for _, l := range LogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}
