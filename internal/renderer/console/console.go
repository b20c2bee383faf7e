// Package console provides the top-level console screen: the registry of
// panes, the cursor, and the dimensions, title and theme of the surface.
package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/consolewind/internal/renderer/core"
	"github.com/dshills/consolewind/internal/renderer/cursor"
	"github.com/dshills/consolewind/internal/renderer/subscreen"
)

// Config describes the overall surface.
type Config struct {
	Title  string
	Width  int
	Height int
	Theme  string
}

// DefaultConfig returns an untitled 80x24 surface with the default theme.
func DefaultConfig() Config {
	return Config{
		Width:  80,
		Height: 24,
		Theme:  core.DefaultTheme,
	}
}

// Screen composes the panes of a console with its cursor.
// The width and height describe the surface and are independent of any
// pane's own dimensions.
type Screen struct {
	mu       sync.RWMutex
	title    string
	width    int
	height   int
	theme    string
	registry *subscreen.Registry
	cursor   *cursor.Cursor
}

// New creates a console screen over registry. A nil cursor gets the default
// cursor configuration.
func New(cfg Config, registry *subscreen.Registry, cur *cursor.Cursor) *Screen {
	if cfg.Theme == "" {
		cfg.Theme = core.DefaultTheme
	}
	if cur == nil {
		cur = cursor.New(cursor.DefaultConfig())
	}
	if registry == nil {
		registry = subscreen.NewRegistry()
	}
	return &Screen{
		title:    cfg.Title,
		width:    cfg.Width,
		height:   cfg.Height,
		theme:    cfg.Theme,
		registry: registry,
		cursor:   cur,
	}
}

// Title returns the surface title.
func (s *Screen) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// SetTitle changes the surface title.
func (s *Screen) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// Theme returns the theme tag.
func (s *Screen) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// SetTheme changes the theme tag.
func (s *Screen) SetTheme(theme string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

// Width returns the surface width.
func (s *Screen) Width() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width
}

// SetWidth changes the surface width.
func (s *Screen) SetWidth(width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
}

// Height returns the surface height.
func (s *Screen) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.height
}

// SetHeight changes the surface height.
func (s *Screen) SetHeight(height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = height
}

// Size returns the surface dimensions.
func (s *Screen) Size() core.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.NewSize(s.width, s.height)
}

// Resize changes both surface dimensions. Panes are not resized.
func (s *Screen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

// SubScreens returns the pane registry.
func (s *Screen) SubScreens() *subscreen.Registry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry
}

// SetSubScreens replaces the pane registry.
func (s *Screen) SetSubScreens(registry *subscreen.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = registry
}

// Cursor returns the console cursor.
func (s *Screen) Cursor() *cursor.Cursor {
	return s.cursor
}

// Clear clears every registered pane. Each pane clears its back buffer and
// publishes it, the same path as SubScreen.Clear.
func (s *Screen) Clear() {
	for _, e := range s.SubScreens().Items() {
		e.Screen.Clear()
	}
}

// String describes the surface and its panes.
func (s *Screen) String() string {
	var sb strings.Builder
	size := s.Size()
	fmt.Fprintf(&sb, "console %q: %v", s.Title(), size)
	for _, e := range s.SubScreens().Items() {
		fmt.Fprintf(&sb, "\n  %v", e.Screen)
	}
	return sb.String()
}

// Factory builds console screens from a fixed configuration.
type Factory struct {
	cfg       Config
	registry  *subscreen.Registry
	cursorCfg cursor.Config
}

// NewFactory creates a console factory.
func NewFactory(cfg Config, registry *subscreen.Registry, cursorCfg cursor.Config) *Factory {
	return &Factory{
		cfg:       cfg,
		registry:  registry,
		cursorCfg: cursorCfg,
	}
}

// Create returns a new console screen.
func (f *Factory) Create() *Screen {
	return New(f.cfg, f.registry, cursor.New(f.cursorCfg))
}
