// Package cursor provides the console cursor state record.
package cursor

import (
	"sync"

	"github.com/dshills/consolewind/internal/renderer/core"
)

// Config holds the initial cursor state.
type Config struct {
	// Position is the starting (row, col).
	Position core.ScreenPos

	// Visible controls whether the cursor is shown initially.
	Visible bool
}

// DefaultConfig returns a visible cursor at the origin.
func DefaultConfig() Config {
	return Config{
		Position: core.Origin,
		Visible:  true,
	}
}

// Cursor is a position plus a visibility flag.
// It is safe for concurrent use.
type Cursor struct {
	mu       sync.RWMutex
	position core.ScreenPos
	visible  bool
}

// New creates a cursor from the given configuration.
func New(config Config) *Cursor {
	return &Cursor{
		position: config.Position,
		visible:  config.Visible,
	}
}

// Position returns the current (row, col).
func (c *Cursor) Position() core.ScreenPos {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position
}

// SetPosition replaces the stored position unconditionally.
func (c *Cursor) SetPosition(pos core.ScreenPos) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
}

// Visible returns whether the cursor is shown.
func (c *Cursor) Visible() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.visible
}

// SetVisible updates the visibility flag. Setting the current value is a
// no-op. Returns true if the state changed, so callers only emit show/hide
// sequences on transitions.
func (c *Cursor) SetVisible(visible bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visible == visible {
		return false
	}
	c.visible = visible
	return true
}

// State returns position and visibility in one consistent read.
func (c *Cursor) State() (core.ScreenPos, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.position, c.visible
}
