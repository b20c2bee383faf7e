package subscreen

import (
	"sync/atomic"

	"github.com/dshills/consolewind/internal/renderer/core"
)

// IDSource mints monotonically increasing pane identifiers.
type IDSource struct {
	next atomic.Int64
}

// NewIDSource creates a source whose first identifier is start.
func NewIDSource(start int) *IDSource {
	s := &IDSource{}
	s.next.Store(int64(start))
	return s
}

// Next returns a fresh identifier.
func (s *IDSource) Next() int {
	return int(s.next.Add(1) - 1)
}

// Factory creates panes and registers them.
type Factory struct {
	ids      *IDSource
	registry *Registry
	opts     Options
}

// NewFactory creates a factory registering into registry.
// A nil ids starts a new source at 0.
func NewFactory(registry *Registry, ids *IDSource, opts Options) *Factory {
	if ids == nil {
		ids = NewIDSource(0)
	}
	return &Factory{
		ids:      ids,
		registry: registry,
		opts:     opts,
	}
}

// Create mints a pane of the given size at origin and registers it.
func (f *Factory) Create(origin core.ScreenPos, size core.Size) (*SubScreen, error) {
	s := New(f.ids.Next(), size.Width, size.Height, f.opts)
	s.origin = origin
	if err := f.registry.Add(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Registry returns the registry the factory adds to.
func (f *Factory) Registry() *Registry {
	return f.registry
}
