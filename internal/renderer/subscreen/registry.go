package subscreen

import (
	"errors"
	"fmt"
	"sync"
)

// Errors returned by registry operations.
var (
	// ErrConflict indicates a pane with the same identifier is registered.
	ErrConflict = errors.New("sub-screen already registered")

	// ErrNotFound indicates no pane with the identifier is registered.
	ErrNotFound = errors.New("sub-screen not found")
)

// Entry pairs a registered pane with its identifier.
type Entry struct {
	ID     int
	Screen *SubScreen
}

// Registry owns the live panes of a console, keyed by identifier.
// Iteration follows insertion order. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	screens map[int]*SubScreen
	order   []int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		screens: make(map[int]*SubScreen),
	}
}

// Add registers a pane. Fails with ErrConflict if its identifier is taken.
func (r *Registry) Add(s *SubScreen) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := s.ID()
	if _, exists := r.screens[id]; exists {
		return fmt.Errorf("sub-screen %d: %w", id, ErrConflict)
	}
	r.screens[id] = s
	r.order = append(r.order, id)
	return nil
}

// AddAll registers each pane in turn, stopping at the first failure.
func (r *Registry) AddAll(screens ...*SubScreen) error {
	for _, s := range screens {
		if err := r.Add(s); err != nil {
			return err
		}
	}
	return nil
}

// Remove unregisters a pane. Fails with ErrNotFound if it is absent.
func (r *Registry) Remove(s *SubScreen) error {
	return r.RemoveID(s.ID())
}

// RemoveID unregisters the pane with the given identifier.
func (r *Registry) RemoveID(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.screens[id]; !exists {
		return fmt.Errorf("sub-screen %d: %w", id, ErrNotFound)
	}
	delete(r.screens, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveAll unregisters each pane in turn, stopping at the first failure.
func (r *Registry) RemoveAll(screens ...*SubScreen) error {
	for _, s := range screens {
		if err := r.Remove(s); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the pane with the given identifier.
func (r *Registry) Get(id int) (*SubScreen, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.screens[id]
	return s, ok
}

// Lookup returns the registered pane sharing s's identifier.
func (r *Registry) Lookup(s *SubScreen) (*SubScreen, bool) {
	return r.Get(s.ID())
}

// Items returns a snapshot of every registered pane in insertion order.
func (r *Registry) Items() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, Entry{ID: id, Screen: r.screens[id]})
	}
	return entries
}

// Len returns the number of registered panes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.screens)
}

// Clear drops every registered pane.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = make(map[int]*SubScreen)
	r.order = nil
}
