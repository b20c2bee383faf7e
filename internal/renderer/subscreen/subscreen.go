// Package subscreen provides rectangular panes that own a front/back buffer
// pair, and the registry that tracks the live panes of a console.
//
// Mutations always target the back buffer and address the pane in its
// requested geometry. When a mutation completes the pane publishes it: the
// two buffers exchange grids, so the mutated content becomes the front
// buffer in a single step, and the new back buffer is re-seeded from the
// published frame so the next mutation starts from what is on screen.
// Readers only ever see the front buffer.
//
// A clamped back buffer can be smaller than the pane. Edits that fall
// outside it are staged beside the buffer and the publish copies the back
// buffer over the published frame instead of exchanging grids, so the
// published frame always keeps the requested size.
//
// Each pane guards its buffers with its own mutex; panes share no state, so
// no cross-pane locking is needed.
package subscreen

import (
	"fmt"
	"sync"

	"github.com/dshills/consolewind/internal/renderer/core"
	"github.com/dshills/consolewind/internal/renderer/grid"
)

// Options configures the buffers of a new pane.
type Options struct {
	// Fill is the empty-cell character of both buffers.
	Fill rune

	// BackPolicy sizes the back buffer.
	BackPolicy grid.SizePolicy
}

// DefaultOptions returns the default fill character and back buffer policy.
func DefaultOptions() Options {
	return Options{
		Fill:       core.DefaultFillChar,
		BackPolicy: grid.DefaultBackPolicy(),
	}
}

// SubScreen is an independently addressable pane with its own buffer pair.
type SubScreen struct {
	mu     sync.RWMutex
	id     int
	origin core.ScreenPos
	size   core.Size
	front  *grid.Buffer
	back   *grid.Buffer

	// overflow holds the staged edits a clamped back buffer cannot hold.
	overflow []pendingFill
}

// pendingFill is a staged edit that falls outside the back buffer.
type pendingFill struct {
	rect core.ScreenRect
	ch   rune
}

// New creates a pane with the given identifier and requested size.
// The front buffer is sized exactly; the back buffer follows opts.BackPolicy.
func New(id, width, height int, opts Options) *SubScreen {
	front := grid.NewFront(width, height, opts.Fill)
	return &SubScreen{
		id:    id,
		size:  front.Size(),
		front: front,
		back:  grid.NewBack(width, height, opts.Fill, opts.BackPolicy),
	}
}

// ID returns the pane identifier. It never changes.
func (s *SubScreen) ID() int {
	return s.id
}

// Origin returns the top-left position of the pane on the console surface.
func (s *SubScreen) Origin() core.ScreenPos {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin
}

// SetOrigin moves the pane on the console surface.
func (s *SubScreen) SetOrigin(pos core.ScreenPos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.origin = pos
}

// Size returns the dimensions of the published (front) frame.
func (s *SubScreen) Size() core.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.front.Size()
}

// BackSize returns the allocated dimensions of the back buffer. It differs
// from Size when the back buffer is clamped.
func (s *SubScreen) BackSize() core.Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.back.Size()
}

// FillChar returns the empty-cell character.
func (s *SubScreen) FillChar() rune {
	return s.front.FillChar()
}

// WriteText writes text into the back buffer starting at (row, col) and
// publishes it. The column wraps to 0 on the next row when it reaches the
// pane width; characters that would land past the last row are dropped
// silently. Returns the number of characters placed. A negative start
// position fails with grid.ErrOutOfBounds and publishes nothing.
func (s *SubScreen) WriteText(row, col int, text string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row < 0 || col < 0 {
		return 0, &grid.BoundsError{Op: "write", Pos: core.NewScreenPos(row, col), Size: s.size}
	}

	r, c := row, col
	written := 0
	for _, ch := range text {
		if c >= s.size.Width {
			c = 0
			r++
		}
		if r >= s.size.Height {
			break
		}
		s.stage(core.RectFromSize(core.NewScreenPos(r, c), core.NewSize(1, 1)), ch)
		written++
		c++
	}

	s.publish()
	return written, nil
}

// DeleteCharacter resets the cell at (row, col) to the fill character and
// publishes the result.
func (s *SubScreen) DeleteCharacter(row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if row < 0 || row >= s.size.Height || col < 0 || col >= s.size.Width {
		return &grid.BoundsError{Op: "erase", Pos: core.NewScreenPos(row, col), Size: s.size}
	}
	s.stage(core.RectFromSize(core.NewScreenPos(row, col), core.NewSize(1, 1)), s.back.FillChar())
	s.publish()
	return nil
}

// Clear resets the whole pane and publishes it.
func (s *SubScreen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stage(core.RectFromSize(core.Origin, s.size), s.back.FillChar())
	s.publish()
}

// ClearRegion resets the half-open region [start, end) of the pane and
// publishes it. Negative end coordinates count back from the edge.
func (s *SubScreen) ClearRegion(start, end core.ScreenPos) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rect, err := grid.ResolveRegion(s.size, start, end)
	if err != nil {
		return err
	}
	s.stage(rect, s.back.FillChar())
	s.publish()
	return nil
}

// Swap exchanges the front and back grids without re-seeding.
// Swapping twice restores the original state.
func (s *SubScreen) Swap() {
	s.mu.Lock()
	defer s.mu.Unlock()
	grid.Swap(s.front, s.back)
}

// stage applies an edit to the back buffer and keeps the edit aside when
// part of it lies outside the back buffer. Caller must hold s.mu.
func (s *SubScreen) stage(rect core.ScreenRect, ch rune) {
	if rect.IsEmpty() {
		return
	}
	s.back.Fill(rect, ch)
	if rect.Intersect(s.back.Bounds()) != rect {
		s.overflow = append(s.overflow, pendingFill{rect: rect, ch: ch})
	}
}

// publish makes the staged content visible and re-seeds the back buffer
// from the published frame. When both buffers have the pane size the grids
// are exchanged; otherwise the back buffer and the overflow edits are copied
// over a frame of the pane size. Either way the re-seed copies the frame,
// so a publish costs O(width*height). Caller must hold s.mu.
func (s *SubScreen) publish() {
	if s.front.Size() == s.size && s.back.Size() == s.size {
		grid.Swap(s.front, s.back)
		s.back.CopyFrom(s.front)
		return
	}

	s.front.Resize(s.size.Width, s.size.Height)
	s.front.CopyFrom(s.back)
	for _, f := range s.overflow {
		s.front.Fill(f.rect, f.ch)
	}
	s.overflow = s.overflow[:0]

	s.back.Resize(s.size.Width, s.size.Height)
	s.back.ClearAll()
	s.back.CopyFrom(s.front)
}

// Resize changes the requested size of both buffers. The back buffer
// re-applies its sizing policy. Content in the overlap is kept.
func (s *SubScreen) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.front.Resize(width, height)
	s.back.Resize(width, height)
	s.back.ClearAll()
	s.back.CopyFrom(s.front)
	s.size = s.front.Size()
}

// Render returns the published frame, one string per row.
func (s *SubScreen) Render() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.front.Render()
}

// Frame returns a copy of the published grid.
func (s *SubScreen) Frame() grid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.front.Grid()
}

// Cell returns the published character at (row, col).
func (s *SubScreen) Cell(row, col int) (rune, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.front.Get(row, col)
}

// PendingCell returns the character at (row, col) of the back buffer.
func (s *SubScreen) PendingCell(row, col int) (rune, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.back.Get(row, col)
}

// String describes the pane and its buffer dimensions.
func (s *SubScreen) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("pane %d at %v: front %v, back %v", s.id, s.origin, s.front.Size(), s.back.Size())
}
