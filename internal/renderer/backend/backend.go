// Package backend provides the display sinks that console frames are
// presented on, and the presenter that composes panes onto a sink.
package backend

import "sync"

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Key represents a keyboard key.
type Key int

// Key constants for the keys the console reacts to.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyCtrlC
	KeyCtrlL
	KeyOther
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Resize event fields
	Width, Height int
}

// Backend defines the interface for display sinks.
// Implementations handle actual drawing to the terminal or other surfaces.
type Backend interface {
	// Init prepares the backend for drawing.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current display dimensions.
	Size() (width, height int)

	// SetTitle sets the window title where supported.
	SetTitle(title string)

	// SetTheme selects the colors used for subsequent cells.
	SetTheme(theme string)

	// SetCell sets a single cell at the given position.
	// Positions outside the display are silently ignored.
	SetCell(x, y int, r rune)

	// Clear clears the entire display.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]rune
	title         string
	theme         string
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorChanges int
	shows         int
	setCalls      int
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]rune, b.height)
	for i := range b.cells {
		b.cells[i] = make([]rune, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = ' '
		}
	}
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
}

func (b *NullBackend) SetTheme(theme string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.theme = theme
}

func (b *NullBackend) SetCell(x, y int, r rune) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCalls++
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = r
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = ' '
		}
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
	b.cursorChanges++
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
	b.cursorChanges++
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// Lines returns the displayed content, one string per row.
func (b *NullBackend) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := make([]string, len(b.cells))
	for i, row := range b.cells {
		lines[i] = string(row)
	}
	return lines
}

// Title returns the last title set.
func (b *NullBackend) Title() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.title
}

// Theme returns the last theme set.
func (b *NullBackend) Theme() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.theme
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorChanges returns how many show/hide calls were made.
func (b *NullBackend) CursorChanges() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorChanges
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

// SetCellCount returns how many SetCell calls were made.
func (b *NullBackend) SetCellCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.setCalls
}

// Resize simulates a display resize and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
