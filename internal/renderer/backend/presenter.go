package backend

import (
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/consolewind/internal/renderer/console"
	"github.com/dshills/consolewind/internal/renderer/core"
	"github.com/dshills/consolewind/internal/renderer/grid"
)

const (
	// Blank fills console cells that no pane covers.
	Blank = ' '

	// Placeholder replaces characters that do not occupy exactly one
	// terminal column.
	Placeholder = '?'
)

// Compose flattens the published frames of every pane onto a grid the size
// of the console. Panes are drawn in registry order at their origin and
// clipped to the console bounds; later panes overwrite earlier ones.
func Compose(screen *console.Screen) grid.Grid {
	size := screen.Size()
	canvas := grid.NewGrid(size.Width, size.Height, Blank)
	bounds := core.RectFromSize(core.Origin, size)

	for _, e := range screen.SubScreens().Items() {
		frame := e.Screen.Frame()
		origin := e.Screen.Origin()
		fw, fh := frame.Dimensions()

		visible := bounds.Intersect(core.RectFromSize(origin, core.NewSize(fw, fh)))
		for y := visible.Top; y < visible.Bottom; y++ {
			src := frame[y-origin.Row]
			for x := visible.Left; x < visible.Right; x++ {
				canvas[y][x] = Sanitize(src[x-origin.Col])
			}
		}
	}
	return canvas
}

// ComposeLines returns the composed console as one string per row.
func ComposeLines(screen *console.Screen) []string {
	return Compose(screen).Lines()
}

// Sanitize returns r if it occupies exactly one terminal column and
// Placeholder otherwise.
func Sanitize(r rune) rune {
	if runewidth.RuneWidth(r) != 1 {
		return Placeholder
	}
	return r
}

// Presenter draws console screens onto a backend, sending only the cells,
// title, theme and cursor state that changed since the previous frame.
type Presenter struct {
	mu      sync.Mutex
	backend Backend

	last       grid.Grid
	title      string
	theme      string
	cursorPos  core.ScreenPos
	cursorShow bool
	primed     bool
}

// NewPresenter creates a presenter for backend.
func NewPresenter(b Backend) *Presenter {
	return &Presenter{backend: b}
}

// Invalidate forces the next Present to redraw everything.
func (p *Presenter) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.primed = false
	p.last = nil
}

// Present composes screen and flushes the difference to the backend.
// Returns the number of cells sent.
func (p *Presenter) Present(screen *console.Screen) int {
	frame := Compose(screen)

	p.mu.Lock()
	defer p.mu.Unlock()

	if title := screen.Title(); !p.primed || title != p.title {
		p.backend.SetTitle(title)
		p.title = title
	}

	fullRedraw := !p.primed || !sameShape(frame, p.last)
	if theme := screen.Theme(); !p.primed || theme != p.theme {
		p.backend.SetTheme(theme)
		p.theme = theme
		fullRedraw = true
	}

	if fullRedraw {
		p.backend.Clear()
	}

	sent := 0
	for y, row := range frame {
		for x, r := range row {
			if fullRedraw || p.last[y][x] != r {
				p.backend.SetCell(x, y, r)
				sent++
			}
		}
	}

	p.presentCursor(screen)
	p.backend.Show()

	p.last = frame
	p.primed = true
	return sent
}

// presentCursor emits cursor sequences only on change. Caller holds p.mu.
func (p *Presenter) presentCursor(screen *console.Screen) {
	pos, visible := screen.Cursor().State()
	switch {
	case visible && (!p.primed || !p.cursorShow || pos != p.cursorPos):
		p.backend.ShowCursor(pos.Col, pos.Row)
	case !visible && (!p.primed || p.cursorShow):
		p.backend.HideCursor()
	}
	p.cursorPos = pos
	p.cursorShow = visible
}

func sameShape(a, b grid.Grid) bool {
	aw, ah := a.Dimensions()
	bw, bh := b.Dimensions()
	return aw == bw && ah == bh
}
