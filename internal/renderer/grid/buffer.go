package grid

import (
	"github.com/dshills/consolewind/internal/renderer/core"
)

// Buffer owns a rectangular grid and the character that marks an empty cell.
// The cached width and height always describe the stored grid.
//
// Buffer is not safe for concurrent use; SubScreen serializes access.
type Buffer struct {
	width, height int
	grid          Grid
	fill          rune
	policy        SizePolicy
}

// New creates a buffer whose dimensions are resolved by policy.
func New(width, height int, fill rune, policy SizePolicy) *Buffer {
	b := &Buffer{
		fill:   fill,
		policy: policy,
	}
	b.allocate(policy.Resolve(max(width, 0), max(height, 0)))
	return b
}

// NewFront creates a buffer sized exactly to width x height.
func NewFront(width, height int, fill rune) *Buffer {
	return New(width, height, fill, ExactSize())
}

// NewBack creates a buffer sized by the given (usually clamped) policy.
func NewBack(width, height int, fill rune, policy SizePolicy) *Buffer {
	return New(width, height, fill, policy)
}

// allocate replaces the grid with a freshly filled one.
func (b *Buffer) allocate(width, height int) {
	b.grid = NewGrid(width, height, b.fill)
	b.width = width
	b.height = height
	if height == 0 {
		b.width = 0
	}
}

// Width returns the number of columns.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() core.Size {
	return core.NewSize(b.width, b.height)
}

// FillChar returns the character used for empty cells.
func (b *Buffer) FillChar() rune {
	return b.fill
}

// Policy returns the sizing policy of the buffer.
func (b *Buffer) Policy() SizePolicy {
	return b.policy
}

func (b *Buffer) check(op string, row, col int) error {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return &BoundsError{
			Op:   op,
			Pos:  core.NewScreenPos(row, col),
			Size: b.Size(),
		}
	}
	return nil
}

// Get returns the character at (row, col).
func (b *Buffer) Get(row, col int) (rune, error) {
	if err := b.check("get", row, col); err != nil {
		return 0, err
	}
	return b.grid[row][col], nil
}

// Set replaces the character at (row, col).
func (b *Buffer) Set(row, col int, ch rune) error {
	if err := b.check("set", row, col); err != nil {
		return err
	}
	b.grid[row][col] = ch
	return nil
}

// Erase resets the cell at (row, col) to the fill character.
func (b *Buffer) Erase(row, col int) error {
	if err := b.check("erase", row, col); err != nil {
		return err
	}
	b.grid[row][col] = b.fill
	return nil
}

// ResolveRegion converts a start/end pair into absolute half-open bounds
// within the buffer. See ResolveRegion.
func (b *Buffer) ResolveRegion(start, end core.ScreenPos) (core.ScreenRect, error) {
	return ResolveRegion(b.Size(), start, end)
}

// ResolveRegion converts a start/end pair into absolute half-open bounds
// within a surface of the given size. Negative end coordinates count back
// from the edge: -1 is the edge itself, -2 one cell before it. The start
// must address a cell of the surface and the resolved end must lie within
// [0, dim].
func ResolveRegion(size core.Size, start, end core.ScreenPos) (core.ScreenRect, error) {
	if start.Row < 0 || start.Row >= size.Height || start.Col < 0 || start.Col >= size.Width {
		return core.ScreenRect{}, &BoundsError{Op: "clear", Pos: start, Size: size}
	}

	endRow, endCol := end.Row, end.Col
	if endRow < 0 {
		endRow += size.Height + 1
	}
	if endCol < 0 {
		endCol += size.Width + 1
	}
	if endRow < 0 || endRow > size.Height || endCol < 0 || endCol > size.Width {
		return core.ScreenRect{}, &BoundsError{Op: "clear", Pos: end, Size: size}
	}

	return core.ScreenRect{
		Top:    start.Row,
		Left:   start.Col,
		Bottom: endRow,
		Right:  endCol,
	}, nil
}

// Clear resets the half-open region [start, end) to the fill character.
// Cells outside the region are untouched. An end before the start clears
// nothing.
func (b *Buffer) Clear(start, end core.ScreenPos) error {
	rect, err := b.ResolveRegion(start, end)
	if err != nil {
		return err
	}
	b.Fill(rect, b.fill)
	return nil
}

// Fill sets every cell of rect to ch. The part of rect outside the buffer
// is ignored.
func (b *Buffer) Fill(rect core.ScreenRect, ch rune) {
	rect = rect.Intersect(b.Bounds())
	for y := rect.Top; y < rect.Bottom; y++ {
		row := b.grid[y]
		for x := rect.Left; x < rect.Right; x++ {
			row[x] = ch
		}
	}
}

// Bounds returns the buffer area as a rectangle anchored at the origin.
func (b *Buffer) Bounds() core.ScreenRect {
	return core.RectFromSize(core.ScreenPos{}, b.Size())
}

// ClearAll resets every cell to the fill character.
func (b *Buffer) ClearAll() {
	for _, row := range b.grid {
		for x := range row {
			row[x] = b.fill
		}
	}
}

// ReplaceGrid installs a copy of g as the buffer content.
// The width and height are recomputed from g. A non-rectangular grid is
// rejected and the previous content is kept.
func (b *Buffer) ReplaceGrid(g Grid) error {
	if err := Validate(g); err != nil {
		return err
	}
	width, height := g.Dimensions()
	b.grid, b.width, b.height = g.Clone(), width, height
	return nil
}

// Grid returns a copy of the buffer content.
func (b *Buffer) Grid() Grid {
	return b.grid.Clone()
}

// Render returns each row as a string. It never mutates the buffer.
func (b *Buffer) Render() []string {
	return b.grid.Lines()
}

// Resize reallocates the grid for a new requested size using the buffer's
// policy, preserving content where the old and new grids overlap.
func (b *Buffer) Resize(width, height int) {
	width, height = b.policy.Resolve(max(width, 0), max(height, 0))
	if width == b.width && height == b.height {
		return
	}

	old := b.grid
	b.allocate(width, height)
	copyRegion(b.grid, old)
}

// CopyFrom overwrites this buffer's cells with src's where the two grids
// overlap. Cells outside the overlap are left as they are.
func (b *Buffer) CopyFrom(src *Buffer) {
	copyRegion(b.grid, src.grid)
}

func copyRegion(dst, src Grid) {
	rows := min(len(dst), len(src))
	for y := 0; y < rows; y++ {
		copy(dst[y], src[y])
	}
}

// Swap exchanges grid ownership between a and b. Dimensions travel with the
// grid; fill characters and sizing policies stay with their buffer.
func Swap(a, b *Buffer) {
	a.grid, b.grid = b.grid, a.grid
	a.width, b.width = b.width, a.width
	a.height, b.height = b.height, a.height
}
