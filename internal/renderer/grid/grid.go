// Package grid provides the rectangular character grid and the buffers that
// own one.
//
// A Buffer exclusively owns a Grid plus a fill character. Front and back
// buffers are the same type and differ only in the SizePolicy applied when
// they are allocated or resized. Swap exchanges grid ownership between two
// buffers without copying cells.
package grid

// Grid is a dense row-major array of single-character cells.
// A valid grid is rectangular: every row has the same length.
type Grid [][]rune

// NewGrid allocates a width x height grid filled with fill.
// Non-positive dimensions yield an empty grid.
func NewGrid(width, height int, fill rune) Grid {
	if width < 0 {
		width = 0
	}
	if height <= 0 {
		return Grid{}
	}

	g := make(Grid, height)
	for y := range g {
		row := make([]rune, width)
		for x := range row {
			row[x] = fill
		}
		g[y] = row
	}
	return g
}

// FromStrings builds a grid with one row per string.
// The result is not validated; pass it through Validate or ReplaceGrid.
func FromStrings(rows ...string) Grid {
	g := make(Grid, len(rows))
	for i, s := range rows {
		g[i] = []rune(s)
	}
	return g
}

// Validate checks that every row has the same length as the first.
// An empty grid is valid.
func Validate(g Grid) error {
	if len(g) == 0 {
		return nil
	}
	want := len(g[0])
	for i := 1; i < len(g); i++ {
		if len(g[i]) != want {
			return &ShapeError{Row: i, Got: len(g[i]), Want: want}
		}
	}
	return nil
}

// Dimensions returns the width and height of a grid.
// The width of a grid with no rows is zero.
func (g Grid) Dimensions() (width, height int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g[0]), len(g)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]rune(nil), row...)
	}
	return out
}

// Lines returns each row as a string.
func (g Grid) Lines() []string {
	lines := make([]string, len(g))
	for i, row := range g {
		lines[i] = string(row)
	}
	return lines
}
