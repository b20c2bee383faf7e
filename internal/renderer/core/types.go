// Package core provides the shared geometry types and defaults used by the
// console renderer packages.
package core

import "fmt"

// Defaults applied when configuration does not override them.
const (
	// DefaultFillChar is the character an empty cell holds.
	DefaultFillChar = '-'

	// DefaultAdjustmentThreshold is the largest area (width*height) a back
	// buffer mirrors exactly. Larger surfaces get a clamped back buffer.
	DefaultAdjustmentThreshold = 1000

	// DefaultMaxBackWidth is the clamped back buffer width.
	DefaultMaxBackWidth = 60

	// DefaultMaxBackHeight is the clamped back buffer height.
	DefaultMaxBackHeight = 40

	// DefaultTheme is the theme tag of a new console screen.
	DefaultTheme = "black"
)

// ScreenPos represents a position on screen (0-indexed).
type ScreenPos struct {
	Row int
	Col int
}

// NewScreenPos creates a screen position.
func NewScreenPos(row, col int) ScreenPos {
	return ScreenPos{Row: row, Col: col}
}

// Origin is the top-left position.
var Origin = ScreenPos{}

// EdgePos is the end position that resolves to the bottom-right edge of any
// grid. Used as the default end of a region clear.
var EdgePos = ScreenPos{Row: -1, Col: -1}

// Add returns a new position offset by the given delta.
func (p ScreenPos) Add(dRow, dCol int) ScreenPos {
	return ScreenPos{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Equals returns true if two positions are the same.
func (p ScreenPos) Equals(other ScreenPos) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// String returns the position as "(row, col)".
func (p ScreenPos) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Size is a width/height pair measured in cells.
type Size struct {
	Width  int
	Height int
}

// NewSize creates a size.
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// Area returns width*height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// IsZero returns true if either dimension is zero or negative.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Contains returns true if pos lies within [0,Height) x [0,Width).
func (s Size) Contains(pos ScreenPos) bool {
	return pos.Row >= 0 && pos.Row < s.Height && pos.Col >= 0 && pos.Col < s.Width
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(origin ScreenPos, size Size) ScreenRect {
	return ScreenRect{
		Top:    origin.Row,
		Left:   origin.Col,
		Bottom: origin.Row + size.Height,
		Right:  origin.Col + size.Width,
	}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Intersect returns the overlapping region of two rectangles.
// The result is empty if they do not overlap.
func (r ScreenRect) Intersect(other ScreenRect) ScreenRect {
	out := ScreenRect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if out.IsEmpty() {
		return ScreenRect{}
	}
	return out
}
