package grid

import (
	"errors"
	"fmt"

	"github.com/dshills/consolewind/internal/renderer/core"
)

// Errors returned by grid operations.
var (
	// ErrOutOfBounds indicates a row, column or region outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrInvalidShape indicates a replacement grid that is not rectangular.
	ErrInvalidShape = errors.New("grid is not rectangular")
)

// BoundsError describes a rejected coordinate.
type BoundsError struct {
	// Op is the operation that rejected the position.
	Op string
	// Pos is the offending position as the caller supplied it.
	Pos core.ScreenPos
	// Size is the grid size at the time of the check.
	Size core.Size
}

// Error implements the error interface.
func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: position %v outside %v grid", e.Op, e.Pos, e.Size)
}

// Is implements error matching for BoundsError.
func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// ShapeError describes the first row of a grid whose length differs from
// the first row.
type ShapeError struct {
	Row  int
	Got  int
	Want int
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d has %d cells, expected %d", e.Row, e.Got, e.Want)
}

// Is implements error matching for ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidShape
}
