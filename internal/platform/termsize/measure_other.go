//go:build !unix

package termsize

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dshills/consolewind/internal/renderer/core"
)

func measure() (core.Size, error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: %v", ErrSizeUnknown, err)
	}
	if w <= 0 || h <= 0 {
		return core.Size{}, ErrSizeUnknown
	}
	return core.NewSize(w, h), nil
}
