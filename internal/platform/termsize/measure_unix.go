//go:build unix

package termsize

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/dshills/consolewind/internal/renderer/core"
)

// measure reports the size of the terminal attached to stdout, falling back
// to the controlling terminal when stdout is redirected.
func measure() (core.Size, error) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		return core.NewSize(w, h), nil
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: %v", ErrSizeUnknown, err)
	}
	defer tty.Close()

	ws, err := unix.IoctlGetWinsize(int(tty.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: %v", ErrSizeUnknown, err)
	}
	if ws.Col == 0 || ws.Row == 0 {
		return core.Size{}, ErrSizeUnknown
	}
	return core.NewSize(int(ws.Col), int(ws.Row)), nil
}
