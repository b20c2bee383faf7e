//go:build !linux && !darwin && !windows

package termsize

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dshills/consolewind/internal/renderer/core"
)

func platformLauncher() launcher {
	return func(context.Context, *Probe, string, string, core.Size) (core.Size, error) {
		return core.Size{}, fmt.Errorf("%w: no terminal launcher for %s", ErrSizeUnknown, runtime.GOOS)
	}
}
