//go:build linux

package termsize

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/dshills/consolewind/internal/renderer/core"
)

func platformLauncher() launcher {
	return launchGnomeTerminal
}

// launchGnomeTerminal opens a gnome-terminal window with the requested
// geometry. The window is sized by the request, so the request is reported.
func launchGnomeTerminal(ctx context.Context, p *Probe, title, scriptPath string, want core.Size) (core.Size, error) {
	bin, err := exec.LookPath("gnome-terminal")
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: %v", ErrSizeUnknown, err)
	}

	cmd := exec.CommandContext(ctx, bin, gnomeTerminalArgs(title, scriptCommand(scriptPath), want)...)
	cmd.Env = append(os.Environ(), ChildEnv+"=1")
	p.opts.Logger.Debug("launching terminal: %v", cmd.Args)
	if err := cmd.Run(); err != nil {
		return core.Size{}, fmt.Errorf("launch gnome-terminal: %w", err)
	}
	return want, nil
}
