//go:build darwin

package termsize

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/dshills/consolewind/internal/renderer/core"
)

func platformLauncher() launcher {
	return launchTerminalApp
}

// launchTerminalApp opens a Terminal.app window through osascript. The
// window uses the profile geometry, which cannot be read back, so the size
// is reported unknown once the window is open.
func launchTerminalApp(ctx context.Context, p *Probe, title, scriptPath string, _ core.Size) (core.Size, error) {
	script := scriptCommand(scriptPath)
	if script != "" {
		script = ChildEnv + "=1 " + script
	}
	cmd := exec.CommandContext(ctx, "osascript", osascriptArgs(title, script)...)
	p.opts.Logger.Debug("launching terminal: %v", cmd.Args)
	if err := cmd.Run(); err != nil {
		return core.Size{}, fmt.Errorf("launch Terminal.app: %w", err)
	}
	return core.Size{}, ErrSizeUnknown
}
