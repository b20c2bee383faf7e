//go:build windows

package termsize

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/dshills/consolewind/internal/renderer/core"
)

func platformLauncher() launcher {
	return launchConsole
}

// launchConsole records the console geometry with "mode con" into a
// temporary file, then opens a new console window running the script. The
// temporary file is removed by a background goroutine that is not waited on.
func launchConsole(ctx context.Context, p *Probe, title, scriptPath string, _ core.Size) (core.Size, error) {
	tmp, err := os.CreateTemp("", "consolewind-mode-*.txt")
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: %v", ErrSizeUnknown, err)
	}
	name := tmp.Name()
	defer scheduleRemove(name, p.opts.CleanupDelay, p.opts.Logger)

	mode := exec.CommandContext(ctx, "cmd", "/c", "mode", "con")
	mode.Stdout = tmp
	err = mode.Run()
	tmp.Close()
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: mode con: %v", ErrSizeUnknown, err)
	}

	out, err := os.ReadFile(name)
	if err != nil {
		return core.Size{}, fmt.Errorf("%w: %v", ErrSizeUnknown, err)
	}
	size, err := parseModeCon(string(out))
	if err != nil {
		return core.Size{}, err
	}

	cmd := exec.CommandContext(ctx, "cmd", windowsStartArgs(title, scriptCommand(scriptPath))...)
	cmd.Env = append(os.Environ(), ChildEnv+"=1")
	p.opts.Logger.Debug("launching console: %v", cmd.Args)
	if err := cmd.Run(); err != nil {
		return core.Size{}, fmt.Errorf("launch console: %w", err)
	}
	return size, nil
}

func scheduleRemove(name string, delay time.Duration, log Logger) {
	go func() {
		time.Sleep(delay)
		if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
			log.Warn("removing %s: %v", name, err)
		}
	}()
}
