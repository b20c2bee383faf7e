package termsize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/consolewind/internal/renderer/core"
)

// gnomeTerminalArgs builds the gnome-terminal invocation that opens a window
// of the requested geometry running script.
func gnomeTerminalArgs(title, script string, size core.Size) []string {
	args := []string{
		fmt.Sprintf("--geometry=%dx%d", size.Width, size.Height),
		"--title=" + title,
	}
	if script != "" {
		args = append(args, "--", script)
	}
	return args
}

// osascriptArgs builds the osascript invocation that opens a Terminal.app
// window running script with a custom title.
func osascriptArgs(title, script string) []string {
	lines := []string{
		`tell application "Terminal"`,
		fmt.Sprintf(`set w to do script %s`, appleQuote(script)),
		fmt.Sprintf(`set custom title of w to %s`, appleQuote(title)),
		`end tell`,
	}
	args := make([]string, 0, len(lines)*2)
	for _, l := range lines {
		args = append(args, "-e", l)
	}
	return args
}

func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// windowsStartArgs builds the cmd invocation that opens a console window
// titled title running script.
func windowsStartArgs(title, script string) []string {
	args := []string{"/c", "start", title, "cmd", "/k"}
	if script != "" {
		args = append(args, script)
	}
	return args
}

var modeConField = regexp.MustCompile(`(?im)^\s*(lines|columns)\s*:\s*(\d+)`)

// parseModeCon extracts the console geometry from the output of the
// Windows "mode con" command.
func parseModeCon(out string) (core.Size, error) {
	var size core.Size
	for _, m := range modeConField.FindAllStringSubmatch(out, -1) {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		switch strings.ToLower(m[1]) {
		case "lines":
			size.Height = n
		case "columns":
			size.Width = n
		}
	}
	if size.Width <= 0 || size.Height <= 0 {
		return core.Size{}, fmt.Errorf("%w: unrecognized mode output", ErrSizeUnknown)
	}
	return size, nil
}
