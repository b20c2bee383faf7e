package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/consolewind/internal/renderer/subscreen"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogLevelDebug},
		{"Info", LogLevelInfo},
		{"WARN", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"verbose", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogLevelString(t *testing.T) {
	if LogLevelWarn.String() != "WARN" {
		t.Errorf("LogLevelWarn.String() = %q", LogLevelWarn.String())
	}
	if LogLevel(-1).String() != "UNKNOWN" || LogLevel(9).String() != "UNKNOWN" {
		t.Error("out of range levels should be UNKNOWN")
	}
}

func newBufferLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(LoggerConfig{Level: level, Output: &buf, Prefix: "consolewind"}), &buf
}

func TestLoggerLine(t *testing.T) {
	log, buf := newBufferLogger(LogLevelInfo)

	log.WithComponent("termsize").Warn("size %dx%d", 80, 24)

	line := buf.String()
	if !strings.Contains(line, " [WARN] consolewind: size 80x24 component=termsize\n") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestLoggerFilters(t *testing.T) {
	log, buf := newBufferLogger(LogLevelWarn)

	log.Debug("d")
	log.Info("i")
	log.Warn("w")
	log.Error("e")

	out := buf.String()
	if strings.Contains(out, "[DEBUG]") || strings.Contains(out, "[INFO]") {
		t.Errorf("levels below WARN should be dropped: %q", out)
	}
	if !strings.Contains(out, "[WARN]") || !strings.Contains(out, "[ERROR]") {
		t.Errorf("WARN and ERROR should be written: %q", out)
	}
}

func TestLoggerFieldsSortedAndReplaced(t *testing.T) {
	log, buf := newBufferLogger(LogLevelInfo)

	log.WithField("session", "abc").
		WithComponent("app").
		WithField("pane", 2).
		WithComponent("watcher").
		Info("ready")

	if !strings.HasSuffix(buf.String(), "ready component=watcher pane=2 session=abc\n") {
		t.Errorf("fields not sorted or not replaced: %q", buf.String())
	}
}

func TestLoggerDerivedSharesLevel(t *testing.T) {
	root, buf := newBufferLogger(LogLevelError)
	child := root.WithComponent("watcher")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output at ERROR level, got %q", buf.String())
	}

	root.SetLevel(LogLevelDebug)
	child.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("level change should reach derived loggers, got %q", buf.String())
	}
	if child.Level() != LogLevelDebug {
		t.Errorf("child.Level() = %v", child.Level())
	}
}

func TestLoggerWithPane(t *testing.T) {
	log, buf := newBufferLogger(LogLevelInfo)
	pane := subscreen.New(7, 4, 2, subscreen.DefaultOptions())

	log.WithPane(pane).Info("created")

	if !strings.Contains(buf.String(), "created pane=7") {
		t.Errorf("expected pane field, got %q", buf.String())
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo || cfg.Output == nil || cfg.Prefix != "consolewind" {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
	if NewLogger(LoggerConfig{}).sink.out == nil {
		t.Error("a nil output should default to stderr")
	}
}
