package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/consolewind/internal/renderer/subscreen"
)

// LogLevel represents the severity level of a log message.
type LogLevel int32

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the upper-case level name.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name, ignoring case. "warning" is accepted
// for LogLevelWarn; unknown names parse as LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LogLevelWarn
	}
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i)
		}
	}
	return LogLevelInfo
}

// Logger writes leveled log lines tagged with fields. Loggers derived with
// WithField share the level and output of the logger they came from, so
// SetLevel on any of them applies to the whole family.
type Logger struct {
	sink   *logSink
	prefix string
	fields []logField // sorted by key
}

type logSink struct {
	mu    sync.Mutex
	out   io.Writer
	level atomic.Int32
}

type logField struct {
	key   string
	value any
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level written.
	Level LogLevel
	// Output receives the log lines. Defaults to os.Stderr.
	Output io.Writer
	// Prefix follows the level on every line.
	Prefix string
}

// DefaultLoggerConfig returns the configuration of the session logger.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "consolewind",
	}
}

// NewLogger creates a logger with no fields.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	sink := &logSink{out: cfg.Output}
	sink.level.Store(int32(cfg.Level))
	return &Logger{sink: sink, prefix: cfg.Prefix}
}

// WithField returns a logger that adds key=value to every line. A field
// already present under key is replaced.
func (l *Logger) WithField(key string, value any) *Logger {
	i := sort.Search(len(l.fields), func(i int) bool { return l.fields[i].key >= key })

	fields := make([]logField, 0, len(l.fields)+1)
	fields = append(fields, l.fields[:i]...)
	fields = append(fields, logField{key: key, value: value})
	if i < len(l.fields) && l.fields[i].key == key {
		i++
	}
	fields = append(fields, l.fields[i:]...)

	return &Logger{sink: l.sink, prefix: l.prefix, fields: fields}
}

// WithComponent tags lines with the component that wrote them.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// WithPane tags lines with the identifier of a pane.
func (l *Logger) WithPane(pane *subscreen.SubScreen) *Logger {
	return l.WithField("pane", pane.ID())
}

// SetLevel sets the minimum level written.
func (l *Logger) SetLevel(level LogLevel) {
	l.sink.level.Store(int32(level))
}

// Level returns the minimum level written.
func (l *Logger) Level() LogLevel {
	return LogLevel(l.sink.level.Load())
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(LogLevelError, msg, args) }

// log writes one line:
//
//	2006-01-02T15:04:05.000 [LEVEL] prefix: message key=value ...
func (l *Logger) log(level LogLevel, msg string, args []any) {
	if level < l.Level() {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	for _, f := range l.fields {
		fmt.Fprintf(&b, " %s=%v", f.key, f.value)
	}
	b.WriteByte('\n')

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.out, b.String())
}

// logComponentError logs err against the component that returned it.
func (app *Application) logComponentError(component string, err error) {
	if err != nil {
		app.logger.WithComponent(component).Error("%v", err)
	}
}
