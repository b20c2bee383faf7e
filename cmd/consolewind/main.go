// Package main is the entry point for consolewind.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/consolewind/internal/app"
	"github.com/dshills/consolewind/internal/config"
	"github.com/dshills/consolewind/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	if opts.Dump {
		if err := application.Dump(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ConfigFormat, "format", "toml", "Format of configuration read from stdin with -c - (toml, yaml)")
	flag.StringVar(&opts.Title, "title", "", "Console title")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, warning, error)")
	flag.BoolVar(&opts.UseTerminal, "use-terminal", false, "Open a new terminal window to discover the console size")
	flag.StringVar(&opts.ScriptPath, "script", "", "Program to run in the new terminal window")
	flag.BoolVar(&opts.Dump, "dump", false, "Print the console once as text and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "consolewind - double-buffered console panes\n\n")
		fmt.Fprintf(os.Stderr, "Usage: consolewind [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  consolewind                         Show the default pane\n")
		fmt.Fprintf(os.Stderr, "  consolewind -c layout.toml          Show the panes of a layout\n")
		fmt.Fprintf(os.Stderr, "  consolewind -c layout.yaml -dump    Print the composed console\n")
		fmt.Fprintf(os.Stderr, "  consolewind -c - -dump < layout.toml  Read the layout from stdin\n")
		fmt.Fprintf(os.Stderr, "\nKeys: q, Esc or Ctrl-C quit; Ctrl-L redraws.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("consolewind %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if err := checkLogLevel(opts.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	return opts
}

// checkLogLevel accepts an empty level, which keeps the configured one, and
// the names the configuration accepts.
func checkLogLevel(level string) error {
	if level == "" || config.ValidLogLevel(level) {
		return nil
	}
	return fmt.Errorf("invalid log level %q (must be one of %s)", level, strings.Join(config.LogLevels, ", "))
}
