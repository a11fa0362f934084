// Command contour is a terminal emulator front end with a vi-style input
// mode for scrollback navigation, selection, and search.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeroBurner/contour/internal/app"
	"github.com/NeroBurner/contour/internal/config"
	"github.com/NeroBurner/contour/internal/grid"
	"github.com/NeroBurner/contour/internal/renderer/backend"
)

// Build information, set via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, dumpTheme, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("contour %s (commit %s, built %s)\n", version, commit, date)
		return 0
	}

	if dumpTheme != "" {
		if err := config.SaveTheme(dumpTheme, grid.DefaultColorPalette()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote default theme to %s\n", dumpTheme)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.Shutdown()
		os.Exit(0)
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		application.Shutdown()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (opts app.Options, dumpTheme string, showVersion bool) {
	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "path to config file")
	flag.StringVar(&opts.ConfigPath, "c", defaultConfigPath(), "path to config file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flag.StringVar(&dumpTheme, "dump-theme", "", "write the built-in color theme to a file and exit")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&showVersion, "v", false, "print version and exit (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "contour - a terminal emulator with vi-style scrollback navigation\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+V          enter vi normal mode (press i to leave)\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+F          start a search\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Q, Ctrl+C  quit\n")
	}

	flag.Parse()
	return opts, dumpTheme, showVersion
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "contour.toml"
	}
	return dir + "/contour/contour.toml"
}
