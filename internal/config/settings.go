// Package config loads the terminal's configuration: TOML settings and
// JSON color themes.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/NeroBurner/contour/internal/renderer"
)

// Settings is the top-level configuration. Missing keys keep their defaults.
type Settings struct {
	Terminal TerminalSettings `toml:"terminal"`
	Logging  LoggingSettings  `toml:"logging"`
	Cursor   CursorSettings   `toml:"cursor"`
	Colors   ColorSettings    `toml:"colors"`
	Search   SearchSettings   `toml:"search"`
}

// TerminalSettings configures the page geometry.
type TerminalSettings struct {
	// Columns and Lines are the initial page size; the terminal's own size
	// takes precedence once known.
	Columns int `toml:"columns"`
	Lines   int `toml:"lines"`
}

// LoggingSettings configures diagnostics output.
type LoggingSettings struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `toml:"level"`

	// File is the log destination; empty logs to stderr.
	File string `toml:"file"`
}

// CursorSettings configures the cursor appearance.
type CursorSettings struct {
	// Shape is one of block, underscore, or bar.
	Shape string `toml:"shape"`
}

// ColorSettings configures the color theme.
type ColorSettings struct {
	// Theme is the path to a JSON theme file; empty uses the built-in
	// palette.
	Theme string `toml:"theme"`
}

// SearchSettings configures search behavior.
type SearchSettings struct {
	// Highlight recolors all visible matches of the active search pattern.
	Highlight bool `toml:"highlight"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Terminal: TerminalSettings{Columns: 80, Lines: 24},
		Logging:  LoggingSettings{Level: "info"},
		Cursor:   CursorSettings{Shape: "block"},
		Search:   SearchSettings{Highlight: true},
	}
}

// ParseError describes a configuration file that could not be parsed.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads settings from a TOML file, applying them over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	if err := settings.Validate(); err != nil {
		return Default(), err
	}
	return settings, nil
}

// Validate checks value ranges and enumerations.
func (s Settings) Validate() error {
	if s.Terminal.Columns < 1 || s.Terminal.Lines < 1 {
		return fmt.Errorf("terminal size %dx%d out of range", s.Terminal.Columns, s.Terminal.Lines)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", s.Logging.Level)
	}
	switch s.Cursor.Shape {
	case "block", "underscore", "bar":
	default:
		return fmt.Errorf("unknown cursor shape %q", s.Cursor.Shape)
	}
	return nil
}

// CursorShape returns the configured cursor shape.
func (s Settings) CursorShape() renderer.CursorShape {
	switch s.Cursor.Shape {
	case "underscore":
		return renderer.CursorShapeUnderscore
	case "bar":
		return renderer.CursorShapeBar
	default:
		return renderer.CursorShapeBlock
	}
}
