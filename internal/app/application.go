package app

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/NeroBurner/contour/internal/config"
	"github.com/NeroBurner/contour/internal/grid"
	"github.com/NeroBurner/contour/internal/input/key"
	"github.com/NeroBurner/contour/internal/input/vi"
	"github.com/NeroBurner/contour/internal/renderer"
	"github.com/NeroBurner/contour/internal/renderer/backend"
)

// ErrQuit signals a normal, user-requested exit from the event loop.
var ErrQuit = errors.New("quit")

// Options carries the command-line settings.
type Options struct {
	// ConfigPath is the TOML settings file; empty uses the defaults.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string
}

// Application owns the event loop: it feeds terminal input to the session
// and paints one frame per change.
type Application struct {
	logger   *Logger
	settings config.Settings
	session  *Session

	builder *renderer.Builder
	buffer  renderer.RenderBuffer
	painter *backend.Painter

	logFile      *os.File
	shutdownOnce sync.Once
}

// New creates the application from its command-line options: settings,
// theme, logger, and an empty session.
func New(opts Options) (*Application, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		settings.Logging.Level = opts.LogLevel
	}

	a := &Application{
		settings: settings,
		builder:  renderer.NewBuilder(),
	}

	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(settings.Logging.Level)
	if settings.Logging.File != "" {
		f, err := os.OpenFile(settings.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		logCfg.Output = f
	}
	a.logger = NewLogger(logCfg)

	palette := grid.DefaultColorPalette()
	if settings.Colors.Theme != "" {
		palette, err = config.LoadTheme(settings.Colors.Theme)
		if err != nil {
			a.close()
			return nil, err
		}
	}

	page := grid.PageSize{Lines: settings.Terminal.Lines, Columns: settings.Terminal.Columns}
	a.session = NewSession("", page, palette, a.logger)
	a.session.SetCursorShape(settings.CursorShape())

	return a, nil
}

// Session returns the application's terminal session.
func (a *Application) Session() *Session {
	return a.session
}

// SetBackend attaches and initializes the display backend.
func (a *Application) SetBackend(b backend.Backend) error {
	a.painter = backend.NewPainter(b)
	if err := a.painter.Init(); err != nil {
		return err
	}

	width, height := b.Size()
	a.session.Resize(grid.PageSize{Lines: height, Columns: width})
	return nil
}

// Run drives the event loop until the user quits or the backend fails.
func (a *Application) Run() error {
	if a.painter == nil {
		return errors.New("no backend attached")
	}

	a.logger.Info("starting, page %dx%d",
		a.session.PageSize().Columns, a.session.PageSize().Lines)
	a.render()

	for {
		ev := a.painter.Backend().PollEvent()
		if err := a.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				a.logger.Info("quit requested")
			}
			return err
		}
		a.render()
	}
}

func (a *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return a.handleKey(ev.Key)
	case backend.EventResize:
		a.session.Resize(grid.PageSize{Lines: ev.Height, Columns: ev.Width})
		a.painter.MarkFullRedraw()
	case backend.EventFocus:
		a.session.SetFocused(ev.Focused)
	}
	return nil
}

func (a *Application) handleKey(ev key.Event) error {
	if ev.IsRune() && ev.Modifiers.HasCtrl() {
		switch ev.Rune {
		case 'Q', 'C':
			return ErrQuit
		case 'F':
			a.session.Handler().StartSearchExternally()
			return nil
		case 'V':
			// In insert mode Ctrl+V enters vi normal mode; everywhere else
			// the handler interprets it itself (visual block).
			if a.session.Handler().Mode() == vi.ModeInsert {
				a.session.Handler().SetMode(vi.ModeNormal)
				return nil
			}
		}
	}

	a.session.HandleKey(ev)
	return nil
}

// render builds and paints one frame.
func (a *Application) render() {
	a.session.AdvanceFrame()
	a.builder.Build(a.session, &a.buffer, renderer.BuildOptions{
		HighlightSearchMatches: a.settings.Search.Highlight,
	})
	a.painter.Draw(&a.buffer)
}

// Shutdown restores the terminal. Safe to call more than once.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		if a.painter != nil {
			a.painter.Shutdown()
		}
		a.close()
	})
}

func (a *Application) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}
