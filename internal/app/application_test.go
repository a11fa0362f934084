package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/NeroBurner/contour/internal/grid"
	"github.com/NeroBurner/contour/internal/input/key"
	"github.com/NeroBurner/contour/internal/input/vi"
	"github.com/NeroBurner/contour/internal/renderer/backend"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contour.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestApplication(t *testing.T, config string) *Application {
	t.Helper()
	a, err := New(Options{ConfigPath: writeConfig(t, config), LogLevel: "error"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(a.Shutdown)
	return a
}

func TestNewMissingConfigUsesDefaults(t *testing.T) {
	a, err := New(Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
		LogLevel:   "error",
	})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Shutdown()

	page := a.Session().PageSize()
	if page.Columns != 80 || page.Lines != 24 {
		t.Errorf("page = %+v, expected 80x24", page)
	}
}

func TestNewAppliesConfig(t *testing.T) {
	a := newTestApplication(t, `
[terminal]
columns = 50
lines = 10
`)

	page := a.Session().PageSize()
	if page.Columns != 50 || page.Lines != 10 {
		t.Errorf("page = %+v, expected 50x10", page)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Options{ConfigPath: writeConfig(t, "[terminal\n")})
	if err == nil {
		t.Fatal("expected error for broken config")
	}
}

func TestNewLoadsTheme(t *testing.T) {
	dir := t.TempDir()
	themePath := filepath.Join(dir, "theme.json")
	if err := os.WriteFile(themePath, []byte(`{"colors": {"foreground": "#AABBCC"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	a := newTestApplication(t, "[colors]\ntheme = "+quoteTOML(themePath)+"\n")

	if got := a.Session().ColorPalette().DefaultForeground; got != grid.RGB(0xAA, 0xBB, 0xCC) {
		t.Errorf("foreground = %v, expected theme color", got)
	}
}

func quoteTOML(s string) string {
	return "'" + s + "'"
}

func TestApplicationQuitKey(t *testing.T) {
	a := newTestApplication(t, "")
	null := backend.NewNullBackend(20, 5)
	if err := a.SetBackend(null); err != nil {
		t.Fatal(err)
	}

	null.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('Q', key.ModCtrl)})
	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Errorf("Run() = %v, expected quit", err)
	}
}

func TestApplicationRendersTypedInput(t *testing.T) {
	a := newTestApplication(t, "")
	null := backend.NewNullBackend(20, 5)
	if err := a.SetBackend(null); err != nil {
		t.Fatal(err)
	}

	null.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('h', key.ModNone)})
	null.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('i', key.ModNone)})
	null.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('C', key.ModCtrl)})
	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, expected quit", err)
	}

	if got := null.CellAt(0, 0).Text; got != "h" {
		t.Errorf("cell (0,0) = %q, expected h", got)
	}
	if got := null.CellAt(1, 0).Text; got != "i" {
		t.Errorf("cell (1,0) = %q, expected i", got)
	}
	x, y, visible := null.CursorPosition()
	if !visible || x != 2 || y != 0 {
		t.Errorf("cursor = (%d,%d) visible=%v, expected (2,0) visible", x, y, visible)
	}
}

func TestApplicationResizeEvent(t *testing.T) {
	a := newTestApplication(t, "")
	null := backend.NewNullBackend(20, 5)
	if err := a.SetBackend(null); err != nil {
		t.Fatal(err)
	}

	null.PostEvent(backend.Event{Type: backend.EventResize, Width: 30, Height: 8})
	null.PostEvent(backend.Event{Type: backend.EventKey, Key: key.NewRuneEvent('Q', key.ModCtrl)})
	if err := a.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, expected quit", err)
	}

	page := a.Session().PageSize()
	if page.Columns != 30 || page.Lines != 8 {
		t.Errorf("page = %+v, expected 30x8", page)
	}
}

func TestApplicationViModeBindings(t *testing.T) {
	a := newTestApplication(t, "")
	null := backend.NewNullBackend(20, 5)
	if err := a.SetBackend(null); err != nil {
		t.Fatal(err)
	}
	handler := a.Session().Handler()

	ctrlV := key.NewRuneEvent('V', key.ModCtrl)
	if err := a.handleKey(ctrlV); err != nil {
		t.Fatal(err)
	}
	if got := handler.Mode(); got != vi.ModeNormal {
		t.Fatalf("mode after Ctrl+V = %v, expected normal", got)
	}

	// In normal mode the handler itself owns Ctrl+V: visual block.
	if err := a.handleKey(ctrlV); err != nil {
		t.Fatal(err)
	}
	if got := handler.Mode(); got != vi.ModeVisualBlock {
		t.Errorf("mode after second Ctrl+V = %v, expected visual block", got)
	}
}

func TestApplicationSearchBinding(t *testing.T) {
	a := newTestApplication(t, "")
	null := backend.NewNullBackend(20, 5)
	if err := a.SetBackend(null); err != nil {
		t.Fatal(err)
	}

	// Ctrl+F from insert mode opens the search editor, which requires
	// switching to normal mode to display the prompt.
	if err := a.handleKey(key.NewRuneEvent('F', key.ModCtrl)); err != nil {
		t.Fatal(err)
	}
	if got := a.Session().Handler().Mode(); got != vi.ModeNormal {
		t.Errorf("mode after Ctrl+F = %v, expected normal", got)
	}
}
