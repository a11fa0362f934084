package app

import (
	"testing"
	"unicode"

	"github.com/NeroBurner/contour/internal/grid"
	"github.com/NeroBurner/contour/internal/input/key"
	"github.com/NeroBurner/contour/internal/input/vi"
)

func newTestSession(t *testing.T, text string, columns, lines int) *Session {
	t.Helper()
	page := grid.PageSize{Lines: lines, Columns: columns}
	return NewSession(text, page, grid.DefaultColorPalette(), NullLogger)
}

// sendChars drives the vi handler directly, with the Shift modifier set for
// uppercase characters the way a real keyboard would report them.
func sendChars(t *testing.T, s *Session, chars string) {
	t.Helper()
	for _, ch := range chars {
		mods := key.ModNone
		if unicode.IsUpper(ch) {
			mods = key.ModShift
		}
		s.HandleKey(key.NewRuneEvent(ch, mods))
	}
}

func enterNormalMode(t *testing.T, s *Session) {
	t.Helper()
	s.Handler().SetMode(vi.ModeNormal)
}

func wantCursor(t *testing.T, s *Session, line, column int) {
	t.Helper()
	got := s.ViCursorPosition()
	if got.Line != line || got.Column != column {
		t.Errorf("vi cursor = (%d, %d), expected (%d, %d)",
			got.Line, got.Column, line, column)
	}
}

func TestSessionMotions(t *testing.T) {
	const text = "foo bar(baz)\n" +
		"second line\n" +
		"\n" +
		"next paragraph here"

	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"char right", "ll", 0, 2},
		{"char right count", "3l", 0, 3},
		{"line down", "j", 1, 0},
		{"line down clamps column", "11lj", 1, 10},
		{"word forward", "w", 0, 4},
		{"word forward count", "2w", 0, 8},
		{"word forward crosses line", "3w", 1, 0},
		{"word end", "e", 0, 2},
		{"word backward", "wb", 0, 0},
		{"line end", "$", 0, 11},
		{"line begin after end", "$0", 0, 0},
		{"text begin", "j$^", 1, 0},
		{"file end", "G", 3, 0},
		{"file begin", "Gg", 0, 0},
		{"paragraph forward", "}", 2, 0},
		{"paragraph backward", "G{", 2, 0},
		{"screen column", "5|", 0, 4},
		{"matching parenthesis", "7l%", 0, 11},
		{"matching parenthesis back", "7l%%", 0, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, text, 40, 4)
			enterNormalMode(t, s)
			sendChars(t, s, tt.input)
			wantCursor(t, s, tt.line, tt.column)
		})
	}
}

func TestSessionTextBeginSkipsIndent(t *testing.T) {
	s := newTestSession(t, "    indented", 40, 2)
	enterNormalMode(t, s)
	sendChars(t, s, "^")
	wantCursor(t, s, 0, 4)
}

func TestSessionCursorClamping(t *testing.T) {
	s := newTestSession(t, "ab\ncd", 40, 2)
	enterNormalMode(t, s)

	sendChars(t, s, "hk")
	wantCursor(t, s, 0, 0)

	sendChars(t, s, "9l9j")
	wantCursor(t, s, 1, 1)
}

func TestSessionScrolling(t *testing.T) {
	const text = "l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7"
	s := newTestSession(t, text, 10, 4)
	enterNormalMode(t, s)

	// Page of 4 over 8 lines: viewport starts at the bottom.
	if got := s.topLine(); got != 4 {
		t.Fatalf("topLine = %d, expected 4", got)
	}

	// K scrolls one line back into the scrollback, J back toward the bottom.
	// Both also move the cursor one line.
	sendChars(t, s, "G")
	sendChars(t, s, "K")
	if got := s.topLine(); got != 3 {
		t.Errorf("topLine after K = %d, expected 3", got)
	}
	sendChars(t, s, "J")
	if got := s.topLine(); got != 4 {
		t.Errorf("topLine after J = %d, expected 4", got)
	}

	// J at the bottom stays at the bottom.
	sendChars(t, s, "J")
	if got := s.topLine(); got != 4 {
		t.Errorf("topLine after J at bottom = %d, expected 4", got)
	}
}

func TestSessionPageMotions(t *testing.T) {
	const text = "l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7"
	s := newTestSession(t, text, 10, 4)
	enterNormalMode(t, s)

	sendChars(t, s, "G")
	wantCursor(t, s, 7, 0)

	sendChars(t, s, "H")
	wantCursor(t, s, 4, 0)

	sendChars(t, s, "L")
	wantCursor(t, s, 7, 0)

	s.Handler().SendChar('U', key.ModCtrl)
	wantCursor(t, s, 3, 0)

	s.Handler().SendChar('D', key.ModCtrl)
	wantCursor(t, s, 7, 0)
}

func TestSessionMotionRevealsCursor(t *testing.T) {
	const text = "l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7"
	s := newTestSession(t, text, 10, 4)
	enterNormalMode(t, s)

	sendChars(t, s, "Gg")
	wantCursor(t, s, 0, 0)
	if got := s.topLine(); got != 0 {
		t.Errorf("topLine after g = %d, expected 0", got)
	}

	sendChars(t, s, "G")
	if got := s.topLine(); got != 4 {
		t.Errorf("topLine after G = %d, expected 4", got)
	}
}

func TestSessionInsertEcho(t *testing.T) {
	s := newTestSession(t, "", 40, 4)

	sendChars(t, s, "hi")
	s.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	sendChars(t, s, "x")

	if got := s.lineText(0); got != "hi" {
		t.Errorf("line 0 = %q, expected %q", got, "hi")
	}
	if got := s.lineText(1); got != "x" {
		t.Errorf("line 1 = %q, expected %q", got, "x")
	}

	s.HandleKey(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	if got := s.lineText(1); got != "" {
		t.Errorf("line 1 after backspace = %q, expected empty", got)
	}
}

func TestSessionModeRouting(t *testing.T) {
	s := newTestSession(t, "abc", 40, 2)

	// Insert mode: characters echo into the grid.
	sendChars(t, s, "z")
	if got := s.lineText(0); got != "zabc" {
		t.Fatalf("line = %q, expected %q", got, "zabc")
	}

	// Normal mode: characters are commands, not text. The vi cursor starts
	// at the VT cursor, which sits after the typed character.
	enterNormalMode(t, s)
	sendChars(t, s, "l")
	if got := s.lineText(0); got != "zabc" {
		t.Errorf("line = %q, normal-mode key must not echo", got)
	}
	wantCursor(t, s, 0, 2)

	// The i command returns to insert mode.
	sendChars(t, s, "i")
	if got := s.Handler().Mode(); got != vi.ModeInsert {
		t.Errorf("mode = %v, expected insert", got)
	}
}

func TestSessionWideCharacterCells(t *testing.T) {
	s := newTestSession(t, "a漢b", 40, 2)

	if got := s.lineWidth(0); got != 4 {
		t.Fatalf("line width = %d, expected 4", got)
	}
	if got := s.CellWidthAt(grid.CellLocation{Line: 0, Column: 1}); got != 2 {
		t.Errorf("cell width = %d, expected 2", got)
	}
	// Continuation cell carries no codepoints.
	cell := s.CellAt(grid.CellLocation{Line: 0, Column: 2})
	if len(cell.Codepoints) != 0 {
		t.Errorf("continuation cell codepoints = %v, expected none", cell.Codepoints)
	}
}

func TestSessionSelectionMembership(t *testing.T) {
	const text = "abcdef\nghijkl\nmnopqr"

	t.Run("character-wise", func(t *testing.T) {
		s := newTestSession(t, text, 40, 3)
		enterNormalMode(t, s)
		sendChars(t, s, "2lvjl")

		if !s.IsSelected(grid.CellLocation{Line: 0, Column: 2}) {
			t.Error("anchor not selected")
		}
		if !s.IsSelected(grid.CellLocation{Line: 0, Column: 5}) {
			t.Error("rest of first line not selected")
		}
		if !s.IsSelected(grid.CellLocation{Line: 1, Column: 0}) {
			t.Error("start of second line not selected")
		}
		if s.IsSelected(grid.CellLocation{Line: 1, Column: 4}) {
			t.Error("cell past cursor selected")
		}
	})

	t.Run("line-wise", func(t *testing.T) {
		s := newTestSession(t, text, 40, 3)
		enterNormalMode(t, s)
		sendChars(t, s, "2lVj")

		if !s.IsSelected(grid.CellLocation{Line: 0, Column: 0}) {
			t.Error("full first line not selected")
		}
		if !s.IsSelected(grid.CellLocation{Line: 1, Column: 5}) {
			t.Error("full second line not selected")
		}
		if s.IsSelected(grid.CellLocation{Line: 2, Column: 0}) {
			t.Error("line past cursor selected")
		}
	})

	t.Run("block-wise", func(t *testing.T) {
		s := newTestSession(t, text, 40, 3)
		enterNormalMode(t, s)
		sendChars(t, s, "l")
		s.Handler().SendChar('V', key.ModCtrl)
		sendChars(t, s, "2j2l")

		if !s.IsSelected(grid.CellLocation{Line: 1, Column: 2}) {
			t.Error("cell inside block not selected")
		}
		if s.IsSelected(grid.CellLocation{Line: 1, Column: 0}) {
			t.Error("cell left of block selected")
		}
		if s.IsSelected(grid.CellLocation{Line: 1, Column: 4}) {
			t.Error("cell right of block selected")
		}
	})

	t.Run("escape clears selection", func(t *testing.T) {
		s := newTestSession(t, text, 40, 3)
		enterNormalMode(t, s)
		sendChars(t, s, "vl\x1b")

		if s.IsSelected(grid.CellLocation{Line: 0, Column: 0}) {
			t.Error("selection survives leaving visual mode")
		}
	})
}

func TestSessionResizeClamps(t *testing.T) {
	const text = "l0\nl1\nl2\nl3\nl4\nl5"
	s := newTestSession(t, text, 10, 4)
	enterNormalMode(t, s)
	sendChars(t, s, "2K")

	s.Resize(grid.PageSize{Lines: 6, Columns: 10})
	if got := s.topLine(); got != 0 {
		t.Errorf("topLine after grow = %d, expected 0", got)
	}
}
