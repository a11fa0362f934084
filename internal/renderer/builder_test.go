package renderer

import (
	"testing"

	"github.com/NeroBurner/contour/internal/grid"
)

// fakeSource is a Source over a fixed set of lines with identity
// screen-to-grid translation.
type fakeSource struct {
	size          grid.PageSize
	cells         map[grid.CellLocation]grid.Cell
	trivial       map[int]grid.TrivialLineBuffer
	palette       grid.ColorPalette
	links         *grid.HyperlinkStore
	scrollOffset  int
	selected      map[grid.CellLocation]bool
	highlighted   map[grid.CellLocation]bool
	cursorVisible bool
	cursorShape   CursorShape
	focused       bool
	realCursor    grid.CellLocation
	viCursor      grid.CellLocation
	viInsert      bool
	searchPattern []rune
	ime           InputMethodData
	frameID       uint64
	reverseVideo  bool
	blink         bool
	rapidBlink    bool
}

func newFakeSource(columns int, lines ...string) *fakeSource {
	src := &fakeSource{
		size:        grid.PageSize{Lines: len(lines), Columns: columns},
		cells:       make(map[grid.CellLocation]grid.Cell),
		trivial:     make(map[int]grid.TrivialLineBuffer),
		palette:     grid.DefaultColorPalette(),
		links:       grid.NewHyperlinkStore(),
		selected:    make(map[grid.CellLocation]bool),
		highlighted: make(map[grid.CellLocation]bool),
		cursorShape: CursorShapeBlock,
		focused:     true,
		blink:       true,
		rapidBlink:  true,
	}
	for lineNr, line := range lines {
		for column, r := range []rune(line) {
			src.cells[grid.CellLocation{Line: lineNr, Column: column}] = grid.NewCell(r, grid.GraphicsAttributes{})
		}
	}
	return src
}

func (s *fakeSource) PageSize() grid.PageSize { return s.size }
func (s *fakeSource) ScrollOffset() int       { return s.scrollOffset }

func (s *fakeSource) TranslateScreenToGrid(screen grid.CellLocation) grid.CellLocation {
	return grid.CellLocation{Line: screen.Line - s.scrollOffset, Column: screen.Column}
}

func (s *fakeSource) TranslateGridToScreen(gridLoc grid.CellLocation) grid.CellLocation {
	return grid.CellLocation{Line: gridLoc.Line + s.scrollOffset, Column: gridLoc.Column}
}

func (s *fakeSource) IsLineVisible(gridLine int) bool {
	screenLine := gridLine + s.scrollOffset
	return screenLine >= 0 && screenLine < s.size.Lines
}

func (s *fakeSource) TrivialLineAt(screenLine int) (grid.TrivialLineBuffer, bool) {
	lineBuffer, ok := s.trivial[screenLine]
	return lineBuffer, ok
}

func (s *fakeSource) CellAt(screen grid.CellLocation) grid.Cell {
	return s.cells[screen]
}

func (s *fakeSource) CellWidthAt(gridLoc grid.CellLocation) int {
	cell, ok := s.cells[grid.CellLocation{Line: gridLoc.Line + s.scrollOffset, Column: gridLoc.Column}]
	if !ok || cell.Width == 0 {
		return 1
	}
	return cell.Width
}

func (s *fakeSource) IsSelected(gridLoc grid.CellLocation) bool    { return s.selected[gridLoc] }
func (s *fakeSource) IsHighlighted(gridLoc grid.CellLocation) bool { return s.highlighted[gridLoc] }
func (s *fakeSource) BlinkState() bool                             { return s.blink }
func (s *fakeSource) RapidBlinkState() bool                        { return s.rapidBlink }
func (s *fakeSource) ColorPalette() *grid.ColorPalette             { return &s.palette }
func (s *fakeSource) Hyperlinks() *grid.HyperlinkStore             { return s.links }
func (s *fakeSource) CursorVisible() bool                          { return s.cursorVisible }
func (s *fakeSource) CursorShape() CursorShape                     { return s.cursorShape }
func (s *fakeSource) Focused() bool                                { return s.focused }
func (s *fakeSource) RealCursorPosition() grid.CellLocation        { return s.realCursor }
func (s *fakeSource) ViCursorPosition() grid.CellLocation          { return s.viCursor }
func (s *fakeSource) ViModeInsert() bool                           { return s.viInsert }
func (s *fakeSource) SearchPattern() []rune                        { return s.searchPattern }
func (s *fakeSource) InputMethod() InputMethodData                 { return s.ime }
func (s *fakeSource) FrameID() uint64                              { return s.frameID }
func (s *fakeSource) ReverseVideo() bool                           { return s.reverseVideo }

func build(src Source) *RenderBuffer {
	output := &RenderBuffer{}
	NewBuilder().Build(src, output, BuildOptions{HighlightSearchMatches: true})
	return output
}

func cellText(cell RenderCell) string { return string(cell.Codepoints) }

func TestBuildRunBracketing(t *testing.T) {
	src := newFakeSource(6, "ab cd")
	output := build(src)

	if len(output.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(output.Cells))
	}

	wantText := []string{"a", "b", "c", "d"}
	wantStart := []bool{true, false, true, false}
	wantEnd := []bool{false, true, false, true}
	wantColumn := []int{0, 1, 3, 4}

	for i, cell := range output.Cells {
		if got := cellText(cell); got != wantText[i] {
			t.Errorf("cell %d: text = %q, want %q", i, got, wantText[i])
		}
		if cell.GroupStart != wantStart[i] || cell.GroupEnd != wantEnd[i] {
			t.Errorf("cell %d: bracket = (%v, %v), want (%v, %v)",
				i, cell.GroupStart, cell.GroupEnd, wantStart[i], wantEnd[i])
		}
		if cell.Position.Column != wantColumn[i] {
			t.Errorf("cell %d: column = %d, want %d", i, cell.Position.Column, wantColumn[i])
		}
	}
}

func TestBuildEveryRunBracketed(t *testing.T) {
	src := newFakeSource(10, "hello  there", " x ", "", "  ab  cd  ")
	output := build(src)

	depth := 0
	for i, cell := range output.Cells {
		if cell.GroupStart {
			if depth != 0 {
				t.Fatalf("cell %d: GroupStart inside an open run", i)
			}
			depth++
		}
		if !cell.GroupStart && depth == 0 {
			t.Fatalf("cell %d: cell emitted outside any run", i)
		}
		if cell.GroupEnd {
			depth--
		}
	}
	if depth != 0 {
		t.Fatalf("unterminated run at end of buffer")
	}
}

func TestBuildCustomBackgroundExtendsRun(t *testing.T) {
	src := newFakeSource(4, "a  b")
	red := grid.GraphicsAttributes{Background: grid.TrueColor(0xFF, 0, 0)}
	src.cells[grid.CellLocation{Line: 0, Column: 1}] = grid.NewCell(' ', red)
	src.cells[grid.CellLocation{Line: 0, Column: 2}] = grid.NewCell(' ', red)

	output := build(src)

	if len(output.Cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(output.Cells))
	}
	if !output.Cells[0].GroupStart || !output.Cells[3].GroupEnd {
		t.Errorf("expected a single run spanning the whole line")
	}
	for i, cell := range output.Cells[1:3] {
		if cell.GroupStart || cell.GroupEnd {
			t.Errorf("painted blank cell %d must not break the run", i+1)
		}
	}
}

func TestBuildCursor(t *testing.T) {
	src := newFakeSource(4, "abcd")
	src.cursorVisible = true
	src.viCursor = grid.CellLocation{Line: 0, Column: 1}
	output := build(src)

	if output.Cursor == nil {
		t.Fatal("expected a cursor")
	}
	if output.Cursor.Shape != CursorShapeBlock {
		t.Errorf("shape = %v, want Block", output.Cursor.Shape)
	}
	if output.Cursor.Position != (grid.CellLocation{Line: 0, Column: 1}) {
		t.Errorf("position = %v, want (0, 1)", output.Cursor.Position)
	}

	// Block cursor paints the cell: the default palette puts the current
	// foreground behind the glyph.
	cursorCell := output.Cells[1]
	if cursorCell.Attributes.BackgroundColor != src.palette.DefaultForeground {
		t.Errorf("cursor cell background = %v, want %v",
			cursorCell.Attributes.BackgroundColor, src.palette.DefaultForeground)
	}
	if cursorCell.Attributes.ForegroundColor != src.palette.DefaultBackground {
		t.Errorf("cursor cell foreground = %v, want %v",
			cursorCell.Attributes.ForegroundColor, src.palette.DefaultBackground)
	}
}

func TestBuildCursorVisibility(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*fakeSource)
		wantShape CursorShape
		wantNil   bool
	}{
		{
			name:      "hidden cursor omitted",
			configure: func(s *fakeSource) { s.cursorVisible = false },
			wantNil:   true,
		},
		{
			name: "scrolled out cursor omitted",
			configure: func(s *fakeSource) {
				s.cursorVisible = true
				s.viCursor = grid.CellLocation{Line: 30, Column: 0}
			},
			wantNil: true,
		},
		{
			name:      "unfocused renders rectangle",
			configure: func(s *fakeSource) { s.cursorVisible = true; s.focused = false },
			wantShape: CursorShapeRectangle,
		},
		{
			name: "focused keeps configured shape",
			configure: func(s *fakeSource) {
				s.cursorVisible = true
				s.cursorShape = CursorShapeUnderscore
			},
			wantShape: CursorShapeUnderscore,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := newFakeSource(4, "abcd")
			tc.configure(src)
			output := build(src)
			if tc.wantNil {
				if output.Cursor != nil {
					t.Fatalf("expected no cursor, got %+v", output.Cursor)
				}
				return
			}
			if output.Cursor == nil {
				t.Fatal("expected a cursor")
			}
			if output.Cursor.Shape != tc.wantShape {
				t.Errorf("shape = %v, want %v", output.Cursor.Shape, tc.wantShape)
			}
		})
	}
}

func TestBuildInsertModeUsesRealCursor(t *testing.T) {
	src := newFakeSource(4, "abcd")
	src.cursorVisible = true
	src.viInsert = true
	src.realCursor = grid.CellLocation{Line: 0, Column: 3}
	src.viCursor = grid.CellLocation{Line: 0, Column: 0}

	output := build(src)
	if output.Cursor == nil {
		t.Fatal("expected a cursor")
	}
	if output.Cursor.Position.Column != 3 {
		t.Errorf("cursor column = %d, want 3", output.Cursor.Position.Column)
	}
}

func TestBuildTrivialLine(t *testing.T) {
	src := newFakeSource(5)
	src.size = grid.PageSize{Lines: 1, Columns: 5}
	src.trivial[0] = grid.TrivialLineBuffer{
		UsedColumns:    2,
		Text:           "hi",
		TextAttributes: grid.GraphicsAttributes{},
		FillAttributes: grid.GraphicsAttributes{},
	}

	output := build(src)

	// The fast path stays off: no line summaries, only cells.
	if len(output.Lines) != 0 {
		t.Fatalf("expected no line summaries, got %d", len(output.Lines))
	}
	if len(output.Cells) != 5 {
		t.Fatalf("expected 5 cells (text + fill), got %d", len(output.Cells))
	}
	if !output.Cells[0].GroupStart {
		t.Errorf("first cell must open the line run")
	}
	if !output.Cells[4].GroupEnd {
		t.Errorf("last fill cell must close the line run")
	}
	for i := 1; i < 4; i++ {
		if output.Cells[i].GroupStart || output.Cells[i].GroupEnd {
			t.Errorf("cell %d: unexpected run boundary inside trivial line", i)
		}
	}
	for i := 2; i < 5; i++ {
		cell := output.Cells[i]
		if len(cell.Codepoints) != 0 {
			t.Errorf("fill cell %d carries text %q", i, cellText(cell))
		}
		if cell.Width != 1 {
			t.Errorf("fill cell %d: width = %d, want 1", i, cell.Width)
		}
		if cell.Position.Column != i {
			t.Errorf("fill cell %d: column = %d, want %d", i, cell.Position.Column, i)
		}
	}
}

func TestBuildPreedit(t *testing.T) {
	src := newFakeSource(6, "abcdef")
	src.cursorVisible = true
	src.cursorShape = CursorShapeBar
	src.viCursor = grid.CellLocation{Line: 0, Column: 2}
	src.ime = InputMethodData{PreeditString: "xy"}

	output := build(src)

	if len(output.Cells) != 6 {
		t.Fatalf("expected 6 cells, got %d", len(output.Cells))
	}

	wantText := []string{"a", "b", "x", "y", "e", "f"}
	for i, cell := range output.Cells {
		if got := cellText(cell); got != wantText[i] {
			t.Errorf("cell %d: text = %q, want %q", i, got, wantText[i])
		}
	}

	for i := 2; i <= 3; i++ {
		attr := output.Cells[i].Attributes
		if !attr.Flags.Has(grid.FlagBold) || !attr.Flags.Has(grid.FlagUnderline) {
			t.Errorf("preedit cell %d: flags = %v, want bold+underline", i, attr.Flags)
		}
		if attr.ForegroundColor != grid.RGB(0xFF, 0xFF, 0xFF) {
			t.Errorf("preedit cell %d: foreground = %v, want white", i, attr.ForegroundColor)
		}
		if attr.BackgroundColor != grid.RGB(0xFF, 0x00, 0x00) {
			t.Errorf("preedit cell %d: background = %v, want red", i, attr.BackgroundColor)
		}
	}

	if !output.Cells[2].GroupStart || !output.Cells[3].GroupEnd {
		t.Errorf("preedit text must form its own run")
	}

	// The reported cursor advances past the composed text.
	if output.Cursor == nil {
		t.Fatal("expected a cursor")
	}
	if output.Cursor.Position.Column != 4 {
		t.Errorf("cursor column = %d, want 4", output.Cursor.Position.Column)
	}
}

func TestBuildHyperlinkDecoration(t *testing.T) {
	src := newFakeSource(2, "ab")
	normal := src.links.Add("https://example.com/a")
	hover := src.links.Add("https://example.com/b")
	src.links.SetState(hover, grid.HyperlinkHover)

	cellA := src.cells[grid.CellLocation{Line: 0, Column: 0}]
	cellA.Hyperlink = normal
	src.cells[grid.CellLocation{Line: 0, Column: 0}] = cellA

	cellB := src.cells[grid.CellLocation{Line: 0, Column: 1}]
	cellB.Hyperlink = hover
	src.cells[grid.CellLocation{Line: 0, Column: 1}] = cellB

	output := build(src)

	if len(output.Cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(output.Cells))
	}

	a := output.Cells[0].Attributes
	if !a.Flags.Has(grid.FlagDottedUnderline) {
		t.Errorf("normal link: flags = %v, want dotted underline", a.Flags)
	}
	if a.DecorationColor != src.palette.HyperlinkDecoration.Normal {
		t.Errorf("normal link: decoration = %v, want %v", a.DecorationColor, src.palette.HyperlinkDecoration.Normal)
	}

	b := output.Cells[1].Attributes
	if !b.Flags.Has(grid.FlagUnderline) {
		t.Errorf("hovered link: flags = %v, want underline", b.Flags)
	}
	if b.DecorationColor != src.palette.HyperlinkDecoration.Hover {
		t.Errorf("hovered link: decoration = %v, want %v", b.DecorationColor, src.palette.HyperlinkDecoration.Hover)
	}
}

func TestBuildFrameID(t *testing.T) {
	src := newFakeSource(2, "ab")
	src.frameID = 42
	output := build(src)
	if output.FrameID != 42 {
		t.Errorf("frame id = %d, want 42", output.FrameID)
	}
}

func TestBuildReusesOutputBuffer(t *testing.T) {
	src := newFakeSource(4, "abcd")
	output := &RenderBuffer{}
	builder := NewBuilder()

	builder.Build(src, output, BuildOptions{})
	first := len(output.Cells)

	src.cells[grid.CellLocation{Line: 0, Column: 3}] = grid.Cell{}
	builder.Build(src, output, BuildOptions{})

	if len(output.Cells) != first-1 {
		t.Errorf("cells = %d, want %d", len(output.Cells), first-1)
	}
}
