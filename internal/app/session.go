package app

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/NeroBurner/contour/internal/grid"
	"github.com/NeroBurner/contour/internal/input/key"
	"github.com/NeroBurner/contour/internal/input/vi"
	"github.com/NeroBurner/contour/internal/renderer"
)

// Session is one terminal session: the cell buffer with scrollback, the vi
// input handler, selection and search state. It implements renderer.Source
// for the frame builder and vi.Executor for the input handler.
//
// All methods must be called from the single thread owning the session's
// render/input loop.
type Session struct {
	logger  *Logger
	palette grid.ColorPalette
	links   *grid.HyperlinkStore

	// lines is the full buffer in grid coordinates; the viewport shows the
	// last pageSize.Lines of it minus the scrollback offset.
	lines    [][]grid.Cell
	pageSize grid.PageSize

	// scrollback is the number of lines scrolled away from the live bottom.
	scrollback int

	frameID uint64

	focused       bool
	cursorVisible bool
	cursorShape   renderer.CursorShape
	reverseVideo  bool
	blink         bool
	rapidBlink    bool

	realCursor grid.CellLocation
	viCursor   grid.CellLocation

	handler *vi.Handler

	// lastMode is the mode before the most recent mode change; entering
	// normal mode from insert seeds the vi cursor from the VT cursor.
	lastMode vi.Mode

	selecting       bool
	lineSelection   bool
	blockSelection  bool
	selectionAnchor grid.CellLocation

	highlight         *grid.CellLocationRange
	highlightLinewise bool

	searchTerm []rune

	clipboard string
	preedit   string
}

// NewSession creates a session over the given text, one buffer line per
// text line.
func NewSession(text string, page grid.PageSize, palette grid.ColorPalette, logger *Logger) *Session {
	if logger == nil {
		logger = NullLogger
	}

	s := &Session{
		logger:        logger,
		palette:       palette,
		links:         grid.NewHyperlinkStore(),
		pageSize:      page,
		focused:       true,
		cursorVisible: true,
		cursorShape:   renderer.CursorShapeBlock,
		blink:         true,
		rapidBlink:    true,
	}
	for _, line := range strings.Split(text, "\n") {
		s.lines = append(s.lines, cellsFromString(line, grid.GraphicsAttributes{}))
	}
	if len(s.lines) == 0 {
		s.lines = append(s.lines, nil)
	}

	s.handler = vi.NewHandler(s, logger.WithComponent("vi"))
	return s
}

// cellsFromString converts text into grid cells, one per grapheme cluster,
// with continuation cells after wide clusters.
func cellsFromString(text string, attr grid.GraphicsAttributes) []grid.Cell {
	var cells []grid.Cell
	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		width := runewidth.StringWidth(cluster)
		if width < 1 {
			width = 1
		}
		cells = append(cells, grid.Cell{
			Codepoints: []rune(cluster),
			Width:      width,
			Attributes: attr,
		})
		for i := 1; i < width; i++ {
			cells = append(cells, grid.Cell{Attributes: attr})
		}
	}
	return cells
}

// Handler returns the session's vi input handler.
func (s *Session) Handler() *vi.Handler {
	return s.handler
}

// Clipboard returns the last yanked text.
func (s *Session) Clipboard() string {
	return s.clipboard
}

// SetFocused updates the window focus state.
func (s *Session) SetFocused(focused bool) {
	s.focused = focused
}

// SetCursorShape sets the cursor shape reported to the renderer.
func (s *Session) SetCursorShape(shape renderer.CursorShape) {
	s.cursorShape = shape
}

// SetPreedit sets the IME composition string.
func (s *Session) SetPreedit(text string) {
	s.preedit = text
}

// SetBlinkState updates the blink phases for the next frame.
func (s *Session) SetBlinkState(blink, rapidBlink bool) {
	s.blink = blink
	s.rapidBlink = rapidBlink
}

// AdvanceFrame bumps and returns the frame id for the next Build call.
func (s *Session) AdvanceFrame() uint64 {
	s.frameID++
	return s.frameID
}

// Resize changes the page size.
func (s *Session) Resize(page grid.PageSize) {
	s.pageSize = page
	s.clampScrollback()
	s.clampViCursor()
}

// HandleKey routes one key event through the vi handler. Events the handler
// does not consume (insert mode) are echoed into the grid.
func (s *Session) HandleKey(ev key.Event) {
	var consumed bool
	switch {
	case ev.IsRune():
		consumed = s.handler.SendChar(ev.Rune, ev.Modifiers)
	case ev.Key == key.KeyEscape:
		consumed = s.handler.SendChar('\x1b', ev.Modifiers)
	case ev.Key == key.KeyEnter:
		consumed = s.handler.SendChar('\r', ev.Modifiers)
	case ev.Key == key.KeyBackspace:
		consumed = s.handler.SendChar('\x7f', ev.Modifiers)
	default:
		consumed = s.handler.SendKey(ev.Key, ev.Modifiers)
	}
	if consumed {
		return
	}
	s.echoInsert(ev)
}

// echoInsert applies unconsumed input to the grid at the VT cursor.
func (s *Session) echoInsert(ev key.Event) {
	switch {
	case ev.IsChar() && !ev.IsModified():
		line := s.realCursor.Line
		if line < 0 || line >= len(s.lines) {
			return
		}
		cells := cellsFromString(string(ev.Rune), grid.GraphicsAttributes{})
		col := s.realCursor.Column
		if col > len(s.lines[line]) {
			col = len(s.lines[line])
		}
		s.lines[line] = append(s.lines[line][:col],
			append(cells, s.lines[line][col:]...)...)
		s.realCursor.Column = col + len(cells)
	case ev.Key == key.KeyEnter:
		if s.realCursor.Line < len(s.lines)-1 {
			s.realCursor.Line++
		} else {
			s.lines = append(s.lines, nil)
			s.realCursor.Line = len(s.lines) - 1
		}
		s.realCursor.Column = 0
	case ev.Key == key.KeyBackspace:
		line := s.realCursor.Line
		if s.realCursor.Column > 0 && line >= 0 && line < len(s.lines) {
			col := s.realCursor.Column - 1
			s.lines[line] = append(s.lines[line][:col], s.lines[line][col+1:]...)
			s.realCursor.Column = col
		}
	}
}

// topLine returns the grid line shown at the top of the viewport.
func (s *Session) topLine() int {
	top := len(s.lines) - s.pageSize.Lines - s.scrollback
	if top < 0 {
		top = 0
	}
	return top
}

func (s *Session) maxScrollback() int {
	m := len(s.lines) - s.pageSize.Lines
	if m < 0 {
		m = 0
	}
	return m
}

func (s *Session) clampScrollback() {
	if s.scrollback < 0 {
		s.scrollback = 0
	}
	if m := s.maxScrollback(); s.scrollback > m {
		s.scrollback = m
	}
}

func (s *Session) clampViCursor() {
	if s.viCursor.Line < 0 {
		s.viCursor.Line = 0
	}
	if s.viCursor.Line >= len(s.lines) {
		s.viCursor.Line = len(s.lines) - 1
	}
	width := s.lineWidth(s.viCursor.Line)
	if width == 0 {
		s.viCursor.Column = 0
	} else if s.viCursor.Column >= width {
		s.viCursor.Column = width - 1
	}
	if s.viCursor.Column < 0 {
		s.viCursor.Column = 0
	}
}

// revealViCursor scrolls the viewport so the vi cursor is visible.
func (s *Session) revealViCursor() {
	top := s.topLine()
	switch {
	case s.viCursor.Line < top:
		s.scrollback += top - s.viCursor.Line
	case s.viCursor.Line >= top+s.pageSize.Lines:
		s.scrollback -= s.viCursor.Line - (top + s.pageSize.Lines - 1)
	}
	s.clampScrollback()
}

// lineWidth returns the number of columns the line occupies.
func (s *Session) lineWidth(line int) int {
	if line < 0 || line >= len(s.lines) {
		return 0
	}
	return len(s.lines[line])
}

// lineRunes returns one representative rune per column of a line; blanks for
// empty and continuation cells.
func (s *Session) lineRunes(line int) []rune {
	if line < 0 || line >= len(s.lines) {
		return nil
	}
	runes := make([]rune, len(s.lines[line]))
	for i, cell := range s.lines[line] {
		if len(cell.Codepoints) > 0 {
			runes[i] = cell.Codepoints[0]
		} else {
			runes[i] = ' '
		}
	}
	return runes
}

// lineText returns the text of a line with trailing blanks trimmed.
func (s *Session) lineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	var b strings.Builder
	for _, cell := range s.lines[line] {
		b.WriteString(string(cell.Codepoints))
	}
	return strings.TrimRight(b.String(), " ")
}

// normalizedSelection returns the active selection range in grid order.
func (s *Session) normalizedSelection() grid.CellLocationRange {
	first, second := s.selectionAnchor, s.viCursor
	if second.Before(first) {
		first, second = second, first
	}
	return grid.CellLocationRange{First: first, Second: second}
}

// --- renderer.Source ---

// PageSize returns the visible page dimensions.
func (s *Session) PageSize() grid.PageSize { return s.pageSize }

// ScrollOffset returns the screen-minus-grid line delta of the viewport.
func (s *Session) ScrollOffset() int { return -s.topLine() }

// TranslateScreenToGrid converts a screen location to grid coordinates.
func (s *Session) TranslateScreenToGrid(screen grid.CellLocation) grid.CellLocation {
	return grid.CellLocation{Line: screen.Line + s.topLine(), Column: screen.Column}
}

// TranslateGridToScreen converts a grid location to screen coordinates.
func (s *Session) TranslateGridToScreen(gridLoc grid.CellLocation) grid.CellLocation {
	return grid.CellLocation{Line: gridLoc.Line - s.topLine(), Column: gridLoc.Column}
}

// IsLineVisible reports whether the grid line is inside the viewport.
func (s *Session) IsLineVisible(gridLine int) bool {
	screenLine := gridLine - s.topLine()
	return screenLine >= 0 && screenLine < s.pageSize.Lines
}

// TrivialLineAt always reports false: session lines carry per-cell state and
// render through the per-cell path.
func (s *Session) TrivialLineAt(int) (grid.TrivialLineBuffer, bool) {
	return grid.TrivialLineBuffer{}, false
}

// CellAt returns the cell at a screen location.
func (s *Session) CellAt(screen grid.CellLocation) grid.Cell {
	gridLoc := s.TranslateScreenToGrid(screen)
	if gridLoc.Line < 0 || gridLoc.Line >= len(s.lines) {
		return grid.Cell{}
	}
	line := s.lines[gridLoc.Line]
	if gridLoc.Column < 0 || gridLoc.Column >= len(line) {
		return grid.Cell{}
	}
	return line[gridLoc.Column]
}

// CellWidthAt returns the column width of the cell at a grid location.
func (s *Session) CellWidthAt(gridLoc grid.CellLocation) int {
	if gridLoc.Line < 0 || gridLoc.Line >= len(s.lines) {
		return 1
	}
	line := s.lines[gridLoc.Line]
	if gridLoc.Column < 0 || gridLoc.Column >= len(line) || line[gridLoc.Column].Width < 1 {
		return 1
	}
	return line[gridLoc.Column].Width
}

// IsSelected reports selection membership for a grid location.
func (s *Session) IsSelected(gridLoc grid.CellLocation) bool {
	if !s.selecting {
		return false
	}
	sel := s.normalizedSelection()
	switch {
	case s.lineSelection:
		return gridLoc.Line >= sel.First.Line && gridLoc.Line <= sel.Second.Line
	case s.blockSelection:
		low, high := sel.First.Column, sel.Second.Column
		if s.selectionAnchor.Column > s.viCursor.Column {
			low, high = s.viCursor.Column, s.selectionAnchor.Column
		}
		return gridLoc.Line >= sel.First.Line && gridLoc.Line <= sel.Second.Line &&
			gridLoc.Column >= low && gridLoc.Column <= high
	default:
		return sel.Contains(gridLoc)
	}
}

// IsHighlighted reports yank-highlight membership for a grid location.
func (s *Session) IsHighlighted(gridLoc grid.CellLocation) bool {
	if s.highlight == nil {
		return false
	}
	if s.highlightLinewise {
		return gridLoc.Line >= s.highlight.First.Line && gridLoc.Line <= s.highlight.Second.Line
	}
	return s.highlight.Contains(gridLoc)
}

// BlinkState returns the slow blink phase.
func (s *Session) BlinkState() bool { return s.blink }

// RapidBlinkState returns the rapid blink phase.
func (s *Session) RapidBlinkState() bool { return s.rapidBlink }

// ColorPalette returns the palette for the current frame.
func (s *Session) ColorPalette() *grid.ColorPalette { return &s.palette }

// Hyperlinks returns the hyperlink store.
func (s *Session) Hyperlinks() *grid.HyperlinkStore { return s.links }

// CursorVisible reports whether the cursor is shown.
func (s *Session) CursorVisible() bool { return s.cursorVisible }

// CursorShape returns the configured cursor shape.
func (s *Session) CursorShape() renderer.CursorShape { return s.cursorShape }

// Focused reports window focus.
func (s *Session) Focused() bool { return s.focused }

// RealCursorPosition returns the VT cursor position.
func (s *Session) RealCursorPosition() grid.CellLocation { return s.realCursor }

// ViCursorPosition returns the vi cursor position.
func (s *Session) ViCursorPosition() grid.CellLocation { return s.viCursor }

// ViModeInsert reports whether the vi handler is in insert mode.
func (s *Session) ViModeInsert() bool { return s.handler.Mode() == vi.ModeInsert }

// SearchPattern returns the active search pattern.
func (s *Session) SearchPattern() []rune { return s.searchTerm }

// InputMethod returns the IME composition state.
func (s *Session) InputMethod() renderer.InputMethodData {
	return renderer.InputMethodData{PreeditString: s.preedit}
}

// FrameID returns the current frame id.
func (s *Session) FrameID() uint64 { return s.frameID }

// ReverseVideo reports the screen-wide reverse video mode.
func (s *Session) ReverseVideo() bool { return s.reverseVideo }
