package app

import (
	"strings"
	"unicode"

	"github.com/NeroBurner/contour/internal/grid"
	"github.com/NeroBurner/contour/internal/input/vi"
)

// vi.Executor implementation: the session applies the commands the input
// handler's grammar produces to its own cursor, selection, clipboard, and
// search state.

// ModeChanged tracks selection state across mode switches.
func (s *Session) ModeChanged(mode vi.Mode) {
	s.logger.Debug("input mode changed to %v", mode)

	switch mode {
	case vi.ModeInsert:
		s.selecting = false
	case vi.ModeNormal:
		s.selecting = false
		if s.lastMode == vi.ModeInsert {
			s.viCursor = s.realCursor
			s.clampViCursor()
		}
	case vi.ModeVisual, vi.ModeVisualLine, vi.ModeVisualBlock:
		if !s.selecting {
			s.selecting = true
			s.selectionAnchor = s.viCursor
		}
		s.lineSelection = mode == vi.ModeVisualLine
		s.blockSelection = mode == vi.ModeVisualBlock
	}
	s.lastMode = mode
}

// MoveCursor moves the vi cursor by a motion, count times.
func (s *Session) MoveCursor(motion vi.Motion, count int) {
	if motion == vi.MotionScreenColumn {
		s.viCursor.Column = count - 1
		s.clampViCursor()
		s.revealViCursor()
		return
	}

	for i := 0; i < count; i++ {
		s.stepCursor(motion)
	}
	s.clampViCursor()
	s.revealViCursor()
}

func (s *Session) stepCursor(motion vi.Motion) {
	switch motion {
	case vi.MotionCharLeft:
		s.viCursor.Column--
	case vi.MotionCharRight:
		s.viCursor.Column++
	case vi.MotionLineUp:
		s.viCursor.Line--
	case vi.MotionLineDown:
		s.viCursor.Line++
	case vi.MotionLineBegin:
		s.viCursor.Column = 0
	case vi.MotionLineTextBegin:
		s.viCursor.Column = s.lineTextBegin(s.viCursor.Line)
	case vi.MotionLineEnd:
		s.viCursor.Column = s.lineWidth(s.viCursor.Line) - 1
	case vi.MotionPageTop:
		s.viCursor.Line = s.topLine()
	case vi.MotionPageBottom:
		s.viCursor.Line = s.topLine() + s.pageSize.Lines - 1
	case vi.MotionPageUp:
		s.viCursor.Line -= s.pageSize.Lines
	case vi.MotionPageDown:
		s.viCursor.Line += s.pageSize.Lines
	case vi.MotionFileBegin:
		s.viCursor = grid.CellLocation{}
	case vi.MotionFileEnd:
		s.viCursor = grid.CellLocation{Line: len(s.lines) - 1}
	case vi.MotionWordForward:
		s.viCursor = s.wordForward(s.viCursor)
	case vi.MotionWordBackward:
		s.viCursor = s.wordBackward(s.viCursor)
	case vi.MotionWordEndForward:
		s.viCursor = s.wordEndForward(s.viCursor)
	case vi.MotionParagraphForward:
		s.viCursor.Line = s.paragraphForward(s.viCursor.Line)
		s.viCursor.Column = 0
	case vi.MotionParagraphBackward:
		s.viCursor.Line = s.paragraphBackward(s.viCursor.Line)
		s.viCursor.Column = 0
	case vi.MotionParenthesisMatching:
		if match, ok := s.matchingBracket(s.viCursor); ok {
			s.viCursor = match
		}
	case vi.MotionSearchResultForward:
		s.jumpToMatch(1)
	case vi.MotionSearchResultBackward:
		s.jumpToMatch(-1)
	default:
		s.logger.Debug("ignoring non-cursor motion %v", motion)
	}
}

// Execute runs an operator over a motion.
func (s *Session) Execute(op vi.Operator, motion vi.Motion, count int) {
	switch op {
	case vi.OperatorYank:
		switch motion {
		case vi.MotionFullLine:
			s.yankLines(s.viCursor.Line, count)
		case vi.MotionSelection:
			s.yankSelection()
		default:
			s.logger.Error("yank over motion %v not supported", motion)
		}
	case vi.OperatorMoveCursor:
		s.MoveCursor(motion, count)
	case vi.OperatorPaste:
		s.Paste(count)
	default:
		s.logger.Error("unsupported operator %v", op)
	}
}

func (s *Session) yankLines(first, count int) {
	last := first + count - 1
	if last >= len(s.lines) {
		last = len(s.lines) - 1
	}

	var b strings.Builder
	for line := first; line <= last; line++ {
		b.WriteString(s.lineText(line))
		b.WriteByte('\n')
	}
	s.clipboard = b.String()

	s.highlight = &grid.CellLocationRange{
		First:  grid.CellLocation{Line: first},
		Second: grid.CellLocation{Line: last},
	}
	s.highlightLinewise = true
}

func (s *Session) yankSelection() {
	if !s.selecting {
		return
	}
	sel := s.normalizedSelection()

	if s.lineSelection {
		s.yankLines(sel.First.Line, sel.Second.Line-sel.First.Line+1)
	} else {
		s.clipboard = s.textInRange(sel)
		highlight := sel
		s.highlight = &highlight
		s.highlightLinewise = false
	}

	s.handler.SetMode(vi.ModeNormal)
}

func (s *Session) textInRange(r grid.CellLocationRange) string {
	var b strings.Builder
	for line := r.First.Line; line <= r.Second.Line; line++ {
		text := []rune(s.lineText(line))
		lo, hi := 0, len(text)
		if line == r.First.Line {
			lo = min(r.First.Column, hi)
		}
		if line == r.Second.Line {
			hi = min(r.Second.Column+1, hi)
		}
		if lo < hi {
			b.WriteString(string(text[lo:hi]))
		}
		if line < r.Second.Line {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Yank copies the text object around the cursor.
func (s *Session) Yank(scope vi.TextObjectScope, obj vi.TextObject) {
	r, ok := s.textObjectRange(scope, obj)
	if !ok {
		return
	}
	s.clipboard = s.textInRange(r)
	highlight := r
	s.highlight = &highlight
	s.highlightLinewise = false
}

// Select sets the selection to a text object around the cursor.
func (s *Session) Select(scope vi.TextObjectScope, obj vi.TextObject) {
	r, ok := s.textObjectRange(scope, obj)
	if !ok {
		return
	}
	s.selecting = true
	s.lineSelection = false
	s.blockSelection = false
	s.selectionAnchor = r.First
	s.viCursor = r.Second
}

// Paste inserts the clipboard at the vi cursor.
func (s *Session) Paste(count int) {
	if s.clipboard == "" {
		return
	}
	text := strings.TrimSuffix(s.clipboard, "\n")
	line := s.viCursor.Line
	if line < 0 || line >= len(s.lines) {
		return
	}
	for i := 0; i < count; i++ {
		cells := cellsFromString(text, grid.GraphicsAttributes{})
		col := min(s.viCursor.Column, len(s.lines[line]))
		s.lines[line] = append(s.lines[line][:col],
			append(cells, s.lines[line][col:]...)...)
	}
}

// ReverseSearchCurrentWord searches backward for the word under the cursor.
func (s *Session) ReverseSearchCurrentWord() {
	if word := s.wordUnderCursor(); word != "" {
		s.searchTerm = []rune(word)
		s.jumpToMatch(-1)
	}
}

// SearchCurrentWord searches forward for the word under the cursor.
func (s *Session) SearchCurrentWord() {
	if word := s.wordUnderCursor(); word != "" {
		s.searchTerm = []rune(word)
		s.jumpToMatch(1)
	}
}

// JumpToNextMatch moves to the count-th next search match.
func (s *Session) JumpToNextMatch(count int) {
	for i := 0; i < count; i++ {
		s.jumpToMatch(1)
	}
}

// JumpToPreviousMatch moves to the count-th previous search match.
func (s *Session) JumpToPreviousMatch(count int) {
	for i := 0; i < count; i++ {
		s.jumpToMatch(-1)
	}
}

// ScrollViewport scrolls the viewport by delta lines; positive scrolls into
// the scrollback.
func (s *Session) ScrollViewport(delta int) {
	s.scrollback += delta
	s.clampScrollback()
}

// SearchStart opens a new search.
func (s *Session) SearchStart() {
	s.searchTerm = nil
}

// SearchDone commits the search term and jumps to the first match.
func (s *Session) SearchDone() {
	if len(s.searchTerm) > 0 {
		s.jumpToMatch(1)
	}
}

// SearchCancel discards the search term.
func (s *Session) SearchCancel() {
	s.searchTerm = nil
}

// UpdateSearchTerm tracks the term as it is edited, for live highlighting.
func (s *Session) UpdateSearchTerm(term []rune) {
	s.searchTerm = term
}

// jumpToMatch moves the vi cursor to the next (dir > 0) or previous (dir < 0)
// occurrence of the search pattern, wrapping around the buffer.
func (s *Session) jumpToMatch(dir int) {
	pattern := string(s.searchTerm)
	if pattern == "" {
		return
	}

	type match struct{ line, col int }
	var matches []match
	for line := range s.lines {
		text := s.lineText(line)
		offset := 0
		for {
			idx := strings.Index(text[offset:], pattern)
			if idx < 0 {
				break
			}
			col := len([]rune(text[:offset+idx]))
			matches = append(matches, match{line, col})
			offset += idx + 1
		}
	}
	if len(matches) == 0 {
		return
	}

	cur := match{s.viCursor.Line, s.viCursor.Column}
	if dir > 0 {
		for _, m := range matches {
			if m.line > cur.line || (m.line == cur.line && m.col > cur.col) {
				s.moveToMatch(m.line, m.col)
				return
			}
		}
		s.moveToMatch(matches[0].line, matches[0].col)
	} else {
		for i := len(matches) - 1; i >= 0; i-- {
			m := matches[i]
			if m.line < cur.line || (m.line == cur.line && m.col < cur.col) {
				s.moveToMatch(m.line, m.col)
				return
			}
		}
		last := matches[len(matches)-1]
		s.moveToMatch(last.line, last.col)
	}
}

func (s *Session) moveToMatch(line, col int) {
	s.viCursor = grid.CellLocation{Line: line, Column: col}
	s.clampViCursor()
	s.revealViCursor()
}

// --- motion helpers ---

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *Session) lineTextBegin(line int) int {
	runes := s.lineRunes(line)
	for i, r := range runes {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

// wordForward moves to the beginning of the next word, crossing line
// boundaries.
func (s *Session) wordForward(loc grid.CellLocation) grid.CellLocation {
	runes := s.lineRunes(loc.Line)
	col := loc.Column

	// Skip the rest of the current word.
	for col < len(runes) && isWordRune(runes[col]) {
		col++
	}
	// Skip whitespace, wrapping to following lines.
	for {
		for col < len(runes) && !isWordRune(runes[col]) {
			col++
		}
		if col < len(runes) || loc.Line >= len(s.lines)-1 {
			break
		}
		loc.Line++
		runes = s.lineRunes(loc.Line)
		col = 0
		if len(runes) == 0 || isWordRune(runes[0]) {
			break
		}
	}
	loc.Column = col
	return loc
}

// wordBackward moves to the beginning of the previous word.
func (s *Session) wordBackward(loc grid.CellLocation) grid.CellLocation {
	col := loc.Column - 1
	for {
		runes := s.lineRunes(loc.Line)
		for col >= 0 && (col >= len(runes) || !isWordRune(runes[col])) {
			col--
		}
		if col >= 0 {
			for col > 0 && isWordRune(runes[col-1]) {
				col--
			}
			loc.Column = col
			return loc
		}
		if loc.Line == 0 {
			loc.Column = 0
			return loc
		}
		loc.Line--
		col = s.lineWidth(loc.Line) - 1
	}
}

// wordEndForward moves to the last rune of the current or next word.
func (s *Session) wordEndForward(loc grid.CellLocation) grid.CellLocation {
	col := loc.Column + 1
	for {
		runes := s.lineRunes(loc.Line)
		for col < len(runes) && !isWordRune(runes[col]) {
			col++
		}
		if col < len(runes) {
			for col+1 < len(runes) && isWordRune(runes[col+1]) {
				col++
			}
			loc.Column = col
			return loc
		}
		if loc.Line >= len(s.lines)-1 {
			loc.Column = max(0, len(runes)-1)
			return loc
		}
		loc.Line++
		col = 0
	}
}

func (s *Session) isBlankLine(line int) bool {
	return strings.TrimSpace(s.lineText(line)) == ""
}

func (s *Session) paragraphForward(line int) int {
	for line++; line < len(s.lines); line++ {
		if s.isBlankLine(line) {
			return line
		}
	}
	return len(s.lines) - 1
}

func (s *Session) paragraphBackward(line int) int {
	for line--; line >= 0; line-- {
		if s.isBlankLine(line) {
			return line
		}
	}
	return 0
}

var bracketPairs = map[rune]struct {
	match   rune
	forward bool
}{
	'(': {')', true},
	'[': {']', true},
	'{': {'}', true},
	')': {'(', false},
	']': {'[', false},
	'}': {'{', false},
}

// matchingBracket finds the partner of the bracket under the cursor,
// honoring nesting, scanning across lines.
func (s *Session) matchingBracket(loc grid.CellLocation) (grid.CellLocation, bool) {
	runes := s.lineRunes(loc.Line)
	if loc.Column >= len(runes) {
		return loc, false
	}
	open := runes[loc.Column]
	pair, ok := bracketPairs[open]
	if !ok {
		return loc, false
	}

	depth := 0
	line, col := loc.Line, loc.Column
	for {
		r := rune(0)
		lineRunes := s.lineRunes(line)
		if col >= 0 && col < len(lineRunes) {
			r = lineRunes[col]
		}
		switch r {
		case open:
			depth++
		case pair.match:
			depth--
			if depth == 0 {
				return grid.CellLocation{Line: line, Column: col}, true
			}
		}

		if pair.forward {
			col++
			if col >= len(lineRunes) {
				line++
				col = 0
				if line >= len(s.lines) {
					return loc, false
				}
			}
		} else {
			col--
			if col < 0 {
				line--
				if line < 0 {
					return loc, false
				}
				col = s.lineWidth(line) - 1
				if col < 0 {
					col = 0
				}
			}
		}
	}
}

// wordUnderCursor returns the word the vi cursor rests on, or "".
func (s *Session) wordUnderCursor() string {
	runes := s.lineRunes(s.viCursor.Line)
	col := s.viCursor.Column
	if col >= len(runes) || !isWordRune(runes[col]) {
		return ""
	}
	lo, hi := col, col
	for lo > 0 && isWordRune(runes[lo-1]) {
		lo--
	}
	for hi+1 < len(runes) && isWordRune(runes[hi+1]) {
		hi++
	}
	return string(runes[lo : hi+1])
}

// textObjectDelimiters maps a text object to its delimiters.
var textObjectDelimiters = map[vi.TextObject]struct{ open, close rune }{
	vi.TextObjectAngleBrackets:  {'<', '>'},
	vi.TextObjectBackQuotes:     {'`', '`'},
	vi.TextObjectCurlyBrackets:  {'{', '}'},
	vi.TextObjectDoubleQuotes:   {'"', '"'},
	vi.TextObjectRoundBrackets:  {'(', ')'},
	vi.TextObjectSingleQuotes:   {'\'', '\''},
	vi.TextObjectSquareBrackets: {'[', ']'},
}

// textObjectRange resolves a text object around the vi cursor to a grid
// range. Inner scope excludes delimiters; A scope includes them.
func (s *Session) textObjectRange(scope vi.TextObjectScope, obj vi.TextObject) (grid.CellLocationRange, bool) {
	switch obj {
	case vi.TextObjectWord:
		return s.wordObjectRange(scope)
	case vi.TextObjectParagraph:
		return s.paragraphObjectRange()
	default:
		delims, ok := textObjectDelimiters[obj]
		if !ok {
			return grid.CellLocationRange{}, false
		}
		return s.delimitedObjectRange(scope, delims.open, delims.close)
	}
}

func (s *Session) wordObjectRange(scope vi.TextObjectScope) (grid.CellLocationRange, bool) {
	runes := s.lineRunes(s.viCursor.Line)
	col := s.viCursor.Column
	if col >= len(runes) || !isWordRune(runes[col]) {
		return grid.CellLocationRange{}, false
	}
	lo, hi := col, col
	for lo > 0 && isWordRune(runes[lo-1]) {
		lo--
	}
	for hi+1 < len(runes) && isWordRune(runes[hi+1]) {
		hi++
	}
	if scope == vi.ScopeA {
		for hi+1 < len(runes) && runes[hi+1] == ' ' {
			hi++
		}
	}
	return grid.CellLocationRange{
		First:  grid.CellLocation{Line: s.viCursor.Line, Column: lo},
		Second: grid.CellLocation{Line: s.viCursor.Line, Column: hi},
	}, true
}

func (s *Session) paragraphObjectRange() (grid.CellLocationRange, bool) {
	first := s.viCursor.Line
	for first > 0 && !s.isBlankLine(first-1) {
		first--
	}
	last := s.viCursor.Line
	for last < len(s.lines)-1 && !s.isBlankLine(last+1) {
		last++
	}
	return grid.CellLocationRange{
		First:  grid.CellLocation{Line: first},
		Second: grid.CellLocation{Line: last, Column: max(0, s.lineWidth(last)-1)},
	}, true
}

// delimitedObjectRange finds the innermost open/close pair around the cursor
// on the current line.
func (s *Session) delimitedObjectRange(scope vi.TextObjectScope, open, close rune) (grid.CellLocationRange, bool) {
	runes := s.lineRunes(s.viCursor.Line)
	col := s.viCursor.Column
	if col >= len(runes) {
		return grid.CellLocationRange{}, false
	}

	lo, hi := -1, -1
	if open == close {
		// Quote-style objects: the nearest quote at or left of the cursor
		// opens, the next one to its right closes.
		for i := col; i >= 0; i-- {
			if runes[i] == open {
				lo = i
				break
			}
		}
		if lo >= 0 {
			for i := lo + 1; i < len(runes); i++ {
				if runes[i] == close {
					hi = i
					break
				}
			}
		}
	} else {
		depth := 0
		for i := col; i >= 0; i-- {
			switch runes[i] {
			case close:
				if i != col {
					depth++
				}
			case open:
				if depth > 0 {
					depth--
				} else {
					lo = i
				}
			}
			if lo >= 0 {
				break
			}
		}
		if lo >= 0 {
			depth = 0
			for i := lo + 1; i < len(runes); i++ {
				switch runes[i] {
				case open:
					depth++
				case close:
					if depth > 0 {
						depth--
					} else {
						hi = i
					}
				}
				if hi >= 0 {
					break
				}
			}
		}
	}
	if lo < 0 || hi < 0 {
		return grid.CellLocationRange{}, false
	}

	if scope == vi.ScopeInner {
		lo++
		hi--
		if lo > hi {
			return grid.CellLocationRange{}, false
		}
	}
	return grid.CellLocationRange{
		First:  grid.CellLocation{Line: s.viCursor.Line, Column: lo},
		Second: grid.CellLocation{Line: s.viCursor.Line, Column: hi},
	}, true
}
