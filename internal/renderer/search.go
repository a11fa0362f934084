package renderer

import "github.com/NeroBurner/contour/internal/grid"

// searchMatcher tracks a rolling match of the active search pattern against
// the cluster text of cells as they are emitted. Offsets are scratch state:
// they reset at build start, at line boundaries, on any non-extending cell,
// and after a completed match.
type searchMatcher struct {
	// codepoints matched so far into the pattern.
	offset int

	// cells emitted for the current partial match.
	cells int
}

func (m *searchMatcher) reset() {
	m.offset = 0
	m.cells = 0
}

// advance feeds one emitted cell's cluster text. It returns done=true when
// the full pattern has been matched, with matchCells the number of trailing
// output cells forming the match.
func (m *searchMatcher) advance(pattern, text []rune) (done bool, matchCells int) {
	if len(text) == 0 || len(text) > len(pattern)-m.offset {
		m.reset()
		return false, 0
	}
	for i, r := range text {
		if pattern[m.offset+i] != r {
			m.reset()
			return false, 0
		}
	}
	m.offset += len(text)
	m.cells++

	if m.offset < len(pattern) {
		return false, 0
	}
	matchCells = m.cells
	m.reset()
	return true, matchCells
}

// matchSearchPattern advances the rolling matcher with the text of the most
// recently emitted cell and, on a completed match, recolors every cell of
// the match with the search-highlight pair. The focused pair is used when
// the match range contains the vi cursor.
func (b *Builder) matchSearchPattern(text []rune) {
	if !b.highlightSearchMatches {
		return
	}
	pattern := b.src.SearchPattern()
	if len(pattern) == 0 {
		return
	}

	done, matchCells := b.matcher.advance(pattern, text)
	if !done {
		return
	}

	cells := b.output.Cells
	front := len(cells) - matchCells

	matchRange := grid.CellLocationRange{
		First:  cells[front].Position,
		Second: cells[len(cells)-1].Position,
	}
	focused := matchRange.Contains(b.src.TranslateGridToScreen(b.src.ViCursorPosition()))

	palette := b.src.ColorPalette()
	highlight := palette.SearchHighlight
	if focused {
		highlight = palette.SearchHighlightFocused
	}

	for i := front; i < len(cells); i++ {
		attr := &cells[i].Attributes
		colors := blendPair(grid.RGBColorPair{
			Foreground: attr.ForegroundColor,
			Background: attr.BackgroundColor,
		}, highlight)
		attr.ForegroundColor = colors.Foreground
		attr.BackgroundColor = colors.Background
	}
}
