package renderer

import "github.com/NeroBurner/contour/internal/grid"

// runState is the per-line run detection automaton: Gap emits nothing,
// Sequence emits cells. Transitions mark GroupStart/GroupEnd so that every
// maximal run is bracketed by exactly one of each.
type runState uint8

const (
	runGap runState = iota
	runSequence
)

// enableSimpleLineRendering gates the homogeneous-line fast path.
// It stays disabled until the fast path provably produces the same output
// as the per-cell path when selection, search, or cursor overlays touch the
// line; re-enabling it must not change observable output.
const enableSimpleLineRendering = false

// BuildOptions configures one Build call.
type BuildOptions struct {
	// BaseLine offsets all emitted line numbers, letting the caller stack
	// multiple screens (e.g. a status line) into one buffer.
	BaseLine int

	// HighlightSearchMatches enables the rolling search-match recoloring.
	HighlightSearchMatches bool
}

// Builder compiles one frame of grid state into a RenderBuffer.
//
// A Builder is reusable but not reentrant: one Build call per frame, and
// calls must be serialized by the caller. All fields below the configuration
// block are scratch state scoped to a single construction and reset at the
// start of every Build.
type Builder struct {
	src                    Source
	output                 *RenderBuffer
	baseLine               int
	reverseVideo           bool
	highlightSearchMatches bool
	ime                    InputMethodData

	// cursorPosition is the grid position the cursor overlay paints: the VT
	// cursor in insert mode, the vi cursor otherwise.
	cursorPosition grid.CellLocation

	state          runState
	lineNr         int
	prevWidth      int
	prevHasCursor  bool
	isNewLine      bool
	imeSkipColumns int
	matcher        searchMatcher
}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build compiles one frame from src into output. The output buffer is fully
// overwritten; previous contents do not survive.
func (b *Builder) Build(src Source, output *RenderBuffer, opts BuildOptions) {
	b.src = src
	b.output = output
	b.baseLine = opts.BaseLine
	b.reverseVideo = src.ReverseVideo()
	b.highlightSearchMatches = opts.HighlightSearchMatches
	b.ime = src.InputMethod()

	if src.ViModeInsert() {
		b.cursorPosition = src.RealCursorPosition()
	} else {
		b.cursorPosition = src.ViCursorPosition()
	}

	b.state = runGap
	b.lineNr = 0
	b.prevWidth = 0
	b.prevHasCursor = false
	b.isNewLine = false
	b.imeSkipColumns = 0
	b.matcher.reset()

	output.Reset()
	output.FrameID = src.FrameID()
	output.Cursor = b.renderCursor()

	size := src.PageSize()
	for line := 0; line < size.Lines; line++ {
		if lineBuffer, ok := src.TrivialLineAt(line); ok {
			b.renderTrivialLine(lineBuffer, line)
			continue
		}
		b.startLine(line)
		for column := 0; column < size.Columns; column++ {
			b.renderCell(src.CellAt(grid.CellLocation{Line: line, Column: column}), line, column)
		}
		b.endLine()
	}
}

// renderCursor builds the cursor descriptor, or nil when the cursor is
// hidden or its line is scrolled out of view. Unfocused terminals fall back
// to a hollow rectangle regardless of the configured shape.
func (b *Builder) renderCursor() *RenderCursor {
	if !b.src.CursorVisible() || !b.src.IsLineVisible(b.cursorPosition.Line) {
		return nil
	}

	shape := CursorShapeRectangle
	if b.src.Focused() {
		shape = b.src.CursorShape()
	}

	screenPosition := grid.CellLocation{
		Line:   b.cursorPosition.Line + b.src.ScrollOffset(),
		Column: b.cursorPosition.Column,
	}

	return &RenderCursor{
		Position:  screenPosition,
		Shape:     shape,
		CellWidth: b.src.CellWidthAt(b.cursorPosition),
	}
}

func (b *Builder) startLine(line int) {
	b.isNewLine = true
	b.lineNr = line
	b.prevWidth = 0
	b.prevHasCursor = false
	b.matcher.reset()
}

func (b *Builder) endLine() {
	if len(b.output.Cells) > 0 {
		b.output.Cells[len(b.output.Cells)-1].GroupEnd = true
	}
	b.matcher.reset()
}

// makeColorsForCell composites the color pair for the cell at gridPosition.
// The cursor overlay paints only a visible block cursor, on its own cell or
// on the cell immediately after a double-width cursor cell.
func (b *Builder) makeColorsForCell(
	gridPosition grid.CellLocation,
	flags grid.CellFlags,
	fg, bg grid.Color,
) grid.RGBColorPair {
	hasCursor := gridPosition == b.cursorPosition
	paintCursor := (hasCursor || (b.prevHasCursor && b.prevWidth == 2)) &&
		b.output.Cursor != nil &&
		b.output.Cursor.Shape == CursorShapeBlock

	return makeColors(
		b.src.ColorPalette(),
		flags,
		b.reverseVideo,
		fg, bg,
		b.src.IsSelected(gridPosition),
		paintCursor,
		b.src.IsHighlighted(gridPosition),
		b.src.BlinkState(),
		b.src.RapidBlinkState(),
	)
}

// createRenderAttributes composites the full attribute set for a line-run
// position from its graphics attributes.
func (b *Builder) createRenderAttributes(
	gridPosition grid.CellLocation,
	attr grid.GraphicsAttributes,
) RenderAttributes {
	colors := b.makeColorsForCell(gridPosition, attr.Flags, attr.Foreground, attr.Background)
	return RenderAttributes{
		ForegroundColor: colors.Foreground,
		BackgroundColor: colors.Background,
		DecorationColor: underlineColor(b.src.ColorPalette(), attr.Flags, colors.Foreground, attr.UnderlineColor),
		Flags:           attr.Flags,
	}
}

// makeRenderCellExplicit builds a render cell from explicit cluster text and
// already-composited colors.
func (b *Builder) makeRenderCellExplicit(
	cluster []rune,
	width int,
	flags grid.CellFlags,
	colors grid.RGBColorPair,
	ul grid.Color,
	line, column int,
) RenderCell {
	return RenderCell{
		Codepoints: cluster,
		Position:   grid.CellLocation{Line: line, Column: column},
		Width:      width,
		Attributes: RenderAttributes{
			ForegroundColor: colors.Foreground,
			BackgroundColor: colors.Background,
			DecorationColor: underlineColor(b.src.ColorPalette(), flags, colors.Foreground, ul),
			Flags:           flags,
		},
	}
}

// makeRenderCell builds a render cell from a grid cell, applying hyperlink
// decoration when the cell's hyperlink id resolves.
func (b *Builder) makeRenderCell(cell grid.Cell, colors grid.RGBColorPair, line, column int) RenderCell {
	palette := b.src.ColorPalette()

	rc := RenderCell{
		Codepoints: cell.Codepoints,
		Position:   grid.CellLocation{Line: line, Column: column},
		Width:      cell.Width,
		Attributes: RenderAttributes{
			ForegroundColor: colors.Foreground,
			BackgroundColor: colors.Background,
			DecorationColor: underlineColor(palette, cell.Attributes.Flags, colors.Foreground, cell.Attributes.UnderlineColor),
			Flags:           cell.Attributes.Flags,
		},
		Image: cell.Image,
	}

	if href := b.src.Hyperlinks().ByID(cell.Hyperlink); href != nil {
		if href.State == grid.HyperlinkHover {
			rc.Attributes.Flags = rc.Attributes.Flags.With(grid.FlagUnderline)
			rc.Attributes.DecorationColor = palette.HyperlinkDecoration.Hover
		} else {
			rc.Attributes.Flags = rc.Attributes.Flags.With(grid.FlagDottedUnderline)
			rc.Attributes.DecorationColor = palette.HyperlinkDecoration.Normal
		}
	}

	return rc
}

// createRenderLine builds the homogeneous-line summary for a trivial line.
func (b *Builder) createRenderLine(lineBuffer grid.TrivialLineBuffer, lineOffset int) RenderLine {
	gridPosition := b.src.TranslateScreenToGrid(grid.CellLocation{Line: lineOffset})
	return RenderLine{
		LineOffset:     lineOffset,
		UsedColumns:    lineBuffer.UsedColumns,
		Text:           lineBuffer.Text,
		TextAttributes: b.createRenderAttributes(gridPosition, lineBuffer.TextAttributes),
		FillAttributes: b.createRenderAttributes(gridPosition, lineBuffer.FillAttributes),
	}
}

// renderTrivialLine renders a line stored in trivial form: the text as one
// run of cells, then explicit fill cells up to page width, the whole line
// sharing a single GroupStart/GroupEnd bracket.
func (b *Builder) renderTrivialLine(lineBuffer grid.TrivialLineBuffer, lineOffset int) {
	frontIndex := len(b.output.Cells)

	if enableSimpleLineRendering {
		b.output.Lines = append(b.output.Lines, b.createRenderLine(lineBuffer, lineOffset))
		b.lineNr = lineOffset
		b.prevWidth = 0
		b.prevHasCursor = false
		return
	}

	pageColumns := b.src.PageSize().Columns
	textMargin := min(pageColumns, lineBuffer.UsedColumns)

	b.matcher.reset()
	b.renderUtf8Text(grid.CellLocation{Line: lineOffset}, lineBuffer.TextAttributes, lineBuffer.Text, true)

	// Fill the remaining columns with explicit empty cells.
	for column := textMargin; column < pageColumns; column++ {
		gridPosition := b.src.TranslateScreenToGrid(grid.CellLocation{Line: lineOffset, Column: column})
		colors := b.makeColorsForCell(
			gridPosition,
			lineBuffer.FillAttributes.Flags,
			lineBuffer.FillAttributes.Foreground,
			lineBuffer.FillAttributes.Background,
		)
		b.output.Cells = append(b.output.Cells, b.makeRenderCellExplicit(
			nil,
			1,
			lineBuffer.FillAttributes.Flags,
			colors,
			lineBuffer.FillAttributes.UnderlineColor,
			b.baseLine+lineOffset,
			column,
		))
	}

	if len(b.output.Cells) > frontIndex {
		b.output.Cells[frontIndex].GroupStart = true
		b.output.Cells[len(b.output.Cells)-1].GroupEnd = true
	}
	b.matcher.reset()
}

// renderUtf8Text emits one render cell per grapheme cluster of text,
// starting at screenPosition, and returns the number of columns consumed.
func (b *Builder) renderUtf8Text(
	screenPosition grid.CellLocation,
	attr grid.GraphicsAttributes,
	text string,
	allowMatchSearchPattern bool,
) int {
	columns := 0
	for _, cluster := range graphemeClusters(text) {
		position := grid.CellLocation{Line: screenPosition.Line, Column: screenPosition.Column + columns}
		gridPosition := b.src.TranslateScreenToGrid(position)
		colors := b.makeColorsForCell(gridPosition, attr.Flags, attr.Foreground, attr.Background)
		width := graphemeClusterWidth(cluster)

		b.output.Cells = append(b.output.Cells, b.makeRenderCellExplicit(
			cluster,
			width,
			attr.Flags,
			colors,
			attr.UnderlineColor,
			b.baseLine+position.Line,
			position.Column,
		))

		columns += width
		b.lineNr = screenPosition.Line
		b.prevWidth = 0
		b.prevHasCursor = false

		if allowMatchSearchPattern {
			b.matchSearchPattern(cluster)
		}
	}
	return columns
}

// renderCell runs one column through the Gap/Sequence automaton, handling
// the IME overlay when the column coincides with the cursor.
func (b *Builder) renderCell(cell grid.Cell, line, column int) {
	screenPosition := grid.CellLocation{Line: line, Column: column}
	gridPosition := b.src.TranslateScreenToGrid(screenPosition)

	// Render the IME preedit string in place of the underlying cell(s) when
	// the grid cursor coincides with this position.
	if gridPosition == b.cursorPosition && b.ime.PreeditString != "" {
		preeditAttr := grid.GraphicsAttributes{
			Foreground: grid.TrueColor(0xFF, 0xFF, 0xFF),
			Background: grid.TrueColor(0xFF, 0x00, 0x00),
			Flags:      grid.FlagBold | grid.FlagUnderline,
		}

		if len(b.output.Cells) > 0 {
			b.output.Cells[len(b.output.Cells)-1].GroupEnd = true
		}

		frontIndex := len(b.output.Cells)
		b.imeSkipColumns = b.renderUtf8Text(screenPosition, preeditAttr, b.ime.PreeditString, false)
		if b.imeSkipColumns > 0 {
			if b.output.Cursor != nil {
				b.output.Cursor.Position.Column += b.imeSkipColumns
			}
			b.output.Cells[frontIndex].GroupStart = true
			b.output.Cells[len(b.output.Cells)-1].GroupEnd = true
		}

		b.state = runGap
	}

	if b.imeSkipColumns > 0 {
		// Skip grid cells already covered by the rendered preedit text.
		b.imeSkipColumns--
		return
	}

	colors := b.makeColorsForCell(gridPosition, cell.Attributes.Flags, cell.Attributes.Foreground, cell.Attributes.Background)

	b.prevWidth = cell.Width
	b.prevHasCursor = gridPosition == b.cursorPosition

	cellEmpty := cell.Empty()
	customBackground := colors.Background != b.src.ColorPalette().DefaultBackground ||
		cell.Attributes.Flags != grid.FlagNone

	switch b.state {
	case runGap:
		if !cellEmpty || customBackground {
			b.state = runSequence
			rc := b.makeRenderCell(cell, colors, b.baseLine+line, column)
			rc.GroupStart = true
			b.output.Cells = append(b.output.Cells, rc)
		}
	case runSequence:
		if cellEmpty && !customBackground {
			b.output.Cells[len(b.output.Cells)-1].GroupEnd = true
			b.state = runGap
		} else {
			rc := b.makeRenderCell(cell, colors, b.baseLine+line, column)
			if b.isNewLine {
				rc.GroupStart = true
			}
			b.output.Cells = append(b.output.Cells, rc)
		}
	}
	b.isNewLine = false

	b.matchSearchPattern(cell.Codepoints)
}
