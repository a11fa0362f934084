package renderer

import "github.com/NeroBurner/contour/internal/grid"

// CursorShape is the visual form of the rendered cursor.
type CursorShape uint8

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeRectangle
	CursorShapeUnderscore
	CursorShapeBar
)

// String returns the shape name.
func (s CursorShape) String() string {
	switch s {
	case CursorShapeBlock:
		return "Block"
	case CursorShapeRectangle:
		return "Rectangle"
	case CursorShapeUnderscore:
		return "Underscore"
	case CursorShapeBar:
		return "Bar"
	default:
		return "Unknown"
	}
}

// RenderAttributes is the fully composited style of one render cell:
// resolved colors only, no palette references left.
type RenderAttributes struct {
	ForegroundColor grid.RGBColor
	BackgroundColor grid.RGBColor
	DecorationColor grid.RGBColor
	Flags           grid.CellFlags
}

// RenderCell is one styled grapheme cluster positioned on screen.
// GroupStart/GroupEnd bracket maximal runs of visually contiguous cells.
type RenderCell struct {
	// Codepoints form one grapheme cluster; empty for fill cells.
	Codepoints []rune

	Position grid.CellLocation

	// Width is the cluster's column width (1 or 2).
	Width int

	Attributes RenderAttributes

	// Image is non-nil when the cell shows an inline-image fragment.
	Image *grid.ImageFragment

	GroupStart bool
	GroupEnd   bool
}

// RenderLine is the homogeneous-line summary used when an entire line shares
// one text attribute set and no per-cell overlay applies.
type RenderLine struct {
	LineOffset     int
	UsedColumns    int
	Text           string
	TextAttributes RenderAttributes
	FillAttributes RenderAttributes
}

// RenderCursor describes the visible cursor; absent from the buffer when the
// cursor is hidden or scrolled out of view.
type RenderCursor struct {
	Position  grid.CellLocation
	Shape     CursorShape
	CellWidth int
}

// RenderBuffer is the flat output of one builder pass. It has output
// parameter semantics: the owner allocates it once and every Build call
// fully overwrites it.
type RenderBuffer struct {
	FrameID uint64
	Cursor  *RenderCursor
	Cells   []RenderCell
	Lines   []RenderLine
}

// Reset clears the buffer for the next frame, retaining capacity.
func (b *RenderBuffer) Reset() {
	b.FrameID = 0
	b.Cursor = nil
	b.Cells = b.Cells[:0]
	b.Lines = b.Lines[:0]
}
