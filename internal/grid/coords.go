package grid

import "fmt"

// CellLocation addresses a cell by line and column.
// Screen coordinates are viewport-relative; grid coordinates are absolute
// within the scrollback-extended grid. Both use this type; the viewport
// translation functions convert between the two.
type CellLocation struct {
	Line   int
	Column int
}

// String returns "(line, column)".
func (l CellLocation) String() string {
	return fmt.Sprintf("(%d, %d)", l.Line, l.Column)
}

// Before reports whether l precedes other in top-to-bottom,
// left-to-right order.
func (l CellLocation) Before(other CellLocation) bool {
	return l.Line < other.Line || (l.Line == other.Line && l.Column < other.Column)
}

// CellLocationRange is an inclusive range of cell locations in
// top-to-bottom, left-to-right order.
type CellLocationRange struct {
	First  CellLocation
	Second CellLocation
}

// Contains reports whether the location lies within the inclusive range.
func (r CellLocationRange) Contains(loc CellLocation) bool {
	if loc.Before(r.First) {
		return false
	}
	return !r.Second.Before(loc)
}

// PageSize is the visible page dimension in lines and columns.
type PageSize struct {
	Lines   int
	Columns int
}

// Contains reports whether the screen location lies on the page.
func (p PageSize) Contains(loc CellLocation) bool {
	return loc.Line >= 0 && loc.Line < p.Lines &&
		loc.Column >= 0 && loc.Column < p.Columns
}
