package renderer

import "github.com/NeroBurner/contour/internal/grid"

// InputMethodData carries the IME composition state for one frame.
type InputMethodData struct {
	// PreeditString is the text being composed, rendered in place of the
	// cell(s) under the cursor while non-empty.
	PreeditString string
}

// Source is the read-only grid snapshot the builder consumes. One Build call
// reads one consistent frame; implementations must not mutate underlying
// state during the call.
//
// Screen coordinates are viewport-relative, grid coordinates are absolute;
// the translation methods convert between the two using the current scroll
// offset.
type Source interface {
	// PageSize returns the visible page dimensions.
	PageSize() grid.PageSize

	// ScrollOffset returns the screen-minus-grid line delta of the
	// viewport: screen line = grid line + ScrollOffset().
	ScrollOffset() int

	// TranslateScreenToGrid converts a screen location to grid coordinates.
	TranslateScreenToGrid(screen grid.CellLocation) grid.CellLocation

	// TranslateGridToScreen converts a grid location to screen coordinates.
	TranslateGridToScreen(gridLoc grid.CellLocation) grid.CellLocation

	// IsLineVisible reports whether the grid line is inside the viewport.
	IsLineVisible(gridLine int) bool

	// TrivialLineAt returns the compact buffer for a screen line when the
	// line is stored in trivial (homogeneous-attribute) form.
	TrivialLineAt(screenLine int) (grid.TrivialLineBuffer, bool)

	// CellAt returns the cell at a screen location.
	CellAt(screen grid.CellLocation) grid.Cell

	// CellWidthAt returns the column width of the cell at a grid location.
	CellWidthAt(gridLoc grid.CellLocation) int

	// IsSelected reports selection membership for a grid location.
	IsSelected(gridLoc grid.CellLocation) bool

	// IsHighlighted reports yank-highlight membership for a grid location.
	IsHighlighted(gridLoc grid.CellLocation) bool

	// BlinkState is the slow blink phase; false renders blinking cells
	// invisible (foreground collapsed into background).
	BlinkState() bool

	// RapidBlinkState is the rapid blink phase.
	RapidBlinkState() bool

	// ColorPalette returns the palette for this frame.
	ColorPalette() *grid.ColorPalette

	// Hyperlinks resolves hyperlink ids; may return nil.
	Hyperlinks() *grid.HyperlinkStore

	// CursorVisible reports whether the cursor is currently shown.
	CursorVisible() bool

	// CursorShape is the configured cursor shape.
	CursorShape() CursorShape

	// Focused reports whether the terminal window has focus. Unfocused
	// terminals render a rectangle cursor regardless of shape.
	Focused() bool

	// RealCursorPosition is the grid position of the VT cursor.
	RealCursorPosition() grid.CellLocation

	// ViCursorPosition is the grid position of the vi-mode cursor.
	ViCursorPosition() grid.CellLocation

	// ViModeInsert reports whether the vi input handler is in insert mode,
	// in which case the VT cursor, not the vi cursor, is rendered.
	ViModeInsert() bool

	// SearchPattern returns the active search pattern, empty when none.
	SearchPattern() []rune

	// InputMethod returns the IME composition state.
	InputMethod() InputMethodData

	// FrameID identifies the frame being rendered.
	FrameID() uint64

	// ReverseVideo reports the screen-wide reverse video mode (DECSCNM).
	ReverseVideo() bool
}
