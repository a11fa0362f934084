// Package backend draws render buffers onto a terminal and translates
// terminal input into key events.
package backend

import (
	"github.com/NeroBurner/contour/internal/input/key"
	"github.com/NeroBurner/contour/internal/renderer"
)

// ScreenCell is one drawn cell: a grapheme cluster with fully resolved
// render attributes. The zero value is a blank cell with default colors.
type ScreenCell struct {
	// Text is the grapheme cluster; empty for blank and continuation cells.
	Text string

	// Width is the cluster's column width (1 or 2; 0 for continuations).
	Width int

	Attributes renderer.RenderAttributes
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventFocus
	EventPaste
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Resize event fields
	Width, Height int

	// Focus event fields; for paste events, true marks the paste start.
	Focused bool
}

// Backend is the display surface the painter draws to. Implementations
// handle actual drawing to the terminal or a test surface.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions in columns and lines.
	Size() (width, height int)

	// OnResize registers a callback for terminal resize events.
	OnResize(callback func(width, height int))

	// SetCell sets a single cell at the given position.
	// Positions outside the terminal are silently ignored.
	SetCell(x, y int, cell ScreenCell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show synchronizes the internal buffer with the actual display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// SetCursorShape changes the cursor appearance.
	SetCursorShape(shape renderer.CursorShape)

	// PollEvent waits for and returns the next terminal event.
	// This is a blocking call.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)

	// HasTrueColor returns true if the backend supports 24-bit color.
	HasTrueColor() bool

	// Beep produces an audible or visual bell.
	Beep()

	// Suspend suspends the terminal (for shell escape).
	Suspend() error

	// Resume resumes from suspension.
	Resume() error
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	width, height int
	cells         [][]ScreenCell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorShape   renderer.CursorShape
	resizeHandler func(width, height int)
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.cells = make([][]ScreenCell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]ScreenCell, b.width)
	}
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) OnResize(callback func(width, height int)) {
	b.resizeHandler = callback
}

func (b *NullBackend) SetCell(x, y int, cell ScreenCell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) Clear() {
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = ScreenCell{}
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorShape(shape renderer.CursorShape) {
	b.cursorShape = shape
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) HasTrueColor() bool { return true }
func (b *NullBackend) Beep()              {}
func (b *NullBackend) Suspend() error     { return nil }
func (b *NullBackend) Resume() error      { return nil }

// CellAt returns the cell at the given position for testing.
func (b *NullBackend) CellAt(x, y int) ScreenCell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return ScreenCell{}
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorShapeValue returns the current cursor shape for testing.
func (b *NullBackend) CursorShapeValue() renderer.CursorShape {
	return b.cursorShape
}

// Resize simulates a terminal resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
	if b.resizeHandler != nil {
		b.resizeHandler(width, height)
	}
}
