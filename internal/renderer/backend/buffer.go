package backend

import (
	"github.com/mattn/go-runewidth"

	"github.com/NeroBurner/contour/internal/renderer"
)

// ScreenBuffer provides double-buffered drawing with change tracking.
// It maintains two buffers: front (displayed) and back (drawing).
// On sync, it computes the diff and only updates changed cells.
type ScreenBuffer struct {
	width, height int
	front         [][]ScreenCell
	back          [][]ScreenCell
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{
		width:      width,
		height:     height,
		fullRedraw: true,
	}
	sb.allocate()
	return sb
}

func (sb *ScreenBuffer) allocate() {
	sb.front = make([][]ScreenCell, sb.height)
	sb.back = make([][]ScreenCell, sb.height)
	for y := 0; y < sb.height; y++ {
		sb.front[y] = make([]ScreenCell, sb.width)
		sb.back[y] = make([]ScreenCell, sb.width)
	}
}

// Resize resizes the buffer and forces a full redraw.
func (sb *ScreenBuffer) Resize(width, height int) {
	if width == sb.width && height == sb.height {
		return
	}
	sb.width = width
	sb.height = height
	sb.allocate()
	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// SetCell sets a cell in the back buffer.
func (sb *ScreenBuffer) SetCell(x, y int, cell ScreenCell) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.back[y][x] = cell
}

// CellAt returns a cell from the back buffer.
func (sb *ScreenBuffer) CellAt(x, y int) ScreenCell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return ScreenCell{}
	}
	return sb.back[y][x]
}

// Clear resets the back buffer to blank cells.
func (sb *ScreenBuffer) Clear() {
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			sb.back[y][x] = ScreenCell{}
		}
	}
}

// DiffChange represents a cell change for synchronization.
type DiffChange struct {
	X, Y int
	Cell ScreenCell
}

// ComputeDiff returns the changes needed to update the display.
// Returns nil if no changes are needed.
func (sb *ScreenBuffer) ComputeDiff() []DiffChange {
	var changes []DiffChange
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.fullRedraw || sb.back[y][x] != sb.front[y][x] {
				changes = append(changes, DiffChange{X: x, Y: y, Cell: sb.back[y][x]})
			}
		}
	}
	return changes
}

// Sync copies the back buffer to the front buffer.
// Call this after applying changes to the backend.
func (sb *ScreenBuffer) Sync() {
	for y := 0; y < sb.height; y++ {
		copy(sb.front[y], sb.back[y])
	}
	sb.fullRedraw = false
}

// MarkFullRedraw forces a complete redraw on next sync.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}

// Painter draws render buffers to a backend through a diffing screen buffer,
// so an unchanged frame costs no terminal writes.
type Painter struct {
	backend Backend
	buffer  *ScreenBuffer
}

// NewPainter creates a painter over a backend.
func NewPainter(b Backend) *Painter {
	width, height := b.Size()
	return &Painter{
		backend: b,
		buffer:  NewScreenBuffer(width, height),
	}
}

// Init initializes the backend and tracks its size.
func (p *Painter) Init() error {
	if err := p.backend.Init(); err != nil {
		return err
	}
	width, height := p.backend.Size()
	p.buffer.Resize(width, height)
	p.backend.OnResize(func(w, h int) {
		p.buffer.Resize(w, h)
	})
	return nil
}

// Shutdown releases the backend.
func (p *Painter) Shutdown() {
	p.backend.Shutdown()
}

// Draw paints one render buffer: trivial lines first, then the styled cell
// runs, then the cursor. Only cells that changed since the previous frame
// reach the backend.
func (p *Painter) Draw(buf *renderer.RenderBuffer) {
	p.buffer.Clear()

	for i := range buf.Lines {
		p.drawLine(&buf.Lines[i])
	}
	for i := range buf.Cells {
		p.drawCell(&buf.Cells[i])
	}

	for _, change := range p.buffer.ComputeDiff() {
		p.backend.SetCell(change.X, change.Y, change.Cell)
	}
	p.buffer.Sync()

	if buf.Cursor != nil {
		p.backend.SetCursorShape(buf.Cursor.Shape)
		p.backend.ShowCursor(buf.Cursor.Position.Column, buf.Cursor.Position.Line)
	} else {
		p.backend.HideCursor()
	}

	p.backend.Show()
}

// drawLine paints a homogeneous line: its text followed by styled fill up to
// the right edge.
func (p *Painter) drawLine(line *renderer.RenderLine) {
	y := line.LineOffset
	x := 0
	for _, r := range line.Text {
		width := runewidth.RuneWidth(r)
		if width < 1 {
			width = 1
		}
		p.buffer.SetCell(x, y, ScreenCell{
			Text:       string(r),
			Width:      width,
			Attributes: line.TextAttributes,
		})
		for i := 1; i < width; i++ {
			p.buffer.SetCell(x+i, y, ScreenCell{Attributes: line.TextAttributes})
		}
		x += width
	}
	for ; x < p.buffer.width; x++ {
		p.buffer.SetCell(x, y, ScreenCell{Width: 1, Attributes: line.FillAttributes})
	}
}

func (p *Painter) drawCell(cell *renderer.RenderCell) {
	p.buffer.SetCell(cell.Position.Column, cell.Position.Line, ScreenCell{
		Text:       string(cell.Codepoints),
		Width:      cell.Width,
		Attributes: cell.Attributes,
	})
	for i := 1; i < cell.Width; i++ {
		p.buffer.SetCell(cell.Position.Column+i, cell.Position.Line,
			ScreenCell{Attributes: cell.Attributes})
	}
}

// Backend returns the wrapped backend.
func (p *Painter) Backend() Backend {
	return p.backend
}

// MarkFullRedraw forces the next Draw to repaint every cell.
func (p *Painter) MarkFullRedraw() {
	p.buffer.MarkFullRedraw()
}
