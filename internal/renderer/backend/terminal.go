package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/NeroBurner/contour/internal/grid"
	"github.com/NeroBurner/contour/internal/input/key"
	"github.com/NeroBurner/contour/internal/renderer"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen        tcell.Screen
	resizeHandler func(width, height int)
	mu            sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	t.screen.EnableFocus()
	t.screen.EnablePaste()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resizeHandler = callback
}

func (t *Terminal) SetCell(x, y int, cell ScreenCell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := convertStyle(cell.Attributes)
	mainc := ' '
	var combc []rune
	if runes := []rune(cell.Text); len(runes) > 0 {
		mainc = runes[0]
		combc = runes[1:]
	}
	t.screen.SetContent(x, y, mainc, combc, style)
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

func (t *Terminal) SetCursorShape(shape renderer.CursorShape) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var style tcell.CursorStyle
	switch shape {
	case renderer.CursorShapeBlock, renderer.CursorShapeRectangle:
		style = tcell.CursorStyleSteadyBlock
	case renderer.CursorShapeUnderscore:
		style = tcell.CursorStyleSteadyUnderline
	case renderer.CursorShapeBar:
		style = tcell.CursorStyleSteadyBar
	}
	t.screen.SetCursorStyle(style)
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	return convertEvent(ev, t)
}

func (t *Terminal) PostEvent(event Event) {
	// Only key events can be synthesized.
	if event.Type == EventKey {
		tcellEv := tcell.NewEventKey(
			convertToTcellKey(event.Key.Key), event.Key.Rune, convertToTcellMod(event.Key.Modifiers))
		_ = t.screen.PostEvent(tcellEv) // best-effort; event queue may be full
	}
}

func (t *Terminal) HasTrueColor() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Colors() > 256
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

func (t *Terminal) Suspend() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Suspend()
}

func (t *Terminal) Resume() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Resume()
}

// convertStyle converts composited render attributes to a tcell style. The
// attribute colors are always concrete; Inverse and Hidden were already
// folded into them upstream.
func convertStyle(a renderer.RenderAttributes) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(convertColor(a.ForegroundColor)).
		Background(convertColor(a.BackgroundColor))

	if a.Flags.Has(grid.FlagBold) {
		style = style.Bold(true)
	}
	if a.Flags.Has(grid.FlagFaint) {
		style = style.Dim(true)
	}
	if a.Flags.Has(grid.FlagItalic) {
		style = style.Italic(true)
	}
	if a.Flags.Has(grid.FlagBlinking) || a.Flags.Has(grid.FlagRapidBlinking) {
		style = style.Blink(true)
	}
	if a.Flags.Has(grid.FlagCrossedOut) {
		style = style.StrikeThrough(true)
	}

	if underline := underlineStyle(a.Flags); underline != tcell.UnderlineStyleNone {
		style = style.Underline(underline, convertColor(a.DecorationColor))
	}

	return style
}

func underlineStyle(flags grid.CellFlags) tcell.UnderlineStyle {
	switch {
	case flags.Has(grid.FlagDoublyUnderlined):
		return tcell.UnderlineStyleDouble
	case flags.Has(grid.FlagCurlyUnderlined):
		return tcell.UnderlineStyleCurly
	case flags.Has(grid.FlagDottedUnderline):
		return tcell.UnderlineStyleDotted
	case flags.Has(grid.FlagDashedUnderline):
		return tcell.UnderlineStyleDashed
	case flags.Has(grid.FlagUnderline):
		return tcell.UnderlineStyleSolid
	default:
		return tcell.UnderlineStyleNone
	}
}

func convertColor(c grid.RGBColor) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event, t *Terminal) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKeyEvent(e)}

	case *tcell.EventResize:
		w, h := e.Size()
		if t.resizeHandler != nil {
			t.resizeHandler(w, h)
		}
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventPaste:
		// Marks start/end of a bracketed paste; the content follows as
		// key events in between.
		return Event{Type: EventPaste, Focused: e.Start()}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	default:
		return Event{Type: EventNone}
	}
}

// convertKeyEvent translates a tcell key press into a key event. Control
// characters are reported as the plain uppercase letter with the Ctrl
// modifier, which is the form the input grammar matches on.
func convertKeyEvent(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())

	switch e.Key() {
	case tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods)
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods)
	case tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods)
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods)
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods)
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods)
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods)
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods)
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods)
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods)
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods)
	}

	if k := e.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return key.NewSpecialEvent(key.KeyF1+key.Key(k-tcell.KeyF1), mods)
	}
	if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return key.NewRuneEvent('A'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))
	}

	return key.Event{Key: key.KeyNone, Modifiers: mods}
}

// convertToTcellKey converts our Key to tcell.Key.
func convertToTcellKey(k key.Key) tcell.Key {
	switch k {
	case key.KeyRune:
		return tcell.KeyRune
	case key.KeyEscape:
		return tcell.KeyEscape
	case key.KeyEnter:
		return tcell.KeyEnter
	case key.KeyTab:
		return tcell.KeyTab
	case key.KeyBackspace:
		return tcell.KeyBackspace2
	case key.KeyDelete:
		return tcell.KeyDelete
	case key.KeyInsert:
		return tcell.KeyInsert
	case key.KeyHome:
		return tcell.KeyHome
	case key.KeyEnd:
		return tcell.KeyEnd
	case key.KeyPageUp:
		return tcell.KeyPgUp
	case key.KeyPageDown:
		return tcell.KeyPgDn
	case key.KeyUp:
		return tcell.KeyUp
	case key.KeyDown:
		return tcell.KeyDown
	case key.KeyLeft:
		return tcell.KeyLeft
	case key.KeyRight:
		return tcell.KeyRight
	default:
		if k.IsFunctionKey() {
			return tcell.KeyF1 + tcell.Key(k-key.KeyF1)
		}
		return tcell.KeyRune
	}
}

// convertMod converts a tcell modifier mask to our modifier bitfield.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}

// convertToTcellMod converts our modifier bitfield to a tcell modifier mask.
func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.HasShift() {
		result |= tcell.ModShift
	}
	if m.HasCtrl() {
		result |= tcell.ModCtrl
	}
	if m.HasAlt() {
		result |= tcell.ModAlt
	}
	if m.HasMeta() {
		result |= tcell.ModMeta
	}
	return result
}
