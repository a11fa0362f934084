package vi

import "github.com/NeroBurner/contour/internal/input/key"

// inputMatch pairs a character with its modifiers for dispatch-table lookup.
type inputMatch struct {
	mods key.Modifier
	ch   rune
}

// Handler is the modal input state machine. It is long-lived: one handler per
// terminal session, fed one event at a time from the input thread. The
// Send methods return false only when the event must be forwarded to the
// application (insert mode); true means the event was consumed.
type Handler struct {
	executor Executor
	logger   Logger

	mode           Mode
	searchEditMode SearchEditMode
	searchTerm     []rune

	count              int
	pendingOperator    Operator
	hasPendingOperator bool
	pendingScope       TextObjectScope
	hasPendingScope    bool
}

// NewHandler creates a handler in insert mode. A nil logger discards
// diagnostics.
func NewHandler(executor Executor, logger Logger) *Handler {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Handler{
		executor: executor,
		logger:   logger,
		mode:     ModeInsert,
	}
}

// Mode returns the current primary mode.
func (h *Handler) Mode() Mode {
	return h.mode
}

// SearchEditMode returns the current search-editor sub-mode.
func (h *Handler) SearchEditMode() SearchEditMode {
	return h.searchEditMode
}

// SearchTerm returns a copy of the search term being edited.
func (h *Handler) SearchTerm() []rune {
	term := make([]rune, len(h.searchTerm))
	copy(term, h.searchTerm)
	return term
}

// SetMode switches the primary mode, notifying the executor and clearing all
// pending grammar state on an effective change.
func (h *Handler) SetMode(mode Mode) {
	h.setMode(mode)
}

func (h *Handler) setMode(mode Mode) {
	if h.mode == mode {
		return
	}

	h.mode = mode
	h.count = 0
	h.hasPendingOperator = false
	h.hasPendingScope = false

	h.executor.ModeChanged(mode)
}

// toggleMode switches to newMode, or back to Normal when newMode is already
// active.
func (h *Handler) toggleMode(newMode Mode) {
	if newMode != h.mode {
		h.setMode(newMode)
	} else {
		h.setMode(ModeNormal)
	}
}

// SendKey feeds a special-key press. It returns false when the event must be
// forwarded to the application.
func (h *Handler) SendKey(k key.Key, mods key.Modifier) bool {
	if h.searchEditMode != SearchEditDisabled {
		// TODO: support cursor movement inside the search editor.
		h.logger.Error("vi: ignoring key input %v+%v in search mode", mods, k)
		return true
	}

	if h.mode == ModeInsert {
		return false
	}

	if !mods.IsEmpty() {
		return true
	}

	switch k {
	case key.KeyDown:
		return h.executePendingOrMoveCursor(MotionLineDown)
	case key.KeyLeft:
		return h.executePendingOrMoveCursor(MotionCharLeft)
	case key.KeyRight:
		return h.executePendingOrMoveCursor(MotionCharRight)
	case key.KeyUp:
		return h.executePendingOrMoveCursor(MotionLineUp)
	case key.KeyInsert:
		h.setMode(ModeInsert)
		return true
	case key.KeyHome:
		return h.executePendingOrMoveCursor(MotionFileBegin)
	case key.KeyEnd:
		return h.executePendingOrMoveCursor(MotionFileEnd)
	case key.KeyPageUp:
		return h.executePendingOrMoveCursor(MotionPageUp)
	case key.KeyPageDown:
		return h.executePendingOrMoveCursor(MotionPageDown)
	}
	return true
}

// SendChar feeds a character press. It returns false when the event must be
// forwarded to the application.
func (h *Handler) SendChar(ch rune, mods key.Modifier) bool {
	if h.searchEditMode != SearchEditDisabled {
		return h.handleSearchEditor(ch, mods)
	}

	switch h.mode {
	case ModeInsert:
		return false
	case ModeNormal:
		h.handleNormalMode(ch, mods)
		return true
	default:
		h.handleVisualMode(ch, mods)
		return true
	}
}

// StartSearchExternally opens the search editor programmatically. When called
// from insert mode, the handler switches to Normal (so the search prompt is
// visible) and remembers to restore insert mode once the editor closes.
func (h *Handler) StartSearchExternally() {
	h.searchTerm = h.searchTerm[:0]
	h.executor.SearchStart()

	if h.mode != ModeInsert {
		h.searchEditMode = SearchEditEnabled
	} else {
		h.searchEditMode = SearchEditExternallyEnabled
		h.setMode(ModeNormal)
	}
}

// startSearch opens the search editor from within vi mode.
func (h *Handler) startSearch() {
	h.searchEditMode = SearchEditEnabled
	h.searchTerm = h.searchTerm[:0]
	h.executor.SearchStart()
}

// closeSearch leaves the search editor, restoring insert mode when the editor
// was opened externally.
func (h *Handler) closeSearch() {
	if h.searchEditMode == SearchEditExternallyEnabled {
		h.setMode(ModeInsert)
	}
	h.searchEditMode = SearchEditDisabled
}

// handleSearchEditor processes one character while the search editor is open.
// Every character event is consumed in this sub-mode.
func (h *Handler) handleSearchEditor(ch rune, mods key.Modifier) bool {
	switch (inputMatch{mods, ch}) {
	case inputMatch{key.ModNone, '\x1b'}:
		h.searchTerm = h.searchTerm[:0]
		h.closeSearch()
		h.executor.SearchCancel()
	case inputMatch{key.ModNone, '\r'}:
		h.closeSearch()
		h.executor.SearchDone()
	case inputMatch{key.ModNone, '\b'}, inputMatch{key.ModNone, '\x7f'}:
		if len(h.searchTerm) > 0 {
			h.searchTerm = h.searchTerm[:len(h.searchTerm)-1]
		}
		h.executor.UpdateSearchTerm(h.SearchTerm())
	case inputMatch{key.ModCtrl, 'L'}, inputMatch{key.ModCtrl, 'U'}:
		h.searchTerm = h.searchTerm[:0]
		h.executor.UpdateSearchTerm(h.SearchTerm())
	default:
		if ch >= 0x20 && mods.Without(key.ModShift).IsEmpty() {
			h.searchTerm = append(h.searchTerm, ch)
			h.executor.UpdateSearchTerm(h.SearchTerm())
		} else {
			h.logger.Error("vi: ignoring control code %v+%#x in search mode", mods, ch)
		}
	}
	return true
}

// parseCount accumulates a count prefix. A leading '0' is not a count digit;
// it is the line-begin motion.
func (h *Handler) parseCount(ch rune, mods key.Modifier) bool {
	if !mods.IsEmpty() {
		return false
	}
	if ch == '0' && h.count == 0 {
		return false
	}
	if ch >= '0' && ch <= '9' {
		h.count = h.count*10 + int(ch-'0')
		return true
	}
	return false
}

func (h *Handler) countOrOne() int {
	if h.count > 0 {
		return h.count
	}
	return 1
}

// resetPending clears the count, operator, and text-object scope. It runs at
// every commit point of the grammar.
func (h *Handler) resetPending() {
	h.count = 0
	h.hasPendingOperator = false
	h.hasPendingScope = false
}

func (h *Handler) yank(scope TextObjectScope, obj TextObject) {
	h.executor.Yank(scope, obj)
	h.resetPending()
}

func (h *Handler) selectObject(scope TextObjectScope, obj TextObject) {
	h.executor.Select(scope, obj)
	h.resetPending()
}

func (h *Handler) execute(op Operator, motion Motion) {
	h.executor.Execute(op, motion, h.countOrOne())
	h.resetPending()
}

// executePendingOrMoveCursor commits a motion: it either moves the cursor or
// applies the pending operator over the motion, then clears all pending state.
func (h *Handler) executePendingOrMoveCursor(motion Motion) bool {
	op := OperatorMoveCursor
	if h.hasPendingOperator {
		op = h.pendingOperator
	}

	switch op {
	case OperatorMoveCursor:
		h.executor.MoveCursor(motion, h.countOrOne())
	case OperatorYank:
		// Yank over a bare motion is not supported; only text objects,
		// "yy", and visual selections can be yanked.
		h.logger.Error("vi: yank over motion %v not implemented", motion)
	case OperatorPaste:
		h.executor.Paste(h.countOrOne())
	case OperatorReverseSearchCurrentWord:
		h.executor.ReverseSearchCurrentWord()
	}

	h.resetPending()
	return true
}

// parseModeSwitch handles the mode-switching keys shared by Normal and the
// visual modes.
func (h *Handler) parseModeSwitch(ch rune, mods key.Modifier) bool {
	switch (inputMatch{mods, ch}) {
	case inputMatch{key.ModCtrl, 'V'}:
		h.toggleMode(ModeVisualBlock)
		return true
	case inputMatch{key.ModShift, 'V'}:
		h.toggleMode(ModeVisualLine)
		return true
	case inputMatch{key.ModNone, 'a'}, inputMatch{key.ModNone, 'i'}:
		if !h.hasPendingOperator && h.mode == ModeNormal {
			h.toggleMode(ModeInsert)
			return true
		}
	case inputMatch{key.ModNone, 'v'}:
		h.toggleMode(ModeVisual)
		return true
	}
	return false
}

func (h *Handler) handleNormalMode(ch rune, mods key.Modifier) {
	if h.parseModeSwitch(ch, mods) {
		return
	}
	if h.parseCount(ch, mods) {
		return
	}

	switch (inputMatch{mods.Without(key.ModShift), ch}) {
	case inputMatch{key.ModNone, '/'}:
		h.startSearch()
		return
	case inputMatch{key.ModNone, '#'}:
		h.executor.ReverseSearchCurrentWord()
		return
	case inputMatch{key.ModNone, '*'}:
		h.executor.SearchCurrentWord()
		return
	case inputMatch{key.ModNone, 'p'}:
		h.executor.Paste(h.countOrOne())
		return
	case inputMatch{key.ModNone, 'n'}:
		h.executor.JumpToNextMatch(h.countOrOne())
		return
	case inputMatch{key.ModNone, 'N'}:
		h.executor.JumpToPreviousMatch(h.countOrOne())
		return
	case inputMatch{key.ModNone, 'y'}:
		switch {
		case !h.hasPendingOperator:
			h.pendingOperator = OperatorYank
			h.hasPendingOperator = true
		case h.pendingOperator == OperatorYank:
			h.execute(OperatorYank, MotionFullLine)
		default:
			h.hasPendingOperator = false
		}
		return
	}

	h.parseTextObject(ch, mods)
}

func (h *Handler) handleVisualMode(ch rune, mods key.Modifier) {
	if h.parseModeSwitch(ch, mods) {
		return
	}
	if h.parseCount(ch, mods) {
		return
	}

	if h.hasPendingScope {
		if obj, ok := charToTextObject(ch); ok {
			h.selectObject(h.pendingScope, obj)
			return
		}
	}

	switch (inputMatch{mods.Without(key.ModShift), ch}) {
	case inputMatch{key.ModNone, '/'}:
		h.startSearch()
		return
	case inputMatch{key.ModNone, '\x1b'}:
		h.setMode(ModeNormal)
		return
	case inputMatch{key.ModNone, '#'}:
		h.executor.ReverseSearchCurrentWord()
		return
	case inputMatch{key.ModNone, '*'}:
		h.executor.SearchCurrentWord()
		return
	case inputMatch{key.ModNone, 'Y'}:
		h.execute(OperatorYank, MotionFullLine)
		return
	case inputMatch{key.ModNone, 'a'}:
		h.pendingScope = ScopeA
		h.hasPendingScope = true
		return
	case inputMatch{key.ModNone, 'i'}:
		h.pendingScope = ScopeInner
		h.hasPendingScope = true
		return
	case inputMatch{key.ModNone, 'y'}:
		h.execute(OperatorYank, MotionSelection)
		return
	case inputMatch{key.ModNone, 'n'}:
		h.executor.JumpToNextMatch(h.countOrOne())
		return
	case inputMatch{key.ModNone, 'N'}:
		h.executor.JumpToPreviousMatch(h.countOrOne())
		return
	}

	h.parseTextObject(ch, mods)
}

// parseTextObject handles text-object scope/selector characters and the
// shared motion dispatch table. It returns false when the input matched
// nothing.
func (h *Handler) parseTextObject(ch rune, mods key.Modifier) bool {
	stripped := inputMatch{mods.Without(key.ModShift), ch}

	if h.mode != ModeNormal || h.hasPendingOperator {
		switch stripped {
		case inputMatch{key.ModNone, 'i'}:
			h.pendingScope = ScopeInner
			h.hasPendingScope = true
			return true
		case inputMatch{key.ModNone, 'a'}:
			h.pendingScope = ScopeA
			h.hasPendingScope = true
			return true
		}
	}

	if h.hasPendingScope && h.hasPendingOperator {
		if obj, ok := charToTextObject(ch); ok {
			switch h.pendingOperator {
			case OperatorYank:
				h.yank(h.pendingScope, obj)
			default:
				h.logger.Error("vi: cannot apply operator %v to a text object", h.pendingOperator)
			}
			return true
		}
	}

	switch stripped {
	case inputMatch{key.ModCtrl, 'D'}:
		return h.executePendingOrMoveCursor(MotionPageDown)
	case inputMatch{key.ModCtrl, 'U'}:
		return h.executePendingOrMoveCursor(MotionPageUp)
	case inputMatch{key.ModNone, '$'}:
		return h.executePendingOrMoveCursor(MotionLineEnd)
	case inputMatch{key.ModNone, '%'}:
		return h.executePendingOrMoveCursor(MotionParenthesisMatching)
	case inputMatch{key.ModNone, '0'}:
		return h.executePendingOrMoveCursor(MotionLineBegin)
	case inputMatch{key.ModNone, '^'}:
		return h.executePendingOrMoveCursor(MotionLineTextBegin)
	case inputMatch{key.ModNone, 'G'}:
		return h.executePendingOrMoveCursor(MotionFileEnd)
	case inputMatch{key.ModNone, 'N'}:
		return h.executePendingOrMoveCursor(MotionSearchResultBackward)
	case inputMatch{key.ModNone, 'b'}:
		return h.executePendingOrMoveCursor(MotionWordBackward)
	case inputMatch{key.ModNone, 'e'}:
		return h.executePendingOrMoveCursor(MotionWordEndForward)
	case inputMatch{key.ModNone, 'g'}:
		return h.executePendingOrMoveCursor(MotionFileBegin)
	case inputMatch{key.ModNone, 'h'}:
		return h.executePendingOrMoveCursor(MotionCharLeft)
	case inputMatch{key.ModNone, 'j'}:
		return h.executePendingOrMoveCursor(MotionLineDown)
	case inputMatch{key.ModNone, 'k'}:
		return h.executePendingOrMoveCursor(MotionLineUp)
	case inputMatch{key.ModNone, 'J'}:
		h.executor.ScrollViewport(-1)
		return h.executePendingOrMoveCursor(MotionLineDown)
	case inputMatch{key.ModNone, 'K'}:
		h.executor.ScrollViewport(+1)
		return h.executePendingOrMoveCursor(MotionLineUp)
	case inputMatch{key.ModNone, 'H'}:
		return h.executePendingOrMoveCursor(MotionPageTop)
	case inputMatch{key.ModNone, 'L'}:
		return h.executePendingOrMoveCursor(MotionPageBottom)
	case inputMatch{key.ModNone, 'l'}:
		return h.executePendingOrMoveCursor(MotionCharRight)
	case inputMatch{key.ModNone, 'n'}:
		return h.executePendingOrMoveCursor(MotionSearchResultForward)
	case inputMatch{key.ModNone, 'w'}:
		return h.executePendingOrMoveCursor(MotionWordForward)
	case inputMatch{key.ModNone, '{'}:
		return h.executePendingOrMoveCursor(MotionParagraphBackward)
	case inputMatch{key.ModNone, '|'}:
		return h.executePendingOrMoveCursor(MotionScreenColumn)
	case inputMatch{key.ModNone, '}'}:
		return h.executePendingOrMoveCursor(MotionParagraphForward)
	}

	if !mods.IsEmpty() {
		return false
	}

	if obj, ok := charToTextObject(ch); ok {
		switch h.mode {
		case ModeNormal:
			if h.hasPendingScope && h.hasPendingOperator && h.pendingOperator == OperatorYank {
				h.yank(h.pendingScope, obj)
			}
		case ModeVisual, ModeVisualLine, ModeVisualBlock:
			if h.hasPendingScope {
				h.selectObject(h.pendingScope, obj)
			}
		}
		return true
	}

	return false
}
