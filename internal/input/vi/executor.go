package vi

// Executor receives the commands the handler's grammar produces. The terminal
// session implements it; the handler never touches grid or selection state
// itself.
type Executor interface {
	// ModeChanged is called after every effective mode switch.
	ModeChanged(mode Mode)

	// Execute runs an operator over a motion, count times.
	Execute(op Operator, motion Motion, count int)

	// MoveCursor moves the vi cursor by a motion, count times.
	MoveCursor(motion Motion, count int)

	// Select sets the selection to a text object around the cursor.
	Select(scope TextObjectScope, obj TextObject)

	// Yank copies the text object around the cursor.
	Yank(scope TextObjectScope, obj TextObject)

	// Paste inserts the clipboard contents, count times.
	Paste(count int)

	// ReverseSearchCurrentWord searches backward for the word under the cursor.
	ReverseSearchCurrentWord()

	// SearchCurrentWord searches forward for the word under the cursor.
	SearchCurrentWord()

	// JumpToNextMatch moves to the count-th next search match.
	JumpToNextMatch(count int)

	// JumpToPreviousMatch moves to the count-th previous search match.
	JumpToPreviousMatch(count int)

	// ScrollViewport scrolls the viewport by delta lines; negative scrolls
	// toward the live screen.
	ScrollViewport(delta int)

	// SearchStart is called when the search editor opens.
	SearchStart()

	// SearchDone is called when the search term is committed.
	SearchDone()

	// SearchCancel is called when the search editor is aborted.
	SearchCancel()

	// UpdateSearchTerm is called after every edit of the search term.
	UpdateSearchTerm(term []rune)
}

// Logger is the minimal logging surface the handler needs. *app.Logger
// satisfies it.
type Logger interface {
	Error(msg string, args ...any)
}

// nopLogger is used when no logger is supplied.
type nopLogger struct{}

func (nopLogger) Error(string, ...any) {}
