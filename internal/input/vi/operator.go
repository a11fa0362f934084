package vi

// Operator is a pending vi operator awaiting its motion or text object.
type Operator uint8

const (
	// OperatorMoveCursor is the implicit operator of a bare motion.
	OperatorMoveCursor Operator = iota

	// OperatorYank copies the spanned text.
	OperatorYank

	// OperatorPaste inserts the clipboard contents.
	OperatorPaste

	// OperatorReverseSearchCurrentWord searches backward for the word under
	// the cursor.
	OperatorReverseSearchCurrentWord
)

// String returns the operator name.
func (o Operator) String() string {
	switch o {
	case OperatorMoveCursor:
		return "MoveCursor"
	case OperatorYank:
		return "Yank"
	case OperatorPaste:
		return "Paste"
	case OperatorReverseSearchCurrentWord:
		return "ReverseSearchCurrentWord"
	default:
		return "?"
	}
}

// TextObject identifies the region class a text-object command operates on.
type TextObject uint8

const (
	TextObjectAngleBrackets  TextObject = iota // <>
	TextObjectBackQuotes                       // ``
	TextObjectCurlyBrackets                    // {}
	TextObjectDoubleQuotes                     // ""
	TextObjectParagraph                        // p
	TextObjectRoundBrackets                    // ()
	TextObjectSingleQuotes                     // ''
	TextObjectSquareBrackets                   // []
	TextObjectWord                             // w
)

// String returns the text object name.
func (t TextObject) String() string {
	switch t {
	case TextObjectAngleBrackets:
		return "AngleBrackets"
	case TextObjectBackQuotes:
		return "BackQuotes"
	case TextObjectCurlyBrackets:
		return "CurlyBrackets"
	case TextObjectDoubleQuotes:
		return "DoubleQuotes"
	case TextObjectParagraph:
		return "Paragraph"
	case TextObjectRoundBrackets:
		return "RoundBrackets"
	case TextObjectSingleQuotes:
		return "SingleQuotes"
	case TextObjectSquareBrackets:
		return "SquareBrackets"
	case TextObjectWord:
		return "Word"
	default:
		return "?"
	}
}

// TextObjectScope selects the inner ("i") or around ("a") variant of a
// text object.
type TextObjectScope uint8

const (
	ScopeInner TextObjectScope = iota
	ScopeA
)

// String returns the scope name.
func (s TextObjectScope) String() string {
	switch s {
	case ScopeInner:
		return "Inner"
	case ScopeA:
		return "A"
	default:
		return "?"
	}
}

// charToTextObject maps a text-object selector character to its TextObject.
func charToTextObject(ch rune) (TextObject, bool) {
	switch ch {
	case '"':
		return TextObjectDoubleQuotes, true
	case '(':
		return TextObjectRoundBrackets, true
	case '<':
		return TextObjectAngleBrackets, true
	case '[':
		return TextObjectSquareBrackets, true
	case '\'':
		return TextObjectSingleQuotes, true
	case '`':
		return TextObjectBackQuotes, true
	case 'p':
		return TextObjectParagraph, true
	case 'w':
		return TextObjectWord, true
	case '{':
		return TextObjectCurlyBrackets, true
	default:
		return 0, false
	}
}
