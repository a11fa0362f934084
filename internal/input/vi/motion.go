package vi

// Motion identifies a cursor motion or, for the visual modes, the span an
// operator acts on.
type Motion uint8

const (
	MotionCharLeft  Motion = iota // h
	MotionCharRight               // l
	MotionLineUp                  // k
	MotionLineDown                // j
	MotionLineBegin               // 0
	MotionLineTextBegin           // ^
	MotionLineEnd                 // $
	MotionFullLine                // yy
	MotionPageTop                 // H
	MotionPageBottom              // L
	MotionPageUp                  // Ctrl-U
	MotionPageDown                // Ctrl-D
	MotionFileBegin               // g
	MotionFileEnd                 // G
	MotionWordForward             // w
	MotionWordBackward            // b
	MotionWordEndForward          // e
	MotionParagraphForward        // }
	MotionParagraphBackward       // {
	MotionParenthesisMatching     // %
	MotionSearchResultForward     // n
	MotionSearchResultBackward    // N
	MotionScreenColumn            // |
	MotionSelection               // visual-mode y
)

// String returns the motion name.
func (m Motion) String() string {
	switch m {
	case MotionCharLeft:
		return "CharLeft"
	case MotionCharRight:
		return "CharRight"
	case MotionLineUp:
		return "LineUp"
	case MotionLineDown:
		return "LineDown"
	case MotionLineBegin:
		return "LineBegin"
	case MotionLineTextBegin:
		return "LineTextBegin"
	case MotionLineEnd:
		return "LineEnd"
	case MotionFullLine:
		return "FullLine"
	case MotionPageTop:
		return "PageTop"
	case MotionPageBottom:
		return "PageBottom"
	case MotionPageUp:
		return "PageUp"
	case MotionPageDown:
		return "PageDown"
	case MotionFileBegin:
		return "FileBegin"
	case MotionFileEnd:
		return "FileEnd"
	case MotionWordForward:
		return "WordForward"
	case MotionWordBackward:
		return "WordBackward"
	case MotionWordEndForward:
		return "WordEndForward"
	case MotionParagraphForward:
		return "ParagraphForward"
	case MotionParagraphBackward:
		return "ParagraphBackward"
	case MotionParenthesisMatching:
		return "ParenthesisMatching"
	case MotionSearchResultForward:
		return "SearchResultForward"
	case MotionSearchResultBackward:
		return "SearchResultBackward"
	case MotionScreenColumn:
		return "ScreenColumn"
	case MotionSelection:
		return "Selection"
	default:
		return "?"
	}
}
