package vi

// Mode is the handler's primary input mode.
type Mode uint8

const (
	// ModeInsert passes all input through to the application.
	ModeInsert Mode = iota

	// ModeNormal interprets input as vi commands.
	ModeNormal

	// ModeVisual extends a character-wise selection with every motion.
	ModeVisual

	// ModeVisualLine extends a line-wise selection.
	ModeVisualLine

	// ModeVisualBlock extends a rectangular selection.
	ModeVisualBlock
)

// String returns the mode name as shown in the status line.
func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeNormal:
		return "NORMAL"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "VISUAL LINE"
	case ModeVisualBlock:
		return "VISUAL BLOCK"
	default:
		return "?"
	}
}

// IsVisual reports whether the mode is one of the visual variants.
func (m Mode) IsVisual() bool {
	return m == ModeVisual || m == ModeVisualLine || m == ModeVisualBlock
}

// SearchEditMode tracks the search-term editor sub-mode, which overlays the
// primary mode while the user types a search term.
type SearchEditMode uint8

const (
	// SearchEditDisabled means no search term is being edited.
	SearchEditDisabled SearchEditMode = iota

	// SearchEditEnabled means the editor was entered from within vi mode.
	SearchEditEnabled

	// SearchEditExternallyEnabled means the editor was entered
	// programmatically from insert mode, which is restored when the editor
	// closes.
	SearchEditExternallyEnabled
)

// String returns the sub-mode name.
func (m SearchEditMode) String() string {
	switch m {
	case SearchEditDisabled:
		return "Disabled"
	case SearchEditEnabled:
		return "Enabled"
	case SearchEditExternallyEnabled:
		return "ExternallyEnabled"
	default:
		return "?"
	}
}
