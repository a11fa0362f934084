package grid

import "strings"

// CellFlags represents the SGR style flags carried by a cell.
type CellFlags uint32

// Cell style flags.
const (
	FlagNone CellFlags = 0

	FlagBold CellFlags = 1 << iota
	FlagFaint
	FlagItalic
	FlagUnderline
	FlagDoublyUnderlined
	FlagCurlyUnderlined
	FlagDottedUnderline
	FlagDashedUnderline
	FlagBlinking
	FlagRapidBlinking
	FlagInverse
	FlagHidden
	FlagCrossedOut
	FlagFramed
	FlagOverline
)

// Has returns true if the flag set contains all the given flags.
func (f CellFlags) Has(flags CellFlags) bool {
	return f&flags == flags
}

// HasAny returns true if the flag set contains any of the given flags.
func (f CellFlags) HasAny(flags CellFlags) bool {
	return f&flags != 0
}

// With returns a new flag set with the given flags added.
func (f CellFlags) With(flags CellFlags) CellFlags {
	return f | flags
}

// Without returns a new flag set with the given flags removed.
func (f CellFlags) Without(flags CellFlags) CellFlags {
	return f &^ flags
}

var flagNames = []struct {
	flag CellFlags
	name string
}{
	{FlagBold, "Bold"},
	{FlagFaint, "Faint"},
	{FlagItalic, "Italic"},
	{FlagUnderline, "Underline"},
	{FlagDoublyUnderlined, "DoublyUnderlined"},
	{FlagCurlyUnderlined, "CurlyUnderlined"},
	{FlagDottedUnderline, "DottedUnderline"},
	{FlagDashedUnderline, "DashedUnderline"},
	{FlagBlinking, "Blinking"},
	{FlagRapidBlinking, "RapidBlinking"},
	{FlagInverse, "Inverse"},
	{FlagHidden, "Hidden"},
	{FlagCrossedOut, "CrossedOut"},
	{FlagFramed, "Framed"},
	{FlagOverline, "Overline"},
}

// String returns a "|"-joined list of flag names, or "None".
func (f CellFlags) String() string {
	if f == FlagNone {
		return "None"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}
