package grid

// CellColorKind discriminates a configured overlay color: a literal RGB value
// or a reference to the current effective foreground/background.
type CellColorKind uint8

const (
	// CellColorRGB is a literal color.
	CellColorRGB CellColorKind = iota

	// CellColorForeground resolves to the current effective foreground.
	CellColorForeground

	// CellColorBackground resolves to the current effective background.
	CellColorBackground
)

// CellRGBColor is a configured color: either a literal RGB value or a
// reference to the cell's current effective foreground or background.
type CellRGBColor struct {
	Kind CellColorKind
	RGB  RGBColor
}

// CellColor returns a literal configured color.
func CellColor(c RGBColor) CellRGBColor {
	return CellRGBColor{Kind: CellColorRGB, RGB: c}
}

// CurrentForeground references the current effective foreground.
func CurrentForeground() CellRGBColor {
	return CellRGBColor{Kind: CellColorForeground}
}

// CurrentBackground references the current effective background.
func CurrentBackground() CellRGBColor {
	return CellRGBColor{Kind: CellColorBackground}
}

// Resolve evaluates the configured color against the given actual pair.
func (c CellRGBColor) Resolve(actual RGBColorPair) RGBColor {
	switch c.Kind {
	case CellColorForeground:
		return actual.Foreground
	case CellColorBackground:
		return actual.Background
	default:
		return c.RGB
	}
}

// CellRGBColorAndAlphaPair is a configured fg/bg overlay with per-channel
// opacity. Alpha 1 replaces the underlying color, alpha 0 leaves it unchanged.
type CellRGBColorAndAlphaPair struct {
	Foreground      CellRGBColor
	ForegroundAlpha float64
	Background      CellRGBColor
	BackgroundAlpha float64
}

// OpaquePair returns a fully opaque configured overlay pair.
func OpaquePair(fg, bg CellRGBColor) CellRGBColorAndAlphaPair {
	return CellRGBColorAndAlphaPair{
		Foreground:      fg,
		ForegroundAlpha: 1,
		Background:      bg,
		BackgroundAlpha: 1,
	}
}

// CursorColors configures the cursor overlay.
type CursorColors struct {
	// Color paints the cursor block itself (becomes the background).
	Color CellRGBColor

	// TextOverrideColor paints the glyph under the cursor (the foreground).
	TextOverrideColor CellRGBColor
}

// HyperlinkDecoration configures hyperlink underline colors.
type HyperlinkDecoration struct {
	Normal RGBColor
	Hover  RGBColor
}

// ColorPalette holds every configured color the render pipeline reads.
// It is passed read-only into the builder; one palette per frame.
type ColorPalette struct {
	// Palette is the 256-color table: 0..7 base, 8..15 bright, 16..255 extended.
	Palette [256]RGBColor

	DefaultForeground RGBColor
	DefaultBackground RGBColor

	// UseBrightColors promotes bold text's base colors to their bright variants.
	UseBrightColors bool

	Selection              CellRGBColorAndAlphaPair
	YankHighlight          CellRGBColorAndAlphaPair
	SearchHighlight        CellRGBColorAndAlphaPair
	SearchHighlightFocused CellRGBColorAndAlphaPair

	Cursor CursorColors

	HyperlinkDecoration HyperlinkDecoration
}

// DefaultColorPalette returns the built-in palette: standard xterm base and
// bright colors, a 6x6x6 color cube, a grayscale ramp, and sensible overlays.
func DefaultColorPalette() ColorPalette {
	p := ColorPalette{
		DefaultForeground: RGB(0xD0, 0xD0, 0xD0),
		DefaultBackground: RGB(0x00, 0x00, 0x00),
		UseBrightColors:   true,
		Selection:         OpaquePair(CellColor(RGB(0x10, 0x10, 0x10)), CellColor(RGB(0xC0, 0xC0, 0xC0))),
		YankHighlight:     OpaquePair(CellColor(RGB(0x18, 0x18, 0x18)), CellColor(RGB(0xFF, 0xA5, 0x00))),
		SearchHighlight:   OpaquePair(CurrentBackground(), CurrentForeground()),
		SearchHighlightFocused: OpaquePair(
			CellColor(RGB(0x00, 0x00, 0x00)), CellColor(RGB(0xFF, 0xFF, 0x00))),
		Cursor: CursorColors{
			Color:             CurrentForeground(),
			TextOverrideColor: CurrentBackground(),
		},
		HyperlinkDecoration: HyperlinkDecoration{
			Normal: RGB(0x00, 0x80, 0x80),
			Hover:  RGB(0xFF, 0x00, 0x00),
		},
	}

	base := [16]RGBColor{
		RGB(0x00, 0x00, 0x00), RGB(0x80, 0x00, 0x00), RGB(0x00, 0x80, 0x00), RGB(0x80, 0x80, 0x00),
		RGB(0x00, 0x00, 0x80), RGB(0x80, 0x00, 0x80), RGB(0x00, 0x80, 0x80), RGB(0xC0, 0xC0, 0xC0),
		RGB(0x80, 0x80, 0x80), RGB(0xFF, 0x00, 0x00), RGB(0x00, 0xFF, 0x00), RGB(0xFF, 0xFF, 0x00),
		RGB(0x00, 0x00, 0xFF), RGB(0xFF, 0x00, 0xFF), RGB(0x00, 0xFF, 0xFF), RGB(0xFF, 0xFF, 0xFF),
	}
	copy(p.Palette[:16], base[:])

	// 6x6x6 color cube.
	levels := [6]uint8{0x00, 0x5F, 0x87, 0xAF, 0xD7, 0xFF}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.Palette[i] = RGB(levels[r], levels[g], levels[b])
				i++
			}
		}
	}

	// Grayscale ramp.
	for gray := 0; gray < 24; gray++ {
		v := uint8(8 + gray*10)
		p.Palette[i] = RGB(v, v, v)
		i++
	}

	return p
}

// Apply resolves an SGR-level color to a concrete RGB value against this
// palette. target selects the default color used for ColorTypeDefault; mode
// applies bold-bright promotion or faint dimming.
func (p *ColorPalette) Apply(c Color, target ColorTarget, mode ColorMode) RGBColor {
	var resolved RGBColor
	switch c.Type {
	case ColorTypeDefault:
		if target == ColorTargetForeground {
			resolved = p.DefaultForeground
		} else {
			resolved = p.DefaultBackground
		}
	case ColorTypeIndexed:
		index := c.Index
		if mode == ColorModeBright && index < 8 {
			index += 8
		}
		resolved = p.Palette[index]
	case ColorTypeBright:
		resolved = p.Palette[8+c.Index%8]
	case ColorTypeRGB:
		resolved = c.RGB
	}

	if mode == ColorModeDimmed {
		resolved = Mix(resolved, RGB(0, 0, 0), 0.5)
	}
	return resolved
}
