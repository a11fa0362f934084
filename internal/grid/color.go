package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor is a fully resolved 24-bit color.
type RGBColor struct {
	R, G, B uint8
}

// RGB creates an RGBColor from components.
func RGB(r, g, b uint8) RGBColor {
	return RGBColor{R: r, G: g, B: b}
}

// RGBFromHex parses "#RRGGBB" or "RRGGBB".
func RGBFromHex(hex string) (RGBColor, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return RGBColor{}, fmt.Errorf("invalid hex color length: %q", hex)
	}
	var c RGBColor
	for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGBColor{}, fmt.Errorf("invalid hex color: %q", hex)
		}
		*dst = uint8(v)
	}
	return c, nil
}

// Hex returns the "#RRGGBB" representation.
func (c RGBColor) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String returns the hex representation.
func (c RGBColor) String() string {
	return c.Hex()
}

// Inverted returns the channel-wise complement.
func (c RGBColor) Inverted() RGBColor {
	return RGBColor{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

func (c RGBColor) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func fromColorful(c colorful.Color) RGBColor {
	r, g, b := c.Clamped().RGB255()
	return RGBColor{R: r, G: g, B: b}
}

// Mix linearly interpolates from a to b. t=0 yields a, t=1 yields b.
func Mix(a, b RGBColor, t float64) RGBColor {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return fromColorful(a.colorful().BlendRgb(b.colorful(), t))
}

// RGBColorPair is a resolved foreground/background pair.
type RGBColorPair struct {
	Foreground RGBColor
	Background RGBColor
}

// Swapped returns the pair with foreground and background exchanged.
func (p RGBColorPair) Swapped() RGBColorPair {
	return RGBColorPair{Foreground: p.Background, Background: p.Foreground}
}

// AllBackground returns the pair with the foreground collapsed into the
// background, rendering the text invisible while preserving layout.
func (p RGBColorPair) AllBackground() RGBColorPair {
	return RGBColorPair{Foreground: p.Background, Background: p.Background}
}

// Distinct guarantees foreground != background by inverting the foreground
// when the two collapsed to the same value.
func (p RGBColorPair) Distinct() RGBColorPair {
	if p.Foreground != p.Background {
		return p
	}
	return RGBColorPair{Foreground: p.Foreground.Inverted(), Background: p.Background}
}

// MixPair interpolates both channels of two pairs. t=0 yields a, t=1 yields b.
func MixPair(a, b RGBColorPair, t float64) RGBColorPair {
	return RGBColorPair{
		Foreground: Mix(a.Foreground, b.Foreground, t),
		Background: Mix(a.Background, b.Background, t),
	}
}

// ColorType discriminates the SGR-level color variants a cell can carry.
type ColorType uint8

const (
	// ColorTypeDefault is the terminal's default foreground or background.
	ColorTypeDefault ColorType = iota

	// ColorTypeIndexed is a 256-color palette index.
	ColorTypeIndexed

	// ColorTypeBright is one of the eight bright base colors.
	ColorTypeBright

	// ColorTypeRGB is a literal 24-bit color.
	ColorTypeRGB
)

// Color is an SGR-level color as carried by a cell before palette resolution.
type Color struct {
	Type  ColorType
	Index uint8 // palette index for Indexed/Bright
	RGB   RGBColor
}

// DefaultColor returns the default (unset) color.
func DefaultColor() Color {
	return Color{Type: ColorTypeDefault}
}

// IndexedColor returns a 256-color palette reference.
func IndexedColor(index uint8) Color {
	return Color{Type: ColorTypeIndexed, Index: index}
}

// BrightColor returns a bright base color reference (0..7).
func BrightColor(index uint8) Color {
	return Color{Type: ColorTypeBright, Index: index}
}

// TrueColor returns a literal RGB color.
func TrueColor(r, g, b uint8) Color {
	return Color{Type: ColorTypeRGB, RGB: RGB(r, g, b)}
}

// IsDefault returns true for the default (unset) color.
func (c Color) IsDefault() bool {
	return c.Type == ColorTypeDefault
}

// String returns a human-readable representation.
func (c Color) String() string {
	switch c.Type {
	case ColorTypeDefault:
		return "default"
	case ColorTypeIndexed:
		return fmt.Sprintf("idx(%d)", c.Index)
	case ColorTypeBright:
		return fmt.Sprintf("bright(%d)", c.Index)
	case ColorTypeRGB:
		return c.RGB.Hex()
	default:
		return "invalid"
	}
}

// ColorTarget selects which half of the default pair an SGR color resolves
// against. Reverse video swaps the targets before resolution.
type ColorTarget uint8

const (
	ColorTargetForeground ColorTarget = iota
	ColorTargetBackground
)

// ColorMode adjusts palette resolution for bold/faint cells.
type ColorMode uint8

const (
	// ColorModeNormal resolves colors unmodified.
	ColorModeNormal ColorMode = iota

	// ColorModeBright maps base colors 0..7 to their bright counterparts.
	ColorModeBright

	// ColorModeDimmed halves the resolved color's intensity.
	ColorModeDimmed
)
