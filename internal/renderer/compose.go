package renderer

import "github.com/NeroBurner/contour/internal/grid"

// Color compositing is modeled as pure functions over (palette, flags,
// overlay predicates) so each precedence step is testable in isolation.
// Precedence, highest last:
//
//  1. SGR base pair (reverse video, inverse, hidden, blink phase applied)
//  2. yank highlight (unless the cell paints the cursor)
//  3. selection
//  4. cursor, blended 75/25 over the selection pair when both apply
//
// Every blend step is forced distinct (fg != bg) afterwards.

// sgrColorMode picks the palette resolution mode for a cell's foreground.
func sgrColorMode(flags grid.CellFlags, useBrightColors bool) grid.ColorMode {
	if flags.Has(grid.FlagFaint) {
		return grid.ColorModeDimmed
	}
	if flags.Has(grid.FlagBold) && useBrightColors {
		return grid.ColorModeBright
	}
	return grid.ColorModeNormal
}

// sgrColors resolves a cell's SGR colors to a concrete pair, applying
// reverse video, the Inverse and Hidden flags, and blink-phase invisibility.
func sgrColors(
	palette *grid.ColorPalette,
	flags grid.CellFlags,
	reverseVideo bool,
	fg, bg grid.Color,
	blink, rapidBlink bool,
) grid.RGBColorPair {
	fgMode := sgrColorMode(flags, palette.UseBrightColors)

	fgTarget, bgTarget := grid.ColorTargetForeground, grid.ColorTargetBackground
	if reverseVideo {
		fgTarget, bgTarget = bgTarget, fgTarget
	}

	pair := grid.RGBColorPair{
		Foreground: palette.Apply(fg, fgTarget, fgMode),
		Background: palette.Apply(bg, bgTarget, grid.ColorModeNormal),
	}

	if flags.Has(grid.FlagInverse) {
		pair = pair.Swapped()
	}
	if flags.Has(grid.FlagHidden) {
		pair = pair.AllBackground()
	}
	if flags.Has(grid.FlagBlinking) && !blink {
		return pair.AllBackground()
	}
	if flags.Has(grid.FlagRapidBlinking) && !rapidBlink {
		return pair.AllBackground()
	}
	return pair
}

// blendPair overlays a configured color-and-alpha pair onto the actual pair.
// Each side's configured color is resolved against the actual pair first,
// then mixed in with its alpha as overlay opacity.
func blendPair(actual grid.RGBColorPair, configured grid.CellRGBColorAndAlphaPair) grid.RGBColorPair {
	return grid.RGBColorPair{
		Foreground: grid.Mix(actual.Foreground, configured.Foreground.Resolve(actual), configured.ForegroundAlpha),
		Background: grid.Mix(actual.Background, configured.Background.Resolve(actual), configured.BackgroundAlpha),
	}.Distinct()
}

// makeColors composites the final color pair for one cell from its SGR state
// and the overlay predicates.
func makeColors(
	palette *grid.ColorPalette,
	flags grid.CellFlags,
	reverseVideo bool,
	fg, bg grid.Color,
	selected, isCursor, isHighlighted bool,
	blink, rapidBlink bool,
) grid.RGBColorPair {
	sgr := sgrColors(palette, flags, reverseVideo, fg, bg, blink, rapidBlink)

	if !selected && !isCursor && !isHighlighted {
		return sgr
	}

	if !isCursor && isHighlighted {
		return blendPair(sgr, palette.YankHighlight)
	}

	selectionColors := sgr
	if selected {
		selectionColors = blendPair(sgr, palette.Selection)
	}
	if !isCursor {
		return selectionColors
	}

	if !selected {
		return grid.RGBColorPair{
			Foreground: palette.Cursor.TextOverrideColor.Resolve(sgr),
			Background: palette.Cursor.Color.Resolve(sgr),
		}.Distinct()
	}

	cursorColors := grid.RGBColorPair{
		Foreground: palette.Cursor.TextOverrideColor.Resolve(selectionColors),
		Background: palette.Cursor.Color.Resolve(selectionColors),
	}
	return grid.MixPair(selectionColors, cursorColors, 0.75).Distinct()
}

// underlineColor resolves a cell's decoration (underline) color. A default
// underline color inherits the resolved foreground; anything else resolves
// through the palette with the cell's bold/faint mode applied.
func underlineColor(
	palette *grid.ColorPalette,
	flags grid.CellFlags,
	defaultColor grid.RGBColor,
	ul grid.Color,
) grid.RGBColor {
	if ul.IsDefault() {
		return defaultColor
	}
	mode := sgrColorMode(flags, palette.UseBrightColors)
	return palette.Apply(ul, grid.ColorTargetForeground, mode)
}
