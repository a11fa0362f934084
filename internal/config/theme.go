package config

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/NeroBurner/contour/internal/grid"
)

// LoadTheme reads a JSON theme file and applies it over the built-in
// palette. Every key is optional; unknown keys are ignored.
//
// Overlay colors ("selection", "yankHighlight", "searchHighlight",
// "searchHighlightFocused", "cursor") accept the special values
// "foreground" and "background", which track the cell's effective colors.
func LoadTheme(path string) (grid.ColorPalette, error) {
	palette := grid.DefaultColorPalette()

	data, err := os.ReadFile(path)
	if err != nil {
		return palette, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return palette, &ParseError{Path: path, Message: "invalid JSON"}
	}
	doc := gjson.ParseBytes(data)

	if err := applyTheme(&palette, doc); err != nil {
		return grid.DefaultColorPalette(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return palette, nil
}

func applyTheme(p *grid.ColorPalette, doc gjson.Result) error {
	if err := setRGB(&p.DefaultForeground, doc.Get("colors.foreground")); err != nil {
		return err
	}
	if err := setRGB(&p.DefaultBackground, doc.Get("colors.background")); err != nil {
		return err
	}
	if v := doc.Get("colors.useBrightColors"); v.Exists() {
		p.UseBrightColors = v.Bool()
	}

	if v := doc.Get("colors.palette"); v.Exists() {
		entries := v.Array()
		if len(entries) > len(p.Palette) {
			return fmt.Errorf("palette has %d entries, at most %d allowed", len(entries), len(p.Palette))
		}
		for i, entry := range entries {
			if err := setRGB(&p.Palette[i], entry); err != nil {
				return err
			}
		}
	}

	for _, overlay := range []struct {
		key  string
		pair *grid.CellRGBColorAndAlphaPair
	}{
		{"selection", &p.Selection},
		{"yankHighlight", &p.YankHighlight},
		{"searchHighlight", &p.SearchHighlight},
		{"searchHighlightFocused", &p.SearchHighlightFocused},
	} {
		if err := setOverlay(overlay.pair, doc.Get(overlay.key)); err != nil {
			return err
		}
	}

	if err := setCellColor(&p.Cursor.Color, doc.Get("cursor.color")); err != nil {
		return err
	}
	if err := setCellColor(&p.Cursor.TextOverrideColor, doc.Get("cursor.textColor")); err != nil {
		return err
	}

	if err := setRGB(&p.HyperlinkDecoration.Normal, doc.Get("hyperlink.normal")); err != nil {
		return err
	}
	if err := setRGB(&p.HyperlinkDecoration.Hover, doc.Get("hyperlink.hover")); err != nil {
		return err
	}

	return nil
}

func setRGB(dst *grid.RGBColor, v gjson.Result) error {
	if !v.Exists() {
		return nil
	}
	c, err := grid.RGBFromHex(v.String())
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

func setCellColor(dst *grid.CellRGBColor, v gjson.Result) error {
	if !v.Exists() {
		return nil
	}
	switch v.String() {
	case "foreground":
		*dst = grid.CurrentForeground()
	case "background":
		*dst = grid.CurrentBackground()
	default:
		c, err := grid.RGBFromHex(v.String())
		if err != nil {
			return err
		}
		*dst = grid.CellColor(c)
	}
	return nil
}

func setOverlay(dst *grid.CellRGBColorAndAlphaPair, v gjson.Result) error {
	if !v.Exists() {
		return nil
	}
	if err := setCellColor(&dst.Foreground, v.Get("foreground")); err != nil {
		return err
	}
	if err := setCellColor(&dst.Background, v.Get("background")); err != nil {
		return err
	}
	if alpha := v.Get("foregroundAlpha"); alpha.Exists() {
		dst.ForegroundAlpha = alpha.Float()
	}
	if alpha := v.Get("backgroundAlpha"); alpha.Exists() {
		dst.BackgroundAlpha = alpha.Float()
	}
	return nil
}

// SaveTheme writes a palette as a JSON theme file, in the format LoadTheme
// reads.
func SaveTheme(path string, p grid.ColorPalette) error {
	doc := "{}"
	var err error

	set := func(key string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, key, value)
	}

	set("colors.foreground", p.DefaultForeground.Hex())
	set("colors.background", p.DefaultBackground.Hex())
	set("colors.useBrightColors", p.UseBrightColors)

	colors := make([]string, len(p.Palette))
	for i, c := range p.Palette {
		colors[i] = c.Hex()
	}
	set("colors.palette", colors)

	for _, overlay := range []struct {
		key  string
		pair grid.CellRGBColorAndAlphaPair
	}{
		{"selection", p.Selection},
		{"yankHighlight", p.YankHighlight},
		{"searchHighlight", p.SearchHighlight},
		{"searchHighlightFocused", p.SearchHighlightFocused},
	} {
		set(overlay.key+".foreground", cellColorString(overlay.pair.Foreground))
		set(overlay.key+".background", cellColorString(overlay.pair.Background))
		set(overlay.key+".foregroundAlpha", overlay.pair.ForegroundAlpha)
		set(overlay.key+".backgroundAlpha", overlay.pair.BackgroundAlpha)
	}

	set("cursor.color", cellColorString(p.Cursor.Color))
	set("cursor.textColor", cellColorString(p.Cursor.TextOverrideColor))
	set("hyperlink.normal", p.HyperlinkDecoration.Normal.Hex())
	set("hyperlink.hover", p.HyperlinkDecoration.Hover.Hex())

	if err != nil {
		return fmt.Errorf("building theme JSON: %w", err)
	}
	return os.WriteFile(path, []byte(doc), 0o644)
}

func cellColorString(c grid.CellRGBColor) string {
	switch c.Kind {
	case grid.CellColorForeground:
		return "foreground"
	case grid.CellColorBackground:
		return "background"
	default:
		return c.RGB.Hex()
	}
}
