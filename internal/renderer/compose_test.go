package renderer

import (
	"testing"

	"github.com/NeroBurner/contour/internal/grid"
)

func defaultCell() (fg, bg grid.Color) {
	return grid.DefaultColor(), grid.DefaultColor()
}

func TestSGRColors(t *testing.T) {
	palette := grid.DefaultColorPalette()
	fg, bg := defaultCell()

	tests := []struct {
		name         string
		flags        grid.CellFlags
		reverseVideo bool
		fg, bg       grid.Color
		blink        bool
		want         grid.RGBColorPair
	}{
		{
			name: "plain defaults",
			fg:   fg, bg: bg, blink: true,
			want: grid.RGBColorPair{Foreground: palette.DefaultForeground, Background: palette.DefaultBackground},
		},
		{
			name:  "inverse swaps",
			flags: grid.FlagInverse,
			fg:    fg, bg: bg, blink: true,
			want: grid.RGBColorPair{Foreground: palette.DefaultBackground, Background: palette.DefaultForeground},
		},
		{
			name:  "hidden collapses foreground",
			flags: grid.FlagHidden,
			fg:    fg, bg: bg, blink: true,
			want: grid.RGBColorPair{Foreground: palette.DefaultBackground, Background: palette.DefaultBackground},
		},
		{
			name:  "blink phase off collapses foreground",
			flags: grid.FlagBlinking,
			fg:    fg, bg: bg, blink: false,
			want: grid.RGBColorPair{Foreground: palette.DefaultBackground, Background: palette.DefaultBackground},
		},
		{
			name:  "blink phase on renders normally",
			flags: grid.FlagBlinking,
			fg:    fg, bg: bg, blink: true,
			want: grid.RGBColorPair{Foreground: palette.DefaultForeground, Background: palette.DefaultBackground},
		},
		{
			name:         "reverse video swaps default targets",
			reverseVideo: true,
			fg:           fg, bg: bg, blink: true,
			want: grid.RGBColorPair{Foreground: palette.DefaultBackground, Background: palette.DefaultForeground},
		},
		{
			name:  "bold promotes base color to bright",
			flags: grid.FlagBold,
			fg:    grid.IndexedColor(1), bg: bg, blink: true,
			want: grid.RGBColorPair{Foreground: palette.Palette[9], Background: palette.DefaultBackground},
		},
		{
			name:  "faint dims the foreground",
			flags: grid.FlagFaint,
			fg:    grid.IndexedColor(9), bg: bg, blink: true,
			want: grid.RGBColorPair{
				Foreground: grid.Mix(palette.Palette[9], grid.RGB(0, 0, 0), 0.5),
				Background: palette.DefaultBackground,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sgrColors(&palette, tc.flags, tc.reverseVideo, tc.fg, tc.bg, tc.blink, true)
			if got != tc.want {
				t.Errorf("sgrColors() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMakeColorsOverlays(t *testing.T) {
	palette := grid.DefaultColorPalette()
	fg, bg := defaultCell()
	sgr := grid.RGBColorPair{Foreground: palette.DefaultForeground, Background: palette.DefaultBackground}

	compose := func(selected, isCursor, isHighlighted bool) grid.RGBColorPair {
		return makeColors(&palette, grid.FlagNone, false, fg, bg, selected, isCursor, isHighlighted, true, true)
	}

	t.Run("no overlay keeps sgr pair", func(t *testing.T) {
		if got := compose(false, false, false); got != sgr {
			t.Errorf("got %v, want %v", got, sgr)
		}
	})

	t.Run("yank highlight", func(t *testing.T) {
		want := blendPair(sgr, palette.YankHighlight)
		if got := compose(false, false, true); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("cursor wins over yank highlight", func(t *testing.T) {
		withYank := compose(false, true, true)
		withoutYank := compose(false, true, false)
		if withYank != withoutYank {
			t.Errorf("highlighted cursor cell = %v, plain cursor cell = %v; cursor must win", withYank, withoutYank)
		}
	})

	t.Run("selection", func(t *testing.T) {
		want := blendPair(sgr, palette.Selection)
		if got := compose(true, false, false); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("cursor over plain cell", func(t *testing.T) {
		want := grid.RGBColorPair{
			Foreground: palette.DefaultBackground,
			Background: palette.DefaultForeground,
		}
		if got := compose(false, true, false); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("cursor over selection blends three to one", func(t *testing.T) {
		selection := blendPair(sgr, palette.Selection)
		cursor := grid.RGBColorPair{
			Foreground: palette.Cursor.TextOverrideColor.Resolve(selection),
			Background: palette.Cursor.Color.Resolve(selection),
		}
		want := grid.MixPair(selection, cursor, 0.75).Distinct()
		got := compose(true, true, false)
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
		if got.Foreground == got.Background {
			t.Errorf("blended pair collapsed: %v", got)
		}
	})
}

func TestBlendPairForcesDistinct(t *testing.T) {
	gray := grid.RGB(0x80, 0x80, 0x80)
	actual := grid.RGBColorPair{Foreground: grid.RGB(0x10, 0x10, 0x10), Background: grid.RGB(0xF0, 0xF0, 0xF0)}
	overlay := grid.OpaquePair(grid.CellColor(gray), grid.CellColor(gray))

	got := blendPair(actual, overlay)
	if got.Foreground == got.Background {
		t.Errorf("blendPair produced fg == bg: %v", got)
	}
	if got.Background != gray {
		t.Errorf("background = %v, want %v", got.Background, gray)
	}
	if got.Foreground != gray.Inverted() {
		t.Errorf("foreground = %v, want inverted %v", got.Foreground, gray.Inverted())
	}
}

func TestBlendPairAlpha(t *testing.T) {
	actual := grid.RGBColorPair{Foreground: grid.RGB(0, 0, 0), Background: grid.RGB(0, 0, 0)}
	overlay := grid.CellRGBColorAndAlphaPair{
		Foreground:      grid.CellColor(grid.RGB(0xFF, 0xFF, 0xFF)),
		ForegroundAlpha: 1,
		Background:      grid.CellColor(grid.RGB(0xFF, 0xFF, 0xFF)),
		BackgroundAlpha: 0,
	}

	got := blendPair(actual, overlay)
	if got.Foreground != (grid.RGB(0xFF, 0xFF, 0xFF)) {
		t.Errorf("alpha 1 must replace: foreground = %v", got.Foreground)
	}
	if got.Background != (grid.RGB(0, 0, 0)) {
		t.Errorf("alpha 0 must keep the underlying color: background = %v", got.Background)
	}
}

func TestUnderlineColor(t *testing.T) {
	palette := grid.DefaultColorPalette()
	resolvedFg := grid.RGB(0x12, 0x34, 0x56)

	t.Run("default inherits foreground", func(t *testing.T) {
		got := underlineColor(&palette, grid.FlagNone, resolvedFg, grid.DefaultColor())
		if got != resolvedFg {
			t.Errorf("got %v, want %v", got, resolvedFg)
		}
	})

	t.Run("explicit color resolves through palette", func(t *testing.T) {
		got := underlineColor(&palette, grid.FlagNone, resolvedFg, grid.IndexedColor(1))
		if got != palette.Palette[1] {
			t.Errorf("got %v, want %v", got, palette.Palette[1])
		}
	})

	t.Run("bold promotes underline color", func(t *testing.T) {
		got := underlineColor(&palette, grid.FlagBold, resolvedFg, grid.IndexedColor(1))
		if got != palette.Palette[9] {
			t.Errorf("got %v, want %v", got, palette.Palette[9])
		}
	})
}
