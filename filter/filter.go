// Package filter implements the recoloring styles applied to transformed
// cell colors, plus the desaturation remap and the blink highlight that run
// after whichever style was chosen.
package filter

import (
	"fmt"
	"math"

	"pixpop/palette"
)

// Style selects the recoloring policy.
type Style uint8

const (
	None Style = iota
	Noir
	Rainbow
	PopArt
)

var styleNames = [...]string{"none", "noir", "rainbow", "popart"}

func (s Style) String() string {
	if s.Valid() {
		return styleNames[s]
	}
	return fmt.Sprintf("style(%d)", uint8(s))
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return int(s) < len(styleNames)
}

// Parse resolves a style name.
func Parse(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return None, fmt.Errorf("unknown filter %q", name)
}

// DefaultScheme names the builtin palette a style falls back to when the
// caller picks none. None leaves the palette empty.
func DefaultScheme(s Style) string {
	switch s {
	case Noir, Rainbow, PopArt:
		return styleNames[s]
	}
	return ""
}

// Apply recolors one transformed cell color. jitter reports whether the
// jitter stage is active for this render; the pop-art quantizer picks its
// strategy from it.
func Apply(s Style, c palette.Color, pal palette.Palette, jitter bool) palette.Color {
	switch s {
	case Noir:
		return noir(c, pal)
	case Rainbow:
		return chromatic(c, pal, jitter, false)
	case PopArt:
		return chromatic(c, pal, jitter, true)
	default:
		return c
	}
}

// noir pushes luma away from the midpoint, then snaps the grey onto the
// active two-entry palette.
func noir(c palette.Color, pal palette.Palette) palette.Color {
	l := math.Round(c.Luma())
	if l > 128 {
		l = math.Min(255, l+50)
	} else {
		l = math.Max(0, l-50)
	}
	g := uint8(l)
	return pal.Nearest(palette.Color{R: g, G: g, B: g})
}

// orange is the exact entry the brownish remap looks for.
var orange = palette.Color{R: 255, G: 127, B: 0}

// chromatic is the shared rainbow and pop-art mapping. Pop-art re-quantizes
// the transformed color even when the near-grey or brownish branch already
// produced one.
func chromatic(c palette.Color, pal palette.Palette, jitter, popart bool) palette.Color {
	maxC := int(max(c.R, c.G, c.B))
	minC := int(min(c.R, c.G, c.B))
	diff := maxC - minC
	brightness := (maxC + minC) / 2

	styled := false
	out := c
	switch {
	case diff < 30:
		if brightness < 120 {
			out = palette.Color{}
		} else {
			out = palette.Color{R: 255, G: 255, B: 255}
		}
		styled = true
	case c.R > c.G && c.G > c.B && c.R > 60 && diff < 120:
		out = brownish(c, pal)
		styled = true
	}

	if !styled || popart {
		out = quantize(c, pal, jitter)
	}
	return out
}

// brownish maps to the palette's orange entry when one exists, otherwise to
// its first entry.
func brownish(c palette.Color, pal palette.Palette) palette.Color {
	if pal.Contains(orange) {
		return orange
	}
	if len(pal) > 0 {
		return pal[0]
	}
	return c
}

// quantize picks the palette entry for a styled color. Palettes past five
// entries with jitter active use nearest-color matching; everything else
// maps luma onto the palette as a banded gradient.
func quantize(c palette.Color, pal palette.Palette, jitter bool) palette.Color {
	if len(pal) == 0 {
		return c
	}
	if len(pal) > 5 && jitter {
		return pal.Nearest(c)
	}
	idx := int(c.Luma() / 256 * float64(len(pal)))
	if idx >= len(pal) {
		idx = len(pal) - 1
	}
	return pal[idx]
}

var desaturated = palette.Desaturated()

// Desaturate snaps a color onto the fixed seven-color remap palette.
func Desaturate(c palette.Color) palette.Color {
	return desaturated.Nearest(c)
}

// Blink overrides the color of every tenth row and column (1-based) with a
// flash that keeps the grid readable: dark grey over bright cells, bright
// white over dark ones.
func Blink(c palette.Color, row, col int) palette.Color {
	if (row+1)%10 != 0 && (col+1)%10 != 0 {
		return c
	}
	if c.Luma() > 128 {
		return palette.Color{R: 50, G: 50, B: 50}
	}
	return palette.Color{R: 255, G: 255, B: 255}
}
