// Package palette holds the color and palette types the mosaic pipeline
// quantizes against, the palette file formats, and palette extraction from
// images.
package palette

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. Palette colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Luma is the perceptual brightness used throughout the pipeline.
func (c Color) Luma() float64 {
	return 0.2989*float64(c.R) + 0.5870*float64(c.G) + 0.1140*float64(c.B)
}

// FromColor converts any color.Color, discarding alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// ParseHex reads a #RGB or #RRGGBB color string.
func ParseHex(s string) (Color, error) {
	var c Color
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return Color{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return Color{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return Color{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return Color{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return Color{}, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	return c, nil
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette is an ordered list of quantization targets. Order is significant
// for gradient-index mapping and duplicates are allowed.
type Palette []Color

// Index returns the position of the entry nearest to c by Euclidean RGB
// distance, or -1 for an empty palette. Ties keep the first entry found.
func (p Palette) Index(c Color) int {
	ret, bestSum := -1, math.MaxFloat64
	for i, v := range p {
		dr := float64(v.R) - float64(c.R)
		dg := float64(v.G) - float64(c.G)
		db := float64(v.B) - float64(c.B)
		sum := dr*dr + dg*dg + db*db
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// Nearest returns the palette entry nearest to c. An empty palette returns
// c unchanged.
func (p Palette) Nearest(c Color) Color {
	i := p.Index(c)
	if i < 0 {
		return c
	}
	return p[i]
}

// Contains reports whether the exact triple is a palette entry.
func (p Palette) Contains(c Color) bool {
	for _, v := range p {
		if v == c {
			return true
		}
	}
	return false
}

// ToColorPalette converts to the stdlib palette type for paletted encoders.
func (p Palette) ToColorPalette() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	return out
}
