package mosaic

import (
	"math"

	"pixpop/palette"
)

// transform applies jitter, brightness and saturation to a sampled color, in
// that order, and re-quantizes the result to 8-bit channels. A nil jitter
// source disables the jitter stage.
func transform(c palette.Color, j *jitterSource, brightness, saturation float64) palette.Color {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)

	if j != nil {
		// Wraps past 255 instead of clamping; the resulting discontinuity
		// is part of the look.
		r = math.Mod(r+j.next()*50, 255)
		g = math.Mod(g+j.next()*50, 255)
		b = math.Mod(b+j.next()*50, 255)
	}

	r *= brightness
	g *= brightness
	b *= brightness

	l := 0.2989*r + 0.5870*g + 0.1140*b
	r = l + saturation*(r-l)
	g = l + saturation*(g-l)
	b = l + saturation*(b-l)

	return palette.Color{R: clamp8(r), G: clamp8(g), B: clamp8(b)}
}

func clamp8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
