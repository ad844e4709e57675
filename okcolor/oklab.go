// based on:
// https://bottosson.github.io/posts/oklab/
// https://bottosson.github.io/posts/colorwrong/#what-can-we-do%3F

// Package okcolor implements the OKLab colorspace, a perceptual space
// where Euclidean distance tracks how different two colors look. Palette
// extraction clusters and compares colors here instead of in raw sRGB.
package okcolor

import (
	"image/color"
	"math"
)

// Lab is a color in OKLab coordinates.
type Lab struct {
	L     float64 // perceived lightness
	A     float64 // how green/red the color is
	B     float64 // how blue/yellow the color is
	Alpha uint16
}

var LabModel = color.ModelFunc(labConvert)

// FromColor converts any color into OKLab.
func FromColor(c color.Color) Lab {
	return labConvert(c).(Lab)
}

func labConvert(c color.Color) color.Color {
	if lc, ok := c.(Lab); ok {
		return lc
	}

	col := sRGBToLinearRGB(color.RGBA64Model.Convert(c).(color.RGBA64))

	l := math.Cbrt(0.4122214708*col.R + 0.5363325363*col.G + 0.0514459929*col.B)
	m := math.Cbrt(0.2119034982*col.R + 0.6806995451*col.G + 0.1073969566*col.B)
	s := math.Cbrt(0.0883024619*col.R + 0.2817188376*col.G + 0.6299787005*col.B)

	return Lab{
		L:     0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A:     1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B:     0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
		Alpha: col.A,
	}
}

// RGBA converts back to sRGB. Points outside the gamut, such as cluster
// centers averaged from in-gamut colors, are clipped adaptively first.
func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	c := linearRGBToSRGB(lc.LinearRGBA(GamutClipperAdaptive05(0.05)))
	return uint32(c.R), uint32(c.G), uint32(c.B), uint32(c.A)
}

// LinearRGBA converts to linear sRGB. A non-nil clipFunc maps out-of-gamut
// points back inside before converting.
func (lc Lab) LinearRGBA(clipFunc Clipper) LinearRGBA {
	l := lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B
	l = l * l * l
	m := lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B
	m = m * m * m
	s := lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B
	s = s * s * s

	r := +4.0767416621*l - 3.3077115913*m + 0.2309699292*s
	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s
	b := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s

	if (clipFunc != nil) && ((r < 0) || (r > 1) || (g < 0) || (g > 1) || (b < 0) || (b > 1)) {
		return clipFunc(lc).LinearRGBA(nil)
	}

	return LinearRGBA{
		R: r,
		G: g,
		B: b,
		A: lc.Alpha,
	}
}

// LinearRGBA is a color in linear sRGB, before the transfer curve.
type LinearRGBA struct {
	R float64
	G float64
	B float64
	A uint16
}

func linearRGBToSRGB(lc LinearRGBA) color.RGBA64 {
	return color.RGBA64{
		R: uint16(fromLinear(lc.R) * 65535),
		G: uint16(fromLinear(lc.G) * 65535),
		B: uint16(fromLinear(lc.B) * 65535),
		A: lc.A,
	}
}

func sRGBToLinearRGB(c color.RGBA64) LinearRGBA {
	return LinearRGBA{
		R: toLinear(float64(c.R) / 65535),
		G: toLinear(float64(c.G) / 65535),
		B: toLinear(float64(c.B) / 65535),
		A: c.A,
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, 1.0/2.4)*1.055 - 0.055
	}
	return x * 12.92
}
