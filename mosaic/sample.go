package mosaic

import (
	"image"

	"pixpop/palette"
)

// sampleCell box-averages the working raster inside rect, visiting every
// stride-th pixel on each axis, so a cell contributes a handful of sample
// points no matter how large it is. Samples outside the raster are skipped;
// a cell with no in-bounds samples comes back black.
func sampleCell(img *image.RGBA, rect image.Rectangle, stride int) palette.Color {
	if stride < 1 {
		stride = 1
	}

	bounds := img.Bounds()
	var rSum, gSum, bSum, n uint64
	for y := rect.Min.Y; y < rect.Max.Y; y += stride {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := rect.Min.X; x < rect.Max.X; x += stride {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			i := img.PixOffset(x, y)
			rSum += uint64(img.Pix[i])
			gSum += uint64(img.Pix[i+1])
			bSum += uint64(img.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		return palette.Color{}
	}

	return palette.Color{
		R: uint8(rSum / n),
		G: uint8(gSum / n),
		B: uint8(bSum / n),
	}
}
