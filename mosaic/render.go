// Package mosaic turns a photograph into a pixel-art mosaic: the source is
// resampled to a capped working resolution, divided into a square grid, and
// every cell is averaged, color-adjusted, filtered and drawn as a rounded
// tile, with an overall silhouette deciding which cells appear at all.
package mosaic

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"pixpop/filter"
	"pixpop/palette"
	"pixpop/shape"
)

// workWidthCap bounds the working resolution. Wider sources are scaled down
// preserving aspect ratio.
const workWidthCap = 1200

// background fills the surface before any cell is drawn, a fixed dark slate.
var background = palette.Color{R: 47, G: 79, B: 79}

// Render runs the whole pipeline once: it resizes dst to the working
// resolution, overwrites it completely and returns. The pipeline holds no
// state across calls; identical source and configuration produce identical
// pixels. A dst that cannot provide a canvas is left untouched and no error
// is returned.
func Render(src image.Image, dst Surface, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	srcBounds := src.Bounds()
	if srcBounds.Dx() < 1 || srcBounds.Dy() < 1 {
		return fmt.Errorf("empty source image")
	}

	workW, workH := workingSize(srcBounds.Dx(), srcBounds.Dy())
	dc := dst.Canvas(workW, workH)
	if dc == nil {
		return nil
	}

	work := image.NewRGBA(image.Rect(0, 0, workW, workH))
	window := sampleWindow(srcBounds, cfg.Zoom, cfg.PanX, cfg.PanY)
	draw.CatmullRom.Scale(work, work.Bounds(), src, window, draw.Src, nil)

	dc.ClearWithColor(gg.FromColor(background))

	cell := float64(workW) / float64(cfg.GridSize)
	rows := int(math.Ceil(float64(workH) / cell))
	stride := max(1, int(cell/4))
	mask := shape.NewMask(cfg.Shape, float64(workW), float64(workH))

	var jit *jitterSource
	if cfg.Seed > 0 {
		jit = newJitterSource(cfg.Seed)
	}
	blink := cfg.Blink && cfg.BlinkPhase

	for row := range rows {
		for col := range cfg.GridSize {
			x := float64(col) * cell
			y := float64(row) * cell

			// The color stages run for every cell, accepted or not, so the
			// jitter counter advances independently of the silhouette.
			rect := image.Rect(int(x), int(y), int(x+cell), int(y+cell))
			c := sampleCell(work, rect, stride)
			c = transform(c, jit, cfg.Brightness, cfg.Saturation)
			c = filter.Apply(cfg.Filter, c, cfg.Palette, jit != nil)
			if cfg.Desaturate {
				c = filter.Desaturate(c)
			}
			if blink {
				c = filter.Blink(c, row, col)
			}

			if !mask.AcceptsCell(x, y, cell) {
				continue
			}

			dc.SetColor(c)
			if err := shape.Cell(dc, x, y, cell); err != nil {
				return fmt.Errorf("could not draw cell %d,%d: %w", row, col, err)
			}
		}
	}

	return nil
}

// workingSize caps the render resolution at workWidthCap, preserving the
// source aspect ratio.
func workingSize(srcW, srcH int) (int, int) {
	if srcW <= workWidthCap {
		return srcW, srcH
	}
	scale := float64(workWidthCap) / float64(srcW)
	return workWidthCap, max(1, int(math.Round(float64(srcH)*scale)))
}

// sampleWindow is the zoom and pan adjusted source rectangle: the source
// dimensions shrunk by the zoom factor, centered, shifted by the pan offsets
// and clamped inside the source bounds.
func sampleWindow(bounds image.Rectangle, zoom, panX, panY float64) image.Rectangle {
	srcW := float64(bounds.Dx())
	srcH := float64(bounds.Dy())
	w := srcW / zoom
	h := srcH / zoom

	x := (srcW-w)/2 + panX*(srcW-w)
	y := (srcH-h)/2 + panY*(srcH-h)

	x = math.Min(math.Max(x, 0), srcW-w)
	y = math.Min(math.Max(y, 0), srcH-h)

	return image.Rect(
		bounds.Min.X+int(math.Round(x)),
		bounds.Min.Y+int(math.Round(y)),
		bounds.Min.X+int(math.Round(x+w)),
		bounds.Min.Y+int(math.Round(y+h)),
	)
}
