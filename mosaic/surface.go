package mosaic

import (
	"image"

	"github.com/gogpu/gg"
)

// Surface is the render target. Canvas returns a drawing context of exactly
// the requested size, or nil when the surface cannot provide one; Render
// treats a nil canvas as a silent no-op and leaves the surface untouched.
type Surface interface {
	Canvas(width, height int) *gg.Context
}

// ImageSurface renders into memory and hands the finished frame back as an
// image. The zero value is ready to use.
type ImageSurface struct {
	dc *gg.Context
}

func (s *ImageSurface) Canvas(width, height int) *gg.Context {
	if width < 1 || height < 1 {
		return nil
	}
	if s.dc == nil {
		s.dc = gg.NewContext(width, height)
	} else if s.dc.Width() != width || s.dc.Height() != height {
		if err := s.dc.Resize(width, height); err != nil {
			return nil
		}
	}
	return s.dc
}

// Image returns a copy of the last rendered frame, or nil before the first
// render.
func (s *ImageSurface) Image() image.Image {
	if s.dc == nil {
		return nil
	}
	return s.dc.Image()
}

// Close releases the drawing context. The surface can be reused; the next
// Canvas call allocates a fresh context.
func (s *ImageSurface) Close() error {
	if s.dc == nil {
		return nil
	}
	err := s.dc.Close()
	s.dc = nil
	return err
}
