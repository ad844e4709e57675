package mosaic

import (
	"fmt"

	"pixpop/filter"
	"pixpop/palette"
	"pixpop/shape"
)

// Config carries every parameter of one render. Render only reads it; a
// caller changing parameters builds a new value rather than mutating one a
// render may still be using.
type Config struct {
	// GridSize is the number of cells across the working width.
	GridSize int
	// Shape clips the mosaic to an overall silhouette.
	Shape shape.Silhouette
	// Filter selects the recoloring style.
	Filter filter.Style
	// Palette is the active quantization palette. May be empty, in which
	// case quantizing filters pass colors through.
	Palette palette.Palette
	// Seed drives the jitter source. Zero disables jitter.
	Seed int64
	// Zoom shrinks the sampled source window. Must be at least 1.
	Zoom float64
	// PanX and PanY shift the zoom window, each within [-0.5, 0.5].
	PanX, PanY float64
	// Desaturate snaps every cell onto the fixed seven-color remap.
	Desaturate bool
	// Brightness multiplies each channel. Must not be negative.
	Brightness float64
	// Saturation scales channels about their luma. Must not be negative.
	Saturation float64
	// Blink enables the tenth-line highlight; BlinkPhase is the externally
	// driven flash state, so a caller animating the highlight alternates
	// BlinkPhase between renders.
	Blink      bool
	BlinkPhase bool
}

// Default returns the configuration a render starts from before any caller
// adjustments.
func Default() Config {
	return Config{
		GridSize:   48,
		Shape:      shape.Rectangle,
		Filter:     filter.None,
		Zoom:       1,
		Brightness: 1,
		Saturation: 1,
	}
}

// Validate rejects configurations the pipeline cannot render. Values are
// never clamped silently.
func (c Config) Validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("invalid grid size: %d", c.GridSize)
	}
	if !c.Shape.Valid() {
		return fmt.Errorf("invalid shape selector: %d", c.Shape)
	}
	if !c.Filter.Valid() {
		return fmt.Errorf("invalid filter selector: %d", c.Filter)
	}
	if c.Zoom < 1 {
		return fmt.Errorf("invalid zoom factor: %v", c.Zoom)
	}
	if c.PanX < -0.5 || c.PanX > 0.5 {
		return fmt.Errorf("invalid horizontal pan offset: %v", c.PanX)
	}
	if c.PanY < -0.5 || c.PanY > 0.5 {
		return fmt.Errorf("invalid vertical pan offset: %v", c.PanY)
	}
	if c.Brightness < 0 {
		return fmt.Errorf("invalid brightness multiplier: %v", c.Brightness)
	}
	if c.Saturation < 0 {
		return fmt.Errorf("invalid saturation multiplier: %v", c.Saturation)
	}
	if c.Filter == filter.Noir && len(c.Palette) != 2 {
		return fmt.Errorf("noir filter needs a two-color palette, got %d colors", len(c.Palette))
	}
	return nil
}
