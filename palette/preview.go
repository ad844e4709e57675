package palette

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

const (
	previewTile = 64
	previewPad  = 8
)

// Preview renders the palette as a single row of rounded swatch tiles.
func Preview(p Palette) (image.Image, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("empty palette")
	}

	w := previewPad + len(p)*(previewTile+previewPad)
	h := previewTile + 2*previewPad
	dc := gg.NewContext(w, h)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.RGBA{R: 0.12, G: 0.12, B: 0.14, A: 1})

	for i, c := range p {
		x := float64(previewPad + i*(previewTile+previewPad))
		dc.SetColor(c)
		dc.DrawRoundedRectangle(x, previewPad, previewTile, previewTile, previewTile*0.2)
		if err := dc.Fill(); err != nil {
			return nil, fmt.Errorf("could not draw swatch %d: %w", i, err)
		}
	}

	return dc.Image(), nil
}
