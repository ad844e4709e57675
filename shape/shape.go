// Package shape provides the silhouette masks that clip the mosaic and the
// primitive each accepted cell is drawn with. The two are independent: every
// silhouette shares the same rounded-rectangle cell primitive.
package shape

import (
	"fmt"

	"github.com/gogpu/gg"
)

// Silhouette selects the overall outline the mosaic is clipped to.
type Silhouette uint8

const (
	Rectangle Silhouette = iota
	Square
	Circle
	Heart
)

var silhouetteNames = [...]string{"rectangle", "square", "circle", "heart"}

func (s Silhouette) String() string {
	if s.Valid() {
		return silhouetteNames[s]
	}
	return fmt.Sprintf("silhouette(%d)", uint8(s))
}

// Valid reports whether s is a known silhouette.
func (s Silhouette) Valid() bool {
	return int(s) < len(silhouetteNames)
}

// Parse resolves a silhouette name.
func Parse(name string) (Silhouette, error) {
	for i, n := range silhouetteNames {
		if n == name {
			return Silhouette(i), nil
		}
	}
	return Rectangle, fmt.Errorf("unknown shape %q", name)
}

// Mask reports whether a point of the working surface lies inside the
// silhouette.
type Mask func(x, y float64) bool

// NewMask builds the point test for a silhouette on a w by h surface.
func NewMask(s Silhouette, w, h float64) Mask {
	switch s {
	case Square:
		side := min(w, h) / 2
		cx, cy := w/2, h/2
		return func(x, y float64) bool {
			dx, dy := x-cx, y-cy
			return dx >= -side && dx <= side && dy >= -side && dy <= side
		}
	case Circle:
		r := min(w, h) / 2
		cx, cy := w/2, h/2
		return func(x, y float64) bool {
			dx, dy := x-cx, y-cy
			return dx*dx+dy*dy <= r*r
		}
	case Heart:
		poly := heartOutline(w, h)
		return poly.contains
	default:
		return func(x, y float64) bool { return true }
	}
}

// AcceptsCell reports whether a cell at (x, y) survives the silhouette.
// All four corners of the padded draw rectangle must pass; one failing
// corner rejects the whole cell.
func (m Mask) AcceptsCell(x, y, size float64) bool {
	pad := size * CellInset
	x0, y0 := x+pad, y+pad
	x1, y1 := x+size-pad, y+size-pad
	return m(x0, y0) && m(x1, y0) && m(x0, y1) && m(x1, y1)
}

const (
	// CellInset is the padding fraction applied to each side of a cell.
	CellInset = 0.1
	// CellRadius is the corner radius fraction of the padded cell size.
	CellRadius = 0.2
)

// Cell fills one mosaic cell with the current color. Circle and heart
// silhouettes draw the same rounded rectangle as square and rectangle; only
// the mask differs between them.
func Cell(dc *gg.Context, x, y, size float64) error {
	pad := size * CellInset
	side := size - 2*pad
	dc.DrawRoundedRectangle(x+pad, y+pad, side, side, side*CellRadius)
	return dc.Fill()
}
