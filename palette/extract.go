package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"pixpop/okcolor"
)

// Method selects the palette extraction strategy.
type Method int

const (
	MethodKMeans Method = iota
	MethodDominant
)

func (m Method) String() string {
	switch m {
	case MethodDominant:
		return "dominant"
	default:
		return "kmeans"
	}
}

// ParseMethod resolves an extraction method name.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "kmeans":
		return MethodKMeans, nil
	case "dominant":
		return MethodDominant, nil
	}
	return MethodKMeans, fmt.Errorf("unknown extraction method %q", name)
}

// maxSamples caps the number of pixels fed to the clusterer.
const maxSamples = 12000

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// FromImage derives a palette of at most k colors from an image, ordered
// darkest to brightest.
func FromImage(img image.Image, k int, method Method) (Palette, error) {
	if k < 1 {
		return nil, fmt.Errorf("invalid palette size: %d", k)
	}

	var cands []weightedColor
	switch method {
	case MethodDominant:
		cands = dominantCandidates(img, k)
	default:
		var err error
		if cands, err = kmeansCandidates(img, k); err != nil {
			return nil, err
		}
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("no opaque pixels to extract a palette from")
	}

	picked := selectDiverse(cands, k)
	sortByBrightness(picked)

	pal := make(Palette, 0, len(picked))
	for _, col := range picked {
		r, g, b := col.RGB255()
		c := Color{R: r, G: g, B: b}
		// Distinct cluster centers can collapse onto one 8-bit color.
		if pal.Contains(c) {
			continue
		}
		pal = append(pal, c)
	}
	return pal, nil
}

// dominantCandidates pulls a widened set of weighted dominant colors so the
// diversity pass has room to choose.
func dominantCandidates(img image.Image, k int) []weightedColor {
	found := dominantcolor.FindWeight(img, max(24, k*8))

	cands := make([]weightedColor, 0, len(found))
	for _, c := range found {
		col, ok := colorful.MakeColor(c.RGBA)
		if !ok {
			continue
		}
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		cands = append(cands, weightedColor{col: col.Clamped(), weight: w})
	}
	return cands
}

// kmeansCandidates clusters a subsampled pixel set in OKLab coordinates
// into more clusters than requested and weights each center by its
// population.
func kmeansCandidates(img image.Image, k int) ([]weightedColor, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("empty source image")
	}

	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			lab := okcolor.FromColor(color.RGBA64{
				R: uint16(r16), G: uint16(g16), B: uint16(b16), A: uint16(a16),
			})
			dataset = append(dataset, clusters.Coordinates{lab.L, lab.A, lab.B})
		}
	}
	if len(dataset) == 0 {
		return nil, nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil {
		return nil, fmt.Errorf("could not cluster pixels: %w", err)
	}

	// Dominant clusters first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	cands := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		// A center averaged in OKLab can land outside the sRGB gamut;
		// converting through okcolor clips it back inside.
		col, ok := colorful.MakeColor(okcolor.Lab{
			L: c.Center[0], A: c.Center[1], B: c.Center[2], Alpha: 0xffff,
		})
		if !ok {
			continue
		}
		w := float64(len(c.Observations))
		if w <= 0 {
			w = 1e-6
		}
		cands = append(cands, weightedColor{col: col, weight: w})
	}
	return cands, nil
}

// selectDiverse keeps k candidates, seeding with the heaviest and then
// greedily taking the color farthest in OKLab space from everything
// selected, weight-biased so dominant tones still win close calls.
func selectDiverse(cands []weightedColor, k int) []colorful.Color {
	if k > len(cands) {
		k = len(cands)
	}

	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		lab := okcolor.FromColor(c.col)
		if c.weight > maxW {
			maxW = c.weight
		}
		items = append(items, item{col: c.col, lab: [3]float64{lab.L, lab.A, lab.B}, w: c.weight})
	}
	if maxW <= 0 {
		maxW = 1.0
	}

	seed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[seed].w {
			seed = i
		}
	}

	selected := make([]bool, len(items))
	selected[seed] = true
	order := []int{seed}

	for len(order) < k {
		bestIdx, bestScore := -1, -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range order {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				if d := d0*d0 + d1*d1 + d2*d2; d < minD2 {
					minD2 = d
				}
			}
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(items[i].w/maxW))
			if score > bestScore {
				bestScore, bestIdx = score, i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		order = append(order, bestIdx)
	}

	out := make([]colorful.Color, 0, len(order))
	for _, idx := range order {
		out = append(out, items[idx].col)
	}
	return out
}

// sortByBrightness orders colors darkest first by linear luma.
func sortByBrightness(cols []colorful.Color) {
	slices.SortFunc(cols, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		switch {
		case yi < yj:
			return -1
		case yi > yj:
			return 1
		}
		return 0
	})
}
