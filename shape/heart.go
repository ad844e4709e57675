package shape

// The heart silhouette is four cubic segments over the full bounding box.
// The notch sits at 30% of the height, the lobes arc through control points
// on the top edge, and the sides fall to the bottom tip at (w/2, h).

// heartSteps is the flattening resolution per cubic segment.
const heartSteps = 24

type point struct {
	x, y float64
}

type polygon []point

func heartOutline(w, h float64) polygon {
	notch := 0.3 * h
	waist := (h + notch) / 2

	segs := [][4]point{
		{{w / 2, notch}, {w / 2, 0}, {0, 0}, {0, notch}},
		{{0, notch}, {0, waist}, {w / 2, waist}, {w / 2, h}},
		{{w / 2, h}, {w / 2, waist}, {w, waist}, {w, notch}},
		{{w, notch}, {w, 0}, {w / 2, 0}, {w / 2, notch}},
	}

	poly := make(polygon, 0, 4*heartSteps)
	for _, s := range segs {
		for i := range heartSteps {
			t := float64(i) / heartSteps
			poly = append(poly, cubicAt(s[0], s[1], s[2], s[3], t))
		}
	}
	return poly
}

func cubicAt(p0, p1, p2, p3 point, t float64) point {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return point{
		x: a*p0.x + b*p1.x + c*p2.x + d*p3.x,
		y: a*p0.y + b*p1.y + c*p2.y + d*p3.y,
	}
}

// contains runs an even-odd crossing test against the flattened outline.
func (p polygon) contains(x, y float64) bool {
	in := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		pi, pj := p[i], p[j]
		if (pi.y > y) != (pj.y > y) &&
			x < (pj.x-pi.x)*(y-pi.y)/(pj.y-pi.y)+pi.x {
			in = !in
		}
	}
	return in
}
