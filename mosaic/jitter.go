package mosaic

import "math"

// jitterSource yields the closed-form sequence frac(sin(n)*10000), one value
// in [0,1) per draw, advancing n by one each time. A single source runs
// across the whole grid scan, so identical seed and grid geometry reproduce
// identical output.
type jitterSource struct {
	n int64
}

func newJitterSource(seed int64) *jitterSource {
	return &jitterSource{n: seed}
}

func (j *jitterSource) next() float64 {
	v := math.Sin(float64(j.n)) * 10000
	j.n++
	return v - math.Floor(v)
}
