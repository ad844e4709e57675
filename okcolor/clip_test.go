package okcolor

import (
	"math"
	"testing"
)

func TestGamutClipReturnsDisplayableColors(t *testing.T) {
	// None of these points fit in sRGB as given. After clipping, every
	// linear channel must land inside [0, 1] up to the solver's residual.
	points := []Lab{
		{L: 0.5, A: 0.6, B: 0.2},
		{L: 0.3, A: -0.1, B: -0.5},
		{L: 0.8, A: 0.5},
		{L: 1.1, A: 0.1, B: 0.15},
		{L: 0.2, B: 0.4},
		{L: 0.95, A: -0.4, B: 0.1},
		{L: -0.05, A: 0.2, B: -0.2},
	}
	const tol = 1e-3
	for _, in := range points {
		got := GamutClipAdaptive05(in, 0.05)
		rgb := got.LinearRGBA(nil)
		for _, ch := range []float64{rgb.R, rgb.G, rgb.B} {
			if ch < -tol || ch > 1+tol {
				t.Errorf("clip(%+v) linear channel = %f, want within [0, 1]", in, ch)
			}
		}
		if got.L < -tol || got.L > 1+tol {
			t.Errorf("clip(%+v) L = %f, want within [0, 1]", in, got.L)
		}
	}
}

func TestGamutClipKeepsHue(t *testing.T) {
	points := []Lab{
		{L: 0.5, A: 0.6, B: 0.2},
		{L: 0.3, A: -0.1, B: -0.5},
		{L: 0.95, A: -0.4, B: 0.1},
	}
	for _, in := range points {
		got := GamutClipAdaptive05(in, 0.05)
		// Projection scales chroma along a fixed direction, so the
		// a/b ratio survives even though the magnitude shrinks.
		wantRatio := in.A / in.B
		gotRatio := got.A / got.B
		if math.Abs(wantRatio-gotRatio) > 1e-6 {
			t.Errorf("clip(%+v) a/b = %f, want %f", in, gotRatio, wantRatio)
		}
		if in.A*got.A < 0 || in.B*got.B < 0 {
			t.Errorf("clip(%+v) flipped chroma sign: got (%f, %f)", in, got.A, got.B)
		}
	}
}

func TestGamutClipPreservesAlpha(t *testing.T) {
	in := Lab{L: 0.5, A: 0.6, B: 0.2, Alpha: 0x7fff}
	if got := GamutClipAdaptive05(in, 0.05); got.Alpha != in.Alpha {
		t.Errorf("clip alpha = %#x, want %#x", got.Alpha, in.Alpha)
	}
}

func TestSgn(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -3, want: -1},
		{in: -0.2, want: -1},
		{in: 0, want: 0},
		{in: 0.2, want: 1},
		{in: 3, want: 1},
	}
	for _, tt := range tests {
		if got := sgn(tt.in); got != tt.want {
			t.Errorf("sgn(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
