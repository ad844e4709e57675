package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

// twoToneImage builds an image whose left half is solid red and right half
// solid blue.
func twoToneImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBA{R: 200, A: 255}
			if x >= width/2 {
				c = color.RGBA{B: 200, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFromImageTwoTone(t *testing.T) {
	img := twoToneImage(100, 100)

	for _, method := range []Method{MethodKMeans, MethodDominant} {
		t.Run(method.String(), func(t *testing.T) {
			pal, err := FromImage(img, 2, method)
			if err != nil {
				t.Fatalf("FromImage() error = %v", err)
			}
			if len(pal) != 2 {
				t.Fatalf("len(pal) = %d, want 2", len(pal))
			}

			idxRed, idxBlue := -1, -1
			for i, c := range pal {
				switch {
				case c.R > 120 && c.B < 80:
					idxRed = i
				case c.B > 120 && c.R < 80:
					idxBlue = i
				}
			}
			if idxRed < 0 || idxBlue < 0 {
				t.Fatalf("pal = %v, want one reddish and one bluish color", pal)
			}
			// Blue carries less luma than red, so it sorts first.
			if idxBlue != 0 {
				t.Errorf("pal = %v, want the bluish color first", pal)
			}
		})
	}
}

func TestFromImageClampsPaletteSize(t *testing.T) {
	// Two distinct source colors cannot yield more than two palette entries
	// no matter how many were requested.
	pal, err := FromImage(twoToneImage(40, 40), 8, MethodKMeans)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if len(pal) == 0 || len(pal) > 8 {
		t.Fatalf("len(pal) = %d, want between 1 and 8", len(pal))
	}
	seen := map[Color]bool{}
	for _, c := range pal {
		if seen[c] {
			t.Errorf("FromImage() returned duplicate color %v", c)
		}
		seen[c] = true
	}
}

func TestFromImageInvalidSize(t *testing.T) {
	_, err := FromImage(twoToneImage(10, 10), 0, MethodKMeans)
	if err == nil {
		t.Fatal("FromImage(k=0) expected error, got nil")
	}
}

func TestFromImageTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	if _, err := FromImage(img, 4, MethodKMeans); err == nil {
		t.Fatal("FromImage() on a fully transparent image expected error, got nil")
	}
}

func TestSelectDiversePrefersDistantColors(t *testing.T) {
	white := colorful.Color{R: 1, G: 1, B: 1}
	offwhite := colorful.Color{R: 0.95, G: 0.95, B: 0.95}
	black := colorful.Color{R: 0, G: 0, B: 0}

	cands := []weightedColor{
		{col: white, weight: 10},
		{col: offwhite, weight: 5},
		{col: black, weight: 1},
	}

	picked := selectDiverse(cands, 2)
	if len(picked) != 2 {
		t.Fatalf("len(picked) = %d, want 2", len(picked))
	}
	if picked[0] != white {
		t.Errorf("picked[0] = %v, want the heaviest candidate %v", picked[0], white)
	}
	// Black is far from white; off-white is close but heavier. Distance wins.
	if picked[1] != black {
		t.Errorf("picked[1] = %v, want %v", picked[1], black)
	}
}

func TestSelectDiverseCapsAtCandidateCount(t *testing.T) {
	cands := []weightedColor{{col: colorful.Color{R: 1}, weight: 1}}
	if picked := selectDiverse(cands, 5); len(picked) != 1 {
		t.Errorf("len(picked) = %d, want 1", len(picked))
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		want    Method
		wantErr bool
	}{
		{name: "kmeans", want: MethodKMeans},
		{name: "dominant", want: MethodDominant},
		{name: "median", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMethod(%q) expected error, got nil", tt.name)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.name, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
		})
	}
}
