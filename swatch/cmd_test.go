package swatch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"pixpop/palette"
)

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	path := filepath.Join(dir, "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return path
}

func TestCheckPaletteExt(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "colors.pal"},
		{name: "COLORS.PAL"},
		{name: "colors.toml"},
		{name: "colors.json", wantErr: true},
		{name: "colors.png", wantErr: true},
		{name: "colors", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkPaletteExt(tt.name)
			if tt.wantErr && err == nil {
				t.Error("checkPaletteExt() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("checkPaletteExt() error = %v", err)
			}
		})
	}
}

func TestWritePaletteFilePicksFormat(t *testing.T) {
	dir := t.TempDir()
	pal := palette.Palette{{R: 255}, {G: 128, B: 64}}

	for _, name := range []string{"out.pal", "out.toml"} {
		path := filepath.Join(dir, name)
		if err := writePaletteFile(path, pal); err != nil {
			t.Fatalf("writePaletteFile(%q) error = %v", name, err)
		}
		got, err := palette.Load(path)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", name, err)
		}
		if !slices.Equal(got, pal) {
			t.Errorf("round trip through %q = %v, want %v", name, got, pal)
		}
	}
}

func TestShowCmdWritesSwatchSheet(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sheet.png")
	cmd := ShowCmd{Palette: "noir", Out: out}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", out, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	pal, err := palette.Load("noir")
	if err != nil {
		t.Fatalf("Load(noir) error = %v", err)
	}
	want, err := palette.Preview(pal)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if img.Bounds() != want.Bounds() {
		t.Errorf("swatch sheet bounds = %v, want %v", img.Bounds(), want.Bounds())
	}
}

func TestShowCmdValidateRequiresPNG(t *testing.T) {
	cmd := ShowCmd{Palette: "noir", Out: "sheet.gif"}
	if err := cmd.Validate(nil); err == nil {
		t.Fatal("Validate() expected error, got nil")
	}
}

func TestExtractCmdValidateDefaultsOut(t *testing.T) {
	src := writeTestPNG(t, t.TempDir())

	cmd := ExtractCmd{Source: src, Colors: 4, Method: "kmeans"}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if want := strings.TrimSuffix(src, ".png") + ".toml"; cmd.Out != want {
		t.Errorf("default Out = %q, want %q", cmd.Out, want)
	}
}

func TestExtractCmdValidateErrors(t *testing.T) {
	src := writeTestPNG(t, t.TempDir())

	tests := []struct {
		name string
		cmd  ExtractCmd
	}{
		{name: "missing source", cmd: ExtractCmd{Source: filepath.Join(t.TempDir(), "nope.png"), Colors: 4, Method: "kmeans"}},
		{name: "too few colors", cmd: ExtractCmd{Source: src, Colors: 1, Method: "kmeans"}},
		{name: "too many colors", cmd: ExtractCmd{Source: src, Colors: 17, Method: "kmeans"}},
		{name: "unknown method", cmd: ExtractCmd{Source: src, Colors: 4, Method: "median"}},
		{name: "bad output format", cmd: ExtractCmd{Source: src, Colors: 4, Method: "kmeans", Out: "colors.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(nil); err == nil {
				t.Error("Validate() expected error, got nil")
			}
		})
	}
}

func TestConvertCmdRoundTrips(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gameboy.pal")
	cmd := ConvertCmd{Source: "gameboy", Out: out}
	if err := cmd.Validate(nil); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := palette.Load(out)
	if err != nil {
		t.Fatalf("Load(%q) error = %v", out, err)
	}
	want, err := palette.Load("gameboy")
	if err != nil {
		t.Fatalf("Load(gameboy) error = %v", err)
	}
	if !slices.Equal(got, want) {
		t.Errorf("converted palette = %v, want %v", got, want)
	}
}
