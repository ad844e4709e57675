package pixelate

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"pixpop/mosaic"
)

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	path := filepath.Join(dir, "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRenderFileWritesPNG(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := writeTestPNG(t, srcDir)

	cfg := mosaic.Default()
	cfg.GridSize = 6
	if err := RenderFile(quietLogger(), src, destDir, "png", cfg); err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}

	f, err := os.Open(filepath.Join(destDir, "src.png"))
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer func() { _ = f.Close() }()

	out, err := png.Decode(f)
	if err != nil {
		t.Fatalf("could not decode output: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Fatalf("output size = %v, want 60x60", b)
	}

	// The probe sits inside a tile, clear of its rounded corners.
	c := color.RGBAModel.Convert(out.At(35, 35)).(color.RGBA)
	if c.R != 255 || c.G != 0 || c.B != 0 {
		t.Errorf("tile interior = %v, want pure red", c)
	}
}

func TestRenderFileBlinkWritesAnimatedGIF(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := writeTestPNG(t, srcDir)

	cfg := mosaic.Default()
	cfg.GridSize = 6
	cfg.Blink = true
	if err := RenderFile(quietLogger(), src, destDir, "gif", cfg); err != nil {
		t.Fatalf("RenderFile() error = %v", err)
	}

	f, err := os.Open(filepath.Join(destDir, "src.gif"))
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	defer func() { _ = f.Close() }()

	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("could not decode output: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Fatalf("frames = %d, want one per blink phase", len(anim.Image))
	}
	for i, d := range anim.Delay {
		if d != blinkDelay {
			t.Errorf("frame %d delay = %d, want %d", i, d, blinkDelay)
		}
	}
	if anim.LoopCount != 0 {
		t.Errorf("loop count = %d, want endless", anim.LoopCount)
	}
}

func TestRenderFileMissingSource(t *testing.T) {
	err := RenderFile(quietLogger(), filepath.Join(t.TempDir(), "nope.png"), t.TempDir(), "png", mosaic.Default())
	if err == nil {
		t.Fatal("RenderFile() expected error, got nil")
	}
}

func TestRenderFileUnknownFormat(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := writeTestPNG(t, srcDir)

	if err := RenderFile(quietLogger(), src, destDir, "avif", mosaic.Default()); err == nil {
		t.Fatal("RenderFile() expected error, got nil")
	}

	// The failed attempt must not leave stray files behind.
	entries, err := os.ReadDir(destDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("destination holds %d files after a failed save, want none", len(entries))
	}
}
