package pixelate

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	"pixpop/mosaic"
)

// RenderFile runs the pipeline over one image file and writes the result
// into destDir, named after the source with the format's extension. With
// blink enabled and GIF output it renders both blink phases into an
// animated GIF.
func RenderFile(logger *slog.Logger, srcPath, destDir, format string, cfg mosaic.Config) error {
	src, err := decode(srcPath)
	if err != nil {
		return err
	}

	var surf mosaic.ImageSurface
	defer func() {
		if closeErr := surf.Close(); closeErr != nil {
			logger.Error("could not close render surface", "error", closeErr)
		}
	}()

	if cfg.Blink && format == "gif" {
		var frames []image.Image
		for _, phase := range []bool{false, true} {
			cfg.BlinkPhase = phase
			if err := mosaic.Render(src, &surf, cfg); err != nil {
				return fmt.Errorf("could not render: %w", err)
			}
			frames = append(frames, surf.Image())
		}
		logger.Info("rendered", "grid", cfg.GridSize, "frames", len(frames))
		return saveBlinkGIF(frames, destDir, srcPath)
	}

	if err := mosaic.Render(src, &surf, cfg); err != nil {
		return fmt.Errorf("could not render: %w", err)
	}
	img := surf.Image()
	if img == nil {
		return fmt.Errorf("surface produced no image")
	}

	logger.Info("rendered", "grid", cfg.GridSize,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return save(img, format, destDir, srcPath)
}

func decode(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", name, "error", closeErr)
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return img, nil
}
