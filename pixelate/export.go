package pixelate

import (
	"fmt"
	"image"
	colorpalette "image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/deepteams/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// blinkDelay is the per-frame delay of animated blink output, in hundredths
// of a second.
const blinkDelay = 50

// save writes img into destDir as outType, named after srcName. The file is
// written to a temporary name and renamed into place only after a complete
// encode.
func save(img image.Image, outType, destDir, srcName string) (err error) {
	outFile, destName, done, err := createDest(destDir, srcName, outType)
	if err != nil {
		return err
	}
	defer done(&err)

	switch outType {
	case "gif":
		if err = gif.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
		}
	case "jpeg":
		if err = jpeg.Encode(outFile, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG destination %q: %w", destName, err)
		}
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG destination %q: %w", destName, err)
		}
	case "bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP destination %q: %w", destName, err)
		}
	case "tiff":
		if err = tiff.Encode(outFile, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF destination %q: %w", destName, err)
		}
	case "webp":
		// Lossless suits the flat cell colors far better than VP8 would.
		opts := &webp.EncoderOptions{Lossless: true, Quality: 75, Method: 4}
		if err = webp.Encode(outFile, img, opts); err != nil {
			return fmt.Errorf("could not encode WebP destination %q: %w", destName, err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}

	return nil
}

// saveBlinkGIF writes the two blink phases as a looping animated GIF.
func saveBlinkGIF(frames []image.Image, destDir, srcName string) (err error) {
	outFile, destName, done, err := createDest(destDir, srcName, "gif")
	if err != nil {
		return err
	}
	defer done(&err)

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		bounds := frame.Bounds()
		paletted := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), colorpalette.Plan9)
		draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), frame, bounds.Min)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, blinkDelay)
	}

	if err = gif.EncodeAll(outFile, anim); err != nil {
		return fmt.Errorf("could not encode GIF destination %q: %w", destName, err)
	}
	return nil
}

// createDest opens a temporary file in destDir for the output named after
// srcName. The returned done func flushes, closes and, when no error is
// pending, renames the temporary file onto the final name.
func createDest(destDir, srcName, outType string) (*os.File, string, func(*error), error) {
	base := filepath.Base(srcName)
	destName := fmt.Sprintf("%s.%s", strings.TrimSuffix(base, filepath.Ext(base)), outType)

	outFile, err := os.CreateTemp(destDir, destName)
	if err != nil {
		return nil, "", nil, fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}

	done := func(errp *error) {
		if defErr := outFile.Sync(); defErr != nil && *errp == nil {
			*errp = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && *errp == nil {
			*errp = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if *errp != nil {
			if defErr := os.Remove(outFile.Name()); defErr != nil {
				slog.Error("could not remove temporary destination", "file", outFile.Name(), "error", defErr)
			}
			return
		}
		if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
			*errp = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
		}
	}

	return outFile, destName, done, nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
