// Package pixelate implements the render command: it decodes source images,
// runs the mosaic pipeline and writes the results, over a single file or a
// whole folder.
package pixelate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/alecthomas/kong"

	"pixpop/filter"
	"pixpop/mosaic"
	"pixpop/palette"
	"pixpop/parallel"
	"pixpop/shape"
)

type CLICmd struct {
	Source     string  `arg:"" help:"Source image or folder to render"`
	Dest       string  `help:"Destination folder for rendered pictures. Relative to the source folder if not absolute." default:"pixelated"`
	Grid       int     `help:"Cells across the image width (10-150)" default:"48" group:"mosaic"`
	Shape      string  `help:"Overall silhouette" enum:"rectangle,square,circle,heart" default:"rectangle" group:"mosaic"`
	Filter     string  `help:"Recoloring filter" enum:"none,noir,rainbow,popart" default:"none" group:"mosaic"`
	Palette    string  `help:"Scheme name or palette file (.pal, .toml). Defaults to the filter's scheme." group:"color"`
	Seed       int64   `help:"Jitter seed, 0 disables jitter" default:"0" group:"color"`
	Brightness float64 `help:"Brightness multiplier (0-2)" default:"1" group:"color"`
	Saturation float64 `help:"Saturation multiplier (0-3)" default:"1" group:"color"`
	Desaturate bool    `help:"Snap cells to the fixed seven-color remap" default:"false" group:"color"`
	Zoom       float64 `help:"Zoom into the source (1-3)" default:"1" group:"window"`
	PanX       float64 `help:"Horizontal pan of the zoom window (-0.5-0.5)" default:"0" group:"window"`
	PanY       float64 `help:"Vertical pan of the zoom window (-0.5-0.5)" default:"0" group:"window"`
	Blink      bool    `help:"Highlight every tenth row and column. GIF output animates both blink phases." default:"false"`
	Format     string  `help:"Output format" enum:"png,jpeg,gif,bmp,tiff,webp" default:"png"`

	batch bool
	cfg   mosaic.Config
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	source, err := filepath.Abs(c.Source)
	if err != nil {
		return fmt.Errorf("invalid source path %q: %w", c.Source, err)
	}
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("invalid source path %q: %w", c.Source, err)
	}
	c.Source = source
	c.batch = info.IsDir()

	sourceDir := c.Source
	if !c.batch {
		sourceDir = filepath.Dir(c.Source)
	}
	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(sourceDir, c.Dest)
	}

	switch {
	case c.Grid < 10 || c.Grid > 150:
		return fmt.Errorf("invalid grid size: %d", c.Grid)
	case c.Brightness < 0 || c.Brightness > 2:
		return fmt.Errorf("invalid brightness multiplier: %v", c.Brightness)
	case c.Saturation < 0 || c.Saturation > 3:
		return fmt.Errorf("invalid saturation multiplier: %v", c.Saturation)
	case c.Zoom < 1 || c.Zoom > 3:
		return fmt.Errorf("invalid zoom factor: %v", c.Zoom)
	case c.PanX < -0.5 || c.PanX > 0.5:
		return fmt.Errorf("invalid horizontal pan offset: %v", c.PanX)
	case c.PanY < -0.5 || c.PanY > 0.5:
		return fmt.Errorf("invalid vertical pan offset: %v", c.PanY)
	}

	cfg, err := c.buildConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg

	return c.cfg.Validate()
}

// buildConfig assembles the pipeline configuration from the flags. A filter
// without an explicit palette falls back to its builtin scheme.
func (c *CLICmd) buildConfig() (mosaic.Config, error) {
	cfg := mosaic.Default()
	cfg.GridSize = c.Grid
	cfg.Seed = c.Seed
	cfg.Zoom = c.Zoom
	cfg.PanX = c.PanX
	cfg.PanY = c.PanY
	cfg.Desaturate = c.Desaturate
	cfg.Brightness = c.Brightness
	cfg.Saturation = c.Saturation
	cfg.Blink = c.Blink
	cfg.BlinkPhase = c.Blink

	var err error
	if cfg.Shape, err = shape.Parse(c.Shape); err != nil {
		return cfg, err
	}
	if cfg.Filter, err = filter.Parse(c.Filter); err != nil {
		return cfg, err
	}

	palName := c.Palette
	if palName == "" {
		palName = filter.DefaultScheme(cfg.Filter)
	}
	if palName != "" {
		if cfg.Palette, err = palette.Load(palName); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	var files []string
	if c.batch {
		entries, err := os.ReadDir(c.Source)
		if err != nil {
			return fmt.Errorf("unable to read folder %q: %w", c.Source, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			files = append(files, filepath.Join(c.Source, entry.Name()))
		}
	} else {
		files = []string{c.Source}
	}

	var processedCount, errCount atomic.Uint64
	for _, filePath := range files {
		worker(func(filePath string) func() {
			return func() {
				logger := slog.Default().With("file", filePath)

				if err := RenderFile(logger, filePath, c.Dest, c.Format, c.cfg); err != nil {
					errCount.Add(1)
					logger.Error("could not pixelate image", "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(filePath))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}
