// Package swatch implements the palette command: listing builtin schemes,
// previewing palettes as swatch sheets, extracting palettes from images and
// converting palette files between formats.
package swatch

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	_ "github.com/deepteams/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"pixpop/palette"
)

type CLICmd struct {
	List    ListCmd    `cmd:"" help:"List the builtin palette schemes"`
	Show    ShowCmd    `cmd:"" help:"Render a palette into a swatch sheet image"`
	Extract ExtractCmd `cmd:"" help:"Extract a palette from an image"`
	Convert ConvertCmd `cmd:"" help:"Convert a palette between the RIFF and TOML formats"`
}

type ListCmd struct{}

func (c *ListCmd) Run() error {
	for _, name := range palette.Names() {
		pal, err := palette.Load(name)
		if err != nil {
			return err
		}
		hexes := make([]string, len(pal))
		for i, col := range pal {
			hexes[i] = col.Hex()
		}
		fmt.Printf("%-10s %2d  %s\n", name, len(pal), strings.Join(hexes, " "))
	}
	return nil
}

type ShowCmd struct {
	Palette string `arg:"" help:"Scheme name or palette file (.pal, .toml)"`
	Out     string `help:"Swatch sheet file to write (.png)" default:"palette.png"`
}

func (c *ShowCmd) Validate(kctx *kong.Context) error {
	if ext := strings.ToLower(filepath.Ext(c.Out)); ext != ".png" {
		return fmt.Errorf("unsupported swatch sheet format %q", ext)
	}
	return nil
}

func (c *ShowCmd) Run() error {
	pal, err := palette.Load(c.Palette)
	if err != nil {
		return err
	}
	img, err := palette.Preview(pal)
	if err != nil {
		return err
	}
	if err := savePNG(img, c.Out); err != nil {
		return err
	}
	slog.Info("wrote swatch sheet", "palette", c.Palette, "colors", len(pal), "out", c.Out)
	return nil
}

type ExtractCmd struct {
	Source string `arg:"" help:"Image to pull the palette from"`
	Out    string `help:"Palette file to write (.pal, .toml). Defaults to the source name with a .toml extension."`
	Colors int    `help:"Number of colors to extract (2-16)" default:"6"`
	Method string `help:"Extraction strategy" enum:"kmeans,dominant" default:"kmeans"`
}

func (c *ExtractCmd) Validate(kctx *kong.Context) error {
	source, err := filepath.Abs(c.Source)
	if err != nil {
		return fmt.Errorf("invalid source path %q: %w", c.Source, err)
	}
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("invalid source path %q: %w", c.Source, err)
	}
	c.Source = source

	if c.Colors < 2 || c.Colors > 16 {
		return fmt.Errorf("invalid color count: %d", c.Colors)
	}
	if _, err := palette.ParseMethod(c.Method); err != nil {
		return err
	}

	if c.Out == "" {
		c.Out = strings.TrimSuffix(source, filepath.Ext(source)) + ".toml"
	}
	return checkPaletteExt(c.Out)
}

func (c *ExtractCmd) Run() error {
	method, err := palette.ParseMethod(c.Method)
	if err != nil {
		return err
	}
	img, err := decode(c.Source)
	if err != nil {
		return err
	}
	pal, err := palette.FromImage(img, c.Colors, method)
	if err != nil {
		return fmt.Errorf("could not extract palette: %w", err)
	}
	if err := writePaletteFile(c.Out, pal); err != nil {
		return err
	}
	slog.Info("extracted palette", "colors", len(pal), "method", method, "out", c.Out)
	return nil
}

type ConvertCmd struct {
	Source string `arg:"" help:"Palette to read (scheme name, .pal or .toml file)"`
	Out    string `arg:"" help:"Palette file to write (.pal, .toml)"`
}

func (c *ConvertCmd) Validate(kctx *kong.Context) error {
	return checkPaletteExt(c.Out)
}

func (c *ConvertCmd) Run() error {
	pal, err := palette.Load(c.Source)
	if err != nil {
		return err
	}
	if err := writePaletteFile(c.Out, pal); err != nil {
		return err
	}
	slog.Info("converted palette", "colors", len(pal), "from", c.Source, "to", c.Out)
	return nil
}

func checkPaletteExt(name string) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pal", ".toml":
		return nil
	}
	return fmt.Errorf("unsupported palette format %q", filepath.Ext(name))
}

func writePaletteFile(name string, pal palette.Palette) error {
	if strings.ToLower(filepath.Ext(name)) == ".pal" {
		return palette.WritePALFile(name, pal)
	}
	return palette.WriteTOMLFile(name, pal)
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

func savePNG(img image.Image, dest string) (err error) {
	outFile, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("could not create swatch file %q: %w", dest, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close swatch file %q: %w", dest, closeErr)
		}
	}()

	if err = png.Encode(outFile, img); err != nil {
		return fmt.Errorf("could not encode swatch file %q: %w", dest, err)
	}
	return nil
}
