package watch

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"pixpop/filter"
	"pixpop/mosaic"
	"pixpop/palette"
	"pixpop/shape"
)

// Settings is the on-disk mirror of the pipeline parameters. Keys absent
// from the file keep their defaults, so a settings file only has to name
// what it changes.
type Settings struct {
	Grid       int     `toml:"grid"`
	Shape      string  `toml:"shape"`
	Filter     string  `toml:"filter"`
	Palette    string  `toml:"palette"`
	Seed       int64   `toml:"seed"`
	Brightness float64 `toml:"brightness"`
	Saturation float64 `toml:"saturation"`
	Desaturate bool    `toml:"desaturate"`
	Zoom       float64 `toml:"zoom"`
	PanX       float64 `toml:"pan_x"`
	PanY       float64 `toml:"pan_y"`
	Blink      bool    `toml:"blink"`
}

// DefaultSettings mirrors mosaic.Default.
func DefaultSettings() Settings {
	return Settings{
		Grid:       48,
		Shape:      shape.Rectangle.String(),
		Filter:     filter.None.String(),
		Brightness: 1,
		Saturation: 1,
		Zoom:       1,
	}
}

// LoadSettings reads a settings file over the defaults. An empty path or a
// file that does not exist yet returns the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, fmt.Errorf("could not read settings file %q: %w", path, err)
	}
	return s, nil
}

// Config resolves the settings into a validated pipeline configuration. A
// filter without an explicit palette falls back to its builtin scheme.
func (s Settings) Config() (mosaic.Config, error) {
	cfg := mosaic.Default()
	cfg.GridSize = s.Grid
	cfg.Seed = s.Seed
	cfg.Zoom = s.Zoom
	cfg.PanX = s.PanX
	cfg.PanY = s.PanY
	cfg.Desaturate = s.Desaturate
	cfg.Brightness = s.Brightness
	cfg.Saturation = s.Saturation
	cfg.Blink = s.Blink
	cfg.BlinkPhase = s.Blink

	var err error
	if cfg.Shape, err = shape.Parse(s.Shape); err != nil {
		return cfg, err
	}
	if cfg.Filter, err = filter.Parse(s.Filter); err != nil {
		return cfg, err
	}

	palName := s.Palette
	if palName == "" {
		palName = filter.DefaultScheme(cfg.Filter)
	}
	if palName != "" {
		if cfg.Palette, err = palette.Load(palName); err != nil {
			return cfg, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
