package palette

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// tomlPalette is the on-disk TOML palette document: a list of #RRGGBB
// strings plus an optional display name.
type tomlPalette struct {
	Name   string   `toml:"name,omitempty"`
	Colors []string `toml:"colors"`
}

// ReadTOMLFile loads a palette from a TOML color list.
func ReadTOMLFile(name string) (Palette, error) {
	var doc tomlPalette
	if _, err := toml.DecodeFile(name, &doc); err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}
	if len(doc.Colors) == 0 {
		return nil, fmt.Errorf("no colors in palette file %q", name)
	}

	pal := make(Palette, 0, len(doc.Colors))
	for i, s := range doc.Colors {
		c, err := ParseHex(s)
		if err != nil {
			return nil, fmt.Errorf("invalid color %d in palette file %q: %w", i, name, err)
		}
		pal = append(pal, c)
	}

	return pal, nil
}

// WriteTOMLFile saves a palette as a TOML color list.
func WriteTOMLFile(name string, p Palette) (err error) {
	doc := tomlPalette{Colors: make([]string, len(p))}
	for i, c := range p {
		doc.Colors[i] = c.Hex()
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", name, closeErr)
		}
	}()

	if err = toml.NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("could not encode palette file %q: %w", name, err)
	}
	return nil
}
