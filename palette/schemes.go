package palette

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Builtin schemes. The rainbow and popart schemes carry the exact orange
// (255,127,0) the brownish remap looks for; popart stays above five entries
// so seeded renders take the nearest-color branch.
var schemes = map[string]Palette{
	"noir": {
		{0, 0, 0}, {255, 255, 255},
	},
	"rainbow": {
		{255, 0, 0}, {255, 127, 0}, {255, 255, 0}, {0, 255, 0},
		{0, 0, 255}, {75, 0, 130}, {148, 0, 211},
	},
	"popart": {
		{255, 0, 102}, {255, 127, 0}, {255, 213, 0}, {0, 191, 99},
		{0, 114, 206}, {131, 56, 236}, {255, 255, 255}, {17, 17, 17},
	},
	"gameboy": {
		{15, 56, 15}, {48, 98, 48}, {139, 172, 15}, {155, 188, 15},
	},
	"pastel": {
		{255, 173, 173}, {255, 214, 165}, {253, 255, 182}, {202, 255, 191},
		{155, 246, 255}, {160, 196, 255}, {189, 178, 255},
	},
	"neon": {
		{57, 255, 20}, {255, 20, 147}, {0, 255, 255}, {255, 255, 0},
		{255, 97, 3}, {191, 0, 255},
	},
	"sunset": {
		{45, 22, 66}, {120, 40, 96}, {211, 66, 87}, {245, 125, 74},
		{255, 201, 120},
	},
	"ocean": {
		{2, 28, 58}, {5, 62, 103}, {16, 110, 150}, {64, 170, 185},
		{170, 227, 222},
	},
	"fire": {
		{20, 4, 2}, {102, 17, 0}, {204, 51, 0}, {255, 119, 0},
		{255, 204, 51}, {255, 255, 204},
	},
	"grayscale": {
		{0, 0, 0}, {51, 51, 51}, {102, 102, 102}, {153, 153, 153},
		{204, 204, 204}, {255, 255, 255},
	},
}

// desaturated is the fixed remap palette of the desaturation post-pass.
var desaturated = Palette{
	{255, 0, 0}, {255, 255, 0}, {0, 255, 0}, {0, 0, 255},
	{255, 0, 255}, {0, 0, 0}, {255, 255, 255},
}

// Desaturated returns the fixed seven-color remap palette.
func Desaturated() Palette {
	return slices.Clone(desaturated)
}

// Names lists the builtin scheme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load resolves a palette by builtin scheme name, falling back to palette
// files by extension (.pal RIFF, .toml).
func Load(name string) (Palette, error) {
	if p, ok := schemes[name]; ok {
		return slices.Clone(p), nil
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pal":
		return ReadPALFile(name)
	case ".toml":
		return ReadTOMLFile(name)
	}

	return nil, fmt.Errorf("unknown palette %q", name)
}
