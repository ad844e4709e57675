package watch

import (
	"os"
	"path/filepath"
	"testing"

	"pixpop/filter"
	"pixpop/shape"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsMissingFile(t *testing.T) {
	got, err := LoadSettings(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults", got)
	}
}

func TestLoadSettingsEmptyPath(t *testing.T) {
	got, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("LoadSettings() = %+v, want defaults", got)
	}
}

func TestLoadSettingsOverlaysNamedKeys(t *testing.T) {
	path := writeSettings(t, `
grid = 64
filter = "noir"
zoom = 2.0
pan_x = 0.25
`)
	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if got.Grid != 64 || got.Filter != "noir" || got.Zoom != 2.0 || got.PanX != 0.25 {
		t.Errorf("LoadSettings() = %+v, want named keys applied", got)
	}
	// Keys the file does not mention keep their defaults.
	if got.Shape != shape.Rectangle.String() || got.Brightness != 1 || got.Saturation != 1 {
		t.Errorf("LoadSettings() = %+v, want untouched defaults for absent keys", got)
	}
}

func TestLoadSettingsBadSyntax(t *testing.T) {
	path := writeSettings(t, "grid = [\n")
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("LoadSettings() expected error, got nil")
	}
}

func TestSettingsConfig(t *testing.T) {
	s := DefaultSettings()
	s.Grid = 32
	s.Shape = "heart"
	s.Filter = "rainbow"
	s.Seed = 9

	cfg, err := s.Config()
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if cfg.GridSize != 32 || cfg.Shape != shape.Heart || cfg.Filter != filter.Rainbow || cfg.Seed != 9 {
		t.Errorf("Config() = %+v, want settings carried over", cfg)
	}
	// No palette named, so the filter's builtin scheme fills in.
	if len(cfg.Palette) != 7 {
		t.Errorf("len(cfg.Palette) = %d, want the rainbow scheme", len(cfg.Palette))
	}
}

func TestSettingsConfigBlinkDrivesPhase(t *testing.T) {
	s := DefaultSettings()
	s.Blink = true

	cfg, err := s.Config()
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if !cfg.Blink || !cfg.BlinkPhase {
		t.Errorf("Config() blink = (%v, %v), want both active", cfg.Blink, cfg.BlinkPhase)
	}
}

func TestSettingsConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{name: "unknown shape", mutate: func(s *Settings) { s.Shape = "triangle" }},
		{name: "unknown filter", mutate: func(s *Settings) { s.Filter = "vignette" }},
		{name: "unknown palette", mutate: func(s *Settings) { s.Palette = "nope" }},
		{name: "grid out of range", mutate: func(s *Settings) { s.Grid = 0 }},
		{name: "zoom out of range", mutate: func(s *Settings) { s.Zoom = 0.25 }},
		{name: "pan out of range", mutate: func(s *Settings) { s.PanY = 0.75 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			if _, err := s.Config(); err == nil {
				t.Error("Config() expected error, got nil")
			}
		})
	}
}
