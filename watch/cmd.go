// Package watch implements live mode: it keeps re-rendering one source
// image whenever the image itself or its settings file changes on disk, so
// the pipeline parameters can be tuned in an editor while the output is
// open in a viewer.
package watch

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"pixpop/pixelate"
)

type CLICmd struct {
	Source   string        `arg:"" help:"Source image to watch"`
	Settings string        `help:"Settings file (.toml) applied on every render. Watched too; it may appear later."`
	Dest     string        `help:"Destination folder for rendered pictures. Relative to the source folder if not absolute." default:"pixelated"`
	Format   string        `help:"Output format" enum:"png,jpeg,gif,bmp,tiff,webp" default:"png"`
	Debounce time.Duration `help:"Quiet period before a change triggers a render" default:"500ms"`
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
	if info.IsDir() {
		return fmt.Errorf("invalid source path %q: watch mode takes a single image", c.Source)
	}
	c.Source = source

	if c.Settings != "" {
		settings, err := filepath.Abs(c.Settings)
		if err != nil {
			return fmt.Errorf("invalid settings path %q: %w", c.Settings, err)
		}
		c.Settings = settings
	}

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(filepath.Dir(c.Source), c.Dest)
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("invalid debounce interval: %v", c.Debounce)
	}

	// A broken settings file should fail at startup, not on first change.
	settings, err := LoadSettings(c.Settings)
	if err != nil {
		return err
	}
	if _, err := settings.Config(); err != nil {
		return err
	}
	return nil
}

func (c *CLICmd) Run() error {
	if err := os.MkdirAll(c.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not start watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{c.Source: true}
	if c.Settings != "" {
		watched[c.Settings] = true
	}

	// Watch the parent folders, not the files themselves. Editors replace
	// files wholesale, and a folder watch survives the delete and rename
	// dance while a file watch follows the dead inode.
	dirs := make(map[string]bool)
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("could not watch folder %q: %w", dir, err)
		}
	}

	renders := make(chan struct{}, 1)
	db := newDebouncer(c.Debounce, func(string) {
		select {
		case renders <- struct{}{}:
		default:
		}
	})
	defer db.stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	logger := slog.Default().With("file", c.Source)
	if err := c.render(logger); err != nil {
		return err
	}
	logger.Info("watching", "settings", c.Settings, "dest", c.Dest)

	for {
		select {
		case <-sigs:
			logger.Info("shutting down")
			return nil

		case <-renders:
			// Mid-edit states are expected here, so a failed render logs
			// and keeps watching instead of tearing the session down.
			if err := c.render(logger); err != nil {
				logger.Error("could not pixelate image", "error", err)
			}

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if !watched[name] {
				continue
			}
			if ev.Has(fsnotify.Remove) {
				continue
			}
			if ev.Has(fsnotify.Rename) {
				if _, err := os.Stat(name); err != nil {
					continue
				}
			}
			db.trigger(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

// render reloads the settings and runs the pipeline once. Renders are
// serialized by the event loop; the debouncer only ever queues one.
func (c *CLICmd) render(logger *slog.Logger) error {
	settings, err := LoadSettings(c.Settings)
	if err != nil {
		return err
	}
	cfg, err := settings.Config()
	if err != nil {
		return err
	}
	return pixelate.RenderFile(logger, c.Source, c.Dest, c.Format, cfg)
}
