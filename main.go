package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"pixpop/parallel"
	"pixpop/pixelate"
	"pixpop/swatch"
	"pixpop/watch"
)

var cli struct {
	Render  pixelate.CLICmd `cmd:"" help:"Pixelate an image or a folder of images"`
	Watch   watch.CLICmd    `cmd:"" help:"Keep re-rendering one image as it or its settings file changes"`
	Palette swatch.CLICmd   `cmd:"" help:"List, preview, extract and convert palettes"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("pixpop"),
		kong.Description("Turns pictures into pixel-art mosaics built from palettes, filters and silhouettes."),
		kong.UsageOnError(),
	)

	pool := parallel.Start(0)
	defer pool.Cancel()

	err := kctx.Run(
		parallel.WorkerFunc(pool.Do),
		parallel.WaitFunc(pool.Wait),
	)
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
