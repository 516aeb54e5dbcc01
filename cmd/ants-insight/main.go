// Command ants-insight opens a window and plays back a recorded game.
//
//	ants-insight [flags] <replay>
//
// Settings come from the file named by ANTS_INSIGHT_CONFIG, or
// ants-insight.yaml in the working directory, and fall back to defaults.
// Every flag defaults to the configured value.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Speedy-Consoles/ants-insight/config"
	"github.com/Speedy-Consoles/ants-insight/logger"
	"github.com/Speedy-Consoles/ants-insight/replay"
	"github.com/Speedy-Consoles/ants-insight/viewer"
)

func main() {
	cfg, cfgPath, cfgErr := config.Resolve()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	if cfgErr != nil {
		logger.Log.WithError(cfgErr).Fatal("invalid configuration")
	}
	if cfgPath != "" {
		logger.Log.WithField("path", cfgPath).Debug("configuration loaded")
	}

	cfg, path, err := parseArgs(cfg, os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	r, err := replay.Load(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to load replay")
	}

	game, err := viewer.New(r, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to set up viewer")
	}
	if err := game.Run(); err != nil {
		logger.Log.WithError(err).Fatal("viewer stopped")
	}
}

// parseArgs applies the command line on top of cfg and returns the replay
// path. Usage is written to out on error.
func parseArgs(cfg config.Config, name string, args []string, out io.Writer) (config.Config, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	paused := fs.Bool("paused", !cfg.Playback.Autoplay, "Start paused on the first turn.")
	speed := fs.Float64("speed", cfg.Playback.Speed, "Initial playback speed.")
	windowed := fs.Bool("windowed", !cfg.Window.Fullscreen, "Open a window instead of going fullscreen.")
	overlay := fs.Bool("overlay", cfg.Render.Overlay, "Show the debug overlay on start.")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] <replay>\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return cfg, "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, "", fmt.Errorf("want exactly one replay path, got %d arguments", fs.NArg())
	}

	cfg.Playback.Autoplay = !*paused
	cfg.Playback.Speed = *speed
	cfg.Window.Fullscreen = !*windowed
	cfg.Render.Overlay = *overlay
	return cfg, fs.Arg(0), nil
}
