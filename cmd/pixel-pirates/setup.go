package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"pixel-pirates/internal/config"
)

type flags struct {
	preset    string
	config    string
	assets    string
	width     int
	height    int
	maxFPS    int
	noDamping bool
	vsync     bool
	verbose   bool
	workers   int

	set map[string]bool
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("pixel-pirates", flag.ContinueOnError)
	fs.StringVar(&f.preset, "preset", "dots", "scene preset ("+strings.Join(config.Names(), ", ")+")")
	fs.StringVar(&f.config, "config", "", "JSON file overlaid on the preset")
	fs.StringVar(&f.assets, "assets", "assets", "directory relative asset paths resolve against")
	fs.IntVar(&f.width, "width", 0, "window width (preset default when 0)")
	fs.IntVar(&f.height, "height", 0, "window height (preset default when 0)")
	fs.IntVar(&f.maxFPS, "max-fps", 0, "frame cap when vsync is off")
	fs.BoolVar(&f.noDamping, "no-damping", false, "disable orbit damping")
	fs.BoolVar(&f.vsync, "vsync", true, "sync buffer swaps to the display")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
	fs.IntVar(&f.workers, "workers", runtime.NumCPU()/2, "asset decoding workers")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// loadPreset resolves the preset named on the command line, overlays the
// config file and applies the remaining flags on top.
func loadPreset(f *flags) (config.Preset, error) {
	p, err := config.Lookup(f.preset)
	if err != nil {
		return config.Preset{}, err
	}
	if f.config != "" {
		if p, err = config.LoadFile(f.config, p); err != nil {
			return config.Preset{}, err
		}
	}
	if f.width > 0 {
		p.Window.Width = f.width
	}
	if f.height > 0 {
		p.Window.Height = f.height
	}
	if f.set["vsync"] {
		p.Window.VSync = f.vsync
	}
	if f.set["max-fps"] {
		p.Window.MaxFPS = f.maxFPS
	}
	if f.noDamping {
		p.Damping = false
	}
	if err := p.Validate(); err != nil {
		return config.Preset{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return p, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
