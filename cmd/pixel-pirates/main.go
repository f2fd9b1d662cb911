package main

import (
	"errors"
	"flag"
	"os"
	"runtime"

	"pixel-pirates/internal/app"
	"pixel-pirates/internal/assets"
	"pixel-pirates/internal/logging"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	logging.Set(newLogger(f.verbose))

	preset, err := loadPreset(f)
	if err != nil {
		panic(err)
	}

	// Decoding never touches GL, so a signal may stop the workers from
	// closer's goroutine.
	loader := assets.NewLoader(max(f.workers, 1))
	closer.Bind(loader.Shutdown)
	defer loader.Shutdown()

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := app.SetupWindow(preset.Window)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	a, err := app.NewApp(window, loader, app.Options{Preset: preset, AssetsDir: f.assets})
	if err != nil {
		panic(err)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		panic(err)
	}
}
