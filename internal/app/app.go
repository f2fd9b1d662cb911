package app

import (
	"fmt"
	"log/slog"
	"time"

	"pixel-pirates/internal/assets"
	"pixel-pirates/internal/camera"
	"pixel-pirates/internal/config"
	"pixel-pirates/internal/controls"
	"pixel-pirates/internal/frame"
	"pixel-pirates/internal/graphics"
	"pixel-pirates/internal/input"
	"pixel-pirates/internal/logging"
	"pixel-pirates/internal/profiling"
	"pixel-pirates/internal/scene"
	"pixel-pirates/internal/stage"
	"pixel-pirates/internal/viewport"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const defaultFrameRate = 60

// Options configures an App.
type Options struct {
	Preset    config.Preset
	AssetsDir string
}

// App owns the window-bound pieces of the viewer and runs the main loop.
type App struct {
	window *glfw.Window
	preset config.Preset

	scene    *scene.Scene
	camera   *camera.Perspective
	orbit    *controls.Orbit
	pointer  *input.Pointer
	renderer *graphics.Renderer
	loader   *assets.Loader
	queue    *frame.Queue
	driver   *frame.Driver
	limiter  *frame.Limiter

	log *slog.Logger
}

// NewApp builds the scene and the frame driver for window. The loader
// delivers asset continuations, which Run drains on this thread.
func NewApp(window *glfw.Window, loader *assets.Loader, opts Options) (*App, error) {
	p := opts.Preset
	profile := profiling.NewRecorder()

	r, err := graphics.NewRenderer(window.GetFramebufferSize, profile)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	width, height := window.GetSize()
	vp := viewport.New(width, height)
	vp.DevicePixelRatio = devicePixelRatio(window)

	cam := camera.NewPerspective(p.Camera.FOV, vp.Aspect(), p.Camera.Near, p.Camera.Far)
	cam.Position = mgl32.Vec3(p.Camera.Position)
	cam.LookAt(mgl32.Vec3{})

	orbit := controls.NewOrbit(cam)
	orbit.EnableDamping = p.Damping

	s := scene.New()
	if _, err := stage.Populate(s, p, opts.AssetsDir, loader); err != nil {
		r.Dispose()
		return nil, fmt.Errorf("scene: %w", err)
	}

	fps := p.Window.MaxFPS
	if fps <= 0 {
		fps = defaultFrameRate
	}
	maxFPS := p.Window.MaxFPS
	if p.Window.VSync {
		maxFPS = 0
	}

	queue := frame.NewQueue()
	driver, err := frame.New(frame.Options{
		Viewport:    vp,
		Camera:      cam,
		Surface:     r,
		Scene:       s,
		Scheduler:   queue,
		Controls:    orbit,
		FrameBudget: time.Second / time.Duration(fps),
		Profile:     profile,
	})
	if err != nil {
		r.Dispose()
		return nil, err
	}

	a := &App{
		window:   window,
		preset:   p,
		scene:    s,
		camera:   cam,
		orbit:    orbit,
		pointer:  input.NewPointer(),
		renderer: r,
		loader:   loader,
		queue:    queue,
		driver:   driver,
		limiter:  frame.NewLimiter(maxFPS),
		log:      logging.For("app"),
	}
	SetupInputHandlers(a)

	a.log.Info("scene ready",
		"preset", p.Name,
		"particles", s.Len(),
		"size", fmt.Sprintf("%dx%d", width, height),
		"pixelRatio", vp.PixelRatio(),
	)
	return a, nil
}

// Run drives frames until the window is closed.
func (a *App) Run() error {
	if err := a.driver.Start(); err != nil {
		return err
	}
	a.window.SwapBuffers()

	for !a.window.ShouldClose() {
		glfw.PollEvents()
		if n := a.loader.Drain(); n > 0 {
			a.log.Debug("asset continuations ran", "count", n, "objects", a.scene.Len())
		}
		if a.queue.RunFrame() > 0 {
			a.window.SwapBuffers()
		}
		a.limiter.Wait()
	}

	a.driver.Stop()
	a.log.Info("window closed", "frames", a.driver.Frames(), "elapsed", a.driver.Elapsed())
	return nil
}

// Close releases GL resources. The window itself belongs to the caller.
func (a *App) Close() {
	a.renderer.Dispose()
}

// RefreshRender repaints while the OS blocks the loop during a live resize.
func (a *App) RefreshRender() {
	if a.driver.State() != frame.StateRunning {
		return
	}
	a.driver.Redraw()
	a.window.SwapBuffers()
}

func (a *App) updatePixelRatio() {
	a.driver.SetDevicePixelRatio(devicePixelRatio(a.window))
}

// devicePixelRatio is the framebuffer to window size ratio, the same
// quantity a browser reports as devicePixelRatio.
func devicePixelRatio(w *glfw.Window) float64 {
	winW, _ := w.GetSize()
	fbW, _ := w.GetFramebufferSize()
	if winW <= 0 || fbW <= 0 {
		return 1
	}
	return float64(fbW) / float64(winW)
}
