// Package frame drives the render loop and keeps the camera and render
// surface in step with the window size.
package frame

import (
	"errors"
	"log/slog"
	"time"

	"pixel-pirates/internal/camera"
	"pixel-pirates/internal/logging"
	"pixel-pirates/internal/profiling"
	"pixel-pirates/internal/scene"
	"pixel-pirates/internal/viewport"
)

var (
	ErrAlreadyStarted = errors.New("frame: driver already started")
	ErrMissingDep     = errors.New("frame: missing dependency")
)

// State of the frame loop.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Surface is the output the scene is drawn into.
type Surface interface {
	// SetSize sets the logical size of the output in window pixels.
	SetSize(width, height int)
	// SetPixelRatio sets the physical-to-logical pixel ratio of the backing buffer.
	SetPixelRatio(ratio float64)
	Render(s *scene.Scene, cam *camera.Perspective)
}

// Controls are camera controls updated once per frame.
type Controls interface {
	// Update applies pending input and reports whether the camera moved.
	Update() bool
}

// Scheduler runs a callback on the next display frame.
type Scheduler interface {
	RequestFrame(fn func())
}

// Clock is a monotonic elapsed-time source.
type Clock interface {
	Elapsed() time.Duration
}

// Options configures a Driver. Viewport, Camera, Surface, Scene and
// Scheduler are required.
type Options struct {
	Viewport  *viewport.State
	Camera    *camera.Perspective
	Surface   Surface
	Scene     *scene.Scene
	Scheduler Scheduler

	Controls Controls
	Clock    Clock
	// FrameBudget is the duration above which a frame is logged as slow.
	// Zero disables the check.
	FrameBudget time.Duration
	// Profile collects per-frame timings. A private recorder is used when nil.
	Profile *profiling.Recorder
}

// Driver owns the render loop and the reaction to window resizes. All
// methods must be called from the thread that owns the render context.
type Driver struct {
	viewport  *viewport.State
	camera    *camera.Perspective
	surface   Surface
	scene     *scene.Scene
	scheduler Scheduler
	controls  Controls
	clock     Clock

	state   State
	pending bool
	frames  uint64
	elapsed time.Duration

	budget     time.Duration
	slowFrames uint64
	now        func() time.Time
	prof       *profiling.Recorder
	log    *slog.Logger
}

// New builds a driver and sizes the camera and surface to the initial
// viewport.
func New(opts Options) (*Driver, error) {
	switch {
	case opts.Viewport == nil:
		return nil, errors.Join(ErrMissingDep, errors.New("viewport"))
	case opts.Camera == nil:
		return nil, errors.Join(ErrMissingDep, errors.New("camera"))
	case opts.Surface == nil:
		return nil, errors.Join(ErrMissingDep, errors.New("surface"))
	case opts.Scene == nil:
		return nil, errors.Join(ErrMissingDep, errors.New("scene"))
	case opts.Scheduler == nil:
		return nil, errors.Join(ErrMissingDep, errors.New("scheduler"))
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewSystemClock()
	}
	prof := opts.Profile
	if prof == nil {
		prof = profiling.NewRecorder()
	}

	d := &Driver{
		viewport:  opts.Viewport,
		camera:    opts.Camera,
		surface:   opts.Surface,
		scene:     opts.Scene,
		scheduler: opts.Scheduler,
		controls:  opts.Controls,
		clock:     clock,
		budget:    opts.FrameBudget,
		prof:      prof,
		now:       time.Now,
		log:       logging.For("frame"),
	}
	if d.viewport.Valid() {
		d.apply()
	}
	return d, nil
}

// OnResize reacts to a window resize. Sizes that are not strictly positive
// (a minimised window reports 0x0) are ignored so the camera never sees a
// degenerate aspect ratio. Repeating the current size changes nothing.
func (d *Driver) OnResize(width, height int) {
	if width <= 0 || height <= 0 {
		d.log.Debug("ignoring degenerate resize", "width", width, "height", height)
		return
	}
	if width == d.viewport.Width && height == d.viewport.Height && d.camera.Aspect == d.viewport.Aspect() {
		return
	}
	d.viewport.Width = width
	d.viewport.Height = height
	d.apply()
	d.log.Debug("resized", "width", width, "height", height, "aspect", d.camera.Aspect)
}

// SetDevicePixelRatio records a new display density, e.g. after the window
// moved to another monitor.
func (d *Driver) SetDevicePixelRatio(dpr float64) {
	if dpr == d.viewport.DevicePixelRatio {
		return
	}
	d.viewport.DevicePixelRatio = dpr
	if d.viewport.Valid() {
		d.surface.SetPixelRatio(d.viewport.PixelRatio())
	}
}

func (d *Driver) apply() {
	d.camera.Aspect = d.viewport.Aspect()
	d.camera.UpdateProjectionMatrix()
	d.surface.SetSize(d.viewport.Width, d.viewport.Height)
	d.surface.SetPixelRatio(d.viewport.PixelRatio())
}

// Start runs the first frame. It may be called once.
func (d *Driver) Start() error {
	if d.state != StateIdle {
		return ErrAlreadyStarted
	}
	d.Tick()
	return nil
}

// Stop ends the loop. A stopped driver ignores ticks and never schedules
// another frame.
func (d *Driver) Stop() {
	d.state = StateStopped
}

// Tick renders one frame and schedules the next one.
func (d *Driver) Tick() {
	if d.state == StateStopped {
		return
	}
	d.state = StateRunning

	d.prof.Reset()
	d.elapsed = d.clock.Elapsed()
	start := d.now()
	d.draw()
	took := d.now().Sub(start)
	d.frames++

	// Buckets may nest, so the budget is checked against the outer span
	// rather than the recorder total.
	if d.budget > 0 && took > d.budget {
		d.slowFrames++
		d.log.Warn("slow frame", "took", took, "top", d.prof.TopN(3))
	}

	d.schedule()
}

// schedule requests the next frame unless one is already outstanding.
func (d *Driver) schedule() {
	if d.pending {
		return
	}
	d.pending = true
	d.scheduler.RequestFrame(d.onFrame)
}

func (d *Driver) onFrame() {
	d.pending = false
	d.Tick()
}

// Redraw renders the current state immediately without touching the
// schedule, e.g. while the OS is live-resizing the window.
func (d *Driver) Redraw() {
	if d.state != StateRunning {
		return
	}
	d.draw()
}

func (d *Driver) draw() {
	if d.controls != nil {
		stop := d.prof.Track("controls.Update")
		d.controls.Update()
		stop()
	}
	stop := d.prof.Track("surface.Render")
	d.surface.Render(d.scene, d.camera)
	stop()
}

// SlowFrames returns how many frames exceeded the frame budget.
func (d *Driver) SlowFrames() uint64 {
	return d.slowFrames
}

func (d *Driver) State() State {
	return d.state
}

// Frames returns the number of scheduled frames rendered so far.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Elapsed returns the clock reading taken at the start of the last frame.
func (d *Driver) Elapsed() time.Duration {
	return d.elapsed
}

// Viewport returns the driver's viewport state.
func (d *Driver) Viewport() viewport.State {
	return *d.viewport
}
