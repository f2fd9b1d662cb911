package controls

import (
	"math"
	"testing"

	"pixel-pirates/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
)

func newCamera() *camera.Perspective {
	cam := camera.NewPerspective(75, 1.5, 0.1, 100)
	cam.Position = mgl32.Vec3{1, 0.5, 3}
	return cam
}

func TestUpdateWithoutInputIsStable(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)
	o.EnableDamping = true
	start := cam.Position

	for i := 0; i < 10; i++ {
		if o.Update() {
			t.Fatalf("Expected no movement without input at frame %d", i)
		}
	}
	if !cam.Position.ApproxEqualThreshold(start, 1e-4) {
		t.Errorf("Expected camera to stay at %v, got %v", start, cam.Position)
	}
}

func TestRotateKeepsDistance(t *testing.T) {
	cam := newCamera()
	o := NewOrbit(cam)
	dist := cam.Distance()

	o.Rotate(120, 30, 600)
	if !o.Update() {
		t.Fatalf("Expected rotation to move the camera")
	}
	if math.Abs(float64(cam.Distance()-dist)) > 1e-4 {
		t.Errorf("Expected distance %v, got %v", dist, cam.Distance())
	}
	if cam.Target != (mgl32.Vec3{}) {
		t.Errorf("Expected camera to look at the origin, got %v", cam.Target)
	}
}

func TestDampingEasesOut(t *testing.T) {
	damped := NewOrbit(newCamera())
	damped.EnableDamping = true
	direct := NewOrbit(newCamera())

	damped.Rotate(300, 0, 600)
	direct.Rotate(300, 0, 600)
	direct.Update()

	damped.Update()
	first := damped.Camera.Position
	if first.ApproxEqualThreshold(direct.Camera.Position, 1e-3) {
		t.Fatalf("Expected damped controls to lag behind on the first frame")
	}

	// Each frame moves less than the one before, and the camera converges
	// on the undamped result.
	prev := first
	prevStep := float32(math.MaxFloat32)
	for i := 0; i < 400; i++ {
		damped.Update()
		step := damped.Camera.Position.Sub(prev).Len()
		if step > prevStep+1e-6 {
			t.Fatalf("Expected decelerating motion, step %d grew from %v to %v", i, prevStep, step)
		}
		prevStep, prev = step, damped.Camera.Position
	}
	if !damped.Camera.Position.ApproxEqualThreshold(direct.Camera.Position, 1e-3) {
		t.Errorf("Expected damped camera to settle at %v, got %v", direct.Camera.Position, damped.Camera.Position)
	}
}

func TestPolarClamp(t *testing.T) {
	o := NewOrbit(newCamera())
	o.Rotate(0, 100000, 600)
	o.Update()

	p := o.Camera.Position
	for a := 0; a < 3; a++ {
		if math.IsNaN(float64(p[a])) {
			t.Fatalf("Expected finite position, got %v", p)
		}
	}
	if p.Y() < 0.99*o.Camera.Distance() {
		t.Errorf("Expected camera clamped near the top pole, got %v", p)
	}
	view := o.Camera.ViewMatrix()
	for i := range view {
		if math.IsNaN(float64(view[i])) {
			t.Fatalf("Expected a usable view matrix at the pole, got %v", view)
		}
	}
}

func TestDolly(t *testing.T) {
	o := NewOrbit(newCamera())
	dist := float64(o.Camera.Distance())

	o.Dolly(1)
	o.Update()
	if got := float64(o.Camera.Distance()); math.Abs(got-dist*0.95) > 1e-4 {
		t.Errorf("Expected distance %v after zooming in, got %v", dist*0.95, got)
	}

	o.MaxDistance = 3
	o.Dolly(-100)
	o.Update()
	if got := o.Camera.Distance(); math.Abs(float64(got)-3) > 1e-4 {
		t.Errorf("Expected distance clamped to 3, got %v", got)
	}
}

func TestPanMovesTarget(t *testing.T) {
	o := NewOrbit(newCamera())
	offset := o.Camera.Position.Sub(o.Target)

	o.Pan(100, 0, 600)
	o.Update()

	if o.Target.Len() < 1e-3 {
		t.Fatalf("Expected target to move")
	}
	if !o.Camera.Position.Sub(o.Target).ApproxEqualThreshold(offset, 1e-4) {
		t.Errorf("Expected pan to keep the camera offset")
	}
	if o.Camera.Target != o.Target {
		t.Errorf("Expected camera to look at the new target")
	}
}

func TestInputIgnoredForEmptyViewport(t *testing.T) {
	o := NewOrbit(newCamera())
	o.Rotate(10, 10, 0)
	o.Pan(10, 10, 0)
	if o.Update() {
		t.Errorf("Expected no movement for zero-height viewport")
	}
}
