package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProjectionCommittedOnlyOnUpdate(t *testing.T) {
	c := NewPerspective(75, 800.0/600.0, 0.1, 100)
	before := c.ProjectionMatrix()

	c.Aspect = 1920.0 / 1080.0
	if c.ProjectionMatrix() != before {
		t.Fatalf("Expected projection to stay until UpdateProjectionMatrix")
	}

	c.UpdateProjectionMatrix()
	want := mgl32.Perspective(mgl32.DegToRad(75), 1920.0/1080.0, 0.1, 100)
	if c.ProjectionMatrix() != want {
		t.Errorf("Expected committed projection %v, got %v", want, c.ProjectionMatrix())
	}
}

func TestProjectionEncodesAspect(t *testing.T) {
	c := NewPerspective(75, 2, 0.1, 100)
	p := c.ProjectionMatrix()
	// p[0] = f/aspect, p[5] = f
	ratio := p[5] / p[0]
	if math.Abs(float64(ratio-2)) > 1e-5 {
		t.Errorf("Expected aspect 2 encoded in projection, got %v", ratio)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 100)
	c.Position = mgl32.Vec3{1, 0.5, 3}
	c.LookAt(mgl32.Vec3{})

	// The target must land on the camera's -Z axis in view space.
	v := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(v.X())) > 1e-5 || math.Abs(float64(v.Y())) > 1e-5 {
		t.Errorf("Expected target centred in view, got %v", v)
	}
	if v.Z() >= 0 {
		t.Errorf("Expected target in front of the camera, got z=%v", v.Z())
	}
	if d := c.Distance(); math.Abs(float64(d)-math.Sqrt(10.25)) > 1e-5 {
		t.Errorf("Expected distance %v, got %v", math.Sqrt(10.25), d)
	}
}
