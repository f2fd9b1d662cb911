package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Perspective handles the view and projection matrices of a pinhole camera.
// Field changes take effect on the projection only after
// UpdateProjectionMatrix is called.
type Perspective struct {
	FOV    float32 // vertical, in degrees
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
}

func NewPerspective(fov, aspect, near, far float32) *Perspective {
	c := &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix commits FOV, Aspect, Near and Far.
func (c *Perspective) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the last committed projection.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// LookAt points the camera at target without moving it.
func (c *Perspective) LookAt(target mgl32.Vec3) {
	c.Target = target
}

// Distance returns the distance between the camera and its target.
func (c *Perspective) Distance() float32 {
	return c.Position.Sub(c.Target).Len()
}
