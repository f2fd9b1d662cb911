// Package controls moves the camera from pointer input.
package controls

import (
	"math"

	"pixel-pirates/internal/camera"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-6

// Orbit keeps the camera on a sphere around Target. Input only accumulates
// deltas; Update applies them, so it must be called once per frame.
//
// With damping on, Update applies DampingFactor of the pending rotation and
// pan each frame and keeps the rest, so motion eases out over the following
// frames instead of stopping dead when input ends.
type Orbit struct {
	Camera *camera.Perspective
	Target mgl32.Vec3

	EnableDamping bool
	DampingFactor float64

	RotateSpeed float64
	ZoomSpeed   float64
	PanSpeed    float64

	MinDistance float64
	MaxDistance float64
	// Polar angle limits in radians, measured from +Y.
	MinPolarAngle float64
	MaxPolarAngle float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
	panOffset  mgl32.Vec3
}

// NewOrbit returns controls orbiting the camera's current target.
func NewOrbit(cam *camera.Perspective) *Orbit {
	return &Orbit{
		Camera:        cam,
		Target:        cam.Target,
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math.Pi,
		scale:         1,
	}
}

// Rotate queues a rotation for a pointer drag of (dx, dy) pixels over a
// viewport of the given height. A drag across the full height turns a full
// circle.
func (o *Orbit) Rotate(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	o.deltaTheta -= 2 * math.Pi * dx / float64(height) * o.RotateSpeed
	o.deltaPhi -= 2 * math.Pi * dy / float64(height) * o.RotateSpeed
}

// Dolly queues a zoom step. Positive steps (scroll up) move closer.
func (o *Orbit) Dolly(steps float64) {
	if steps == 0 {
		return
	}
	zoom := math.Pow(0.95, o.ZoomSpeed)
	o.scale *= math.Pow(zoom, steps)
}

// Pan queues a sideways move for a pointer drag of (dx, dy) pixels over a
// viewport of the given height. The target tracks the pointer at its depth.
func (o *Orbit) Pan(dx, dy float64, height int) {
	if height <= 0 {
		return
	}
	cam := o.Camera
	forward := o.Target.Sub(cam.Position)
	dist := float64(forward.Len())
	if dist < eps {
		return
	}
	forward = forward.Normalize()
	right := forward.Cross(cam.Up).Normalize()
	up := right.Cross(forward)

	// Half the view height at the target's depth.
	targetDistance := dist * math.Tan(float64(mgl32.DegToRad(cam.FOV))/2)
	left := float32(2 * dx * targetDistance / float64(height) * o.PanSpeed)
	upward := float32(2 * dy * targetDistance / float64(height) * o.PanSpeed)

	o.panOffset = o.panOffset.Add(right.Mul(-left)).Add(up.Mul(upward))
}

// Update applies pending input to the camera and reports whether it moved.
func (o *Orbit) Update() bool {
	cam := o.Camera
	offset := cam.Position.Sub(o.Target)

	radius := float64(offset.Len())
	theta, phi := 0.0, 0.0
	if radius > 0 {
		theta = math.Atan2(float64(offset.X()), float64(offset.Z()))
		phi = math.Acos(clamp(float64(offset.Y())/radius, -1, 1))
	}

	factor := 1.0
	if o.EnableDamping {
		factor = o.DampingFactor
	}
	theta += o.deltaTheta * factor
	phi += o.deltaPhi * factor

	phi = clamp(phi, o.MinPolarAngle, o.MaxPolarAngle)
	phi = clamp(phi, eps, math.Pi-eps)

	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	target := o.Target.Add(o.panOffset.Mul(float32(factor)))

	sinPhi := math.Sin(phi)
	offset = mgl32.Vec3{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	}
	position := target.Add(offset)

	moved := position.Sub(cam.Position).LenSqr() > eps || target.Sub(o.Target).LenSqr() > eps

	o.Target = target
	cam.Position = position
	cam.LookAt(target)

	if o.EnableDamping {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
		o.panOffset = o.panOffset.Mul(float32(1 - o.DampingFactor))
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
		o.panOffset = mgl32.Vec3{}
	}
	o.scale = 1

	return moved
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
