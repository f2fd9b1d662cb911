package scene

import (
	"pixel-pirates/internal/geometry"

	"github.com/go-gl/mathgl/mgl32"
)

// Object is a drawable node: a geometry drawn with a material at a transform.
type Object struct {
	Name     string
	Geometry *geometry.Geometry
	Material *Material

	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3
	Visible  bool
}

// NewObject returns a visible object with unit scale at the origin.
func NewObject(name string, g *geometry.Geometry, m *Material) *Object {
	return &Object{
		Name:     name,
		Geometry: g,
		Material: m,
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
	}
}

// ModelMatrix returns T * Rx * Ry * Rz * S.
func (o *Object) ModelMatrix() mgl32.Mat4 {
	m := mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2])
	if o.Rotation != (mgl32.Vec3{}) {
		m = m.Mul4(mgl32.HomogRotate3DX(o.Rotation[0])).
			Mul4(mgl32.HomogRotate3DY(o.Rotation[1])).
			Mul4(mgl32.HomogRotate3DZ(o.Rotation[2]))
	}
	return m.Mul4(mgl32.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2]))
}
