// Package geometry builds vertex data for the scene's meshes: spheres, point
// sprites and extruded block text. Geometries are plain float slices so they
// can be built off the GL thread and uploaded later.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Primitive int

const (
	Triangles Primitive = iota
	Points
)

// Geometry is non-indexed vertex data. Positions and Normals hold xyz
// triplets and always have the same length.
type Geometry struct {
	Positions []float32
	Normals   []float32
	Primitive Primitive
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Bounds returns the bounding box of all vertices. An empty geometry yields
// the zero box.
func (g *Geometry) Bounds() Box {
	if len(g.Positions) < 3 {
		return Box{}
	}
	minV := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	maxV := mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for i := 0; i+2 < len(g.Positions); i += 3 {
		for a := 0; a < 3; a++ {
			v := g.Positions[i+a]
			if v < minV[a] {
				minV[a] = v
			}
			if v > maxV[a] {
				maxV[a] = v
			}
		}
	}
	return Box{Min: minV, Max: maxV}
}

// Translate moves every vertex by d.
func (g *Geometry) Translate(d mgl32.Vec3) {
	for i := 0; i+2 < len(g.Positions); i += 3 {
		g.Positions[i] += d[0]
		g.Positions[i+1] += d[1]
		g.Positions[i+2] += d[2]
	}
}

// Center moves the geometry so its bounding box is centred on the origin.
func (g *Geometry) Center() {
	g.Translate(g.Bounds().Center().Mul(-1))
}

func (g *Geometry) appendVertex(p, n mgl32.Vec3) {
	g.Positions = append(g.Positions, p[0], p[1], p[2])
	g.Normals = append(g.Normals, n[0], n[1], n[2])
}

// appendQuad emits a, b, c, d (counter-clockwise seen from the normal side)
// as two triangles.
func (g *Geometry) appendQuad(a, b, c, d, n mgl32.Vec3) {
	g.appendVertex(a, n)
	g.appendVertex(b, n)
	g.appendVertex(c, n)
	g.appendVertex(a, n)
	g.appendVertex(c, n)
	g.appendVertex(d, n)
}

// NewPoint returns a single vertex at the origin, drawn as a point sprite.
func NewPoint() *Geometry {
	return &Geometry{
		Positions: []float32{0, 0, 0},
		Normals:   []float32{0, 0, 1},
		Primitive: Points,
	}
}
