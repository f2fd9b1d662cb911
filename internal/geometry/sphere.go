package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NewSphere builds a UV sphere centred on the origin. widthSegments is
// clamped to at least 3 and heightSegments to at least 2.
func NewSphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	// Vertex grid, (heightSegments+1) rows of (widthSegments+1) columns.
	grid := make([][]mgl32.Vec3, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]mgl32.Vec3, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			row[ix] = mgl32.Vec3{
				float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(math.Cos(v * math.Pi)),
				float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
		}
		grid[iy] = row
	}

	g := &Geometry{Primitive: Triangles}
	emit := func(n mgl32.Vec3) { g.appendVertex(n.Mul(radius), n) }
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// The pole rows collapse to one triangle per segment.
			if iy != 0 {
				emit(a)
				emit(b)
				emit(d)
			}
			if iy != heightSegments-1 {
				emit(b)
				emit(c)
				emit(d)
			}
		}
	}
	return g
}
