package graphics

import (
	"pixel-pirates/internal/geometry"
	"pixel-pirates/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// batchKey groups objects that can share one instanced draw.
type batchKey struct {
	geometry *geometry.Geometry
	material *scene.Material
}

// batch is one instanced draw: a shared geometry and material and the
// objects supplying per-instance model matrices.
type batch struct {
	key     batchKey
	objects []*scene.Object
	bounds  geometry.Box

	// GPU state, filled lazily by the renderer
	vao         uint32
	instanceVBO uint32
	capacity    int
	matrices    []float32
	count       int32
}

// groupBatches partitions objects by (geometry, material), keeping first-seen
// order so draw order is stable between rebuilds. Objects without geometry or
// material are skipped.
func groupBatches(objects []*scene.Object) []*batch {
	index := make(map[batchKey]*batch)
	var out []*batch
	for _, o := range objects {
		if o.Geometry == nil || o.Material == nil {
			continue
		}
		key := batchKey{geometry: o.Geometry, material: o.Material}
		b, ok := index[key]
		if !ok {
			b = &batch{key: key, bounds: o.Geometry.Bounds()}
			index[key] = b
			out = append(out, b)
		}
		b.objects = append(b.objects, o)
	}
	return out
}

// collect packs the model matrices of visible objects that survive frustum
// culling into b.matrices and returns the instance count.
func (b *batch) collect(clip mgl32.Mat4) int32 {
	b.matrices = b.matrices[:0]
	var n int32
	for _, o := range b.objects {
		if !o.Visible {
			continue
		}
		model := o.ModelMatrix()
		if !boxIntersectsFrustum(b.bounds, clip.Mul4(model)) {
			continue
		}
		b.matrices = append(b.matrices, model[:]...)
		n++
	}
	b.count = n
	return n
}

// boxIntersectsFrustum tests a local-space box against the frustum using
// clip-space half-space tests. clip is projection * view * model.
func boxIntersectsFrustum(box geometry.Box, clip mgl32.Mat4) bool {
	lo, hi := box.Min, box.Max
	corners := [8]mgl32.Vec4{
		{lo[0], lo[1], lo[2], 1},
		{hi[0], lo[1], lo[2], 1},
		{lo[0], hi[1], lo[2], 1},
		{hi[0], hi[1], lo[2], 1},
		{lo[0], lo[1], hi[2], 1},
		{hi[0], lo[1], hi[2], 1},
		{lo[0], hi[1], hi[2], 1},
		{hi[0], hi[1], hi[2], 1},
	}

	var v [8]mgl32.Vec4
	for i := range corners {
		v[i] = clip.Mul4x1(corners[i])
	}

	// For each plane, if all corners are outside, cull
	planes := [6]func(c mgl32.Vec4) float32{
		func(c mgl32.Vec4) float32 { return c.X() - c.W() },
		func(c mgl32.Vec4) float32 { return -c.X() - c.W() },
		func(c mgl32.Vec4) float32 { return c.Y() - c.W() },
		func(c mgl32.Vec4) float32 { return -c.Y() - c.W() },
		func(c mgl32.Vec4) float32 { return c.Z() - c.W() },
		func(c mgl32.Vec4) float32 { return -c.Z() - c.W() },
	}
	for _, outside := range planes {
		allOutside := true
		for i := range v {
			if outside(v[i]) <= 0 {
				allOutside = false
				break
			}
		}
		if allOutside {
			return false
		}
	}
	return true
}
