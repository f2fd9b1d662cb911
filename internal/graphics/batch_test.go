package graphics

import (
	"testing"

	"pixel-pirates/internal/geometry"
	"pixel-pirates/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGroupBatchesSharesGeometryAndMaterial(t *testing.T) {
	sphere := geometry.NewSphere(0.05, 16, 16)
	dots := scene.NewBasicMaterial(mgl32.Vec3{1, 0, 0})
	other := scene.NewBasicMaterial(mgl32.Vec3{0, 1, 0})

	var objs []*scene.Object
	for i := 0; i < 10; i++ {
		objs = append(objs, scene.NewObject("dot", sphere, dots))
	}
	objs = append(objs, scene.NewObject("odd", sphere, other))
	objs = append(objs, scene.NewObject("empty", nil, dots))

	batches := groupBatches(objs)
	if len(batches) != 2 {
		t.Fatalf("Expected 2 batches, got %d", len(batches))
	}
	if len(batches[0].objects) != 10 {
		t.Errorf("Expected 10 instances in the first batch, got %d", len(batches[0].objects))
	}
	if batches[1].key.material != other {
		t.Errorf("Expected second batch to use the second material")
	}
}

func TestCollectSkipsHiddenAndCulled(t *testing.T) {
	sphere := geometry.NewSphere(0.5, 8, 6)
	mat := scene.NewBasicMaterial(mgl32.Vec3{1, 1, 1})

	front := scene.NewObject("front", sphere, mat)
	front.Position = mgl32.Vec3{0, 0, -5}
	hidden := scene.NewObject("hidden", sphere, mat)
	hidden.Position = mgl32.Vec3{0, 0, -5}
	hidden.Visible = false
	behind := scene.NewObject("behind", sphere, mat)
	behind.Position = mgl32.Vec3{0, 0, 10}

	b := groupBatches([]*scene.Object{front, hidden, behind})[0]

	proj := mgl32.Perspective(mgl32.DegToRad(75), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	n := b.collect(proj.Mul4(view))
	if n != 1 {
		t.Fatalf("Expected 1 visible instance, got %d", n)
	}
	if len(b.matrices) != 16 {
		t.Fatalf("Expected 16 floats, got %d", len(b.matrices))
	}
	if b.matrices[14] != -5 {
		t.Errorf("Expected translation z -5, got %f", b.matrices[14])
	}
}

func TestBoxIntersectsFrustum(t *testing.T) {
	clip := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 10).Mul4(
		mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}))
	box := geometry.Box{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	if !boxIntersectsFrustum(box, clip.Mul4(mgl32.Translate3D(0, 0, -5))) {
		t.Errorf("Expected box in front of the camera to be visible")
	}
	if boxIntersectsFrustum(box, clip.Mul4(mgl32.Translate3D(0, 0, -50))) {
		t.Errorf("Expected box beyond the far plane to be culled")
	}
	if boxIntersectsFrustum(box, clip.Mul4(mgl32.Translate3D(40, 0, -5))) {
		t.Errorf("Expected box far to the right to be culled")
	}
}
