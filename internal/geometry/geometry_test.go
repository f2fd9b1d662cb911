package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/basicfont"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

// checkWinding verifies every triangle's geometric normal agrees with its
// stored vertex normal.
func checkWinding(t *testing.T, g *Geometry) {
	t.Helper()
	for i := 0; i+8 < len(g.Positions); i += 9 {
		a := mgl32.Vec3{g.Positions[i], g.Positions[i+1], g.Positions[i+2]}
		b := mgl32.Vec3{g.Positions[i+3], g.Positions[i+4], g.Positions[i+5]}
		c := mgl32.Vec3{g.Positions[i+6], g.Positions[i+7], g.Positions[i+8]}
		n := mgl32.Vec3{g.Normals[i], g.Normals[i+1], g.Normals[i+2]}
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Len() < 1e-9 {
			continue
		}
		if face.Dot(n) <= 0 {
			t.Fatalf("Triangle %d winds against its normal %v", i/9, n)
		}
	}
}

func TestSphereTriangleCount(t *testing.T) {
	g := NewSphere(0.05, 16, 16)
	// 2*w*(h-1) triangles: the two pole rows contribute one triangle per segment.
	want := 2 * 16 * 15 * 3
	if g.VertexCount() != want {
		t.Errorf("Expected %d vertices, got %d", want, g.VertexCount())
	}
	if len(g.Normals) != len(g.Positions) {
		t.Errorf("Expected normals to match positions, got %d vs %d", len(g.Normals), len(g.Positions))
	}
	if g.Primitive != Triangles {
		t.Errorf("Expected triangle primitive")
	}
}

func TestSphereRadiusAndWinding(t *testing.T) {
	g := NewSphere(2, 8, 6)
	for i := 0; i+2 < len(g.Positions); i += 3 {
		p := mgl32.Vec3{g.Positions[i], g.Positions[i+1], g.Positions[i+2]}
		if !near(p.Len(), 2) {
			t.Fatalf("Expected vertex on radius 2, got %v", p.Len())
		}
	}
	checkWinding(t, g)

	b := g.Bounds()
	if !near(b.Max.Y(), 2) || !near(b.Min.Y(), -2) {
		t.Errorf("Expected Y extent [-2,2], got [%v,%v]", b.Min.Y(), b.Max.Y())
	}
}

func TestSphereClampsSegments(t *testing.T) {
	g := NewSphere(1, 0, 0)
	if want := 2 * 3 * 1 * 3; g.VertexCount() != want {
		t.Errorf("Expected %d vertices for clamped segments, got %d", want, g.VertexCount())
	}
}

func TestCenter(t *testing.T) {
	g := &Geometry{
		Positions: []float32{1, 1, 1, 3, 5, 2},
		Normals:   []float32{0, 0, 1, 0, 0, 1},
	}
	g.Center()
	b := g.Bounds()
	c := b.Center()
	if !near(c.X(), 0) || !near(c.Y(), 0) || !near(c.Z(), 0) {
		t.Errorf("Expected centred bounds, got centre %v", c)
	}
	if s := b.Size(); !near(s.X(), 2) || !near(s.Y(), 4) || !near(s.Z(), 1) {
		t.Errorf("Expected size to be preserved, got %v", s)
	}
}

func TestEmptyBounds(t *testing.T) {
	if (&Geometry{}).Bounds() != (Box{}) {
		t.Errorf("Expected zero box for empty geometry")
	}
}

func TestNewPoint(t *testing.T) {
	g := NewPoint()
	if g.VertexCount() != 1 || g.Primitive != Points {
		t.Errorf("Expected a single point vertex, got %d vertices primitive %v", g.VertexCount(), g.Primitive)
	}
}

func TestTextExtrusion(t *testing.T) {
	opts := TextOptions{Size: 0.5, Depth: 0.05, PixelsPerEm: 13}
	g, err := NewText(basicfont.Face7x13, "Pixel", opts)
	if err != nil {
		t.Fatalf("Failed to build text: %v", err)
	}
	if g.VertexCount() == 0 || g.VertexCount()%3 != 0 {
		t.Fatalf("Expected whole triangles, got %d vertices", g.VertexCount())
	}
	checkWinding(t, g)

	b := g.Bounds()
	if !near(b.Size().Z(), 0.05) {
		t.Errorf("Expected depth 0.05, got %v", b.Size().Z())
	}
	// Cells are Size/PixelsPerEm; the glyph box is a whole number of cells.
	cell := float32(0.5) / 13
	cols := b.Size().X() / cell
	if !near(cols, float32(math.Round(float64(cols)))) {
		t.Errorf("Expected width to be a whole number of cells, got %v", cols)
	}

	g.Center()
	if c := g.Bounds().Center(); !near(c.Len(), 0) {
		t.Errorf("Expected centred text, got centre %v", c)
	}
}

func TestTextWiderForLongerString(t *testing.T) {
	opts := TextOptions{Size: 0.5, Depth: 0.05, PixelsPerEm: 13}
	short, err := NewText(basicfont.Face7x13, "Pixel", opts)
	if err != nil {
		t.Fatalf("Failed to build text: %v", err)
	}
	long, err := NewText(basicfont.Face7x13, "Pirates", opts)
	if err != nil {
		t.Fatalf("Failed to build text: %v", err)
	}
	if long.Bounds().Size().X() <= short.Bounds().Size().X() {
		t.Errorf("Expected 'Pirates' wider than 'Pixel'")
	}
}

func TestTextErrors(t *testing.T) {
	opts := TextOptions{Size: 0.5, Depth: 0.05, PixelsPerEm: 13}
	if _, err := NewText(basicfont.Face7x13, "   ", opts); err != ErrEmptyText {
		t.Errorf("Expected ErrEmptyText for blank string, got %v", err)
	}
	if _, err := NewText(basicfont.Face7x13, "x", TextOptions{Size: 0.5}); err == nil {
		t.Errorf("Expected error for zero PixelsPerEm")
	}
}
