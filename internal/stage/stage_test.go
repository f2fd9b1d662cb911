package stage

import (
	"math"
	"testing"

	"pixel-pirates/internal/config"
	"pixel-pirates/internal/scene"

	"golang.org/x/image/font/basicfont"
)

func TestTitleOffsets(t *testing.T) {
	text := config.Dots().Text
	text.PixelsPerEm = 13
	mat := scene.NewMatcapMaterial(GenerateMatcap(8))

	objs, err := Title(basicfont.Face7x13, text, mat)
	if err != nil {
		t.Fatalf("Failed to build title: %v", err)
	}
	if len(objs) != 2 {
		t.Fatalf("Expected 2 text objects, got %d", len(objs))
	}

	s := scene.New()
	s.Add(objs...)
	pixel, pirates := s.Find("Pixel"), s.Find("Pirates")
	if pixel == nil || pirates == nil {
		t.Fatalf("Expected Pixel and Pirates objects")
	}
	if pixel.Position.Y() != 0.2 || pirates.Position.Y() != -0.2 {
		t.Errorf("Expected offsets 0.2 and -0.2, got %v and %v", pixel.Position.Y(), pirates.Position.Y())
	}
	if d := pixel.Position.Y() - pirates.Position.Y(); math.Abs(float64(d)-0.4) > 1e-6 {
		t.Errorf("Expected relative offset 0.4, got %v", d)
	}
	for _, o := range objs {
		if o.Material != mat {
			t.Errorf("Expected shared material on %s", o.Name)
		}
		if c := o.Geometry.Bounds().Center(); c.Len() > 1e-4 {
			t.Errorf("Expected centred geometry for %s, got %v", o.Name, c)
		}
	}
}

func TestTitleRejectsBlankLine(t *testing.T) {
	text := config.Dots().Text
	text.PixelsPerEm = 13
	text.Lines = []config.TextLine{{Content: " "}}
	if _, err := Title(basicfont.Face7x13, text, nil); err == nil {
		t.Errorf("Expected error for blank line")
	}
}

func checkBounds(t *testing.T, objs []*scene.Object, limit float32) {
	t.Helper()
	for _, o := range objs {
		for a := 0; a < 3; a++ {
			if o.Position[a] < -limit || o.Position[a] >= limit {
				t.Fatalf("%s: component %d = %v outside [-%v,%v)", o.Name, a, o.Position[a], limit, limit)
			}
		}
	}
}

func TestDotsField(t *testing.T) {
	cfg := config.Dots().Particles
	f, err := Particles(cfg, NewRand(42))
	if err != nil {
		t.Fatalf("Failed to generate particles: %v", err)
	}
	if len(f.Objects) != 1000 {
		t.Fatalf("Expected 1000 dots, got %d", len(f.Objects))
	}
	checkBounds(t, f.Objects, 50)

	geo := f.Objects[0].Geometry
	var spanMin, spanMax float32 = 50, -50
	for _, o := range f.Objects {
		if o.Geometry != geo || o.Material != f.Materials[0] {
			t.Fatalf("Expected every dot to share geometry and material")
		}
		if o.Scale.X() < 0 || o.Scale.X() >= 1 || o.Scale.X() != o.Scale.Y() || o.Scale.Y() != o.Scale.Z() {
			t.Fatalf("Expected uniform scale in [0,1), got %v", o.Scale)
		}
		if o.Rotation.X() < 0 || o.Rotation.X() >= math.Pi || o.Rotation.Z() != 0 {
			t.Fatalf("Expected rotation x,y in [0,pi) and z 0, got %v", o.Rotation)
		}
		spanMin = min(spanMin, o.Position.X())
		spanMax = max(spanMax, o.Position.X())
	}
	// 1000 uniform draws cover most of the range.
	if spanMax-spanMin < 90 {
		t.Errorf("Expected positions to span the range, got [%v,%v]", spanMin, spanMax)
	}
	want, _ := scene.ParseHexColor("#f0be8d")
	if f.Materials[0].Color != want {
		t.Errorf("Expected dot colour %v, got %v", want, f.Materials[0].Color)
	}
}

func TestStarsField(t *testing.T) {
	cfg := config.Stars().Particles
	f, err := Particles(cfg, NewRand(7))
	if err != nil {
		t.Fatalf("Failed to generate particles: %v", err)
	}
	if len(f.Objects) != cfg.Count {
		t.Fatalf("Expected %d stars, got %d", cfg.Count, len(f.Objects))
	}
	checkBounds(t, f.Objects, 15)
	if len(f.Materials) != 3 {
		t.Fatalf("Expected one material per sprite texture, got %d", len(f.Materials))
	}
	for i, o := range f.Objects {
		if o.Material != f.Materials[i%3] {
			t.Fatalf("Expected round-robin material for star %d", i)
		}
		if o.Material.Kind != scene.MaterialPoints {
			t.Fatalf("Expected points material, got %v", o.Material.Kind)
		}
		if s := o.Scale.X(); s < cfg.SizeMin || s > cfg.SizeMax {
			t.Fatalf("Expected size in [%v,%v], got %v", cfg.SizeMin, cfg.SizeMax, s)
		}
	}
}

func TestParticleCounts(t *testing.T) {
	for _, n := range []int{0, 1, 17, 1000} {
		cfg := config.Dots().Particles
		cfg.Count = n
		cfg.Spread = 30
		f, err := Particles(cfg, NewRand(1))
		if err != nil {
			t.Fatalf("Failed to generate particles: %v", err)
		}
		if len(f.Objects) != n {
			t.Errorf("Expected %d objects, got %d", n, len(f.Objects))
		}
		checkBounds(t, f.Objects, 15)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	cfg := config.Dots().Particles
	a, _ := Particles(cfg, NewRand(99))
	b, _ := Particles(cfg, NewRand(99))
	for i := range a.Objects {
		if a.Objects[i].Position != b.Objects[i].Position {
			t.Fatalf("Expected identical layouts for the same seed")
		}
	}
}

func TestParticleErrors(t *testing.T) {
	cfg := config.Dots().Particles
	cfg.Color = "orange"
	if _, err := Particles(cfg, NewRand(1)); err == nil {
		t.Errorf("Expected error for bad colour")
	}
	cfg = config.Dots().Particles
	cfg.Kind = "comets"
	if _, err := Particles(cfg, NewRand(1)); err == nil {
		t.Errorf("Expected error for unknown kind")
	}
}

func TestGenerateMatcap(t *testing.T) {
	tex := GenerateMatcap(64)
	if tex.Image.Rect.Dx() != 64 || tex.Image.Rect.Dy() != 64 || !tex.SRGB {
		t.Fatalf("Expected 64x64 sRGB matcap, got %v srgb=%v", tex.Image.Rect, tex.SRGB)
	}
	lum := func(x, y int) int {
		c := tex.Image.RGBAAt(x, y)
		return int(c.R) + int(c.G) + int(c.B)
	}
	// Lit from the upper left: that quadrant is brighter than the lower right.
	if lum(20, 20) <= lum(44, 44) {
		t.Errorf("Expected upper-left brighter than lower-right")
	}
}
