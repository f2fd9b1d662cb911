package stage

import (
	"fmt"
	"math"
	"math/rand/v2"

	"pixel-pirates/internal/config"
	"pixel-pirates/internal/geometry"
	"pixel-pirates/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Field is a generated particle field. Materials lists the distinct
// materials used, in the order sprite textures should be assigned to them.
type Field struct {
	Objects   []*scene.Object
	Materials []*scene.Material
}

// NewRand returns the generator for a particle layout. A zero seed draws a
// random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Particles generates exactly cfg.Count objects with every position
// component drawn uniformly from [-Spread/2, Spread/2).
func Particles(cfg config.Particles, rng *rand.Rand) (*Field, error) {
	color, err := scene.ParseHexColor(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("particle colour: %w", err)
	}

	switch cfg.Kind {
	case config.ParticleDots:
		return dots(cfg, color, rng), nil
	case config.ParticleStars:
		return stars(cfg, color, rng), nil
	}
	return nil, fmt.Errorf("unknown particle kind %q", cfg.Kind)
}

func spread(rng *rand.Rand, size float32) float32 {
	return (rng.Float32() - 0.5) * size
}

func dots(cfg config.Particles, color mgl32.Vec3, rng *rand.Rand) *Field {
	g := geometry.NewSphere(cfg.Radius, cfg.Segments, cfg.Segments)
	mat := scene.NewBasicMaterial(color)

	objs := make([]*scene.Object, cfg.Count)
	for i := range objs {
		o := scene.NewObject(fmt.Sprintf("dot-%d", i), g, mat)
		o.Position = mgl32.Vec3{spread(rng, cfg.Spread), spread(rng, cfg.Spread), spread(rng, cfg.Spread)}
		o.Rotation[0] = rng.Float32() * math.Pi
		o.Rotation[1] = rng.Float32() * math.Pi
		s := rng.Float32()
		o.Scale = mgl32.Vec3{s, s, s}
		objs[i] = o
	}
	return &Field{Objects: objs, Materials: []*scene.Material{mat}}
}

func stars(cfg config.Particles, color mgl32.Vec3, rng *rand.Rand) *Field {
	g := geometry.NewPoint()

	n := max(len(cfg.Textures), 1)
	mats := make([]*scene.Material, n)
	for i := range mats {
		// Sprites are attached once their textures load.
		mats[i] = scene.NewPointsMaterial(color, 1, nil)
	}

	objs := make([]*scene.Object, cfg.Count)
	for i := range objs {
		o := scene.NewObject(fmt.Sprintf("star-%d", i), g, mats[i%n])
		o.Position = mgl32.Vec3{spread(rng, cfg.Spread), spread(rng, cfg.Spread), spread(rng, cfg.Spread)}
		s := cfg.SizeMin + rng.Float32()*(cfg.SizeMax-cfg.SizeMin)
		o.Scale = mgl32.Vec3{s, s, s}
		objs[i] = o
	}
	return &Field{Objects: objs, Materials: mats}
}
