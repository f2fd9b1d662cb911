// Package config holds the scene presets. Every value has a literal default;
// a JSON file can override any subset of a preset.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

type ParticleKind string

const (
	// ParticleDots are small sphere meshes with random rotation and scale.
	ParticleDots ParticleKind = "dots"
	// ParticleStars are point sprites with a random size.
	ParticleStars ParticleKind = "stars"
)

// TextLine is one floating text mesh.
type TextLine struct {
	Content string  `json:"content"`
	OffsetY float32 `json:"offsetY"`
}

// Asset paths read by the built-in presets, relative to the assets
// directory.
const (
	DefaultFont   = "fonts/arcade_regular.ttf"
	DefaultMatcap = "textures/matcaps/9.png"
)

type Text struct {
	Lines []TextLine `json:"lines"`
	// Size is the em height in world units.
	Size  float32 `json:"size"`
	Depth float32 `json:"depth"`
	// PixelsPerEm is the raster resolution of the block glyphs.
	PixelsPerEm float32 `json:"pixelsPerEm"`
	// Font is a TTF/OTF path relative to the assets directory; empty uses
	// the embedded Go font.
	Font string `json:"font"`
	// Matcap is an image path relative to the assets directory; empty uses
	// a generated matcap.
	Matcap string `json:"matcap"`
}

type Particles struct {
	Kind  ParticleKind `json:"kind"`
	Count int          `json:"count"`
	Color string       `json:"color"`
	// Spread is the edge length of the cube positions are drawn from,
	// centred on the origin.
	Spread float32 `json:"spread"`

	// Dots.
	Radius   float32 `json:"radius"`
	Segments int     `json:"segments"`

	// Stars. Sprites are assigned round-robin.
	SizeMin  float32  `json:"sizeMin"`
	SizeMax  float32  `json:"sizeMax"`
	Textures []string `json:"textures"`

	// Seed fixes the layout; zero picks a random one.
	Seed uint64 `json:"seed"`
}

type Camera struct {
	FOV      float32    `json:"fov"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
	Position [3]float32 `json:"position"`
}

type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	VSync  bool   `json:"vsync"`
	// MaxFPS caps the frame rate when VSync is off. Zero is uncapped.
	MaxFPS int `json:"maxFps"`
}

// Preset is a complete scene configuration.
type Preset struct {
	Name       string    `json:"name"`
	Background string    `json:"background"`
	Text       Text      `json:"text"`
	Particles  Particles `json:"particles"`
	Camera     Camera    `json:"camera"`
	Damping    bool      `json:"damping"`
	Window     Window    `json:"window"`
}

// Dots is the default preset: "Pixel Pirates" over a field of 1000 dots.
func Dots() Preset {
	return Preset{
		Name:       "dots",
		Background: "#000000",
		Text: Text{
			Lines: []TextLine{
				{Content: "Pixel", OffsetY: 0.2},
				{Content: "Pirates", OffsetY: -0.2},
			},
			Size:        0.5,
			Depth:       0.05,
			PixelsPerEm: 16,
			Font:        DefaultFont,
			Matcap:      DefaultMatcap,
		},
		Particles: Particles{
			Kind:     ParticleDots,
			Count:    1000,
			Color:    "#f0be8d",
			Spread:   100,
			Radius:   0.05,
			Segments: 16,
		},
		Camera: Camera{
			FOV:      75,
			Near:     0.1,
			Far:      100,
			Position: [3]float32{1, 0.5, 3},
		},
		Damping: true,
		Window: Window{
			Width:  900,
			Height: 600,
			Title:  "Pixel Pirates",
			VSync:  true,
		},
	}
}

// Stars swaps the dots for a tighter field of textured star sprites.
func Stars() Preset {
	p := Dots()
	p.Name = "stars"
	p.Particles = Particles{
		Kind:    ParticleStars,
		Count:   1000,
		Color:   "#ffffff",
		Spread:  30,
		SizeMin: 0.02,
		SizeMax: 0.1,
		Textures: []string{
			"textures/particles/1.png",
			"textures/particles/2.png",
			"textures/particles/3.png",
		},
	}
	return p
}

var presets = map[string]func() Preset{
	"dots":  Dots,
	"stars": Stars,
}

// Lookup returns a fresh copy of the named preset.
func Lookup(name string) (Preset, error) {
	fn, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, name, Names())
	}
	return fn(), nil
}

// Names lists the built-in presets.
func Names() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LoadFile overlays the JSON file at path onto base. Fields absent from the
// file keep base's values.
func LoadFile(path string, base Preset) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("could not read config file: %w", err)
	}
	p := base
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("could not unmarshal config json: %w", err)
	}
	return p, p.Validate()
}

// Validate reports the first setting that cannot produce a scene.
func (p Preset) Validate() error {
	switch {
	case p.Particles.Count < 0:
		return fmt.Errorf("config: particle count %d is negative", p.Particles.Count)
	case p.Particles.Kind != ParticleDots && p.Particles.Kind != ParticleStars:
		return fmt.Errorf("config: unknown particle kind %q", p.Particles.Kind)
	case p.Particles.Spread < 0:
		return fmt.Errorf("config: particle spread %v is negative", p.Particles.Spread)
	case p.Particles.Kind == ParticleStars && p.Particles.SizeMax < p.Particles.SizeMin:
		return fmt.Errorf("config: star size range [%v,%v] is inverted", p.Particles.SizeMin, p.Particles.SizeMax)
	case p.Text.Size <= 0 || p.Text.PixelsPerEm <= 0:
		return fmt.Errorf("config: text size %v at %v px/em is invalid", p.Text.Size, p.Text.PixelsPerEm)
	case p.Camera.FOV <= 0 || p.Camera.FOV >= 180:
		return fmt.Errorf("config: camera fov %v out of (0,180)", p.Camera.FOV)
	case p.Camera.Near <= 0 || p.Camera.Far <= p.Camera.Near:
		return fmt.Errorf("config: camera clip planes [%v,%v] are invalid", p.Camera.Near, p.Camera.Far)
	case p.Window.Width <= 0 || p.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d is invalid", p.Window.Width, p.Window.Height)
	}
	return nil
}

// Resolve joins an asset path onto the assets directory. Empty paths stay
// empty and absolute paths are returned unchanged.
func Resolve(assetsDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(assetsDir, path)
}
