package scene

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type MaterialKind int

const (
	// MaterialBasic draws with a flat colour.
	MaterialBasic MaterialKind = iota
	// MaterialMatcap shades by looking up the view-space normal in Matcap.
	MaterialMatcap
	// MaterialPoints draws each vertex as a screen-facing sprite.
	MaterialPoints
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialBasic:
		return "basic"
	case MaterialMatcap:
		return "matcap"
	case MaterialPoints:
		return "points"
	}
	return fmt.Sprintf("MaterialKind(%d)", int(k))
}

// Texture is a decoded image waiting to be, or already, uploaded by a renderer.
type Texture struct {
	Name  string
	Image *image.RGBA
	// SRGB marks colour data that must be linearised on sampling.
	SRGB bool
}

// Material describes how an object's surface is drawn. Objects sharing a
// *Material are batched together by the renderer.
type Material struct {
	Kind  MaterialKind
	Color mgl32.Vec3

	// Matcap is required for MaterialMatcap.
	Matcap *Texture

	// Size is the sprite size in world units for MaterialPoints. With
	// SizeAttenuation off it is in pixels instead.
	Size            float32
	SizeAttenuation bool
	// Map is an optional sprite texture for MaterialPoints.
	Map *Texture
}

func NewBasicMaterial(color mgl32.Vec3) *Material {
	return &Material{Kind: MaterialBasic, Color: color}
}

func NewMatcapMaterial(matcap *Texture) *Material {
	return &Material{Kind: MaterialMatcap, Color: mgl32.Vec3{1, 1, 1}, Matcap: matcap}
}

func NewPointsMaterial(color mgl32.Vec3, size float32, sprite *Texture) *Material {
	return &Material{
		Kind:            MaterialPoints,
		Color:           color,
		Size:            size,
		SizeAttenuation: true,
		Map:             sprite,
	}
}

// ParseHexColor parses "#rrggbb" or "#rgb" into 0..1 components.
func ParseHexColor(s string) (mgl32.Vec3, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("scene: invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("scene: invalid colour %q: %w", s, err)
	}
	return mgl32.Vec3{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
