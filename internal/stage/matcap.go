package stage

import (
	"image"
	"image/color"
	"math"

	"pixel-pirates/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// GenerateMatcap paints a size x size matcap of a warm, glossy sphere lit
// from the upper left. It stands in when no matcap image is configured.
func GenerateMatcap(size int) *scene.Texture {
	size = max(size, 2)
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	light := mgl32.Vec3{-0.45, 0.6, 0.65}.Normalize()
	half := light.Add(mgl32.Vec3{0, 0, 1}).Normalize()
	base := mgl32.Vec3{0.85, 0.55, 0.3}
	ambient := mgl32.Vec3{0.12, 0.08, 0.1}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			nx := (float32(x)+0.5)/float32(size)*2 - 1
			ny := 1 - (float32(y)+0.5)/float32(size)*2
			r2 := nx*nx + ny*ny
			if r2 > 1 {
				// Outside the disc: project onto the rim so bilinear
				// sampling at the edge stays clean.
				r := float32(math.Sqrt(float64(r2)))
				nx, ny, r2 = nx/r, ny/r, 1
			}
			n := mgl32.Vec3{nx, ny, float32(math.Sqrt(float64(1 - r2)))}

			diffuse := max(n.Dot(light), 0)
			specular := float32(math.Pow(float64(max(n.Dot(half), 0)), 48))
			rim := float32(math.Pow(float64(1-n.Z()), 3)) * 0.35

			c := ambient.Add(base.Mul(diffuse)).Add(mgl32.Vec3{specular, specular, specular}).Add(mgl32.Vec3{rim * 0.4, rim * 0.5, rim})
			img.SetRGBA(x, y, color.RGBA{R: toByte(c[0]), G: toByte(c[1]), B: toByte(c[2]), A: 255})
		}
	}
	return &scene.Texture{Name: "generated-matcap", Image: img, SRGB: true}
}

func toByte(v float32) uint8 {
	return uint8(math.Round(float64(mgl32.Clamp(v, 0, 1) * 255)))
}
