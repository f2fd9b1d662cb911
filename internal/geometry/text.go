package geometry

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyText is returned when the string has no visible glyphs in the face.
var ErrEmptyText = errors.New("geometry: text has no visible glyphs")

// TextOptions controls block-text extrusion.
type TextOptions struct {
	// Size is the world-space height of one em.
	Size float32
	// Depth is the extrusion length along +Z.
	Depth float32
	// PixelsPerEm is the pixel size the face was opened at. One glyph pixel
	// becomes a cell of Size/PixelsPerEm world units.
	PixelsPerEm float32
	// Threshold is the minimum glyph coverage (0-255) for a pixel to be solid.
	// Zero means 128.
	Threshold uint8
}

// NewText rasterises text with face and extrudes every covered pixel into a
// block. Faces between two solid cells are culled, and front and back faces
// are merged along rows. The result sits with its baseline-left corner near
// the origin; call Center to centre it.
func NewText(face font.Face, text string, opts TextOptions) (*Geometry, error) {
	if opts.PixelsPerEm <= 0 || opts.Size <= 0 {
		return nil, fmt.Errorf("geometry: invalid text size %v at %v px/em", opts.Size, opts.PixelsPerEm)
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = 128
	}

	mask, err := rasterize(face, text)
	if err != nil {
		return nil, err
	}
	cols, rows := mask.Rect.Dx(), mask.Rect.Dy()
	solid := func(x, y int) bool {
		if x < 0 || y < 0 || x >= cols || y >= rows {
			return false
		}
		return mask.AlphaAt(x, y).A >= threshold
	}

	cell := opts.Size / opts.PixelsPerEm
	depth := opts.Depth
	g := &Geometry{Primitive: Triangles}

	for y := 0; y < rows; y++ {
		// Image rows grow downwards; world Y grows upwards.
		y0 := float32(rows-y-1) * cell
		y1 := y0 + cell

		for x := 0; x < cols; {
			if !solid(x, y) {
				x++
				continue
			}
			run := x
			for run < cols && solid(run, y) {
				run++
			}
			x0, x1 := float32(x)*cell, float32(run)*cell
			g.appendQuad(
				mgl32.Vec3{x0, y0, depth}, mgl32.Vec3{x1, y0, depth},
				mgl32.Vec3{x1, y1, depth}, mgl32.Vec3{x0, y1, depth},
				mgl32.Vec3{0, 0, 1})
			g.appendQuad(
				mgl32.Vec3{x0, y0, 0}, mgl32.Vec3{x0, y1, 0},
				mgl32.Vec3{x1, y1, 0}, mgl32.Vec3{x1, y0, 0},
				mgl32.Vec3{0, 0, -1})
			x = run
		}

		for x := 0; x < cols; x++ {
			if !solid(x, y) {
				continue
			}
			x0, x1 := float32(x)*cell, float32(x+1)*cell
			if !solid(x+1, y) {
				g.appendQuad(
					mgl32.Vec3{x1, y0, depth}, mgl32.Vec3{x1, y0, 0},
					mgl32.Vec3{x1, y1, 0}, mgl32.Vec3{x1, y1, depth},
					mgl32.Vec3{1, 0, 0})
			}
			if !solid(x-1, y) {
				g.appendQuad(
					mgl32.Vec3{x0, y0, 0}, mgl32.Vec3{x0, y0, depth},
					mgl32.Vec3{x0, y1, depth}, mgl32.Vec3{x0, y1, 0},
					mgl32.Vec3{-1, 0, 0})
			}
			if !solid(x, y-1) {
				g.appendQuad(
					mgl32.Vec3{x0, y1, depth}, mgl32.Vec3{x1, y1, depth},
					mgl32.Vec3{x1, y1, 0}, mgl32.Vec3{x0, y1, 0},
					mgl32.Vec3{0, 1, 0})
			}
			if !solid(x, y+1) {
				g.appendQuad(
					mgl32.Vec3{x0, y0, 0}, mgl32.Vec3{x1, y0, 0},
					mgl32.Vec3{x1, y0, depth}, mgl32.Vec3{x0, y0, depth},
					mgl32.Vec3{0, -1, 0})
			}
		}
	}

	if len(g.Positions) == 0 {
		return nil, ErrEmptyText
	}
	return g, nil
}

// rasterize draws text into a tight alpha mask.
func rasterize(face font.Face, text string) (*image.Alpha, error) {
	bounds, _ := font.BoundString(face, text)
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		return nil, ErrEmptyText
	}

	mask := image.NewAlpha(image.Rect(0, 0, maxX-minX, maxY-minY))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(text)
	return mask, nil
}
