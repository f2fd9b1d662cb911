// Package stage assembles the decorative scene: the floating title and the
// particle field around it.
package stage

import (
	"fmt"

	"pixel-pirates/internal/config"
	"pixel-pirates/internal/geometry"
	"pixel-pirates/internal/scene"

	"golang.org/x/image/font"
)

// Title builds one centred text mesh per configured line, shifted vertically
// by the line's offset. All lines share mat.
func Title(face font.Face, text config.Text, mat *scene.Material) ([]*scene.Object, error) {
	opts := geometry.TextOptions{
		Size:        text.Size,
		Depth:       text.Depth,
		PixelsPerEm: text.PixelsPerEm,
	}
	objs := make([]*scene.Object, 0, len(text.Lines))
	for _, line := range text.Lines {
		g, err := geometry.NewText(face, line.Content, opts)
		if err != nil {
			return nil, fmt.Errorf("title line %q: %w", line.Content, err)
		}
		g.Center()

		o := scene.NewObject(line.Content, g, mat)
		o.Position[1] = line.OffsetY
		objs = append(objs, o)
	}
	return objs, nil
}
