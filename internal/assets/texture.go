package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"pixel-pirates/internal/scene"
)

// DecodeTexture reads an image file and converts it to RGBA.
func DecodeTexture(path string, srgb bool) (*scene.Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	return &scene.Texture{
		Name:  filepath.Base(path),
		Image: rgba,
		SRGB:  srgb,
	}, nil
}

// LoadTexture decodes the image at path in the background. onLoad runs
// during a later Drain; it never runs if the load fails.
func (l *Loader) LoadTexture(path string, srgb bool, onLoad func(*scene.Texture)) *Pending {
	return l.submit("texture", path, func() (func(), error) {
		tex, err := DecodeTexture(path, srgb)
		if err != nil {
			return nil, err
		}
		return func() { onLoad(tex) }, nil
	})
}
