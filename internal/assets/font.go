package assets

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DecodeFont parses a TrueType or OpenType file. An empty path selects the
// embedded Go Regular font.
func DecodeFont(path string) (*opentype.Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", path, err)
	}
	return f, nil
}

// NewFace opens f at pixelsPerEm with hinting off, so glyph masks keep the
// font's own pixel grid.
func NewFace(f *opentype.Font, pixelsPerEm float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    pixelsPerEm,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// LoadFont parses the font at path in the background. onLoad runs during a
// later Drain; it never runs if the load fails.
func (l *Loader) LoadFont(path string, onLoad func(*opentype.Font)) *Pending {
	return l.submit("font", path, func() (func(), error) {
		f, err := DecodeFont(path)
		if err != nil {
			return nil, err
		}
		return func() { onLoad(f) }, nil
	})
}
