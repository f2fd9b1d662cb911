package stage

import (
	"fmt"
	"log/slog"

	"pixel-pirates/internal/assets"
	"pixel-pirates/internal/config"
	"pixel-pirates/internal/logging"
	"pixel-pirates/internal/scene"

	"golang.org/x/image/font/opentype"
)

// MatcapSize is the edge length of the generated matcap used when a preset
// names no matcap image.
const MatcapSize = 256

// Populate fills s from the preset. The particle field is added right away.
// Sprite textures and the title are requested from l and attached when their
// continuations run in l.Drain, so a failed load only leaves its part out.
func Populate(s *scene.Scene, p config.Preset, assetsDir string, l *assets.Loader) (*Field, error) {
	bg, err := scene.ParseHexColor(p.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	s.Background = bg

	field, err := Particles(p.Particles, NewRand(p.Particles.Seed))
	if err != nil {
		return nil, err
	}
	s.Add(field.Objects...)

	for i, path := range p.Particles.Textures {
		mat := field.Materials[i%len(field.Materials)]
		l.LoadTexture(config.Resolve(assetsDir, path), true, func(tex *scene.Texture) {
			mat.Map = tex
		})
	}

	requestTitle(s, p.Text, assetsDir, l)
	return field, nil
}

// titleJoin adds the title once both the font and the matcap have arrived,
// in whichever order their continuations run.
type titleJoin struct {
	scene  *scene.Scene
	text   config.Text
	font   *opentype.Font
	matcap *scene.Texture
	added  bool
	log    *slog.Logger
}

func (j *titleJoin) setFont(f *opentype.Font) {
	j.font = f
	j.build()
}

func (j *titleJoin) setMatcap(tex *scene.Texture) {
	j.matcap = tex
	j.build()
}

func (j *titleJoin) build() {
	if j.added || j.font == nil || j.matcap == nil {
		return
	}
	f, err := assets.NewFace(j.font, float64(j.text.PixelsPerEm))
	if err != nil {
		j.log.Warn("title face unavailable", "err", err)
		return
	}
	defer f.Close()
	objs, err := Title(f, j.text, scene.NewMatcapMaterial(j.matcap))
	if err != nil {
		j.log.Warn("title not built", "err", err)
		return
	}
	j.scene.Add(objs...)
	j.added = true
	j.log.Debug("title added", "lines", len(objs))
}

// requestTitle loads the font and the matcap and adds the title once both
// have arrived.
func requestTitle(s *scene.Scene, text config.Text, assetsDir string, l *assets.Loader) {
	j := &titleJoin{scene: s, text: text, log: logging.For("stage")}

	l.LoadFont(config.Resolve(assetsDir, text.Font), j.setFont)

	if text.Matcap == "" {
		j.matcap = GenerateMatcap(MatcapSize)
		return
	}
	l.LoadTexture(config.Resolve(assetsDir, text.Matcap), true, j.setMatcap)
}
