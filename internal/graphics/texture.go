package graphics

import (
	"pixel-pirates/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// textureCache uploads scene textures on first use. GL objects are only
// touched from the render thread, so the cache is not locked.
type textureCache struct {
	ids map[*scene.Texture]uint32
}

func newTextureCache() *textureCache {
	return &textureCache{ids: make(map[*scene.Texture]uint32)}
}

// get returns the GL texture for tex, uploading it if needed.
func (c *textureCache) get(tex *scene.Texture) uint32 {
	if id, ok := c.ids[tex]; ok {
		return id
	}
	id := uploadTexture(tex)
	c.ids[tex] = id
	return id
}

func (c *textureCache) dispose() {
	for tex, id := range c.ids {
		gl.DeleteTextures(1, &id)
		delete(c.ids, tex)
	}
}

// uploadTexture creates a mipmapped 2D texture. Colour textures use an sRGB
// internal format so sampling returns linear values.
func uploadTexture(tex *scene.Texture) uint32 {
	rgba := tex.Image
	internal := int32(gl.RGBA8)
	if tex.SRGB {
		internal = gl.SRGB8_ALPHA8
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(rgba.Stride/4))
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		internal,
		int32(rgba.Rect.Dx()),
		int32(rgba.Rect.Dy()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}
