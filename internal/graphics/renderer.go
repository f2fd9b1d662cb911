package graphics

import (
	"fmt"
	"log/slog"

	"pixel-pirates/internal/camera"
	"pixel-pirates/internal/geometry"
	"pixel-pirates/internal/logging"
	"pixel-pirates/internal/profiling"
	"pixel-pirates/internal/scene"
	"pixel-pirates/internal/viewport"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance model matrices occupy attribute locations 2..5.
const instanceAttrib = 2

// Renderer draws a scene into an offscreen buffer sized by the pixel ratio
// and blits it onto the window framebuffer.
type Renderer struct {
	programs [3]*Shader

	// Window framebuffer size, queried at blit time.
	framebufferSize func() (int, int)

	width, height int
	pixelRatio    float64

	fbo          uint32
	colorRB      uint32
	depthRB      uint32
	bufW, bufH   int32
	fboAllocated bool

	geometries map[*geometry.Geometry]*gpuGeometry
	textures   *textureCache

	batches      []*batch
	batchedScene *scene.Scene
	batchVersion uint64

	profile *profiling.Recorder
	log     *slog.Logger
}

type gpuGeometry struct {
	vbo         uint32
	vertexCount int32
	normals     bool
	mode        uint32
}

// NewRenderer initialises GL and compiles the programs. framebufferSize
// reports the window framebuffer in physical pixels.
func NewRenderer(framebufferSize func() (int, int), profile *profiling.Recorder) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	if profile == nil {
		profile = profiling.NewRecorder()
	}

	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	sources := [3][2]string{
		scene.MaterialBasic:  {basicVertexShader, basicFragmentShader},
		scene.MaterialMatcap: {matcapVertexShader, matcapFragmentShader},
		scene.MaterialPoints: {pointsVertexShader, pointsFragmentShader},
	}
	r := &Renderer{
		framebufferSize: framebufferSize,
		pixelRatio:      1,
		geometries:      make(map[*geometry.Geometry]*gpuGeometry),
		textures:        newTextureCache(),
		profile:         profile,
		log:             logging.For("graphics"),
	}
	for kind, src := range sources {
		s, err := NewShader(src[0], src[1])
		if err != nil {
			r.Dispose()
			return nil, fmt.Errorf("%s program: %w", scene.MaterialKind(kind), err)
		}
		r.programs[kind] = s
	}

	gl.GenFramebuffers(1, &r.fbo)
	gl.GenRenderbuffers(1, &r.colorRB)
	gl.GenRenderbuffers(1, &r.depthRB)
	return r, nil
}

// SetSize sets the logical output size in window pixels.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.resizeBuffer()
}

// SetPixelRatio sets the drawing-buffer to logical-size ratio.
func (r *Renderer) SetPixelRatio(ratio float64) {
	r.pixelRatio = ratio
	r.resizeBuffer()
}

// DrawingBufferSize reports the offscreen buffer size in pixels.
func (r *Renderer) DrawingBufferSize() (int32, int32) {
	return r.bufW, r.bufH
}

func (r *Renderer) resizeBuffer() {
	if r.width <= 0 || r.height <= 0 {
		return
	}
	w, h := viewport.DrawingBufferSize(r.width, r.height, r.pixelRatio)
	if r.fboAllocated && w == r.bufW && h == r.bufH {
		return
	}
	r.bufW, r.bufH = w, h

	gl.BindRenderbuffer(gl.RENDERBUFFER, r.colorRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, w, h)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.depthRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, w, h)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, r.colorRB)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, r.depthRB)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		r.log.Error("offscreen framebuffer incomplete", "status", status, "width", w, "height", h)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	r.fboAllocated = true

	r.log.Debug("drawing buffer resized", "width", w, "height", h, "pixelRatio", r.pixelRatio)
}

// Render draws s as seen from cam.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	if !r.fboAllocated {
		return
	}
	r.syncBatches(s)

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Viewport(0, 0, r.bufW, r.bufH)
	bg := s.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	clip := proj.Mul4(view)

	func() {
		defer r.profile.Track("render.batches")()
		for _, b := range r.batches {
			r.drawBatch(b, view, proj, clip)
		}
	}()
	gl.BindVertexArray(0)

	r.blit()
}

func (r *Renderer) blit() {
	defer r.profile.Track("render.blit")()
	tw, th := r.framebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, r.bufW, r.bufH, 0, 0, int32(tw), int32(th), gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// syncBatches regroups objects when the scene changed since the last frame.
func (r *Renderer) syncBatches(s *scene.Scene) {
	if s == r.batchedScene && s.Version() == r.batchVersion && r.batches != nil {
		return
	}
	r.releaseBatches()
	r.batches = groupBatches(s.Objects())
	r.batchedScene = s
	r.batchVersion = s.Version()
	r.log.Debug("batches rebuilt", "objects", s.Len(), "batches", len(r.batches))
}

func (r *Renderer) drawBatch(b *batch, view, proj, clip mgl32.Mat4) {
	mat := b.key.material
	switch mat.Kind {
	case scene.MaterialMatcap:
		if mat.Matcap == nil {
			return
		}
	case scene.MaterialBasic, scene.MaterialPoints:
	default:
		return
	}
	if b.collect(clip) == 0 {
		return
	}

	geo := r.uploadGeometry(b.key.geometry)
	r.ensureBatchVAO(b, geo)
	r.uploadInstances(b)

	prog := r.programs[mat.Kind]
	prog.Use()
	prog.SetMatrix4("view", &view[0])
	prog.SetMatrix4("proj", &proj[0])
	prog.SetVector3("color", mat.Color[0], mat.Color[1], mat.Color[2])

	switch mat.Kind {
	case scene.MaterialMatcap:
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.textures.get(mat.Matcap))
		prog.SetInt("matcap", 0)
	case scene.MaterialPoints:
		size := mat.Size
		if !mat.SizeAttenuation {
			size *= float32(r.pixelRatio)
		}
		prog.SetFloat("size", size)
		prog.SetFloat("scale", float32(r.bufH)/2)
		prog.SetBool("sizeAttenuation", mat.SizeAttenuation)
		prog.SetBool("hasSprite", mat.Map != nil)
		if mat.Map != nil {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, r.textures.get(mat.Map))
			prog.SetInt("sprite", 0)
		}
		gl.Enable(gl.BLEND)
		defer gl.Disable(gl.BLEND)
	}

	gl.BindVertexArray(b.vao)
	gl.DrawArraysInstanced(geo.mode, 0, geo.vertexCount, b.count)
}

func (r *Renderer) uploadGeometry(g *geometry.Geometry) *gpuGeometry {
	if gg, ok := r.geometries[g]; ok {
		return gg
	}
	gg := &gpuGeometry{
		vertexCount: int32(g.VertexCount()),
		normals:     len(g.Normals) == len(g.Positions) && len(g.Normals) > 0,
		mode:        gl.TRIANGLES,
	}
	if g.Primitive == geometry.Points {
		gg.mode = gl.POINTS
	}

	data := make([]float32, 0, len(g.Positions)+len(g.Normals))
	data = append(data, g.Positions...)
	if gg.normals {
		data = append(data, g.Normals...)
	}
	gl.GenBuffers(1, &gg.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gg.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.geometries[g] = gg
	return gg
}

func (r *Renderer) ensureBatchVAO(b *batch, geo *gpuGeometry) {
	if b.vao != 0 {
		return
	}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, geo.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	if geo.normals {
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 3*4, uintptr(geo.vertexCount)*3*4)
	} else {
		gl.DisableVertexAttribArray(1)
		gl.VertexAttrib3f(1, 0, 0, 1)
	}

	// Instance buffer, one mat4 per instance as four vec4 columns
	gl.GenBuffers(1, &b.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	for i := uint32(0); i < 4; i++ {
		loc := instanceAttrib + i
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, 16*4, uintptr(i)*4*4)
		gl.VertexAttribDivisor(loc, 1)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) uploadInstances(b *batch) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	if len(b.matrices) > b.capacity {
		b.capacity = len(b.objects) * 16
		gl.BufferData(gl.ARRAY_BUFFER, b.capacity*4, nil, gl.DYNAMIC_DRAW)
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.matrices)*4, gl.Ptr(b.matrices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *Renderer) releaseBatches() {
	for _, b := range r.batches {
		if b.vao != 0 {
			gl.DeleteVertexArrays(1, &b.vao)
		}
		if b.instanceVBO != 0 {
			gl.DeleteBuffers(1, &b.instanceVBO)
		}
	}
	r.batches = nil
}

// Dispose releases every GL object owned by the renderer.
func (r *Renderer) Dispose() {
	r.releaseBatches()
	for g, gg := range r.geometries {
		gl.DeleteBuffers(1, &gg.vbo)
		delete(r.geometries, g)
	}
	r.textures.dispose()
	for i, p := range r.programs {
		if p != nil {
			p.Delete()
			r.programs[i] = nil
		}
	}
	if r.fbo != 0 {
		gl.DeleteFramebuffers(1, &r.fbo)
		gl.DeleteRenderbuffers(1, &r.colorRB)
		gl.DeleteRenderbuffers(1, &r.depthRB)
		r.fbo = 0
	}
}
