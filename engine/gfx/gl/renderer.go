package glbackend

import (
	"errors"
	"fmt"
	"log"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
)

// RendererGL implements core.Renderer on an OpenGL 3.3 core context. The
// context must be current on the calling thread.
type RendererGL struct {
	win  core.Window
	w, h int

	vendor, renderer, version string
	warned                    map[string]bool
}

func NewRendererGL(win core.Window, _ core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, warned: map[string]bool{}}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	r.vendor = gl.GoStr(gl.GetString(gl.VENDOR))
	r.renderer = gl.GoStr(gl.GetString(gl.RENDERER))
	r.version = gl.GoStr(gl.GetString(gl.VERSION))
	log.Printf("GL: %s (%s, %s)\n", r.version, r.renderer, r.vendor)

	// 2D only: no depth, blending chosen per draw.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	if r.win != nil {
		r.w, r.h = r.win.FramebufferSize()
	}
	return nil
}

func (r *RendererGL) Shutdown() {}

func (r *RendererGL) GPUVendor() string   { return r.vendor }
func (r *RendererGL) GPURenderer() string { return r.renderer }
func (r *RendererGL) GPUVersion() string  { return r.version }

func (r *RendererGL) Resize(w, h int) {
	r.w, r.h = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.w), int32(r.h))
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// --- resources ---

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

type renderTarget struct {
	fbo uint32
	tex *texture
}

func (rt *renderTarget) Texture() core.Texture { return rt.tex }
func (rt *renderTarget) Size() (int, int)      { return rt.tex.Size() }

type pipeline struct {
	program uint32
	blend   bool
	depth   bool
	locs    map[string]int32
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.locs[name] = loc
	return loc
}

type mesh struct {
	vao, vbo, ebo uint32
	floatsPerVert int
	vertCount     int32
	indCount      int32
	usage         uint32
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("texture size %dx%d", desc.Width, desc.Height)
	}
	var pixels unsafe.Pointer
	if len(desc.Pixels) > 0 {
		if len(desc.Pixels) != desc.Width*desc.Height*4 {
			return nil, fmt.Errorf("texture %dx%d: got %d bytes of RGBA8", desc.Width, desc.Height, len(desc.Pixels))
		}
		pixels = gl.Ptr(desc.Pixels)
	}

	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, glInternalFormat(desc.Format), int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &t.id)
		return nil, fmt.Errorf("allocate %dx%d texture: GL error 0x%x", desc.Width, desc.Height, code)
	}
	return t, nil
}

func (r *RendererGL) CreateRenderTarget(desc core.RenderTargetDesc) (core.RenderTarget, error) {
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: desc.Width, Height: desc.Height,
		Format:    desc.Format,
		MinFilter: core.FilterNearest, MagFilter: core.FilterNearest,
	})
	if err != nil {
		return nil, err
	}
	rt := &renderTarget{tex: tex.(*texture)}

	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.tex.id, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		r.DestroyRenderTarget(rt)
		return nil, fmt.Errorf("framebuffer incomplete: status 0x%x", status)
	}
	return rt, nil
}

func (r *RendererGL) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	return &pipeline{
		program: prog,
		blend:   desc.Blend,
		depth:   desc.DepthTest,
		locs:    map[string]int32{},
	}, nil
}

func (r *RendererGL) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if desc.Layout.Stride <= 0 || desc.Layout.Stride%4 != 0 {
		return nil, fmt.Errorf("mesh: invalid stride %d", desc.Layout.Stride)
	}
	m := &mesh{floatsPerVert: desc.Layout.Stride / 4, usage: gl.STATIC_DRAW}
	if desc.Dynamic {
		m.usage = gl.DYNAMIC_DRAW
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(desc.Indices) > 0 {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	}
	m.upload(desc.Vertices, desc.Indices)

	for _, a := range desc.Layout.Attributes {
		if a.Type != core.AttribFloat32 {
			r.DestroyMesh(m)
			return nil, fmt.Errorf("mesh: unsupported attribute type %d", a.Type)
		}
		gl.EnableVertexAttribArray(uint32(a.Location))
		gl.VertexAttribPointerWithOffset(uint32(a.Location), int32(a.Size), gl.FLOAT, false, int32(desc.Layout.Stride), uintptr(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

func (r *RendererGL) UpdateMesh(cm core.Mesh, verts []float32, inds []uint32) error {
	m, ok := cm.(*mesh)
	if !ok {
		return fmt.Errorf("mesh: foreign handle %T", cm)
	}
	if len(inds) > 0 && m.ebo == 0 {
		return errors.New("mesh: created without an index buffer")
	}
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	m.upload(verts, inds)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

// upload expects the VAO and VBO (and EBO, if any) to be bound.
func (m *mesh) upload(verts []float32, inds []uint32) {
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), m.usage)
	}
	m.vertCount = int32(len(verts) / m.floatsPerVert)
	if m.ebo != 0 {
		if len(inds) > 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(inds)*4, gl.Ptr(inds), m.usage)
		}
		m.indCount = int32(len(inds))
	}
}

func (r *RendererGL) DestroyTexture(t core.Texture) {
	if tt, ok := t.(*texture); ok && tt.id != 0 {
		gl.DeleteTextures(1, &tt.id)
		tt.id = 0
	}
}

func (r *RendererGL) DestroyRenderTarget(rt core.RenderTarget) {
	t, ok := rt.(*renderTarget)
	if !ok {
		return
	}
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	r.DestroyTexture(t.tex)
}

func (r *RendererGL) DestroyPipeline(p core.Pipeline) {
	if pp, ok := p.(*pipeline); ok && pp.program != 0 {
		gl.DeleteProgram(pp.program)
		pp.program = 0
	}
}

func (r *RendererGL) DestroyMesh(cm core.Mesh) {
	m, ok := cm.(*mesh)
	if !ok {
		return
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	*m = mesh{}
}

// --- surfaces ---

func (r *RendererGL) Screen() core.Surface {
	return &surface{r: r, fbo: 0, w: r.w, h: r.h}
}

func (r *RendererGL) SurfaceOf(rt core.RenderTarget) core.Surface {
	t := rt.(*renderTarget)
	return &surface{r: r, fbo: t.fbo, w: t.tex.w, h: t.tex.h}
}

type surface struct {
	r    *RendererGL
	fbo  uint32
	w, h int
}

func (s *surface) Size() (int, int) { return s.w, s.h }

func (s *surface) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, int32(s.w), int32(s.h))
}

func (s *surface) Clear(c colors.Color) {
	s.bind()
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (s *surface) Draw(cmd core.DrawCmd) error {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok || p.program == 0 {
		return fmt.Errorf("draw: invalid pipeline %T", cmd.Pipe)
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok || m.vao == 0 {
		return fmt.Errorf("draw: invalid mesh %T", cmd.Mesh)
	}

	s.bind()
	gl.UseProgram(p.program)
	defer gl.UseProgram(0)

	if p.depth {
		gl.Enable(gl.DEPTH_TEST)
		defer gl.Disable(gl.DEPTH_TEST)
	}
	applyBlend(cmd.Blend, p.blend)

	unit := int32(0)
	for name, smp := range cmd.Samplers {
		loc := p.location(name)
		if loc < 0 {
			return fmt.Errorf("sampler %q not declared by program", name)
		}
		tex, ok := smp.Texture.(*texture)
		if !ok || tex.id == 0 {
			return fmt.Errorf("sampler %q bound to invalid texture", name)
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(smp.Filter))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(smp.Filter))
		gl.Uniform1i(loc, unit)
		unit++
	}

	for name, v := range cmd.Uniforms {
		loc := p.location(name)
		if loc < 0 {
			// Unused uniforms are compiled out; say so once.
			s.r.warnOnce(fmt.Sprintf("%d/%s", p.program, name), "GL: uniform %q is not active in program %d", name, p.program)
			continue
		}
		if err := setUniform(loc, v); err != nil {
			return fmt.Errorf("uniform %q: %w", name, err)
		}
	}

	gl.BindVertexArray(m.vao)
	mode := uint32(gl.TRIANGLES)
	if cmd.Primitive == core.PrimitiveLines {
		mode = gl.LINES
	}
	if m.indCount > 0 {
		gl.DrawElements(mode, m.indCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(mode, 0, m.vertCount)
	}
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("draw: GL error 0x%x", code)
	}
	return nil
}

func (r *RendererGL) warnOnce(key, format string, args ...any) {
	if r.warned[key] {
		return
	}
	r.warned[key] = true
	log.Printf(format, args...)
}

func applyBlend(mode core.BlendMode, allowed bool) {
	if !allowed || mode == core.BlendNone {
		gl.Disable(gl.BLEND)
		return
	}
	gl.Enable(gl.BLEND)
	switch mode {
	case core.BlendAdditive:
		gl.BlendFunc(gl.ONE, gl.ONE)
	default:
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func glFilter(f core.Filter) int32 {
	if f == core.FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func glInternalFormat(f core.TextureFormat) int32 {
	if f == core.TextureSRGBA8 {
		return gl.SRGB8_ALPHA8
	}
	return gl.RGBA8
}
