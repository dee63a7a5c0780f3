// Package gfxtest provides a recording core.Renderer for tests that exercise
// draw logic without a graphics context.
package gfxtest

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
)

// ErrInjected is returned by creation calls that the test asked to fail.
var ErrInjected = errors.New("gfxtest: injected failure")

// Renderer records every call made through core.Renderer and core.Surface.
type Renderer struct {
	ScreenW, ScreenH int

	// Failure injection.
	FailPipelines bool
	FailTargetAt  int // 1-based CreateRenderTarget call to fail, 0 = never

	Textures  []*Texture
	Targets   []*Target
	Pipelines []*Pipeline
	Meshes    []*Mesh
	Calls     []Call

	nextID int
}

func New(w, h int) *Renderer { return &Renderer{ScreenW: w, ScreenH: h} }

// Call is one recorded surface operation.
type Call struct {
	Surface string
	Clear   *colors.Color
	Draw    *core.DrawCmd
}

type Texture struct {
	ID        int
	Desc      core.TextureDesc
	Destroyed bool
}

func (t *Texture) Size() (int, int) { return t.Desc.Width, t.Desc.Height }

type Target struct {
	ID        int
	Tex       *Texture
	Destroyed bool
}

func (t *Target) Texture() core.Texture { return t.Tex }
func (t *Target) Size() (int, int)      { return t.Tex.Size() }
func (t *Target) Name() string          { return fmt.Sprintf("target#%d", t.ID) }

type Pipeline struct {
	ID        int
	Desc      core.PipelineDesc
	Declared  map[string]bool
	Destroyed bool
}

type Mesh struct {
	ID        int
	Verts     []float32
	Inds      []uint32
	Layout    core.VertexLayout
	Dynamic   bool
	Updates   int
	Destroyed bool
}

func (r *Renderer) id() int { r.nextID++; return r.nextID }

func (r *Renderer) Init() error              { return nil }
func (r *Renderer) Resize(w, h int)          { r.ScreenW, r.ScreenH = w, h }
func (r *Renderer) Clear(_, _, _, _ float32) {}
func (r *Renderer) Shutdown()                {}
func (r *Renderer) GPUVendor() string        { return "gfxtest" }
func (r *Renderer) GPURenderer() string      { return "recorder" }
func (r *Renderer) GPUVersion() string       { return "0" }

func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("gfxtest: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	t := &Texture{ID: r.id(), Desc: desc}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Renderer) CreateRenderTarget(desc core.RenderTargetDesc) (core.RenderTarget, error) {
	if r.FailTargetAt > 0 && len(r.Targets)+1 == r.FailTargetAt {
		return nil, ErrInjected
	}
	tex, err := r.CreateTexture(core.TextureDesc{Width: desc.Width, Height: desc.Height, Format: desc.Format})
	if err != nil {
		return nil, err
	}
	t := &Target{ID: r.id(), Tex: tex.(*Texture)}
	r.Targets = append(r.Targets, t)
	return t, nil
}

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)`)

func (r *Renderer) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if r.FailPipelines {
		return nil, ErrInjected
	}
	p := &Pipeline{ID: r.id(), Desc: desc, Declared: map[string]bool{}}
	for _, src := range []string{desc.VertexSource, desc.FragmentSource} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			p.Declared[m[1]] = true
		}
	}
	r.Pipelines = append(r.Pipelines, p)
	return p, nil
}

func (r *Renderer) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	m := &Mesh{ID: r.id(), Verts: desc.Vertices, Inds: desc.Indices, Layout: desc.Layout, Dynamic: desc.Dynamic}
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Renderer) UpdateMesh(m core.Mesh, verts []float32, inds []uint32) error {
	mm, ok := m.(*Mesh)
	if !ok || mm.Destroyed {
		return fmt.Errorf("gfxtest: update of invalid mesh %v", m)
	}
	mm.Verts = append([]float32(nil), verts...)
	mm.Inds = append([]uint32(nil), inds...)
	mm.Updates++
	return nil
}

func (r *Renderer) DestroyTexture(t core.Texture)   { t.(*Texture).Destroyed = true }
func (r *Renderer) DestroyPipeline(p core.Pipeline) { p.(*Pipeline).Destroyed = true }
func (r *Renderer) DestroyMesh(m core.Mesh)         { m.(*Mesh).Destroyed = true }
func (r *Renderer) DestroyRenderTarget(rt core.RenderTarget) {
	t := rt.(*Target)
	t.Destroyed = true
	t.Tex.Destroyed = true
}

func (r *Renderer) Screen() core.Surface {
	return &Surface{r: r, name: "screen", w: r.ScreenW, h: r.ScreenH}
}

func (r *Renderer) SurfaceOf(rt core.RenderTarget) core.Surface {
	t := rt.(*Target)
	if t.Destroyed {
		panic("gfxtest: surface of destroyed target")
	}
	w, h := t.Size()
	return &Surface{r: r, name: t.Name(), w: w, h: h}
}

// DrawsOn returns the draw commands recorded against the named surface.
func (r *Renderer) DrawsOn(surface string) []core.DrawCmd {
	var out []core.DrawCmd
	for _, c := range r.Calls {
		if c.Surface == surface && c.Draw != nil {
			out = append(out, *c.Draw)
		}
	}
	return out
}

// Reset drops the recorded calls.
func (r *Renderer) Reset() { r.Calls = r.Calls[:0] }

// Surface is a recording view. Draws are validated the way a strict GL
// backend does: every sampler must be declared by the program.
type Surface struct {
	r    *Renderer
	name string
	w, h int
}

func (s *Surface) Name() string     { return s.name }
func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Clear(c colors.Color) {
	s.r.Calls = append(s.r.Calls, Call{Surface: s.name, Clear: &c})
}

func (s *Surface) Draw(cmd core.DrawCmd) error {
	p, ok := cmd.Pipe.(*Pipeline)
	if !ok || p.Destroyed {
		return fmt.Errorf("gfxtest: draw with invalid pipeline %v", cmd.Pipe)
	}
	if m, ok := cmd.Mesh.(*Mesh); !ok || m.Destroyed {
		return fmt.Errorf("gfxtest: draw with invalid mesh %v", cmd.Mesh)
	}
	for name, smp := range cmd.Samplers {
		if !p.Declared[name] {
			return fmt.Errorf("sampler %q not declared by program", name)
		}
		if tex, ok := smp.Texture.(*Texture); !ok || tex.Destroyed {
			return fmt.Errorf("sampler %q bound to invalid texture", name)
		}
	}
	// Copy maps so later mutation by the caller does not rewrite history.
	rec := cmd
	rec.Uniforms = make(map[string]any, len(cmd.Uniforms))
	for k, v := range cmd.Uniforms {
		rec.Uniforms[k] = v
	}
	rec.Samplers = make(map[string]core.Sampler, len(cmd.Samplers))
	for k, v := range cmd.Samplers {
		rec.Samplers[k] = v
	}
	s.r.Calls = append(s.r.Calls, Call{Surface: s.name, Draw: &rec})
	return nil
}
