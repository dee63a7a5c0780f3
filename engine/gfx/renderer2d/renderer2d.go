package renderer2d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
)

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls int
	QuadCount int
	LineCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount*4 + s.LineCount*2 }

// Renderer2D owns what every sprite and line shares: the unit quad and the
// two compiled programs. Create sprites and lines through it.
type Renderer2D struct {
	r          core.Renderer
	quad       core.Ref[core.Mesh]
	spritePipe core.Ref[core.Pipeline]
	linePipe   core.Ref[core.Pipeline]

	uniforms map[string]any
	samplers map[string]core.Sampler
	stats    Statistics
}

// New compiles the sprite and line programs. quad is cloned, the caller keeps
// its own reference.
func New(r core.Renderer, quad core.Ref[core.Mesh]) (*Renderer2D, error) {
	sprite, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   spriteVertexSource,
		FragmentSource: spriteFragmentSource,
		Blend:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("compile sprite program: %w", err)
	}
	line, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   lineVertexSource,
		FragmentSource: lineFragmentSource,
		Blend:          true,
	})
	if err != nil {
		r.DestroyPipeline(sprite)
		return nil, fmt.Errorf("compile line program: %w", err)
	}

	return &Renderer2D{
		r:          r,
		quad:       quad.Clone(),
		spritePipe: core.NewRef(sprite, r.DestroyPipeline),
		linePipe:   core.NewRef(line, r.DestroyPipeline),
		uniforms:   make(map[string]any, 2),
		samplers:   make(map[string]core.Sampler, 1),
	}, nil
}

// Close drops the renderer's references. Sprites and lines still alive keep
// the shared resources until they are released too.
func (rd *Renderer2D) Close() {
	rd.quad.Release()
	rd.spritePipe.Release()
	rd.linePipe.Release()
}

// Stats returns the counters accumulated since the last ResetStats.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// ResetStats starts a new frame of counters.
func (rd *Renderer2D) ResetStats() { rd.stats = Statistics{} }

func (rd *Renderer2D) drawQuad(dst core.Surface, pipe core.Pipeline, quad core.Mesh, matrix mgl32.Mat4, tex core.Texture, tint colors.Color, blend core.BlendMode) error {
	clear(rd.uniforms)
	clear(rd.samplers)
	rd.uniforms["matrix"] = matrix
	rd.uniforms["tint"] = tint.Vec4()
	// Nearest sampling keeps pixel art crisp.
	rd.samplers["tex"] = core.Sampler{Texture: tex, Filter: core.FilterNearest}

	err := dst.Draw(core.DrawCmd{
		Pipe:      pipe,
		Mesh:      quad,
		Primitive: core.PrimitiveTriangles,
		Blend:     blend,
		Uniforms:  rd.uniforms,
		Samplers:  rd.samplers,
	})
	if err != nil {
		return fmt.Errorf("draw sprite: %w", err)
	}
	rd.stats.DrawCalls++
	rd.stats.QuadCount++
	return nil
}

func (rd *Renderer2D) drawLine(dst core.Surface, pipe core.Pipeline, mesh core.Mesh, matrix mgl32.Mat4, color colors.Color) error {
	clear(rd.uniforms)
	rd.uniforms["matrix"] = matrix
	rd.uniforms["line_color"] = color.Vec4()

	err := dst.Draw(core.DrawCmd{
		Pipe:      pipe,
		Mesh:      mesh,
		Primitive: core.PrimitiveLines,
		Blend:     core.BlendAlpha,
		Uniforms:  rd.uniforms,
	})
	if err != nil {
		return fmt.Errorf("draw line: %w", err)
	}
	rd.stats.DrawCalls++
	rd.stats.LineCount++
	return nil
}
