package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/core"
)

// UniformSource fills the scalar uniforms of the composite pass.
type UniformSource interface {
	SetUniforms(dst map[string]any)
}

// Params are the scalar inputs of DefaultFragmentShader.
type Params struct {
	Ambient float32
}

func (p Params) SetUniforms(dst map[string]any) {
	dst["ambient"] = p.Ambient
}

// CompositeInput is everything a composite function may bind.
type CompositeInput[S StepKind, P any] struct {
	Targets RenderTargets[S]
	Params  P
	Quad    core.Mesh
	Program core.Pipeline
}

// CompositeFunc issues the final draw combining all step buffers into dst.
type CompositeFunc[S StepKind, P any] func(dst core.Surface, in CompositeInput[S, P]) error

// DefaultComposite binds every step's buffer under its sampler name, adds the
// params and a "resolution" uniform, and draws one alpha-blended full-screen
// quad.
func DefaultComposite[S SampledStep, P UniformSource](dst core.Surface, in CompositeInput[S, P]) error {
	uniforms := make(map[string]any, 4)
	in.Params.SetUniforms(uniforms)
	w, h := in.Targets.Size()
	uniforms["resolution"] = mgl32.Vec2{float32(w), float32(h)}

	steps := in.Targets.Steps()
	samplers := make(map[string]core.Sampler, len(steps))
	for _, step := range steps {
		samplers[step.SamplerName()] = core.Sampler{
			Texture: in.Targets.Texture(step),
			Filter:  core.FilterNearest,
		}
	}

	return dst.Draw(core.DrawCmd{
		Pipe:      in.Program,
		Mesh:      in.Quad,
		Primitive: core.PrimitiveTriangles,
		Blend:     core.BlendAlpha,
		Uniforms:  uniforms,
		Samplers:  samplers,
	})
}
