package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/geom"
	"github.com/hubastard/glint/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefault(t *testing.T, r *gfxtest.Renderer, steps []Step) *Process[Step, Params] {
	t.Helper()
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)
	t.Cleanup(quad.Release)

	p, err := New(r, quad, Config[Step, Params]{
		Steps:          steps,
		Width:          64,
		Height:         32,
		Params:         Params{Ambient: 0.25},
		FragmentSource: DefaultFragmentShader,
		Composite:      DefaultComposite[Step, Params],
	})
	require.NoError(t, err)
	return p
}

func surfaceName(t *testing.T, s core.Surface) string {
	t.Helper()
	fs, ok := s.(*gfxtest.Surface)
	require.True(t, ok)
	return fs.Name()
}

func TestTargetsOnePerDeclaredStep(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())

	assert.Len(t, r.Targets, 2)
	assert.Equal(t, []Step{Diffuse, Emissive}, p.Steps())

	targets := p.Targets()
	require.Len(t, targets, 2)
	names := map[string]bool{}
	for step, s := range targets {
		w, h := s.Size()
		assert.Equal(t, 64, w, "step %v", step)
		assert.Equal(t, 32, h, "step %v", step)
		names[surfaceName(t, s)] = true
	}
	assert.Len(t, names, 2, "steps must not share a buffer")

	// A new frame hands out new views of the same buffers.
	again := p.Targets()
	for step := range targets {
		assert.NotSame(t, targets[step], again[step])
		assert.Equal(t, surfaceName(t, targets[step]), surfaceName(t, again[step]))
	}
}

func TestEmptyStepSetStillComposites(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, nil)

	assert.Empty(t, p.Targets())
	assert.Empty(t, r.Targets)

	require.NoError(t, p.DrawToDisplay(r.Screen()))
	draws := r.DrawsOn("screen")
	require.Len(t, draws, 1)
	assert.Empty(t, draws[0].Samplers)
	assert.Equal(t, float32(0.25), draws[0].Uniforms["ambient"])
	assert.Equal(t, mgl32.Vec2{64, 32}, draws[0].Uniforms["resolution"])
}

func TestDefaultCompositeBindsEveryStep(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())

	require.NoError(t, p.DrawToDisplay(r.Screen()))
	draws := r.DrawsOn("screen")
	require.Len(t, draws, 1)

	cmd := draws[0]
	assert.Equal(t, core.BlendAlpha, cmd.Blend)
	assert.Equal(t, core.PrimitiveTriangles, cmd.Primitive)
	assert.Same(t, r.Meshes[0], cmd.Mesh)
	require.Len(t, cmd.Samplers, 2)
	assert.Same(t, r.Targets[0].Tex, cmd.Samplers["diffuse_texture"].Texture)
	assert.Same(t, r.Targets[1].Tex, cmd.Samplers["emissive_texture"].Texture)
}

func TestDrawToDisplayIsIdempotent(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())

	require.NoError(t, p.DrawToDisplay(r.Screen()))
	require.NoError(t, p.DrawToDisplay(r.Screen()))

	draws := r.DrawsOn("screen")
	require.Len(t, draws, 2)
	assert.Equal(t, draws[0], draws[1])
}

func TestParamsChangesReachComposite(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())

	p.Params().Ambient = 0.75
	require.NoError(t, p.DrawToDisplay(r.Screen()))
	assert.Equal(t, float32(0.75), r.DrawsOn("screen")[0].Uniforms["ambient"])
}

func TestUndeclaredStepPanics(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, []Step{Diffuse})

	assert.Panics(t, func() { p.RenderTargets().Surface(Emissive) })
	assert.Panics(t, func() { p.RenderTargets().Texture(Step(9)) })
	assert.NotPanics(t, func() { p.RenderTargets().Surface(Diffuse) })
}

func TestTargetAllocationFailureReleasesEverything(t *testing.T) {
	r := gfxtest.New(640, 480)
	r.FailTargetAt = 2
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)

	_, err = New(r, quad, Config[Step, Params]{
		Steps:          Steps(),
		Width:          64,
		Height:         32,
		FragmentSource: DefaultFragmentShader,
		Composite:      DefaultComposite[Step, Params],
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, gfxtest.ErrInjected)
	assert.Contains(t, err.Error(), "step Emissive at resolution 64x32")

	require.Len(t, r.Targets, 1)
	assert.True(t, r.Targets[0].Destroyed)
	assert.Empty(t, r.Pipelines)
	assert.Equal(t, 1, quad.Holders())
}

func TestCompileFailureReleasesTargets(t *testing.T) {
	r := gfxtest.New(640, 480)
	r.FailPipelines = true
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)

	_, err = New(r, quad, Config[Step, Params]{
		Steps:          Steps(),
		Width:          64,
		Height:         32,
		FragmentSource: DefaultFragmentShader,
		Composite:      DefaultComposite[Step, Params],
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile composite shader")
	for _, rt := range r.Targets {
		assert.True(t, rt.Destroyed)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	r := gfxtest.New(640, 480)
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)

	base := Config[Step, Params]{
		Steps:          Steps(),
		Width:          64,
		Height:         32,
		FragmentSource: DefaultFragmentShader,
		Composite:      DefaultComposite[Step, Params],
	}

	noComposite := base
	noComposite.Composite = nil
	_, err = New(r, quad, noComposite)
	assert.Error(t, err)

	zero := base
	zero.Height = 0
	_, err = New(r, quad, zero)
	assert.Error(t, err)

	dup := base
	dup.Steps = []Step{Diffuse, Emissive, Diffuse}
	_, err = New(r, quad, dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared twice")
	for _, rt := range r.Targets {
		assert.True(t, rt.Destroyed)
	}
}

func TestCompositeNameMismatchSurfacesOnDraw(t *testing.T) {
	r := gfxtest.New(640, 480)
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)

	const diffuseOnly = `
#version 330 core
in vec2 v_tex_coords;
out vec4 color;
uniform sampler2D diffuse_texture;
void main() { color = texture(diffuse_texture, v_tex_coords); }
`
	p, err := New(r, quad, Config[Step, Params]{
		Steps:          Steps(),
		Width:          64,
		Height:         32,
		FragmentSource: diffuseOnly,
		Composite:      DefaultComposite[Step, Params],
	})
	require.NoError(t, err, "construction does not validate names")

	err = p.DrawToDisplay(r.Screen())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emissive_texture")
}

func TestFrameClearsDrawsThenComposites(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())

	var seen []Step
	err := p.Frame(r.Screen(), colors.Transparent, func(step Step, s core.Surface) error {
		seen = append(seen, step)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Step{Diffuse, Emissive}, seen)

	require.Len(t, r.Calls, 3)
	assert.NotNil(t, r.Calls[0].Clear)
	assert.NotNil(t, r.Calls[1].Clear)
	assert.Equal(t, colors.Transparent, *r.Calls[0].Clear)
	assert.Equal(t, "screen", r.Calls[2].Surface)
	assert.NotNil(t, r.Calls[2].Draw)
}

func TestFrameStopsOnDrawError(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())
	boom := errors.New("boom")

	err := p.Frame(r.Screen(), colors.Black, func(step Step, s core.Surface) error {
		if step == Emissive {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "draw step Emissive")
	assert.Empty(t, r.DrawsOn("screen"))
}

func TestResize(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())
	old := append([]*gfxtest.Target(nil), r.Targets...)

	require.NoError(t, p.Resize(64, 32))
	assert.Len(t, r.Targets, 2, "same size keeps the buffers")

	require.NoError(t, p.Resize(128, 96))
	w, h := p.Size()
	assert.Equal(t, 128, w)
	assert.Equal(t, 96, h)
	for _, rt := range old {
		assert.True(t, rt.Destroyed)
	}
	for _, s := range p.Targets() {
		sw, sh := s.Size()
		assert.Equal(t, 128, sw)
		assert.Equal(t, 96, sh)
	}

	assert.Error(t, p.Resize(0, 10))
}

func TestResizeFailureKeepsBuffers(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())
	r.FailTargetAt = 4

	require.Error(t, p.Resize(128, 96))
	w, h := p.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
	assert.False(t, r.Targets[0].Destroyed)
	assert.False(t, r.Targets[1].Destroyed)
	assert.True(t, r.Targets[2].Destroyed)
	assert.NoError(t, p.DrawToDisplay(r.Screen()))
}

func TestCloseReleasesOwnedResources(t *testing.T) {
	r := gfxtest.New(640, 480)
	p := newDefault(t, r, Steps())

	p.Close()
	for _, rt := range r.Targets {
		assert.True(t, rt.Destroyed)
	}
	assert.True(t, r.Pipelines[0].Destroyed)
	assert.False(t, r.Meshes[0].Destroyed, "the caller still holds the quad")
}

func TestCloseTwiceKeepsSharedQuad(t *testing.T) {
	r := gfxtest.New(640, 480)
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)
	p, err := New(r, quad, Config[Step, Params]{
		Steps:          Steps(),
		Width:          8,
		Height:         8,
		FragmentSource: DefaultFragmentShader,
		Composite:      DefaultComposite[Step, Params],
	})
	require.NoError(t, err)

	p.Close()
	p.Close()
	assert.Equal(t, 1, quad.Holders())
	assert.False(t, r.Meshes[0].Destroyed)

	quad.Release()
	assert.True(t, r.Meshes[0].Destroyed)
}

// Process works with any closed step set and composite contract.
type pass int

const (
	passAlbedo pass = iota
	passLight
	passUI
)

func (p pass) String() string { return [...]string{"albedo", "light", "ui"}[p] }

type lightParams struct{ exposure float32 }

func TestCustomStepsAndComposite(t *testing.T) {
	r := gfxtest.New(640, 480)
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)

	var got CompositeInput[pass, lightParams]
	calls := 0
	p, err := New(r, quad, Config[pass, lightParams]{
		Steps:          []pass{passAlbedo, passLight, passUI},
		Width:          10,
		Height:         10,
		Params:         lightParams{exposure: 2},
		FragmentSource: "uniform sampler2D albedo;",
		Composite: func(dst core.Surface, in CompositeInput[pass, lightParams]) error {
			calls++
			got = in
			return dst.Draw(core.DrawCmd{
				Pipe:     in.Program,
				Mesh:     in.Quad,
				Samplers: map[string]core.Sampler{"albedo": {Texture: in.Targets.Texture(passAlbedo)}},
			})
		},
	})
	require.NoError(t, err)

	assert.Len(t, p.Targets(), 3)
	require.NoError(t, p.DrawToDisplay(r.Screen()))
	assert.Equal(t, 1, calls)
	assert.Equal(t, float32(2), got.Params.exposure)
	assert.Equal(t, []pass{passAlbedo, passLight, passUI}, got.Targets.Steps())
	assert.Same(t, r.Pipelines[0], got.Program)
}
