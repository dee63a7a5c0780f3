package main

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/assets"
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/geom"
	"github.com/hubastard/glint/engine/gfx/gfxtest"
	"github.com/hubastard/glint/engine/gfx/renderer2d"
	"github.com/hubastard/glint/engine/render"
	"github.com/hubastard/glint/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScene(t *testing.T) (*gfxtest.Renderer, *demoScene) {
	t.Helper()
	prev := assets.Root
	assets.Root = t.TempDir() // no sprite.png: the generated texture is used
	t.Cleanup(func() { assets.Root = prev })

	r := gfxtest.New(800, 600)
	quad, err := geom.NewQuad(r)
	require.NoError(t, err)
	rd, err := renderer2d.New(r, quad)
	require.NoError(t, err)
	s, err := newDemoScene(r, rd)
	require.NoError(t, err)
	t.Cleanup(func() {
		s.release()
		rd.Close()
		quad.Release()
	})
	return r, s
}

func TestDemoSceneSteps(t *testing.T) {
	r, s := newTestScene(t)

	require.NoError(t, renderer2d.DrawAll(r.Screen(), render.Emissive, s.cam, s.items...))
	emissive := r.DrawsOn("screen")
	require.Len(t, emissive, 3, "tether, halo and sprite glow")
	assert.Equal(t, core.PrimitiveLines, emissive[0].Primitive)
	assert.Equal(t, core.BlendAdditive, emissive[1].Blend)
	assert.Equal(t, core.BlendAlpha, emissive[2].Blend)

	r.Reset()
	require.NoError(t, renderer2d.DrawAll(r.Screen(), render.Diffuse, s.cam, s.items...))
	assert.Len(t, r.DrawsOn("screen"), len(s.grid)+1, "grid and sprite")
}

func TestDemoScenePlaceMovesTether(t *testing.T) {
	_, s := newTestScene(t)

	require.NoError(t, s.place(mgl32.Vec2{30, -40}))
	assert.Equal(t, mgl32.Vec2{30, -40}, s.sprite.Position())
	start, end := s.tether.Endpoints()
	assert.Equal(t, mgl32.Vec2{}, start)
	assert.Equal(t, mgl32.Vec2{30, -40}, end)
}

func TestCursorToWorld(t *testing.T) {
	cam := scene.NewCameraState()

	assert.Equal(t, mgl32.Vec2{0, 0}, cursorToWorld(400, 300, 800, 600, 800, 600, cam))
	assert.Equal(t, mgl32.Vec2{400, 300}, cursorToWorld(800, 0, 800, 600, 800, 600, cam))
	assert.Equal(t, mgl32.Vec2{-200, -150}, cursorToWorld(0, 600, 800, 600, 400, 300, cam), "targets smaller than the window")

	cam.SetZoom(2)
	cam.SetPosition(mgl32.Vec2{0.5, 0})
	got := cursorToWorld(400, 300, 800, 600, 800, 600, cam)
	assert.InDelta(t, 200, got.X(), 1e-4)
	assert.InDelta(t, 0, got.Y(), 1e-4)
}

func TestFrameStatsFormat(t *testing.T) {
	s := frameStats{title: "glint", frames: 2, elapsed: 40 * time.Millisecond}
	got := s.format(renderer2d.Statistics{DrawCalls: 3, QuadCount: 1, LineCount: 2})
	assert.Equal(t, "glint | 20.00 ms (50 FPS) | draws 3 quads 1 lines 2 verts 8", got)
}

// hidpiWindow reports a framebuffer twice the size of the window.
type hidpiWindow struct{ core.Window }

func (hidpiWindow) Size() (int, int)            { return 400, 300 }
func (hidpiWindow) FramebufferSize() (int, int) { return 800, 600 }

func TestSceneFollowsCursorInWindowCoordinates(t *testing.T) {
	_, s := newTestScene(t)
	e := &core.Engine{Window: hidpiWindow{}, Input: core.NewInput()}
	e.Input.Handle(core.EventMouseMove{X: 400, Y: 0}) // top-right corner

	require.NoError(t, s.update(e, 0, 800, 600))
	assert.Equal(t, mgl32.Vec2{400, 300}, s.sprite.Position())
}
