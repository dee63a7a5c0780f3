package main

import (
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/assets"
	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/renderer2d"
	"github.com/hubastard/glint/engine/render"
	"github.com/hubastard/glint/engine/scene"
)

const spinSpeed = 0.15 // rad/s

// demoScene is a grid with one sprite glued to the cursor. A halo adds
// light around the sprite in the emissive step, and a tether line runs from
// the world origin to the sprite.
type demoScene struct {
	cam    *scene.CameraState
	ctrl   *scene.OrthoController2D
	grid   []*renderer2d.Line[render.Step]
	sprite *renderer2d.Sprite[render.Step]
	halo   *renderer2d.Sprite[render.Step]
	tether *renderer2d.Line[render.Step]
	items  []renderer2d.Drawable[render.Step]
}

func newDemoScene(r core.Renderer, rd *renderer2d.Renderer2D) (*demoScene, error) {
	grid, err := renderer2d.Grid[render.Step](rd, 15, 100)
	if err != nil {
		return nil, err
	}

	diffuse, err := assets.LoadTexture(r, "sprite.png")
	if err != nil {
		log.Printf("sandbox: %v, using a generated texture", err)
		if diffuse, err = checkerTexture(r, 64, 8); err != nil {
			releaseAll(grid)
			return nil, err
		}
	}
	defer diffuse.Release()
	glow, err := glowTexture(r, 64)
	if err != nil {
		releaseAll(grid)
		return nil, err
	}
	defer glow.Release()

	tether, err := renderer2d.NewLine[render.Step](rd, mgl32.Vec2{}, mgl32.Vec2{})
	if err != nil {
		releaseAll(grid)
		return nil, err
	}

	s := &demoScene{
		cam:  scene.NewCameraState(),
		grid: grid,
		sprite: renderer2d.NewSprite[render.Step](rd).
			Bind(render.Diffuse, diffuse).
			Bind(render.Emissive, glow),
		halo:   renderer2d.NewSprite[render.Step](rd).Bind(render.Emissive, glow),
		tether: tether.WithColor(colors.Yellow.WithAlpha(0.6)).OnlyIn(render.Emissive),
	}
	s.ctrl = scene.NewOrthoController2D(s.cam)
	s.sprite.SetOrigin(mgl32.Vec2{0.5, 0.5})
	s.halo.SetOrigin(mgl32.Vec2{0.5, 0.5})
	s.halo.SetScale(mgl32.Vec2{3, 3})
	s.halo.SetBlend(core.BlendAdditive)
	s.halo.SetTint(colors.White.WithAlpha(0.35))
	if err := s.place(mgl32.Vec2{100, 100}); err != nil {
		s.release()
		return nil, err
	}

	for _, l := range grid {
		l.OnlyIn(render.Diffuse)
		s.items = append(s.items, l)
	}
	s.items = append(s.items, s.tether, s.halo, s.sprite)
	return s, nil
}

// place moves the sprite, its halo and the tether end to pos.
func (s *demoScene) place(pos mgl32.Vec2) error {
	s.sprite.SetPosition(pos)
	s.halo.SetPosition(pos)
	return s.tether.SetEndpoints(mgl32.Vec2{}, pos)
}

func (s *demoScene) update(e *core.Engine, dt float32, targetW, targetH int) error {
	s.ctrl.Update(e.Input, dt)
	s.sprite.SetAngle(s.sprite.Angle() + spinSpeed*dt)

	// Cursor events are in window coordinates, not framebuffer pixels.
	x, y := e.Input.Mouse()
	w, h := e.Window.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	return s.place(cursorToWorld(x, y, w, h, targetW, targetH, s.cam))
}

func (s *demoScene) resetCamera() {
	s.cam.SetPosition(mgl32.Vec2{})
	s.cam.SetZoom(1)
}

func (s *demoScene) release() {
	releaseAll(s.grid)
	s.tether.Release()
	s.halo.Release()
	s.sprite.Release()
}

func releaseAll(lines []*renderer2d.Line[render.Step]) {
	for _, l := range lines {
		l.Release()
	}
}

// cursorToWorld maps a window cursor position (top-left origin) to the
// target pixel space sprites are placed in, undoing the camera.
func cursorToWorld(x, y float64, winW, winH, targetW, targetH int, cam *scene.CameraState) mgl32.Vec2 {
	ndc := mgl32.Vec2{
		float32(2*x/float64(winW) - 1),
		float32(1 - 2*y/float64(winH)),
	}
	v := ndc.Mul(1 / cam.Zoom()).Add(cam.Position())
	return mgl32.Vec2{v.X() * float32(targetW) / 2, v.Y() * float32(targetH) / 2}
}

func checkerTexture(r core.Renderer, size, cell int) (core.Ref[core.Texture], error) {
	px := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			v := byte(90)
			if (x/cell+y/cell)%2 == 0 {
				v = 220
			}
			px[i], px[i+1], px[i+2], px[i+3] = v, v, v, 255
		}
	}
	return uploadRGBA(r, size, px)
}

// glowTexture is a soft radial falloff, bright in the middle.
func glowTexture(r core.Renderer, size int) (core.Ref[core.Texture], error) {
	px := make([]byte, size*size*4)
	half := float32(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math32.Hypot(float32(x)+0.5-half, float32(y)+0.5-half) / half
			a := math32.Max(0, 1-d)
			a *= a
			i := (y*size + x) * 4
			px[i], px[i+1], px[i+2], px[i+3] = 255, byte(200*a), byte(80*a), byte(255*a)
		}
	}
	return uploadRGBA(r, size, px)
}

func uploadRGBA(r core.Renderer, size int, px []byte) (core.Ref[core.Texture], error) {
	tex, err := r.CreateTexture(core.TextureDesc{
		Width:     size,
		Height:    size,
		Format:    core.TextureSRGBA8,
		Pixels:    px,
		MinFilter: core.FilterNearest,
		MagFilter: core.FilterNearest,
	})
	if err != nil {
		return core.Ref[core.Texture]{}, err
	}
	return core.NewRef(tex, r.DestroyTexture), nil
}
