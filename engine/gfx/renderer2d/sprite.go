package renderer2d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/transform"
	"github.com/hubastard/glint/engine/scene"
)

// Sprite is a textured quad with one optional texture per render step.
type Sprite[S comparable] struct {
	rd       *Renderer2D
	quad     core.Ref[core.Mesh]
	pipe     core.Ref[core.Pipeline]
	textures map[S]core.Ref[core.Texture]

	position mgl32.Vec2
	scale    mgl32.Vec2
	angle    float32
	origin   mgl32.Vec2
	tint     colors.Color
	blend    core.BlendMode
}

// NewSprite creates a sprite sharing rd's quad and program. It starts at the
// world origin with unit scale and no textures bound.
func NewSprite[S comparable](rd *Renderer2D) *Sprite[S] {
	return &Sprite[S]{
		rd:       rd,
		quad:     rd.quad.Clone(),
		pipe:     rd.spritePipe.Clone(),
		textures: map[S]core.Ref[core.Texture]{},
		scale:    mgl32.Vec2{1, 1},
		tint:     colors.White,
		blend:    core.BlendAlpha,
	}
}

// Bind sets the texture drawn for step, replacing any previous one.
func (s *Sprite[S]) Bind(step S, tex core.Ref[core.Texture]) *Sprite[S] {
	if old, ok := s.textures[step]; ok {
		old.Release()
	}
	s.textures[step] = tex.Clone()
	return s
}

// Unbind removes the sprite from step.
func (s *Sprite[S]) Unbind(step S) {
	if old, ok := s.textures[step]; ok {
		old.Release()
		delete(s.textures, step)
	}
}

// Release drops every resource reference held by the sprite.
func (s *Sprite[S]) Release() {
	for step, tex := range s.textures {
		tex.Release()
		delete(s.textures, step)
	}
	s.quad.Release()
	s.pipe.Release()
}

func (s *Sprite[S]) SetPosition(p mgl32.Vec2)  { s.position = p }
func (s *Sprite[S]) SetScale(sc mgl32.Vec2)    { s.scale = sc }
func (s *Sprite[S]) SetAngle(rad float32)      { s.angle = rad }
func (s *Sprite[S]) SetOrigin(o mgl32.Vec2)    { s.origin = o }
func (s *Sprite[S]) SetTint(c colors.Color)    { s.tint = c }
func (s *Sprite[S]) SetBlend(b core.BlendMode) { s.blend = b }
func (s *Sprite[S]) Position() mgl32.Vec2      { return s.position }
func (s *Sprite[S]) Angle() float32            { return s.angle }

// Has reports whether the sprite takes part in step.
func (s *Sprite[S]) Has(step S) bool {
	_, ok := s.textures[step]
	return ok
}

// Transform returns the matrix the sprite would be drawn with for the given
// texture and target size.
func (s *Sprite[S]) Transform(tex core.Texture, targetW, targetH int, cam *scene.CameraState) mgl32.Mat4 {
	tw, th := tex.Size()
	in := transform.SpriteInputs{
		Position:    s.position,
		Scale:       s.scale,
		Angle:       s.angle,
		Origin:      s.origin,
		TextureSize: mgl32.Vec2{float32(tw), float32(th)},
	}
	return transform.Sprite(in, cam.Matrix(), float32(targetW), float32(targetH))
}

// Draw renders the sprite's texture for step. A sprite without a texture for
// step draws nothing.
func (s *Sprite[S]) Draw(dst core.Surface, step S, cam *scene.CameraState) error {
	ref, ok := s.textures[step]
	if !ok {
		return nil
	}
	w, h := dst.Size()
	if err := transform.CheckTarget(w, h); err != nil {
		return err
	}
	if err := cam.Validate(); err != nil {
		return err
	}
	tex := ref.Get()
	return s.rd.drawQuad(dst, s.pipe.Get(), s.quad.Get(), s.Transform(tex, w, h, cam), tex, s.tint, s.blend)
}
