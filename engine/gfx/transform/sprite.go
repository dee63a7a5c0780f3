package transform

import "github.com/go-gl/mathgl/mgl32"

// SpriteInputs are the per-object transform parameters of a sprite.
type SpriteInputs struct {
	Position    mgl32.Vec2 // world pixels
	Scale       mgl32.Vec2 // multiplier on the texture pixel size
	Angle       float32    // radians, counter-clockwise about Origin
	Origin      mgl32.Vec2 // pivot as a 0..1 fraction of the texture size
	TextureSize mgl32.Vec2 // pixels
}

// Local maps the unit quad into a pixel-sized quad placed in world space:
// translate by -origin, rotate and scale, then translate by position.
func (in SpriteInputs) Local() mgl32.Mat4 {
	localTranslate := mgl32.Translate3D(-in.Origin.X(), -in.Origin.Y(), 0)
	localRotateScale := mgl32.HomogRotate3DZ(in.Angle).Mul4(mgl32.Scale3D(
		in.Scale.X()*in.TextureSize.X(),
		in.Scale.Y()*in.TextureSize.Y(),
		1,
	))
	globalTranslate := mgl32.Translate3D(in.Position.X(), in.Position.Y(), 0)
	return globalTranslate.Mul4(localRotateScale).Mul4(localTranslate)
}

// Sprite returns the full model-view-projection matrix for a sprite:
//
//	camera * window * globalTranslate * localRotateScale * localTranslate
func Sprite(in SpriteInputs, cam mgl32.Mat4, targetW, targetH float32) mgl32.Mat4 {
	return World(cam, targetW, targetH).Mul4(in.Local())
}
