package scene

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/glint/engine/core"
)

// OrthoController2D: WASD pans, the scroll wheel zooms.
type OrthoController2D struct {
	MoveSpeed float32 // normalized screen units per second
	ZoomSpeed float32 // zoom factor per scroll notch
	MinZoom   float32
	MaxZoom   float32
	Camera    *CameraState
}

func NewOrthoController2D(cam *CameraState) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 1,
		ZoomSpeed: 1.2,
		MinZoom:   0.05,
		MaxZoom:   20,
		Camera:    cam,
	}
}

func (cc *OrthoController2D) Update(in *core.Input, dt float32) {
	// Constant on-screen speed regardless of zoom.
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom()

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}

	if notches := float32(in.TakeScroll()); notches != 0 {
		z := cc.Camera.Zoom() * math32.Pow(cc.ZoomSpeed, notches)
		cc.Camera.SetZoom(clamp(z, cc.MinZoom, cc.MaxZoom))
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
