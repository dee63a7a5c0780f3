package scene

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateZoom is returned by Validate when the view matrix would not be
// invertible.
var ErrDegenerateZoom = errors.New("camera zoom must be finite and non-zero")

// CameraState is the single active 2D camera: a world position and a zoom
// factor (1 = no scaling). It is owned by the caller and read by every draw.
type CameraState struct {
	position mgl32.Vec2
	zoom     float32
}

func NewCameraState() *CameraState {
	return &CameraState{zoom: 1}
}

func (c *CameraState) SetPosition(p mgl32.Vec2) { c.position = p }
func (c *CameraState) SetZoom(z float32)        { c.zoom = z }
func (c *CameraState) Move(dx, dy float32)      { c.position = c.position.Add(mgl32.Vec2{dx, dy}) }

func (c *CameraState) Position() mgl32.Vec2 { return c.position }
func (c *CameraState) Zoom() float32        { return c.zoom }

// Matrix returns the view matrix: X/Y scaled by zoom, then translated by the
// zoom-scaled negative position, so the camera position always maps to the
// origin and panning speed does not depend on zoom.
func (c *CameraState) Matrix() mgl32.Mat4 {
	offset := c.position.Mul(-c.zoom)
	return mgl32.Translate3D(offset.X(), offset.Y(), 0).Mul4(mgl32.Scale3D(c.zoom, c.zoom, 1))
}

// Validate reports whether Matrix is usable.
func (c *CameraState) Validate() error {
	z := c.zoom
	if z == 0 || math32.IsNaN(z) || math32.IsInf(z, 0) {
		return ErrDegenerateZoom
	}
	return nil
}
