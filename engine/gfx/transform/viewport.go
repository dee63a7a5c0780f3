// Package transform holds the pure matrix math shared by every drawable:
// viewport scaling and the pixel-space sprite transform.
//
// All matrices are column-major (mgl32) and multiply column vectors.
package transform

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrDegenerateTarget is returned by CheckTarget for surfaces with a zero or
// negative dimension.
var ErrDegenerateTarget = errors.New("target surface has a zero dimension")

// AspectRatio returns w/h. The caller guards h == 0.
func AspectRatio(w, h float32) float32 { return w / h }

// WindowScaling maps pixel coordinates centered on a w×h surface into
// normalized device coordinates: (w/2, h/2) lands on (1, 1).
func WindowScaling(w, h float32) mgl32.Mat4 {
	return mgl32.Scale3D(2/w, 2/h, 1)
}

// World is cam * WindowScaling, the part of the transform shared by sprites
// and lines. Window scaling applies first, so the camera position and zoom
// act on normalized device units of the target.
func World(cam mgl32.Mat4, targetW, targetH float32) mgl32.Mat4 {
	return cam.Mul4(WindowScaling(targetW, targetH))
}

// CheckTarget rejects surfaces that would make WindowScaling divide by zero.
func CheckTarget(w, h int) error {
	if w <= 0 || h <= 0 {
		return ErrDegenerateTarget
	}
	return nil
}
