package renderer2d

import (
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/scene"
)

// Drawable renders itself into dst for one render step. Objects that do not
// take part in a step return nil without drawing.
type Drawable[S comparable] interface {
	Draw(dst core.Surface, step S, cam *scene.CameraState) error
}

// DrawAll draws every item for the step, stopping at the first error.
func DrawAll[S comparable](dst core.Surface, step S, cam *scene.CameraState, items ...Drawable[S]) error {
	for _, d := range items {
		if err := d.Draw(dst, step, cam); err != nil {
			return err
		}
	}
	return nil
}
