package render

import (
	"fmt"

	"github.com/hubastard/glint/engine/core"
)

// RenderTargets maps every declared step to its off-screen color buffer.
type RenderTargets[S StepKind] interface {
	// Steps lists the declared steps in declaration order.
	Steps() []S
	// Surface returns a fresh writable view of the step's buffer.
	Surface(step S) core.Surface
	// Texture returns the step's buffer for sampling.
	Texture(step S) core.Texture
	// Size is the resolution shared by all targets.
	Size() (w, h int)
}

// TargetSet owns one render target per step, all at the same resolution.
type TargetSet[S StepKind] struct {
	r       core.Renderer
	steps   []S
	targets map[S]core.RenderTarget
	w, h    int
}

var _ RenderTargets[Step] = (*TargetSet[Step])(nil)

func newTargetSet[S StepKind](r core.Renderer, steps []S, w, h int, format core.TextureFormat) (*TargetSet[S], error) {
	ts := &TargetSet[S]{
		r:       r,
		steps:   make([]S, 0, len(steps)),
		targets: make(map[S]core.RenderTarget, len(steps)),
		w:       w,
		h:       h,
	}
	for _, step := range steps {
		if _, dup := ts.targets[step]; dup {
			ts.release()
			return nil, fmt.Errorf("step %v declared twice", step)
		}
		rt, err := r.CreateRenderTarget(core.RenderTargetDesc{Width: w, Height: h, Format: format})
		if err != nil {
			ts.release()
			return nil, fmt.Errorf("failed to allocate target texture for step %v at resolution %dx%d: %w", step, w, h, err)
		}
		ts.steps = append(ts.steps, step)
		ts.targets[step] = rt
	}
	return ts, nil
}

func (ts *TargetSet[S]) Steps() []S {
	out := make([]S, len(ts.steps))
	copy(out, ts.steps)
	return out
}

func (ts *TargetSet[S]) Size() (int, int) { return ts.w, ts.h }

func (ts *TargetSet[S]) Surface(step S) core.Surface {
	return ts.r.SurfaceOf(ts.target(step))
}

func (ts *TargetSet[S]) Texture(step S) core.Texture {
	return ts.target(step).Texture()
}

// target panics for undeclared steps: the set is fixed at construction, so
// asking for anything else is a programming error.
func (ts *TargetSet[S]) target(step S) core.RenderTarget {
	rt, ok := ts.targets[step]
	if !ok {
		panic(fmt.Sprintf("render: step %v is not declared", step))
	}
	return rt
}

func (ts *TargetSet[S]) release() {
	for step, rt := range ts.targets {
		ts.r.DestroyRenderTarget(rt)
		delete(ts.targets, step)
	}
	ts.steps = ts.steps[:0]
}
