// Package render implements multi-step rendering: content is drawn once per
// render step into that step's off-screen buffer, then a composite program
// combines every buffer into the displayed frame.
//
// A frame looks like:
//
//	p.Clear(colors.Transparent)
//	for step, surface := range p.Targets() {
//		// draw everything for step into surface
//	}
//	err := p.DrawToDisplay(r.Screen())
package render

import (
	"errors"
	"fmt"
	"log"

	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/transform"
)

// Config describes a Process. Steps and the composite contract are fixed
// for the life of the process.
type Config[S StepKind, P any] struct {
	Steps         []S
	Width, Height int // resolution of every step buffer
	Format        core.TextureFormat
	Params        P

	// FragmentSource is the composite fragment program. Its sampler and
	// uniform names must match what Composite binds; a mismatch is reported
	// by the first DrawToDisplay.
	FragmentSource string
	Composite      CompositeFunc[S, P]
}

// Process owns the step buffers, the full-screen program and the shared quad.
type Process[S StepKind, P any] struct {
	r         core.Renderer
	targets   *TargetSet[S]
	params    P
	quad      core.Ref[core.Mesh]
	program   core.Ref[core.Pipeline]
	composite CompositeFunc[S, P]
	format    core.TextureFormat
}

// New allocates one buffer per step and compiles the composite program. Any
// allocation or compile failure releases what was already created and is
// returned: a process is never partially initialized.
func New[S StepKind, P any](r core.Renderer, quad core.Ref[core.Mesh], cfg Config[S, P]) (*Process[S, P], error) {
	if cfg.Composite == nil {
		return nil, errors.New("render: composite function is required")
	}
	if err := transform.CheckTarget(cfg.Width, cfg.Height); err != nil {
		return nil, fmt.Errorf("render: invalid resolution %dx%d: %w", cfg.Width, cfg.Height, err)
	}

	targets, err := newTargetSet(r, cfg.Steps, cfg.Width, cfg.Height, cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	prog, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   CompositeVertexShader,
		FragmentSource: cfg.FragmentSource,
		Blend:          true,
	})
	if err != nil {
		targets.release()
		return nil, fmt.Errorf("render: failed to compile composite shader: %w", err)
	}

	log.Printf("render: %d steps at %dx%d", len(cfg.Steps), cfg.Width, cfg.Height)
	return &Process[S, P]{
		r:         r,
		targets:   targets,
		params:    cfg.Params,
		quad:      quad.Clone(),
		program:   core.NewRef(prog, r.DestroyPipeline),
		composite: cfg.Composite,
		format:    cfg.Format,
	}, nil
}

// Steps returns the declared steps in declaration order.
func (p *Process[S, P]) Steps() []S { return p.targets.Steps() }

// RenderTargets exposes the step buffers.
func (p *Process[S, P]) RenderTargets() RenderTargets[S] { return p.targets }

// Size returns the step buffer resolution.
func (p *Process[S, P]) Size() (int, int) { return p.targets.Size() }

// Params returns the composite params for in-place changes.
func (p *Process[S, P]) Params() *P { return &p.params }

// Targets returns one fresh writable surface per declared step. Surfaces are
// valid for the current frame only.
func (p *Process[S, P]) Targets() map[S]core.Surface {
	out := make(map[S]core.Surface, len(p.targets.steps))
	for _, step := range p.targets.steps {
		out[step] = p.targets.Surface(step)
	}
	return out
}

// Clear clears every step buffer to c.
func (p *Process[S, P]) Clear(c colors.Color) {
	for _, step := range p.targets.steps {
		p.targets.Surface(step).Clear(c)
	}
}

// DrawToDisplay composites every step buffer into dst. It only reads the
// buffers, so calling it again without redrawing yields the same image.
func (p *Process[S, P]) DrawToDisplay(dst core.Surface) error {
	err := p.composite(dst, CompositeInput[S, P]{
		Targets: p.targets,
		Params:  p.params,
		Quad:    p.quad.Get(),
		Program: p.program.Get(),
	})
	if err != nil {
		return fmt.Errorf("render: composite: %w", err)
	}
	return nil
}

// Frame runs a whole frame: clear all buffers, call draw once per step in
// declaration order, then composite into dst.
func (p *Process[S, P]) Frame(dst core.Surface, bg colors.Color, draw func(step S, surface core.Surface) error) error {
	p.Clear(bg)
	for _, step := range p.targets.steps {
		if err := draw(step, p.targets.Surface(step)); err != nil {
			return fmt.Errorf("render: draw step %v: %w", step, err)
		}
	}
	return p.DrawToDisplay(dst)
}

// Resize reallocates every step buffer at w×h. On failure the current
// buffers are kept.
func (p *Process[S, P]) Resize(w, h int) error {
	if err := transform.CheckTarget(w, h); err != nil {
		return fmt.Errorf("render: invalid resolution %dx%d: %w", w, h, err)
	}
	if cw, ch := p.targets.Size(); cw == w && ch == h {
		return nil
	}
	next, err := newTargetSet(p.r, p.targets.steps, w, h, p.format)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	p.targets.release()
	p.targets = next
	return nil
}

// Close releases the step buffers, the program and the process's quad
// reference.
func (p *Process[S, P]) Close() {
	p.targets.release()
	p.program.Release()
	p.quad.Release()
}
