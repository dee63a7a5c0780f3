package renderer2d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/colors"
	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/geom"
	"github.com/hubastard/glint/engine/gfx/transform"
	"github.com/hubastard/glint/engine/scene"
)

// Line is a debug segment between two absolute world positions. It has no
// rotation, scale or origin: only the camera and window scaling apply.
type Line[S comparable] struct {
	rd    *Renderer2D
	pipe  core.Ref[core.Pipeline]
	mesh  core.Ref[core.Mesh]
	start mgl32.Vec2
	end   mgl32.Vec2
	color colors.Color
	only  map[S]bool // nil = every step
}

// NewLine uploads the segment's two vertices. The mesh is dynamic so the
// endpoints can move later.
func NewLine[S comparable](rd *Renderer2D, start, end mgl32.Vec2) (*Line[S], error) {
	m, err := rd.r.CreateMesh(core.MeshDesc{
		Vertices: geom.Segment(start.X(), start.Y(), end.X(), end.Y()),
		Layout:   geom.VertexLayout,
		Dynamic:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("create line mesh: %w", err)
	}
	return &Line[S]{
		rd:    rd,
		pipe:  rd.linePipe.Clone(),
		mesh:  core.NewRef(m, rd.r.DestroyMesh),
		start: start,
		end:   end,
		color: colors.White,
	}, nil
}

// WithColor sets the line color.
func (l *Line[S]) WithColor(c colors.Color) *Line[S] {
	l.color = c
	return l
}

// OnlyIn restricts the line to the given steps.
func (l *Line[S]) OnlyIn(steps ...S) *Line[S] {
	l.only = make(map[S]bool, len(steps))
	for _, s := range steps {
		l.only[s] = true
	}
	return l
}

// SetEndpoints moves the line, re-uploading its two vertices.
func (l *Line[S]) SetEndpoints(start, end mgl32.Vec2) error {
	verts := geom.Segment(start.X(), start.Y(), end.X(), end.Y())
	if err := l.rd.r.UpdateMesh(l.mesh.Get(), verts, nil); err != nil {
		return fmt.Errorf("update line mesh: %w", err)
	}
	l.start, l.end = start, end
	return nil
}

func (l *Line[S]) Endpoints() (mgl32.Vec2, mgl32.Vec2) { return l.start, l.end }
func (l *Line[S]) Color() colors.Color                 { return l.color }

func (l *Line[S]) Release() {
	l.mesh.Release()
	l.pipe.Release()
}

func (l *Line[S]) Draw(dst core.Surface, step S, cam *scene.CameraState) error {
	if l.only != nil && !l.only[step] {
		return nil
	}
	w, h := dst.Size()
	if err := transform.CheckTarget(w, h); err != nil {
		return err
	}
	if err := cam.Validate(); err != nil {
		return err
	}
	m := transform.World(cam.Matrix(), float32(w), float32(h))
	return l.rd.drawLine(dst, l.pipe.Get(), l.mesh.Get(), m, l.color)
}

// Grid builds the reference grid: lines every spacing pixels from
// -count*spacing to count*spacing on both axes, axes drawn in white.
func Grid[S comparable](rd *Renderer2D, count int, spacing float32) ([]*Line[S], error) {
	extent := float32(count) * spacing
	lines := make([]*Line[S], 0, 4*count)
	for i := -count; i < count; i++ {
		pos := float32(i) * spacing
		color := colors.GridGray
		if i == 0 {
			color = colors.White
		}
		for _, seg := range [2][2]mgl32.Vec2{
			{{pos, -extent}, {pos, extent}},
			{{-extent, pos}, {extent, pos}},
		} {
			l, err := NewLine[S](rd, seg[0], seg[1])
			if err != nil {
				for _, made := range lines {
					made.Release()
				}
				return nil, err
			}
			lines = append(lines, l.WithColor(color))
		}
	}
	return lines, nil
}
