package main

import (
	"fmt"
	"time"

	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/renderer2d"
)

const statsInterval = 500 * time.Millisecond

// frameStats shows frame timing and renderer counters in the window title.
type frameStats struct {
	title     string
	lastFrame time.Time
	lastShown time.Time
	frames    int
	elapsed   time.Duration
}

func (s *frameStats) frame(e *core.Engine, st renderer2d.Statistics) {
	now := time.Now()
	if !s.lastFrame.IsZero() {
		s.elapsed += now.Sub(s.lastFrame)
		s.frames++
	}
	s.lastFrame = now
	if s.frames == 0 || now.Sub(s.lastShown) < statsInterval {
		return
	}
	e.Window.SetTitle(s.format(st))
	s.lastShown = now
	s.frames, s.elapsed = 0, 0
}

func (s *frameStats) format(st renderer2d.Statistics) string {
	ms := float64(s.elapsed.Microseconds()) / 1000 / float64(s.frames)
	fps := 0.0
	if ms > 0 {
		fps = 1000 / ms
	}
	return fmt.Sprintf("%s | %.2f ms (%.0f FPS) | draws %d quads %d lines %d verts %d",
		s.title, ms, fps, st.DrawCalls, st.QuadCount, st.LineCount, st.TotalVertexCount())
}
