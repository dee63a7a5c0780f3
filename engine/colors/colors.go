package colors

import "github.com/go-gl/mathgl/mgl32"

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Yellow      = Color{1, 1, 0, 1}
	GridGray    = Color{0.25, 0.25, 0.25, 1}
	Transparent = Color{0, 0, 0, 0}
)

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Vec4 returns the color as a shader vec4 uniform value.
func (c Color) Vec4() mgl32.Vec4 { return mgl32.Vec4(c) }
