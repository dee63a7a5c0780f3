package glbackend

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/glint/engine/colors"
)

// setUniform uploads v to loc on the program in use.
func setUniform(loc int32, v any) error {
	switch v := v.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case int32:
		gl.Uniform1i(loc, v)
	case int:
		gl.Uniform1i(loc, int32(v))
	case mgl32.Vec2:
		gl.Uniform2f(loc, v[0], v[1])
	case [2]float32:
		gl.Uniform2f(loc, v[0], v[1])
	case mgl32.Vec4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case colors.Color:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case mgl32.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		return fmt.Errorf("unsupported uniform type %T", v)
	}
	return nil
}
