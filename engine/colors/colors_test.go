package colors

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestWithAlpha(t *testing.T) {
	c := Red.WithAlpha(0.25)
	assert.Equal(t, Color{1, 0, 0, 0.25}, c)
	assert.Equal(t, Color{1, 0, 0, 1}, Red, "the receiver is a copy")
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 0.25}, c.Vec4())
}
