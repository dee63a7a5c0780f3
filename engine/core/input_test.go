package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputTracksKeysMouseAndScroll(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyW, Down: true})
	in.Handle(EventMouseMove{X: 12, Y: 34})
	in.Handle(EventScroll{Yoff: 1})
	in.Handle(EventScroll{Yoff: 0.5})

	assert.True(t, in.IsKeyDown(KeyW))
	assert.False(t, in.IsKeyDown(KeyA))
	x, y := in.Mouse()
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 34.0, y)
	assert.Equal(t, 1.5, in.TakeScroll())
	assert.Equal(t, 0.0, in.TakeScroll())

	in.Handle(EventKey{Key: KeyW, Down: false})
	assert.False(t, in.IsKeyDown(KeyW))
}
