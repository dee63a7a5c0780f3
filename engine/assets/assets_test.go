package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hubastard/glint/engine/core"
	"github.com/hubastard/glint/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "textures"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	prev := Root
	Root = dir
	t.Cleanup(func() { Root = prev })
	return dir
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadImageConvertsToPackedRGBA(t *testing.T) {
	dir := withRoot(t)
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(2, 1, color.NRGBA{B: 255, A: 255})
	writePNG(t, filepath.Join(dir, "textures", "tiny.png"), src)

	img, err := LoadImage("tiny.png")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Width)
	assert.Equal(t, 2, img.Height)
	require.Len(t, img.Pixels, 3*2*4)
	assert.Equal(t, []byte{255, 0, 0, 255}, img.Pixels[0:4])
	last := (1*3 + 2) * 4
	assert.Equal(t, []byte{0, 0, 255, 255}, img.Pixels[last:last+4])
}

func TestLoadImageErrors(t *testing.T) {
	dir := withRoot(t)
	_, err := LoadImage("missing.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "textures", "junk.png"), []byte("not an image"), 0o644))
	_, err = LoadImage("junk.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}

func TestLoadTexture(t *testing.T) {
	dir := withRoot(t)
	writePNG(t, filepath.Join(dir, "textures", "p.png"), image.NewRGBA(image.Rect(0, 0, 4, 8)))
	r := gfxtest.New(10, 10)

	ref, err := LoadTexture(r, "p.png")
	require.NoError(t, err)
	require.Len(t, r.Textures, 1)
	desc := r.Textures[0].Desc
	assert.Equal(t, core.TextureSRGBA8, desc.Format)
	assert.Equal(t, core.FilterNearest, desc.MinFilter)
	w, h := ref.Get().Size()
	assert.Equal(t, [2]int{4, 8}, [2]int{w, h})

	ref.Release()
	assert.True(t, r.Textures[0].Destroyed)
}

func TestLoadShader(t *testing.T) {
	dir := withRoot(t)
	path := filepath.Join(dir, "shaders", "glow.frag")
	require.NoError(t, os.WriteFile(path, []byte("#version 330 core\nvoid main() {}\n\x00"), 0o644))

	src, err := LoadShader("glow.frag")
	require.NoError(t, err)
	assert.Equal(t, "#version 330 core\nvoid main() {}\n", src)

	require.NoError(t, os.WriteFile(path, []byte("void main() {}"), 0o644))
	_, err = LoadShader("glow.frag")
	assert.ErrorContains(t, err, "#version")
}
