package assets

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hubastard/glint/engine/core"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Root is the directory textures and shaders are resolved against.
var Root = "assets"

// Image is a decoded texture: tightly packed RGBA8, row-major, top-left
// origin.
type Image struct {
	Width, Height int
	Pixels        []byte
}

// LoadImage decodes a PNG, BMP or WebP file under Root/textures.
func LoadImage(relPath string) (Image, error) {
	path := filepath.Join(Root, "textures", relPath)
	f, err := os.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Image{}, fmt.Errorf("decode image %q: %w", path, err)
	}
	rgba := imageToRGBA(img)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if w == 0 || h == 0 {
		return Image{}, fmt.Errorf("decode %s %q: empty image", format, path)
	}
	return Image{Width: w, Height: h, Pixels: rgba.Pix}, nil
}

// LoadTexture uploads an image as an sRGB texture sampled with nearest
// filtering. The returned reference owns the texture.
func LoadTexture(r core.Renderer, relPath string) (core.Ref[core.Texture], error) {
	img, err := LoadImage(relPath)
	if err != nil {
		return core.Ref[core.Texture]{}, err
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width:     img.Width,
		Height:    img.Height,
		Format:    core.TextureSRGBA8,
		Pixels:    img.Pixels,
		MinFilter: core.FilterNearest,
		MagFilter: core.FilterNearest,
	})
	if err != nil {
		return core.Ref[core.Texture]{}, fmt.Errorf("upload %q: %w", relPath, err)
	}
	return core.NewRef(tex, r.DestroyTexture), nil
}

// imageToRGBA returns img as an RGBA image whose Pix has stride 4*width.
func imageToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if m, ok := img.(*image.RGBA); ok && m.Stride == b.Dx()*4 && b.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
