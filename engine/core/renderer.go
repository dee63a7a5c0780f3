package core

import "github.com/hubastard/glint/engine/colors"

// Renderer is the graphics backend. All calls must happen on the thread that
// owns the graphics context.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()

	CreateTexture(desc TextureDesc) (Texture, error)
	CreateRenderTarget(desc RenderTargetDesc) (RenderTarget, error)
	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, verts []float32, inds []uint32) error

	// Screen returns a surface drawing into the default framebuffer.
	Screen() Surface
	// SurfaceOf returns a fresh writable view onto a render target. Views are
	// cheap and are not meant to be kept across frames.
	SurfaceOf(rt RenderTarget) Surface

	DestroyTexture(t Texture)
	DestroyRenderTarget(rt RenderTarget)
	DestroyPipeline(p Pipeline)
	DestroyMesh(m Mesh)

	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
}

// Surface is something a draw call can land on: the screen or the color
// buffer of a render target.
type Surface interface {
	Size() (w, h int)
	Clear(c colors.Color)
	Draw(cmd DrawCmd) error
}

// Opaque GPU handles. Backends define the concrete types.
type (
	Texture interface {
		Size() (w, h int)
	}
	RenderTarget interface {
		Texture() Texture
		Size() (w, h int)
	}
	Pipeline interface{}
	Mesh     interface{}
)

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureSRGBA8
)

type Filter int

const (
	FilterLinear Filter = iota
	FilterNearest
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // tightly packed RGBA8, nil for an empty texture
	MinFilter     Filter
	MagFilter     Filter
}

type RenderTargetDesc struct {
	Width, Height int
	Format        TextureFormat
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int
	Type     AttribType
	Offset   int // bytes
}

type VertexLayout struct {
	Stride     int // bytes
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32 // optional
	Layout   VertexLayout
	Dynamic  bool // updated through Renderer.UpdateMesh
}

type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveLines
)

type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendAlpha
	BlendAdditive
)

// Sampler binds a texture to a named sampler uniform.
type Sampler struct {
	Texture Texture
	Filter  Filter
}

// DrawCmd is a single draw call. Uniform values may be float32, int32,
// mgl32.Vec2/Vec4/Mat4, [2]float32 or colors.Color.
type DrawCmd struct {
	Pipe      Pipeline
	Mesh      Mesh
	Primitive Primitive
	Blend     BlendMode
	Uniforms  map[string]any
	Samplers  map[string]Sampler
}
