// Package geom holds vertex data shared by every renderer: one unit quad,
// built once per context and handed out by reference.
package geom

import (
	"fmt"

	"github.com/hubastard/glint/engine/core"
)

// Vertex: pos2 + uv2 => 4 floats
const VertexStride = 4

var VertexLayout = core.VertexLayout{
	Stride: VertexStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},     // position
		{Location: 1, Size: 2, Type: core.AttribFloat32, Offset: 2 * 4}, // tex_coords
	},
}

// Unit quad covering [0,1]² with matching UVs. Sprites scale it to pixel size,
// the composite pass stretches it over NDC in its vertex shader.
var (
	quadVertices = []float32{
		//  X, Y, U, V
		0, 0, 0, 0,
		1, 0, 1, 0,
		0, 1, 0, 1,
		1, 1, 1, 1,
	}
	quadIndices = []uint32{0, 1, 2, 1, 3, 2}
)

// QuadIndexCount is the number of indices drawn per quad.
const QuadIndexCount = 6

// NewQuad uploads the unit quad. The mesh is destroyed when the last holder
// releases it.
func NewQuad(r core.Renderer) (core.Ref[core.Mesh], error) {
	m, err := r.CreateMesh(core.MeshDesc{
		Vertices: quadVertices,
		Indices:  quadIndices,
		Layout:   VertexLayout,
	})
	if err != nil {
		return core.Ref[core.Mesh]{}, fmt.Errorf("create quad mesh: %w", err)
	}
	return core.NewRef(m, r.DestroyMesh), nil
}

// Segment returns the two vertices of a line from (x0,y0) to (x1,y1).
func Segment(x0, y0, x1, y1 float32) []float32 {
	return []float32{
		x0, y0, 0, 0,
		x1, y1, 1, 0,
	}
}
