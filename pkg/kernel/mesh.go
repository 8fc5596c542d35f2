package kernel

import "github.com/chazu/csgforge/pkg/meshkit"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	NodeName string    `json:"nodeName"` // which design graph node this came from
	NodeID   string    `json:"nodeId"`   // that node's content-addressed ID, for color/metadata lookup
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// FromMeshkit flattens a meshkit.Mesh into the kernel's wire-friendly
// flat-array layout.
func FromMeshkit(m *meshkit.Mesh) *Mesh {
	out := &Mesh{
		Vertices: make([]float32, 0, len(m.Vertices)*3),
		Normals:  make([]float32, 0, len(m.Normals)*3),
		Indices:  make([]uint32, len(m.Indices)),
	}
	for _, v := range m.Vertices {
		out.Vertices = append(out.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, n := range m.Normals {
		out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	copy(out.Indices, m.Indices)
	return out
}
