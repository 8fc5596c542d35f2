// Package meshkit implements the indexed-triangle mesh data model shared by
// the whole engine: vertex/normal/index arrays, normal generation (flat and
// smoothed), degenerate-triangle filtering, affine transform application,
// and JSON (de)serialization of the host-facing wire form.
package meshkit

import "github.com/chazu/csgforge/pkg/vecmath"

// Degenerate-triangle thresholds: a triangle whose normal's pre-normalize
// cross product or computed area falls below these is dropped rather than
// contaminating downstream normal/area math with near-zero vectors.
const (
	minCrossLength = 1e-12
	minTriangleArea = 1e-8
)

// Mesh is an indexed triangle mesh: len(Indices) % 3 == 0, len(Normals) ==
// len(Vertices), and Bounds == vecmath.BoundsOf(Vertices).
type Mesh struct {
	Vertices []vecmath.Vec3
	Normals  []vecmath.Vec3
	Indices  []uint32
	Bounds   vecmath.Bounds
}

func New() *Mesh {
	return &Mesh{Bounds: vecmath.EmptyBounds()}
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }
func (m *Mesh) VertexCount() int   { return len(m.Vertices) }
func (m *Mesh) IsEmpty() bool      { return len(m.Indices) == 0 }

// RecomputeBounds recomputes Bounds from Vertices; call after any direct
// mutation of Vertices that does not go through Transform.
func (m *Mesh) RecomputeBounds() {
	m.Bounds = vecmath.BoundsOf(m.Vertices)
}

// Transform applies an affine matrix to every vertex and transports normals
// through the inverse-transpose of the linear part, per spec's normal
// transport rule for non-uniform scale.
func (m *Mesh) Transform(mat vecmath.Mat4) *Mesh {
	out := &Mesh{
		Vertices: make([]vecmath.Vec3, len(m.Vertices)),
		Normals:  make([]vecmath.Vec3, len(m.Normals)),
		Indices:  append([]uint32(nil), m.Indices...),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = mat.TransformPoint(v)
	}
	nm := mat.NormalMatrix()
	for i, n := range m.Normals {
		out.Normals[i] = nm.TransformVector(n).Normalize()
	}
	out.RecomputeBounds()
	return out
}

// AddTriangle appends a triangle given three positions and a shared face
// normal, duplicating vertices (flat shading). Triangles whose cross
// product is too small, or whose area is below minTriangleArea, are
// silently dropped rather than poisoning downstream BSP/hull math.
func (m *Mesh) AddTriangle(a, b, c vecmath.Vec3) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	cross := e1.Cross(e2)
	crossLen := cross.Length()
	if crossLen < minCrossLength {
		return
	}
	area := crossLen * 0.5
	if area < minTriangleArea {
		return
	}
	normal := cross.Scale(1 / crossLen)

	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, a, b, c)
	m.Normals = append(m.Normals, normal, normal, normal)
	m.Indices = append(m.Indices, base, base+1, base+2)
	m.Bounds = m.Bounds.ExpandPoint(a).ExpandPoint(b).ExpandPoint(c)
}

// Smoothed returns a copy of m with per-vertex averaged, renormalized
// normals instead of flat per-face normals. Vertices are first welded by
// exact position so that shared corners accumulate contributions from every
// adjacent face.
func (m *Mesh) Smoothed() *Mesh {
	type key struct{ x, y, z int64 }
	quantize := func(v vecmath.Vec3) key {
		const scale = 1e6
		return key{int64(v.X * scale), int64(v.Y * scale), int64(v.Z * scale)}
	}

	weldIndex := make(map[key]int, len(m.Vertices))
	weldedVerts := make([]vecmath.Vec3, 0, len(m.Vertices))
	accumNormal := make([]vecmath.Vec3, 0, len(m.Vertices))
	remap := make([]int, len(m.Vertices))

	for i, v := range m.Vertices {
		k := quantize(v)
		idx, ok := weldIndex[k]
		if !ok {
			idx = len(weldedVerts)
			weldIndex[k] = idx
			weldedVerts = append(weldedVerts, v)
			accumNormal = append(accumNormal, vecmath.Vec3{})
		}
		remap[i] = idx
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		a, b, c := m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]
		faceNormal := b.Sub(a).Cross(c.Sub(a))
		wa, wb, wc := remap[ia], remap[ib], remap[ic]
		accumNormal[wa] = accumNormal[wa].Add(faceNormal)
		accumNormal[wb] = accumNormal[wb].Add(faceNormal)
		accumNormal[wc] = accumNormal[wc].Add(faceNormal)
	}
	for i := range accumNormal {
		accumNormal[i] = accumNormal[i].Normalize()
	}

	out := &Mesh{
		Vertices: weldedVerts,
		Normals:  accumNormal,
		Indices:  make([]uint32, len(m.Indices)),
	}
	for t, idx := range m.Indices {
		out.Indices[t] = uint32(remap[idx])
	}
	out.RecomputeBounds()
	return out
}

// Merge concatenates other's triangles onto m (used for grouping/union-lite).
func (m *Mesh) Merge(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	m.Normals = append(m.Normals, other.Normals...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, idx+base)
	}
	m.Bounds = m.Bounds.Union(other.Bounds)
}

// AllPoints returns every distinct vertex position, for hull/Minkowski input.
func (m *Mesh) AllPoints() []vecmath.Vec3 {
	return append([]vecmath.Vec3(nil), m.Vertices...)
}

// Clone returns a deep copy of m, safe for a caller to return as-is or
// mutate independently of the original.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]vecmath.Vec3(nil), m.Vertices...),
		Normals:  append([]vecmath.Vec3(nil), m.Normals...),
		Indices:  append([]uint32(nil), m.Indices...),
		Bounds:   m.Bounds,
	}
}
