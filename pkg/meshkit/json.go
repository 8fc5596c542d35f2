package meshkit

import "github.com/chazu/csgforge/pkg/vecmath"

// WireMesh is the host-facing JSON form: flat float32-precision arrays
// rather than []Vec3, matching kernel.Mesh's wire shape.
type WireMesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	NodeName string    `json:"node_name,omitempty"`
}

func (m *Mesh) ToWire(nodeName string) WireMesh {
	w := WireMesh{
		Vertices: make([]float32, 0, len(m.Vertices)*3),
		Normals:  make([]float32, 0, len(m.Normals)*3),
		Indices:  append([]uint32(nil), m.Indices...),
		NodeName: nodeName,
	}
	for _, v := range m.Vertices {
		w.Vertices = append(w.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	for _, n := range m.Normals {
		w.Normals = append(w.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	return w
}

func FromWire(w WireMesh) *Mesh {
	m := &Mesh{
		Indices: append([]uint32(nil), w.Indices...),
	}
	for i := 0; i+2 < len(w.Vertices); i += 3 {
		m.Vertices = append(m.Vertices, vecmath.Vec3{
			X: float64(w.Vertices[i]), Y: float64(w.Vertices[i+1]), Z: float64(w.Vertices[i+2]),
		})
	}
	for i := 0; i+2 < len(w.Normals); i += 3 {
		m.Normals = append(m.Normals, vecmath.Vec3{
			X: float64(w.Normals[i]), Y: float64(w.Normals[i+1]), Z: float64(w.Normals[i+2]),
		})
	}
	m.RecomputeBounds()
	return m
}
