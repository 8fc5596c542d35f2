package csg

import (
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// MeshToPolygons converts an indexed triangle mesh into a BSP polygon list,
// one polygon per triangle. Degenerate triangles (already filtered by
// meshkit.AddTriangle) are skipped defensively if encountered anyway.
func MeshToPolygons(m *meshkit.Mesh) []Polygon {
	polys := make([]Polygon, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		verts := []vecmath.Vec3{m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]}
		if poly, ok := NewPolygon(verts); ok {
			polys = append(polys, poly)
		}
	}
	return polys
}

// PolygonsToMesh fan-triangulates every polygon (splitPolygon can turn a
// triangle into a quad on one side of a cut, so polygons may have more than
// three vertices) into a flat-shaded mesh.
func PolygonsToMesh(polys []Polygon) *meshkit.Mesh {
	m := meshkit.New()
	for _, poly := range polys {
		if len(poly.Vertices) < 3 {
			continue
		}
		for i := 1; i+1 < len(poly.Vertices); i++ {
			m.AddTriangle(poly.Vertices[0], poly.Vertices[i], poly.Vertices[i+1])
		}
	}
	return m
}
