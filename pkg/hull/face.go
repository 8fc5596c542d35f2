package hull

import "github.com/chazu/csgforge/pkg/vecmath"

// face is one triangular face of the hull under construction: three vertex
// indices into the shared point list, an outward unit normal, the plane
// offset, and its conflict list (input points currently "seeing" this face,
// i.e. in front of its plane by more than eps).
type face struct {
	a, b, c int
	normal  vecmath.Vec3
	offset  float64
	visible []int
	dead    bool
}

func newFace(points []vecmath.Vec3, a, b, c int) face {
	pa, pb, pc := points[a], points[b], points[c]
	n := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize()
	return face{a: a, b: b, c: c, normal: n, offset: n.Dot(pa)}
}

func (f face) distance(p vecmath.Vec3) float64 {
	return f.normal.Dot(p) - f.offset
}

// edge is a directed edge of a face, used for new-face construction
// (directed form fixes winding); canonicalEdge below gives the undirected
// form used for horizon detection.
type edge struct{ u, v int }

func canonicalEdge(u, v int) edge {
	if u < v {
		return edge{u, v}
	}
	return edge{v, u}
}

func (f face) edges() [3]edge {
	return [3]edge{{f.a, f.b}, {f.b, f.c}, {f.c, f.a}}
}
