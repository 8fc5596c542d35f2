package hull

import (
	"sort"

	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// projPoint is a point projected into a 2D basis, paired with its index in
// the originating 3D point slice.
type projPoint struct {
	p   vecmath.Vec2
	idx int
}

// coplanarFallback handles degenerate inputs (fewer than 4 points, or a
// point set that stays coplanar/collinear through every perturbation
// attempt): it projects onto the set's best-fit plane, computes a 2D
// convex hull via gift wrapping (Jarvis march), fan-triangulates the
// result, and lifts it back into 3D. If even that degenerates (all points
// collinear or identical), it soft-fails to original (a clone of the
// caller's input mesh) when one was supplied, or else to a bare
// point-cloud mesh, rather than panicking.
func coplanarFallback(points []vecmath.Vec3, original *meshkit.Mesh) *meshkit.Mesh {
	unique := dedupPoints(points)
	if len(unique) < 3 {
		return passthroughMesh(points, original)
	}

	origin, u, v, ok := bestFitBasis(unique)
	if !ok {
		return passthroughMesh(points, original)
	}

	proj := make([]projPoint, len(unique))
	for i, p := range unique {
		rel := p.Sub(origin)
		proj[i] = projPoint{vecmath.Vec2{X: rel.Dot(u), Y: rel.Dot(v)}, i}
	}

	hullIdx := giftWrap2D(proj)
	if len(hullIdx) < 3 {
		return passthroughMesh(points, original)
	}

	m := meshkit.New()
	for i := 1; i+1 < len(hullIdx); i++ {
		m.AddTriangle(unique[hullIdx[0]], unique[hullIdx[i]], unique[hullIdx[i+1]])
	}
	if m.IsEmpty() {
		return passthroughMesh(points, original)
	}
	return m
}

// passthroughMesh is the final give-up path: a clone of original if the
// caller had one, or else a triangle-less point cloud built from points.
func passthroughMesh(points []vecmath.Vec3, original *meshkit.Mesh) *meshkit.Mesh {
	if original != nil {
		return original.Clone()
	}
	m := meshkit.New()
	m.Vertices = append([]vecmath.Vec3(nil), points...)
	m.Normals = make([]vecmath.Vec3, len(points))
	m.RecomputeBounds()
	return m
}

// bestFitBasis picks an origin and two orthonormal axes spanning the plane
// that best fits points (here, simply the plane of the first three
// non-collinear points — sufficient since this path only runs on inputs
// already known to be coplanar).
func bestFitBasis(points []vecmath.Vec3) (origin, u, v vecmath.Vec3, ok bool) {
	origin = points[0]
	for i := 1; i+1 < len(points); i++ {
		e1 := points[i].Sub(origin)
		for j := i + 1; j < len(points); j++ {
			e2 := points[j].Sub(origin)
			n := e1.Cross(e2)
			if n.Length() > 1e-9 {
				u = e1.Normalize()
				v = n.Normalize().Cross(u)
				return origin, u, v, true
			}
		}
	}
	return origin, u, v, false
}

// giftWrap2D computes the 2D convex hull of proj via Jarvis march, returning
// indices into the originating 3D point slice.
func giftWrap2D(proj []projPoint) []int {
	n := len(proj)
	sort.Slice(proj, func(i, j int) bool {
		if proj[i].p.X != proj[j].p.X {
			return proj[i].p.X < proj[j].p.X
		}
		return proj[i].p.Y < proj[j].p.Y
	})

	const start = 0
	var hull []int
	current := start
	for {
		hull = append(hull, proj[current].idx)
		next := (current + 1) % n
		for i := 0; i < n; i++ {
			if i == current {
				continue
			}
			cross := proj[next].p.Sub(proj[current].p).Cross(proj[i].p.Sub(proj[current].p))
			if cross < 0 {
				next = i
			}
		}
		current = next
		if current == start {
			break
		}
		if len(hull) > n {
			break // safety valve against pathological float ties
		}
	}
	return hull
}
