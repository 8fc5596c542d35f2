package hull

import (
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Compute returns the convex hull of m's vertices as a new mesh. Compute
// never panics: degenerate inputs (fewer than 4 non-coplanar points after
// dedup) fall back through a perturbation retry chain and finally to
// returning a clone of m unchanged, since m is itself valid input geometry.
func Compute(m *meshkit.Mesh) *meshkit.Mesh {
	return computeFrom(m.AllPoints(), m)
}

// ComputePoints returns the convex hull of an arbitrary point set with no
// originating mesh (e.g. points pooled from several meshes for a combined
// hull). The give-up fallback is a degenerate point-cloud mesh, since there
// is no single input mesh to hand back unchanged.
func ComputePoints(points []vecmath.Vec3) *meshkit.Mesh {
	return computeFrom(points, nil)
}

// computeFrom runs the hull algorithm over points, falling back to original
// (if non-nil) or a bare point cloud when the algorithm cannot build a
// valid hull.
func computeFrom(points []vecmath.Vec3, original *meshkit.Mesh) *meshkit.Mesh {
	orig := points
	points = dedupPoints(points)
	if len(points) < 4 {
		return coplanarFallback(orig, original)
	}

	eps := adaptiveEpsilon(points)

	faces, ok := buildTetrahedron(points, eps)
	if !ok {
		// Degenerate point set (coplanar/collinear): try fixed symbolic
		// perturbations before giving up.
		for _, seed := range perturbationSeeds {
			perturbed := perturb(points, seed)
			if f, ok := buildTetrahedron(perturbed, eps); ok {
				faces = f
				points = perturbed
				ok = true
				break
			}
		}
	}
	if !ok {
		return coplanarFallback(orig, original)
	}

	faces = quickhull(points, faces, eps)
	return facesToMesh(points, faces, original)
}

// quickhull is the incremental insertion loop: repeatedly pick the
// conflict point farthest from its face, open a horizon around the set of
// faces it can see, and re-triangulate the horizon into new faces.
// O(n^2) dedup/horizon detection is upgraded to grid-hash dedup and a
// canonical-edge-multiset horizon test.
func quickhull(points []vecmath.Vec3, faces []*face, eps float64) []*face {
	maxIter := len(points) * maxIterationsPerPoint
	for iter := 0; iter < maxIter; iter++ {
		// Find the face with a non-empty conflict list and, within it, the
		// point farthest in front.
		var chosenFace *face
		chosenPoint := -1
		bestDist := eps
		for _, f := range faces {
			if f.dead || len(f.visible) == 0 {
				continue
			}
			for _, pi := range f.visible {
				d := f.distance(points[pi])
				if d > bestDist {
					bestDist = d
					chosenFace = f
					chosenPoint = pi
				}
			}
		}
		if chosenFace == nil {
			break // no more points outside any face: hull complete
		}

		apex := points[chosenPoint]

		// Mark all faces visible from apex.
		visibleFaces := make([]*face, 0, 8)
		for _, f := range faces {
			if !f.dead && f.distance(apex) > eps {
				visibleFaces = append(visibleFaces, f)
			}
		}

		// Horizon = edges that belong to exactly one visible face among
		// all edges of visible faces (a multiset count of 1).
		edgeCount := make(map[edge]int)
		edgeDir := make(map[edge]edge) // canonical -> directed, from the visible face that owns it
		for _, f := range visibleFaces {
			for _, e := range f.edges() {
				ce := canonicalEdge(e.u, e.v)
				edgeCount[ce]++
				edgeDir[ce] = e
			}
		}

		var horizon []edge
		for ce, count := range edgeCount {
			if count == 1 {
				horizon = append(horizon, edgeDir[ce])
			}
		}

		// Gather orphaned conflict points from all visible faces before
		// removing them.
		var orphans []int
		seenOrphan := make(map[int]bool)
		for _, f := range visibleFaces {
			for _, pi := range f.visible {
				if pi == chosenPoint || seenOrphan[pi] {
					continue
				}
				seenOrphan[pi] = true
				orphans = append(orphans, pi)
			}
			f.dead = true
		}
		faces = compactFaces(faces)

		// Build new faces from the horizon to the apex; the horizon edge's
		// existing direction already encodes the correct winding (it runs
		// along the visible face's own CCW order), so (u, v, apex)
		// preserves outward orientation.
		var newFaces []*face
		for _, e := range horizon {
			nf := newFaceChecked(points, e.u, e.v, chosenPoint)
			newFaces = append(newFaces, nf)
		}

		// Reassign orphaned points to whichever new face they're in front
		// of, if any; points inside the new hull region are simply dropped.
		for _, pi := range orphans {
			p := points[pi]
			var best *face
			var bestD float64
			for _, nf := range newFaces {
				d := nf.distance(p)
				if d > eps && (best == nil || d > bestD) {
					best = nf
					bestD = d
				}
			}
			if best != nil {
				best.visible = append(best.visible, pi)
			}
		}

		faces = append(faces, newFaces...)
	}

	return faces
}

func newFaceChecked(points []vecmath.Vec3, a, b, apex int) *face {
	f := newFace(points, a, b, apex)
	return &f
}

func compactFaces(faces []*face) []*face {
	out := faces[:0]
	for _, f := range faces {
		if !f.dead {
			out = append(out, f)
		}
	}
	return out
}

func facesToMesh(points []vecmath.Vec3, faces []*face, original *meshkit.Mesh) *meshkit.Mesh {
	m := meshkit.New()
	for _, f := range faces {
		if f.dead {
			continue
		}
		m.AddTriangle(points[f.a], points[f.b], points[f.c])
	}
	if m.IsEmpty() {
		// Every face degenerated under meshkit's area filter: soft-fail to
		// the original mesh (or the convex set's own points) rather than
		// returning nothing.
		return coplanarFallback(points, original)
	}
	return m
}
