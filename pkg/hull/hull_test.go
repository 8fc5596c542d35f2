package hull

import (
	"testing"

	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/primitives"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Scenario 6: hull of a cube's bounding box matches the cube's own, and its
// face count falls in the documented 8-24 range.
func TestComputeHullOfCube(t *testing.T) {
	cube := primitives.Cube(10, 10, 10)
	h := Compute(cube)

	if h.Bounds.Min != cube.Bounds.Min || h.Bounds.Max != cube.Bounds.Max {
		t.Errorf("hull bounds = %+v, want %+v", h.Bounds, cube.Bounds)
	}
	if h.TriangleCount() < 8 || h.TriangleCount() > 24 {
		t.Errorf("hull face count = %d, want between 8 and 24", h.TriangleCount())
	}
}

func TestComputeConvexity(t *testing.T) {
	cube := primitives.Cube(10, 10, 10)
	h := Compute(cube)

	faces := make([]face, 0, h.TriangleCount())
	for i := 0; i+2 < len(h.Indices); i += 3 {
		faces = append(faces, newFace(h.Vertices, int(h.Indices[i]), int(h.Indices[i+1]), int(h.Indices[i+2])))
	}
	const eps = 1e-6
	for _, v := range cube.Vertices {
		for _, f := range faces {
			if f.distance(v) > eps {
				t.Errorf("input vertex %v lies outside hull face (distance %v)", v, f.distance(v))
			}
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	cube := primitives.Cube(10, 10, 10)
	first := Compute(cube)
	second := Compute(first)
	// Within perturbation tolerance: re-hulling a convex mesh should not
	// change its face count by more than a handful of triangles.
	diff := second.TriangleCount() - first.TriangleCount()
	if diff < -2 || diff > 2 {
		t.Errorf("hull(hull(M)) face count = %d, want within 2 of %d", second.TriangleCount(), first.TriangleCount())
	}
}

// coincidentPointMesh builds a mesh whose vertices all dedup to a single
// point, forcing every hull fallback (coplanar, then passthrough) to bottom
// out at the final give-up path.
func coincidentPointMesh() *meshkit.Mesh {
	m := meshkit.New()
	m.Vertices = []vecmath.Vec3{
		{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1},
	}
	m.Normals = make([]vecmath.Vec3, len(m.Vertices))
	m.Indices = []uint32{0, 1, 2}
	m.RecomputeBounds()
	return m
}

func TestComputeDegenerateInputFallsBackToOriginalMesh(t *testing.T) {
	m := coincidentPointMesh()

	h := Compute(m)
	if len(h.Vertices) != len(m.Vertices) {
		t.Errorf("give-up hull should fall back to the input mesh, got %d vertices, want %d",
			len(h.Vertices), len(m.Vertices))
	}
	for i, v := range h.Vertices {
		if v != m.Vertices[i] {
			t.Errorf("fallback vertex %d = %v, want %v", i, v, m.Vertices[i])
		}
	}
}

func TestComputeDegenerateInputFallbackIsIndependentCopy(t *testing.T) {
	m := coincidentPointMesh()
	h := Compute(m)
	h.Vertices[0] = vecmath.Vec3{X: 99, Y: 99, Z: 99}
	if m.Vertices[0] == (vecmath.Vec3{X: 99, Y: 99, Z: 99}) {
		t.Error("Compute's fallback mesh should be an independent clone, not alias the input")
	}
}

func TestComputePointsDegenerateInputFallsBackToPointCloud(t *testing.T) {
	// ComputePoints has no originating mesh, so the give-up path is a bare
	// point cloud rather than a real input mesh.
	pts := []vecmath.Vec3{{X: 0, Y: 0, Z: 0}}
	h := ComputePoints(pts)
	if !h.IsEmpty() {
		t.Errorf("single-point hull should have no triangles, got %d", h.TriangleCount())
	}
}

func TestComputeManyHullOfTwoSeparatedCubes(t *testing.T) {
	a := primitives.Cube(2, 2, 2)
	b := a.Transform(vecmath.Translate(vecmath.Vec3{X: 20, Y: 0, Z: 0}))
	h := ComputeMany([]*meshkit.Mesh{a, b})
	if h.TriangleCount() == 0 {
		t.Error("hull of two separated cubes should produce triangles")
	}
}

func TestDedupPointsRemovesNearDuplicates(t *testing.T) {
	pts := []vecmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 0},
		{X: 1e-9, Y: 0, Z: 0},
		{X: 5, Y: 5, Z: 5},
	}
	out := dedupPoints(pts)
	if len(out) != 2 {
		t.Errorf("dedupPoints length = %d, want 2", len(out))
	}
}
