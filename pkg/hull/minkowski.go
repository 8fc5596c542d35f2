package hull

import (
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// ComputeMany returns the convex hull enclosing every vertex of every given
// mesh.
func ComputeMany(meshes []*meshkit.Mesh) *meshkit.Mesh {
	var points []vecmath.Vec3
	for _, m := range meshes {
		points = append(points, m.AllPoints()...)
	}
	return ComputePoints(points)
}

// Minkowski approximates the Minkowski sum of a and b as the convex hull of
// the pairwise-summed vertex sets of their own convex hulls. This is exact
// only when both operands are themselves convex — a stated approximation,
// not a true Minkowski sum for arbitrary (possibly non-convex) solids.
func Minkowski(a, b *meshkit.Mesh) *meshkit.Mesh {
	ha := Compute(a)
	hb := Compute(b)

	aPts := ha.AllPoints()
	bPts := hb.AllPoints()
	if len(aPts) == 0 || len(bPts) == 0 {
		return meshkit.New()
	}

	sums := make([]vecmath.Vec3, 0, len(aPts)*len(bPts))
	for _, pa := range aPts {
		for _, pb := range bPts {
			sums = append(sums, pa.Add(pb))
		}
	}
	return ComputePoints(sums)
}
