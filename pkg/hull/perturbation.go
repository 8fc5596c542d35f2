package hull

import "github.com/chazu/csgforge/pkg/vecmath"

// perturbationSeeds are fixed LCG seeds tried in order when the input point
// set is exactly coplanar/collinear and no tetrahedron can be formed
// without perturbation. Fixed seeds keep hull construction deterministic.
var perturbationSeeds = []uint64{1, 7, 42, 1009, 65537}

const perturbationMagnitude = 1e-6

// lcgNext advances a simple 64-bit linear congruential generator (Knuth's
// MMIX constants, sufficient for symbolic jitter — not used for anything
// security-sensitive).
func lcgNext(state uint64) uint64 {
	return state*6364136223846793005 + 1442695040888963407
}

// perturb nudges every point by a tiny deterministic offset derived from
// the seed and the point's index, breaking exact coplanarity/collinearity
// without materially changing the hull's shape.
func perturb(points []vecmath.Vec3, seed uint64) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, len(points))
	state := seed
	for i, p := range points {
		state = lcgNext(state)
		dx := (float64(state%1000)/1000 - 0.5) * 2 * perturbationMagnitude
		state = lcgNext(state)
		dy := (float64(state%1000)/1000 - 0.5) * 2 * perturbationMagnitude
		state = lcgNext(state)
		dz := (float64(state%1000)/1000 - 0.5) * 2 * perturbationMagnitude
		out[i] = vecmath.Vec3{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
	}
	return out
}
