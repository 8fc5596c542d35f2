// Package hull implements incremental 3D convex hull construction
// (quickhull-style, with conflict lists) and the Minkowski-sum
// approximation built on top of it.
package hull

// Tolerance policy: fixed epsilons for hull construction.
const (
	epsGrid  = 1e-5 // grid-hash point dedup cell size
	epsTight = 1e-7 // base plane-distance tolerance
	epsLooseFactor = 1e-6 // adaptive epsilon: epsLooseFactor * coordinate magnitude

	maxIterationsPerPoint = 10 // quickhull loop cap, as a multiple of point count
)
