package hull

import "github.com/chazu/csgforge/pkg/vecmath"

// dedupPoints removes near-duplicate points using a uniform grid hash keyed
// on epsGrid-sized cells, an O(n) upgrade over hull.rs's O(n^2)
// dedup_points (which compares every pair directly).
func dedupPoints(points []vecmath.Vec3) []vecmath.Vec3 {
	type cell struct{ x, y, z int64 }
	cellOf := func(v vecmath.Vec3) cell {
		return cell{
			int64(v.X / epsGrid),
			int64(v.Y / epsGrid),
			int64(v.Z / epsGrid),
		}
	}

	seen := make(map[cell]bool, len(points))
	out := make([]vecmath.Vec3, 0, len(points))
	for _, p := range points {
		c := cellOf(p)
		if seen[c] {
			continue
		}
		// Check the 26 neighboring cells too, so points that straddle a
		// cell boundary but are within epsGrid of an already-kept point
		// are still treated as duplicates.
		dup := false
		for dx := int64(-1); dx <= 1 && !dup; dx++ {
			for dy := int64(-1); dy <= 1 && !dup; dy++ {
				for dz := int64(-1); dz <= 1 && !dup; dz++ {
					if seen[cell{c.x + dx, c.y + dy, c.z + dz}] {
						dup = true
					}
				}
			}
		}
		if dup {
			continue
		}
		seen[c] = true
		out = append(out, p)
	}
	return out
}

// adaptiveEpsilon scales the tolerance used for plane-distance tests by the
// magnitude of the point set's coordinates, so hulls built from very large
// or very small models don't misclassify points due to a fixed epsilon.
func adaptiveEpsilon(points []vecmath.Vec3) float64 {
	var maxMag float64
	for _, p := range points {
		for _, c := range []float64{p.X, p.Y, p.Z} {
			if c < 0 {
				c = -c
			}
			if c > maxMag {
				maxMag = c
			}
		}
	}
	eps := maxMag * epsLooseFactor
	if eps < epsTight {
		eps = epsTight
	}
	return eps
}
