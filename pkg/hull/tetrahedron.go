package hull

import "github.com/chazu/csgforge/pkg/vecmath"

// buildTetrahedron finds four non-coplanar points (leftmost/rightmost X,
// farthest from that line, farthest from that plane) and returns the four
// outward-facing triangular faces of their tetrahedron, each pre-seeded
// with its conflict list. Grounded on hull.rs's find_initial_tetrahedron.
func buildTetrahedron(points []vecmath.Vec3, eps float64) ([]*face, bool) {
	if len(points) < 4 {
		return nil, false
	}

	// Extremes along X, tie-broken by Y then Z for determinism.
	minI, maxI := 0, 0
	for i, p := range points {
		if better(p, points[minI], true) {
			minI = i
		}
		if better(p, points[maxI], false) {
			maxI = i
		}
	}
	if minI == maxI {
		return nil, false
	}

	// Farthest point from the line through minI/maxI.
	a, b := points[minI], points[maxI]
	dir := b.Sub(a)
	thirdI := -1
	var bestDist float64
	for i, p := range points {
		if i == minI || i == maxI {
			continue
		}
		d := distToLine(p, a, dir)
		if d > bestDist {
			bestDist = d
			thirdI = i
		}
	}
	if thirdI < 0 || bestDist < eps {
		return nil, false
	}

	// Farthest point from the plane through minI/maxI/thirdI.
	plane0 := newFace(points, minI, maxI, thirdI)
	fourthI := -1
	var bestPlaneDist float64
	for i, p := range points {
		if i == minI || i == maxI || i == thirdI {
			continue
		}
		d := plane0.distance(p)
		if abs(d) > abs(bestPlaneDist) {
			bestPlaneDist = d
			fourthI = i
		}
	}
	if fourthI < 0 || abs(bestPlaneDist) < eps {
		return nil, false
	}

	apex := points[fourthI]
	base := [3]int{minI, maxI, thirdI}
	// Orient the base so its normal points away from the apex.
	if plane0.distance(apex) > 0 {
		base = [3]int{minI, thirdI, maxI}
	}

	faces := []*face{
		faceAway(points, base[0], base[1], base[2], apex),
		faceAway(points, base[0], base[1], fourthI, points[base[2]]),
		faceAway(points, base[1], base[2], fourthI, points[base[0]]),
		faceAway(points, base[2], base[0], fourthI, points[base[1]]),
	}

	allIdx := [4]int{base[0], base[1], base[2], fourthI}
	for i, p := range points {
		if isOneOf(i, allIdx) {
			continue
		}
		var best *face
		var bestD float64
		for _, f := range faces {
			d := f.distance(p)
			if d > eps && (best == nil || d > bestD) {
				best = f
				bestD = d
			}
		}
		if best != nil {
			best.visible = append(best.visible, i)
		}
	}

	return faces, true
}

// faceAway builds the face (a,b,c) oriented so its normal points away from
// "away" (the tetrahedron's opposite vertex), flipping winding if needed.
func faceAway(points []vecmath.Vec3, a, b, c int, away vecmath.Vec3) *face {
	f := newFace(points, a, b, c)
	if f.distance(away) > 0 {
		f = newFace(points, a, c, b)
	}
	return &f
}

func isOneOf(i int, set [4]int) bool {
	for _, s := range set {
		if i == s {
			return true
		}
	}
	return false
}

func better(p, cur vecmath.Vec3, wantMin bool) bool {
	if wantMin {
		if p.X != cur.X {
			return p.X < cur.X
		}
		if p.Y != cur.Y {
			return p.Y < cur.Y
		}
		return p.Z < cur.Z
	}
	if p.X != cur.X {
		return p.X > cur.X
	}
	if p.Y != cur.Y {
		return p.Y > cur.Y
	}
	return p.Z > cur.Z
}

func distToLine(p, a vecmath.Vec3, dir vecmath.Vec3) float64 {
	ap := p.Sub(a)
	return ap.Cross(dir).Length() / dir.Length()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
