package csg

import "github.com/chazu/csgforge/pkg/vecmath"

// PointInside tests whether point lies inside the solid represented by the
// tree, by descending toward the point's side of each splitting plane. A
// point in front of a plane with no front subtree is outside; a point behind
// (or on) a plane with no back subtree is inside (the tree's front side is
// outside the solid). A supplemental query, not required by the core
// union/difference/intersection operators.
func (n *BSPNode) PointInside(point vecmath.Vec3) bool {
	if n == nil {
		return true
	}
	return n.pointInsideRecursive(point)
}

func (n *BSPNode) pointInsideRecursive(point vecmath.Vec3) bool {
	d := n.Plane.SignedDistance(point)
	if d > epsClassify {
		if n.Front == nil {
			return false
		}
		return n.Front.pointInsideRecursive(point)
	}
	if d < -epsClassify {
		if n.Back == nil {
			return true
		}
		return n.Back.pointInsideRecursive(point)
	}
	// On the plane: treat as inside if there's no back subtree to refine
	// the answer further (conservative boundary convention).
	if n.Back == nil {
		return true
	}
	return n.Back.pointInsideRecursive(point)
}
