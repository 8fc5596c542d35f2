package csg

import "github.com/chazu/csgforge/pkg/vecmath"

// Plane is a unit-normal oriented plane: Normal.Dot(p) == Offset for every
// point p on the plane. Front is the half-space Normal points into.
type Plane struct {
	Normal vecmath.Vec3
	Offset float64
}

// PlaneFromPoints builds the plane through a, b, c with normal
// (b-a) x (c-a), normalized. Returns ok=false if the three points are
// (near) collinear.
func PlaneFromPoints(a, b, c vecmath.Vec3) (Plane, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Length() < epsDegenerate {
		return Plane{}, false
	}
	n = n.Normalize()
	return Plane{Normal: n, Offset: n.Dot(a)}, true
}

func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Neg(), Offset: -p.Offset}
}

// SignedDistance is positive in front of the plane, negative behind.
func (p Plane) SignedDistance(point vecmath.Vec3) float64 {
	return p.Normal.Dot(point) - p.Offset
}

// PointClass classifies a point relative to a plane within epsClassify.
type PointClass int

const (
	Coplanar PointClass = iota
	Front
	Back
	Spanning
)

func (p Plane) Classify(point vecmath.Vec3) PointClass {
	d := p.SignedDistance(point)
	switch {
	case d < -epsClassify:
		return Back
	case d > epsClassify:
		return Front
	default:
		return Coplanar
	}
}
