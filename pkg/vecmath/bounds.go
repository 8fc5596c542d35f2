package vecmath

import "math"

// Bounds is an axis-aligned bounding box. The empty Bounds (no points added)
// has Min at +Inf and Max at -Inf in every component, so that Union with any
// real bounds yields that bounds unchanged.
type Bounds struct {
	Min, Max Vec3
}

func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

func (b Bounds) ExpandPoint(p Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Intersects reports whether two bounds overlap (touching counts as overlap).
func (b Bounds) Intersects(o Bounds) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

func BoundsOf(points []Vec3) Bounds {
	b := EmptyBounds()
	for _, p := range points {
		b = b.ExpandPoint(p)
	}
	return b
}

func (b Bounds) TransformedBy(m Mat4) Bounds {
	if b.IsEmpty() {
		return b
	}
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
	r := EmptyBounds()
	for _, c := range corners {
		r = r.ExpandPoint(m.TransformPoint(c))
	}
	return r
}
