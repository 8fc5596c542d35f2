package csg

import (
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Union computes a ∪ b via the classical Naylor-Amanatides-Thibault
// protocol. No bounding-box short-circuit here; that optimization is
// reserved for Difference, where it has the clearest win. If one operand is
// empty, a copy of the other is returned unchanged.
func Union(a, b *meshkit.Mesh) *meshkit.Mesh {
	if b.IsEmpty() {
		return a.Clone()
	}
	if a.IsEmpty() {
		return b.Clone()
	}
	ta := Build(MeshToPolygons(a))
	tb := Build(MeshToPolygons(b))

	ta.ClipTo(tb)
	tb.ClipTo(ta)
	tb.Invert()
	tb.ClipTo(ta)
	tb.Invert()

	result := append(ta.AllPolygons(), tb.AllPolygons()...)
	return PolygonsToMesh(result)
}

// Intersection computes a ∩ b; if either operand is empty the result is empty.
func Intersection(a, b *meshkit.Mesh) *meshkit.Mesh {
	if a.IsEmpty() || b.IsEmpty() {
		return meshkit.New()
	}
	ta := Build(MeshToPolygons(a))
	tb := Build(MeshToPolygons(b))

	ta.Invert()
	tb.ClipTo(ta)
	tb.Invert()
	ta.ClipTo(tb)
	tb.ClipTo(ta)
	result := append(ta.AllPolygons(), tb.AllPolygons()...)

	out := Build(result)
	out.Invert()
	return PolygonsToMesh(out.AllPolygons())
}

// Difference computes a \ b, with an AABB bounding-box short-circuit: any
// polygon of a wholly outside b's bounds passes through untouched rather
// than being run through the full clip machinery, and any polygon of b
// wholly outside a's bounds is dropped (it cannot carve a), exactly
// matching bsp.rs's difference() partitioning (poly_intersects_bounds /
// a_clip+a_passthru / b_clip+b_passthru).
func Difference(a, b *meshkit.Mesh) *meshkit.Mesh {
	boundsB := b.Bounds
	boundsA := a.Bounds

	aPolys := MeshToPolygons(a)
	bPolys := MeshToPolygons(b)

	var aClip, aPassthru []Polygon
	for _, p := range aPolys {
		if polyIntersectsBounds(p, boundsB) {
			aClip = append(aClip, p)
		} else {
			aPassthru = append(aPassthru, p)
		}
	}
	var bClip, bPassthru []Polygon
	for _, p := range bPolys {
		if polyIntersectsBounds(p, boundsA) {
			bClip = append(bClip, p)
		} else {
			bPassthru = append(bPassthru, p)
		}
	}
	_ = bPassthru // b's passthru polygons never contribute to a\b

	ta := Build(aClip)
	tb := Build(bClip)

	ta.Invert()
	ta.ClipTo(tb)
	tb.ClipTo(ta)
	tb.Invert()
	tb.ClipTo(ta)
	tb.Invert()
	ta.Invert()

	result := append(ta.AllPolygons(), tb.AllPolygons()...)
	result = append(result, aPassthru...)
	return PolygonsToMesh(result)
}

// polyIntersectsBounds reports whether poly's own bounding box overlaps b.
func polyIntersectsBounds(poly Polygon, b vecmath.Bounds) bool {
	pb := vecmath.BoundsOf(poly.Vertices)
	return pb.Intersects(b)
}
