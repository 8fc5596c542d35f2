package csg

import (
	"math"

	"github.com/chazu/csgforge/pkg/vecmath"
)

// Polygon is a coplanar, convex vertex ring (counter-clockwise when viewed
// against Plane.Normal) with a cached splitting plane.
type Polygon struct {
	Vertices []vecmath.Vec3
	Plane    Plane
}

// NewPolygon builds a Polygon and computes its plane from the first three
// vertices. Returns ok=false if the vertices are degenerate (collinear or
// fewer than 3).
func NewPolygon(vertices []vecmath.Vec3) (Polygon, bool) {
	if len(vertices) < 3 {
		return Polygon{}, false
	}
	plane, ok := PlaneFromPoints(vertices[0], vertices[1], vertices[2])
	if !ok {
		return Polygon{}, false
	}
	return Polygon{Vertices: vertices, Plane: plane}, true
}

func (p Polygon) Clone() Polygon {
	verts := append([]vecmath.Vec3(nil), p.Vertices...)
	return Polygon{Vertices: verts, Plane: p.Plane}
}

// Flip reverses winding and flips the cached plane, producing the polygon's
// outward-facing inverse (used by BSPNode.Invert).
func (p Polygon) Flip() Polygon {
	n := len(p.Vertices)
	reversed := make([]vecmath.Vec3, n)
	for i, v := range p.Vertices {
		reversed[n-1-i] = v
	}
	return Polygon{Vertices: reversed, Plane: p.Plane.Flip()}
}

// splitPolygon classifies poly against plane and routes it into one of
// coplanarFront/coplanarBack/front/back (possibly splitting it into a
// front part and a back part if it spans the plane).
func splitPolygon(plane Plane, poly Polygon) (coplanarFront, coplanarBack, front, back *Polygon) {
	var polyType typeBitT
	types := make([]PointClass, len(poly.Vertices))
	for i, v := range poly.Vertices {
		t := plane.Classify(v)
		types[i] = t
		polyType |= typeBit(t)
	}

	switch {
	case polyType == bitCoplanar:
		if plane.Normal.Dot(poly.Plane.Normal) > 0 {
			cp := poly.Clone()
			return &cp, nil, nil, nil
		}
		cp := poly.Clone()
		return nil, &cp, nil, nil
	case polyType == bitFront:
		cp := poly.Clone()
		return nil, nil, &cp, nil
	case polyType == bitBack:
		cp := poly.Clone()
		return nil, nil, nil, &cp
	default: // spanning
		var f, b []vecmath.Vec3
		n := len(poly.Vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.Vertices[i], poly.Vertices[j]

			if ti != Back {
				f = append(f, vi)
			}
			if ti != Front {
				b = append(b, vi)
			}
			if (ti == Front && tj == Back) || (ti == Back && tj == Front) {
				denom := plane.Normal.Dot(vj.Sub(vi))
				var v vecmath.Vec3
				if math.Abs(denom) > epsDegenerate*0.1 {
					t := (plane.Offset - plane.Normal.Dot(vi)) / denom
					if t < 0 {
						t = 0
					} else if t > 1 {
						t = 1
					}
					v = vi.Lerp(vj, t)
				} else {
					v = vi.Lerp(vj, 0.5)
				}
				f = append(f, v)
				b = append(b, v)
			}
		}
		if len(f) >= 3 {
			if fp, ok := NewPolygon(f); ok {
				fp.Plane = poly.Plane
				front = &fp
			}
		}
		if len(b) >= 3 {
			if bp, ok := NewPolygon(b); ok {
				bp.Plane = poly.Plane
				back = &bp
			}
		}
		return nil, nil, front, back
	}
}

type typeBitT int

const (
	bitCoplanar typeBitT = 0
	bitFront    typeBitT = 1
	bitBack     typeBitT = 2
)

func typeBit(t PointClass) typeBitT {
	switch t {
	case Front:
		return bitFront
	case Back:
		return bitBack
	default:
		return bitCoplanar
	}
}
