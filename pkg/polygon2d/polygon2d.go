// Package polygon2d implements 2D profile types (circle, square, arbitrary
// polygon) and ear-clipping triangulation, used by pkg/extrude and
// pkg/projection.
package polygon2d

import (
	"math"

	"github.com/chazu/csgforge/pkg/vecmath"
)

// Ring is a closed 2D polygon boundary, counter-clockwise for an outer
// contour, clockwise for a hole.
type Ring []vecmath.Vec2

// Profile is a 2D shape: one outer ring plus any number of hole rings.
type Profile struct {
	Outer Ring
	Holes []Ring
}

func Circle(r float64, segments int) Profile {
	if segments < 3 {
		segments = 3
	}
	ring := make(Ring, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = vecmath.Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)}
	}
	return Profile{Outer: ring}
}

func Square(x, y float64) Profile {
	hx, hy := x/2, y/2
	return Profile{Outer: Ring{
		{X: -hx, Y: -hy}, {X: hx, Y: -hy}, {X: hx, Y: hy}, {X: -hx, Y: hy},
	}}
}

func Polygon(points []vecmath.Vec2) Profile {
	return Profile{Outer: append(Ring(nil), points...)}
}

// signedArea returns twice the signed area of ring (positive if CCW).
func signedArea(ring Ring) float64 {
	var sum float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].Cross(ring[j])
	}
	return sum
}

// Triangulate ear-clips a simple polygon ring (assumed non-self-
// intersecting) into a list of triangle index triples referencing ring's
// own vertex order.
func Triangulate(ring Ring) [][3]int {
	n := len(ring)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	// Ensure CCW winding so the "left turn" ear test is consistent.
	if signedArea(ring) < 0 {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}

	var tris [][3]int
	guard := 0
	for len(idx) > 3 && guard < n*n {
		guard++
		earFound := false
		for i := 0; i < len(idx); i++ {
			prev := idx[(i-1+len(idx))%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if isEar(ring, idx, prev, cur, next) {
				tris = append(tris, [3]int{prev, cur, next})
				idx = append(idx[:i], idx[i+1:]...)
				earFound = true
				break
			}
		}
		if !earFound {
			break // degenerate/self-intersecting input; return what we have
		}
	}
	if len(idx) == 3 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func isEar(ring Ring, idx []int, prev, cur, next int) bool {
	a, b, c := ring[prev], ring[cur], ring[next]
	if b.Sub(a).Cross(c.Sub(a)) <= 0 {
		return false // reflex vertex, not convex
	}
	for _, pi := range idx {
		if pi == prev || pi == cur || pi == next {
			continue
		}
		if pointInTriangle(ring[pi], a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c vecmath.Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Flatten merges a profile's hole rings into its outer ring via bridge
// edges (the standard "slit" technique for ear-clipping polygons with
// holes), producing a single simple ring suitable for Triangulate. Each
// bridge is a zero-width in/out edge pair, so the two triangles straddling
// it are degenerate and get filtered out by meshkit's degenerate-triangle
// check once extruded into 3D.
func Flatten(p Profile) Ring {
	out := append(Ring(nil), p.Outer...)
	for _, hole := range p.Holes {
		out = spliceHole(out, hole)
	}
	return out
}

// spliceHole bridges hole into outer at the pair of vertices closest to
// each other, inserting outer[oIdx] -> hole[hIdx..] -> hole[..hIdx] ->
// hole[hIdx] -> outer[oIdx] -> outer[oIdx+1:].
func spliceHole(outer Ring, hole Ring) Ring {
	if len(hole) == 0 {
		return outer
	}
	bestO, bestH := 0, 0
	bestDist := math.Inf(1)
	for oi, op := range outer {
		for hi, hp := range hole {
			diff := op.Sub(hp)
			d := diff.Dot(diff)
			if d < bestDist {
				bestDist = d
				bestO, bestH = oi, hi
			}
		}
	}

	bridged := make(Ring, 0, len(outer)+len(hole)+2)
	bridged = append(bridged, outer[:bestO+1]...)
	for i := 0; i < len(hole); i++ {
		bridged = append(bridged, hole[(bestH+i)%len(hole)])
	}
	bridged = append(bridged, hole[bestH], outer[bestO])
	bridged = append(bridged, outer[bestO+1:]...)
	return bridged
}

// Hull2D computes the 2D convex hull of a point set via gift wrapping,
// used by pkg/projection for mesh-silhouette approximation.
func Hull2D(points []vecmath.Vec2) Ring {
	n := len(points)
	if n < 3 {
		return append(Ring(nil), points...)
	}
	start := 0
	for i, p := range points {
		if p.X < points[start].X || (p.X == points[start].X && p.Y < points[start].Y) {
			start = i
		}
	}
	var hull Ring
	current := start
	for {
		hull = append(hull, points[current])
		next := (current + 1) % n
		for i := 0; i < n; i++ {
			if i == current {
				continue
			}
			cross := points[next].Sub(points[current]).Cross(points[i].Sub(points[current]))
			if cross < 0 {
				next = i
			}
		}
		current = next
		if current == start {
			break
		}
		if len(hull) > n {
			break
		}
	}
	return hull
}
