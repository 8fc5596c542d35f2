// Package extrude implements linear and rotational sweeps of a 2D profile
// into a 3D solid.
package extrude

import (
	"math"

	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/polygon2d"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Linear sweeps profile along +Z to the given height, applying an optional
// per-layer twist (degrees, total over the full height) and a linear
// top/bottom scale factor (OpenSCAD's linear_extrude semantics).
func Linear(profile polygon2d.Profile, height, twistDegrees, topScale float64) *meshkit.Mesh {
	m := meshkit.New()
	ring := polygon2d.Flatten(profile)
	n := len(ring)
	if n < 3 || height <= 0 {
		return m
	}

	twistRad := twistDegrees * math.Pi / 180
	layer := func(z float64) []vecmath.Vec3 {
		t := z / height
		angle := twistRad * t
		scale := 1 + (topScale-1)*t
		c, s := math.Cos(angle), math.Sin(angle)
		out := make([]vecmath.Vec3, n)
		for i, p := range ring {
			x := p.X * scale
			y := p.Y * scale
			out[i] = vecmath.Vec3{X: x*c - y*s, Y: x*s + y*c, Z: z}
		}
		return out
	}

	bottom := layer(0)
	top := layer(height)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.AddTriangle(bottom[i], bottom[j], top[j])
		m.AddTriangle(bottom[i], top[j], top[i])
	}

	tris := polygon2d.Triangulate(ring)
	for _, t := range tris {
		m.AddTriangle(bottom[t[2]], bottom[t[1]], bottom[t[0]]) // bottom faces down, reversed winding
		m.AddTriangle(top[t[0]], top[t[1]], top[t[2]])
	}
	return m.Smoothed()
}

// Rotate revolves profile around the Z axis by angleDegrees (360 for a
// full solid of revolution), producing `segments` angular slices. The
// profile is expected to lie in the X>=0 half of the XY plane (its X
// coordinate becomes the revolution radius, its Y coordinate becomes Z).
func Rotate(profile polygon2d.Profile, angleDegrees float64, segments int) *meshkit.Mesh {
	m := meshkit.New()
	ring := polygon2d.Flatten(profile)
	n := len(ring)
	if n < 3 || segments < 3 {
		return m
	}

	full := angleDegrees >= 359.999
	sliceAngle := angleDegrees * math.Pi / 180 / float64(segments)

	slice := func(k int) []vecmath.Vec3 {
		a := sliceAngle * float64(k)
		c, s := math.Cos(a), math.Sin(a)
		out := make([]vecmath.Vec3, n)
		for i, p := range ring {
			out[i] = vecmath.Vec3{X: p.X * c, Y: p.X * s, Z: p.Y}
		}
		return out
	}

	steps := segments
	if !full {
		steps = segments // open sweep: still `segments` slices, (segments+1) boundaries
	}

	prev := slice(0)
	for k := 1; k <= steps; k++ {
		var cur []vecmath.Vec3
		if full && k == steps {
			cur = slice(0)
		} else {
			cur = slice(k)
		}
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			m.AddTriangle(prev[i], prev[j], cur[j])
			m.AddTriangle(prev[i], cur[j], cur[i])
		}
		prev = cur
	}

	if !full {
		tris := polygon2d.Triangulate(ring)
		start := slice(0)
		end := slice(steps)
		for _, t := range tris {
			m.AddTriangle(start[t[2]], start[t[1]], start[t[0]])
			m.AddTriangle(end[t[0]], end[t[1]], end[t[2]])
		}
	}
	return m.Smoothed()
}
