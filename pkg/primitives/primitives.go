// Package primitives generates smoothed-normal triangle meshes for the
// engine's basic solids: cube, sphere, cylinder/cone, prism, and arbitrary
// polyhedron.
package primitives

import (
	"math"

	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Cube returns an axis-aligned box of the given size, centered at the
// origin on X/Y and sitting on Z=0 (OpenSCAD's default cube placement),
// with one flat normal per face (after Smoothed(), per-vertex; callers
// that want true per-face flat shading should use the returned mesh as-is).
func Cube(sx, sy, sz float64) *meshkit.Mesh {
	hx, hy := sx/2, sy/2
	// 8 corners.
	c := [8]vecmath.Vec3{
		{-hx, -hy, 0}, {hx, -hy, 0}, {hx, hy, 0}, {-hx, hy, 0},
		{-hx, -hy, sz}, {hx, -hy, sz}, {hx, hy, sz}, {-hx, hy, sz},
	}
	m := meshkit.New()
	quad := func(a, b, c2, d vecmath.Vec3) {
		m.AddTriangle(a, b, c2)
		m.AddTriangle(a, c2, d)
	}
	quad(c[0], c[3], c[2], c[1]) // bottom
	quad(c[4], c[5], c[6], c[7]) // top
	quad(c[0], c[1], c[5], c[4]) // front (-Y)
	quad(c[2], c[3], c[7], c[6]) // back (+Y)
	quad(c[1], c[2], c[6], c[5]) // right (+X)
	quad(c[3], c[0], c[4], c[7]) // left (-X)
	return m.Smoothed()
}

// Sphere returns a UV-sphere of radius r, with `detail` latitude bands and
// 2*detail longitude segments.
func Sphere(r float64, detail int) *meshkit.Mesh {
	if detail < 2 {
		detail = 2
	}
	lat := detail
	lon := detail * 2

	m := meshkit.New()
	pt := func(i, j int) vecmath.Vec3 {
		theta := math.Pi * float64(i) / float64(lat) // 0..pi
		phi := 2 * math.Pi * float64(j) / float64(lon)
		st, ct := math.Sin(theta), math.Cos(theta)
		sp, cp := math.Sin(phi), math.Cos(phi)
		return vecmath.Vec3{X: r * st * cp, Y: r * st * sp, Z: r * ct}
	}
	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			p00 := pt(i, j)
			p01 := pt(i, (j+1)%lon)
			p10 := pt(i+1, j)
			p11 := pt(i+1, (j+1)%lon)
			if i > 0 {
				m.AddTriangle(p00, p01, p11)
			}
			if i < lat-1 {
				m.AddTriangle(p00, p11, p10)
			}
		}
	}
	return m.Smoothed()
}

// Cylinder returns a frustum from z=0 (radius r1) to z=h (radius r2); a
// true cylinder has r1==r2, a cone has r2==0.
func Cylinder(h, r1, r2 float64, segments int) *meshkit.Mesh {
	if segments < 3 {
		segments = 3
	}
	m := meshkit.New()
	angle := func(i int) float64 { return 2 * math.Pi * float64(i) / float64(segments) }

	bottom := make([]vecmath.Vec3, segments)
	top := make([]vecmath.Vec3, segments)
	for i := 0; i < segments; i++ {
		a := angle(i)
		c, s := math.Cos(a), math.Sin(a)
		bottom[i] = vecmath.Vec3{X: r1 * c, Y: r1 * s, Z: 0}
		top[i] = vecmath.Vec3{X: r2 * c, Y: r2 * s, Z: h}
	}

	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		if r1 > 0 {
			m.AddTriangle(bottom[i], bottom[j], top[j])
		}
		if r2 > 0 {
			m.AddTriangle(bottom[i], top[j], top[i])
		}
	}
	if r1 > 0 {
		centerBottom := vecmath.Vec3{Z: 0}
		for i := 0; i < segments; i++ {
			j := (i + 1) % segments
			m.AddTriangle(centerBottom, bottom[j], bottom[i])
		}
	}
	if r2 > 0 {
		centerTop := vecmath.Vec3{Z: h}
		for i := 0; i < segments; i++ {
			j := (i + 1) % segments
			m.AddTriangle(centerTop, top[i], top[j])
		}
	}
	return m.Smoothed()
}

// Cone is a Cylinder with r2 = 0.
func Cone(h, r float64, segments int) *meshkit.Mesh {
	return Cylinder(h, r, 0, segments)
}

// Prism returns a regular right prism with `sides` vertical faces,
// circumradius r, height h.
func Prism(sides int, h, r float64) *meshkit.Mesh {
	return Cylinder(h, r, r, sides)
}

// Polyhedron builds a mesh from explicit points and faces, where each face
// is a list of indices into points (fan-triangulated if it has more than 3
// vertices). Out-of-range indices are clamped to the valid range rather
// than causing an error.
func Polyhedron(points []vecmath.Vec3, faces [][]int) *meshkit.Mesh {
	m := meshkit.New()
	if len(points) == 0 {
		return m
	}
	clamp := func(i int) int {
		if i < 0 {
			return 0
		}
		if i >= len(points) {
			return len(points) - 1
		}
		return i
	}
	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		p0 := points[clamp(face[0])]
		for i := 1; i+1 < len(face); i++ {
			p1 := points[clamp(face[i])]
			p2 := points[clamp(face[i+1])]
			m.AddTriangle(p0, p1, p2)
		}
	}
	return m.Smoothed()
}
