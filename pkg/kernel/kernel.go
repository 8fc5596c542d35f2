// Package kernel defines the abstract geometry kernel interface.
// Implementations (bspsolid, fastsolid) provide solid modeling and
// boolean operations behind this interface.
package kernel

import (
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Solid is an opaque handle to a kernel-specific solid representation.
// Concrete kernels type-assert back to their own solid type; callers never
// inspect a Solid's contents directly.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box of the solid.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the geometry backend csgforge's tessellation pipeline targets.
// A Kernel builds solids from primitive parameters, combines them with
// boolean/hull/Minkowski operators, applies affine transforms, and finally
// lowers a solid to a renderable triangle Mesh.
type Kernel interface {
	Box(x, y, z float64) Solid
	Sphere(radius float64, detail int) Solid
	Cylinder(height, radiusBottom, radiusTop float64, segments int) Solid
	Prism(sides int, height, radius float64) Solid
	Polyhedron(points []vecmath.Vec3, faces [][]int) Solid

	// Import wraps a pre-built mesh (from pkg/extrude or pkg/text) as an
	// opaque Solid, so extrusions and text can participate in subsequent
	// transforms and booleans like any other solid.
	Import(m *meshkit.Mesh) Solid

	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid
	Hull(solids []Solid) Solid
	Minkowski(a, b Solid) Solid

	Transform(s Solid, m vecmath.Mat4) Solid

	// Contains reports whether point lies inside s, by descending s's BSP
	// tree toward the point's side of each splitting plane. A host-facing
	// hit-test query, independent of the boolean pipeline.
	Contains(s Solid, point vecmath.Vec3) bool

	ToMesh(s Solid) (*Mesh, error)
}
