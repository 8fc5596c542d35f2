// Package bspsolid implements the kernel.Kernel interface using csgforge's
// own BSP-tree boolean engine (pkg/csg) and incremental convex hull
// (pkg/hull). It is the default, production backend: every solid is an
// exact polygon mesh, not an implicit-surface approximation.
package bspsolid

import (
	"fmt"

	"github.com/chazu/csgforge/pkg/csg"
	"github.com/chazu/csgforge/pkg/hull"
	"github.com/chazu/csgforge/pkg/kernel"
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/primitives"
	"github.com/chazu/csgforge/pkg/vecmath"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)
var _ kernel.Solid = (*solid)(nil)

// solid wraps a meshkit.Mesh to implement kernel.Solid.
type solid struct {
	mesh *meshkit.Mesh
}

func wrap(m *meshkit.Mesh) *solid { return &solid{mesh: m} }

func unwrap(s kernel.Solid) *meshkit.Mesh {
	return s.(*solid).mesh
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *solid) BoundingBox() (min, max [3]float64) {
	b := s.mesh.Bounds
	return [3]float64{b.Min.X, b.Min.Y, b.Min.Z}, [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
}

// Kernel implements kernel.Kernel atop pkg/csg and pkg/hull.
type Kernel struct{}

// New returns the default BSP/hull-based geometry kernel.
func New() *Kernel {
	return &Kernel{}
}

func (k *Kernel) Box(x, y, z float64) kernel.Solid {
	return wrap(primitives.Cube(x, y, z))
}

func (k *Kernel) Sphere(radius float64, detail int) kernel.Solid {
	return wrap(primitives.Sphere(radius, detail))
}

func (k *Kernel) Cylinder(height, radiusBottom, radiusTop float64, segments int) kernel.Solid {
	return wrap(primitives.Cylinder(height, radiusBottom, radiusTop, segments))
}

func (k *Kernel) Prism(sides int, height, radius float64) kernel.Solid {
	return wrap(primitives.Prism(sides, height, radius))
}

func (k *Kernel) Polyhedron(points []vecmath.Vec3, faces [][]int) kernel.Solid {
	return wrap(primitives.Polyhedron(points, faces))
}

// Import wraps a pre-built mesh (from pkg/extrude or pkg/text) as a Solid.
func (k *Kernel) Import(m *meshkit.Mesh) kernel.Solid {
	return wrap(m)
}

func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Union(unwrap(a), unwrap(b)))
}

func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Difference(unwrap(a), unwrap(b)))
}

func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Intersection(unwrap(a), unwrap(b)))
}

// Hull returns the convex hull enclosing the union of every input solid's
// vertices.
func (k *Kernel) Hull(solids []kernel.Solid) kernel.Solid {
	meshes := make([]*meshkit.Mesh, len(solids))
	for i, s := range solids {
		meshes[i] = unwrap(s)
	}
	return wrap(hull.ComputeMany(meshes))
}

// Minkowski approximates the Minkowski sum of two solids as the hull of
// pairwise vertex sums of each operand's own convex hull (see
// pkg/hull.Minkowski's doc comment for the documented limitation).
func (k *Kernel) Minkowski(a, b kernel.Solid) kernel.Solid {
	return wrap(hull.Minkowski(unwrap(a), unwrap(b)))
}

func (k *Kernel) Transform(s kernel.Solid, m vecmath.Mat4) kernel.Solid {
	return wrap(unwrap(s).Transform(m))
}

// Contains builds s's BSP tree and tests point against it.
func (k *Kernel) Contains(s kernel.Solid, point vecmath.Vec3) bool {
	tree := csg.Build(csg.MeshToPolygons(unwrap(s)))
	return tree.PointInside(point)
}

// ToMesh lowers a solid to a flat-array renderable mesh.
func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	mesh := unwrap(s)
	if mesh == nil {
		return nil, fmt.Errorf("bspsolid: nil solid")
	}
	return kernel.FromMeshkit(mesh), nil
}
