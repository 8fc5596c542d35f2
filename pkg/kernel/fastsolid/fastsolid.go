//go:build fastunion

// Package fastsolid provides a fast-preview alternative to bspsolid: booleans
// are approximated by mesh concatenation ("union-lite") instead of exact BSP
// clipping, trading correctness at overlap seams for speed on large scenes
// during interactive editing.
//
// Build with: go build -tags=fastunion
package fastsolid

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

type solid struct {
	mesh *meshkit.Mesh
}

func wrap(m *meshkit.Mesh) *solid { return &solid{mesh: m} }

func unwrap(s kernel.Solid) *meshkit.Mesh {
	return s.(*solid).mesh
}

func (s *solid) BoundingBox() (min, max [3]float64) {
	b := s.mesh.Bounds
	return [3]float64{b.Min.X, b.Min.Y, b.Min.Z}, [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
}

// Kernel is the union-lite fast-preview backend.
type Kernel struct{}

// New returns the fast-preview kernel. Build with -tags=fastunion.
func New() (kernel.Kernel, error) {
	return &Kernel{}, nil
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

// Union concatenates the two meshes without any boundary clipping: coplanar
// or overlapping interior geometry is left in place. Correct silhouette,
// wrong internal topology — acceptable for a live-preview render pass.
func (k *Kernel) Union(a, b kernel.Solid) kernel.Solid {
	merged := unwrap(a).Transform(vecmath.Identity())
	merged.Merge(unwrap(b))
	return wrap(merged)
}

// Difference falls back to the exact BSP path: union-lite's mesh
// concatenation has no notion of carving material, so there is no cheap
// approximation to make here worth trading correctness for.
func (k *Kernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Difference(unwrap(a), unwrap(b)))
}

// Intersection falls back to the exact BSP path, for the same reason as
// Difference.
func (k *Kernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(csg.Intersection(unwrap(a), unwrap(b)))
}

func (k *Kernel) Hull(solids []kernel.Solid) kernel.Solid {
	meshes := make([]*meshkit.Mesh, len(solids))
	for i, s := range solids {
		meshes[i] = unwrap(s)
	}
	return wrap(hull.ComputeMany(meshes))
}

func (k *Kernel) Minkowski(a, b kernel.Solid) kernel.Solid {
	return wrap(hull.Minkowski(unwrap(a), unwrap(b)))
}

func (k *Kernel) Transform(s kernel.Solid, m vecmath.Mat4) kernel.Solid {
	return wrap(unwrap(s).Transform(m))
}

// Contains builds s's BSP tree and tests point against it, the same as
// bspsolid: a hit-test query gains nothing from union-lite's shortcuts.
func (k *Kernel) Contains(s kernel.Solid, point vecmath.Vec3) bool {
	tree := csg.Build(csg.MeshToPolygons(unwrap(s)))
	return tree.PointInside(point)
}

func (k *Kernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	mesh := unwrap(s)
	if mesh == nil {
		return nil, fmt.Errorf("fastsolid: nil solid")
	}
	return kernel.FromMeshkit(mesh), nil
}
