package bspsolid

import (
	"testing"

	"github.com/chazu/csgforge/pkg/kernel"
	"github.com/chazu/csgforge/pkg/vecmath"
)

func TestBoxBoundingBox(t *testing.T) {
	k := New()
	var _ kernel.Kernel = k

	s := k.Box(2, 3, 4)
	min, max := s.BoundingBox()
	// primitives.Cube centers X/Y on the origin and sits on Z=0.
	if min != [3]float64{-1, -1.5, 0} {
		t.Errorf("box min = %v, want (-1,-1.5,0)", min)
	}
	if max != [3]float64{1, 1.5, 4} {
		t.Errorf("box max = %v, want (1,1.5,4)", max)
	}
}

func TestUnionExpandsBoundingBox(t *testing.T) {
	k := New()
	a := k.Box(2, 2, 2)
	b := k.Transform(k.Box(2, 2, 2), vecmath.Translate(vecmath.Vec3{X: 5, Y: 0, Z: 0}))

	u := k.Union(a, b)
	_, max := u.BoundingBox()
	if max[0] < 5.9 {
		t.Errorf("union bounding box should extend to x=6, got max=%v", max)
	}
}

func TestDifferenceShrinksMesh(t *testing.T) {
	k := New()
	a := k.Box(4, 4, 4)
	b := k.Transform(k.Box(4, 4, 4), vecmath.Translate(vecmath.Vec3{X: 2, Y: 0, Z: 0}))

	d := k.Difference(a, b)
	mesh, err := k.ToMesh(d)
	if err != nil {
		t.Fatalf("ToMesh error: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("difference should leave a non-empty remainder")
	}
}

func TestHullOfTwoBoxes(t *testing.T) {
	k := New()
	a := k.Box(1, 1, 1)
	b := k.Transform(k.Box(1, 1, 1), vecmath.Translate(vecmath.Vec3{X: 10, Y: 0, Z: 0}))

	h := k.Hull([]kernel.Solid{a, b})
	mesh, err := k.ToMesh(h)
	if err != nil {
		t.Fatalf("ToMesh error: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Error("hull of two separated boxes should produce triangles")
	}
}

func TestContainsDistinguishesInsideOutside(t *testing.T) {
	k := New()
	s := k.Box(4, 4, 4)

	if !k.Contains(s, vecmath.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Error("center of a 4x4x4 box should be inside")
	}
	if k.Contains(s, vecmath.Vec3{X: 100, Y: 100, Z: 100}) {
		t.Error("far outside point should not be inside")
	}
}

func TestSphereToMesh(t *testing.T) {
	k := New()
	s := k.Sphere(3, 8)
	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh error: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Error("sphere mesh should have triangles")
	}
}
