package csg

import (
	"math"
	"testing"

	"github.com/chazu/csgforge/pkg/vecmath"
)

func TestPlaneFromPointsNormalAndOffset(t *testing.T) {
	p, ok := PlaneFromPoints(
		vecmath.Vec3{X: 0, Y: 0, Z: 0},
		vecmath.Vec3{X: 1, Y: 0, Z: 0},
		vecmath.Vec3{X: 0, Y: 1, Z: 0},
	)
	if !ok {
		t.Fatal("PlaneFromPoints should succeed for a non-degenerate triangle")
	}
	if !p.Normal.Equal(vecmath.Vec3{X: 0, Y: 0, Z: 1}, 1e-9) {
		t.Errorf("plane normal = %v, want {0 0 1}", p.Normal)
	}
	if math.Abs(p.Offset) > 1e-9 {
		t.Errorf("plane through origin should have offset 0, got %v", p.Offset)
	}
}

func TestPlaneFromPointsDegenerate(t *testing.T) {
	_, ok := PlaneFromPoints(
		vecmath.Vec3{X: 0, Y: 0, Z: 0},
		vecmath.Vec3{X: 1, Y: 0, Z: 0},
		vecmath.Vec3{X: 2, Y: 0, Z: 0},
	)
	if ok {
		t.Error("PlaneFromPoints should fail for collinear points")
	}
}

func TestPlaneClassify(t *testing.T) {
	p := Plane{Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}, Offset: 0}
	if p.Classify(vecmath.Vec3{X: 0, Y: 0, Z: 1}) != Front {
		t.Error("point above plane should classify Front")
	}
	if p.Classify(vecmath.Vec3{X: 0, Y: 0, Z: -1}) != Back {
		t.Error("point below plane should classify Back")
	}
	if p.Classify(vecmath.Vec3{X: 5, Y: 5, Z: 0}) != Coplanar {
		t.Error("point on plane should classify Coplanar")
	}
}

func TestPlaneFlipReversesNormalAndOffset(t *testing.T) {
	p := Plane{Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}, Offset: 3}
	f := p.Flip()
	if f.Normal != p.Normal.Neg() || f.Offset != -p.Offset {
		t.Errorf("Flip() = %+v, want normal %v offset %v", f, p.Normal.Neg(), -p.Offset)
	}
}

func square(z float64) Polygon {
	poly, _ := NewPolygon([]vecmath.Vec3{
		{X: -1, Y: -1, Z: z},
		{X: 1, Y: -1, Z: z},
		{X: 1, Y: 1, Z: z},
		{X: -1, Y: 1, Z: z},
	})
	return poly
}

func TestSplitPolygonCoplanarFront(t *testing.T) {
	plane := Plane{Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}, Offset: 0}
	poly := square(0)
	cf, cb, f, b := splitPolygon(plane, poly)
	if cf == nil || cb != nil || f != nil || b != nil {
		t.Errorf("coplanar-front-facing square should route to coplanarFront only, got cf=%v cb=%v f=%v b=%v", cf, cb, f, b)
	}
}

func TestSplitPolygonEntirelyFront(t *testing.T) {
	plane := Plane{Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}, Offset: -5}
	poly := square(0)
	_, _, f, b := splitPolygon(plane, poly)
	if f == nil || b != nil {
		t.Error("square above the plane should route entirely to front")
	}
}

func TestSplitPolygonEntirelyBack(t *testing.T) {
	plane := Plane{Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}, Offset: 5}
	poly := square(0)
	_, _, f, b := splitPolygon(plane, poly)
	if b == nil || f != nil {
		t.Error("square below the plane should route entirely to back")
	}
}

func TestSplitPolygonSpanningProducesClampedFinitePoints(t *testing.T) {
	// A square straddling z=0, split by the z=0 plane: two spanning edges.
	plane := Plane{Normal: vecmath.Vec3{X: 0, Y: 0, Z: 1}, Offset: 0}
	poly, _ := NewPolygon([]vecmath.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: 1, Z: 1},
	})
	_, _, f, b := splitPolygon(plane, poly)
	if f == nil || b == nil {
		t.Fatal("spanning square should produce both a front and a back fragment")
	}
	for _, v := range append(append([]vecmath.Vec3{}, f.Vertices...), b.Vertices...) {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
			t.Errorf("spanning split produced a NaN vertex: %v", v)
		}
		if math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0) {
			t.Errorf("spanning split produced an Inf vertex: %v", v)
		}
	}
}

func TestPolygonFlipReversesWinding(t *testing.T) {
	poly := square(0)
	flipped := poly.Flip()
	n := len(poly.Vertices)
	for i, v := range poly.Vertices {
		if flipped.Vertices[n-1-i] != v {
			t.Errorf("flipped vertex %d = %v, want %v", n-1-i, flipped.Vertices[n-1-i], v)
		}
	}
	if flipped.Plane.Normal != poly.Plane.Normal.Neg() {
		t.Error("Flip should negate the cached plane's normal")
	}
}
