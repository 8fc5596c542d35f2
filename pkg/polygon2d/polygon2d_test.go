package polygon2d

import (
	"testing"

	"github.com/chazu/csgforge/pkg/vecmath"
)

func TestCircleSegmentCount(t *testing.T) {
	p := Circle(5, 16)
	if len(p.Outer) != 16 {
		t.Errorf("circle ring length = %d, want 16", len(p.Outer))
	}
	for _, v := range p.Outer {
		d := v.Length()
		if d < 4.999 || d > 5.001 {
			t.Errorf("circle vertex %v not at radius 5 (got %v)", v, d)
		}
	}
}

func TestCircleMinimumSegments(t *testing.T) {
	p := Circle(1, 1)
	if len(p.Outer) != 3 {
		t.Errorf("circle should clamp to 3 segments minimum, got %d", len(p.Outer))
	}
}

func TestSquareIsCenteredAndSized(t *testing.T) {
	p := Square(4, 2)
	if len(p.Outer) != 4 {
		t.Fatalf("square should have 4 corners, got %d", len(p.Outer))
	}
	b := Ring(p.Outer)
	minX, maxX := b[0].X, b[0].X
	for _, v := range b {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
	}
	if maxX-minX != 4 {
		t.Errorf("square width = %v, want 4", maxX-minX)
	}
}

func TestPolygonCopiesPoints(t *testing.T) {
	pts := []vecmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	p := Polygon(pts)
	pts[0] = vecmath.Vec2{X: 99, Y: 99}
	if p.Outer[0] == pts[0] {
		t.Error("Polygon should copy its input, not alias it")
	}
}

func TestTriangulateSquare(t *testing.T) {
	sq := Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	tris := Triangulate(sq)
	if len(tris) != 2 {
		t.Fatalf("square triangulation should produce 2 triangles, got %d", len(tris))
	}
}

func TestTriangulateTriangleIsNoOp(t *testing.T) {
	tri := Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	tris := Triangulate(tri)
	if len(tris) != 1 {
		t.Fatalf("triangle triangulation should produce exactly 1 triangle, got %d", len(tris))
	}
}

func TestTriangulateDegenerateInput(t *testing.T) {
	if got := Triangulate(Ring{{X: 0, Y: 0}, {X: 1, Y: 0}}); got != nil {
		t.Errorf("2-point ring should triangulate to nothing, got %v", got)
	}
}

func TestTriangulateConcavePolygon(t *testing.T) {
	// An "L" shape (6 vertices, one reflex corner).
	l := Ring{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}
	tris := Triangulate(l)
	if len(tris) != len(l)-2 {
		t.Errorf("ear clipping of an n-gon should yield n-2 triangles, got %d want %d", len(tris), len(l)-2)
	}
}

func TestHull2DOfSquarePlusInteriorPoint(t *testing.T) {
	pts := []vecmath.Vec2{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 2, Y: 2}, // interior, should be excluded
	}
	hull := Hull2D(pts)
	if len(hull) != 4 {
		t.Errorf("hull of a square plus an interior point should have 4 vertices, got %d", len(hull))
	}
}

func TestHull2DFewerThanThreePoints(t *testing.T) {
	pts := []vecmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}
	hull := Hull2D(pts)
	if len(hull) != 2 {
		t.Errorf("hull of 2 points should return both unchanged, got %d", len(hull))
	}
}

func TestFlattenNoHolesReturnsOuter(t *testing.T) {
	p := Square(2, 2)
	flat := Flatten(p)
	if len(flat) != len(p.Outer) {
		t.Errorf("flatten with no holes should return the outer ring unchanged, got len %d want %d", len(flat), len(p.Outer))
	}
}

func TestFlattenBridgesHoleIntoOuter(t *testing.T) {
	p := Profile{
		Outer: Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Holes: []Ring{{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}},
	}
	flat := Flatten(p)
	// Bridging adds 2 extra (duplicate) vertices: outer vertex + hole
	// vertex repeated once each to close the slit.
	want := len(p.Outer) + len(p.Holes[0]) + 2
	if len(flat) != want {
		t.Errorf("flattened ring length = %d, want %d", len(flat), want)
	}
}
