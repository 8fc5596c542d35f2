package meshkit

import (
	"testing"

	"github.com/chazu/csgforge/pkg/vecmath"
)

func triangleMesh() *Mesh {
	m := New()
	m.AddTriangle(
		vecmath.Vec3{X: 0, Y: 0, Z: 0},
		vecmath.Vec3{X: 1, Y: 0, Z: 0},
		vecmath.Vec3{X: 0, Y: 1, Z: 0},
	)
	return m
}

func TestAddTriangleBuildsValidIndices(t *testing.T) {
	m := triangleMesh()
	if m.TriangleCount() != 1 {
		t.Fatalf("triangle count = %d, want 1", m.TriangleCount())
	}
	if len(m.Indices)%3 != 0 {
		t.Errorf("index count %d not a multiple of 3", len(m.Indices))
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals count %d != vertices count %d", len(m.Normals), len(m.Vertices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Errorf("index %d out of range for %d vertices", idx, len(m.Vertices))
		}
	}
}

func TestAddTriangleDropsDegenerate(t *testing.T) {
	m := New()
	// Three collinear points: zero-area triangle.
	m.AddTriangle(
		vecmath.Vec3{X: 0, Y: 0, Z: 0},
		vecmath.Vec3{X: 1, Y: 0, Z: 0},
		vecmath.Vec3{X: 2, Y: 0, Z: 0},
	)
	if !m.IsEmpty() {
		t.Error("degenerate (collinear) triangle should be dropped")
	}
}

func TestAddTriangleNormalIsUnitLength(t *testing.T) {
	m := triangleMesh()
	for _, n := range m.Normals {
		l := n.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("normal length = %v, want ~1", l)
		}
	}
}

func TestRecomputeBounds(t *testing.T) {
	m := triangleMesh()
	if m.Bounds.Min != (vecmath.Vec3{X: 0, Y: 0, Z: 0}) {
		t.Errorf("bounds min = %v, want origin", m.Bounds.Min)
	}
	if m.Bounds.Max != (vecmath.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Errorf("bounds max = %v, want {1 1 0}", m.Bounds.Max)
	}
}

func TestTransformTranslatesVerticesAndBounds(t *testing.T) {
	m := triangleMesh()
	out := m.Transform(vecmath.Translate(vecmath.Vec3{X: 5, Y: 0, Z: 0}))
	if out.Bounds.Min.X != 5 {
		t.Errorf("translated bounds min X = %v, want 5", out.Bounds.Min.X)
	}
	if len(out.Vertices) != len(m.Vertices) {
		t.Errorf("transform should preserve vertex count")
	}
	// Original mesh must be untouched.
	if m.Bounds.Min.X != 0 {
		t.Errorf("Transform must not mutate the receiver, got bounds min X = %v", m.Bounds.Min.X)
	}
}

func TestMergeConcatenatesAndRebasesIndices(t *testing.T) {
	a := triangleMesh()
	b := triangleMesh()
	aVerts := len(a.Vertices)
	a.Merge(b)
	if len(a.Vertices) != 2*aVerts {
		t.Errorf("merged vertex count = %d, want %d", len(a.Vertices), 2*aVerts)
	}
	if a.TriangleCount() != 2 {
		t.Errorf("merged triangle count = %d, want 2", a.TriangleCount())
	}
	for _, idx := range a.Indices {
		if int(idx) >= len(a.Vertices) {
			t.Errorf("merged index %d out of range for %d vertices", idx, len(a.Vertices))
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := triangleMesh()
	clone := m.Clone()
	if clone.TriangleCount() != m.TriangleCount() {
		t.Fatalf("clone triangle count = %d, want %d", clone.TriangleCount(), m.TriangleCount())
	}
	clone.Vertices[0] = vecmath.Vec3{X: 99, Y: 99, Z: 99}
	if m.Vertices[0] == (vecmath.Vec3{X: 99, Y: 99, Z: 99}) {
		t.Error("mutating a clone's vertices should not affect the original")
	}
}

func TestSmoothedWeldsSharedVertices(t *testing.T) {
	m := New()
	// Two triangles sharing an edge, forming a quad in the XY plane.
	m.AddTriangle(
		vecmath.Vec3{X: 0, Y: 0, Z: 0},
		vecmath.Vec3{X: 1, Y: 0, Z: 0},
		vecmath.Vec3{X: 1, Y: 1, Z: 0},
	)
	m.AddTriangle(
		vecmath.Vec3{X: 0, Y: 0, Z: 0},
		vecmath.Vec3{X: 1, Y: 1, Z: 0},
		vecmath.Vec3{X: 0, Y: 1, Z: 0},
	)
	smoothed := m.Smoothed()
	if len(smoothed.Vertices) >= len(m.Vertices) {
		t.Errorf("smoothed welded vertex count %d should be less than flat count %d",
			len(smoothed.Vertices), len(m.Vertices))
	}
	if smoothed.TriangleCount() != m.TriangleCount() {
		t.Errorf("smoothing should preserve triangle count")
	}
	for _, n := range smoothed.Normals {
		l := n.Length()
		if l < 0.999 || l > 1.001 {
			t.Errorf("smoothed normal length = %v, want ~1", l)
		}
	}
}

func TestAllPointsReturnsIndependentCopy(t *testing.T) {
	m := triangleMesh()
	pts := m.AllPoints()
	if len(pts) != len(m.Vertices) {
		t.Fatalf("AllPoints length = %d, want %d", len(pts), len(m.Vertices))
	}
	pts[0] = vecmath.Vec3{X: -1, Y: -1, Z: -1}
	if m.Vertices[0] == (vecmath.Vec3{X: -1, Y: -1, Z: -1}) {
		t.Error("AllPoints should return a copy, not alias Vertices")
	}
}

func TestWireRoundTrip(t *testing.T) {
	m := triangleMesh()
	wire := m.ToWire("tri")
	if wire.NodeName != "tri" {
		t.Errorf("wire node name = %q, want %q", wire.NodeName, "tri")
	}
	if len(wire.Vertices) != len(m.Vertices)*3 {
		t.Errorf("wire vertex float count = %d, want %d", len(wire.Vertices), len(m.Vertices)*3)
	}
	back := FromWire(wire)
	if back.TriangleCount() != m.TriangleCount() {
		t.Errorf("round-tripped triangle count = %d, want %d", back.TriangleCount(), m.TriangleCount())
	}
	for i, v := range back.Vertices {
		if !v.Equal(m.Vertices[i], 1e-5) {
			t.Errorf("round-tripped vertex %d = %v, want %v", i, v, m.Vertices[i])
		}
	}
}
