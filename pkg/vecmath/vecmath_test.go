package vecmath

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestVec3AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", sum)
	}
	if a.Sub(b) != (Vec3{-3, -3, -3}) {
		t.Errorf("Sub = %v, want {-3 -3 -3}", a.Sub(b))
	}
}

func TestVec3CrossAndDot(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	z := x.Cross(y)
	if !z.Equal(Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("x cross y = %v, want {0 0 1}", z)
	}
	if x.Dot(y) != 0 {
		t.Errorf("x dot y = %v, want 0", x.Dot(y))
	}
	if x.Dot(x) != 1 {
		t.Errorf("x dot x = %v, want 1", x.Dot(x))
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	if !almostEqual(n.Length(), 1, 1e-9) {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}
	if !n.Equal(Vec3{0.6, 0.8, 0}, 1e-9) {
		t.Errorf("normalize(3,4,0) = %v, want {0.6 0.8 0}", n)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	v := Vec3{}
	n := v.Normalize()
	if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
		t.Errorf("normalizing the zero vector should not produce NaN, got %v", n)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 0, 0}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(t=1) = %v, want %v", got, b)
	}
	mid := a.Lerp(b, 0.5)
	if !mid.Equal(Vec3{5, 0, 0}, 1e-9) {
		t.Errorf("Lerp(t=0.5) = %v, want {5 0 0}", mid)
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -3}
	b := Vec3{4, 2, -1}
	if got := a.Min(b); got != (Vec3{1, 2, -3}) {
		t.Errorf("Min = %v, want {1 2 -3}", got)
	}
	if got := a.Max(b); got != (Vec3{4, 5, -1}) {
		t.Errorf("Max = %v, want {4 5 -1}", got)
	}
}

func TestVec2Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	if a.Cross(b) != 1 {
		t.Errorf("Vec2 cross = %v, want 1", a.Cross(b))
	}
	if b.Cross(a) != -1 {
		t.Errorf("Vec2 cross reversed = %v, want -1", b.Cross(a))
	}
}

func TestBoundsOfAndExpand(t *testing.T) {
	pts := []Vec3{{1, 2, 3}, {-1, 5, 0}, {4, -2, 1}}
	b := BoundsOf(pts)
	if b.Min != (Vec3{-1, -2, 0}) {
		t.Errorf("bounds min = %v, want {-1 -2 0}", b.Min)
	}
	if b.Max != (Vec3{4, 5, 3}) {
		t.Errorf("bounds max = %v, want {4 5 3}", b.Max)
	}
}

func TestBoundsOfEmpty(t *testing.T) {
	b := BoundsOf(nil)
	if !b.IsEmpty() {
		t.Error("bounds of no points should be empty")
	}
}

func TestBoundsUnionWithEmpty(t *testing.T) {
	real := BoundsOf([]Vec3{{0, 0, 0}, {1, 1, 1}})
	empty := EmptyBounds()
	if got := real.Union(empty); got != real {
		t.Errorf("union with empty bounds should be identity, got %v", got)
	}
	if got := empty.Union(real); got != real {
		t.Errorf("union with empty bounds should be identity (reversed), got %v", got)
	}
}

func TestBoundsIntersects(t *testing.T) {
	a := BoundsOf([]Vec3{{0, 0, 0}, {2, 2, 2}})
	b := BoundsOf([]Vec3{{1, 1, 1}, {3, 3, 3}})
	c := BoundsOf([]Vec3{{10, 10, 10}, {11, 11, 11}})
	if !a.Intersects(b) {
		t.Error("overlapping bounds should intersect")
	}
	if a.Intersects(c) {
		t.Error("disjoint bounds should not intersect")
	}
}

func TestMat4IdentityTransformsPointUnchanged(t *testing.T) {
	p := Vec3{1, 2, 3}
	got := Identity().TransformPoint(p)
	if got != p {
		t.Errorf("identity transform = %v, want %v", got, p)
	}
}

func TestMat4Translate(t *testing.T) {
	m := Translate(Vec3{5, -3, 2})
	got := m.TransformPoint(Vec3{1, 1, 1})
	if !got.Equal(Vec3{6, -2, 3}, 1e-9) {
		t.Errorf("translate = %v, want {6 -2 3}", got)
	}
}

func TestMat4Scale(t *testing.T) {
	m := Scale(Vec3{2, 3, 4})
	got := m.TransformPoint(Vec3{1, 1, 1})
	if !got.Equal(Vec3{2, 3, 4}, 1e-9) {
		t.Errorf("scale = %v, want {2 3 4}", got)
	}
}

func TestMat4RotateZRoundTrip(t *testing.T) {
	p := Vec3{1, 0, 0}
	angle := math.Pi / 3
	rotated := RotateZ(angle).TransformPoint(p)
	back := RotateZ(-angle).TransformPoint(rotated)
	if !back.Equal(p, 1e-9) {
		t.Errorf("rotate then rotate back = %v, want %v", back, p)
	}
}

func TestMat4MulComposesTransforms(t *testing.T) {
	t1 := Translate(Vec3{1, 0, 0})
	t2 := Translate(Vec3{0, 1, 0})
	combined := t2.Mul(t1)
	got := combined.TransformPoint(Vec3{0, 0, 0})
	if !got.Equal(Vec3{1, 1, 0}, 1e-9) {
		t.Errorf("composed translate = %v, want {1 1 0}", got)
	}
}

func TestMat4NormalMatrixUniformScalePreservesDirection(t *testing.T) {
	m := Scale(Vec3{2, 2, 2})
	n := Vec3{0, 0, 1}
	got := m.NormalMatrix().TransformVector(n).Normalize()
	if !got.Equal(n, 1e-9) {
		t.Errorf("uniform scale should not change normal direction, got %v", got)
	}
}

func TestBoundsTransformedByTranslate(t *testing.T) {
	b := BoundsOf([]Vec3{{0, 0, 0}, {1, 1, 1}})
	got := b.TransformedBy(Translate(Vec3{10, 0, 0}))
	if !got.Min.Equal(Vec3{10, 0, 0}, 1e-9) || !got.Max.Equal(Vec3{11, 1, 1}, 1e-9) {
		t.Errorf("translated bounds = %+v, want min{10 0 0} max{11 1 1}", got)
	}
}
