package vecmath

import "math"

// Mat4 is a column-major 4x4 affine matrix: m[col*4+row].
// Identity() is the zero-value-incompatible identity matrix; always
// construct via Identity(), never a bare Mat4{}.
type Mat4 struct {
	m [16]float64
}

func Identity() Mat4 {
	var r Mat4
	r.m[0], r.m[5], r.m[10], r.m[15] = 1, 1, 1, 1
	return r
}

func (m Mat4) At(col, row int) float64 { return m.m[col*4+row] }

func Translate(v Vec3) Mat4 {
	r := Identity()
	r.m[12], r.m[13], r.m[14] = v.X, v.Y, v.Z
	return r
}

func Scale(v Vec3) Mat4 {
	r := Identity()
	r.m[0], r.m[5], r.m[10] = v.X, v.Y, v.Z
	return r
}

// FromRows builds a Mat4 from a row-major 4x4 array using the multmatrix
// convention: rows[row][col], translation in the last column of the first
// three rows, with the fourth row normally [0 0 0 1].
func FromRows(rows [4][4]float64) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r.m[col*4+row] = rows[row][col]
		}
	}
	return r
}

func RotateX(radians float64) Mat4 {
	r := Identity()
	c, s := math.Cos(radians), math.Sin(radians)
	r.m[5], r.m[6] = c, s
	r.m[9], r.m[10] = -s, c
	return r
}

func RotateY(radians float64) Mat4 {
	r := Identity()
	c, s := math.Cos(radians), math.Sin(radians)
	r.m[0], r.m[2] = c, -s
	r.m[8], r.m[10] = s, c
	return r
}

func RotateZ(radians float64) Mat4 {
	r := Identity()
	c, s := math.Cos(radians), math.Sin(radians)
	r.m[0], r.m[1] = c, s
	r.m[4], r.m[5] = -s, c
	return r
}

// RotateAxis builds a rotation matrix about an arbitrary unit axis using
// Rodrigues' rotation formula. If axis is near-zero it falls back to the
// identity rather than producing NaNs.
func RotateAxis(axis Vec3, radians float64) Mat4 {
	axis = axis.Normalize()
	if axis == (Vec3{}) {
		return Identity()
	}
	c, s := math.Cos(radians), math.Sin(radians)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	r := Identity()
	r.m[0] = t*x*x + c
	r.m[1] = t*x*y + s*z
	r.m[2] = t*x*z - s*y

	r.m[4] = t*x*y - s*z
	r.m[5] = t*y*y + c
	r.m[6] = t*y*z + s*x

	r.m[8] = t*x*z + s*y
	r.m[9] = t*y*z - s*x
	r.m[10] = t*z*z + c
	return r
}

// Mul returns a*b, applying b first then a to a point (a.Mul(b).TransformPoint(p) == a.TransformPoint(b.TransformPoint(p))).
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a.m[k*4+row] * b.m[col*4+k]
			}
			r.m[col*4+row] = sum
		}
	}
	return r
}

func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.m[0]*p.X + m.m[4]*p.Y + m.m[8]*p.Z + m.m[12],
		Y: m.m[1]*p.X + m.m[5]*p.Y + m.m[9]*p.Z + m.m[13],
		Z: m.m[2]*p.X + m.m[6]*p.Y + m.m[10]*p.Z + m.m[14],
	}
}

// TransformVector applies only the linear part (no translation) — correct
// for directions, but not for normals when the matrix is non-uniformly
// scaled; use NormalMatrix().TransformVector for normals.
func (m Mat4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m.m[0]*v.X + m.m[4]*v.Y + m.m[8]*v.Z,
		Y: m.m[1]*v.X + m.m[5]*v.Y + m.m[9]*v.Z,
		Z: m.m[2]*v.X + m.m[6]*v.Y + m.m[10]*v.Z,
	}
}

// NormalMatrix returns the inverse-transpose of the linear (3x3) part of m,
// the correct transform for normal vectors under non-uniform scale. Falls
// back to m's own linear part (identity-safe) if m is singular.
func (m Mat4) NormalMatrix() Mat4 {
	inv, ok := m.linear3Inverse()
	if !ok {
		return m
	}
	// Transpose the 3x3 inverse, embedded back into a Mat4 linear part.
	var r Mat4 = Identity()
	r.m[0], r.m[4], r.m[8] = inv[0], inv[1], inv[2]
	r.m[1], r.m[5], r.m[9] = inv[3], inv[4], inv[5]
	r.m[2], r.m[6], r.m[10] = inv[6], inv[7], inv[8]
	return r
}

// linear3Inverse inverts the upper-left 3x3 linear part, row-major in the
// returned [9]float64. ok is false if the determinant is too close to zero.
func (m Mat4) linear3Inverse() ([9]float64, bool) {
	a, b, c := m.m[0], m.m[4], m.m[8]
	d, e, f := m.m[1], m.m[5], m.m[9]
	g, h, i := m.m[2], m.m[6], m.m[10]

	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	if math.Abs(det) < 1e-12 {
		return [9]float64{}, false
	}
	invDet := 1 / det
	return [9]float64{
		(e*i - f*h) * invDet, (c*h - b*i) * invDet, (b*f - c*e) * invDet,
		(f*g - d*i) * invDet, (a*i - c*g) * invDet, (c*d - a*f) * invDet,
		(d*h - e*g) * invDet, (b*g - a*h) * invDet, (a*e - b*d) * invDet,
	}, true
}

// Determinant3 returns the determinant of the upper-left 3x3 linear part,
// used by graph validation to flag near-singular transforms.
func (m Mat4) Determinant3() float64 {
	a, b, c := m.m[0], m.m[4], m.m[8]
	d, e, f := m.m[1], m.m[5], m.m[9]
	g, h, i := m.m[2], m.m[6], m.m[10]
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}
