// Package matrix provides 3x3 matrix and 3-vector linear algebra for colour space transforms.
package matrix

import "math"

// singularEpsilon is the determinant magnitude below which a matrix is treated as non-invertible.
const singularEpsilon = 1e-10

// Matrix3x3 is a row-major 3x3 matrix.
type Matrix3x3 [3][3]float64

// Vector3 is a column vector of three components.
type Vector3 [3]float64

// Identity returns the 3x3 identity matrix.
func Identity() Matrix3x3 {
	return Diagonal(Vector3{1, 1, 1})
}

// Diagonal returns a matrix with v on the main diagonal and zeros elsewhere.
func Diagonal(v Vector3) Matrix3x3 {
	return Matrix3x3{
		{v[0], 0, 0},
		{0, v[1], 0},
		{0, 0, v[2]},
	}
}

// MulVec returns the product m·v.
func (m Matrix3x3) MulVec(v Vector3) Vector3 {
	var out Vector3
	for i := range 3 {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

// Mul returns the matrix product m·n.
func (m Matrix3x3) Mul(n Matrix3x3) Matrix3x3 {
	var out Matrix3x3
	for i := range 3 {
		for j := range 3 {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// Transpose returns the transpose of m.
func (m Matrix3x3) Transpose() Matrix3x3 {
	var out Matrix3x3
	for i := range 3 {
		for j := range 3 {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Scale multiplies every element of m by s.
func (m Matrix3x3) Scale(s float64) Matrix3x3 {
	var out Matrix3x3
	for i := range 3 {
		for j := range 3 {
			out[i][j] = m[i][j] * s
		}
	}
	return out
}

// Determinant returns the determinant of m using cofactor expansion along the first row.
func (m Matrix3x3) Determinant() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns the inverse of m.
// The second return value is false when m is singular (|det| < 1e-10), in which
// case the returned matrix is the zero matrix.
func (m Matrix3x3) Inverse() (Matrix3x3, bool) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon {
		return Matrix3x3{}, false
	}

	// Adjugate (transposed cofactor matrix) divided by the determinant.
	adj := Matrix3x3{
		{
			m[1][1]*m[2][2] - m[1][2]*m[2][1],
			m[0][2]*m[2][1] - m[0][1]*m[2][2],
			m[0][1]*m[1][2] - m[0][2]*m[1][1],
		},
		{
			m[1][2]*m[2][0] - m[1][0]*m[2][2],
			m[0][0]*m[2][2] - m[0][2]*m[2][0],
			m[0][2]*m[1][0] - m[0][0]*m[1][2],
		},
		{
			m[1][0]*m[2][1] - m[1][1]*m[2][0],
			m[0][1]*m[2][0] - m[0][0]*m[2][1],
			m[0][0]*m[1][1] - m[0][1]*m[1][0],
		},
	}
	return adj.Scale(1 / det), true
}

// Scale multiplies every component of v by s.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v[0] * s, v[1] * s, v[2] * s}
}

// BradfordD65ToD50 returns the Bradford chromatic adaptation matrix from the D65
// white point to D50, operating on XYZ tristimulus values.
func BradfordD65ToD50() Matrix3x3 {
	return Matrix3x3{
		{1.0478112, 0.0228866, -0.0501270},
		{0.0295424, 0.9904844, -0.0170491},
		{-0.0092345, 0.0150436, 0.7521316},
	}
}

// BradfordD50ToD65 returns the Bradford chromatic adaptation matrix from D50 back to D65.
func BradfordD50ToD65() Matrix3x3 {
	return Matrix3x3{
		{0.9555766, -0.0230393, 0.0631636},
		{-0.0282895, 1.0099416, 0.0210077},
		{0.0122982, -0.0204830, 1.3299098},
	}
}
