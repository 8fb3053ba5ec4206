package math

// Mat3 is a 3x3 matrix stored as three columns.
type Mat3 [3]Vec3

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Diagonal3(1)
}

// Diagonal3 returns a matrix with f on the diagonal and zeros elsewhere.
func Diagonal3(f float32) Mat3 {
	return Mat3{
		{f, 0, 0},
		{0, f, 0},
		{0, 0, f},
	}
}

// Mat3FromMat4 returns the upper-left 3x3 block of m.
func Mat3FromMat4(m Mat4) Mat3 {
	return Mat3{
		Vec3FromVec4(m[0]),
		Vec3FromVec4(m[1]),
		Vec3FromVec4(m[2]),
	}
}

// MulScalar returns m with every element multiplied by f.
func (m Mat3) MulScalar(f float32) Mat3 {
	return Mat3{m[0].Scale(f), m[1].Scale(f), m[2].Scale(f)}
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return m[0].Scale(v.X).Add(m[1].Scale(v.Y)).Add(m[2].Scale(v.Z))
}

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	return Mat3{m.MulVec3(other[0]), m.MulVec3(other[1]), m.MulVec3(other[2])}
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat3) Ptr() *float32 {
	return &m[0].X
}

// Transpose swaps rows and columns.
func Transpose(m Mat3) Mat3 {
	return Mat3{
		{m[0].X, m[1].X, m[2].X},
		{m[0].Y, m[1].Y, m[2].Y},
		{m[0].Z, m[1].Z, m[2].Z},
	}
}

// Determinant3 returns det(m), expanded along the first row.
func Determinant3(m Mat3) float32 {
	return m[0].X*(m[1].Y*m[2].Z-m[2].Y*m[1].Z) -
		m[1].X*(m[0].Y*m[2].Z-m[2].Y*m[0].Z) +
		m[2].X*(m[0].Y*m[1].Z-m[1].Y*m[0].Z)
}

// Inverse returns the inverse of m via the adjugate.
//
// m must be invertible. A singular matrix divides by zero and yields
// Inf/NaN elements; callers pass normal matrices of non-degenerate transforms.
func Inverse(m Mat3) Mat3 {
	det := Determinant3(m)

	// Cofactor matrix, laid out so that cof[c] holds the cofactors of column c.
	var cof Mat3
	cof[0].X = m[1].Y*m[2].Z - m[2].Y*m[1].Z
	cof[1].X = -(m[0].Y*m[2].Z - m[2].Y*m[0].Z)
	cof[2].X = m[0].Y*m[1].Z - m[1].Y*m[0].Z

	cof[0].Y = -(m[1].X*m[2].Z - m[2].X*m[1].Z)
	cof[1].Y = m[0].X*m[2].Z - m[2].X*m[0].Z
	cof[2].Y = -(m[0].X*m[1].Z - m[1].X*m[0].Z)

	cof[0].Z = m[1].X*m[2].Y - m[2].X*m[1].Y
	cof[1].Z = -(m[0].X*m[2].Y - m[2].X*m[0].Y)
	cof[2].Z = m[0].X*m[1].Y - m[1].X*m[0].Y

	return Transpose(cof).MulScalar(1 / det)
}

// NormalMatrix returns the matrix that transforms normals under model:
// the inverse transpose of its upper-left 3x3 block.
func NormalMatrix(model Mat4) Mat3 {
	return Transpose(Inverse(Mat3FromMat4(model)))
}
