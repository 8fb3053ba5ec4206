package math

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// m[c] is column c; element (row r, column c) is the r-th component of m[c].
//
//	[m[0].X m[1].X m[2].X m[3].X]
//	[m[0].Y m[1].Y m[2].Y m[3].Y]
//	[m[0].Z m[1].Z m[2].Z m[3].Z]
//	[m[0].W m[1].W m[2].W m[3].W]
type Mat4 [4]Vec4

// Identity4 returns an identity matrix.
func Identity4() Mat4 {
	return Diagonal4(1)
}

// Diagonal4 returns a matrix with f on the whole diagonal, including [3].W.
func Diagonal4(f float32) Mat4 {
	return Mat4{
		{f, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, f, 0},
		{0, 0, 0, f},
	}
}

// Mat4FromMat3 embeds m in the upper-left block of an otherwise identity matrix.
func Mat4FromMat3(m Mat3) Mat4 {
	return Mat4{
		Vec4FromVec3(m[0]),
		Vec4FromVec3(m[1]),
		Vec4FromVec3(m[2]),
		{0, 0, 0, 1},
	}
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return m[0].Scale(v.X).
		Add(m[1].Scale(v.Y)).
		Add(m[2].Scale(v.Z)).
		Add(m[3].Scale(v.W))
}

// Mul multiplies this matrix by another (m * other).
// Column i of the result is m applied to column i of other.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for i := range other {
		result[i] = m.MulVec4(other[i])
	}
	return result
}

// TransformPoint transforms a point (w=1) without perspective division.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3FromVec4(m.MulVec4(Point4(p)))
}

// TransformDirection transforms a direction vector (ignores translation).
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3FromVec4(m.MulVec4(Vec4FromVec3(d)))
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0].X
}
