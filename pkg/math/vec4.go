package math

// Vec4 is a 4-component vector. As a matrix column it holds one column of a Mat4.
type Vec4 struct {
	X, Y, Z, W float32
}

// Vec4FromVec3 extends v with W = 0, i.e. treats it as a direction.
func Vec4FromVec3(v Vec3) Vec4 {
	return Vec4{v.X, v.Y, v.Z, 0}
}

// Point4 extends p with W = 1.
func Point4(p Vec3) Vec4 {
	return Vec4{p.X, p.Y, p.Z, 1}
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}
