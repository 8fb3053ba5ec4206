package math

import "github.com/chewxy/math32"

// Translate returns m * T, where T translates by v.
// Chained calls compose left to right: Translate then Rotate then Scale
// applies the scale to a vertex first.
func Translate(m Mat4, v Vec3) Mat4 {
	t := Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{v.X, v.Y, v.Z, 1},
	}
	return m.Mul(t)
}

// Scale returns m * S, where S scales each axis by the matching component of v.
func Scale(m Mat4, v Vec3) Mat4 {
	s := Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
	return m.Mul(s)
}

// Rotate returns m * R, where R rotates by angle radians around axis.
// axis must already be normalized.
func Rotate(m Mat4, angle float32, axis Vec3) Mat4 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	r := Mat4{
		{t*x*x + c, t*y*x + z*s, t*z*x - y*s, 0},
		{t*x*y - z*s, t*y*y + c, t*z*y + x*s, 0},
		{t*x*z + y*s, t*y*z - x*s, t*z*z + c, 0},
		{0, 0, 0, 1},
	}
	return m.Mul(r)
}

// LookAt returns a view matrix for a camera at eye looking towards target.
//
// The translation column uses the re-orthogonalised up vector, so eye always
// maps to the view-space origin even when worldUp is not perpendicular to the
// viewing direction. eye and target must differ, and worldUp must not be
// parallel to target-eye.
func LookAt(eye, target, worldUp Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	r := f.Cross(worldUp).Normalize()
	u := r.Cross(f).Normalize()

	return Mat4{
		{r.X, u.X, -f.X, 0},
		{r.Y, u.Y, -f.Y, 0},
		{r.Z, u.Z, -f.Z, 0},
		{-r.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}

// Perspective returns a right-handed OpenGL projection matrix.
// fovY is in radians, aspect is width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	tanHalf := math32.Tan(fovY / 2)
	depth := far - near

	var p Mat4
	p[0].X = 1 / (aspect * tanHalf)
	p[1].Y = 1 / tanHalf
	p[2].Z = -(far + near) / depth
	p[2].W = -1
	p[3].Z = -(2 * far * near) / depth
	return p
}

// Radians converts degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * math32.Pi / 180
}
