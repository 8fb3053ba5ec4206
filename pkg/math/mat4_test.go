package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIdentity4(t *testing.T) {
	m := Identity4()
	// Diagonal should be 1
	if m[0].X != 1 || m[1].Y != 1 || m[2].Z != 1 || m[3].W != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[0].Y != 0 || m[1].X != 0 || m[3].X != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Rotate(Identity4(), 0.3, Vec3{1, 0, 0}), Vec3{1, 2, 3})
	if got := m.Mul(Identity4()); got != m {
		t.Errorf("M * I should equal M, got %v", got)
	}
	if got := Identity4().Mul(m); got != m {
		t.Errorf("I * M should equal M, got %v", got)
	}
}

func TestMulMatchesMathGL(t *testing.T) {
	a := Mat4{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16}}
	b := Mat4{{2, 0, 0, 1}, {0, 3, 1, 0}, {1, 0, 4, 0}, {0, 1, 0, 5}}

	got := a.Mul(b)
	want := fromMGL4(toMGL4(a).Mul4(toMGL4(b)))
	if got != want {
		t.Errorf("Mul() = %v, want %v", got, want)
	}
}

func TestMulIsColumnMajor(t *testing.T) {
	// Column i of a*b must be a applied to column i of b.
	a := Mat4{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16}}
	b := Mat4{{1, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}

	got := a.Mul(b)
	if got[0] != a[0] {
		t.Errorf("(a*e0)[0] = %v, want first column of a %v", got[0], a[0])
	}
	if got[1] != (Vec4{}) {
		t.Errorf("(a*e0)[1] = %v, want zero", got[1])
	}
}

func TestDiagonal4(t *testing.T) {
	m := Diagonal4(0)
	if m != (Mat4{}) {
		t.Errorf("Diagonal4(0) = %v, want zero matrix", m)
	}
	if got := Diagonal4(3)[3].W; got != 3 {
		t.Errorf("Diagonal4(3)[3].W = %v, want 3", got)
	}
}

func TestTransformPointAndDirection(t *testing.T) {
	m := Translate(Identity4(), Vec3{10, 20, 30})
	p := Vec3{1, 2, 3}

	if got := m.TransformPoint(p); got != (Vec3{11, 22, 33}) {
		t.Errorf("TransformPoint: got %v, want (11, 22, 33)", got)
	}
	if got := m.TransformDirection(p); got != p {
		t.Errorf("TransformDirection should ignore translation: got %v, want %v", got, p)
	}
}

func TestPtrAddressesFirstColumn(t *testing.T) {
	m := Identity4()
	m[0].X = 42
	if *m.Ptr() != 42 {
		t.Errorf("Ptr() = %v, want 42", *m.Ptr())
	}
}

func mat4Approx(a, b Mat4) bool {
	for i := range a {
		if !approx(a[i].X, b[i].X) || !approx(a[i].Y, b[i].Y) ||
			!approx(a[i].Z, b[i].Z) || !approx(a[i].W, b[i].W) {
			return false
		}
	}
	return true
}

func toMGL4(m Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for c := 0; c < 4; c++ {
		out[c*4+0] = m[c].X
		out[c*4+1] = m[c].Y
		out[c*4+2] = m[c].Z
		out[c*4+3] = m[c].W
	}
	return out
}

func fromMGL4(m mgl32.Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		out[c] = Vec4{m[c*4+0], m[c*4+1], m[c*4+2], m[c*4+3]}
	}
	return out
}
