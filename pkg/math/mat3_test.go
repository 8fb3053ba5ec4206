package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var mat3Samples = []struct {
	name string
	m    Mat3
}{
	{"identity", Identity3()},
	{"scale", Diagonal3(2)},
	{"general", Mat3{{2, 0, 1}, {1, 3, 0}, {0, 1, 4}}},
	{"rotation-scale", Mat3FromMat4(Scale(Rotate(Identity4(), 0.7, Vec3{0, 1, 0}), Vec3{1, 2, 3}))},
	{"negative", Mat3{{-1, 2, 0.5}, {4, -3, 1}, {0.25, 1, -2}}},
}

func TestTransposeInvolution(t *testing.T) {
	for _, tt := range mat3Samples {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transpose(Transpose(tt.m)); got != tt.m {
				t.Errorf("Transpose(Transpose(m)) = %v, want %v", got, tt.m)
			}
		})
	}
}

func TestTransposeSwapsRowsAndColumns(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	want := Mat3{{1, 4, 7}, {2, 5, 8}, {3, 6, 9}}
	if got := Transpose(m); got != want {
		t.Errorf("Transpose() = %v, want %v", got, want)
	}
}

func TestInverseInvolution(t *testing.T) {
	for _, tt := range mat3Samples {
		t.Run(tt.name, func(t *testing.T) {
			got := Inverse(Inverse(tt.m))
			if !mat3Approx(got, tt.m) {
				t.Errorf("Inverse(Inverse(m)) = %v, want %v", got, tt.m)
			}
		})
	}
}

func TestInverseProductIsIdentity(t *testing.T) {
	for _, tt := range mat3Samples {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Mul(Inverse(tt.m)); !mat3Approx(got, Identity3()) {
				t.Errorf("m * Inverse(m) = %v, want identity", got)
			}
		})
	}
}

func TestInverseMatchesMathGL(t *testing.T) {
	for _, tt := range mat3Samples {
		t.Run(tt.name, func(t *testing.T) {
			ref := toMGL3(tt.m).Inv()
			if got := Inverse(tt.m); !mat3Approx(got, fromMGL3(ref)) {
				t.Errorf("Inverse() = %v, mathgl = %v", got, ref)
			}
		})
	}
}

func TestDeterminant3(t *testing.T) {
	m := Mat3{{2, 0, 1}, {1, 3, 0}, {0, 1, 4}}
	if got, want := Determinant3(m), toMGL3(m).Det(); !approx(got, want) {
		t.Errorf("Determinant3() = %v, want %v", got, want)
	}
	if got := Determinant3(Diagonal3(2)); got != 8 {
		t.Errorf("Determinant3(2I) = %v, want 8", got)
	}
}

func TestNormalMatrix(t *testing.T) {
	// Non-uniform scale: normals must be scaled by the reciprocal.
	model := Scale(Identity4(), Vec3{2, 4, 8})
	n := NormalMatrix(model)
	want := Diagonal3(1)
	want[0].X, want[1].Y, want[2].Z = 0.5, 0.25, 0.125
	if !mat3Approx(n, want) {
		t.Errorf("NormalMatrix() = %v, want %v", n, want)
	}

	// Pure rotation: the normal matrix is the rotation itself.
	rot := Rotate(Identity4(), Radians(30), Vec3{0, 0, 1})
	if got := NormalMatrix(rot); !mat3Approx(got, Mat3FromMat4(rot)) {
		t.Errorf("NormalMatrix(rotation) = %v, want %v", got, Mat3FromMat4(rot))
	}
}

func TestMat3FromMat4RoundTrip(t *testing.T) {
	m3 := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	m4 := Mat4FromMat3(m3)

	if m4[3] != (Vec4{0, 0, 0, 1}) {
		t.Errorf("Mat4FromMat3 last column = %v, want (0,0,0,1)", m4[3])
	}
	for i := 0; i < 3; i++ {
		if m4[i].W != 0 {
			t.Errorf("Mat4FromMat3 column %d W = %v, want 0", i, m4[i].W)
		}
	}
	if got := Mat3FromMat4(m4); got != m3 {
		t.Errorf("Mat3FromMat4(Mat4FromMat3(m)) = %v, want %v", got, m3)
	}
}

func mat3Approx(a, b Mat3) bool {
	for i := range a {
		if !vec3Approx(a[i], b[i]) {
			return false
		}
	}
	return true
}

func toMGL3(m Mat3) mgl32.Mat3 {
	return mgl32.Mat3{
		m[0].X, m[0].Y, m[0].Z,
		m[1].X, m[1].Y, m[1].Z,
		m[2].X, m[2].Y, m[2].Z,
	}
}

func fromMGL3(m mgl32.Mat3) Mat3 {
	return Mat3{
		{m[0], m[1], m[2]},
		{m[3], m[4], m[5]},
		{m[6], m[7], m[8]},
	}
}
