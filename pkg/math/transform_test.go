package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTranslateComposesInModelBasis(t *testing.T) {
	// translate(M, v) moves a point by v expressed in M's basis:
	// translate(M, v) * p == M*p + M*(v, 0).
	bases := []Mat4{
		Identity4(),
		Scale(Identity4(), Vec3{2, 3, 4}),
		Rotate(Identity4(), Radians(45), Normalize(Vec3{1, 1, 0})),
		Translate(Rotate(Identity4(), 1.2, Vec3{0, 0, 1}), Vec3{-5, 1, 7}),
	}
	v := Vec3{1.5, -2, 0.5}
	p := Vec3{3, 4, -1}

	for i, m := range bases {
		got := Translate(m, v).TransformPoint(p)
		want := m.TransformPoint(p).Add(m.TransformDirection(v))
		if !vec3Approx(got, want) {
			t.Errorf("basis %d: Translate(M, v)*p = %v, want %v", i, got, want)
		}
	}
}

func TestTranslateColumn(t *testing.T) {
	m := Translate(Identity4(), Vec3{5, 10, 15})

	// Translation should be in column 4
	if m[3] != (Vec4{5, 10, 15, 1}) {
		t.Errorf("Translate: got %v, want (5, 10, 15, 1)", m[3])
	}
}

func TestScaleDiagonal(t *testing.T) {
	m := Scale(Identity4(), Vec3{2, 3, 4})

	if m[0].X != 2 || m[1].Y != 3 || m[2].Z != 4 || m[3].W != 1 {
		t.Errorf("Scale diagonal: got (%f, %f, %f, %f), want (2, 3, 4, 1)", m[0].X, m[1].Y, m[2].Z, m[3].W)
	}
}

func TestRotateY90(t *testing.T) {
	m := Rotate(Identity4(), Radians(90), Vec3{0, 1, 0})
	got := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if !vec3Approx(got, Vec3{0, 0, -1}) {
		t.Errorf("Rotate Y 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateMatchesMathGL(t *testing.T) {
	tests := []struct {
		angle float32
		axis  Vec3
	}{
		{0.5, Vec3{1, 0, 0}},
		{-1.3, Vec3{0, 1, 0}},
		{2.1, Vec3{0, 0, 1}},
		{0.9, Normalize(Vec3{1, 2, 3})},
	}

	for _, tt := range tests {
		got := Rotate(Identity4(), tt.angle, tt.axis)
		want := fromMGL4(mgl32.HomogRotate3D(tt.angle, mgl32.Vec3{tt.axis.X, tt.axis.Y, tt.axis.Z}))
		if !mat4Approx(got, want) {
			t.Errorf("Rotate(%v, %v) = %v, want %v", tt.angle, tt.axis, got, want)
		}
	}
}

func TestTransformChainOrder(t *testing.T) {
	// translate -> rotate -> scale, as the renderer builds model matrices.
	m := Identity4()
	m = Translate(m, Vec3{0, -0.13, 0})
	m = Rotate(m, Radians(90), Vec3{0, 1, 0})
	m = Scale(m, Splat3(0.2))

	ref := mgl32.Translate3D(0, -0.13, 0).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})).
		Mul4(mgl32.Scale3D(0.2, 0.2, 0.2))

	if !mat4Approx(m, fromMGL4(ref)) {
		t.Errorf("chained transform = %v, want %v", m, ref)
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	tests := []struct {
		name         string
		eye, forward Vec3
		up           Vec3
	}{
		{"default camera", Vec3{0, 0, 3}, Vec3{0, 0, -1}, Vec3{0, 1, 0}},
		{"offset eye", Vec3{4, -2, 7}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		// worldUp not perpendicular to forward.
		{"tilted", Vec3{1, 2, 3}, Normalize(Vec3{0.3, 0.6, -1}), Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := LookAt(tt.eye, tt.eye.Add(tt.forward), tt.up)
			if got := view.TransformPoint(tt.eye); !vec3Approx(got, Vec3{}) {
				t.Errorf("LookAt eye maps to %v, want origin", got)
			}
		})
	}
}

func TestLookAtUsesOrthonormalUp(t *testing.T) {
	// With the raw worldUp in the translation row the eye would land off the
	// origin for a tilted view; this pins the corrected behaviour.
	eye := Vec3{0, 5, 5}
	view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	f := Normalize(Vec3{}.Sub(eye))
	r := Normalize(Cross(f, Vec3{0, 1, 0}))
	u := Normalize(Cross(r, f))
	if !approx(view[3].Y, -Dot(u, eye)) {
		t.Errorf("view[3].Y = %v, want -dot(up, eye) = %v", view[3].Y, -Dot(u, eye))
	}
	if approx(view[3].Y, -Dot(Vec3{0, 1, 0}, eye)) {
		t.Errorf("view[3].Y = %v uses worldUp, want orthonormal up", view[3].Y)
	}
}

func TestLookAtMatchesMathGL(t *testing.T) {
	eye := Vec3{3, 4, 5}
	target := Vec3{-1, 0.5, 2}
	up := Vec3{0, 1, 0}

	got := LookAt(eye, target, up)
	want := mgl32.LookAtV(
		mgl32.Vec3{eye.X, eye.Y, eye.Z},
		mgl32.Vec3{target.X, target.Y, target.Z},
		mgl32.Vec3{up.X, up.Y, up.Z},
	)
	if !mat4Approx(got, fromMGL4(want)) {
		t.Errorf("LookAt() = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	fov := Radians(45)
	aspect := float32(800) / 600
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Element [2].W should be -1 and [3].W 0 for perspective projection
	if m[2].W != -1 {
		t.Errorf("Perspective [2].W should be -1, got %f", m[2].W)
	}
	if m[3].W != 0 {
		t.Errorf("Perspective [3].W should be 0, got %f", m[3].W)
	}
	if want := -(far + near) / (far - near); !approx(m[2].Z, want) {
		t.Errorf("Perspective [2].Z = %f, want %f", m[2].Z, want)
	}
	if want := -(2 * far * near) / (far - near); !approx(m[3].Z, want) {
		t.Errorf("Perspective [3].Z = %f, want %f", m[3].Z, want)
	}

	ref := fromMGL4(mgl32.Perspective(fov, aspect, near, far))
	if !mat4Approx(m, ref) {
		t.Errorf("Perspective() = %v, want %v", m, ref)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	m := Perspective(Radians(60), 1, 1, 10)

	ndcZ := func(z float32) float32 {
		clip := m.MulVec4(Vec4{0, 0, z, 1})
		return clip.Z / clip.W
	}
	if got := ndcZ(-1); !approx(got, -1) {
		t.Errorf("near plane maps to %v, want -1", got)
	}
	if got := ndcZ(-10); !approx(got, 1) {
		t.Errorf("far plane maps to %v, want 1", got)
	}
}
