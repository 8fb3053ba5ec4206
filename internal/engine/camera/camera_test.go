package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

const epsilon = 1e-4

func vecApprox(a, b math.Vec3) bool {
	return math32.Abs(a.X-b.X) < epsilon &&
		math32.Abs(a.Y-b.Y) < epsilon &&
		math32.Abs(a.Z-b.Z) < epsilon
}

func TestNewFlyCamera(t *testing.T) {
	c := NewFlyCamera()

	if c.Position() != (math.Vec3{Z: 3}) {
		t.Errorf("position = %v, want (0,0,3)", c.Position())
	}
	if !vecApprox(c.Front(), math.Vec3{Z: -1}) {
		t.Errorf("front = %v, want (0,0,-1)", c.Front())
	}
	if !vecApprox(c.Right(), math.Vec3{X: 1}) {
		t.Errorf("right = %v, want (1,0,0)", c.Right())
	}
	if !vecApprox(c.Up(), math.Vec3{Y: 1}) {
		t.Errorf("up = %v, want (0,1,0)", c.Up())
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name              string
		forward, right, u float32
		want              math.Vec3
	}{
		{"forward", 1, 0, 0, math.Vec3{Z: 3 - 1.5}},
		{"back", -1, 0, 0, math.Vec3{Z: 3 + 1.5}},
		{"strafe right", 0, 1, 0, math.Vec3{X: 1.5, Z: 3}},
		{"strafe left", 0, -1, 0, math.Vec3{X: -1.5, Z: 3}},
		{"rise", 0, 0, 1, math.Vec3{Y: 1.5, Z: 3}},
		{"sink", 0, 0, -1, math.Vec3{Y: -1.5, Z: 3}},
		{"still", 0, 0, 0, math.Vec3{Z: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera()
			c.Move(tt.forward, tt.right, tt.u, 0.5)
			if !vecApprox(c.Position(), tt.want) {
				t.Errorf("position = %v, want %v", c.Position(), tt.want)
			}
		})
	}
}

func TestRotateClampsPitch(t *testing.T) {
	c := NewFlyCamera()

	// Mouse moved far up: pitch hits the bound instead of flipping over.
	c.Rotate(0, -10000, 1)
	if c.Pitch != c.PitchBound {
		t.Errorf("pitch = %v, want %v", c.Pitch, c.PitchBound)
	}
	if c.Front().Y <= 0.99 {
		t.Errorf("front = %v, want nearly straight up", c.Front())
	}

	c.Rotate(0, 10000, 1)
	if c.Pitch != -c.PitchBound {
		t.Errorf("pitch = %v, want %v", c.Pitch, -c.PitchBound)
	}
}

func TestRotateYaw(t *testing.T) {
	c := NewFlyCamera()
	c.AngleChange = math32.Pi / 2

	// A quarter turn to the right looks down +X.
	c.Rotate(1, 0, 1)
	if !vecApprox(c.Front(), math.Vec3{X: 1}) {
		t.Errorf("front = %v, want (1,0,0)", c.Front())
	}
	if !vecApprox(c.Right(), math.Vec3{Z: 1}) {
		t.Errorf("right = %v, want (0,0,1)", c.Right())
	}
}

func TestFlip(t *testing.T) {
	c := NewFlyCamera()
	c.Flip(true)
	if !vecApprox(c.Front(), math.Vec3{Z: 1}) {
		t.Errorf("flipped front = %v, want (0,0,1)", c.Front())
	}
	c.Flip(false)
	if !vecApprox(c.Front(), math.Vec3{Z: -1}) {
		t.Errorf("front = %v, want (0,0,-1)", c.Front())
	}
}

func TestViewMatrixMapsEyeToOrigin(t *testing.T) {
	c := NewFlyCamera()
	c.SetPosition(math.Vec3{X: 2, Y: -1, Z: 7})
	c.Rotate(13, -4, 0.1)

	view := c.ViewMatrix()
	if got := view.TransformPoint(c.Position()); !vecApprox(got, math.Vec3{}) {
		t.Errorf("eye maps to %v, want origin", got)
	}
	ahead := view.TransformPoint(c.Position().Add(c.Front()))
	if !vecApprox(ahead, math.Vec3{Z: -1}) {
		t.Errorf("point ahead maps to %v, want (0,0,-1)", ahead)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewFlyCamera()
	c.Rotate(50, 20, 1)

	minB := math.Vec3{X: -1, Y: -1, Z: -1}
	maxB := math.Vec3{X: 1, Y: 1, Z: 1}
	c.FitToBounds(minB, maxB, math.Radians(60))

	// Radius sqrt(3), sin(30°) = 0.5.
	want := math.Vec3{Z: 2 * math32.Sqrt(3)}
	if !vecApprox(c.Position(), want) {
		t.Errorf("position = %v, want %v", c.Position(), want)
	}
	if !vecApprox(c.Front(), math.Vec3{Z: -1}) {
		t.Errorf("front = %v, want (0,0,-1)", c.Front())
	}
}
