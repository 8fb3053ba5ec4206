// Package camera provides the free-fly camera used by the viewer.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

// FlyCamera moves freely through the scene, steered by yaw and pitch.
type FlyCamera struct {
	position math.Vec3
	front    math.Vec3
	right    math.Vec3
	up       math.Vec3
	worldUp  math.Vec3

	Yaw   float32 // radians, -π/2 looks down -Z
	Pitch float32 // radians

	Speed       float32 // units per second
	AngleChange float32 // radians per mouse unit per second
	PitchBound  float32 // |Pitch| never exceeds this

	flipped bool
}

// NewFlyCamera creates a camera at (0,0,3) looking down -Z.
func NewFlyCamera() *FlyCamera {
	c := &FlyCamera{
		position:    math.Vec3{X: 0, Y: 0, Z: 3},
		worldUp:     math.Vec3{X: 0, Y: 1, Z: 0},
		Yaw:         -math32.Pi / 2,
		Pitch:       0,
		Speed:       3,
		AngleChange: math.Radians(8),
		PitchBound:  math.Radians(89),
	}
	c.updateVectors()
	return c
}

// SetPosition moves the camera without changing its orientation.
func (c *FlyCamera) SetPosition(p math.Vec3) {
	c.position = p
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() math.Vec3 {
	return c.position
}

// Front returns the unit view direction.
func (c *FlyCamera) Front() math.Vec3 {
	return c.front
}

// Right returns the unit right vector.
func (c *FlyCamera) Right() math.Vec3 {
	return c.right
}

// Up returns the unit camera up vector.
func (c *FlyCamera) Up() math.Vec3 {
	return c.up
}

// Flip reverses the view direction while flip is true.
func (c *FlyCamera) Flip(flip bool) {
	c.flipped = flip
	c.updateVectors()
}

// Move translates the camera along its own axes. Each axis value is
// typically -1, 0 or 1 and is scaled by Speed*dt.
func (c *FlyCamera) Move(forward, right, up, dt float32) {
	step := c.Speed * dt
	c.position = c.position.
		Add(c.front.Scale(forward * step)).
		Add(c.right.Scale(right * step)).
		Add(c.up.Scale(up * step))
}

// Rotate applies a mouse delta. Moving right turns right and moving down
// looks down. Pitch is clamped to ±PitchBound.
func (c *FlyCamera) Rotate(dx, dy, dt float32) {
	c.Yaw += dx * c.AngleChange * dt
	c.Pitch -= dy * c.AngleChange * dt

	if c.Pitch > c.PitchBound {
		c.Pitch = c.PitchBound
	} else if c.Pitch < -c.PitchBound {
		c.Pitch = -c.PitchBound
	}
	c.updateVectors()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.position, c.position.Add(c.front), c.up)
}

// FitToBounds places the camera in front of the box so that its bounding
// sphere fills the vertical field of view, looking down -Z.
func (c *FlyCamera) FitToBounds(minB, maxB math.Vec3, fovY float32) {
	center := minB.Add(maxB).Scale(0.5)
	radius := maxB.Sub(minB).Length() / 2
	if radius == 0 {
		radius = 1
	}

	dist := radius / math32.Sin(fovY/2)
	c.position = center.Add(math.Vec3{Z: dist})
	c.Yaw = -math32.Pi / 2
	c.Pitch = 0
	c.updateVectors()
}

func (c *FlyCamera) updateVectors() {
	cosPitch := math32.Cos(c.Pitch)
	front := math.Normalize(math.Vec3{
		X: math32.Cos(c.Yaw) * cosPitch,
		Y: math32.Sin(c.Pitch),
		Z: math32.Sin(c.Yaw) * cosPitch,
	})
	if c.flipped {
		front = front.Neg()
	}

	c.front = front
	c.right = math.Normalize(math.Cross(c.front, c.worldUp))
	c.up = math.Normalize(math.Cross(c.right, c.front))
}
