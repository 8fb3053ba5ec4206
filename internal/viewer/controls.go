package viewer

import (
	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/internal/engine/picking"
)

// Toggles holds the render switches flipped by single key presses.
type Toggles struct {
	Wireframe   bool
	Normals     bool
	PostProcess bool
	Bounds      bool
	Flashlight  bool
}

// Update flips every toggle whose key was pressed this frame.
func (t *Toggles) Update(st *input.State) {
	flip := func(k input.Key, v *bool) {
		if st.Pressed(k) {
			*v = !*v
		}
	}
	flip(input.KeyWireframe, &t.Wireframe)
	flip(input.KeyNormals, &t.Normals)
	flip(input.KeyPostProcess, &t.PostProcess)
	flip(input.KeyBounds, &t.Bounds)
	flip(input.KeyFlashlight, &t.Flashlight)
}

// steer applies one frame of input to the camera. Holding the look-back key
// reverses the view only while held.
func steer(cam *camera.FlyCamera, st *input.State, dt float32) {
	cam.Flip(st.Down(input.KeyLookBack))

	forward, right, up := st.Axes()
	cam.Move(forward, right, up, dt)

	d := st.MouseDelta()
	cam.Rotate(d.X, d.Y, dt)
}

// focus fits the camera to the nearest object under the view centre and
// returns its index, or -1 when the view ray hits nothing.
func focus(cam *camera.FlyCamera, objects []SceneObject, fovY float32) int {
	var (
		boxes []picking.AABB
		owner []int
	)
	for i, obj := range objects {
		if b, ok := obj.WorldBounds(); ok {
			boxes = append(boxes, picking.NewAABB(b.Min, b.Max))
			owner = append(owner, i)
		}
	}

	hit, _, ok := picking.Nearest(picking.NewRay(cam.Position(), cam.Front()), boxes)
	if !ok {
		return -1
	}
	box := boxes[hit]
	cam.FitToBounds(box.Min, box.Max, fovY)
	return owner[hit]
}
