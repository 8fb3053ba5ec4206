package viewer

import (
	"testing"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/engine/camera"
	"github.com/Faultbox/objviewer/internal/engine/input"
	"github.com/Faultbox/objviewer/pkg/math"
)

func TestTogglesUpdate(t *testing.T) {
	tg := Toggles{PostProcess: true}
	st := input.NewState()

	st.SetKey(input.KeyWireframe, true)
	st.SetKey(input.KeyPostProcess, true)
	tg.Update(st)
	if !tg.Wireframe || tg.PostProcess {
		t.Errorf("after first press: %+v", tg)
	}

	// Holding the keys does not toggle again.
	st.BeginFrame()
	tg.Update(st)
	if !tg.Wireframe || tg.PostProcess {
		t.Errorf("held keys toggled again: %+v", tg)
	}

	st.BeginFrame()
	st.SetKey(input.KeyWireframe, false)
	st.SetKey(input.KeyWireframe, true)
	st.SetKey(input.KeyNormals, true)
	st.SetKey(input.KeyBounds, true)
	st.SetKey(input.KeyFlashlight, true)
	tg.Update(st)
	want := Toggles{Normals: true, Bounds: true, Flashlight: true}
	if tg != want {
		t.Errorf("toggles = %+v, want %+v", tg, want)
	}
}

func TestSteer(t *testing.T) {
	cam := camera.NewFlyCamera()
	st := input.NewState()

	st.SetKey(input.KeyForward, true)
	steer(cam, st, 1)
	if !vecApprox(cam.Position(), math.Vec3{}) {
		t.Errorf("position = %v, want origin after 1s forward at speed 3", cam.Position())
	}

	// Look back only while held.
	st.SetKey(input.KeyForward, false)
	st.SetKey(input.KeyLookBack, true)
	steer(cam, st, 1)
	if !vecApprox(cam.Front(), math.Vec3{Z: 1}) {
		t.Errorf("front while looking back = %v", cam.Front())
	}
	st.SetKey(input.KeyLookBack, false)
	steer(cam, st, 1)
	if !vecApprox(cam.Front(), math.Vec3{Z: -1}) {
		t.Errorf("front after release = %v", cam.Front())
	}

	// Mouse motion turns only while dragging.
	st.AddMouseMotion(100, 0)
	steer(cam, st, 0.1)
	if !vecApprox(cam.Front(), math.Vec3{Z: -1}) {
		t.Errorf("front turned without drag: %v", cam.Front())
	}

	st.SetDragging(true)
	st.AddMouseMotion(100, 0)
	steer(cam, st, 0.1)
	if cam.Front().X <= 0 {
		t.Errorf("front = %v, want turned right", cam.Front())
	}
}

func TestFocus(t *testing.T) {
	dir := t.TempDir()
	cube := writeOBJ(t, dir, "cube.obj", cubeOBJ)

	objects, err := LoadScene([]config.ObjectConfig{
		{Path: cube, Position: [3]float32{10, 0, 0}},
		{Path: cube, Position: [3]float32{0, 0, -20}, Scale: [3]float32{2, 2, 2}},
	}, nil, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	cam := camera.NewFlyCamera()
	fov := math.Radians(45)
	if got := focus(cam, objects, fov); got != 1 {
		t.Fatalf("focus = %d, want 1", got)
	}
	pos := cam.Position()
	if math32.Abs(pos.X) > epsilon || pos.Z <= -20 {
		t.Errorf("position after focus = %v, want in front of the object at z -20", pos)
	}
	if !vecApprox(cam.Front(), math.Vec3{Z: -1}) {
		t.Errorf("front after focus = %v", cam.Front())
	}

	cam.SetPosition(math.Vec3{Y: 50})
	if got := focus(cam, objects, fov); got != -1 {
		t.Errorf("focus with nothing in view = %d, want -1", got)
	}
	if !vecApprox(cam.Position(), math.Vec3{Y: 50}) {
		t.Errorf("camera moved on a miss: %v", cam.Position())
	}
}
