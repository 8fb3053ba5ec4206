// Package input tracks keyboard and mouse state between frames.
//
// The window package feeds platform events into a State; the viewer reads it
// once per frame.
package input

import "github.com/Faultbox/objviewer/pkg/math"

// Key is a logical key the viewer reacts to.
type Key int

const (
	KeyForward Key = iota // W
	KeyBack               // S
	KeyLeft               // A
	KeyRight              // D
	KeyUp                 // Space
	KeyDown               // C
	KeyLookBack           // Tab, held
	KeyNormals            // N
	KeyWireframe          // F
	KeyPostProcess        // P
	KeyBounds             // B
	KeyFlashlight         // L
	KeyFocus              // G
	KeyScreenshot         // F12
	KeyQuit               // Esc

	keyCount
)

// State holds input for the current frame.
type State struct {
	down    [keyCount]bool
	pressed [keyCount]bool

	dragging   bool
	mouseDelta math.Vec2

	resized       bool
	width, height int

	quit bool
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{}
}

// BeginFrame clears per-frame edges and the accumulated mouse delta.
// Held keys stay down.
func (s *State) BeginFrame() {
	s.pressed = [keyCount]bool{}
	s.mouseDelta = math.Vec2{}
	s.resized = false
}

// SetKey records a key transition. A press is reported once per transition.
func (s *State) SetKey(k Key, down bool) {
	if k < 0 || k >= keyCount {
		return
	}
	if down && !s.down[k] {
		s.pressed[k] = true
	}
	s.down[k] = down
}

// SetDragging records whether the left mouse button is held.
func (s *State) SetDragging(held bool) {
	s.dragging = held
}

// Dragging reports whether the left mouse button is held.
func (s *State) Dragging() bool {
	return s.dragging
}

// AddMouseMotion accumulates relative motion while dragging.
// Motion without a held button does not steer the camera.
func (s *State) AddMouseMotion(dx, dy float32) {
	if !s.dragging {
		return
	}
	s.mouseDelta = s.mouseDelta.Add(math.Vec2{X: dx, Y: dy})
}

// MouseDelta returns the motion accumulated this frame.
func (s *State) MouseDelta() math.Vec2 {
	return s.mouseDelta
}

// SetResize records a new drawable size.
func (s *State) SetResize(width, height int) {
	s.resized = true
	s.width, s.height = width, height
}

// Resized returns the new drawable size if the window changed this frame.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}

// RequestQuit marks the viewer for shutdown.
func (s *State) RequestQuit() {
	s.quit = true
}

// Quit reports whether shutdown was requested by the window or Esc.
func (s *State) Quit() bool {
	return s.quit || s.pressed[KeyQuit]
}

// Down reports whether k is held.
func (s *State) Down(k Key) bool {
	return k >= 0 && k < keyCount && s.down[k]
}

// Pressed reports whether k went down this frame.
func (s *State) Pressed(k Key) bool {
	return k >= 0 && k < keyCount && s.pressed[k]
}

// Axes converts held movement keys to camera axes in [-1, 1].
// Opposite keys cancel out.
func (s *State) Axes() (forward, right, up float32) {
	return axis(s.down[KeyForward], s.down[KeyBack]),
		axis(s.down[KeyRight], s.down[KeyLeft]),
		axis(s.down[KeyUp], s.down[KeyDown])
}

func axis(pos, neg bool) float32 {
	var v float32
	if pos {
		v++
	}
	if neg {
		v--
	}
	return v
}
