package lighting

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

const epsilon = 1e-4

func approx(a, b float32) bool {
	return math32.Abs(a-b) < epsilon
}

func vecApprox(a, b math.Vec3) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		lon, lat float32
		want     math.Vec3
	}{
		{"zenith", 0, 90, math.Vec3{Y: -1}},
		{"horizon south", 0, 0, math.Vec3{Z: -1}},
		{"horizon east", 90, 0, math.Vec3{X: -1}},
		{"diagonal", 45, 45, math.Vec3{X: -0.5, Y: -0.70710677, Z: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.lon, tt.lat)
			if !vecApprox(got, tt.want) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.lon, tt.lat, got, tt.want)
			}
			if !approx(got.Length(), 1) {
				t.Errorf("length = %v, want 1", got.Length())
			}
		})
	}
}

func TestAttenuation(t *testing.T) {
	o := DropOff{Constant: 1, Linear: 0.09, Quadratic: 0.032}

	if got := o.Attenuation(0); got != 1 {
		t.Errorf("Attenuation(0) = %v, want 1", got)
	}
	if got, want := o.Attenuation(10), float32(1/(1+0.9+3.2)); !approx(got, want) {
		t.Errorf("Attenuation(10) = %v, want %v", got, want)
	}
	if o.Attenuation(20) >= o.Attenuation(10) {
		t.Error("attenuation should fall with distance")
	}
}

func TestSpotLightIntensity(t *testing.T) {
	l := NewFlashlight()
	l.Follow(math.Vec3{}, math.Vec3{Z: -1})

	tests := []struct {
		name  string
		point math.Vec3
		want  float32
	}{
		{"on axis", math.Vec3{Z: -5}, 1},
		{"inside inner cone", math.Vec3{X: 0.5, Z: -5}, 1},
		{"outside outer cone", math.Vec3{X: 5, Z: -5}, 0},
		{"behind", math.Vec3{Z: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Intensity(tt.point); got != tt.want {
				t.Errorf("Intensity(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}

	// Halfway between the cone edges the factor is partial.
	mid := math.Radians(15)
	p := math.Vec3{X: math32.Sin(mid), Z: -math32.Cos(mid)}
	if got := l.Intensity(p); got <= 0 || got >= 1 {
		t.Errorf("Intensity at 15 degrees = %v, want in (0, 1)", got)
	}
}

type recorder struct {
	vecs   map[string]math.Vec3
	floats map[string]float32
	bools  map[string]bool
}

func newRecorder() *recorder {
	return &recorder{
		vecs:   map[string]math.Vec3{},
		floats: map[string]float32{},
		bools:  map[string]bool{},
	}
}

func (r *recorder) SetVec3(name string, v math.Vec3) { r.vecs[name] = v }
func (r *recorder) SetFloat(name string, v float32)  { r.floats[name] = v }
func (r *recorder) SetBool(name string, v bool)      { r.bools[name] = v }

func TestApply(t *testing.T) {
	r := newRecorder()

	sun := NewSun(0, 90)
	sun.Apply(r, "dirLight")

	spot := NewFlashlight()
	spot.Enabled = true
	spot.Follow(math.Vec3{Z: 3}, math.Vec3{Z: -1})
	spot.Apply(r, "spotLight")

	if !vecApprox(r.vecs["dirLight.direction"], math.Vec3{Y: -1}) {
		t.Errorf("dirLight.direction = %v", r.vecs["dirLight.direction"])
	}
	if r.vecs["dirLight.diffuse"] != math.Splat3(0.7) {
		t.Errorf("dirLight.diffuse = %v", r.vecs["dirLight.diffuse"])
	}
	if !r.bools["spotLight.enabled"] {
		t.Error("spotLight.enabled not set")
	}
	if r.vecs["spotLight.position"] != (math.Vec3{Z: 3}) {
		t.Errorf("spotLight.position = %v", r.vecs["spotLight.position"])
	}
	if r.floats["spotLight.quadratic"] != 0.032 {
		t.Errorf("spotLight.quadratic = %v", r.floats["spotLight.quadratic"])
	}
	if r.floats["spotLight.cutOff"] <= r.floats["spotLight.outerCutOff"] {
		t.Error("inner cone cosine should exceed outer cone cosine")
	}
}
