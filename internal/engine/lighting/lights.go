package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Uniforms receives light parameters. *shader.Program satisfies it.
type Uniforms interface {
	SetVec3(name string, v math.Vec3)
	SetFloat(name string, v float32)
	SetBool(name string, v bool)
}

// Props holds the colour a light contributes to each Phong term.
type Props struct {
	Ambient  math.Vec3
	Diffuse  math.Vec3
	Specular math.Vec3
}

func (p Props) apply(u Uniforms, prefix string) {
	u.SetVec3(prefix+".ambient", p.Ambient)
	u.SetVec3(prefix+".diffuse", p.Diffuse)
	u.SetVec3(prefix+".specular", p.Specular)
}

// DropOff holds distance attenuation coefficients.
type DropOff struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Attenuation returns the light fraction left at distance d.
func (o DropOff) Attenuation(d float32) float32 {
	return 1 / (o.Constant + o.Linear*d + o.Quadratic*d*d)
}

func (o DropOff) apply(u Uniforms, prefix string) {
	u.SetFloat(prefix+".constant", o.Constant)
	u.SetFloat(prefix+".linear", o.Linear)
	u.SetFloat(prefix+".quadratic", o.Quadratic)
}

// DirLight is an infinitely distant light such as the sun.
type DirLight struct {
	Direction math.Vec3
	Props
}

// NewSun creates a white directional light from longitude/latitude angles.
func NewSun(longitudeDeg, latitudeDeg float32) DirLight {
	return DirLight{
		Direction: SunDirection(longitudeDeg, latitudeDeg),
		Props: Props{
			Ambient:  math.Splat3(0.2),
			Diffuse:  math.Splat3(0.7),
			Specular: math.Splat3(0.5),
		},
	}
}

// Apply uploads the light under the struct uniform name.
func (l DirLight) Apply(u Uniforms, name string) {
	u.SetVec3(name+".direction", l.Direction)
	l.Props.apply(u, name)
}

// SpotLight is a cone light. CutOff and OuterCutOff are cosines of the
// inner and outer cone half-angles; intensity fades between them.
type SpotLight struct {
	Position    math.Vec3
	Direction   math.Vec3
	CutOff      float32
	OuterCutOff float32
	Enabled     bool
	DropOff
	Props
}

// NewFlashlight creates a spot light meant to follow the camera.
func NewFlashlight() SpotLight {
	return SpotLight{
		CutOff:      math32.Cos(math.Radians(12.5)),
		OuterCutOff: math32.Cos(math.Radians(17.5)),
		DropOff:     DropOff{Constant: 1, Linear: 0.09, Quadratic: 0.032},
		Props: Props{
			Diffuse:  math.Splat3(1),
			Specular: math.Splat3(1),
		},
	}
}

// Follow moves the light to an eye position and view direction.
func (l *SpotLight) Follow(position, direction math.Vec3) {
	l.Position = position
	l.Direction = direction
}

// Intensity returns the cone factor for a surface point, ignoring distance.
func (l SpotLight) Intensity(point math.Vec3) float32 {
	toPoint := point.Sub(l.Position).Normalize()
	theta := toPoint.Dot(l.Direction.Normalize())
	eps := l.CutOff - l.OuterCutOff
	return min(max((theta-l.OuterCutOff)/eps, 0), 1)
}

// Apply uploads the light under the struct uniform name.
func (l SpotLight) Apply(u Uniforms, name string) {
	u.SetBool(name+".enabled", l.Enabled)
	u.SetVec3(name+".position", l.Position)
	u.SetVec3(name+".direction", l.Direction)
	u.SetFloat(name+".cutOff", l.CutOff)
	u.SetFloat(name+".outerCutOff", l.OuterCutOff)
	l.DropOff.apply(u, name)
	l.Props.apply(u, name)
}
