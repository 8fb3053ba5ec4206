package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

// RingInstances lays out perRing*rings offsets as stacked horizontal rings
// around the Y axis, one unit apart and centred on y=0.
// gap is the distance kept clear between the ring and the axis, on top of the
// radius needed to space neighbours one unit apart.
func RingInstances(perRing, rings int, gap float32) []math.Vec3 {
	if perRing <= 0 || rings <= 0 {
		return nil
	}

	divisor := float32(perRing) / (2 * math32.Pi)
	radius := gap + divisor

	out := make([]math.Vec3, 0, perRing*rings)
	for j := 0; j < rings; j++ {
		y := float32(j - rings/2)
		for i := 0; i < perRing; i++ {
			a := float32(i) / divisor
			out = append(out, math.Vec3{
				X: radius * math32.Sin(a),
				Y: y,
				Z: radius * math32.Cos(a),
			})
		}
	}
	return out
}
