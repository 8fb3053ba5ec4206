// Package lighting describes the scene lights and uploads them as shader
// uniforms.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

// SunDirection converts longitude/latitude angles in degrees to a light
// direction vector. Longitude is rotation around the Y axis, latitude is
// elevation from the horizon. The result points from the sun towards the
// scene, which is what the shader expects.
func SunDirection(longitudeDeg, latitudeDeg float32) math.Vec3 {
	lon := math.Radians(longitudeDeg)
	lat := math.Radians(latitudeDeg)

	toSun := math.Vec3{
		X: math32.Cos(lat) * math32.Sin(lon),
		Y: math32.Sin(lat),
		Z: math32.Cos(lat) * math32.Cos(lon),
	}
	return toSun.Neg()
}
