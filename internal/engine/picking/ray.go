// Package picking provides ray casting against axis-aligned boxes.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/objviewer/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// NewRay creates a ray, normalizing dir.
func NewRay(origin, dir math.Vec3) Ray {
	return Ray{Origin: origin, Direction: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates a box from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := components(r.Origin)
	dir := components(r.Direction)
	lo, hi := components(box.Min), components(box.Max)

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			// Parallel to the slab: miss unless the origin lies within it.
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}

		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the closest box hit by r.
func Nearest(r Ray, boxes []AABB) (index int, t float32, ok bool) {
	index = -1
	for i, box := range boxes {
		d, hit := r.IntersectAABB(box)
		if hit && (index < 0 || d < t) {
			index, t = i, d
		}
	}
	return index, t, index >= 0
}

func components(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
