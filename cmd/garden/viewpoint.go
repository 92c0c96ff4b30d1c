package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewpoint walks a circle around the origin, looking along its direction of
// travel. It stands in for the camera subsystem.
type Viewpoint struct {
	Radius float64 // world units
	Speed  float64 // world units per second
	Height float32

	angle float64
}

// Advance moves the viewpoint dt seconds along its path.
func (v *Viewpoint) Advance(dt float64) {
	if v.Radius <= 0 {
		return
	}
	v.angle += v.Speed * dt / v.Radius
}

// Position returns the current world position.
func (v *Viewpoint) Position() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(v.Radius * math.Cos(v.angle)),
		v.Height,
		float32(v.Radius * math.Sin(v.angle)),
	}
}

// Look returns the unit look direction, tangent to the path.
func (v *Viewpoint) Look() mgl32.Vec3 {
	if v.Radius <= 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{
		float32(-math.Sin(v.angle)),
		0,
		float32(math.Cos(v.angle)),
	}
}
