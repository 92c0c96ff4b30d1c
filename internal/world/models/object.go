// Package models synthesizes the rigid voxel clusters placed on spawn points.
package models

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Common model colors.
var (
	Brown  = mgl32.Vec4{0.5, 0.2, 0.0, 1.0}
	Green  = mgl32.Vec4{0.0, 1.0, 0.0, 1.0}
	Leaf   = mgl32.Vec4{0.15, 0.6, 0.2, 1.0}
	Red    = mgl32.Vec4{1.0, 0.0, 0.0, 1.0}
	Orange = mgl32.Vec4{1.0, 0.5, 0.0, 1.0}
	Yellow = mgl32.Vec4{1.0, 1.0, 0.0, 1.0}
	Purple = mgl32.Vec4{0.5, 0.0, 0.5, 1.0}
	White  = mgl32.Vec4{1.0, 1.0, 1.0, 1.0}
	Grey   = mgl32.Vec4{0.2, 0.2, 0.2, 1.0}
	Stem   = mgl32.Vec4{0.2, 0.45, 0.1, 1.0}
)

// Point is one colored voxel offset inside an Object.
type Point struct {
	Offset mgl32.Vec3
	Color  mgl32.Vec4
}

// Object is a rigid voxel cluster drawn with a single model transform.
type Object struct {
	Points      []Point
	Rotation    mgl32.Quat
	Translation mgl32.Vec3
}

// Transform returns the model matrix translation * rotation.
func (o Object) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(o.Translation.X(), o.Translation.Y(), o.Translation.Z()).Mul4(o.Rotation.Mat4())
}

// appendVoxels converts cells to points of one color.
func appendVoxels(dst []Point, cells []Voxel, color mgl32.Vec4) []Point {
	for _, c := range cells {
		dst = append(dst, Point{Offset: mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}, Color: color})
	}
	return dst
}
