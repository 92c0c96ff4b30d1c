package models

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Rock builds 1..maxPebbles grey spheres scattered around the anchor.
func Rock(rng *rand.Rand, maxPebbles, maxRadius int, translation mgl32.Vec3) Object {
	maxPebbles = max(maxPebbles, 1)
	maxRadius = max(maxRadius, 1)

	var points []Point
	pebbles := 1 + rng.IntN(maxPebbles)
	for range pebbles {
		radius := 1 + rng.IntN(maxRadius)
		offset := Voxel{
			X: rng.IntN(2*radius) - radius,
			Y: 0,
			Z: rng.IntN(2*radius) - radius,
		}
		points = appendVoxels(points, Sphere(offset, float64(radius)), Grey)
	}
	return Object{
		Points:      points,
		Rotation:    mgl32.QuatIdent(),
		Translation: translation,
	}
}
