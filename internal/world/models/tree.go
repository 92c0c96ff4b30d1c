package models

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// TreeShape sizes a tree. Jitter fields are maxima; zero disables jitter.
type TreeShape struct {
	TrunkHeight  int
	TrunkRadius  float64
	CanopyRadius float64
	CanopyLayers int
	OffsetJitter int     // max horizontal canopy shift per layer
	RadiusJitter float64 // max canopy radius change per layer
}

// DefaultTreeShape is a tall trunk with a two-layer canopy.
func DefaultTreeShape() TreeShape {
	return TreeShape{
		TrunkHeight:  40,
		TrunkRadius:  2,
		CanopyRadius: 10,
		CanopyLayers: 2,
		OffsetJitter: 3,
		RadiusJitter: 2,
	}
}

// Tree builds a trunk of stacked discs topped by sphere canopy layers.
func Tree(rng *rand.Rand, shape TreeShape, translation mgl32.Vec3) Object {
	var points []Point
	for y := 0; y < shape.TrunkHeight; y++ {
		points = appendVoxels(points, Circle(Voxel{0, y, 0}, shape.TrunkRadius), Brown)
	}

	top := shape.TrunkHeight
	layers := max(shape.CanopyLayers, 1)
	for i := 0; i < layers; i++ {
		center := Voxel{0, top + i*int(shape.CanopyRadius/2), 0}
		radius := shape.CanopyRadius - float64(i)*shape.CanopyRadius/float64(layers+1)
		if shape.OffsetJitter > 0 {
			center.X += rng.IntN(2*shape.OffsetJitter+1) - shape.OffsetJitter
			center.Z += rng.IntN(2*shape.OffsetJitter+1) - shape.OffsetJitter
		}
		if shape.RadiusJitter > 0 {
			radius += (rng.Float64()*2 - 1) * shape.RadiusJitter
		}
		if radius < 1 {
			radius = 1
		}
		points = appendVoxels(points, Sphere(center, radius), Leaf)
	}

	return Object{
		Points:      points,
		Rotation:    mgl32.QuatIdent(),
		Translation: translation,
	}
}
