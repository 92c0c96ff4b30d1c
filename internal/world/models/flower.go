package models

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Bloom shapes, as offsets relative to the top of the stem.
var blooms = [][]Voxel{
	// single bud
	{{0, 1, 0}},
	// cross
	{{0, 1, 0}, {1, 1, 0}, {-1, 1, 0}, {0, 1, 1}, {0, 1, -1}},
	// ring around an open center
	{{1, 1, 0}, {-1, 1, 0}, {0, 1, 1}, {0, 1, -1}, {1, 1, 1}, {-1, 1, -1}, {1, 1, -1}, {-1, 1, 1}},
	// tulip cup
	{{0, 1, 0}, {1, 2, 0}, {-1, 2, 0}, {0, 2, 1}, {0, 2, -1}},
}

var bloomColors = []mgl32.Vec4{Red, Yellow, Purple, White, Orange}

// BloomVariants is the number of distinct bloom shapes.
func BloomVariants() int { return len(blooms) }

// FlowerStemHeight is the number of stem voxels below the bloom.
const FlowerStemHeight = 4

// Flower builds a short stem with one randomly chosen bloom shape and color.
func Flower(rng *rand.Rand, translation mgl32.Vec3) Object {
	stemTop := Voxel{0, FlowerStemHeight - 1, 0}
	points := appendVoxels(nil, Line(Voxel{0, 0, 0}, stemTop), Stem)

	bloom := blooms[rng.IntN(len(blooms))]
	color := bloomColors[rng.IntN(len(bloomColors))]
	cells := make([]Voxel, len(bloom))
	for i, b := range bloom {
		cells[i] = Voxel{stemTop.X + b.X, stemTop.Y + b.Y, stemTop.Z + b.Z}
	}
	points = appendVoxels(points, cells, color)

	yaw := float32(rng.Float64() * 2 * math.Pi)
	return Object{
		Points:      points,
		Rotation:    mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}),
		Translation: translation,
	}
}
