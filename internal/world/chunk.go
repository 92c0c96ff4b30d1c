package world

import (
	"voxel-garden/internal/world/models"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkSize is the default chunk footprint (columns per axis).
const ChunkSize = 32

// ChunkCoord identifies a Width x Depth footprint of world columns.
type ChunkCoord struct {
	X, Z int
}

// ChunkCoordAt returns the chunk containing world column (x, z) for a
// footprint of width x depth columns.
func ChunkCoordAt(x, z, width, depth int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, width), Z: floorDiv(z, depth)}
}

// GroundVoxel is the surface cell of one column.
type GroundVoxel struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

// SpawnPoint marks a column hosting a decorative object.
type SpawnPoint struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
	Type     SpawnType
}

// ChunkData is the generated content of one chunk. It is never mutated
// after it has been handed to the cache.
type ChunkData struct {
	Coord       ChunkCoord
	Ground      []GroundVoxel
	SpawnPoints []SpawnPoint
	Objects     []models.Object
}

// ChunkView pairs resident chunk data with its coordinate.
type ChunkView struct {
	Coord ChunkCoord
	Chunk *ChunkData
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

