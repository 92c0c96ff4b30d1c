package world

import (
	"math"

	"voxel-garden/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameStats summarizes one StreamAround call.
type FrameStats struct {
	Hits      int // resident chunks in range
	Culled    int // hits skipped because they lie behind the viewer
	Misses    int // absent chunks in range
	Requested int // misses that were newly enqueued
}

// BehindViewer reports whether a chunk at offset from the viewer lies behind
// the look direction. Only the sign of the dot product matters.
func BehindViewer(look, offset mgl32.Vec3) bool {
	return look.Dot(offset) < 0
}

// ViewpointChunk returns the chunk containing world position pos.
func (cs *ChunkStreamer) ViewpointChunk(pos mgl32.Vec3) ChunkCoord {
	w, d := cs.Generator().Footprint()
	return ChunkCoordAt(
		int(math.Floor(float64(pos.X()))),
		int(math.Floor(float64(pos.Z()))),
		w, d,
	)
}

// StreamAround runs the per-frame radius query: every chunk within radius
// (per axis) of the viewpoint's chunk is looked up; hits facing the viewer
// are appended to dst, misses are requested. With cull set, hits behind the
// look direction are left out of dst. Requests cover the whole square
// regardless of facing.
func (cs *ChunkStreamer) StreamAround(viewpoint, look mgl32.Vec3, radius int, cull bool, dst []ChunkView) (FrameStats, []ChunkView) {
	defer profiling.Track("world.StreamAround")()

	var stats FrameStats
	center := cs.ViewpointChunk(viewpoint)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			data, ok := cs.TryGet(coord)
			if !ok {
				stats.Misses++
				if cs.Request(coord) {
					stats.Requested++
				}
				continue
			}
			stats.Hits++
			if cull && BehindViewer(look, mgl32.Vec3{float32(dx), 0, float32(dz)}) {
				stats.Culled++
				continue
			}
			dst = append(dst, ChunkView{Coord: coord, Chunk: data})
		}
	}
	return stats, dst
}

// LoadAroundSync generates every missing chunk within radius of the viewpoint
// on the calling goroutine. It is meant for the initial spawn area only.
func (cs *ChunkStreamer) LoadAroundSync(viewpoint mgl32.Vec3, radius int) int {
	defer profiling.Track("world.LoadAroundSync")()

	gen, epoch := cs.current()
	center := cs.ViewpointChunk(viewpoint)
	loaded := 0
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			coord := ChunkCoord{X: center.X + dx, Z: center.Z + dz}
			if _, ok := cs.TryGet(coord); ok {
				continue
			}
			if !cs.insertAt(epoch, coord, gen.Generate(coord)) {
				return loaded
			}
			loaded++
		}
	}
	return loaded
}
