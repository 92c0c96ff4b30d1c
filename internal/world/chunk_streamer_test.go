package world

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeGenerator records calls and tags its output with a ground length so
// tests can tell which generator produced a chunk.
type fakeGenerator struct {
	tag   int
	calls atomic.Int64
	block chan struct{} // when set, Generate waits for it to close
	fault bool          // when set, Generate panics
	empty bool          // when set, Generate returns nil
}

func (g *fakeGenerator) Generate(coord ChunkCoord) *ChunkData {
	g.calls.Add(1)
	if g.block != nil {
		<-g.block
	}
	if g.fault {
		panic("boom")
	}
	if g.empty {
		return nil
	}
	return &ChunkData{Coord: coord, Ground: make([]GroundVoxel, g.tag)}
}

func (g *fakeGenerator) Footprint() (int, int) { return ChunkSize, ChunkSize }

func startStreamer(t *testing.T, gen TerrainGenerator) *ChunkStreamer {
	t.Helper()
	cs := NewChunkStreamer(gen)
	cs.Start(context.Background())
	t.Cleanup(cs.Close)
	return cs
}

func TestRequestDeduplicates(t *testing.T) {
	gen := &fakeGenerator{tag: 1}
	cs := NewChunkStreamer(gen)
	t.Cleanup(cs.Close)
	coord := ChunkCoord{X: 2, Z: -1}

	var enqueued atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cs.Request(coord) {
				enqueued.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, enqueued.Load())
	assert.True(t, cs.IsPending(coord))
	assert.Equal(t, 1, cs.Stats().QueueDepth)

	cs.Start(context.Background())
	require.Eventually(t, func() bool {
		_, ok := cs.TryGet(coord)
		return ok
	}, waitFor, tick)
	assert.EqualValues(t, 1, gen.calls.Load())
	assert.EqualValues(t, 1, cs.Stats().Generated)
}

func TestRequestedChunkBecomesResident(t *testing.T) {
	cs := startStreamer(t, &fakeGenerator{tag: 1})
	coord := ChunkCoord{X: -4, Z: 9}

	require.True(t, cs.Request(coord))
	var data *ChunkData
	require.Eventually(t, func() bool {
		var ok bool
		data, ok = cs.TryGet(coord)
		return ok
	}, waitFor, tick)

	assert.Equal(t, coord, data.Coord)
	assert.False(t, cs.IsPending(coord), "a hit clears the pending mark")
	assert.False(t, cs.Request(coord), "resident chunks are not requested again")
}

func TestInsertIsNoOpWhenResident(t *testing.T) {
	cs := NewChunkStreamer(&fakeGenerator{})
	coord := ChunkCoord{X: 1, Z: 1}
	first := &ChunkData{Coord: coord}

	require.True(t, cs.Insert(coord, first))
	assert.False(t, cs.Insert(coord, &ChunkData{Coord: coord}))

	got, ok := cs.TryGet(coord)
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.EqualValues(t, 1, cs.GetModCount())
	assert.False(t, cs.Request(coord))
}

func TestStreamAroundRequestsMissingSquare(t *testing.T) {
	cs := NewChunkStreamer(&fakeGenerator{})
	origin := ChunkCoord{}
	require.True(t, cs.Insert(origin, &ChunkData{Coord: origin}))

	viewpoint := mgl32.Vec3{16, 30, 16}
	stats, visible := cs.StreamAround(viewpoint, mgl32.Vec3{0, 0, 1}, 2, false, nil)

	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 24, stats.Misses)
	assert.Equal(t, 24, stats.Requested)
	require.Len(t, visible, 1)
	assert.Equal(t, origin, visible[0].Coord)
	assert.False(t, cs.IsPending(origin))
	assert.Equal(t, 24, cs.Stats().Pending)

	stats, _ = cs.StreamAround(viewpoint, mgl32.Vec3{0, 0, 1}, 2, false, visible[:0])
	assert.Equal(t, 0, stats.Requested, "pending chunks are not requested twice")
}

func TestStreamAroundCullsBehindViewer(t *testing.T) {
	cs := NewChunkStreamer(&fakeGenerator{})
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			c := ChunkCoord{X: dx, Z: dz}
			cs.Insert(c, &ChunkData{Coord: c})
		}
	}
	viewpoint := mgl32.Vec3{16, 0, 16}

	for _, look := range []mgl32.Vec3{{1, 0, 0}, {250, 0, 0}, {0.001, 3, 0}} {
		stats, visible := cs.StreamAround(viewpoint, look, 2, true, nil)
		assert.Equal(t, 25, stats.Hits)
		assert.Equal(t, 10, stats.Culled, "look %v", look)
		assert.Len(t, visible, 15, "look %v", look)
		for _, cv := range visible {
			assert.GreaterOrEqual(t, cv.Coord.X, 0, "chunk %v is behind look %v", cv.Coord, look)
		}
	}

	_, visible := cs.StreamAround(viewpoint, mgl32.Vec3{1, 0, 0}, 2, false, nil)
	assert.Len(t, visible, 25, "culling disabled")
}

func TestBehindViewer(t *testing.T) {
	tests := []struct {
		look, offset mgl32.Vec3
		want         bool
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, -1}, true},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 1}, false},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{3, 0, 0}, false},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, 0}, false},
		{mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{2, 0, 1}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BehindViewer(tt.look, tt.offset), "look %v offset %v", tt.look, tt.offset)
	}
}

func TestViewpointChunk(t *testing.T) {
	cs := NewChunkStreamer(&fakeGenerator{})
	assert.Equal(t, ChunkCoord{X: 0, Z: 0}, cs.ViewpointChunk(mgl32.Vec3{0.5, 0, 31.9}))
	assert.Equal(t, ChunkCoord{X: -1, Z: -1}, cs.ViewpointChunk(mgl32.Vec3{-0.5, 100, -0.5}))
	assert.Equal(t, ChunkCoord{X: 2, Z: -3}, cs.ViewpointChunk(mgl32.Vec3{64, 0, -65}))
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	old := &fakeGenerator{tag: 1, block: make(chan struct{})}
	cs := startStreamer(t, old)
	coord := ChunkCoord{X: 5, Z: 5}

	require.True(t, cs.Request(coord))
	require.True(t, cs.Request(ChunkCoord{X: 6, Z: 5}))
	require.Eventually(t, func() bool { return old.calls.Load() == 1 }, waitFor, tick)

	fresh := &fakeGenerator{tag: 2}
	cs.Reset(fresh)
	assert.Same(t, fresh, cs.Generator())
	assert.False(t, cs.IsPending(coord))
	assert.Equal(t, 0, cs.Stats().QueueDepth)
	close(old.block)

	require.Eventually(t, func() bool { return cs.Stats().Discarded == 1 }, waitFor, tick)
	_, ok := cs.TryGet(coord)
	assert.False(t, ok, "result generated for the old world must not be stored")

	require.True(t, cs.Request(coord))
	var data *ChunkData
	require.Eventually(t, func() bool {
		data, ok = cs.TryGet(coord)
		return ok
	}, waitFor, tick)
	assert.Len(t, data.Ground, fresh.tag)
	assert.EqualValues(t, 1, old.calls.Load(), "queued work for the old world was dropped")
}

func TestWorkerFaultIsObservable(t *testing.T) {
	for name, gen := range map[string]*fakeGenerator{
		"panic":   {fault: true},
		"no data": {empty: true},
	} {
		t.Run(name, func(t *testing.T) {
			cs := startStreamer(t, gen)
			require.True(t, cs.Request(ChunkCoord{X: 1}))

			require.Eventually(t, func() bool { return !cs.Stats().Running }, waitFor, tick)
			require.ErrorIs(t, cs.Err(), ErrWorkerStopped)

			cs.Request(ChunkCoord{X: 2})
			cs.Request(ChunkCoord{X: 3})
			st := cs.Stats()
			assert.Equal(t, 2, st.QueueDepth, "requests pile up once the worker is gone")
			assert.ErrorIs(t, st.Err, ErrWorkerStopped)
		})
	}
}

func TestLoadAroundSync(t *testing.T) {
	gen := &fakeGenerator{tag: 1}
	cs := NewChunkStreamer(gen)

	n := cs.LoadAroundSync(mgl32.Vec3{16, 0, 16}, 1)
	assert.Equal(t, 9, n)
	assert.Equal(t, 9, cs.Stats().Resident)
	assert.Equal(t, 9, len(cs.AppendResident(nil)))

	assert.Equal(t, 0, cs.LoadAroundSync(mgl32.Vec3{16, 0, 16}, 1), "resident chunks are skipped")
	assert.EqualValues(t, 9, gen.calls.Load())
}

func TestResetReplacesCache(t *testing.T) {
	cs := NewChunkStreamer(&fakeGenerator{})
	cs.LoadAroundSync(mgl32.Vec3{}, 1)
	require.Equal(t, 9, cs.Stats().Resident)

	cs.Reset(&fakeGenerator{})
	st := cs.Stats()
	assert.Equal(t, 0, st.Resident)
	assert.Equal(t, 0, st.Pending)
	assert.EqualValues(t, 0, cs.GetModCount())
}

func TestStreamerWithGenerator(t *testing.T) {
	terrain, biome := testConfigs()
	gen, err := NewGenerator(terrain, biome)
	require.NoError(t, err)
	cs := startStreamer(t, gen)

	viewpoint := mgl32.Vec3{4, 30, 4}
	look := mgl32.Vec3{0, 0, 1}
	require.Eventually(t, func() bool {
		stats, _ := cs.StreamAround(viewpoint, look, 1, false, nil)
		return stats.Hits == 9
	}, waitFor, tick)

	data, ok := cs.TryGet(ChunkCoord{X: -1, Z: 1})
	require.True(t, ok)
	assert.Len(t, data.Ground, terrain.Width*terrain.Depth)
	assert.NoError(t, cs.Err())
}
