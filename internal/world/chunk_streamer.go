package world

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"voxel-garden/internal/profiling"
)

// ErrWorkerStopped wraps the fault that terminated the generation worker.
var ErrWorkerStopped = errors.New("chunk worker stopped")

// ChunkStreamer owns the chunk cache and the single background worker that
// fills it. Coordinates move Unknown -> Pending (Request) -> Resident (worker
// insert); only Reset sends them back to Unknown.
type ChunkStreamer struct {
	// mu guards cache, gen and epoch. It is held only for O(1) map work.
	mu    sync.Mutex
	cache *chunkCache
	gen   TerrainGenerator
	epoch uint64

	pending   map[ChunkCoord]struct{}
	pendingMu sync.Mutex

	queue *requestQueue

	generated atomic.Uint64
	discarded atomic.Uint64
	running   atomic.Bool

	errMu sync.Mutex
	err   error

	startOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// Stats is a point-in-time view of the streamer, for spotting a stalled worker.
type Stats struct {
	Resident   int
	Pending    int
	QueueDepth int
	Generated  uint64 // generator calls completed
	Discarded  uint64 // results dropped because a reset happened mid-generation
	Running    bool
	Err        error
}

// NewChunkStreamer creates a streamer around gen. Call Start to launch the worker.
func NewChunkStreamer(gen TerrainGenerator) *ChunkStreamer {
	return &ChunkStreamer{
		cache:   newChunkCache(),
		gen:     gen,
		pending: make(map[ChunkCoord]struct{}),
		queue:   newRequestQueue(),
	}
}

// Start launches the generation worker. Only the first call has an effect.
func (cs *ChunkStreamer) Start(ctx context.Context) {
	cs.startOnce.Do(func() {
		ctx, cs.cancel = context.WithCancel(ctx)
		cs.running.Store(true)
		cs.wg.Add(1)
		go cs.worker(ctx)
	})
}

// Close stops the worker and waits for it to exit. Queued requests are dropped.
func (cs *ChunkStreamer) Close() {
	if cs.cancel != nil {
		cs.cancel()
	}
	cs.queue.Close()
	cs.wg.Wait()
}

func (cs *ChunkStreamer) worker(ctx context.Context) {
	defer cs.wg.Done()
	defer cs.running.Store(false)

	for {
		coord, ok := cs.queue.Pop(ctx)
		if !ok {
			return
		}

		cs.mu.Lock()
		gen, epoch, resident := cs.gen, cs.epoch, cs.cache.has(coord)
		cs.mu.Unlock()
		if resident {
			continue
		}

		data, err := cs.generate(gen, coord)
		if err != nil {
			cs.errMu.Lock()
			cs.err = err
			cs.errMu.Unlock()
			log.Printf("world: %v", err)
			return
		}

		if !cs.insertAt(epoch, coord, data) {
			cs.discarded.Add(1)
		}
	}
}

// insertAt stores data only if no Reset happened since epoch was read.
func (cs *ChunkStreamer) insertAt(epoch uint64, coord ChunkCoord, data *ChunkData) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.epoch != epoch {
		return false
	}
	cs.cache.insert(coord, data)
	return true
}

// current returns the generator and epoch as one consistent pair.
func (cs *ChunkStreamer) current() (TerrainGenerator, uint64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.gen, cs.epoch
}

// generate runs gen outside any lock and turns a panic into an error.
func (cs *ChunkStreamer) generate(gen TerrainGenerator, coord ChunkCoord) (data *ChunkData, err error) {
	defer profiling.Track("world.GenerateChunk")()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: generating %v: %v", ErrWorkerStopped, coord, r)
		}
	}()
	data = gen.Generate(coord)
	cs.generated.Add(1)
	if data == nil {
		return nil, fmt.Errorf("%w: generator returned no data for %v", ErrWorkerStopped, coord)
	}
	return data, nil
}

// Request enqueues coord for generation unless it is resident or already
// pending. It never blocks on generation and reports whether it enqueued.
func (cs *ChunkStreamer) Request(coord ChunkCoord) bool {
	cs.mu.Lock()
	resident := cs.cache.has(coord)
	cs.mu.Unlock()
	if resident {
		return false
	}

	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	cs.pending[coord] = struct{}{}
	cs.queue.Push(coord)
	return true
}

// TryGet returns the resident chunk at coord. A hit clears coord from the
// pending set.
func (cs *ChunkStreamer) TryGet(coord ChunkCoord) (*ChunkData, bool) {
	cs.mu.Lock()
	data, ok := cs.cache.get(coord)
	cs.mu.Unlock()
	if !ok {
		return nil, false
	}

	cs.pendingMu.Lock()
	delete(cs.pending, coord)
	cs.pendingMu.Unlock()
	return data, true
}

// Insert stores pre-generated data. It is a no-op if coord is resident and
// reports whether the data was stored.
func (cs *ChunkStreamer) Insert(coord ChunkCoord, data *ChunkData) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.cache.insert(coord, data)
}

// Reset swaps in gen and a new empty cache in one step, so readers see either
// the old world or the new one. Pending and queued requests are dropped and
// results still being generated for the old world are discarded.
func (cs *ChunkStreamer) Reset(gen TerrainGenerator) {
	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()

	cs.mu.Lock()
	cs.cache = newChunkCache()
	cs.gen = gen
	cs.epoch++
	cs.mu.Unlock()

	clear(cs.pending)
	cs.queue.Drain()
}

// Generator returns the generator currently feeding the cache.
func (cs *ChunkStreamer) Generator() TerrainGenerator {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.gen
}

// IsPending reports whether coord has been requested but not yet observed resident.
func (cs *ChunkStreamer) IsPending(coord ChunkCoord) bool {
	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	_, ok := cs.pending[coord]
	return ok
}

// AppendResident appends every resident chunk to dst.
func (cs *ChunkStreamer) AppendResident(dst []ChunkView) []ChunkView {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.cache.appendAll(dst)
}

// GetModCount returns the insert counter of the current cache.
func (cs *ChunkStreamer) GetModCount() uint64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.cache.modCount
}

// Err returns the fault that stopped the worker, or nil.
func (cs *ChunkStreamer) Err() error {
	cs.errMu.Lock()
	defer cs.errMu.Unlock()
	return cs.err
}

// Stats returns current counters.
func (cs *ChunkStreamer) Stats() Stats {
	cs.mu.Lock()
	resident := cs.cache.len()
	cs.mu.Unlock()

	cs.pendingMu.Lock()
	pending := len(cs.pending)
	cs.pendingMu.Unlock()

	return Stats{
		Resident:   resident,
		Pending:    pending,
		QueueDepth: cs.queue.Len(),
		Generated:  cs.generated.Load(),
		Discarded:  cs.discarded.Load(),
		Running:    cs.running.Load(),
		Err:        cs.Err(),
	}
}
