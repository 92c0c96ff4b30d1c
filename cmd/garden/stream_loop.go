package main

import (
	"fmt"
	"log"
	"time"

	"voxel-garden/internal/config"
	"voxel-garden/internal/profiling"
	"voxel-garden/internal/world"
)

// StreamLoop drives the per-frame radius query the way a render loop would.
type StreamLoop struct {
	streamer   *world.ChunkStreamer
	viewpoint  *Viewpoint
	fpsLimiter *FPSLimiter

	// configVersion is the config.GetWorldGen version the streamer was last built from.
	configVersion uint64

	visible []world.ChunkView

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

// NewStreamLoop creates a loop over streamer starting from viewpoint.
func NewStreamLoop(streamer *world.ChunkStreamer, viewpoint *Viewpoint, configVersion uint64) *StreamLoop {
	return &StreamLoop{
		streamer:         streamer,
		viewpoint:        viewpoint,
		fpsLimiter:       NewFPSLimiter(),
		configVersion:    configVersion,
		lastFPSCheckTime: time.Now(),
		lastTime:         time.Now(),
	}
}

// Run ticks until frames have elapsed or done is closed.
func (sl *StreamLoop) Run(frames int, done <-chan struct{}) {
	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-done:
			return
		default:
		}
		sl.tick()
	}
}

func (sl *StreamLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(sl.lastTime).Seconds()
	sl.lastTime = now

	sl.applyConfigChanges()

	sl.viewpoint.Advance(dt)

	var stats world.FrameStats
	stats, sl.visible = sl.streamer.StreamAround(
		sl.viewpoint.Position(),
		sl.viewpoint.Look(),
		config.GetRenderDistance(),
		config.GetCullBehind(),
		sl.visible[:0],
	)
	sl.frames++

	if time.Since(sl.lastFPSCheckTime) >= time.Second {
		st := sl.streamer.Stats()
		fmt.Printf("FPS: %d visible: %d hits: %d culled: %d misses: %d resident: %d pending: %d queue: %d\n",
			sl.frames, len(sl.visible), stats.Hits, stats.Culled, stats.Misses, st.Resident, st.Pending, st.QueueDepth)
		if top := profiling.TopN(3); top != "" {
			fmt.Println("  ", top)
		}
		if st.Err != nil {
			log.Printf("garden: generation stalled: %v", st.Err)
		}
		sl.frames = 0
		sl.lastFPSCheckTime = time.Now()
	}

	sl.fpsLimiter.Wait()
}

// applyConfigChanges swaps in a new generator when the world settings changed.
func (sl *StreamLoop) applyConfigChanges() {
	cfg, version := config.GetWorldGen()
	if version == sl.configVersion {
		return
	}
	gen, err := world.NewGeneratorFromSettings(cfg)
	if err != nil {
		log.Printf("garden: keeping previous world, new settings rejected: %v", err)
		sl.configVersion = version
		return
	}
	sl.streamer.Reset(gen)
	sl.configVersion = version
	log.Printf("garden: world settings v%d applied, cache reset", version)
}

// Visible returns the chunks drawn in the last frame.
func (sl *StreamLoop) Visible() []world.ChunkView {
	return sl.visible
}
