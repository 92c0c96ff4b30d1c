// Command garden streams the procedural world around a moving viewpoint
// without a window, printing streaming stats once per second.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"voxel-garden/internal/config"
	"voxel-garden/internal/preview"
	"voxel-garden/internal/world"
)

func main() {
	var (
		configPath  = flag.String("config", "", "world generation YAML file (defaults when empty)")
		frames      = flag.Int("frames", 600, "frames to run; 0 runs until interrupted")
		fps         = flag.Int("fps", 60, "frame cap; 0 for unlimited")
		distance    = flag.Int("render-distance", config.DefaultRenderDistance, "chunk radius per axis")
		noCull      = flag.Bool("no-cull", false, "draw chunks behind the viewer too")
		pathRadius  = flag.Float64("path-radius", 256, "radius of the viewpoint's circular walk")
		speed       = flag.Float64("speed", 40, "viewpoint speed in columns per second")
		spawnRadius = flag.Int("spawn-radius", 1, "chunks generated synchronously before the first frame")
		previewPath = flag.String("preview", "", "write a top-down PNG of resident chunks on exit")
		previewSize = flag.Int("preview-scale", 2, "preview pixels per column")
	)
	flag.Parse()

	config.SetRenderDistance(*distance)
	config.SetFPSLimit(*fps)
	config.SetCullBehind(!*noCull)

	if *configPath != "" {
		cfg, err := config.LoadWorldGen(*configPath)
		if err != nil {
			log.Fatalf("garden: %v", err)
		}
		if err := config.SetWorldGen(cfg); err != nil {
			log.Fatalf("garden: %v", err)
		}
	}

	cfg, version := config.GetWorldGen()
	gen, err := world.NewGeneratorFromSettings(cfg)
	if err != nil {
		log.Fatalf("garden: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streamer := world.NewChunkStreamer(gen)
	streamer.Start(ctx)
	defer streamer.Close()

	vp := &Viewpoint{Radius: *pathRadius, Speed: *speed, Height: float32(cfg.Terrain.MaxHeight) + 10}
	loaded := streamer.LoadAroundSync(vp.Position(), *spawnRadius)
	log.Printf("garden: %d spawn chunks generated", loaded)

	if *configPath != "" {
		go reloadOnHangup(ctx, *configPath)
	}

	loop := NewStreamLoop(streamer, vp, version)
	loop.Run(*frames, ctx.Done())

	if *previewPath != "" {
		resident := streamer.AppendResident(nil)
		opts := preview.Options{Scale: *previewSize, MaxHeight: cfg.Terrain.MaxHeight, Markers: true}
		if err := preview.SavePNG(*previewPath, resident, opts); err != nil {
			log.Printf("garden: preview: %v", err)
		} else {
			log.Printf("garden: preview of %d chunks written to %s", len(resident), *previewPath)
		}
	}

	if err := streamer.Err(); err != nil {
		log.Printf("garden: %v", err)
		os.Exit(1)
	}
}

// reloadOnHangup re-reads path on SIGHUP and publishes it; the stream loop
// picks the change up on its next frame.
func reloadOnHangup(ctx context.Context, path string) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			cfg, err := config.LoadWorldGen(path)
			if err != nil {
				log.Printf("garden: reload: %v", err)
				continue
			}
			if err := config.SetWorldGen(cfg); err != nil {
				log.Printf("garden: reload: %v", err)
			}
		}
	}
}
