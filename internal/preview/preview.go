// Package preview renders a top-down image of resident chunks.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"voxel-garden/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Options controls preview rendering.
type Options struct {
	Scale     int     // output pixels per column
	MaxHeight float64 // height mapped to full brightness
	Markers   bool    // draw spawn points over the ground
}

var background = color.NRGBA{R: 10, G: 10, B: 18, A: 255}

// Render draws chunks as one pixel per column, shaded by surface height, then
// upscales by opts.Scale with nearest-neighbor sampling.
func Render(chunks []world.ChunkView, opts Options) (*image.NRGBA, error) {
	if len(chunks) == 0 {
		return nil, errors.New("no chunks to render")
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.MaxHeight <= 0 {
		opts.MaxHeight = 1
	}

	bounds, ok := columnBounds(chunks)
	if !ok {
		return nil, errors.New("chunks contain no ground")
	}
	src := image.NewNRGBA(bounds)
	draw.Draw(src, src.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	for _, cv := range chunks {
		for _, g := range cv.Chunk.Ground {
			x, z := int(g.Position.X()), int(g.Position.Z())
			shade := 0.4 + 0.6*math.Min(float64(g.Position.Y())/opts.MaxHeight, 1)
			src.SetNRGBA(x, z, toNRGBA(g.Color, shade))
		}
		if !opts.Markers {
			continue
		}
		for _, sp := range cv.Chunk.SpawnPoints {
			src.SetNRGBA(int(sp.Position.X()), int(sp.Position.Z()), toNRGBA(sp.Color, 1))
		}
	}

	if opts.Scale == 1 {
		return src, nil
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*opts.Scale, b.Dy()*opts.Scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// SavePNG renders chunks and writes the image to path, creating parent
// directories as needed.
func SavePNG(path string, chunks []world.ChunkView, opts Options) error {
	img, err := Render(chunks, opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}

// columnBounds returns the world-column rectangle covered by chunks.
func columnBounds(chunks []world.ChunkView) (image.Rectangle, bool) {
	var r image.Rectangle
	found := false
	for _, cv := range chunks {
		for _, g := range cv.Chunk.Ground {
			x, z := int(g.Position.X()), int(g.Position.Z())
			cell := image.Rect(x, z, x+1, z+1)
			if !found {
				r = cell
				found = true
				continue
			}
			r = r.Union(cell)
		}
	}
	return r, found
}

func toNRGBA(c mgl32.Vec4, shade float64) color.NRGBA {
	ch := func(v float32) uint8 {
		f := float64(v) * shade
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		return uint8(math.Round(f * 255))
	}
	return color.NRGBA{R: ch(c.X()), G: ch(c.Y()), B: ch(c.Z()), A: 255}
}
