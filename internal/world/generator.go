package world

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"voxel-garden/internal/world/models"

	"github.com/go-gl/mathgl/mgl32"
)

// TerrainGenerator produces chunk data for the streamer. Implementations must
// be pure functions of the coordinate so they can run off the main goroutine.
type TerrainGenerator interface {
	Generate(coord ChunkCoord) *ChunkData
	// Footprint returns the chunk size in columns along X and Z.
	Footprint() (width, depth int)
}

// Rock defaults.
const (
	defaultRockPebbles = 5
	defaultRockRadius  = 3
)

// Generator composes height sampling, biome classification, spawn decision
// and object synthesis into chunk data.
type Generator struct {
	terrain TerrainConfig
	biome   BiomeConfig
	tree    models.TreeShape

	rockPebbles int
	rockRadius  int

	seed int64 // world seed for per-chunk random sources
}

// GeneratorOption tweaks a Generator at construction.
type GeneratorOption func(*Generator)

// WithTreeShape overrides the tree dimensions.
func WithTreeShape(shape models.TreeShape) GeneratorOption {
	return func(g *Generator) { g.tree = shape }
}

// WithRockShape overrides pebble count and radius maxima.
func WithRockShape(pebbles, radius int) GeneratorOption {
	return func(g *Generator) {
		g.rockPebbles = pebbles
		g.rockRadius = radius
	}
}

// WithWorldSeed sets the seed mixed into every per-chunk random source.
func WithWorldSeed(seed int64) GeneratorOption {
	return func(g *Generator) { g.seed = seed }
}

// NewGenerator validates the configs and builds a generator.
func NewGenerator(terrain TerrainConfig, biome BiomeConfig, opts ...GeneratorOption) (*Generator, error) {
	if terrain.Noise == nil {
		return nil, errors.New("terrain noise is nil")
	}
	if biome.Noise == nil {
		return nil, errors.New("biome noise is nil")
	}
	if terrain.Width <= 0 || terrain.Depth <= 0 {
		return nil, fmt.Errorf("chunk footprint must be positive, got %dx%d", terrain.Width, terrain.Depth)
	}
	if biome.Tables == nil {
		biome.Tables = DefaultSpawnTables()
	}

	g := &Generator{
		terrain:     terrain,
		biome:       biome,
		tree:        models.DefaultTreeShape(),
		rockPebbles: defaultRockPebbles,
		rockRadius:  defaultRockRadius,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Terrain returns the terrain configuration.
func (g *Generator) Terrain() TerrainConfig { return g.terrain }

// Biome returns the biome configuration.
func (g *Generator) Biome() BiomeConfig { return g.biome }

// Seed returns the world seed.
func (g *Generator) Seed() int64 { return g.seed }

// Footprint implements TerrainGenerator.
func (g *Generator) Footprint() (int, int) {
	return g.terrain.Width, g.terrain.Depth
}

// Reseed returns a copy of g drawing randomness from a different world seed.
// Noise fields are shared; they are read-only.
func (g *Generator) Reseed(seed int64) *Generator {
	cp := *g
	cp.seed = seed
	return &cp
}

// chunkRand returns the random source for one chunk.
func (g *Generator) chunkRand(coord ChunkCoord) *rand.Rand {
	h := hash2(int64(coord.X), int64(coord.Z), g.seed)
	return rand.New(rand.NewPCG(h, h^0xD1B54A32D192ED03))
}

// Generate builds fresh chunk data for coord. It reads only immutable
// configuration and allocates all of its output.
func (g *Generator) Generate(coord ChunkCoord) *ChunkData {
	w, d := g.terrain.Width, g.terrain.Depth
	rng := g.chunkRand(coord)

	data := &ChunkData{
		Coord:  coord,
		Ground: make([]GroundVoxel, 0, w*d),
	}

	baseX := coord.X * w
	baseZ := coord.Z * d
	for lx := 0; lx < w; lx++ {
		for lz := 0; lz < d; lz++ {
			x := baseX + lx
			z := baseZ + lz

			h := g.terrain.SurfaceHeight(x, z)
			biome := g.biome.GetBiome(x, z)
			data.Ground = append(data.Ground, GroundVoxel{
				Position: mgl32.Vec3{float32(x), float32(h), float32(z)},
				Color:    biome.Color(),
			})

			r := rng.Float64()
			st, ok := g.biome.SpawnTypeAt(x, z, biome, r)
			if !ok {
				continue
			}
			pos := mgl32.Vec3{float32(x), float32(h + 1), float32(z)}
			data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
				Position: pos,
				Color:    st.Color(),
				Type:     st,
			})
			if obj, ok := g.synthesize(st, rng, pos); ok {
				data.Objects = append(data.Objects, obj)
			}
		}
	}
	return data
}

// synthesize builds the object for a spawn type.
// TODO: cactus geometry (ribbed column with side arms); cactus spawns only mark a point for now.
func (g *Generator) synthesize(st SpawnType, rng *rand.Rand, pos mgl32.Vec3) (models.Object, bool) {
	switch st {
	case SpawnTree:
		return models.Tree(rng, g.tree, pos), true
	case SpawnFlower:
		return models.Flower(rng, pos), true
	case SpawnRock:
		return models.Rock(rng, g.rockPebbles, g.rockRadius, pos), true
	default:
		return models.Object{}, false
	}
}
