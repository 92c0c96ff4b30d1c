package world

import (
	"reflect"
	"sync"
	"testing"

	"voxel-garden/internal/world/models"
)

func testConfigs() (TerrainConfig, BiomeConfig) {
	terrain := DefaultTerrainConfig(MustNoiseField(NoisePerlin, 555))
	terrain.Width, terrain.Depth = 8, 8
	return terrain, DefaultBiomeConfig(MustNoiseField(NoisePerlin, 556))
}

func newTestGenerator(t *testing.T, opts ...GeneratorOption) *Generator {
	t.Helper()
	terrain, biome := testConfigs()
	g, err := NewGenerator(terrain, biome, opts...)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

// smallTree keeps object synthesis cheap in tests that spawn everywhere.
var smallTree = models.TreeShape{TrunkHeight: 3, TrunkRadius: 0, CanopyRadius: 1, CanopyLayers: 1}

func TestGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = newTestGenerator(t)
}

func TestNewGeneratorRejectsBadConfig(t *testing.T) {
	terrain, biome := testConfigs()

	bad := terrain
	bad.Noise = nil
	if _, err := NewGenerator(bad, biome); err == nil {
		t.Error("expected error for nil terrain noise")
	}

	bad = terrain
	bad.Width = 0
	if _, err := NewGenerator(bad, biome); err == nil {
		t.Error("expected error for zero width")
	}

	badBiome := biome
	badBiome.Noise = nil
	if _, err := NewGenerator(terrain, badBiome); err == nil {
		t.Error("expected error for nil biome noise")
	}
}

func TestGenerateCoversFootprint(t *testing.T) {
	g := newTestGenerator(t)
	for _, coord := range []ChunkCoord{{0, 0}, {-3, 5}, {17, -9}} {
		data := g.Generate(coord)
		if data.Coord != coord {
			t.Errorf("Coord = %v, want %v", data.Coord, coord)
		}
		if len(data.Ground) != 8*8 {
			t.Fatalf("%v: expected %d ground voxels, got %d", coord, 8*8, len(data.Ground))
		}
		seen := make(map[[2]int]bool, len(data.Ground))
		for _, gv := range data.Ground {
			x, z := int(gv.Position.X()), int(gv.Position.Z())
			if got := ChunkCoordAt(x, z, 8, 8); got != coord {
				t.Fatalf("%v: column (%d,%d) belongs to %v", coord, x, z, got)
			}
			if seen[[2]int{x, z}] {
				t.Fatalf("%v: column (%d,%d) emitted twice", coord, x, z)
			}
			seen[[2]int{x, z}] = true
			if want := g.Terrain().SurfaceHeight(x, z); int(gv.Position.Y()) != want {
				t.Errorf("column (%d,%d): y = %v, want %d", x, z, gv.Position.Y(), want)
			}
			if want := g.Biome().GetBiome(x, z).Color(); gv.Color != want {
				t.Errorf("column (%d,%d): color = %v, want %v", x, z, gv.Color, want)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	g := newTestGenerator(t, WithWorldSeed(99))
	coord := ChunkCoord{X: 3, Z: -2}
	want := g.Generate(coord)

	var wg sync.WaitGroup
	results := make([]*ChunkData, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.Generate(coord)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("run %d produced different chunk data", i)
		}
	}
}

func TestGenerateSpawnPlacement(t *testing.T) {
	terrain, biome := testConfigs()
	biome.Spawn.Chance = 1e6 // every column takes its table's first entry
	g, err := NewGenerator(terrain, biome, WithTreeShape(smallTree), WithRockShape(2, 1))
	if err != nil {
		t.Fatal(err)
	}

	for _, coord := range []ChunkCoord{{0, 0}, {40, 0}, {0, -40}, {100, 100}} {
		data := g.Generate(coord)
		if len(data.SpawnPoints) != len(data.Ground) {
			t.Fatalf("%v: expected a spawn on every column, got %d of %d", coord, len(data.SpawnPoints), len(data.Ground))
		}

		columns := make(map[[2]int]bool)
		objects := 0
		for _, sp := range data.SpawnPoints {
			x, z := int(sp.Position.X()), int(sp.Position.Z())
			if columns[[2]int{x, z}] {
				t.Fatalf("column (%d,%d) has more than one spawn point", x, z)
			}
			columns[[2]int{x, z}] = true

			if want := g.Terrain().SurfaceHeight(x, z) + 1; int(sp.Position.Y()) != want {
				t.Errorf("spawn at (%d,%d): y = %v, want %d", x, z, sp.Position.Y(), want)
			}
			b := g.Biome().GetBiome(x, z)
			if want := g.Biome().Tables[b][0].Type; sp.Type != want {
				t.Errorf("spawn at (%d,%d) in %v: type %v, want %v", x, z, b, sp.Type, want)
			}
			if sp.Color != sp.Type.Color() {
				t.Errorf("spawn at (%d,%d): color %v does not match type %v", x, z, sp.Color, sp.Type)
			}
			if sp.Type != SpawnCactus {
				objects++
			}
		}
		if len(data.Objects) != objects {
			t.Errorf("%v: expected %d objects (cactus has none), got %d", coord, objects, len(data.Objects))
		}
		for _, obj := range data.Objects {
			if len(obj.Points) == 0 {
				t.Errorf("%v: empty object at %v", coord, obj.Translation)
			}
		}
	}
}

func TestGenerateNoSpawnWithZeroChance(t *testing.T) {
	terrain, biome := testConfigs()
	biome.Spawn.Chance = 0
	biome.Spawn.GroupFactor = 0
	g, err := NewGenerator(terrain, biome)
	if err != nil {
		t.Fatal(err)
	}
	// Only an exact zero draw can still match.
	data := g.Generate(ChunkCoord{X: 1, Z: 1})
	if len(data.SpawnPoints) > 1 {
		t.Errorf("expected at most one spawn with zero chance, got %d", len(data.SpawnPoints))
	}
}

func TestReseedKeepsGround(t *testing.T) {
	g := newTestGenerator(t, WithWorldSeed(1))
	g2 := g.Reseed(2)
	if g2.Seed() != 2 || g.Seed() != 1 {
		t.Fatalf("Reseed changed the wrong generator: %d, %d", g.Seed(), g2.Seed())
	}
	coord := ChunkCoord{X: -1, Z: 4}
	if !reflect.DeepEqual(g.Generate(coord).Ground, g2.Generate(coord).Ground) {
		t.Error("ground must not depend on the world seed")
	}
}

func TestFootprint(t *testing.T) {
	w, d := newTestGenerator(t).Footprint()
	if w != 8 || d != 8 {
		t.Errorf("Footprint() = %d,%d, want 8,8", w, d)
	}
}

func BenchmarkGenerateChunk(b *testing.B) {
	g, err := NewGenerator(
		DefaultTerrainConfig(MustNoiseField(NoisePerlin, 555)),
		DefaultBiomeConfig(MustNoiseField(NoisePerlin, 556)),
	)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Generate(ChunkCoord{X: i % 64, Z: i / 64})
	}
}
