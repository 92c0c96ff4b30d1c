package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Biome is the coarse terrain classification of a column.
type Biome uint8

const (
	BiomeDesert Biome = iota
	BiomeField
	BiomeForest
)

// Biome bands on the 0-100 biome score. Boundaries belong to the lower band.
const (
	desertMaxScore = 20.0
	fieldMaxScore  = 50.0
)

var biomeNames = [...]string{
	BiomeDesert: "desert",
	BiomeField:  "field",
	BiomeForest: "forest",
}

func (b Biome) String() string {
	if int(b) < len(biomeNames) {
		return biomeNames[b]
	}
	return "unknown"
}

// Ground colors per biome.
var biomeColors = [...]mgl32.Vec4{
	BiomeDesert: {0.85, 0.78, 0.45, 1.0},
	BiomeField:  {0.35, 0.65, 0.25, 1.0},
	BiomeForest: {0.1, 0.5, 0.2, 1.0},
}

// Color returns the deterministic ground color of the biome.
func (b Biome) Color() mgl32.Vec4 {
	if int(b) < len(biomeColors) {
		return biomeColors[b]
	}
	return biomeColors[BiomeField]
}

// BiomeForScore classifies a biome score in [0, 100].
func BiomeForScore(s float64) Biome {
	switch {
	case s <= desertMaxScore:
		return BiomeDesert
	case s <= fieldMaxScore:
		return BiomeField
	default:
		return BiomeForest
	}
}

// BiomeConfig drives biome classification and plant spawning. Its noise is
// independent from the terrain height noise.
type BiomeConfig struct {
	BiomeSampleRate float64
	PlantSampleRate float64
	Noise           *NoiseField
	Spawn           SpawnParams
	Tables          map[Biome][]SpawnRule
}

// DefaultBiomeConfig returns the reference sample rates and spawn tables.
func DefaultBiomeConfig(noise *NoiseField) BiomeConfig {
	return BiomeConfig{
		BiomeSampleRate: 0.002,
		PlantSampleRate: 0.05,
		Noise:           noise,
		Spawn:           DefaultSpawnParams(),
		Tables:          DefaultSpawnTables(),
	}
}

// Sample returns biome noise at (x, z) scaled by rate, in [0, 1].
func (bc BiomeConfig) Sample(rate float64, x, z int) float64 {
	return bc.Noise.Sample01(float64(x)*rate, float64(z)*rate)
}

// BiomeScore returns the 0-100 biome score of column (x, z).
func (bc BiomeConfig) BiomeScore(x, z int) float64 {
	return 100 * bc.Sample(bc.BiomeSampleRate, x, z)
}

// GetBiome classifies column (x, z).
func (bc BiomeConfig) GetBiome(x, z int) Biome {
	return BiomeForScore(bc.BiomeScore(x, z))
}

// PlantSample returns the plant clustering noise of column (x, z), in [0, 1].
func (bc BiomeConfig) PlantSample(x, z int) float64 {
	return bc.Sample(bc.PlantSampleRate, x, z)
}

// SpawnTypeAt runs the spawn decision for column (x, z) in biome b using the
// column's single random draw r in [0, 1).
func (bc BiomeConfig) SpawnTypeAt(x, z int, b Biome, r float64) (SpawnType, bool) {
	return DecideSpawn(bc.Tables[b], bc.PlantSample(x, z), r, bc.Spawn)
}
