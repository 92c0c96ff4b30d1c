package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// WorldGen is the world generation document, usually read from a YAML file.
type WorldGen struct {
	WorldSeed int64        `yaml:"world_seed"`
	Terrain   TerrainGen   `yaml:"terrain"`
	Biome     BiomeGen     `yaml:"biome"`
	Spawn     SpawnGen     `yaml:"spawn"`
	Objects   ObjectShapes `yaml:"objects"`
}

// TerrainGen configures the height field and the chunk footprint.
type TerrainGen struct {
	Noise      string  `yaml:"noise"`
	Seed       int64   `yaml:"seed"`
	SampleRate float64 `yaml:"sample_rate"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Depth      int     `yaml:"depth"`
	MaxHeight  float64 `yaml:"max_height"`
	MinHeight  float64 `yaml:"min_height"`
}

// BiomeGen configures biome classification noise.
type BiomeGen struct {
	Noise           string  `yaml:"noise"`
	Seed            int64   `yaml:"seed"`
	BiomeSampleRate float64 `yaml:"biome_sample_rate"`
	PlantSampleRate float64 `yaml:"plant_sample_rate"`
}

// SpawnGen holds the spawn decision constants and optional table overrides.
type SpawnGen struct {
	Chance         float64 `yaml:"chance"`
	GroupThreshold float64 `yaml:"group_threshold"`
	GroupFactor    float64 `yaml:"group_factor"`
	// Tables maps a biome name to its rules in priority order. Biomes left out
	// keep their default tables.
	Tables map[string][]SpawnRuleGen `yaml:"tables,omitempty"`
}

// SpawnRuleGen is one spawn table entry.
type SpawnRuleGen struct {
	Type      string  `yaml:"type"`
	BaseRate  float64 `yaml:"base_rate"`
	GroupRate float64 `yaml:"group_rate"`
}

// ObjectShapes sizes the synthesized objects.
type ObjectShapes struct {
	TrunkHeight  int     `yaml:"trunk_height"`
	TrunkRadius  float64 `yaml:"trunk_radius"`
	CanopyRadius float64 `yaml:"canopy_radius"`
	CanopyLayers int     `yaml:"canopy_layers"`
	OffsetJitter int     `yaml:"offset_jitter"`
	RadiusJitter float64 `yaml:"radius_jitter"`
	RockPebbles  int     `yaml:"rock_pebbles"`
	RockRadius   int     `yaml:"rock_radius"`
}

// DefaultWorldGen returns the reference world.
func DefaultWorldGen() WorldGen {
	return WorldGen{
		WorldSeed: 0,
		Terrain: TerrainGen{
			Noise:      "perlin",
			Seed:       555,
			SampleRate: 0.013,
			Width:      32,
			Height:     20,
			Depth:      32,
			MaxHeight:  20,
			MinHeight:  0,
		},
		Biome: BiomeGen{
			Noise:           "perlin",
			Seed:            556,
			BiomeSampleRate: 0.002,
			PlantSampleRate: 0.05,
		},
		Spawn: SpawnGen{
			Chance:         0.005,
			GroupThreshold: 0.6,
			GroupFactor:    2,
		},
		Objects: ObjectShapes{
			TrunkHeight:  40,
			TrunkRadius:  2,
			CanopyRadius: 10,
			CanopyLayers: 2,
			OffsetJitter: 3,
			RadiusJitter: 2,
			RockPebbles:  5,
			RockRadius:   3,
		},
	}
}

// LoadWorldGen reads path on top of the defaults and validates the result.
func LoadWorldGen(path string) (WorldGen, error) {
	cfg := DefaultWorldGen()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read world gen config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML.
func (cfg WorldGen) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}

var validNoise = map[string]bool{"": true, "perlin": true, "simplex": true, "value": true}

var validBiomes = map[string]bool{"desert": true, "field": true, "forest": true}

var validSpawnTypes = map[string]bool{"tree": true, "flower": true, "cactus": true, "rock": true}

// Validate reports the first problem found in cfg.
func (cfg WorldGen) Validate() error {
	t := cfg.Terrain
	if !validNoise[t.Noise] {
		return fmt.Errorf("terrain.noise %q is not one of perlin, simplex, value", t.Noise)
	}
	if !validNoise[cfg.Biome.Noise] {
		return fmt.Errorf("biome.noise %q is not one of perlin, simplex, value", cfg.Biome.Noise)
	}
	if t.Width <= 0 || t.Depth <= 0 {
		return errors.New("terrain.width and terrain.depth must be positive")
	}
	if t.SampleRate <= 0 {
		return errors.New("terrain.sample_rate must be positive")
	}
	if t.MaxHeight < t.MinHeight {
		return errors.New("terrain.max_height must not be below terrain.min_height")
	}
	if cfg.Biome.BiomeSampleRate <= 0 || cfg.Biome.PlantSampleRate <= 0 {
		return errors.New("biome sample rates must be positive")
	}
	if cfg.Spawn.Chance < 0 || cfg.Spawn.GroupFactor < 0 {
		return errors.New("spawn.chance and spawn.group_factor must not be negative")
	}
	for biome, rules := range cfg.Spawn.Tables {
		if !validBiomes[biome] {
			return fmt.Errorf("spawn.tables: unknown biome %q", biome)
		}
		for i, r := range rules {
			if !validSpawnTypes[r.Type] {
				return fmt.Errorf("spawn.tables.%s[%d]: unknown type %q", biome, i, r.Type)
			}
			if r.BaseRate < 0 || r.GroupRate < 0 {
				return fmt.Errorf("spawn.tables.%s[%d]: rates must not be negative", biome, i)
			}
		}
	}
	o := cfg.Objects
	if o.TrunkHeight < 0 || o.TrunkRadius < 0 || o.CanopyRadius < 0 || o.CanopyLayers < 0 {
		return errors.New("objects: tree dimensions must not be negative")
	}
	if o.RockPebbles < 0 || o.RockRadius < 0 {
		return errors.New("objects: rock dimensions must not be negative")
	}
	return nil
}

var (
	worldGenMu      sync.RWMutex
	globalWorldGen  = DefaultWorldGen()
	worldGenVersion uint64
)

// GetWorldGen returns the active world generation settings and their version.
// The version increases on every SetWorldGen.
func GetWorldGen() (WorldGen, uint64) {
	worldGenMu.RLock()
	defer worldGenMu.RUnlock()
	return globalWorldGen, worldGenVersion
}

// SetWorldGen validates and installs cfg as the active settings.
func SetWorldGen(cfg WorldGen) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	worldGenMu.Lock()
	defer worldGenMu.Unlock()
	globalWorldGen = cfg
	worldGenVersion++
	return nil
}
