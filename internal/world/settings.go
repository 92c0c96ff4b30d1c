package world

import (
	"fmt"

	"voxel-garden/internal/config"
	"voxel-garden/internal/world/models"
)

var biomesByName = map[string]Biome{
	"desert": BiomeDesert,
	"field":  BiomeField,
	"forest": BiomeForest,
}

// NewGeneratorFromSettings builds a generator from a world generation
// document. Each call builds fresh noise fields.
func NewGeneratorFromSettings(cfg config.WorldGen) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	terrainNoise, err := NewNoiseField(NoiseKind(cfg.Terrain.Noise), cfg.Terrain.Seed)
	if err != nil {
		return nil, fmt.Errorf("terrain noise: %w", err)
	}
	biomeNoise, err := NewNoiseField(NoiseKind(cfg.Biome.Noise), cfg.Biome.Seed)
	if err != nil {
		return nil, fmt.Errorf("biome noise: %w", err)
	}

	terrain := TerrainConfig{
		SampleRate: cfg.Terrain.SampleRate,
		Width:      cfg.Terrain.Width,
		Height:     cfg.Terrain.Height,
		Depth:      cfg.Terrain.Depth,
		MaxHeight:  cfg.Terrain.MaxHeight,
		MinHeight:  cfg.Terrain.MinHeight,
		Noise:      terrainNoise,
	}

	tables := DefaultSpawnTables()
	for name, rules := range cfg.Spawn.Tables {
		b, ok := biomesByName[name]
		if !ok {
			return nil, fmt.Errorf("spawn table: unknown biome %q", name)
		}
		table := make([]SpawnRule, 0, len(rules))
		for _, r := range rules {
			st, ok := ParseSpawnType(r.Type)
			if !ok {
				return nil, fmt.Errorf("spawn table %s: unknown type %q", name, r.Type)
			}
			table = append(table, SpawnRule{Type: st, BaseRate: r.BaseRate, GroupRate: r.GroupRate})
		}
		tables[b] = table
	}

	biome := BiomeConfig{
		BiomeSampleRate: cfg.Biome.BiomeSampleRate,
		PlantSampleRate: cfg.Biome.PlantSampleRate,
		Noise:           biomeNoise,
		Spawn: SpawnParams{
			Chance:         cfg.Spawn.Chance,
			GroupThreshold: cfg.Spawn.GroupThreshold,
			GroupFactor:    cfg.Spawn.GroupFactor,
		},
		Tables: tables,
	}

	o := cfg.Objects
	return NewGenerator(terrain, biome,
		WithWorldSeed(cfg.WorldSeed),
		WithTreeShape(models.TreeShape{
			TrunkHeight:  o.TrunkHeight,
			TrunkRadius:  o.TrunkRadius,
			CanopyRadius: o.CanopyRadius,
			CanopyLayers: o.CanopyLayers,
			OffsetJitter: o.OffsetJitter,
			RadiusJitter: o.RadiusJitter,
		}),
		WithRockShape(o.RockPebbles, o.RockRadius),
	)
}
