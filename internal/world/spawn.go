package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SpawnType is the kind of decorative object a column may host.
type SpawnType uint8

const (
	SpawnTree SpawnType = iota
	SpawnFlower
	SpawnCactus
	SpawnRock
)

var spawnNames = [...]string{
	SpawnTree:   "tree",
	SpawnFlower: "flower",
	SpawnCactus: "cactus",
	SpawnRock:   "rock",
}

func (s SpawnType) String() string {
	if int(s) < len(spawnNames) {
		return spawnNames[s]
	}
	return "unknown"
}

// ParseSpawnType maps a name to its SpawnType.
func ParseSpawnType(name string) (SpawnType, bool) {
	for i, n := range spawnNames {
		if n == name {
			return SpawnType(i), true
		}
	}
	return 0, false
}

var spawnColors = [...]mgl32.Vec4{
	SpawnTree:   {0.5, 0.2, 0.0, 1.0},
	SpawnFlower: {1.0, 0.5, 0.0, 1.0},
	SpawnCactus: {0.2, 0.55, 0.25, 1.0},
	SpawnRock:   {0.2, 0.2, 0.2, 1.0},
}

// Color returns the marker color used for spawn points of this type.
func (s SpawnType) Color() mgl32.Vec4 {
	if int(s) < len(spawnColors) {
		return spawnColors[s]
	}
	return mgl32.Vec4{1, 0, 0, 1}
}

// SpawnRule is one entry of a biome spawn table.
type SpawnRule struct {
	Type      SpawnType
	BaseRate  float64
	GroupRate float64
}

// SpawnParams are the tunable constants of the spawn decision.
type SpawnParams struct {
	Chance         float64 // scales the accumulated rate before comparing to the draw
	GroupThreshold float64 // clustering boosts at or below this are ignored
	GroupFactor    float64
}

// DefaultSpawnParams returns the reference constants.
func DefaultSpawnParams() SpawnParams {
	return SpawnParams{Chance: 0.005, GroupThreshold: 0.6, GroupFactor: 2}
}

// DefaultSpawnTables returns the per-biome tables in priority order.
func DefaultSpawnTables() map[Biome][]SpawnRule {
	return map[Biome][]SpawnRule{
		BiomeForest: {
			{Type: SpawnTree, BaseRate: 0.0001, GroupRate: 0.33},
			{Type: SpawnFlower, BaseRate: 0.01, GroupRate: 0.1},
		},
		BiomeField: {
			{Type: SpawnFlower, BaseRate: 0.02, GroupRate: 0.7},
		},
		BiomeDesert: {
			{Type: SpawnCactus, BaseRate: 0.02, GroupRate: 0.3},
			{Type: SpawnRock, BaseRate: 0.01, GroupRate: 0.05},
		},
	}
}

// DecideSpawn walks rules in order with a single draw r and returns the first
// matching type. Each entry contributes its base rate plus a clustering boost
// that only counts once it exceeds the group threshold.
func DecideSpawn(rules []SpawnRule, plant, r float64, params SpawnParams) (SpawnType, bool) {
	p := 0.0
	for _, rule := range rules {
		boost := params.GroupFactor * rule.GroupRate * plant
		if boost <= params.GroupThreshold {
			boost = 0
		}
		p2 := p + rule.BaseRate + boost
		if params.Chance*p2 >= r {
			return rule.Type, true
		}
		p += rule.BaseRate
	}
	return 0, false
}
