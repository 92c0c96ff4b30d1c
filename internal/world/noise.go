package world

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseKind selects the coherent-noise algorithm behind a NoiseField.
type NoiseKind string

const (
	NoisePerlin  NoiseKind = "perlin"
	NoiseSimplex NoiseKind = "simplex"
	NoiseValue   NoiseKind = "value"
)

// Perlin parameters used for every perlin field.
const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

// Value noise octave settings.
const (
	valueOctaves     = 4
	valuePersistence = 0.5
	valueLacunarity  = 2.0
)

// NoiseField is a seeded 2D coherent-noise sampler returning values in [-1, 1].
// It holds no mutable state after construction and is safe for concurrent use.
type NoiseField struct {
	kind    NoiseKind
	seed    int64
	perlin  *perlin.Perlin
	simplex opensimplex.Noise
}

// NewNoiseField builds a noise field of the given kind. An empty kind means perlin.
func NewNoiseField(kind NoiseKind, seed int64) (*NoiseField, error) {
	if kind == "" {
		kind = NoisePerlin
	}
	nf := &NoiseField{kind: kind, seed: seed}
	switch kind {
	case NoisePerlin:
		nf.perlin = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	case NoiseSimplex:
		nf.simplex = opensimplex.New(seed)
	case NoiseValue:
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
	return nf, nil
}

// MustNoiseField is NewNoiseField for known-good kinds.
func MustNoiseField(kind NoiseKind, seed int64) *NoiseField {
	nf, err := NewNoiseField(kind, seed)
	if err != nil {
		panic(err)
	}
	return nf
}

// Kind returns the algorithm behind the field.
func (nf *NoiseField) Kind() NoiseKind { return nf.kind }

// Seed returns the seed the field was built with.
func (nf *NoiseField) Seed() int64 { return nf.seed }

// Sample returns coherent noise at (x, z) in [-1, 1].
func (nf *NoiseField) Sample(x, z float64) float64 {
	var v float64
	switch nf.kind {
	case NoisePerlin:
		v = nf.perlin.Noise2D(x, z)
	case NoiseSimplex:
		v = nf.simplex.Eval2(x, z)
	default:
		v = octaveNoise2D(x, z, nf.seed, valueOctaves, valuePersistence, valueLacunarity)*2 - 1
	}
	return clampUnit(v)
}

// Sample01 returns Sample remapped to [0, 1].
func (nf *NoiseField) Sample01(x, z float64) float64 {
	return (nf.Sample(x, z) + 1) / 2
}

// clampUnit pins v to [-1, 1]; NaN becomes 0.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x int64, z int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue(x int64, z int64, seed int64) float64 {
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(x float64, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	x1 := x0 + 1
	z1 := z0 + 1

	fx := fade(x - x0)
	fz := fade(z - z0)

	v00 := latticeValue(int64(x0), int64(z0), seed)
	v10 := latticeValue(int64(x1), int64(z0), seed)
	v01 := latticeValue(int64(x0), int64(z1), seed)
	v11 := latticeValue(int64(x1), int64(z1), seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fz) // [0,1]
}

func octaveNoise2D(x float64, z float64, seed int64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	sum := 0.0
	norm := 0.0
	for i := range octaves {
		v := valueNoise2D(x*frequency, z*frequency, seed+int64(i*131))
		sum += v * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm // [0,1]
}
