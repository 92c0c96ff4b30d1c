package world

import (
	"math"
)

// TerrainConfig controls surface height sampling. Values are immutable once
// handed to a Generator; a configuration change builds a new one.
type TerrainConfig struct {
	SampleRate float64
	Width      int     // columns per chunk along X
	Height     int     // ceiling, kept for configuration parity
	Depth      int     // columns per chunk along Z
	MaxHeight  float64 // height at noise maximum
	MinHeight  float64 // floor applied to every sample
	Noise      *NoiseField
}

// DefaultTerrainConfig mirrors the reference world: 32x32 chunks, gentle hills.
func DefaultTerrainConfig(noise *NoiseField) TerrainConfig {
	return TerrainConfig{
		SampleRate: 0.013,
		Width:      ChunkSize,
		Height:     20,
		Depth:      ChunkSize,
		MaxHeight:  20,
		MinHeight:  0,
		Noise:      noise,
	}
}

// Sample returns the surface height at column (x, z), in [MinHeight, MaxHeight].
func (tc TerrainConfig) Sample(x, z int) float64 {
	s := tc.Noise.Sample01(float64(x)*tc.SampleRate, float64(z)*tc.SampleRate)
	h := s * tc.MaxHeight
	if math.IsNaN(h) || math.IsInf(h, 0) {
		h = tc.MinHeight
	}
	if h < tc.MinHeight {
		h = tc.MinHeight
	}
	if tc.MaxHeight >= tc.MinHeight && h > tc.MaxHeight {
		h = tc.MaxHeight
	}
	return h
}

// SurfaceHeight returns the integer surface cell of column (x, z).
func (tc TerrainConfig) SurfaceHeight(x, z int) int {
	return int(math.Floor(tc.Sample(x, z)))
}
