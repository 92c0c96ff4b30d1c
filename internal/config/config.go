package config

import "sync"

// Render distance bounds, in chunks per axis.
const (
	MinRenderDistance     = 1
	MaxRenderDistance     = 32
	DefaultRenderDistance = 8
)

// RenderSettings holds render configuration
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
	cullBehind     bool
	fpsLimit       int // 0 = unlimited
}

var globalRenderSettings = &RenderSettings{
	renderDistance: DefaultRenderDistance,
	cullBehind:     true,
	fpsLimit:       60,
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if distance < MinRenderDistance {
		distance = MinRenderDistance
	}
	if distance > MaxRenderDistance {
		distance = MaxRenderDistance
	}

	globalRenderSettings.renderDistance = distance
}

// GetCullBehind reports whether chunks behind the viewer are skipped when drawing.
func GetCullBehind() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.cullBehind
}

// SetCullBehind toggles look-direction culling.
func SetCullBehind(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.cullBehind = enabled
}

// GetFPSLimit returns the frame cap; 0 means unlimited.
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Negative values mean unlimited.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	globalRenderSettings.fpsLimit = limit
}
