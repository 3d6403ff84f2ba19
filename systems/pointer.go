package systems

import (
	"math"

	"github.com/pthm-cable/rodfield/config"
)

// Wander phase offsets. Fixed so the drift is a pure function of time.
const (
	wanderPhase1 = math.Pi / 3
	wanderPhase2 = math.Pi / 4
)

// PointerTracker smooths raw pointer input toward a target. The zero value
// starts at the origin.
type PointerTracker struct {
	raw      Vec2
	smoothed Vec2
}

// NewPointerTracker creates a tracker resting at p.
func NewPointerTracker(p Vec2) *PointerTracker {
	return &PointerTracker{raw: p, smoothed: p}
}

// SetRawTarget stores the latest pointer position, already in field
// coordinates. No clamping is applied.
func (t *PointerTracker) SetRawTarget(p Vec2) {
	t.raw = p
}

// Advance moves the smoothed position a fraction lerp of the remaining
// distance toward the raw target. lerp is clamped to [0, 1].
func (t *PointerTracker) Advance(lerp float64) {
	if math.IsNaN(lerp) {
		return
	}
	lerp = clamp01(lerp)
	t.smoothed = t.smoothed.Add(t.raw.Sub(t.smoothed).Scale(lerp))
}

// Raw returns the last raw target.
func (t *PointerTracker) Raw() Vec2 {
	return t.raw
}

// Smoothed returns the smoothed position.
func (t *PointerTracker) Smoothed() Vec2 {
	return t.smoothed
}

// EffectiveCenter is the smoothed position plus the autonomous wander.
func (t *PointerTracker) EffectiveCenter(time float64, dz *config.DeadZoneConfig) Vec2 {
	return t.smoothed.Add(WanderOffset(time, dz))
}

// WanderOffset is a slow Lissajous drift built from two phase-shifted
// sine/cosine pairs. Each axis is bounded by the wander amplitude.
func WanderOffset(time float64, dz *config.DeadZoneConfig) Vec2 {
	a := dz.WanderAmplitude * 0.5
	t1 := time * dz.WanderSpeed1
	t2 := time * dz.WanderSpeed2
	return Vec2{
		X: a * (math.Sin(t1) + math.Cos(t2+wanderPhase1)),
		Y: a * (math.Cos(t1+wanderPhase2) + math.Sin(t2)),
	}
}
