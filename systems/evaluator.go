package systems

import (
	"math"

	"github.com/pthm-cable/rodfield/config"
)

// ParticleState is the per-frame visual state of one rod. It is recomputed
// every frame and never fed back into the next one.
type ParticleState struct {
	Intensity   float64
	Suppression float64
	Wave        float64
	Envelope    float64
	Rotation    float64 // radians, counter-clockwise from +x
	Length      float64
	Thickness   float64
	Offset      Vec2 // planar push away from the pointer
	ZLift       float64
}

// Transform is a rod's placement: rotate by Rotation, scale to Scale, then
// translate to Position.
type Transform struct {
	Position Vec3
	Rotation float64
	Scale    Vec2 // length, thickness
}

// Transform places the rod for a particle resting at rest.
func (s ParticleState) Transform(rest Vec2) Transform {
	p := rest.Add(s.Offset)
	return Transform{
		Position: Vec3{X: p.X, Y: p.Y, Z: s.ZLift},
		Rotation: s.Rotation,
		Scale:    Vec2{X: s.Length, Y: s.Thickness},
	}
}

// Evaluator maps a rest position, pointer center, time and configuration to
// a ParticleState. It holds no per-frame state and is safe for concurrent use.
type Evaluator struct {
	noise Noise
	wave  *WaveField
}

// NewEvaluator creates an evaluator sampling noise.
func NewEvaluator(noise Noise) *Evaluator {
	return &Evaluator{
		noise: noise,
		wave:  NewWaveField(noise),
	}
}

// Noise returns the noise source shared by the evaluator's fields.
func (e *Evaluator) Noise() Noise {
	return e.noise
}

// Evaluate computes the state of the particle resting at rest.
func (e *Evaluator) Evaluate(rest, center Vec2, time float64, cfg *config.Config) ParticleState {
	ws := e.wave.Evaluate(rest, center, time, cfg)

	energy := ws.Wave * ws.Envelope
	baseVisibility := cfg.Visibility.Base * ws.Envelope
	intensity := math.Max(baseVisibility, cfg.Visibility.WaveMin+cfg.Visibility.WaveMax*energy) * ws.Suppression

	// Face the pointer, wobbled by noise. A particle exactly under the
	// pointer has no direction and keeps angle 0 before the wobble.
	toCenter := center.Sub(rest).Normalize()
	var baseAngle float64
	if toCenter != (Vec2{}) {
		baseAngle = math.Atan2(toCenter.Y, toCenter.X)
	}
	rp := rest.Scale(cfg.Rotation.NoiseScale).AddScalar(time * cfg.Rotation.NoiseSpeed)
	angle := baseAngle + e.noise.Sample(rp.X, rp.Y)*cfg.Rotation.MaxOffset

	push := rest.Sub(center).Normalize().Scale(energy * cfg.Displacement.PushStrength)

	return ParticleState{
		Intensity:   intensity,
		Suppression: ws.Suppression,
		Wave:        ws.Wave,
		Envelope:    ws.Envelope,
		Rotation:    angle,
		Length:      cfg.Rod.BaseLength + cfg.Rod.MaxLengthAdd*intensity,
		Thickness:   cfg.Rod.BaseThickness + cfg.Rod.MaxThicknessAdd*intensity,
		Offset:      push,
		ZLift:       ws.Wave * cfg.Displacement.ZLift * ws.Envelope,
	}
}

// IntensityBound is the largest intensity cfg can produce.
func IntensityBound(cfg *config.Config) float64 {
	return math.Max(cfg.Visibility.Base, cfg.Visibility.WaveMin+cfg.Visibility.WaveMax)
}
