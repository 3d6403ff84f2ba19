package systems

import (
	"math"

	"github.com/pthm-cable/rodfield/config"
)

// minWaveWidth keeps the Gaussian denominator away from zero.
const minWaveWidth = 1e-3

// WaveSample is the wave field evaluated at one position.
type WaveSample struct {
	Wave         float64 // Gaussian pulse, (0, 1]
	Envelope     float64 // distance decay, [0, 1]
	DistFromEdge float64 // distance past the dead-zone boundary, >= 0
	Suppression  float64 // dead-zone visibility multiplier, [minVisibility, 1]
	InnerRadius  float64 // noise-perturbed dead-zone radius
	BaseNoise    float64
	WavePeakPos  float64
}

// WaveField evaluates the breathing radial pulse around the pointer.
type WaveField struct {
	noise Noise
}

// NewWaveField creates a wave field sampling noise.
func NewWaveField(noise Noise) *WaveField {
	return &WaveField{noise: noise}
}

// WavePeakPos is the radius the pulse is centred on at time. It oscillates in
// [0, maxRange] with period 2*pi/speed.
func WavePeakPos(time float64, w *config.WaveConfig) float64 {
	return w.MaxRange / 2 * (1 + math.Sin(time*w.Speed))
}

// Evaluate samples the wave at pos for a pulse centred on center.
func (f *WaveField) Evaluate(pos, center Vec2, time float64, cfg *config.Config) WaveSample {
	dz := &cfg.DeadZone
	w := &cfg.Wave

	baseNoise := f.sample(pos.Scale(cfg.BaseNoise.Scale).AddScalar(time * cfg.BaseNoise.Speed))

	dist := pos.Sub(center).Len()

	// Organic dead-zone boundary
	inner := dz.BaseRadius + baseNoise*dz.NoiseAmplitude
	edgeDist := dist - inner
	eff := math.Max(0, edgeDist)

	// A negative width would invert the ramp; zero degrades to a step.
	transition := math.Max(0, dz.TransitionWidth)
	suppression := dz.MinVisibility + (1-dz.MinVisibility)*smoothstep(0, transition, edgeDist)

	peak := WavePeakPos(time, w)

	// Two warp octaves make the ring irregular
	warp := f.sample(pos.Scale(w.WarpScale1).AddScalar(time*w.WarpSpeed1)) +
		0.5*f.sample(pos.Scale(w.WarpScale2).AddScalar(-time*w.WarpSpeed2))
	warped := eff + warp*w.WarpStrength

	width := w.BaseWidth + baseNoise*w.WidthNoise
	if math.Abs(width) < minWaveWidth {
		width = minWaveWidth
	}
	d := warped - peak
	wave := math.Exp(-(d * d) / (width * width))

	power := math.Max(0, cfg.Envelope.Power)
	envelope := math.Pow(math.Max(0, 1-eff*cfg.Envelope.DecayRate), power)

	return WaveSample{
		Wave:         wave,
		Envelope:     envelope,
		DistFromEdge: eff,
		Suppression:  suppression,
		InnerRadius:  inner,
		BaseNoise:    baseNoise,
		WavePeakPos:  peak,
	}
}

func (f *WaveField) sample(p Vec2) float64 {
	return f.noise.Sample(p.X, p.Y)
}
