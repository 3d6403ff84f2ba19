package systems

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/rodfield/config"
)

// LineGrid is a set of polylines sampled at fixed resolution. Shared vertices
// are stored once; Segments index into Vertices.
type LineGrid struct {
	Vertices []Vec2
	Segments [][2]int32
}

// GenerateLineGrid builds horizontal then vertical grid lines spanning
// [-size/2, size/2], each sampled every resolution units. Spacing and
// resolution are widened so neither count exceeds MaxGridAxis.
func GenerateLineGrid(size, spacing, resolution float64) LineGrid {
	if !(size > 0) || !(spacing > 0) || !(resolution > 0) || math.IsInf(size, 0) {
		return LineGrid{}
	}
	spacing = EffectiveSpacing(size, spacing)
	resolution = EffectiveSpacing(size, resolution)
	half := size / 2
	lines := int(math.Floor(size/spacing)) + 1
	steps := int(math.Ceil(size / resolution))

	g := LineGrid{
		Vertices: make([]Vec2, 0, 2*lines*(steps+1)),
		Segments: make([][2]int32, 0, 2*lines*steps),
	}
	for _, horizontal := range []bool{true, false} {
		for i := 0; i < lines; i++ {
			c := -half + float64(i)*spacing
			first := int32(len(g.Vertices))
			for j := 0; j <= steps; j++ {
				a := math.Min(-half+float64(j)*resolution, half)
				if horizontal {
					g.Vertices = append(g.Vertices, Vec2{a, c})
				} else {
					g.Vertices = append(g.Vertices, Vec2{c, a})
				}
				if j > 0 {
					v := first + int32(j)
					g.Segments = append(g.Segments, [2]int32{v - 1, v})
				}
			}
		}
	}
	return g
}

// LineVertex is the state of one line-grid vertex.
type LineVertex struct {
	Z      float64
	Energy float64
	Wave   float64 // roughly [-1.3, 1.3]
}

// LineEvaluator drives the line-grid mode: a sine wave over a domain-warped
// distance field, lifting the grid out of its plane near the pointer.
type LineEvaluator struct {
	noise Noise
}

// NewLineEvaluator creates a line evaluator sampling noise.
func NewLineEvaluator(noise Noise) *LineEvaluator {
	return &LineEvaluator{noise: noise}
}

// Evaluate computes the vertex state at pos.
func (e *LineEvaluator) Evaluate(pos, center Vec2, time float64, l *config.LinesConfig) LineVertex {
	np := pos.Scale(l.NoiseScale).AddScalar(time * l.NoiseSpeed)
	n := e.noise.Sample(np.X, np.Y)

	// Warp the position before measuring, so the rings are not circles
	warped := pos.AddScalar(n * l.Warp)
	dist := warped.Sub(center).Len()

	wave := math.Sin(dist*l.Frequency - time*l.Speed + n*l.PhaseNoise)
	fp := pos.Scale(l.FineScale).AddScalar(-time * l.FineSpeed)
	wave += e.noise.Sample(fp.X, fp.Y) * l.FineMix

	// Energy uses the true distance so the pointer stays the strongest point
	trueDist := pos.Sub(center).Len()
	energy := math.Max(0, 1-trueDist*l.DecayRate) * (0.8 + 0.4*n)

	return LineVertex{
		Z:      wave * l.ZAmplitude * energy,
		Energy: energy,
		Wave:   wave,
	}
}

// LineAppearance derives alpha and color for a vertex.
func LineAppearance(v LineVertex, cfg *config.Config) Appearance {
	l := &cfg.Lines
	norm := clamp01((v.Wave + 1) * 0.5)
	contrast := math.Pow(norm, math.Max(0, l.ContrastPower))
	highlight := v.Energy * contrast

	alpha := clamp01(l.BaseAlpha + (1-l.BaseAlpha)*highlight)
	if alpha < CullAlpha {
		return Appearance{Culled: true}
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return Appearance{
		Alpha: alpha,
		Color: cfg.Derived.Color.BlendRgb(white, clamp01(highlight*l.WhiteMix)).Clamped(),
	}
}
