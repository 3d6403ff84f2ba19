package systems

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/rodfield/config"
)

// Rod drawing constants.
const (
	// CullAlpha is the alpha below which a rod is not drawn at all.
	CullAlpha = 0.01
	// EdgeAA is the half-width of the antialiasing band around the rod edge,
	// in local units.
	EdgeAA = 0.5
)

// RoundedRectSDF is the signed distance from p to a rectangle centred on the
// origin with the given half extents and corner radius. Negative inside.
func RoundedRectSDF(p, halfSize Vec2, radius float64) float64 {
	radius = clamp(radius, 0, math.Min(halfSize.X, halfSize.Y))
	qx := math.Abs(p.X) - halfSize.X + radius
	qy := math.Abs(p.Y) - halfSize.Y + radius
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - radius
}

// RodSDF is the signed distance from p, in the rod's local frame, to a rod of
// the given length and thickness with fully rounded ends.
func RodSDF(p Vec2, length, thickness float64) float64 {
	half := Vec2{X: math.Max(length, 0) / 2, Y: math.Max(thickness, 0) / 2}
	return RoundedRectSDF(p, half, half.Y)
}

// Coverage converts a signed distance into fragment coverage with a fixed
// smoothstep band around the edge.
func Coverage(d float64) float64 {
	return 1 - smoothstep(-EdgeAA, EdgeAA, d)
}

// LocalPoint maps world point p into the local frame of a rod placed by tr.
func LocalPoint(p Vec2, tr Transform) Vec2 {
	return p.Sub(Vec2{X: tr.Position.X, Y: tr.Position.Y}).Rotate(-tr.Rotation)
}

// Appearance is what a render sink needs besides the transform.
type Appearance struct {
	Alpha  float64
	Color  colorful.Color
	Culled bool
}

// AppearanceOf derives alpha and highlight color from a particle state.
func AppearanceOf(s ParticleState, cfg *config.Config) Appearance {
	alpha := clamp01(s.Intensity)
	if alpha < CullAlpha || math.IsNaN(s.Intensity) {
		return Appearance{Culled: true}
	}
	return Appearance{
		Alpha: alpha,
		Color: Highlight(cfg.Derived.Color, s.Intensity, &cfg.Highlight),
	}
}

// Highlight brightens base linearly once intensity passes the threshold.
func Highlight(base colorful.Color, intensity float64, h *config.HighlightConfig) colorful.Color {
	boost := math.Max(0, intensity-h.Threshold) * h.Boost
	return colorful.Color{R: base.R + boost, G: base.G + boost, B: base.B + boost}.Clamped()
}
