package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/rodfield/config"
)

// Particle is one lattice cell's rod. Rest never changes after generation.
type Particle struct {
	Rest Vec2
}

// MaxGridAxis bounds the cells along one axis. Spacings finer than
// size/MaxGridAxis are widened to it.
const MaxGridAxis = 1024

// EffectiveSpacing returns spacing widened so that size/spacing stays within
// MaxGridAxis.
func EffectiveSpacing(size, spacing float64) float64 {
	return math.Max(spacing, size/MaxGridAxis)
}

// GridCount returns the number of cells along one axis, at most MaxGridAxis.
func GridCount(size, spacing float64) int {
	if !(spacing > 0) || !(size > 0) || math.IsInf(size, 0) || math.IsInf(spacing, 0) {
		return 0
	}
	n := int(math.Floor(size / EffectiveSpacing(size, spacing)))
	return min(n, MaxGridAxis)
}

// JitterMax is the largest displacement of a particle from its cell centre.
func JitterMax(g *config.GridConfig) float64 {
	return 0.5 * EffectiveSpacing(g.Size, g.Spacing) * g.PositionRandomness
}

// GenerateGrid builds the jittered lattice, centred on the origin, row by row.
// The same seed always yields the same grid.
func GenerateGrid(g *config.GridConfig, seed int64) []Particle {
	n := GridCount(g.Size, g.Spacing)
	if n == 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	spacing := EffectiveSpacing(g.Size, g.Spacing)
	jitter := spacing * g.PositionRandomness
	origin := -float64(n-1) * spacing / 2

	particles := make([]Particle, 0, n*n)
	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			// Float64 is in [0, 1), so jitter stays strictly inside the cell
			jx := (rng.Float64() - 0.5) * jitter
			jy := (rng.Float64() - 0.5) * jitter
			particles = append(particles, Particle{Rest: Vec2{
				X: origin + float64(ix)*spacing + jx,
				Y: origin + float64(iy)*spacing + jy,
			}})
		}
	}
	return particles
}
