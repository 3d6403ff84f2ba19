package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/rodfield/config"
)

// Noise is a deterministic, continuous 2-D scalar field in roughly [-1, 1].
// Implementations must be safe for concurrent use.
type Noise interface {
	Sample(x, y float64) float64
}

// NoiseFunc adapts a function into a Noise.
type NoiseFunc func(x, y float64) float64

// Sample calls f.
func (f NoiseFunc) Sample(x, y float64) float64 {
	return f(x, y)
}

// Constant is a flat field, used to pin noise contributions in tests.
type Constant float64

// Sample returns c everywhere.
func (c Constant) Sample(x, y float64) float64 {
	return float64(c)
}

// NewNoise builds the noise source selected by cfg. Unknown kinds fall back to
// Simplex.
func NewNoise(cfg config.NoiseConfig) Noise {
	switch cfg.Kind {
	case config.NoiseOpenSimplex:
		return NewOpenSimplex(cfg.Seed)
	default:
		return Simplex{}
	}
}

// Simplex lattice constants.
const (
	simplexC0 = 0.211324865405187  // (3 - sqrt(3)) / 6, unskew
	simplexC1 = 0.366025403784439  // (sqrt(3) - 1) / 2, skew
	simplexC2 = -0.577350269189626 // -1 + 2*C0
	simplexC3 = 0.024390243902439  // 1 / 41, gradient ring spacing
)

// Simplex is 2-D gradient noise on a skewed triangular lattice with a
// polynomial permutation hash, so it needs no table and no seed.
type Simplex struct{}

// Sample evaluates the noise at (x, y).
func (Simplex) Sample(x, y float64) float64 {
	// Skew to find the lattice cell
	s := (x + y) * simplexC1
	ix := math.Floor(x + s)
	iy := math.Floor(y + s)

	// First corner offset
	t := (ix + iy) * simplexC0
	x0 := x - ix + t
	y0 := y - iy + t

	// Lower or upper triangle
	var i1x, i1y float64
	if x0 > y0 {
		i1x = 1
	} else {
		i1y = 1
	}

	x1 := x0 + simplexC0 - i1x
	y1 := y0 + simplexC0 - i1y
	x2 := x0 + simplexC2
	y2 := y0 + simplexC2

	// Hash the three corners
	ix = mod289(ix)
	iy = mod289(iy)
	p0 := permute(permute(iy) + ix)
	p1 := permute(permute(iy+i1y) + ix + i1x)
	p2 := permute(permute(iy+1) + ix + 1)

	return 130 * (corner(p0, x0, y0) + corner(p1, x1, y1) + corner(p2, x2, y2))
}

// corner returns the falloff-weighted gradient contribution of one simplex
// corner with hash p at offset (x, y).
func corner(p, x, y float64) float64 {
	m := math.Max(0.5-(x*x+y*y), 0)
	m *= m
	m *= m

	// Gradients sit on a ring of 41 points mapped onto a rotated cross
	gx := 2*fract(p*simplexC3) - 1
	h := math.Abs(gx) - 0.5
	a0 := gx - math.Floor(gx+0.5)

	// Approximate gradient normalisation
	m *= 1.79284291400159 - 0.85373472095314*(a0*a0+h*h)

	return m * (a0*x + h*y)
}

func mod289(x float64) float64 {
	return x - math.Floor(x/289)*289
}

func permute(x float64) float64 {
	return mod289((x*34 + 1) * x)
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// OpenSimplex adapts github.com/ojrac/opensimplex-go to Noise. Unlike Simplex
// it is seeded, so different seeds give different fields.
type OpenSimplex struct {
	noise opensimplex.Noise
}

// NewOpenSimplex creates a seeded OpenSimplex noise source.
func NewOpenSimplex(seed int64) *OpenSimplex {
	return &OpenSimplex{noise: opensimplex.New(seed)}
}

// Sample evaluates the noise at (x, y).
func (o *OpenSimplex) Sample(x, y float64) float64 {
	return o.noise.Eval2(x, y)
}
