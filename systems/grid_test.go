package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rodfield/config"
)

func TestGridCountScenario(t *testing.T) {
	g := config.GridConfig{Spacing: 40, Size: 3000, PositionRandomness: 0.6}
	particles := GenerateGrid(&g, 1)

	if len(particles) != 75*75 {
		t.Errorf("expected 5625 particles, got %d", len(particles))
	}
}

func TestGridCount(t *testing.T) {
	tests := []struct {
		size, spacing float64
		want          int
	}{
		{3000, 40, 75},
		{100, 30, 3},
		{100, 100, 1},
		{99, 100, 0},
		{100, 0, 0},
		{100, -5, 0},
		{0, 10, 0},
		{3000, 0.001, MaxGridAxis},
		{math.Inf(1), 10, 0},
		{math.NaN(), 10, 0},
	}

	for _, tt := range tests {
		if got := GridCount(tt.size, tt.spacing); got != tt.want {
			t.Errorf("GridCount(%v, %v) = %d, want %d", tt.size, tt.spacing, got, tt.want)
		}
	}
}

func TestGridBounds(t *testing.T) {
	g := config.Defaults().Grid
	g.PositionRandomness = 1
	particles := GenerateGrid(&g, 99)

	n := GridCount(g.Size, g.Spacing)
	if len(particles) != n*n {
		t.Fatalf("expected %d particles, got %d", n*n, len(particles))
	}

	jitter := JitterMax(&g)
	limit := g.Size/2 + jitter
	origin := -float64(n-1) * g.Spacing / 2
	for i, p := range particles {
		if math.Abs(p.Rest.X) > limit || math.Abs(p.Rest.Y) > limit {
			t.Fatalf("particle %d at %v outside +/-%f", i, p.Rest, limit)
		}
		// Stays inside its own cell
		cx := origin + float64(i%n)*g.Spacing
		cy := origin + float64(i/n)*g.Spacing
		if math.Abs(p.Rest.X-cx) > jitter || math.Abs(p.Rest.Y-cy) > jitter {
			t.Fatalf("particle %d at %v strays from cell centre (%f, %f)", i, p.Rest, cx, cy)
		}
	}
}

func TestGridUniquePositions(t *testing.T) {
	g := config.Defaults().Grid
	particles := GenerateGrid(&g, 3)

	seen := make(map[Vec2]bool, len(particles))
	for _, p := range particles {
		if seen[p.Rest] {
			t.Fatalf("duplicate rest position %v", p.Rest)
		}
		seen[p.Rest] = true
	}
}

func TestGridDeterministic(t *testing.T) {
	g := config.Defaults().Grid
	a := GenerateGrid(&g, 11)
	b := GenerateGrid(&g, 11)
	c := GenerateGrid(&g, 12)

	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs for equal seeds: %v vs %v", i, a[i], b[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Error("expected different seeds to jitter differently")
	}
}

func TestGridWithoutJitterIsCentred(t *testing.T) {
	g := config.GridConfig{Spacing: 10, Size: 40, PositionRandomness: 0}
	particles := GenerateGrid(&g, 1)

	if len(particles) != 16 {
		t.Fatalf("expected 16 particles, got %d", len(particles))
	}
	if particles[0].Rest != (Vec2{X: -15, Y: -15}) {
		t.Errorf("expected first particle at (-15, -15), got %v", particles[0].Rest)
	}
	if particles[15].Rest != (Vec2{X: 15, Y: 15}) {
		t.Errorf("expected last particle at (15, 15), got %v", particles[15].Rest)
	}
}

func TestGenerateGridTinySpacingIsBounded(t *testing.T) {
	g := config.GridConfig{Spacing: 0.001, Size: 3000, PositionRandomness: 0.6}
	particles := GenerateGrid(&g, 1)

	if len(particles) != MaxGridAxis*MaxGridAxis {
		t.Fatalf("expected %d particles, got %d", MaxGridAxis*MaxGridAxis, len(particles))
	}
	limit := g.Size/2 + JitterMax(&g)
	for i, p := range particles {
		if math.Abs(p.Rest.X) > limit || math.Abs(p.Rest.Y) > limit {
			t.Fatalf("particle %d at %v escapes the field", i, p.Rest)
		}
	}
}
