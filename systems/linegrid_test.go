package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rodfield/config"
)

func TestGenerateLineGrid(t *testing.T) {
	g := GenerateLineGrid(100, 50, 10)

	// 3 lines per direction, 11 samples per line
	if len(g.Vertices) != 66 {
		t.Errorf("expected 66 vertices, got %d", len(g.Vertices))
	}
	if len(g.Segments) != 60 {
		t.Errorf("expected 60 segments, got %d", len(g.Segments))
	}

	for i, s := range g.Segments {
		a, b := g.Vertices[s[0]], g.Vertices[s[1]]
		l := b.Sub(a).Len()
		if l <= 0 || l > 10+1e-9 {
			t.Errorf("segment %d has length %f", i, l)
		}
	}
	for i, v := range g.Vertices {
		if math.Abs(v.X) > 50 || math.Abs(v.Y) > 50 {
			t.Errorf("vertex %d at %v outside the grid", i, v)
		}
	}
}

func TestGenerateLineGridUnevenResolution(t *testing.T) {
	g := GenerateLineGrid(100, 100, 30)
	// Samples at -50, -20, 10, 40, then clamped to 50
	if len(g.Vertices) != 2*2*5 {
		t.Fatalf("expected 20 vertices, got %d", len(g.Vertices))
	}
	if last := g.Vertices[4]; last != (Vec2{X: 50, Y: -50}) {
		t.Errorf("expected line to end at the grid edge, got %v", last)
	}
}

func TestGenerateLineGridDegenerate(t *testing.T) {
	if g := GenerateLineGrid(100, 0, 10); len(g.Vertices) != 0 {
		t.Errorf("expected empty grid for zero spacing, got %d vertices", len(g.Vertices))
	}
	if g := GenerateLineGrid(100, 10, -1); len(g.Segments) != 0 {
		t.Errorf("expected empty grid for negative resolution, got %d segments", len(g.Segments))
	}
}

func TestGenerateLineGridTinyStepsAreBounded(t *testing.T) {
	g := GenerateLineGrid(3000, 0.001, 0.001)

	lines := MaxGridAxis + 1
	if want := 2 * lines * (MaxGridAxis + 1); len(g.Vertices) != want {
		t.Errorf("expected %d vertices, got %d", want, len(g.Vertices))
	}
	if want := 2 * lines * MaxGridAxis; len(g.Segments) != want {
		t.Errorf("expected %d segments, got %d", want, len(g.Segments))
	}
}

func TestLineEvaluate(t *testing.T) {
	l := config.Defaults().Lines
	e := NewLineEvaluator(Constant(0))

	at := e.Evaluate(Vec2{}, Vec2{}, 0, &l)
	if at.Wave != 0 || at.Z != 0 {
		t.Errorf("expected flat vertex under the pointer, got %+v", at)
	}
	if math.Abs(at.Energy-0.8) > 1e-12 {
		t.Errorf("expected energy 0.8, got %f", at.Energy)
	}

	// First crest of the sine
	d := (math.Pi / 2) / l.Frequency
	crest := e.Evaluate(Vec2{X: d}, Vec2{}, 0, &l)
	energy := (1 - d*l.DecayRate) * 0.8
	if math.Abs(crest.Wave-1) > 1e-12 {
		t.Errorf("expected wave 1 at the crest, got %f", crest.Wave)
	}
	if math.Abs(crest.Z-l.ZAmplitude*energy) > 1e-9 {
		t.Errorf("expected lift %f, got %f", l.ZAmplitude*energy, crest.Z)
	}

	far := e.Evaluate(Vec2{X: 5000}, Vec2{}, 3, &l)
	if far.Energy != 0 || far.Z != 0 {
		t.Errorf("expected calm far vertex, got %+v", far)
	}
}

func TestLineAppearance(t *testing.T) {
	cfg := config.Defaults()

	trough := LineAppearance(LineVertex{Wave: -1, Energy: 1}, cfg)
	if math.Abs(trough.Alpha-cfg.Lines.BaseAlpha) > 1e-12 {
		t.Errorf("expected base alpha at trough, got %f", trough.Alpha)
	}
	if !trough.Color.AlmostEqualRgb(cfg.Derived.Color) {
		t.Errorf("expected base color at trough, got %v", trough.Color)
	}

	crest := LineAppearance(LineVertex{Wave: 1, Energy: 1}, cfg)
	if math.Abs(crest.Alpha-1) > 1e-12 {
		t.Errorf("expected full alpha at an energetic crest, got %f", crest.Alpha)
	}
	if crest.Color.R <= cfg.Derived.Color.R {
		t.Errorf("expected crest to be whitened, got %v", crest.Color)
	}
}
