package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/game"
	"github.com/pthm-cable/rodfield/systems"
)

func newTestPreview(t *testing.T, mode string) *preview {
	t.Helper()
	cfg := config.Defaults()
	cfg.Mode = mode
	g, err := game.NewGame(config.NewStore(cfg), game.Options{})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })

	p := &preview{g: g}
	p.setSize(80, 24, 1200)
	return p
}

func TestCellWorldRoundtrip(t *testing.T) {
	p := &preview{}
	p.setSize(80, 24, 1200)

	for _, c := range [][2]int{{0, 0}, {40, 12}, {79, 23}, {13, 7}} {
		fx, fy := p.toCell(p.toWorld(c[0], c[1]))
		if math.Abs(fx-float64(c[0])) > 1e-9 || math.Abs(fy-float64(c[1])) > 1e-9 {
			t.Errorf("cell %v -> (%v, %v)", c, fx, fy)
		}
	}

	// Screen center is the world origin, y up
	if w := p.toWorld(40, 0); w.Y <= 0 {
		t.Errorf("top row should map to positive y, got %+v", w)
	}
}

func TestRasterRodsCoversField(t *testing.T) {
	p := newTestPreview(t, config.ModeRods)
	p.g.SetPointerTarget(systems.Vec2{})
	p.g.Tick(2.0)

	p.rasterRods()

	covered := 0
	for _, c := range p.cover {
		if c < 0 || c > 1 {
			t.Fatalf("coverage %v outside [0, 1]", c)
		}
		if c > 0 {
			covered++
		}
	}
	if covered == 0 {
		t.Error("expected some cells covered by rods")
	}
	if covered == len(p.cover) {
		t.Error("expected some empty cells between rods")
	}
}

func TestRasterLines(t *testing.T) {
	p := newTestPreview(t, config.ModeLines)
	p.g.Tick(1.0)

	p.rasterLines(p.g.Config())

	covered := 0
	for _, c := range p.cover {
		if c > 0 {
			covered++
		}
	}
	if covered == 0 {
		t.Error("expected line vertices to cover some cells")
	}
}
