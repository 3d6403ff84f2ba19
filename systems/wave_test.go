package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rodfield/config"
)

func TestWavePeakPosDefaults(t *testing.T) {
	cfg := config.Defaults()
	if got := WavePeakPos(0, &cfg.Wave); math.Abs(got-200) > 1e-12 {
		t.Errorf("expected peak at 200 for t=0, got %f", got)
	}
}

func TestWavePeakPosPeriodic(t *testing.T) {
	cfg := config.Defaults()
	period := 2 * math.Pi / cfg.Wave.Speed

	for _, ti := range []float64{0, 0.4, 1.7, 12.3, 250} {
		a := WavePeakPos(ti, &cfg.Wave)
		b := WavePeakPos(ti+period, &cfg.Wave)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("t=%f: peak %f differs from one period later %f", ti, a, b)
		}
		if a < 0 || a > cfg.Wave.MaxRange {
			t.Errorf("t=%f: peak %f outside [0, %f]", ti, a, cfg.Wave.MaxRange)
		}
	}
}

func TestWaveScenarioWithStubbedNoise(t *testing.T) {
	cfg := config.Defaults()
	f := NewWaveField(Constant(0))

	ws := f.Evaluate(Vec2{X: 200, Y: 0}, Vec2{}, 0, cfg)

	if ws.InnerRadius != 120 {
		t.Errorf("expected inner radius 120, got %f", ws.InnerRadius)
	}
	if math.Abs(ws.DistFromEdge-80) > 1e-12 {
		t.Errorf("expected effective distance 80, got %f", ws.DistFromEdge)
	}
	if math.Abs(ws.WavePeakPos-200) > 1e-12 {
		t.Errorf("expected peak 200, got %f", ws.WavePeakPos)
	}
	want := math.Exp(-(120.0 * 120.0) / (180.0 * 180.0))
	if math.Abs(ws.Wave-want) > 1e-12 {
		t.Errorf("expected wave %f, got %f", want, ws.Wave)
	}
	if math.Abs(ws.Wave-0.641) > 1e-3 {
		t.Errorf("expected wave ~0.641, got %f", ws.Wave)
	}
	// Transition band fully crossed at 80 past the edge
	if math.Abs(ws.Suppression-1) > 1e-12 {
		t.Errorf("expected no suppression, got %f", ws.Suppression)
	}
}

func TestWaveDeadZoneFloor(t *testing.T) {
	cfg := config.Defaults()
	f := NewWaveField(Simplex{})

	centers := []Vec2{{}, {X: 310, Y: -45}, {X: -1200, Y: 900}}
	for _, c := range centers {
		for _, ti := range []float64{0, 3.3, 77} {
			ws := f.Evaluate(c, c, ti, cfg)
			if ws.Suppression != cfg.DeadZone.MinVisibility {
				t.Errorf("center %v t=%f: expected suppression %f, got %f",
					c, ti, cfg.DeadZone.MinVisibility, ws.Suppression)
			}
			if ws.DistFromEdge != 0 {
				t.Errorf("expected zero effective distance inside dead zone, got %f", ws.DistFromEdge)
			}
		}
	}
}

func TestWaveFarEnvelopeIsZero(t *testing.T) {
	cfg := config.Defaults()
	f := NewWaveField(Simplex{})

	for _, ti := range []float64{0, 1, 2.5, 9} {
		ws := f.Evaluate(Vec2{X: 2000}, Vec2{}, ti, cfg)
		if ws.Envelope != 0 {
			t.Errorf("t=%f: expected zero envelope at distance 2000, got %f", ti, ws.Envelope)
		}
	}
}

func TestWaveOutputsBounded(t *testing.T) {
	cfg := config.Defaults()
	f := NewWaveField(Simplex{})
	center := Vec2{X: 37, Y: -12}

	for y := -900.0; y <= 900; y += 60 {
		for x := -900.0; x <= 900; x += 60 {
			ws := f.Evaluate(Vec2{X: x, Y: y}, center, 4.2, cfg)
			if ws.Wave < 0 || ws.Wave > 1 {
				t.Fatalf("wave %f out of range at (%f, %f)", ws.Wave, x, y)
			}
			if ws.Envelope < 0 || ws.Envelope > 1 {
				t.Fatalf("envelope %f out of range at (%f, %f)", ws.Envelope, x, y)
			}
			if ws.Suppression < cfg.DeadZone.MinVisibility || ws.Suppression > 1 {
				t.Fatalf("suppression %f out of range at (%f, %f)", ws.Suppression, x, y)
			}
		}
	}
}

func TestWaveDegenerateParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero width", func(c *config.Config) { c.Wave.BaseWidth = 0; c.Wave.WidthNoise = 0 }},
		{"negative width", func(c *config.Config) { c.Wave.BaseWidth = -50 }},
		{"zero transition", func(c *config.Config) { c.DeadZone.TransitionWidth = 0 }},
		{"negative transition", func(c *config.Config) { c.DeadZone.TransitionWidth = -80 }},
		{"negative envelope power", func(c *config.Config) { c.Envelope.Power = -2 }},
		{"zero speed", func(c *config.Config) { c.Wave.Speed = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.mutate(cfg)
			f := NewWaveField(Constant(0))

			for _, pos := range []Vec2{{}, {X: 120}, {X: 320}, {X: 2000}} {
				ws := f.Evaluate(pos, Vec2{}, 0, cfg)
				for _, v := range []float64{ws.Wave, ws.Envelope, ws.Suppression} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("non-finite output %+v at %v", ws, pos)
					}
				}
			}

			// The pointer sits inside the dead zone, so it stays at the floor.
			if ws := f.Evaluate(Vec2{}, Vec2{}, 0, cfg); math.Abs(ws.Suppression-cfg.DeadZone.MinVisibility) > 1e-12 {
				t.Errorf("suppression at the pointer = %v, want floor %v", ws.Suppression, cfg.DeadZone.MinVisibility)
			}
		})
	}
}
