package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rodfield/config"
)

func TestPointerTrackerStartsAtOrigin(t *testing.T) {
	var pt PointerTracker
	if pt.Smoothed() != (Vec2{}) || pt.Raw() != (Vec2{}) {
		t.Errorf("expected origin, got raw=%v smoothed=%v", pt.Raw(), pt.Smoothed())
	}
	pt.Advance(0.1)
	if pt.Smoothed() != (Vec2{}) {
		t.Errorf("expected no movement without input, got %v", pt.Smoothed())
	}
}

func TestPointerTrackerConverges(t *testing.T) {
	pt := NewPointerTracker(Vec2{})
	target := Vec2{X: 100, Y: -50}
	pt.SetRawTarget(target)

	d0 := target.Len()
	prev := d0
	for i := 1; i <= 150; i++ {
		pt.Advance(0.1)
		d := pt.Smoothed().Sub(target).Len()
		if d > prev {
			t.Fatalf("tick %d: distance grew from %f to %f", i, prev, d)
		}
		want := d0 * math.Pow(0.9, float64(i))
		if math.Abs(d-want) > 1e-9*d0 {
			t.Fatalf("tick %d: expected distance %g, got %g", i, want, d)
		}
		prev = d
	}
	if prev >= 1e-3 {
		t.Errorf("expected distance < 1e-3 after 150 ticks, got %g", prev)
	}
}

func TestPointerTrackerSmallOffsetWithin50Ticks(t *testing.T) {
	pt := NewPointerTracker(Vec2{X: 0.1})
	pt.SetRawTarget(Vec2{})
	for i := 0; i < 50; i++ {
		pt.Advance(0.1)
	}
	if d := pt.Smoothed().Len(); d >= 1e-3 {
		t.Errorf("expected distance < 1e-3, got %g", d)
	}
}

func TestPointerTrackerLerpClamp(t *testing.T) {
	tests := []struct {
		name string
		lerp float64
		want Vec2
	}{
		{"zero holds", 0, Vec2{}},
		{"one snaps", 1, Vec2{X: 10, Y: 10}},
		{"above one snaps without overshoot", 2.5, Vec2{X: 10, Y: 10}},
		{"negative holds", -1, Vec2{}},
		{"NaN ignored", math.NaN(), Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := NewPointerTracker(Vec2{})
			pt.SetRawTarget(Vec2{X: 10, Y: 10})
			pt.Advance(tt.lerp)
			if pt.Smoothed() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, pt.Smoothed())
			}
		})
	}
}

func TestPointerTrackerTeleportIsBounded(t *testing.T) {
	pt := NewPointerTracker(Vec2{})
	pt.SetRawTarget(Vec2{X: 10000})
	pt.Advance(0.1)
	if got := pt.Smoothed().X; math.Abs(got-1000) > 1e-9 {
		t.Errorf("expected one tenth of the jump (1000), got %f", got)
	}
}

func TestWanderOffset(t *testing.T) {
	dz := config.Defaults().DeadZone

	for ti := 0.0; ti < 120; ti += 0.7 {
		w := WanderOffset(ti, &dz)
		if math.Abs(w.X) > dz.WanderAmplitude+1e-9 || math.Abs(w.Y) > dz.WanderAmplitude+1e-9 {
			t.Fatalf("t=%f: wander %v exceeds amplitude %f", ti, w, dz.WanderAmplitude)
		}
	}

	// Continuous in time
	a := WanderOffset(10, &dz)
	b := WanderOffset(10+1e-4, &dz)
	if a.Sub(b).Len() > 1e-2 {
		t.Errorf("wander jumped from %v to %v", a, b)
	}

	dz.WanderAmplitude = 0
	if w := WanderOffset(3, &dz); w != (Vec2{}) {
		t.Errorf("expected no wander at zero amplitude, got %v", w)
	}
}

func TestEffectiveCenter(t *testing.T) {
	dz := config.Defaults().DeadZone
	pt := NewPointerTracker(Vec2{X: 5, Y: 6})

	got := pt.EffectiveCenter(2.5, &dz)
	want := Vec2{X: 5, Y: 6}.Add(WanderOffset(2.5, &dz))
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}
