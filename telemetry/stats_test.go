package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.0},
		{"clamped high", []float64{1, 2, 3}, 1.5, 3.0},
		{"clamped low", []float64{1, 2, 3}, -1, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{0.5, 0.1, 0.9, 0.3, 0.7}
	d := Summarize(values)

	if math.Abs(d.Mean-0.5) > 1e-9 {
		t.Errorf("expected mean 0.5, got %v", d.Mean)
	}
	// Sample std of 0.1..0.9 step 0.2
	if math.Abs(d.Std-math.Sqrt(0.1)) > 1e-9 {
		t.Errorf("expected std %v, got %v", math.Sqrt(0.1), d.Std)
	}
	if d.P50 != 0.5 {
		t.Errorf("expected p50 0.5, got %v", d.P50)
	}
	if d.Max != 0.9 {
		t.Errorf("expected max 0.9, got %v", d.Max)
	}
	if values[0] != 0.5 || values[1] != 0.1 {
		t.Error("Summarize must not reorder its input")
	}
}

func TestSummarizeSmallInputs(t *testing.T) {
	if d := Summarize(nil); d != (Distribution{}) {
		t.Errorf("expected zero distribution for empty input, got %+v", d)
	}

	d := Summarize([]float64{0.4})
	if d.Mean != 0.4 || d.Std != 0 || d.Max != 0.4 || d.P90 != 0.4 {
		t.Errorf("unexpected single-value distribution %+v", d)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0)

	if c.ShouldFlush(0.5) {
		t.Error("should not flush before window elapses")
	}

	c.RecordFrame(0, 0)
	c.RecordFrame(3, 4)
	c.RecordFrame(3, 4)

	if !c.ShouldFlush(1.0) {
		t.Error("should flush once window elapses")
	}

	stats := c.Flush(60, 1.0, FieldSample{
		Mode:        "rods",
		Particles:   4,
		Visible:     2,
		Intensities: []float64{0, 0.2, 0.4, 0.6},
		Energies:    []float64{0, 0.5, 0.5, 1},
		ZLifts:      []float64{0, 10, 30, 20},
	})

	if stats.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", stats.Frames)
	}
	if math.Abs(stats.PointerTravel-5) > 1e-9 {
		t.Errorf("expected pointer travel 5, got %v", stats.PointerTravel)
	}
	if stats.CenterX != 3 || stats.CenterY != 4 {
		t.Errorf("expected center (3,4), got (%v,%v)", stats.CenterX, stats.CenterY)
	}
	if math.Abs(stats.IntensityMean-0.3) > 1e-9 {
		t.Errorf("expected intensity mean 0.3, got %v", stats.IntensityMean)
	}
	if stats.EnergyMean != 0.5 {
		t.Errorf("expected energy mean 0.5, got %v", stats.EnergyMean)
	}
	if stats.ZLiftMax != 30 {
		t.Errorf("expected zlift max 30, got %v", stats.ZLiftMax)
	}
	if stats.WindowEndFrame != 60 || stats.WindowStartFrame != 0 {
		t.Errorf("unexpected window frames %d..%d", stats.WindowStartFrame, stats.WindowEndFrame)
	}

	// Next window starts where this one ended
	if c.ShouldFlush(1.5) {
		t.Error("window should restart after flush")
	}
	next := c.Flush(90, 2.0, FieldSample{})
	if next.WindowStartFrame != 60 || next.Frames != 0 || next.PointerTravel != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
