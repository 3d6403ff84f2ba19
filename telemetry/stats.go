package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated field statistics for a time window.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	Time             float64 `csv:"time"`
	Frames           int     `csv:"frames"`
	Mode             string  `csv:"mode"`

	// Field occupancy at window end
	Particles int `csv:"particles"`
	Visible   int `csv:"visible"`

	// Intensity distribution (sampled at window end)
	IntensityMean float64 `csv:"intensity_mean"`
	IntensityStd  float64 `csv:"intensity_std"`
	IntensityP50  float64 `csv:"intensity_p50"`
	IntensityP90  float64 `csv:"intensity_p90"`
	IntensityMax  float64 `csv:"intensity_max"`

	EnergyMean float64 `csv:"energy_mean"`
	ZLiftMax   float64 `csv:"zlift_max"`

	// Pointer
	CenterX       float64 `csv:"center_x"`
	CenterY       float64 `csv:"center_y"`
	PointerTravel float64 `csv:"pointer_travel"` // distance the effective center moved during the window
}

// Percentile returns the p-th quantile of a sorted slice using the empirical
// distribution. p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution summarises a sample.
type Distribution struct {
	Mean, Std     float64
	P50, P90, Max float64
}

// Summarize computes mean, standard deviation, median, p90 and max. The
// input is not modified.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}
	d.Max = floats.Max(values)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("time", s.Time),
		slog.Int("frames", s.Frames),
		slog.String("mode", s.Mode),
		slog.Int("particles", s.Particles),
		slog.Int("visible", s.Visible),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_std", s.IntensityStd),
		slog.Float64("intensity_p50", s.IntensityP50),
		slog.Float64("intensity_p90", s.IntensityP90),
		slog.Float64("intensity_max", s.IntensityMax),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("zlift_max", s.ZLiftMax),
		slog.Float64("center_x", s.CenterX),
		slog.Float64("center_y", s.CenterY),
		slog.Float64("pointer_travel", s.PointerTravel),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"time", s.Time,
		"frames", s.Frames,
		"mode", s.Mode,
		"particles", s.Particles,
		"visible", s.Visible,
		"intensity_mean", s.IntensityMean,
		"intensity_std", s.IntensityStd,
		"intensity_p90", s.IntensityP90,
		"intensity_max", s.IntensityMax,
		"energy_mean", s.EnergyMean,
		"zlift_max", s.ZLiftMax,
		"center_x", s.CenterX,
		"center_y", s.CenterY,
		"pointer_travel", s.PointerTravel,
	)
}
