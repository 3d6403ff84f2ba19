package telemetry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldSample is a snapshot of per-particle values taken at window end.
// Slices are borrowed for the duration of Flush only.
type FieldSample struct {
	Mode        string
	Particles   int
	Visible     int
	Intensities []float64
	Energies    []float64
	ZLifts      []float64
}

// Collector accumulates per-frame pointer movement within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int64
	windowStartTime  float64
	frames           int

	// Pointer tracking
	centerX, centerY float64
	haveCenter       bool
	travel           float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in field-time seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records one evaluated frame with its effective pointer center.
func (c *Collector) RecordFrame(centerX, centerY float64) {
	if c.haveCenter {
		c.travel += math.Hypot(centerX-c.centerX, centerY-c.centerY)
	}
	c.centerX, c.centerY = centerX, centerY
	c.haveCenter = true
	c.frames++
}

// ShouldFlush returns true if the window has covered its duration.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(frame int64, now float64, sample FieldSample) WindowStats {
	intensity := Summarize(sample.Intensities)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		Time:             now,
		Frames:           c.frames,
		Mode:             sample.Mode,

		Particles: sample.Particles,
		Visible:   sample.Visible,

		IntensityMean: intensity.Mean,
		IntensityStd:  intensity.Std,
		IntensityP50:  intensity.P50,
		IntensityP90:  intensity.P90,
		IntensityMax:  intensity.Max,

		CenterX:       c.centerX,
		CenterY:       c.centerY,
		PointerTravel: c.travel,
	}
	if len(sample.Energies) > 0 {
		stats.EnergyMean = stat.Mean(sample.Energies, nil)
	}
	if len(sample.ZLifts) > 0 {
		stats.ZLiftMax = floats.Max(sample.ZLifts)
	}

	// Reset for next window
	c.windowStartFrame = frame
	c.windowStartTime = now
	c.frames = 0
	c.travel = 0

	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
