package systems

import "time"

// Clock supplies monotonically increasing time in seconds. Phases are derived
// from absolute time, so dropped frames never desync the animation.
type Clock interface {
	Now() float64
}

// WallClock measures real time since creation.
type WallClock struct {
	start time.Time
}

// NewWallClock creates a clock starting at zero now.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns seconds since the clock was created.
func (c *WallClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// FixedClock advances by a fixed step on every Advance call. Used for
// headless runs and tests.
type FixedClock struct {
	Step  float64
	ticks int64
}

// NewFixedClock creates a clock advancing step seconds per Advance.
func NewFixedClock(step float64) *FixedClock {
	return &FixedClock{Step: step}
}

// Advance moves the clock forward one step.
func (c *FixedClock) Advance() {
	c.ticks++
}

// Now returns ticks*step.
func (c *FixedClock) Now() float64 {
	return float64(c.ticks) * c.Step
}
