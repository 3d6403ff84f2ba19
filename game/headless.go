package game

import (
	"log/slog"
	"math"
	"time"

	"github.com/pthm-cable/rodfield/systems"
)

// ScriptedPointer returns a pointer target sweeping a Lissajous path across
// the inner half of a field of the given size. Used when no input device
// drives the field.
func ScriptedPointer(t, size float64) systems.Vec2 {
	r := size / 4
	return systems.Vec2{
		X: r * math.Sin(t*0.23),
		Y: r * math.Sin(t*0.31+math.Pi/5),
	}
}

// RunHeadless ticks the field with a fixed clock and a scripted pointer until
// maxFrames frames have run (0 means forever) or stop is closed.
func (g *Game) RunHeadless(clock *systems.FixedClock, maxFrames int64, stop <-chan struct{}) {
	start := time.Now()
	for maxFrames == 0 || g.frame < maxFrames {
		select {
		case <-stop:
			slog.Info("headless run interrupted", "frame", g.frame)
			return
		default:
		}

		clock.Advance()
		now := clock.Now()
		g.SetPointerTarget(ScriptedPointer(now, g.cfg.Grid.Size))
		g.Tick(now)
	}

	elapsed := time.Since(start)
	slog.Info("headless run complete",
		"frames", g.frame,
		"field_time", g.time,
		"wall_ms", elapsed.Milliseconds(),
	)
}
