package game

import (
	"log/slog"

	"github.com/pthm-cable/rodfield/components"
	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/systems"
	"github.com/pthm-cable/rodfield/telemetry"
)

// sampleBuffers are reused across window flushes.
type sampleBuffers struct {
	intensities []float64
	energies    []float64
	zlifts      []float64
}

func (b *sampleBuffers) reset() {
	b.intensities = b.intensities[:0]
	b.energies = b.energies[:0]
	b.zlifts = b.zlifts[:0]
}

// flushTelemetry checks if the stats window should be flushed and writes it.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.time) {
		return
	}

	stats := g.collector.Flush(g.frame, g.time, g.sampleField())
	perfStats := g.perf.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	g.perf.Reset()
}

// sampleField gathers per-item values of the active mode.
func (g *Game) sampleField() telemetry.FieldSample {
	b := &g.sampleBuf
	b.reset()

	sample := telemetry.FieldSample{Mode: g.cfg.Mode}

	if g.cfg.Mode == config.ModeLines {
		for _, v := range g.lineVerts {
			a := systems.LineAppearance(v, g.cfg)
			b.intensities = append(b.intensities, a.Alpha)
			b.energies = append(b.energies, v.Energy)
			b.zlifts = append(b.zlifts, v.Z)
			if !a.Culled {
				sample.Visible++
			}
		}
		sample.Particles = len(g.lineVerts)
	} else {
		g.ForEachRod(func(_ systems.Vec2, rod *components.Rod) {
			b.intensities = append(b.intensities, rod.State.Intensity)
			b.energies = append(b.energies, rod.State.Wave*rod.State.Envelope)
			b.zlifts = append(b.zlifts, rod.State.ZLift)
			if rod.Visible() {
				sample.Visible++
			}
		})
		sample.Particles = g.particles
	}

	sample.Intensities = b.intensities
	sample.Energies = b.energies
	sample.ZLifts = b.zlifts
	return sample
}
