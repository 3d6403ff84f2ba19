// Package game drives the rod field frame by frame. It owns the ECS world,
// the pointer tracker and the evaluation worker pool. It has no rendering
// dependencies; hosts read state back through the accessors.
package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rodfield/components"
	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/systems"
	"github.com/pthm-cable/rodfield/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed      int64  // grid seed override; 0 keeps grid.seed
	LogStats  bool   // log window stats via slog
	OutputDir string // CSV output directory; empty disables
}

// topologyKey captures everything that forces the particle set or the line
// mesh to be rebuilt.
type topologyKey struct {
	grid      config.GridConfig
	seed      int64
	lineSize  float64
	spacing   float64
	lineRes   float64
	noiseKind string
	noiseSeed int64
}

// Game holds the complete field state.
type Game struct {
	store *config.Store
	cfg   *config.Config // snapshot used by the current frame

	noise    systems.Noise
	eval     *systems.Evaluator
	lineEval *systems.LineEvaluator
	tracker  *systems.PointerTracker

	trackingPaused bool

	world     *ecs.World
	rodMapper *ecs.Map2[components.Rest, components.Rod]
	rodFilter *ecs.Filter2[components.Rest, components.Rod]
	rodMap    *ecs.Map1[components.Rod]
	particles int

	lines     systems.LineGrid
	lineVerts []systems.LineVertex

	topology topologyKey
	seed     int64

	parallel *parallelState

	time   float64
	frame  int64
	center systems.Vec2

	// Telemetry
	perf          *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputManager *telemetry.OutputManager
	logStats      bool
	lastStats     telemetry.WindowStats
	statsCallback func(telemetry.WindowStats)
	sampleBuf     sampleBuffers
}

// NewGame creates a field reading parameters from store.
func NewGame(store *config.Store, opts Options) (*Game, error) {
	cfg := store.Snapshot()

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Grid.Seed
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g := &Game{
		store:         store,
		cfg:           cfg,
		tracker:       systems.NewPointerTracker(systems.Vec2{}),
		seed:          seed,
		parallel:      newParallelState(),
		perf:          telemetry.NewPerfCollector(),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		outputManager: om,
		logStats:      opts.LogStats,
	}
	g.syncTopology(cfg)

	slog.Info("field ready",
		"mode", cfg.Mode,
		"particles", g.particles,
		"line_vertices", len(g.lines.Vertices),
		"noise", cfg.Noise.Kind,
		"seed", g.seed,
		"workers", g.parallel.numWorkers,
	)
	return g, nil
}

// Tick advances the field to absolute time now (seconds). It reads exactly
// one configuration snapshot, advances pointer smoothing once and evaluates
// every particle of the active mode.
func (g *Game) Tick(now float64) {
	g.perf.StartTick()
	g.perf.StartPhase(telemetry.PhaseInput)

	cfg := g.store.Snapshot()
	g.cfg = cfg
	g.time = now
	g.syncTopology(cfg)

	if !g.trackingPaused {
		g.tracker.Advance(cfg.Mouse.LerpSpeed)
	}
	g.center = g.tracker.EffectiveCenter(now, &cfg.DeadZone)

	if cfg.Mode == config.ModeLines {
		g.updateLines()
	} else {
		g.updateRods()
	}
	g.frame++

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(g.center.X, g.center.Y)
	g.flushTelemetry()
	g.perf.EndTick()
}

// SetPointerTarget sets the raw pointer target in world coordinates.
func (g *Game) SetPointerTarget(p systems.Vec2) {
	g.tracker.SetRawTarget(p)
}

// SetTrackingPaused freezes pointer smoothing, e.g. while the parameter
// panel has focus.
func (g *Game) SetTrackingPaused(paused bool) {
	g.trackingPaused = paused
}

// TrackingPaused reports whether pointer smoothing is frozen.
func (g *Game) TrackingPaused() bool {
	return g.trackingPaused
}

// Reseed regenerates the lattice with a new jitter seed.
func (g *Game) Reseed(seed int64) {
	g.seed = seed
	g.syncTopology(g.cfg)
	slog.Info("grid reseeded", "seed", seed, "particles", g.particles)
}

// Seed returns the current lattice seed.
func (g *Game) Seed() int64 { return g.seed }

// Config returns the snapshot used by the most recent frame.
func (g *Game) Config() *config.Config { return g.cfg }

// Store returns the live configuration store.
func (g *Game) Store() *config.Store { return g.store }

// Tracker returns the pointer tracker.
func (g *Game) Tracker() *systems.PointerTracker { return g.tracker }

// Center returns the effective pointer center of the most recent frame.
func (g *Game) Center() systems.Vec2 { return g.center }

// Time returns the absolute time of the most recent frame.
func (g *Game) Time() float64 { return g.time }

// Frame returns the number of frames evaluated so far.
func (g *Game) Frame() int64 { return g.frame }

// ParticleCount returns the number of rod entities.
func (g *Game) ParticleCount() int { return g.particles }

// Noise returns the active noise source.
func (g *Game) Noise() systems.Noise { return g.noise }

// ForEachRod calls fn with every particle's rest position and evaluated rod.
// The rod must not be retained past the call.
func (g *Game) ForEachRod(fn func(rest systems.Vec2, rod *components.Rod)) {
	query := g.rodFilter.Query()
	for query.Next() {
		rest, rod := query.Get()
		fn(rest.Vec(), rod)
	}
}

// Lines returns the line mesh and its per-vertex state from the most recent
// lines-mode frame. Both slices are owned by the game.
func (g *Game) Lines() (systems.LineGrid, []systems.LineVertex) {
	return g.lines, g.lineVerts
}

// PerfStats returns frame timing for the current telemetry window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perf.Stats() }

// LastStats returns the most recently flushed window stats.
func (g *Game) LastStats() telemetry.WindowStats { return g.lastStats }

// RecordFrame records presentation timing in graphics mode.
func (g *Game) RecordFrame() { g.perf.RecordFrame() }

// SetStatsCallback registers fn to receive every flushed window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Close stops the worker pool and closes telemetry output.
func (g *Game) Close() error {
	g.parallel.stopWorkers()
	return g.outputManager.Close()
}
