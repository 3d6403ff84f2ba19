package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rodfield/components"
	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/systems"
)

// syncTopology rebuilds whatever the configuration change invalidated: the
// noise source, the particle lattice and the line mesh.
func (g *Game) syncTopology(cfg *config.Config) {
	key := topologyKey{
		grid:      cfg.Grid,
		seed:      g.seed,
		lineSize:  cfg.Grid.Size,
		spacing:   cfg.Lines.Spacing,
		lineRes:   cfg.Lines.Resolution,
		noiseKind: cfg.Noise.Kind,
		noiseSeed: cfg.Noise.Seed,
	}
	if g.world != nil && key == g.topology {
		return
	}
	old := g.topology
	first := g.world == nil
	g.topology = key

	if first || key.noiseKind != old.noiseKind || key.noiseSeed != old.noiseSeed {
		g.noise = systems.NewNoise(cfg.Noise)
		g.eval = systems.NewEvaluator(g.noise)
		g.lineEval = systems.NewLineEvaluator(g.noise)
	}
	if first || key.grid != old.grid || key.seed != old.seed {
		g.spawnGrid(cfg)
	}
	if first || key.lineSize != old.lineSize || key.spacing != old.spacing || key.lineRes != old.lineRes {
		g.lines = systems.GenerateLineGrid(key.lineSize, key.spacing, key.lineRes)
		g.lineVerts = make([]systems.LineVertex, len(g.lines.Vertices))
	}
}

// spawnGrid replaces the ECS world with one entity per lattice particle.
func (g *Game) spawnGrid(cfg *config.Config) {
	world := ecs.NewWorld()
	g.world = world
	g.rodMapper = ecs.NewMap2[components.Rest, components.Rod](world)
	g.rodFilter = ecs.NewFilter2[components.Rest, components.Rod](world)
	g.rodMap = ecs.NewMap1[components.Rod](world)

	particles := systems.GenerateGrid(&cfg.Grid, g.seed)
	g.parallel.snapshots = g.parallel.snapshots[:0]
	for _, p := range particles {
		rest := components.Rest{X: p.Rest.X, Y: p.Rest.Y}
		e := g.rodMapper.NewEntity(&rest, &components.Rod{Appearance: systems.Appearance{Culled: true}})
		g.parallel.snapshots = append(g.parallel.snapshots, rodSnapshot{
			Entity: e,
			Rest:   p.Rest,
		})
	}
	g.particles = len(particles)
}
