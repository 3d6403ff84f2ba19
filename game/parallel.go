package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rodfield/components"
	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/systems"
	"github.com/pthm-cable/rodfield/telemetry"
)

// parallelThreshold is the minimum item count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 512

// rodSnapshot captures read-only particle data for parallel processing.
// Built once per lattice; rest positions never change.
type rodSnapshot struct {
	Entity ecs.Entity
	Rest   systems.Vec2
}

type workKind uint8

const (
	workRods workKind = iota
	workLines
)

// workChunk represents a range of items for a worker to process.
type workChunk struct {
	kind       workKind
	start, end int
}

// frameInput is shared read-only by all workers during one compute phase.
type frameInput struct {
	center systems.Vec2
	time   float64
	cfg    *config.Config
}

// parallelState holds resources for parallel evaluation.
type parallelState struct {
	snapshots  []rodSnapshot
	intents    []components.Rod
	input      frameInput
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]rodSnapshot, 0, 4096),
		intents:    make([]components.Rod, 0, 4096),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// updateRods evaluates every rod: compute into intents in parallel, then
// write components back on the frame goroutine.
func (g *Game) updateRods() {
	g.perf.StartPhase(telemetry.PhaseEvaluate)

	n := len(g.parallel.snapshots)
	if n == 0 {
		return
	}

	if cap(g.parallel.intents) < n {
		g.parallel.intents = make([]components.Rod, n)
	}
	g.parallel.intents = g.parallel.intents[:n]

	g.parallel.input = frameInput{center: g.center, time: g.time, cfg: g.cfg}
	g.dispatch(workRods, n)

	g.perf.StartPhase(telemetry.PhaseApply)
	g.applyIntents()
}

// updateLines evaluates every line-mesh vertex in place.
func (g *Game) updateLines() {
	g.perf.StartPhase(telemetry.PhaseEvaluate)

	n := len(g.lines.Vertices)
	if n == 0 {
		return
	}
	g.parallel.input = frameInput{center: g.center, time: g.time, cfg: g.cfg}
	g.dispatch(workLines, n)
}

// dispatch runs computeChunk over [0, n), single-threaded for small counts.
func (g *Game) dispatch(kind workKind, n int) {
	if n < parallelThreshold {
		g.computeChunk(workChunk{kind: kind, start: 0, end: n})
		return
	}

	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		g.parallel.workChan <- workChunk{kind: kind, start: start, end: end}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk evaluates items [start, end). Safe to run concurrently on
// disjoint ranges: it reads frameInput and writes only its own indices.
func (g *Game) computeChunk(chunk workChunk) {
	in := &g.parallel.input
	switch chunk.kind {
	case workRods:
		for i := chunk.start; i < chunk.end; i++ {
			st := g.eval.Evaluate(g.parallel.snapshots[i].Rest, in.center, in.time, in.cfg)
			g.parallel.intents[i] = components.Rod{
				State:      st,
				Appearance: systems.AppearanceOf(st, in.cfg),
			}
		}
	case workLines:
		verts := g.lines.Vertices
		for i := chunk.start; i < chunk.end; i++ {
			g.lineVerts[i] = g.lineEval.Evaluate(verts[i], in.center, in.time, &in.cfg.Lines)
		}
	}
}

// applyIntents writes computed results back to ECS components.
func (g *Game) applyIntents() {
	for i, snap := range g.parallel.snapshots {
		rod := g.rodMap.Get(snap.Entity)
		if rod == nil {
			continue
		}
		*rod = g.parallel.intents[i]
	}
}
