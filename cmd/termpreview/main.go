// Terminal preview - renders the rod field in a terminal with tcell.
//
// Usage: go run ./cmd/termpreview [-config path] [-mode lines]
package main

import (
	"flag"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/rodfield/components"
	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/game"
	"github.com/pthm-cable/rodfield/systems"
)

// ramp maps coverage to glyph density.
var ramp = []rune(" .:-=+*#%@")

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

type preview struct {
	screen tcell.Screen
	g      *game.Game
	clock  systems.Clock

	width, height int
	cellW         float64 // world units per cell column

	cover  []float64
	colors []colorful.Color
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", "", "Visual mode: rods or lines (empty = use config)")
	span := flag.Float64("span", 1200, "World units shown across the terminal width")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	flag.Parse()

	// The terminal is the display, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			slog.Error("failed to open log", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}

	g, err := game.NewGame(config.NewStore(cfg), game.Options{})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	p := &preview{screen: screen, g: g, clock: systems.NewWallClock()}
	p.resize(*span)
	p.run()
	screen.Fini()
}

func (p *preview) resize(span float64) {
	w, h := p.screen.Size()
	p.setSize(w, h, span)
}

func (p *preview) setSize(width, height int, span float64) {
	p.width, p.height = max(width, 1), max(height, 0)
	p.cellW = span / float64(p.width)
	n := p.width * p.height
	p.cover = make([]float64, n)
	p.colors = make([]colorful.Color, n)
}

// toWorld maps a cell center to world coordinates (origin at screen center,
// y up).
func (p *preview) toWorld(cx, cy int) systems.Vec2 {
	return systems.Vec2{
		X: (float64(cx) + 0.5 - float64(p.width)/2) * p.cellW,
		Y: -(float64(cy) + 0.5 - float64(p.height)/2) * p.cellW * cellAspect,
	}
}

// toCell maps world coordinates to fractional cell coordinates.
func (p *preview) toCell(w systems.Vec2) (float64, float64) {
	return w.X/p.cellW + float64(p.width)/2 - 0.5,
		-w.Y/(p.cellW*cellAspect) + float64(p.height)/2 - 0.5
}

func (p *preview) run() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !p.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			p.g.Tick(p.clock.Now())
			p.draw()
		}
	}
}

func (p *preview) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'm':
			p.g.Store().Update(func(c *config.Config) {
				if c.Mode == config.ModeLines {
					c.Mode = config.ModeRods
				} else {
					c.Mode = config.ModeLines
				}
			})
		case 'r':
			p.g.Reseed(rand.Int63())
		case '+':
			p.resize(p.cellW * float64(p.width) / 1.25)
		case '-':
			p.resize(p.cellW * float64(p.width) * 1.25)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		p.g.SetPointerTarget(p.toWorld(x, y))
	case *tcell.EventResize:
		p.resize(p.cellW * float64(p.width))
		p.screen.Sync()
	}
	return true
}

func (p *preview) draw() {
	clear(p.cover)
	cfg := p.g.Config()

	if cfg.Mode == config.ModeLines {
		p.rasterLines(cfg)
	} else {
		p.rasterRods()
	}

	bg := cfg.Derived.Background
	r, gg, b := bg.RGB255()
	bgColor := tcell.NewRGBColor(int32(r), int32(gg), int32(b))

	for cy := 0; cy < p.height; cy++ {
		for cx := 0; cx < p.width; cx++ {
			i := cy*p.width + cx
			c := p.cover[i]
			if c <= 0 {
				p.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault.Background(bgColor))
				continue
			}
			glyph := ramp[int(math.Min(c, 1)*float64(len(ramp)-1)+0.5)]
			fr, fg, fb := bg.BlendRgb(p.colors[i], math.Min(1, 0.35+c)).Clamped().RGB255()
			style := tcell.StyleDefault.
				Background(bgColor).
				Foreground(tcell.NewRGBColor(int32(fr), int32(fg), int32(fb)))
			p.screen.SetContent(cx, cy, glyph, nil, style)
		}
	}
	p.screen.Show()
}

// plot keeps the strongest contribution per cell.
func (p *preview) plot(cx, cy int, v float64, color colorful.Color) {
	if cx < 0 || cy < 0 || cx >= p.width || cy >= p.height {
		return
	}
	i := cy*p.width + cx
	if v > p.cover[i] {
		p.cover[i] = v
		p.colors[i] = color
	}
}

// rasterRods evaluates each rod's SDF at the centers of the cells under its
// bounding box. Distances are measured in cell widths so the antialiasing band
// is one cell wide.
func (p *preview) rasterRods() {
	p.g.ForEachRod(func(rest systems.Vec2, rod *components.Rod) {
		if rod.Appearance.Culled {
			return
		}
		tr := rod.State.Transform(rest)
		center := systems.Vec2{X: tr.Position.X, Y: tr.Position.Y}
		fx, fy := p.toCell(center)
		reach := tr.Scale.X/2 + p.cellW
		rx := int(reach/p.cellW) + 1
		ry := int(reach/(p.cellW*cellAspect)) + 1

		for cy := int(fy) - ry; cy <= int(fy)+ry; cy++ {
			for cx := int(fx) - rx; cx <= int(fx)+rx; cx++ {
				local := systems.LocalPoint(p.toWorld(cx, cy), tr)
				d := systems.RodSDF(local, tr.Scale.X, tr.Scale.Y) / p.cellW
				if cov := systems.Coverage(d); cov > 0 {
					p.plot(cx, cy, cov*rod.Appearance.Alpha, rod.Appearance.Color)
				}
			}
		}
	})
}

func (p *preview) rasterLines(cfg *config.Config) {
	mesh, verts := p.g.Lines()
	if len(verts) != len(mesh.Vertices) {
		return
	}
	for i, v := range mesh.Vertices {
		a := systems.LineAppearance(verts[i], cfg)
		if a.Culled {
			continue
		}
		fx, fy := p.toCell(v)
		p.plot(int(math.Round(fx)), int(math.Round(fy)), a.Alpha, a.Color)
	}
}
