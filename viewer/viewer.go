// Package viewer is the raylib window shell around the field: it turns mouse
// and keyboard input into field inputs and draws the result.
package viewer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rodfield/camera"
	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/game"
	"github.com/pthm-cable/rodfield/renderer"
	"github.com/pthm-cable/rodfield/systems"
	"github.com/pthm-cable/rodfield/ui"
)

const controlsHelp = "Tab: panel | M: mode | R: reseed | H: hud | wheel: zoom | right drag: pan | Home: reset view"

// zoomStep is the zoom factor per wheel notch.
const zoomStep = 1.1

// Viewer owns the window-side state: camera, renderers and overlays.
type Viewer struct {
	game  *game.Game
	clock systems.Clock
	cam   *camera.Camera

	rods  *renderer.RodRenderer
	lines *renderer.LineRenderer
	panel *ui.ParamsPanel
	hud   *ui.HUD

	showHUD bool
}

// New creates a viewer for g. The raylib window must already be open.
func New(g *game.Game, clock systems.Clock, showPanel bool) *Viewer {
	cfg := g.Config()
	v := &Viewer{
		game:  g,
		clock: clock,
		cam: camera.New(
			float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()),
			float32(cfg.Camera.Distance), float32(cfg.Camera.FovY), float32(cfg.Camera.Near),
		),
		rods:    renderer.NewRodRenderer(),
		lines:   renderer.NewLineRenderer(),
		panel:   ui.NewParamsPanel(g.Store(), showPanel),
		hud:     ui.NewHUD(),
		showHUD: true,
	}
	v.panel.OnReseed = v.reseed
	return v
}

// Update handles input and advances the field one frame.
func (v *Viewer) Update() {
	v.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	v.handleInput()
	v.game.Tick(v.clock.Now())
}

// Draw renders the current frame.
func (v *Viewer) Draw() {
	cfg := v.game.Config()

	rl.BeginDrawing()
	renderer.ClearBackground(cfg.Derived.Background)

	if cfg.Mode == config.ModeLines {
		v.lines.Draw(v.game, v.cam)
	} else {
		v.rods.Draw(v.game, v.cam)
	}

	v.panel.Draw(int32(rl.GetScreenHeight()))
	if v.showHUD {
		v.drawHUD(cfg)
	}
	rl.EndDrawing()

	v.game.RecordFrame()
}

// Close releases GPU resources. Call before the window closes.
func (v *Viewer) Close() {
	v.rods.Unload()
}

func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeyTab) {
		v.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		v.showHUD = !v.showHUD
	}
	if rl.IsKeyPressed(rl.KeyM) {
		v.game.Store().Update(func(c *config.Config) {
			if c.Mode == config.ModeLines {
				c.Mode = config.ModeRods
			} else {
				c.Mode = config.ModeLines
			}
		})
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.reseed()
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.cam.Reset()
	}

	mouse := rl.GetMousePosition()
	overPanel := v.panel.Contains(mouse)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		v.cam.ZoomBy(float32(math.Pow(zoomStep, float64(wheel))))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		v.cam.Pan(-d.X, -d.Y)
	}

	// Tracking pauses while the panel is open.
	v.game.SetTrackingPaused(v.panel.Visible())
	if !overPanel {
		wx, wy := v.cam.ScreenToWorld(mouse.X, mouse.Y)
		v.game.SetPointerTarget(systems.Vec2{X: float64(wx), Y: float64(wy)})
	}
}

func (v *Viewer) reseed() {
	v.game.Reseed(rand.Int63())
}

func (v *Viewer) drawHUD(cfg *config.Config) {
	stats := v.game.LastStats()
	perf := v.game.PerfStats()
	center := v.game.Center()

	drawn := v.rods.Drawn()
	if cfg.Mode == config.ModeLines {
		drawn = 0
	}

	v.hud.Draw(ui.HUDData{
		Mode:         cfg.Mode,
		Particles:    v.game.ParticleCount(),
		Drawn:        drawn,
		Visible:      stats.Visible,
		IntensityP90: stats.IntensityP90,
		FPS:          rl.GetFPS(),
		P99TickUS:    perf.P99TickDuration.Microseconds(),
		Time:         v.game.Time(),
		CenterX:      center.X,
		CenterY:      center.Y,
		Tracking:     !v.game.TrackingPaused(),
		ScreenWidth:  int32(rl.GetScreenWidth()),
		ScreenHeight: int32(rl.GetScreenHeight()),
		Background:   cfg.Derived.Background,
	})
	v.hud.DrawControls(int32(rl.GetScreenHeight()), controlsHelp)
}
