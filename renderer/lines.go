package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rodfield/camera"
	"github.com/pthm-cable/rodfield/game"
	"github.com/pthm-cable/rodfield/systems"
)

// LineRenderer draws the line-grid mode mesh with per-segment alpha.
type LineRenderer struct {
	screen []rl.Vector2
	onScr  []bool
	looks  []systems.Appearance
}

// NewLineRenderer creates a new line renderer.
func NewLineRenderer() *LineRenderer {
	return &LineRenderer{}
}

// Draw renders the mesh of g through cam.
func (r *LineRenderer) Draw(g *game.Game, cam *camera.Camera) {
	mesh, verts := g.Lines()
	if len(verts) != len(mesh.Vertices) {
		return
	}
	cfg := g.Config()

	n := len(verts)
	if cap(r.screen) < n {
		r.screen = make([]rl.Vector2, n)
		r.onScr = make([]bool, n)
		r.looks = make([]systems.Appearance, n)
	}
	r.screen, r.onScr, r.looks = r.screen[:n], r.onScr[:n], r.looks[:n]

	for i, p := range mesh.Vertices {
		sx, sy, ok := cam.WorldToScreen(float32(p.X), float32(p.Y), float32(verts[i].Z))
		r.screen[i] = rl.Vector2{X: sx, Y: sy}
		r.onScr[i] = ok
		r.looks[i] = systems.LineAppearance(verts[i], cfg)
	}

	for _, seg := range mesh.Segments {
		a, b := seg[0], seg[1]
		if !r.onScr[a] || !r.onScr[b] {
			continue
		}
		la, lb := r.looks[a], r.looks[b]
		if la.Culled && lb.Culled {
			continue
		}
		look := la
		if la.Culled || (!lb.Culled && lb.Alpha > la.Alpha) {
			look = lb
		}
		rl.DrawLineV(r.screen[a], r.screen[b], ToRL(look.Color, look.Alpha))
	}
}
