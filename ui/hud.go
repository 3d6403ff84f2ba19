package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Mode         string
	Particles    int
	Drawn        int
	Visible      int // from the last stats window
	IntensityP90 float64
	FPS          int32
	P99TickUS    int64
	Time         float64
	CenterX      float64
	CenterY      float64
	Tracking     bool
	ScreenWidth  int32
	ScreenHeight int32
	Background   colorful.Color
}

// HUD renders the status panel in the top-right corner.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    230,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	r.Adapt(data.Background)
	pad := r.Theme.Padding
	x := data.ScreenWidth - h.width - pad
	y := pad

	r.DrawPanel(x, y, h.width, 10*r.Theme.LineHeight+2*pad)
	x += pad
	y += pad

	y = r.DrawLabelValue(x, y, "mode", data.Mode)
	y = r.DrawLabelValue(x, y, "particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "drawn", fmt.Sprintf("%d", data.Drawn))
	y = r.DrawLabelValue(x, y, "visible (window)", fmt.Sprintf("%d", data.Visible))
	y = r.DrawLabelValue(x, y, "intensity p90", fmt.Sprintf("%.2f", data.IntensityP90))
	y = r.DrawLabelValue(x, y, "fps", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "tick p99", fmt.Sprintf("%dus", data.P99TickUS))
	y = r.DrawLabelValue(x, y, "time", fmt.Sprintf("%.1fs", data.Time))
	y = r.DrawLabelValue(x, y, "center", fmt.Sprintf("%.0f, %.0f", data.CenterX, data.CenterY))

	tracking := "tracking"
	if !data.Tracking {
		tracking = "paused"
	}
	r.DrawLabelValue(x, y, "pointer", tracking)
}

// DrawControls renders the control legend at the bottom of the screen.
// Call after Draw so the hint color matches the current background.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.Hint)
}
