package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Renderer draws panel primitives in the current theme.
type Renderer struct {
	Theme Theme
	bg    colorful.Color
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme(), bg: colorful.Color{R: -1}}
}

// Adapt retunes the theme for a field background. It is a no-op while the
// background is unchanged.
func (r *Renderer) Adapt(bg colorful.Color) {
	if bg == r.bg {
		return
	}
	r.bg = bg
	r.Theme = ThemeFor(bg)
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a config section name and returns the next Y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.Accent)
	return y + r.Theme.LineHeight + 2
}

// DrawLabel draws a dimmed text label.
func (r *Renderer) DrawLabel(x, y int32, text string) {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.TextDim)
}

// DrawLabelValue draws "label: value" on one line and returns the next Y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.TextDim)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Text)
	return y + r.Theme.LineHeight
}
