package ui

import (
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/inspector"
)

const (
	paramsWidth    = 360
	sliderHeight   = 14
	rowHeight      = 20
	buttonHeight   = 24
	scrollPerNotch = 40

	pickerHeight = 96
	hueBarSpace  = 32 // raygui draws the hue bar right of the picker bounds
)

// colorField is one hex color of the config edited through a picker.
type colorField struct {
	name    string
	hex     func(c *config.Config) *string
	derived func(c *config.Config) colorful.Color
}

var colorFields = []colorField{
	{
		name:    "color",
		hex:     func(c *config.Config) *string { return &c.Colors.Color },
		derived: func(c *config.Config) colorful.Color { return c.Derived.Color },
	},
	{
		name:    "background",
		hex:     func(c *config.Config) *string { return &c.Colors.Background },
		derived: func(c *config.Config) colorful.Color { return c.Derived.Background },
	},
}

// ParamsPanel is the live parameter surface. One slider per knob is
// generated from the config struct tags; edits are published through the
// store so the next frame picks them up as a whole.
type ParamsPanel struct {
	store    *config.Store
	knobs    []inspector.Knob
	renderer *Renderer
	visible  bool
	scroll   float32
	bounds   rl.Rectangle

	// OnReseed is called when the reseed button is pressed.
	OnReseed func()
}

// NewParamsPanel creates a panel editing store.
func NewParamsPanel(store *config.Store, visible bool) *ParamsPanel {
	return &ParamsPanel{
		store:    store,
		knobs:    inspector.ExtractKnobs(store.Snapshot()),
		renderer: NewRenderer(),
		visible:  visible,
	}
}

// Toggle shows or hides the panel.
func (p *ParamsPanel) Toggle() {
	p.visible = !p.visible
}

// Visible reports whether the panel is shown.
func (p *ParamsPanel) Visible() bool {
	return p.visible
}

// Contains reports whether a screen point is over the visible panel.
func (p *ParamsPanel) Contains(pt rl.Vector2) bool {
	return p.visible && rl.CheckCollisionPointRec(pt, p.bounds)
}

// Draw renders the panel and applies any edits made this frame.
func (p *ParamsPanel) Draw(screenHeight int32) {
	if !p.visible {
		return
	}
	cfg := p.store.Snapshot()
	r := p.renderer
	r.Adapt(cfg.Derived.Background)
	pad := r.Theme.Padding

	p.bounds = rl.Rectangle{
		X:      float32(pad),
		Y:      float32(pad),
		Width:  paramsWidth,
		Height: float32(screenHeight - 2*pad),
	}
	r.DrawPanel(int32(p.bounds.X), int32(p.bounds.Y), int32(p.bounds.Width), int32(p.bounds.Height))

	x := p.bounds.X + float32(pad)
	y := p.bounds.Y + float32(pad)

	y = p.drawButtons(x, y, cfg)

	// Scrollable knob list below the buttons
	listTop := y
	listHeight := p.bounds.Y + p.bounds.Height - listTop - float32(pad)
	content := p.contentHeight()
	if rl.CheckCollisionPointRec(rl.GetMousePosition(), p.bounds) {
		p.scroll -= rl.GetMouseWheelMove() * scrollPerNotch
	}
	maxScroll := content - listHeight
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}
	if p.scroll < 0 {
		p.scroll = 0
	}

	rl.BeginScissorMode(int32(p.bounds.X), int32(listTop), int32(p.bounds.Width), int32(listHeight))
	y = listTop - p.scroll
	y = p.drawColors(x, y, cfg, listTop, listTop+listHeight)
	section := ""
	for _, k := range p.knobs {
		if k.Section != section {
			section = k.Section
			y = float32(r.DrawSectionHeader(int32(x), int32(y)+4, section))
		}
		p.drawKnob(k, x, y, cfg, listTop, listTop+listHeight)
		y += rowHeight
	}
	rl.EndScissorMode()
}

// drawButtons draws the action row and returns the y below it.
func (p *ParamsPanel) drawButtons(x, y float32, cfg *config.Config) float32 {
	const w = 80
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: buttonHeight}, "Mode: "+cfg.Mode) {
		p.store.Update(func(c *config.Config) {
			if c.Mode == config.ModeLines {
				c.Mode = config.ModeRods
			} else {
				c.Mode = config.ModeLines
			}
		})
	}
	if gui.Button(rl.Rectangle{X: x + w + 5, Y: y, Width: w, Height: buttonHeight}, "Reseed") && p.OnReseed != nil {
		p.OnReseed()
	}
	if gui.Button(rl.Rectangle{X: x + 2*(w+5), Y: y, Width: w, Height: buttonHeight}, "Defaults") {
		p.store.Replace(config.Defaults())
	}
	if gui.Button(rl.Rectangle{X: x + 3*(w+5), Y: y, Width: w, Height: buttonHeight}, "Copy YAML") {
		data, err := cfg.YAML()
		if err != nil {
			slog.Error("failed to encode config", "error", err)
		} else {
			rl.SetClipboardText(string(data))
			slog.Info("config copied to clipboard", "bytes", len(data))
		}
	}
	return y + buttonHeight + float32(p.renderer.Theme.Padding)
}

// drawKnob draws one labelled slider. Rows outside [top, bottom) are skipped
// so hidden sliders never receive input.
func (p *ParamsPanel) drawKnob(k inspector.Knob, x, y float32, cfg *config.Config, top, bottom float32) {
	if y+rowHeight <= top || y >= bottom {
		return
	}
	r := p.renderer
	labelW := float32(r.Theme.LabelWidth + 20)
	valueW := float32(60)

	value := k.Get(cfg)
	r.DrawLabel(int32(x), int32(y)+3, k.Name)

	sliderW := p.bounds.Width - 2*float32(r.Theme.Padding) - labelW - valueW
	next := gui.SliderBar(
		rl.Rectangle{X: x + labelW, Y: y + 2, Width: sliderW, Height: sliderHeight},
		"", "",
		float32(value), float32(k.Min), float32(k.Max),
	)
	rl.DrawText(k.FormatValue(value), int32(x+labelW+sliderW+6), int32(y)+3, r.Theme.FontSize, r.Theme.Text)

	if next != float32(value) {
		p.store.Update(func(c *config.Config) {
			k.Set(c, float64(next))
		})
	}
}

// drawColors draws one picker per color field side by side and returns the
// y below them. Pickers outside [top, bottom) are skipped like knob rows.
func (p *ParamsPanel) drawColors(x, y float32, cfg *config.Config, top, bottom float32) float32 {
	r := p.renderer
	y = float32(r.DrawSectionHeader(int32(x), int32(y)+4, "colors"))
	pickerTop := y + float32(r.Theme.LineHeight)
	end := pickerTop + pickerHeight + float32(r.Theme.LineHeight)
	if end <= top || y >= bottom {
		return end
	}

	column := (p.bounds.Width - 2*float32(r.Theme.Padding)) / float32(len(colorFields))
	for i, f := range colorFields {
		cx := x + float32(i)*column
		current := colorToRL(f.derived(cfg))
		r.DrawLabel(int32(cx), int32(y), f.name)
		picked := gui.ColorPicker(
			rl.Rectangle{X: cx, Y: pickerTop, Width: column - hueBarSpace - 8, Height: pickerHeight},
			"", current,
		)
		rl.DrawText(*f.hex(cfg), int32(cx), int32(pickerTop+pickerHeight+3), r.Theme.FontSize, r.Theme.Text)
		if picked != current {
			setColor(p.store, f, picked)
		}
	}
	return end
}

// setColor publishes c as the field's hex value. Store.Update re-derives the
// parsed colors in the same snapshot.
func setColor(store *config.Store, f colorField, c rl.Color) {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	store.Update(func(cfg *config.Config) {
		*f.hex(cfg) = hex
	})
}

func colorToRL(c colorful.Color) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: 255}
}

// contentHeight returns the scrollable height of the color pickers and the
// knob list.
func (p *ParamsPanel) contentHeight() float32 {
	lh := float32(p.renderer.Theme.LineHeight)
	h := lh + 2 + 4 + lh + pickerHeight + lh
	section := ""
	for _, k := range p.knobs {
		if k.Section != section {
			section = k.Section
			h += float32(p.renderer.Theme.LineHeight + 2 + 4)
		}
		h += rowHeight
	}
	return h
}
