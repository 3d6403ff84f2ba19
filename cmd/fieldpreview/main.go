// Field preview tool - paints one channel of the wave evaluation as a heat
// map around a fixed pointer, with sliders for the main shaping knobs.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/rodfield/config"
	"github.com/pthm-cable/rodfield/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 192
)

// Channel selects which evaluation output is painted.
type Channel int

const (
	ChannelIntensity Channel = iota
	ChannelWave
	ChannelEnvelope
	ChannelSuppression
	ChannelBaseNoise
	channelCount
)

var channelNames = [...]string{"intensity", "wave", "envelope", "suppression", "base noise"}

func (c Channel) String() string { return channelNames[c] }

// heatStops is the gradient used for the heat map, low to high.
var heatStops = []colorful.Color{
	{R: 0.04, G: 0.08, B: 0.24},
	{R: 0.16, G: 0.31, B: 0.63},
	{R: 0.24, G: 0.78, B: 0.78},
	{R: 0.78, G: 0.63, B: 0.20},
	{R: 1, G: 1, B: 1},
}

// slider describes one editable knob of the preview.
type slider struct {
	label    string
	min, max float32
	field    func(c *config.Config) *float64
}

var sliders = []slider{
	{"dead_zone.base_radius", 0, 400, func(c *config.Config) *float64 { return &c.DeadZone.BaseRadius }},
	{"dead_zone.transition_width", 0, 400, func(c *config.Config) *float64 { return &c.DeadZone.TransitionWidth }},
	{"wave.base_width", 1, 600, func(c *config.Config) *float64 { return &c.Wave.BaseWidth }},
	{"wave.warp_strength", 0, 300, func(c *config.Config) *float64 { return &c.Wave.WarpStrength }},
	{"envelope.decay_rate", 0, 0.01, func(c *config.Config) *float64 { return &c.Envelope.DecayRate }},
	{"envelope.power", 0, 5, func(c *config.Config) *float64 { return &c.Envelope.Power }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	span := flag.Float64("span", 1600, "World units across the preview")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := cfg.Clone()

	rl.InitWindow(windowWidth, windowHeight, "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	eval := systems.NewEvaluator(systems.NewNoise(cfg.Noise))
	values := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var t float64
	channel := ChannelIntensity
	animating := false
	needsRegen := true

	for !rl.WindowShouldClose() {
		if animating {
			t += float64(rl.GetFrameTime())
			needsRegen = true
		}
		if needsRegen {
			sampleField(values, gridSize, *span, eval, cfg, channel, t)
			updateTexture(texture, values)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		lo, hi, mean := summarize(values)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("%s  min: %.3f  max: %.3f  avg: %.3f", channel, lo, hi, mean), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("time: %.2f  peak: %.0f", t, systems.WavePeakPos(t, &cfg.Wave)), 15, statsY+20, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)
		rl.DrawText("Wave Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		for _, s := range sliders {
			ptr := s.field(cfg)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*ptr), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.4g", *ptr), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if next != float32(*ptr) {
				*ptr = float64(next)
				needsRegen = true
			}
			panelY += 35
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Channel: "+channel.String()) {
			channel = (channel + 1) % channelCount
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg = defaults.Clone()
			t = 0
			needsRegen = true
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			if data, err := cfg.YAML(); err == nil {
				rl.SetClipboardText(string(data))
			}
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// sampleField evaluates the selected channel on a size x size grid spanning
// span world units, with the pointer fixed at the origin. Row 0 is the top.
func sampleField(dst []float64, size int, span float64, eval *systems.Evaluator, cfg *config.Config, ch Channel, t float64) {
	step := span / float64(size)
	var center systems.Vec2
	for y := 0; y < size; y++ {
		wy := span/2 - (float64(y)+0.5)*step
		for x := 0; x < size; x++ {
			p := systems.Vec2{X: (float64(x)+0.5)*step - span/2, Y: wy}
			st := eval.Evaluate(p, center, t, cfg)

			var v float64
			switch ch {
			case ChannelIntensity:
				v = st.Intensity
			case ChannelWave:
				v = st.Wave
			case ChannelEnvelope:
				v = st.Envelope
			case ChannelSuppression:
				v = st.Suppression
			case ChannelBaseNoise:
				q := p.Scale(cfg.BaseNoise.Scale).AddScalar(t * cfg.BaseNoise.Speed)
				v = max(0, min(1, 0.5+0.5*eval.Noise().Sample(q.X, q.Y)))
			}
			dst[y*size+x] = v
		}
	}
}

func summarize(values []float64) (lo, hi, mean float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	lo, hi = values[0], values[0]
	var sum float64
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return lo, hi, sum / float64(len(values))
}

// heat maps v in [0,1] onto the gradient, blending in Lab space.
func heat(v float64) colorful.Color {
	v = max(0, min(1, v))
	seg := v * float64(len(heatStops)-1)
	i := int(seg)
	if i >= len(heatStops)-1 {
		return heatStops[len(heatStops)-1]
	}
	return heatStops[i].BlendLab(heatStops[i+1], seg-float64(i)).Clamped()
}

// updateTexture updates the GPU texture from the grid values.
func updateTexture(texture rl.Texture2D, values []float64) {
	pixels := make([]color.RGBA, len(values))
	for i, v := range values {
		r, g, b := heat(v).RGB255()
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
