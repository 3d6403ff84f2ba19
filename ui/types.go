// Package ui draws the parameter panel and HUD over the field.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Accent      rl.Color
	Text        rl.Color
	TextDim     rl.Color
	Hint        rl.Color
	Padding     int32
	LineHeight  int32
	LabelWidth  int32
	FontSize    int32
	HeaderSize  int32
}

// DefaultTheme suits the default light paper background.
func DefaultTheme() Theme {
	return ThemeFor(colorful.Color{R: 0.96, G: 0.95, B: 0.93})
}

// ThemeFor builds a theme whose panels contrast with the field background:
// dark translucent panels over light fields and the reverse over dark ones.
// The hint line is drawn straight on the field so it follows the field, not
// the panel.
func ThemeFor(bg colorful.Color) Theme {
	l, _, _ := bg.Hcl()
	light := l > 0.55

	panel := bg.BlendLab(colorful.Color{}, 0.85)
	if !light {
		panel = bg.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.12)
	}
	accent, _ := colorful.Hex("#78aaff")

	th := Theme{
		PanelBg:     toRL(panel, 225),
		PanelBorder: toRL(panel.BlendLab(accent, 0.25), 255),
		Accent:      toRL(accent, 255),
		Text:        rl.RayWhite,
		TextDim:     rl.LightGray,
		Hint:        toRL(bg.BlendLab(colorful.Color{}, 0.55), 255),
		Padding:     10,
		LineHeight:  16,
		LabelWidth:  110,
		FontSize:    12,
		HeaderSize:  14,
	}
	if !light {
		th.Hint = toRL(bg.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.55), 255)
	}
	return th
}

func toRL(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.Color{R: r, G: g, B: b, A: alpha}
}
