package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// ClearBackground fills the frame with the configured background color.
func ClearBackground(bg colorful.Color) {
	rl.ClearBackground(ToRL(bg, 1))
}

// ToRL converts a color and alpha in [0,1] to a raylib color.
func ToRL(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return rl.Color{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
