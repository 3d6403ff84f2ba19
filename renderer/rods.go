// Package renderer draws field state with raylib.
package renderer

import (
	_ "embed"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rodfield/camera"
	"github.com/pthm-cable/rodfield/components"
	"github.com/pthm-cable/rodfield/game"
	"github.com/pthm-cable/rodfield/systems"
)

//go:embed shaders/rod.vs
var rodVertexShader string

//go:embed shaders/rod.fs
var rodFragmentShader string

// quadPad is the margin around the capsule so the AA band is not clipped.
const quadPad = systems.EdgeAA + 1

// RodRenderer draws rods as distance-field capsules. Each rod is two quads,
// centre to tip, that meet without overlapping; the fragment shader evaluates
// the same capsule distance and coverage band as systems.RodSDF/Coverage.
type RodRenderer struct {
	shader    rl.Shader
	useShader bool
	white     rl.Texture2D
	drawn     int
}

// NewRodRenderer creates the rod renderer. The window must be open. If the
// shader does not compile the renderer falls back to flat primitives.
func NewRodRenderer() *RodRenderer {
	r := &RodRenderer{}

	img := rl.GenImageColor(1, 1, rl.White)
	r.white = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	r.shader = rl.LoadShaderFromMemory(rodVertexShader, rodFragmentShader)
	r.useShader = rl.IsShaderValid(r.shader)
	if r.useShader {
		loc := rl.GetShaderLocation(r.shader, "edgeAA")
		rl.SetShaderValue(r.shader, loc, []float32{systems.EdgeAA}, rl.ShaderUniformFloat)
	} else {
		slog.Warn("rod shader unavailable, drawing primitives")
	}
	return r
}

// Unload releases GPU resources.
func (r *RodRenderer) Unload() {
	if r.useShader {
		rl.UnloadShader(r.shader)
	}
	rl.UnloadTexture(r.white)
}

// Draw renders every visible rod of g through cam.
func (r *RodRenderer) Draw(g *game.Game, cam *camera.Camera) {
	r.drawn = 0
	if r.useShader {
		rl.BeginShaderMode(r.shader)
		defer rl.EndShaderMode()
	}

	g.ForEachRod(func(rest systems.Vec2, rod *components.Rod) {
		if rod.Appearance.Culled {
			return
		}
		tr := rod.State.Transform(rest)
		px, py, pz := float32(tr.Position.X), float32(tr.Position.Y), float32(tr.Position.Z)
		if !cam.IsVisible(px, py, pz, float32(tr.Scale.X)) {
			return
		}
		sx, sy, ok := cam.WorldToScreen(px, py, pz)
		if !ok {
			return
		}
		s := cam.Scale(pz)
		color := ToRL(rod.Appearance.Color, rod.Appearance.Alpha)
		length, thickness, angle := capsuleAxis(float32(tr.Scale.X)*s, float32(tr.Scale.Y)*s, float32(tr.Rotation))
		if thickness <= 0 {
			return
		}
		if r.useShader {
			right, left := rodHalves(sx, sy, length, thickness, angle)
			rl.DrawTexturePro(r.white, right.src, right.dst, right.origin, right.rotation, color)
			rl.DrawTexturePro(r.white, left.src, left.dst, left.origin, left.rotation, color)
		} else {
			drawCapsulePrimitives(sx, sy, length, thickness, angle, color)
		}
		r.drawn++
	})
}

// Drawn returns how many rods the last Draw call emitted.
func (r *RodRenderer) Drawn() int {
	return r.drawn
}

// capsuleAxis orients a rod so its long side lies along the returned angle.
// A rounded rectangle whose corner radius is half its short side is a capsule
// along the long side, so a rod thicker than it is long turns a quarter.
func capsuleAxis(length, thickness, angle float32) (long, short, axis float32) {
	if thickness > length {
		return thickness, length, angle + math.Pi/2
	}
	return length, thickness, angle
}

// rodQuad is one half of a rod ready for DrawTexturePro over a 1x1 texture.
type rodQuad struct {
	src      rl.Rectangle
	dst      rl.Rectangle
	origin   rl.Vector2
	rotation float32
}

// rodHalves splits a capsule centred at (cx, cy) into the half towards +axis
// and the half towards -axis. Both quads are pinned at the centre; the
// negative source width mirrors the second one so both carry the same
// texture coordinates: x in radii from the core end, y in radii across.
// angle is counter-clockwise in world space, so it is negated for the y-down
// screen.
func rodHalves(cx, cy, length, thickness, angle float32) (right, left rodQuad) {
	radius := thickness / 2
	core := max(length/2-radius, 0)
	halfW := length/2 + quadPad
	halfH := radius + quadPad
	deg := -angle * rl.Rad2deg

	src := rl.Rectangle{X: -core / radius, Y: -halfH / radius, Width: halfW / radius, Height: 2 * halfH / radius}
	dst := rl.Rectangle{X: cx, Y: cy, Width: halfW, Height: 2 * halfH}

	right = rodQuad{src: src, dst: dst, origin: rl.Vector2{X: 0, Y: halfH}, rotation: deg}
	src.Width = -src.Width
	left = rodQuad{src: src, dst: dst, origin: rl.Vector2{X: halfW, Y: halfH}, rotation: deg}
	return right, left
}

// texCoord interpolates q's texture coordinate at fraction (fx, fy) across
// its destination rectangle, following DrawTexturePro's corner assignment.
func (q rodQuad) texCoord(fx, fy float32) (u, v float32) {
	src := q.src
	u0, u1 := src.X, src.X+src.Width
	if src.Width < 0 {
		u0, u1 = src.X-src.Width, src.X
	}
	return u0 + (u1-u0)*fx, src.Y + src.Height*fy
}

// halfCapsuleDistance mirrors the fragment shader: the signed distance in
// pixels for texture coordinate (u, v) on a rod of the given radius.
func halfCapsuleDistance(u, v, radius float32) float32 {
	return (float32(math.Hypot(float64(max(u, 0)), float64(v))) - 1) * radius
}

// drawCapsulePrimitives is the shader-less path: a core rectangle and two
// half-disc caps, which tile the capsule without overlapping.
func drawCapsulePrimitives(cx, cy, length, thickness, angle float32, color rl.Color) {
	radius := thickness / 2
	core := max(length-thickness, 0)
	deg := -angle * rl.Rad2deg

	if core > 0 {
		rl.DrawRectanglePro(
			rl.Rectangle{X: cx, Y: cy, Width: core, Height: thickness},
			rl.Vector2{X: core / 2, Y: radius},
			deg,
			color,
		)
	}

	dx := float32(math.Cos(float64(angle))) * core / 2
	dy := -float32(math.Sin(float64(angle))) * core / 2
	segments := int32(max(6, min(32, radius)))
	rl.DrawCircleSector(rl.Vector2{X: cx + dx, Y: cy + dy}, radius, deg-90, deg+90, segments, color)
	rl.DrawCircleSector(rl.Vector2{X: cx - dx, Y: cy - dy}, radius, deg+90, deg+270, segments, color)
}
