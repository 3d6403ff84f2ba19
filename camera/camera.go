// Package camera provides the perspective camera that looks down -z onto the
// field plane.
package camera

import "math"

// Camera is a pinhole camera placed at (X, Y, Distance) looking straight down
// at the z=0 plane. Screen y grows downward, world y grows upward.
type Camera struct {
	// Position of the look-at point on the field plane
	X, Y float32

	// Height above the plane
	Distance float32

	// Vertical field of view in degrees
	FovY float32

	// Points closer than Near to the camera are not projected
	Near float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints, expressed as camera height
	MinDistance, MaxDistance float32

	homeDistance float32
}

// New creates a camera centered on the origin.
func New(viewportW, viewportH, distance, fovY, near float32) *Camera {
	if near <= 0 {
		near = 1
	}
	return &Camera{
		Distance:     distance,
		FovY:         fovY,
		Near:         near,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		MinDistance:  distance / 4,
		MaxDistance:  distance * 4,
		homeDistance: distance,
	}
}

// Focal returns the focal length in pixels.
func (c *Camera) Focal() float32 {
	half := float64(c.FovY) * math.Pi / 360
	return c.ViewportH / 2 / float32(math.Tan(half))
}

// Scale returns pixels per world unit for a point at height wz.
// Returns 0 if the point is at or behind the near plane.
func (c *Camera) Scale(wz float32) float32 {
	depth := c.Distance - wz
	if depth < c.Near {
		return 0
	}
	return c.Focal() / depth
}

// WorldToScreen projects a world point. ok is false when the point is
// behind the near plane.
func (c *Camera) WorldToScreen(wx, wy, wz float32) (sx, sy float32, ok bool) {
	s := c.Scale(wz)
	if s == 0 {
		return 0, 0, false
	}
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 - (wy-c.Y)*s
	return sx, sy, true
}

// ScreenToWorld unprojects a screen point onto the z=0 plane.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale(0)
	if s == 0 {
		return c.X, c.Y
	}
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y - (sy-c.ViewportH/2)/s
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy, wz) with the given world
// radius could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, wz, radius float32) bool {
	s := c.Scale(wz)
	if s == 0 {
		return false
	}
	sx := (wx - c.X) * s
	sy := (wy - c.Y) * s
	r := radius * s
	return absf(sx) <= c.ViewportW/2+r && absf(sy) <= c.ViewportH/2+r
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale(0)
	if s == 0 {
		return
	}
	c.X += dx / s
	c.Y -= dy / s
}

// SetDistance sets the camera height, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy magnifies the view by factor (>1 moves the camera closer).
func (c *Camera) ZoomBy(factor float32) {
	if factor <= 0 {
		return
	}
	c.SetDistance(c.Distance / factor)
}

// Reset returns the camera to the origin at its initial height.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Distance = c.homeDistance
}

// VisibleWorldBounds returns the bounds of the visible area on the z=0 plane.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	minX, maxY = c.ScreenToWorld(0, 0)
	maxX, minY = c.ScreenToWorld(c.ViewportW, c.ViewportH)
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
