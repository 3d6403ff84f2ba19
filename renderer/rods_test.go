package renderer

import (
	"math"
	"testing"

	"github.com/pthm-cable/rodfield/systems"
)

// distanceAt projects a rod-local point (lx along the axis, ly across) onto
// whichever half-quad covers it and returns the shader distance there.
func distanceAt(cx, cy, length, thickness, lx, ly float32) float32 {
	right, left := rodHalves(cx, cy, length, thickness, 0)
	q := right
	if lx < 0 {
		q = left
	}
	sx, sy := cx+lx, cy-ly
	fx := (sx - (q.dst.X - q.origin.X)) / q.dst.Width
	fy := (sy - (q.dst.Y - q.origin.Y)) / q.dst.Height
	u, v := q.texCoord(fx, fy)
	return halfCapsuleDistance(u, v, thickness/2)
}

func TestRodHalvesMatchRodSDF(t *testing.T) {
	tests := []struct {
		name              string
		length, thickness float32
	}{
		{"long", 40, 6},
		{"short", 8, 6},
		{"round", 6, 6},
	}
	points := [][2]float32{
		{0, 0}, {3, 1}, {-3, -1}, {15, 2}, {-15, 2},
		{19, 0}, {-19, 0}, {20.5, 0}, {0, 3}, {0, -3.4}, {2.9, 2.9}, {-3.5, 1},
	}

	for _, tt := range tests {
		for _, p := range points {
			got := distanceAt(100, 50, tt.length, tt.thickness, p[0], p[1])
			want := systems.RodSDF(systems.Vec2{X: float64(p[0]), Y: float64(p[1])}, float64(tt.length), float64(tt.thickness))
			if math.Abs(float64(got)-want) > 1e-3 {
				t.Errorf("%s at %v: shader distance %v, RodSDF %v", tt.name, p, got, want)
			}
		}
	}
}

func TestRodHalvesDoNotOverlap(t *testing.T) {
	right, left := rodHalves(100, 50, 40, 6, 0)

	rightMin := right.dst.X - right.origin.X
	leftMax := left.dst.X - left.origin.X + left.dst.Width
	if rightMin != 100 || leftMax != 100 {
		t.Errorf("halves should meet at the centre: right starts %v, left ends %v", rightMin, leftMax)
	}
	if right.rotation != left.rotation {
		t.Errorf("halves rotate differently: %v vs %v", right.rotation, left.rotation)
	}

	// Both quads reach past the tip by the AA margin.
	if right.dst.Width < 20+systems.EdgeAA {
		t.Errorf("quad width %v does not cover the AA band", right.dst.Width)
	}
}

func TestRodHalvesQuadEdgeIsOutside(t *testing.T) {
	right, _ := rodHalves(0, 0, 40, 6, 0)
	for _, f := range [][2]float32{{1, 0.5}, {0.5, 0}, {0.5, 1}} {
		u, v := right.texCoord(f[0], f[1])
		if d := halfCapsuleDistance(u, v, 3); d < systems.EdgeAA {
			t.Errorf("quad edge at %v has distance %v, inside the AA band", f, d)
		}
	}
}

func TestCapsuleAxis(t *testing.T) {
	long, short, axis := capsuleAxis(4, 10, 0.3)
	if long != 10 || short != 4 {
		t.Errorf("thick rod should swap sides, got long %v short %v", long, short)
	}
	if math.Abs(float64(axis)-(0.3+math.Pi/2)) > 1e-6 {
		t.Errorf("thick rod should turn a quarter, got %v", axis)
	}

	long, short, axis = capsuleAxis(10, 4, 0.3)
	if long != 10 || short != 4 || axis != 0.3 {
		t.Errorf("long rod should be unchanged, got %v %v %v", long, short, axis)
	}
}
