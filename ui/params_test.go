package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rodfield/config"
)

func TestSetColorPublishesHex(t *testing.T) {
	tests := []struct {
		field colorField
		pick  rl.Color
		want  string
	}{
		{colorFields[0], rl.Color{R: 255, G: 0, B: 128, A: 255}, "#ff0080"},
		{colorFields[1], rl.Color{R: 10, G: 20, B: 30, A: 255}, "#0a141e"},
	}

	for _, tt := range tests {
		store := config.NewStore(config.Defaults())
		before := store.Snapshot()

		setColor(store, tt.field, tt.pick)

		cfg := store.Snapshot()
		if got := *tt.field.hex(cfg); got != tt.want {
			t.Errorf("%s: hex = %q, want %q", tt.field.name, got, tt.want)
		}
		// The derived color must round-trip to the picked one, otherwise the
		// picker would see a change every frame.
		if got := colorToRL(tt.field.derived(cfg)); got != tt.pick {
			t.Errorf("%s: derived color %v, want %v", tt.field.name, got, tt.pick)
		}
		if *tt.field.hex(before) == tt.want {
			t.Errorf("%s: snapshot taken before the edit changed", tt.field.name)
		}
	}
}

func TestSetColorLeavesOtherFieldAlone(t *testing.T) {
	store := config.NewStore(config.Defaults())
	bg := store.Snapshot().Colors.Background

	setColor(store, colorFields[0], rl.Color{R: 1, G: 2, B: 3, A: 255})

	if got := store.Snapshot().Colors.Background; got != bg {
		t.Errorf("background changed from %q to %q", bg, got)
	}
}
