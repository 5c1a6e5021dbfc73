package render

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

func TestAgentRect(t *testing.T) {
	tests := []struct {
		name             string
		pos              geometry.Vector2D
		footprint, scale float64
		x, y, side       float32
	}{
		{"default footprint", geometry.NewVector(100, 50), 4, 1, 98, 48, 4},
		{"odd footprint", geometry.NewVector(10, 10), 3, 1, 8.5, 8.5, 3},
		{"hidpi", geometry.NewVector(100, 50), 4, 2, 196, 96, 8},
		{"origin overhangs", geometry.Zero, 4, 1, -2, -2, 4},
		{"zero footprint", geometry.NewVector(7, 9), 0, 1, 7, 9, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, side := AgentRect(tt.pos, tt.footprint, tt.scale)
			if x != tt.x || y != tt.y || side != tt.side {
				t.Errorf("AgentRect(%v, %v, %v) = (%v, %v, %v); want (%v, %v, %v)",
					tt.pos, tt.footprint, tt.scale, x, y, side, tt.x, tt.y, tt.side)
			}
		})
	}
}

func TestRenderer_RenderCopies(t *testing.T) {
	r := NewRenderer(0)
	if r.Scale != 1 {
		t.Errorf("scale = %v; want 1 for a non-positive factor", r.Scale)
	}
	agents := []behavior.Agent{{ID: 1, Position: geometry.NewVector(1, 2)}}
	r.Render(agents, behavior.Settings{Footprint: 4})
	agents[0].Position = geometry.NewVector(9, 9)

	if got := r.agents[0].Position; !got.Eq(geometry.NewVector(1, 2)) {
		t.Errorf("renderer shares the caller's slice: %v", got)
	}
	if r.Settings().Footprint != 4 {
		t.Errorf("settings not kept: %+v", r.Settings())
	}
}
