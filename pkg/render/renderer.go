// Package render paints a flock with ebiten: a black viewport and one gold
// filled square per agent.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
)

var (
	Gold  = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	Black = color.RGBA{A: 255}
)

// Renderer keeps the last committed flock and draws it on demand.
// Render is the simulation sink side, Draw is called from ebiten's Draw.
type Renderer struct {
	Background color.Color
	Agent      color.Color
	Scale      float64 // device pixels per logical pixel

	agents   []behavior.Agent
	settings behavior.Settings
}

// NewRenderer creates a renderer for a screen with the given device scale factor.
func NewRenderer(scale float64) *Renderer {
	if scale <= 0 {
		scale = 1
	}
	return &Renderer{Background: Black, Agent: Gold, Scale: scale}
}

// Render stores a copy of the flock for the next Draw.
func (r *Renderer) Render(agents []behavior.Agent, s behavior.Settings) {
	r.agents = append(r.agents[:0], agents...)
	r.settings = s
}

// Settings returns the parameters of the last rendered tick.
func (r *Renderer) Settings() behavior.Settings { return r.settings }

// AgentRect returns the device-pixel square of side footprint centered on pos.
func AgentRect(pos geometry.Vector2D, footprint, scale float64) (x, y, side float32) {
	half := footprint / 2
	return float32((pos.X - half) * scale), float32((pos.Y - half) * scale), float32(footprint * scale)
}

// Draw clears the viewport and paints every agent with AgentRect.
func (r *Renderer) Draw(dst *ebiten.Image) {
	s := r.settings
	vector.FillRect(dst, 0, 0,
		float32(s.ViewportWidth*r.Scale), float32(s.ViewportHeight*r.Scale),
		r.Background, false)

	for _, a := range r.agents {
		x, y, side := AgentRect(a.Position, s.Footprint, r.Scale)
		vector.FillRect(dst, x, y, side, side, r.Agent, false)
	}
}
