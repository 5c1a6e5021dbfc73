package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a horizontal bar mapping a pointer position to a value in [Min, Max].
// Once grabbed it follows the pointer until the button is released, even outside the bar.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64
	Format   string // readout verb, "%.4g" by default

	dragging bool
}

// NewSlider creates a slider. value is clamped into [min, max].
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label:  label,
		Min:    min,
		Max:    max,
		X:      x,
		Y:      y,
		W:      w,
		H:      10,
		Format: "%.4g",
	}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Ratio is the position of Value along the bar, from 0 to 1.
func (s *Slider) Ratio() float64 {
	if s.Max <= s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Update grabs the slider on press inside the bar and tracks the pointer while held.
func (s *Slider) Update(p Pointer) {
	if !p.Pressed {
		s.dragging = false
		return
	}
	if !s.dragging && !p.In(s.X, s.Y, s.W, s.H) {
		return
	}
	s.dragging = true
	if s.W > 0 {
		s.Value = s.clamp(s.Min + (p.X-s.X)/s.W*(s.Max-s.Min))
	}
}

// Draw renders the bar and the current value on the label line.
func (s *Slider) Draw(dst *ebiten.Image) {
	vector.FillRect(dst, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)
	vector.FillRect(dst, float32(s.X), float32(s.Y), float32(s.W*s.Ratio()), float32(s.H), color.RGBA{R: 255, G: 215, B: 0, A: 255}, true)

	readout := fmt.Sprintf(s.Format, s.Value)
	ebitenutil.DebugPrintAt(dst, readout, int(s.X+s.W)-len(readout)*charWidth, int(s.Y)-15)
}
