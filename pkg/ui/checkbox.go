package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox is a boolean toggle with a caption drawn to its right.
type Checkbox struct {
	Label   string
	Caption string // optional text beside the box, e.g. the meaning of "checked"
	Value   bool
	X, Y    float64
	Size    float64

	held bool // button already down, toggle once per press
}

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16,
	}
}

// Update toggles Value on a press inside the box.
func (c *Checkbox) Update(p Pointer) {
	if !p.Pressed {
		c.held = false
		return
	}
	if !c.held && p.In(c.X, c.Y, c.Size, c.Size) {
		c.Value = !c.Value
	}
	c.held = true
}

// Draw renders the checkbox
func (c *Checkbox) Draw(dst *ebiten.Image) {
	vector.StrokeRect(dst,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if c.Value {
		vector.FillRect(dst,
			float32(c.X+3), float32(c.Y+3),
			float32(c.Size-6), float32(c.Size-6),
			color.RGBA{R: 255, G: 215, B: 0, A: 255},
			true)
	}
	if c.Caption != "" {
		ebitenutil.DebugPrintAt(dst, c.Caption, int(c.X+c.Size+8), int(c.Y))
	}
}
