package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable UI button
type Button struct {
	Label   string
	X, Y    float64
	Width   float64
	Height  float64
	OnClick func()

	// Styling
	BGColor    color.RGBA
	HoverColor color.RGBA

	hover bool
	held  bool
}

// NewButton creates a new button instance
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 90, G: 75, B: 20, A: 255},
		HoverColor: color.RGBA{R: 140, G: 115, B: 30, A: 255},
	}
}

// Update fires OnClick once per press inside the button.
func (b *Button) Update(p Pointer) {
	b.hover = p.In(b.X, b.Y, b.Width, b.Height)
	if !p.Pressed {
		b.held = false
		return
	}
	if !b.held && b.hover && b.OnClick != nil {
		b.OnClick()
	}
	b.held = true
}

// Draw renders the button
func (b *Button) Draw(dst *ebiten.Image) {
	bg := b.BGColor
	if b.hover {
		bg = b.HoverColor
	}
	vector.FillRect(dst,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		bg, true)
	vector.StrokeRect(dst,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	// debug font glyphs are 6x16
	tx := b.X + (b.Width-float64(len(b.Label)*charWidth))/2
	ty := b.Y + (b.Height-16)/2
	ebitenutil.DebugPrintAt(dst, b.Label, int(tx), int(ty))
}
