package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// charWidth is the advance of the ebitenutil debug font.
const charWidth = 6

// Pointer is the mouse state in panel coordinates.
type Pointer struct {
	X, Y    float64
	Pressed bool
}

// In reports whether the pointer lies inside the rectangle.
func (p Pointer) In(x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update(p Pointer)
	Draw(dst *ebiten.Image)
	GetHeight() float64
	setY(y float64)
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
}

func (s *SliderWrapper) GetHeight() float64 {
	return s.H + 25 // Slider height + label space
}

func (s *SliderWrapper) setY(y float64) { s.Y = y }

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 20
}

func (c *CheckboxWrapper) setY(y float64) { c.Y = y }

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 {
	return b.Height + 10
}

func (b *ButtonWrapper) setY(y float64) { b.Y = y }

// UIPanel manages a collection of UI widgets in a scrollable panel.
// Widgets are laid out in panel coordinates and drawn through an offscreen layer,
// so nothing spills outside the panel and the whole layer can be scaled for
// high density displays.
type UIPanel struct {
	Title         string
	X, Y          float64 // Panel position, logical pixels
	Width, Height float64 // Panel dimensions, logical pixels
	Scale         float64 // Device scale factor of the screen the panel is drawn on
	Widgets       []UIWidget
	Labels        []string // Labels for widgets, empty for buttons
	ScrollOffset  float64

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA

	sections []PanelSection
	layer    *ebiten.Image
}

// PanelSection groups consecutive widgets under a header.
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:       "Configuration",
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Scale:       1,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	slider := NewSlider(10, p.nextY()+15, p.Width-20, label, min, max, value)
	p.add(&SliderWrapper{slider}, label)
	return slider
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(10, p.nextY()+15, label, value)
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddButton adds a full width button to the panel
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(10, p.nextY(), p.Width-20, 24, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
}

// nextY is the panel-relative top of the next widget before any scrolling.
func (p *UIPanel) nextY() float64 {
	y := 30.0 + float64(len(p.sections))*25
	for _, widget := range p.Widgets {
		y += widget.GetHeight()
	}
	return y
}

// Contains reports whether a screen position (device pixels) lies over the panel.
func (p *UIPanel) Contains(screenX, screenY int) bool {
	ptr := p.pointer(screenX, screenY, false)
	return ptr.In(0, 0, p.Width, p.Height)
}

func (p *UIPanel) pointer(screenX, screenY int, pressed bool) Pointer {
	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}
	return Pointer{
		X:       float64(screenX)/scale - p.X,
		Y:       float64(screenY)/scale - p.Y,
		Pressed: pressed,
	}
}

// Update handles scrolling and input for all widgets
func (p *UIPanel) Update() {
	mx, my := ebiten.CursorPosition()
	ptr := p.pointer(mx, my, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	inside := ptr.In(0, 0, p.Width, p.Height)

	if _, dy := ebiten.Wheel(); dy != 0 && inside {
		p.ScrollOffset -= dy * 20

		maxScroll := p.nextY() - p.Height + 10
		if maxScroll < 0 {
			maxScroll = 0
		}
		if p.ScrollOffset < 0 {
			p.ScrollOffset = 0
		}
		if p.ScrollOffset > maxScroll {
			p.ScrollOffset = maxScroll
		}
	}

	// presses outside the panel must not reach widgets scrolled out of view
	if !inside {
		ptr.Pressed = false
	}
	for _, widget := range p.Widgets {
		widget.Update(ptr)
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	w, h := int(p.Width), int(p.Height)
	if p.layer == nil || p.layer.Bounds().Dx() != w || p.layer.Bounds().Dy() != h {
		p.layer = ebiten.NewImage(w, h)
	}
	layer := p.layer
	layer.Clear()

	vector.FillRect(layer, 0, 0, float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(layer, 0, 0, float32(p.Width), float32(p.Height), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(layer, p.Title, 10, 5)

	currentY := 30 - p.ScrollOffset
	widgetIdx := 0
	for _, section := range p.sections {
		for widgetIdx < section.StartIndex {
			currentY = p.drawWidget(layer, widgetIdx, currentY)
			widgetIdx++
		}
		vector.FillRect(layer, 5, float32(currentY), float32(p.Width-10), 20,
			color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
		ebitenutil.DebugPrintAt(layer, section.Title, 10, int(currentY+2))
		currentY += 25

		for widgetIdx < section.EndIndex && widgetIdx < len(p.Widgets) {
			currentY = p.drawWidget(layer, widgetIdx, currentY)
			widgetIdx++
		}
	}
	for widgetIdx < len(p.Widgets) {
		currentY = p.drawWidget(layer, widgetIdx, currentY)
		widgetIdx++
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(p.Scale, p.Scale)
	op.GeoM.Translate(p.X*p.Scale, p.Y*p.Scale)
	screen.DrawImage(layer, op)
}

// drawWidget places widget i at top and returns the top of the next one.
func (p *UIPanel) drawWidget(layer *ebiten.Image, i int, top float64) float64 {
	widget := p.Widgets[i]
	if label := p.Labels[i]; label != "" {
		ebitenutil.DebugPrintAt(layer, label, 10, int(top))
		widget.setY(top + 15)
	} else {
		widget.setY(top)
	}
	widget.Draw(layer)
	return top + widget.GetHeight()
}
