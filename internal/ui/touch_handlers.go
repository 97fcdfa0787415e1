package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// GestureArea wraps content and reports taps and swipes over it
type GestureArea struct {
	widget.BaseWidget

	content   fyne.CanvasObject
	threshold float32
	dx, dy    float32

	onTap     func(pos fyne.Position, size fyne.Size)
	onGesture func(GestureType)
}

// NewGestureArea creates a gesture area around content
func NewGestureArea(content fyne.CanvasObject, onTap func(fyne.Position, fyne.Size), onGesture func(GestureType)) *GestureArea {
	g := &GestureArea{
		content:   content,
		threshold: DefaultSwipeThreshold,
		onTap:     onTap,
		onGesture: onGesture,
	}
	g.ExtendBaseWidget(g)
	return g
}

// CreateRenderer implements fyne.Widget
func (g *GestureArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(g.content))
}

// Tapped implements fyne.Tappable
func (g *GestureArea) Tapped(event *fyne.PointEvent) {
	if g.onTap != nil {
		g.onTap(event.Position, g.Size())
	}
}

// Dragged implements fyne.Draggable
func (g *GestureArea) Dragged(event *fyne.DragEvent) {
	g.dx += event.Dragged.DX
	g.dy += event.Dragged.DY
}

// DragEnd implements fyne.Draggable
func (g *GestureArea) DragEnd() {
	gesture := ClassifyDrag(g.dx, g.dy, g.threshold)
	g.dx, g.dy = 0, 0
	if gesture != GestureNone && g.onGesture != nil {
		g.onGesture(gesture)
	}
}

// TapArea wraps content and reports taps only, leaving drags to an
// enclosing scroller
type TapArea struct {
	widget.BaseWidget

	content fyne.CanvasObject
	onTap   func()
}

// NewTapArea creates a tap area around content
func NewTapArea(content fyne.CanvasObject, onTap func()) *TapArea {
	t := &TapArea{content: content, onTap: onTap}
	t.ExtendBaseWidget(t)
	return t
}

// CreateRenderer implements fyne.Widget
func (t *TapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(t.content))
}

// Tapped implements fyne.Tappable
func (t *TapArea) Tapped(*fyne.PointEvent) {
	if t.onTap != nil {
		t.onTap()
	}
}
