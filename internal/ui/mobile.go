package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific UI helpers
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// CreateMobileButton creates a button with a touch-sized minimum height
func (m *MobileUI) CreateMobileButton(text string, onTapped func()) fyne.CanvasObject {
	btn := widget.NewButton(text, onTapped)
	if !m.IsMobileDevice() {
		return btn
	}
	return container.New(&minHeightLayout{height: MobileButtonHeight}, btn)
}

// CreateMobileEntry creates an entry field with a placeholder
func (m *MobileUI) CreateMobileEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

// CreatePasswordEntry creates a password entry with a placeholder
func (m *MobileUI) CreatePasswordEntry(placeholder string) *widget.Entry {
	entry := widget.NewPasswordEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

// GetMobilePadding returns appropriate padding for the device
func (m *MobileUI) GetMobilePadding() float32 {
	if m.IsMobileDevice() {
		return 20
	}
	return 10
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := fyne.CurrentDevice().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// CenteredForm keeps forms narrow on desktop and full width on phones
func (m *MobileUI) CenteredForm(content fyne.CanvasObject) fyne.CanvasObject {
	if m.IsMobileDevice() && !m.IsLandscape() {
		return container.NewPadded(content)
	}
	return container.NewCenter(container.New(&minWidthLayout{width: PostRowMinWidth + 6*m.GetMobilePadding()}, content))
}

type minHeightLayout struct {
	height float32
}

func (l *minHeightLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	size := layout.NewStackLayout().MinSize(objects)
	if size.Height < l.height {
		size.Height = l.height
	}
	return size
}

func (l *minHeightLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	layout.NewStackLayout().Layout(objects, size)
}

type minWidthLayout struct {
	width float32
}

func (l *minWidthLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	size := layout.NewStackLayout().MinSize(objects)
	if size.Width < l.width {
		size.Width = l.width
	}
	return size
}

func (l *minWidthLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	layout.NewStackLayout().Layout(objects, size)
}
