package ui

import (
	"context"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/download"
	"github.com/ytget/scrolly/internal/model"
	"github.com/ytget/scrolly/internal/story"
)

// StoryViewer shows stories full screen on top of the dashboard
type StoryViewer struct {
	window   fyne.Window
	images   download.Downloader
	player   *story.Player
	autoPlay bool
	cancel   context.CancelFunc
	popup    *widget.PopUp
	onClosed func()

	// UI components
	bars        []*widget.ProgressBar
	picture     *canvas.Image
	authorLabel *widget.Label
	dateLabel   *widget.Label
	textLabel   *widget.Label

	shownIndex int
}

// NewStoryViewer creates a viewer over stories starting at start
func NewStoryViewer(window fyne.Window, images download.Downloader, stories []*model.Post, start int, autoPlay bool) *StoryViewer {
	v := &StoryViewer{
		window:     window,
		images:     images,
		player:     story.NewPlayer(stories, start),
		autoPlay:   autoPlay,
		shownIndex: -1,
	}
	v.createUI(len(stories))
	v.player.SetUpdateCallback(func(state story.State) {
		fyne.Do(func() { v.render(state) })
	})
	return v
}

// SetOnClosed registers a callback run once the viewer closes
func (v *StoryViewer) SetOnClosed(callback func()) {
	v.onClosed = callback
}

// Show opens the viewer and starts playback
func (v *StoryViewer) Show() {
	state := v.player.State()
	if state.Closed {
		return
	}

	v.popup.Resize(v.window.Canvas().Size())
	v.popup.Show()
	v.render(state)

	if v.autoPlay {
		ctx, cancel := context.WithCancel(context.Background())
		v.cancel = cancel
		go v.player.Start(ctx)
	}
	log.Printf("Story viewer opened at %d of %d (auto-play: %v)", state.Index+1, state.Count, v.autoPlay)
}

// OnImageLoaded is called by the root when the loader delivers an image
func (v *StoryViewer) OnImageLoaded(ref string, res fyne.Resource, err error) {
	state := v.player.State()
	if state.Closed || state.Story == nil || state.Story.Image != ref {
		return
	}
	if err == nil && res != nil {
		v.picture.Resource = res
		v.picture.Refresh()
	}
	// A failed image still counts as shown so playback does not stall.
	v.player.MarkLoaded()
}

// Close hides the viewer
func (v *StoryViewer) Close() {
	v.player.Close()
}

func (v *StoryViewer) createUI(count int) {
	bars := make([]fyne.CanvasObject, 0, count)
	for i := 0; i < count; i++ {
		bar := widget.NewProgressBar()
		bar.Max = story.FullProgress
		bar.TextFormatter = func() string { return "" }
		v.bars = append(v.bars, bar)
		bars = append(bars, bar)
	}

	v.picture = canvas.NewImageFromResource(ImagePlaceholder())
	v.picture.FillMode = canvas.ImageFillContain

	v.authorLabel = widget.NewLabel("")
	v.authorLabel.TextStyle = fyne.TextStyle{Bold: true}
	v.dateLabel = widget.NewLabel("")
	v.dateLabel.Importance = widget.LowImportance
	v.textLabel = widget.NewLabel("")
	v.textLabel.Wrapping = fyne.TextWrapWord

	closeBtn := widget.NewButton(IconClose, v.Close)
	closeBtn.Importance = widget.LowImportance

	header := container.NewVBox(
		container.NewGridWithColumns(max(count, 1), bars...),
		container.NewBorder(nil, nil, container.NewHBox(v.authorLabel, v.dateLabel), closeBtn),
	)

	area := NewGestureArea(v.picture, v.onTap, v.onGesture)
	content := container.NewBorder(header, v.textLabel, nil, nil, area)
	v.popup = widget.NewModalPopUp(content, v.window.Canvas())
}

func (v *StoryViewer) onTap(pos fyne.Position, size fyne.Size) {
	if TapSide(pos.X, size.Width) {
		v.player.Previous()
	} else {
		v.player.Next()
	}
}

func (v *StoryViewer) onGesture(g GestureType) {
	switch g {
	case GestureSwipeLeft:
		v.player.Next()
	case GestureSwipeRight:
		v.player.Previous()
	case GestureSwipeDown:
		v.player.Close()
	}
}

// render mirrors the player state into the widgets
func (v *StoryViewer) render(state story.State) {
	if state.Closed {
		v.teardown()
		return
	}

	for i, bar := range v.bars {
		bar.SetValue(float64(v.player.BarFill(i)))
	}

	if state.Index == v.shownIndex || state.Story == nil {
		return
	}
	v.shownIndex = state.Index

	s := state.Story
	v.authorLabel.SetText(singleLine(s.DisplayAuthor()))
	v.dateLabel.SetText(formatRelative(s.CreatedAt, time.Now()))
	v.textLabel.SetText(s.Text)

	if res, ok := v.images.Cached(s.Image); ok {
		v.picture.Resource = res
		v.picture.Refresh()
		v.player.MarkLoaded()
		return
	}
	v.picture.Resource = ImagePlaceholder()
	v.picture.Refresh()
	v.images.FetchAsync(s.Image)
}

func (v *StoryViewer) teardown() {
	if v.popup == nil {
		return
	}
	if v.cancel != nil {
		v.cancel()
	}
	v.popup.Hide()
	v.popup = nil
	log.Printf("Story viewer closed")

	if v.onClosed != nil {
		v.onClosed()
	}
}
