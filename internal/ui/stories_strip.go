package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/download"
	"github.com/ytget/scrolly/internal/model"
)

// storyNameLimit caps the caption under a story bubble
const storyNameLimit = 10

// StoriesStrip is the horizontal row of story bubbles above the feed
type StoriesStrip struct {
	images download.Downloader

	stories []*model.Post
	box     *fyne.Container
	scroll  *container.Scroll
	title   *widget.Label
	root    *fyne.Container

	onOpen func(index int)
}

// NewStoriesStrip creates an empty strip
func NewStoriesStrip(images download.Downloader, localization *Localization, onOpen func(index int)) *StoriesStrip {
	s := &StoriesStrip{
		images: images,
		onOpen: onOpen,
	}

	s.title = widget.NewLabel(localization.GetText(KeyStories))
	s.title.TextStyle = fyne.TextStyle{Bold: true}
	s.box = container.NewHBox()
	s.scroll = container.NewHScroll(s.box)
	s.scroll.SetMinSize(fyne.NewSize(StoryBubbleSize, StoryBubbleSize+32))
	s.root = container.NewVBox(s.title, s.scroll)
	s.root.Hide()
	return s
}

// Container returns the strip's canvas object
func (s *StoriesStrip) Container() fyne.CanvasObject {
	return s.root
}

// SetStories replaces the shown stories
func (s *StoriesStrip) SetStories(stories []*model.Post) {
	s.stories = stories
	s.rebuild()
}

// RefreshImages re-reads cached images after the loader delivered one
func (s *StoriesStrip) RefreshImages() {
	s.rebuild()
}

func (s *StoriesStrip) rebuild() {
	objects := make([]fyne.CanvasObject, 0, len(s.stories))
	for i, story := range s.stories {
		objects = append(objects, s.bubble(i, story))
	}
	s.box.Objects = objects
	s.box.Refresh()

	if len(objects) == 0 {
		s.root.Hide()
	} else {
		s.root.Show()
	}
}

func (s *StoriesStrip) bubble(index int, story *model.Post) fyne.CanvasObject {
	res := ImagePlaceholder()
	if cached, ok := s.images.Cached(story.Image); ok {
		res = cached
	} else {
		s.images.FetchAsync(story.Image)
	}

	img := canvas.NewImageFromResource(res)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(StoryBubbleSize, StoryBubbleSize))

	ring := canvas.NewCircle(color.Transparent)
	ring.StrokeColor = ColorAccent
	ring.StrokeWidth = 2

	name := widget.NewLabel(truncateName(story.DisplayAuthor(), storyNameLimit))
	name.Alignment = fyne.TextAlignCenter

	area := NewTapArea(container.NewStack(img, ring), func() {
		if s.onOpen != nil {
			s.onOpen(index)
		}
	})
	return container.NewVBox(area, name)
}

// truncateName shortens name to limit runes with an ellipsis
func truncateName(name string, limit int) string {
	runes := []rune(singleLine(name))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit-1]) + "…"
}
