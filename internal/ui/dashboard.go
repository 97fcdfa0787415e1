package ui

import (
	"errors"
	"log"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/feed"
	"github.com/ytget/scrolly/internal/model"
	"github.com/ytget/scrolly/internal/platform"
)

// shareText builds what the share action sends: the post text followed by
// a link to its image when the image lives on the server.
func shareText(p *model.Post, baseURL string) string {
	parts := make([]string, 0, 2)
	if text := strings.TrimSpace(p.Text); text != "" {
		parts = append(parts, text)
	}
	if p.HasImage() && !p.HasInlineImage() {
		if link := api.ResolveImageURL(baseURL, p.Image); strings.HasPrefix(link, "http") {
			parts = append(parts, link)
		}
	}
	return strings.Join(parts, "\n")
}

// showDashboard shows the feed
func (ui *RootUI) showDashboard() {
	ui.setContent(ui.buildDashboard)

	if ui.services.Feed.LoadCached() {
		ui.showNotification(ui.localization.GetText(KeyOfflineFeed), true)
	}
	ui.refreshFeed()
}

func (ui *RootUI) buildDashboard() {
	l := ui.localization

	// Header
	title := canvas.NewText(l.GetText(KeyAppTitle), ColorTextMain)
	title.TextSize = 22
	title.TextStyle = fyne.TextStyle{Bold: true}

	refreshBtn := widget.NewButton(IconRefresh, ui.refreshFeed)
	refreshBtn.Importance = widget.LowImportance
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	profileBtn := widget.NewButton(IconProfile, ui.showProfile)
	profileBtn.Importance = widget.LowImportance

	headerRow := container.NewBorder(nil, nil, container.NewPadded(title),
		container.NewHBox(refreshBtn, settingsBtn, profileBtn))
	header := NewGestureArea(
		container.NewStack(canvas.NewRectangle(ColorHeader), headerRow),
		nil,
		func(g GestureType) {
			if g == GestureSwipeDown {
				ui.refreshFeed()
			}
		},
	)

	// Stories and feed
	ui.stories = NewStoriesStrip(ui.services.Images, l, ui.openStories)
	ui.stories.SetStories(ui.services.Feed.Stories())
	ui.posts = ui.services.Feed.Posts()

	ui.feedList = widget.NewList(
		func() int { return len(ui.posts) },
		func() fyne.CanvasObject {
			row := NewPostRow(ui.services.Images, l)
			row.SetCallbacks(ui.onLike, ui.onComment, ui.onShare)
			row.SetOpenCallback(ui.onOpenImage)
			return row
		},
		ui.updatePostRow,
	)

	ui.emptyLabel = widget.NewLabel(l.GetText(KeyNoPosts))
	ui.emptyLabel.Alignment = fyne.TextAlignCenter
	ui.emptyLabel.Wrapping = fyne.TextWrapWord
	if len(ui.posts) > 0 || ui.services.Feed.IsLoading() {
		ui.emptyLabel.Hide()
	}

	// Bottom bar
	homeBtn := widget.NewButton(IconHome, func() {
		ui.feedList.ScrollToTop()
		ui.refreshFeed()
	})
	composeBtn := widget.NewButton(IconCompose, ui.openCompose)
	composeBtn.Importance = widget.HighImportance
	meBtn := widget.NewButton(IconProfile, ui.showProfile)
	bottom := container.NewGridWithColumns(3, homeBtn, composeBtn, meBtn)

	top := container.NewVBox(header, ui.createNotificationPanel(), ui.stories.Container())
	center := container.NewStack(ui.feedList, container.NewCenter(ui.emptyLabel))
	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, center))
}

// updatePostRow fills a recycled row and sizes it to its content
func (ui *RootUI) updatePostRow(id widget.ListItemID, item fyne.CanvasObject) {
	row, ok := item.(*PostRow)
	if !ok || id < 0 || id >= len(ui.posts) {
		return
	}
	row.SetPost(ui.posts[id], ui.currentUserID())
	ui.feedList.SetItemHeight(id, row.MinSize().Height)
}

// refreshFeed reloads the feed off the UI goroutine
func (ui *RootUI) refreshFeed() {
	ui.showNotification(ui.localization.GetText(KeyLoading), true)

	go func() {
		ctx, cancel := requestContext()
		defer cancel()

		err := ui.services.Feed.Refresh(ctx)
		fyne.Do(func() {
			if err == nil {
				ui.hideNotification()
				return
			}
			if api.IsUnauthorized(err) {
				log.Printf("Session rejected by server, logging out")
				ui.onLogout()
				return
			}
			ui.showNotification(ui.localization.Format(KeyFeedFailed, err.Error()), false)
		})
	}()
}

// openStories opens the viewer at the tapped story
func (ui *RootUI) openStories(index int) {
	stories := ui.services.Feed.Stories()
	if len(stories) == 0 {
		return
	}
	ui.viewer = NewStoryViewer(ui.window, ui.services.Images, stories, index, ui.services.Settings.GetAutoPlayStories())
	ui.viewer.SetOnClosed(func() { ui.viewer = nil })
	ui.viewer.Show()
}

// openCompose shows the create-post dialog, keeping an unsent draft
func (ui *RootUI) openCompose() {
	if ui.composeDialog == nil {
		ui.composeDialog = NewComposeDialog(ui.window, ui.services.Composer, ui.picker, ui.localization, ui.refreshFeed)
	}
	ui.composeDialog.Show()
}

func (ui *RootUI) onLike(postID model.ID) {
	viewer := ui.currentUserID()
	if viewer == "" {
		dialog.ShowInformation(ui.localization.GetText(KeyError), ui.localization.GetText(KeyNoProfile), ui.window)
		return
	}

	go func() {
		ctx, cancel := requestContext()
		defer cancel()

		err := ui.services.Feed.ToggleLike(ctx, postID, viewer)
		if err == nil || errors.Is(err, feed.ErrLikePending) {
			return
		}
		fyne.Do(func() {
			ui.showToast(ui.localization.Format(KeyActionFailed, err.Error()))
		})
	}()
}

// onComment shows the post's comments with an entry for a new one
func (ui *RootUI) onComment(postID model.ID) {
	l := ui.localization
	post, ok := ui.services.Feed.Post(postID)
	if !ok {
		return
	}

	lines := container.NewVBox()
	for _, c := range post.Comments {
		author := model.UnknownUserName
		if c.Author != nil {
			author = c.Author.DisplayName()
		}
		label := widget.NewLabel(author + ": " + c.Text)
		label.Wrapping = fyne.TextWrapWord
		lines.Add(label)
	}
	scroll := container.NewVScroll(lines)
	scroll.SetMinSize(fyne.NewSize(ComposeDialogWidth, ComposeDialogHeight/2))

	entry := widget.NewEntry()
	entry.SetPlaceHolder(l.GetText(KeyAddComment))

	d := dialog.NewCustomConfirm(l.GetText(KeyComment), l.GetText(KeyComment), l.GetText(KeyCancel),
		container.NewBorder(nil, entry, nil, nil, scroll),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			ui.submitComment(postID, entry.Text)
		}, ui.window)
	entry.OnSubmitted = func(string) {
		text := entry.Text
		d.Hide()
		ui.submitComment(postID, text)
	}
	d.Show()
	ui.window.Canvas().Focus(entry)
}

func (ui *RootUI) submitComment(postID model.ID, text string) {
	go func() {
		ctx, cancel := requestContext()
		defer cancel()

		_, err := ui.services.Feed.AddComment(ctx, postID, text)
		if err == nil || errors.Is(err, feed.ErrEmptyComment) {
			return
		}
		fyne.Do(func() {
			ui.showToast(ui.localization.Format(KeyActionFailed, err.Error()))
		})
	}()
}

// onShare uses the system share sheet, falling back to the clipboard
func (ui *RootUI) onShare(p *model.Post) {
	text := shareText(p, ui.services.API.BaseURL())
	if text == "" {
		return
	}

	err := platform.ShareText(text)
	if err == nil {
		return
	}
	if !errors.Is(err, platform.ErrShareUnsupported) {
		log.Printf("Share failed, copying instead: %v", err)
	}
	ui.app.Clipboard().SetContent(text)
	ui.showToast(ui.localization.GetText(KeyCopied))
}

// onOpenImage shows a server-hosted picture in the system viewer
func (ui *RootUI) onOpenImage(p *model.Post) {
	link := api.ResolveImageURL(ui.services.API.BaseURL(), p.Image)
	if !strings.HasPrefix(link, "http") {
		return
	}

	err := platform.OpenURL(link)
	if err == nil {
		return
	}
	log.Printf("Opening %s through the OS failed, trying Fyne: %v", link, err)
	u, parseErr := url.Parse(link)
	if parseErr == nil {
		err = ui.app.OpenURL(u)
	}
	if parseErr != nil || err != nil {
		ui.showToast(ui.localization.Format(KeyActionFailed, link))
	}
}
