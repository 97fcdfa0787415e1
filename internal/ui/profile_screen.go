package ui

import (
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/download"
	"github.com/ytget/scrolly/internal/model"
)

// tileTextLimit caps the text shown on a text-only profile tile
const tileTextLimit = 40

// ProfileScreen shows the logged in user and their posts
type ProfileScreen struct {
	images       download.Downloader
	localization *Localization

	profile *api.Profile
	avatar  *canvas.Image
	grid    *fyne.Container
	body    *fyne.Container
}

// NewProfileScreen creates an empty profile screen in the loading state
func NewProfileScreen(images download.Downloader, localization *Localization) *ProfileScreen {
	p := &ProfileScreen{
		images:       images,
		localization: localization,
	}

	loading := widget.NewLabel(localization.GetText(KeyLoadingProfile))
	loading.Alignment = fyne.TextAlignCenter
	p.body = container.NewVBox(widget.NewProgressBarInfinite(), loading)
	return p
}

// Container returns the screen's canvas object
func (p *ProfileScreen) Container() fyne.CanvasObject {
	return p.body
}

// SetProfile renders a loaded profile
func (p *ProfileScreen) SetProfile(profile *api.Profile) {
	p.profile = profile
	l := p.localization
	user := profile.User

	p.avatar = canvas.NewImageFromResource(AvatarPlaceholder())
	p.avatar.FillMode = canvas.ImageFillContain
	p.avatar.SetMinSize(fyne.NewSize(StoryBubbleSize*1.5, StoryBubbleSize*1.5))

	name := canvas.NewText(singleLine(user.DisplayName()), ColorTextMain)
	name.TextSize = 20
	name.TextStyle = fyne.TextStyle{Bold: true}
	name.Alignment = fyne.TextAlignCenter

	email := widget.NewLabel(user.Email)
	email.Alignment = fyne.TextAlignCenter
	email.Importance = widget.LowImportance

	// The API has no follower counts yet; they render as zero.
	stats := container.NewGridWithColumns(3,
		statBlock(len(profile.Posts), l.GetText(KeyPosts)),
		statBlock(0, l.GetText(KeyFollowers)),
		statBlock(0, l.GetText(KeyFollowing)),
	)

	section := widget.NewLabel(l.GetText(KeyPosts))
	section.TextStyle = fyne.TextStyle{Bold: true}

	p.grid = container.NewGridWithColumns(ProfileGridColumns)
	var posts fyne.CanvasObject = p.grid
	if len(profile.Posts) == 0 {
		empty := widget.NewLabel(IconCamera + "\n" + l.GetText(KeyNoPostsYet) + "\n" + l.GetText(KeyShareFirst))
		empty.Alignment = fyne.TextAlignCenter
		posts = empty
	}

	p.body.Objects = []fyne.CanvasObject{
		container.NewCenter(p.avatar), name, email, stats, widget.NewSeparator(), section, posts,
	}
	p.RefreshImages()
	p.body.Refresh()
}

// SetError renders a load failure with a retry action
func (p *ProfileScreen) SetError(onRetry func()) {
	l := p.localization
	message := widget.NewLabel(l.GetText(KeyProfileFailed))
	message.Alignment = fyne.TextAlignCenter
	message.Wrapping = fyne.TextWrapWord
	p.body.Objects = []fyne.CanvasObject{message, container.NewCenter(widget.NewButton(l.GetText(KeyRetry), onRetry))}
	p.body.Refresh()
}

// RefreshImages re-reads cached images after the loader delivered one
func (p *ProfileScreen) RefreshImages() {
	if p.profile == nil {
		return
	}

	if ref := p.profile.User.ProfilePic; ref != "" {
		if res, ok := p.images.Cached(ref); ok {
			p.avatar.Resource = res
			p.avatar.Refresh()
		} else {
			p.images.FetchAsync(ref)
		}
	}

	tiles := make([]fyne.CanvasObject, 0, len(p.profile.Posts))
	for i := range p.profile.Posts {
		tiles = append(tiles, p.tile(&p.profile.Posts[i]))
	}
	p.grid.Objects = tiles
	p.grid.Refresh()
}

func (p *ProfileScreen) tile(post *model.Post) fyne.CanvasObject {
	size := fyne.NewSize(ProfileTileSize, ProfileTileSize)
	if !post.HasImage() {
		label := widget.NewLabel(truncateName(post.Text, tileTextLimit))
		label.Wrapping = fyne.TextWrapWord
		bg := canvas.NewRectangle(ColorBorder)
		bg.SetMinSize(size)
		return container.NewStack(bg, label)
	}

	res := ImagePlaceholder()
	if cached, ok := p.images.Cached(post.Image); ok {
		res = cached
	} else {
		p.images.FetchAsync(post.Image)
	}
	img := canvas.NewImageFromResource(res)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(size)
	return img
}

func statBlock(value int, label string) fyne.CanvasObject {
	number := widget.NewLabel(fmt.Sprint(value))
	number.TextStyle = fyne.TextStyle{Bold: true}
	number.Alignment = fyne.TextAlignCenter
	caption := widget.NewLabel(label)
	caption.Alignment = fyne.TextAlignCenter
	caption.Importance = widget.LowImportance
	return container.NewVBox(number, caption)
}

// showProfile shows the logged in user's profile
func (ui *RootUI) showProfile() {
	ui.setContent(ui.buildProfile)
}

func (ui *RootUI) buildProfile() {
	l := ui.localization

	record := ui.currentSession()
	if record == nil || !record.HasToken() || record.UserID == "" {
		dialog.ShowInformation(l.GetText(KeyError), l.GetText(KeyNoProfile), ui.window)
		ui.showLogin(ui.services.Settings.GetLastEmail())
		return
	}

	backBtn := widget.NewButton(IconBack+" "+l.GetText(KeyBack), ui.showDashboard)
	backBtn.Importance = widget.LowImportance
	logoutBtn := widget.NewButton(l.GetText(KeyLogout), ui.onLogout)
	logoutBtn.Importance = widget.DangerImportance

	title := canvas.NewText(l.GetText(KeyProfile), ColorTextMain)
	title.TextSize = 18
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	header := container.NewStack(canvas.NewRectangle(ColorHeader),
		container.NewBorder(nil, nil, backBtn, logoutBtn, title))

	ui.profile = NewProfileScreen(ui.services.Images, l)
	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, container.NewVScroll(ui.profile.Container())))

	ui.loadProfile(ui.profile, record.Token, record.UserID)
}

// loadProfile fetches the profile off the UI goroutine
func (ui *RootUI) loadProfile(screen *ProfileScreen, token string, userID model.ID) {
	go func() {
		ctx, cancel := requestContext()
		defer cancel()

		profile, err := ui.services.API.Profile(ctx, token, userID)
		fyne.Do(func() {
			if ui.profile != screen {
				return
			}
			if err != nil {
				log.Printf("Error loading profile %s: %v", userID, err)
				if api.IsUnauthorized(err) {
					ui.onLogout()
					return
				}
				screen.SetError(func() { ui.showProfile() })
				return
			}
			log.Printf("Profile loaded: %s with %d posts", strings.TrimSpace(profile.User.DisplayName()), len(profile.Posts))
			screen.SetProfile(profile)
		})
	}()
}
