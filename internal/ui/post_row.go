package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/ytget/scrolly/internal/download"
	"github.com/ytget/scrolly/internal/model"
)

// formatRelative renders a timestamp as "3 minutes ago"
func formatRelative(t, now time.Time) string {
	if t.IsZero() {
		return DashPlaceholder
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// likeText renders the like button label for the given viewer
func likeText(p *model.Post, viewer model.ID) string {
	icon := IconUnliked
	if p.LikedBy(viewer) {
		icon = IconLiked
	}
	return fmt.Sprintf("%s %d", icon, p.LikesCount())
}

// singleLine collapses line breaks so a value fits one label line
func singleLine(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s))
}

// PostRow renders one post in the feed
type PostRow struct {
	widget.BaseWidget

	post         *model.Post
	viewer       model.ID
	images       download.Downloader
	localization *Localization

	// UI components
	avatar      *canvas.Image
	authorLabel *widget.Label
	dateLabel   *widget.Label
	textLabel   *widget.Label
	picture     *canvas.Image
	likeBtn     *widget.Button
	commentBtn  *widget.Button
	shareBtn    *widget.Button
	openBtn     *widget.Button

	// Callbacks
	onLike    func(postID model.ID)
	onComment func(postID model.ID)
	onShare   func(post *model.Post)
	onOpen    func(post *model.Post)
}

// NewPostRow creates an empty post row; SetPost fills it
func NewPostRow(images download.Downloader, localization *Localization) *PostRow {
	r := &PostRow{
		images:       images,
		localization: localization,
	}
	r.ExtendBaseWidget(r)
	r.createUI()
	return r
}

// SetCallbacks sets the action callbacks
func (r *PostRow) SetCallbacks(onLike, onComment func(model.ID), onShare func(*model.Post)) {
	r.onLike = onLike
	r.onComment = onComment
	r.onShare = onShare
}

// SetOpenCallback sets the action for opening a server-hosted picture
func (r *PostRow) SetOpenCallback(onOpen func(*model.Post)) {
	r.onOpen = onOpen
}

// SetPost shows post as seen by viewer
func (r *PostRow) SetPost(post *model.Post, viewer model.ID) {
	r.post = post
	r.viewer = viewer
	r.updateFromPost()
}

// createUI creates the UI components
func (r *PostRow) createUI() {
	r.avatar = canvas.NewImageFromResource(AvatarPlaceholder())
	r.avatar.FillMode = canvas.ImageFillContain
	r.avatar.SetMinSize(fyne.NewSize(AvatarSize, AvatarSize))

	r.authorLabel = widget.NewLabel("")
	r.authorLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.authorLabel.Truncation = fyne.TextTruncateEllipsis

	r.dateLabel = widget.NewLabel("")
	r.dateLabel.Importance = widget.LowImportance
	r.dateLabel.Alignment = fyne.TextAlignTrailing

	r.textLabel = widget.NewLabel("")
	r.textLabel.Wrapping = fyne.TextWrapWord

	r.picture = canvas.NewImageFromResource(ImagePlaceholder())
	r.picture.FillMode = canvas.ImageFillContain
	r.picture.SetMinSize(fyne.NewSize(PostRowMinWidth, PostImageHeight))
	r.picture.Hide()

	r.likeBtn = widget.NewButton("", func() {
		if r.post != nil && r.onLike != nil {
			r.onLike(r.post.ID)
		}
	})
	r.likeBtn.Importance = widget.LowImportance

	r.commentBtn = widget.NewButton("", func() {
		if r.post != nil && r.onComment != nil {
			r.onComment(r.post.ID)
		}
	})
	r.commentBtn.Importance = widget.LowImportance

	r.shareBtn = widget.NewButton(IconShare, func() {
		if r.post != nil && r.onShare != nil {
			r.onShare(r.post)
		}
	})
	r.shareBtn.Importance = widget.LowImportance

	r.openBtn = widget.NewButton(IconOpen, func() {
		if r.post != nil && r.onOpen != nil {
			r.onOpen(r.post)
		}
	})
	r.openBtn.Importance = widget.LowImportance
	r.openBtn.Hide()
}

// updateFromPost updates UI components based on the post
func (r *PostRow) updateFromPost() {
	if r.post == nil {
		return
	}
	p := r.post

	r.authorLabel.SetText(singleLine(p.DisplayAuthor()))
	r.dateLabel.SetText(formatRelative(p.CreatedAt, time.Now()))

	text := strings.TrimSpace(p.Text)
	r.textLabel.SetText(text)
	if text == "" {
		r.textLabel.Hide()
	} else {
		r.textLabel.Show()
	}

	r.likeBtn.SetText(likeText(p, r.viewer))
	if p.LikedBy(r.viewer) {
		r.likeBtn.Importance = widget.DangerImportance
	} else {
		r.likeBtn.Importance = widget.LowImportance
	}
	r.likeBtn.Refresh()
	r.commentBtn.SetText(fmt.Sprintf("%s %d", IconComment, p.CommentsCount()))

	profilePic := ""
	if p.Author != nil {
		profilePic = p.Author.ProfilePic
	}
	r.setImage(r.avatar, profilePic, AvatarPlaceholder())

	if p.HasImage() {
		r.setImage(r.picture, p.Image, ImagePlaceholder())
		r.picture.Show()
	} else {
		r.picture.Hide()
	}
	if p.HasImage() && !p.HasInlineImage() {
		r.openBtn.Show()
	} else {
		r.openBtn.Hide()
	}
}

// setImage shows a cached image or the placeholder while it loads
func (r *PostRow) setImage(img *canvas.Image, ref string, placeholder fyne.Resource) {
	res := placeholder
	if ref != "" && r.images != nil {
		if cached, ok := r.images.Cached(ref); ok {
			res = cached
		} else {
			r.images.FetchAsync(ref)
		}
	}
	if img.Resource != res {
		img.Resource = res
		img.Refresh()
	}
}

// CreateRenderer implements fyne.Widget
func (r *PostRow) CreateRenderer() fyne.WidgetRenderer {
	header := container.NewBorder(nil, nil,
		container.NewHBox(r.avatar, r.authorLabel),
		r.dateLabel,
	)
	actions := container.NewHBox(r.likeBtn, r.commentBtn, r.shareBtn, r.openBtn)
	content := container.NewVBox(header, r.textLabel, r.picture, actions, widget.NewSeparator())
	return widget.NewSimpleRenderer(content)
}
