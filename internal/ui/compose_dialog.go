package ui

import (
	"context"
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/compose"
)

// submissionMessage maps a failed submission to the text shown to the user.
// Local validation and session problems show their message as is; server
// and network failures get the "Failed to create post" and "Network error"
// prefixes.
func submissionMessage(l *Localization, err error) string {
	var (
		validation *compose.ValidationError
		auth       *compose.AuthError
		server     *api.ServerError
		transport  *api.TransportError
	)
	switch {
	case errors.Is(err, compose.ErrSubmissionInProgress):
		return l.GetText(KeySubmissionPending)
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &auth):
		return auth.Message
	case errors.As(err, &server):
		return l.Format(KeyPostFailed, server.Message)
	case errors.As(err, &transport):
		return l.Format(KeyNetworkError, transport.Error())
	default:
		return l.Format(KeyPostFailed, err.Error())
	}
}

// reportsOutcome reports whether a finished submission should be shown to
// the user. Submissions started in an earlier showing of the dialog, or
// cancelled by closing it, finish silently.
func reportsOutcome(startedIn, showing uint64, visible bool) bool {
	return visible && startedIn == showing
}

// ComposeDialog is the "Create Post" modal bound to a compose.Orchestrator
type ComposeDialog struct {
	window       fyne.Window
	composer     *compose.Orchestrator
	picker       *ImagePicker
	localization *Localization
	dialog       dialog.Dialog
	onPosted     func()

	// showing counts Show calls so results can be matched to the showing
	// that started them
	showing uint64
	visible bool

	// UI components
	textEntry  *widget.Entry
	imageLabel *widget.Label
	statusBar  *widget.ProgressBarInfinite
	statusText *widget.Label
	photoBtn   *widget.Button
	removeBtn  *widget.Button
	postBtn    *widget.Button
	cancelBtn  *widget.Button
}

// NewComposeDialog creates the dialog; onPosted runs after a successful post
func NewComposeDialog(window fyne.Window, composer *compose.Orchestrator, picker *ImagePicker, localization *Localization, onPosted func()) *ComposeDialog {
	cd := &ComposeDialog{
		window:       window,
		composer:     composer,
		picker:       picker,
		localization: localization,
		onPosted:     onPosted,
	}
	cd.createUI()
	composer.SetUpdateCallback(func(s compose.Snapshot) {
		fyne.Do(func() { cd.render(s) })
	})
	return cd
}

// Show opens the dialog with the current draft
func (cd *ComposeDialog) Show() {
	cd.showing++
	cd.visible = true
	cd.render(compose.Snapshot{State: cd.composer.State(), Draft: cd.composer.Draft()})
	cd.dialog.Show()
	cd.window.Canvas().Focus(cd.textEntry)
}

// SetBusy shows a status line while a background step runs
func (cd *ComposeDialog) SetBusy(busy bool, status string) {
	cd.statusText.SetText(status)
	if busy {
		cd.statusBar.Show()
		cd.statusText.Show()
		cd.photoBtn.Disable()
		cd.postBtn.Disable()
		return
	}
	cd.statusBar.Hide()
	cd.statusText.Hide()
	cd.render(compose.Snapshot{State: cd.composer.State(), Draft: cd.composer.Draft()})
}

// createUI creates the compose dialog UI
func (cd *ComposeDialog) createUI() {
	l := cd.localization

	cd.textEntry = widget.NewMultiLineEntry()
	cd.textEntry.SetPlaceHolder(l.GetText(KeyWhatsOnYourMind))
	cd.textEntry.Wrapping = fyne.TextWrapWord
	cd.textEntry.SetMinRowsVisible(4)
	cd.textEntry.OnChanged = cd.composer.SetText

	cd.imageLabel = widget.NewLabel("")
	cd.imageLabel.Truncation = fyne.TextTruncateEllipsis
	cd.imageLabel.Hide()

	cd.statusBar = widget.NewProgressBarInfinite()
	cd.statusBar.Hide()
	cd.statusText = widget.NewLabel("")
	cd.statusText.Hide()

	cd.photoBtn = widget.NewButton(IconPhoto+" "+l.GetText(KeyAddPhoto), cd.onPickPhoto)
	cd.removeBtn = widget.NewButton(IconClose, cd.composer.ClearImage)
	cd.removeBtn.Importance = widget.LowImportance
	cd.removeBtn.Hide()

	cd.cancelBtn = widget.NewButton(l.GetText(KeyCancel), cd.onCancel)
	cd.postBtn = widget.NewButton(l.GetText(KeyPost), cd.onPost)
	cd.postBtn.Importance = widget.HighImportance

	content := container.NewVBox(
		cd.textEntry,
		container.NewBorder(nil, nil, cd.photoBtn, cd.removeBtn, cd.imageLabel),
		cd.statusBar,
		cd.statusText,
		container.NewGridWithColumns(2, cd.cancelBtn, cd.postBtn),
	)

	cd.dialog = dialog.NewCustomWithoutButtons(l.GetText(KeyCreatePost), content, cd.window)
	cd.dialog.Resize(fyne.NewSize(ComposeDialogWidth, ComposeDialogHeight))
}

// render mirrors the orchestrator snapshot into the widgets
func (cd *ComposeDialog) render(s compose.Snapshot) {
	if cd.textEntry.Text != s.Draft.Text {
		cd.textEntry.SetText(s.Draft.Text)
	}

	if s.Draft.HasImage() {
		cd.imageLabel.SetText(describeImage(s.Draft.Image))
		cd.imageLabel.Show()
		cd.removeBtn.Show()
	} else {
		cd.imageLabel.Hide()
		cd.removeBtn.Hide()
	}

	if s.State.IsActive() {
		cd.statusText.SetText(cd.localization.GetText(KeySubmissionPending))
		cd.statusText.Show()
		cd.statusBar.Show()
		cd.textEntry.Disable()
		cd.photoBtn.Disable()
		cd.removeBtn.Disable()
		cd.postBtn.Disable()
		return
	}

	cd.statusText.Hide()
	cd.statusBar.Hide()
	cd.textEntry.Enable()
	cd.photoBtn.Enable()
	cd.removeBtn.Enable()
	if s.Draft.Submittable() {
		cd.postBtn.Enable()
	} else {
		cd.postBtn.Disable()
	}
}

func (cd *ComposeDialog) onPickPhoto() {
	cd.picker.Pick(cd.composer.AttachImage, nil)
}

func (cd *ComposeDialog) onCancel() {
	cd.composer.Cancel()
	cd.hide()
}

func (cd *ComposeDialog) hide() {
	cd.visible = false
	cd.dialog.Hide()
}

// onPost runs the submission off the UI goroutine
func (cd *ComposeDialog) onPost() {
	startedIn := cd.showing
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), RequestTimeout)
		defer cancel()

		result := cd.composer.Submit(ctx)
		fyne.Do(func() { cd.onResult(startedIn, result) })
	}()
}

func (cd *ComposeDialog) onResult(startedIn uint64, result compose.Result) {
	l := cd.localization
	report := reportsOutcome(startedIn, cd.showing, cd.visible)

	if result.OK() {
		log.Printf("Post submitted (%s)", result.AttemptID)
		if report {
			cd.hide()
			dialog.ShowInformation(l.GetText(KeySuccess), l.GetText(KeyPostCreated), cd.window)
		}
		if cd.onPosted != nil {
			cd.onPosted()
		}
		return
	}

	log.Printf("Post submission %s failed in state %s: %v", result.AttemptID, result.State, result.Err)
	if report {
		dialog.ShowInformation(l.GetText(KeyError), submissionMessage(l, result.Err), cd.window)
	}
}
