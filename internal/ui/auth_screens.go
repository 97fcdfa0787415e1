package ui

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/compose"
	"github.com/ytget/scrolly/internal/platform"
)

// authFailureMessage picks the text for a failed login or registration:
// the server's message when it sent one, fallbackKey for other non-2xx
// responses, and a generic retry hint for network and parse failures.
func authFailureMessage(l *Localization, err error, fallbackKey string) string {
	var (
		validation *compose.ValidationError
		server     *api.ServerError
	)
	switch {
	case errors.As(err, &validation):
		return validation.Message
	case errors.As(err, &server):
		if server.Message == "" || server.Message == fmt.Sprintf("HTTP %d", server.StatusCode) {
			return l.GetText(fallbackKey)
		}
		return server.Message
	default:
		return l.GetText(KeyGenericError)
	}
}

// screenHeader renders the title and subtitle of the auth screens
func screenHeader(title, subtitle string) fyne.CanvasObject {
	heading := canvas.NewText(title, ColorTextMain)
	heading.TextSize = 24
	heading.TextStyle = fyne.TextStyle{Bold: true}
	heading.Alignment = fyne.TextAlignCenter

	sub := widget.NewLabel(subtitle)
	sub.Importance = widget.LowImportance
	sub.Alignment = fyne.TextAlignCenter
	sub.Wrapping = fyne.TextWrapWord

	return container.NewVBox(heading, sub)
}

// showLogin shows the sign-in screen, pre-filling email
func (ui *RootUI) showLogin(email string) {
	ui.setContent(func() { ui.buildLogin(email) })
}

func (ui *RootUI) buildLogin(email string) {
	l := ui.localization

	emailEntry := ui.mobile.CreateMobileEntry(l.GetText(KeyEmail))
	emailEntry.SetText(email)
	passwordEntry := ui.mobile.CreatePasswordEntry(l.GetText(KeyPassword))

	submit := func() {
		ui.onLogin(emailEntry.Text, passwordEntry.Text)
	}
	passwordEntry.OnSubmitted = func(string) { submit() }
	signIn := ui.mobile.CreateMobileButton(l.GetText(KeySignIn), submit)

	registerLink := widget.NewButton(l.GetText(KeyCreateAccount), func() {
		ui.showRegister()
	})
	registerLink.Importance = widget.LowImportance

	form := container.NewVBox(
		screenHeader(l.GetText(KeyWelcomeBack), l.GetText(KeySignInSubtitle)),
		emailEntry,
		passwordEntry,
		signIn,
		widget.NewSeparator(),
		container.NewCenter(container.NewHBox(widget.NewLabel(l.GetText(KeyNoAccount)), registerLink)),
	)

	background := canvas.NewRectangle(ColorBackground)
	ui.window.SetContent(container.NewStack(background, ui.mobile.CenteredForm(form)))
	if email == "" {
		ui.window.Canvas().Focus(emailEntry)
	} else {
		ui.window.Canvas().Focus(passwordEntry)
	}
}

// onLogin validates credentials and signs in off the UI goroutine
func (ui *RootUI) onLogin(email, password string) {
	l := ui.localization

	req, err := compose.LoginRequest(email, password)
	if err != nil {
		dialog.ShowInformation(l.GetText(KeyError), authFailureMessage(l, err, KeyLoginFailed), ui.window)
		return
	}

	go func() {
		ctx, cancel := requestContext()
		defer cancel()

		resp, err := ui.services.API.Login(ctx, req)
		if err == nil {
			err = ui.services.Session.Set(resp.User.ID, resp.Token, resp.User)
		}

		fyne.Do(func() {
			if err != nil {
				log.Printf("Login failed for %s: %v", req.Email, err)
				dialog.ShowInformation(l.GetText(KeyError), authFailureMessage(l, err, KeyLoginFailed), ui.window)
				return
			}

			ui.services.Settings.SetLastEmail(req.Email)
			log.Printf("Logged in as %s", resp.User.DisplayName())
			dialog.ShowInformation(l.GetText(KeySuccess), l.GetText(KeyLoginSuccessful), ui.window)
			ui.showDashboard()
		})
	}()
}

// showRegister shows the sign-up screen
func (ui *RootUI) showRegister() {
	ui.setContent(ui.buildRegister)
}

func (ui *RootUI) buildRegister() {
	l := ui.localization
	form := &compose.RegistrationForm{}

	avatarSize := fyne.NewSize(StoryBubbleSize*1.5, StoryBubbleSize*1.5)
	avatar := canvas.NewImageFromResource(AvatarPlaceholder())
	avatar.FillMode = canvas.ImageFillContain
	avatar.SetMinSize(avatarSize)
	avatarBox := container.NewCenter(avatar)
	photoLabel := widget.NewLabel("")
	photoLabel.Alignment = fyne.TextAlignCenter
	photoLabel.Truncation = fyne.TextTruncateEllipsis
	photoLabel.Hide()

	onAttached := func(picked *platform.PickedImage) {
		if uri, err := storage.ParseURI(picked.Image.URI); err == nil {
			preview := canvas.NewImageFromURI(uri)
			preview.FillMode = canvas.ImageFillContain
			preview.SetMinSize(avatarSize)
			avatarBox.Objects = []fyne.CanvasObject{preview}
			avatarBox.Refresh()
		}
		photoLabel.SetText(describeImage(&picked.Image))
		photoLabel.Show()
	}
	photoBtn := widget.NewButton(IconCamera+" "+l.GetText(KeyAddPhoto), func() {
		ui.picker.Pick(form.AttachImage, onAttached)
	})
	photoBtn.Importance = widget.LowImportance

	nameEntry := ui.mobile.CreateMobileEntry(l.GetText(KeyFullName))
	emailEntry := ui.mobile.CreateMobileEntry(l.GetText(KeyEmail))
	passwordEntry := ui.mobile.CreatePasswordEntry(l.GetText(KeyPassword))

	submit := func() {
		form.Name = nameEntry.Text
		form.Email = emailEntry.Text
		form.Password = passwordEntry.Text
		ui.onRegister(form)
	}
	passwordEntry.OnSubmitted = func(string) { submit() }

	loginLink := widget.NewButton(l.GetText(KeySignIn), func() {
		ui.showLogin(emailEntry.Text)
	})
	loginLink.Importance = widget.LowImportance

	content := container.NewVBox(
		screenHeader(l.GetText(KeyJoinUs), l.GetText(KeyJoinSubtitle)),
		avatarBox,
		photoLabel,
		container.NewCenter(photoBtn),
		nameEntry,
		emailEntry,
		passwordEntry,
		ui.mobile.CreateMobileButton(l.GetText(KeyCreateAccount), submit),
		widget.NewSeparator(),
		container.NewCenter(container.NewHBox(widget.NewLabel(l.GetText(KeyHaveAccount)), loginLink)),
	)

	background := canvas.NewRectangle(ColorBackground)
	ui.window.SetContent(container.NewStack(background, container.NewVScroll(ui.mobile.CenteredForm(content))))
}

// onRegister validates the form and creates the account off the UI goroutine
func (ui *RootUI) onRegister(form *compose.RegistrationForm) {
	l := ui.localization

	req, err := form.Request()
	if err != nil {
		dialog.ShowInformation(l.GetText(KeyError), authFailureMessage(l, err, KeyRegisterFailed), ui.window)
		return
	}

	go func() {
		ctx, cancel := requestContext()
		defer cancel()

		_, err := ui.services.API.Register(ctx, req)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Registration failed for %s: %v", req.Email, err)
				dialog.ShowInformation(l.GetText(KeyError), authFailureMessage(l, err, KeyRegisterFailed), ui.window)
				return
			}

			ui.services.Settings.SetLastEmail(req.Email)
			dialog.ShowInformation(l.GetText(KeySuccess), l.GetText(KeyRegisterSuccessful), ui.window)
			ui.showLogin(req.Email)
		})
	}()
}
