package ui

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/compose"
	"github.com/ytget/scrolly/internal/compress"
	"github.com/ytget/scrolly/internal/config"
	"github.com/ytget/scrolly/internal/download"
	"github.com/ytget/scrolly/internal/feed"
	"github.com/ytget/scrolly/internal/model"
	"github.com/ytget/scrolly/internal/session"
)

// Services groups the backends the UI drives
type Services struct {
	Settings *config.Settings
	Session  *session.Store
	API      *api.Client
	Feed     *feed.Service
	Composer *compose.Orchestrator
	Images   download.Downloader
	Shrinker compress.Compressor
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	services     Services
	localization *Localization
	mobile       *MobileUI
	picker       *ImagePicker

	// current screen builder, re-run on language change
	current func()

	// Dashboard
	posts         []*model.Post
	feedList      *widget.List
	emptyLabel    *widget.Label
	stories       *StoriesStrip
	composeDialog *ComposeDialog
	viewer        *StoryViewer
	profile       *ProfileScreen

	// UI update debouncing
	refreshMutex   sync.Mutex
	refreshPending bool

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

// NewRootUI creates the main UI and shows the splash screen
func NewRootUI(window fyne.Window, app fyne.App, services Services) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(services.Settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		services:     services,
		localization: localization,
		mobile:       NewMobileUI(app),
	}
	ui.picker = NewImagePicker(window, services.Shrinker, localization)
	ui.picker.SetBusyCallback(ui.onPickerBusy)

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up service callbacks
	services.Feed.SetUpdateCallback(ui.onFeedUpdate)
	services.Images.SetUpdateCallback(ui.onImageLoaded)
	services.Shrinker.SetUpdateCallback(ui.onShrinkProgress)

	ui.createMenu()
	ui.showSplash()

	log.Printf("RootUI initialized (language %s, mobile %v)", localization.GetCurrentLanguage(), ui.mobile.IsMobileDevice())
	return ui
}

// setContent remembers how to rebuild the current screen and builds it
func (ui *RootUI) setContent(build func()) {
	ui.current = build
	ui.feedList = nil
	ui.stories = nil
	ui.profile = nil
	ui.notificationContainer = nil
	build()
}

// showSplash shows the logo for SplashDelay, then the dashboard when a
// session is stored and the login screen otherwise
func (ui *RootUI) showSplash() {
	title := canvas.NewText(ui.localization.GetText(KeyAppTitle), ColorAccent)
	title.TextSize = 42
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	tagline := widget.NewLabel(ui.localization.GetText(KeyTagline))
	tagline.Alignment = fyne.TextAlignCenter

	column := container.NewVBox(title, tagline)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(96, 96))
		logoImage.FillMode = canvas.ImageFillContain
		column = container.NewVBox(logoImage, title, tagline)
	}

	background := canvas.NewRectangle(ColorHeader)
	ui.window.SetContent(container.NewStack(background, container.NewCenter(column)))

	time.AfterFunc(SplashDelay, func() {
		fyne.Do(func() {
			if ui.services.Session.IsLoggedIn() {
				ui.showDashboard()
				return
			}
			ui.showLogin(ui.services.Settings.GetLastEmail())
		})
	})
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	logoutItem := fyne.NewMenuItem(ui.localization.GetText(KeyLogout), ui.onLogout)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	available := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(available[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, logoutItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.services.Settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts rebuilds the menu and the current screen in the new language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.createMenu()
	ui.composeDialog = nil
	if ui.current != nil {
		ui.setContent(ui.current)
	}
}

func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.services.Settings, ui.window, ui.localization, ui.onLanguageChange).Show()
}

// onLogout clears the session and everything cached for the user
func (ui *RootUI) onLogout() {
	if !ui.services.Session.IsLoggedIn() {
		return
	}
	ui.services.Session.Clear()
	ui.services.Composer.Cancel()
	ui.services.Feed.Reset()
	ui.composeDialog = nil
	log.Printf("User logged out")
	ui.showLogin(ui.services.Settings.GetLastEmail())
}

// currentSession returns the stored session or nil
func (ui *RootUI) currentSession() *model.SessionRecord {
	record, err := ui.services.Session.Get()
	if err != nil {
		log.Printf("Error reading session: %v", err)
		return nil
	}
	return record
}

// currentUserID returns the logged in user's id or ""
func (ui *RootUI) currentUserID() model.ID {
	if record := ui.currentSession(); record != nil {
		return record.UserID
	}
	return ""
}

// requestContext bounds UI-initiated requests
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), RequestTimeout)
}

// createNotificationPanel creates the status line under the header
func (ui *RootUI) createNotificationPanel() fyne.CanvasObject {
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewVBox(ui.notificationSpinner, ui.notificationLabel)
	ui.notificationContainer.Hide()
	return ui.notificationContainer
}

// showNotification displays a message in the notification panel
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationContainer == nil {
		return
	}
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	ui.notificationContainer.Hide()
}

// showToast shows a short-lived message near the top of the window
func (ui *RootUI) showToast(message string) {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	popup := widget.NewPopUp(container.NewPadded(label), ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	size := fyne.NewSize(min(ToastWidth, canvasSize.Width-2*ToastMargin), ToastHeight)
	popup.Resize(size)
	popup.Move(fyne.NewPos((canvasSize.Width-size.Width)/2, ToastMargin))
	popup.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(popup.Hide)
	})
}

// onFeedUpdate is called by the feed service after any change
func (ui *RootUI) onFeedUpdate() {
	fyne.Do(func() {
		ui.posts = ui.services.Feed.Posts()
		if ui.stories != nil {
			ui.stories.SetStories(ui.services.Feed.Stories())
		}
		if ui.feedList == nil {
			return
		}
		if len(ui.posts) == 0 && !ui.services.Feed.IsLoading() {
			ui.emptyLabel.Show()
		} else {
			ui.emptyLabel.Hide()
		}
		ui.feedList.Refresh()
	})
}

// onImageLoaded is called by the image loader for every finished fetch
func (ui *RootUI) onImageLoaded(ref string, res fyne.Resource, err error) {
	fyne.Do(func() {
		if ui.viewer != nil {
			ui.viewer.OnImageLoaded(ref, res, err)
		}
	})
	if err == nil {
		ui.scheduleRefresh()
	}
}

// onShrinkProgress mirrors compressor progress into the busy line
func (ui *RootUI) onShrinkProgress(progress compress.Progress) {
	if progress.Done {
		return
	}
	status := ShrinkStatus(ui.localization, progress)
	fyne.Do(func() { ui.onPickerBusy(true, status) })
}

// onPickerBusy shows shrink progress in the compose dialog or the panel
func (ui *RootUI) onPickerBusy(busy bool, status string) {
	if ui.composeDialog != nil {
		ui.composeDialog.SetBusy(busy, status)
		return
	}
	if busy {
		ui.showNotification(status, true)
	} else {
		ui.hideNotification()
	}
}

// scheduleRefresh coalesces image arrivals into one redraw per UIUpdateDebounce
func (ui *RootUI) scheduleRefresh() {
	ui.refreshMutex.Lock()
	defer ui.refreshMutex.Unlock()
	if ui.refreshPending {
		return
	}
	ui.refreshPending = true

	time.AfterFunc(UIUpdateDebounce, func() {
		ui.refreshMutex.Lock()
		ui.refreshPending = false
		ui.refreshMutex.Unlock()

		fyne.Do(func() {
			if ui.feedList != nil {
				ui.feedList.Refresh()
			}
			if ui.stories != nil {
				ui.stories.RefreshImages()
			}
			if ui.profile != nil {
				ui.profile.RefreshImages()
			}
		})
	})
}
