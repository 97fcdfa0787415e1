package ui

import (
	"errors"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/scrolly/internal/config"
)

var errInvalidBaseURL = errors.New("enter an http:// or https:// address")

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onLanguage   func(code string)

	// language labels shown in the select, keyed by label
	languageCodes map[string]string

	// UI components
	baseURLEntry   *widget.Entry
	languageSelect *widget.Select
	autoPlayCheck  *widget.Check
}

// NewSettingsDialog creates a new settings dialog. onLanguage runs when the
// saved language differs from the current one.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, localization *Localization, onLanguage func(code string)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		window:       window,
		localization: localization,
		onLanguage:   onLanguage,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.baseURLEntry = widget.NewEntry()
	sd.baseURLEntry.SetPlaceHolder(config.DefaultAPIBaseURL)
	sd.baseURLEntry.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" || config.ValidBaseURL(strings.TrimSpace(s)) {
			return nil
		}
		return errInvalidBaseURL
	}

	options := sd.settings.GetLanguageOptions()
	sd.languageCodes = make(map[string]string, len(options))
	labels := make([]string, 0, len(options))
	for code, label := range options {
		sd.languageCodes[label] = code
		labels = append(labels, label)
	}
	sort.Strings(labels)
	sd.languageSelect = widget.NewSelect(labels, nil)

	sd.autoPlayCheck = widget.NewCheck(l.GetText(KeyAutoPlay), nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyAPIServer)+":"),
		sd.baseURLEntry,
		widget.NewSeparator(),
		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
		sd.autoPlayCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.baseURLEntry.SetText(sd.settings.GetAPIBaseURL())
	current := sd.settings.GetLanguage()
	for label, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(label)
		}
	}
	sd.autoPlayCheck.SetChecked(sd.settings.GetAutoPlayStories())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	l := sd.localization
	message := l.GetText(KeySettingsSaved)

	base := strings.TrimSpace(sd.baseURLEntry.Text)
	if base != "" && base != sd.settings.GetAPIBaseURL() && sd.baseURLEntry.Validate() == nil {
		sd.settings.SetAPIBaseURL(base)
		message += "\n" + l.GetText(KeyRestartRequired)
	}

	sd.settings.SetAutoPlayStories(sd.autoPlayCheck.Checked)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok && code != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(code)
		if sd.onLanguage != nil {
			sd.onLanguage(code)
		}
	}

	dialog.ShowInformation(l.GetText(KeySettings), message, sd.window)
}
