package config

import (
	"net/url"
	"os"
	"strings"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyAPIBaseURL = "api_base_url"
	KeyLanguage   = "app_language"
	KeyLastEmail  = "last_login_email"
	KeyAutoStory  = "auto_play_stories"
)

// EnvAPIBaseURL overrides the stored API base URL when set
const EnvAPIBaseURL = "SCROLLY_API_URL"

// Default values
const (
	DefaultAPIBaseURL = "http://localhost:8080"
	DefaultLanguage   = "system"
	DefaultAutoStory  = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetAPIBaseURL returns the API origin. The environment override wins over
// the stored value.
func (s *Settings) GetAPIBaseURL() string {
	if env := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); env != "" {
		return strings.TrimRight(env, "/")
	}
	base := s.app.Preferences().String(KeyAPIBaseURL)
	if base == "" {
		s.SetAPIBaseURL(DefaultAPIBaseURL)
		return DefaultAPIBaseURL
	}
	return base
}

// SetAPIBaseURL stores the API origin. Values that are not absolute http(s)
// URLs reset it to the default.
func (s *Settings) SetAPIBaseURL(base string) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if !ValidBaseURL(base) {
		base = DefaultAPIBaseURL
	}
	s.app.Preferences().SetString(KeyAPIBaseURL, base)
}

// ValidBaseURL reports whether base is an absolute http(s) URL
func ValidBaseURL(base string) bool {
	u, err := url.Parse(base)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastEmail returns the email of the last successful login
func (s *Settings) GetLastEmail() string {
	return s.app.Preferences().String(KeyLastEmail)
}

// SetLastEmail remembers the email for the next login
func (s *Settings) SetLastEmail(email string) {
	s.app.Preferences().SetString(KeyLastEmail, strings.TrimSpace(email))
}

// GetAutoPlayStories returns whether stories advance automatically
func (s *Settings) GetAutoPlayStories() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoStory, DefaultAutoStory)
}

// SetAutoPlayStories sets whether stories advance automatically
func (s *Settings) SetAutoPlayStories(auto bool) {
	s.app.Preferences().SetBool(KeyAutoStory, auto)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
