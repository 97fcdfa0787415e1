package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestAPIBaseURL(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "")
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if base := settings.GetAPIBaseURL(); base != DefaultAPIBaseURL {
		t.Errorf("Expected default base URL %s, got %s", DefaultAPIBaseURL, base)
	}

	// Test setting custom value
	settings.SetAPIBaseURL("https://abc.ngrok-free.app/")
	if base := settings.GetAPIBaseURL(); base != "https://abc.ngrok-free.app" {
		t.Errorf("Expected trimmed base URL, got %s", base)
	}

	// Invalid values reset to default
	settings.SetAPIBaseURL("not a url")
	if base := settings.GetAPIBaseURL(); base != DefaultAPIBaseURL {
		t.Errorf("Invalid base URL should reset to %s, got %s", DefaultAPIBaseURL, base)
	}
}

func TestAPIBaseURLEnvOverride(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://override.example.com/")
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetAPIBaseURL("https://stored.example.com")

	if base := settings.GetAPIBaseURL(); base != "https://override.example.com" {
		t.Errorf("Expected env override, got %s", base)
	}
}

func TestValidBaseURL(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"http://localhost:8080", true},
		{"https://x.ngrok-free.app", true},
		{"ftp://host", false},
		{"localhost:8080", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidBaseURL(tt.input); got != tt.expected {
				t.Errorf("ValidBaseURL(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	lang := settings.GetLanguage()
	if lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	// Test setting custom value
	settings.SetLanguage("en")

	retrievedLang := settings.GetLanguage()
	if retrievedLang != "en" {
		t.Errorf("Expected language 'en', got %s", retrievedLang)
	}
}

func TestLastEmail(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if email := settings.GetLastEmail(); email != "" {
		t.Errorf("Expected empty email, got %s", email)
	}
	settings.SetLastEmail("  ann@example.com ")
	if email := settings.GetLastEmail(); email != "ann@example.com" {
		t.Errorf("Expected trimmed email, got %q", email)
	}
}

func TestAutoPlayStories(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if !settings.GetAutoPlayStories() {
		t.Error("Auto play should default to true")
	}
	settings.SetAutoPlayStories(false)
	if settings.GetAutoPlayStories() {
		t.Error("Auto play should be false after disabling")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()

	expectedLangs := []string{"system", "en", "ru", "pt"}
	for _, lang := range expectedLangs {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}

	if len(options) != len(expectedLangs) {
		t.Errorf("Expected %d language options, got %d", len(expectedLangs), len(options))
	}
}
