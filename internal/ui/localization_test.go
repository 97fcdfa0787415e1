package ui

import (
	"strings"
	"testing"
)

func TestLocalizationDefaultsToEnglish(t *testing.T) {
	l := NewLocalization()
	if l.GetCurrentLanguage() != LangEN {
		t.Errorf("Expected %s, got %s", LangEN, l.GetCurrentLanguage())
	}
	if got := l.GetText(KeySettings); got != "Settings" {
		t.Errorf("Expected Settings, got %q", got)
	}
}

func TestSetLanguageIgnoresUnknown(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage(LangRU)
	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != LangRU {
		t.Errorf("Expected unknown language to be ignored, got %s", l.GetCurrentLanguage())
	}
}

func TestGetTextFallbacks(t *testing.T) {
	l := NewLocalization()
	l.SetLanguage(LangPT)

	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Expected key itself for unknown key, got %q", got)
	}

	delete(l.texts[LangPT], KeyRetry)
	if got := l.GetText(KeyRetry); got != l.texts[LangEN][KeyRetry] {
		t.Errorf("Expected English fallback, got %q", got)
	}
}

func TestFormat(t *testing.T) {
	l := NewLocalization()
	got := l.Format(KeyPostFailed, "boom")
	if got != "Failed to create post: boom" {
		t.Errorf("Expected formatted message, got %q", got)
	}
}

func TestAllLanguagesHaveEveryKey(t *testing.T) {
	l := NewLocalization()
	english := l.texts[LangEN]

	for code := range l.GetAvailableLanguages() {
		texts, ok := l.texts[code]
		if !ok {
			t.Errorf("No texts for %s", code)
			continue
		}
		for key, en := range english {
			text, found := texts[key]
			if !found {
				t.Errorf("%s: missing key %s", code, key)
				continue
			}
			if strings.Count(text, "%") != strings.Count(en, "%") {
				t.Errorf("%s: key %s has different format verbs than English", code, key)
			}
		}
	}
}

func TestMatchLanguage(t *testing.T) {
	texts := NewLocalization().texts

	tests := []struct {
		name     string
		locales  []string
		expected string
	}{
		{"empty", nil, LangEN},
		{"region stripped", []string{"pt-BR"}, LangPT},
		{"underscore", []string{"ru_RU"}, LangRU},
		{"first supported wins", []string{"de-DE", "ru-RU", "pt-PT"}, LangRU},
		{"unsupported only", []string{"ja-JP", "de"}, LangEN},
		{"upper case", []string{"PT"}, LangPT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchLanguage(tt.locales, texts); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
