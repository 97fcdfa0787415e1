package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/compose"
	"github.com/ytget/scrolly/internal/compress"
	"github.com/ytget/scrolly/internal/model"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if got := formatRelative(time.Time{}, now); got != DashPlaceholder {
		t.Errorf("Expected placeholder for zero time, got %q", got)
	}
	if got := formatRelative(now.Add(-3*time.Minute), now); got != "3 minutes ago" {
		t.Errorf("Expected 3 minutes ago, got %q", got)
	}
}

func TestLikeText(t *testing.T) {
	p := &model.Post{Likes: []model.ID{"u1", "u2"}}
	if got := likeText(p, "u1"); got != IconLiked+" 2" {
		t.Errorf("Expected liked label, got %q", got)
	}
	if got := likeText(p, "u3"); got != IconUnliked+" 2" {
		t.Errorf("Expected unliked label, got %q", got)
	}
}

func TestSingleLineAndTruncate(t *testing.T) {
	if got := singleLine(" a\nb\r\nc\t"); got != "a b c" {
		t.Errorf("Expected collapsed line, got %q", got)
	}
	if got := truncateName("Ana", 10); got != "Ana" {
		t.Errorf("Expected short name unchanged, got %q", got)
	}
	if got := truncateName("Александра", 5); got != "Алек…" {
		t.Errorf("Expected rune-safe truncation, got %q", got)
	}
}

func TestShareText(t *testing.T) {
	tests := []struct {
		name     string
		post     model.Post
		expected string
	}{
		{"text only", model.Post{Text: " hello "}, "hello"},
		{"upload", model.Post{Text: "pic", Image: "uploads/a.jpg"}, "pic\nhttps://api.example.com/uploads/a.jpg"},
		{"inline image dropped", model.Post{Text: "pic", Image: "data:image/png;base64,AA"}, "pic"},
		{"image only", model.Post{Image: "https://cdn.example.com/b.png"}, "https://cdn.example.com/b.png"},
		{"empty", model.Post{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shareText(&tt.post, "https://api.example.com"); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSubmissionMessage(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"in progress", compose.ErrSubmissionInProgress, l.GetText(KeySubmissionPending)},
		{"validation", &compose.ValidationError{Message: compose.MsgEmptyDraft}, compose.MsgEmptyDraft},
		{"auth", &compose.AuthError{Message: compose.MsgNotLoggedIn}, compose.MsgNotLoggedIn},
		{"server", &api.ServerError{StatusCode: 500, Message: "db down"}, "Failed to create post: db down"},
		{"transport", &api.TransportError{Err: errors.New("connection refused")}, "Network error: connection refused"},
		{"other", errors.New("weird"), "Failed to create post: weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := submissionMessage(l, tt.err); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestReportsOutcome(t *testing.T) {
	tests := []struct {
		name      string
		startedIn uint64
		showing   uint64
		visible   bool
		expected  bool
	}{
		{"dialog still open", 1, 1, true, true},
		{"cancelled while sending", 1, 1, false, false},
		{"reopened after cancel", 1, 2, true, false},
		{"closed after reopening", 1, 2, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportsOutcome(tt.startedIn, tt.showing, tt.visible); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAuthFailureMessage(t *testing.T) {
	l := NewLocalization()

	if got := authFailureMessage(l, &compose.ValidationError{Message: compose.MsgMissingFields}, KeyLoginFailed); got != compose.MsgMissingFields {
		t.Errorf("Expected validation message, got %q", got)
	}
	if got := authFailureMessage(l, &api.ServerError{StatusCode: 401, Message: "Invalid credentials"}, KeyLoginFailed); got != "Invalid credentials" {
		t.Errorf("Expected server message, got %q", got)
	}
	if got := authFailureMessage(l, &api.ServerError{StatusCode: 500}, KeyRegisterFailed); got != l.GetText(KeyRegisterFailed) {
		t.Errorf("Expected fallback text, got %q", got)
	}
	if got := authFailureMessage(l, &api.ServerError{StatusCode: 502, Message: "HTTP 502"}, KeyLoginFailed); got != l.GetText(KeyLoginFailed) {
		t.Errorf("Expected fallback text for bare status, got %q", got)
	}
	if got := authFailureMessage(l, &api.TransportError{Err: errors.New("offline")}, KeyLoginFailed); got != l.GetText(KeyGenericError) {
		t.Errorf("Expected generic error, got %q", got)
	}
}

func TestDescribeImage(t *testing.T) {
	if describeImage(nil) != "" {
		t.Error("Expected empty description for nil image")
	}

	got := describeImage(&model.SelectedImage{FileName: "cat.jpg", RawByteSize: 2048, Width: 800, Height: 600})
	if got != "cat.jpg · 2.0 KiB · 800×600" {
		t.Errorf("Expected full description, got %q", got)
	}

	got = describeImage(&model.SelectedImage{RawByteSize: 10})
	if !strings.HasPrefix(got, model.DefaultImageFileName) || strings.Contains(got, "×") {
		t.Errorf("Expected default name without dimensions, got %q", got)
	}
}

func TestShrinkStatus(t *testing.T) {
	l := NewLocalization()
	got := ShrinkStatus(l, compress.Progress{Scale: 0.5, Bytes: 1024})
	expected := l.GetText(KeyShrinking) + " 50% · 1.0 KiB"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}
