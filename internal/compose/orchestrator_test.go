package compose

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ytget/scrolly/internal/api"
	"github.com/ytget/scrolly/internal/model"
)

type fakeSession struct {
	record *model.SessionRecord
	err    error
}

func (f *fakeSession) Get() (*model.SessionRecord, error) {
	return f.record, f.err
}

type fakeSender struct {
	mu    sync.Mutex
	calls int
	token string
	last  model.EncodedRequest
	err   error
}

func (f *fakeSender) CreatePost(_ context.Context, token string, req model.EncodedRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.token = token
	f.last = req
	return f.err
}

func loggedIn() *fakeSession {
	return &fakeSession{record: &model.SessionRecord{UserID: "u1", Token: "tok"}}
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	sender := &fakeSender{}
	o := NewOrchestrator(loggedIn(), sender)

	var states []model.SubmissionState
	o.SetUpdateCallback(func(s Snapshot) {
		states = append(states, s.State)
	})

	o.SetText("hello")
	states = nil

	result := o.Submit(context.Background())
	if !result.OK() || result.Err != nil {
		t.Fatalf("Submit() = %+v, expected success", result)
	}
	if result.AttemptID == "" {
		t.Error("AttemptID should be set")
	}

	expected := []model.SubmissionState{
		model.SubmissionValidating,
		model.SubmissionAuthenticating,
		model.SubmissionEncoding,
		model.SubmissionSending,
		model.SubmissionSucceeded,
	}
	if len(states) != len(expected) {
		t.Fatalf("states = %v, expected %v", states, expected)
	}
	for i := range expected {
		if states[i] != expected[i] {
			t.Errorf("states[%d] = %s, expected %s", i, states[i], expected[i])
		}
	}

	d := o.Draft()
	if d.Text != "" || d.Image != nil {
		t.Errorf("draft after success = %+v, expected empty", d)
	}
	if sender.calls != 1 || sender.token != "tok" {
		t.Errorf("sender calls = %d token = %q", sender.calls, sender.token)
	}
	if sender.last.Kind != model.PayloadJSON {
		t.Errorf("Kind = %s, expected json", sender.last.Kind)
	}
}

func TestSubmitEmptyDraft(t *testing.T) {
	sender := &fakeSender{}
	o := NewOrchestrator(loggedIn(), sender)
	o.SetText("   ")

	result := o.Submit(context.Background())
	if result.State != model.SubmissionFailed || !IsValidation(result.Err) {
		t.Fatalf("Submit() = %+v, expected validation failure", result)
	}
	if result.Err.Error() != MsgEmptyDraft {
		t.Errorf("message = %q", result.Err.Error())
	}
	if sender.calls != 0 {
		t.Errorf("sender calls = %d, expected 0", sender.calls)
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	tests := []struct {
		name    string
		session *fakeSession
	}{
		{"no record", &fakeSession{}},
		{"no user id", &fakeSession{record: &model.SessionRecord{Token: "tok"}}},
		{"read error", &fakeSession{err: errors.New("storage unavailable")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			o := NewOrchestrator(tt.session, sender)
			o.SetText("valid text")

			result := o.Submit(context.Background())
			if result.State != model.SubmissionFailed || !IsAuth(result.Err) {
				t.Fatalf("Submit() = %+v, expected auth failure", result)
			}
			if sender.calls != 0 {
				t.Errorf("sender calls = %d, expected 0", sender.calls)
			}
			if o.Draft().Text != "valid text" {
				t.Error("draft should be preserved after auth failure")
			}
		})
	}
}

func TestSubmitWithoutTokenSendsAnonymously(t *testing.T) {
	sender := &fakeSender{}
	o := NewOrchestrator(&fakeSession{record: &model.SessionRecord{UserID: "u1"}}, sender)
	o.SetText("hi")

	if result := o.Submit(context.Background()); !result.OK() {
		t.Fatalf("Submit() = %+v", result)
	}
	if sender.token != "" {
		t.Errorf("token = %q, expected empty", sender.token)
	}
}

func TestSubmitServerErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"structured", `{"message":"server exploded"}`, "server exploded"},
		{"plain text", "oops", "oops"},
		{"empty", "", "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL, HTTPClient: server.Client()})
			if err != nil {
				t.Fatal(err)
			}

			o := NewOrchestrator(loggedIn(), client)
			o.SetText("draft text")
			img := model.SelectedImage{URI: "file:///a.jpg", MimeType: "image/jpeg", RawByteSize: 10}
			if err := o.AttachImage(img, "data:image/jpeg;base64,AAAA"); err != nil {
				t.Fatal(err)
			}

			result := o.Submit(context.Background())
			var serverErr *api.ServerError
			if !errors.As(result.Err, &serverErr) {
				t.Fatalf("Submit() error = %v, expected *api.ServerError", result.Err)
			}
			if result.Err.Error() != tt.expected {
				t.Errorf("error text = %q, expected %q", result.Err.Error(), tt.expected)
			}

			d := o.Draft()
			if d.Text != "draft text" || d.Image == nil || d.Image.URI != "file:///a.jpg" {
				t.Errorf("draft after failure = %+v, expected unchanged", d)
			}
			if o.State() != model.SubmissionFailed {
				t.Errorf("State() = %s, expected Failed", o.State())
			}
		})
	}
}

func TestSubmitTransportErrorPreservesDraft(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client, err := api.NewClient(api.ClientConfig{BaseURL: baseURL})
	if err != nil {
		t.Fatal(err)
	}

	o := NewOrchestrator(loggedIn(), client)
	o.SetText("keep me")

	result := o.Submit(context.Background())
	if !api.IsTransport(result.Err) {
		t.Fatalf("Submit() error = %v, expected transport error", result.Err)
	}
	if o.Draft().Text != "keep me" {
		t.Error("draft should be preserved after transport failure")
	}
	if o.LastError() != result.Err {
		t.Error("LastError() should report the failure")
	}
}

func TestAttachImageRejectedKeepsPrevious(t *testing.T) {
	o := NewOrchestrator(loggedIn(), &fakeSender{})

	small := model.SelectedImage{URI: "file:///small.jpg", RawByteSize: 1000}
	if err := o.AttachImage(small, "data:image/jpeg;base64,AA"); err != nil {
		t.Fatal(err)
	}

	big := model.SelectedImage{URI: "file:///big.jpg", RawByteSize: 5 * 1024 * 1024}
	if err := o.AttachImage(big, "data:image/jpeg;base64,BB"); !IsValidation(err) {
		t.Fatalf("AttachImage() error = %v, expected validation error", err)
	}

	d := o.Draft()
	if d.Image == nil || d.Image.URI != "file:///small.jpg" || d.ImageDataURI != "data:image/jpeg;base64,AA" {
		t.Errorf("draft image = %+v, expected previous image kept", d.Image)
	}
}

func TestImageOnlyDraftIsSubmittable(t *testing.T) {
	sender := &fakeSender{}
	o := NewOrchestrator(loggedIn(), sender)
	if err := o.AttachImage(model.SelectedImage{URI: "file:///a.jpg", RawByteSize: 10}, "data:image/jpeg;base64,AA"); err != nil {
		t.Fatal(err)
	}

	if result := o.Submit(context.Background()); !result.OK() {
		t.Fatalf("Submit() = %+v", result)
	}
	if o.Draft().Image != nil {
		t.Error("image should be cleared after success")
	}
}

func TestLargeImageUsesMultipart(t *testing.T) {
	sender := &fakeSender{}
	o := NewOrchestrator(loggedIn(), sender)
	o.SetThreshold(10)
	if err := o.AttachImage(model.SelectedImage{URI: "file:///a.jpg", RawByteSize: 10}, "data:image/jpeg;base64,AAAAAAAA"); err != nil {
		t.Fatal(err)
	}

	o.Submit(context.Background())
	if sender.last.Kind != model.PayloadMultipart {
		t.Errorf("Kind = %s, expected multipart", sender.last.Kind)
	}
	if sender.last.Form.AuthorID != "u1" {
		t.Errorf("AuthorID = %q", sender.last.Form.AuthorID)
	}
}

func TestEditAfterFailureReturnsToIdle(t *testing.T) {
	o := NewOrchestrator(&fakeSession{}, &fakeSender{})
	o.SetText("x")
	o.Submit(context.Background())
	if o.State() != model.SubmissionFailed {
		t.Fatalf("State() = %s, expected Failed", o.State())
	}

	o.SetText("y")
	if o.State() != model.SubmissionIdle {
		t.Errorf("State() = %s, expected Idle", o.State())
	}
	if o.LastError() != nil {
		t.Error("LastError() should be cleared")
	}
}

func TestCancelClearsDraft(t *testing.T) {
	o := NewOrchestrator(loggedIn(), &fakeSender{})
	o.SetText("x")
	_ = o.AttachImage(model.SelectedImage{RawByteSize: 1}, "data:image/jpeg;base64,AA")

	o.Cancel()
	d := o.Draft()
	if d.Text != "" || d.Image != nil {
		t.Errorf("draft after Cancel = %+v", d)
	}
	if o.State() != model.SubmissionIdle {
		t.Errorf("State() = %s, expected Idle", o.State())
	}
}

type blockingSender struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingSender) CreatePost(context.Context, string, model.EncodedRequest) error {
	close(b.started)
	<-b.release
	return nil
}

func TestSubmitWhileActive(t *testing.T) {
	sender := &blockingSender{started: make(chan struct{}), release: make(chan struct{})}
	o := NewOrchestrator(loggedIn(), sender)
	o.SetText("x")

	done := make(chan Result)
	go func() { done <- o.Submit(context.Background()) }()
	<-sender.started

	if result := o.Submit(context.Background()); !errors.Is(result.Err, ErrSubmissionInProgress) {
		t.Errorf("second Submit() error = %v, expected ErrSubmissionInProgress", result.Err)
	}

	close(sender.release)
	if result := <-done; !result.OK() {
		t.Errorf("first Submit() = %+v, expected success", result)
	}
}
