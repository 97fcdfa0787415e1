package compose

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ytget/scrolly/internal/model"
)

func dataURIOfLength(n int) string {
	const prefix = "data:image/jpeg;base64,"
	return prefix + strings.Repeat("A", n-len(prefix))
}

func decodePayload(t *testing.T, req model.EncodedRequest) model.PostPayload {
	t.Helper()
	var p model.PostPayload
	if err := json.Unmarshal(req.JSON, &p); err != nil {
		t.Fatalf("decode JSON body: %v", err)
	}
	return p
}

func TestEncodePostTextOnly(t *testing.T) {
	req := EncodePost(model.PostDraft{Text: "  hello  "}, "u1", MultipartThreshold)

	if req.Kind != model.PayloadJSON {
		t.Fatalf("Kind = %s, expected json", req.Kind)
	}
	if req.ContentType() != "application/json" {
		t.Errorf("ContentType() = %s", req.ContentType())
	}
	if req.Form != nil {
		t.Error("Form should be nil for JSON encoding")
	}

	p := decodePayload(t, req)
	if p.Text != "hello" || p.ImageURL != "" || p.AuthorID != "u1" {
		t.Errorf("payload = %+v", p)
	}
	if !strings.Contains(string(req.JSON), `"imageUrl":""`) {
		t.Errorf("body %s should carry an empty imageUrl", req.JSON)
	}
}

func TestEncodePostThreshold(t *testing.T) {
	img := &model.SelectedImage{URI: "file:///a.jpg", MimeType: "image/jpeg"}

	tests := []struct {
		name     string
		length   int
		expected model.PayloadKind
	}{
		{"small", 5_000, model.PayloadJSON},
		{"exactly threshold", 1_000_000, model.PayloadJSON},
		{"one over threshold", 1_000_001, model.PayloadMultipart},
		{"large", 1_500_000, model.PayloadMultipart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri := dataURIOfLength(tt.length)
			req := EncodePost(model.PostDraft{Text: "x", Image: img, ImageDataURI: uri}, "u1", MultipartThreshold)
			if req.Kind != tt.expected {
				t.Fatalf("Kind = %s, expected %s", req.Kind, tt.expected)
			}
			if tt.expected == model.PayloadJSON {
				if p := decodePayload(t, req); p.ImageURL != uri {
					t.Error("imageUrl should carry the data URI")
				}
			}
		})
	}
}

func TestEncodePostMultipartFields(t *testing.T) {
	draft := model.PostDraft{
		Text:         "big",
		Image:        &model.SelectedImage{URI: "content://media/1", MimeType: "image/png"},
		ImageDataURI: dataURIOfLength(1_500_000),
	}

	req := EncodePost(draft, "42", MultipartThreshold)
	if req.Kind != model.PayloadMultipart || req.Form == nil {
		t.Fatalf("expected multipart form, got %+v", req.Kind)
	}
	if req.JSON != nil {
		t.Error("JSON should be nil for multipart encoding")
	}
	if req.ContentType() != "multipart/form-data" {
		t.Errorf("ContentType() = %s", req.ContentType())
	}

	f := req.Form
	if f.Text != "big" || f.AuthorID != "42" {
		t.Errorf("form = %+v", f)
	}
	if f.Image.URI != "content://media/1" || f.Image.MimeType != "image/png" {
		t.Errorf("image part = %+v", f.Image)
	}
	if f.Image.FileName != "image.jpg" {
		t.Errorf("FileName = %q, expected image.jpg", f.Image.FileName)
	}

	draft.Image.FileName = "cat.png"
	if got := EncodePost(draft, "42", MultipartThreshold).Form.Image.FileName; got != "cat.png" {
		t.Errorf("FileName = %q, expected cat.png", got)
	}
}

func TestEncodePostDeterministic(t *testing.T) {
	draft := model.PostDraft{
		Text:         "same",
		Image:        &model.SelectedImage{URI: "file:///a.jpg"},
		ImageDataURI: dataURIOfLength(2_000),
	}
	a := EncodePost(draft, "u1", MultipartThreshold)
	b := EncodePost(draft, "u1", MultipartThreshold)
	if a.Kind != b.Kind || string(a.JSON) != string(b.JSON) {
		t.Error("EncodePost should be deterministic")
	}
}
