package compose

import (
	"context"

	"github.com/ytget/scrolly/internal/model"
)

// SessionReader supplies the logged-in user for outgoing requests
type SessionReader interface {
	Get() (*model.SessionRecord, error)
}

// PostSender delivers an encoded post to the server
type PostSender interface {
	CreatePost(ctx context.Context, token string, req model.EncodedRequest) error
}

// Submitter defines the interface for the post composer
type Submitter interface {
	SetUpdateCallback(func(Snapshot))
	SetText(text string)
	AttachImage(img model.SelectedImage, dataURI string) error
	ClearImage()
	Cancel()
	Draft() model.PostDraft
	State() model.SubmissionState
	Submit(ctx context.Context) Result
}
