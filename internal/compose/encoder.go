package compose

import (
	"encoding/json"

	"github.com/ytget/scrolly/internal/model"
)

// MultipartThreshold is the data URI length above which the image is sent
// as a multipart file part instead of inline JSON.
const MultipartThreshold = 1_000_000

// EncodePost builds the request body for draft. Drafts without an image, or
// whose data URI is at most threshold characters long, are encoded as JSON;
// larger images are referenced from a multipart form so the transport can
// stream the raw file.
func EncodePost(draft model.PostDraft, authorID string, threshold int) model.EncodedRequest {
	text := draft.TrimmedText()

	if draft.Image != nil && len(draft.ImageDataURI) > threshold {
		return model.EncodedRequest{
			Kind: model.PayloadMultipart,
			Form: &model.MultipartForm{
				Text:     text,
				AuthorID: authorID,
				Image: model.ImagePart{
					URI:      draft.Image.URI,
					MimeType: draft.Image.MimeType,
					FileName: draft.Image.FileNameOrDefault(),
				},
			},
		}
	}

	payload := model.PostPayload{Text: text, AuthorID: authorID}
	if draft.Image != nil {
		payload.ImageURL = draft.ImageDataURI
	}
	// PostPayload holds only strings; Marshal cannot fail.
	body, _ := json.Marshal(payload)
	return model.EncodedRequest{Kind: model.PayloadJSON, JSON: body}
}
