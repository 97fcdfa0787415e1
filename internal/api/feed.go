package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ytget/scrolly/internal/model"
)

// FeedShape identifies which envelope a feed response used
type FeedShape string

const (
	FeedShapeEnvelope FeedShape = "envelope"
	FeedShapeArray    FeedShape = "array"
)

// ParseFeed decodes a feed body that is either {"posts": [...]} or a bare
// array of posts. Any other shape yields a *ParseError.
func ParseFeed(body []byte) ([]model.Post, error) {
	posts, _, err := parseFeed(body)
	return posts, err
}

func parseFeed(body []byte) ([]model.Post, FeedShape, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, "", &ParseError{What: "feed", Err: fmt.Errorf("empty body")}
	}

	switch trimmed[0] {
	case '[':
		var posts []model.Post
		if err := json.Unmarshal(trimmed, &posts); err != nil {
			return nil, "", &ParseError{What: "feed", Err: err}
		}
		return posts, FeedShapeArray, nil
	case '{':
		var envelope struct {
			Posts *[]model.Post `json:"posts"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, "", &ParseError{What: "feed", Err: err}
		}
		if envelope.Posts == nil {
			return nil, "", &ParseError{What: "feed", Err: fmt.Errorf("object without posts")}
		}
		return *envelope.Posts, FeedShapeEnvelope, nil
	default:
		return nil, "", &ParseError{What: "feed"}
	}
}
