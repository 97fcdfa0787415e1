package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/ytget/scrolly/internal/model"
)

// Profile is a user together with their posts
type Profile struct {
	User  *model.User  `json:"user"`
	Posts []model.Post `json:"posts"`
}

// Profile fetches a user's profile and posts
func (c *Client) Profile(ctx context.Context, token string, userID model.ID) (*Profile, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/profile/"+url.PathEscape(userID.String()), token, "", nil)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, &ParseError{What: "profile", Err: err}
	}
	if profile.User == nil {
		return nil, &ParseError{What: "profile"}
	}
	return &profile, nil
}
