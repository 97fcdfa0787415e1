package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Display fallbacks
const (
	UnknownUserName   = "Unknown User"
	InlineImagePrefix = "data:image/"
)

// ID is a server-assigned identifier. The API emits ids either as JSON
// strings or as numbers; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the textual id
func (id ID) String() string {
	return string(id)
}

// User is the public profile of an account
type User struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Username   string `json:"username,omitempty"`
	Email      string `json:"email,omitempty"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// UnmarshalJSON accepts both "id" and "_id" keys for the identifier.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID ID `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// DisplayName returns name, username, or a placeholder in order of preference
func (u *User) DisplayName() string {
	if u == nil {
		return UnknownUserName
	}
	if u.Name != "" {
		return u.Name
	}
	if u.Username != "" {
		return u.Username
	}
	return UnknownUserName
}

// Author is the post author. Unpopulated references arrive as a bare id.
type Author struct {
	User
}

// UnmarshalJSON accepts either a user object or a bare id.
func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		return a.User.ID.UnmarshalJSON(data)
	}
	return a.User.UnmarshalJSON(data)
}

// Comment is a single comment on a post
type Comment struct {
	ID        ID        `json:"_id"`
	Text      string    `json:"text"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a single feed entry
type Post struct {
	ID        ID        `json:"_id"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	Author    *Author   `json:"author,omitempty"`
	Likes     []ID      `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayAuthor returns the author's display name
func (p *Post) DisplayAuthor() string {
	if p.Author == nil {
		return UnknownUserName
	}
	return p.Author.DisplayName()
}

// LikesCount returns the number of likes
func (p *Post) LikesCount() int {
	return len(p.Likes)
}

// CommentsCount returns the number of comments
func (p *Post) CommentsCount() int {
	return len(p.Comments)
}

// HasImage reports whether the post carries an image reference
func (p *Post) HasImage() bool {
	return p.Image != ""
}

// HasInlineImage reports whether the image is an inline data URI
func (p *Post) HasInlineImage() bool {
	return strings.HasPrefix(p.Image, InlineImagePrefix)
}

// LikedBy reports whether userID is among the likes
func (p *Post) LikedBy(userID ID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a copy whose slices can be mutated independently
func (p *Post) Clone() *Post {
	c := *p
	c.Likes = append([]ID(nil), p.Likes...)
	c.Comments = append([]Comment(nil), p.Comments...)
	return &c
}
