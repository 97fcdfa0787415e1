package model

import "time"

// SessionRecord is the locally persisted login state
type SessionRecord struct {
	UserID    ID        `json:"userId"`
	Token     string    `json:"token"`
	User      *User     `json:"user,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// HasToken reports whether a bearer token is present
func (r *SessionRecord) HasToken() bool {
	return r != nil && r.Token != ""
}

// HasUser reports whether the record identifies a user
func (r *SessionRecord) HasUser() bool {
	return r != nil && r.UserID != ""
}
