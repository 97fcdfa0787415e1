package session

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ytget/scrolly/internal/model"
)

// Key is the preferences key holding the serialized session record
const Key = "userProfile"

// Backend is the subset of fyne.Preferences used by the store
type Backend interface {
	String(key string) string
	SetString(key string, value string)
	RemoveValue(key string)
}

// Store persists the login session as a single JSON record
type Store struct {
	mu      sync.Mutex
	backend Backend
	now     func() time.Time
}

// NewStore creates a new session store over backend
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// Get returns the stored record, or nil when no session exists. A record
// that cannot be decoded is treated as absent.
func (s *Store) Get() (*model.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.backend.String(Key)
	if raw == "" {
		return nil, nil
	}

	var record model.SessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Printf("Warning: discarding unreadable session record: %v", err)
		return nil, nil
	}
	return &record, nil
}

// Set stores a new session stamped with the current time
func (s *Store) Set(userID model.ID, token string, user *model.User) error {
	record := model.SessionRecord{
		UserID:    userID,
		Token:     token,
		User:      user,
		Timestamp: s.now().UTC(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	s.backend.SetString(Key, string(data))
	s.mu.Unlock()
	return nil
}

// Clear removes the stored session
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend.RemoveValue(Key)
}

// IsLoggedIn reports whether a session with a token is stored
func (s *Store) IsLoggedIn() bool {
	record, _ := s.Get()
	return record.HasToken()
}
