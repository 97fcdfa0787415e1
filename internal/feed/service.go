package feed

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ytget/scrolly/internal/model"
)

// Errors returned by the feed service
var (
	ErrPostNotFound = errors.New("post not found")
	ErrLikePending  = errors.New("like already in progress")
	ErrEmptyComment = errors.New("comment text is empty")
)

// API is the backend surface the feed needs
type API interface {
	Feed(ctx context.Context, token string) ([]model.Post, error)
	LikePost(ctx context.Context, token string, postID model.ID) ([]model.ID, error)
	CommentPost(ctx context.Context, token string, postID model.ID, text string) (*model.Comment, error)
}

// SessionReader supplies the bearer token
type SessionReader interface {
	Get() (*model.SessionRecord, error)
}

// Service handles feed state
type Service struct {
	mu           sync.RWMutex
	posts        []*model.Post
	loading      bool
	lastErr      error
	pendingLikes map[model.ID]bool

	api      API
	session  SessionReader
	cache    *Cache
	onUpdate func() // callback for UI updates
}

// NewService creates a new feed service
func NewService(api API, session SessionReader) *Service {
	return &Service{
		api:          api,
		session:      session,
		pendingLikes: make(map[model.ID]bool),
	}
}

// SetUpdateCallback sets the callback function for feed updates
func (s *Service) SetUpdateCallback(callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// SetCache enables on-disk snapshots of the feed
func (s *Service) SetCache(cache *Cache) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache
}

// LoadCached shows the last saved snapshot if nothing is loaded yet. It
// reports whether posts were restored.
func (s *Service) LoadCached() bool {
	s.mu.RLock()
	cache := s.cache
	empty := len(s.posts) == 0
	s.mu.RUnlock()
	if cache == nil || !empty {
		return false
	}

	snap, err := cache.Load()
	if err != nil {
		log.Printf("Warning: ignoring feed snapshot: %v", err)
		return false
	}
	if snap == nil {
		return false
	}

	s.mu.Lock()
	if len(s.posts) == 0 {
		s.posts = toPointers(snap.Posts)
	}
	s.mu.Unlock()
	s.notifyUpdate()

	log.Printf("Feed restored from snapshot: %d posts saved %s", len(snap.Posts), snap.SavedAt.Format(time.RFC3339))
	return true
}

// Reset drops loaded posts and the saved snapshot, e.g. on logout
func (s *Service) Reset() {
	s.mu.Lock()
	s.posts = nil
	s.lastErr = nil
	cache := s.cache
	s.mu.Unlock()

	if cache != nil {
		if err := cache.Clear(); err != nil {
			log.Printf("Warning: failed to remove feed snapshot: %v", err)
		}
	}
	s.notifyUpdate()
}

// Refresh reloads the feed. On failure the previously loaded posts are kept.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	s.notifyUpdate()

	posts, err := s.api.Feed(ctx, s.token())

	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	if err == nil {
		s.posts = toPointers(posts)
	}
	count := len(s.posts)
	cache := s.cache
	var snapshot []model.Post
	if err == nil && cache != nil {
		snapshot = make([]model.Post, 0, len(s.posts))
		for _, p := range s.posts {
			snapshot = append(snapshot, *p.Clone())
		}
	}
	s.mu.Unlock()
	s.notifyUpdate()

	if err != nil {
		log.Printf("Error loading feed: %v", err)
		return fmt.Errorf("load feed: %w", err)
	}
	log.Printf("Feed loaded: %d posts", count)

	if cache != nil {
		if err := cache.Save(snapshot); err != nil {
			log.Printf("Warning: failed to save feed snapshot: %v", err)
		}
	}
	return nil
}

// Posts returns copies of the loaded posts in feed order
func (s *Service) Posts() []*model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p.Clone())
	}
	return posts
}

// Post returns a copy of the post with id
func (s *Service) Post(id model.ID) (*model.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.find(id); p != nil {
		return p.Clone(), true
	}
	return nil, false
}

// Stories returns the posts that carry an image
func (s *Service) Stories() []*model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stories []*model.Post
	for _, p := range s.posts {
		if p.HasImage() {
			stories = append(stories, p.Clone())
		}
	}
	return stories
}

// IsLoading reports whether a refresh is in flight
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the error of the most recent refresh
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ToggleLike flips userID's like on a post immediately, then reconciles
// with the likes returned by the server. If the server call fails the
// local change is reverted.
func (s *Service) ToggleLike(ctx context.Context, postID, userID model.ID) error {
	s.mu.Lock()
	post := s.find(postID)
	if post == nil {
		s.mu.Unlock()
		return ErrPostNotFound
	}
	if s.pendingLikes[postID] {
		s.mu.Unlock()
		return ErrLikePending
	}
	s.pendingLikes[postID] = true
	previous := append([]model.ID(nil), post.Likes...)
	post.Likes = toggle(post.Likes, userID)
	s.mu.Unlock()
	s.notifyUpdate()

	likes, err := s.api.LikePost(ctx, s.token(), postID)

	s.mu.Lock()
	delete(s.pendingLikes, postID)
	if post := s.find(postID); post != nil {
		if err != nil {
			post.Likes = previous
		} else if likes != nil {
			post.Likes = likes
		}
	}
	s.mu.Unlock()
	s.notifyUpdate()

	if err != nil {
		log.Printf("Like failed for post %s, reverted: %v", postID, err)
		return fmt.Errorf("like post: %w", err)
	}
	return nil
}

// AddComment posts a comment and appends it to the local post
func (s *Service) AddComment(ctx context.Context, postID model.ID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	s.mu.RLock()
	exists := s.find(postID) != nil
	s.mu.RUnlock()
	if !exists {
		return nil, ErrPostNotFound
	}

	comment, err := s.api.CommentPost(ctx, s.token(), postID, text)
	if err != nil {
		return nil, fmt.Errorf("comment on post: %w", err)
	}

	s.mu.Lock()
	if post := s.find(postID); post != nil {
		post.Comments = append(post.Comments, *comment)
	}
	s.mu.Unlock()
	s.notifyUpdate()

	return comment, nil
}

func (s *Service) find(id model.ID) *model.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Service) token() string {
	record, err := s.session.Get()
	if err != nil || record == nil {
		return ""
	}
	return record.Token
}

func (s *Service) notifyUpdate() {
	s.mu.RLock()
	callback := s.onUpdate
	s.mu.RUnlock()
	if callback != nil {
		callback()
	}
}

func toPointers(posts []model.Post) []*model.Post {
	out := make([]*model.Post, 0, len(posts))
	for i := range posts {
		out = append(out, &posts[i])
	}
	return out
}

// toggle removes id from likes when present, otherwise appends it
func toggle(likes []model.ID, id model.ID) []model.ID {
	out := make([]model.ID, 0, len(likes)+1)
	found := false
	for _, l := range likes {
		if l == id {
			found = true
			continue
		}
		out = append(out, l)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
