package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ytget/scrolly/internal/model"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	posts := []model.Post{
		{
			ID:        "p1",
			Text:      "hello",
			Image:     "uploads/a.jpg",
			Author:    &model.Author{User: model.User{ID: "u1", Name: "Ann"}},
			Likes:     []model.ID{"u2"},
			Comments:  []model.Comment{{ID: "c1", Text: "nice"}},
			CreatedAt: created,
		},
	}
	if err := cache.Save(posts); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snap, err := cache.Load()
	if err != nil || snap == nil {
		t.Fatalf("Load() = %v, %v", snap, err)
	}
	if len(snap.Posts) != 1 {
		t.Fatalf("Load() returned %d posts", len(snap.Posts))
	}
	p := snap.Posts[0]
	if p.ID != "p1" || p.DisplayAuthor() != "Ann" || !p.LikedBy("u2") || p.CommentsCount() != 1 {
		t.Errorf("restored post = %+v", p)
	}
	if !p.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, expected %v", p.CreatedAt, created)
	}
}

func TestCacheLoadMissing(t *testing.T) {
	cache, _ := NewCache(t.TempDir())
	snap, err := cache.Load()
	if err != nil || snap != nil {
		t.Errorf("Load() = %v, %v, expected nil, nil", snap, err)
	}
}

func TestCacheLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	cache, _ := NewCache(dir)
	if err := os.WriteFile(filepath.Join(dir, SnapshotFileName), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(); err == nil {
		t.Error("Load() should fail on a corrupt snapshot")
	}
}

func TestCacheClear(t *testing.T) {
	cache, _ := NewCache(t.TempDir())
	_ = cache.Save(nil)
	if err := cache.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := cache.Clear(); err != nil {
		t.Errorf("second Clear() = %v, expected nil", err)
	}
}

func TestServiceUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, _ := NewCache(dir)

	online := NewService(&fakeAPI{posts: samplePosts()}, fakeSession{})
	online.SetCache(cache)
	if err := online.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	offline := NewService(&fakeAPI{}, fakeSession{})
	offline.SetCache(cache)
	if !offline.LoadCached() {
		t.Fatal("LoadCached() should restore the snapshot")
	}
	if got := len(offline.Posts()); got != 3 {
		t.Errorf("Posts() returned %d, expected 3", got)
	}
	if offline.LoadCached() {
		t.Error("LoadCached() should not replace loaded posts")
	}
}

func TestServiceResetClearsSnapshot(t *testing.T) {
	cache, _ := NewCache(t.TempDir())
	s := NewService(&fakeAPI{posts: samplePosts()}, fakeSession{})
	s.SetCache(cache)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	s.Reset()
	if got := len(s.Posts()); got != 0 {
		t.Errorf("Posts() after Reset returned %d, expected 0", got)
	}
	if snap, _ := cache.Load(); snap != nil {
		t.Error("snapshot should be removed by Reset")
	}
}

// concurrentAPI serves a fresh copy of its feed on every call and keeps no
// per-call state, so it can be shared across goroutines
type concurrentAPI struct {
	posts []model.Post
}

func (a *concurrentAPI) Feed(context.Context, string) ([]model.Post, error) {
	out := make([]model.Post, len(a.posts))
	for i := range a.posts {
		out[i] = *a.posts[i].Clone()
	}
	return out, nil
}

func (a *concurrentAPI) LikePost(context.Context, string, model.ID) ([]model.ID, error) {
	return nil, nil
}

func (a *concurrentAPI) CommentPost(_ context.Context, _ string, _ model.ID, text string) (*model.Comment, error) {
	return &model.Comment{ID: "c", Text: text}, nil
}

// Run with -race: snapshots are encoded while likes and comments change
func TestRefreshSnapshotWhileEditing(t *testing.T) {
	posts := make([]model.Post, 200)
	for i := range posts {
		posts[i] = model.Post{ID: model.ID(fmt.Sprintf("p%d", i)), Text: "post"}
	}
	api := &concurrentAPI{posts: posts}

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := NewService(api, fakeSession{})
	s.SetCache(cache)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			if err := s.Refresh(ctx); err != nil {
				t.Errorf("Refresh() error = %v", err)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			id := model.ID(fmt.Sprintf("p%d", i%len(posts)))
			if err := s.ToggleLike(ctx, id, "me"); err != nil {
				t.Errorf("ToggleLike() error = %v", err)
			}
			if _, err := s.AddComment(ctx, id, "hi"); err != nil {
				t.Errorf("AddComment() error = %v", err)
			}
		}
	}()
	wg.Wait()

	snap, err := cache.Load()
	if err != nil || snap == nil {
		t.Fatalf("Expected a snapshot, got %v (err %v)", snap, err)
	}
	if len(snap.Posts) != len(posts) {
		t.Errorf("Expected %d posts in snapshot, got %d", len(posts), len(snap.Posts))
	}
}
