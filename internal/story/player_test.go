package story

import (
	"context"
	"testing"
	"time"

	"github.com/ytget/scrolly/internal/model"
)

func stories(n int) []*model.Post {
	out := make([]*model.Post, n)
	for i := range out {
		out[i] = &model.Post{ID: model.ID(rune('a' + i)), Image: "uploads/x.jpg"}
	}
	return out
}

func TestTickRequiresLoadedAndVisible(t *testing.T) {
	p := NewPlayer(stories(2), 0)

	p.Tick()
	if got := p.State().Progress; got != 0 {
		t.Errorf("Progress = %d before load, expected 0", got)
	}

	p.MarkLoaded()
	p.SetVisible(false)
	p.Tick()
	if got := p.State().Progress; got != 0 {
		t.Errorf("Progress = %d while hidden, expected 0", got)
	}

	p.SetVisible(true)
	p.Tick()
	if got := p.State().Progress; got != ProgressStep {
		t.Errorf("Progress = %d, expected %d", got, ProgressStep)
	}
}

func TestAutoAdvance(t *testing.T) {
	p := NewPlayer(stories(2), 0)
	p.MarkLoaded()

	for i := 0; i < FullProgress/ProgressStep; i++ {
		p.Tick()
	}
	s := p.State()
	if s.Index != 0 || s.Progress != FullProgress {
		t.Fatalf("state = %+v, expected full progress on first story", s)
	}

	p.Tick()
	s = p.State()
	if s.Index != 1 || s.Progress != 0 || s.Loaded {
		t.Errorf("state = %+v, expected second story reset and unloaded", s)
	}

	// Waits for the next image
	p.Tick()
	if p.State().Progress != 0 {
		t.Error("progress should not move before the next image loads")
	}
}

func TestClosesAfterLastStory(t *testing.T) {
	p := NewPlayer(stories(1), 0)
	p.MarkLoaded()
	for i := 0; i <= FullProgress/ProgressStep; i++ {
		p.Tick()
	}
	if !p.State().Closed {
		t.Error("player should close after the last story")
	}
}

func TestNextPrevious(t *testing.T) {
	p := NewPlayer(stories(3), 1)

	p.Previous()
	if p.State().Index != 0 {
		t.Errorf("Index = %d, expected 0", p.State().Index)
	}
	p.Previous()
	if p.State().Index != 0 {
		t.Error("Previous() on the first story should do nothing")
	}

	p.Next()
	p.Next()
	if p.State().Index != 2 {
		t.Errorf("Index = %d, expected 2", p.State().Index)
	}
	p.Next()
	if !p.State().Closed {
		t.Error("Next() on the last story should close")
	}
}

func TestBarFill(t *testing.T) {
	p := NewPlayer(stories(3), 1)
	p.MarkLoaded()
	p.Tick()
	p.Tick()

	tests := []struct {
		index    int
		expected int
	}{
		{0, FullProgress},
		{1, 4},
		{2, 0},
	}
	for _, tt := range tests {
		if got := p.BarFill(tt.index); got != tt.expected {
			t.Errorf("BarFill(%d) = %d, expected %d", tt.index, got, tt.expected)
		}
	}
}

func TestStartStopsOnClose(t *testing.T) {
	p := NewPlayer(stories(1), 0)
	p.MarkLoaded()
	p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("Start() did not return after Close()")
	}
}

func TestEmptyPlayerIsClosed(t *testing.T) {
	p := NewPlayer(nil, 3)
	if !p.State().Closed {
		t.Error("player without stories should start closed")
	}
	p.Tick()
	p.Next()
}

func TestUpdateCallbackOnChangeOnly(t *testing.T) {
	p := NewPlayer(stories(2), 0)
	calls := 0
	p.SetUpdateCallback(func(State) { calls++ })

	p.Tick() // not loaded, no change
	if calls != 0 {
		t.Errorf("callback calls = %d, expected 0", calls)
	}
	p.MarkLoaded()
	p.Tick()
	if calls != 2 {
		t.Errorf("callback calls = %d, expected 2", calls)
	}
}
