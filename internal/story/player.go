package story

import (
	"context"
	"sync"
	"time"

	"github.com/ytget/scrolly/internal/model"
)

// Playback constants; a story is shown for 50 ticks, about five seconds.
const (
	TickInterval = 100 * time.Millisecond
	ProgressStep = 2
	FullProgress = 100
)

// State is a point-in-time view of the player
type State struct {
	Index    int
	Count    int
	Progress int
	Visible  bool
	Loaded   bool
	Closed   bool
	Story    *model.Post
}

// Player steps through a list of stories
type Player struct {
	mu       sync.Mutex
	stories  []*model.Post
	index    int
	progress int
	visible  bool
	loaded   bool
	closed   bool
	onUpdate func(State) // callback for UI updates
}

// NewPlayer creates a player positioned at start. An out-of-range start is
// clamped to the list.
func NewPlayer(stories []*model.Post, start int) *Player {
	if start < 0 {
		start = 0
	}
	if start >= len(stories) {
		start = len(stories) - 1
	}
	return &Player{
		stories: stories,
		index:   max(start, 0),
		visible: true,
		closed:  len(stories) == 0,
	}
}

// SetUpdateCallback sets the callback function for player updates
func (p *Player) SetUpdateCallback(callback func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onUpdate = callback
}

// State returns the current player state
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// SetVisible pauses or resumes progress
func (p *Player) SetVisible(visible bool) {
	p.update(func() { p.visible = visible })
}

// MarkLoaded records that the current story's image finished loading
func (p *Player) MarkLoaded() {
	p.update(func() { p.loaded = true })
}

// Tick advances progress by one step. Progress only moves while the player
// is visible and the current image has loaded; a story already at full
// progress advances to the next one, or closes the player after the last.
func (p *Player) Tick() {
	p.update(func() {
		if p.closed || !p.visible || !p.loaded {
			return
		}
		if p.progress >= FullProgress {
			p.nextLocked()
			return
		}
		p.progress += ProgressStep
	})
}

// Next skips to the following story, closing after the last
func (p *Player) Next() {
	p.update(p.nextLocked)
}

// Previous goes back one story; it does nothing on the first
func (p *Player) Previous() {
	p.update(func() {
		if p.closed || p.index == 0 {
			return
		}
		p.index--
		p.resetLocked()
	})
}

// Close stops playback
func (p *Player) Close() {
	p.update(func() { p.closed = true })
}

// BarFill returns the progress bar fill for story i: full for stories
// already seen, the current progress for the active one, else empty.
func (p *Player) BarFill(i int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case i < p.index:
		return FullProgress
	case i == p.index:
		return p.progress
	default:
		return 0
	}
}

// Start ticks the player every TickInterval until ctx is done or the
// player closes.
func (p *Player) Start(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick()
			if p.State().Closed {
				return
			}
		}
	}
}

func (p *Player) nextLocked() {
	if p.closed {
		return
	}
	if p.index < len(p.stories)-1 {
		p.index++
		p.resetLocked()
		return
	}
	p.progress = 0
	p.closed = true
}

func (p *Player) resetLocked() {
	p.progress = 0
	p.loaded = false
}

func (p *Player) stateLocked() State {
	s := State{
		Index:    p.index,
		Count:    len(p.stories),
		Progress: p.progress,
		Visible:  p.visible,
		Loaded:   p.loaded,
		Closed:   p.closed,
	}
	if p.index < len(p.stories) {
		s.Story = p.stories[p.index]
	}
	return s
}

func (p *Player) update(fn func()) {
	p.mu.Lock()
	before := p.stateLocked()
	fn()
	after := p.stateLocked()
	callback := p.onUpdate
	p.mu.Unlock()

	if callback != nil && before != after {
		callback(after)
	}
}
