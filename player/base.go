package player

import (
	"errors"
	"sync"

	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/util"
)

// base carries the state and behaviour shared by every adapter:
// the media descriptor, the selected parallel source, and the
// normalized event channel with its teardown handshake.
type base struct {
	id          string
	media       *media.Media
	sourceIndex int

	events chan Event
	done   chan struct{}

	// mu guards playing, which the event loop writes while consumers
	// read, as well as the start/teardown handshake.
	mu        sync.Mutex
	playing   bool
	started   bool
	destroyed bool
}

func newBase(id string) base {
	return base{
		id:     id,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

func (b *base) ID() string {
	return b.id
}

func (b *base) SetMedia(m *media.Media) error {
	if m == nil {
		return errors.New("player: media is required")
	}
	b.media = m
	b.sourceIndex = 0
	return nil
}

func (b *base) SetSource(index int) error {
	if index < 0 || index >= b.sourceCount() {
		return errors.New("player: source index out of range")
	}
	b.sourceIndex = index
	return nil
}

func (b *base) SourceIndex() int {
	return b.sourceIndex
}

// sourceCount is the number of parallel sources the media declares,
// whichever of the identifier list and the file list is longer.
func (b *base) sourceCount() int {
	if b.media == nil {
		return 0
	}
	return util.Max(len(b.media.ID), len(b.media.Sources))
}

// sourceID returns the identifier of the selected parallel source.
func (b *base) sourceID() string {
	if b.media == nil || b.sourceIndex >= len(b.media.ID) {
		return ""
	}
	return b.media.ID[b.sourceIndex]
}

func (b *base) MIME(def media.Definition) string {
	if def.MIME != "" {
		return def.MIME
	}
	return "video/mp4"
}

func (b *base) Thumbnail() string {
	if b.media == nil {
		return ""
	}
	return b.media.Thumbnail
}

func (b *base) IsPaused() bool {
	return !b.IsPlaying()
}

func (b *base) IsPlaying() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.playing
}

// setPlaying records the playback state reported by the backend.
func (b *base) setPlaying(playing bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playing = playing
}

func (b *base) Events() <-chan Event {
	return b.events
}

// emit delivers an event unless teardown already started.
func (b *base) emit(ev Event) {
	select {
	case <-b.done:
	case b.events <- ev:
	}
}

// markStarted records that the event loop is running and owns the
// closing of the events channel. Reports whether it was already
// started, so Initialize stays idempotent.
func (b *base) markStarted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	already := b.started
	b.started = true
	return already
}

// teardown signals the event loop to stop. Safe to call repeatedly;
// reports whether this call performed the teardown. When no loop ever
// started, the events channel is closed here instead.
func (b *base) teardown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return false
	}
	b.destroyed = true
	close(b.done)

	if !b.started {
		close(b.events)
	}
	return true
}
