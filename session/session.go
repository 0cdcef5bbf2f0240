// Package session wires one playback backend to one timeline.
//
// A Session consumes the adapter's real-time events, feeds durations
// and positions into the timeline engine, and re-emits the events in
// cut-relative terms. It also owns resume points: the position of the
// last progress event is persisted while remembering is enabled, and
// cleared once playback completes.
package session

import (
	"errors"
	"strings"

	"github.com/cutplay-cli/cutplay/key"
	"github.com/cutplay-cli/cutplay/log"
	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/player"
	"github.com/cutplay-cli/cutplay/position"
	"github.com/cutplay-cli/cutplay/timeline"
	"github.com/spf13/viper"
)

// Session composes a Player with a Timeline for one media.
type Session struct {
	timeline   *timeline.Timeline
	player     player.Player
	mediaID    string
	remember   bool
	resume     bool
	completion float64
	volume     int

	events chan Event
	ready  bool
}

// Options carries the construction inputs of a session.
type Options struct {
	// Media is the descriptor to play. Required.
	Media *media.Media

	// Player is the constructed backend adapter. Required; the session
	// takes ownership and destroys it on Close.
	Player player.Player

	// Remember persists the playback position on every progress event.
	Remember bool

	// Resume seeks to the remembered position once the backend is
	// ready. Has no effect without a saved position.
	Resume bool

	// Completion is the percentage of the cut duration at which
	// playback counts as finished for resume purposes: reaching it
	// discards the saved position instead of updating it. Zero
	// disables the threshold.
	Completion float64

	// Volume is the initial playback volume, 0-100, applied on Start.
	// Zero leaves the backend's own volume untouched.
	Volume int
}

// New builds a session around an already constructed player. The media
// is attached to both the player and the timeline.
func New(opts Options) (*Session, error) {
	if opts.Media == nil {
		return nil, errors.New("session: media is required")
	}
	if opts.Player == nil {
		return nil, errors.New("session: player is required")
	}

	tl := timeline.New()
	if err := tl.SetMedia(opts.Media); err != nil {
		return nil, err
	}
	if err := opts.Player.SetMedia(opts.Media); err != nil {
		return nil, err
	}

	return &Session{
		timeline:   tl,
		player:     opts.Player,
		mediaID:    strings.Join(opts.Media.ID, "+"),
		remember:   opts.Remember,
		resume:     opts.Resume,
		completion: opts.Completion,
		volume:     opts.Volume,
		events:     make(chan Event, 64),
	}, nil
}

// FromConfig builds a session with the behaviour toggles the user
// configured: resume-point persistence, start-at-saved-time, the
// completion threshold and the initial volume.
func FromConfig(m *media.Media, p player.Player) (*Session, error) {
	return New(Options{
		Media:      m,
		Player:     p,
		Remember:   viper.GetBool(key.PlayerRememberPosition),
		Resume:     viper.GetBool(key.PlayerStartAtSavedTime),
		Completion: float64(viper.GetInt(key.PlayerCompletionPercent)),
		Volume:     viper.GetInt(key.PlayerVolume),
	})
}

// Timeline returns the session's time mapping engine.
func (s *Session) Timeline() *timeline.Timeline {
	return s.timeline
}

// Player returns the owned backend adapter.
func (s *Session) Player() player.Player {
	return s.player
}

// Events returns the cut-relative event stream. The channel closes
// after Close.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Start initializes the backend, applies the configured volume,
// begins event translation and loads the selected source.
func (s *Session) Start() error {
	if err := s.player.Initialize(); err != nil {
		return err
	}

	if s.volume > 0 {
		if err := s.player.SetVolume(s.volume); err != nil {
			return err
		}
	}

	go s.loop()
	return s.player.Load()
}

// PlayPause toggles the playback state.
func (s *Session) PlayPause() error {
	return s.player.PlayPause()
}

// Seek moves playback to a cut-relative position.
func (s *Session) Seek(cutMs int64) error {
	return s.player.Seek(s.timeline.RealTime(cutMs))
}

// SetVolume sets the playback volume, 0-100.
func (s *Session) SetVolume(level int) error {
	return s.player.SetVolume(level)
}

// Close destroys the backend. The event stream drains and closes.
func (s *Session) Close() error {
	return s.player.Destroy()
}

func (s *Session) loop() {
	defer close(s.events)

	for ev := range s.player.Events() {
		s.translate(ev)
	}
}

// translate maps one adapter event onto the cut-relative vocabulary.
func (s *Session) translate(ev player.Event) {
	switch e := ev.(type) {
	case player.Ready:
		if s.ready {
			return
		}
		s.ready = true
		s.restore()
		s.events <- Ready{}

	case player.DurationChange:
		if e.Duration == s.timeline.RealDuration() {
			return
		}
		s.timeline.SetRealDuration(e.Duration)
		s.events <- DurationChange{Duration: s.timeline.Duration()}

	case player.Waiting:
		s.events <- Waiting{}

	case player.Playing:
		s.events <- Playing{}

	case player.Play:
		s.events <- Play{}

	case player.Pause:
		s.events <- Pause{}

	case player.LoadProgress:
		s.events <- LoadProgress{
			LoadedStart:   s.timeline.CutPercent(e.LoadedStart),
			LoadedPercent: s.timeline.CutDurationPercent(e.LoadedPercent),
		}

	case player.PlayProgress:
		s.progress(e)

	case player.End:
		s.clearPosition()
		s.events <- End{}

	case player.Error:
		s.events <- Error{Code: e.Code, Message: e.Code.Message()}
	}
}

// progress handles one real-time progress report. Crossing the cut end
// edge finishes the session: playback pauses, rewinds to the cut start
// and the resume point is discarded.
func (s *Session) progress(e player.PlayProgress) {
	cutEnd := s.timeline.CutEnd()
	if s.timeline.CutsEnabled() && cutEnd > 0 && e.Time >= cutEnd {
		if s.player.IsPlaying() {
			if err := s.player.PlayPause(); err != nil {
				log.Warnf("session: pausing at cut end: %s", err)
			}
		}
		if err := s.player.Seek(s.timeline.RealTime(0)); err != nil {
			log.Warnf("session: rewinding to cut start: %s", err)
		}

		s.clearPosition()
		s.events <- End{}
		return
	}

	cutTime := s.timeline.CutTime(e.Time)
	percent := s.timeline.Percent(cutTime)

	if s.remember {
		if s.completion > 0 && percent >= s.completion {
			s.clearPosition()
		} else {
			record := position.Record{Time: cutTime, Percent: percent}
			if err := position.Save(s.mediaID, record); err != nil {
				log.Warnf("session: saving position: %s", err)
			}
		}
	}

	s.events <- PlayProgress{Time: cutTime, Percent: percent}
}

// restore seeks to the remembered position, if resuming is on and a
// resume point exists.
func (s *Session) restore() {
	if !s.resume {
		return
	}

	record, err := position.Get(s.mediaID)
	if err != nil {
		log.Warnf("session: reading position: %s", err)
		return
	}

	if saved, ok := record.Get(); ok && saved.Time > 0 {
		if err := s.Seek(saved.Time); err != nil {
			log.Warnf("session: resuming at saved position: %s", err)
		}
	}
}

func (s *Session) clearPosition() {
	if !s.remember {
		return
	}
	if err := position.Remove(s.mediaID); err != nil {
		log.Warnf("session: clearing position: %s", err)
	}
}
