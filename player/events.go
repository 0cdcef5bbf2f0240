package player

// Event is the closed vocabulary adapters emit toward the session.
// Backends occasionally double-fire Ready and DurationChange; the
// consumer must treat them idempotently.
type Event interface {
	isEvent()
}

// Ready signals that the backend finished its setup and can play.
type Ready struct{}

// Waiting signals that playback stalled to buffer.
type Waiting struct{}

// Playing signals that playback resumed after buffering.
type Playing struct{}

// Play signals a transition into the playing state.
type Play struct{}

// Pause signals a transition into the paused state.
type Pause struct{}

// DurationChange carries the authoritative media duration.
type DurationChange struct {
	// Duration in real milliseconds.
	Duration int64
}

// LoadProgress reports download progress of the current source.
type LoadProgress struct {
	// LoadedStart is the beginning of the buffered range as a
	// percentage of the full media.
	LoadedStart float64

	// LoadedPercent is the buffered length as a percentage of the
	// full media.
	LoadedPercent float64
}

// PlayProgress reports the advancing playback position.
type PlayProgress struct {
	// Time in real milliseconds.
	Time int64

	// Percent of the full media.
	Percent float64
}

// End signals that playback reached the end of the media.
type End struct{}

// Error carries a normalized playback failure. Playback errors are
// expected runtime states of a media element, never panics.
type Error struct {
	Code ErrorCode
}

func (Ready) isEvent()          {}
func (Waiting) isEvent()        {}
func (Playing) isEvent()        {}
func (Play) isEvent()           {}
func (Pause) isEvent()          {}
func (DurationChange) isEvent() {}
func (LoadProgress) isEvent()   {}
func (PlayProgress) isEvent()   {}
func (End) isEvent()            {}
func (Error) isEvent()          {}
