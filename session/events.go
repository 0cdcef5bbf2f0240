package session

import "github.com/cutplay-cli/cutplay/player"

// Event is the vocabulary a session emits toward its consumer. It
// mirrors the adapter vocabulary, but every time and percentage is
// cut-relative: positions in cut milliseconds, percentages against the
// cut window.
type Event interface {
	isEvent()
}

// Ready signals that the backend is set up and the session can play.
// Emitted once, even when the backend double-fires.
type Ready struct{}

// Waiting signals that playback stalled to buffer.
type Waiting struct{}

// Playing signals that playback resumed after buffering.
type Playing struct{}

// Play signals a transition into the playing state.
type Play struct{}

// Pause signals a transition into the paused state.
type Pause struct{}

// DurationChange carries the apparent media duration in cut
// milliseconds.
type DurationChange struct {
	Duration int64
}

// LoadProgress reports download progress rescaled to the cut window.
type LoadProgress struct {
	LoadedStart   float64
	LoadedPercent float64
}

// PlayProgress reports the playback position in cut milliseconds and
// as a percentage of the cut duration.
type PlayProgress struct {
	Time    int64
	Percent float64
}

// End signals that playback reached the end of the visible window,
// either the media end or the cut end edge.
type End struct{}

// Error carries a normalized playback failure with its user-facing
// message.
type Error struct {
	Code    player.ErrorCode
	Message string
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
