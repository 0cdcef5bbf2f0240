package player

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cutplay-cli/cutplay/log"
	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/samber/mo"
)

// Youtube adapts the YouTube iframe API to the Player contract.
// Quality is adaptive; SetDefinition only hints the preferred level.
type Youtube struct {
	base
	bridge Bridge

	// durationSec caches the last reported duration for progress
	// percent computations.
	durationSec float64
}

// youtubeMessage is one raw frame message of the iframe API.
type youtubeMessage struct {
	Event string          `json:"event"`
	Info  json.RawMessage `json:"info"`
}

// youtubeInfo is the payload of infoDelivery messages.
type youtubeInfo struct {
	CurrentTime         float64 `json:"currentTime"`
	Duration            float64 `json:"duration"`
	VideoLoadedFraction float64 `json:"videoLoadedFraction"`
}

// YouTube iframe API player states.
const (
	youtubeStateEnded     = 0
	youtubeStatePlaying   = 1
	youtubeStatePaused    = 2
	youtubeStateBuffering = 3
)

func newYoutube(opts Options) (*Youtube, error) {
	if opts.Bridge == nil {
		return nil, errors.New("player: youtube backend requires a frame bridge")
	}
	return &Youtube{
		base:   newBase(opts.ID),
		bridge: opts.Bridge,
	}, nil
}

func (y *Youtube) Kind() Kind {
	return KindYoutube
}

// SourceURL builds the iframe embed URL of the selected source.
func (y *Youtube) SourceURL() mo.Option[string] {
	id := y.sourceID()
	if id == "" {
		return mo.None[string]()
	}
	return mo.Some(fmt.Sprintf("https://www.youtube.com/embed/%s?enablejsapi=1", id))
}

// Definitions returns nil: the iframe selects quality adaptively.
func (y *Youtube) Definitions() []media.Definition {
	return nil
}

// SetDefinition hints the preferred playback quality to the frame.
func (y *Youtube) SetDefinition(def media.Definition) error {
	return y.bridge.Send("setPlaybackQuality", def.Quality)
}

func (y *Youtube) Initialize() error {
	if y.markStarted() {
		return nil
	}
	go y.loop()
	return nil
}

// Load switches the frame to the selected source.
func (y *Youtube) Load() error {
	id := y.sourceID()
	if id == "" {
		y.emit(Error{Code: MediaErrNoSource})
		return nil
	}
	return y.bridge.Send("loadVideoById", id)
}

func (y *Youtube) PlayPause() error {
	if y.IsPlaying() {
		return y.bridge.Send("pauseVideo", nil)
	}
	return y.bridge.Send("playVideo", nil)
}

func (y *Youtube) SetVolume(level int) error {
	return y.bridge.Send("setVolume", util.Clamp(level, 0, 100))
}

func (y *Youtube) Seek(ms int64) error {
	return y.bridge.Send("seekTo", float64(ms)/1000)
}

func (y *Youtube) Destroy() error {
	if !y.teardown() {
		return nil
	}
	return y.bridge.Close()
}

func (y *Youtube) loop() {
	defer close(y.events)

	for {
		select {
		case <-y.done:
			return
		case raw, ok := <-y.bridge.Messages():
			if !ok {
				return
			}
			y.handle(raw)
		}
	}
}

func (y *Youtube) handle(raw []byte) {
	var msg youtubeMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Debugf("youtube adapter: dropping malformed frame message: %s", err)
		return
	}

	switch msg.Event {
	case "onReady":
		y.emit(Ready{})

	case "onStateChange":
		var state int
		if err := json.Unmarshal(msg.Info, &state); err != nil {
			log.Debugf("youtube adapter: malformed state payload: %s", err)
			return
		}
		y.handleState(state)

	case "onError":
		var code int
		if err := json.Unmarshal(msg.Info, &code); err != nil {
			log.Debugf("youtube adapter: malformed error payload: %s", err)
			return
		}
		y.emit(Error{Code: youtubeErrorCode(code)})

	case "infoDelivery":
		var info youtubeInfo
		if err := json.Unmarshal(msg.Info, &info); err != nil {
			log.Debugf("youtube adapter: malformed info payload: %s", err)
			return
		}
		y.handleInfo(info)

	default:
		log.Debugf("youtube adapter: ignoring frame event %q", msg.Event)
	}
}

func (y *Youtube) handleState(state int) {
	switch state {
	case youtubeStateEnded:
		y.setPlaying(false)
		y.emit(End{})
	case youtubeStatePlaying:
		y.setPlaying(true)
		y.emit(Playing{})
		y.emit(Play{})
	case youtubeStatePaused:
		y.setPlaying(false)
		y.emit(Pause{})
	case youtubeStateBuffering:
		y.emit(Waiting{})
	}
}

func (y *Youtube) handleInfo(info youtubeInfo) {
	if info.Duration > 0 && info.Duration != y.durationSec {
		y.durationSec = info.Duration
		y.emit(DurationChange{Duration: int64(info.Duration * 1000)})
	}

	if info.VideoLoadedFraction > 0 {
		y.emit(LoadProgress{
			LoadedStart:   0,
			LoadedPercent: util.Clamp(info.VideoLoadedFraction*100, 0, 100),
		})
	}

	var percent float64
	if y.durationSec > 0 {
		percent = util.Clamp(info.CurrentTime/y.durationSec*100, 0, 100)
	}
	y.emit(PlayProgress{
		Time:    int64(info.CurrentTime * 1000),
		Percent: percent,
	})
}

// youtubeErrorCode maps iframe API error codes onto the closed enum.
func youtubeErrorCode(code int) ErrorCode {
	switch code {
	case 2, 100:
		return MediaErrNoSource
	case 5:
		return MediaErrDecode
	case 101, 150:
		return MediaErrPermission
	default:
		return MediaErrUnknown
	}
}
