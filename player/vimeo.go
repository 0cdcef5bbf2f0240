package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cutplay-cli/cutplay/log"
	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/samber/mo"
)

// Vimeo adapts the Vimeo embed API (Froogaloop-style postMessage
// protocol) to the Player contract. Quality is adaptive; there is no
// definition selection.
type Vimeo struct {
	base
	bridge Bridge
}

// vimeoMessage is one raw frame message of the Vimeo embed API.
type vimeoMessage struct {
	Event string `json:"event"`
	Data  struct {
		Seconds  float64 `json:"seconds"`
		Percent  float64 `json:"percent"`
		Duration float64 `json:"duration"`
		Message  string  `json:"message"`
	} `json:"data"`
}

// vimeoEvents are the frame events the adapter subscribes to once the
// embed reports ready.
var vimeoEvents = []string{
	"loadProgress",
	"playProgress",
	"play",
	"pause",
	"finish",
	"error",
}

func newVimeo(opts Options) (*Vimeo, error) {
	if opts.Bridge == nil {
		return nil, errors.New("player: vimeo backend requires a frame bridge")
	}
	return &Vimeo{
		base:   newBase(opts.ID),
		bridge: opts.Bridge,
	}, nil
}

func (v *Vimeo) Kind() Kind {
	return KindVimeo
}

// SourceURL builds the embed URL of the selected source, carrying the
// player id so frame messages can be routed back.
func (v *Vimeo) SourceURL() mo.Option[string] {
	id := v.sourceID()
	if id == "" {
		return mo.None[string]()
	}
	return mo.Some(fmt.Sprintf("https://player.vimeo.com/video/%s?api=1&player_id=%s", id, v.id))
}

// Definitions returns nil: the embed selects quality adaptively.
func (v *Vimeo) Definitions() []media.Definition {
	return nil
}

func (v *Vimeo) SetDefinition(media.Definition) error {
	return errors.New("player: vimeo backend has no selectable definitions")
}

func (v *Vimeo) Initialize() error {
	if v.markStarted() {
		return nil
	}
	go v.loop()
	return nil
}

// Load switches the embed to the selected source.
func (v *Vimeo) Load() error {
	id := v.sourceID()
	if id == "" {
		v.emit(Error{Code: MediaErrNoSource})
		return nil
	}
	return v.bridge.Send("loadVideo", id)
}

func (v *Vimeo) PlayPause() error {
	if v.IsPlaying() {
		return v.bridge.Send("pause", nil)
	}
	return v.bridge.Send("play", nil)
}

func (v *Vimeo) SetVolume(level int) error {
	return v.bridge.Send("setVolume", float64(util.Clamp(level, 0, 100))/100)
}

func (v *Vimeo) Seek(ms int64) error {
	return v.bridge.Send("seekTo", float64(ms)/1000)
}

func (v *Vimeo) Destroy() error {
	if !v.teardown() {
		return nil
	}
	return v.bridge.Close()
}

func (v *Vimeo) loop() {
	defer close(v.events)

	for {
		select {
		case <-v.done:
			return
		case raw, ok := <-v.bridge.Messages():
			if !ok {
				return
			}
			v.handle(raw)
		}
	}
}

func (v *Vimeo) handle(raw []byte) {
	var msg vimeoMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Debugf("vimeo adapter: dropping malformed frame message: %s", err)
		return
	}

	switch msg.Event {
	case "ready":
		for _, event := range vimeoEvents {
			if err := v.bridge.Send("addEventListener", event); err != nil {
				log.Warnf("vimeo adapter: subscribing to %s: %s", event, err)
			}
		}
		v.emit(Ready{})

	case "loadProgress":
		if msg.Data.Duration > 0 {
			v.emit(DurationChange{Duration: int64(msg.Data.Duration * 1000)})
		}
		v.emit(LoadProgress{
			LoadedStart:   0,
			LoadedPercent: util.Clamp(msg.Data.Percent*100, 0, 100),
		})

	case "playProgress":
		v.emit(PlayProgress{
			Time:    int64(msg.Data.Seconds * 1000),
			Percent: util.Clamp(msg.Data.Percent*100, 0, 100),
		})

	case "play":
		v.setPlaying(true)
		v.emit(Play{})

	case "pause":
		v.setPlaying(false)
		v.emit(Pause{})

	case "finish":
		v.setPlaying(false)
		v.emit(End{})

	case "error":
		v.emit(Error{Code: vimeoErrorCode(msg.Data.Message)})

	default:
		log.Debugf("vimeo adapter: ignoring frame event %q", msg.Event)
	}
}

// vimeoErrorCode maps the embed's textual errors onto the closed enum.
// Privacy and embedding restrictions surface as permission errors.
func vimeoErrorCode(message string) ErrorCode {
	lowered := strings.ToLower(message)
	switch {
	case strings.Contains(lowered, "privacy"), strings.Contains(lowered, "password"), strings.Contains(lowered, "embed"):
		return MediaErrPermission
	case strings.Contains(lowered, "not found"):
		return MediaErrNoSource
	default:
		return MediaErrUnknown
	}
}
