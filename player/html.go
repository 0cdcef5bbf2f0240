package player

import (
	"errors"

	"github.com/cutplay-cli/cutplay/log"
	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/samber/mo"
)

// HTML adapts a native HTML5 media element to the Player contract.
// It is the only backend with user-facing definition selection; the
// iframe backends manage quality adaptively.
type HTML struct {
	base
	element    Element
	definition mo.Option[media.Definition]

	// durationSec caches the element-reported duration for percent
	// computations on progress events.
	durationSec float64
}

func newHTML(opts Options) (*HTML, error) {
	if opts.Element == nil {
		return nil, errors.New("player: html backend requires a media element")
	}
	return &HTML{
		base:    newBase(opts.ID),
		element: opts.Element,
	}, nil
}

func (h *HTML) Kind() Kind {
	return KindHTML
}

// SourceURL returns None: the html backend plays files directly and
// has no embeddable frame URL.
func (h *HTML) SourceURL() mo.Option[string] {
	return mo.None[string]()
}

// Definitions lists the quality variants of the selected source.
func (h *HTML) Definitions() []media.Definition {
	if h.media == nil || h.sourceIndex >= len(h.media.Sources) {
		return nil
	}

	files := h.media.Sources[h.sourceIndex].Files
	out := make([]media.Definition, len(files))
	copy(out, files)
	return out
}

func (h *HTML) SetMedia(m *media.Media) error {
	if err := h.base.SetMedia(m); err != nil {
		return err
	}
	h.definition = mo.None[media.Definition]()
	return nil
}

func (h *HTML) SetSource(index int) error {
	if err := h.base.SetSource(index); err != nil {
		return err
	}
	h.definition = mo.None[media.Definition]()
	return nil
}

// Initialize starts consuming element notifications. Idempotent.
func (h *HTML) Initialize() error {
	if h.markStarted() {
		return nil
	}
	go h.loop()
	return nil
}

// Load points the element at the selected definition, falling back to
// the first available one. A missing source surfaces as a playback
// error event rather than a hard failure.
func (h *HTML) Load() error {
	def, ok := h.definition.Get()
	if !ok {
		definitions := h.Definitions()
		if len(definitions) == 0 {
			h.emit(Error{Code: MediaErrNoSource})
			return nil
		}
		def = definitions[0]
		h.definition = mo.Some(def)
	}

	return h.element.Load(def.URL, h.MIME(def))
}

func (h *HTML) PlayPause() error {
	if h.IsPlaying() {
		return h.element.Pause()
	}
	return h.element.Play()
}

func (h *HTML) SetVolume(level int) error {
	return h.element.SetVolume(float64(util.Clamp(level, 0, 100)) / 100)
}

func (h *HTML) Seek(ms int64) error {
	return h.element.SetCurrentTime(float64(ms) / 1000)
}

// SetDefinition switches the active quality and reloads the element.
func (h *HTML) SetDefinition(def media.Definition) error {
	h.definition = mo.Some(def)
	return h.Load()
}

func (h *HTML) Destroy() error {
	if !h.teardown() {
		return nil
	}
	return h.element.Release()
}

func (h *HTML) loop() {
	defer close(h.events)

	for {
		select {
		case <-h.done:
			return
		case ev, ok := <-h.element.Notifications():
			if !ok {
				return
			}
			h.handle(ev)
		}
	}
}

// handle normalizes one raw element event onto the adapter vocabulary,
// converting seconds to milliseconds at the boundary.
func (h *HTML) handle(ev ElementEvent) {
	switch ev.Name {
	case elementLoadedMetadata:
		h.durationSec = h.element.Duration()
		h.emit(DurationChange{Duration: int64(h.durationSec * 1000)})
		h.emit(Ready{})

	case elementDurationChange:
		h.durationSec = h.element.Duration()
		h.emit(DurationChange{Duration: int64(h.durationSec * 1000)})

	case elementWaiting:
		h.emit(Waiting{})

	case elementPlaying:
		h.setPlaying(true)
		h.emit(Playing{})

	case elementPlay:
		h.setPlaying(true)
		h.emit(Play{})

	case elementPause:
		h.setPlaying(false)
		h.emit(Pause{})

	case elementProgress:
		if h.durationSec == 0 {
			return
		}
		h.emit(LoadProgress{
			LoadedStart:   util.Clamp(ev.BufferedStart/h.durationSec*100, 0, 100),
			LoadedPercent: util.Clamp((ev.BufferedEnd-ev.BufferedStart)/h.durationSec*100, 0, 100),
		})

	case elementTimeUpdate:
		var percent float64
		if h.durationSec > 0 {
			percent = util.Clamp(ev.Seconds/h.durationSec*100, 0, 100)
		}
		h.emit(PlayProgress{Time: int64(ev.Seconds * 1000), Percent: percent})

	case elementEnded:
		h.setPlaying(false)
		h.emit(End{})

	case elementError:
		h.emit(Error{Code: htmlErrorCode(ev.ErrorCode)})

	default:
		log.Debugf("html adapter: ignoring element event %q", ev.Name)
	}
}

// htmlErrorCode maps native MediaError codes onto the closed enum.
func htmlErrorCode(native int) ErrorCode {
	switch native {
	case 1:
		return MediaErrAborted
	case 2:
		return MediaErrNetwork
	case 3:
		return MediaErrDecode
	case 4:
		return MediaErrSrcNotSupported
	default:
		return MediaErrUnknown
	}
}
