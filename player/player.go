// Package player defines a unified abstraction layer for media playback backends.
//
// The architecture supports multiple backends behind one contract: a
// native HTML5 media element, a Vimeo embed bridge and a YouTube
// iframe bridge. Each adapter normalizes its backend's native event
// vocabulary onto the closed Event set of this package, with times
// expressed in milliseconds at the adapter boundary.
package player

import (
	"fmt"

	"github.com/cutplay-cli/cutplay/media"
	"github.com/samber/mo"
)

// Kind identifies a playback backend variant.
type Kind string

const (
	KindHTML    Kind = "html"
	KindVimeo   Kind = "vimeo"
	KindYoutube Kind = "youtube"
)

// Kinds returns all registered backend kinds.
func Kinds() []Kind {
	return []Kind{KindHTML, KindVimeo, KindYoutube}
}

// ParseKind validates a backend name from configuration.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindHTML, KindVimeo, KindYoutube:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("unknown player backend: %s", name)
	}
}

// Player encapsulates the required capabilities of a playback backend.
//
// Construction happens through New; Initialize performs the deferred
// setup that needs the native surface to exist and must be called
// before Load. Destroy releases the backend and unregisters all
// listeners synchronously; no events are delivered afterwards.
type Player interface {
	// SetMedia replaces the media descriptor. Fails on nil media.
	SetMedia(m *media.Media) error

	// SetSource selects among parallel source definitions (e.g. multi-camera).
	SetSource(index int) error

	// SourceIndex returns the selected parallel source index.
	SourceIndex() int

	// SourceURL returns the embeddable URL of the selected source.
	// Only iframe-based backends have one.
	SourceURL() mo.Option[string]

	// MIME returns the definition's MIME type, defaulting to video/mp4.
	MIME(def media.Definition) string

	// Definitions returns the selectable quality variants of the
	// current source, or nil when the backend manages quality
	// adaptively with no user-facing choice.
	Definitions() []media.Definition

	// Thumbnail returns the media poster image URL.
	Thumbnail() string

	// Initialize performs deferred setup once the native surface
	// exists and starts event delivery.
	Initialize() error

	// Load (re)loads the currently selected source and definition.
	Load() error

	// IsPaused reports whether playback is suspended.
	IsPaused() bool

	// IsPlaying reports whether playback is running.
	IsPlaying() bool

	// PlayPause toggles between the two states.
	PlayPause() error

	// SetVolume sets the playback volume, 0-100.
	SetVolume(level int) error

	// Seek moves playback to an absolute position in real milliseconds.
	Seek(ms int64) error

	// SetDefinition switches the active quality, reloading if necessary.
	SetDefinition(def media.Definition) error

	// Kind returns the backend variant identifier.
	Kind() Kind

	// ID returns the player instance identifier.
	ID() string

	// Events returns the normalized event stream. The channel closes
	// on Destroy.
	Events() <-chan Event

	// Destroy releases all backend resources and listeners.
	Destroy() error
}

// Options carries the construction inputs of an adapter.
type Options struct {
	// ID identifies the player instance (used in embed URLs).
	ID string

	// Element is the native media element surface. Required by the
	// html backend.
	Element Element

	// Bridge is the message channel to an embedded player frame.
	// Required by the vimeo and youtube backends.
	Bridge Bridge
}

// New constructs the adapter for the requested backend kind.
// Backends are a closed set resolved here at construction time; there
// is no runtime service lookup.
func New(kind Kind, opts Options) (Player, error) {
	switch kind {
	case KindHTML:
		return newHTML(opts)
	case KindVimeo:
		return newVimeo(opts)
	case KindYoutube:
		return newYoutube(opts)
	default:
		return nil, fmt.Errorf("unknown player backend: %s", kind)
	}
}
