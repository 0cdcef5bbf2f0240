package player

// Element is the minimal surface of a native HTML5 media element the
// html adapter drives. Times are in seconds and volume in [0, 1],
// matching the native API; the adapter converts to the millisecond
// contract of this package.
type Element interface {
	// Load points the element at a source URL with its MIME type.
	Load(url, mimeType string) error

	Play() error
	Pause() error
	Paused() bool

	// Duration returns the media length in seconds, 0 while unknown.
	Duration() float64

	CurrentTime() float64
	SetCurrentTime(seconds float64) error

	// SetVolume sets the native volume, 0-1.
	SetVolume(volume float64) error

	// Release detaches the element and closes its notification channel.
	Release() error

	// Notifications delivers the element's raw events. The channel
	// closes on Release.
	Notifications() <-chan ElementEvent
}

// ElementEvent mirrors one raw HTML5 media element event.
type ElementEvent struct {
	// Name is the native event name: loadedmetadata, durationchange,
	// waiting, playing, play, pause, progress, timeupdate, ended,
	// error.
	Name string

	// Seconds is the playback position for timeupdate events.
	Seconds float64

	// BufferedStart and BufferedEnd delimit the buffered range in
	// seconds for progress events.
	BufferedStart float64
	BufferedEnd   float64

	// ErrorCode is the native MediaError code (1-4) for error events.
	ErrorCode int
}

// Native HTML5 media element event names.
const (
	elementLoadedMetadata = "loadedmetadata"
	elementDurationChange = "durationchange"
	elementWaiting        = "waiting"
	elementPlaying        = "playing"
	elementPlay           = "play"
	elementPause          = "pause"
	elementProgress       = "progress"
	elementTimeUpdate     = "timeupdate"
	elementEnded          = "ended"
	elementError          = "error"
)

// Bridge is a message channel to an embedded player frame. The host
// page relays Send calls to the frame and feeds the frame's raw
// messages back through Messages.
type Bridge interface {
	// Send relays a backend method invocation to the frame.
	Send(method string, value any) error

	// Messages delivers the frame's raw messages. The channel closes
	// on Close.
	Messages() <-chan []byte

	// Close tears the channel down.
	Close() error
}
