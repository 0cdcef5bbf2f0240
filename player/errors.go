package player

// ErrorCode is the closed enumeration of playback failure causes.
// Every backend's native error space maps onto exactly this set.
type ErrorCode int

const (
	MediaErrUnknown ErrorCode = iota
	MediaErrNoSource
	MediaErrAborted
	MediaErrNetwork
	MediaErrDecode
	MediaErrSrcNotSupported
	MediaErrPermission
)

// String returns the stable identifier of the code.
func (c ErrorCode) String() string {
	switch c {
	case MediaErrNoSource:
		return "MEDIA_ERR_NO_SOURCE"
	case MediaErrAborted:
		return "MEDIA_ERR_ABORTED"
	case MediaErrNetwork:
		return "MEDIA_ERR_NETWORK"
	case MediaErrDecode:
		return "MEDIA_ERR_DECODE"
	case MediaErrSrcNotSupported:
		return "MEDIA_ERR_SRC_NOT_SUPPORTED"
	case MediaErrPermission:
		return "MEDIA_ERR_PERMISSION"
	default:
		return "MEDIA_ERR_UNKNOWN"
	}
}

// Message returns the user-facing description of the code.
// Unrecognized codes fall back to the generic message.
func (c ErrorCode) Message() string {
	switch c {
	case MediaErrNoSource:
		return "No playable source is available for this media"
	case MediaErrAborted:
		return "Media loading was aborted"
	case MediaErrNetwork:
		return "A network error interrupted media loading"
	case MediaErrDecode:
		return "The media could not be decoded"
	case MediaErrSrcNotSupported:
		return "The media format is not supported by this backend"
	case MediaErrPermission:
		return "Playback of this media is not permitted"
	default:
		return "An unknown playback error occurred"
	}
}
