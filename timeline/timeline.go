// Package timeline implements the cut-aware time mapping engine for one playback session.
//
// A Timeline owns the cut window declared by a media descriptor and
// converts between "real" values, measured against the original uncut
// media, and "cut" (virtual) values, measured against the user-visible
// trimmed window. It also filters and rebases the descriptor's points
// of interest against that window.
//
// All methods are synchronous and the type is meant to be owned by a
// single session; it carries no locking of its own.
package timeline

import (
	"errors"

	"github.com/cutplay-cli/cutplay/media"
	"github.com/cutplay-cli/cutplay/util"
	"github.com/samber/mo"
)

// Timeline holds the cut window state and the real media duration.
// The zero value is ready to use; cuts stay inactive until SetMedia
// finds a valid cut declaration.
type Timeline struct {
	media        *media.Media
	cutStart     int64
	cutEnd       mo.Option[int64]
	cutsEnabled  bool
	realDuration int64
}

// New returns a Timeline with no media attached.
func New() *Timeline {
	return &Timeline{}
}

// SetMedia replaces the session media wholesale and recomputes the cut
// window from its cut edges. The edge scan is order-independent: begin
// and end are located wherever they sit in the list. A negative begin
// clamps to zero; an inverted window (begin >= end) disables cuts
// entirely rather than failing, since cut data historically came from
// several upstream schema versions.
func (t *Timeline) SetMedia(m *media.Media) error {
	if m == nil {
		return errors.New("timeline: media is required")
	}

	t.media = m
	t.cutStart = 0
	t.cutEnd = mo.None[int64]()
	t.cutsEnabled = false

	if len(m.Cut) == 0 {
		return nil
	}

	for _, edge := range m.Cut {
		switch edge.Type {
		case media.EdgeBegin:
			t.cutStart = util.Max(edge.Value, 0)
		case media.EdgeEnd:
			t.cutEnd = mo.Some(edge.Value)
		}
	}

	if end, ok := t.cutEnd.Get(); ok && t.cutStart >= end {
		t.cutStart = 0
		t.cutEnd = mo.None[int64]()
		return nil
	}

	t.cutsEnabled = true
	return nil
}

// Media returns the attached media descriptor, or nil.
func (t *Timeline) Media() *media.Media {
	return t.media
}

// SetRealDuration records the authoritative media duration, which the
// backend typically reports only after load. A duration shorter than
// the declared cut window invalidates the window: the edges reset and
// the timeline degrades to identity transforms.
func (t *Timeline) SetRealDuration(duration int64) {
	t.realDuration = duration

	end, hasEnd := t.cutEnd.Get()
	if t.cutStart >= duration || (hasEnd && end > duration) {
		t.cutStart = 0
		t.cutEnd = mo.None[int64]()
	}
}

// RealDuration returns the recorded duration of the uncut media, or 0
// when it is not yet known.
func (t *Timeline) RealDuration() int64 {
	return t.realDuration
}

// SetCutsEnabled force-enables or disables cut behaviour regardless of
// the declared cut edges, without discarding them.
func (t *Timeline) SetCutsEnabled(enabled bool) {
	t.cutsEnabled = enabled
}

// CutsEnabled reports whether cut behaviour is currently active.
func (t *Timeline) CutsEnabled() bool {
	return t.cutsEnabled
}

// CutStart returns the start edge of the cut window in real
// milliseconds, or 0 when cuts are inactive.
func (t *Timeline) CutStart() int64 {
	if !t.cutsEnabled {
		return 0
	}
	return t.cutStart
}

// CutEnd returns the end edge of the cut window in real milliseconds.
// An unset end edge means "end of media", so the real duration is
// substituted when known. Returns 0 when cuts are inactive.
func (t *Timeline) CutEnd() int64 {
	if !t.cutsEnabled {
		return 0
	}
	if end, ok := t.cutEnd.Get(); ok {
		return end
	}
	return t.realDuration
}

// RealTime converts a cut-relative timestamp to real media time.
// Identity when cuts are inactive.
func (t *Timeline) RealTime(cutTime int64) int64 {
	if !t.cutsEnabled {
		return cutTime
	}
	return cutTime + t.CutStart()
}

// CutTime converts a real timestamp to cut-relative time. The result
// never goes negative: positions before the cut start map to 0.
// Identity when cuts are inactive.
func (t *Timeline) CutTime(realTime int64) int64 {
	if !t.cutsEnabled {
		return realTime
	}
	return util.Max(realTime-t.CutStart(), 0)
}

// CutDuration returns the length of the visible window in
// milliseconds: the cut window when active, the real duration
// otherwise, 0 while the duration is unknown.
func (t *Timeline) CutDuration() int64 {
	if t.realDuration == 0 {
		return 0
	}
	if t.cutsEnabled {
		return t.CutEnd() - t.CutStart()
	}
	return t.realDuration
}

// Duration returns the apparent media length as seen by consumers:
// the cut duration when cuts are active, the real duration otherwise.
func (t *Timeline) Duration() int64 {
	if !t.cutsEnabled {
		return t.realDuration
	}
	return t.CutDuration()
}

// CutPercent converts a percentage of the full media into a percentage
// of the cut window, clamped to [0, 100]. The input is returned
// unchanged while the real duration is unknown.
func (t *Timeline) CutPercent(realPercent float64) float64 {
	if t.realDuration == 0 {
		return realPercent
	}

	cutDuration := t.CutDuration()
	if cutDuration == 0 {
		return util.Clamp(realPercent, 0, 100)
	}

	realTime := float64(t.realDuration) * realPercent / 100
	percent := (realTime - float64(t.CutStart())) / float64(cutDuration) * 100
	return util.Clamp(percent, 0, 100)
}

// CutDurationPercent rescales a duration quantity expressed as a
// percentage of the full media (e.g. a buffered length) into a
// percentage of the cut window. Unlike CutPercent there is no offset
// by the cut start: only the scale changes. Clamped to [0, 100],
// identity while the real duration is unknown.
func (t *Timeline) CutDurationPercent(realDurationPercent float64) float64 {
	if t.realDuration == 0 {
		return realDurationPercent
	}

	cutDuration := t.CutDuration()
	if cutDuration == 0 {
		return util.Clamp(realDurationPercent, 0, 100)
	}

	realTime := float64(t.realDuration) * realDurationPercent / 100
	return util.Clamp(realTime/float64(cutDuration)*100, 0, 100)
}

// Percent maps a cut-relative timestamp to a percentage of the
// apparent duration, clamped to [0, 100]. Returns 0 while the duration
// is unknown.
func (t *Timeline) Percent(cutTime int64) float64 {
	duration := t.Duration()
	if duration == 0 {
		return 0
	}
	return util.Clamp(float64(cutTime)/float64(duration)*100, 0, 100)
}

// TimeFromPercent is the inverse of Percent: it maps a percentage of
// the apparent duration back to a cut-relative timestamp.
func (t *Timeline) TimeFromPercent(percent float64) int64 {
	return int64(float64(t.Duration()) * percent / 100)
}

// DurationPercent rescales a duration percentage of the cut window
// back into a percentage of the full media, the inverse direction of
// CutDurationPercent. Clamped to [0, 100], identity while the real
// duration is unknown.
func (t *Timeline) DurationPercent(percent float64) float64 {
	if t.realDuration == 0 {
		return percent
	}
	return util.Clamp(percent*float64(t.CutDuration())/float64(t.realDuration), 0, 100)
}

// active reports whether cut filtering applies to point of interest
// queries: cuts must be enabled and the duration known.
func (t *Timeline) active() bool {
	return t.cutsEnabled && t.realDuration != 0
}
