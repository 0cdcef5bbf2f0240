package timeline

import (
	"sort"

	"github.com/cutplay-cli/cutplay/media"
	"github.com/samber/mo"
)

// Point of interest collection names accepted by PointsOfInterest and
// FindPointOfInterest. Timecodes have their own typed accessors since
// they carry a different payload.
const (
	CollectionChapters = "chapters"
	CollectionTags     = "tags"
)

// Timecodes returns the presentation timecodes visible in the current
// window, sorted ascending and rebased to cut-relative time when cuts
// apply. A timecode sitting exactly on either cut edge is kept, since
// the slide shown at the edge is still the slide the viewer sees.
//
// When the slide that was showing as the cut begins lies before the
// window, it is carried forward: the latest timecode before the cut
// start is prepended with its time forced to 0. The result is always a
// copy; caller data is never mutated or aliased.
func (t *Timeline) Timecodes() []media.Timecode {
	if t.media == nil {
		return nil
	}

	sorted := sortedByTime(t.media.Timecodes, timecodeAnchor)
	if !t.active() {
		return sorted
	}

	return cutWindow(sorted, timecodeAnchor, rebaseTimecode, t.CutStart(), t.CutEnd(), true)
}

// TimecodesByTime re-indexes the visible timecodes into a mapping from
// cut-relative milliseconds to slide images.
func (t *Timeline) TimecodesByTime() map[int64]media.Image {
	indexed := make(map[int64]media.Image)
	for _, tc := range t.Timecodes() {
		indexed[tc.Timecode] = tc.Image
	}
	return indexed
}

// PointsOfInterest returns the chapters or tags visible in the current
// window, rebased to cut-relative time when cuts apply. Unlike
// timecodes, a point sitting exactly on a cut edge is excluded: a
// chapter marker at the very edge of the trim is noise, not content.
// Unknown collection names yield an empty result rather than an error.
//
// With cuts inactive the collection is returned in its original order;
// with cuts active the result is sorted ascending. Either way the
// result is a copy isolated from internal state.
func (t *Timeline) PointsOfInterest(collection string) []media.PointOfInterest {
	if t.media == nil {
		return nil
	}

	var items []media.PointOfInterest
	switch collection {
	case CollectionChapters:
		items = t.media.Chapters
	case CollectionTags:
		items = t.media.Tags
	default:
		return nil
	}

	if !t.active() {
		out := make([]media.PointOfInterest, len(items))
		copy(out, items)
		return out
	}

	sorted := sortedByTime(items, poiAnchor)
	return cutWindow(sorted, poiAnchor, rebasePOI, t.CutStart(), t.CutEnd(), false)
}

// RebasePointsOfInterest returns a copy of the list with every anchor
// shifted by the current cut start. It is a one-shot transform for
// callers that fetched points before the duration was known; applying
// it to an already rebased list would shift the anchors twice, which
// is why it returns a fresh slice instead of mutating its input.
func (t *Timeline) RebasePointsOfInterest(items []media.PointOfInterest) []media.PointOfInterest {
	start := t.CutStart()
	out := make([]media.PointOfInterest, len(items))
	for i, item := range items {
		item.Value -= start
		out[i] = item
	}
	return out
}

// FindPointOfInterest returns the closest chapter or tag at or before
// the queried cut-relative time, after the same window filtering as
// PointsOfInterest. None is returned for unknown collections, empty
// windows, or when every candidate lies in the future.
func (t *Timeline) FindPointOfInterest(collection string, at int64) mo.Option[media.PointOfInterest] {
	found := mo.None[media.PointOfInterest]()

	for _, item := range t.PointsOfInterest(collection) {
		if item.Value > at {
			continue
		}
		if best, ok := found.Get(); !ok || item.Value >= best.Value {
			found = mo.Some(item)
		}
	}

	return found
}

// Anchor accessors and rebase helpers for the two point shapes.

func timecodeAnchor(tc media.Timecode) int64 { return tc.Timecode }

func poiAnchor(p media.PointOfInterest) int64 { return p.Value }

func rebaseTimecode(tc media.Timecode, at int64) media.Timecode {
	tc.Timecode = at
	return tc
}

func rebasePOI(p media.PointOfInterest, at int64) media.PointOfInterest {
	p.Value = at
	return p
}

// sortedByTime returns a stably sorted copy of items, ascending by anchor.
func sortedByTime[T any](items []T, anchor func(T) int64) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return anchor(sorted[i]) < anchor(sorted[j])
	})
	return sorted
}

// cutWindow walks a sorted point list once and keeps what falls inside
// [start, end] (inclusive edges) or (start, end) (exclusive edges),
// rebasing each kept anchor to cut-relative time. The latest point
// before the window is remembered and, when the window does not start
// with a point at exactly 0, prepended with its anchor forced to 0 so
// the state in effect as the cut begins carries into the visible
// window.
func cutWindow[T any](sorted []T, anchor func(T) int64, rebase func(T, int64) T, start, end int64, inclusive bool) []T {
	var (
		out        []T
		lastBefore mo.Option[T]
	)

	for _, item := range sorted {
		at := anchor(item)
		if at > end {
			break
		}

		var inside bool
		if inclusive {
			inside = at >= start && at <= end
		} else {
			inside = at > start && at < end
		}

		switch {
		case inside:
			out = append(out, rebase(item, at-start))
		case at < start:
			lastBefore = mo.Some(item)
		}
	}

	if carried, ok := lastBefore.Get(); ok {
		if len(out) == 0 || anchor(out[0]) != 0 {
			out = append([]T{rebase(carried, 0)}, out...)
		}
	}

	return out
}
