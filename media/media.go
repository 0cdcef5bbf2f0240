// Package media defines the domain model for playable media descriptors.
//
// Descriptors historically come from several schema versions of an
// upstream system, so decoding is lenient: legacy scalar fields are
// coerced into their modern shapes instead of being rejected.
package media

import (
	"encoding/json"
)

// Media describes one playable item: its source identifiers, the
// per-definition files of each parallel source, the presentation
// timecodes (slides), chapters and tags anchored to real media time,
// and an optional cut window trimming the visible portion.
type Media struct {
	// ID holds one identifier per parallel source (e.g. multi-camera).
	ID IDList `json:"mediaId,omitempty"`

	// Sources holds the per-definition files of each parallel source,
	// aligned index-for-index with ID.
	Sources []Source `json:"sources,omitempty"`

	Timecodes []Timecode        `json:"timecodes,omitempty"`
	Chapters  []PointOfInterest `json:"chapters,omitempty"`
	Tags      []PointOfInterest `json:"tags,omitempty"`
	Cut       []CutEdge         `json:"cut,omitempty"`
	Thumbnail string            `json:"thumbnail,omitempty"`
}

// IDList is a list of source identifiers. Legacy descriptors carry a
// scalar string here; it decodes as a single-element list.
type IDList []string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = IDList{one}
	return nil
}

// Source groups the selectable definitions of one parallel source.
type Source struct {
	Files []Definition `json:"files,omitempty"`
}

// Definition is a selectable quality/bitrate variant of a source.
type Definition struct {
	URL     string `json:"link"`
	MIME    string `json:"mimeType,omitempty"`
	Quality string `json:"definition,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// String returns the quality label or URL for display.
func (d Definition) String() string {
	if d.Quality != "" {
		return d.Quality
	}
	return d.URL
}

// Image holds the two rendition URLs of a presentation slide.
type Image struct {
	Small string `json:"small,omitempty"`
	Large string `json:"large,omitempty"`
}

// Timecode anchors a presentation slide to real media time.
type Timecode struct {
	// Timecode is the anchor in milliseconds relative to the original, uncut media.
	Timecode int64 `json:"timecode"`
	Image    Image `json:"image"`
}

// PointOfInterest is a chapter or tag: a named anchor in real media time.
type PointOfInterest struct {
	// Value is the anchor in milliseconds relative to the original, uncut media.
	Value       int64  `json:"value"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}
