package media

// EdgeType discriminates the two kinds of cut edges.
type EdgeType string

const (
	EdgeBegin EdgeType = "begin"
	EdgeEnd   EdgeType = "end"
)

// CutEdge marks one edge of the user-visible trimmed window.
// A descriptor carries at most one edge of each type; order within
// the list is not significant.
type CutEdge struct {
	Type EdgeType `json:"type"`
	// Value is the edge position in milliseconds of real media time.
	Value int64 `json:"value"`
}
