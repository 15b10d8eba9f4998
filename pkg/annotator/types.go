package annotator

import (
	"DermaGolang/internal/entity"
)

type PrimitiveKind int

const (
	// ClosedContour is a stroked closed outline (crescents, region contours).
	ClosedContour PrimitiveKind = iota
	// OpenArc is a stroked open polyline (wrinkle lines).
	OpenArc
	// ScatterCloud is a set of small filled dots inside a region.
	ScatterCloud
)

// Primitive is the drawable shape synthesized for one issue. Smoothed is false
// when curve fitting degraded to the raw point sequence.
type Primitive struct {
	Kind     PrimitiveKind
	Points   []entity.Point
	Smoothed bool
}

// DrawnIssue pairs a synthesized primitive with the issue ordering and
// severity the compositor needs. Primitive is nil when the issue resolved to
// no drawable geometry; such issues still occupy their legend slot.
type DrawnIssue struct {
	Index     int
	Severity  entity.Severity
	Primitive *Primitive
}

// LegendEntry is one legend row. Entries are generated in issue-list order and
// the ordering is significant: row numbers must match the on-image markers.
type LegendEntry struct {
	Index    int
	Label    string
	Severity entity.Severity
}
