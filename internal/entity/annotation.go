package entity

import (
	"strings"
	"time"
)

type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere, SeverityCritical:
		return true
	}
	return false
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Issue struct {
	Type           string   `json:"type"`
	Region         string   `json:"region"`
	Severity       Severity `json:"severity"`
	ResolvedPoints []Point  `json:"resolved_points,omitempty"`
}

// Label builds the human readable legend text, e.g. "Left Eye: Dark Circles".
func (i Issue) Label() string {
	region := titleWords(i.Region)
	issue := titleWords(i.Type)
	if region == "" {
		return issue
	}
	return region + ": " + issue
}

func titleWords(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// AnchorFrame holds the detected anchor points of a single face in image pixel
// space. It is produced once per request and read-only afterwards.
type AnchorFrame struct {
	Points []Point
}

func (f AnchorFrame) HasFace() bool {
	return len(f.Points) > 0
}

// Select returns the pixel coordinates for the given topology indices.
// Indices outside the detected set are skipped.
func (f AnchorFrame) Select(indices []int) []Point {
	pts := make([]Point, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(f.Points) {
			continue
		}
		pts = append(pts, f.Points[idx])
	}
	return pts
}

type AnnotationRecord struct {
	ID            string
	RequestID     string
	Status        string
	IssueCount    int
	RenderedCount int
	ImageWidth    int
	ImageHeight   int
	ImageURL      string
	CreatedAt     time.Time
}
