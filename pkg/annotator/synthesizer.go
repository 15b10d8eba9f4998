package annotator

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"DermaGolang/internal/entity"
	"DermaGolang/pkg/geometry"
)

var lineIssueTypes = []string{
	"wrinkle", "fine_line", "fine line", "crow", "fold", "furrow", "frown",
}

var scatterIssueTypes = []string{
	"acne", "pimple", "spot", "pore", "blackhead", "whitehead", "blemish",
	"redness", "rosacea", "comedone", "milia", "bump", "texture",
}

// Synthesize turns one issue's resolved anchor points into a drawable
// primitive. A nil result means the issue has no drawable geometry (no anchor
// points); the caller keeps its legend entry regardless. Curve-fitting
// degradation never surfaces as an error: the primitive carries the raw
// points with Smoothed=false instead.
func Synthesize(issue entity.Issue, points []entity.Point, imageHeight int, opts Options, seed int64) *Primitive {
	if len(points) == 0 {
		return nil
	}

	typ := strings.ToLower(issue.Type)
	region := strings.ToLower(issue.Region)

	switch {
	case isDarkCircleIssue(typ, region):
		return synthesizeCrescent(points, imageHeight, opts)

	case matchesAny(typ, lineIssueTypes) && len(points) > 3:
		sorted := sortByX(points)
		fit := geometry.FitCurve(sorted, false, geometry.SmoothingModerate, opts.ArcSamples)
		return &Primitive{Kind: OpenArc, Points: fit.Points, Smoothed: fit.Smoothed}

	case matchesAny(typ, scatterIssueTypes):
		// Region anchors are unordered bags; the hull gives a simple polygon
		// for the containment test.
		hull := geometry.ConvexHull(points)
		dots := geometry.ScatterInside(hull, scatterTarget(issue.Severity), seed)
		return &Primitive{Kind: ScatterCloud, Points: dots, Smoothed: false}

	case isContourRegion(region):
		// Eye and lip anchors arrive in contour order; fit through them directly.
		fit := geometry.FitCurve(points, true, geometry.SmoothingModerate, opts.ContourSamples)
		return &Primitive{Kind: ClosedContour, Points: fit.Points, Smoothed: fit.Smoothed}

	default:
		hull := geometry.ConvexHull(points)
		fit := geometry.FitCurve(hull, true, geometry.SmoothingModerate, opts.ContourSamples)
		return &Primitive{Kind: ClosedContour, Points: fit.Points, Smoothed: fit.Smoothed}
	}
}

// synthesizeCrescent builds the closed dark-circle crescent: anchors sorted
// left to right, lifted towards the lower eyelid, fitted as the upper edge,
// duplicated downwards as the lower edge, then the joined loop is re-smoothed
// hard to remove the sharp joins at both ends.
func synthesizeCrescent(points []entity.Point, imageHeight int, opts Options) *Primitive {
	sorted := sortByX(points)

	lift := opts.CrescentLiftRatio * float64(imageHeight)
	upper := make([]entity.Point, len(sorted))
	for i, p := range sorted {
		upper[i] = entity.Point{X: p.X, Y: p.Y - lift}
	}

	upperFit := geometry.FitCurve(upper, false, geometry.SmoothingModerate, opts.ArcSamples)

	drop := opts.CrescentDropRatio * float64(imageHeight)
	lower := make([]entity.Point, len(upperFit.Points))
	for i, p := range upperFit.Points {
		lower[i] = entity.Point{X: p.X, Y: p.Y + drop}
	}

	loop := make([]entity.Point, 0, len(upperFit.Points)+len(lower))
	loop = append(loop, upperFit.Points...)
	for i := len(lower) - 1; i >= 0; i-- {
		loop = append(loop, lower[i])
	}

	final := geometry.FitCurve(loop, true, geometry.SmoothingHigh, opts.ContourSamples)
	return &Primitive{Kind: ClosedContour, Points: final.Points, Smoothed: final.Smoothed && upperFit.Smoothed}
}

// IssueSeed derives the deterministic scatter seed for one issue. It depends
// only on the issue's position and identity, never on wall clock or global
// entropy, so identical requests reproduce identical clouds.
func IssueSeed(index int, issue entity.Issue) int64 {
	h := fnv.New64a()
	h.Write([]byte(strconv.Itoa(index)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(issue.Type)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(issue.Region)))
	return int64(h.Sum64())
}

func isDarkCircleIssue(typ, region string) bool {
	if matchesAny(typ, darkCircleIssueTypes) {
		return true
	}
	return strings.Contains(region, "under") && strings.Contains(region, "eye")
}

var darkCircleIssueTypes = []string{
	"dark_circle", "dark circle", "darkcircle", "under_eye_circle",
	"eye_bag", "eyebag", "tear_trough", "periorbital",
}

func isContourRegion(region string) bool {
	if strings.Contains(region, "brow") {
		return false
	}
	return strings.Contains(region, "eye") ||
		strings.Contains(region, "lip") ||
		strings.Contains(region, "mouth")
}

func matchesAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func sortByX(points []entity.Point) []entity.Point {
	out := make([]entity.Point, len(points))
	copy(out, points)
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}
