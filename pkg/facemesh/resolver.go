package facemesh

import "strings"

// Issue types that always map to the tear-trough subset, regardless of what
// the free-text region says. Clinical issue type is considered more reliable
// than the region label, so the type check runs first.
var darkCircleTypes = []string{
	"dark_circle",
	"dark circle",
	"darkcircle",
	"under_eye_circle",
	"eye_bag",
	"eyebag",
	"tear_trough",
	"periorbital",
}

// Resolve maps a free-text region label plus an issue-type hint to anchor
// indices of the mesh topology. Matching is case-insensitive substring based,
// evaluated most-specific first. Resolution always succeeds: anything
// unmatched degrades to the full face-oval outline by design, so callers never
// see an error from this path.
func Resolve(regionLabel, issueType string) []int {
	region := strings.ToLower(regionLabel)
	typ := strings.ToLower(issueType)

	switch {
	case isDarkCircleType(typ):
		return bySide(region, RegionLeftTearTrough, RegionRightTearTrough)

	case strings.Contains(region, "under") && strings.Contains(region, "eye"):
		return bySide(region, RegionLeftUnderEye, RegionRightUnderEye)

	case strings.Contains(region, "lip") || strings.Contains(region, "mouth"):
		return Indices(RegionLips)

	// "eyebrow" also contains "eye"; exclude it so the brow branch stays reachable.
	case strings.Contains(region, "left") && strings.Contains(region, "eye") && !strings.Contains(region, "brow"):
		return Indices(RegionLeftEye)

	case strings.Contains(region, "right") && strings.Contains(region, "eye") && !strings.Contains(region, "brow"):
		return Indices(RegionRightEye)

	case strings.Contains(region, "eye") && !strings.Contains(region, "brow"):
		return both(RegionLeftEye, RegionRightEye)

	case strings.Contains(region, "brow"):
		return bySide(region, RegionLeftEyebrow, RegionRightEyebrow)

	case strings.Contains(region, "nose"):
		return Indices(RegionNose)

	case strings.Contains(region, "forehead"):
		return Indices(RegionForehead)

	case strings.Contains(region, "t_zone") || strings.Contains(region, "t-zone") || strings.Contains(region, "tzone"):
		return Indices(RegionTZone)

	case strings.Contains(region, "cheek"):
		return bySide(region, RegionLeftCheek, RegionRightCheek)

	case strings.Contains(region, "chin"):
		return Indices(RegionChin)

	case strings.Contains(region, "jaw"):
		return Indices(RegionJawline)

	default:
		return Indices(RegionFaceOval)
	}
}

func isDarkCircleType(issueType string) bool {
	for _, t := range darkCircleTypes {
		if strings.Contains(issueType, t) {
			return true
		}
	}
	return false
}

// bySide picks the left or right variant from the region text, or both sides
// concatenated when no side is named.
func bySide(region, left, right string) []int {
	switch {
	case strings.Contains(region, "left"):
		return Indices(left)
	case strings.Contains(region, "right"):
		return Indices(right)
	default:
		return both(left, right)
	}
}

func both(left, right string) []int {
	l := Indices(left)
	r := Indices(right)
	out := make([]int, 0, len(l)+len(r))
	out = append(out, l...)
	return append(out, r...)
}
