package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeverityValid(t *testing.T) {
	require.True(t, SeverityMild.Valid())
	require.True(t, SeverityModerate.Valid())
	require.True(t, SeveritySevere.Valid())
	require.True(t, SeverityCritical.Valid())
	require.False(t, Severity("extreme").Valid())
	require.False(t, Severity("").Valid())
}

func TestIssueLabel(t *testing.T) {
	issue := Issue{Type: "dark_circles", Region: "left_eye", Severity: SeverityModerate}
	require.Equal(t, "Left Eye: Dark Circles", issue.Label())

	noRegion := Issue{Type: "acne"}
	require.Equal(t, "Acne", noRegion.Label())

	spaced := Issue{Type: "fine lines", Region: "forehead"}
	require.Equal(t, "Forehead: Fine Lines", spaced.Label())
}

func TestAnchorFrameSelectSkipsOutOfRange(t *testing.T) {
	frame := AnchorFrame{Points: []Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}}

	pts := frame.Select([]int{0, 2, 5, -1})
	require.Equal(t, []Point{{X: 1, Y: 1}, {X: 3, Y: 3}}, pts)
}

func TestAnchorFrameHasFace(t *testing.T) {
	require.False(t, AnchorFrame{}.HasFace())
	require.True(t, AnchorFrame{Points: []Point{{X: 1, Y: 1}}}.HasFace())
}

func TestMeshResultHasFace(t *testing.T) {
	require.False(t, MeshResult{Status: MeshStatusNoFace}.HasFace())
	require.False(t, MeshResult{Status: MeshStatusOK}.HasFace())
	require.True(t, MeshResult{Status: MeshStatusOK, Landmarks: []Point{{X: 1, Y: 2}}}.HasFace())
}
