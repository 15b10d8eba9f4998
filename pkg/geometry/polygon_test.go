package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"DermaGolang/internal/entity"
)

func TestConvexHullDropsInteriorPoints(t *testing.T) {
	points := []entity.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 5, Y: 5}, {X: 3, Y: 7},
	}

	hull := ConvexHull(points)
	require.Len(t, hull, 4)
	for _, p := range hull {
		require.NotEqual(t, entity.Point{X: 5, Y: 5}, p)
		require.NotEqual(t, entity.Point{X: 3, Y: 7}, p)
	}
}

func TestConvexHullPassesThroughSmallInputs(t *testing.T) {
	two := []entity.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	require.Equal(t, two, ConvexHull(two))
}

func TestContainsPoint(t *testing.T) {
	square := []entity.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	require.True(t, ContainsPoint(square, entity.Point{X: 5, Y: 5}))
	require.False(t, ContainsPoint(square, entity.Point{X: 15, Y: 5}))
	require.False(t, ContainsPoint(square, entity.Point{X: -1, Y: -1}))
}

func TestContainsPointDegeneratePolygon(t *testing.T) {
	require.False(t, ContainsPoint([]entity.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, entity.Point{X: 0.5, Y: 0.5}))
}

func TestBoundingBox(t *testing.T) {
	points := []entity.Point{{X: 3, Y: 8}, {X: -2, Y: 4}, {X: 7, Y: -1}}

	min, max := BoundingBox(points)
	require.Equal(t, entity.Point{X: -2, Y: -1}, min)
	require.Equal(t, entity.Point{X: 7, Y: 8}, max)
}

func TestCentroid(t *testing.T) {
	square := []entity.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}

	c := Centroid(square)
	require.InDelta(t, 5, c.X, 1e-9)
	require.InDelta(t, 5, c.Y, 1e-9)

	require.Equal(t, entity.Point{}, Centroid(nil))
}
