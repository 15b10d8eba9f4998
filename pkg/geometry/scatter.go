package geometry

import (
	"math/rand"

	"DermaGolang/internal/entity"
)

// scatterAttemptFactor bounds rejection sampling: at most factor*target draws
// before giving up and returning whatever landed inside the polygon.
const scatterAttemptFactor = 20

// ScatterInside rejection-samples up to target points uniformly inside the
// polygon. The seed fully determines the output, so identical input yields an
// identical point sequence. A partial result after the attempt budget is
// exhausted is a valid outcome, not an error.
func ScatterInside(polygon []entity.Point, target int, seed int64) []entity.Point {
	if len(polygon) < 3 || target <= 0 {
		return nil
	}

	min, max := BoundingBox(polygon)
	w := max.X - min.X
	h := max.Y - min.Y
	if w <= 0 || h <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	points := make([]entity.Point, 0, target)
	for attempts := 0; attempts < target*scatterAttemptFactor && len(points) < target; attempts++ {
		p := entity.Point{
			X: min.X + rng.Float64()*w,
			Y: min.Y + rng.Float64()*h,
		}
		if ContainsPoint(polygon, p) {
			points = append(points, p)
		}
	}
	return points
}
