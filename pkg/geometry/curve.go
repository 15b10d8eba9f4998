package geometry

import (
	"DermaGolang/internal/entity"
)

// CurveResult carries the outcome of a curve fit. Smoothed is false when the
// input was too degenerate to fit and Points echoes the raw input instead.
// Callers branch on the flag; there is no error path.
type CurveResult struct {
	Points   []entity.Point
	Smoothed bool
}

const (
	// SmoothingModerate and SmoothingHigh are Chaikin refinement passes applied
	// before the spline is sampled. High smoothing irons out the sharp joins of
	// concatenated curve halves.
	SmoothingNone     = 0
	SmoothingModerate = 1
	SmoothingHigh     = 3
)

// FitCurve fits a Catmull-Rom spline through the control points and resamples
// it to exactly `samples` output points with uniform parameterization. Closed
// curves are periodic; open curves keep their endpoints. Degenerate input
// (fewer than three distinct points for a closed curve, fewer than two for an
// open one) returns the input unchanged with Smoothed=false.
func FitCurve(points []entity.Point, closed bool, smoothing int, samples int) CurveResult {
	cp := dedupeConsecutive(points, closed)

	minPoints := 2
	if closed {
		minPoints = 3
	}
	if len(cp) < minPoints || samples < 2 {
		return CurveResult{Points: points, Smoothed: false}
	}

	for i := 0; i < smoothing; i++ {
		cp = chaikin(cp, closed)
	}

	out := make([]entity.Point, samples)
	n := len(cp)
	if closed {
		segments := float64(n)
		for i := 0; i < samples; i++ {
			t := float64(i) * segments / float64(samples)
			seg := int(t)
			out[i] = catmullRom(
				cp[wrap(seg-1, n)],
				cp[wrap(seg, n)],
				cp[wrap(seg+1, n)],
				cp[wrap(seg+2, n)],
				t-float64(seg),
			)
		}
	} else {
		segments := float64(n - 1)
		for i := 0; i < samples; i++ {
			t := float64(i) * segments / float64(samples-1)
			seg := int(t)
			if seg > n-2 {
				seg = n - 2
			}
			out[i] = catmullRom(
				cp[clamp(seg-1, n)],
				cp[clamp(seg, n)],
				cp[clamp(seg+1, n)],
				cp[clamp(seg+2, n)],
				t-float64(seg),
			)
		}
	}

	return CurveResult{Points: out, Smoothed: true}
}

func catmullRom(p0, p1, p2, p3 entity.Point, t float64) entity.Point {
	t2 := t * t
	t3 := t2 * t
	return entity.Point{
		X: 0.5 * (2*p1.X + (p2.X-p0.X)*t +
			(2*p0.X-5*p1.X+4*p2.X-p3.X)*t2 +
			(3*p1.X-p0.X-3*p2.X+p3.X)*t3),
		Y: 0.5 * (2*p1.Y + (p2.Y-p0.Y)*t +
			(2*p0.Y-5*p1.Y+4*p2.Y-p3.Y)*t2 +
			(3*p1.Y-p0.Y-3*p2.Y+p3.Y)*t3),
	}
}

// chaikin performs one corner-cutting pass. Endpoints of open polylines are
// preserved so arcs keep anchored at their first and last control point.
func chaikin(points []entity.Point, closed bool) []entity.Point {
	n := len(points)
	if n < 3 {
		return points
	}

	out := make([]entity.Point, 0, 2*n)
	edges := n
	if !closed {
		edges = n - 1
		out = append(out, points[0])
	}

	for i := 0; i < edges; i++ {
		a := points[i]
		b := points[(i+1)%n]
		out = append(out,
			entity.Point{X: 0.75*a.X + 0.25*b.X, Y: 0.75*a.Y + 0.25*b.Y},
			entity.Point{X: 0.25*a.X + 0.75*b.X, Y: 0.25*a.Y + 0.75*b.Y},
		)
	}

	if !closed {
		out = append(out, points[n-1])
	}
	return out
}

func dedupeConsecutive(points []entity.Point, closed bool) []entity.Point {
	if len(points) == 0 {
		return nil
	}
	out := make([]entity.Point, 0, len(points))
	out = append(out, points[0])
	for _, p := range points[1:] {
		last := out[len(out)-1]
		if p.X == last.X && p.Y == last.Y {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 {
		first, last := out[0], out[len(out)-1]
		if first.X == last.X && first.Y == last.Y {
			out = out[:len(out)-1]
		}
	}
	return out
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
