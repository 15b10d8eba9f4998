package annotator

import (
	"image/color"

	"DermaGolang/internal/entity"
)

// Palette maps issue severity to a marking color. The mapping is a fixed
// policy table, not per-request configuration.
type Palette map[entity.Severity]color.RGBA

func DefaultPalette() Palette {
	return Palette{
		entity.SeverityMild:     {R: 255, G: 255, B: 0, A: 255},
		entity.SeverityModerate: {R: 255, G: 165, B: 0, A: 255},
		entity.SeveritySevere:   {R: 255, G: 0, B: 0, A: 255},
		entity.SeverityCritical: {R: 128, G: 0, B: 128, A: 255},
	}
}

// Color returns the severity color, falling back to white for unknown values.
func (p Palette) Color(s entity.Severity) color.RGBA {
	if c, ok := p[s]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// Options holds the rendering policy knobs with their documented defaults.
type Options struct {
	// OverlayAlpha is the overlay weight of the final alpha merge.
	OverlayAlpha float64
	// LineThickness is the stroke width of contours and arcs, in pixels.
	LineThickness int
	// ScatterDotRadius is the radius of one scatter-cloud dot, in pixels.
	ScatterDotRadius int
	// ContourSamples and ArcSamples are the fixed resample counts of closed
	// and open curve fits.
	ContourSamples int
	ArcSamples     int
	// CrescentLiftRatio shifts dark-circle anchors up by this fraction of the
	// image height so the crescent hugs the lower eyelid; CrescentDropRatio
	// offsets the duplicated lower edge downwards.
	CrescentLiftRatio float64
	CrescentDropRatio float64
	// LegendMaxRows caps enumerated legend rows; overflow collapses into a
	// single "+N more" row. LegendMaxLabelChars truncates long labels.
	LegendMaxRows       int
	LegendMaxLabelChars int
}

func DefaultOptions() Options {
	return Options{
		OverlayAlpha:        0.75,
		LineThickness:       3,
		ScatterDotRadius:    3,
		ContourSamples:      120,
		ArcSamples:          80,
		CrescentLiftRatio:   0.02,
		CrescentDropRatio:   0.05,
		LegendMaxRows:       4,
		LegendMaxLabelChars: 55,
	}
}

// scatterTargets is the severity-scaled number of scatter dots per issue.
var scatterTargets = map[entity.Severity]int{
	entity.SeverityMild:     12,
	entity.SeverityModerate: 25,
	entity.SeveritySevere:   45,
	entity.SeverityCritical: 60,
}

func scatterTarget(s entity.Severity) int {
	if n, ok := scatterTargets[s]; ok {
		return n
	}
	return scatterTargets[entity.SeverityModerate]
}
