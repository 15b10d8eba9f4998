package annotator

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
)

const (
	legendPadding    = 15
	legendLineHeight = 28
	legendFontSize   = 14
	legendRowMarker  = 10
	markerFontSize   = 12
)

// drawLegend renders the bottom-left legend panel: semi-opaque dark
// background, white border, a title, and one numbered severity-colored row
// per issue. Beyond opts.LegendMaxRows the remaining issues collapse into a
// single "+N more" row.
func drawLegend(img *image.RGBA, entries []LegendEntry, palette Palette, opts Options) {
	if len(entries) == 0 {
		return
	}

	face := resolveFace(legendFontSize)

	rows := make([]string, 0, len(entries)+1)
	shown := entries
	overflow := 0
	if len(entries) > opts.LegendMaxRows {
		shown = entries[:opts.LegendMaxRows]
		overflow = len(entries) - opts.LegendMaxRows
	}
	for _, e := range shown {
		rows = append(rows, fmt.Sprintf("%s (%s)", truncateLabel(e.Label, opts.LegendMaxLabelChars), e.Severity))
	}
	if overflow > 0 {
		rows = append(rows, fmt.Sprintf("+%d more", overflow))
	}

	title := "Detected Issues:"
	maxWidth := font.MeasureString(face, title).Ceil()
	for _, row := range rows {
		if w := font.MeasureString(face, row).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}

	height := len(rows)*legendLineHeight + 2*legendLineHeight
	width := maxWidth + 2*legendRowMarker + 50

	bottom := img.Bounds().Max.Y - legendPadding
	panel := image.Rect(legendPadding-8, bottom-height, legendPadding+width, bottom+8)

	fillRect(img, panel, color.RGBA{0, 0, 0, 178})
	strokeRect(img, panel, color.RGBA{255, 255, 255, 255}, 2)

	white := color.RGBA{255, 255, 255, 255}
	titleY := panel.Min.Y + legendLineHeight
	drawText(img, title, legendPadding, titleY, white, face)

	y := titleY
	for i, row := range rows {
		y += legendLineHeight
		circleX := legendPadding + legendRowMarker
		circleY := y - legendRowMarker/2 - 4

		if i < len(shown) {
			e := shown[i]
			fillCircle(img, circleX, circleY, legendRowMarker, palette.Color(e.Severity))
			strokeCircle(img, circleX, circleY, legendRowMarker, white, 1)
			drawTextCentered(img, fmt.Sprintf("%d", e.Index), circleX, circleY, white, markerFontSize)
		}
		drawText(img, row, legendPadding+3*legendRowMarker, y, white, face)
	}
}

// truncateLabel cuts on rune boundaries so multi-byte labels never end in
// invalid UTF-8.
func truncateLabel(label string, max int) string {
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
