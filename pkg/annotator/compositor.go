package annotator

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"DermaGolang/internal/entity"
	"DermaGolang/pkg/geometry"
)

const markerRadius = 14

// Composite draws every synthesized primitive plus the legend onto a copy of
// the base image. The base image itself is never written to; composite is
// applied exactly once per request, always to the pristine source raster.
func Composite(base image.Image, drawn []DrawnIssue, legend []LegendEntry, palette Palette, opts Options) *image.RGBA {
	canvas := toRGBA(base)
	overlay := cloneRGBA(canvas)

	for _, d := range drawn {
		if d.Primitive == nil || len(d.Primitive.Points) == 0 {
			continue
		}
		c := palette.Color(d.Severity)
		switch d.Primitive.Kind {
		case ClosedContour:
			strokePolyline(overlay, d.Primitive.Points, true, c, opts.LineThickness)
		case OpenArc:
			strokePolyline(overlay, d.Primitive.Points, false, c, opts.LineThickness)
		case ScatterCloud:
			for _, p := range d.Primitive.Points {
				fillCircle(overlay, int(p.X), int(p.Y), opts.ScatterDotRadius, c)
			}
		}
	}

	blend(canvas, overlay, opts.OverlayAlpha)

	for _, d := range drawn {
		if d.Primitive == nil || len(d.Primitive.Points) == 0 {
			continue
		}
		drawMarker(canvas, d.Index, geometry.Centroid(d.Primitive.Points), palette.Color(d.Severity))
	}

	drawLegend(canvas, legend, palette, opts)

	return canvas
}

// blend merges the overlay back onto dst with a fixed overlay weight, giving
// the translucent marking look instead of opaque paint-over.
func blend(dst, overlay *image.RGBA, alpha float64) {
	if alpha >= 1 {
		copy(dst.Pix, overlay.Pix)
		return
	}
	inv := 1 - alpha
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(float64(overlay.Pix[i])*alpha + float64(dst.Pix[i])*inv)
		dst.Pix[i+1] = uint8(float64(overlay.Pix[i+1])*alpha + float64(dst.Pix[i+1])*inv)
		dst.Pix[i+2] = uint8(float64(overlay.Pix[i+2])*alpha + float64(dst.Pix[i+2])*inv)
		dst.Pix[i+3] = 255
	}
}

// drawMarker stamps the numbered severity-colored circle at the primitive
// centroid so the on-image number lines up with the legend row.
func drawMarker(img *image.RGBA, index int, at entity.Point, c color.RGBA) {
	cx, cy := int(at.X), int(at.Y)
	fillCircle(img, cx, cy, markerRadius, c)
	strokeCircle(img, cx, cy, markerRadius, color.RGBA{255, 255, 255, 255}, 2)
	drawTextCentered(img, strconv.Itoa(index), cx, cy, color.RGBA{255, 255, 255, 255}, markerFontSize)
}

func strokePolyline(img *image.RGBA, points []entity.Point, closed bool, c color.RGBA, thickness int) {
	if len(points) < 2 {
		return
	}
	for i := 0; i < len(points)-1; i++ {
		strokeSegment(img, points[i], points[i+1], c, thickness)
	}
	if closed {
		strokeSegment(img, points[len(points)-1], points[0], c, thickness)
	}
}

// strokeSegment stamps discs along the segment at sub-pixel steps. Cheap
// compared to a scanline stroker and thick lines stay visually continuous.
func strokeSegment(img *image.RGBA, a, b entity.Point, c color.RGBA, thickness int) {
	r := thickness / 2
	if r < 1 {
		r = 1
	}
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	steps := int(length) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		fillCircle(img, int(a.X+dx*t), int(a.Y+dy*t), r, c)
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	bounds := img.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
				continue
			}
			dx := x - cx
			dy := y - cy
			if dx*dx+dy*dy <= r*r {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func strokeCircle(img *image.RGBA, cx, cy, r int, c color.RGBA, width int) {
	outer := r * r
	inner := (r - width) * (r - width)
	bounds := img.Bounds()
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
				continue
			}
			dx := x - cx
			dy := y - cy
			d := dx*dx + dy*dy
			if d <= outer && d >= inner {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func fillRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func strokeRect(img *image.RGBA, rect image.Rectangle, c color.RGBA, width int) {
	for i := 0; i < width; i++ {
		top := image.Rect(rect.Min.X+i, rect.Min.Y+i, rect.Max.X-i, rect.Min.Y+i+1)
		bottom := image.Rect(rect.Min.X+i, rect.Max.Y-i-1, rect.Max.X-i, rect.Max.Y-i)
		left := image.Rect(rect.Min.X+i, rect.Min.Y+i, rect.Min.X+i+1, rect.Max.Y-i)
		right := image.Rect(rect.Max.X-i-1, rect.Min.Y+i, rect.Max.X-i, rect.Max.Y-i)
		draw.Draw(img, top, &image.Uniform{C: c}, image.Point{}, draw.Over)
		draw.Draw(img, bottom, &image.Uniform{C: c}, image.Point{}, draw.Over)
		draw.Draw(img, left, &image.Uniform{C: c}, image.Point{}, draw.Over)
		draw.Draw(img, right, &image.Uniform{C: c}, image.Point{}, draw.Over)
	}
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return cloneRGBA(rgba)
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
