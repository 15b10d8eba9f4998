package annotator

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"DermaGolang/internal/entity"
)

func baseImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	return img
}

func TestCompositeLeavesBaseUntouched(t *testing.T) {
	base := baseImage(400, 400)
	before := make([]uint8, len(base.Pix))
	copy(before, base.Pix)

	drawn := []DrawnIssue{{
		Index:    1,
		Severity: entity.SeveritySevere,
		Primitive: &Primitive{
			Kind:   ClosedContour,
			Points: []entity.Point{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300}},
		},
	}}
	legend := []LegendEntry{{Index: 1, Label: "Chin: Acne", Severity: entity.SeveritySevere}}

	out := Composite(base, drawn, legend, DefaultPalette(), DefaultOptions())
	require.NotNil(t, out)
	require.Equal(t, before, base.Pix)
	require.Equal(t, base.Bounds(), out.Bounds())
}

func TestCompositeDrawsMarkerAtCentroid(t *testing.T) {
	base := baseImage(400, 400)

	drawn := []DrawnIssue{{
		Index:    1,
		Severity: entity.SeveritySevere,
		Primitive: &Primitive{
			Kind:   ClosedContour,
			Points: []entity.Point{{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300}},
		},
	}}

	out := Composite(base, drawn, nil, DefaultPalette(), DefaultOptions())

	// The numbered marker is stamped after the alpha merge, so its fill is the
	// pure severity color. Sample between the digit and the white ring.
	red := DefaultPalette().Color(entity.SeveritySevere)
	sample := out.RGBAAt(200+9, 200)
	require.Equal(t, red, sample)
}

func TestCompositeSkipsNilPrimitives(t *testing.T) {
	base := baseImage(200, 200)
	before := make([]uint8, len(base.Pix))
	copy(before, base.Pix)

	drawn := []DrawnIssue{{Index: 1, Severity: entity.SeverityMild, Primitive: nil}}

	out := Composite(base, drawn, nil, DefaultPalette(), DefaultOptions())
	require.Equal(t, before, out.Pix)
}

func TestCompositeScatterDotsChangeOverlay(t *testing.T) {
	base := baseImage(400, 400)
	drawn := []DrawnIssue{{
		Index:    1,
		Severity: entity.SeverityCritical,
		Primitive: &Primitive{
			Kind:   ScatterCloud,
			Points: []entity.Point{{X: 50, Y: 50}, {X: 60, Y: 60}},
		},
	}}

	out := Composite(base, drawn, nil, DefaultPalette(), DefaultOptions())
	require.NotEqual(t, base.RGBAAt(50, 50), out.RGBAAt(50, 50))
}

func TestDrawLegendOverflowAndTruncation(t *testing.T) {
	img := baseImage(600, 600)
	opts := DefaultOptions()

	entries := make([]LegendEntry, 6)
	for i := range entries {
		entries[i] = LegendEntry{Index: i + 1, Label: "Forehead: Wrinkles", Severity: entity.SeverityMild}
	}

	before := make([]uint8, len(img.Pix))
	copy(before, img.Pix)
	drawLegend(img, entries, DefaultPalette(), opts)
	require.NotEqual(t, before, img.Pix)
}

func TestTruncateLabel(t *testing.T) {
	require.Equal(t, "short", truncateLabel("short", 55))

	long := strings.Repeat("x", 80)
	got := truncateLabel(long, 55)
	require.Len(t, got, 55)
	require.True(t, strings.HasSuffix(got, "..."))

	// Multi-byte labels must be cut on rune boundaries.
	accented := strings.Repeat("é", 60)
	got = truncateLabel(accented, 55)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, 55, utf8.RuneCountInString(got))
	require.True(t, strings.HasSuffix(got, "..."))
}

func TestEncodeDataURI(t *testing.T) {
	img := baseImage(10, 10)

	uri, raw, err := EncodeDataURI(img)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestPaletteFallback(t *testing.T) {
	p := DefaultPalette()
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 0, A: 255}, p.Color(entity.SeverityMild))
	require.Equal(t, color.RGBA{R: 255, G: 165, B: 0, A: 255}, p.Color(entity.SeverityModerate))
	require.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, p.Color(entity.SeveritySevere))
	require.Equal(t, color.RGBA{R: 128, G: 0, B: 128, A: 255}, p.Color(entity.SeverityCritical))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, p.Color("unknown"))
}
