package annotator

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
)

const dataURIPrefix = "data:image/png;base64,"

// EncodePNG encodes the raster losslessly.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeDataURI returns the image as an embeddable PNG data URI, the
// self-describing payload clients can drop straight into an <img> tag.
func EncodeDataURI(img image.Image) (string, []byte, error) {
	raw, err := EncodePNG(img)
	if err != nil {
		return "", nil, err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(raw), raw, nil
}
