package utils

import (
	"encoding/base64"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

func fileHeader(size int64, contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "photo.png",
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestValidateImageFile(t *testing.T) {
	u := New()

	require.NoError(t, u.ValidateImageFile(fileHeader(1024, "image/png")))
	require.ErrorIs(t, u.ValidateImageFile(fileHeader(6*1024*1024, "image/png")), ErrFileSizeExceeded)
	require.ErrorIs(t, u.ValidateImageFile(fileHeader(1024, "application/pdf")), ErrNotAnImage)
	require.Error(t, u.ValidateImageFile(nil))
}

func TestDecodeBase64Image(t *testing.T) {
	u := New()
	raw := []byte{0x89, 0x50, 0x4E, 0x47}
	encoded := base64.StdEncoding.EncodeToString(raw)

	decoded, err := u.DecodeBase64Image(encoded)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)

	decoded, err = u.DecodeBase64Image("data:image/png;base64," + encoded)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)

	_, err = u.DecodeBase64Image("not base64 at all!!!")
	require.Error(t, err)
}
