package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrFileSizeExceeded = errors.New("file size exceeds limit")
	ErrNotAnImage       = errors.New("uploaded file is not an image")
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ConvertFileToBase64(file multipart.File) (string, error)
	DecodeBase64Image(data string) ([]byte, error)
	FetchImageFromURL(imageURL string) ([]byte, string, error)
}

type utils struct {
	maxFileSize  int64
	fetchTimeout time.Duration
}

func New() IUtils {
	return &utils{
		maxFileSize:  5 * 1024 * 1024,
		fetchTimeout: 10 * time.Second,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil {
		return errors.New("no file uploaded")
	}

	if file.Size > u.maxFileSize {
		return ErrFileSizeExceeded
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return ErrNotAnImage
	}

	return nil
}

func (u *utils) ConvertFileToBase64(file multipart.File) (string, error) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	base64Encoded := base64.StdEncoding.EncodeToString(fileBytes)
	return base64Encoded, nil
}

// DecodeBase64Image accepts raw base64 or a full data URI and returns the
// decoded image bytes.
func (u *utils) DecodeBase64Image(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:image") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return nil, errors.New("malformed data URI")
		}
		data = parts[1]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	return decoded, nil
}

// FetchImageFromURL downloads an image and returns its bytes plus a filename
// derived from the URL path. Non-image content types are rejected.
func (u *utils) FetchImageFromURL(imageURL string) ([]byte, string, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, "", errors.New("invalid image URL provided")
	}

	client := &http.Client{Timeout: u.fetchTimeout}
	resp, err := client.Get(imageURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image from URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to download image from URL: %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", errors.New("URL does not point to an image file")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, u.maxFileSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}
	if int64(len(data)) > u.maxFileSize {
		return nil, "", errors.New("downloaded image exceeds size limit")
	}

	segments := strings.Split(parsed.Path, "/")
	filename := segments[len(segments)-1]
	if filename == "" {
		filename = "image_from_url"
	}

	return data, filename, nil
}
