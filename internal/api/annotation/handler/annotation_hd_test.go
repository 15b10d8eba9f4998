package annotationHandler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"DermaGolang/internal/api/annotation"
	"DermaGolang/internal/entity"
	"DermaGolang/internal/middleware"
	"DermaGolang/pkg/utils"
)

type serviceStub struct{}

func (serviceStub) AnnotateImage(context.Context, []byte, []entity.Point, []annotation.IssueInput) (*annotation.AnnotateResponse, error) {
	return &annotation.AnnotateResponse{Status: annotation.StatusSuccess}, nil
}

func (serviceStub) AnnotateImageFromURL(context.Context, string, []entity.Point, []annotation.IssueInput) (*annotation.AnnotateResponse, error) {
	return &annotation.AnnotateResponse{Status: annotation.StatusSuccess}, nil
}

func (serviceStub) Topology() annotation.TopologyResponse {
	return annotation.TopologyResponse{}
}

func (serviceStub) ProcessMeshFrame([]byte) (*entity.MeshResult, error) {
	return &entity.MeshResult{}, nil
}

func (serviceStub) GetRecentRecords(context.Context, int) ([]entity.AnnotationRecord, error) {
	return nil, nil
}

func (serviceStub) GetRecord(_ context.Context, id string) (*annotation.RecordDetail, error) {
	if id == "unknown-record" {
		return nil, annotation.ErrRecordNotFound
	}
	return &annotation.RecordDetail{ID: id, Record: &entity.AnnotationRecord{ID: id}}, nil
}

func (serviceStub) GetRecordsByRequestID(context.Context, string) ([]entity.AnnotationRecord, error) {
	return nil, nil
}

func newTestApp() *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New(fiber.Config{BodyLimit: 20 * 1024 * 1024})
	h := New(logger, validator.New(), middleware.New(logger), serviceStub{}, utils.New())
	h.Start(app.Group("/api/v1"))
	return app
}

// multipartImageRequest builds a POST /annotation/issues request carrying one
// "image" part of the given size and content type.
func multipartImageRequest(t *testing.T, size int, contentType string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xAB}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/annotation/issues", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestAnnotateIssuesRejectsOversizeUpload(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(multipartImageRequest(t, 6*1024*1024, "image/png"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(payload), "file too large")
	require.NotContains(t, string(payload), "invalid file type")
}

func TestAnnotateIssuesRejectsNonImageUpload(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(multipartImageRequest(t, 128, "application/pdf"), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(payload), "invalid file type")
}

func TestGetRecordRoute(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/annotation/records/01ARZ3NDEKTSV4RRFFQ69G5FAV", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(payload), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
}

func TestGetRecordRouteNotFound(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/annotation/records/unknown-record", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
