package annotationService

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"DermaGolang/internal/api/annotation"
	annotationRepository "DermaGolang/internal/api/annotation/repository"
	"DermaGolang/internal/entity"
	"DermaGolang/pkg/facemesh"
	"DermaGolang/pkg/utils"
)

type meshStub struct {
	result *entity.MeshResult
	err    error
	called bool
}

func (m *meshStub) DetectMesh(frame []byte) (*entity.MeshResult, error) {
	m.called = true
	return m.result, m.err
}
func (m *meshStub) IsConnected() bool { return true }
func (m *meshStub) Reconnect() error  { return nil }
func (m *meshStub) Close()            {}

type recordsStub struct {
	created []entity.AnnotationRecord
}

func (r *recordsStub) CreateRecord(_ context.Context, record entity.AnnotationRecord) error {
	r.created = append(r.created, record)
	return nil
}

func (r *recordsStub) GetRecordByID(_ context.Context, id string) (entity.AnnotationRecord, error) {
	for _, rec := range r.created {
		if rec.ID == id {
			return rec, nil
		}
	}
	return entity.AnnotationRecord{}, annotation.ErrRecordNotFound
}

func (r *recordsStub) GetRecordsByRequestID(_ context.Context, requestID string) ([]entity.AnnotationRecord, error) {
	var out []entity.AnnotationRecord
	for _, rec := range r.created {
		if rec.RequestID == requestID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *recordsStub) GetRecentRecords(_ context.Context, limit int) ([]entity.AnnotationRecord, error) {
	if limit > len(r.created) {
		limit = len(r.created)
	}
	return r.created[:limit], nil
}

type repoStub struct {
	records *recordsStub
}

func (r *repoStub) NewClient(bool) (annotationRepository.Client, error) {
	return annotationRepository.Client{
		Annotation: r.records,
		Commit:     func() error { return nil },
		Rollback:   func() error { return nil },
	}, nil
}

type redisStub struct {
	stored map[string]string
}

func (r *redisStub) SetCachedAnnotation(_ context.Context, key string, payload string, _ time.Duration) error {
	if r.stored == nil {
		r.stored = make(map[string]string)
	}
	r.stored[key] = payload
	return nil
}

func (r *redisStub) GetCachedAnnotation(_ context.Context, key string) (string, error) {
	return r.stored[key], nil
}

func (r *redisStub) DeleteCachedAnnotation(_ context.Context, key string) error {
	delete(r.stored, key)
	return nil
}

func newTestService(mesh *meshStub, records *recordsStub) IAnnotationService {
	return newTestServiceWithCache(mesh, records, &redisStub{})
}

func newTestServiceWithCache(mesh *meshStub, records *recordsStub, cache *redisStub) IAnnotationService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewAnnotationService(logger, &repoStub{records: records}, mesh, cache, nil, utils.New())
}

func testImageBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	for y := 0; y < 480; y++ {
		for x := 0; x < 640; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 180, G: 160, B: 150, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// testLandmarks spreads a full anchor frame over the test image so every
// topology region resolves to distinct pixel coordinates.
func testLandmarks() []entity.Point {
	pts := make([]entity.Point, facemesh.MeshPointCount)
	for i := range pts {
		pts[i] = entity.Point{
			X: 40 + float64(i%26)*20,
			Y: 40 + float64(i/26)*20,
		}
	}
	return pts
}

func TestAnnotateImageRejectsEmptyIssueList(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	_, err := svc.AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), nil)
	require.ErrorIs(t, err, annotation.ErrEmptyIssueList)
}

func TestAnnotateImageRejectsInvalidSeverity(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	issues := []annotation.IssueInput{{Type: "acne", Region: "chin", Severity: "extreme"}}
	_, err := svc.AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), issues)
	require.ErrorIs(t, err, annotation.ErrInvalidSeverity)
}

func TestAnnotateImageRejectsUndecodableImage(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	issues := []annotation.IssueInput{{Type: "acne", Region: "chin", Severity: "mild"}}
	_, err := svc.AnnotateImage(context.Background(), []byte("not an image"), testLandmarks(), issues)
	require.ErrorIs(t, err, annotation.ErrInvalidImage)
}

func TestAnnotateImageSuccessWithProvidedLandmarks(t *testing.T) {
	mesh := &meshStub{}
	records := &recordsStub{}
	svc := newTestService(mesh, records)

	issues := []annotation.IssueInput{
		{Type: "acne", Region: "chin", Severity: "severe"},
		{Type: "dark_circles", Region: "left_eye", Severity: "moderate"},
	}

	resp, err := svc.AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), issues)
	require.NoError(t, err)
	require.Equal(t, annotation.StatusSuccess, resp.Status)
	require.Equal(t, 2, resp.TotalIssues)
	require.Equal(t, 2, resp.RenderedIssues)
	require.True(t, strings.HasPrefix(resp.AnnotatedImage, "data:image/png;base64,"))
	require.Equal(t, 640, resp.ImageInfo.Width)
	require.Equal(t, 480, resp.ImageInfo.Height)

	require.Len(t, resp.Issues, 2)
	require.Equal(t, 1, resp.Issues[0].Index)
	require.True(t, resp.Issues[0].Rendered)
	require.NotEmpty(t, resp.Issues[0].ResolvedPoints)
	require.Equal(t, "Left Eye: Dark Circles", resp.Issues[1].Label)

	// Landmarks were supplied, so the detector must not be consulted.
	require.False(t, mesh.called)

	require.Len(t, records.created, 1)
	require.Equal(t, annotation.StatusSuccess, records.created[0].Status)
	require.Equal(t, 2, records.created[0].IssueCount)
}

func TestAnnotateImageDeterministicOutput(t *testing.T) {
	issues := []annotation.IssueInput{{Type: "acne", Region: "right_cheek", Severity: "critical"}}

	first, err := newTestService(&meshStub{}, &recordsStub{}).AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), issues)
	require.NoError(t, err)
	second, err := newTestService(&meshStub{}, &recordsStub{}).AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), issues)
	require.NoError(t, err)

	require.Equal(t, first.AnnotatedImage, second.AnnotatedImage)
}

func TestAnnotateImageNoFaceFromDetector(t *testing.T) {
	mesh := &meshStub{result: &entity.MeshResult{Status: entity.MeshStatusNoFace}}
	records := &recordsStub{}
	svc := newTestService(mesh, records)

	issues := []annotation.IssueInput{{Type: "acne", Region: "chin", Severity: "mild"}}
	resp, err := svc.AnnotateImage(context.Background(), testImageBytes(t), nil, issues)
	require.NoError(t, err)

	require.True(t, mesh.called)
	require.Equal(t, annotation.StatusNoFaceDetected, resp.Status)
	require.Equal(t, 0, resp.RenderedIssues)
	require.Equal(t, 1, resp.TotalIssues)
	require.True(t, strings.HasPrefix(resp.AnnotatedImage, "data:image/png;base64,"))

	require.Len(t, records.created, 1)
	require.Equal(t, annotation.StatusNoFaceDetected, records.created[0].Status)
}

func TestAnnotateImageDetectorDown(t *testing.T) {
	mesh := &meshStub{err: errors.New("connection refused")}
	svc := newTestService(mesh, &recordsStub{})

	issues := []annotation.IssueInput{{Type: "acne", Region: "chin", Severity: "mild"}}
	_, err := svc.AnnotateImage(context.Background(), testImageBytes(t), nil, issues)
	require.ErrorIs(t, err, annotation.ErrMeshUnavailable)
}

func TestAnnotateImageUnknownRegionStillRenders(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	issues := []annotation.IssueInput{{Type: "discoloration", Region: "somewhere odd", Severity: "mild"}}
	resp, err := svc.AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), issues)
	require.NoError(t, err)

	// Unmatched regions degrade to the face oval rather than failing.
	require.Equal(t, 1, resp.RenderedIssues)
	require.True(t, resp.Issues[0].Rendered)
}

func TestAnnotateImageShortFrameKeepsLegendEntry(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	// A frame shorter than the dense mesh: tear-trough indices all point past
	// it, so the issue resolves to zero anchors and degrades to an unrendered
	// legend entry instead of failing.
	short := testLandmarks()[:68]

	issues := []annotation.IssueInput{{Type: "dark_circles", Region: "left_eye", Severity: "moderate"}}
	resp, err := svc.AnnotateImage(context.Background(), testImageBytes(t), short, issues)
	require.NoError(t, err)

	require.Equal(t, annotation.StatusSuccess, resp.Status)
	require.Equal(t, 1, resp.TotalIssues)
	require.Equal(t, 0, resp.RenderedIssues)

	require.Len(t, resp.Issues, 1)
	require.False(t, resp.Issues[0].Rendered)
	require.Empty(t, resp.Issues[0].ResolvedPoints)
	require.Equal(t, "Left Eye: Dark Circles", resp.Issues[0].Label)
	require.Equal(t, "moderate", resp.Issues[0].Severity)
}

func TestAnnotateImageDegenerateScatterNotCountedAsRendered(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	// Collapse every chin anchor onto one horizontal line: the scatter hull
	// degenerates and no dots land, so the issue must not count as rendered
	// even though its anchors resolved.
	pts := testLandmarks()
	for _, idx := range facemesh.Indices(facemesh.RegionChin) {
		pts[idx] = entity.Point{X: float64(idx), Y: 300}
	}

	issues := []annotation.IssueInput{{Type: "acne", Region: "chin", Severity: "severe"}}
	resp, err := svc.AnnotateImage(context.Background(), testImageBytes(t), pts, issues)
	require.NoError(t, err)

	require.Equal(t, 0, resp.RenderedIssues)
	require.Len(t, resp.Issues, 1)
	require.False(t, resp.Issues[0].Rendered)
	require.NotEmpty(t, resp.Issues[0].ResolvedPoints)
}

func TestGetRecordServedFromCache(t *testing.T) {
	records := &recordsStub{}
	cache := &redisStub{}
	svc := newTestServiceWithCache(&meshStub{}, records, cache)

	issues := []annotation.IssueInput{{Type: "acne", Region: "chin", Severity: "severe"}}
	resp, err := svc.AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), issues)
	require.NoError(t, err)
	require.Len(t, records.created, 1)
	id := records.created[0].ID

	detail, err := svc.GetRecord(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, detail.ID)
	require.True(t, detail.Cached)
	require.Nil(t, detail.Record)
	require.NotNil(t, detail.Response)
	require.Equal(t, resp.AnnotatedImage, detail.Response.AnnotatedImage)
	require.Equal(t, resp.RenderedIssues, detail.Response.RenderedIssues)
}

func TestGetRecordFallsBackToDatabase(t *testing.T) {
	records := &recordsStub{}
	cache := &redisStub{}
	svc := newTestServiceWithCache(&meshStub{}, records, cache)

	issues := []annotation.IssueInput{{Type: "acne", Region: "chin", Severity: "mild"}}
	_, err := svc.AnnotateImage(context.Background(), testImageBytes(t), testLandmarks(), issues)
	require.NoError(t, err)
	id := records.created[0].ID

	// Expired cache entry: only the persisted summary remains.
	require.NoError(t, cache.DeleteCachedAnnotation(context.Background(), "annotation:"+id))

	detail, err := svc.GetRecord(context.Background(), id)
	require.NoError(t, err)
	require.False(t, detail.Cached)
	require.Nil(t, detail.Response)
	require.NotNil(t, detail.Record)
	require.Equal(t, id, detail.Record.ID)
	require.Equal(t, annotation.StatusSuccess, detail.Record.Status)
}

func TestGetRecordNotFound(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	_, err := svc.GetRecord(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.ErrorIs(t, err, annotation.ErrRecordNotFound)
}

func TestGetRecordsByRequestID(t *testing.T) {
	records := &recordsStub{created: []entity.AnnotationRecord{
		{ID: "a", RequestID: "req-1"},
		{ID: "b", RequestID: "req-2"},
		{ID: "c", RequestID: "req-1"},
	}}
	svc := newTestService(&meshStub{}, records)

	out, err := svc.GetRecordsByRequestID(context.Background(), "req-1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "a", out[0].ID)
	require.Equal(t, "c", out[1].ID)
}

func TestTopology(t *testing.T) {
	svc := newTestService(&meshStub{}, &recordsStub{})

	topo := svc.Topology()
	require.Equal(t, facemesh.MeshPointCount, topo.TotalPoints)
	require.Equal(t, facemesh.Regions(), topo.Regions)
	require.Contains(t, topo.Regions, facemesh.RegionFaceOval)
}
