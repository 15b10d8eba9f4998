package annotationService

import (
	"DermaGolang/internal/api/annotation"
	"DermaGolang/internal/entity"
	"DermaGolang/pkg/annotator"
	contextPkg "DermaGolang/pkg/context"
	"DermaGolang/pkg/facemesh"
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const cacheTTL = 15 * time.Minute

func cacheKey(id string) string {
	return "annotation:" + id
}

// AnnotateImage runs the full pipeline: decode, resolve anchors, synthesize
// one primitive per issue, composite, encode. Per-issue failures degrade to an
// unrendered legend entry; only input-level problems abort the request.
func (s *annotationService) AnnotateImage(ctx context.Context, imageBytes []byte, landmarks []entity.Point, issues []annotation.IssueInput) (*annotation.AnnotateResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(issues) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Annotation requested with empty issue list")
		return nil, annotation.ErrEmptyIssueList
	}

	for _, in := range issues {
		if !entity.Severity(in.Severity).Valid() {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"severity":   in.Severity,
			}).Warn("Invalid severity value")
			return nil, annotation.ErrInvalidSeverity
		}
	}

	baseImage, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to decode input image")
		return nil, annotation.ErrInvalidImage
	}

	bounds := baseImage.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	anchors, err := s.resolveAnchors(ctx, imageBytes, landmarks)
	if err != nil {
		return nil, err
	}

	if !anchors.HasFace() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Info("No face detected, returning unannotated image")
		return s.buildNoFaceResponse(ctx, baseImage, issues, width, height)
	}

	drawn := make([]annotator.DrawnIssue, 0, len(issues))
	legend := make([]annotator.LegendEntry, 0, len(issues))
	results := make([]annotation.IssueResult, 0, len(issues))
	rendered := 0

	for i, in := range issues {
		index := i + 1
		issue := entity.Issue{
			Type:     in.Type,
			Region:   in.Region,
			Severity: entity.Severity(in.Severity),
		}

		primitive, points := s.synthesizeIssue(requestID, index, issue, anchors, height)
		issue.ResolvedPoints = points

		// A primitive without points draws nothing (degenerate scatter hull),
		// so it does not count as rendered.
		isRendered := primitive != nil && len(primitive.Points) > 0
		if isRendered {
			rendered++
		}

		drawn = append(drawn, annotator.DrawnIssue{
			Index:     index,
			Severity:  issue.Severity,
			Primitive: primitive,
		})
		legend = append(legend, annotator.LegendEntry{
			Index:    index,
			Label:    issue.Label(),
			Severity: issue.Severity,
		})
		results = append(results, annotation.IssueResult{
			Index:          index,
			Type:           issue.Type,
			Region:         issue.Region,
			Severity:       in.Severity,
			Label:          issue.Label(),
			Rendered:       isRendered,
			ResolvedPoints: points,
		})
	}

	canvas := annotator.Composite(baseImage, drawn, legend, s.palette, s.options)

	dataURI, rawPNG, err := annotator.EncodeDataURI(canvas)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode annotated image")
		return nil, annotation.ErrRenderFailed
	}

	resp := &annotation.AnnotateResponse{
		Status:         annotation.StatusSuccess,
		AnnotatedImage: dataURI,
		TotalIssues:    len(issues),
		RenderedIssues: rendered,
		Issues:         results,
		ImageInfo:      annotation.ImageInfo{Width: width, Height: height},
	}

	s.persistResult(ctx, resp, rawPNG)

	s.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"total_issues":    resp.TotalIssues,
		"rendered_issues": resp.RenderedIssues,
	}).Info("Annotation pipeline completed")

	return resp, nil
}

func (s *annotationService) AnnotateImageFromURL(ctx context.Context, imageURL string, landmarks []entity.Point, issues []annotation.IssueInput) (*annotation.AnnotateResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	imageBytes, filename, err := s.utils.FetchImageFromURL(imageURL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_url":  imageURL,
			"error":      err.Error(),
		}).Warn("Failed to fetch image from URL")
		return nil, annotation.ErrImageFetchFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"filename":   filename,
		"size":       len(imageBytes),
	}).Debug("Fetched image from URL")

	return s.AnnotateImage(ctx, imageBytes, landmarks, issues)
}

func (s *annotationService) Topology() annotation.TopologyResponse {
	return annotation.TopologyResponse{
		TotalPoints: facemesh.MeshPointCount,
		Regions:     facemesh.Regions(),
	}
}

func (s *annotationService) ProcessMeshFrame(frame []byte) (*entity.MeshResult, error) {
	return s.meshClient.DetectMesh(frame)
}

func (s *annotationService) GetRecentRecords(ctx context.Context, limit int) ([]entity.AnnotationRecord, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.annotationRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return repo.Annotation.GetRecentRecords(ctx, limit)
}

// GetRecord serves a single annotation by ID, cache first: while the cached
// response is alive the full payload (annotated image included) comes straight
// from Redis; afterwards the Postgres record remains as the durable summary.
func (s *annotationService) GetRecord(ctx context.Context, id string) (*annotation.RecordDetail, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if s.redis != nil {
		payload, err := s.redis.GetCachedAnnotation(ctx, cacheKey(id))
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"record_id":  id,
			}).Debug("Annotation cache miss")
		} else if payload != "" {
			var cached annotation.AnnotateResponse
			if err := jsoniter.UnmarshalFromString(payload, &cached); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"record_id":  id,
					"error":      err.Error(),
				}).Error("Failed to unmarshal cached annotation response")
			} else {
				return &annotation.RecordDetail{ID: id, Cached: true, Response: &cached}, nil
			}
		}
	}

	repo, err := s.annotationRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	record, err := repo.Annotation.GetRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &annotation.RecordDetail{ID: id, Record: &record}, nil
}

func (s *annotationService) GetRecordsByRequestID(ctx context.Context, requestID string) ([]entity.AnnotationRecord, error) {
	repo, err := s.annotationRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	return repo.Annotation.GetRecordsByRequestID(ctx, requestID)
}

// resolveAnchors prefers landmarks supplied with the request; the detector
// round trip only happens when the caller sent none.
func (s *annotationService) resolveAnchors(ctx context.Context, imageBytes []byte, landmarks []entity.Point) (entity.AnchorFrame, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if len(landmarks) > 0 {
		return entity.AnchorFrame{Points: landmarks}, nil
	}

	result, err := s.meshClient.DetectMesh(imageBytes)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Mesh detection failed")
		return entity.AnchorFrame{}, annotation.ErrMeshUnavailable
	}

	if !result.HasFace() {
		return entity.AnchorFrame{}, nil
	}

	return result.AnchorFrame(), nil
}

// synthesizeIssue resolves one issue's anchors and builds its primitive. A
// panic inside geometry code is contained here so one bad issue never takes
// down the whole batch.
func (s *annotationService) synthesizeIssue(requestID string, index int, issue entity.Issue, anchors entity.AnchorFrame, imageHeight int) (primitive *annotator.Primitive, points []entity.Point) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"index":      index,
				"type":       issue.Type,
				"region":     issue.Region,
				"panic":      r,
			}).Error("Shape synthesis panicked, skipping issue")
			primitive = nil
		}
	}()

	indices := facemesh.Resolve(issue.Region, issue.Type)
	points = anchors.Select(indices)

	if len(points) == 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"index":      index,
			"region":     issue.Region,
		}).Warn("Region resolved to no anchor points")
		return nil, nil
	}

	seed := annotator.IssueSeed(index, issue)
	return annotator.Synthesize(issue, points, imageHeight, s.options, seed), points
}

func (s *annotationService) buildNoFaceResponse(ctx context.Context, baseImage image.Image, issues []annotation.IssueInput, width, height int) (*annotation.AnnotateResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	dataURI, rawPNG, err := annotator.EncodeDataURI(baseImage)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to encode passthrough image")
		return nil, annotation.ErrRenderFailed
	}

	resp := &annotation.AnnotateResponse{
		Status:         annotation.StatusNoFaceDetected,
		AnnotatedImage: dataURI,
		TotalIssues:    len(issues),
		RenderedIssues: 0,
		ImageInfo:      annotation.ImageInfo{Width: width, Height: height},
		Message:        "No face detected in the provided image",
	}

	s.persistResult(ctx, resp, rawPNG)

	return resp, nil
}

// persistResult records the outcome in Postgres, caches the response in Redis
// and optionally uploads the rendered PNG to S3. All three are side channels:
// failures are logged and the request still succeeds.
func (s *annotationService) persistResult(ctx context.Context, resp *annotation.AnnotateResponse, rawPNG []byte) {
	requestID := contextPkg.GetRequestID(ctx)

	var imageURL string
	if os.Getenv("S3_UPLOAD_ENABLED") == "true" && s.s3 != nil {
		location, err := s.s3.UploadBytes("annotated.png", rawPNG, "image/png")
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload annotated image to S3")
		} else {
			imageURL = location
		}
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID for annotation record")
		return
	}

	repo, err := s.annotationRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
	} else {
		record := entity.AnnotationRecord{
			ID:            id,
			RequestID:     requestID,
			Status:        resp.Status,
			IssueCount:    resp.TotalIssues,
			RenderedCount: resp.RenderedIssues,
			ImageWidth:    resp.ImageInfo.Width,
			ImageHeight:   resp.ImageInfo.Height,
			ImageURL:      imageURL,
			CreatedAt:     time.Now(),
		}
		if err := repo.Annotation.CreateRecord(ctx, record); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to save annotation record")
		}
	}

	if s.redis != nil {
		payload, err := jsoniter.MarshalToString(resp)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to marshal annotation response for cache")
			return
		}
		if err := s.redis.SetCachedAnnotation(ctx, cacheKey(id), payload, cacheTTL); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to cache annotation response")
		}
	}
}
