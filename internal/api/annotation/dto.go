package annotation

import "DermaGolang/internal/entity"

type IssueInput struct {
	Type     string `json:"type" validate:"required"`
	Region   string `json:"region" validate:"required"`
	Severity string `json:"severity" validate:"required,oneof=mild moderate severe critical"`
}

type AnnotateRequest struct {
	ImageBase64 string         `json:"image_base64" validate:"required"`
	Landmarks   []entity.Point `json:"landmarks,omitempty"`
	Issues      []IssueInput   `json:"issues" validate:"required,dive"`
}

type AnnotateURLRequest struct {
	ImageURL  string         `json:"image_url" validate:"required,url"`
	Landmarks []entity.Point `json:"landmarks,omitempty"`
	Issues    []IssueInput   `json:"issues" validate:"required,dive"`
}

type IssueResult struct {
	Index          int            `json:"index"`
	Type           string         `json:"type"`
	Region         string         `json:"region"`
	Severity       string         `json:"severity"`
	Label          string         `json:"label"`
	Rendered       bool           `json:"rendered"`
	ResolvedPoints []entity.Point `json:"resolved_points,omitempty"`
}

type ImageInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type AnnotateResponse struct {
	Status         string        `json:"status"`
	AnnotatedImage string        `json:"annotated_image,omitempty"`
	TotalIssues    int           `json:"total_issues"`
	RenderedIssues int           `json:"rendered_issues"`
	Issues         []IssueResult `json:"issues,omitempty"`
	ImageInfo      ImageInfo     `json:"image_info"`
	Message        string        `json:"message,omitempty"`
}

// RecordDetail is the single-record lookup result. While the rendered response
// is still cached the full payload is returned with Cached=true; once the
// cache entry expires only the persisted summary record remains.
type RecordDetail struct {
	ID       string                   `json:"id"`
	Cached   bool                     `json:"cached"`
	Record   *entity.AnnotationRecord `json:"record,omitempty"`
	Response *AnnotateResponse        `json:"response,omitempty"`
}

type TopologyResponse struct {
	TotalPoints int            `json:"total_points"`
	Regions     map[string]int `json:"regions"`
}

const (
	StatusSuccess        = "success"
	StatusNoFaceDetected = "no_face_detected"
)
