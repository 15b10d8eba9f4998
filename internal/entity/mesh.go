package entity

// MeshResult is the raw answer of the external face-mesh detector service.
type MeshResult struct {
	Status      string  `json:"status"`
	Landmarks   []Point `json:"landmarks,omitempty"`
	TotalPoints int     `json:"total_points,omitempty"`
	ImageWidth  int     `json:"image_width,omitempty"`
	ImageHeight int     `json:"image_height,omitempty"`
	Error       string  `json:"error,omitempty"`
}

const (
	MeshStatusOK     = "success"
	MeshStatusNoFace = "no_face"
)

func (m MeshResult) HasFace() bool {
	return m.Status == MeshStatusOK && len(m.Landmarks) > 0
}

func (m MeshResult) AnchorFrame() AnchorFrame {
	return AnchorFrame{Points: m.Landmarks}
}
