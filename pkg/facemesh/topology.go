package facemesh

// MeshPointCount is the size of the dense face-mesh anchor set produced by the
// external detector. Every index below refers into that set.
const MeshPointCount = 468

// Region names of the anchor topology. Eye and lip sequences are stored in
// contour order (consecutive indices are spatially adjacent); the other
// regions are unordered point bags meant for convex-hull rendering.
const (
	RegionFaceOval        = "face_oval"
	RegionLeftEye         = "left_eye"
	RegionRightEye        = "right_eye"
	RegionLeftTearTrough  = "left_tear_trough"
	RegionRightTearTrough = "right_tear_trough"
	RegionLeftUnderEye    = "left_under_eye"
	RegionRightUnderEye   = "right_under_eye"
	RegionLips            = "lips"
	RegionLeftEyebrow     = "left_eyebrow"
	RegionRightEyebrow    = "right_eyebrow"
	RegionNose            = "nose"
	RegionForehead        = "forehead"
	RegionTZone           = "t_zone"
	RegionLeftCheek       = "left_cheek"
	RegionRightCheek      = "right_cheek"
	RegionChin            = "chin"
	RegionJawline         = "jawline"
)

// topology maps region names to mesh anchor indices. Loaded once as package
// state and never mutated afterwards.
var topology = map[string][]int{
	RegionFaceOval: {
		10, 338, 297, 332, 284, 251, 389, 356, 454, 323, 361, 288,
		397, 365, 379, 378, 400, 377, 152, 148, 176, 149, 150, 136,
		172, 58, 132, 93, 234, 127, 162, 21, 54, 103, 67, 109,
	},
	RegionLeftEye: {
		362, 382, 381, 380, 374, 373, 390, 249, 263, 466, 388, 387, 386, 385, 384, 398,
	},
	RegionRightEye: {
		33, 7, 163, 144, 145, 153, 154, 155, 133, 173, 157, 158, 159, 160, 161, 246,
	},
	// Lower-lid arcs hugging the infraorbital edge, left to right in image space.
	RegionLeftTearTrough: {
		362, 382, 381, 380, 374, 373, 390, 249,
	},
	RegionRightTearTrough: {
		33, 7, 163, 144, 145, 153, 154, 155,
	},
	RegionLeftUnderEye: {
		463, 341, 256, 252, 253, 254, 339, 255, 359, 446,
	},
	RegionRightUnderEye: {
		226, 130, 25, 110, 24, 23, 22, 26, 112, 243,
	},
	RegionLips: {
		61, 146, 91, 181, 84, 17, 314, 405, 321, 375, 291,
		409, 270, 269, 267, 0, 37, 39, 40, 185,
	},
	RegionLeftEyebrow: {
		276, 283, 282, 295, 285, 300, 293, 334, 296, 336,
	},
	RegionRightEyebrow: {
		46, 53, 52, 65, 55, 70, 63, 105, 66, 107,
	},
	RegionNose: {
		168, 6, 197, 195, 5, 4, 45, 220, 115, 48, 64, 98, 97,
		2, 326, 327, 294, 278, 344, 440, 275, 1, 19, 94,
	},
	RegionForehead: {
		10, 338, 297, 332, 284, 251, 21, 54, 103, 67, 109,
		151, 9, 8, 107, 66, 105, 63, 70, 336, 296, 334, 293, 300,
	},
	RegionTZone: {
		10, 151, 9, 8, 168, 6, 197, 195, 5, 4, 1, 19, 94, 2,
		107, 66, 105, 336, 296, 334, 98, 327,
	},
	RegionLeftCheek: {
		425, 427, 411, 352, 346, 347, 348, 349, 350, 357, 280, 330, 329, 266,
	},
	RegionRightCheek: {
		205, 207, 187, 123, 117, 118, 119, 120, 121, 128, 50, 101, 100, 36,
	},
	RegionChin: {
		152, 148, 176, 149, 150, 396, 175, 377, 400, 378, 379, 365, 136,
	},
	RegionJawline: {
		454, 323, 361, 288, 397, 365, 379, 378, 400, 377, 152,
		148, 176, 149, 150, 136, 172, 58, 132, 93, 234,
	},
}

// Indices returns the anchor indices of a topology region, or nil when the
// region name is unknown.
func Indices(region string) []int {
	return topology[region]
}

// Regions returns the region name -> anchor count table for the topology info
// endpoint.
func Regions() map[string]int {
	out := make(map[string]int, len(topology))
	for name, indices := range topology {
		out[name] = len(indices)
	}
	return out
}
