package export

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestFrame is one frame object in transforms.json: the relative image
// path and the camera-to-world transform as a row-major 4x4 matrix with last
// row [0 0 0 1].
type ManifestFrame struct {
	FilePath        string        `json:"file_path"`
	TransformMatrix [4][4]float64 `json:"transform_matrix"`
}

// Manifest is the transforms.json document: shared intrinsics followed by the
// ordered frame list. Field order here fixes the JSON key order, which keeps
// repeated exports byte-identical.
type Manifest struct {
	FlX       float64         `json:"fl_x"`
	FlY       float64         `json:"fl_y"`
	K1        float64         `json:"k1"`
	K2        float64         `json:"k2"`
	P1        float64         `json:"p1"`
	P2        float64         `json:"p2"`
	Cx        float64         `json:"cx"`
	Cy        float64         `json:"cy"`
	W         int             `json:"w"`
	H         int             `json:"h"`
	AABBScale float64         `json:"aabb_scale"`
	Frames    []ManifestFrame `json:"frames"`
}

// NewManifest builds a manifest carrying the shared intrinsics and scale,
// with an empty frame list ready for accumulation.
func NewManifest(in Intrinsics, aabbScale float64) *Manifest {
	return &Manifest{
		FlX:       in.Fx,
		FlY:       in.Fy,
		K1:        in.K1,
		K2:        in.K2,
		P1:        in.P1,
		P2:        in.P2,
		Cx:        in.Cx,
		Cy:        in.Cy,
		W:         in.Width,
		H:         in.Height,
		AABBScale: aabbScale,
		Frames:    []ManifestFrame{},
	}
}

// WriteFile serializes the manifest to path with 4-space indentation.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
