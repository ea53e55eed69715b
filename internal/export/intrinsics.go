// Package export drives the dataset export: it resolves pinhole intrinsics
// from the scene, transforms each camera pose into the target convention,
// invokes the render collaborator, and emits the two output formats (COLMAP
// sparse model and transforms.json manifest) from one canonical pose set.
package export

import (
	"fmt"
	"math"

	"github.com/poselab/nerfexport/internal/monitoring"
	"github.com/poselab/nerfexport/internal/scene"
)

// Distortion carries the OpenCV-style radial (k1, k2) and tangential (p1, p2)
// coefficients. They are pass-through configuration, never estimated here;
// the zero value is the documented default.
type Distortion struct {
	K1 float64
	K2 float64
	P1 float64
	P2 float64
}

// Intrinsics is the shared pinhole camera model for an export: resolution in
// pixels, focal lengths and principal point in pixel units, plus distortion.
type Intrinsics struct {
	Width  int
	Height int
	Fx     float64
	Fy     float64
	Cx     float64
	Cy     float64
	K1     float64
	K2     float64
	P1     float64
	P2     float64
}

// Params returns the intrinsics in OPENCV parameter order:
// fx, fy, cx, cy, k1, k2, p1, p2.
func (in Intrinsics) Params() []float64 {
	return []float64{in.Fx, in.Fy, in.Cx, in.Cy, in.K1, in.K2, in.P1, in.P2}
}

// ResolveIntrinsics derives the pinhole model from the first camera in sorted
// order using the standard 35mm-equivalent formula:
//
//	fx = focal_mm * width_px / sensor_width_mm
//	fy = focal_mm * height_px / sensor_height_mm
//
// with the principal point at the image centre. All frames of an export share
// these intrinsics; see CheckUniformIntrinsics for the multi-camera case.
// An empty scene yields ErrEmptyScene.
func ResolveIntrinsics(s *scene.Scene, d Distortion) (Intrinsics, error) {
	cams := s.SortedCameras()
	if len(cams) == 0 {
		return Intrinsics{}, ErrEmptyScene
	}
	if s.RenderWidth <= 0 || s.RenderHeight <= 0 {
		return Intrinsics{}, fmt.Errorf("render resolution %dx%d must be positive", s.RenderWidth, s.RenderHeight)
	}

	cam := cams[0]
	if err := cam.Validate(); err != nil {
		return Intrinsics{}, err
	}

	w := float64(s.RenderWidth)
	h := float64(s.RenderHeight)
	return Intrinsics{
		Width:  s.RenderWidth,
		Height: s.RenderHeight,
		Fx:     cam.FocalLengthMM * w / cam.SensorWidthMM,
		Fy:     cam.FocalLengthMM * h / cam.SensorHeightMM,
		Cx:     w / 2,
		Cy:     h / 2,
		K1:     d.K1,
		K2:     d.K2,
		P1:     d.P1,
		P2:     d.P2,
	}, nil
}

// lensTol is the tolerance for comparing lens and sensor parameters across
// cameras when checking the shared-intrinsics assumption.
const lensTol = 1e-9

// CheckUniformIntrinsics verifies the assumption that every camera shares the
// lens and sensor parameters of the first sorted camera. In strict mode a
// mismatch is an error; otherwise it is logged and the first camera's
// intrinsics are used for all frames regardless.
func CheckUniformIntrinsics(s *scene.Scene, strict bool) error {
	cams := s.SortedCameras()
	if len(cams) < 2 {
		return nil
	}
	ref := cams[0]
	for _, cam := range cams[1:] {
		if math.Abs(cam.FocalLengthMM-ref.FocalLengthMM) > lensTol ||
			math.Abs(cam.SensorWidthMM-ref.SensorWidthMM) > lensTol ||
			math.Abs(cam.SensorHeightMM-ref.SensorHeightMM) > lensTol {
			if strict {
				return fmt.Errorf("camera %q lens/sensor parameters differ from %q; heterogeneous intrinsics are not supported",
					cam.Name, ref.Name)
			}
			monitoring.Logf("warning: camera %q lens/sensor parameters differ from %q; using %q intrinsics for all frames",
				cam.Name, ref.Name, ref.Name)
		}
	}
	return nil
}
