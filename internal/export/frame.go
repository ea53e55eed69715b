package export

import (
	"fmt"

	"github.com/poselab/nerfexport/internal/colmap"
	"github.com/poselab/nerfexport/internal/spatial"
)

// FrameRecord binds one exported frame together: its 0-based position in
// sorted camera order, the derived image id and filename, and the canonical
// pose. ImageID and Filename are functions of Index, never assigned
// independently; that derivation is what keeps the two output formats
// referring to the same frame.
type FrameRecord struct {
	Index      int
	ImageID    int32
	Filename   string
	CameraName string
	Pose       spatial.Pose
}

// NewFrameRecord derives the image id (index+1) and filename
// (frame_%05d.png) for a frame at the given sorted position.
func NewFrameRecord(index int, cameraName string, pose spatial.Pose) FrameRecord {
	return FrameRecord{
		Index:      index,
		ImageID:    int32(index + 1),
		Filename:   fmt.Sprintf("frame_%05d.png", index),
		CameraName: cameraName,
		Pose:       pose,
	}
}

// Encode builds the two per-frame output records from the one canonical pose:
// the sparse-model Camera+Image pair and the JSON manifest frame. The
// quaternion in the Image and the rotation block of the manifest's
// transform_matrix come from the same decomposition, so the two encodings
// always describe the same transform.
//
// Each frame gets its own Camera record carrying the shared intrinsics. The
// export assumes one physical camera reused across frames; the per-frame
// record id mirrors the upstream dataset layout rather than deduplicating.
func (f FrameRecord) Encode(in Intrinsics) (colmap.Camera, colmap.Image, ManifestFrame) {
	cam := colmap.Camera{
		ID:     f.ImageID,
		Model:  colmap.ModelOpenCV,
		Width:  int64(in.Width),
		Height: int64(in.Height),
		Params: in.Params(),
	}

	q := f.Pose.Quaternion()
	img := colmap.Image{
		ID:       f.ImageID,
		Qvec:     [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag},
		Tvec:     [3]float64{f.Pose.Translation.X, f.Pose.Translation.Y, f.Pose.Translation.Z},
		CameraID: f.ImageID,
		Name:     f.Filename,
	}

	frame := ManifestFrame{
		FilePath:        "./images/" + f.Filename,
		TransformMatrix: f.Pose.TransformMatrix(),
	}

	return cam, img, frame
}
