package export

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"

	"github.com/poselab/nerfexport/internal/colmap"
	"github.com/poselab/nerfexport/internal/spatial"
)

func TestNewFrameRecordDerivations(t *testing.T) {
	tests := []struct {
		index        int
		wantID       int32
		wantFilename string
	}{
		{0, 1, "frame_00000.png"},
		{1, 2, "frame_00001.png"},
		{41, 42, "frame_00041.png"},
		{99999, 100000, "frame_99999.png"},
	}
	for _, tt := range tests {
		rec := NewFrameRecord(tt.index, "cam", spatial.Pose{})
		if rec.ImageID != tt.wantID {
			t.Errorf("index %d: image id = %d, want %d", tt.index, rec.ImageID, tt.wantID)
		}
		if rec.Filename != tt.wantFilename {
			t.Errorf("index %d: filename = %q, want %q", tt.index, rec.Filename, tt.wantFilename)
		}
	}
}

// The sparse-model Image and the manifest frame must encode the same
// transform: rotation block vs qvec, translation column vs tvec.
func TestEncodeCrossFormatConsistency(t *testing.T) {
	world := mat.NewDense(4, 4, []float64{
		0, -1, 0, 1.5,
		1, 0, 0, -2.5,
		0, 0, 1, 4.0,
		0, 0, 0, 1,
	})
	pose, err := spatial.FromWorldMatrix(world)
	if err != nil {
		t.Fatalf("FromWorldMatrix: %v", err)
	}
	rec := NewFrameRecord(3, "cam_d", pose)

	in, err := ResolveIntrinsics(testScene(fullFrameCamera("cam_d")), Distortion{})
	if err != nil {
		t.Fatal(err)
	}

	cam, img, frame := rec.Encode(in)

	// Identity and cross-references.
	if cam.ID != 4 || img.ID != 4 || img.CameraID != 4 {
		t.Errorf("ids = camera %d, image %d -> camera %d, want all 4", cam.ID, img.ID, img.CameraID)
	}
	if img.Name != "frame_00003.png" || frame.FilePath != "./images/frame_00003.png" {
		t.Errorf("filename binding broken: image %q, manifest %q", img.Name, frame.FilePath)
	}
	if cam.Model != colmap.ModelOpenCV {
		t.Errorf("camera model = %v, want OPENCV", cam.Model)
	}

	// Translation: manifest column 3 equals tvec.
	for i := 0; i < 3; i++ {
		if frame.TransformMatrix[i][3] != img.Tvec[i] {
			t.Errorf("translation[%d]: manifest %v != tvec %v", i, frame.TransformMatrix[i][3], img.Tvec[i])
		}
	}
	if frame.TransformMatrix[3] != [4]float64{0, 0, 0, 1} {
		t.Errorf("last row = %v, want [0 0 0 1]", frame.TransformMatrix[3])
	}

	// Rotation: qvec converted back to a matrix equals the manifest block.
	back := spatial.RotationFromQuat(quat.Number{
		Real: img.Qvec[0], Imag: img.Qvec[1], Jmag: img.Qvec[2], Kmag: img.Qvec[3],
	})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(back.At(i, j)-frame.TransformMatrix[i][j]) > 1e-9 {
				t.Errorf("rotation (%d,%d): qvec gives %v, manifest has %v",
					i, j, back.At(i, j), frame.TransformMatrix[i][j])
			}
		}
	}
}
