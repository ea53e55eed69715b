// Package colmap holds the sparse-model record types and writers for the
// COLMAP on-disk schema: cameras, images and 3D points keyed by integer id,
// serialized either as the text or the binary variant of the format.
package colmap

// CameraModel identifies a COLMAP camera model: its numeric id in the binary
// schema, its name in the text schema, and the parameter count it carries.
type CameraModel struct {
	ID        int32
	Name      string
	NumParams int
}

// Camera models supported by this exporter. OPENCV is the pinhole model with
// radial and tangential distortion (fx, fy, cx, cy, k1, k2, p1, p2).
var (
	ModelPinhole = CameraModel{ID: 1, Name: "PINHOLE", NumParams: 4}
	ModelOpenCV  = CameraModel{ID: 4, Name: "OPENCV", NumParams: 8}
)

// Camera is one camera record: intrinsics plus model type.
type Camera struct {
	ID     int32
	Model  CameraModel
	Width  int64
	Height int64
	Params []float64
}

// Image is one posed image record. Qvec is (qw, qx, qy, qz), Tvec is
// (tx, ty, tz); Points2D carries observed features, which this exporter
// always leaves empty.
type Image struct {
	ID       int32
	Qvec     [4]float64
	Tvec     [3]float64
	CameraID int32
	Name     string
	Points2D []Point2D
}

// Point2D is an observed image point with its associated 3D point id, or -1
// if unmatched.
type Point2D struct {
	X         float64
	Y         float64
	Point3DID int64
}

// Point3D is one reconstructed 3D point with its observation track. The pose
// exporter writes an empty point set; the type exists so the writers handle
// the full schema.
type Point3D struct {
	ID    int64
	XYZ   [3]float64
	RGB   [3]uint8
	Error float64
	Track []TrackElement
}

// TrackElement links a 3D point to one of its image observations.
type TrackElement struct {
	ImageID    int32
	Point2DIdx int32
}
