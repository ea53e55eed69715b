package spatial

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// rigidTol bounds how far the rotation block of a transform may drift from a
// proper rotation (orthonormal, determinant +1) before it is rejected. Scene
// snapshots may carry rounded float values, so the tolerance is looser than
// machine epsilon.
const rigidTol = 1e-4

// Pose is a camera pose in the target Y-up convention: a proper rotation and
// a translation, decomposed from a converted 4x4 world transform. The same
// decomposition feeds both output formats of an export, so the rotation here
// is the single source of truth for the matrix and quaternion encodings.
type Pose struct {
	Rotation    *mat.Dense // 3x3, orthonormal, det +1
	Translation r3.Vec
}

// FromWorldMatrix converts a source-convention camera-to-world transform into
// a canonical pose. The fixed axis-convention matrix is left-multiplied onto
// the raw transform, then the rotation is sliced directly from the upper-left
// 3x3 block and the translation from the last column. No Euler intermediate
// is involved.
//
// The input must be a 4x4 rigid transform: scaled or sheared matrices are
// rejected rather than silently producing a non-unit quaternion downstream.
func FromWorldMatrix(world *mat.Dense) (Pose, error) {
	r, c := world.Dims()
	if r != 4 || c != 4 {
		return Pose{}, fmt.Errorf("world transform must be 4x4, got %dx%d", r, c)
	}

	var converted mat.Dense
	converted.Mul(conversion, world)

	rot := mat.DenseCopyOf(converted.Slice(0, 3, 0, 3))
	if err := checkRigid(rot); err != nil {
		return Pose{}, err
	}

	return Pose{
		Rotation: rot,
		Translation: r3.Vec{
			X: converted.At(0, 3),
			Y: converted.At(1, 3),
			Z: converted.At(2, 3),
		},
	}, nil
}

// Quaternion returns the pose rotation as a unit quaternion (w, x, y, z in
// Real, Imag, Jmag, Kmag). Derived from the same rotation matrix used for the
// manifest encoding.
func (p Pose) Quaternion() quat.Number {
	return QuatFromRotation(p.Rotation)
}

// TransformMatrix returns the pose as a row-major 4x4 homogeneous matrix with
// last row [0 0 0 1], the shape used by the JSON manifest.
func (p Pose) TransformMatrix() [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = p.Rotation.At(i, j)
		}
	}
	m[0][3] = p.Translation.X
	m[1][3] = p.Translation.Y
	m[2][3] = p.Translation.Z
	m[3][3] = 1
	return m
}

// checkRigid verifies that r is a proper rotation within rigidTol: determinant
// +1 and r*rT equal to the identity.
func checkRigid(r *mat.Dense) error {
	if d := mat.Det(r); math.Abs(d-1) > rigidTol {
		return fmt.Errorf("rotation block is not a proper rotation: det=%g", d)
	}
	var rrt mat.Dense
	rrt.Mul(r, r.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(rrt.At(i, j)-want) > rigidTol {
				return fmt.Errorf("rotation block is not orthonormal at (%d,%d): %g", i, j, rrt.At(i, j))
			}
		}
	}
	return nil
}
