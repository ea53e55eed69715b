package spatial

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// QuatFromRotation converts a 3x3 proper rotation matrix into a unit
// quaternion. Branch selection follows the largest diagonal element
// (Shepperd's method) so the divisor stays well away from zero for rotations
// near 180 degrees; a naive trace-only formula loses precision there.
func QuatFromRotation(r *mat.Dense) quat.Number {
	m00, m01, m02 := r.At(0, 0), r.At(0, 1), r.At(0, 2)
	m10, m11, m12 := r.At(1, 0), r.At(1, 1), r.At(1, 2)
	m20, m21, m22 := r.At(2, 0), r.At(2, 1), r.At(2, 2)

	tr := m00 + m11 + m22
	var q quat.Number
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2 // 4*qw
		q.Real = 0.25 * s
		q.Imag = (m21 - m12) / s
		q.Jmag = (m02 - m20) / s
		q.Kmag = (m10 - m01) / s
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2 // 4*qx
		q.Real = (m21 - m12) / s
		q.Imag = 0.25 * s
		q.Jmag = (m01 + m10) / s
		q.Kmag = (m02 + m20) / s
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2 // 4*qy
		q.Real = (m02 - m20) / s
		q.Imag = (m01 + m10) / s
		q.Jmag = 0.25 * s
		q.Kmag = (m12 + m21) / s
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2 // 4*qz
		q.Real = (m10 - m01) / s
		q.Imag = (m02 + m20) / s
		q.Jmag = (m12 + m21) / s
		q.Kmag = 0.25 * s
	}
	return q
}

// RotationFromQuat converts a unit quaternion back into a 3x3 rotation
// matrix. Used by consistency checks and tests; export itself only travels
// matrix to quaternion.
func RotationFromQuat(q quat.Number) *mat.Dense {
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return mat.NewDense(3, 3, []float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	})
}
