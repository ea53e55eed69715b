package spatial

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
)

// axisAngleRotation builds a 3x3 rotation about an arbitrary unit axis by
// angle theta (Rodrigues' formula), independent of the code under test.
func axisAngleRotation(ux, uy, uz, theta float64) *mat.Dense {
	n := math.Sqrt(ux*ux + uy*uy + uz*uz)
	ux, uy, uz = ux/n, uy/n, uz/n
	c, s := math.Cos(theta), math.Sin(theta)
	ic := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + ux*ux*ic, ux*uy*ic - uz*s, ux*uz*ic + uy*s,
		uy*ux*ic + uz*s, c + uy*uy*ic, uy*uz*ic - ux*s,
		uz*ux*ic - uy*s, uz*uy*ic + ux*s, c + uz*uz*ic,
	})
}

func TestQuatRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		ux, uy, uz float64
		theta      float64
	}{
		{"identity", 1, 0, 0, 0},
		{"small about x", 1, 0, 0, 0.01},
		{"quarter about y", 0, 1, 0, math.Pi / 2},
		{"third about z", 0, 0, 1, 2 * math.Pi / 3},
		{"skew axis", 1, 2, 3, 1.234},
		{"near 180 about x", 1, 0, 0, math.Pi - 1e-6},
		{"near 180 about y", 0, 1, 0, math.Pi - 1e-6},
		{"near 180 about z", 0, 0, 1, math.Pi - 1e-6},
		{"exactly 180 skew", 1, -1, 0.5, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := axisAngleRotation(tt.ux, tt.uy, tt.uz, tt.theta)
			q := QuatFromRotation(r)

			if n := quat.Abs(q); math.Abs(n-1) > 1e-9 {
				t.Fatalf("quaternion norm = %.12f, want 1", n)
			}

			back := RotationFromQuat(q)
			if !mat.EqualApprox(back, r, 1e-9) {
				t.Errorf("round trip lost the rotation:\n got %v\nwant %v",
					mat.Formatted(back), mat.Formatted(r))
			}
		})
	}
}

func TestQuatFromRotationIdentity(t *testing.T) {
	q := QuatFromRotation(mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}))
	if q.Real != 1 || q.Imag != 0 || q.Jmag != 0 || q.Kmag != 0 {
		t.Errorf("identity quaternion = %+v, want (1,0,0,0)", q)
	}
}

func TestQuatFromRotationKnownValues(t *testing.T) {
	// 90 degrees about Z: q = (cos45, 0, 0, sin45).
	r := axisAngleRotation(0, 0, 1, math.Pi/2)
	q := QuatFromRotation(r)
	h := math.Sqrt(2) / 2
	if math.Abs(q.Real-h) > 1e-12 || math.Abs(q.Kmag-h) > 1e-12 ||
		math.Abs(q.Imag) > 1e-12 || math.Abs(q.Jmag) > 1e-12 {
		t.Errorf("quaternion for 90 deg about Z = %+v, want (%g, 0, 0, %g)", q, h, h)
	}
}
