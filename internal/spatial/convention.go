// Package spatial implements the coordinate-frame conversion and pose
// decomposition used by the dataset exporter. The source scene graph uses a
// Z-up convention; the reconstruction and neural-rendering consumers expect
// Y-up. The conversion is a fixed rotation applied to every camera world
// transform before the pose is decomposed into rotation and translation.
package spatial

import "gonum.org/v1/gonum/mat"

// conversion is the fixed change of basis from the source Z-up convention to
// the target Y-up convention: a -90 degree rotation about the X axis as a 4x4
// homogeneous matrix. Built once at package init; every frame of an export
// must be transformed with this same matrix.
var conversion = mat.NewDense(4, 4, []float64{
	1, 0, 0, 0,
	0, 0, 1, 0,
	0, -1, 0, 0,
	0, 0, 0, 1,
})

// ConversionMatrix returns a copy of the fixed axis-convention matrix. A copy
// is returned so callers cannot mutate the shared value.
func ConversionMatrix() *mat.Dense {
	return mat.DenseCopyOf(conversion)
}
