// Package scene models the exporter's view of the host 3D application: a
// read-only snapshot of camera entities plus the render collaborator that
// rasterizes an image for a given camera. The snapshot is taken once at
// export time; nothing here reaches back into a live scene graph.
package scene

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Camera is one camera entity captured from the scene: its stable name, the
// physical lens and sensor parameters used to derive pinhole intrinsics, and
// the camera-to-world transform in the source engine's native Z-up
// convention.
type Camera struct {
	Name           string
	FocalLengthMM  float64
	SensorWidthMM  float64
	SensorHeightMM float64
	World          *mat.Dense // 4x4 homogeneous camera-to-world transform
}

// Validate checks the physical parameters and transform shape of a camera.
func (c *Camera) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("camera has no name")
	}
	if c.FocalLengthMM <= 0 {
		return fmt.Errorf("camera %q: focal length %gmm must be positive", c.Name, c.FocalLengthMM)
	}
	if c.SensorWidthMM <= 0 || c.SensorHeightMM <= 0 {
		return fmt.Errorf("camera %q: sensor %gx%gmm must be positive", c.Name, c.SensorWidthMM, c.SensorHeightMM)
	}
	if c.World == nil {
		return fmt.Errorf("camera %q: missing world transform", c.Name)
	}
	if r, cols := c.World.Dims(); r != 4 || cols != 4 {
		return fmt.Errorf("camera %q: world transform is %dx%d, want 4x4", c.Name, r, cols)
	}
	return nil
}

// Scene is the exported snapshot: render resolution shared by all frames and
// the camera entities present at export time.
type Scene struct {
	RenderWidth  int
	RenderHeight int
	Cameras      []*Camera
}

// SortedCameras returns the scene cameras ordered by name. Sorting is stable
// so equal names keep their snapshot order; the sorted order is what drives
// frame id and filename assignment, making repeated exports of an unchanged
// scene deterministic.
func (s *Scene) SortedCameras() []*Camera {
	out := make([]*Camera, len(s.Cameras))
	copy(out, s.Cameras)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Validate checks the resolution and every camera.
func (s *Scene) Validate() error {
	if s.RenderWidth <= 0 || s.RenderHeight <= 0 {
		return fmt.Errorf("render resolution %dx%d must be positive", s.RenderWidth, s.RenderHeight)
	}
	for _, c := range s.Cameras {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
