package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// snapshotFile is the on-disk JSON shape of a scene snapshot.
type snapshotFile struct {
	RenderWidth  int              `json:"render_width"`
	RenderHeight int              `json:"render_height"`
	Cameras      []snapshotCamera `json:"cameras"`
}

type snapshotCamera struct {
	Name           string        `json:"name"`
	FocalLengthMM  float64       `json:"focal_length_mm"`
	SensorWidthMM  float64       `json:"sensor_width_mm"`
	SensorHeightMM float64       `json:"sensor_height_mm"`
	World          [4][4]float64 `json:"world"`
}

// LoadSnapshot reads a scene snapshot from a JSON file and validates it.
// The world matrices are row-major 4x4 arrays in the source engine's native
// convention.
func LoadSnapshot(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene snapshot: %w", err)
	}
	return ParseSnapshot(raw)
}

// ParseSnapshot decodes and validates a JSON scene snapshot.
func ParseSnapshot(raw []byte) (*Scene, error) {
	var file snapshotFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing scene snapshot: %w", err)
	}

	s := &Scene{
		RenderWidth:  file.RenderWidth,
		RenderHeight: file.RenderHeight,
		Cameras:      make([]*Camera, 0, len(file.Cameras)),
	}
	for _, sc := range file.Cameras {
		world := mat.NewDense(4, 4, nil)
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				world.Set(i, j, sc.World[i][j])
			}
		}
		s.Cameras = append(s.Cameras, &Camera{
			Name:           sc.Name,
			FocalLengthMM:  sc.FocalLengthMM,
			SensorWidthMM:  sc.SensorWidthMM,
			SensorHeightMM: sc.SensorHeightMM,
			World:          world,
		})
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene snapshot: %w", err)
	}
	return s, nil
}
