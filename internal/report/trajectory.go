// Package report renders post-export diagnostics: a static top-down plot of
// the camera trajectory and an interactive HTML summary. Both are optional;
// failures here are reported to the caller but must not unwind a dataset that
// is already on disk.
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/poselab/nerfexport/internal/export"
)

// WriteTrajectoryPlot draws the camera positions on the ground plane (X/Z in
// the Y-up target convention), connected in frame order, and saves a PNG to
// path.
func WriteTrajectoryPlot(res *export.Result, path string) error {
	if len(res.Frames) == 0 {
		return fmt.Errorf("no frames to plot")
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Camera trajectory (%d frames)", res.FrameCount)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"

	xys := make(plotter.XYs, len(res.Frames))
	for i, f := range res.Frames {
		xys[i].X = f.Pose.Translation.X
		xys[i].Y = f.Pose.Translation.Z
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("building trajectory series: %w", err)
	}
	p.Add(line, points)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving trajectory plot: %w", err)
	}
	return nil
}
