package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/poselab/nerfexport/internal/export"
)

// WriteHTMLReport writes a self-contained HTML page with an interactive
// scatter of the camera positions on the ground plane plus the run summary in
// the chart subtitle.
func WriteHTMLReport(res *export.Result, path string) error {
	if len(res.Frames) == 0 {
		return fmt.Errorf("no frames to report")
	}

	data := make([]opts.ScatterData, 0, len(res.Frames))
	for _, f := range res.Frames {
		data = append(data, opts.ScatterData{
			Name:  f.CameraName,
			Value: []interface{}{f.Pose.Translation.X, f.Pose.Translation.Z},
		})
	}

	in := res.Intrinsics
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Camera positions",
			Subtitle: fmt.Sprintf("%d frames, %dx%d px, fx=%.2f fy=%.2f",
				res.FrameCount, in.Width, in.Height, in.Fx, in.Fy),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Z", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("cameras", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	page := components.NewPage()
	page.AddCharts(scatter)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report %s: %w", path, err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering report: %w", err)
	}
	return f.Close()
}
