package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/poselab/nerfexport/internal/export"
	"github.com/poselab/nerfexport/internal/spatial"
	"github.com/poselab/nerfexport/internal/testutil"
)

func testResult(t *testing.T) *export.Result {
	t.Helper()
	res := &export.Result{
		FrameCount: 3,
		Intrinsics: export.Intrinsics{Width: 1920, Height: 1080, Fx: 2666.67, Fy: 2250},
	}
	positions := [][3]float64{{0, 0, 0}, {1, 0, 2}, {2, 0, 1}}
	for i, p := range positions {
		world := mat.NewDense(4, 4, []float64{
			1, 0, 0, p[0],
			0, 1, 0, p[1],
			0, 0, 1, p[2],
			0, 0, 0, 1,
		})
		pose, err := spatial.FromWorldMatrix(world)
		if err != nil {
			t.Fatal(err)
		}
		res.Frames = append(res.Frames, export.NewFrameRecord(i, "cam", pose))
	}
	return res
}

func TestWriteTrajectoryPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.png")
	if err := WriteTrajectoryPlot(testResult(t), path); err != nil {
		t.Fatalf("WriteTrajectoryPlot: %v", err)
	}
	testutil.AssertFileExists(t, path)
}

func TestWriteTrajectoryPlotNoFrames(t *testing.T) {
	err := WriteTrajectoryPlot(&export.Result{}, filepath.Join(t.TempDir(), "t.png"))
	testutil.AssertError(t, err)
}

func TestWriteHTMLReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteHTMLReport(testResult(t), path); err != nil {
		t.Fatalf("WriteHTMLReport: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(raw)
	if !strings.Contains(body, "echarts") {
		t.Error("report should embed an echarts chart")
	}
	if !strings.Contains(body, "Camera positions") {
		t.Error("report should carry the chart title")
	}
}

func TestWriteHTMLReportNoFrames(t *testing.T) {
	err := WriteHTMLReport(&export.Result{}, filepath.Join(t.TempDir(), "r.html"))
	testutil.AssertError(t, err)
}
