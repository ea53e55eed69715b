// Command nerfexport converts a captured scene snapshot (camera poses, lens
// and sensor parameters) into a COLMAP sparse model plus a transforms.json
// manifest, rendering one image per camera along the way.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/poselab/nerfexport/internal/catalog"
	"github.com/poselab/nerfexport/internal/export"
	"github.com/poselab/nerfexport/internal/report"
	"github.com/poselab/nerfexport/internal/scene"
	"github.com/poselab/nerfexport/internal/version"
)

var (
	scenePath   = flag.String("scene", "", "Path to the scene snapshot JSON (required unless -list-runs)")
	outDir      = flag.String("out", "", "Output dataset directory (required unless -list-runs)")
	format      = flag.String("format", ".txt", "Sparse-model format: .txt or .bin")
	k1          = flag.Float64("k1", 0, "Radial distortion coefficient k1")
	k2          = flag.Float64("k2", 0, "Radial distortion coefficient k2")
	p1          = flag.Float64("p1", 0, "Tangential distortion coefficient p1")
	p2          = flag.Float64("p2", 0, "Tangential distortion coefficient p2")
	aabbScale   = flag.Float64("aabb-scale", 16, "aabb_scale written to transforms.json")
	strict      = flag.Bool("strict-intrinsics", false, "Fail if cameras have differing lens/sensor parameters")
	catalogDB   = flag.String("catalog", "", "Optional sqlite catalog recording export runs")
	diagnostics = flag.Bool("report", false, "Write trajectory.png and report.html into the output directory")
	listRuns    = flag.Int("list-runs", 0, "With -catalog: print the N most recent export runs and exit")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println("nerfexport", version.String())
		return
	}

	if *listRuns > 0 {
		if *catalogDB == "" {
			log.Fatal("-list-runs requires -catalog")
		}
		if err := printRuns(*catalogDB, *listRuns); err != nil {
			log.Fatalf("listing runs: %v", err)
		}
		return
	}

	if *scenePath == "" || *outDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	s, err := scene.LoadSnapshot(*scenePath)
	if err != nil {
		log.Fatalf("loading scene: %v", err)
	}
	log.Printf("loaded scene: %d cameras at %dx%d", len(s.Cameras), s.RenderWidth, s.RenderHeight)

	opts := export.Options{
		Distortion:       export.Distortion{K1: *k1, K2: *k2, P1: *p1, P2: *p2},
		AABBScale:        *aabbScale,
		Format:           *format,
		StrictIntrinsics: *strict,
		Progress: func(pct float64) {
			log.Printf("export progress: %.1f%%", pct)
		},
	}

	var cat *catalog.Catalog
	var runID string
	if *catalogDB != "" {
		cat, err = catalog.Open(*catalogDB)
		if err != nil {
			log.Fatalf("opening catalog: %v", err)
		}
		defer cat.Close()
		runID, err = cat.RecordStart(*outDir, *format)
		if err != nil {
			log.Fatalf("recording run: %v", err)
		}
		log.Printf("export run %s", runID)
	}

	renderer := scene.NewSyntheticRenderer(s.RenderWidth, s.RenderHeight)
	res, err := export.New(s, renderer, opts).Export(*outDir)

	if cat != nil {
		frames := 0
		if res != nil {
			frames = res.FrameCount
		}
		if cerr := cat.RecordResult(runID, frames, err); cerr != nil {
			log.Printf("warning: catalog update failed: %v", cerr)
		}
	}
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	if *diagnostics {
		if perr := report.WriteTrajectoryPlot(res, filepath.Join(*outDir, "trajectory.png")); perr != nil {
			log.Printf("warning: trajectory plot failed: %v", perr)
		}
		if herr := report.WriteHTMLReport(res, filepath.Join(*outDir, "report.html")); herr != nil {
			log.Printf("warning: HTML report failed: %v", herr)
		}
	}

	log.Printf("done: %d frames in %s", res.FrameCount, *outDir)
}

func printRuns(dbPath string, limit int) error {
	cat, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	runs, err := cat.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no export runs recorded")
		return nil
	}
	for _, r := range runs {
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s  %-9s  %4d frames  %s  started %s  completed %s\n",
			r.RunID, r.Status, r.FrameCount, r.OutputDir,
			r.StartedAt.Format("2006-01-02 15:04:05"), completed)
	}
	return nil
}
