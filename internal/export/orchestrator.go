package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/poselab/nerfexport/internal/colmap"
	"github.com/poselab/nerfexport/internal/monitoring"
	"github.com/poselab/nerfexport/internal/scene"
	"github.com/poselab/nerfexport/internal/spatial"
)

// Options configure an export. The zero value of Distortion is the documented
// default; AABBScale must be positive and Format non-empty, with the
// documented defaults supplied by DefaultOptions.
type Options struct {
	Distortion Distortion
	AABBScale  float64 // must be > 0; the documented default is 16
	Format     string  // sparse-model format: colmap.FormatText or colmap.FormatBinary

	// StrictIntrinsics makes heterogeneous camera lens/sensor parameters a
	// fatal error instead of a logged warning.
	StrictIntrinsics bool

	// Progress, when set, receives the completion percentage after each
	// frame. Observational only; it cannot influence the export.
	Progress func(pct float64)
}

// DefaultOptions returns the documented defaults: zero distortion, aabb_scale
// 16, text sparse model.
func DefaultOptions() Options {
	return Options{
		AABBScale: 16.0,
		Format:    colmap.FormatText,
	}
}

// Result summarizes a completed export.
type Result struct {
	OutputDir  string
	FrameCount int
	Duration   time.Duration
	Intrinsics Intrinsics
	Frames     []FrameRecord
	Manifest   *Manifest
}

// Exporter runs one export against a scene snapshot and a render
// collaborator. The renderer's viewport state is exclusively owned by the
// exporter for the duration of Export; frames are processed strictly
// sequentially in sorted camera-name order, and no two exports may run
// concurrently against the same renderer.
type Exporter struct {
	scene    *scene.Scene
	renderer scene.Renderer
	opts     Options
}

// New creates an exporter. An empty opts.Format falls back to the text
// default; AABBScale is validated by Export so a bad value surfaces as an
// error rather than being rewritten.
func New(s *scene.Scene, r scene.Renderer, opts Options) *Exporter {
	if opts.Format == "" {
		opts.Format = colmap.FormatText
	}
	return &Exporter{scene: s, renderer: r, opts: opts}
}

// Export validates the scene and render context, then produces the dataset
// under outDir: rendered images in images/, the sparse model in poses/, and
// transforms.json at the root. Validation failures abort before anything is
// written; a render failure aborts the run with the manifest and sparse model
// unwritten (images of earlier frames are not rolled back). There are no
// retries: every failure here is non-transient.
func (e *Exporter) Export(outDir string) (*Result, error) {
	start := time.Now()

	// Validate before any I/O: a failed run must not leave output behind.
	cams := e.scene.SortedCameras()
	if len(cams) == 0 {
		return nil, ErrEmptyScene
	}
	if e.renderer == nil {
		return nil, ErrNoRenderContext
	}
	if err := e.renderer.Ready(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRenderContext, err)
	}
	if err := e.scene.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	if e.opts.AABBScale <= 0 {
		return nil, fmt.Errorf("aabb_scale %g must be positive", e.opts.AABBScale)
	}

	intr, err := ResolveIntrinsics(e.scene, e.opts.Distortion)
	if err != nil {
		return nil, err
	}
	if err := CheckUniformIntrinsics(e.scene, e.opts.StrictIntrinsics); err != nil {
		return nil, err
	}

	imagesDir := filepath.Join(outDir, "images")
	posesDir := filepath.Join(outDir, "poses")
	for _, dir := range []string{outDir, imagesDir, posesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	cameras := make(map[int32]colmap.Camera, len(cams))
	images := make(map[int32]colmap.Image, len(cams))
	manifest := NewManifest(intr, e.opts.AABBScale)
	frames := make([]FrameRecord, 0, len(cams))

	for idx, cam := range cams {
		pose, err := spatial.FromWorldMatrix(cam.World)
		if err != nil {
			return nil, fmt.Errorf("camera %q: %w", cam.Name, err)
		}
		rec := NewFrameRecord(idx, cam.Name, pose)

		if err := e.renderer.Render(cam, filepath.Join(imagesDir, rec.Filename)); err != nil {
			return nil, &RenderError{Index: idx, Camera: cam.Name, Err: err}
		}

		colmapCam, colmapImg, frame := rec.Encode(intr)
		cameras[rec.ImageID] = colmapCam
		images[rec.ImageID] = colmapImg
		manifest.Frames = append(manifest.Frames, frame)
		frames = append(frames, rec)

		if e.opts.Progress != nil {
			e.opts.Progress(100 * float64(idx+1) / float64(len(cams)))
		}
	}

	// All frames succeeded; only now do the model and manifest hit disk.
	points3D := map[int64]colmap.Point3D{}
	if err := colmap.WriteModel(cameras, images, points3D, posesDir, e.opts.Format); err != nil {
		return nil, fmt.Errorf("writing sparse model: %w", err)
	}
	if err := manifest.WriteFile(filepath.Join(outDir, "transforms.json")); err != nil {
		return nil, err
	}

	res := &Result{
		OutputDir:  outDir,
		FrameCount: len(frames),
		Duration:   time.Since(start),
		Intrinsics: intr,
		Frames:     frames,
		Manifest:   manifest,
	}
	monitoring.Logf("exported %d frames to %s in %s", res.FrameCount, outDir, res.Duration.Round(time.Millisecond))
	return res, nil
}
