package scene

// Renderer is the external render collaborator: it owns the shared viewport
// or render-surface state and produces an image file for a camera pose. The
// exporter calls Render sequentially, one frame at a time, because setting
// the active camera mutates that shared state; renderers are not expected to
// tolerate concurrent calls.
type Renderer interface {
	// Ready reports whether a render context is available. The exporter
	// calls it once up front so a missing viewport aborts the export before
	// any output is written.
	Ready() error

	// Render rasterizes the view from cam and writes the image to path.
	// Any error is treated as fatal for the whole export.
	Render(cam *Camera, path string) error
}
