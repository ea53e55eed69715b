package export

import (
	"errors"
	"fmt"
)

// Export failures are all fatal and non-transient: they indicate missing
// scene content or a misconfigured environment, so the export aborts cleanly
// rather than retrying.
var (
	// ErrEmptyScene is returned when the scene holds no camera entities.
	// Raised during validation, before any output is written.
	ErrEmptyScene = errors.New("no camera entities in scene")

	// ErrNoRenderContext is returned when no render collaborator or render
	// surface is available. Also raised before any output is written.
	ErrNoRenderContext = errors.New("no render context available")
)

// RenderError wraps a render collaborator failure for one frame. It aborts
// the whole export: the manifest and sparse model are never written for a
// failed run, though image files already rendered for earlier frames remain
// on disk.
type RenderError struct {
	Index  int
	Camera string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering frame %d (camera %q): %v", e.Index, e.Camera, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
