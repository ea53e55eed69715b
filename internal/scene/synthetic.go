package scene

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"os"
)

// SyntheticRenderer is a stand-in render collaborator for tests and demo
// runs. It writes a small deterministic PNG per frame: a gradient tinted by a
// hash of the camera name, so two exports of the same scene produce identical
// image bytes and distinct cameras produce distinct images.
type SyntheticRenderer struct {
	Width  int
	Height int
}

// NewSyntheticRenderer returns a synthetic renderer at the given resolution.
func NewSyntheticRenderer(width, height int) *SyntheticRenderer {
	return &SyntheticRenderer{Width: width, Height: height}
}

// Ready implements Renderer. The synthetic renderer needs no viewport.
func (r *SyntheticRenderer) Ready() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("synthetic renderer resolution %dx%d must be positive", r.Width, r.Height)
	}
	return nil
}

// Render implements Renderer by writing a deterministic gradient PNG.
func (r *SyntheticRenderer) Render(cam *Camera, path string) error {
	if err := r.Ready(); err != nil {
		return err
	}

	h := fnv.New32a()
	h.Write([]byte(cam.Name))
	tint := h.Sum32()
	tr := uint8(tint >> 16)
	tg := uint8(tint >> 8)
	tb := uint8(tint)

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: tr ^ uint8(x),
				G: tg ^ uint8(y),
				B: tb,
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame image %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding frame image %s: %w", path, err)
	}
	return f.Close()
}
