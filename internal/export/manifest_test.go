package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestManifestKeyOrder(t *testing.T) {
	in := Intrinsics{Width: 1920, Height: 1080, Fx: 2666.67, Fy: 2250, Cx: 960, Cy: 540}
	m := NewManifest(in, 16)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	keys := []string{`"fl_x"`, `"fl_y"`, `"k1"`, `"k2"`, `"p1"`, `"p2"`, `"cx"`, `"cy"`, `"w"`, `"h"`, `"aabb_scale"`, `"frames"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(s, k)
		if idx < 0 {
			t.Fatalf("manifest JSON missing key %s", k)
		}
		if idx < last {
			t.Errorf("key %s out of order", k)
		}
		last = idx
	}
}

func TestManifestEmptyFramesIsArray(t *testing.T) {
	m := NewManifest(Intrinsics{}, 16)
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"frames":[]`) {
		t.Errorf("empty frames should serialize as [], got %s", data)
	}
}

func TestManifestWriteFileRoundTrip(t *testing.T) {
	in := Intrinsics{Width: 640, Height: 480, Fx: 800, Fy: 800, Cx: 320, Cy: 240, K1: 0.01}
	m := NewManifest(in, 16)
	m.Frames = append(m.Frames, ManifestFrame{
		FilePath: "./images/frame_00000.png",
		TransformMatrix: [4][4]float64{
			{1, 0, 0, 0.5},
			{0, 0, 1, 1.5},
			{0, -1, 0, -2.5},
			{0, 0, 0, 1},
		},
	})

	path := filepath.Join(t.TempDir(), "transforms.json")
	if err := m.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("written manifest is not valid JSON: %v", err)
	}
	if diff := cmp.Diff(*m, got); diff != "" {
		t.Errorf("manifest round trip mismatch (-want +got):\n%s", diff)
	}

	// Four-space indentation, matching the reference output.
	if !strings.Contains(string(raw), "\n    \"fl_x\"") {
		t.Error("manifest should be indented with four spaces")
	}
}
