package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Geddart/linearcal/pkg/grid"
	"github.com/Geddart/linearcal/pkg/model"
	"github.com/Geddart/linearcal/pkg/viewport"
)

func snapshotFixture(t *testing.T) (viewport.State, []grid.Line, *Buffer) {
	t.Helper()
	center := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	v := viewport.New(float64(center), 1000/(30*86_400_000.0), 1000, 400, viewport.Options{})
	vs := v.State()

	lines := grid.Compute(vs, time.UTC).Lines

	p := NewPacker(LaneLayout{Top: 40, LaneHeight: 40, LaneGap: 8}, nil)
	var buf Buffer
	p.Pack([]model.Event{
		{ID: "a", StartMs: center - 86_400_000, EndMs: center + 86_400_000, Lane: 0},
		{ID: "b", StartMs: center, EndMs: center, Lane: 1},
	}, vs, &buf)
	return vs, lines, &buf
}

func TestSaveSnapshotSVG(t *testing.T) {
	vs, lines, buf := snapshotFixture(t)
	path := filepath.Join(t.TempDir(), "frame.svg")

	err := SaveSnapshot(SnapshotOptions{Path: path, State: vs, Lines: lines, Events: buf})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("output is not an SVG document")
	}
	if !strings.Contains(out, "<rect") {
		t.Error("missing instance rects")
	}
	if !strings.Contains(out, "<line") {
		t.Error("missing gridlines")
	}
}

func TestSaveSnapshotPNG(t *testing.T) {
	vs, lines, buf := snapshotFixture(t)
	path := filepath.Join(t.TempDir(), "frame.png")

	err := SaveSnapshot(SnapshotOptions{Path: path, State: vs, Lines: lines, Events: buf})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	// PNG magic.
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG file")
	}
}

func TestSaveSnapshotFormatInference(t *testing.T) {
	vs, lines, buf := snapshotFixture(t)

	// Explicit format wins over the extension.
	path := filepath.Join(t.TempDir(), "frame.dat")
	err := SaveSnapshot(SnapshotOptions{Path: path, Format: "svg", State: vs, Lines: lines, Events: buf})
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "<svg") {
		t.Error("explicit svg format not honored")
	}
}

func TestSaveSnapshotErrors(t *testing.T) {
	vs, lines, buf := snapshotFixture(t)

	if err := SaveSnapshot(SnapshotOptions{State: vs, Lines: lines, Events: buf}); err == nil {
		t.Error("empty path should error")
	}
	if err := SaveSnapshot(SnapshotOptions{Path: "x.svg", State: vs, Lines: lines}); err == nil {
		t.Error("nil event buffer should error")
	}
	err := SaveSnapshot(SnapshotOptions{Path: "x.tiff", Format: "tiff", State: vs, Lines: lines, Events: buf})
	if err == nil {
		t.Error("unsupported format should error")
	}
}

func TestSVGBackendInvalidSurface(t *testing.T) {
	var out bytes.Buffer
	b := NewSVGBackend(&out)
	err := b.Begin(0, 400)
	if err == nil {
		t.Fatal("zero-width surface should error")
	}
	var be *BackendError
	if !errors.As(err, &be) {
		t.Errorf("error %T is not a BackendError", err)
	}
}
