package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Geddart/linearcal/pkg/grid"
	"github.com/Geddart/linearcal/pkg/viewport"
)

// SnapshotOptions controls single-frame snapshot export.
type SnapshotOptions struct {
	Path    string         // Output path; format inferred from extension when Format empty
	Format  string         // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	State   viewport.State // viewport the frame was produced for
	Lines   []grid.Line    // scheduled gridlines
	Events  *Buffer        // packed event instances
	Overlay *Buffer        // optional seasonal bands, drawn beneath events
}

// SaveSnapshot renders one frame to a PNG or SVG file. It draws overlay
// bands, gridlines, then event instances, matching the on-screen layer
// order.
func SaveSnapshot(opts SnapshotOptions) error {
	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "png" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".png"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if opts.Events == nil {
		return fmt.Errorf("no packed events to render")
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return &BackendError{Op: "create", Err: err}
	}
	defer f.Close()

	var backend Backend
	switch format {
	case "svg":
		backend = NewSVGBackend(f)
	case "png":
		backend = NewRasterBackend(f)
	}
	return renderFrame(backend, opts)
}

func renderFrame(b Backend, opts SnapshotOptions) error {
	if err := b.Begin(opts.State.Width, opts.State.Height); err != nil {
		return err
	}
	if opts.Overlay != nil && opts.Overlay.Count() > 0 {
		if err := b.DrawInstances(opts.Overlay); err != nil {
			return err
		}
	}
	if err := b.DrawGrid(opts.Lines); err != nil {
		return err
	}
	if err := b.DrawInstances(opts.Events); err != nil {
		return err
	}
	return b.Flush()
}
