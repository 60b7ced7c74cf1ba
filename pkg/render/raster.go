package render

import (
	"fmt"
	"image/color"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Geddart/linearcal/pkg/grid"
)

var (
	colorBackdrop = color.RGBA{0x12, 0x14, 0x18, 0xff}
	colorGridline = color.RGBA{0x3a, 0x40, 0x4a, 0xff}
	colorGridText = color.RGBA{0xb8, 0xc0, 0xcc, 0xff}
)

// RasterBackend renders frames into an offscreen gg context and encodes the
// result as PNG on Flush.
type RasterBackend struct {
	w  io.Writer
	dc *gg.Context
}

// NewRasterBackend returns a backend writing a PNG to w on Flush.
func NewRasterBackend(w io.Writer) *RasterBackend {
	return &RasterBackend{w: w}
}

// Begin allocates the drawing surface.
func (b *RasterBackend) Begin(width, height float64) error {
	if width < 1 || height < 1 {
		return &BackendError{Op: "begin", Err: fmt.Errorf("invalid surface size %gx%g", width, height)}
	}
	b.dc = gg.NewContext(int(width), int(height))
	b.dc.SetColor(colorBackdrop)
	b.dc.Clear()
	b.dc.SetFontFace(basicfont.Face7x13)
	return nil
}

// DrawInstances draws the packed buffer in one pass: the shared shape is a
// rounded bar, each instance varying only position, size and color.
func (b *RasterBackend) DrawInstances(buf *Buffer) error {
	if b.dc == nil {
		return &BackendError{Op: "draw", Err: fmt.Errorf("Begin not called")}
	}
	for i := 0; i < buf.Count(); i++ {
		cx, cy, w, h, r, g, bl, a := buf.Instance(i)
		radius := float64(h) / 2
		if float64(w) < float64(h) {
			radius = float64(w) / 2
		}
		b.dc.SetRGBA(float64(r), float64(g), float64(bl), float64(a))
		b.dc.DrawRoundedRectangle(float64(cx)-float64(w)/2, float64(cy)-float64(h)/2,
			float64(w), float64(h), radius)
		b.dc.Fill()
	}
	return nil
}

// DrawGrid strokes each gridline at its scheduled opacity and draws the
// label near the top edge.
func (b *RasterBackend) DrawGrid(lines []grid.Line) error {
	if b.dc == nil {
		return &BackendError{Op: "draw", Err: fmt.Errorf("Begin not called")}
	}
	hgt := float64(b.dc.Height())
	for _, ln := range lines {
		b.dc.SetRGBA(
			float64(colorGridline.R)/255,
			float64(colorGridline.G)/255,
			float64(colorGridline.B)/255,
			ln.Opacity)
		if ln.IsMajor {
			b.dc.SetLineWidth(1.5)
		} else {
			b.dc.SetLineWidth(1)
		}
		b.dc.DrawLine(ln.X, 0, ln.X, hgt)
		b.dc.Stroke()

		b.dc.SetRGBA(
			float64(colorGridText.R)/255,
			float64(colorGridText.G)/255,
			float64(colorGridText.B)/255,
			ln.Opacity)
		b.dc.DrawStringAnchored(ln.Label, ln.X, 12, 0.5, 0.5)
	}
	return nil
}

// Flush encodes the frame as PNG.
func (b *RasterBackend) Flush() error {
	if b.dc == nil {
		return &BackendError{Op: "flush", Err: fmt.Errorf("Begin not called")}
	}
	if err := b.dc.EncodePNG(b.w); err != nil {
		return &BackendError{Op: "flush", Err: err}
	}
	return nil
}
