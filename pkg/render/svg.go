package render

import (
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/Geddart/linearcal/pkg/grid"
)

// SVGBackend renders frames as an SVG document.
type SVGBackend struct {
	canvas *svg.SVG
	height float64
}

// NewSVGBackend returns a backend writing SVG markup to w.
func NewSVGBackend(w io.Writer) *SVGBackend {
	return &SVGBackend{canvas: svg.New(w)}
}

// Begin starts the document and paints the backdrop.
func (b *SVGBackend) Begin(width, height float64) error {
	if width < 1 || height < 1 {
		return &BackendError{Op: "begin", Err: fmt.Errorf("invalid surface size %gx%g", width, height)}
	}
	b.height = height
	b.canvas.Start(int(width), int(height))
	b.canvas.Rect(0, 0, int(width), int(height), fmt.Sprintf("fill:%s", css(colorBackdrop)))
	return nil
}

// DrawInstances emits one rounded rect per packed instance.
func (b *SVGBackend) DrawInstances(buf *Buffer) error {
	for i := 0; i < buf.Count(); i++ {
		cx, cy, w, h, r, g, bl, a := buf.Instance(i)
		radius := int(h / 2)
		if w < h {
			radius = int(w / 2)
		}
		b.canvas.Roundrect(
			int(cx-w/2), int(cy-h/2), int(w+0.5), int(h+0.5), radius, radius,
			fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3f",
				int(r*255), int(g*255), int(bl*255), a))
	}
	return nil
}

// DrawGrid emits gridlines and labels with their scheduled opacity and
// font weight.
func (b *SVGBackend) DrawGrid(lines []grid.Line) error {
	for _, ln := range lines {
		x := int(ln.X)
		width := 1
		if ln.IsMajor {
			width = 2
		}
		b.canvas.Line(x, 0, x, int(b.height),
			fmt.Sprintf("stroke:%s;stroke-width:%d;stroke-opacity:%.3f", css(colorGridline), width, ln.Opacity))
		b.canvas.Text(x, 14, ln.Label,
			fmt.Sprintf("fill:%s;fill-opacity:%.3f;font-size:%.0fpx;font-weight:%d;font-family:monospace;text-anchor:middle",
				css(colorGridText), ln.Opacity, ln.FontSize, ln.FontWeight))
	}
	return nil
}

// Flush closes the document.
func (b *SVGBackend) Flush() error {
	b.canvas.End()
	return nil
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
