// Package render packs visible events into a flat per-instance attribute
// buffer — the instanced-draw layout: vertex shape shared, instance data
// advancing once per event — and draws the whole batch in a single backend
// call. Backends exist for raster (PNG via gg) and SVG output.
package render

import (
	"math"

	"github.com/Geddart/linearcal/pkg/debug"
	"github.com/Geddart/linearcal/pkg/metrics"
	"github.com/Geddart/linearcal/pkg/model"
	"github.com/Geddart/linearcal/pkg/viewport"
)

// FloatsPerInstance is the packed record width: cx, cy, w, h, r, g, b, a.
const FloatsPerInstance = 8

// DefaultMaxInstances caps a single draw; past it events are silently
// truncated — partial rendering beats a dropped frame.
const DefaultMaxInstances = 50_000

// DefaultMinWidthPx keeps zoomed-out events visible as thin markers ("line
// mode") instead of disappearing below one device pixel.
const DefaultMinWidthPx = 1.0

// dotHeightFraction is the lane-height fraction an event collapses to when
// fully in dot style (morph factor 0).
const dotHeightFraction = 0.4

// Buffer is the upload buffer for one instanced draw. It is regenerated
// every frame and owns no references to source events beyond integer tags.
type Buffer struct {
	data []float32
	tags []int32
}

// Reset clears the buffer for reuse without releasing capacity.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.tags = b.tags[:0]
}

// Count returns the number of packed instances.
func (b *Buffer) Count() int {
	return len(b.tags)
}

// Data returns the flat attribute array, FloatsPerInstance floats per
// instance. Shared storage; callers must not retain it across frames.
func (b *Buffer) Data() []float32 {
	return b.data
}

// Tag returns the integer tag of instance i (the index the packer assigned).
func (b *Buffer) Tag(i int) int32 {
	return b.tags[i]
}

// Instance reads instance i back out of the packed layout.
func (b *Buffer) Instance(i int) (cx, cy, w, h, r, g, bl, a float32) {
	o := i * FloatsPerInstance
	d := b.data[o : o+FloatsPerInstance]
	return d[0], d[1], d[2], d[3], d[4], d[5], d[6], d[7]
}

func (b *Buffer) append(tag int32, cx, cy, w, h float64, c model.RGBA) {
	b.data = append(b.data,
		float32(cx), float32(cy), float32(w), float32(h),
		float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	b.tags = append(b.tags, tag)
}

// LaneLayout maps lane indices to fixed vertical bands. Lane height is
// constant across zoom; only the X axis compresses and expands.
type LaneLayout struct {
	Top        float64 // y of the first lane band
	LaneHeight float64
	LaneGap    float64
}

// CenterY returns the vertical center of the given lane band.
func (l LaneLayout) CenterY(lane int) float64 {
	return l.Top + float64(lane)*(l.LaneHeight+l.LaneGap) + l.LaneHeight/2
}

// Packer converts query results into packed instances.
type Packer struct {
	MaxInstances int
	MinWidthPx   float64
	Layout       LaneLayout
	Lanes        []model.Lane // lane color definitions; may be empty
	DefaultColor model.RGBA
}

// NewPacker returns a packer with the default cap, minimum width, and a
// neutral default color.
func NewPacker(layout LaneLayout, lanes []model.Lane) *Packer {
	return &Packer{
		MaxInstances: DefaultMaxInstances,
		MinWidthPx:   DefaultMinWidthPx,
		Layout:       layout,
		Lanes:        lanes,
		DefaultColor: model.RGBA{R: 0.36, G: 0.56, B: 0.86, A: 1},
	}
}

// Pack fills buf with one instance per event, in input order, stopping
// silently at MaxInstances. Width is the event span at the current scale
// clamped to MinWidthPx; height is the lane height scaled by the viewport's
// dot-to-bar morph factor. Events producing non-finite geometry are skipped:
// the buffer never carries NaN or negative sizes.
func (p *Packer) Pack(events []model.Event, vs viewport.State, buf *Buffer) {
	defer metrics.Timer(metrics.InstancePack)()
	buf.Reset()

	maxN := p.MaxInstances
	if maxN <= 0 {
		maxN = DefaultMaxInstances
	}
	minW := p.MinWidthPx
	if minW <= 0 {
		minW = DefaultMinWidthPx
	}

	height := p.Layout.LaneHeight * (dotHeightFraction + (1-dotHeightFraction)*vs.MorphFactor)
	if height < 1 {
		height = 1
	}

	for i, ev := range events {
		if buf.Count() >= maxN {
			debug.Log("render: instance cap %d reached, %d events truncated", maxN, len(events)-i)
			break
		}

		w := float64(ev.DurationMs()) * vs.PixelsPerMs
		if w < minW {
			w = minW
		}
		cx := (float64(ev.StartMs)+float64(ev.DurationMs())/2-vs.CenterTime)*vs.PixelsPerMs + vs.Width/2
		cy := p.Layout.CenterY(ev.Lane)
		if !finite(cx) || !finite(cy) || !finite(w) {
			continue
		}

		buf.append(int32(i), cx, cy, w, height, p.colorFor(ev))
	}
}

func (p *Packer) colorFor(ev model.Event) model.RGBA {
	if ev.Color != "" {
		if c, ok := model.ParseColor(ev.Color); ok {
			return c
		}
	}
	if ev.Lane >= 0 && ev.Lane < len(p.Lanes) {
		if c, ok := model.ParseColor(p.Lanes[ev.Lane].Color); ok {
			return c
		}
	}
	return p.DefaultColor
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
