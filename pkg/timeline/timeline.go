// Package timeline wires the four render-pipeline stages — interval store,
// viewport state machine, grid scheduler, instance packer — into one engine
// value. There are no package-level singletons: construct as many
// independent timelines in a process as you need, each with its own state.
//
// The engine owns no clock. Frame(now) takes the caller's wall time in ms;
// the TUI driver ticks it from bubbletea, tests tick it by hand.
package timeline

import (
	"time"

	"github.com/Geddart/linearcal/pkg/grid"
	"github.com/Geddart/linearcal/pkg/metrics"
	"github.com/Geddart/linearcal/pkg/model"
	"github.com/Geddart/linearcal/pkg/render"
	"github.com/Geddart/linearcal/pkg/store"
	"github.com/Geddart/linearcal/pkg/viewport"
)

// Options configures a Timeline.
type Options struct {
	Lanes            []model.Lane
	Layout           render.LaneLayout
	MaxInstances     int                // 0 means render.DefaultMaxInstances
	Location         *time.Location     // calendar zone; nil means UTC
	ZoomSensitivity  float64            // 0 means viewport default
	ImportanceForLOD func(lod int) float64 // importance floor per LOD; nil means DefaultImportanceForLOD
	Seasons          bool               // pack seasonal quarter bands
}

// DefaultImportanceForLOD thins the event set as the view zooms out: full
// detail through LOD 4, then a linear ramp to a 0.6 floor at LOD 10.
func DefaultImportanceForLOD(lod int) float64 {
	if lod <= 4 {
		return 0
	}
	theta := float64(lod-4) * 0.1
	if theta > 0.6 {
		theta = 0.6
	}
	return theta
}

// FrameResult is everything one frame of the pipeline produced.
type FrameResult struct {
	State     viewport.State
	Events    []model.Event // importance-filtered visible set
	Grid      grid.Result
	Instances *render.Buffer
	Overlay   *render.Buffer // nil unless Options.Seasons
	Moving    bool           // an animation or momentum glide is in flight
}

// Timeline is the engine context object passed to drivers.
type Timeline struct {
	Store    *store.Store
	Viewport *viewport.Viewport
	Grid     *grid.Scheduler
	Packer   *render.Packer

	opts       Options
	buf        render.Buffer
	overlayBuf render.Buffer
}

// New constructs a timeline centered on centerMs at the given scale and
// canvas size.
func New(centerMs, pixelsPerMs, width, height float64, opts Options) *Timeline {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	if opts.ImportanceForLOD == nil {
		opts.ImportanceForLOD = DefaultImportanceForLOD
	}
	if opts.Layout.LaneHeight == 0 {
		opts.Layout = render.LaneLayout{Top: 40, LaneHeight: 22, LaneGap: 6}
	}

	packer := render.NewPacker(opts.Layout, opts.Lanes)
	if opts.MaxInstances > 0 {
		packer.MaxInstances = opts.MaxInstances
	}

	return &Timeline{
		Store: store.New(),
		Viewport: viewport.New(centerMs, pixelsPerMs, width, height, viewport.Options{
			ZoomSensitivity: opts.ZoomSensitivity,
			Location:        loc,
		}),
		Grid:   grid.NewScheduler(loc),
		Packer: packer,
		opts:   opts,
	}
}

// Insert batches events into the store. See store.Store.Insert for dedup and
// rebuild semantics.
func (t *Timeline) Insert(events []model.Event) int {
	return t.Store.Insert(events)
}

// Frame advances motion to wall clock nowMs and runs one pipeline pass:
// step -> range query -> grid schedule -> instance pack. All reads reflect
// every mutation made earlier in the same frame.
func (t *Timeline) Frame(nowMs float64) FrameResult {
	defer metrics.Timer(metrics.FrameStep)()

	moving := t.Viewport.Step(nowMs)
	vs := t.Viewport.State()

	theta := t.opts.ImportanceForLOD(vs.LODLevel)
	events := t.Store.QueryRangeWithImportance(vs.StartTime, vs.EndTime, theta)
	gr := t.Grid.Lines(vs)
	t.Packer.Pack(events, vs, &t.buf)

	res := FrameResult{
		State:     vs,
		Events:    events,
		Grid:      gr,
		Instances: &t.buf,
		Moving:    moving,
	}
	if t.opts.Seasons {
		render.PackSeasons(vs, t.Viewport.Location(), t.Packer.MaxInstances, &t.overlayBuf)
		res.Overlay = &t.overlayBuf
	}
	return res
}

// Input forwarding. Each direct mutation cancels in-flight motion inside the
// viewport, so a new drag never races a stale animation over CenterTime.

// Pan shifts the view by deltaPixels.
func (t *Timeline) Pan(deltaPixels float64) { t.Viewport.Pan(deltaPixels) }

// ZoomAt zooms by delta keeping the time under screenX fixed.
func (t *Timeline) ZoomAt(screenX, delta float64) { t.Viewport.ZoomAt(screenX, delta) }

// Fling starts a momentum glide from a drag release velocity.
func (t *Timeline) Fling(velocityPxPerMs, nowMs float64) {
	t.Viewport.FlingWith(velocityPxPerMs, nowMs)
}

// AnimateTo glides the view to span [t0, t1] over durationMs.
func (t *Timeline) AnimateTo(t0, t1, durationMs, nowMs float64) {
	t.Viewport.AnimateTo(t0, t1, durationMs, nowMs)
}

// SetZoomPreset jumps to a named scale and returns its label.
func (t *Timeline) SetZoomPreset(name string) (string, error) {
	return t.Viewport.SetZoomPreset(name)
}

// GoToNow recenters on the present without changing zoom.
func (t *Timeline) GoToNow(nowMs float64) { t.Viewport.CenterOn(nowMs) }

// Resize updates the canvas size.
func (t *Timeline) Resize(width, height float64) { t.Viewport.SetSize(width, height) }
