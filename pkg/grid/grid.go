// Package grid decides, every frame, which temporal gridlines are legible at
// the current scale. Lines fade in continuously over a spacing band instead
// of popping, rounder boundaries appear earlier as the view zooms out, and a
// collision pass keeps labels at least 15 px apart with coarse units winning.
//
// Compute is cheap but not free; Scheduler memoizes on a viewport-change
// threshold so a sub-pixel pan or a sub-0.1% zoom tick reuses the previous
// frame's result.
package grid

import (
	"math"
	"time"

	"github.com/Geddart/linearcal/pkg/metrics"
	"github.com/Geddart/linearcal/pkg/viewport"
)

// MinLabelSpacingPx is the collision distance: a candidate line is discarded
// when any already-accepted line lies within this many pixels.
const MinLabelSpacingPx = 15.0

// Font weight bounds for gridline labels.
const (
	minFontWeight = 400
	maxFontWeight = 700
)

// maxLinesFor bounds boundary iteration against degenerate viewports. The
// densest non-skipped case is the day unit carrying only first-of-month
// lines (~1.5 boundaries per pixel), so triple the width is ample.
func maxLinesFor(width float64) int {
	return int(width)*3 + 200
}

// Line is one visible gridline.
type Line struct {
	X          float64 // pixel position
	TimeMs     float64 // boundary time
	Label      string
	Unit       UnitKind
	Opacity    float64 // [0,1]
	IsMajor    bool
	FontWeight int // [400,700]
	FontSize   float64
}

// ContextLabels are the four always-on labels derived purely from the
// viewport center, independent of the gridline list.
type ContextLabels struct {
	Year      string
	MonthDay  string
	DayNumber string
	Weekday   string
}

// Result is the scheduler output for one frame.
type Result struct {
	Lines   []Line
	Context ContextLabels
}

// Scheduler computes gridlines for viewport snapshots, memoizing across
// frames. Not safe for concurrent use.
type Scheduler struct {
	loc *time.Location

	// memo of the last computed frame
	valid    bool
	lastPPM  float64
	lastCtr  float64
	lastW    float64
	lastRes  Result
}

// NewScheduler returns a scheduler using loc for calendar boundaries
// (nil means UTC).
func NewScheduler(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{loc: loc}
}

// Memoization thresholds: skip recompute when the zoom changed by less than
// 0.1% and the pan by less than half a pixel.
const (
	memoZoomEps = 0.001
	memoPanEps  = 0.5
)

// Lines returns the gridlines for the given viewport state, reusing the
// previous result when the viewport has not moved enough to matter.
func (s *Scheduler) Lines(vs viewport.State) Result {
	if s.valid && vs.Width == s.lastW {
		zoomDelta := math.Abs(vs.PixelsPerMs/s.lastPPM - 1)
		panPx := math.Abs(vs.CenterTime-s.lastCtr) * vs.PixelsPerMs
		if zoomDelta < memoZoomEps && panPx < memoPanEps {
			metrics.GridMemo.Hit()
			return s.lastRes
		}
	}
	metrics.GridMemo.Miss()

	res := Compute(vs, s.loc)
	s.valid = true
	s.lastPPM = vs.PixelsPerMs
	s.lastCtr = vs.CenterTime
	s.lastW = vs.Width
	s.lastRes = res
	return res
}

// Invalidate drops the memoized frame, forcing the next Lines call to
// recompute (used after a timezone or style change).
func (s *Scheduler) Invalidate() {
	s.valid = false
}

// Compute produces the full gridline list for a viewport snapshot without
// memoization. Deterministic in its inputs.
func Compute(vs viewport.State, loc *time.Location) Result {
	defer metrics.Timer(metrics.GridCompute)()
	if loc == nil {
		loc = time.UTC
	}

	res := Result{Context: contextLabels(vs.CenterTime, loc)}
	if vs.Width <= 0 || vs.PixelsPerMs <= 0 ||
		math.IsNaN(vs.StartTime) || math.IsNaN(vs.EndTime) || vs.EndTime < vs.StartTime {
		return res
	}

	var acceptedX []float64
	units := []UnitKind{
		UnitCentury, UnitDecade, UnitYear, UnitMonth,
		UnitWeek, UnitDay, UnitHour, UnitMinute,
	}
	for _, u := range units {
		// Whole-unit skip: even the unit's coarsest sub-category is below
		// the bottom of its fade band at this scale.
		if u.maxIntervalMs()*vs.PixelsPerMs < 0.5*u.bestRequiredPx() {
			continue
		}
		collectUnit(u, vs, loc, &acceptedX, &res.Lines)
	}
	return res
}

// collectUnit walks the unit's calendar boundaries across the visible range
// and appends every line that survives fade and collision checks.
func collectUnit(u UnitKind, vs viewport.State, loc *time.Location, acceptedX *[]float64, out *[]Line) {
	start := time.UnixMilli(int64(vs.StartTime)).In(loc)
	end := int64(vs.EndTime)

	t := u.floorUnit(start)
	maxLines := maxLinesFor(vs.Width)
	for i := 0; i < maxLines; i++ {
		ms := t.UnixMilli()
		if ms > end {
			break
		}

		cat, label, ok := u.categorize(t)
		if !ok {
			t = u.nextUnit(t)
			continue
		}

		spacingPx := cat.intervalMs * vs.PixelsPerMs
		opacity := fade(spacingPx, cat.requiredPx) * cat.weight
		if opacity <= 0 {
			t = u.nextUnit(t)
			continue
		}

		x := (float64(ms)-vs.CenterTime)*vs.PixelsPerMs + vs.Width/2
		if x < -MinLabelSpacingPx || x > vs.Width+MinLabelSpacingPx || collides(x, *acceptedX) {
			t = u.nextUnit(t)
			continue
		}

		*acceptedX = append(*acceptedX, x)
		*out = append(*out, Line{
			X:          x,
			TimeMs:     float64(ms),
			Label:      label,
			Unit:       u,
			Opacity:    opacity,
			IsMajor:    cat.isMajor,
			FontWeight: fontWeight(cat.weight, opacity),
			FontSize:   cat.fontSize,
		})
		t = u.nextUnit(t)
	}
}

// fade ramps opacity linearly from 0 at half the required spacing to 1 at
// the required spacing, replacing a discrete show/hide pop.
func fade(spacingPx, requiredPx float64) float64 {
	low := 0.5 * requiredPx
	if spacingPx <= low {
		return 0
	}
	if spacingPx >= requiredPx {
		return 1
	}
	return (spacingPx - low) / (requiredPx - low)
}

// fontWeight maps category weight and realized opacity into [400,700].
func fontWeight(weight, opacity float64) int {
	w := minFontWeight + int(math.Round(float64(maxFontWeight-minFontWeight)*weight*opacity))
	if w < minFontWeight {
		w = minFontWeight
	}
	if w > maxFontWeight {
		w = maxFontWeight
	}
	return w
}

// collides reports whether x lands within MinLabelSpacingPx of any accepted
// line, regardless of unit.
func collides(x float64, accepted []float64) bool {
	for _, ax := range accepted {
		if math.Abs(x-ax) < MinLabelSpacingPx {
			return true
		}
	}
	return false
}

// contextLabels derives the four center-time labels.
func contextLabels(centerMs float64, loc *time.Location) ContextLabels {
	if math.IsNaN(centerMs) || math.IsInf(centerMs, 0) {
		return ContextLabels{}
	}
	t := time.UnixMilli(int64(centerMs)).In(loc)
	return ContextLabels{
		Year:      t.Format("2006"),
		MonthDay:  t.Format("Jan 2"),
		DayNumber: t.Format("2"),
		Weekday:   t.Format("Monday"),
	}
}
