// Package viewport owns the pan/zoom state of the timeline: the mapping
// between wall-clock milliseconds and screen pixels under a logarithmic zoom
// model spanning roughly thirteen orders of magnitude.
//
// All time math is float64. At the extreme zoom-out end PixelsPerMs is on
// the order of 1e-13, so every computation of the form
// (time - centerTime) * pixelsPerMs stays in double precision; anything less
// loses meaning over multi-century spans.
//
// The package is free of platform timers. Motion (animation, momentum) is
// advanced by Step(now) with a caller-supplied clock so a thin driver can own
// the frame loop and tests can run without one.
package viewport

import (
	"math"
	"time"
)

// Zoom clamp bounds. MaxPixelsPerMs puts about ten seconds across a
// 1000 px canvas; MinPixelsPerMs puts hundreds of millennia across it.
const (
	MinPixelsPerMs = 1e-13
	MaxPixelsPerMs = 1e-1
)

// DefaultZoomSensitivity converts one wheel/key delta unit into a log-space
// zoom step. Tunable per input device via Options.
const DefaultZoomSensitivity = 0.0015

// morphSaturationPx is how many pixels the one-hour reference span must
// occupy for events to render fully as bars (morph factor 1).
const morphSaturationPx = 24.0

// numLODLevels buckets msPerPixel by decade; see recompute.
const numLODLevels = 11

// State is a read-only snapshot of the viewport handed to the grid scheduler
// and the renderer each frame.
type State struct {
	CenterTime  float64 // ms since epoch
	PixelsPerMs float64 // strictly positive
	Width       float64 // device-independent pixels
	Height      float64

	// Derived fields, recomputed together on every mutation. They are never
	// allowed to drift from the primary fields above.
	StartTime   float64
	EndTime     float64
	MsPerPixel  float64
	LODLevel    int     // 0 (zoomed all the way in) .. 10
	MorphFactor float64 // 0 = dot style, 1 = bar style
}

// Options configures a Viewport.
type Options struct {
	ZoomSensitivity float64        // log-space step per delta unit; 0 means default
	Location        *time.Location // calendar zone for boundary jumps; nil means UTC
}

// Viewport is the zoom/pan state machine. Not safe for concurrent use; all
// mutation belongs on the frame loop's goroutine.
type Viewport struct {
	state  State
	loc    *time.Location
	sens   float64
	motion motion
	gen    uint64 // bumped by every direct mutation; stale motions no-op
}

// New returns a viewport centered on centerMs at the given scale and canvas
// size. Out-of-range zoom is clamped, non-finite inputs fall back to sane
// defaults rather than propagating NaN into the pipeline.
func New(centerMs, pixelsPerMs, width, height float64, opts Options) *Viewport {
	v := &Viewport{
		loc:  opts.Location,
		sens: opts.ZoomSensitivity,
	}
	if v.loc == nil {
		v.loc = time.UTC
	}
	if v.sens == 0 {
		v.sens = DefaultZoomSensitivity
	}
	if !isFinite(centerMs) {
		centerMs = 0
	}
	if !isFinite(width) || width <= 0 {
		width = 1000
	}
	if !isFinite(height) || height <= 0 {
		height = 400
	}
	v.state.CenterTime = centerMs
	v.state.PixelsPerMs = clampZoom(pixelsPerMs)
	v.state.Width = width
	v.state.Height = height
	v.recompute()
	return v
}

// State returns the current snapshot.
func (v *Viewport) State() State {
	return v.state
}

// Location returns the calendar zone used for boundary jumps.
func (v *Viewport) Location() *time.Location {
	return v.loc
}

// SetSize updates the canvas size in device-independent pixels. Resizing
// keeps the center time and scale; only the visible bounds change.
func (v *Viewport) SetSize(width, height float64) {
	if !isFinite(width) || width <= 0 || !isFinite(height) || height <= 0 {
		return
	}
	v.state.Width = width
	v.state.Height = height
	v.recompute()
}

// CenterOn moves the viewport center to the given time without changing zoom.
// Cancels any in-flight motion.
func (v *Viewport) CenterOn(centerMs float64) {
	if !isFinite(centerMs) {
		return
	}
	v.cancelMotion()
	v.state.CenterTime = centerMs
	v.recompute()
}

// ScreenToTime converts a screen x coordinate to a time in ms.
func (v *Viewport) ScreenToTime(x float64) float64 {
	return v.state.StartTime + x*v.state.MsPerPixel
}

// TimeToScreen converts a time in ms to a screen x coordinate. Exact inverse
// of ScreenToTime modulo floating-point rounding.
func (v *Viewport) TimeToScreen(t float64) float64 {
	return (t-v.state.CenterTime)*v.state.PixelsPerMs + v.state.Width/2
}

// Pan shifts the view by deltaPixels: dragging content right (positive
// delta) moves the visible window back in time. Cancels in-flight motion.
func (v *Viewport) Pan(deltaPixels float64) {
	if !isFinite(deltaPixels) {
		return
	}
	v.cancelMotion()
	v.panBy(deltaPixels)
}

// panBy applies the pan without touching motion state; momentum stepping
// reuses it.
func (v *Viewport) panBy(deltaPixels float64) {
	v.state.CenterTime -= deltaPixels * v.state.MsPerPixel
	v.recompute()
}

// ZoomAt zooms by delta (in sensitivity units) keeping the time under
// screenX visually fixed. The zoom is multiplicative in log space and
// clamped to [MinPixelsPerMs, MaxPixelsPerMs]. Cancels in-flight motion.
func (v *Viewport) ZoomAt(screenX, delta float64) {
	if !isFinite(screenX) || !isFinite(delta) {
		return
	}
	v.cancelMotion()

	// Pin the time under the cursor before the scale changes, then solve
	// for the center that maps it back to the same pixel afterwards.
	pivot := v.ScreenToTime(screenX)
	newPPM := clampZoom(math.Exp(math.Log(v.state.PixelsPerMs) + delta*v.sens))
	v.state.PixelsPerMs = newPPM
	v.state.CenterTime = pivot - (screenX-v.state.Width/2)/newPPM
	v.recompute()
}

// SetZoom sets the scale directly (clamped), preserving the center time.
func (v *Viewport) SetZoom(pixelsPerMs float64) {
	v.cancelMotion()
	v.state.PixelsPerMs = clampZoom(pixelsPerMs)
	v.recompute()
}

// recompute rederives every derived field from the primary ones. Every
// mutation path funnels through here so derived state can never drift.
func (v *Viewport) recompute() {
	s := &v.state
	s.MsPerPixel = 1 / s.PixelsPerMs
	half := s.Width / 2 * s.MsPerPixel
	s.StartTime = s.CenterTime - half
	s.EndTime = s.CenterTime + half

	// LOD buckets msPerPixel by decade: level 0 at <=10 ms/px up to level
	// 10 at >=1e11 ms/px (multi-century spans).
	lod := int(math.Floor(math.Log10(s.MsPerPixel))) - 1
	if lod < 0 {
		lod = 0
	}
	if lod > numLODLevels-1 {
		lod = numLODLevels - 1
	}
	s.LODLevel = lod

	hourPx := float64(time.Hour/time.Millisecond) * s.PixelsPerMs
	s.MorphFactor = clamp01(hourPx / morphSaturationPx)
}

func clampZoom(ppm float64) float64 {
	if math.IsNaN(ppm) || ppm <= 0 {
		return MinPixelsPerMs
	}
	if ppm < MinPixelsPerMs {
		return MinPixelsPerMs
	}
	if ppm > MaxPixelsPerMs {
		return MaxPixelsPerMs
	}
	return ppm
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
