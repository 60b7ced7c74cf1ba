package viewport

import (
	"fmt"
	"sort"
	"time"
)

// Preset spans in milliseconds. Month and year use the mean Gregorian
// lengths (30.4375 days, 365.25 days) — presets set a scale, not calendar
// boundaries, so the approximation is invisible to the user.
const (
	msHour       = 3_600_000.0
	msDay        = 86_400_000.0
	msWeek       = 7 * msDay
	msMonth      = 30.4375 * msDay
	msYear       = 365.25 * msDay
	msDecade     = 10 * msYear
	msCentury    = 100 * msYear
	msMillennium = 1000 * msYear
)

// zoomPresets maps preset names to the time span the canvas should cover.
var zoomPresets = map[string]struct {
	span  float64
	label string
}{
	"hour":       {msHour, "1 hour"},
	"day":        {msDay, "1 day"},
	"week":       {msWeek, "1 week"},
	"month":      {msMonth, "1 month"},
	"quarter":    {3 * msMonth, "3 months"},
	"year":       {msYear, "1 year"},
	"decade":     {msDecade, "10 years"},
	"century":    {msCentury, "100 years"},
	"millennium": {msMillennium, "1000 years"},
}

// PresetNames returns the known preset names sorted from finest to coarsest.
func PresetNames() []string {
	names := make([]string, 0, len(zoomPresets))
	for name := range zoomPresets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return zoomPresets[names[i]].span < zoomPresets[names[j]].span
	})
	return names
}

// SetZoomPreset jumps directly to a named scale (day, week, month, ...,
// millennium), keeping the current center time, and returns a human-readable
// label for the new scale. Unknown names leave the viewport untouched.
func (v *Viewport) SetZoomPreset(name string) (string, error) {
	p, ok := zoomPresets[name]
	if !ok {
		return "", fmt.Errorf("unknown zoom preset %q", name)
	}
	v.cancelMotion()
	v.state.PixelsPerMs = clampZoom(v.state.Width / p.span)
	v.recompute()
	return p.label, nil
}

// JumpUnit is a calendar unit the viewport can snap its center to.
type JumpUnit int

const (
	JumpHour JumpUnit = iota
	JumpDay
	JumpWeek
	JumpMonth
	JumpYear
	JumpDecade
	JumpCentury
	JumpMillennium
)

// String returns the unit's display name.
func (u JumpUnit) String() string {
	switch u {
	case JumpHour:
		return "hour"
	case JumpDay:
		return "day"
	case JumpWeek:
		return "week"
	case JumpMonth:
		return "month"
	case JumpYear:
		return "year"
	case JumpDecade:
		return "decade"
	case JumpCentury:
		return "century"
	default:
		return "millennium"
	}
}

// spanMs returns the unit's nominal span for dominance comparison.
func (u JumpUnit) spanMs() float64 {
	switch u {
	case JumpHour:
		return msHour
	case JumpDay:
		return msDay
	case JumpWeek:
		return msWeek
	case JumpMonth:
		return msMonth
	case JumpYear:
		return msYear
	case JumpDecade:
		return msDecade
	case JumpCentury:
		return msCentury
	default:
		return msMillennium
	}
}

// dominantPx is how many pixels a unit's span must occupy before that unit
// reads as the dominant gridline at the current scale.
const dominantPx = 60.0

// DominantUnit returns the calendar unit whose gridlines currently dominate
// the view: the finest unit still rendering at comfortable spacing.
func (v *Viewport) DominantUnit() JumpUnit {
	units := []JumpUnit{
		JumpHour, JumpDay, JumpWeek, JumpMonth,
		JumpYear, JumpDecade, JumpCentury, JumpMillennium,
	}
	for _, u := range units {
		if u.spanMs()*v.state.PixelsPerMs >= dominantPx {
			return u
		}
	}
	return JumpMillennium
}

// JumpToNextTimeUnit advances the center to the next boundary of the
// dominant unit and returns that unit.
func (v *Viewport) JumpToNextTimeUnit() JumpUnit {
	u := v.DominantUnit()
	v.cancelMotion()
	t := msToTime(v.state.CenterTime, v.loc)
	v.state.CenterTime = float64(nextBoundary(t, u).UnixMilli())
	v.recompute()
	return u
}

// JumpToPreviousTimeUnit moves the center to the previous boundary of the
// dominant unit and returns that unit.
func (v *Viewport) JumpToPreviousTimeUnit() JumpUnit {
	u := v.DominantUnit()
	v.cancelMotion()
	t := msToTime(v.state.CenterTime, v.loc)
	v.state.CenterTime = float64(prevBoundary(t, u).UnixMilli())
	v.recompute()
	return u
}

func msToTime(ms float64, loc *time.Location) time.Time {
	return time.UnixMilli(int64(ms)).In(loc)
}

// floorBoundary truncates t down to the start of its containing unit.
func floorBoundary(t time.Time, u JumpUnit) time.Time {
	loc := t.Location()
	switch u {
	case JumpHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	case JumpDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case JumpWeek:
		// Weeks start on Monday.
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		back := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -back)
	case JumpMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case JumpYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	case JumpDecade:
		return time.Date(floorMultiple(t.Year(), 10), time.January, 1, 0, 0, 0, 0, loc)
	case JumpCentury:
		return time.Date(floorMultiple(t.Year(), 100), time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(floorMultiple(t.Year(), 1000), time.January, 1, 0, 0, 0, 0, loc)
	}
}

// nextBoundary returns the first boundary of u strictly after t.
func nextBoundary(t time.Time, u JumpUnit) time.Time {
	f := floorBoundary(t, u)
	switch u {
	case JumpHour:
		return f.Add(time.Hour)
	case JumpDay:
		return f.AddDate(0, 0, 1)
	case JumpWeek:
		return f.AddDate(0, 0, 7)
	case JumpMonth:
		return f.AddDate(0, 1, 0)
	case JumpYear:
		return f.AddDate(1, 0, 0)
	case JumpDecade:
		return f.AddDate(10, 0, 0)
	case JumpCentury:
		return f.AddDate(100, 0, 0)
	default:
		return f.AddDate(1000, 0, 0)
	}
}

// prevBoundary returns the last boundary of u strictly before t. When t sits
// exactly on a boundary this is the boundary one unit earlier.
func prevBoundary(t time.Time, u JumpUnit) time.Time {
	f := floorBoundary(t, u)
	if f.Before(t) {
		return f
	}
	switch u {
	case JumpHour:
		return f.Add(-time.Hour)
	case JumpDay:
		return f.AddDate(0, 0, -1)
	case JumpWeek:
		return f.AddDate(0, 0, -7)
	case JumpMonth:
		return f.AddDate(0, -1, 0)
	case JumpYear:
		return f.AddDate(-1, 0, 0)
	case JumpDecade:
		return f.AddDate(-10, 0, 0)
	case JumpCentury:
		return f.AddDate(-100, 0, 0)
	default:
		return f.AddDate(-1000, 0, 0)
	}
}

// floorMultiple rounds n down to a multiple of m, correct for negative years.
func floorMultiple(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return n - r
}
