package grid

import (
	"fmt"
	"time"
)

// UnitKind identifies the temporal unit a gridline belongs to.
type UnitKind int

// Units ordered coarse to fine. Iteration order doubles as collision
// priority: coarse units are accepted first, so their labels win collisions
// over finer ones.
const (
	UnitCentury UnitKind = iota
	UnitDecade
	UnitYear
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
)

// String returns the unit's name.
func (u UnitKind) String() string {
	switch u {
	case UnitCentury:
		return "century"
	case UnitDecade:
		return "decade"
	case UnitYear:
		return "year"
	case UnitMonth:
		return "month"
	case UnitWeek:
		return "week"
	case UnitDay:
		return "day"
	case UnitHour:
		return "hour"
	default:
		return "minute"
	}
}

// Nominal unit spans in milliseconds, used for spacing/fade math. Month and
// year use mean Gregorian lengths; actual boundary positions always come
// from calendar arithmetic, never from these.
const (
	msMinute  = 60_000.0
	msHour    = 3_600_000.0
	msDay     = 86_400_000.0
	msWeek    = 7 * msDay
	msMonth   = 30.4375 * msDay
	msYear    = 365.25 * msDay
	msDecade  = 10 * msYear
	msCentury = 100 * msYear
)

func (u UnitKind) nominalSpanMs() float64 {
	switch u {
	case UnitCentury:
		return msCentury
	case UnitDecade:
		return msDecade
	case UnitYear:
		return msYear
	case UnitMonth:
		return msMonth
	case UnitWeek:
		return msWeek
	case UnitDay:
		return msDay
	case UnitHour:
		return msHour
	default:
		return msMinute
	}
}

// category describes one sub-class of boundaries within a unit. Rounder
// boundaries (millennia, January, midnight) carry more weight, need less
// spacing before appearing, and read heavier.
type category struct {
	requiredPx float64 // spacing at which the line is fully opaque
	intervalMs float64 // nominal distance between successive lines of this class
	weight     float64 // importance in (0,1]; modulates opacity and font weight
	fontSize   float64
	isMajor    bool
}

// categorize classifies a boundary time within its unit and returns the
// display label alongside. Minute-level lines skip :00 entirely (that
// boundary is already drawn as the hour line), signalled by ok=false.
func (u UnitKind) categorize(t time.Time) (category, string, bool) {
	switch u {
	case UnitCentury:
		if t.Year()%1000 == 0 {
			return category{requiredPx: 40, intervalMs: 10 * msCentury, weight: 1.0, fontSize: 16, isMajor: true},
				fmt.Sprintf("%d", t.Year()), true
		}
		return category{requiredPx: 60, intervalMs: msCentury, weight: 0.9, fontSize: 14, isMajor: true},
			fmt.Sprintf("%d", t.Year()), true

	case UnitDecade:
		if t.Year()%50 == 0 {
			return category{requiredPx: 45, intervalMs: 5 * msDecade, weight: 0.85, fontSize: 13, isMajor: true},
				fmt.Sprintf("%d", t.Year()), true
		}
		return category{requiredPx: 60, intervalMs: msDecade, weight: 0.75, fontSize: 12, isMajor: true},
			fmt.Sprintf("%d", t.Year()), true

	case UnitYear:
		if t.Year()%5 == 0 {
			return category{requiredPx: 50, intervalMs: 5 * msYear, weight: 0.7, fontSize: 12, isMajor: true},
				fmt.Sprintf("%d", t.Year()), true
		}
		return category{requiredPx: 70, intervalMs: msYear, weight: 0.6, fontSize: 11, isMajor: false},
			fmt.Sprintf("%d", t.Year()), true

	case UnitMonth:
		if t.Month() == time.January {
			// January doubles as the year boundary; appears earlier.
			return category{requiredPx: 45, intervalMs: msYear, weight: 0.8, fontSize: 12, isMajor: true},
				t.Format("Jan"), true
		}
		return category{requiredPx: 55, intervalMs: msMonth, weight: 0.6, fontSize: 11, isMajor: false},
			t.Format("Jan"), true

	case UnitWeek:
		return category{requiredPx: 60, intervalMs: msWeek, weight: 0.5, fontSize: 10, isMajor: false},
			t.Format("Jan 2"), true

	case UnitDay:
		if t.Day() == 1 {
			return category{requiredPx: 40, intervalMs: msMonth, weight: 0.7, fontSize: 11, isMajor: true},
				t.Format("Jan 2"), true
		}
		return category{requiredPx: 45, intervalMs: msDay, weight: 0.55, fontSize: 10, isMajor: false},
			fmt.Sprintf("%d", t.Day()), true

	case UnitHour:
		if t.Hour()%6 == 0 {
			return category{requiredPx: 50, intervalMs: 6 * msHour, weight: 0.7, fontSize: 11, isMajor: t.Hour() == 0},
				t.Format("15:04"), true
		}
		return category{requiredPx: 60, intervalMs: msHour, weight: 0.55, fontSize: 10, isMajor: false},
			t.Format("15:04"), true

	default: // UnitMinute
		switch {
		case t.Minute() == 0:
			return category{}, "", false // drawn as the hour line
		case t.Minute()%15 == 0:
			return category{requiredPx: 55, intervalMs: 15 * msMinute, weight: 0.6, fontSize: 10, isMajor: false},
				t.Format("15:04"), true
		case t.Minute()%5 == 0:
			return category{requiredPx: 60, intervalMs: 5 * msMinute, weight: 0.5, fontSize: 9, isMajor: false},
				t.Format("15:04"), true
		default:
			return category{requiredPx: 70, intervalMs: msMinute, weight: 0.45, fontSize: 9, isMajor: false},
				t.Format("15:04"), true
		}
	}
}

// maxIntervalMs is the coarsest sub-category interval within the unit; the
// unit must keep iterating as long as that class could still be legible.
func (u UnitKind) maxIntervalMs() float64 {
	switch u {
	case UnitCentury:
		return 10 * msCentury // millennium marks
	case UnitDecade:
		return 5 * msDecade
	case UnitYear:
		return 5 * msYear
	case UnitMonth:
		return msYear // January marks
	case UnitWeek:
		return msWeek
	case UnitDay:
		return msMonth // first-of-month marks
	case UnitHour:
		return 6 * msHour
	default:
		return 15 * msMinute
	}
}

// bestRequiredPx is the most permissive required spacing any category of the
// unit can have; used to skip whole units cheaply before iterating.
func (u UnitKind) bestRequiredPx() float64 {
	switch u {
	case UnitCentury:
		return 40
	case UnitDecade:
		return 45
	case UnitYear:
		return 50
	case UnitMonth:
		return 45
	case UnitWeek:
		return 60
	case UnitDay:
		return 40
	case UnitHour:
		return 50
	default:
		return 55
	}
}

// floorUnit truncates t down to the start of its containing unit boundary.
func (u UnitKind) floorUnit(t time.Time) time.Time {
	loc := t.Location()
	switch u {
	case UnitCentury:
		return time.Date(floorMultiple(t.Year(), 100), time.January, 1, 0, 0, 0, 0, loc)
	case UnitDecade:
		return time.Date(floorMultiple(t.Year(), 10), time.January, 1, 0, 0, 0, 0, loc)
	case UnitYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	case UnitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case UnitWeek:
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		back := (int(d.Weekday()) + 6) % 7 // weeks start on Monday
		return d.AddDate(0, 0, -back)
	case UnitDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case UnitHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	}
}

// nextUnit advances t (already on a boundary) to the following boundary.
func (u UnitKind) nextUnit(t time.Time) time.Time {
	switch u {
	case UnitCentury:
		return t.AddDate(100, 0, 0)
	case UnitDecade:
		return t.AddDate(10, 0, 0)
	case UnitYear:
		return t.AddDate(1, 0, 0)
	case UnitMonth:
		return t.AddDate(0, 1, 0)
	case UnitWeek:
		return t.AddDate(0, 0, 7)
	case UnitDay:
		return t.AddDate(0, 0, 1)
	case UnitHour:
		return t.Add(time.Hour)
	default:
		return t.Add(time.Minute)
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
