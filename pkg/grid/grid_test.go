package grid

import (
	"math"
	"testing"
	"time"

	"github.com/Geddart/linearcal/pkg/viewport"
)

// stateAt builds a viewport snapshot spanning spanMs across a 1000 px canvas
// centered on t.
func stateAt(t time.Time, spanMs float64) viewport.State {
	v := viewport.New(float64(t.UnixMilli()), 1000/spanMs, 1000, 400, viewport.Options{})
	return v.State()
}

var testCenter = time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)

func TestComputeSpacingInvariant(t *testing.T) {
	spans := []float64{
		10 * msMinute,
		6 * msHour,
		3 * msDay,
		2 * msMonth,
		2 * msYear,
		3 * msDecade,
		5 * msCentury,
	}
	for _, span := range spans {
		res := Compute(stateAt(testCenter, span), time.UTC)
		if len(res.Lines) == 0 {
			t.Errorf("span %g ms: no gridlines at all", span)
			continue
		}
		for i, a := range res.Lines {
			for j, b := range res.Lines {
				if i < j && math.Abs(a.X-b.X) < MinLabelSpacingPx {
					t.Errorf("span %g ms: lines %q and %q only %.1f px apart",
						span, a.Label, b.Label, math.Abs(a.X-b.X))
				}
			}
		}
	}
}

func TestComputeLineFields(t *testing.T) {
	res := Compute(stateAt(testCenter, 3*msDay), time.UTC)
	for _, ln := range res.Lines {
		if ln.Opacity <= 0 || ln.Opacity > 1 {
			t.Errorf("line %q: opacity %g out of (0,1]", ln.Label, ln.Opacity)
		}
		if ln.FontWeight < 400 || ln.FontWeight > 700 {
			t.Errorf("line %q: font weight %d out of [400,700]", ln.Label, ln.FontWeight)
		}
		if ln.Label == "" {
			t.Errorf("line at x=%g has no label", ln.X)
		}
		if ln.X < -MinLabelSpacingPx || ln.X > 1000+MinLabelSpacingPx {
			t.Errorf("line %q at x=%g outside the visible band", ln.Label, ln.X)
		}
	}
}

func TestMinuteLinesSkipTopOfHour(t *testing.T) {
	// Ten minutes across the canvas: minute lines are fully legible.
	res := Compute(stateAt(testCenter, 10*msMinute), time.UTC)

	sawMinute := false
	for _, ln := range res.Lines {
		if ln.Unit != UnitMinute {
			continue
		}
		sawMinute = true
		bt := time.UnixMilli(int64(ln.TimeMs)).UTC()
		if bt.Minute() == 0 {
			t.Errorf("minute line at %s duplicates the hour line", bt)
		}
	}
	if !sawMinute {
		t.Error("expected minute lines at ten-minute span")
	}
}

func TestCoarseViewHasNoFineLines(t *testing.T) {
	res := Compute(stateAt(testCenter, 5*msCentury), time.UTC)
	for _, ln := range res.Lines {
		if ln.Unit == UnitDay || ln.Unit == UnitHour || ln.Unit == UnitMinute {
			t.Errorf("line %q: unit %v should never appear at century scale", ln.Label, ln.Unit)
		}
	}
}

func TestCoarseUnitsWinCollisions(t *testing.T) {
	// At a two-year span both year and month boundaries want the January
	// slot; the year line is accepted first and must keep it.
	res := Compute(stateAt(testCenter, 2*msYear), time.UTC)
	for _, ln := range res.Lines {
		if ln.Unit == UnitMonth && ln.Label == "Jan" {
			bt := time.UnixMilli(int64(ln.TimeMs)).UTC()
			for _, other := range res.Lines {
				if other.Unit == UnitYear && int64(other.TimeMs) == bt.UnixMilli() {
					t.Errorf("January line at %s duplicates the year line", bt)
				}
			}
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	vs := stateAt(testCenter, 3*msDay)
	a := Compute(vs, time.UTC)
	b := Compute(vs, time.UTC)
	if len(a.Lines) != len(b.Lines) {
		t.Fatalf("line counts differ: %d vs %d", len(a.Lines), len(b.Lines))
	}
	for i := range a.Lines {
		if a.Lines[i] != b.Lines[i] {
			t.Errorf("line %d differs between identical computes", i)
		}
	}
}

func TestComputeDegenerateViewport(t *testing.T) {
	cases := []struct {
		name string
		vs   viewport.State
	}{
		{"zero width", viewport.State{PixelsPerMs: 1e-6}},
		{"zero zoom", viewport.State{Width: 1000}},
		{"nan bounds", viewport.State{Width: 1000, PixelsPerMs: 1e-6, StartTime: math.NaN()}},
		{"inverted bounds", viewport.State{Width: 1000, PixelsPerMs: 1e-6, StartTime: 100, EndTime: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if res := Compute(tc.vs, time.UTC); len(res.Lines) != 0 {
				t.Errorf("degenerate viewport produced %d lines", len(res.Lines))
			}
		})
	}
}

func TestContextLabels(t *testing.T) {
	res := Compute(stateAt(testCenter, msDay), time.UTC)
	ctx := res.Context
	if ctx.Year != "2025" {
		t.Errorf("Year = %q", ctx.Year)
	}
	if ctx.MonthDay != "Mar 15" {
		t.Errorf("MonthDay = %q", ctx.MonthDay)
	}
	if ctx.DayNumber != "15" {
		t.Errorf("DayNumber = %q", ctx.DayNumber)
	}
	if ctx.Weekday != "Saturday" {
		t.Errorf("Weekday = %q", ctx.Weekday)
	}
}

func TestSchedulerMemoization(t *testing.T) {
	s := NewScheduler(time.UTC)
	vs := stateAt(testCenter, 3*msDay)

	a := s.Lines(vs)
	if len(a.Lines) == 0 {
		t.Fatal("no lines")
	}

	// A sub-pixel pan reuses the previous frame's slice.
	vs2 := vs
	vs2.CenterTime += 0.1 / vs.PixelsPerMs // 0.1 px
	b := s.Lines(vs2)
	if &a.Lines[0] != &b.Lines[0] {
		t.Error("sub-pixel pan should hit the memo")
	}

	// A multi-pixel pan recomputes.
	vs3 := vs
	vs3.CenterTime += 100 / vs.PixelsPerMs
	c := s.Lines(vs3)
	if len(c.Lines) > 0 && len(a.Lines) > 0 && &a.Lines[0] == &c.Lines[0] {
		t.Error("large pan should miss the memo")
	}
}

func TestSchedulerInvalidate(t *testing.T) {
	s := NewScheduler(time.UTC)
	vs := stateAt(testCenter, 3*msDay)

	a := s.Lines(vs)
	s.Invalidate()
	b := s.Lines(vs)
	if len(a.Lines) > 0 && len(b.Lines) > 0 && &a.Lines[0] == &b.Lines[0] {
		t.Error("Invalidate should force a recompute")
	}
}

func TestFade(t *testing.T) {
	cases := []struct {
		spacing, required, want float64
	}{
		{20, 40, 0},   // at the bottom of the band
		{10, 40, 0},   // below it
		{40, 40, 1},   // fully legible
		{100, 40, 1},  // beyond
		{30, 40, 0.5}, // midway through the band
	}
	for _, tc := range cases {
		if got := fade(tc.spacing, tc.required); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("fade(%g, %g) = %g, want %g", tc.spacing, tc.required, got, tc.want)
		}
	}
}

func TestUnitFloorAndNext(t *testing.T) {
	at := time.Date(2025, 3, 15, 13, 45, 30, 0, time.UTC)
	cases := []struct {
		unit      UnitKind
		wantFloor time.Time
		wantNext  time.Time
	}{
		{UnitMinute,
			time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC),
			time.Date(2025, 3, 15, 13, 46, 0, 0, time.UTC)},
		{UnitHour,
			time.Date(2025, 3, 15, 13, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 15, 14, 0, 0, 0, time.UTC)},
		{UnitDay,
			time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)},
		{UnitWeek,
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)},
		{UnitMonth,
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
		{UnitYear,
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{UnitDecade,
			time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
		{UnitCentury,
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.unit.String(), func(t *testing.T) {
			f := tc.unit.floorUnit(at)
			if !f.Equal(tc.wantFloor) {
				t.Errorf("floor = %s, want %s", f, tc.wantFloor)
			}
			if n := tc.unit.nextUnit(f); !n.Equal(tc.wantNext) {
				t.Errorf("next = %s, want %s", n, tc.wantNext)
			}
		})
	}
}

func TestCategorizeWeights(t *testing.T) {
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	catJan, labelJan, ok := UnitMonth.categorize(jan)
	if !ok || labelJan != "Jan" {
		t.Fatalf("January categorize: %q ok=%v", labelJan, ok)
	}
	catJun, _, _ := UnitMonth.categorize(jun)
	if catJan.requiredPx >= catJun.requiredPx {
		t.Error("January should require less spacing than a plain month")
	}
	if catJan.weight <= catJun.weight {
		t.Error("January should carry more weight than a plain month")
	}

	mil := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	catMil, _, _ := UnitCentury.categorize(mil)
	if catMil.weight != 1.0 {
		t.Errorf("millennium weight = %g, want 1.0", catMil.weight)
	}

	if _, _, ok := UnitMinute.categorize(time.Date(2025, 3, 15, 13, 0, 0, 0, time.UTC)); ok {
		t.Error(":00 minute boundary should be skipped")
	}
}

func BenchmarkCompute(b *testing.B) {
	vs := stateAt(testCenter, 3*msDay)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compute(vs, time.UTC)
	}
}

func BenchmarkSchedulerMemoHit(b *testing.B) {
	s := NewScheduler(time.UTC)
	vs := stateAt(testCenter, 3*msDay)
	s.Lines(vs)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Lines(vs)
	}
}
