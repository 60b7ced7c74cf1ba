package store

import (
	"math"
	"testing"

	"github.com/Geddart/linearcal/pkg/model"
	"github.com/Geddart/linearcal/pkg/testutil"
)

func ev(id string, start, end int64) model.Event {
	return model.Event{ID: id, StartMs: start, EndMs: end, Importance: 0.5}
}

func TestInsertAndQueryAll(t *testing.T) {
	s := New()
	added := s.Insert([]model.Event{
		ev("a", 0, 100),
		ev("b", 50, 150),
		ev("c", 200, 300),
	})
	if added != 3 {
		t.Fatalf("expected 3 added, got %d", added)
	}

	got := s.QueryRange(-1e15, 1e15)
	testutil.AssertEventCount(t, got, 3)
	testutil.AssertNoDuplicateIDs(t, got)
}

func TestOverlapScenario(t *testing.T) {
	s := New()
	s.Insert([]model.Event{
		ev("a", 0, 100),
		ev("b", 50, 150),
		ev("c", 200, 300),
	})

	got := s.QueryRange(75, 125)
	testutil.AssertEventCount(t, got, 2)
	testutil.AssertContainsID(t, got, "a")
	testutil.AssertContainsID(t, got, "b")
	testutil.AssertNotContainsID(t, got, "c")

	if got := s.QueryRange(400, 450); len(got) != 0 {
		t.Errorf("expected empty result, got %d events", len(got))
	}
}

func TestBoundaryTouchExcluded(t *testing.T) {
	s := New()
	s.Insert([]model.Event{ev("edge", 0, 100)})

	// An event ending exactly at the query start is excluded: events are
	// right-open. This is a deliberate semantic choice, not a bug.
	if got := s.QueryRange(100, 200); len(got) != 0 {
		t.Errorf("event ending at query start should be excluded, got %d", len(got))
	}
	if got := s.QueryRange(99, 200); len(got) != 1 {
		t.Errorf("event ending inside query should be included, got %d", len(got))
	}
	// Symmetric: an event starting exactly at the query end is excluded.
	if got := s.QueryRange(-100, 0); len(got) != 0 {
		t.Errorf("event starting at query end should be excluded, got %d", len(got))
	}
}

func TestDuplicateIDFirstWins(t *testing.T) {
	s := New()
	first := model.Event{ID: "dup", StartMs: 0, EndMs: 10, Title: "first"}
	second := model.Event{ID: "dup", StartMs: 500, EndMs: 600, Title: "second"}

	s.Insert([]model.Event{first})
	added := s.Insert([]model.Event{second})
	if added != 0 {
		t.Errorf("duplicate insert should add 0, added %d", added)
	}
	if s.Size() != 1 {
		t.Errorf("store size changed on duplicate insert: %d", s.Size())
	}
	got, ok := s.GetByID("dup")
	if !ok {
		t.Fatal("GetByID failed")
	}
	if got.Title != "first" || got.StartMs != 0 {
		t.Errorf("duplicate insert overwrote first record: %+v", got)
	}
}

func TestEmptyStore(t *testing.T) {
	s := New()
	if got := s.QueryRange(0, 1e12); got != nil {
		t.Errorf("empty store should return nil, got %v", got)
	}
	if _, ok := s.GetByID("nope"); ok {
		t.Error("GetByID on empty store should miss")
	}
}

func TestMalformedRanges(t *testing.T) {
	s := New()
	s.Insert([]model.Event{ev("a", 0, 100)})

	cases := []struct {
		name   string
		t0, t1 float64
	}{
		{"inverted", 100, 0},
		{"nan start", math.NaN(), 100},
		{"nan end", 0, math.NaN()},
		{"inf start", math.Inf(-1), 100},
		{"inf end", 0, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.QueryRange(tc.t0, tc.t1); len(got) != 0 {
				t.Errorf("malformed range returned %d events", len(got))
			}
		})
	}
}

func TestImportanceFilter(t *testing.T) {
	s := New()
	s.Insert([]model.Event{
		{ID: "lo", StartMs: 0, EndMs: 100, Importance: 0.2},
		{ID: "mid", StartMs: 0, EndMs: 100, Importance: 0.5},
		{ID: "hi", StartMs: 0, EndMs: 100, Importance: 0.9},
	})

	got := s.QueryRangeWithImportance(-10, 200, 0.5)
	testutil.AssertEventCount(t, got, 2)
	testutil.AssertContainsID(t, got, "mid") // theta is inclusive
	testutil.AssertContainsID(t, got, "hi")
	testutil.AssertNotContainsID(t, got, "lo")
}

func TestDegeneratePointEvents(t *testing.T) {
	s := New()
	s.Insert([]model.Event{
		ev("pt", 100, 100),
		ev("neg", 100, 50), // negative duration, treated as a point
	})

	// A point at 100 matches only ranges strictly containing it.
	got := s.QueryRange(50, 150)
	testutil.AssertContainsID(t, got, "pt")
	if got := s.QueryRange(100, 150); len(got) != 0 {
		t.Errorf("zero-duration event at range start should not match, got %d", len(got))
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Insert(testutil.New(testutil.DefaultConfig()).Events(50))
	s.Clear()
	if s.Size() != 0 {
		t.Errorf("size after clear: %d", s.Size())
	}
	if got := s.QueryRange(-1e15, 1e15); len(got) != 0 {
		t.Errorf("query after clear returned %d events", len(got))
	}
}

func TestLargeSetQueryMatchesNaive(t *testing.T) {
	gen := testutil.New(testutil.DefaultConfig())
	events := gen.Events(2000)

	s := New()
	s.Insert(events)

	t0, t1 := float64(events[0].StartMs), float64(events[0].StartMs)+90*86_400_000

	want := make(map[string]bool)
	for _, ev := range events {
		if ev.Overlaps(t0, t1) {
			want[ev.ID] = true
		}
	}
	got := s.QueryRange(t0, t1)
	if len(got) != len(want) {
		t.Fatalf("tree query returned %d, naive scan %d", len(got), len(want))
	}
	for _, ev := range got {
		if !want[ev.ID] {
			t.Errorf("unexpected event %s in result", ev.ID)
		}
	}
}

func BenchmarkQueryRange(b *testing.B) {
	gen := testutil.New(testutil.DefaultConfig())
	events := gen.Events(50_000)
	s := New()
	s.Insert(events)
	t0 := float64(events[0].StartMs)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.QueryRange(t0, t0+7*86_400_000)
	}
}

func BenchmarkInsertRebuild(b *testing.B) {
	gen := testutil.New(testutil.DefaultConfig())
	events := gen.Events(10_000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := New()
		s.Insert(events)
	}
}
