package testutil

import (
	"math"
	"testing"

	"github.com/Geddart/linearcal/pkg/model"
)

// AssertEventCount verifies the expected number of events.
func AssertEventCount(t *testing.T, events []model.Event, expected int) {
	t.Helper()
	if len(events) != expected {
		t.Errorf("expected %d events, got %d", expected, len(events))
	}
}

// AssertNoDuplicateIDs verifies all event IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, events []model.Event) {
	t.Helper()
	seen := make(map[string]bool)
	for _, ev := range events {
		if seen[ev.ID] {
			t.Errorf("duplicate event ID: %s", ev.ID)
		}
		seen[ev.ID] = true
	}
}

// AssertAllValid verifies all events pass validation.
func AssertAllValid(t *testing.T, events []model.Event) {
	t.Helper()
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			t.Errorf("event %d (%s) invalid: %v", i, ev.ID, err)
		}
	}
}

// AssertContainsID verifies the slice contains an event with the given id.
func AssertContainsID(t *testing.T, events []model.Event, id string) {
	t.Helper()
	for _, ev := range events {
		if ev.ID == id {
			return
		}
	}
	t.Errorf("expected event %s in result, not found", id)
}

// AssertNotContainsID verifies the slice has no event with the given id.
func AssertNotContainsID(t *testing.T, events []model.Event, id string) {
	t.Helper()
	for _, ev := range events {
		if ev.ID == id {
			t.Errorf("event %s should not be in result", id)
			return
		}
	}
}

// AssertInDelta verifies got is within delta of want.
func AssertInDelta(t *testing.T, want, got, delta float64, context string) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > delta {
		t.Errorf("%s: want %g, got %g (delta %g)", context, want, got, delta)
	}
}
