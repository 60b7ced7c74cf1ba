// Package store holds all event records behind a centered interval tree so
// the render pipeline can ask "which events overlap [t0,t1), optionally above
// importance θ" in O(log n + k) instead of scanning tens of thousands of
// records every frame.
//
// The tree is rebuilt wholesale whenever a batch insert adds at least one new
// id. That is O(n log n) paid synchronously, which is fine for bursty batch
// loads; callers doing many small inserts are expected to batch them first.
package store

import (
	"math"
	"sort"

	"github.com/Geddart/linearcal/pkg/debug"
	"github.com/Geddart/linearcal/pkg/metrics"
	"github.com/Geddart/linearcal/pkg/model"
)

// Store is an interval-indexed collection of events.
//
// Mutation happens only through Insert and Clear. All mutation is expected on
// a single goroutine (the frame loop's); concurrent readers need external
// synchronization around Insert.
type Store struct {
	byID   map[string]model.Event
	events []model.Event // accumulated set, insertion order
	root   *node
}

// node is one level of the centered interval tree. Every event in
// overlapping satisfies startMs <= center <= endMs; events entirely before
// center live in the left subtree, entirely after in the right. An event
// appears in exactly one node.
type node struct {
	center      int64
	overlapping []model.Event // sorted by StartMs for early loop termination
	left        *node
	right       *node
}

// New returns an empty store.
func New() *Store {
	return &Store{byID: make(map[string]model.Event)}
}

// Size returns the number of distinct events held.
func (s *Store) Size() int {
	return len(s.events)
}

// All returns the accumulated event set in insertion order. The returned
// slice is shared; callers must not mutate it.
func (s *Store) All() []model.Event {
	return s.events
}

// GetByID returns the event with the given id in O(1).
func (s *Store) GetByID(id string) (model.Event, bool) {
	ev, ok := s.byID[id]
	return ev, ok
}

// Clear resets the store to empty.
func (s *Store) Clear() {
	s.byID = make(map[string]model.Event)
	s.events = nil
	s.root = nil
}

// Insert adds a batch of events, ignoring any whose id is already present
// (first insert wins). If at least one new record was added the tree is
// rebuilt from the full accumulated set. Returns the number of events added.
func (s *Store) Insert(events []model.Event) int {
	added := 0
	for _, ev := range events {
		if _, dup := s.byID[ev.ID]; dup {
			continue
		}
		s.byID[ev.ID] = ev
		s.events = append(s.events, ev)
		added++
	}
	if added > 0 {
		s.rebuild()
	}
	return added
}

func (s *Store) rebuild() {
	defer metrics.Timer(metrics.StoreRebuild)()
	s.root = build(append([]model.Event(nil), s.events...))
	debug.Log("store: rebuilt interval tree over %d events", len(s.events))
}

// effectiveEnd treats zero/negative durations as degenerate points so tree
// classification always sees start <= end. The query predicate still uses the
// raw EndMs, so degenerate events only match ranges strictly containing them.
func effectiveEnd(ev model.Event) int64 {
	if ev.EndMs < ev.StartMs {
		return ev.StartMs
	}
	return ev.EndMs
}

func build(events []model.Event) *node {
	if len(events) == 0 {
		return nil
	}

	// Median of all 2n endpoints becomes the node center. The event owning
	// the median endpoint always spans it, so every node captures at least
	// one event and recursion terminates.
	endpoints := make([]int64, 0, 2*len(events))
	for _, ev := range events {
		endpoints = append(endpoints, ev.StartMs, effectiveEnd(ev))
	}
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i] < endpoints[j] })
	center := endpoints[len(endpoints)/2]

	n := &node{center: center}
	var left, right []model.Event
	for _, ev := range events {
		switch {
		case effectiveEnd(ev) < center:
			left = append(left, ev)
		case ev.StartMs > center:
			right = append(right, ev)
		default:
			n.overlapping = append(n.overlapping, ev)
		}
	}
	sort.Slice(n.overlapping, func(i, j int) bool {
		return n.overlapping[i].StartMs < n.overlapping[j].StartMs
	})
	n.left = build(left)
	n.right = build(right)
	return n
}

// QueryRange returns every event overlapping the half-open range [t0, t1):
// endMs > t0 && startMs < t1. An event ending exactly at t0 is excluded —
// events are right-open, and that boundary choice is deliberate.
//
// Malformed ranges (t1 < t0, NaN, ±Inf) return no results rather than an
// error; they arise from legitimate transient drag states.
func (s *Store) QueryRange(t0, t1 float64) []model.Event {
	return s.QueryRangeWithImportance(t0, t1, 0)
}

// QueryRangeWithImportance is QueryRange with an additional importance >= θ
// filter applied during traversal.
func (s *Store) QueryRangeWithImportance(t0, t1, theta float64) []model.Event {
	defer metrics.Timer(metrics.RangeQuery)()

	if !validRange(t0, t1) {
		return nil
	}

	var out []model.Event
	query(s.root, t0, t1, theta, &out)
	return out
}

func validRange(t0, t1 float64) bool {
	if math.IsNaN(t0) || math.IsNaN(t1) || math.IsInf(t0, 0) || math.IsInf(t1, 0) {
		return false
	}
	return t1 >= t0
}

func query(n *node, t0, t1, theta float64, out *[]model.Event) {
	if n == nil {
		return
	}

	// overlapping is sorted by start, so once a start crosses t1 the rest
	// of the bucket cannot match.
	for _, ev := range n.overlapping {
		if float64(ev.StartMs) >= t1 {
			break
		}
		if float64(ev.EndMs) > t0 && ev.Importance >= theta {
			*out = append(*out, ev)
		}
	}

	if t0 < float64(n.center) {
		query(n.left, t0, t1, theta, out)
	}
	if t1 > float64(n.center) {
		query(n.right, t0, t1, theta, out)
	}
}
