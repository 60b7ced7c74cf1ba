// Package model defines the core timeline data types shared across packages.
//
// An Event is an immutable time-interval record. Times are integer
// milliseconds since the Unix epoch, which keeps arithmetic exact across the
// full zoom range (a float64 holds every millisecond out to ±2.8e14 years of
// integers, far beyond what the viewport can reach).
package model

import (
	"fmt"
	"strings"
)

// Event is a single time-interval record on the timeline.
//
// Events are created by a loader, inserted once into the store, and never
// mutated in place. EndMs > StartMs is not enforced; a zero or negative
// duration is treated everywhere as a degenerate point.
type Event struct {
	ID         string  `json:"id" yaml:"id"`
	Title      string  `json:"title,omitempty" yaml:"title,omitempty"`
	StartMs    int64   `json:"start_ms" yaml:"start_ms"`
	EndMs      int64   `json:"end_ms" yaml:"end_ms"`
	Importance float64 `json:"importance" yaml:"importance"` // [0,1], precomputed by the loader
	Lane       int     `json:"lane" yaml:"lane"`
	Color      string  `json:"color,omitempty" yaml:"color,omitempty"` // #RRGGBB override; empty means lane color
}

// DurationMs returns the event span in milliseconds, never negative.
func (e Event) DurationMs() int64 {
	if e.EndMs <= e.StartMs {
		return 0
	}
	return e.EndMs - e.StartMs
}

// IsPoint reports whether the event has zero or negative duration.
func (e Event) IsPoint() bool {
	return e.EndMs <= e.StartMs
}

// Overlaps reports whether the event intersects the half-open range [t0, t1).
// An event ending exactly at t0 does not overlap: events are right-open.
func (e Event) Overlaps(t0, t1 float64) bool {
	return float64(e.EndMs) > t0 && float64(e.StartMs) < t1
}

// Validate checks the fields a loader must supply.
func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event has empty id")
	}
	if e.Importance < 0 || e.Importance > 1 {
		return fmt.Errorf("event %s: importance %.3f outside [0,1]", e.ID, e.Importance)
	}
	if e.Lane < 0 {
		return fmt.Errorf("event %s: negative lane %d", e.ID, e.Lane)
	}
	return nil
}

// RGBA holds a premultiplication-free color with components in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// ParseColor parses a #RGB or #RRGGBB hex string. Invalid input returns
// (zero, false) rather than an error so callers can fall back to a default.
func ParseColor(s string) (RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b int
	switch len(s) {
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return RGBA{}, false
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return RGBA{}, false
		}
	default:
		return RGBA{}, false
	}
	return RGBA{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: 1}, true
}

// Lane describes a fixed vertical track events are assigned to.
type Lane struct {
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color" yaml:"color"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"` // device pixels; 0 means default
}
