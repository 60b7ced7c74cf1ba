// Package testutil provides deterministic event fixture generators and
// shared test assertions.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Geddart/linearcal/pkg/model"
)

// GeneratorConfig controls event generation.
type GeneratorConfig struct {
	Seed       int64     // Random seed for determinism (0 = use current time)
	IDPrefix   string    // Prefix for event IDs (default: "EV")
	BaseTime   time.Time // Start of the generated window (default: fixed time)
	Lanes      int       // Number of lanes to spread events over (default 3)
	MinSpan    time.Duration
	MaxSpan    time.Duration
	WindowSpan time.Duration // Width of the window starts are drawn from
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42, // Deterministic
		IDPrefix:   "EV",
		BaseTime:   time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		Lanes:      3,
		MinSpan:    time.Minute,
		MaxSpan:    30 * 24 * time.Hour,
		WindowSpan: 365 * 24 * time.Hour,
	}
}

// Generator creates event fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.BaseTime.IsZero() {
		cfg.BaseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "EV"
	}
	if cfg.Lanes <= 0 {
		cfg.Lanes = 3
	}
	if cfg.MinSpan <= 0 {
		cfg.MinSpan = time.Minute
	}
	if cfg.MaxSpan < cfg.MinSpan {
		cfg.MaxSpan = cfg.MinSpan
	}
	if cfg.WindowSpan <= 0 {
		cfg.WindowSpan = 365 * 24 * time.Hour
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Events generates n events with starts uniform over the window and
// log-uniform spans between MinSpan and MaxSpan.
func (g *Generator) Events(n int) []model.Event {
	events := make([]model.Event, 0, n)
	base := g.cfg.BaseTime.UnixMilli()
	window := g.cfg.WindowSpan.Milliseconds()
	for i := 0; i < n; i++ {
		start := base + g.rng.Int63n(window)
		span := g.logUniformSpan()
		events = append(events, model.Event{
			ID:         fmt.Sprintf("%s-%04d", g.cfg.IDPrefix, i),
			Title:      fmt.Sprintf("event %d", i),
			StartMs:    start,
			EndMs:      start + span,
			Importance: g.rng.Float64(),
			Lane:       i % g.cfg.Lanes,
		})
	}
	return events
}

// PointEvents generates n zero-duration events.
func (g *Generator) PointEvents(n int) []model.Event {
	events := g.Events(n)
	for i := range events {
		events[i].EndMs = events[i].StartMs
		events[i].ID = fmt.Sprintf("%s-pt-%04d", g.cfg.IDPrefix, i)
	}
	return events
}

func (g *Generator) logUniformSpan() int64 {
	lo := float64(g.cfg.MinSpan.Milliseconds())
	hi := float64(g.cfg.MaxSpan.Milliseconds())
	if hi <= lo {
		return int64(lo)
	}
	// log-uniform: spans cover orders of magnitude like real calendars do
	u := g.rng.Float64()
	return int64(lo * math.Pow(hi/lo, u))
}
