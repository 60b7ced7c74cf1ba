// Package loader turns on-disk event sources into store-ready batches: it
// loads sources concurrently, validates records, fills in missing importance
// scores, and hands the store one batch per source so the O(n log n) rebuild
// cost is amortized across whole files rather than paid per record.
package loader

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/Geddart/linearcal/internal/datasource"
	"github.com/Geddart/linearcal/pkg/debug"
	"github.com/Geddart/linearcal/pkg/metrics"
	"github.com/Geddart/linearcal/pkg/model"
)

// Result is the outcome of loading one or more sources.
type Result struct {
	Events  []model.Event
	Lanes   []model.Lane // lane definitions found in sources, if any
	Skipped int          // records dropped by validation
}

// Load reads events from every path, concurrently, and merges the results
// in path order. Records failing validation are dropped and counted, not
// fatal; a source that cannot be opened at all fails the whole load.
func Load(ctx context.Context, paths []string) (Result, error) {
	defer metrics.Timer(metrics.SourceLoad)()

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := loadOne(path)
			if err != nil {
				return fmt.Errorf("loading %s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var merged Result
	for _, res := range results {
		merged.Events = append(merged.Events, res.Events...)
		merged.Lanes = append(merged.Lanes, res.Lanes...)
		merged.Skipped += res.Skipped
	}
	FillImportance(merged.Events)
	debug.Log("loader: %d events from %d sources, %d skipped",
		len(merged.Events), len(paths), merged.Skipped)
	return merged, nil
}

func loadOne(path string) (Result, error) {
	src, err := datasource.Detect(path)
	if err != nil {
		return Result{}, err
	}

	var events []model.Event
	var lanes []model.Lane
	switch src.Type {
	case datasource.SourceTypeSQLite:
		reader, err := datasource.NewSQLiteReader(src)
		if err != nil {
			return Result{}, err
		}
		defer reader.Close()
		events, err = reader.LoadEvents()
		if err != nil {
			return Result{}, err
		}
	default:
		events, lanes, err = datasource.LoadJSON(src.Path)
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{Lanes: lanes}
	for _, ev := range events {
		if err := sanitize(&ev); err != nil {
			debug.Log("loader: dropping %q: %v", ev.ID, err)
			res.Skipped++
			continue
		}
		res.Events = append(res.Events, ev)
	}
	return res, nil
}

// sanitize enforces the loader contract: ids present, importance in [0,1]
// (clamped rather than rejected), lanes non-negative.
func sanitize(ev *model.Event) error {
	if ev.ID == "" {
		return fmt.Errorf("missing id")
	}
	if math.IsNaN(ev.Importance) {
		ev.Importance = 0
	}
	if ev.Importance < 0 {
		ev.Importance = 0
	}
	if ev.Importance > 1 {
		ev.Importance = 1
	}
	if ev.Lane < 0 {
		return fmt.Errorf("negative lane %d", ev.Lane)
	}
	return nil
}

// FillImportance assigns importance to events that carry none (all zero):
// longer events rank higher, on the view that at coarse zoom the spans worth
// keeping are the ones wide enough to still mean something. Scores are the
// empirical quantile of log-duration, capped at the 99th percentile so a
// single epoch-spanning record does not flatten everything else.
func FillImportance(events []model.Event) {
	if len(events) == 0 {
		return
	}
	for _, ev := range events {
		if ev.Importance != 0 {
			return // caller supplied importance; leave it alone
		}
	}

	logDur := make([]float64, len(events))
	for i, ev := range events {
		d := ev.DurationMs()
		if d < 1 {
			d = 1
		}
		logDur[i] = math.Log10(float64(d))
	}

	sorted := append([]float64(nil), logDur...)
	sort.Float64s(sorted)
	cap99 := stat.Quantile(0.99, stat.Empirical, sorted, nil)
	lo := sorted[0]
	span := cap99 - lo
	if span <= 0 {
		for i := range events {
			events[i].Importance = 0.5
		}
		return
	}

	for i := range events {
		v := (logDur[i] - lo) / span
		if v > 1 {
			v = 1
		}
		events[i].Importance = v
	}
}
