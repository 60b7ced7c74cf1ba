package render

import (
	"time"

	"github.com/Geddart/linearcal/pkg/model"
	"github.com/Geddart/linearcal/pkg/viewport"
)

// Seasonal overlay bands: one tinted instance per calendar quarter, blended
// beneath the event instances. They follow the same instancing pattern as
// events but key their segment boundaries off calendar computation, and obey
// the same cap and no-NaN/no-negative-size rules.

var quarterColors = [4]model.RGBA{
	{R: 0.55, G: 0.71, B: 0.87, A: 0.10}, // Q1
	{R: 0.56, G: 0.80, B: 0.55, A: 0.10}, // Q2
	{R: 0.91, G: 0.77, B: 0.42, A: 0.10}, // Q3
	{R: 0.80, G: 0.56, B: 0.44, A: 0.10}, // Q4
}

// minQuarterPx: below this width a quarter band is sub-legible tint noise
// and the overlay is omitted entirely.
const minQuarterPx = 8.0

// PackSeasons fills buf with quarter bands covering the visible range. Bands
// span the full canvas height. The instance tag is the quarter index 0-3.
func PackSeasons(vs viewport.State, loc *time.Location, maxInstances int, buf *Buffer) {
	buf.Reset()
	if loc == nil {
		loc = time.UTC
	}
	if maxInstances <= 0 {
		maxInstances = DefaultMaxInstances
	}

	quarterPx := 91.0 * 86_400_000 * vs.PixelsPerMs
	if quarterPx < minQuarterPx || vs.Width <= 0 || !finite(vs.StartTime) || !finite(vs.EndTime) {
		return
	}

	start := time.UnixMilli(int64(vs.StartTime)).In(loc)
	q := time.Date(start.Year(), quarterStartMonth(start.Month()), 1, 0, 0, 0, 0, loc)
	for buf.Count() < maxInstances {
		qEnd := q.AddDate(0, 3, 0)
		t0 := float64(q.UnixMilli())
		t1 := float64(qEnd.UnixMilli())
		if t0 > vs.EndTime {
			break
		}

		x0 := (t0-vs.CenterTime)*vs.PixelsPerMs + vs.Width/2
		x1 := (t1-vs.CenterTime)*vs.PixelsPerMs + vs.Width/2
		w := x1 - x0
		if w > 0 && finite(x0) && finite(w) {
			qi := (int(q.Month()) - 1) / 3
			buf.append(int32(qi), x0+w/2, vs.Height/2, w, vs.Height, quarterColors[qi])
		}
		q = qEnd
	}
}

func quarterStartMonth(m time.Month) time.Month {
	return time.Month(((int(m)-1)/3)*3 + 1)
}
