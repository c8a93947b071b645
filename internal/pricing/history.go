package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/kjannette/ifsol-backend/internal/fallback"
	"github.com/kjannette/ifsol-backend/internal/models"
)

// interpolationSteps splits each gap between table entries; a gap gets
// interpolationSteps-1 synthesized points.
const interpolationSteps = 6

// Synthesizer returns a price series from a start date to now.
type Synthesizer struct {
	live  RangeSource
	table *fallback.Table
	opts  Options
	now   clock
}

func NewSynthesizer(live RangeSource, table *fallback.Table, opts Options) *Synthesizer {
	return &Synthesizer{live: live, table: table, opts: opts, now: opts.clock()}
}

// History returns the live series from fromDate to now, or a series built
// from the table when the live path fails.
func (s *Synthesizer) History(ctx context.Context, fromDate string) models.PriceSeries {
	now := s.now()

	from, err := models.ParseDate(fromDate)
	var res Result[models.PriceSeries]
	switch {
	case err != nil:
		from = now
		res = Failure[models.PriceSeries](ReasonInvalidDate, err)
	case from.After(now):
		res = Failure[models.PriceSeries](ReasonInvalidDate, fmt.Errorf("date %s is in the future", fromDate))
	default:
		res = fetchRange(ctx, s.live, from, now)
	}
	if res.OK() {
		return res.Value
	}

	s.opts.degraded("history", res.Reason, res.Err)
	series := s.synthesize(from, now)
	fmt.Printf("[PRICE] History from %s: %s, synthesized %d points\n", fromDate, res.Reason, len(series))
	return series
}

// synthesize seeds with table entries on or after from (or the closest
// earlier one), interpolates linearly between them and ends at now with the
// fallback current price. Entries later than now are ignored.
func (s *Synthesizer) synthesize(from, now time.Time) models.PriceSeries {
	var table models.PriceSeries
	for _, p := range s.table.Points() {
		if p.Timestamp <= now.UnixMilli() {
			table = append(table, p)
		}
	}

	fromMs := from.UnixMilli()
	var seed models.PriceSeries
	for _, p := range table {
		if p.Timestamp >= fromMs {
			seed = append(seed, p)
		}
	}
	if len(seed) == 0 && len(table) > 0 {
		seed = models.PriceSeries{table[0]}
		for _, p := range table {
			if p.Timestamp < fromMs {
				seed[0] = p
			}
		}
	}

	out := make(models.PriceSeries, 0, len(seed)*interpolationSteps+1)
	for i, p := range seed {
		if i > 0 {
			out = append(out, interpolate(seed[i-1], p)...)
		}
		out = append(out, p)
	}
	return append(out, models.NewPricePoint(now, s.opts.fallbackCurrentPrice()))
}

// interpolate returns the evenly spaced points strictly between a and b.
func interpolate(a, b models.PricePoint) models.PriceSeries {
	out := make(models.PriceSeries, 0, interpolationSteps-1)
	dt := b.Timestamp - a.Timestamp
	dp := b.Price - a.Price
	for j := 1; j < interpolationSteps; j++ {
		out = append(out, models.PricePoint{
			Timestamp: a.Timestamp + dt*int64(j)/interpolationSteps,
			Price:     a.Price + dp*float64(j)/interpolationSteps,
		})
	}
	return out
}
