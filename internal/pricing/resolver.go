package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/kjannette/ifsol-backend/internal/fallback"
	"github.com/kjannette/ifsol-backend/internal/models"
)

// Resolver answers "what was SOL worth on this date".
type Resolver struct {
	live  RangeSource
	table *fallback.Table
	opts  Options
	now   clock
}

func NewResolver(live RangeSource, table *fallback.Table, opts Options) *Resolver {
	return &Resolver{live: live, table: table, opts: opts, now: opts.clock()}
}

// Resolve returns the first live sample in the one-day window starting at
// date. Invalid or future dates and any live failure select the table entry
// closest to date. It never fails.
func (r *Resolver) Resolve(ctx context.Context, date string) float64 {
	now := r.now()
	at, res := r.lookup(ctx, date, now)
	if res.OK() {
		return res.Value
	}

	r.opts.degraded("historical", res.Reason, res.Err)
	entry, ok := r.table.Nearest(at)
	if !ok {
		fmt.Printf("[PRICE] No fallback entry for %s\n", date)
		return 0
	}
	fmt.Printf("[PRICE] Historical %s: %s, using table %s = $%.2f\n",
		date, res.Reason, entry.Date.Format(models.DateLayout), entry.Price)
	return entry.Price
}

// lookup returns the instant the table should be searched around and the
// live result. An unparseable date is searched around now.
func (r *Resolver) lookup(ctx context.Context, date string, now time.Time) (time.Time, Result[float64]) {
	at, err := models.ParseDate(date)
	if err != nil {
		return now, Failure[float64](ReasonInvalidDate, err)
	}
	if at.After(now) {
		return at, Failure[float64](ReasonInvalidDate, fmt.Errorf("date %s is in the future", date))
	}

	series := fetchRange(ctx, r.live, at, at.Add(24*time.Hour))
	if !series.OK() {
		return at, Failure[float64](series.Reason, series.Err)
	}
	return at, Success(series.Value[0].Price)
}
