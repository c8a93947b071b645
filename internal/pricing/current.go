package pricing

import (
	"context"
	"fmt"
)

// CurrentFetcher returns the current SOL/USD price from the primary spot
// source, then the optional secondary, then a constant.
type CurrentFetcher struct {
	primary SpotSource
	opts    Options
	now     clock
}

func NewCurrentFetcher(primary SpotSource, opts Options) *CurrentFetcher {
	return &CurrentFetcher{primary: primary, opts: opts, now: opts.clock()}
}

// CurrentPrice never fails.
func (f *CurrentFetcher) CurrentPrice(ctx context.Context) float64 {
	if p, ok := f.live(ctx, f.primary); ok {
		return p
	}
	if f.opts.Secondary != nil {
		if p, ok := f.live(ctx, f.opts.Secondary); ok {
			return p
		}
	}
	p := f.opts.fallbackCurrentPrice()
	fmt.Printf("[PRICE] Current price unavailable, using fallback $%.2f\n", p)
	return p
}

func (f *CurrentFetcher) live(ctx context.Context, src SpotSource) (float64, bool) {
	res := fetchSpot(ctx, src)
	name := SourceName(src)
	if !res.OK() {
		f.opts.degraded("current:"+name, res.Reason, res.Err)
		return 0, false
	}
	if f.opts.Observer != nil {
		if err := f.opts.Observer.ObserveSpot(ctx, res.Value, f.now(), name); err != nil {
			fmt.Printf("[PRICE] Failed to record %s spot price: %v\n", name, err)
		}
	}
	return res.Value, true
}

// SourceName returns src's Name() if it has one.
func SourceName(src any) string {
	if n, ok := src.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "unknown"
}
