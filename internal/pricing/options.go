package pricing

import (
	"context"
	"time"
)

// DefaultFallbackCurrentPrice is served when no live current price is available,
// and anchors the end of a synthesized history series.
const DefaultFallbackCurrentPrice = 200.00

// Options configures the resolvers. Zero values select the defaults.
type Options struct {
	// Now is the clock. Defaults to time.Now in UTC.
	Now func() time.Time

	// Reporter is told about every fallback.
	Reporter DegradationReporter

	// FallbackCurrentPrice defaults to DefaultFallbackCurrentPrice.
	FallbackCurrentPrice float64

	// Secondary is consulted by CurrentFetcher after the primary fails.
	Secondary SpotSource

	// Observer receives every live current price.
	Observer SpotObserver
}

func (o Options) clock() clock {
	if o.Now != nil {
		return o.Now
	}
	return systemClock
}

func (o Options) fallbackCurrentPrice() float64 {
	if o.FallbackCurrentPrice > 0 {
		return o.FallbackCurrentPrice
	}
	return DefaultFallbackCurrentPrice
}

// SpotObserver receives live current prices as they are fetched.
type SpotObserver interface {
	ObserveSpot(ctx context.Context, price float64, at time.Time, source string) error
}

func (o Options) degraded(component string, reason Reason, err error) {
	if o.Reporter != nil {
		o.Reporter.Degraded(component, reason, err)
	}
}
