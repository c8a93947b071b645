// Package pricing resolves SOL/USD prices with a live source and falls back
// to the static table whenever the live path fails.
package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/kjannette/ifsol-backend/internal/external"
	"github.com/kjannette/ifsol-backend/internal/httputil"
	"github.com/kjannette/ifsol-backend/internal/models"
)

// Reason says why a live lookup produced no usable value.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonTransport
	ReasonStatus
	ReasonEmpty
	ReasonMalformed
	ReasonInvalidDate
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "ok"
	case ReasonTransport:
		return "transport error"
	case ReasonStatus:
		return "non-2xx status"
	case ReasonEmpty:
		return "empty sample list"
	case ReasonMalformed:
		return "malformed payload"
	case ReasonInvalidDate:
		return "invalid or future date"
	default:
		return "unknown"
	}
}

// Result is the outcome of one live lookup: a value, or a failure reason.
type Result[T any] struct {
	Value  T
	Reason Reason
	Err    error
}

func Success[T any](v T) Result[T] { return Result[T]{Value: v} }

func Failure[T any](reason Reason, err error) Result[T] {
	return Result[T]{Reason: reason, Err: err}
}

func (r Result[T]) OK() bool { return r.Reason == ReasonNone }

// RangeSource returns price samples between two instants.
type RangeSource interface {
	Range(ctx context.Context, from, to time.Time) (models.PriceSeries, error)
}

// SpotSource returns a single current price.
type SpotSource interface {
	SpotPrice(ctx context.Context) (float64, error)
}

// DegradationReporter is told every time a fallback value is served.
type DegradationReporter interface {
	Degraded(component string, reason Reason, err error)
}

// Classify maps a source error onto a Reason.
func Classify(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	var se *httputil.StatusError
	switch {
	case errors.As(err, &se):
		return ReasonStatus
	case errors.Is(err, external.ErrMalformedPayload):
		return ReasonMalformed
	default:
		return ReasonTransport
	}
}

func fetchRange(ctx context.Context, src RangeSource, from, to time.Time) Result[models.PriceSeries] {
	if src == nil {
		return Failure[models.PriceSeries](ReasonTransport, errors.New("no range source configured"))
	}
	series, err := src.Range(ctx, from, to)
	if err != nil {
		return Failure[models.PriceSeries](Classify(err), err)
	}
	if len(series) == 0 {
		return Failure[models.PriceSeries](ReasonEmpty, nil)
	}
	return Success(series)
}

func fetchSpot(ctx context.Context, src SpotSource) Result[float64] {
	if src == nil {
		return Failure[float64](ReasonTransport, errors.New("no spot source configured"))
	}
	p, err := src.SpotPrice(ctx)
	if err != nil {
		return Failure[float64](Classify(err), err)
	}
	if p <= 0 {
		return Failure[float64](ReasonMalformed, errors.New("non-positive spot price"))
	}
	return Success(p)
}

type clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
