package investment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kjannette/ifsol-backend/internal/models"
)

var ErrMissingProductName = errors.New("product name is required")

type ProductInfoSource interface {
	Resolve(ctx context.Context, productName string) (models.ProductInfo, error)
}

type HistoricalPricer interface {
	Resolve(ctx context.Context, date string) float64
}

type CurrentPricer interface {
	CurrentPrice(ctx context.Context) float64
}

type HistorySource interface {
	History(ctx context.Context, fromDate string) models.PriceSeries
}

// Recorder persists finished comparisons.
type Recorder interface {
	Record(ctx context.Context, rec *models.ComparisonRecord) error
}

// Orchestrator runs one comparison: product info, historical price,
// current price, figures, then the chart series, strictly in that order.
type Orchestrator struct {
	products   ProductInfoSource
	historical HistoricalPricer
	current    CurrentPricer
	history    HistorySource
	recorder   Recorder
}

func NewOrchestrator(products ProductInfoSource, historical HistoricalPricer, current CurrentPricer, history HistorySource) *Orchestrator {
	return &Orchestrator{
		products:   products,
		historical: historical,
		current:    current,
		history:    history,
	}
}

// WithRecorder sets where successful comparisons are persisted.
func (o *Orchestrator) WithRecorder(r Recorder) *Orchestrator {
	o.recorder = r
	return o
}

// Calculate fails only on a blank name or when product info cannot be
// resolved; that error is returned as-is. Price lookups always degrade to
// fallback values.
func (o *Orchestrator) Calculate(ctx context.Context, productName string) (*models.ComparisonResult, error) {
	if strings.TrimSpace(productName) == "" {
		return nil, ErrMissingProductName
	}

	info, err := o.products.Resolve(ctx, productName)
	if err != nil {
		return nil, err
	}

	historical := o.historical.Resolve(ctx, info.ReleaseDate)
	current := o.current.CurrentPrice(ctx)
	fig := Compute(info.Price, historical, current)
	series := o.history.History(ctx, info.ReleaseDate)

	result := &models.ComparisonResult{
		ProductName:          productName,
		ProductPrice:         info.Price,
		ReleaseDate:          info.ReleaseDate,
		HistoricalSolPrice:   historical,
		CurrentSolPrice:      current,
		SolAmount:            fig.SolAmount,
		CurrentValue:         fig.CurrentValue,
		ProfitLoss:           fig.ProfitLoss,
		ProfitLossPercentage: fig.ProfitLossPercentage,
		HistoricalPriceData:  series,
	}
	fmt.Printf("[INVEST] %q (%s, $%.2f): SOL $%.2f -> $%.2f, P/L %.2f%%\n",
		productName, info.ReleaseDate, info.Price, historical, current, fig.ProfitLossPercentage)

	if o.recorder != nil {
		if err := o.recorder.Record(ctx, models.NewComparisonRecord(result)); err != nil {
			fmt.Printf("[INVEST] Failed to record comparison: %v\n", err)
		}
	}
	return result, nil
}
