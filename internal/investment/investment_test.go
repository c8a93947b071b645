package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kjannette/ifsol-backend/internal/fallback"
	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/kjannette/ifsol-backend/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	fig := Compute(999, 1.80, 150)

	assert.InDelta(t, 555.0, fig.SolAmount, 1e-9)
	assert.InDelta(t, 83250.0, fig.CurrentValue, 1e-6)
	assert.InDelta(t, 82251.0, fig.ProfitLoss, 1e-6)
	assert.InDelta(t, 8233.2332, fig.ProfitLossPercentage, 1e-3)
}

func TestCompute_Invariants(t *testing.T) {
	cases := [][3]float64{
		{999, 1.80, 200},
		{1500, 199, 142.5},
		{25, 170, 170},
		{0.99, 13.3, 9.96},
	}
	for _, c := range cases {
		price, hist, cur := c[0], c[1], c[2]
		fig := Compute(price, hist, cur)

		assert.InDelta(t, price/hist, fig.SolAmount, 1e-9)
		assert.InDelta(t, fig.SolAmount*cur, fig.CurrentValue, 1e-9)
		assert.InDelta(t, fig.CurrentValue-price, fig.ProfitLoss, 1e-9)
		assert.InDelta(t, fig.ProfitLoss/price*100, fig.ProfitLossPercentage, 1e-9)
	}
}

func TestCompute_FlatPriceIsBreakEven(t *testing.T) {
	fig := Compute(1200, 140, 140)
	assert.InDelta(t, 0, fig.ProfitLoss, 1e-9)
	assert.InDelta(t, 0, fig.ProfitLossPercentage, 1e-9)
}

type stubProducts struct {
	info  models.ProductInfo
	err   error
	calls int
	log   *[]string
}

func (s *stubProducts) Resolve(context.Context, string) (models.ProductInfo, error) {
	s.calls++
	*s.log = append(*s.log, "product")
	return s.info, s.err
}

type stubHistorical struct {
	price float64
	date  string
	log   *[]string
}

func (s *stubHistorical) Resolve(_ context.Context, date string) float64 {
	s.date = date
	*s.log = append(*s.log, "historical")
	return s.price
}

type stubCurrent struct {
	price float64
	log   *[]string
}

func (s *stubCurrent) CurrentPrice(context.Context) float64 {
	*s.log = append(*s.log, "current")
	return s.price
}

type stubHistory struct {
	series models.PriceSeries
	log    *[]string
}

func (s *stubHistory) History(context.Context, string) models.PriceSeries {
	*s.log = append(*s.log, "history")
	return s.series
}

type stubRecorder struct {
	recs []*models.ComparisonRecord
	err  error
}

func (s *stubRecorder) Record(_ context.Context, rec *models.ComparisonRecord) error {
	s.recs = append(s.recs, rec)
	return s.err
}

type fixture struct {
	log        []string
	products   *stubProducts
	historical *stubHistorical
	current    *stubCurrent
	history    *stubHistory
}

func newFixture() *fixture {
	f := &fixture{}
	f.products = &stubProducts{info: models.ProductInfo{Price: 999, ReleaseDate: "2021-01-15"}, log: &f.log}
	f.historical = &stubHistorical{price: 2.5, log: &f.log}
	f.current = &stubCurrent{price: 150, log: &f.log}
	f.history = &stubHistory{series: models.PriceSeries{{Timestamp: 1, Price: 2.5}, {Timestamp: 2, Price: 150}}, log: &f.log}
	return f
}

func (f *fixture) orchestrator() *Orchestrator {
	return NewOrchestrator(f.products, f.historical, f.current, f.history)
}

func TestCalculate(t *testing.T) {
	f := newFixture()

	res, err := f.orchestrator().Calculate(context.Background(), "iPhone 12")
	require.NoError(t, err)

	assert.Equal(t, []string{"product", "historical", "current", "history"}, f.log)
	assert.Equal(t, "2021-01-15", f.historical.date)
	assert.Equal(t, "iPhone 12", res.ProductName)
	assert.Equal(t, 999.0, res.ProductPrice)
	assert.Equal(t, "2021-01-15", res.ReleaseDate)
	assert.Equal(t, 2.5, res.HistoricalSolPrice)
	assert.Equal(t, 150.0, res.CurrentSolPrice)
	assert.InDelta(t, 399.6, res.SolAmount, 1e-9)
	assert.InDelta(t, 59940.0, res.CurrentValue, 1e-6)
	assert.InDelta(t, 58941.0, res.ProfitLoss, 1e-6)
	assert.Len(t, res.HistoricalPriceData, 2)
}

func TestCalculate_MissingName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		f := newFixture()
		res, err := f.orchestrator().Calculate(context.Background(), name)

		assert.Nil(t, res)
		assert.ErrorIs(t, err, ErrMissingProductName)
		assert.Empty(t, f.log)
	}
}

func TestCalculate_ProductInfoErrorPropagates(t *testing.T) {
	f := newFixture()
	cause := errors.New("llm returned garbage")
	f.products.err = cause

	res, err := f.orchestrator().Calculate(context.Background(), "Tesla Model 3")

	assert.Nil(t, res)
	assert.Same(t, cause, err)
	assert.Equal(t, []string{"product"}, f.log)
	assert.Equal(t, 1, f.products.calls)
}

func TestCalculate_Recorder(t *testing.T) {
	f := newFixture()
	rec := &stubRecorder{err: errors.New("db down")}

	res, err := f.orchestrator().WithRecorder(rec).Calculate(context.Background(), "PS5")
	require.NoError(t, err)
	require.Len(t, rec.recs, 1)
	assert.Equal(t, "PS5", rec.recs[0].ProductName)
	assert.Equal(t, res.ProfitLoss, rec.recs[0].ProfitLoss)
}

type downRange struct{}

func (downRange) Range(context.Context, time.Time, time.Time) (models.PriceSeries, error) {
	return nil, errors.New("connection refused")
}

type downSpot struct{}

func (downSpot) SpotPrice(context.Context) (float64, error) {
	return 0, errors.New("connection refused")
}

// With every live source down the comparison is built entirely from the
// fallback table and constant.
func TestCalculate_FullyDegraded(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }
	tbl := fallback.Default()
	opts := pricing.Options{Now: now}
	var log []string
	products := &stubProducts{info: models.ProductInfo{Price: 999, ReleaseDate: "2021-01-01"}, log: &log}

	o := NewOrchestrator(products,
		pricing.NewResolver(downRange{}, tbl, opts),
		pricing.NewCurrentFetcher(downSpot{}, opts),
		pricing.NewSynthesizer(downRange{}, tbl, opts),
	)
	res, err := o.Calculate(context.Background(), "iPhone 12")
	require.NoError(t, err)

	assert.Equal(t, 1.80, res.HistoricalSolPrice)
	assert.Equal(t, 200.00, res.CurrentSolPrice)
	assert.InDelta(t, 555.0, res.SolAmount, 1e-9)
	assert.InDelta(t, 111000.0, res.CurrentValue, 1e-6)
	assert.InDelta(t, 110001.0, res.ProfitLoss, 1e-6)
	assert.InDelta(t, 11011.011, res.ProfitLossPercentage, 1e-3)

	series := res.HistoricalPriceData
	require.NotEmpty(t, series)
	assert.True(t, series.Sorted())
	assert.Equal(t, 1.80, series[0].Price)
	assert.Equal(t, 200.00, series[len(series)-1].Price)
}
