// Package report prints comparison results for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/kjannette/ifsol-backend/internal/models"
)

// Failure is a product whose comparison could not be computed.
type Failure struct {
	ProductName string
	Err         error
}

// WriteComparisons renders one row per result, followed by any failures.
func WriteComparisons(w io.Writer, results []*models.ComparisonResult, failures []Failure) {
	table := tablewriter.NewWriter(w)
	table.Header("Product", "Bought", "Price", "SOL then", "SOL now", "SOL", "Worth now", "P/L", "P/L %")

	for _, r := range results {
		table.Append(
			r.ProductName,
			r.ReleaseDate,
			usd(r.ProductPrice),
			usd(r.HistoricalSolPrice),
			usd(r.CurrentSolPrice),
			decimal.NewFromFloat(r.SolAmount).StringFixed(3),
			usd(r.CurrentValue),
			signedUSD(r.ProfitLoss),
			decimal.NewFromFloat(r.ProfitLossPercentage).StringFixed(2)+"%",
		)
	}
	table.Render()

	for _, f := range failures {
		fmt.Fprintf(w, "  %s: %v\n", f.ProductName, f.Err)
	}
}

func usd(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func signedUSD(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "+$" + d.StringFixed(2)
}
