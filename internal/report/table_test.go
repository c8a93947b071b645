package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjannette/ifsol-backend/internal/models"
)

func TestWriteComparisons(t *testing.T) {
	var buf bytes.Buffer
	WriteComparisons(&buf, []*models.ComparisonResult{{
		ProductName:          "iPhone 12",
		ReleaseDate:          "2020-10-23",
		ProductPrice:         999,
		HistoricalSolPrice:   1.8,
		CurrentSolPrice:      200,
		SolAmount:            555,
		CurrentValue:         111000,
		ProfitLoss:           110001,
		ProfitLossPercentage: 11011.011,
	}}, []Failure{{ProductName: "mystery box", Err: errors.New("failed to get product information")}})

	out := buf.String()
	for _, want := range []string{"iPhone 12", "$999.00", "$1.80", "555.000", "$111000.00", "+$110001.00", "11011.01%", "mystery box: failed to get product information"} {
		assert.Contains(t, out, want)
	}
}

func TestSignedUSD(t *testing.T) {
	assert.Equal(t, "-$12.50", signedUSD(-12.5))
	assert.Equal(t, "+$0.00", signedUSD(0))
}
