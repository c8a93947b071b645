package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductInfo is what the product-info resolver estimates for a free-text purchase.
type ProductInfo struct {
	Price        float64 `json:"price"`
	ReleaseDate  string  `json:"releaseDate"`
	ReleaseMonth string  `json:"releaseMonth,omitempty"`
}

// ComparisonResult is the response body of a comparison request.
type ComparisonResult struct {
	ProductName          string      `json:"productName"`
	ProductPrice         float64     `json:"productPrice"`
	ReleaseDate          string      `json:"releaseDate"`
	HistoricalSolPrice   float64     `json:"historicalSolPrice"`
	CurrentSolPrice      float64     `json:"currentSolPrice"`
	SolAmount            float64     `json:"solAmount"`
	CurrentValue         float64     `json:"currentValue"`
	ProfitLoss           float64     `json:"profitLoss"`
	ProfitLossPercentage float64     `json:"profitLossPercentage"`
	HistoricalPriceData  PriceSeries `json:"historicalPriceData"`
}

// ComparisonRecord is the persisted summary of a ComparisonResult.
// The history series is not stored.
type ComparisonRecord struct {
	ID                   uuid.UUID `json:"id"`
	ProductName          string    `json:"productName"`
	ProductPrice         float64   `json:"productPrice"`
	ReleaseDate          string    `json:"releaseDate"`
	HistoricalSolPrice   float64   `json:"historicalSolPrice"`
	CurrentSolPrice      float64   `json:"currentSolPrice"`
	SolAmount            float64   `json:"solAmount"`
	CurrentValue         float64   `json:"currentValue"`
	ProfitLoss           float64   `json:"profitLoss"`
	ProfitLossPercentage float64   `json:"profitLossPercentage"`
	CreatedAt            time.Time `json:"createdAt"`
}

func NewComparisonRecord(r *ComparisonResult) *ComparisonRecord {
	return &ComparisonRecord{
		ID:                   uuid.New(),
		ProductName:          r.ProductName,
		ProductPrice:         r.ProductPrice,
		ReleaseDate:          r.ReleaseDate,
		HistoricalSolPrice:   r.HistoricalSolPrice,
		CurrentSolPrice:      r.CurrentSolPrice,
		SolAmount:            r.SolAmount,
		CurrentValue:         r.CurrentValue,
		ProfitLoss:           r.ProfitLoss,
		ProfitLossPercentage: r.ProfitLossPercentage,
		CreatedAt:            time.Now().UTC(),
	}
}
