package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PricePoint is a single SOL/USD sample. It travels as a two-element
// JSON array [timestampMillis, price], the shape the chart consumes.
type PricePoint struct {
	Timestamp int64   // epoch millis
	Price     float64
}

func NewPricePoint(ts time.Time, price float64) PricePoint {
	return PricePoint{Timestamp: ts.UnixMilli(), Price: price}
}

func (p PricePoint) Time() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

func (p PricePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{float64(p.Timestamp), p.Price})
}

func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("price point: %w", err)
	}
	if len(pair) < 2 {
		return fmt.Errorf("price point: expected [timestamp, price], got %d values", len(pair))
	}
	p.Timestamp = int64(pair[0])
	p.Price = pair[1]
	return nil
}

// PriceSeries is a chronological run of price points.
type PriceSeries []PricePoint

// Sorted reports whether timestamps never decrease.
func (s PriceSeries) Sorted() bool {
	for i := 1; i < len(s); i++ {
		if s[i].Timestamp < s[i-1].Timestamp {
			return false
		}
	}
	return true
}

// PriceSnapshot is a live SOL price sample persisted to price_history.
type PriceSnapshot struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Day       string    `json:"day"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}
