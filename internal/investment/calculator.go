// Package investment compares a purchase against buying SOL with the same
// money on the same date.
package investment

// Figures are the derived values of a comparison.
type Figures struct {
	SolAmount            float64
	CurrentValue         float64
	ProfitLoss           float64
	ProfitLossPercentage float64
}

// Compute derives the comparison figures. Prices are assumed positive.
//
//	solAmount            = productPrice / historicalPrice
//	currentValue         = solAmount * currentPrice
//	profitLoss           = currentValue - productPrice
//	profitLossPercentage = profitLoss / productPrice * 100
func Compute(productPrice, historicalPrice, currentPrice float64) Figures {
	solAmount := productPrice / historicalPrice
	currentValue := solAmount * currentPrice
	profitLoss := currentValue - productPrice
	return Figures{
		SolAmount:            solAmount,
		CurrentValue:         currentValue,
		ProfitLoss:           profitLoss,
		ProfitLossPercentage: profitLoss / productPrice * 100,
	}
}
