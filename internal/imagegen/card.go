package imagegen

import (
	"strings"

	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Card is the data printed on a shareable result image.
type Card struct {
	ProductName  string  `json:"productName"`
	ReleaseDate  string  `json:"releaseDate"`
	ProductPrice float64 `json:"productPrice"`
	SolAmount    float64 `json:"solAmount"`
	CurrentValue float64 `json:"currentValue"`
	DarkMode     bool    `json:"isDarkMode"`
}

// Segments is the body sentence of the card.
func (c Card) Segments() []Segment {
	return []Segment{
		{Text: "on "},
		{Text: formatMonth(c.ReleaseDate), Highlight: true},
		{Text: ", instead of spending"},
		{Text: " $" + formatMoney(c.ProductPrice), Highlight: true},
		{Text: " on a "},
		{Text: c.ProductName, Highlight: true},
		{Text: ","},
		{Text: " I would have "},
		{Text: formatSol(c.SolAmount), Highlight: true},
		{Text: " SOL that would be worth "},
		{Text: "$" + formatMoney(c.CurrentValue), Highlight: true},
		{Text: " today."},
	}
}

func formatMonth(s string) string {
	t, err := models.ParseDate(s)
	if err != nil {
		return "unknown date"
	}
	return t.Format("January 2006")
}

// formatMoney renders v with two decimals and thousands separators.
func formatMoney(v float64) string {
	return groupThousands(decimal.NewFromFloat(v).StringFixed(2))
}

// formatSol renders v with at most three decimals.
func formatSol(v float64) string {
	return groupThousands(decimal.NewFromFloat(v).Round(3).String())
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}
