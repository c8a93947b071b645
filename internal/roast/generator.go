// Package roast writes the one-paragraph verdict shown next to a
// comparison, roasting the user when SOL would have won and flattering
// them when it would have lost.
package roast

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kjannette/ifsol-backend/internal/external"
	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/shopspring/decimal"
)

const (
	temperature = 1.0
	maxTokens   = 150
)

var emphasis = regexp.MustCompile(`\*([^*]+)\*`)

// Input is the comparison a roast is written about.
type Input struct {
	ProductName          string  `json:"productName"`
	ProductPrice         float64 `json:"productPrice"`
	ReleaseDate          string  `json:"releaseDate"`
	HistoricalSolPrice   float64 `json:"historicalSolPrice"`
	CurrentValue         float64 `json:"currentValue"`
	ProfitLoss           float64 `json:"profitLoss"`
	ProfitLossPercentage float64 `json:"profitLossPercentage"`
}

type Generator struct {
	llm    external.Completer
	recent *Recent
	pick   func(n int) int
	now    func() time.Time
}

func NewGenerator(llm external.Completer, recent *Recent) *Generator {
	return &Generator{
		llm:    llm,
		recent: recent,
		pick:   rand.IntN,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Generate never fails: when the LLM is unavailable the roast is a fixed
// text built from the numbers.
func (g *Generator) Generate(ctx context.Context, in Input) models.Roast {
	text, err := g.complete(ctx, in)
	if err != nil {
		fmt.Printf("[ROAST] LLM failed for %q, using fallback: %v\n", in.ProductName, err)
		text = FallbackText(in)
	}

	r := models.Roast{
		ID:          uuid.New(),
		ProductName: in.ProductName,
		Text:        text,
		CreatedAt:   g.now(),
	}
	if g.recent != nil {
		g.recent.Push(r)
	}
	return r
}

func (g *Generator) complete(ctx context.Context, in Input) (string, error) {
	if g.llm == nil {
		return "", external.ErrLLMNotConfigured
	}

	f := format(in)
	var system, user string
	if f.gain {
		system, user = savagePrompt(f, g.pick)
	} else {
		system, user = flatteringPrompt(f, g.pick)
	}

	reply, err := g.llm.Complete(ctx, external.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	text := StripEmphasis(strings.TrimSpace(reply))
	if text == "" {
		return "", fmt.Errorf("%w: empty roast", external.ErrMalformedPayload)
	}
	return text, nil
}

// StripEmphasis removes markdown *emphasis* markers, keeping the text.
func StripEmphasis(s string) string {
	return emphasis.ReplaceAllString(s, "$1")
}

// FallbackText is the roast served when the LLM cannot be reached.
func FallbackText(in Input) string {
	product := in.ProductName
	if strings.TrimSpace(product) == "" {
		product = "that thing"
	}
	f := format(in)
	outcome := "loss"
	if f.gain {
		outcome = "gain"
	}
	return fmt.Sprintf("Congratulations on flushing $%s into the overpriced %s pit, because who needs smart investments when you can have a shiny rectangle! "+
		"Instead of buying %s in %s, that money could have bought you SOL when it was just $%s, a crypto fortune worth $%s today. "+
		"Instead, you've gifted yourself an impressive %s$%s %s, a staggering %s%% change in your financial sanity. "+
		"Bravo! Enjoy your new paperweight while the rest of us ride the Solana wave!",
		f.price, product,
		product, f.date, f.historical, f.value,
		f.sign, f.absPL, outcome, f.pct)
}

func format(in Input) figures {
	var solAmount decimal.Decimal
	if in.HistoricalSolPrice > 0 {
		solAmount = decimal.NewFromFloat(in.ProductPrice).Div(decimal.NewFromFloat(in.HistoricalSolPrice))
	}
	pl := decimal.NewFromFloat(in.ProfitLoss)
	pct := decimal.NewFromFloat(in.ProfitLossPercentage)

	sign := ""
	if !pl.IsNegative() {
		sign = "+"
	}
	return figures{
		product:    in.ProductName,
		date:       FormatPurchaseDate(in.ReleaseDate),
		price:      money(in.ProductPrice),
		historical: money(in.HistoricalSolPrice),
		solAmount:  solAmount.StringFixed(2),
		value:      money(in.CurrentValue),
		absPL:      pl.Abs().StringFixed(2),
		sign:       sign,
		pct:        pct.StringFixed(2),
		absPct:     pct.Abs().StringFixed(2),
		gain:       !pl.IsNegative(),
	}
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
