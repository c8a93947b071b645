package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kjannette/ifsol-backend/internal/models"
)

// ErrProductInfo wraps every product-info resolution failure.
var ErrProductInfo = errors.New("failed to get product information")

const productInfoSystemPrompt = `You are a helpful assistant that provides accurate information about any type of expense. ` +
	`For consumer products, provide release date and retail price. For trips, experiences, or general expenses, ` +
	`estimate the typical cost and when they likely occurred based on the description. ` +
	`Pay special attention to any date or time references provided. ` +
	`Respond only with the requested JSON format without any markdown formatting, code blocks, or backticks.`

const productInfoPrompt = `I need to evaluate an expense: %q.
Please provide:
1. The estimated cost in USD (average price if it's a trip, experience, or any other expense)
2. When this occurred or would have occurred (provide the most accurate date)

For specific products, use the release date and price.
For trips or holiday packages, estimate the typical cost and use:
  - If a specific date is mentioned (like "sept 2022"), use that exact date
  - If a season is mentioned, use the middle of that season in that year
  - If no date is specified, estimate a reasonable date based on context

Return the answer in this JSON format only:
{"price": number, "releaseDate": "YYYY-MM-DD", "releaseMonth": "Month YYYY"}`

var (
	fencedJSON = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")
	bareJSON   = regexp.MustCompile(`(\{[\s\S]*?\})`)
)

// ProductInfoResolver asks the LLM for a product's price and purchase date.
type ProductInfoResolver struct {
	llm Completer
}

func NewProductInfoResolver(llm Completer) *ProductInfoResolver {
	return &ProductInfoResolver{llm: llm}
}

func (r *ProductInfoResolver) Resolve(ctx context.Context, productName string) (models.ProductInfo, error) {
	content, err := r.llm.Complete(ctx, CompletionRequest{
		System:      productInfoSystemPrompt,
		User:        fmt.Sprintf(productInfoPrompt, productName),
		Temperature: 0.5,
	})
	if err != nil {
		return models.ProductInfo{}, fmt.Errorf("%w: %v", ErrProductInfo, err)
	}

	raw := extractJSON(content)
	fmt.Printf("[LLM] Extracted JSON content: %s\n", raw)

	var info models.ProductInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		fmt.Printf("[LLM] Raw content: %s\n", content)
		return models.ProductInfo{}, fmt.Errorf("%w: parse reply: %v", ErrProductInfo, err)
	}
	if info.Price <= 0 {
		return models.ProductInfo{}, fmt.Errorf("%w: non-positive price %.2f", ErrProductInfo, info.Price)
	}
	if _, err := models.ParseDate(info.ReleaseDate); err != nil {
		return models.ProductInfo{}, fmt.Errorf("%w: %v", ErrProductInfo, err)
	}
	return info, nil
}

// extractJSON pulls the JSON object out of an LLM reply: a fenced block
// first, then the first bare object, else the trimmed reply.
func extractJSON(content string) string {
	if content == "" {
		return "{}"
	}
	if m := fencedJSON.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := bareJSON.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(content)
}
