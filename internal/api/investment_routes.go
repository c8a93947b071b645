package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/kjannette/ifsol-backend/internal/investment"
	"github.com/kjannette/ifsol-backend/internal/quota"
)

type calculateRequest struct {
	ProductName string `json:"productName"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(w, r, &req); err != nil || strings.TrimSpace(req.ProductName) == "" {
		writeError(w, http.StatusBadRequest, "Product name is required")
		return
	}

	ctx := r.Context()
	if s.deps.Quota != nil {
		if err := s.deps.Quota.Check(ctx); err != nil {
			fmt.Printf("[API] Comparison refused: %v\n", err)
			if errors.Is(err, quota.ErrLimitReached) {
				writeError(w, http.StatusTooManyRequests, "Daily comparison limit reached, try again tomorrow")
				return
			}
			writeError(w, http.StatusServiceUnavailable, "Comparison quota unavailable")
			return
		}
	}

	result, err := s.deps.Comparer.Calculate(ctx, req.ProductName)
	if errors.Is(err, investment.ErrMissingProductName) {
		writeError(w, http.StatusBadRequest, "Product name is required")
		return
	}
	if err != nil {
		fmt.Printf("[API] Error calculating investment for %q: %v\n", req.ProductName, err)
		writeError(w, http.StatusInternalServerError, "Failed to calculate investment comparison")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
