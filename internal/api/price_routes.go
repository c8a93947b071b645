package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kjannette/ifsol-backend/internal/models"
)

type priceJSON struct {
	T int64   `json:"t"`
	P float64 `json:"p"`
}

func (s *Server) handleCurrentPrice(w http.ResponseWriter, r *http.Request) {
	p := s.deps.Current.CurrentPrice(r.Context())
	writeJSON(w, http.StatusOK, priceJSON{T: time.Now().UnixMilli(), P: p})
}

func (s *Server) handlePriceHistory(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if !validateDate(from) {
		writeError(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		return
	}
	writeJSON(w, http.StatusOK, s.deps.History.History(r.Context(), from))
}

func (s *Server) handlePricesByDay(w http.ResponseWriter, r *http.Request) {
	if !s.requireSnapshots(w) {
		return
	}
	date := r.PathValue("date")
	if !validateDate(date) {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	prices, err := s.deps.Snapshots.GetByDay(ctx, date)
	if err != nil {
		fmt.Printf("Error fetching prices for %s: %v\n", date, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch prices")
		return
	}
	writeJSON(w, http.StatusOK, toPriceJSON(prices))
}

func (s *Server) handleAvailableDays(w http.ResponseWriter, r *http.Request) {
	if !s.requireSnapshots(w) {
		return
	}
	days, err := s.deps.Snapshots.GetAvailableDays(r.Context())
	if err != nil {
		fmt.Printf("Error fetching available days: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch available days")
		return
	}
	if days == nil {
		days = []string{}
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleLatestPrice(w http.ResponseWriter, r *http.Request) {
	if !s.requireSnapshots(w) {
		return
	}
	price, err := s.deps.Snapshots.GetLatest(r.Context())
	if err != nil {
		fmt.Printf("Error fetching latest price: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch latest price")
		return
	}
	if price == nil {
		writeError(w, http.StatusNotFound, "no price data available")
		return
	}
	writeJSON(w, http.StatusOK, priceJSON{T: price.Timestamp.UnixMilli(), P: price.Price})
}

func (s *Server) requireSnapshots(w http.ResponseWriter) bool {
	if s.deps.Snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "price snapshots require DB_ENABLED=true")
		return false
	}
	return true
}

func toPriceJSON(snaps []models.PriceSnapshot) []priceJSON {
	out := make([]priceJSON, len(snaps))
	for i, p := range snaps {
		out[i] = priceJSON{T: p.Timestamp.UnixMilli(), P: p.Price}
	}
	return out
}
