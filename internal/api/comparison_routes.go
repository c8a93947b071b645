package api

import (
	"fmt"
	"net/http"

	"github.com/kjannette/ifsol-backend/internal/models"
)

func (s *Server) handleRecentComparisons(w http.ResponseWriter, r *http.Request) {
	if s.deps.Comparisons == nil {
		writeError(w, http.StatusServiceUnavailable, "comparison history requires DB_ENABLED=true")
		return
	}
	recs, err := s.deps.Comparisons.GetRecent(r.Context(), parseLimit(r, 20))
	if err != nil {
		fmt.Printf("Error fetching recent comparisons: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch comparisons")
		return
	}
	if recs == nil {
		recs = []models.ComparisonRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}
