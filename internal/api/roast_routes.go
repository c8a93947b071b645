package api

import (
	"net/http"

	"github.com/kjannette/ifsol-backend/internal/roast"
)

type roastResponse struct {
	RoastText string `json:"roastText"`
}

type recentRoastJSON struct {
	ProductName string `json:"productName"`
	RoastText   string `json:"roastText"`
	Timestamp   int64  `json:"timestamp"`
}

// handleGenerateRoast always answers 200; an unreadable body gets the
// fallback roast.
func (s *Server) handleGenerateRoast(w http.ResponseWriter, r *http.Request) {
	var in roast.Input
	if err := decodeJSON(w, r, &in); err != nil {
		writeJSON(w, http.StatusOK, roastResponse{RoastText: roast.FallbackText(roast.Input{})})
		return
	}
	rt := s.deps.Roasts.Generate(r.Context(), in)
	writeJSON(w, http.StatusOK, roastResponse{RoastText: rt.Text})
}

func (s *Server) handleRecentRoasts(w http.ResponseWriter, r *http.Request) {
	out := []recentRoastJSON{}
	if s.deps.RecentRoasts != nil {
		for _, rt := range s.deps.RecentRoasts.Snapshot() {
			out = append(out, recentRoastJSON{
				ProductName: rt.ProductName,
				RoastText:   rt.Text,
				Timestamp:   rt.CreatedAt.UnixMilli(),
			})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recentRoasts": out})
}
