package api

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Services  healthServices `json:"services"`
}

type healthServices struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: healthServices{
			Database: pingStatus(r.Context(), s.deps.PingDB),
			Redis:    pingStatus(r.Context(), s.deps.PingRedis),
		},
	})
}

func pingStatus(ctx context.Context, ping func(context.Context) error) string {
	if ping == nil {
		return "disabled"
	}
	if err := ping(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}
