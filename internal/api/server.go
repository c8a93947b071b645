package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kjannette/ifsol-backend/internal/imagegen"
	"github.com/kjannette/ifsol-backend/internal/models"
	"github.com/kjannette/ifsol-backend/internal/roast"
)

const (
	maxQueryLimit = 1000
	maxBodyBytes  = 64 << 10
)

var dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Comparer interface {
	Calculate(ctx context.Context, productName string) (*models.ComparisonResult, error)
}

type QuotaChecker interface {
	Check(ctx context.Context) error
}

type RoastGenerator interface {
	Generate(ctx context.Context, in roast.Input) models.Roast
}

type CardRenderer interface {
	Render(c imagegen.Card) ([]byte, error)
}

type ImageStore interface {
	Save(data []byte) (string, error)
	Open(name string) ([]byte, error)
}

type CurrentPricer interface {
	CurrentPrice(ctx context.Context) float64
}

type HistorySource interface {
	History(ctx context.Context, fromDate string) models.PriceSeries
}

// SnapshotStore serves recorded live prices.
type SnapshotStore interface {
	GetByDay(ctx context.Context, day string) ([]models.PriceSnapshot, error)
	GetAvailableDays(ctx context.Context) ([]string, error)
	GetLatest(ctx context.Context) (*models.PriceSnapshot, error)
}

type ComparisonLog interface {
	GetRecent(ctx context.Context, limit int) ([]models.ComparisonRecord, error)
}

// Deps are the collaborators behind the routes. Quota, Snapshots,
// Comparisons and the ping functions are optional.
type Deps struct {
	Comparer     Comparer
	Quota        QuotaChecker
	Roasts       RoastGenerator
	RecentRoasts *roast.Recent
	Renderer     CardRenderer
	Images       ImageStore
	Current      CurrentPricer
	History      HistorySource
	Snapshots    SnapshotStore
	Comparisons  ComparisonLog
	PingDB       func(ctx context.Context) error
	PingRedis    func(ctx context.Context) error
}

type Server struct {
	deps       Deps
	httpServer *http.Server
	apiKey     string
}

func NewServer(deps Deps, port int, apiKey, corsOrigin string) *Server {
	s := &Server{
		deps:   deps,
		apiKey: apiKey,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(corsOrigin),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	return s
}

// Handler returns the full middleware-wrapped route table.
func (s *Server) Handler(corsOrigin string) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/investment/calculate", s.handleCalculate)
	mux.HandleFunc("POST /api/generate-roast", s.handleGenerateRoast)
	mux.HandleFunc("GET /api/generate-roast", s.handleRecentRoasts)
	mux.HandleFunc("POST /api/generate-image", s.handleGenerateImage)
	mux.HandleFunc("POST /api/generate-image/preview", s.handleImagePreview)
	mux.HandleFunc("GET /api/generate-image/preview", s.handleImagePreviewInfo)
	mux.HandleFunc("GET /api/shared-images/{filename}", s.handleSharedImage)
	mux.HandleFunc("GET /api/images", s.handleImageByQuery)

	// Operator routes
	mux.HandleFunc("GET /v1/prices/current", s.handleCurrentPrice)
	mux.HandleFunc("GET /v1/prices/history", s.handlePriceHistory)
	mux.HandleFunc("GET /v1/prices/day/{date}", s.handlePricesByDay)
	mux.HandleFunc("GET /v1/prices/days", s.handleAvailableDays)
	mux.HandleFunc("GET /v1/prices/latest", s.handleLatestPrice)
	mux.HandleFunc("GET /v1/comparisons/recent", s.handleRecentComparisons)

	// Health check (no auth required)
	mux.HandleFunc("GET /health", s.handleHealth)

	return corsMiddleware(s.authMiddleware(mux), corsOrigin)
}

func (s *Server) Start() error {
	fmt.Printf("[API] REST API server started on http://localhost%s\n", s.httpServer.Addr)
	fmt.Printf("[API] Health check: http://localhost%s/health\n", s.httpServer.Addr)
	if s.apiKey != "" {
		fmt.Println("[API] Authentication: enabled for /v1 (Bearer token)")
	} else {
		fmt.Println("[API] Authentication: disabled (no API_KEY configured)")
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

// authMiddleware guards the /v1 operator routes. The /api routes serve the
// public web client and stay open.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || !strings.HasPrefix(r.URL.Path, "/v1/") {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth || token != s.apiKey {
			writeError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- validation helpers ---

func validateDate(date string) bool {
	if !dateRegexp.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func parseLimit(r *http.Request, defaultLimit int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxQueryLimit {
		return maxQueryLimit
	}
	return n
}

// decodeJSON reads a size-limited JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
