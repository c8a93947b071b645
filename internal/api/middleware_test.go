package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		apiKey string
		path   string
		auth   string
		want   int
	}{
		{"no key configured", "", "/v1/comparisons/recent", "", http.StatusOK},
		{"health is public", "secret123", "/health", "", http.StatusOK},
		{"calculate is public", "secret123", "/api/investment/calculate", "", http.StatusOK},
		{"shared images are public", "secret123", "/api/shared-images/a.png", "", http.StatusOK},
		{"missing header", "secret123", "/v1/prices/latest", "", http.StatusUnauthorized},
		{"wrong key", "secret123", "/v1/prices/latest", "Bearer wrong_key", http.StatusUnauthorized},
		{"not bearer", "secret123", "/v1/prices/latest", "Basic secret123", http.StatusUnauthorized},
		{"correct key", "secret123", "/v1/prices/latest", "Bearer secret123", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Server{apiKey: tc.apiKey}
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", tc.auth)
			}
			rr := httptest.NewRecorder()
			s.authMiddleware(okHandler()).ServeHTTP(rr, req)

			if rr.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rr.Code)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	for _, d := range []string{"2024-01-15", "2025-12-31", "2020-02-29"} {
		if !validateDate(d) {
			t.Fatalf("expected %q to be valid", d)
		}
	}

	invalid := []string{
		"", "2024", "01-15-2024", "2024/01/15",
		"abcd-ef-gh", "2024-13-01", "2024-01-32",
		"2024-1-5", "20240115", "2023-02-29",
	}
	for _, d := range invalid {
		if validateDate(d) {
			t.Fatalf("expected %q to be invalid", d)
		}
	}
}

func TestParseLimit(t *testing.T) {
	cases := []struct {
		query    string
		deflt    int
		expected int
	}{
		{"", 20, 20},
		{"?limit=50", 20, 50},
		{"?limit=0", 20, 20},
		{"?limit=-5", 20, 20},
		{"?limit=abc", 20, 20},
		{"?limit=2000", 20, maxQueryLimit},
		{"?limit=1", 20, 1},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/v1/comparisons/recent"+tc.query, nil)
		if got := parseLimit(req, tc.deflt); got != tc.expected {
			t.Fatalf("parseLimit(%q, %d) = %d, want %d", tc.query, tc.deflt, got, tc.expected)
		}
	}
}

func TestCorsMiddleware(t *testing.T) {
	handler := corsMiddleware(okHandler(), "https://ifsol.example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/investment/calculate", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://ifsol.example.com" {
		t.Fatalf("expected custom origin, got %q", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Fatalf("unexpected methods %q", got)
	}
}

func TestHandler_PreflightSkipsAuth(t *testing.T) {
	s := &Server{apiKey: "secret123"}
	handler := s.Handler("")

	req := httptest.NewRequest(http.MethodOptions, "/v1/prices/current", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}
