package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"connect-four-engine/internal/config"
	"connect-four-engine/internal/handlers"
	"connect-four-engine/internal/kafka"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{Port: "0", StaticDir: t.TempDir()}
	analytics := kafka.NewAnalyticsService(nil, false)
	return newRouter(cfg,
		handlers.NewMoveHandler(analytics),
		handlers.NewStatsHandler(nil),
		handlers.NewLiveHandler(analytics),
	)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("health response is not JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

func TestMoveRoute(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/move?position=B0R3B1R4B2R5&level=8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Column int `json:"column"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("move response is not JSON: %v", err)
	}
	if body.Column != 6 {
		t.Errorf("column = %d, want 6", body.Column)
	}
}

func TestCORSHeaders(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", origin)
	}

	// Preflight short-circuits inside the middleware.
	req = httptest.NewRequest("OPTIONS", "/", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("preflight status = %d, want 200", rec.Code)
	}
}

func TestStatsRouteWithoutDatabase(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
