package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	c := cache.NewLRUCache[any](16, time.Minute)
	analyticsSvc := services.NewAnalyticsService(repo, c)
	records := services.NewRecordService(repo, analyticsSvc.Invalidate)
	incomes := services.NewIncomeService(repo, nil, analyticsSvc.Invalidate)

	srv := NewServer(":0", records, incomes, analyticsSvc, repo.Ping, nil)
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv
}

// doJSON runs a request against the server mux and decodes the JSON response
// into out when it is non-nil.
func doJSON(t *testing.T, srv *Server, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	rec := doJSON(t, srv, http.MethodGet, "/healthz", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("healthz status field = %v, want ok", body["status"])
	}
}

func TestReadyEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	rec := doJSON(t, srv, http.MethodGet, "/readyz", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz status = %d, want 200", rec.Code)
	}
	if body["status"] != "ready" {
		t.Errorf("readyz status field = %v, want ready", body["status"])
	}
	checks, ok := body["checks"].(map[string]any)
	if !ok {
		t.Fatalf("readyz checks missing: %v", body)
	}
	if checks["storage"] != "ok" {
		t.Errorf("storage check = %v, want ok", checks["storage"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodGet, "/api/accounts", "", nil)

	rec := doJSON(t, srv, http.MethodGet, "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", rec.Code)
	}
	out := rec.Body.String()
	for _, metric := range []string{"http_requests_total", "record_writes_total", "rate_limit_hits_total", "uptime_seconds"} {
		if !strings.Contains(out, metric) {
			t.Errorf("metrics output missing %s", metric)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/accounts", "", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := &rateLimiter{
		clients: make(map[string]*clientInfo),
		limit:   3,
	}
	metrics := &securityMetrics{}

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1", metrics) {
			t.Fatalf("request %d unexpectedly limited", i+1)
		}
	}
	if rl.allow("10.0.0.1", metrics) {
		t.Error("request over limit was allowed")
	}
	if metrics.rateLimitHits != 1 {
		t.Errorf("rateLimitHits = %d, want 1", metrics.rateLimitHits)
	}

	// A different client has its own counter.
	if !rl.allow("10.0.0.2", metrics) {
		t.Error("fresh client was limited")
	}

	if rl.activeClients() != 2 {
		t.Errorf("activeClients = %d, want 2", rl.activeClients())
	}
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "direct connection",
			remoteAddr: "203.0.113.7:4321",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded through trusted proxy",
			remoteAddr: "127.0.0.1:4321",
			xff:        "203.0.113.7, 10.0.0.1",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded header from untrusted peer ignored",
			remoteAddr: "203.0.113.9:4321",
			xff:        "198.51.100.1",
			want:       "203.0.113.9",
		},
		{
			name:       "real ip from trusted proxy",
			remoteAddr: "192.168.1.10:4321",
			xri:        "203.0.113.7",
			want:       "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Errorf("extractClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectSuspiciousRequest(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"normal api path", "/api/accounts", false},
		{"path traversal", "/api/../../etc/passwd", true},
		{"env probe", "/.env", true},
		{"wordpress probe", "/wp-admin/setup.php", true},
		{"dashboard read", "/api/dashboard/health-score", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			metrics := &securityMetrics{}
			if got := detectSuspiciousRequest(req, metrics); got != tt.want {
				t.Errorf("detectSuspiciousRequest(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", rec.Code)
	}
}
