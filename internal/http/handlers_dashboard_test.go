package http

import (
	"net/http"
	"testing"
)

// seedDashboardData creates a small but complete household through the API.
func seedDashboardData(t *testing.T, srv *Server) {
	t.Helper()

	seeds := []struct {
		path string
		body string
	}{
		{"/api/accounts", `{"name": "Checking", "type": "checking", "balance": 3000}`},
		{"/api/accounts", `{"name": "Savings", "type": "savings", "balance": 5000}`},
		{"/api/income", `{"name": "Salary", "amount": 3000, "frequency": "monthly"}`},
		{"/api/expenses", `{"name": "Rent", "amount": 1000, "due_day": 25, "category": "housing"}`},
	}
	for _, s := range seeds {
		rec := doJSON(t, srv, http.MethodPost, s.path, s.body, nil)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed %s status = %d, body %s", s.path, rec.Code, rec.Body.String())
		}
	}
}

func TestDashboardEndpointsRespond(t *testing.T) {
	srv := newTestServer(t)
	seedDashboardData(t, srv)

	paths := []string{
		"/api/dashboard/health-score",
		"/api/dashboard/spending-velocity",
		"/api/dashboard/spending-patterns",
		"/api/dashboard/recommendations",
		"/api/dashboard/available-spending",
		"/api/dashboard/overdraft-status",
		"/api/dashboard/upcoming-bills",
		"/api/dashboard/projected-balance",
		"/api/dashboard/month-comparison",
	}
	for _, path := range paths {
		rec := doJSON(t, srv, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, body %s", path, rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("GET %s content type = %q", path, ct)
		}
	}
}

func TestDashboardHealthScore(t *testing.T) {
	srv := newTestServer(t)
	seedDashboardData(t, srv)

	var body map[string]any
	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard/health-score", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	score, ok := body["score"].(float64)
	if !ok {
		t.Fatalf("score missing from %v", body)
	}
	if score < 0 || score > 100 {
		t.Errorf("score = %v, want 0..100", score)
	}
	if grade, _ := body["grade"].(string); grade == "" {
		t.Error("grade is empty")
	}
	if body["has_data"] != true {
		t.Errorf("has_data = %v, want true", body["has_data"])
	}
}

func TestDashboardAvailableSpending(t *testing.T) {
	srv := newTestServer(t)
	seedDashboardData(t, srv)

	var body map[string]any
	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard/available-spending", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["total_income"] != float64(3000) {
		t.Errorf("total_income = %v, want 3000", body["total_income"])
	}
	if body["total_committed"] != float64(1000) {
		t.Errorf("total_committed = %v, want 1000", body["total_committed"])
	}
	if body["available"] != float64(2000) {
		t.Errorf("available = %v, want 2000", body["available"])
	}
}

func TestDashboardReflectsMutations(t *testing.T) {
	srv := newTestServer(t)
	seedDashboardData(t, srv)

	var before map[string]any
	doJSON(t, srv, http.MethodGet, "/api/dashboard/available-spending", "", &before)
	if before["available"] != float64(2000) {
		t.Fatalf("available before = %v, want 2000", before["available"])
	}

	// A new bill must invalidate the cached analysis.
	rec := doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"name": "Internet", "amount": 80, "due_day": 5, "category": "utilities"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create expense status = %d", rec.Code)
	}

	var after map[string]any
	doJSON(t, srv, http.MethodGet, "/api/dashboard/available-spending", "", &after)
	if after["available"] != float64(1920) {
		t.Errorf("available after new bill = %v, want 1920", after["available"])
	}
}

func TestDashboardMonthComparison(t *testing.T) {
	srv := newTestServer(t)
	seedDashboardData(t, srv)

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"amount": 120, "category": "groceries", "description": "weekly shop"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction status = %d", rec.Code)
	}

	var body map[string]any
	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard/month-comparison", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["has_data"] != true {
		t.Errorf("has_data = %v, want true", body["has_data"])
	}
	cur, ok := body["current_month"].(map[string]any)
	if !ok || cur["month_name"] == "" {
		t.Fatalf("current_month = %v", body["current_month"])
	}
	spending, ok := body["spending"].(map[string]any)
	if !ok {
		t.Fatalf("spending missing from %v", body)
	}
	if spending["current"] != float64(120) {
		t.Errorf("current spending = %v, want 120", spending["current"])
	}
}

func TestDashboardEmptyState(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]any
	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard/health-score", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["has_data"] != false {
		t.Errorf("empty store has_data = %v, want false", body["has_data"])
	}
}
