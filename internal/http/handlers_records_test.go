package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestAccountCRUD(t *testing.T) {
	srv := newTestServer(t)

	var created accountPayload
	rec := doJSON(t, srv, http.MethodPost, "/api/accounts",
		`{"name": "Main Checking", "type": "checking", "balance": 2500.50}`, &created)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if created.ID == "" {
		t.Fatal("created account has no ID")
	}
	if created.Balance != 2500.50 {
		t.Errorf("balance = %v, want 2500.50", created.Balance)
	}

	var got accountPayload
	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/"+created.ID, "", &got)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	if got.Name != "Main Checking" || got.Type != "checking" {
		t.Errorf("got %+v, want name and type preserved", got)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/accounts/"+created.ID,
		`{"name": "Main Checking", "type": "checking", "balance": 1800}`, &got)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got.Balance != 1800 {
		t.Errorf("updated balance = %v, want 1800", got.Balance)
	}

	var list []accountPayload
	doJSON(t, srv, http.MethodGet, "/api/accounts", "", &list)
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/accounts/"+created.ID, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/accounts/"+created.ID, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted status = %d, want 404", rec.Code)
	}
}

func TestCreateAccountRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty name", `{"name": "", "type": "checking"}`, http.StatusUnprocessableEntity},
		{"bad type", `{"name": "X", "type": "offshore"}`, http.StatusUnprocessableEntity},
		{"not json", `name=X`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/accounts", tt.body, nil)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestExpenseMarkPaid(t *testing.T) {
	srv := newTestServer(t)

	var fe expensePayload
	rec := doJSON(t, srv, http.MethodPost, "/api/expenses",
		`{"name": "Rent", "amount": 1500, "due_day": 1, "category": "housing", "auto_pay": false}`, &fe)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if fe.PaidMonth != "" {
		t.Errorf("new expense paid_month = %q, want empty", fe.PaidMonth)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/expenses/"+fe.ID+"/paid", `{"paid": true}`, &fe)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark paid status = %d, body %s", rec.Code, rec.Body.String())
	}
	now := time.Now()
	wantMonth := fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
	if fe.PaidMonth != wantMonth {
		t.Errorf("paid_month = %q, want %q", fe.PaidMonth, wantMonth)
	}

	// Decode into a fresh struct: paid_month is omitempty, so the cleared
	// value would otherwise leave the stale month in the reused payload.
	id := fe.ID
	fe = expensePayload{}
	rec = doJSON(t, srv, http.MethodPost, "/api/expenses/"+id+"/paid", `{"paid": false}`, &fe)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark unpaid status = %d", rec.Code)
	}
	if fe.PaidMonth != "" {
		t.Errorf("paid_month after unpaid = %q, want empty", fe.PaidMonth)
	}
}

func TestMarkPaidMissingExpense(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/expenses/no-such-id/paid", `{"paid": true}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var tx transactionPayload
	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"date": "2025-06-10", "amount": 42.75, "category": "groceries", "description": "weekly shop"}`, &tx)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	if tx.Date != "2025-06-10" {
		t.Errorf("date = %q, want 2025-06-10", tx.Date)
	}

	// Date defaults to today when omitted.
	var defaulted transactionPayload
	rec = doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"amount": 10, "category": "misc"}`, &defaulted)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create without date status = %d, body %s", rec.Code, rec.Body.String())
	}
	if defaulted.Date == "" {
		t.Error("transaction without date should default to today")
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"amount": 0, "category": "misc"}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("zero amount status = %d, want 422", rec.Code)
	}

	var list []transactionPayload
	doJSON(t, srv, http.MethodGet, "/api/transactions", "", &list)
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/transactions/"+tx.ID, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestRetirementContributionUpdatesBalance(t *testing.T) {
	srv := newTestServer(t)

	var ra retirementPayload
	rec := doJSON(t, srv, http.MethodPost, "/api/retirement",
		`{"name": "401k", "balance": 10000, "annual_limit": 23000, "contribution_amount": 500}`, &ra)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var c contributionPayload
	rec = doJSON(t, srv, http.MethodPost, "/api/retirement/"+ra.ID+"/contributions",
		`{"date": "2025-06-01", "amount": 500}`, &c)
	if rec.Code != http.StatusCreated {
		t.Fatalf("contribution status = %d, body %s", rec.Code, rec.Body.String())
	}
	if c.Type != "employee" {
		t.Errorf("contribution type = %q, want default employee", c.Type)
	}

	var got retirementPayload
	doJSON(t, srv, http.MethodGet, "/api/retirement/"+ra.ID, "", &got)
	if got.Balance != 10500 {
		t.Errorf("balance after contribution = %v, want 10500", got.Balance)
	}
	if len(got.Contributions) != 1 {
		t.Errorf("contributions length = %d, want 1", len(got.Contributions))
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/retirement/"+ra.ID+"/contributions",
		`{"amount": -5}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative contribution status = %d, want 422", rec.Code)
	}
}
