package worker

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets/memory"
)

type statsUpdate struct {
	avg        float64
	variance   float64
	count      int
	isVariable bool
}

type fakeStore struct {
	incomes map[string]core.IncomeSource
	snap    core.Snapshot
	updates map[string]statsUpdate
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		incomes: make(map[string]core.IncomeSource),
		updates: make(map[string]statsUpdate),
	}
}

func (f *fakeStore) GetIncome(_ context.Context, id string) (core.IncomeSource, error) {
	inc, ok := f.incomes[id]
	if !ok {
		return core.IncomeSource{}, core.ErrNotFound
	}
	return inc, nil
}

func (f *fakeStore) ListIncomes(_ context.Context) ([]core.IncomeSource, error) {
	var out []core.IncomeSource
	for _, inc := range f.incomes {
		out = append(out, inc)
	}
	return out, nil
}

func (f *fakeStore) UpdateIncomeStats(_ context.Context, id string, avg, variance float64, count int, isVariable bool) error {
	if _, ok := f.incomes[id]; !ok {
		return core.ErrNotFound
	}
	f.updates[id] = statsUpdate{avg: avg, variance: variance, count: count, isVariable: isVariable}
	return nil
}

func (f *fakeStore) Snapshot(_ context.Context, at core.Date) (core.Snapshot, error) {
	snap := f.snap
	snap.TakenAt = at
	return snap, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)
}

func TestHandleRecomputeMessage(t *testing.T) {
	store := newFakeStore()
	store.incomes["inc-1"] = core.IncomeSource{
		ID:        "inc-1",
		Name:      "Salary",
		Amount:    2500,
		Frequency: core.Monthly,
		Payments: []core.ActualPayment{
			{ID: "p1", Date: core.NewDate(2025, 6, 5), Amount: 2700},
			{ID: "p2", Date: core.NewDate(2025, 7, 5), Amount: 2730},
			{ID: "p3", Date: core.NewDate(2025, 8, 5), Amount: 2715},
		},
	}

	w := New(store, nil)
	w.now = fixedNow

	msg := amqp.NewIncomeRecomputeMessage("inc-1", amqp.ReasonPaymentAdded)
	if err := w.HandleRecomputeMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleRecomputeMessage returned error: %v", err)
	}

	up, ok := store.updates["inc-1"]
	if !ok {
		t.Fatalf("expected stats update for inc-1")
	}
	if up.avg < 2714.99 || up.avg > 2715.01 {
		t.Fatalf("expected average 2715, got %.2f", up.avg)
	}
	if up.count != 3 {
		t.Fatalf("expected payment count 3, got %d", up.count)
	}
	if up.isVariable {
		t.Fatalf("steady payments should not flag variable")
	}
}

func TestHandleRecomputeMessageMissingSource(t *testing.T) {
	store := newFakeStore()
	w := New(store, nil)
	w.now = fixedNow

	msg := amqp.NewIncomeRecomputeMessage("gone", amqp.ReasonPaymentDeleted)
	if err := w.HandleRecomputeMessage(context.Background(), msg); err != nil {
		t.Fatalf("missing source should not error, got: %v", err)
	}
	if len(store.updates) != 0 {
		t.Fatalf("expected no stats updates, got %d", len(store.updates))
	}
}

func TestRecomputeAll(t *testing.T) {
	store := newFakeStore()
	store.incomes["inc-1"] = core.IncomeSource{
		ID: "inc-1", Name: "Salary", Amount: 3000, Frequency: core.Monthly,
	}
	store.incomes["inc-2"] = core.IncomeSource{
		ID: "inc-2", Name: "Side gig", Amount: 500, Frequency: core.Monthly,
	}

	w := New(store, nil)
	w.now = fixedNow

	if err := w.RecomputeAll(context.Background()); err != nil {
		t.Fatalf("RecomputeAll returned error: %v", err)
	}
	if len(store.updates) != 2 {
		t.Fatalf("expected 2 stats updates, got %d", len(store.updates))
	}
	// no payments means cold start: declared amount stands in
	if up := store.updates["inc-1"]; up.avg != 3000 {
		t.Fatalf("expected cold start average 3000, got %.2f", up.avg)
	}
}

func TestExportReport(t *testing.T) {
	store := newFakeStore()
	store.snap = core.Snapshot{
		Accounts: []core.Account{
			{ID: "a1", Name: "Checking", Type: core.AccountChecking, Balance: 3000},
		},
		Incomes: []core.IncomeSource{
			{ID: "inc-1", Name: "Salary", Amount: 3000, Frequency: core.Monthly},
		},
		Expenses: []core.FixedExpense{
			{ID: "e1", Name: "Rent", Amount: 1000, DueDay: 25, Category: "Housing"},
		},
	}

	reports := memory.New()
	w := New(store, reports)
	w.now = fixedNow

	if err := w.ExportReport(context.Background()); err != nil {
		t.Fatalf("ExportReport returned error: %v", err)
	}

	got := reports.Reports()
	if len(got) != 1 {
		t.Fatalf("expected 1 report, got %d", len(got))
	}
	r := got[0]
	if r.Month != "2025-09" {
		t.Fatalf("expected month 2025-09, got %s", r.Month)
	}
	if r.TotalIncome != 3000 {
		t.Fatalf("expected total income 3000, got %.2f", r.TotalIncome)
	}
	if r.TotalSpending != 0 {
		t.Fatalf("expected no spending, got %.2f", r.TotalSpending)
	}
	if r.Available != 2000 {
		t.Fatalf("expected available 2000, got %.2f", r.Available)
	}
	if r.Grade == "" {
		t.Fatalf("expected a letter grade")
	}
}

func TestExportReportWithoutWriter(t *testing.T) {
	w := New(newFakeStore(), nil)
	w.now = fixedNow

	if err := w.ExportReport(context.Background()); err != nil {
		t.Fatalf("export without writer should be a no-op, got: %v", err)
	}
}
