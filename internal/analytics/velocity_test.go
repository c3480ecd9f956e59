package analytics

import (
	"testing"

	"fintrack/internal/core"
)

func velocitySnap(day int, mtd float64) core.Snapshot {
	snap := snapAt(2025, 9, day)
	snap.Incomes = []core.IncomeSource{
		{Name: "Salary", Amount: 3000, Frequency: core.Monthly},
	}
	if mtd > 0 {
		snap.Transactions = []core.Transaction{tx(2025, 9, day, mtd, "Groceries")}
	}
	return snap
}

func TestComputeVelocityBands(t *testing.T) {
	// income 3000, no expenses, day 10 of 30: available 3000,
	// daily rate mtd/10, safe rate (3000-mtd)/20
	cases := []struct {
		mtd        float64
		status     string
		statusText string
	}{
		{500, "success", "On Track"},
		{1000, "success", "Good Pace"},
		{1100, "warning", "Spending Fast"},
		{1300, "danger", "Too Fast!"},
	}
	for i, tc := range cases {
		v := ComputeVelocity(velocitySnap(10, tc.mtd))
		if v.Status != tc.status || v.StatusText != tc.statusText {
			t.Fatalf("case %d expected %s/%s, got %s/%s",
				i, tc.status, tc.statusText, v.Status, v.StatusText)
		}
	}
}

func TestComputeVelocityRates(t *testing.T) {
	v := ComputeVelocity(velocitySnap(10, 500))
	if v.ActualDailyRate != 50 {
		t.Fatalf("actual rate: got %.2f", v.ActualDailyRate)
	}
	if v.SafeDailyRate != 125 {
		t.Fatalf("safe rate: got %.2f", v.SafeDailyRate)
	}
	if v.RemainingMoney != 2500 {
		t.Fatalf("remaining: got %.2f", v.RemainingMoney)
	}
	if v.DaysRemaining != 20 {
		t.Fatalf("days remaining: got %d", v.DaysRemaining)
	}
}

func TestComputeVelocityCriticalWithBills(t *testing.T) {
	snap := velocitySnap(10, 2500)
	snap.Expenses = []core.FixedExpense{
		{Name: "Rent", Amount: 500, DueDay: 25, Category: "Housing"},
	}
	// available 2500, remaining 0, upcoming 500 -> after bills -500
	v := ComputeVelocity(snap)
	if v.Status != "danger" || v.StatusText != "Critical!" {
		t.Fatalf("expected danger/Critical!, got %s/%s", v.Status, v.StatusText)
	}
	if v.RemainingAfterBills != -500 {
		t.Fatalf("remaining after bills: got %.2f", v.RemainingAfterBills)
	}
	if v.UpcomingBillCount != 1 {
		t.Fatalf("upcoming count: got %d", v.UpcomingBillCount)
	}
}

func TestComputeVelocityLastDay(t *testing.T) {
	v := ComputeVelocity(velocitySnap(30, 2000))
	if v.SafeDailyRate != 0 {
		t.Fatalf("safe rate on last day should be 0, got %.2f", v.SafeDailyRate)
	}
	if v.Status != "success" || v.StatusText != "Month Complete" {
		t.Fatalf("expected Month Complete, got %s/%s", v.Status, v.StatusText)
	}

	over := ComputeVelocity(velocitySnap(30, 3500))
	if over.Status != "danger" || over.StatusText != "Over Budget" {
		t.Fatalf("expected Over Budget, got %s/%s", over.Status, over.StatusText)
	}
}

func TestComputeVelocityPaidBillStillReserved(t *testing.T) {
	snap := velocitySnap(10, 100)
	snap.Expenses = []core.FixedExpense{
		{Name: "Rent", Amount: 800, DueDay: 25, PaidMonth: "2025-09"},
	}
	v := ComputeVelocity(snap)
	if v.UpcomingBills != 800 {
		t.Fatalf("paid bill should still be reserved, got %.2f", v.UpcomingBills)
	}
}
