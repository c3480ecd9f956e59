package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2025 || d.Month() != 3 || d.Day() != 9 {
		t.Fatalf("got %v", d)
	}
	for _, s := range []string{"", "not-a-date", "2025/03/09", "2025-13-01"} {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestMonthKey(t *testing.T) {
	if got := NewDate(2025, 3, 9).MonthKey(); got != "2025-03" {
		t.Fatalf("got %q", got)
	}
	if got := MonthKeyOf(2024, 12); got != "2024-12" {
		t.Fatalf("got %q", got)
	}
}

func TestWeekOfMonth(t *testing.T) {
	cases := []struct {
		day  int
		want int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {21, 3}, {22, 4}, {28, 4}, {29, 5}, {31, 5},
	}
	for _, tc := range cases {
		if got := NewDate(2025, 1, tc.day).WeekOfMonth(); got != tc.want {
			t.Fatalf("day %d: got week %d, want %d", tc.day, got, tc.want)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		y, m, want int
	}{
		{2025, 1, 31}, {2025, 2, 28}, {2024, 2, 29}, {2025, 4, 30},
	}
	for _, tc := range cases {
		if got := NewDate(tc.y, tc.m, 1).DaysInMonth(); got != tc.want {
			t.Fatalf("%d-%d: got %d, want %d", tc.y, tc.m, got, tc.want)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{Name: "Main Checking", Type: AccountChecking, Balance: 1500}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Account{
		{Name: "", Type: AccountChecking},
		{Name: "x", Type: AccountType("brokerage")},
	}
	for i, a := range bads {
		if err := a.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestIncomeSourceValidate(t *testing.T) {
	good := IncomeSource{Name: "Salary", Amount: 2700, Frequency: BiWeekly}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []IncomeSource{
		{Name: "", Amount: 100, Frequency: Monthly},
		{Name: "x", Amount: -1, Frequency: Monthly},
		{Name: "x", Amount: 100, Frequency: Frequency("fortnightly")},
	}
	for i, inc := range bads {
		if err := inc.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestFixedExpenseValidate(t *testing.T) {
	good := FixedExpense{Name: "Rent", Amount: 1200, DueDay: 1, Category: "Housing"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []FixedExpense{
		{Name: "", Amount: 1, DueDay: 1, Category: "c"},
		{Name: "x", Amount: 0, DueDay: 1, Category: "c"},
		{Name: "x", Amount: 1, DueDay: 0, Category: "c"},
		{Name: "x", Amount: 1, DueDay: 32, Category: "c"},
		{Name: "x", Amount: 1, DueDay: 1, Category: ""},
	}
	for i, fe := range bads {
		if err := fe.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestFixedExpenseIsPaidIn(t *testing.T) {
	fe := FixedExpense{Name: "Rent", Amount: 1200, DueDay: 1, Category: "Housing", PaidMonth: "2025-02"}
	if !fe.IsPaidIn(2025, 2) {
		t.Fatalf("expected paid in 2025-02")
	}
	// stale flag from last month reads as unpaid
	if fe.IsPaidIn(2025, 3) {
		t.Fatalf("expected unpaid in 2025-03")
	}
	empty := FixedExpense{}
	if empty.IsPaidIn(2025, 3) {
		t.Fatalf("expected unpaid when never marked")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{Date: NewDate(2025, 1, 5), Amount: 42.50, Category: "Groceries"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// refunds carry negative amounts and are still valid records
	refund := Transaction{Date: NewDate(2025, 1, 5), Amount: -12, Category: "Groceries"}
	if err := refund.Validate(); err != nil {
		t.Fatalf("expected ok for refund, got %v", err)
	}

	bads := []Transaction{
		{Date: Date{Time: time.Time{}}, Amount: 1, Category: "c"},
		{Date: NewDate(2025, 1, 5), Amount: 0, Category: "c"},
		{Date: NewDate(2025, 1, 5), Amount: 1, Category: ""},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSnapshotBalances(t *testing.T) {
	snap := Snapshot{
		Accounts: []Account{
			{Name: "chk", Type: AccountChecking, Balance: 400},
			{Name: "chk2", Type: AccountChecking, Balance: 100},
			{Name: "sav", Type: AccountSavings, Balance: 2000},
			{Name: "cc", Type: AccountCredit, Balance: -350},
			{Name: "inv", Type: AccountInvestment, Balance: 9000},
		},
	}
	if got := snap.CheckingBalance(); got != 500 {
		t.Fatalf("checking: got %v", got)
	}
	if got := snap.SavingsBalance(); got != 2000 {
		t.Fatalf("savings: got %v", got)
	}
	if got := snap.CreditBalance(); got != -350 {
		t.Fatalf("credit: got %v", got)
	}
	// liquid excludes credit and investment
	if got := snap.LiquidBalance(); got != 2500 {
		t.Fatalf("liquid: got %v", got)
	}
}
