package analytics

import (
	"strings"
	"testing"

	"fintrack/internal/core"
)

func TestAssessOverdraftRiskOverdrawn(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Accounts = []core.Account{
		{Name: "Checking", Type: core.AccountChecking, Balance: -50},
	}
	snap.Incomes = []core.IncomeSource{
		{Name: "Salary", Amount: 3000, Frequency: core.Monthly},
	}

	res := AssessOverdraftRisk(snap)
	if res.RiskLevel != "critical" {
		t.Fatalf("expected critical, got %s", res.RiskLevel)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "overdrawn") {
		t.Fatalf("expected overdrawn warning, got %v", res.Warnings)
	}
	if res.Metrics.CheckingBalance != -50 {
		t.Fatalf("metrics checking: got %.2f", res.Metrics.CheckingBalance)
	}
}

func TestAssessOverdraftRiskOverspent(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Accounts = []core.Account{
		{Name: "Checking", Type: core.AccountChecking, Balance: 2000},
	}
	snap.Incomes = []core.IncomeSource{
		{Name: "Salary", Amount: 1000, Frequency: core.Monthly},
	}
	snap.Transactions = []core.Transaction{
		tx(2025, 9, 10, 1500, "Shopping"),
	}

	res := AssessOverdraftRisk(snap)
	if res.RiskLevel != "critical" {
		t.Fatalf("expected critical, got %s", res.RiskLevel)
	}
	if res.Metrics.RemainingMoney != -500 {
		t.Fatalf("remaining: got %.2f", res.Metrics.RemainingMoney)
	}
}

func TestAssessOverdraftRiskSafe(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Accounts = []core.Account{
		{Name: "Checking", Type: core.AccountChecking, Balance: 5000},
	}
	snap.Incomes = []core.IncomeSource{
		{Name: "Salary", Amount: 3000, Frequency: core.Monthly},
	}

	res := AssessOverdraftRisk(snap)
	if res.RiskLevel != "safe" {
		t.Fatalf("expected safe, got %s", res.RiskLevel)
	}
}

func TestAssessOverdraftRiskLowChecking(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Accounts = []core.Account{
		{Name: "Checking", Type: core.AccountChecking, Balance: 150},
	}
	snap.Incomes = []core.IncomeSource{
		{Name: "Salary", Amount: 3000, Frequency: core.Monthly},
	}

	res := AssessOverdraftRisk(snap)
	if res.RiskLevel != "warning" {
		t.Fatalf("expected warning, got %s", res.RiskLevel)
	}
}

func TestAssessOverdraftRiskNoData(t *testing.T) {
	res := AssessOverdraftRisk(snapAt(2025, 9, 15))
	if res.RiskLevel != "warning" {
		t.Fatalf("expected warning, got %s", res.RiskLevel)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "Set up") {
		t.Fatalf("expected setup warning, got %v", res.Warnings)
	}
}
