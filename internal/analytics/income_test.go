package analytics

import (
	"testing"

	"fintrack/internal/core"
)

func TestAnalyzeIncomeNoPayments(t *testing.T) {
	inc := core.IncomeSource{ID: "inc-1", Name: "Freelance"}
	res := AnalyzeIncome(inc, core.NewDate(2025, 9, 15))
	if res.HasData {
		t.Fatalf("expected no data")
	}
	if res.Message == "" {
		t.Fatalf("expected explanatory message")
	}
}

func TestAnalyzeIncomeSteady(t *testing.T) {
	inc := core.IncomeSource{
		ID:   "inc-1",
		Name: "Salary",
		Payments: []core.ActualPayment{
			{Date: core.NewDate(2025, 6, 15), Amount: 2700},
			{Date: core.NewDate(2025, 7, 15), Amount: 2730},
			{Date: core.NewDate(2025, 8, 15), Amount: 2715},
		},
	}
	res := AnalyzeIncome(inc, core.NewDate(2025, 9, 10))
	if !res.HasData {
		t.Fatalf("expected data")
	}
	if res.MonthsTracked != 3 {
		t.Fatalf("months: got %d", res.MonthsTracked)
	}
	if !approx(res.Statistics.Mean, 2715, 0.01) {
		t.Fatalf("mean: got %.2f", res.Statistics.Mean)
	}
	if res.Stability.Level != StabilityStable {
		t.Fatalf("stability: got %s", res.Stability.Level)
	}
	// forecast from the last three months equals the overall mean here
	if !approx(res.Forecast.NextMonth, 2715, 0.01) {
		t.Fatalf("forecast: got %.2f", res.Forecast.NextMonth)
	}
	if res.Forecast.Conservative != 2700 || res.Forecast.Optimistic != 2730 {
		t.Fatalf("forecast range: got %.2f / %.2f",
			res.Forecast.Conservative, res.Forecast.Optimistic)
	}
	if len(res.MonthlyBreakdown) != 3 {
		t.Fatalf("breakdown: got %d", len(res.MonthlyBreakdown))
	}
	if res.MonthlyBreakdown[0].Month != "2025-06" {
		t.Fatalf("breakdown order: got %s", res.MonthlyBreakdown[0].Month)
	}
}

func TestAnalyzeIncomeVariable(t *testing.T) {
	inc := core.IncomeSource{
		ID:   "inc-2",
		Name: "Gigs",
		Payments: []core.ActualPayment{
			{Date: core.NewDate(2025, 6, 5), Amount: 1000},
			{Date: core.NewDate(2025, 7, 5), Amount: 2500},
			{Date: core.NewDate(2025, 8, 5), Amount: 800},
		},
	}
	res := AnalyzeIncome(inc, core.NewDate(2025, 9, 10))
	if res.Stability.Level != StabilityHigh {
		t.Fatalf("stability: got %s", res.Stability.Level)
	}
	warned := false
	for _, rec := range res.Recommendations {
		if rec.Type == "warning" {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected variability warning, got %+v", res.Recommendations)
	}
}

func TestAnalyzeIncomeTrend(t *testing.T) {
	var payments []core.ActualPayment
	amounts := []float64{1000, 1000, 1000, 1500, 1500, 1500}
	for i, a := range amounts {
		payments = append(payments, core.ActualPayment{
			Date:   core.NewDate(2025, i+2, 10),
			Amount: a,
		})
	}
	inc := core.IncomeSource{ID: "inc-3", Name: "Salary", Payments: payments}
	res := AnalyzeIncome(inc, core.NewDate(2025, 9, 10))
	if res.Trend.Direction != TrendIncreasing {
		t.Fatalf("trend: got %s", res.Trend.Direction)
	}
	if res.Trend.PercentChange != 50 {
		t.Fatalf("trend change: got %.2f", res.Trend.PercentChange)
	}
}

func TestAnalyzeIncomeCurrentMonth(t *testing.T) {
	inc := core.IncomeSource{
		ID:   "inc-4",
		Name: "Salary",
		Payments: []core.ActualPayment{
			{Date: core.NewDate(2025, 8, 15), Amount: 2000},
			{Date: core.NewDate(2025, 9, 1), Amount: 1000},
			{Date: core.NewDate(2025, 9, 14), Amount: 1200},
		},
	}
	res := AnalyzeIncome(inc, core.NewDate(2025, 9, 20))
	if res.CurrentMonth.Total != 2200 {
		t.Fatalf("current month total: got %.2f", res.CurrentMonth.Total)
	}
	if res.CurrentMonth.PaymentCount != 2 {
		t.Fatalf("current month count: got %d", res.CurrentMonth.PaymentCount)
	}
}
