package analytics

import (
	"testing"

	"fintrack/internal/core"
)

func payment(year, month, day int, amount float64) core.ActualPayment {
	return core.ActualPayment{Date: core.NewDate(year, month, day), Amount: amount}
}

func TestCompareMonthsDeltas(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Incomes = []core.IncomeSource{{Name: "Salary", Amount: 4000, Frequency: core.Monthly}}
	snap.Expenses = []core.FixedExpense{{Name: "Rent", Amount: 1500, DueDay: 1}}
	snap.Transactions = []core.Transaction{
		tx(2025, 9, 3, 200, "Groceries"),
		tx(2025, 9, 10, 100, "Dining"),
		tx(2025, 8, 5, 600, "Groceries"),
	}

	cmp := CompareMonths(snap)
	if !cmp.HasData {
		t.Fatal("expected HasData with transactions in both months")
	}
	if cmp.CurrentMonth.MonthName != "September 2025" || cmp.PreviousMonth.MonthName != "August 2025" {
		t.Fatalf("month names = %q / %q", cmp.CurrentMonth.MonthName, cmp.PreviousMonth.MonthName)
	}
	if cmp.Spending.Current != 300 || cmp.Spending.Previous != 600 {
		t.Fatalf("spending = %v / %v, want 300 / 600", cmp.Spending.Current, cmp.Spending.Previous)
	}
	if cmp.Spending.Direction != "down" || !approx(cmp.Spending.PercentChange, -50, 0.01) {
		t.Errorf("spending change = %s %v%%", cmp.Spending.Direction, cmp.Spending.PercentChange)
	}
	// Savings: 4000 - 1500 - spending. Up 300 from August.
	if cmp.Savings.Current != 2200 || cmp.Savings.Change != 300 {
		t.Errorf("savings = %v change %v, want 2200 change 300", cmp.Savings.Current, cmp.Savings.Change)
	}
	if cmp.TransactionCount.Direction != "up" || cmp.TransactionCount.Change != 1 {
		t.Errorf("tx count change = %s %v", cmp.TransactionCount.Direction, cmp.TransactionCount.Change)
	}
}

func TestCompareMonthsInsights(t *testing.T) {
	snap := snapAt(2025, 9, 20)
	snap.Incomes = []core.IncomeSource{{Name: "Salary", Amount: 3000, Frequency: core.Monthly}}
	snap.Transactions = []core.Transaction{
		tx(2025, 9, 5, 400, "Groceries"),
		tx(2025, 8, 5, 1000, "Groceries"),
	}

	cmp := CompareMonths(snap)
	var positive, warning int
	for _, in := range cmp.Insights {
		switch in.Type {
		case "positive":
			positive++
		case "warning":
			warning++
		}
	}
	// Spending down 60% and savings up 600: two positives, no warnings.
	if positive != 2 || warning != 0 {
		t.Fatalf("insights = %+v, want 2 positive 0 warning", cmp.Insights)
	}
}

func TestCompareMonthsJanuaryWrapsToDecember(t *testing.T) {
	snap := snapAt(2026, 1, 10)
	snap.Transactions = []core.Transaction{tx(2025, 12, 20, 150, "Gifts")}

	cmp := CompareMonths(snap)
	if cmp.PreviousMonth.Year != 2025 || cmp.PreviousMonth.Month != 12 {
		t.Fatalf("previous month = %d-%d, want 2025-12", cmp.PreviousMonth.Year, cmp.PreviousMonth.Month)
	}
	if cmp.Spending.Previous != 150 {
		t.Errorf("previous spending = %v, want 150", cmp.Spending.Previous)
	}
}

func TestCompareMonthsZeroPrevious(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{tx(2025, 9, 3, 250, "Groceries")}

	cmp := CompareMonths(snap)
	if cmp.Spending.PercentChange != 100 || cmp.Spending.Direction != "up" {
		t.Fatalf("spending from zero = %v%% %s, want 100%% up", cmp.Spending.PercentChange, cmp.Spending.Direction)
	}
	if !cmp.HasData {
		t.Error("expected HasData with current-month transactions")
	}
}

func TestIncomeTrendsMonthBuckets(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Incomes = []core.IncomeSource{
		{
			Name:   "Salary",
			Earner: "Alex",
			Payments: []core.ActualPayment{
				payment(2025, 7, 1, 3000),
				payment(2025, 8, 1, 3000),
				payment(2025, 9, 1, 3100),
			},
		},
		{
			Name: "Freelance",
			Payments: []core.ActualPayment{
				payment(2025, 8, 20, 500),
				payment(2024, 8, 20, 999), // outside a 6-month window
			},
		},
	}

	trends := ComputeIncomeTrends(snap, 6)
	if len(trends.TotalIncome.Labels) != 6 {
		t.Fatalf("labels = %d, want 6", len(trends.TotalIncome.Labels))
	}
	if trends.TotalIncome.Labels[0] != "Apr 2025" || trends.TotalIncome.Labels[5] != "Sep 2025" {
		t.Fatalf("label range = %q..%q", trends.TotalIncome.Labels[0], trends.TotalIncome.Labels[5])
	}
	want := []float64{0, 0, 0, 3000, 3500, 3100}
	for i, v := range want {
		if trends.TotalIncome.Data[i] != v {
			t.Errorf("month %d total = %v, want %v", i, trends.TotalIncome.Data[i], v)
		}
	}
	if len(trends.BySource.Datasets) != 2 {
		t.Fatalf("source datasets = %d, want 2", len(trends.BySource.Datasets))
	}
	// Datasets sorted by name.
	if trends.BySource.Datasets[0].Label != "Freelance" || trends.BySource.Datasets[1].Label != "Salary" {
		t.Errorf("source order = %q, %q", trends.BySource.Datasets[0].Label, trends.BySource.Datasets[1].Label)
	}
	var earners []string
	for _, d := range trends.ByEarner.Datasets {
		earners = append(earners, d.Label)
	}
	if len(earners) != 2 || earners[0] != "Alex" || earners[1] != "Unassigned" {
		t.Errorf("earners = %v, want [Alex Unassigned]", earners)
	}
}

func TestIncomeTrendsStatistics(t *testing.T) {
	snap := snapAt(2025, 6, 30)
	snap.Incomes = []core.IncomeSource{{
		Name: "Salary",
		Payments: []core.ActualPayment{
			payment(2025, 1, 1, 2000),
			payment(2025, 2, 1, 2200),
			payment(2025, 3, 1, 2500),
			payment(2025, 4, 1, 2800),
			payment(2025, 5, 1, 3000),
			payment(2025, 6, 1, 3200),
		},
	}}

	trends := ComputeIncomeTrends(snap, 6)
	s := trends.Statistics
	if s.MonthsWithIncome != 6 || s.TotalMonths != 6 {
		t.Fatalf("months = %d/%d, want 6/6", s.MonthsWithIncome, s.TotalMonths)
	}
	if !approx(s.Total, 15700, 0.01) || !approx(s.Average, 2616.67, 0.01) {
		t.Errorf("total %v average %v", s.Total, s.Average)
	}
	if s.Min != 2000 || s.Max != 3200 {
		t.Errorf("min/max = %v/%v, want 2000/3200", s.Min, s.Max)
	}
	if s.Trend != "increasing" {
		t.Errorf("trend = %q, want increasing", s.Trend)
	}
	if trends.Period.Start != "Jan 2025" || trends.Period.End != "Jun 2025" {
		t.Errorf("period = %q..%q", trends.Period.Start, trends.Period.End)
	}
}

func TestIncomeTrendsDefaultWindow(t *testing.T) {
	trends := ComputeIncomeTrends(snapAt(2025, 9, 15), 0)
	if trends.Period.Months != DefaultTrendMonths {
		t.Fatalf("months = %d, want %d", trends.Period.Months, DefaultTrendMonths)
	}
	if len(trends.TotalIncome.Data) != DefaultTrendMonths {
		t.Errorf("data points = %d", len(trends.TotalIncome.Data))
	}
	if trends.Statistics.Trend != "stable" {
		t.Errorf("empty trend = %q, want stable", trends.Statistics.Trend)
	}
}

func TestYearOverYearSummaries(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Incomes = []core.IncomeSource{
		{
			Name:   "Salary",
			Earner: "Alex",
			Payments: []core.ActualPayment{
				payment(2024, 3, 1, 3000),
				payment(2024, 4, 1, 3000),
				payment(2025, 3, 1, 4000),
				payment(2025, 4, 1, 4000),
			},
		},
		{
			Name: "Dividends",
			Payments: []core.ActualPayment{
				payment(2025, 6, 15, 200),
			},
		},
	}

	yoy := CompareIncomeYears(snap)
	if !yoy.HasData || len(yoy.Years) != 2 {
		t.Fatalf("years = %d hasData=%v, want 2 years", len(yoy.Years), yoy.HasData)
	}
	cur := yoy.Years[0]
	if cur.Year != 2025 || cur.Total != 8200 || cur.PaymentCount != 3 {
		t.Fatalf("2025 summary = %+v", cur)
	}
	if cur.MonthsWithIncome != 3 || !approx(cur.MonthlyAverage, 2733.33, 0.01) {
		t.Errorf("2025 months=%d avg=%v", cur.MonthsWithIncome, cur.MonthlyAverage)
	}
	if cur.ByMonth[3] != 4000 || cur.ByMonth[6] != 200 {
		t.Errorf("2025 by_month = %v", cur.ByMonth)
	}
	if len(cur.TopSources) != 2 || cur.TopSources[0].Name != "Salary" {
		t.Errorf("top sources = %v", cur.TopSources)
	}
	if cur.ByEarner["Alex"] != 8000 || cur.ByEarner["Unassigned"] != 200 {
		t.Errorf("by_earner = %v", cur.ByEarner)
	}

	if cur.ChangeFromPrevious == nil {
		t.Fatal("expected change vs 2024")
	}
	if cur.ChangeFromPrevious.Amount != 2200 || cur.ChangeFromPrevious.Direction != "increase" {
		t.Errorf("change = %+v", *cur.ChangeFromPrevious)
	}
	if !approx(cur.ChangeFromPrevious.Percent, 36.67, 0.01) {
		t.Errorf("percent = %v, want 36.67", cur.ChangeFromPrevious.Percent)
	}
	if yoy.Years[1].ChangeFromPrevious != nil {
		t.Error("earliest year should carry no change")
	}

	s := yoy.Statistics
	if s.TotalYears != 2 || s.EarliestYear != 2024 || s.LatestYear != 2025 {
		t.Errorf("statistics = %+v", s)
	}
	if !approx(s.TotalAllYears, 14200, 0.01) || !approx(s.AveragePerYear, 7100, 0.01) {
		t.Errorf("totals = %v / %v", s.TotalAllYears, s.AveragePerYear)
	}
	if s.OverallTrend != "increasing" {
		t.Errorf("overall trend = %q", s.OverallTrend)
	}
}

func TestYearOverYearEmpty(t *testing.T) {
	yoy := CompareIncomeYears(snapAt(2025, 9, 15))
	if yoy.HasData || len(yoy.Years) != 0 {
		t.Fatalf("empty snapshot = %+v", yoy)
	}
}
