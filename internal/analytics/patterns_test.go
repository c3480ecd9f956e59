package analytics

import (
	"testing"

	"fintrack/internal/core"
)

func TestDetectPatternsHighAlert(t *testing.T) {
	// Dining Out averaged 220/month; 400 by mid-month is +81.8%.
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{
		tx(2025, 7, 10, 200, "Dining Out"),
		tx(2025, 8, 10, 240, "Dining Out"),
		tx(2025, 9, 5, 400, "Dining Out"),
	}

	res := DetectPatterns(snap)
	if len(res.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(res.Alerts))
	}
	alert := res.Alerts[0]
	if alert.Category != "Dining Out" {
		t.Fatalf("category: got %s", alert.Category)
	}
	if alert.Severity != "high" {
		t.Fatalf("expected high severity, got %s", alert.Severity)
	}
	if !approx(alert.VariancePct, 81.8, 0.1) {
		t.Fatalf("variance pct: got %.2f", alert.VariancePct)
	}
	if alert.CurrentAmount != 400 || alert.TypicalAmount != 220 {
		t.Fatalf("amounts: got %.2f / %.2f", alert.CurrentAmount, alert.TypicalAmount)
	}
}

func TestDetectPatternsMediumSeverity(t *testing.T) {
	// +50% over average stays under the 60% severity bump.
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{
		tx(2025, 7, 10, 200, "Groceries"),
		tx(2025, 8, 10, 200, "Groceries"),
		tx(2025, 9, 5, 300, "Groceries"),
	}

	res := DetectPatterns(snap)
	if len(res.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(res.Alerts))
	}
	if res.Alerts[0].Severity != "medium" {
		t.Fatalf("expected medium severity, got %s", res.Alerts[0].Severity)
	}
}

func TestDetectPatternsFloorSuppression(t *testing.T) {
	// average under $50/month never alerts, no matter the spike
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{
		tx(2025, 7, 10, 30, "Coffee"),
		tx(2025, 8, 10, 30, "Coffee"),
		tx(2025, 9, 5, 120, "Coffee"),
	}

	res := DetectPatterns(snap)
	if len(res.Alerts) != 0 {
		t.Fatalf("expected no alerts below significance floor, got %d", len(res.Alerts))
	}
}

func TestDetectPatternsPositiveInsight(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{
		tx(2025, 7, 10, 400, "Groceries"),
		tx(2025, 8, 10, 400, "Groceries"),
		tx(2025, 9, 5, 100, "Groceries"), // 25% of typical
	}

	res := DetectPatterns(snap)
	if len(res.Alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(res.Alerts))
	}
	found := false
	for _, in := range res.Insights {
		if in.Category == "Groceries" && in.Type == "positive" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected positive insight for Groceries, got %+v", res.Insights)
	}
}

func TestDetectPatternsSingleMonthSkipped(t *testing.T) {
	// one month of history is not enough to establish a pattern
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{
		tx(2025, 8, 10, 500, "Travel"),
		tx(2025, 9, 5, 2000, "Travel"),
	}

	res := DetectPatterns(snap)
	if len(res.Patterns) != 0 {
		t.Fatalf("expected no patterns, got %d", len(res.Patterns))
	}
	if len(res.Alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(res.Alerts))
	}
}

func TestDetectPatternsInsufficientData(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{
		tx(2025, 7, 10, 200, "Groceries"),
		tx(2025, 8, 10, 200, "Groceries"),
	}

	res := DetectPatterns(snap)
	if res.HasSufficientData {
		t.Fatalf("expected insufficient data with 1 pattern")
	}
	if len(res.Insights) == 0 || res.Insights[0].Category != "Data" {
		t.Fatalf("expected building-history insight first, got %+v", res.Insights)
	}
}

func TestDetectPatternsAlertOrdering(t *testing.T) {
	snap := snapAt(2025, 9, 15)
	snap.Transactions = []core.Transaction{
		// medium alert: +50%
		tx(2025, 7, 10, 200, "Groceries"),
		tx(2025, 8, 10, 200, "Groceries"),
		tx(2025, 9, 5, 300, "Groceries"),
		// high alert: +100%
		tx(2025, 7, 12, 100, "Dining Out"),
		tx(2025, 8, 12, 100, "Dining Out"),
		tx(2025, 9, 6, 200, "Dining Out"),
	}

	res := DetectPatterns(snap)
	if len(res.Alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(res.Alerts))
	}
	if res.Alerts[0].Severity != "high" || res.Alerts[1].Severity != "medium" {
		t.Fatalf("expected high before medium, got %s then %s",
			res.Alerts[0].Severity, res.Alerts[1].Severity)
	}
}
