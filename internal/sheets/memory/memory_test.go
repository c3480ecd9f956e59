package memory

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/sheets"
)

func TestStoreAppendReport(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.AppendReport(ctx, sheets.MonthlyReport{
		Month:       "2025-09",
		TotalIncome: 5000,
		HealthScore: 82,
		Grade:       "A",
		GeneratedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("AppendReport returned error: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("expected ref mem:1, got %s", ref)
	}

	ref, err = s.AppendReport(ctx, sheets.MonthlyReport{Month: "2025-10"})
	if err != nil {
		t.Fatalf("AppendReport returned error: %v", err)
	}
	if ref != "mem:2" {
		t.Fatalf("expected ref mem:2, got %s", ref)
	}

	reports := s.Reports()
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Month != "2025-09" || reports[1].Month != "2025-10" {
		t.Fatalf("unexpected order: %s, %s", reports[0].Month, reports[1].Month)
	}
	if reports[0].Grade != "A" || reports[0].HealthScore != 82 {
		t.Fatalf("report fields not preserved: %+v", reports[0])
	}
}
