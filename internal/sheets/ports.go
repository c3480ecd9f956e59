package sheets

import (
	"context"
	"time"
)

// MonthlyReport is one exported summary row. Amounts are dollars rounded to
// cents.
type MonthlyReport struct {
	Month            string
	TotalIncome      float64
	TotalSpending    float64
	TotalCommitted   float64
	Available        float64
	HealthScore      int
	Grade            string
	ProjectedBalance float64
	GeneratedAt      time.Time
}

// Ports for outbound adapters.
type (
	ReportWriter interface {
		AppendReport(ctx context.Context, r MonthlyReport) (rowRef string, err error)
	}
)
