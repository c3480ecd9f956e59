// Package worker consumes income recompute messages and exports periodic
// summary reports.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

// Store is the slice of the repository the worker needs.
type Store interface {
	GetIncome(ctx context.Context, id string) (core.IncomeSource, error)
	ListIncomes(ctx context.Context) ([]core.IncomeSource, error)
	UpdateIncomeStats(ctx context.Context, id string, avg, variance float64, count int, isVariable bool) error
	Snapshot(ctx context.Context, at core.Date) (core.Snapshot, error)
}

type Worker struct {
	store   Store
	reports sheets.ReportWriter
	now     func() time.Time
}

func New(store Store, reports sheets.ReportWriter) *Worker {
	return &Worker{
		store:   store,
		reports: reports,
		now:     time.Now,
	}
}

// HandleRecomputeMessage processes a single income recompute message from
// AMQP. A missing source is not an error, the record was deleted after the
// message was published.
func (w *Worker) HandleRecomputeMessage(ctx context.Context, msg *amqp.IncomeRecomputeMessage) error {
	inc, err := w.store.GetIncome(ctx, msg.IncomeID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Income source gone, dropping recompute message",
				"income_id", msg.IncomeID, "reason", msg.Reason)
			return nil
		}
		return fmt.Errorf("get income source: %w", err)
	}

	stats := analytics.ComputeIncomeStats(inc, core.Today(w.now()))
	if err := w.store.UpdateIncomeStats(ctx, inc.ID,
		stats.AverageMonthly, stats.Variance, stats.PaymentCount, stats.IsVariable); err != nil {
		return fmt.Errorf("update income stats: %w", err)
	}

	slog.InfoContext(ctx, "Recomputed income statistics",
		"income_id", inc.ID,
		"reason", msg.Reason,
		"average_monthly", stats.AverageMonthly,
		"payment_count", stats.PaymentCount)

	return nil
}

// RecomputeAll refreshes the cached statistics of every income source. Run at
// startup to recover from missed messages or worker downtime.
func (w *Worker) RecomputeAll(ctx context.Context) error {
	incomes, err := w.store.ListIncomes(ctx)
	if err != nil {
		return fmt.Errorf("list income sources: %w", err)
	}

	if len(incomes) == 0 {
		slog.InfoContext(ctx, "No income sources found on startup")
		return nil
	}

	today := core.Today(w.now())
	successCount := 0
	errorCount := 0

	for _, inc := range incomes {
		stats := analytics.ComputeIncomeStats(inc, today)
		if err := w.store.UpdateIncomeStats(ctx, inc.ID,
			stats.AverageMonthly, stats.Variance, stats.PaymentCount, stats.IsVariable); err != nil {
			slog.ErrorContext(ctx, "Failed to update income stats",
				"income_id", inc.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup recompute completed",
		"total", len(incomes),
		"updated", successCount,
		"errors", errorCount)

	return nil
}

// ExportReport computes the current month's summary and appends it to the
// configured report sheet.
func (w *Worker) ExportReport(ctx context.Context) error {
	if w.reports == nil {
		slog.WarnContext(ctx, "No report writer configured, skipping export")
		return nil
	}

	now := w.now()
	today := core.Today(now)
	snap, err := w.store.Snapshot(ctx, today)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	available := analytics.ComputeAvailableSpending(snap)
	health := analytics.ScoreHealth(snap)
	velocity := analytics.ComputeVelocity(snap)
	projection := analytics.ProjectBalance(snap)

	report := sheets.MonthlyReport{
		Month:            core.MonthKeyOf(now.Year(), int(now.Month())),
		TotalIncome:      available.TotalIncome,
		TotalSpending:    velocity.MTDSpent,
		TotalCommitted:   available.TotalCommitted,
		Available:        available.Available,
		HealthScore:      health.Score,
		Grade:            health.Grade,
		ProjectedBalance: projection.ProjectedBalance,
		GeneratedAt:      now,
	}

	ref, err := w.reports.AppendReport(ctx, report)
	if err != nil {
		return fmt.Errorf("append report: %w", err)
	}

	slog.InfoContext(ctx, "Exported monthly report",
		"month", report.Month,
		"health_score", report.HealthScore,
		"sheets_ref", ref)

	return nil
}

// RunPeriodicExport exports a report at each interval until ctx is cancelled.
func (w *Worker) RunPeriodicExport(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ExportReport(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic report export failed", "error", err)
			}
		}
	}
}
