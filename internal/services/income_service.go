package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// RecomputePublisher publishes income recompute events. Implemented by the
// AMQP client; nil when no broker is configured.
type RecomputePublisher interface {
	PublishIncomeRecompute(ctx context.Context, incomeID, reason string) error
}

// IncomeService owns income sources and their payment history. Every payment
// mutation recomputes the source's cached statistics before returning, so
// readers never see stale derived fields.
type IncomeService struct {
	repo      *storage.SQLiteRepository
	publisher RecomputePublisher
	onChange  func()
	now       func() time.Time
}

func NewIncomeService(repo *storage.SQLiteRepository, publisher RecomputePublisher, onChange func()) *IncomeService {
	return &IncomeService{
		repo:      repo,
		publisher: publisher,
		onChange:  onChange,
		now:       time.Now,
	}
}

func (s *IncomeService) Create(ctx context.Context, inc core.IncomeSource) (core.IncomeSource, error) {
	if err := inc.Validate(); err != nil {
		return core.IncomeSource{}, err
	}
	created, err := s.repo.CreateIncome(ctx, inc)
	if err != nil {
		return core.IncomeSource{}, err
	}
	// Seed the cold-start average from the declared amount. No broker event,
	// a brand-new source has nothing for consumers to reprocess.
	stats := analytics.ComputeIncomeStats(created, core.Today(s.now()))
	if err := s.repo.UpdateIncomeStats(ctx, created.ID,
		stats.AverageMonthly, stats.Variance, stats.PaymentCount, stats.IsVariable); err != nil {
		return core.IncomeSource{}, err
	}
	created.AverageMonthly = stats.AverageMonthly
	created.IncomeVariance = stats.Variance
	created.PaymentCount = stats.PaymentCount
	created.IsVariable = stats.IsVariable
	s.notifyChange()
	return created, nil
}

func (s *IncomeService) Get(ctx context.Context, id string) (core.IncomeSource, error) {
	return s.repo.GetIncome(ctx, id)
}

func (s *IncomeService) List(ctx context.Context) ([]core.IncomeSource, error) {
	return s.repo.ListIncomes(ctx)
}

func (s *IncomeService) Update(ctx context.Context, inc core.IncomeSource) error {
	if err := inc.Validate(); err != nil {
		return err
	}
	if err := s.repo.UpdateIncome(ctx, inc); err != nil {
		return err
	}
	// the declared amount feeds the cold-start average
	if err := s.Recompute(ctx, inc.ID, amqp.ReasonSourceUpdated); err != nil {
		return fmt.Errorf("recompute after update: %w", err)
	}
	return nil
}

func (s *IncomeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteIncome(ctx, id); err != nil {
		return err
	}
	s.notifyChange()
	return nil
}

// AddPayment records a payment and synchronously recomputes the source's
// statistics.
func (s *IncomeService) AddPayment(ctx context.Context, incomeID string, p core.ActualPayment) (core.ActualPayment, error) {
	if err := p.Validate(); err != nil {
		return core.ActualPayment{}, err
	}
	created, err := s.repo.AddPayment(ctx, incomeID, p)
	if err != nil {
		return core.ActualPayment{}, err
	}
	if err := s.Recompute(ctx, incomeID, amqp.ReasonPaymentAdded); err != nil {
		return core.ActualPayment{}, fmt.Errorf("recompute after payment: %w", err)
	}
	return created, nil
}

func (s *IncomeService) DeletePayment(ctx context.Context, incomeID, paymentID string) error {
	if err := s.repo.DeletePayment(ctx, incomeID, paymentID); err != nil {
		return err
	}
	if err := s.Recompute(ctx, incomeID, amqp.ReasonPaymentDeleted); err != nil {
		return fmt.Errorf("recompute after payment delete: %w", err)
	}
	return nil
}

// Recompute re-derives the cached statistics from the payment list, persists
// them, and publishes the change for downstream consumers. Publishing is best
// effort, the write has already happened.
func (s *IncomeService) Recompute(ctx context.Context, incomeID, reason string) error {
	inc, err := s.repo.GetIncome(ctx, incomeID)
	if err != nil {
		return err
	}

	stats := analytics.ComputeIncomeStats(inc, core.Today(s.now()))
	if err := s.repo.UpdateIncomeStats(ctx, incomeID,
		stats.AverageMonthly, stats.Variance, stats.PaymentCount, stats.IsVariable); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishIncomeRecompute(ctx, incomeID, reason); err != nil {
			slog.WarnContext(ctx, "Failed to publish income recompute event",
				"income_id", incomeID, "reason", reason, "error", err)
		}
	}

	s.notifyChange()
	return nil
}

// Analysis returns the full variable income analysis for a source.
func (s *IncomeService) Analysis(ctx context.Context, incomeID string) (analytics.VariableAnalysis, error) {
	inc, err := s.repo.GetIncome(ctx, incomeID)
	if err != nil {
		return analytics.VariableAnalysis{}, err
	}
	return analytics.AnalyzeIncome(inc, core.Today(s.now())), nil
}

func (s *IncomeService) notifyChange() {
	if s.onChange != nil {
		s.onChange()
	}
}
