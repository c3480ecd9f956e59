package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// AnalyticsService computes dashboard analyses over a storage snapshot and
// caches the results. The cache key carries the calendar date because every
// analysis is relative to "today"; record mutations purge the whole cache.
type AnalyticsService struct {
	repo  *storage.SQLiteRepository
	cache *cache.LRUCache[any]
	now   func() time.Time
}

func NewAnalyticsService(repo *storage.SQLiteRepository, c *cache.LRUCache[any]) *AnalyticsService {
	return &AnalyticsService{
		repo:  repo,
		cache: c,
		now:   time.Now,
	}
}

// Invalidate drops every cached analysis.
func (s *AnalyticsService) Invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *AnalyticsService) cached(ctx context.Context, name string, compute func(core.Snapshot) any) (any, error) {
	today := core.Today(s.now())
	key := fmt.Sprintf("%s:%s", name, today.Format(time.DateOnly))

	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			return v, nil
		}
	}

	snap, err := s.repo.Snapshot(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	v := compute(snap)
	if s.cache != nil {
		s.cache.Set(key, v)
	}
	return v, nil
}

func (s *AnalyticsService) HealthScore(ctx context.Context) (analytics.HealthScore, error) {
	v, err := s.cached(ctx, "health_score", func(snap core.Snapshot) any {
		return analytics.ScoreHealth(snap)
	})
	if err != nil {
		return analytics.HealthScore{}, err
	}
	return v.(analytics.HealthScore), nil
}

func (s *AnalyticsService) SpendingVelocity(ctx context.Context) (analytics.SpendingVelocity, error) {
	v, err := s.cached(ctx, "spending_velocity", func(snap core.Snapshot) any {
		return analytics.ComputeVelocity(snap)
	})
	if err != nil {
		return analytics.SpendingVelocity{}, err
	}
	return v.(analytics.SpendingVelocity), nil
}

func (s *AnalyticsService) SpendingPatterns(ctx context.Context) (analytics.SpendingPatterns, error) {
	v, err := s.cached(ctx, "spending_patterns", func(snap core.Snapshot) any {
		return analytics.DetectPatterns(snap)
	})
	if err != nil {
		return analytics.SpendingPatterns{}, err
	}
	return v.(analytics.SpendingPatterns), nil
}

func (s *AnalyticsService) Recommendations(ctx context.Context) (analytics.SmartRecommendations, error) {
	v, err := s.cached(ctx, "recommendations", func(snap core.Snapshot) any {
		return analytics.BuildRecommendations(snap)
	})
	if err != nil {
		return analytics.SmartRecommendations{}, err
	}
	return v.(analytics.SmartRecommendations), nil
}

func (s *AnalyticsService) AvailableSpending(ctx context.Context) (analytics.AvailableSpending, error) {
	v, err := s.cached(ctx, "available_spending", func(snap core.Snapshot) any {
		return analytics.ComputeAvailableSpending(snap)
	})
	if err != nil {
		return analytics.AvailableSpending{}, err
	}
	return v.(analytics.AvailableSpending), nil
}

func (s *AnalyticsService) OverdraftStatus(ctx context.Context) (analytics.OverdraftStatus, error) {
	v, err := s.cached(ctx, "overdraft_status", func(snap core.Snapshot) any {
		return analytics.AssessOverdraftRisk(snap)
	})
	if err != nil {
		return analytics.OverdraftStatus{}, err
	}
	return v.(analytics.OverdraftStatus), nil
}

func (s *AnalyticsService) UpcomingBills(ctx context.Context) (analytics.UpcomingBills, error) {
	v, err := s.cached(ctx, "upcoming_bills", func(snap core.Snapshot) any {
		return analytics.ComputeUpcomingBills(snap)
	})
	if err != nil {
		return analytics.UpcomingBills{}, err
	}
	return v.(analytics.UpcomingBills), nil
}

func (s *AnalyticsService) ProjectedBalance(ctx context.Context) (analytics.BalanceProjection, error) {
	v, err := s.cached(ctx, "projected_balance", func(snap core.Snapshot) any {
		return analytics.ProjectBalance(snap)
	})
	if err != nil {
		return analytics.BalanceProjection{}, err
	}
	return v.(analytics.BalanceProjection), nil
}

func (s *AnalyticsService) MonthComparison(ctx context.Context) (analytics.MonthComparison, error) {
	v, err := s.cached(ctx, "month_comparison", func(snap core.Snapshot) any {
		return analytics.CompareMonths(snap)
	})
	if err != nil {
		return analytics.MonthComparison{}, err
	}
	return v.(analytics.MonthComparison), nil
}

// IncomeTrends keys the cache by window size so different ?months= requests
// do not serve each other's results.
func (s *AnalyticsService) IncomeTrends(ctx context.Context, months int) (analytics.IncomeTrends, error) {
	if months <= 0 {
		months = analytics.DefaultTrendMonths
	}
	v, err := s.cached(ctx, fmt.Sprintf("income_trends:%d", months), func(snap core.Snapshot) any {
		return analytics.ComputeIncomeTrends(snap, months)
	})
	if err != nil {
		return analytics.IncomeTrends{}, err
	}
	return v.(analytics.IncomeTrends), nil
}

func (s *AnalyticsService) YearOverYear(ctx context.Context) (analytics.YearOverYear, error) {
	v, err := s.cached(ctx, "year_over_year", func(snap core.Snapshot) any {
		return analytics.CompareIncomeYears(snap)
	})
	if err != nil {
		return analytics.YearOverYear{}, err
	}
	return v.(analytics.YearOverYear), nil
}
