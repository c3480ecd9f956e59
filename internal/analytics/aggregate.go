package analytics

import "fintrack/internal/core"

// MonthlyAggregate maps category -> "YYYY-MM" -> summed spend.
type MonthlyAggregate map[string]map[string]float64

// WeeklyAggregate maps category -> week-of-month -> per-month spend totals
// for that week number across prior months.
type WeeklyAggregate map[string]map[int][]float64

// SpendingWindow holds the time-window aggregates one computation needs:
// month-to-date totals for the reference month, per-month history for every
// other month, and the week-of-month index used by the anomaly detector.
// Only strictly positive amounts participate; refunds are invisible here.
type SpendingWindow struct {
	Now                   core.Date
	CurrentByCategory     map[string]float64
	CurrentWeekByCategory map[string]float64
	History               MonthlyAggregate
	WeekHistory           WeeklyAggregate
}

// BuildSpendingWindow buckets transactions around the snapshot's reference
// date. Records with zero dates are skipped, aggregation continues.
func BuildSpendingWindow(snap core.Snapshot) SpendingWindow {
	now := snap.TakenAt
	w := SpendingWindow{
		Now:                   now,
		CurrentByCategory:     make(map[string]float64),
		CurrentWeekByCategory: make(map[string]float64),
		History:               make(MonthlyAggregate),
		WeekHistory:           make(WeeklyAggregate),
	}

	currentKey := now.MonthKey()
	currentWeek := now.WeekOfMonth()

	// first pass: per-category, per-month and per-week sums
	weekSums := make(map[string]map[string]map[int]float64) // category -> month -> week -> sum
	for _, tx := range snap.Transactions {
		if tx.Amount <= 0 {
			continue
		}
		if tx.Date.IsZero() {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = core.CategoryUncategorized
		}
		key := tx.Date.MonthKey()
		if key == currentKey {
			w.CurrentByCategory[cat] += tx.Amount
			if tx.Date.WeekOfMonth() == currentWeek {
				w.CurrentWeekByCategory[cat] += tx.Amount
			}
			continue
		}
		if w.History[cat] == nil {
			w.History[cat] = make(map[string]float64)
		}
		w.History[cat][key] += tx.Amount

		wk := tx.Date.WeekOfMonth()
		if weekSums[cat] == nil {
			weekSums[cat] = make(map[string]map[int]float64)
		}
		if weekSums[cat][key] == nil {
			weekSums[cat][key] = make(map[int]float64)
		}
		weekSums[cat][key][wk] += tx.Amount
	}

	// second pass: flatten week sums into per-week series across months
	for cat, months := range weekSums {
		for _, weeks := range months {
			for wk, sum := range weeks {
				if w.WeekHistory[cat] == nil {
					w.WeekHistory[cat] = make(map[int][]float64)
				}
				w.WeekHistory[cat][wk] = append(w.WeekHistory[cat][wk], sum)
			}
		}
	}
	return w
}

// MonthTotals returns the per-month spend series for one category, history
// only (the current month is never part of it).
func (w SpendingWindow) MonthTotals(category string) []float64 {
	months := w.History[category]
	totals := make([]float64, 0, len(months))
	for _, v := range months {
		totals = append(totals, v)
	}
	return totals
}

// TotalCurrentSpending sums month-to-date spend across all categories.
func (w SpendingWindow) TotalCurrentSpending() float64 {
	var total float64
	for _, v := range w.CurrentByCategory {
		total += v
	}
	return total
}

// MonthlyPaymentTotals groups income payments by "YYYY-MM", keeping only
// payments within the lookback window ending at now. Zero-dated or
// non-positive payments are skipped.
func MonthlyPaymentTotals(payments []core.ActualPayment, now core.Date, lookbackDays int) map[string]float64 {
	cutoff := now.AddDate(0, 0, -lookbackDays)
	totals := make(map[string]float64)
	for _, p := range payments {
		if p.Amount <= 0 || p.Date.IsZero() {
			continue
		}
		if p.Date.Before(cutoff) || p.Date.After(now.Time) {
			continue
		}
		totals[p.Date.MonthKey()] += p.Amount
	}
	return totals
}
