package analytics

import (
	"math"
	"sort"

	"fintrack/internal/core"
)

const (
	// CoV bands for stability classification, in percent.
	stableCoV   = 10
	moderateCoV = 25

	// CoV above this flips an income source's IsVariable flag.
	variableCoV = 15

	// Payments older than this never count toward income statistics.
	incomeLookbackDays = 180
)

const (
	StabilityStable   = "Stable"
	StabilityModerate = "Moderately Variable"
	StabilityHigh     = "Highly Variable"
	TrendIncreasing   = "Increasing"
	TrendDecreasing   = "Decreasing"
	TrendStable       = "Stable"
	TrendInsufficient = "Insufficient Data"
)

// SeriesStats describes one series of monthly totals.
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Stdev  float64 `json:"stdev"`
	CoV    float64 `json:"coefficient_of_variation"`
	Count  int     `json:"count"`
}

// ComputeSeriesStats computes mean, median, min, max, sample standard
// deviation (n-1) and coefficient of variation for a series of monthly
// totals. A single data point yields stdev 0; a zero mean yields CoV 0.
func ComputeSeriesStats(values []float64) SeriesStats {
	n := len(values)
	if n == 0 {
		return SeriesStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	var stdev float64
	if n > 1 {
		var ss float64
		for _, v := range sorted {
			d := v - mean
			ss += d * d
		}
		stdev = math.Sqrt(ss / float64(n-1))
	}

	var cov float64
	if mean != 0 {
		cov = stdev / mean * 100
	}

	return SeriesStats{
		Mean:   mean,
		Median: median,
		Min:    sorted[0],
		Max:    sorted[n-1],
		Stdev:  stdev,
		CoV:    cov,
		Count:  n,
	}
}

// Stability classifies a coefficient of variation.
func Stability(cov float64) string {
	switch {
	case cov < stableCoV:
		return StabilityStable
	case cov <= moderateCoV:
		return StabilityModerate
	default:
		return StabilityHigh
	}
}

// Trend compares the mean of the most recent three monthly totals against
// the mean of the prior three. It needs at least six months; anything less
// reports insufficient data. Keys must be "YYYY-MM" so lexical order is
// chronological order.
func Trend(byMonth map[string]float64) string {
	if len(byMonth) < 6 {
		return TrendInsufficient
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	recent := keys[len(keys)-3:]
	prior := keys[len(keys)-6 : len(keys)-3]

	var recentSum, priorSum float64
	for _, k := range recent {
		recentSum += byMonth[k]
	}
	for _, k := range prior {
		priorSum += byMonth[k]
	}
	recentAvg := recentSum / 3
	priorAvg := priorSum / 3

	if priorAvg == 0 {
		return TrendStable
	}
	change := (recentAvg - priorAvg) / priorAvg * 100
	switch {
	case change > 10:
		return TrendIncreasing
	case change < -10:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// IncomeStats holds the cached derived fields of an income source. These
// always equal a fresh recompute from the payment list; nothing else may set
// them.
type IncomeStats struct {
	AverageMonthly float64
	Variance       float64
	PaymentCount   int
	IsVariable     bool
}

// ComputeIncomeStats re-derives an income source's cached fields from its
// payment list. Fewer than two monthly totals in the lookback window is a
// cold start: the declared amount stands in for the average and variance is
// zero. A CoV above 15% flips IsVariable on, overriding any manual setting.
func ComputeIncomeStats(inc core.IncomeSource, now core.Date) IncomeStats {
	stats := IncomeStats{
		AverageMonthly: inc.Amount,
		PaymentCount:   len(inc.Payments),
		IsVariable:     inc.IsVariable,
	}

	totals := MonthlyPaymentTotals(inc.Payments, now, incomeLookbackDays)
	if len(totals) < 2 {
		return stats
	}

	values := make([]float64, 0, len(totals))
	for _, v := range totals {
		values = append(values, v)
	}
	s := ComputeSeriesStats(values)
	stats.AverageMonthly = s.Mean
	stats.Variance = s.CoV
	if s.CoV > variableCoV {
		stats.IsVariable = true
	}
	return stats
}
