package analytics

import (
	"fmt"
	"sort"
	"strings"

	"fintrack/internal/core"
)

// VariableAnalysis is the full report for one income source's payment
// history.
type VariableAnalysis struct {
	IncomeID         string             `json:"income_id"`
	IncomeName       string             `json:"income_name"`
	HasData          bool               `json:"has_data"`
	Message          string             `json:"message,omitempty"`
	IsVariable       bool               `json:"is_variable"`
	PaymentCount     int                `json:"payment_count"`
	MonthsTracked    int                `json:"months_tracked"`
	Statistics       SeriesStats        `json:"statistics"`
	Stability        StabilityInfo      `json:"stability"`
	Trend            TrendInfo          `json:"trend"`
	CurrentMonth     CurrentMonthIncome `json:"current_month"`
	Forecast         IncomeForecast     `json:"forecast"`
	MonthlyBreakdown []MonthIncome      `json:"monthly_breakdown"`
	Recommendations  []IncomeAdvice     `json:"recommendations"`
}

type StabilityInfo struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

type TrendInfo struct {
	Direction     string  `json:"direction"`
	PercentChange float64 `json:"percent_change"`
	Description   string  `json:"description"`
}

type CurrentMonthIncome struct {
	Total            float64 `json:"total"`
	PaymentCount     int     `json:"payment_count"`
	VsAverage        float64 `json:"vs_average"`
	VsAveragePercent float64 `json:"vs_average_percent"`
}

type IncomeForecast struct {
	NextMonth    float64 `json:"next_month"`
	Conservative float64 `json:"conservative_estimate"`
	Optimistic   float64 `json:"optimistic_estimate"`
}

type MonthIncome struct {
	Month        string  `json:"month"`
	Total        float64 `json:"total"`
	PaymentCount int     `json:"payment_count"`
}

type IncomeAdvice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AnalyzeIncome builds the variable-income report for one source. Unlike the
// cached-field recompute, the full analysis spans the entire payment history,
// current month included.
func AnalyzeIncome(inc core.IncomeSource, now core.Date) VariableAnalysis {
	res := VariableAnalysis{
		IncomeID:   inc.ID,
		IncomeName: inc.Name,
		IsVariable: inc.IsVariable,
	}
	if len(inc.Payments) == 0 {
		res.Message = "No payment history yet. Record payments to see analysis."
		return res
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, p := range inc.Payments {
		if p.Amount <= 0 || p.Date.IsZero() {
			continue
		}
		key := p.Date.MonthKey()
		totals[key] += p.Amount
		counts[key]++
	}
	if len(totals) == 0 {
		res.Message = "No payment history yet. Record payments to see analysis."
		return res
	}

	res.HasData = true
	res.PaymentCount = len(inc.Payments)
	res.MonthsTracked = len(totals)

	values := make([]float64, 0, len(totals))
	for _, v := range totals {
		values = append(values, v)
	}
	stats := ComputeSeriesStats(values)
	res.Statistics = roundStats(stats)

	level := Stability(stats.CoV)
	res.Stability = StabilityInfo{
		Level:       level,
		Description: fmt.Sprintf("Your income varies by approximately %.1f%% from month to month.", stats.CoV),
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	direction := TrendStable
	var trendPct float64
	if len(keys) >= 6 {
		var recentSum, priorSum float64
		for _, k := range keys[len(keys)-3:] {
			recentSum += totals[k]
		}
		for _, k := range keys[len(keys)-6 : len(keys)-3] {
			priorSum += totals[k]
		}
		if priorSum > 0 {
			trendPct = (recentSum - priorSum) / priorSum * 100
		}
		switch {
		case trendPct > 10:
			direction = TrendIncreasing
		case trendPct < -10:
			direction = TrendDecreasing
		}
	}
	res.Trend = TrendInfo{
		Direction:     direction,
		PercentChange: core.Round2(trendPct),
		Description:   fmt.Sprintf("Income is %s compared to previous months.", strings.ToLower(direction)),
	}

	currentKey := now.MonthKey()
	currentTotal := totals[currentKey]
	var vsAvgPct float64
	if stats.Mean > 0 {
		vsAvgPct = (currentTotal - stats.Mean) / stats.Mean * 100
	}
	res.CurrentMonth = CurrentMonthIncome{
		Total:            core.Round2(currentTotal),
		PaymentCount:     counts[currentKey],
		VsAverage:        core.Round2(currentTotal - stats.Mean),
		VsAveragePercent: core.Round2(vsAvgPct),
	}

	// forecast from the last three tracked months, falling back to the
	// overall average
	forecast := stats.Mean
	if len(keys) >= 3 {
		var sum float64
		for _, k := range keys[len(keys)-3:] {
			sum += totals[k]
		}
		forecast = sum / 3
	}
	res.Forecast = IncomeForecast{
		NextMonth:    core.Round2(forecast),
		Conservative: core.Round2(stats.Min),
		Optimistic:   core.Round2(stats.Max),
	}

	start := 0
	if len(keys) > 12 {
		start = len(keys) - 12
	}
	for _, k := range keys[start:] {
		res.MonthlyBreakdown = append(res.MonthlyBreakdown, MonthIncome{
			Month:        k,
			Total:        core.Round2(totals[k]),
			PaymentCount: counts[k],
		})
	}

	res.Recommendations = incomeAdvice(stats, direction, forecast, len(values))
	return res
}

func incomeAdvice(stats SeriesStats, trend string, forecast float64, months int) []IncomeAdvice {
	var out []IncomeAdvice
	if stats.CoV > 20 {
		out = append(out,
			IncomeAdvice{Type: "warning", Message: "Your income varies significantly month-to-month. Consider building a larger emergency fund."},
			IncomeAdvice{Type: "tip", Message: fmt.Sprintf("Budget based on your minimum income ($%.2f) or 3-month average ($%.2f) to avoid overspending.", stats.Min, forecast)},
		)
	}
	switch trend {
	case TrendDecreasing:
		out = append(out, IncomeAdvice{Type: "warning", Message: "Your income has been decreasing recently. Review your expenses and consider additional income sources."})
	case TrendIncreasing:
		out = append(out, IncomeAdvice{Type: "success", Message: "Your income has been increasing! Consider saving or investing the additional income."})
	}
	if months < 3 {
		out = append(out, IncomeAdvice{Type: "info", Message: "Track at least 3 months of income to get more accurate insights and forecasts."})
	}
	return out
}

func roundStats(s SeriesStats) SeriesStats {
	s.Mean = core.Round2(s.Mean)
	s.Median = core.Round2(s.Median)
	s.Min = core.Round2(s.Min)
	s.Max = core.Round2(s.Max)
	s.Stdev = core.Round2(s.Stdev)
	s.CoV = core.Round2(s.CoV)
	return s
}
