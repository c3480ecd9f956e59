package analytics

import (
	"fmt"
	"math"
	"sort"

	"fintrack/internal/core"
)

const (
	// Categories averaging below these floors never trigger anomaly checks.
	minMonthlySignificance = 50.0
	minWeeklySignificance  = 20.0

	// 30% above the historical average raises an alert; 30% below earns a
	// positive insight.
	highVarianceFactor = 1.3
	lowVarianceFactor  = 0.7

	// Variance above this bumps alert severity from medium to high.
	highSeverityPct = 60.0

	maxPatterns = 10
)

// CategoryPattern compares one category's current pace against its history.
type CategoryPattern struct {
	Category       string  `json:"category"`
	HistoricalAvg  float64 `json:"historical_avg"`
	AvgWeeklySpend float64 `json:"avg_weekly_spend"`
	CurrentMTD     float64 `json:"current_mtd"`
	CurrentWeek    float64 `json:"current_week"`
	Projected      float64 `json:"projected"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	MonthsOfData   int     `json:"months_of_data"`
	Variance       float64 `json:"variance"`
	WeeklyVariance float64 `json:"weekly_variance"`
	Status         string  `json:"status"`
}

// PatternAlert flags a category spending well above its typical level.
type PatternAlert struct {
	Category      string  `json:"category"`
	Message       string  `json:"message"`
	Detail        string  `json:"detail"`
	Severity      string  `json:"severity"`
	CurrentAmount float64 `json:"current_amount"`
	TypicalAmount float64 `json:"typical_amount"`
	Difference    float64 `json:"difference"`
	VariancePct   float64 `json:"variance_percent"`
}

// PatternInsight carries a positive or informational observation.
type PatternInsight struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Detail   string `json:"detail"`
}

// SpendingPatterns is the anomaly detector's full response.
type SpendingPatterns struct {
	Patterns          []CategoryPattern `json:"patterns"`
	Alerts            []PatternAlert    `json:"alerts"`
	Insights          []PatternInsight  `json:"insights"`
	Recommendations   []string          `json:"recommendations"`
	HasSufficientData bool              `json:"has_sufficient_data"`
	TotalCategories   int               `json:"total_categories"`
	MonthsAnalyzed    int               `json:"months_analyzed"`
	CurrentWeek       int               `json:"current_week"`
	CurrentDay        int               `json:"current_day"`
}

// DetectPatterns compares month-to-date spending per category (and current
// week-of-month spending) against historical averages. The comparison is
// deliberately month-to-date against full-month average: early warning beats
// projection accuracy here.
func DetectPatterns(snap core.Snapshot) SpendingPatterns {
	w := BuildSpendingWindow(snap)
	now := w.Now
	day := now.Day()
	daysInMonth := now.DaysInMonth()
	currentWeek := now.WeekOfMonth()

	res := SpendingPatterns{
		CurrentWeek: currentWeek,
		CurrentDay:  day,
	}

	var patterns []CategoryPattern
	var alerts []PatternAlert
	var insights []PatternInsight

	for category, months := range w.History {
		if len(months) < 2 {
			continue
		}
		totals := make([]float64, 0, len(months))
		for _, v := range months {
			totals = append(totals, v)
		}
		stats := ComputeSeriesStats(totals)
		avgMonthly := stats.Mean

		current := w.CurrentByCategory[category]
		currentWeekSpend := w.CurrentWeekByCategory[category]

		weekTotals := w.WeekHistory[category][currentWeek]
		avgWeekly := avgMonthly / 4
		if len(weekTotals) > 0 {
			avgWeekly = ComputeSeriesStats(weekTotals).Mean
		}

		projected := current
		if day > 0 {
			projected = current / float64(day) * float64(daysInMonth)
		}

		p := CategoryPattern{
			Category:       category,
			HistoricalAvg:  core.Round2(avgMonthly),
			AvgWeeklySpend: core.Round2(avgWeekly),
			CurrentMTD:     core.Round2(current),
			CurrentWeek:    core.Round2(currentWeekSpend),
			Projected:      core.Round2(projected),
			Min:            core.Round2(stats.Min),
			Max:            core.Round2(stats.Max),
			MonthsOfData:   len(months),
			Status:         "normal",
		}
		if avgMonthly > 0 {
			p.Variance = core.Round2((projected - avgMonthly) / avgMonthly * 100)
		}
		if avgWeekly > 0 {
			p.WeeklyVariance = core.Round2((currentWeekSpend - avgWeekly) / avgWeekly * 100)
		}

		if avgMonthly >= minMonthlySignificance {
			switch {
			case current > avgMonthly*highVarianceFactor:
				p.Status = "high"
				variancePct := (current - avgMonthly) / avgMonthly * 100
				severity := "medium"
				if variancePct > highSeverityPct {
					severity = "high"
				}
				alerts = append(alerts, PatternAlert{
					Category:      category,
					Message:       fmt.Sprintf("%s: Already %.0f%% above your typical monthly spending", category, math.Abs(variancePct)),
					Detail:        fmt.Sprintf("You've spent $%.2f so far this month (typical full month: $%.2f)", current, avgMonthly),
					Severity:      severity,
					CurrentAmount: core.Round2(current),
					TypicalAmount: core.Round2(avgMonthly),
					Difference:    core.Round2(current - avgMonthly),
					VariancePct:   math.Abs(variancePct),
				})
			case avgWeekly >= minWeeklySignificance && len(weekTotals) >= 2 &&
				currentWeekSpend > avgWeekly*highVarianceFactor:
				p.Status = "high"
				weekVariance := (currentWeekSpend - avgWeekly) / avgWeekly * 100
				severity := "medium"
				if weekVariance >= highSeverityPct {
					severity = "high"
				}
				alerts = append(alerts, PatternAlert{
					Category:      category,
					Message:       fmt.Sprintf("%s: You're spending more than usual this week", category),
					Detail:        fmt.Sprintf("$%.2f this week vs. typical $%.2f for this time of month", currentWeekSpend, avgWeekly),
					Severity:      severity,
					CurrentAmount: core.Round2(currentWeekSpend),
					TypicalAmount: core.Round2(avgWeekly),
					Difference:    core.Round2(currentWeekSpend - avgWeekly),
					VariancePct:   math.Abs(weekVariance),
				})
			case current < avgMonthly*lowVarianceFactor && current > 0:
				p.Status = "low"
				insights = append(insights, PatternInsight{
					Type:     "positive",
					Category: category,
					Message:  fmt.Sprintf("%s: Spending less than usual so far", category),
					Detail:   fmt.Sprintf("$%.2f so far vs. typical $%.2f for full month", current, avgMonthly),
				})
			}
		}
		patterns = append(patterns, p)
	}

	sort.Slice(patterns, func(i, j int) bool {
		return math.Abs(patterns[i].Variance) > math.Abs(patterns[j].Variance)
	})
	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity == "high"
		}
		return alerts[i].VariancePct > alerts[j].VariancePct
	})

	if day > 0 {
		dailyRate := w.TotalCurrentSpending() / float64(day)
		insights = append(insights, PatternInsight{
			Type:     "info",
			Category: "Overall",
			Message:  fmt.Sprintf("Daily spending rate: $%.2f/day", dailyRate),
			Detail:   fmt.Sprintf("Based on %d days of spending data this month", day),
		})
	}

	var recs []string
	switch {
	case len(alerts) > 3:
		recs = append(recs, "Multiple categories are above typical levels - consider reviewing your spending priorities")
	case len(alerts) > 0:
		recs = append(recs, fmt.Sprintf("Focus on %s - it's the furthest from your typical pattern", alerts[0].Category))
	}
	if len(insights) > 2 {
		recs = append(recs, "Great job! You're spending less than usual in several categories")
	}
	if len(recs) == 0 {
		recs = append(recs, "Your spending patterns are consistent with your history - keep it up!")
	}

	maxMonths := 0
	for _, p := range patterns {
		if p.MonthsOfData > maxMonths {
			maxMonths = p.MonthsOfData
		}
	}
	res.HasSufficientData = len(patterns) >= 3 && maxMonths >= 2
	if !res.HasSufficientData {
		insights = append([]PatternInsight{{
			Type:     "info",
			Category: "Data",
			Message:  "Building your spending history",
			Detail:   "Add more transactions over time to get personalized spending pattern alerts",
		}}, insights...)
	}

	res.TotalCategories = len(patterns)
	res.MonthsAnalyzed = maxMonths
	if len(patterns) > maxPatterns {
		patterns = patterns[:maxPatterns]
	}
	res.Patterns = patterns
	res.Alerts = alerts
	res.Insights = insights
	res.Recommendations = recs
	return res
}
