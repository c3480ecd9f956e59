package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"fintrack/internal/core"
)

// MetricChange is one metric compared between two months.
type MetricChange struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
	Direction     string  `json:"direction"`
}

// MonthRef names a calendar month.
type MonthRef struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
}

// ComparisonInsight is one observation derived from the month deltas.
type ComparisonInsight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MonthComparison compares the snapshot month against the month before it.
type MonthComparison struct {
	CurrentMonth     MonthRef            `json:"current_month"`
	PreviousMonth    MonthRef            `json:"previous_month"`
	Income           MetricChange        `json:"income"`
	Expenses         MetricChange        `json:"expenses"`
	Spending         MetricChange        `json:"spending"`
	Savings          MetricChange        `json:"savings"`
	TransactionCount MetricChange        `json:"transaction_count"`
	HasData          bool                `json:"has_data"`
	Insights         []ComparisonInsight `json:"insights"`
}

// monthMetrics is one month's budget figures. Income and fixed expenses come
// from the current declarations, so they only differ between months when the
// declarations changed; spending and counts come from that month's
// transactions.
type monthMetrics struct {
	income   float64
	expenses float64
	spending float64
	savings  float64
	txCount  int
}

func metricsForMonth(snap core.Snapshot, year, month int) monthMetrics {
	var m monthMetrics
	for _, inc := range snap.Incomes {
		m.income += MonthlyEquivalent(inc.Amount, inc.Frequency)
	}
	for _, fe := range snap.Expenses {
		m.expenses += fe.Amount
	}
	for _, tx := range snap.Transactions {
		if tx.Amount <= 0 || tx.Date.IsZero() {
			continue
		}
		if tx.Date.Year() == year && tx.Date.Month() == month {
			m.spending += tx.Amount
			m.txCount++
		}
	}
	m.savings = m.income - m.expenses - m.spending
	return m
}

func changeOf(current, previous float64) MetricChange {
	change := current - previous
	var pct float64
	switch {
	case previous != 0:
		pct = change / previous * 100
	case change > 0:
		pct = 100
	}
	direction := "same"
	switch {
	case change > 0:
		direction = "up"
	case change < 0:
		direction = "down"
	}
	return MetricChange{
		Current:       core.Round2(current),
		Previous:      core.Round2(previous),
		Change:        core.Round2(change),
		PercentChange: math.Round(pct*10) / 10,
		Direction:     direction,
	}
}

func monthName(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

// CompareMonths reports how the snapshot month tracks against the previous
// one: income, fixed expenses, spending, implied savings, transaction count,
// each with a signed delta and direction.
func CompareMonths(snap core.Snapshot) MonthComparison {
	now := snap.TakenAt
	curYear, curMonth := now.Year(), now.Month()
	prevYear, prevMonth := curYear, curMonth-1
	if prevMonth == 0 {
		prevYear, prevMonth = curYear-1, 12
	}

	current := metricsForMonth(snap, curYear, curMonth)
	previous := metricsForMonth(snap, prevYear, prevMonth)

	cmp := MonthComparison{
		CurrentMonth:     MonthRef{Year: curYear, Month: curMonth, MonthName: monthName(curYear, curMonth)},
		PreviousMonth:    MonthRef{Year: prevYear, Month: prevMonth, MonthName: monthName(prevYear, prevMonth)},
		Income:           changeOf(current.income, previous.income),
		Expenses:         changeOf(current.expenses, previous.expenses),
		Spending:         changeOf(current.spending, previous.spending),
		Savings:          changeOf(current.savings, previous.savings),
		TransactionCount: changeOf(float64(current.txCount), float64(previous.txCount)),
		HasData:          current.txCount > 0 || previous.txCount > 0,
	}

	if cmp.Spending.Direction == "down" && math.Abs(cmp.Spending.PercentChange) > 5 {
		cmp.Insights = append(cmp.Insights, ComparisonInsight{
			Type:    "positive",
			Message: fmt.Sprintf("Great job! Spending decreased by %.1f%% from last month", math.Abs(cmp.Spending.PercentChange)),
		})
	} else if cmp.Spending.Direction == "up" && cmp.Spending.PercentChange > 10 {
		cmp.Insights = append(cmp.Insights, ComparisonInsight{
			Type:    "warning",
			Message: fmt.Sprintf("Spending increased by %.1f%% from last month", cmp.Spending.PercentChange),
		})
	}
	if cmp.Savings.Direction == "up" && cmp.Savings.Change > 0 {
		cmp.Insights = append(cmp.Insights, ComparisonInsight{
			Type:    "positive",
			Message: fmt.Sprintf("Saving $%.2f more than last month", cmp.Savings.Change),
		})
	} else if cmp.Savings.Direction == "down" && math.Abs(cmp.Savings.Change) > 100 {
		cmp.Insights = append(cmp.Insights, ComparisonInsight{
			Type:    "warning",
			Message: fmt.Sprintf("Savings decreased by $%.2f from last month", math.Abs(cmp.Savings.Change)),
		})
	}
	if cmp.TransactionCount.Direction == "up" && cmp.TransactionCount.PercentChange > 20 {
		cmp.Insights = append(cmp.Insights, ComparisonInsight{
			Type:    "info",
			Message: fmt.Sprintf("%d more transactions than last month", int(cmp.TransactionCount.Change)),
		})
	}
	return cmp
}

// TrendChart is a label-aligned series for one chart line.
type TrendChart struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// TrendSeries is one dataset of a stacked or comparison chart.
type TrendSeries struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// TrendDatasets groups several series over the same month labels.
type TrendDatasets struct {
	Labels   []string      `json:"labels"`
	Datasets []TrendSeries `json:"datasets"`
}

// TrendStats summarizes the monthly totals of the trend window.
type TrendStats struct {
	Average          float64 `json:"average"`
	Median           float64 `json:"median"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Total            float64 `json:"total"`
	MonthsWithIncome int     `json:"months_with_income"`
	TotalMonths      int     `json:"total_months"`
	Trend            string  `json:"trend"`
}

// TrendPeriod names the window the trend covers.
type TrendPeriod struct {
	Months int    `json:"months"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// IncomeTrends is the per-month income history split by source and earner.
type IncomeTrends struct {
	TotalIncome TrendChart    `json:"total_income"`
	BySource    TrendDatasets `json:"by_source"`
	ByEarner    TrendDatasets `json:"by_earner"`
	Statistics  TrendStats    `json:"statistics"`
	Period      TrendPeriod   `json:"period"`
}

// DefaultTrendMonths is the income trend window when the caller does not ask
// for a specific one.
const DefaultTrendMonths = 12

// ComputeIncomeTrends buckets actual payments into the last monthsBack
// calendar months, ending at the snapshot month, and splits the totals by
// source and earner.
func ComputeIncomeTrends(snap core.Snapshot, monthsBack int) IncomeTrends {
	if monthsBack <= 0 {
		monthsBack = DefaultTrendMonths
	}
	now := snap.TakenAt

	// Month keys oldest first, stepping whole calendar months.
	keys := make([]string, 0, monthsBack)
	labels := make([]string, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		y, m := now.Year(), now.Month()-i
		for m <= 0 {
			m += 12
			y--
		}
		keys = append(keys, core.MonthKeyOf(y, m))
		labels = append(labels, fmt.Sprintf("%s %d", time.Month(m).String()[:3], y))
	}
	inWindow := make(map[string]int, len(keys))
	for i, k := range keys {
		inWindow[k] = i
	}

	totals := make([]float64, len(keys))
	bySource := make(map[string][]float64)
	byEarner := make(map[string][]float64)
	for _, inc := range snap.Incomes {
		earner := inc.Earner
		if earner == "" {
			earner = "Unassigned"
		}
		for _, p := range inc.Payments {
			if p.Amount <= 0 || p.Date.IsZero() {
				continue
			}
			idx, ok := inWindow[p.Date.MonthKey()]
			if !ok {
				continue
			}
			totals[idx] += p.Amount
			if bySource[inc.Name] == nil {
				bySource[inc.Name] = make([]float64, len(keys))
			}
			bySource[inc.Name][idx] += p.Amount
			if byEarner[earner] == nil {
				byEarner[earner] = make([]float64, len(keys))
			}
			byEarner[earner][idx] += p.Amount
		}
	}

	roundSeries := func(values []float64) []float64 {
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = core.Round2(v)
		}
		return out
	}
	datasetsOf := func(m map[string][]float64) []TrendSeries {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]TrendSeries, 0, len(names))
		for _, name := range names {
			out = append(out, TrendSeries{Label: name, Data: roundSeries(m[name])})
		}
		return out
	}

	var nonZero []float64
	var total float64
	for _, v := range totals {
		total += v
		if v > 0 {
			nonZero = append(nonZero, v)
		}
	}
	sorted := make([]float64, len(totals))
	copy(sorted, totals)
	sort.Float64s(sorted)

	stats := TrendStats{
		Total:            core.Round2(total),
		MonthsWithIncome: len(nonZero),
		TotalMonths:      len(keys),
		Trend:            "stable",
	}
	if len(totals) > 0 {
		stats.Average = core.Round2(total / float64(len(totals)))
		stats.Median = core.Round2(sorted[len(sorted)/2])
		stats.Max = core.Round2(sorted[len(sorted)-1])
	}
	if len(nonZero) > 0 {
		stats.Min = core.Round2(nonZero[0])
		for _, v := range nonZero {
			if v < stats.Min {
				stats.Min = core.Round2(v)
			}
		}
	}
	// Trend splits the income-bearing months in half and compares averages.
	if len(nonZero) >= 3 {
		first := meanOf(nonZero[:len(nonZero)/2])
		second := meanOf(nonZero[len(nonZero)/2:])
		switch {
		case second > first*1.1:
			stats.Trend = "increasing"
		case second < first*0.9:
			stats.Trend = "decreasing"
		}
	}

	trends := IncomeTrends{
		TotalIncome: TrendChart{Labels: labels, Data: roundSeries(totals)},
		BySource:    TrendDatasets{Labels: labels, Datasets: datasetsOf(bySource)},
		ByEarner:    TrendDatasets{Labels: labels, Datasets: datasetsOf(byEarner)},
		Statistics:  stats,
		Period:      TrendPeriod{Months: monthsBack},
	}
	if len(labels) > 0 {
		trends.Period.Start = labels[0]
		trends.Period.End = labels[len(labels)-1]
	}
	return trends
}

// YearTopSource is one of a year's largest income sources.
type YearTopSource struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// YearChange is the delta from the year before.
type YearChange struct {
	Amount    float64 `json:"amount"`
	Percent   float64 `json:"percent"`
	Direction string  `json:"direction"`
}

// YearSummary is one year's income rollup.
type YearSummary struct {
	Year               int                `json:"year"`
	Total              float64            `json:"total"`
	MonthlyAverage     float64            `json:"monthly_average"`
	PaymentCount       int                `json:"payment_count"`
	MonthsWithIncome   int                `json:"months_with_income"`
	ByMonth            map[int]float64    `json:"by_month"`
	TopSources         []YearTopSource    `json:"top_sources"`
	ByEarner           map[string]float64 `json:"by_earner"`
	ChangeFromPrevious *YearChange        `json:"change_from_previous,omitempty"`
}

// YearOverYearStats summarizes the whole comparison.
type YearOverYearStats struct {
	TotalYears     int     `json:"total_years"`
	TotalAllYears  float64 `json:"total_all_years"`
	AveragePerYear float64 `json:"average_per_year"`
	OverallTrend   string  `json:"overall_trend"`
	EarliestYear   int     `json:"earliest_year"`
	LatestYear     int     `json:"latest_year"`
}

// YearOverYear compares income across every year with recorded payments.
type YearOverYear struct {
	HasData    bool              `json:"has_data"`
	Years      []YearSummary     `json:"years"`
	Statistics YearOverYearStats `json:"statistics"`
}

type yearAccumulator struct {
	total    float64
	byMonth  map[int]float64
	bySource map[string]float64
	byEarner map[string]float64
	payments int
}

// CompareIncomeYears rolls payments up per calendar year, most recent year
// first, with per-year deltas against the year before.
func CompareIncomeYears(snap core.Snapshot) YearOverYear {
	acc := make(map[int]*yearAccumulator)
	for _, inc := range snap.Incomes {
		earner := inc.Earner
		if earner == "" {
			earner = "Unassigned"
		}
		for _, p := range inc.Payments {
			if p.Date.IsZero() {
				continue
			}
			y := p.Date.Year()
			a := acc[y]
			if a == nil {
				a = &yearAccumulator{
					byMonth:  make(map[int]float64),
					bySource: make(map[string]float64),
					byEarner: make(map[string]float64),
				}
				acc[y] = a
			}
			a.total += p.Amount
			a.byMonth[p.Date.Month()] += p.Amount
			a.bySource[inc.Name] += p.Amount
			a.byEarner[earner] += p.Amount
			a.payments++
		}
	}
	if len(acc) == 0 {
		return YearOverYear{}
	}

	years := make([]int, 0, len(acc))
	for y := range acc {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := YearOverYear{HasData: true, Years: make([]YearSummary, 0, len(years))}
	var totalAll float64
	for _, y := range years {
		a := acc[y]
		monthsWith := 0
		byMonth := make(map[int]float64, len(a.byMonth))
		for m, amount := range a.byMonth {
			byMonth[m] = core.Round2(amount)
			if amount > 0 {
				monthsWith++
			}
		}
		var monthlyAvg float64
		if monthsWith > 0 {
			monthlyAvg = a.total / float64(monthsWith)
		}

		type namedAmount struct {
			name   string
			amount float64
		}
		sources := make([]namedAmount, 0, len(a.bySource))
		for name, amount := range a.bySource {
			sources = append(sources, namedAmount{name, amount})
		}
		sort.SliceStable(sources, func(i, j int) bool {
			if sources[i].amount != sources[j].amount {
				return sources[i].amount > sources[j].amount
			}
			return sources[i].name < sources[j].name
		})
		if len(sources) > 5 {
			sources = sources[:5]
		}
		top := make([]YearTopSource, 0, len(sources))
		for _, s := range sources {
			top = append(top, YearTopSource{Name: s.name, Amount: core.Round2(s.amount)})
		}
		byEarner := make(map[string]float64, len(a.byEarner))
		for earner, amount := range a.byEarner {
			byEarner[earner] = core.Round2(amount)
		}

		out.Years = append(out.Years, YearSummary{
			Year:             y,
			Total:            core.Round2(a.total),
			MonthlyAverage:   core.Round2(monthlyAvg),
			PaymentCount:     a.payments,
			MonthsWithIncome: monthsWith,
			ByMonth:          byMonth,
			TopSources:       top,
			ByEarner:         byEarner,
		})
		totalAll += a.total
	}

	for i := 0; i < len(out.Years)-1; i++ {
		cur := &out.Years[i]
		prev := out.Years[i+1]
		change := cur.Total - prev.Total
		yc := YearChange{Amount: core.Round2(change)}
		if prev.Total > 0 {
			yc.Percent = core.Round2(change / prev.Total * 100)
		} else {
			yc.Amount = cur.Total
			yc.Percent = 100
		}
		switch {
		case change > 0:
			yc.Direction = "increase"
		case change < 0:
			yc.Direction = "decrease"
		default:
			yc.Direction = "stable"
		}
		cur.ChangeFromPrevious = &yc
	}

	out.Statistics = YearOverYearStats{
		TotalYears:     len(years),
		TotalAllYears:  core.Round2(totalAll),
		AveragePerYear: core.Round2(totalAll / float64(len(years))),
		OverallTrend:   "stable",
		EarliestYear:   years[len(years)-1],
		LatestYear:     years[0],
	}
	latest := out.Years[0].Total
	earliest := out.Years[len(out.Years)-1].Total
	switch {
	case latest > earliest*1.1:
		out.Statistics.OverallTrend = "increasing"
	case latest < earliest*0.9:
		out.Statistics.OverallTrend = "decreasing"
	}
	return out
}
