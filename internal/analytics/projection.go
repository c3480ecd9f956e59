package analytics

import (
	"fmt"
	"math"

	"fintrack/internal/core"
)

// UpcomingPaycheck is income still expected before month end.
type UpcomingPaycheck struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	DaysAway int     `json:"days_away"`
}

// UnpaidBill is a fixed expense still due later this month.
type UnpaidBill struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	DueDay   int     `json:"due_day"`
	DaysAway int     `json:"days_away"`
}

// ProjectionBreakdown itemizes the projection inputs.
type ProjectionBreakdown struct {
	StartingBalance   float64            `json:"starting_balance"`
	CheckingBalance   float64            `json:"checking_balance"`
	SavingsBalance    float64            `json:"savings_balance"`
	ExpectedIncome    float64            `json:"expected_income"`
	UpcomingPaychecks []UpcomingPaycheck `json:"upcoming_paychecks"`
	RemainingExpenses float64            `json:"remaining_expenses"`
	UnpaidBills       []UnpaidBill       `json:"unpaid_bills"`
	MTDSpending       float64            `json:"mtd_spending"`
	DailyAverage      float64            `json:"daily_average"`
	ProjectedSpending float64            `json:"projected_remaining_spending"`
	DaysRemaining     int                `json:"days_remaining"`
	DaysElapsed       int                `json:"days_elapsed"`
}

// BalanceProjection is the end-of-month outlook: starting liquid balance,
// income still expected, unpaid bills, and current spending pace carried
// forward.
type BalanceProjection struct {
	ProjectedBalance float64             `json:"projected_balance"`
	StartingBalance  float64             `json:"starting_balance"`
	BalanceChange    float64             `json:"balance_change"`
	Status           string              `json:"status"`
	StatusText       string              `json:"status_text"`
	Insights         []string            `json:"insights"`
	Recommendations  []string            `json:"recommendations"`
	Breakdown        ProjectionBreakdown `json:"breakdown"`
	CurrentDay       int                 `json:"current_day"`
	DaysInMonth      int                 `json:"days_in_month"`
	DaysRemaining    int                 `json:"days_remaining"`
	HasData          bool                `json:"has_data"`
}

// ProjectBalance computes the projected end-of-month liquid balance and
// bands it against a buffer of 25% of monthly fixed expenses.
func ProjectBalance(snap core.Snapshot) BalanceProjection {
	mc := buildMonthContext(snap)
	now := mc.now

	checking := snap.CheckingBalance()
	savings := snap.SavingsBalance()
	starting := checking + savings

	// income still expected this month
	var expectedIncome float64
	var paychecks []UpcomingPaycheck
	for _, inc := range snap.Incomes {
		d := inc.NextPayDate
		if d.IsZero() {
			continue
		}
		if d.Year() == now.Year() && d.Month() == now.Month() && d.Day() > now.Day() {
			expectedIncome += inc.Amount
			name := inc.Earner
			if name == "" {
				name = inc.Name
			}
			paychecks = append(paychecks, UpcomingPaycheck{
				Name:     name,
				Amount:   inc.Amount,
				Date:     d.Format("Jan 02"),
				DaysAway: d.Day() - now.Day(),
			})
		}
	}

	// bills still due and unpaid this month
	var remainingExpenses float64
	var unpaid []UnpaidBill
	for _, fe := range snap.Expenses {
		if fe.DueDay > now.Day() && !fe.IsPaidIn(now.Year(), now.Month()) {
			remainingExpenses += fe.Amount
			unpaid = append(unpaid, UnpaidBill{
				Name:     fe.Name,
				Amount:   fe.Amount,
				DueDay:   fe.DueDay,
				DaysAway: fe.DueDay - now.Day(),
			})
		}
	}

	dailyAvg := mc.dailyRate()
	projectedSpending := dailyAvg * float64(mc.daysRemaining)
	projected := starting + expectedIncome - remainingExpenses - projectedSpending
	change := projected - starting

	buffer := mc.totalExpenses * 0.25
	var status, statusText string
	switch {
	case projected < 0:
		status, statusText = "critical", "Overdraft Risk"
	case projected < buffer:
		status, statusText = "warning", "Low Balance"
	case projected < buffer*2:
		status, statusText = "caution", "Tight Budget"
	default:
		status, statusText = "healthy", "On Track"
	}

	var insights, recs []string
	if mc.day > 0 {
		pctOfMonth := float64(mc.day) / float64(mc.daysInMonth) * 100
		var pctSpent float64
		if avail := mc.availableForMonth(); avail > 0 {
			pctSpent = mc.mtdSpent / avail * 100
		}
		if pctSpent > pctOfMonth+10 {
			insights = append(insights, fmt.Sprintf("You're spending faster than the month is progressing (%.0f%% spent vs %.0f%% of month elapsed)", pctSpent, pctOfMonth))
			recs = append(recs, "Consider reducing discretionary spending to stay on track")
		} else if pctSpent < pctOfMonth-10 {
			insights = append(insights, fmt.Sprintf("Great job! You're spending slower than expected (%.0f%% spent vs %.0f%% of month elapsed)", pctSpent, pctOfMonth))
		}
	}
	if len(unpaid) > 0 {
		plural := "s"
		if len(unpaid) == 1 {
			plural = ""
		}
		insights = append(insights, fmt.Sprintf("You have %d unpaid bill%s remaining ($%.2f)", len(unpaid), plural, remainingExpenses))
	}
	if expectedIncome > 0 {
		insights = append(insights, fmt.Sprintf("Expecting $%.2f in income before month end", expectedIncome))
	} else {
		insights = append(insights, "No more expected income this month")
		if projected < 0 {
			recs = append(recs, "Consider a spending freeze until next paycheck")
		}
	}
	if status == "critical" || status == "warning" {
		if remainingExpenses > 0 {
			recs = append(recs, fmt.Sprintf("You have $%.2f in upcoming bills - ensure funds are available", remainingExpenses))
		}
		recs = append(recs, "Review non-essential spending and consider cutting back")
		if savings > 0 && projected < 0 {
			transfer := math.Abs(projected) + buffer
			if transfer <= savings {
				recs = append(recs, fmt.Sprintf("Consider transferring $%.2f from savings to checking as a buffer", transfer))
			}
		}
	}
	if status == "healthy" && change > buffer {
		recs = append(recs, fmt.Sprintf("You're on track to have $%.2f extra - consider saving or allocating to goals", change-buffer))
	}

	return BalanceProjection{
		ProjectedBalance: core.Round2(projected),
		StartingBalance:  core.Round2(starting),
		BalanceChange:    core.Round2(change),
		Status:           status,
		StatusText:       statusText,
		Insights:         insights,
		Recommendations:  recs,
		Breakdown: ProjectionBreakdown{
			StartingBalance:   core.Round2(starting),
			CheckingBalance:   core.Round2(checking),
			SavingsBalance:    core.Round2(savings),
			ExpectedIncome:    core.Round2(expectedIncome),
			UpcomingPaychecks: paychecks,
			RemainingExpenses: core.Round2(remainingExpenses),
			UnpaidBills:       unpaid,
			MTDSpending:       core.Round2(mc.mtdSpent),
			DailyAverage:      core.Round2(dailyAvg),
			ProjectedSpending: core.Round2(projectedSpending),
			DaysRemaining:     mc.daysRemaining,
			DaysElapsed:       mc.day,
		},
		CurrentDay:    mc.day,
		DaysInMonth:   mc.daysInMonth,
		DaysRemaining: mc.daysRemaining,
		HasData:       len(snap.Accounts) > 0 || len(snap.Incomes) > 0 || len(snap.Expenses) > 0,
	}
}
