package analytics

import (
	"fmt"
	"math"

	"fintrack/internal/core"
)

// OverdraftMetrics carries the numbers behind the risk assessment.
type OverdraftMetrics struct {
	CheckingBalance    float64 `json:"checking_balance"`
	SavingsBalance     float64 `json:"savings_balance"`
	TotalLiquid        float64 `json:"total_liquid"`
	RemainingMoney     float64 `json:"remaining_money"`
	UpcomingBills      float64 `json:"upcoming_bills"`
	ProjectedRemaining float64 `json:"projected_remaining"`
	DaysRemaining      int     `json:"days_remaining"`
}

// OverdraftStatus is the color-coded risk assessment.
type OverdraftStatus struct {
	RiskLevel       string           `json:"risk_level"`
	Warnings        []string         `json:"warnings"`
	Recommendations []string         `json:"recommendations"`
	Metrics         OverdraftMetrics `json:"metrics"`
}

// AssessOverdraftRisk walks an ordered list of checks, most severe first,
// and reports the first band that matches: critical, warning or safe.
func AssessOverdraftRisk(snap core.Snapshot) OverdraftStatus {
	mc := buildMonthContext(snap)

	daysRemaining := mc.daysRemaining
	if daysRemaining == 0 {
		daysRemaining = 1
	}

	checking := snap.CheckingBalance()
	savings := snap.SavingsBalance()
	liquid := checking + savings
	upcoming := billsDueWithin(snap, 7)

	available := mc.availableForMonth()
	remaining := available - mc.mtdSpent
	projectedRemaining := available - mc.dailyRate()*float64(mc.daysInMonth)

	risk := "safe"
	var warnings, recs []string

	switch {
	case checking < 0:
		risk = "critical"
		warnings = append(warnings, fmt.Sprintf("Your checking account is overdrawn by $%.2f", math.Abs(checking)))
		recs = append(recs,
			"Contact your bank immediately to avoid overdraft fees",
			"Transfer from savings if available")
	case checking < 100 && upcoming > checking:
		risk = "critical"
		warnings = append(warnings, fmt.Sprintf("Insufficient funds for upcoming bills ($%.2f due)", upcoming))
		recs = append(recs, fmt.Sprintf("Transfer $%.2f from savings to checking", upcoming-checking+50))
	case remaining < 0:
		risk = "critical"
		warnings = append(warnings, fmt.Sprintf("You've overspent by $%.2f this month", math.Abs(remaining)))
		recs = append(recs,
			"Stop all non-essential spending immediately",
			"Review recent transactions for unnecessary expenses")
	case projectedRemaining < -100:
		risk = "critical"
		warnings = append(warnings, fmt.Sprintf("At current spending rate, you'll be $%.2f over budget", math.Abs(projectedRemaining)))
		recs = append(recs, fmt.Sprintf("Reduce daily spending to $%.2f per day", remaining/float64(daysRemaining)))
	case checking < 200:
		risk = "warning"
		warnings = append(warnings, fmt.Sprintf("Low checking balance: $%.2f", checking))
		recs = append(recs,
			"Transfer funds from savings if needed",
			"Postpone non-essential purchases")
	case upcoming > 0 && checking < upcoming*1.5:
		risk = "warning"
		warnings = append(warnings, fmt.Sprintf("$%.2f in bills due within 7 days", upcoming))
		recs = append(recs, "Ensure funds are available for upcoming bills")
	case remaining < 100:
		risk = "warning"
		warnings = append(warnings, fmt.Sprintf("Only $%.2f left for the month", remaining))
		recs = append(recs, fmt.Sprintf("Limit spending to $%.2f per day", remaining/float64(daysRemaining)))
	case projectedRemaining < 0:
		risk = "warning"
		warnings = append(warnings, "Spending faster than recommended")
		recs = append(recs, fmt.Sprintf("Slow down to $%.2f per day to avoid overdraft", remaining/float64(daysRemaining)))
	default:
		if liquid > 0 {
			warnings = append(warnings, "Your finances are on track")
			recs = append(recs,
				"Keep monitoring your spending",
				"Consider saving any surplus funds")
		} else {
			risk = "warning"
			warnings = append(warnings, "Add account balances to track overdraft risk")
			recs = append(recs, "Link your checking and savings accounts")
		}
	}

	if mc.totalIncome == 0 && len(snap.Accounts) == 0 {
		risk = "warning"
		warnings = []string{"Set up your income and accounts to track overdraft risk"}
		recs = []string{
			"Add your checking account balance",
			"Add your income sources",
			"Add your fixed monthly expenses",
		}
	}

	return OverdraftStatus{
		RiskLevel:       risk,
		Warnings:        warnings,
		Recommendations: recs,
		Metrics: OverdraftMetrics{
			CheckingBalance:    core.Round2(checking),
			SavingsBalance:     core.Round2(savings),
			TotalLiquid:        core.Round2(liquid),
			RemainingMoney:     core.Round2(remaining),
			UpcomingBills:      core.Round2(upcoming),
			ProjectedRemaining: core.Round2(projectedRemaining),
			DaysRemaining:      daysRemaining,
		},
	}
}
