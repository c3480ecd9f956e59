package analytics

import (
	"fmt"
	"math"

	"fintrack/internal/core"
)

// UpcomingBillRef is a bill still due later this month.
type UpcomingBillRef struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	DueDay int     `json:"due_date"`
}

// SpendingVelocity compares the actual daily spending rate against a safe
// rate that reserves money for bills still due this month.
type SpendingVelocity struct {
	ActualDailyRate     float64           `json:"actual_daily_rate"`
	SafeDailyRate       float64           `json:"safe_daily_rate"`
	Status              string            `json:"status"`
	StatusText          string            `json:"status_text"`
	Message             string            `json:"message"`
	DaysPassed          int               `json:"days_passed"`
	DaysRemaining       int               `json:"days_remaining"`
	MTDSpent            float64           `json:"mtd_spent"`
	RemainingMoney      float64           `json:"remaining_money"`
	RemainingAfterBills float64           `json:"remaining_money_after_bills"`
	UpcomingBills       float64           `json:"upcoming_bills"`
	UpcomingBillCount   int               `json:"upcoming_bill_count"`
	UpcomingBillsList   []UpcomingBillRef `json:"upcoming_bills_list"`
	ProjectedRemaining  float64           `json:"projected_remaining"`
	TransactionCount    int               `json:"transaction_count"`
}

// ComputeVelocity derives the spending-velocity report from one snapshot.
// On the last day of the month the safe rate is forced to 0 and status falls
// back to a simple over/under check against the remaining budget.
func ComputeVelocity(snap core.Snapshot) SpendingVelocity {
	mc := buildMonthContext(snap)

	upcoming, upcomingCount := billsDueLaterThisMonth(snap, mc.day)
	var upcomingList []UpcomingBillRef
	for _, fe := range snap.Expenses {
		if fe.DueDay > mc.day {
			upcomingList = append(upcomingList, UpcomingBillRef{Name: fe.Name, Amount: fe.Amount, DueDay: fe.DueDay})
		}
	}

	available := mc.availableForMonth()
	actualRate := mc.dailyRate()
	remaining := available - mc.mtdSpent
	remainingAfterBills := remaining - upcoming

	var safeRate float64
	if mc.daysRemaining > 0 {
		safeRate = remainingAfterBills / float64(mc.daysRemaining)
	}

	var status, statusText, message string
	if mc.daysRemaining == 0 {
		safeRate = 0
		if remaining < 0 {
			status, statusText = "danger", "Over Budget"
			message = fmt.Sprintf("You spent $%.2f more than your budget this month.", math.Abs(remaining))
		} else {
			status, statusText = "success", "Month Complete"
			message = fmt.Sprintf("Great job! You have $%.2f left over.", remaining)
		}
	} else {
		switch {
		case remainingAfterBills < 0:
			status, statusText = "danger", "Critical!"
			message = fmt.Sprintf("Warning: You have $%.2f in upcoming bills but only $%.2f remaining. Reduce spending immediately!", upcoming, remaining)
		case actualRate <= safeRate*0.9:
			status, statusText = "success", "On Track"
			if upcoming > 0 {
				message = fmt.Sprintf("You're spending at a healthy pace! You have $%.2f in upcoming bills accounted for.", upcoming)
			} else {
				message = "You're spending at a healthy pace! Keep it up."
			}
		case actualRate <= safeRate*1.1:
			status, statusText = "success", "Good Pace"
			if upcoming > 0 {
				message = fmt.Sprintf("You're on track with your spending. $%.2f set aside for upcoming bills.", upcoming)
			} else {
				message = "You're right on track with your spending."
			}
		case actualRate <= safeRate*1.3:
			status, statusText = "warning", "Spending Fast"
			if upcoming > 0 {
				message = fmt.Sprintf("You're spending a bit fast. Remember, you have $%.2f in bills coming up. Try to stay under $%.2f/day.", upcoming, safeRate)
			} else {
				message = fmt.Sprintf("You're spending a bit fast. Try to slow down to $%.2f/day.", safeRate)
			}
		default:
			status, statusText = "danger", "Too Fast!"
			overspend := (actualRate - safeRate) * float64(mc.daysRemaining)
			if upcoming > 0 {
				message = fmt.Sprintf("Danger: At this rate, you'll overspend by $%.2f! You also have $%.2f in upcoming bills!", overspend, upcoming)
			} else {
				message = fmt.Sprintf("Warning: At this rate, you'll overspend by $%.2f this month!", overspend)
			}
		}
	}

	projectedRemaining := available - actualRate*float64(mc.daysInMonth)

	return SpendingVelocity{
		ActualDailyRate:     core.Round2(actualRate),
		SafeDailyRate:       core.Round2(safeRate),
		Status:              status,
		StatusText:          statusText,
		Message:             message,
		DaysPassed:          mc.day,
		DaysRemaining:       mc.daysRemaining,
		MTDSpent:            core.Round2(mc.mtdSpent),
		RemainingMoney:      core.Round2(remaining),
		RemainingAfterBills: core.Round2(remainingAfterBills),
		UpcomingBills:       core.Round2(upcoming),
		UpcomingBillCount:   upcomingCount,
		UpcomingBillsList:   upcomingList,
		ProjectedRemaining:  core.Round2(projectedRemaining),
		TransactionCount:    mc.txCount,
	}
}
