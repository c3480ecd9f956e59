package analytics

import (
	"fmt"
	"math"

	"fintrack/internal/core"
)

// ScoreBucket is one independently-capped factor of the health rubric.
type ScoreBucket struct {
	Score   int      `json:"score"`
	Max     int      `json:"max"`
	Factors []string `json:"factors"`
}

// HealthBreakdown holds the five rubric buckets. Their caps sum to 100.
type HealthBreakdown struct {
	AccountHealth     ScoreBucket `json:"account_health"`
	SpendingAdherence ScoreBucket `json:"spending_adherence"`
	SavingsRate       ScoreBucket `json:"savings_rate"`
	BillPayment       ScoreBucket `json:"bill_payment"`
	SetupCompleteness ScoreBucket `json:"setup_completeness"`
}

// HealthSummary repeats the headline figures behind the score.
type HealthSummary struct {
	TotalIncome    float64 `json:"total_income"`
	TotalExpenses  float64 `json:"total_expenses"`
	TotalLiquid    float64 `json:"total_liquid"`
	SavingsBalance float64 `json:"savings_balance"`
	MTDSpent       float64 `json:"mtd_spent"`
	RemainingMoney float64 `json:"remaining_money"`
}

// HealthScore is the 0-100 budget health rubric result.
type HealthScore struct {
	Score           int             `json:"score"`
	Grade           string          `json:"grade"`
	GradeText       string          `json:"grade_text"`
	Breakdown       HealthBreakdown `json:"breakdown"`
	Recommendations []string        `json:"recommendations"`
	HasData         bool            `json:"has_data"`
	Summary         HealthSummary   `json:"summary"`
}

// ScoreHealth applies the fixed 100-point rubric: account health 25,
// spending adherence 25, savings rate 20, bill payment capacity 20, setup
// completeness 10. The total is always the sum of the buckets.
func ScoreHealth(snap core.Snapshot) HealthScore {
	mc := buildMonthContext(snap)

	checking := snap.CheckingBalance()
	savings := snap.SavingsBalance()
	credit := snap.CreditBalance()
	liquid := checking + savings
	upcoming := billsDueWithin(snap, 7)

	available := mc.availableForMonth()
	remaining := available - mc.mtdSpent

	account := ScoreBucket{Max: 25}
	adherence := ScoreBucket{Max: 25}
	savingsRate := ScoreBucket{Max: 20}
	billPay := ScoreBucket{Max: 20}
	setup := ScoreBucket{Max: 10}

	// account health: checking buffer, emergency fund months, credit debt
	if len(snap.Accounts) > 0 {
		switch {
		case checking >= 1000:
			account.add(10, "Healthy checking balance")
		case checking >= 500:
			account.add(7, "Adequate checking balance")
		case checking >= 200:
			account.add(4, "Low checking balance")
		case checking >= 0:
			account.add(2, "Very low checking balance")
		default:
			account.note("Overdrawn checking account")
		}

		if mc.totalExpenses > 0 {
			months := savings / mc.totalExpenses
			switch {
			case months >= 6:
				account.add(10, fmt.Sprintf("Strong emergency fund (%.1f months)", months))
			case months >= 3:
				account.add(8, fmt.Sprintf("Adequate emergency fund (%.1f months)", months))
			case months >= 1:
				account.add(5, fmt.Sprintf("Building emergency fund (%.1f months)", months))
			case savings > 0:
				account.add(3, "Emergency fund needs growth")
			default:
				account.note("No emergency fund")
			}
		} else if savings > 1000 {
			account.add(8, "Good savings balance")
		} else if savings > 0 {
			account.add(4, "Savings needs growth")
		}

		switch {
		case credit > 0:
			account.add(5, "Credit card has positive balance")
		case credit == 0:
			account.add(5, "No credit card tracked")
		default:
			debt := math.Abs(credit)
			switch {
			case debt < 1000:
				account.add(3, fmt.Sprintf("Small credit debt ($%.2f)", debt))
			case debt < 5000:
				account.add(2, fmt.Sprintf("Moderate credit debt ($%.2f)", debt))
			default:
				account.add(1, fmt.Sprintf("High credit debt ($%.2f)", debt))
			}
		}
	} else {
		account.note("No accounts added yet")
	}

	// spending adherence: MTD spend against the budget expected so far
	if mc.totalIncome > 0 && available > 0 {
		expected := available / float64(mc.daysInMonth) * float64(mc.day)
		if expected > 0 {
			ratio := mc.mtdSpent / expected
			switch {
			case ratio <= 0.8:
				adherence.add(25, "Excellent spending discipline (under budget)")
			case ratio <= 1.0:
				adherence.add(20, "On track with budget")
			case ratio <= 1.2:
				adherence.add(15, "Slightly over budget")
			case ratio <= 1.5:
				adherence.add(10, "Over budget - reduce spending")
			default:
				adherence.add(5, "Significantly over budget")
			}
		}
		switch {
		case remaining >= available*0.5:
			adherence.note("Plenty of budget remaining")
		case remaining >= 0:
			adherence.note("Budget running low")
		default:
			adherence.note("Over budget for the month")
		}
	} else {
		adherence.note("Add income to track spending adherence")
	}

	// savings rate: what's left of income after expenses and MTD spending
	if mc.totalIncome > 0 {
		rate := (mc.totalIncome - mc.totalExpenses - mc.mtdSpent) / mc.totalIncome * 100
		switch {
		case rate >= 20:
			savingsRate.add(20, fmt.Sprintf("Excellent savings rate (%.1f%%)", rate))
		case rate >= 10:
			savingsRate.add(15, fmt.Sprintf("Good savings rate (%.1f%%)", rate))
		case rate >= 5:
			savingsRate.add(10, fmt.Sprintf("Modest savings rate (%.1f%%)", rate))
		case rate >= 0:
			savingsRate.add(5, fmt.Sprintf("Low savings rate (%.1f%%)", rate))
		default:
			savingsRate.note(fmt.Sprintf("Negative savings rate (%.1f%%)", rate))
		}
	} else {
		savingsRate.note("Add income to calculate savings rate")
	}

	// bill payment capacity: 7-day coverage plus overall liquidity
	if len(snap.Expenses) > 0 {
		if upcoming > 0 {
			switch {
			case checking >= upcoming*1.5:
				billPay.add(10, "Upcoming bills fully covered")
			case checking >= upcoming:
				billPay.add(7, "Upcoming bills covered")
			default:
				billPay.add(3, "Insufficient funds for upcoming bills")
			}
		} else {
			billPay.add(10, "No bills due in next 7 days")
		}
		switch {
		case liquid >= mc.totalExpenses*2:
			billPay.add(10, "Strong bill payment capacity")
		case liquid >= mc.totalExpenses:
			billPay.add(7, "Adequate bill payment capacity")
		case liquid >= mc.totalExpenses*0.5:
			billPay.add(4, "Limited bill payment capacity")
		default:
			billPay.add(2, "Low bill payment capacity")
		}
	} else {
		billPay.add(10, "No expenses tracked yet")
	}

	// setup completeness: flat points per populated collection
	if len(snap.Accounts) > 0 {
		setup.add(3, "Accounts configured")
	} else {
		setup.note("Add accounts")
	}
	if len(snap.Incomes) > 0 {
		setup.add(3, "Income sources added")
	} else {
		setup.note("Add income sources")
	}
	if len(snap.Expenses) > 0 {
		setup.add(2, "Expenses tracked")
	} else {
		setup.note("Add expenses")
	}
	if mc.txCount > 0 {
		setup.add(2, "Transactions recorded")
	} else {
		setup.note("Record transactions")
	}

	total := account.Score + adherence.Score + savingsRate.Score + billPay.Score + setup.Score

	grade, gradeText := gradeFor(total)

	var recs []string
	if weak(account) {
		if checking < 500 {
			recs = append(recs, "Build up your checking account buffer to at least $500")
		}
		if savings < mc.totalExpenses*3 {
			recs = append(recs, "Focus on building an emergency fund (target: 3-6 months expenses)")
		}
	}
	if weak(adherence) {
		recs = append(recs,
			"Reduce spending to stay within budget",
			"Review and cut non-essential expenses")
	}
	if weak(savingsRate) {
		recs = append(recs,
			"Increase savings rate to at least 10% of income",
			"Look for ways to reduce expenses or increase income")
	}
	if weak(billPay) {
		recs = append(recs,
			"Ensure sufficient funds for upcoming bills",
			"Consider setting up automatic transfers for bill payment")
	}
	if weak(setup) {
		recs = append(recs, "Complete your budget setup for better tracking")
	}
	switch {
	case total >= 80:
		recs = append(recs,
			"Great job! Keep up the good financial habits",
			"Consider increasing savings goals")
	case total >= 70:
		recs = append(recs, "You're doing well - focus on weak areas to improve further")
	}
	if len(recs) == 0 {
		recs = []string{
			"Complete your budget setup by adding accounts, income, and expenses",
			"Track your spending regularly",
			"Build an emergency fund",
			"Review your budget weekly",
		}
	}

	return HealthScore{
		Score:     total,
		Grade:     grade,
		GradeText: gradeText,
		Breakdown: HealthBreakdown{
			AccountHealth:     account,
			SpendingAdherence: adherence,
			SavingsRate:       savingsRate,
			BillPayment:       billPay,
			SetupCompleteness: setup,
		},
		Recommendations: recs,
		HasData:         len(snap.Accounts) > 0 || len(snap.Incomes) > 0 || len(snap.Expenses) > 0,
		Summary: HealthSummary{
			TotalIncome:    core.Round2(mc.totalIncome),
			TotalExpenses:  core.Round2(mc.totalExpenses),
			TotalLiquid:    core.Round2(liquid),
			SavingsBalance: core.Round2(savings),
			MTDSpent:       core.Round2(mc.mtdSpent),
			RemainingMoney: core.Round2(remaining),
		},
	}
}

// gradeFor maps a total score to its letter grade.
func gradeFor(total int) (string, string) {
	switch {
	case total >= 90:
		return "A+", "Excellent"
	case total >= 80:
		return "A", "Very Good"
	case total >= 70:
		return "B", "Good"
	case total >= 60:
		return "C", "Fair"
	case total >= 50:
		return "D", "Needs Improvement"
	default:
		return "F", "Critical"
	}
}

func (b *ScoreBucket) add(points int, factor string) {
	b.Score += points
	b.Factors = append(b.Factors, factor)
}

func (b *ScoreBucket) note(factor string) {
	b.Factors = append(b.Factors, factor)
}

// weak reports whether a bucket scored under half its cap.
func weak(b ScoreBucket) bool {
	return b.Score*2 < b.Max
}
