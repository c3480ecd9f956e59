package analytics

import "fintrack/internal/core"

// IncomeLine and ExpenseLine itemize the available-spending breakdown.
type IncomeLine struct {
	Name          string  `json:"name"`
	Earner        string  `json:"earner"`
	MonthlyAmount float64 `json:"monthly_amount"`
}

type ExpenseLine struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type AvailableBreakdown struct {
	Income                 []IncomeLine  `json:"income"`
	Expenses               []ExpenseLine `json:"expenses"`
	RetirementContribution float64       `json:"retirement_contribution"`
}

// AvailableSpending is what's left each month after fixed expenses and
// retirement contributions.
type AvailableSpending struct {
	TotalIncome          float64            `json:"total_income"`
	TotalExpenses        float64            `json:"total_expenses"`
	TotalRetirement      float64            `json:"total_retirement"`
	TotalCommitted       float64            `json:"total_committed"`
	Available            float64            `json:"available"`
	AvailablePerPaycheck float64            `json:"available_per_paycheck"`
	AvailablePerDay      float64            `json:"available_per_day"`
	PercentAvailable     float64            `json:"percent_available"`
	PayFrequency         core.Frequency     `json:"pay_frequency"`
	PaychecksPerMonth    float64            `json:"paychecks_per_month"`
	Status               string             `json:"status"`
	Message              string             `json:"message"`
	Recommendation       string             `json:"recommendation"`
	HasData              bool               `json:"has_data"`
	Breakdown            AvailableBreakdown `json:"breakdown"`
}

// ComputeAvailableSpending normalizes every income source and retirement
// contribution to monthly amounts and subtracts fixed expenses. Retirement
// contributions are per pay period of the linked income source, monthly when
// no source is linked.
func ComputeAvailableSpending(snap core.Snapshot) AvailableSpending {
	res := AvailableSpending{
		HasData: len(snap.Incomes) > 0 || len(snap.Expenses) > 0,
	}

	var totalIncome float64
	for _, inc := range snap.Incomes {
		monthly := MonthlyEquivalent(inc.Amount, inc.Frequency)
		totalIncome += monthly
		res.Breakdown.Income = append(res.Breakdown.Income, IncomeLine{
			Name:          inc.Name,
			Earner:        inc.Earner,
			MonthlyAmount: core.Round2(monthly),
		})
	}

	var totalExpenses float64
	for _, fe := range snap.Expenses {
		totalExpenses += fe.Amount
		res.Breakdown.Expenses = append(res.Breakdown.Expenses, ExpenseLine{
			Name:     fe.Name,
			Category: fe.Category,
			Amount:   core.Round2(fe.Amount),
		})
	}

	var totalRetirement float64
	for _, ra := range snap.Retirement {
		freq := core.Monthly
		if linked, ok := snap.IncomeByID(ra.IncomeSourceID); ok {
			freq = linked.Frequency
		}
		totalRetirement += MonthlyEquivalent(ra.ContributionAmount, freq)
	}

	available := totalIncome - totalExpenses - totalRetirement

	// per-paycheck figure uses the most common pay cadence
	freqCounts := make(map[core.Frequency]int)
	for _, inc := range snap.Incomes {
		freqCounts[inc.Frequency]++
	}
	mostCommon := core.BiWeekly
	best := 0
	for _, f := range []core.Frequency{core.Weekly, core.BiWeekly, core.Monthly, core.Annual} {
		if freqCounts[f] > best {
			best = freqCounts[f]
			mostCommon = f
		}
	}

	var status, message, recommendation string
	switch {
	case available < 0:
		status = "danger"
		message = "Critical: Expenses exceed income!"
		recommendation = "You need to reduce expenses or increase income immediately."
	case available < 200:
		status = "danger"
		message = "Very tight budget - high risk"
		recommendation = "Consider finding ways to reduce expenses or increase income."
	case available < 500:
		status = "warning"
		message = "Caution: Limited discretionary funds"
		recommendation = "You have minimal room for unexpected expenses."
	case available < 1000:
		status = "warning"
		message = "Moderate budget cushion"
		recommendation = "You have some flexibility, but stay mindful of spending."
	default:
		status = "success"
		message = "Healthy budget with good flexibility"
		recommendation = "Great job! You have room for discretionary spending and unexpected expenses."
	}

	var pctAvailable float64
	if totalIncome > 0 {
		pctAvailable = available / totalIncome * 100
	}

	res.TotalIncome = core.Round2(totalIncome)
	res.TotalExpenses = core.Round2(totalExpenses)
	res.TotalRetirement = core.Round2(totalRetirement)
	res.TotalCommitted = core.Round2(totalExpenses + totalRetirement)
	res.Available = core.Round2(available)
	res.AvailablePerPaycheck = core.Round2(PerPaycheck(available, mostCommon))
	res.AvailablePerDay = core.Round2(available / 30)
	res.PercentAvailable = core.Round2(pctAvailable)
	res.PayFrequency = mostCommon
	res.PaychecksPerMonth = core.Round2(PaychecksPerMonth(mostCommon))
	res.Status = status
	res.Message = message
	res.Recommendation = recommendation
	res.Breakdown.RetirementContribution = core.Round2(totalRetirement)
	return res
}
