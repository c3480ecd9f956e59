package analytics

import "fintrack/internal/core"

// monthContext carries the handful of figures almost every computation
// needs, derived once per snapshot.
type monthContext struct {
	now           core.Date
	day           int
	daysInMonth   int
	daysRemaining int

	totalIncome   float64 // monthly-equivalent across all sources
	totalExpenses float64 // fixed expenses, already monthly
	mtdSpent      float64
	txCount       int
}

func buildMonthContext(snap core.Snapshot) monthContext {
	now := snap.TakenAt
	mc := monthContext{
		now:         now,
		day:         now.Day(),
		daysInMonth: now.DaysInMonth(),
	}
	mc.daysRemaining = mc.daysInMonth - mc.day

	for _, inc := range snap.Incomes {
		mc.totalIncome += MonthlyEquivalent(inc.Amount, inc.Frequency)
	}
	for _, fe := range snap.Expenses {
		mc.totalExpenses += fe.Amount
	}

	year, month := now.Year(), now.Month()
	for _, tx := range snap.Transactions {
		if tx.Amount <= 0 || tx.Date.IsZero() {
			continue
		}
		if tx.Date.Year() == year && tx.Date.Month() == month {
			mc.mtdSpent += tx.Amount
			mc.txCount++
		}
	}
	return mc
}

// availableForMonth is the discretionary budget before any spending.
func (mc monthContext) availableForMonth() float64 {
	return mc.totalIncome - mc.totalExpenses
}

// dailyRate is the actual month-to-date spending pace.
func (mc monthContext) dailyRate() float64 {
	if mc.day == 0 {
		return 0
	}
	return mc.mtdSpent / float64(mc.day)
}

// billsDueLaterThisMonth sums fixed expenses whose due day is still ahead.
// Paid state is ignored here: the velocity check reserves the money either
// way, matching how the bills were budgeted.
func billsDueLaterThisMonth(snap core.Snapshot, day int) (total float64, count int) {
	for _, fe := range snap.Expenses {
		if fe.DueDay > day {
			total += fe.Amount
			count++
		}
	}
	return total, count
}

// unpaidBillsDueLaterThisMonth sums only bills not yet marked paid for the
// snapshot month.
func unpaidBillsDueLaterThisMonth(snap core.Snapshot) float64 {
	now := snap.TakenAt
	var total float64
	for _, fe := range snap.Expenses {
		if fe.DueDay > now.Day() && !fe.IsPaidIn(now.Year(), now.Month()) {
			total += fe.Amount
		}
	}
	return total
}

// billsDueWithin sums unpaid bills due in the next n days, wrapping the due
// day into next month when it already passed.
func billsDueWithin(snap core.Snapshot, days int) float64 {
	now := snap.TakenAt
	daysInMonth := now.DaysInMonth()
	var total float64
	for _, fe := range snap.Expenses {
		if fe.IsPaidIn(now.Year(), now.Month()) {
			continue
		}
		until := fe.DueDay - now.Day()
		if until < 0 {
			until += daysInMonth
		}
		if until <= days {
			total += fe.Amount
		}
	}
	return total
}
