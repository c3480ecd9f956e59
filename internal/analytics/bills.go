package analytics

import (
	"sort"
	"time"

	"fintrack/internal/core"
)

// BillDue describes one bill falling due within the lookahead window.
type BillDue struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	DueDay       int     `json:"due_day"`
	DueDate      string  `json:"due_date"`
	DaysUntilDue int     `json:"days_until_due"`
	Category     string  `json:"category"`
	AutoPay      bool    `json:"is_autopay"`
	IsPaid       bool    `json:"is_paid"`
	Urgency      string  `json:"urgency"`
}

// UpcomingBills lists bills due in the next 7 days, wrapping past-due days
// into next month.
type UpcomingBills struct {
	Bills       []BillDue `json:"bills"`
	TotalCount  int       `json:"total_count"`
	TotalDue    float64   `json:"total_due"`
	UnpaidCount int       `json:"unpaid_count"`
}

// ComputeUpcomingBills finds bills due within the next week. A due day that
// already passed this month is treated as next month's occurrence. TotalDue
// counts unpaid bills only.
func ComputeUpcomingBills(snap core.Snapshot) UpcomingBills {
	now := snap.TakenAt
	daysInMonth := now.DaysInMonth()

	res := UpcomingBills{}
	for _, fe := range snap.Expenses {
		until := fe.DueDay - now.Day()
		if until < 0 {
			until += daysInMonth
		}
		if until > 7 {
			continue
		}

		var due core.Date
		if fe.DueDay >= now.Day() {
			due = core.NewDate(now.Year(), now.Month(), fe.DueDay)
		} else {
			next := now.AddDate(0, 1, 0)
			due = core.NewDate(next.Year(), int(next.Month()), fe.DueDay)
		}

		urgency := "upcoming"
		switch {
		case until <= 2:
			urgency = "urgent"
		case until <= 5:
			urgency = "soon"
		}

		paid := fe.IsPaidIn(now.Year(), now.Month())
		res.Bills = append(res.Bills, BillDue{
			ID:           fe.ID,
			Name:         fe.Name,
			Amount:       core.Round2(fe.Amount),
			DueDay:       fe.DueDay,
			DueDate:      due.Format(time.DateOnly),
			DaysUntilDue: until,
			Category:     fe.Category,
			AutoPay:      fe.AutoPay,
			IsPaid:       paid,
			Urgency:      urgency,
		})
		if !paid {
			res.TotalDue += fe.Amount
			res.UnpaidCount++
		}
	}

	sort.Slice(res.Bills, func(i, j int) bool {
		return res.Bills[i].DaysUntilDue < res.Bills[j].DaysUntilDue
	})
	res.TotalCount = len(res.Bills)
	res.TotalDue = core.Round2(res.TotalDue)
	return res
}
