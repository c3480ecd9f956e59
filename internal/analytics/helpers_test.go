package analytics

import (
	"math"

	"fintrack/internal/core"
)

func snapAt(year, month, day int) core.Snapshot {
	return core.Snapshot{TakenAt: core.NewDate(year, month, day)}
}

func tx(year, month, day int, amount float64, category string) core.Transaction {
	return core.Transaction{
		Date:     core.NewDate(year, month, day),
		Amount:   amount,
		Category: category,
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
