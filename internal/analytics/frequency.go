// Package analytics turns raw financial records into time-windowed
// aggregates, variability statistics, anomaly alerts, balance projections,
// health scores and a ranked recommendation list. Every computation reads one
// immutable core.Snapshot and returns a best-effort result; missing or
// malformed data degrades to documented defaults, never to an error.
package analytics

import "fintrack/internal/core"

// MonthlyEquivalent converts an amount at the given cadence to its monthly
// equivalent. An unrecognized frequency is treated as already monthly; that
// permissive default is part of the contract, not a validation gap.
func MonthlyEquivalent(amount float64, freq core.Frequency) float64 {
	switch freq {
	case core.Weekly:
		return amount * 52 / 12
	case core.BiWeekly:
		return amount * 26 / 12
	case core.Annual:
		return amount / 12
	default:
		return amount
	}
}

// PerPaycheck converts a monthly amount back to a per-payment amount at the
// given cadence.
func PerPaycheck(monthly float64, freq core.Frequency) float64 {
	switch freq {
	case core.Weekly:
		return monthly * 12 / 52
	case core.BiWeekly:
		return monthly * 12 / 26
	default:
		return monthly
	}
}

// PaychecksPerMonth returns how many payments arrive in an average month at
// the given cadence.
func PaychecksPerMonth(freq core.Frequency) float64 {
	switch freq {
	case core.Weekly:
		return 52.0 / 12.0
	case core.BiWeekly:
		return 26.0 / 12.0
	default:
		return 1
	}
}
