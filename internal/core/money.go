// Package core provides the shared domain types and money helpers.
//
// Monetary amounts are float64 dollars. Computations keep full precision;
// rounding to two decimals happens only when building response payloads.
package core

import (
	"math"
	"strconv"
	"strings"
)

// Round2 rounds an amount to two decimals, half away from zero. Apply at the
// output boundary only.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseAmount converts a decimal string to a dollar amount. It accepts both
// dot (12.34) and comma (12,34) decimal separators and rejects non-finite
// values.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-50")   -> -50, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
