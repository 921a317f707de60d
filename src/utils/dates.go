package utils

import "time"

// YearsBetween returns the fractional number of years between two dates.
// Returns 0 when end is not after start.
func YearsBetween(start, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours() / (24 * 365.25)
}

// DaysBetween returns the number of whole days between two dates.
// Returns 0 when end is not after start.
func DaysBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}

// IsLongTermHolding reports whether a holding period qualifies for long-term
// tax treatment. The boundary is inclusive at LongTermHoldingDays.
func IsLongTermHolding(holdingDays int) bool {
	return holdingDays >= LongTermHoldingDays
}
