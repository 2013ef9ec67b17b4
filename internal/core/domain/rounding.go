package domain

import "math"

// RoundDuration quantizes raw elapsed seconds to whole rounding intervals.
//
// A partial interval rounds up once its remainder reaches roundUpAtMinutes,
// and the result is never less than one interval. A non-positive interval
// disables rounding and returns rawSeconds unchanged.
func RoundDuration(rawSeconds int64, intervalMinutes, roundUpAtMinutes int) int64 {
	if intervalMinutes <= 0 {
		return rawSeconds
	}

	interval := float64(intervalMinutes)
	minutes := float64(rawSeconds) / 60

	base := math.Floor(minutes/interval) * interval
	// floored modulo: stays in [0, interval) for negative input too
	remainder := minutes - base

	final := base
	if remainder >= float64(roundUpAtMinutes) {
		final = base + interval
	}
	if final < interval {
		final = interval
	}

	return int64(final) * 60
}
