package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Minutes is a validated, non-negative whole number of minutes received at
// the API boundary.
type Minutes int

// ParseMinutes converts raw user input into Minutes. Empty input is
// reported as missing; anything that is not a non-negative integer is
// rejected rather than coerced.
func ParseMinutes(field, raw string) (Minutes, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Invalid(field, "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Invalid(field, "must be a whole number of minutes")
	}
	if n < 0 {
		return 0, Invalid(field, "must not be negative")
	}
	return Minutes(n), nil
}

// Seconds returns the duration in seconds.
func (m Minutes) Seconds() int64 {
	return int64(m) * 60
}

// AtLeastOne returns m floored to one minute.
func (m Minutes) AtLeastOne() Minutes {
	if m < 1 {
		return 1
	}
	return m
}

// FormatDuration renders seconds as HH:MM. Hours are not wrapped at 24 and
// seconds are dropped.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
