package internal

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidTimeUnit = errors.New("invalid time unit")

// ParseTimeUnit maps a unit suffix such as "ms" to its duration.
func ParseTimeUnit(unitString string) (time.Duration, error) {
	switch strings.TrimSpace(strings.ToLower(unitString)) {
	case "ns":
		return time.Nanosecond, nil
	case "us", "µs":
		return time.Microsecond, nil
	case "ms":
		return time.Millisecond, nil
	case "s":
		return time.Second, nil
	case "m":
		return time.Minute, nil
	case "h":
		return time.Hour, nil
	default:
		return 0, ErrInvalidTimeUnit
	}
}

// UnitSuffix returns the suffix of unit, e.g. "ms" for time.Millisecond.
func UnitSuffix(unit time.Duration) string {
	// time.Duration renders a unit as "1ms", "1µs", "1h0m0s" ...
	switch unit {
	case time.Minute:
		return "m"
	case time.Hour:
		return "h"
	}
	return strings.TrimPrefix(unit.String(), "1")
}

// convertToTimeUnit expresses d as a number of unit.
func convertToTimeUnit(d time.Duration, unit time.Duration) float64 {
	return float64(d) / float64(unit)
}

// convertAllToTimeUnit converts every duration of ds.
func convertAllToTimeUnit(ds []time.Duration, unit time.Duration) []float64 {
	return MapFunc(func(d time.Duration) float64 { return convertToTimeUnit(d, unit) }, ds)
}
