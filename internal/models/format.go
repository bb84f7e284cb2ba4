package models

import (
	"strconv"
	"strings"
)

// FormatDecimal renders a float the way report text shows numbers: the shortest
// representation that round-trips, always with a fractional part ("33.33", "2.0").
func FormatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// RoundTo rounds f to the given number of decimal places, half to even on the exact
// binary value.
func RoundTo(f float64, places int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	if err != nil {
		return f
	}
	return rounded
}
