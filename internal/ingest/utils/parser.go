package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/farxc/dfc_dashboard/internal/calendar"
)

// ParseDate accepts dd/mm/yyyy and ISO dates. Blank or invalid input yields
// the zero time.
func ParseDate(dateStr string) time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}
	}
	t, err := calendar.ParseDate(dateStr)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseFloat reads Brazilian formatted numbers ("1.234,56") and plain ones
// ("1234.56"). Invalid input yields 0.
func ParseFloat(valStr string) float64 {
	cleanStr := strings.TrimSpace(valStr)
	cleanStr = strings.TrimPrefix(cleanStr, "R$")
	cleanStr = strings.ReplaceAll(cleanStr, " ", "")
	if cleanStr == "" {
		return 0.0
	}
	if strings.Contains(cleanStr, ",") {
		// Remove thousands separator (.) and replace decimal separator (,) with (.)
		cleanStr = strings.ReplaceAll(cleanStr, ".", "")
		cleanStr = strings.ReplaceAll(cleanStr, ",", ".")
	}
	val, err := strconv.ParseFloat(cleanStr, 64)
	if err != nil {
		return 0.0
	}
	return val
}

func ParseInt(valStr string) int {
	val, err := strconv.Atoi(strings.TrimSpace(valStr))
	if err != nil {
		return 0
	}
	return val
}
