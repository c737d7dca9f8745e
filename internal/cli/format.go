// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatUSD formats a dollar amount with thousands separators and no
// decimal places. e.g., 1234567.89 -> "$1,234,568"
func FormatUSD(amount float64) string {
	if amount < 0 {
		return "-$" + FormatNumber(int64(math.Round(-amount)))
	}
	return "$" + FormatNumber(int64(math.Round(amount)))
}

// FormatPercent formats a percentage value (already scaled to 0-100) with
// one decimal place. e.g., 11.111 -> "11.1%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatMonths formats a runway duration in months.
func FormatMonths(months float64) string {
	return fmt.Sprintf("%.1f months", months)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatMonthLabel converts "2024-02" to "Feb 2024" for display. Unparseable
// values pass through unchanged.
func FormatMonthLabel(month string) string {
	parts := strings.SplitN(month, "-", 2)
	if len(parts) != 2 {
		return month
	}
	names := map[string]string{
		"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr",
		"05": "May", "06": "Jun", "07": "Jul", "08": "Aug",
		"09": "Sep", "10": "Oct", "11": "Nov", "12": "Dec",
	}
	name, ok := names[parts[1]]
	if !ok {
		return month
	}
	return name + " " + parts[0]
}
