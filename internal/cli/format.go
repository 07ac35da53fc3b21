// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatAmount formats a money amount with thousands separators and two
// decimals, e.g. 1234.5 -> "1,234.50".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	// Round first so -0.001 does not render as "-0.00".
	v = math.Round(v*100) / 100
	if v < 0 {
		return "-" + humanize.FormatFloat("#,###.##", -v)
	}
	return humanize.FormatFloat("#,###.##", v)
}

// FormatMoney prefixes FormatAmount with a currency symbol, e.g.
// ("Rs", 1500) -> "Rs 1,500.00". The sign goes before the symbol.
func FormatMoney(symbol string, v float64) string {
	s := FormatAmount(v)
	if symbol == "" {
		return s
	}
	if len(s) > 0 && s[0] == '-' {
		return "-" + symbol + " " + s[1:]
	}
	return symbol + " " + s
}

// FormatPercent formats a percentage value, e.g. 45.678 -> "45.7%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDaysLeft describes the time left until a deadline.
func FormatDaysLeft(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("overdue by %s", pluralDays(-days))
	case days == 0:
		return "due today"
	default:
		return pluralDays(days) + " left"
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}

// FormatCount adds comma separators to an integer count.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}
