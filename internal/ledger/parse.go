package ledger

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/finnova/internal/model"
)

// parseNumber parses a decimal number. A comma is read as the decimal
// separator only when it is the sole separator and one or two digits follow
// it; any other comma (such as a thousands separator) is rejected.
func parseNumber(s string) (float64, bool) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac := s[i+1:]
		if strings.ContainsAny(frac, ",.") || strings.Contains(s[:i], ".") ||
			len(frac) < 1 || len(frac) > 2 || strings.Trim(frac, "0123456789") != "" {
			return 0, false
		}
		s = s[:i] + "." + frac
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseAmount parses a user-entered positive amount. "12,5" and "12,50" are
// read as 12.5; "1,000" is rejected rather than guessed at.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, ok := parseNumber(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, s)
	}
	return v, nil
}

// ParseBudget parses a budget amount, where zero is allowed.
func ParseBudget(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, ok := parseNumber(s)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v < 0 {
		return 0, ErrNegativeBudget
	}
	return v, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return t, nil
}
