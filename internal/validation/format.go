package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the fixed day/month/year pattern used for birth dates
const DateLayout = "02/01/2006"

// TryParseInt parses an integer-like field. Empty or malformed text yields
// nil rather than an error.
func TryParseInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// FormatID renders an optional id, empty when absent
func FormatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

// ParseSalary parses a currency amount. Only '.' is accepted as the decimal
// separator, independent of locale.
func ParseSalary(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// FormatSalary renders a salary with exactly two decimal places
func FormatSalary(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseDate parses a dd/MM/yyyy date at midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// FormatDate renders an optional date as dd/MM/yyyy, empty when absent
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
