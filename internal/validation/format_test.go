package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTryParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want *int64
	}{
		{"", nil},
		{"  ", nil},
		{"42", ptr(42)},
		{" 7 ", ptr(7)},
		{"-3", ptr(-3)},
		{"4.2", nil},
		{"abc", nil},
		{"99999999999999999999", nil},
	}

	for _, tt := range tests {
		got := TryParseInt(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("TryParseInt(%q) = %d, want nil", tt.in, *got)
		case tt.want != nil && got == nil:
			t.Errorf("TryParseInt(%q) = nil, want %d", tt.in, *tt.want)
		case tt.want != nil && *got != *tt.want:
			t.Errorf("TryParseInt(%q) = %d, want %d", tt.in, *got, *tt.want)
		}
	}
}

func TestFormatSalary(t *testing.T) {
	tests := map[string]string{
		"0":        "0.00",
		"1500":     "1500.00",
		"1500.5":   "1500.50",
		"99.999":   "100.00",
		"-12.3456": "-12.35",
	}

	for in, want := range tests {
		if got := FormatSalary(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatSalary(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestDates(t *testing.T) {
	if got := FormatDate(nil); got != "" {
		t.Errorf("FormatDate(nil) = %q, want empty", got)
	}

	d := time.Date(2001, time.February, 9, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "09/02/2001" {
		t.Errorf("FormatDate() = %s, want 09/02/2001", got)
	}

	parsed, err := ParseDate(" 09/02/2001 ")
	if err != nil {
		t.Fatalf("ParseDate() error: %v", err)
	}
	if !parsed.Equal(d) {
		t.Errorf("ParseDate() = %s, want %s", parsed, d)
	}
}
