package cli

import "testing"

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{95000, "$95,000"},
		{1234567.89, "$1,234,568"},
		{-20000, "-$20,000"},
		{999.5, "$1,000"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{11.1111, "11.1%"},
		{0, "0.0%"},
		{-5.55, "-5.5%"},
		{100, "100.0%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%f) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMonths(t *testing.T) {
	if got := FormatMonths(23.04); got != "23.0 months" {
		t.Errorf("FormatMonths(23.04) = %q, want 23.0 months", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{100, "100"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-9876543, "-9,876,543"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMonthLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-02", "Feb 2024"},
		{"2023-12", "Dec 2023"},
		{"2024-13", "2024-13"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := FormatMonthLabel(tt.in); got != tt.want {
			t.Errorf("FormatMonthLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
