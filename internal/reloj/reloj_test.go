package reloj

import "testing"

func TestFormatDigits(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "empty", raw: "", expected: ""},
		{name: "single digit", raw: "0", expected: "0"},
		{name: "two digits", raw: "08", expected: "08"},
		{name: "three digits", raw: "083", expected: "08:3"},
		{name: "four digits", raw: "0830", expected: "08:30"},
		{name: "five digits", raw: "08301", expected: "08:30:1"},
		{name: "six digits", raw: "083015", expected: "08:30:15"},
		{name: "overflow truncated", raw: "08301599", expected: "08:30:15"},
		{name: "non-digits stripped", raw: "08h30m15s", expected: "08:30:15"},
		{name: "already formatted", raw: "08:30:15", expected: "08:30:15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDigits(tt.raw)

			if result != tt.expected {
				t.Fatalf("FormatDigits(%q) = %q, want %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestFormatDigitsIdempotent(t *testing.T) {
	inputs := []string{"", "1", "12", "123", "1234", "12345", "123456", "235959", "000000"}

	for _, raw := range inputs {
		once := FormatDigits(raw)
		twice := FormatDigits(once)

		if once != twice {
			t.Errorf("FormatDigits not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		s     string
		valid bool
	}{
		{"00:00:00", true},
		{"23:59:59", true},
		{"08:30:15", true},
		{"24:00:00", false},
		{"12:60:00", false},
		{"12:00:60", false},
		{"8:30:15", false},
		{"08:30", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.s); got != tt.valid {
			t.Errorf("Valid(%q) = %v, want %v", tt.s, got, tt.valid)
		}
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected string
	}{
		{name: "equal times", start: "08:00:00", end: "08:00:00", expected: "00:00:00"},
		{name: "normal span", start: "08:00:00", end: "09:30:15", expected: "01:30:15"},
		{name: "negative clamped", start: "09:00:00", end: "08:00:00", expected: "00:00:00"},
		{name: "one second", start: "23:59:58", end: "23:59:59", expected: "00:00:01"},
		{name: "full day span", start: "00:00:00", end: "23:59:59", expected: "23:59:59"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Diff(tt.start, tt.end)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result != tt.expected {
				t.Fatalf("Diff(%q, %q) = %q, want %q", tt.start, tt.end, result, tt.expected)
			}
		})
	}
}

func TestDiffInvalidInput(t *testing.T) {
	if _, err := Diff("not-a-time", "08:00:00"); err == nil {
		t.Fatalf("expected error for invalid start")
	}
	if _, err := Diff("08:00:00", ""); err == nil {
		t.Fatalf("expected error for empty end")
	}
}

func TestNowFormat(t *testing.T) {
	if got := Now(); !Valid(got) {
		t.Fatalf("Now() = %q, not a valid HH:MM:SS time", got)
	}
}
