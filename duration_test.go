package chrono_test

import (
	"testing"

	chrono "github.com/plotnick/iso8601"
)

func TestDurationFormat(t *testing.T) {
	for _, tt := range []struct {
		name     string
		input    chrono.Duration
		expected string
	}{
		{
			name:     "complete",
			input:    chrono.DurationOf(2, 10, 15, 10, 30, 20),
			expected: "P2Y10M15DT10H30M20S",
		},
		{
			name:     "leading zero years",
			input:    chrono.DurationOf(0, 2, 15, 12, 30, 0),
			expected: "P2M15DT12H30M0S",
		},
		{
			name:     "leading zero months",
			input:    chrono.DurationOf(0, 0, 15, 12, 30, 0),
			expected: "P15DT12H30M0S",
		},
		{
			name:     "time components only",
			input:    chrono.DurationOf(0, 0, 0, 12, 30, 0),
			expected: "PT12H30M0S",
		},
		{
			name:     "minutes only",
			input:    chrono.DurationOf(0, 0, 0, 0, 30, 0),
			expected: "PT30M0S",
		},
		{
			name:     "zero",
			input:    chrono.DurationOf(0, 0, 0, 0, 0, 0),
			expected: "PT0S",
		},
		{
			name:     "fractional seconds",
			input:    chrono.DurationOf(1, 2, 15, 12, 30, 15.5),
			expected: "P1Y2M15DT12H30M15,5S",
		},
		{
			name:     "absent time components",
			input:    chrono.Duration{Years: chrono.Years(1), Months: chrono.Months(2), Days: chrono.Days(15)},
			expected: "P1Y2M15D",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if s := tt.input.Format(); s != tt.expected {
				t.Errorf("Format() = %q, want %q", s, tt.expected)
			}
		})
	}
}

func TestDurationIsZero(t *testing.T) {
	if !chrono.DurationOf(0, 0, 0, 0, 0, 0).IsZero() {
		t.Error("all-zero duration should be zero")
	}
	if chrono.DurationOf(0, 1, 0, 0, 0, 0).IsZero() {
		t.Error("P1M should not be zero")
	}
	if (chrono.Duration{}).IsZero() {
		t.Error("all-absent duration should not report zero")
	}
}

func TestDurationNegate(t *testing.T) {
	d := chrono.DurationOf(1, 2, 0, 0, 0, 0).Negate()
	if !d.Years.IsNegative() || !d.Months.IsNegative() {
		t.Errorf("Negate() = %v, want negated components", d)
	}
}

func TestWeeksDurationFormat(t *testing.T) {
	w, err := chrono.NewWeeksDuration(chrono.Weeks(6))
	if err != nil {
		t.Fatal(err)
	}
	if s := w.Format(); s != "P6W" {
		t.Errorf("Format() = %q, want %q", s, "P6W")
	}
}
