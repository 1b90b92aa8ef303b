package chrono_test

import (
	"testing"

	chrono "github.com/plotnick/iso8601"
)

func TestUTCOffsetString(t *testing.T) {
	for _, tt := range []struct {
		offset   chrono.UTCOffset
		expected string
	}{
		{chrono.OffsetOf(0, 0), "+00:00"},
		{chrono.OffsetOf(1, 0), "+01:00"},
		{chrono.OffsetOf(-4, 0), "-04:00"},
		{chrono.OffsetOfHours(1), "+01"},
		{chrono.OffsetOfHours(-5), "-05"},
		{chrono.UTC, "Z"},
	} {
		if s := tt.offset.String(); s != tt.expected {
			t.Errorf("String() = %q, want %q", s, tt.expected)
		}
	}
}

func TestUTCOffsetTotalMinutes(t *testing.T) {
	for _, tt := range []struct {
		offset   chrono.UTCOffset
		expected int64
	}{
		{chrono.UTC, 0},
		{chrono.OffsetOf(1, 0), 60},
		{chrono.OffsetOf(-5, 30), -330},
		{chrono.OffsetOfHours(-5), -300},
	} {
		if m := tt.offset.TotalMinutes(); m != tt.expected {
			t.Errorf("%s TotalMinutes() = %d, want %d", tt.offset, m, tt.expected)
		}
	}
}

func TestTimeString(t *testing.T) {
	for _, tt := range []struct {
		time     chrono.Time
		expected string
	}{
		{chrono.TimeOf(23, 20, 50), "23:20:50"},
		{chrono.TimeOf(23, 20, 50).WithOffset(chrono.UTC), "23:20:50Z"},
		{chrono.TimeOf(23, 20, 50).WithOffset(chrono.OffsetOf(-4, 0)), "23:20:50-04:00"},
	} {
		if s := tt.time.String(); s != tt.expected {
			t.Errorf("String() = %q, want %q", s, tt.expected)
		}
	}
}

func TestTimeOffsetOutOfBand(t *testing.T) {
	// The offset is excluded from the accuracy-reduction check: it may be
	// present even when the seconds (or minutes) are elided.
	reduced, err := chrono.NewTime(chrono.HourUnit(23), chrono.MinuteUnit(20), chrono.TimeUnit{})
	if err != nil {
		t.Fatal(err)
	}
	withOffset := reduced.WithOffset(chrono.UTC)
	if s := withOffset.String(); s != "23:20Z" {
		t.Errorf("String() = %q, want %q", s, "23:20Z")
	}
	if withOffset.Second().IsPresent() {
		t.Error("setting an offset must not zero-fill elided components")
	}
}
