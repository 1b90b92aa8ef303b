package chrono_test

import (
	"testing"

	chrono "github.com/plotnick/iso8601"
)

func TestNewDateDispatch(t *testing.T) {
	d, err := chrono.NewDate(chrono.Year(1985), chrono.MonthUnit(4), chrono.DayOfMonth(12))
	if err != nil {
		t.Fatal(err)
	}
	if d.Variant() != chrono.VariantCalendar {
		t.Errorf("NewDate(Y, M, D) variant = %d, want calendar", d.Variant())
	}

	d, err = chrono.NewDate(chrono.Year(1985), chrono.DayOfYear(102))
	if err != nil {
		t.Fatal(err)
	}
	if d.Variant() != chrono.VariantOrdinal {
		t.Errorf("NewDate(Y, DDD) variant = %d, want ordinal", d.Variant())
	}

	d, err = chrono.NewDate(chrono.Year(1985), chrono.WeekUnit(15), chrono.DayOfWeekUnit(chrono.Friday))
	if err != nil {
		t.Fatal(err)
	}
	if d.Variant() != chrono.VariantWeek {
		t.Errorf("NewDate(Y, Www, D) variant = %d, want week", d.Variant())
	}

	d, err = chrono.NewDate(chrono.Year(1985))
	if err != nil {
		t.Fatal(err)
	}
	if d.Variant() != chrono.VariantCalendar || d.Month().IsPresent() {
		t.Errorf("NewDate(Y) = %v, want reduced calendar date", d)
	}
}

func TestAccuracyReduction(t *testing.T) {
	// 23:20 with elided seconds is fine; an elided minute with seconds
	// present is not.
	if _, err := chrono.NewTime(chrono.HourUnit(23), chrono.MinuteUnit(20), chrono.TimeUnit{}); err != nil {
		t.Errorf("Time(23, 20, -) = %v, want success", err)
	}
	if _, err := chrono.NewTime(chrono.HourUnit(23), chrono.TimeUnit{}, chrono.SecondUnit(50)); err == nil {
		t.Error("Time(23, -, 50) should fail")
	}

	if _, err := chrono.NewCalendarDate(chrono.Year(1985), chrono.TimeUnit{}, chrono.DayOfMonth(12)); err == nil {
		t.Error("CalendarDate(1985, -, 12) should fail")
	}
}

func TestCalendarDateValidation(t *testing.T) {
	if _, err := chrono.NewCalendarDate(chrono.Year(2000), chrono.MonthUnit(2), chrono.DayOfMonth(29)); err != nil {
		t.Errorf("2000-02-29 = %v, want success", err)
	}
	if _, err := chrono.NewCalendarDate(chrono.Year(2001), chrono.MonthUnit(2), chrono.DayOfMonth(29)); err == nil {
		t.Error("2001-02-29 should fail")
	}
	if _, err := chrono.NewOrdinalDate(chrono.Year(2001), chrono.DayOfYear(366)); err == nil {
		t.Error("2001-366 should fail")
	}
	if _, err := chrono.NewOrdinalDate(chrono.Year(2000), chrono.DayOfYear(366)); err != nil {
		t.Errorf("2000-366 = %v, want success", err)
	}
}

func TestDateToCalendar(t *testing.T) {
	want := chrono.CalendarDateOf(1985, chrono.April, 12)

	got, err := chrono.OrdinalDateOf(1985, 102).ToCalendar()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("OrdinalDate(1985, 102).ToCalendar() = %v, want %v", got, want)
	}

	got, err = chrono.WeekDateOf(1985, 15, chrono.Friday).ToCalendar()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Errorf("WeekDate(1985, W15, 5).ToCalendar() = %v, want %v", got, want)
	}
}

func TestDateWeekday(t *testing.T) {
	wd, err := chrono.CalendarDateOf(1985, chrono.April, 12).Weekday()
	if err != nil {
		t.Fatal(err)
	}
	if wd != chrono.Friday {
		t.Errorf("1985-04-12 weekday = %s, want Friday", wd)
	}
}

func TestDateISOWeek(t *testing.T) {
	for _, tt := range []struct {
		date    chrono.Date
		isoYear int
		week    int
	}{
		{chrono.CalendarDateOf(1985, chrono.April, 12), 1985, 15},
		{chrono.CalendarDateOf(2021, chrono.January, 1), 2020, 53},
		{chrono.CalendarDateOf(2020, chrono.December, 31), 2020, 53},
		{chrono.CalendarDateOf(2000, chrono.February, 29), 2000, 9},
		{chrono.CalendarDateOf(1958, chrono.January, 1), 1958, 1},
	} {
		isoYear, week, err := tt.date.ISOWeek()
		if err != nil {
			t.Fatal(err)
		}
		if isoYear != tt.isoYear || week != tt.week {
			t.Errorf("%v ISOWeek() = (%d, %d), want (%d, %d)", tt.date, isoYear, week, tt.isoYear, tt.week)
		}
	}
}

func TestDateString(t *testing.T) {
	for _, tt := range []struct {
		date     chrono.Date
		expected string
	}{
		{chrono.CalendarDateOf(1985, chrono.April, 12), "1985-04-12"},
		{chrono.OrdinalDateOf(1985, 102), "1985-102"},
		{chrono.WeekDateOf(1985, 15, chrono.Friday), "1985-W15-5"},
	} {
		if s := tt.date.String(); s != tt.expected {
			t.Errorf("String() = %q, want %q", s, tt.expected)
		}
	}

	reduced, err := chrono.NewCalendarDate(chrono.Year(1985), chrono.MonthUnit(4), chrono.TimeUnit{})
	if err != nil {
		t.Fatal(err)
	}
	if s := reduced.String(); s != "1985-04" {
		t.Errorf("reduced date String() = %q, want %q", s, "1985-04")
	}
}
