package chrono_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	chrono "github.com/plotnick/iso8601"
)

// assertFormat checks both directions of a format representation: reading
// the string yields the value, and formatting the value yields the string.
func assertFormat(t *testing.T, repr, s string, want chrono.Value) {
	t.Helper()

	f, err := chrono.NewFormat(repr)
	if err != nil {
		t.Fatalf("NewFormat(%q) = %v", repr, err)
	}

	got, err := f.Read(s)
	if err != nil {
		t.Fatalf("Read(%q) = %v", s, err)
	}
	if reflect.TypeOf(got) != reflect.TypeOf(want) || fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Read(%q) = %v (%T), want %v (%T)", s, got, got, want, want)
	}

	out, err := f.Format(want)
	if err != nil {
		t.Fatalf("Format(%v) = %v", want, err)
	}
	if out != s {
		t.Errorf("Format(%v) = %q, want %q", want, out, s)
	}
}

func mustTime(t *testing.T, hour, min, sec chrono.TimeUnit) chrono.Time {
	t.Helper()
	tm, err := chrono.NewTime(hour, min, sec)
	if err != nil {
		t.Fatal(err)
	}
	return tm
}

func mustUnit(t *testing.T, kind chrono.Kind, v any) chrono.TimeUnit {
	t.Helper()
	u, err := chrono.NewTimeUnit(kind, v)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestFormatCalendarDate(t *testing.T) {
	date := chrono.CalendarDateOf(1985, chrono.April, 12)

	assertFormat(t, "YYYYMMDD", "19850412", date)       // basic
	assertFormat(t, "YYYY-MM-DD", "1985-04-12", date)   // extended
	assertFormat(t, "YYYY‐MM‐DD", "1985‐04‐12", date)   // extended, U+2010 hyphen
	assertFormat(t, "±YYYYYYMMDD", "+0019850412", date) // expanded

	month, err := chrono.NewCalendarDate(chrono.Year(1985), chrono.MonthUnit(4), chrono.TimeUnit{})
	if err != nil {
		t.Fatal(err)
	}
	assertFormat(t, "YYYY-MM", "1985-04", month)
	assertFormat(t, "±YYYYYY", "+001985", mustUnit(t, chrono.KindYear, "+1985"))
	assertFormat(t, "YYYY", "1985", chrono.Year(1985))
	assertFormat(t, "YY", "19", chrono.Year(19)) // not actually a century
}

func TestFormatOrdinalDate(t *testing.T) {
	date := chrono.OrdinalDateOf(1985, 102)

	assertFormat(t, "YYYYDDD", "1985102", date)
	assertFormat(t, "YYYY-DDD", "1985-102", date)
	assertFormat(t, "±YYYYYYDDD", "+001985102", date)
}

func TestFormatWeekDate(t *testing.T) {
	date := chrono.WeekDateOf(1985, 15, chrono.Friday)

	assertFormat(t, "YYYYWwwD", "1985W155", date)
	assertFormat(t, "YYYY-Www-D", "1985-W15-5", date)

	week, err := chrono.NewWeekDate(chrono.Year(1985), chrono.WeekUnit(15), chrono.TimeUnit{})
	if err != nil {
		t.Fatal(err)
	}
	assertFormat(t, "YYYYWww", "1985W15", week)
	assertFormat(t, "YYYY-Www", "1985-W15", week)
}

func TestFormatTime(t *testing.T) {
	time := chrono.TimeOf(23, 20, 50)

	assertFormat(t, "hhmmss", "232050", time)
	assertFormat(t, "hh:mm:ss", "23:20:50", time)
	assertFormat(t, "Thhmmss", "T232050", time)
	assertFormat(t, "Thh:mm:ss", "T23:20:50", time)

	reduced := mustTime(t, chrono.HourUnit(23), chrono.MinuteUnit(20), chrono.TimeUnit{})
	assertFormat(t, "hhmm", "2320", reduced)
	assertFormat(t, "hh:mm", "23:20", reduced)
	assertFormat(t, "hh", "23", chrono.HourUnit(23))
}

func TestFormatTimeFraction(t *testing.T) {
	withFracSecond := mustTime(t, chrono.HourUnit(23), chrono.MinuteUnit(20), mustUnit(t, chrono.KindSecond, "50.5"))
	assertFormat(t, "hhmmss,ss̲", "232050,5", withFracSecond)
	assertFormat(t, "hh:mm:ss,ss̲", "23:20:50,5", withFracSecond)

	withFracMinute := mustTime(t, chrono.HourUnit(23), mustUnit(t, chrono.KindMinute, "20.8"), chrono.TimeUnit{})
	assertFormat(t, "hhmm,mm̲", "2320,8", withFracMinute)

	assertFormat(t, "hh,hh̲", "23,3", mustUnit(t, chrono.KindHour, "23.3"))
}

func TestFormatTimeUTC(t *testing.T) {
	assertFormat(t, "hhmmssZ", "232030Z", chrono.TimeOf(23, 20, 30).WithOffset(chrono.UTC))
	assertFormat(t, "hh:mm:ssZ", "23:20:30Z", chrono.TimeOf(23, 20, 30).WithOffset(chrono.UTC))

	reduced := mustTime(t, chrono.HourUnit(23), chrono.MinuteUnit(20), chrono.TimeUnit{})
	assertFormat(t, "hhmmZ", "2320Z", reduced.WithOffset(chrono.UTC))

	hour := mustTime(t, chrono.HourUnit(23), chrono.TimeUnit{}, chrono.TimeUnit{})
	assertFormat(t, "hhZ", "23Z", hour.WithOffset(chrono.UTC))
}

func TestFormatUTCOffset(t *testing.T) {
	assertFormat(t, "±hhmm", "+0100", chrono.OffsetOf(1, 0))
	assertFormat(t, "±hh:mm", "+01:00", chrono.OffsetOf(1, 0))
	assertFormat(t, "±hh", "+01", mustUnit(t, chrono.KindHour, "+1"))
}

func TestFormatTimeWithOffset(t *testing.T) {
	geneva := chrono.TimeOf(15, 27, 46).WithOffset(chrono.OffsetOf(1, 0))
	newYork := chrono.TimeOf(15, 27, 46).WithOffset(chrono.OffsetOf(-5, 0))

	assertFormat(t, "hhmmss±hhmm", "152746+0100", geneva)
	assertFormat(t, "hhmmss±hhmm", "152746-0500", newYork)
	assertFormat(t, "hh:mm:ss±hh:mm", "15:27:46+01:00", geneva)

	genevaHours := chrono.TimeOf(15, 27, 46).WithOffset(chrono.OffsetOfHours(1))
	newYorkHours := chrono.TimeOf(15, 27, 46).WithOffset(chrono.OffsetOfHours(-5))
	assertFormat(t, "hhmmss±hh", "152746+01", genevaHours)
	assertFormat(t, "hh:mm:ss±hh", "15:27:46-05", newYorkHours)
}

func TestFormatDateTime(t *testing.T) {
	date := chrono.CalendarDateOf(1985, chrono.April, 12)
	time := chrono.TimeOf(10, 15, 30)

	assertFormat(t, "YYYYMMDDThhmmss", "19850412T101530",
		chrono.NewDateTime(date, time))
	assertFormat(t, "YYYYMMDDThhmmssZ", "19850412T101530Z",
		chrono.NewDateTime(date, time.WithOffset(chrono.UTC)))
	assertFormat(t, "YYYYMMDDThhmmss±hhmm", "19850412T101530+0400",
		chrono.NewDateTime(date, time.WithOffset(chrono.OffsetOf(4, 0))))
	assertFormat(t, "YYYYMMDDThhmmss±hh", "19850412T101530+04",
		chrono.NewDateTime(date, time.WithOffset(chrono.OffsetOfHours(4))))
	assertFormat(t, "YYYY-MM-DDThh:mm:ss±hh:mm", "1985-04-12T10:15:30+04:00",
		chrono.NewDateTime(date, time.WithOffset(chrono.OffsetOf(4, 0))))
}

func TestFormatDateTimeReduced(t *testing.T) {
	reducedTime := mustTime(t, chrono.HourUnit(10), chrono.MinuteUnit(15), chrono.TimeUnit{})

	assertFormat(t, "YYYYMMDDThhmm", "19850412T1015",
		chrono.NewDateTime(chrono.CalendarDateOf(1985, chrono.April, 12), reducedTime))
	assertFormat(t, "YYYYDDDThhmmZ", "1985102T1015Z",
		chrono.NewDateTime(chrono.OrdinalDateOf(1985, 102), reducedTime.WithOffset(chrono.UTC)))
	assertFormat(t, "YYYYWwwDThhmm±hhmm", "1985W155T1015+0400",
		chrono.NewDateTime(chrono.WeekDateOf(1985, 15, chrono.Friday), reducedTime.WithOffset(chrono.OffsetOf(4, 0))))
}

func TestFormatDuration(t *testing.T) {
	dur := chrono.DurationOf(1, 2, 15, 12, 30, 0)

	assertFormat(t, "Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S", "P1Y2M15DT12H30M0S", dur)
	assertFormat(t, "Pnn̲W", "P6W", chrono.WeeksDuration{Weeks: chrono.Weeks(6)})

	f, err := chrono.NewFormat("Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S", "duration")
	if err != nil {
		t.Fatal(err)
	}

	// Trailing components the template omits, or that the value lacks, are
	// elided together with their designators.
	out, err := f.Format(chrono.Duration{
		Years: chrono.Years(1), Months: chrono.Months(2), Days: chrono.Days(15),
		Hours: chrono.Hours(12), Minutes: chrono.Minutes(30),
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "P1Y2M15DT12H30M" {
		t.Errorf("Format = %q, want %q", out, "P1Y2M15DT12H30M")
	}

	// The T designator is absent when all time components are absent.
	out, err = f.Format(chrono.Duration{
		Years: chrono.Years(1), Months: chrono.Months(2), Days: chrono.Days(15),
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "P1Y2M15D" {
		t.Errorf("Format = %q, want %q", out, "P1Y2M15D")
	}

	// Fractional final component.
	out, err = f2(t, "Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲,n̲S").Format(chrono.DurationOf(1, 2, 15, 12, 30, 15.5))
	if err != nil {
		t.Fatal(err)
	}
	if out != "P1Y2M15DT12H30M15,5S" {
		t.Errorf("Format = %q, want %q", out, "P1Y2M15DT12H30M15,5S")
	}
}

func f2(t *testing.T, repr string) *chrono.Format {
	t.Helper()
	f, err := chrono.NewFormat(repr)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFormatTimeInterval(t *testing.T) {
	start := chrono.NewDateTime(chrono.CalendarDateOf(1985, chrono.April, 12), chrono.TimeOf(23, 20, 50))
	end := chrono.NewDateTime(chrono.CalendarDateOf(1985, chrono.June, 25), chrono.TimeOf(10, 30, 0))
	dur := chrono.DurationOf(1, 2, 15, 12, 30, 0)

	startEnd, err := chrono.NewTimeInterval(chrono.DateTimeEndpoint(start), chrono.DateTimeEndpoint(end))
	if err != nil {
		t.Fatal(err)
	}
	assertFormat(t, "YYYYMMDDThhmmss/YYYYMMDDThhmmss",
		"19850412T232050/19850625T103000", startEnd)
	assertFormat(t, "YYYY-MM-DDThh:mm:ss/YYYY-MM-DDThh:mm:ss",
		"1985-04-12T23:20:50/1985-06-25T10:30:00", startEnd)

	startDur, err := chrono.NewTimeInterval(chrono.DateTimeEndpoint(start), chrono.DurationEndpoint(dur))
	if err != nil {
		t.Fatal(err)
	}
	assertFormat(t, "YYYYMMDDThhmmss/Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S",
		"19850412T232050/P1Y2M15DT12H30M0S", startDur)

	durEnd, err := chrono.NewTimeInterval(chrono.DurationEndpoint(dur), chrono.DateTimeEndpoint(end))
	if err != nil {
		t.Fatal(err)
	}
	assertFormat(t, "Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S/YYYYMMDDThhmmss",
		"P1Y2M15DT12H30M0S/19850625T103000", durEnd)
}

func TestFormatRecurringTimeInterval(t *testing.T) {
	start := chrono.NewDateTime(chrono.CalendarDateOf(1985, chrono.April, 12), chrono.TimeOf(23, 20, 50))
	end := chrono.NewDateTime(chrono.CalendarDateOf(1985, chrono.June, 25), chrono.TimeOf(10, 30, 0))
	dur := chrono.DurationOf(1, 2, 15, 12, 30, 0)

	recur := func(first, second chrono.Endpoint) chrono.RecurringTimeInterval {
		iv, err := chrono.NewTimeInterval(first, second)
		if err != nil {
			t.Fatal(err)
		}
		r, err := chrono.NewRecurringTimeInterval(chrono.Recurrences(12), iv)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}

	assertFormat(t, "Rn̲/YYYYMMDDThhmmss/YYYYMMDDThhmmss",
		"R12/19850412T232050/19850625T103000",
		recur(chrono.DateTimeEndpoint(start), chrono.DateTimeEndpoint(end)))
	assertFormat(t, "Rn̲/YYYYMMDDThhmmss/Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S",
		"R12/19850412T232050/P1Y2M15DT12H30M0S",
		recur(chrono.DateTimeEndpoint(start), chrono.DurationEndpoint(dur)))
	assertFormat(t, "Rn̲/Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S/YYYYMMDDThhmmss",
		"R12/P1Y2M15DT12H30M0S/19850412T232050",
		recur(chrono.DurationEndpoint(dur), chrono.DateTimeEndpoint(start)))
}

func TestFormatErrors(t *testing.T) {
	if _, err := chrono.NewFormat("QQ"); err == nil {
		t.Error("NewFormat(\"QQ\") should fail")
	}

	f := f2(t, "YYYY-MM-DD")
	if _, err := f.Read("ABCD"); err == nil {
		t.Error("Read(\"ABCD\") should fail")
	}

	_, err := f2(t, "Thhmmss").Read("X232050")
	if err == nil {
		t.Fatal("Read with missing literal should fail")
	}
	var stop *chrono.StopFormatError
	if !errors.As(err, &stop) {
		t.Errorf("error = %T, want *StopFormatError", err)
	}
}

func TestFormatCaseInsensitiveRead(t *testing.T) {
	got, err := f2(t, "YYYYMMDDThhmmss").Read("19850412t101530")
	if err != nil {
		t.Fatal(err)
	}
	want := chrono.NewDateTime(chrono.CalendarDateOf(1985, chrono.April, 12), chrono.TimeOf(10, 15, 30))
	dt, ok := got.(chrono.DateTime)
	if !ok || !dt.Equal(want) {
		t.Errorf("Read = %v (%T), want %v", got, got, want)
	}
}

func TestFormatUnderscoreRewrite(t *testing.T) {
	// "_n" is shorthand for an underlined (unbounded-width) digit letter.
	got, err := f2(t, "R_n/P_nY/YYYYMMDDThhmmss").Read("R365/P1Y/19850412T101530")
	if err != nil {
		t.Fatal(err)
	}
	r, ok := got.(chrono.RecurringTimeInterval)
	if !ok {
		t.Fatalf("Read = %T, want RecurringTimeInterval", got)
	}
	if r.Repetitions() != 365 {
		t.Errorf("Repetitions() = %d, want 365", r.Repetitions())
	}
}
