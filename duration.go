package chrono

import "strings"

// Duration represents an amount of time expressed in years, months, days,
// hours, minutes and seconds. Each component is an independent
// cardinal TimeUnit; an absent component is distinct from a present zero,
// which the default renderer (Format) relies on when eliding leading
// zero-valued components. Duration never mixes with WeeksDuration - see
// WeeksDuration for why weeks stand alone.
type Duration struct {
	Years, Months, Days     TimeUnit
	Hours, Minutes, Seconds TimeUnit
}

// NewDuration constructs a Duration from its six cardinal components. Any
// component may be the absent TimeUnit of its kind.
func NewDuration(years, months, days, hours, minutes, seconds TimeUnit) (Duration, error) {
	for _, e := range []struct {
		u TimeUnit
		k Kind
	}{
		{years, KindYears}, {months, KindMonths}, {days, KindDays},
		{hours, KindHours}, {minutes, KindMinutes}, {seconds, KindSeconds},
	} {
		if err := requireKind(e.u, e.k); err != nil {
			return Duration{}, err
		}
	}
	return Duration{Years: years, Months: months, Days: days, Hours: hours, Minutes: minutes, Seconds: seconds}, nil
}

// DurationOf is a convenience constructor taking plain integers (and a
// float for fractional seconds); every component is present.
func DurationOf(years, months, days, hours, minutes int, seconds float64) Duration {
	return Duration{
		Years: Years(years), Months: Months(months), Days: Days(days),
		Hours: Hours(hours), Minutes: Minutes(minutes), Seconds: Seconds(seconds),
	}
}

func (d Duration) components() [6]TimeUnit {
	return [6]TimeUnit{d.Years, d.Months, d.Days, d.Hours, d.Minutes, d.Seconds}
}

// Equal reports whether d and d2 have the same components, distinguishing
// an absent component from a present zero.
func (d Duration) Equal(d2 Duration) bool {
	a, b := d.components(), d2.components()
	for i := range a {
		if a[i].IsPresent() != b[i].IsPresent() {
			return false
		}
		if a[i].IsPresent() && a[i].Decimal().Cmp(b[i].Decimal()) != 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether every present component of d is zero, and at
// least one component is present.
func (d Duration) IsZero() bool {
	any := false
	for _, c := range d.components() {
		if !c.IsPresent() {
			continue
		}
		any = true
		if !c.Decimal().IsZero() {
			return false
		}
	}
	return any
}

// Negate returns -d: every present component with its sign flipped.
func (d Duration) Negate() Duration {
	out := d
	out.Years = out.Years.Negate()
	out.Months = out.Months.Negate()
	out.Days = out.Days.Negate()
	out.Hours = out.Hours.Negate()
	out.Minutes = out.Minutes.Negate()
	out.Seconds = out.Seconds.Negate()
	return out
}

// The ISO 8601 designator letter for each component, in
// most-significant-first order, split across the 'P' and 'T' halves of
// the representation.
var periodSuffixes = [3]string{"Y", "M", "D"}
var timeSuffixes = [3]string{"H", "M", "S"}

// Format renders d according to the default ISO 8601 duration
// representation. Per ISO 8601 4.4.3.2 (c), a zero component and its
// designator may be omitted, but at least one must remain: the leading
// run of zero (or absent) components is elided, every present component
// from the first non-zero one onward is rendered, and an all-zero duration
// renders as "PT0S".
func (d Duration) Format() string {
	comps := d.components()

	first := -1
	for i, c := range comps {
		if c.IsPresent() && !c.Decimal().IsZero() {
			first = i
			break
		}
	}
	if first == -1 {
		return "PT0S"
	}

	var sb strings.Builder
	sb.WriteByte('P')
	wroteT := false
	for i := first; i < len(comps); i++ {
		c := comps[i]
		if !c.IsPresent() {
			continue
		}
		if i >= 3 && !wroteT {
			sb.WriteByte('T')
			wroteT = true
		}
		sb.WriteString(decimalWhole(c.Decimal()))
		if frac := decimalFractionDigits(c.Decimal(), 0, 9); frac != "" && !allZero(frac) {
			sb.WriteByte(',')
			sb.WriteString(frac)
		}
		if i < 3 {
			sb.WriteString(periodSuffixes[i])
		} else {
			sb.WriteString(timeSuffixes[i-3])
		}
	}
	return sb.String()
}

func allZero(s string) bool {
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}

func (d Duration) String() string { return d.Format() }

// WeeksDuration represents a duration expressed purely in weeks. Weeks
// never mix with any other duration component: ISO 8601 forbids "P1W2D",
// so this is a distinct type rather than a seventh Duration field.
type WeeksDuration struct {
	Weeks TimeUnit
}

// NewWeeksDuration constructs a WeeksDuration.
func NewWeeksDuration(weeks TimeUnit) (WeeksDuration, error) {
	if err := requireKind(weeks, KindWeeks); err != nil {
		return WeeksDuration{}, err
	}
	return WeeksDuration{Weeks: weeks}, nil
}

// Format renders w in the "PnW" weeks representation.
func (w WeeksDuration) Format() string {
	return "P" + decimalWhole(w.Weeks.Decimal()) + "W"
}

func (w WeeksDuration) String() string { return w.Format() }
