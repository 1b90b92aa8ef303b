package chrono

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/govalues/decimal"
)

// TimeUnit is a tagged numeric scalar: one component of a time
// representation (a year, a month, an hour, ...). Its value is either
// present or absent - two states deliberately kept distinct, since an
// absent element drives the accuracy-reduction logic throughout the
// package, while a present zero does not.
//
// TimeUnit values are immutable; every operation returns a new value.
type TimeUnit struct {
	kind    Kind
	present bool
	signed  bool
	neg     bool
	value   decimal.Decimal
}

var unitStringPattern = regexp.MustCompile(`^([+-])?([0-9]+)(\.[0-9]+)?$`)

// ordinalRange describes the inclusive range a TimeUnit's absolute value
// must fall within, keyed by Kind. Cardinal kinds are absent from this
// table: they are range-unbounded, merely non-negative.
var ordinalRange = map[Kind][2]int64{
	KindYear:        {0, 9999},
	KindMonth:       {1, 12},
	KindWeek:        {1, 53},
	KindDayOfMonth:  {1, 31},
	KindDayOfYear:   {1, 366},
	KindDayOfWeek:   {1, 7},
	KindHour:        {0, 24},
	KindMinute:      {0, 59},
	KindSecond:      {0, 60},
	KindRecurrences: {0, 1<<62 - 1},
}

// absentUnit returns the absent value of the given kind.
func absentUnit(kind Kind) TimeUnit {
	return TimeUnit{kind: kind, present: false}
}

// identityUnit returns the hard-separator sentinel: an absent element of a
// dedicated kind that nothing merges with from the right, stopping a merge
// from reaching backward across a '/' interval separator. Merging it with
// the value that follows dissolves it (see Merge).
func identityUnit() TimeUnit {
	return TimeUnit{kind: kindIdentity, present: false}
}

// NewTimeUnit constructs a TimeUnit of the given kind from v, which must be
// an int, int64, float64, string (matching `([+-])?([0-9]+)(\.[0-9]+)?`), or
// another TimeUnit of the same kind. Strings containing a '.' produce a
// decimal value; otherwise an integer. The leading-sign flag is set iff a
// string argument began with '+' or '-'.
func NewTimeUnit(kind Kind, v any) (TimeUnit, error) {
	switch x := v.(type) {
	case int:
		return newOrdinalOrCardinal(kind, decimalFromInt(int64(x)).Abs(), x < 0, false)
	case int64:
		return newOrdinalOrCardinal(kind, decimalFromInt(x).Abs(), x < 0, false)
	case float64:
		d, err := decimal.NewFromFloat64(x)
		if err != nil {
			return TimeUnit{}, err
		}
		return newOrdinalOrCardinal(kind, d.Abs(), x < 0, false)
	case string:
		m := unitStringPattern.FindStringSubmatch(x)
		if m == nil {
			return TimeUnit{}, valueErrorf("malformed time unit %q", x)
		}
		signed := m[1] != ""
		neg := m[1] == "-"
		digits := m[2] + m[3]
		d, err := parseDecimal(digits)
		if err != nil {
			return TimeUnit{}, err
		}
		return newOrdinalOrCardinal(kind, d, neg, signed)
	case TimeUnit:
		if x.kind != kind {
			return TimeUnit{}, valueErrorf("cannot construct %s from %s", kind, x.kind)
		}
		return x, nil
	default:
		return TimeUnit{}, valueErrorf("unsupported time unit value %T", v)
	}
}

func newOrdinalOrCardinal(kind Kind, magnitude decimal.Decimal, neg, signed bool) (TimeUnit, error) {
	if kind.isCardinal() {
		if neg {
			return TimeUnit{}, valueErrorf("cardinal %s must be non-negative", kind)
		}
		return TimeUnit{kind: kind, present: true, signed: signed, neg: false, value: magnitude}, nil
	}

	// The range applies to the absolute value; the sign flag is carried
	// separately.
	if rng, ok := ordinalRange[kind]; ok {
		v, _, _ := magnitude.Int64(0)
		if v < rng[0] || v > rng[1] {
			return TimeUnit{}, &InvalidTimeUnitError{Kind: kind, Value: magnitude.String()}
		}
	}
	return TimeUnit{kind: kind, present: true, signed: signed, neg: neg, value: magnitude}, nil
}

// mustUnit panics if NewTimeUnit would return an error; used by the
// infallible constructors below.
func mustUnit(kind Kind, v any) TimeUnit {
	u, err := NewTimeUnit(kind, v)
	if err != nil {
		panic(err.Error())
	}
	return u
}

// Ordinal element constructors.
func Year(v int) TimeUnit       { return mustUnit(KindYear, v) }
func MonthUnit(v int) TimeUnit  { return mustUnit(KindMonth, v) }
func WeekUnit(v int) TimeUnit   { return mustUnit(KindWeek, v) }
func DayOfMonth(v int) TimeUnit { return mustUnit(KindDayOfMonth, v) }
func DayOfYear(v int) TimeUnit  { return mustUnit(KindDayOfYear, v) }
func DayOfWeekUnit(d Weekday) TimeUnit {
	return mustUnit(KindDayOfWeek, int(d))
}
func HourUnit(v int) TimeUnit   { return mustUnit(KindHour, v) }
func MinuteUnit(v int) TimeUnit { return mustUnit(KindMinute, v) }
func SecondUnit(v float64) TimeUnit {
	return mustUnit(KindSecond, v)
}
func Recurrences(v int) TimeUnit { return mustUnit(KindRecurrences, v) }

// Cardinal element constructors, used as Duration components. They panic
// if v is negative: a negative cardinal is a programming error, not a
// parse error.
func Years(v int) TimeUnit   { return mustUnit(KindYears, v) }
func Months(v int) TimeUnit  { return mustUnit(KindMonths, v) }
func Weeks(v int) TimeUnit   { return mustUnit(KindWeeks, v) }
func Days(v int) TimeUnit    { return mustUnit(KindDays, v) }
func Hours(v int) TimeUnit   { return mustUnit(KindHours, v) }
func Minutes(v int) TimeUnit { return mustUnit(KindMinutes, v) }
func Seconds(v float64) TimeUnit {
	return mustUnit(KindSeconds, v)
}

// Kind returns the unit's kind.
func (u TimeUnit) Kind() Kind { return u.kind }

// IsPresent reports whether u carries a value. An absent unit coerces to 0
// when read via Int or Decimal, but is false in a truthiness test - this is
// the distinction that the accuracy-reduction invariant depends on.
func (u TimeUnit) IsPresent() bool { return u.present }

// IsSigned reports whether the source text of u carried an explicit leading
// sign, independent of whether the value itself is negative. This matters
// for UTC offsets, where "+00" and "00" are semantically different.
func (u TimeUnit) IsSigned() bool { return u.signed }

// IsNegative reports whether u's value is negative.
func (u TimeUnit) IsNegative() bool { return u.present && u.neg }

// Int returns u's value truncated to an integer, or 0 if u is absent.
func (u TimeUnit) Int() int64 {
	if !u.present {
		return 0
	}
	whole, _, _ := u.value.Int64(0)
	if u.neg {
		return -whole
	}
	return whole
}

// Decimal returns u's unsigned magnitude as an exact decimal value.
func (u TimeUnit) Decimal() decimal.Decimal { return u.value }

// Negate returns the unit with its sign flipped. Negating an absent unit
// returns it unchanged.
func (u TimeUnit) Negate() TimeUnit {
	if !u.present {
		return u
	}
	u.neg = !u.neg
	return u
}

// Sub returns the TimeUnit representing u's value minus v's, which must
// share u's kind. No borrow from a coarser unit is performed: a result
// outside the kind's range, or a negative cardinal, is returned as an
// error.
func (u TimeUnit) Sub(v TimeUnit) (TimeUnit, error) {
	if u.kind != v.kind {
		return TimeUnit{}, valueErrorf("cannot subtract %s from %s", v.kind, u.kind)
	}

	a, b := u.signedDecimal(), v.signedDecimal()
	d, err := a.Sub(b)
	if err != nil {
		return TimeUnit{}, err
	}
	return newOrdinalOrCardinal(u.kind, d.Abs(), d.Sign() < 0, u.signed || v.signed)
}

func (u TimeUnit) signedDecimal() decimal.Decimal {
	if u.neg {
		return u.value.Neg()
	}
	return u.value
}

// Equal reports whether u and v represent the same kind and value.
func (u TimeUnit) Equal(v TimeUnit) bool {
	if u.kind != v.kind || u.present != v.present {
		return false
	}
	if !u.present {
		return true
	}
	return u.signedDecimal().Cmp(v.signedDecimal()) == 0
}

// Compare compares u and v, which must share a kind. It returns -1, 0, or 1
// as u is less than, equal to, or greater than v.
func (u TimeUnit) Compare(v TimeUnit) int {
	return u.signedDecimal().Cmp(v.signedDecimal())
}

func (u TimeUnit) String() string {
	if !u.present {
		return fmt.Sprintf("%s(absent)", u.kind)
	}
	var sb strings.Builder
	sb.WriteString(u.kind.String())
	sb.WriteByte('(')
	if u.signed {
		if u.neg {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('+')
		}
	} else if u.neg {
		sb.WriteByte('-')
	}
	sb.WriteString(u.value.String())
	sb.WriteByte(')')
	return sb.String()
}
