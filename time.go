package chrono

import "fmt"

// UTCOffset represents a time-zone offset from UTC, expressed as a
// signed hour and a minute component. The distinguished value UTC
// renders as "Z" rather than "+00:00".
type UTCOffset struct {
	hour   TimeUnit
	minute TimeUnit
	isUTC  bool
}

// UTC is the distinguished zero offset that formats as "Z".
var UTC = UTCOffset{hour: signedZeroHour(), minute: MinuteUnit(0), isUTC: true}

// signedZeroHour constructs the signed, zero-valued Hour TimeUnit used by
// UTC, so that UTC is built from the same constructors as any other offset.
func signedZeroHour() TimeUnit {
	u := mustUnit(KindHour, 0)
	u.signed = true
	return u
}

// NewUTCOffset constructs a UTCOffset from a signed hour and a minute.
func NewUTCOffset(hour, minute TimeUnit) (UTCOffset, error) {
	if err := requireKind(hour, KindHour); err != nil {
		return UTCOffset{}, err
	}
	if err := requireKind(minute, KindMinute); err != nil {
		return UTCOffset{}, err
	}
	return UTCOffset{hour: hour, minute: minute}, nil
}

// OffsetOf constructs a UTCOffset from a signed number of hours and a
// number of minutes: if hours is non-zero its sign governs the result
// and the sign of minutes is ignored.
func OffsetOf(hours, mins int) UTCOffset {
	neg := hours < 0
	if hours == 0 && mins < 0 {
		neg = true
		mins = -mins
	} else if mins < 0 {
		mins = -mins
	}

	h := mustUnit(KindHour, abs(hours))
	h.signed = true
	h.neg = neg

	return UTCOffset{hour: h, minute: mustUnit(KindMinute, mins)}
}

// OffsetOfHours constructs a UTCOffset from a signed number of hours with
// the minutes component absent; it renders as "+01" rather than "+01:00".
func OffsetOfHours(hours int) UTCOffset {
	h := mustUnit(KindHour, abs(hours))
	h.signed = true
	h.neg = hours < 0
	return UTCOffset{hour: h, minute: absentUnit(KindMinute)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Hour returns the offset's signed hour element.
func (o UTCOffset) Hour() TimeUnit { return o.hour }

// Minute returns the offset's minute element.
func (o UTCOffset) Minute() TimeUnit { return o.minute }

// IsUTC reports whether o is the distinguished UTC constant.
func (o UTCOffset) IsUTC() bool { return o.isUTC }

// TotalMinutes returns the offset as a signed count of minutes east of UTC.
func (o UTCOffset) TotalMinutes() int64 {
	if o.isUTC {
		return 0
	}
	h, m := o.hour.Int(), o.minute.Int()
	if o.hour.IsNegative() {
		return h*60 - m
	}
	return h*60 + m
}

// String renders o as "+01:00", "-05:00", or "+01" when the minutes
// component is absent. Only the distinguished UTC constant renders as "Z";
// a zero offset written "+00:00" stays "+00:00".
func (o UTCOffset) String() string {
	if o.isUTC {
		return "Z"
	}
	sign := "+"
	if o.hour.IsNegative() {
		sign = "-"
	}
	s := fmt.Sprintf("%s%02d", sign, abs64(o.hour.Int()))
	if o.minute.IsPresent() {
		s += fmt.Sprintf(":%02d", o.minute.Int())
	}
	return s
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Time represents an hour, minute and second with an optional UTC
// offset. The offset is out-of-band for accuracy-reduction purposes: it
// may be present even when the second (or the minute) is absent.
type Time struct {
	hour      TimeUnit
	minute    TimeUnit
	second    TimeUnit
	offset    UTCOffset
	hasOffset bool
}

// NewTime constructs a Time from hour, minute and second, enforcing the
// accuracy-reduction invariant among those three (but not against offset).
func NewTime(hour, minute, second TimeUnit) (Time, error) {
	if err := requireKind(hour, KindHour); err != nil {
		return Time{}, err
	}
	if err := requireKind(minute, KindMinute); err != nil {
		return Time{}, err
	}
	if err := requireKind(second, KindSecond); err != nil {
		return Time{}, err
	}
	if err := checkAccuracyReduction(hour, minute, second); err != nil {
		return Time{}, err
	}
	return Time{hour: hour, minute: minute, second: second}, nil
}

// TimeOf returns the Time of the given hour, minute and second. It panics
// if any component is out of range.
func TimeOf(hour, min int, sec float64) Time {
	t, err := NewTime(HourUnit(hour), MinuteUnit(min), SecondUnit(sec))
	if err != nil {
		panic(err.Error())
	}
	return t
}

// WithOffset returns a copy of t with its UTC offset set to o. Per the
// merge table, setting the offset does not zero-fill any lower component
// that remains absent.
func (t Time) WithOffset(o UTCOffset) Time {
	t.offset = o
	t.hasOffset = true
	return t
}

// Hour returns t's hour element.
func (t Time) Hour() TimeUnit { return t.hour }

// Minute returns t's minute element.
func (t Time) Minute() TimeUnit { return t.minute }

// Second returns t's second element.
func (t Time) Second() TimeUnit { return t.second }

// Offset returns t's UTC offset and whether one is present.
func (t Time) Offset() (UTCOffset, bool) { return t.offset, t.hasOffset }

func (t Time) elements() []TimeUnit {
	return []TimeUnit{t.hour, t.minute, t.second}
}

// IsComplete reports whether every element of t (excluding the offset) is present.
func (t Time) IsComplete() bool {
	for _, e := range t.elements() {
		if !e.IsPresent() {
			return false
		}
	}
	return true
}

// Equal reports whether t and t2 have the same clock components and the
// same UTC offset (or both none), distinguishing absent from zero.
func (t Time) Equal(t2 Time) bool {
	a, b := t.elements(), t2.elements()
	for i := range a {
		if a[i].IsPresent() != b[i].IsPresent() {
			return false
		}
		if a[i].IsPresent() && a[i].Decimal().Cmp(b[i].Decimal()) != 0 {
			return false
		}
	}
	if t.hasOffset != t2.hasOffset {
		return false
	}
	return !t.hasOffset || t.offset.TotalMinutes() == t2.offset.TotalMinutes()
}

func (t Time) String() string {
	s, err := stdFormatTime.format(t)
	if err != nil {
		return "%!Time(" + err.Error() + ")"
	}
	if t.hasOffset {
		s += t.offset.String()
	}
	return s
}
