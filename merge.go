package chrono

// The Merge algebra: the partial binary operation that combines two
// compatible values into a more-specific one. It backs the format
// machine's fold-as-you-parse read mode and is exported for direct use.
// The rules live in one explicit type switch over the (left, right)
// pair, a concrete dispatch table rather than reflection.

// Value is implemented by every type Merge knows how to combine: TimeUnit,
// Date, Time, UTCOffset, DateTime, Duration, WeeksDuration, TimeInterval and
// RecurringTimeInterval.
type Value interface {
	mergeTag() string
}

func (TimeUnit) mergeTag() string              { return "TimeUnit" }
func (Date) mergeTag() string                  { return "Date" }
func (Time) mergeTag() string                  { return "Time" }
func (UTCOffset) mergeTag() string             { return "UTCOffset" }
func (DateTime) mergeTag() string              { return "DateTime" }
func (Duration) mergeTag() string              { return "Duration" }
func (WeeksDuration) mergeTag() string         { return "WeeksDuration" }
func (TimeInterval) mergeTag() string          { return "TimeInterval" }
func (RecurringTimeInterval) mergeTag() string { return "RecurringTimeInterval" }

// errNoMerge is the sentinel the format machine checks for to decide "do
// not collapse these stack entries" rather than aborting outright.
var errNoMerge = valueErrorf("no merge rule applies")

// IsNoMerge reports whether err is the "these two values don't combine"
// sentinel, as opposed to a genuine construction failure from a rule that
// did apply.
func IsNoMerge(err error) bool {
	ve, ok := err.(*ValueError)
	return ok && ve == errNoMerge.(*ValueError)
}

// Merge combines a and b. It returns errNoMerge (test with IsNoMerge) if
// no rule matches the pair's dynamic types.
//
// The identity unit pushed by a hard separator dissolves into whatever is
// merged onto it, but nothing merges an identity unit from the right: that
// asymmetry is what blocks a merge reaching backward across an interval
// boundary while letting the boundary itself vanish once the next fragment
// arrives.
func Merge(a, b Value) (Value, error) {
	if au, ok := a.(TimeUnit); ok && au.kind == kindIdentity {
		return b, nil
	}
	if bu, ok := b.(TimeUnit); ok && bu.kind == kindIdentity {
		return nil, errNoMerge
	}

	switch av := a.(type) {
	case TimeUnit:
		return mergeFromUnit(av, b)
	case Date:
		return mergeFromDate(av, b)
	case Time:
		return mergeFromTime(av, b)
	case UTCOffset:
		return mergeFromOffset(av, b)
	case DateTime:
		return mergeFromDateTime(av, b)
	case Duration:
		return mergeFromDuration(av, b)
	case WeeksDuration:
		return mergeFromWeeksDuration(av, b)
	case TimeInterval:
		return mergeFromTimeInterval(av, b)
	case RecurringTimeInterval:
		return mergeFromRecurring(av, b)
	default:
		return nil, errNoMerge
	}
}

func mergeFromUnit(a TimeUnit, b Value) (Value, error) {
	if a.Kind() == KindRecurrences {
		iv, ok := asTimeInterval(b)
		if !ok {
			return nil, errNoMerge
		}
		return NewRecurringTimeInterval(a, iv)
	}
	if a.Kind() == KindWeeks {
		return mergeWeeksWithAnything(a, b)
	}

	if off, ok := b.(UTCOffset); ok && a.Kind() == KindHour {
		t, err := NewTime(a, absentUnit(KindMinute), absentUnit(KindSecond))
		if err != nil {
			return nil, err
		}
		return t.WithOffset(off), nil
	}

	bu, ok := b.(TimeUnit)
	if !ok {
		// Unit | Representation, with the unit on the left: handled like
		// the Representation | Unit case in mergeSlotFill.
		return mergeSlotFill(b, a)
	}

	if bu.Kind() == KindWeeks {
		return mergeWeeksWithAnything(bu, a)
	}

	switch {
	case a.Kind() == KindYear && bu.Kind() == KindMonth:
		return NewCalendarDate(a, bu, absentUnit(KindDayOfMonth))
	case a.Kind() == KindYear && bu.Kind() == KindWeek:
		return NewWeekDate(a, bu, absentUnit(KindDayOfWeek))
	case a.Kind() == KindYear && bu.Kind() == KindDayOfYear:
		return NewOrdinalDate(a, bu)
	case a.Kind() == KindHour && bu.Kind() == KindMinute && !a.IsSigned():
		return NewTime(a, bu, absentUnit(KindSecond))
	case a.Kind() == KindHour && bu.Kind() == KindMinute && a.IsSigned():
		return NewUTCOffset(a, bu)
	case a.Kind().isCardinal() && bu.Kind().isCardinal():
		return mergeCardinals(a, bu)
	}
	return nil, errNoMerge
}

// mergeCardinals seeds a Duration with a and b, zero-filling every slot
// strictly between them; slots outside the pair stay absent. Merging
// Years(1) with Days(15) therefore gives P1Y0M15D, not a Duration with a
// hole in the middle.
func mergeCardinals(a, b TimeUnit) (Duration, error) {
	kinds := []Kind{KindYears, KindMonths, KindDays, KindHours, KindMinutes, KindSeconds}

	slot := func(u TimeUnit) int {
		for i, k := range kinds {
			if k == u.Kind() {
				return i
			}
		}
		return -1
	}
	ai, bi := slot(a), slot(b)
	if ai < 0 || bi < 0 || ai == bi {
		return Duration{}, errNoMerge
	}

	var out [6]TimeUnit
	for i := range out {
		out[i] = absentUnit(kinds[i])
	}
	out[ai], out[bi] = a, b
	lo, hi := ai, bi
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo + 1; i < hi; i++ {
		out[i] = zeroUnit(kinds[i])
	}
	return Duration{Years: out[0], Months: out[1], Days: out[2], Hours: out[3], Minutes: out[4], Seconds: out[5]}, nil
}

func mergeWeeksWithAnything(weeks TimeUnit, b Value) (WeeksDuration, error) {
	switch bv := b.(type) {
	case WeeksDuration:
		return AddWeeksDuration(WeeksDuration{Weeks: weeks}, bv)
	case TimeUnit:
		if bv.Kind() != KindWeeks {
			return WeeksDuration{}, errNoMerge
		}
		return AddWeeks(WeeksDuration{Weeks: weeks}, bv)
	default:
		return NewWeeksDuration(weeks)
	}
}

func asTimeInterval(v Value) (TimeInterval, bool) {
	switch x := v.(type) {
	case TimeInterval:
		return x, true
	case DateTime:
		return TimeInterval{start: DateTimeEndpoint(x)}, true
	case Duration:
		return NewOpenTimeInterval(x), true
	default:
		return TimeInterval{}, false
	}
}

func mergeFromDate(a Date, b Value) (Value, error) {
	switch bv := b.(type) {
	case Date:
		if a.variant != bv.variant {
			return nil, errNoMerge
		}
		return mergeDateDate(a, bv)
	case Time:
		return NewDateTime(a, bv), nil
	case TimeUnit:
		return mergeSlotFill(a, bv)
	default:
		return nil, errNoMerge
	}
}

func mergeDateDate(a, b Date) (Date, error) {
	ae, be := a.elements(), b.elements()
	out := make([]TimeUnit, len(ae))
	for i := range ae {
		if ae[i].IsPresent() {
			out[i] = ae[i]
		} else {
			out[i] = be[i]
		}
	}
	switch a.variant {
	case VariantOrdinal:
		return NewOrdinalDate(out[0], out[1])
	case VariantWeek:
		return NewWeekDate(out[0], out[1], out[2])
	default:
		return NewCalendarDate(out[0], out[1], out[2])
	}
}

func mergeFromTime(a Time, b Value) (Value, error) {
	switch bv := b.(type) {
	case Time:
		merged, err := NewTime(fillUnit(a.hour, bv.hour), fillUnit(a.minute, bv.minute), fillUnit(a.second, bv.second))
		if err != nil {
			return nil, err
		}
		if a.hasOffset {
			merged = merged.WithOffset(a.offset)
		} else if bv.hasOffset {
			merged = merged.WithOffset(bv.offset)
		}
		return merged, nil
	case UTCOffset:
		return a.WithOffset(bv), nil
	case TimeUnit:
		if off, ok := signedHourOffset(bv); ok {
			return a.WithOffset(off), nil
		}
		return mergeSlotFill(a, bv)
	default:
		return nil, errNoMerge
	}
}

// signedHourOffset recognizes a signed Hour unit as the start of a UTC
// offset ("+04" with no minutes). An unsigned hour is never an offset.
func signedHourOffset(u TimeUnit) (UTCOffset, bool) {
	if u.Kind() != KindHour || !u.IsSigned() {
		return UTCOffset{}, false
	}
	off, err := NewUTCOffset(u, absentUnit(KindMinute))
	if err != nil {
		return UTCOffset{}, false
	}
	return off, true
}

func fillUnit(left, right TimeUnit) TimeUnit {
	if left.IsPresent() {
		return left
	}
	return right
}

func mergeFromOffset(a UTCOffset, b Value) (Value, error) {
	switch bv := b.(type) {
	case Time:
		return bv.WithOffset(a), nil
	default:
		return nil, errNoMerge
	}
}

func mergeFromDateTime(a DateTime, b Value) (Value, error) {
	switch bv := b.(type) {
	case DateTime:
		return NewTimeInterval(DateTimeEndpoint(a), DateTimeEndpoint(bv))
	case Duration:
		return NewTimeInterval(DateTimeEndpoint(a), DurationEndpoint(bv))
	case UTCOffset:
		return NewDateTime(a.Date, a.Time.WithOffset(bv)), nil
	case TimeUnit:
		if off, ok := signedHourOffset(bv); ok {
			return NewDateTime(a.Date, a.Time.WithOffset(off)), nil
		}
		return mergeSlotFill(a, bv)
	default:
		return nil, errNoMerge
	}
}

func mergeFromDuration(a Duration, b Value) (Value, error) {
	switch bv := b.(type) {
	case Duration:
		return mergeDurationDuration(a, bv), nil
	case DateTime:
		return NewTimeInterval(DurationEndpoint(a), DateTimeEndpoint(bv))
	case TimeUnit:
		if bv.Kind() == KindRecurrences {
			return NewRecurringTimeInterval(bv, NewOpenTimeInterval(a))
		}
		if bv.Kind() == KindWeeks {
			// Weeks never mix with the other duration components: a "PnW"
			// template's empty Duration gives way to a WeeksDuration.
			return NewWeeksDuration(bv)
		}
		return mergeSlotFill(a, bv)
	default:
		return nil, errNoMerge
	}
}

func mergeDurationDuration(a, b Duration) Duration {
	ac, bc := a.components(), b.components()
	var out [6]TimeUnit
	for i := range ac {
		if ac[i].IsPresent() {
			out[i] = ac[i]
		} else {
			out[i] = bc[i]
		}
	}
	return Duration{Years: out[0], Months: out[1], Days: out[2], Hours: out[3], Minutes: out[4], Seconds: out[5]}
}

func mergeFromWeeksDuration(a WeeksDuration, b Value) (Value, error) {
	switch bv := b.(type) {
	case WeeksDuration:
		return AddWeeksDuration(a, bv)
	case TimeUnit:
		if bv.Kind() != KindWeeks {
			return nil, errNoMerge
		}
		return AddWeeks(a, bv)
	default:
		return nil, errNoMerge
	}
}

func mergeFromTimeInterval(a TimeInterval, b Value) (Value, error) {
	switch bv := b.(type) {
	case TimeUnit:
		if bv.Kind() == KindRecurrences {
			return NewRecurringTimeInterval(bv, a)
		}
	case DateTime:
		if a.end.kind == EndpointNone {
			return NewTimeInterval(a.start, DateTimeEndpoint(bv))
		}
	case Duration:
		if a.end.kind == EndpointNone {
			return NewTimeInterval(a.start, DurationEndpoint(bv))
		}
	}
	return nil, errNoMerge
}

// mergeFromRecurring completes a recurring interval whose inner interval
// still lacks its second endpoint, which is how the read machine's final
// fold assembles "Rn/<start>/<duration>": Recurrences merges with the first
// endpoint to seed the recurrence, then the second endpoint lands here.
func mergeFromRecurring(a RecurringTimeInterval, b Value) (Value, error) {
	if a.Interval.end.kind != EndpointNone {
		return nil, errNoMerge
	}
	switch bv := b.(type) {
	case DateTime:
		iv, err := NewTimeInterval(a.Interval.start, DateTimeEndpoint(bv))
		if err != nil {
			return nil, err
		}
		return NewRecurringTimeInterval(a.Recurrences, iv)
	case Duration:
		iv, err := NewTimeInterval(a.Interval.start, DurationEndpoint(bv))
		if err != nil {
			return nil, err
		}
		return NewRecurringTimeInterval(a.Recurrences, iv)
	default:
		return nil, errNoMerge
	}
}

// mergeSlotFill implements "Representation R | Unit U: place U in the slot
// of matching kind; if any earlier slot is absent, fill with zero of that
// kind." It dispatches on r's concrete type since each representation has
// its own field layout and constructor.
func mergeSlotFill(r Value, u TimeUnit) (Value, error) {
	switch rv := r.(type) {
	case Date:
		return dateSlotFill(rv, u)
	case Time:
		return timeSlotFill(rv, u)
	case DateTime:
		merged, err := mergeSlotFill(rv.Date, u)
		if err == nil {
			if d, ok := merged.(Date); ok {
				return NewDateTime(d, rv.Time), nil
			}
		}
		merged, err = mergeSlotFill(rv.Time, u)
		if err != nil {
			return nil, err
		}
		t, ok := merged.(Time)
		if !ok {
			return nil, errNoMerge
		}
		return NewDateTime(rv.Date, t), nil
	case Duration:
		return durationSlotFill(rv, u)
	default:
		return nil, errNoMerge
	}
}

func dateSlotFill(d Date, u TimeUnit) (Date, error) {
	var kinds []Kind
	switch d.variant {
	case VariantOrdinal:
		kinds = []Kind{KindYear, KindDayOfYear}
	case VariantWeek:
		kinds = []Kind{KindYear, KindWeek, KindDayOfWeek}
	default:
		kinds = []Kind{KindYear, KindMonth, KindDayOfMonth}
	}
	elems := d.elements()
	out, err := placeUnit(elems, kinds, u)
	if err != nil {
		return Date{}, err
	}
	switch d.variant {
	case VariantOrdinal:
		return NewOrdinalDate(out[0], out[1])
	case VariantWeek:
		return NewWeekDate(out[0], out[1], out[2])
	default:
		return NewCalendarDate(out[0], out[1], out[2])
	}
}

func timeSlotFill(t Time, u TimeUnit) (Time, error) {
	kinds := []Kind{KindHour, KindMinute, KindSecond}
	out, err := placeUnit(t.elements(), kinds, u)
	if err != nil {
		return Time{}, err
	}
	merged, err := NewTime(out[0], out[1], out[2])
	if err != nil {
		return Time{}, err
	}
	if t.hasOffset {
		merged = merged.WithOffset(t.offset)
	}
	return merged, nil
}

func durationSlotFill(d Duration, u TimeUnit) (Duration, error) {
	kinds := []Kind{KindYears, KindMonths, KindDays, KindHours, KindMinutes, KindSeconds}
	comps := d.components()
	out, err := placeUnit(comps[:], kinds, u)
	if err != nil {
		return Duration{}, err
	}
	return Duration{Years: out[0], Months: out[1], Days: out[2], Hours: out[3], Minutes: out[4], Seconds: out[5]}, nil
}

// placeUnit locates the slot in elems whose kind matches u, sets it to u,
// and zero-fills any earlier slot that is still absent. It leaves later
// slots untouched, and refuses to overwrite a slot that already holds a
// value. elems and kinds must be parallel slices.
func placeUnit(elems []TimeUnit, kinds []Kind, u TimeUnit) ([]TimeUnit, error) {
	idx := -1
	for i, k := range kinds {
		if k == u.Kind() {
			idx = i
			break
		}
	}
	if idx == -1 || elems[idx].IsPresent() {
		return nil, errNoMerge
	}

	out := make([]TimeUnit, len(elems))
	copy(out, elems)
	for i := 0; i < idx; i++ {
		if !out[i].IsPresent() {
			out[i] = zeroUnit(kinds[i])
		}
	}
	out[idx] = u
	return out, nil
}

// zeroUnit constructs a present TimeUnit of the given kind with value 0,
// bypassing the ordinary range validation that NewTimeUnit performs: this
// is an intermediate value used only while folding parsed fragments
// together, re-validated (if at all) only once the fold is complete, per
// the format machine's final merge step.
func zeroUnit(kind Kind) TimeUnit {
	return TimeUnit{kind: kind, present: true, value: decimalZero}
}
