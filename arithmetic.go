package chrono

// Calendar-date, time and duration arithmetic, including the
// variable-month-length clipping behaviour and the carry/overflow
// semantics that DateTime arithmetic folds back into the date side. The
// calendar work is done directly in year/month/day components with a
// clip-and-normalize step, rather than round-tripping through a Julian
// Day Number; month-length clipping is what makes 1983-01-31 plus one
// month land on 1983-02-28.

// AddDate returns date + dur. date must be a CalendarDate (convert with
// Date.ToCalendar first if it is an OrdinalDate or WeekDate).
func AddDate(date Date, dur Duration) (Date, error) { return dateArith(1, date, dur) }

// SubDate returns date - dur.
func SubDate(date Date, dur Duration) (Date, error) { return dateArith(-1, date, dur) }

func dateArith(sign int, date Date, dur Duration) (Date, error) {
	if date.variant != VariantCalendar {
		return Date{}, valueErrorf("date arithmetic requires a CalendarDate")
	}

	year := date.year.Int() + dur.Years.Int()*int64(sign)

	if !date.month.IsPresent() {
		return NewCalendarDate(Year(int(year)), absentUnit(KindMonth), absentUnit(KindDayOfMonth))
	}

	carry, month := divmod1(int(date.month.Int())+int(dur.Months.Int())*sign, 12)
	year += int64(carry)

	if !date.day.IsPresent() {
		return NewCalendarDate(Year(int(year)), MonthUnit(month), absentUnit(KindDayOfMonth))
	}

	n, err := daysInMonth(int(year), month)
	if err != nil {
		return Date{}, err
	}
	day := int(date.day.Int())
	if day > n {
		day = n // clip, e.g. 1983-01-31 + 1 month -> 1983-02-28
	}
	day += int(dur.Days.Int()) * sign

	yy, mm, dd := normalizeDay(int(year), month, day)
	return NewCalendarDate(Year(yy), MonthUnit(mm), DayOfMonth(dd))
}

// normalizeDay repeatedly borrows from, or carries into, the adjacent
// month until day falls within [1, days-in-month]. The asymmetry is
// deliberate: borrowing must decrement the month before looking up its
// length, while carrying must subtract the current month's length first.
func normalizeDay(year, month, day int) (int, int, int) {
	for day < 1 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		n, _ := daysInMonth(year, month)
		day += n
	}
	for {
		n, _ := daysInMonth(year, month)
		if day <= n {
			break
		}
		day -= n
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return year, month, day
}

// AddTime returns t + dur's time components (Hours, Minutes, Seconds).
// dur's Years/Months/Days components are ignored - they have no meaning
// against a bare Time. If the addition carries past 23:59:59.999..., a
// *TimeUnitOverflowError is returned carrying the wrapped Time and the
// number of whole days carried; DateTime arithmetic is the only internal
// consumer of that carry (see AddDateTime).
func AddTime(t Time, dur Duration) (Time, error) { return timeArith(1, t, dur) }

// SubTime returns t - dur's time components, with the same overflow
// behaviour as AddTime.
func SubTime(t Time, dur Duration) (Time, error) { return timeArith(-1, t, dur) }

func timeArith(sign int, t Time, dur Duration) (Time, error) {
	// An absent component stays absent and contributes no carry; the
	// duration's contribution at that accuracy simply does not apply to a
	// reduced-accuracy time.
	carry := int64(0)

	second := absentUnit(KindSecond)
	if t.second.IsPresent() {
		durSecs := dur.Seconds.Decimal()
		if sign < 0 {
			durSecs = durSecs.Neg()
		}
		total, err := t.second.Decimal().Add(durSecs)
		if err != nil {
			return Time{}, err
		}
		c, rem := floorDivDecimal(total, 60)
		carry = c
		second = TimeUnit{kind: KindSecond, present: true, value: rem}
	}

	minute := absentUnit(KindMinute)
	if t.minute.IsPresent() {
		m := int(t.minute.Int()) + int(dur.Minutes.Int())*sign + int(carry)
		c := floorDiv(m, 60)
		carry = int64(c)
		minute = mustUnit(KindMinute, m-c*60)
	} else {
		carry = 0
	}

	hour := absentUnit(KindHour)
	if t.hour.IsPresent() {
		h := int(t.hour.Int()) + int(dur.Hours.Int())*sign + int(carry)
		c := floorDiv(h, 24)
		rem := h - c*24
		carry = int64(c)
		hour = mustUnit(KindHour, rem)
	} else {
		carry = 0
	}

	out := Time{
		hour:      hour,
		minute:    minute,
		second:    second,
		offset:    t.offset,
		hasOffset: t.hasOffset,
	}

	if carry != 0 {
		return out, &TimeUnitOverflowError{Partial: out, Carry: carry}
	}
	return out, nil
}

// AddDateTime returns dt + dur, folding any time-side day carry reported
// by AddTime into the date side as whole days.
func AddDateTime(dt DateTime, dur Duration) (DateTime, error) {
	return dateTimeArith(1, dt, dur)
}

// SubDateTime returns dt - dur.
func SubDateTime(dt DateTime, dur Duration) (DateTime, error) {
	return dateTimeArith(-1, dt, dur)
}

func dateTimeArith(sign int, dt DateTime, dur Duration) (DateTime, error) {
	dateOnly := dur
	dateOnly.Hours, dateOnly.Minutes, dateOnly.Seconds = absentUnit(KindHours), absentUnit(KindMinutes), absentUnit(KindSeconds)

	newDate, err := dateArith(sign, dt.Date, dateOnly)
	if err != nil {
		return DateTime{}, err
	}

	timeOnly := dur
	timeOnly.Years, timeOnly.Months, timeOnly.Days = absentUnit(KindYears), absentUnit(KindMonths), absentUnit(KindDays)

	newTime, err := timeArith(sign, dt.Time, timeOnly)
	if overflow, ok := err.(*TimeUnitOverflowError); ok {
		// The carry is signed: adding can spill forward past midnight,
		// subtracting can borrow back across it.
		carryDur := Duration{Days: Days(int(abs64(overflow.Carry)))}
		dir := 1
		if overflow.Carry < 0 {
			dir = -1
		}
		newDate, err = dateArith(dir, newDate, carryDur)
		if err != nil {
			return DateTime{}, err
		}
		return DateTime{Date: newDate, Time: overflow.Partial}, nil
	} else if err != nil {
		return DateTime{}, err
	}

	return DateTime{Date: newDate, Time: newTime}, nil
}

// SubDateTimeDateTime returns the Duration between two DateTimes: b - a,
// expressed purely in days/hours/minutes/seconds (no years or months - the
// interval between two instants has no inherent calendar-month length).
func SubDateTimeDateTime(a, b DateTime) (Duration, error) {
	ca, err := a.Date.ToCalendar()
	if err != nil {
		return Duration{}, err
	}
	cb, err := b.Date.ToCalendar()
	if err != nil {
		return Duration{}, err
	}

	daysBetween := (daysBeforeYear(int(cb.year.Int())) + ordinalDayOfYear(int(cb.year.Int()), int(cb.month.Int()), int(cb.day.Int()))) -
		(daysBeforeYear(int(ca.year.Int())) + ordinalDayOfYear(int(ca.year.Int()), int(ca.month.Int()), int(ca.day.Int())))

	secB, err := b.Time.second.Decimal().Add(decimalFromInt(b.Time.minute.Int()*60 + b.Time.hour.Int()*3600))
	if err != nil {
		return Duration{}, err
	}
	secA, err := a.Time.second.Decimal().Add(decimalFromInt(a.Time.minute.Int()*60 + a.Time.hour.Int()*3600))
	if err != nil {
		return Duration{}, err
	}

	diffSecs, err := secB.Sub(secA)
	if err != nil {
		return Duration{}, err
	}
	totalSecs, err := diffSecs.Add(decimalFromInt(int64(daysBetween) * 86400))
	if err != nil {
		return Duration{}, err
	}

	neg := totalSecs.Sign() < 0
	if neg {
		totalSecs = totalSecs.Neg()
	}

	days, secsRem := floorDivDecimal(totalSecs, 86400)
	hours, secsRem := floorDivDecimal(secsRem, 3600)
	minutes, secsRem := floorDivDecimal(secsRem, 60)

	out := Duration{
		Days:    Days(int(days)),
		Hours:   Hours(int(hours)),
		Minutes: Minutes(int(minutes)),
		Seconds: TimeUnit{kind: KindSeconds, present: true, value: secsRem},
	}
	if neg {
		out = out.Negate()
	}
	return out, nil
}

// AddDurationDuration returns a + b, component-wise. An absent component
// on either side is absent in the result iff both sides are absent;
// otherwise the absent side contributes zero.
func AddDurationDuration(a, b Duration) (Duration, error) { return durationArith(1, a, b) }

// SubDurationDuration returns a - b, component-wise.
func SubDurationDuration(a, b Duration) (Duration, error) { return durationArith(-1, a, b) }

func durationArith(sign int, a, b Duration) (Duration, error) {
	combine := func(kind Kind, x, y TimeUnit) (TimeUnit, error) {
		if !x.IsPresent() && !y.IsPresent() {
			return absentUnit(kind), nil
		}
		xv, yv := x.Decimal(), y.Decimal()
		if sign < 0 {
			yv = yv.Neg()
		}
		sum, err := xv.Add(yv)
		if err != nil {
			return TimeUnit{}, err
		}
		return TimeUnit{kind: kind, present: true, neg: sum.Sign() < 0, value: sum.Abs()}, nil
	}

	var out Duration
	var err error
	if out.Years, err = combine(KindYears, a.Years, b.Years); err != nil {
		return Duration{}, err
	}
	if out.Months, err = combine(KindMonths, a.Months, b.Months); err != nil {
		return Duration{}, err
	}
	if out.Days, err = combine(KindDays, a.Days, b.Days); err != nil {
		return Duration{}, err
	}
	if out.Hours, err = combine(KindHours, a.Hours, b.Hours); err != nil {
		return Duration{}, err
	}
	if out.Minutes, err = combine(KindMinutes, a.Minutes, b.Minutes); err != nil {
		return Duration{}, err
	}
	if out.Seconds, err = combine(KindSeconds, a.Seconds, b.Seconds); err != nil {
		return Duration{}, err
	}
	return out, nil
}

// AddWeeksDuration returns a + b. A WeeksDuration only combines with
// another WeeksDuration or, via AddWeeks, a bare Weeks cardinal.
func AddWeeksDuration(a, b WeeksDuration) (WeeksDuration, error) {
	sum, err := a.Weeks.Decimal().Add(b.Weeks.Decimal())
	if err != nil {
		return WeeksDuration{}, err
	}
	return NewWeeksDuration(TimeUnit{kind: KindWeeks, present: true, value: sum})
}

// AddWeeks returns a + Weeks(n) as a WeeksDuration.
func AddWeeks(a WeeksDuration, n TimeUnit) (WeeksDuration, error) {
	if n.Kind() != KindWeeks {
		return WeeksDuration{}, valueErrorf("WeeksDuration only combines with Weeks, got %s", n.Kind())
	}
	return AddWeeksDuration(a, WeeksDuration{Weeks: n})
}
