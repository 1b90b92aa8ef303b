package chrono

// The calendar kernel: the small set of pure integer functions that
// construction, validation, arithmetic and the ISO week conversions are
// built from.

// isLeapYear reports whether year is a leap year in the proleptic
// Gregorian calendar.
func isLeapYear(year int) bool {
	return year%400 == 0 || (year%4 == 0 && year%100 != 0)
}

var daysInMonthTable = [2][12]int{
	// non-leap
	{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
	// leap
	{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31},
}

// daysInMonth returns the number of days in the given month of year.
// month must be in the range 1..=12.
func daysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, valueErrorf("invalid month %d", month)
	}
	row := 0
	if isLeapYear(year) {
		row = 1
	}
	return daysInMonthTable[row][month-1], nil
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

// divmod1 performs euclidean division with a 1-indexed remainder:
// (q, r) such that a == q*b + r with 1 <= r <= b. It normalizes an
// out-of-range month or day back into range while reporting how many
// units of the next coarser component were carried.
func divmod1(a, b int) (q, r int) {
	q = floorDiv(a-1, b)
	r = (a - 1) - q*b + 1
	return q, r
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ordinalDayOfYear returns the 1-indexed day-of-year for the given
// calendar date, assumed already valid.
func ordinalDayOfYear(year, month, day int) int {
	total := day
	row := 0
	if isLeapYear(year) {
		row = 1
	}
	for m := 1; m < month; m++ {
		total += daysInMonthTable[row][m-1]
	}
	return total
}

// dateFromOrdinal converts a 1-indexed day-of-year back to a month and day.
func dateFromOrdinal(year, yday int) (month, day int, err error) {
	if yday < 1 || yday > daysInYear(year) {
		return 0, 0, valueErrorf("day %d out of range for year %d", yday, year)
	}

	row := 0
	if isLeapYear(year) {
		row = 1
	}

	remaining := yday
	for m := 1; m <= 12; m++ {
		n := daysInMonthTable[row][m-1]
		if remaining <= n {
			return m, remaining, nil
		}
		remaining -= n
	}
	// unreachable given the bounds check above
	return 0, 0, valueErrorf("day %d out of range for year %d", yday, year)
}

// weekdayOf returns the ISO weekday (Monday = 1 .. Sunday = 7) of the
// given calendar date, computed by ordinal day counting anchored on the
// fact that 0001-01-01 was a Monday in the proleptic Gregorian calendar.
func weekdayOf(year, month, day int) Weekday {
	days := daysBeforeYear(year) + ordinalDayOfYear(year, month, day) - 1
	// 0001-01-01 (days == 0) is a Monday.
	wd := ((days % 7) + 7) % 7
	return Weekday(wd + 1)
}

// daysBeforeYear returns the number of days between 0001-01-01 and
// January 1st of year (which may be negative for years before 1).
func daysBeforeYear(year int) int {
	y := year - 1
	return 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400)
}

// isoWeek returns the ISO 8601 week-based year and week number containing
// the given calendar date.
func isoWeek(year, month, day int) (isoYear, week int) {
	wd := int(weekdayOf(year, month, day)) // 1..7, Monday..Sunday
	yday := ordinalDayOfYear(year, month, day)

	w := (yday - wd + 10) / 7
	switch {
	case w < 1:
		return year - 1, weeksInYear(year - 1)
	case w > weeksInYear(year):
		return year + 1, 1
	default:
		return year, w
	}
}

func weeksInYear(year int) int {
	p := func(y int) int {
		return (y + y/4 - y/100 + y/400) % 7
	}
	if p(year) == 4 || p(year-1) == 3 {
		return 53
	}
	return 52
}

// dateFromISOWeek converts an ISO week-date (year, week, weekday) into a
// calendar (year, month, day) triple.
func dateFromISOWeek(year, week int, weekday Weekday) (y, m, d int, err error) {
	if week < 1 || week > 53 {
		return 0, 0, 0, valueErrorf("invalid week %d", week)
	}

	jan4Weekday := int(weekdayOf(year, 1, 4))
	// The Monday of ISO week 1.
	week1Monday := 4 - jan4Weekday

	ordinal := week1Monday + (week-1)*7 + (int(weekday) - 1)

	// ordinal is a day offset from Jan 1st of year (0-indexed).
	switch {
	case ordinal < 0:
		py := year - 1
		yd := daysInYear(py) + ordinal + 1
		m, d, err = dateFromOrdinal(py, yd)
		return py, m, d, err
	case ordinal >= daysInYear(year):
		ny := year + 1
		yd := ordinal - daysInYear(year) + 1
		m, d, err = dateFromOrdinal(ny, yd)
		return ny, m, d, err
	default:
		m, d, err = dateFromOrdinal(year, ordinal+1)
		return year, m, d, err
	}
}
