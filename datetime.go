package chrono

// DateTime combines a Date and a Time into a single representation.
type DateTime struct {
	Date Date
	Time Time
}

// NewDateTime combines date and time into a DateTime.
func NewDateTime(date Date, time Time) DateTime {
	return DateTime{Date: date, Time: time}
}

// IsComplete reports whether both the date and time portions of dt are
// fully present.
func (dt DateTime) IsComplete() bool {
	return dt.Date.IsComplete() && dt.Time.IsComplete()
}

// String joins the date and time renderings with the T designator, so that
// ordinal and week dates keep their own date form ("1985-102T23:20:50").
func (dt DateTime) String() string {
	ts, err := stdFormatTime.format(dt.Time)
	if err != nil {
		return "%!DateTime(" + err.Error() + ")"
	}
	s := dt.Date.String() + "T" + ts
	if dt.Time.hasOffset {
		s += dt.Time.offset.String()
	}
	return s
}

// Equal reports whether dt and dt2 represent the same calendar day, clock
// time and (if present) UTC offset.
func (dt DateTime) Equal(dt2 DateTime) bool {
	if !dt.Date.Equal(dt2.Date) {
		return false
	}
	if !dt.Time.hour.Equal(dt2.Time.hour) || !dt.Time.minute.Equal(dt2.Time.minute) || !dt.Time.second.Equal(dt2.Time.second) {
		return false
	}
	o1, ok1 := dt.Time.Offset()
	o2, ok2 := dt2.Time.Offset()
	if ok1 != ok2 {
		return false
	}
	if ok1 && o1.TotalMinutes() != o2.TotalMinutes() {
		return false
	}
	return true
}
