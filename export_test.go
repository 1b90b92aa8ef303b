package chrono

var (
	IsLeapYearFunc  = isLeapYear
	DaysInMonthFunc = daysInMonth
	Divmod1Func     = divmod1
	WeekdayOfFunc   = weekdayOf
)
