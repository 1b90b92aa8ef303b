package chrono

import (
	"regexp"
	"strings"
	"sync"
)

// Standard rendering: the default format representation each type
// carries, compiled on first use and cached. lazyFormat wraps a template
// string behind a sync.Once so the one-time compilation is safe under
// concurrent first calls; once compiled, the fop list is read-only.
type lazyFormat struct {
	once          sync.Once
	repr, initial string
	compiled      *Format
	compileErr    error
}

func newLazyFormat(repr, initial string) *lazyFormat {
	return &lazyFormat{repr: repr, initial: initial}
}

func (l *lazyFormat) get() (*Format, error) {
	l.once.Do(func() {
		l.compiled, l.compileErr = NewFormat(l.repr, l.initial)
	})
	return l.compiled, l.compileErr
}

func (l *lazyFormat) format(v Value) (string, error) {
	f, err := l.get()
	if err != nil {
		return "", err
	}
	return f.format(v)
}

func (l *lazyFormat) read(s string) (Value, error) {
	f, err := l.get()
	if err != nil {
		return nil, err
	}
	return f.read(s)
}

// The default representations. Each date variant gets its own template,
// since "YYYY-MM-DD" only makes sense once the trailing elements are
// known to be month/day rather than day-of-year or week/weekday.
var (
	stdFormatCalendarDate = newLazyFormat("YYYY-MM-DD", "date")
	stdFormatOrdinalDate  = newLazyFormat("YYYY-DDD", "date")
	stdFormatWeekDate     = newLazyFormat("YYYY-Www-D", "date")
	stdFormatTime         = newLazyFormat("hh:mm:ss", "time")
	stdFormatDateTime     = newLazyFormat("YYYY-MM-DDThh:mm:ss", "date")
	stdFormatOffsetDigits = newLazyFormat("±hh:mm", "offset")
	stdFormatDuration     = newLazyFormat("Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S", "duration")
)

// stdFormatDate dispatches on the Date's variant, since no single
// template covers all three ISO 8601 date forms.
func stdFormatDate(d Date) (string, error) {
	switch d.variant {
	case VariantOrdinal:
		return stdFormatOrdinalDate.format(d)
	case VariantWeek:
		return stdFormatWeekDate.format(d)
	default:
		return stdFormatCalendarDate.format(d)
	}
}

// offsetSuffixPattern finds a trailing UTC designator or numeric offset on
// a full date-time string, so parseDefaultDateTime can split it off
// before handing the rest to the fop machine - the same separation
// Duration's own hand-rolled Format keeps from the fop machine, applied
// here to parsing instead of rendering.
var offsetSuffixPattern = regexp.MustCompile(`(?i)(Z|[+-][0-9]{2}(?::?[0-9]{2})?)$`)

// parseDefaultDuration parses s as a Duration in the default
// "PnYnMnDTnHnMnS" representation.
func parseDefaultDuration(s string) (Duration, error) {
	v, err := stdFormatDuration.read(s)
	if err != nil {
		return Duration{}, err
	}
	d, ok := v.(Duration)
	if !ok {
		return Duration{}, stopFormat(-1, "expected a Duration, parsed %T", v)
	}
	return d, nil
}

// parseDefaultOffset parses s ("Z", "±hh:mm", "±hhmm", or "±hh") as a
// UTCOffset. An hours-only offset comes back from the machine as a lone
// signed hour and is promoted here.
func parseDefaultOffset(s string) (UTCOffset, error) {
	if strings.EqualFold(s, "Z") {
		return UTC, nil
	}
	v, err := stdFormatOffsetDigits.read(s)
	if err != nil {
		return UTCOffset{}, err
	}
	switch o := v.(type) {
	case UTCOffset:
		return o, nil
	case TimeUnit:
		if off, ok := signedHourOffset(o); ok {
			return off, nil
		}
	}
	return UTCOffset{}, stopFormat(-1, "expected a UTCOffset, parsed %T", v)
}

// parseDefaultDateTime parses s as a DateTime in the default
// "YYYY-MM-DDThh:mm:ss" representation, with an optional trailing "Z" or
// "±hh:mm" UTC offset.
func parseDefaultDateTime(s string) (DateTime, error) {
	body := s
	var off UTCOffset
	hasOff := false

	if loc := offsetSuffixPattern.FindStringIndex(s); loc != nil {
		body = s[:loc[0]]
		o, err := parseDefaultOffset(s[loc[0]:])
		if err != nil {
			return DateTime{}, err
		}
		off, hasOff = o, true
	}

	v, err := stdFormatDateTime.read(body)
	if err != nil {
		return DateTime{}, err
	}
	dt, ok := v.(DateTime)
	if !ok {
		return DateTime{}, stopFormat(-1, "expected a DateTime, parsed %T", v)
	}
	if hasOff {
		dt.Time = dt.Time.WithOffset(off)
	}
	return dt, nil
}
