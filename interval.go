package chrono

import (
	"strconv"
	"strings"
)

// TimeInterval and RecurringTimeInterval and their parsing and
// formatting. Either '/' or '--' separates the endpoints, "R"/"Rn"
// prefixes a recurrence count with -1 as the unbounded sentinel, and
// Start/End/Duration each derive the missing quantity when only two of
// the three are present.

// EndpointKind distinguishes which alternative an Endpoint holds.
type EndpointKind uint8

const (
	EndpointNone EndpointKind = iota
	EndpointDateTime
	EndpointDuration
)

// Endpoint is a TimeInterval boundary: either a DateTime or a Duration.
type Endpoint struct {
	kind EndpointKind
	dt   DateTime
	dur  Duration
}

// DateTimeEndpoint wraps dt as an Endpoint.
func DateTimeEndpoint(dt DateTime) Endpoint { return Endpoint{kind: EndpointDateTime, dt: dt} }

// DurationEndpoint wraps dur as an Endpoint.
func DurationEndpoint(dur Duration) Endpoint { return Endpoint{kind: EndpointDuration, dur: dur} }

// Kind reports which alternative e holds.
func (e Endpoint) Kind() EndpointKind { return e.kind }

func (e Endpoint) format() string {
	switch e.kind {
	case EndpointDateTime:
		return e.dt.String()
	case EndpointDuration:
		return e.dur.Format()
	default:
		return ""
	}
}

// TimeInterval represents the intervening time between one or two
// endpoints. When both are given, at least one of them anchors the
// interval to a DateTime (an interval cannot be two bare Durations - that
// has no endpoints to interval between); a lone Duration is accepted.
type TimeInterval struct {
	start, end Endpoint
}

// NewTimeInterval constructs a TimeInterval from two endpoints. At least one
// of start, end must be present, and they may not both be Durations.
func NewTimeInterval(start, end Endpoint) (TimeInterval, error) {
	if start.kind == EndpointDuration && end.kind == EndpointDuration {
		return TimeInterval{}, valueErrorf("a time interval needs at least one DateTime endpoint")
	}
	if start.kind == EndpointNone && end.kind == EndpointNone {
		return TimeInterval{}, valueErrorf("a time interval needs at least one endpoint")
	}
	return TimeInterval{start: start, end: end}, nil
}

// NewOpenTimeInterval constructs a TimeInterval carrying only a Duration,
// with no anchoring endpoint (a bare "P...Y" interval).
func NewOpenTimeInterval(dur Duration) TimeInterval {
	return TimeInterval{start: DurationEndpoint(dur)}
}

// Start returns the interval's starting DateTime, computed from End() and
// Duration() if only those are present.
func (iv TimeInterval) Start() (DateTime, error) {
	switch iv.start.kind {
	case EndpointDateTime:
		return iv.start.dt, nil
	case EndpointDuration:
		if iv.end.kind != EndpointDateTime {
			return DateTime{}, ErrUnsupportedRepresentation
		}
		return SubDateTime(iv.end.dt, iv.start.dur)
	default:
		return DateTime{}, ErrUnsupportedRepresentation
	}
}

// End returns the interval's ending DateTime, computed from Start() and
// Duration() if only those are present.
func (iv TimeInterval) End() (DateTime, error) {
	switch iv.end.kind {
	case EndpointDateTime:
		return iv.end.dt, nil
	case EndpointDuration:
		if iv.start.kind != EndpointDateTime {
			return DateTime{}, ErrUnsupportedRepresentation
		}
		return AddDateTime(iv.start.dt, iv.end.dur)
	default:
		return DateTime{}, ErrUnsupportedRepresentation
	}
}

// Duration returns the interval's span, computed from Start() and End() via
// subtraction if no Duration endpoint was supplied directly.
func (iv TimeInterval) Duration() (Duration, error) {
	if iv.start.kind == EndpointDuration {
		return iv.start.dur, nil
	}
	if iv.end.kind == EndpointDuration {
		return iv.end.dur, nil
	}
	if iv.start.kind == EndpointDateTime && iv.end.kind == EndpointDateTime {
		return SubDateTimeDateTime(iv.start.dt, iv.end.dt)
	}
	return Duration{}, ErrUnsupportedRepresentation
}

func (iv TimeInterval) Format() string {
	switch {
	case iv.start.kind != EndpointNone && iv.end.kind != EndpointNone:
		return iv.start.format() + "/" + iv.end.format()
	case iv.start.kind != EndpointNone:
		return iv.start.format()
	case iv.end.kind != EndpointNone:
		return iv.end.format()
	default:
		return ""
	}
}

func (iv TimeInterval) String() string { return iv.Format() }

// ParseTimeInterval parses s as a TimeInterval in one of the forms
// <start>/<end>, <start>/<duration>, <duration>/<end>, or a bare
// <duration>, where <start>/<end> are parsed by the default DateTime
// representation and <duration> by the default Duration representation.
// Either '/' or '--' may separate the two halves.
func ParseTimeInterval(s string) (TimeInterval, error) {
	s1, s2, found := cutAB(s, "/", "--")
	if found == 0 {
		dur, err := parseDefaultDuration(s)
		if err != nil {
			return TimeInterval{}, err
		}
		return NewOpenTimeInterval(dur), nil
	}

	start, err := parseEndpoint(s1)
	if err != nil {
		return TimeInterval{}, err
	}
	end, err := parseEndpoint(s2)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(start, end)
}

func parseEndpoint(s string) (Endpoint, error) {
	if len(s) == 0 {
		return Endpoint{}, valueErrorf("empty interval endpoint")
	}
	if s[0] == 'P' {
		dur, err := parseDefaultDuration(s)
		if err != nil {
			return Endpoint{}, err
		}
		return DurationEndpoint(dur), nil
	}
	dt, err := parseDefaultDateTime(s)
	if err != nil {
		return Endpoint{}, err
	}
	return DateTimeEndpoint(dt), nil
}

// cutAB splits s at the first occurrence of sepA or sepB, whichever comes
// first, reporting which one was found (1 for sepA, -1 for sepB, 0 for
// neither).
func cutAB(s, sepA, sepB string) (before, after string, found int) {
	ia := strings.Index(s, sepA)
	ib := strings.Index(s, sepB)
	switch {
	case ia < 0 && ib < 0:
		return s, "", 0
	case ia >= 0 && (ib < 0 || ia <= ib):
		return s[:ia], s[ia+len(sepA):], 1
	default:
		return s[:ib], s[ib+len(sepB):], -1
	}
}

// RecurringTimeInterval represents a TimeInterval repeated a number of
// times. A Recurrences value of -1 means unbounded repetition ("R/..."
// with no digits).
type RecurringTimeInterval struct {
	Recurrences TimeUnit
	Interval    TimeInterval
}

// NewRecurringTimeInterval constructs a RecurringTimeInterval.
func NewRecurringTimeInterval(recurrences TimeUnit, iv TimeInterval) (RecurringTimeInterval, error) {
	if err := requireKind(recurrences, KindRecurrences); err != nil {
		return RecurringTimeInterval{}, err
	}
	return RecurringTimeInterval{Recurrences: recurrences, Interval: iv}, nil
}

// Repetitions returns the number of repetitions, normalizing any value <=
// -1 to the unbounded sentinel -1.
func (r RecurringTimeInterval) Repetitions() int64 {
	n := r.Recurrences.Int()
	if n <= -1 {
		return -1
	}
	return n
}

func (r RecurringTimeInterval) Format() string {
	n := r.Repetitions()
	var prefix string
	switch n {
	case -1:
		prefix = "R"
	default:
		prefix = "R" + strconv.FormatInt(n, 10)
	}
	return prefix + "/" + r.Interval.Format()
}

func (r RecurringTimeInterval) String() string { return r.Format() }

// ParseRecurringTimeInterval parses s as "Rn/<interval>" or "R/<interval>",
// where <interval> is any form accepted by ParseTimeInterval.
func ParseRecurringTimeInterval(s string) (RecurringTimeInterval, error) {
	if len(s) == 0 || s[0] != 'R' {
		return RecurringTimeInterval{}, valueErrorf("recurring interval must start with 'R'")
	}
	s = s[1:]

	countStr, rest, found := cutAB(s, "/", "--")
	if found == 0 {
		return RecurringTimeInterval{}, valueErrorf("recurring interval missing separator")
	}

	var recurrences TimeUnit
	if countStr == "" {
		recurrences = Recurrences(-1)
	} else {
		n, err := strconv.Atoi(countStr)
		if err != nil {
			return RecurringTimeInterval{}, valueErrorf("invalid recurrence count %q", countStr)
		}
		recurrences = Recurrences(n)
	}

	iv, err := ParseTimeInterval(rest)
	if err != nil {
		return RecurringTimeInterval{}, err
	}
	return NewRecurringTimeInterval(recurrences, iv)
}
