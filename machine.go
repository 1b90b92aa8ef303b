package chrono

import (
	"strings"
)

// The format machine: two interpreters sharing one compiled fop list,
// one running a value forward into a string (format mode) and one
// running a string backward into a value (read mode). Read mode builds
// no AST of its own; it pushes parsed fragments onto a stack and leans
// on Merge to combine them, first opportunistically as fragments arrive
// and then in a final bottom-up fold.

// Format is a compiled format representation: a flat fop list plus
// whatever precompiled element regexes fop.go attached to it. It is safe
// for concurrent use - once compiled, a Format is read-only.
type Format struct {
	fops []fop
}

// NewFormat compiles repr into a Format. initial names the syntax the
// scanner starts in ("date", "time", "offset", "duration", "interval",
// ...). When omitted, compilation starts in the interval syntax, which
// accepts every standard template.
func NewFormat(repr string, initial ...string) (*Format, error) {
	init := ""
	if len(initial) > 0 {
		init = initial[0]
	}
	fops, err := compileFormat(repr, init)
	if err != nil {
		return nil, err
	}
	return &Format{fops: fops}, nil
}

// Format renders v using the receiver's compiled representation.
func (f *Format) Format(v Value) (string, error) { return f.format(v) }

// Read parses s using the receiver's compiled representation.
func (f *Format) Read(s string) (Value, error) { return f.read(s) }

// valueScopes flattens v's components into the named element streams the
// machine's scope-tagged fops read from, plus the UTC offset carried by a
// Time or UTCOffset, if any. The standard rendering of TimeInterval and
// RecurringTimeInterval is hand-written in interval.go, but valueScopes
// still knows their shape so that a custom template (an "Rn̲/..."
// recurring template, say) can drive the generic machine over one too.
func valueScopes(v Value) (scopes map[string][]TimeUnit, offset UTCOffset, hasOffset bool) {
	scopes = make(map[string][]TimeUnit)
	switch x := v.(type) {
	case Date:
		scopes["date"] = x.elements()
	case Time:
		scopes["time"] = x.elements()
		if x.hasOffset {
			offset, hasOffset = x.offset, true
			scopes["offset"] = []TimeUnit{offset.Hour(), offset.Minute()}
		}
	case DateTime:
		scopes["date"] = x.Date.elements()
		scopes["time"] = x.Time.elements()
		if x.Time.hasOffset {
			offset, hasOffset = x.Time.offset, true
			scopes["offset"] = []TimeUnit{offset.Hour(), offset.Minute()}
		}
	case UTCOffset:
		offset, hasOffset = x, true
		scopes["offset"] = []TimeUnit{x.Hour(), x.Minute()}
	case Duration:
		comps := x.components()
		scopes["duration"] = comps[:3]
		scopes["timeduration"] = comps[3:]
	case WeeksDuration:
		scopes["duration"] = []TimeUnit{x.Weeks}
	case TimeUnit:
		scope := scopeForKind(x.Kind())
		if x.Kind() == KindHour && x.IsSigned() {
			// A lone signed hour is a UTC-offset fragment ("+01"), so a
			// "±hh" template must find it in the offset stream.
			scope = "offset"
		}
		scopes[scope] = []TimeUnit{x}
	case TimeInterval:
		appendEndpointScopes(scopes, x.start)
		appendEndpointScopes(scopes, x.end)
	case RecurringTimeInterval:
		scopes["recurring"] = []TimeUnit{x.Recurrences}
		appendEndpointScopes(scopes, x.Interval.start)
		appendEndpointScopes(scopes, x.Interval.end)
	}
	return scopes, offset, hasOffset
}

// appendEndpointScopes feeds one TimeInterval endpoint's elements into the
// date/time or duration/timeduration streams, in whichever of those two
// shapes the endpoint actually holds; a TimeInterval's two endpoints are
// drawn independently from {DateTime, Duration}, so which stream gets fed
// depends on the value, not the position.
func appendEndpointScopes(scopes map[string][]TimeUnit, e Endpoint) {
	switch e.kind {
	case EndpointDateTime:
		scopes["date"] = append(scopes["date"], e.dt.Date.elements()...)
		scopes["time"] = append(scopes["time"], e.dt.Time.elements()...)
	case EndpointDuration:
		comps := e.dur.components()
		scopes["duration"] = append(scopes["duration"], comps[:3]...)
		scopes["timeduration"] = append(scopes["timeduration"], comps[3:]...)
	}
}

func scopeForKind(k Kind) string {
	switch k {
	case KindYear, KindMonth, KindWeek, KindDayOfMonth, KindDayOfYear, KindDayOfWeek:
		return "date"
	case KindHour, KindMinute, KindSecond:
		return "time"
	case KindYears, KindMonths, KindDays, KindWeeks:
		return "duration"
	case KindHours, KindMinutes, KindSeconds:
		return "timeduration"
	case KindRecurrences:
		return "recurring"
	default:
		return "date"
	}
}

// format runs the machine forward: v's elements are consumed
// positionally by scope as the fop list is walked.
func (f *Format) format(v Value) (string, error) {
	scopes, offset, hasOffset := valueScopes(v)
	idx := make(map[string]int)

	var sb strings.Builder
	var pendingSep string
	havePending := false

	emit := func(s string) {
		if havePending {
			sb.WriteString(pendingSep)
			havePending = false
		}
		sb.WriteString(s)
	}

	var lastConsumed TimeUnit
	var lastValid bool

	for i := 0; i < len(f.fops); i++ {
		fp := f.fops[i]
		switch fp.kind {
		case fopLiteral:
			emit(fp.lit)

		case fopSeparator, fopHardSeparator:
			pendingSep = fp.lit
			havePending = true

		case fopPrefixDesignator:
			if f.hasFollowingElement(i, scopes, idx) {
				emit(fp.lit)
			}

		case fopCoerce:
			if lastValid && lastConsumed.IsPresent() && lastConsumed.Kind() == fp.elemKind {
				emit(fp.lit)
			}

		case fopUTCDesignator:
			if hasOffset && offset.IsUTC() {
				emit(fp.lit)
				return sb.String(), nil
			}

		case fopElement:
			elist := scopes[fp.scope]
			ci := idx[fp.scope]
			if ci >= len(elist) {
				lastValid = false
				continue
			}
			cur := elist[ci]
			idx[fp.scope] = ci + 1
			lastConsumed, lastValid = cur, true
			if cur.IsPresent() {
				emit(formatElement(fp, cur))
			}
		}
	}

	return sb.String(), nil
}

// hasFollowingElement reports whether an Element fop with a present value
// occurs before the next hard separator (or the end of the list), which
// is what gates a PrefixDesignator's literal in format mode: "only emit
// if an element follows".
func (f *Format) hasFollowingElement(i int, scopes map[string][]TimeUnit, idx map[string]int) bool {
	for j := i + 1; j < len(f.fops); j++ {
		fp := f.fops[j]
		if fp.kind == fopHardSeparator {
			return false
		}
		if fp.kind == fopElement {
			elist := scopes[fp.scope]
			ci := idx[fp.scope]
			if ci < len(elist) && elist[ci].IsPresent() {
				return true
			}
		}
	}
	return false
}

// skipScope advances past every fop immediately following i whose scope
// matches class, used by read mode when an optional PrefixDesignator's
// literal is absent from the input: the elements that designator would
// have gated have nothing to read either.
func (f *Format) skipScope(i int, class string) int {
	j := i
	for j+1 < len(f.fops) && f.fops[j+1].scope == class {
		j++
	}
	return j
}

// formatElement renders one Element fop's value: fixed/bounded width,
// optional sign, optional fraction.
func formatElement(fp fop, u TimeUnit) string {
	var sb strings.Builder
	if fp.signed {
		if u.IsNegative() {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('+')
		}
	}
	sb.WriteString(padDigits(decimalWhole(u.Decimal()), fp.minDigits, fp.maxDigits))
	if fp.hasFrac {
		frac := decimalFractionDigits(u.Decimal(), fp.minFrac, fp.maxFrac)
		if frac != "" || fp.minFrac > 0 {
			sb.WriteByte(fp.fracSep)
			sb.WriteString(frac)
		}
	}
	return sb.String()
}

// padDigits left-pads s with zeros to at least min characters, and
// truncates to at most max leading characters when max is bounded (>= 0).
func padDigits(s string, min, max int) string {
	for len(s) < min {
		s = "0" + s
	}
	if max >= 0 && len(s) > max {
		s = s[:max]
	}
	return s
}

// read runs the machine backward: each fop consumes a prefix of s (first
// uppercased, since ISO 8601 literals are case-insensitive) and may push
// a value, merging opportunistically as it goes.
func (f *Format) read(s string) (Value, error) {
	runes := []rune(strings.ToUpper(s))
	pos := 0

	var stack []Value

	// mergeTopTwo attempts exactly one merge of the top two stack entries.
	// It never cascades: a value that arrives later may still combine with
	// a deeper entry, but only during the final fold. Collapsing eagerly
	// here would, for example, fuse a recurrence count with a still-empty
	// duration before the duration's components have been read.
	mergeTopTwo := func() error {
		if len(stack) < 2 {
			return nil
		}
		merged, err := Merge(stack[len(stack)-2], stack[len(stack)-1])
		if err != nil {
			if IsNoMerge(err) {
				return nil
			}
			return err
		}
		stack = append(stack[:len(stack)-2], merged)
		return nil
	}

	push := func(v Value) error {
		stack = append(stack, v)
		return mergeTopTwo()
	}

	hasPrefix := func(lit string) bool {
		up := []rune(strings.ToUpper(lit))
		if pos+len(up) > len(runes) {
			return false
		}
		for k, r := range up {
			if runes[pos+k] != r {
				return false
			}
		}
		return true
	}

	for i := 0; i < len(f.fops); i++ {
		fp := f.fops[i]
		switch fp.kind {
		case fopLiteral:
			if !hasPrefix(fp.lit) {
				return nil, stopFormat(pos, "expected %q", fp.lit)
			}
			pos += len([]rune(fp.lit))

		case fopSeparator:
			if hasPrefix(fp.lit) {
				pos += len([]rune(fp.lit))
			}

		case fopHardSeparator:
			if hasPrefix(fp.lit) {
				pos += len([]rune(fp.lit))
			}
			if err := push(identityUnit()); err != nil {
				return nil, err
			}

		case fopPrefixDesignator:
			if hasPrefix(fp.lit) {
				pos += len([]rune(fp.lit))
				if v := emptyValueForClass(fp.class); v != nil {
					if err := push(v); err != nil {
						return nil, err
					}
				}
			} else if fp.class != "" {
				i = f.skipScope(i, fp.class)
			}

		case fopCoerce:
			if !hasPrefix(fp.lit) {
				continue
			}
			pos += len([]rune(fp.lit))
			if len(stack) == 0 {
				continue
			}
			top, ok := stack[len(stack)-1].(TimeUnit)
			if !ok {
				continue
			}
			recast, err := newOrdinalOrCardinal(fp.elemKind, top.value, top.neg, top.signed)
			if err != nil {
				return nil, err
			}
			stack[len(stack)-1] = recast
			if err := mergeTopTwo(); err != nil {
				return nil, err
			}

		case fopUTCDesignator:
			if hasPrefix(fp.lit) {
				pos += len([]rune(fp.lit))
				if err := push(UTC); err != nil {
					return nil, err
				}
				return f.foldStack(stack, pos)
			}

		case fopElement:
			m := fp.re.FindStringSubmatch(string(runes[pos:]))
			if m == nil {
				continue
			}
			consumed := len([]rune(m[0]))

			groupIdx := 1
			neg, signed := false, false
			if fp.signed {
				signed = true
				neg = m[1] == "-"
				groupIdx = 2
			}

			numStr := m[groupIdx]
			if fp.hasFrac {
				numStr += "." + m[groupIdx+1]
			}
			d, err := parseDecimal(numStr)
			if err != nil {
				return nil, stopFormat(pos, "invalid element %q", m[0])
			}

			pos += consumed
			u, err := newOrdinalOrCardinal(fp.elemKind, d, neg, signed)
			if err != nil {
				return nil, err
			}

			// A signed element must not merge with what precedes it: the
			// sign is what distinguishes a UTC-offset hour from a
			// time-of-day hour, and that only becomes decidable once the
			// following element arrives. An element feeding a Coerce
			// likewise stays raw until the designator recasts it.
			nextIsCoerce := i+1 < len(f.fops) && f.fops[i+1].kind == fopCoerce
			if nextIsCoerce || fp.signed {
				stack = append(stack, u)
			} else if err := push(u); err != nil {
				return nil, err
			}
		}
	}

	return f.foldStack(stack, pos)
}

// emptyValueForClass returns the all-absent representation a
// PrefixDesignator pushes in read mode, so that later Element pushes have
// something to slot-fill into instead of floating as bare units. nil
// means the designator's class has no representation of its own (e.g.
// "recurring", whose count is pushed as a bare Recurrences unit and
// combined with the interval in the final fold).
func emptyValueForClass(class string) Value {
	switch class {
	case "date":
		d, _ := NewCalendarDate(absentUnit(KindYear), absentUnit(KindMonth), absentUnit(KindDayOfMonth))
		return d
	case "time":
		t, _ := NewTime(absentUnit(KindHour), absentUnit(KindMinute), absentUnit(KindSecond))
		return t
	case "offset":
		return UTCOffset{hour: absentUnit(KindHour), minute: absentUnit(KindMinute)}
	case "duration", "timeduration":
		return Duration{
			Years: absentUnit(KindYears), Months: absentUnit(KindMonths), Days: absentUnit(KindDays),
			Hours: absentUnit(KindHours), Minutes: absentUnit(KindMinutes), Seconds: absentUnit(KindSeconds),
		}
	default:
		return nil
	}
}

// foldStack folds whatever is left on the stack bottom-up with Merge,
// failing the whole read if any step can't combine. The identity units
// pushed by hard separators have done
// their job by this point (they kept the incremental merges from reaching
// across an interval boundary) and are discarded before folding.
func (f *Format) foldStack(stack []Value, pos int) (Value, error) {
	vals := stack[:0:0]
	for _, v := range stack {
		if u, ok := v.(TimeUnit); ok && u.kind == kindIdentity {
			continue
		}
		vals = append(vals, v)
	}

	if len(vals) == 0 {
		return nil, stopFormat(pos, "no value recognized in input")
	}
	result := vals[0]
	for _, v := range vals[1:] {
		merged, err := Merge(result, v)
		if err != nil {
			return nil, stopFormat(pos, "could not combine parsed fragments: %v", err)
		}
		result = merged
	}
	return result, nil
}
