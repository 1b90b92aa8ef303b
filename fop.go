package chrono

import (
	"regexp"
	"strings"
)

// The format-representation scanner: a single pass that turns a template
// string like "YYYY-MM-DD" or "Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S" into a flat list
// of format operations (fops). Each character is classified against the
// active syntax - a representation class's digit, designator and
// separator tables - with designators switching which syntax is active,
// so one scanner covers every representation shape from bare times to
// recurring intervals.

// fopKind identifies a fop's shape.
type fopKind uint8

const (
	fopLiteral fopKind = iota
	fopSeparator
	fopHardSeparator
	fopPrefixDesignator
	fopCoerce
	fopUTCDesignator
	fopElement
)

// fop is one compiled format operation.
type fop struct {
	kind fopKind

	lit   string // Literal/Separator/PrefixDesignator/Coerce text
	class string // PrefixDesignator: syntax to push; "" if none

	// scope names which sub-value (the active syntax at compile time -
	// "date", "time", "offset", "duration", "timeduration", "recurring")
	// this fop's element belongs to. The format machine uses it to read
	// from the right component stream instead of trying to disambiguate
	// by Kind alone, since e.g. offsetSyntax and timeSyntax both reuse
	// KindHour/KindMinute for unrelated slots.
	scope string

	elemKind Kind // Coerce: target kind. Element: the unit's kind.

	minDigits, maxDigits int  // Element: width bounds; maxDigits < 0 means unbounded.
	hasFrac              bool // Element: whether a fractional sub-element follows.
	minFrac, maxFrac     int
	fracSep              byte // ',' or '.'
	signed               bool // Element: whether a leading ± is accepted/required.

	re *regexp.Regexp // Element: precompiled matcher for read mode.
}

// designator describes one entry in a syntax's designator table: either a
// prefix that pushes (or swaps in) a child syntax, a postfix Coerce target,
// or the special UTC spelling.
type designator struct {
	pushSyntax string // PrefixDesignator: syntax name to push; "" for a bare literal guard.
	swap       bool   // if true, replace the top of the stack rather than pushing.
	coerce     Kind   // Coerce target kind; zero value KindYear is never used this way (see coerceSet).
	coerceSet  bool
	utc        bool
}

// syntax is one representation class's three lookup tables.
type syntax struct {
	name        string
	digits      map[rune]Kind
	designators map[rune]designator
	separators  map[rune]bool // true = hard
}

var commonSeparators = map[rune]bool{
	'-': false, '‐': false, ':': false, '.': false, ',': false,
}

func withHardSlash(m map[rune]bool) map[rune]bool {
	out := make(map[rune]bool, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out['/'] = true
	return out
}

var dateSyntax = &syntax{
	name:        "date",
	digits:      map[rune]Kind{'Y': KindYear, 'M': KindMonth, 'w': KindWeek, 'D': KindDayOfMonth},
	designators: map[rune]designator{'W': {}, 'T': {pushSyntax: "time"}},
	separators:  withHardSlash(commonSeparators),
}

var timeSyntax = &syntax{
	name:        "time",
	digits:      map[rune]Kind{'h': KindHour, 'm': KindMinute, 's': KindSecond},
	designators: map[rune]designator{'Z': {utc: true}, '+': {pushSyntax: "offset"}},
	separators:  withHardSlash(commonSeparators),
}

var offsetSyntax = &syntax{
	name:        "offset",
	digits:      map[rune]Kind{'h': KindHour, 'm': KindMinute},
	designators: map[rune]designator{'Z': {utc: true}},
	separators:  commonSeparators,
}

var durationSyntax = &syntax{
	name:   "duration",
	digits: map[rune]Kind{'n': KindYears}, // placeholder kind; the postfix designator recasts it
	designators: map[rune]designator{
		'P': {pushSyntax: "duration"},
		'T': {pushSyntax: "timeduration", swap: true},
		'Y': {coerce: KindYears, coerceSet: true},
		'M': {coerce: KindMonths, coerceSet: true},
		'D': {coerce: KindDays, coerceSet: true},
		'W': {coerce: KindWeeks, coerceSet: true},
	},
	separators: withHardSlash(commonSeparators),
}

var timeDurationSyntax = &syntax{
	name:   "timeduration",
	digits: map[rune]Kind{'n': KindHours},
	designators: map[rune]designator{
		'H': {coerce: KindHours, coerceSet: true},
		'M': {coerce: KindMinutes, coerceSet: true},
		'S': {coerce: KindSeconds, coerceSet: true},
	},
	separators: withHardSlash(commonSeparators),
}

var recurringSyntax = &syntax{
	name:        "recurring",
	digits:      map[rune]Kind{'n': KindRecurrences},
	designators: map[rune]designator{},
	separators:  withHardSlash(commonSeparators),
}

var intervalSyntax = &syntax{
	name:   "interval",
	digits: map[rune]Kind{},
	designators: map[rune]designator{
		'R': {pushSyntax: "recurring"},
		'P': {pushSyntax: "duration"},
		'T': {pushSyntax: "time"},
	},
	separators: withHardSlash(commonSeparators),
}

func syntaxByName(name string) *syntax {
	switch name {
	case "date":
		return dateSyntax
	case "time":
		return timeSyntax
	case "offset":
		return offsetSyntax
	case "duration":
		return durationSyntax
	case "timeduration":
		return timeDurationSyntax
	case "recurring":
		return recurringSyntax
	case "interval":
		return intervalSyntax
	default:
		return dateSyntax
	}
}

// rewriteUnderscores rewrites "_X" to the digit letter X followed by a
// combining low line (U+0332), the ASCII-friendly spelling of an
// underlined (unbounded-width) digit letter.
func rewriteUnderscores(repr string) string {
	var sb strings.Builder
	runes := []rune(repr)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '_' && i+1 < len(runes) {
			sb.WriteRune(runes[i+1])
			sb.WriteRune('̲')
			i++
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// compileFormat compiles repr, starting with initial as the top-of-stack
// syntax (one of "date", "time", "offset", "duration", "interval", ...),
// into a flat fop list. The default is the interval syntax, which can
// open any of the other scopes on demand and therefore accepts every
// standard template without the caller having to name a syntax.
func compileFormat(repr string, initial string) ([]fop, error) {
	if initial == "" {
		initial = "interval"
	}
	repr = rewriteUnderscores(repr)
	runes := []rune(repr)

	stack := []*syntax{syntaxByName(initial)}
	var fops []fop
	sawMonth, sawWeek := false, false

	top := func() *syntax { return stack[len(stack)-1] }

	i := 0
	for i < len(runes) {
		c := runes[i]
		top := top()

		if d, ok := top.designators[c]; ok {
			f, consumed, err := compileDesignator(c, d)
			if err != nil {
				return nil, err
			}
			f.scope = top.name
			fops = append(fops, f)
			i += consumed
			if d.pushSyntax != "" {
				child := syntaxByName(d.pushSyntax)
				if d.swap {
					stack[len(stack)-1] = child
				} else {
					stack = append(stack, child)
				}
			}
			continue
		}

		if hard, ok := findSeparator(stack, c); ok {
			if hard {
				// A hard separator always closes every scope pushed since
				// the template's outermost syntax: "/" only ever appears
				// between an interval's own top-level components, never
				// inside a date, time or duration segment.
				stack = stack[:1]
				top = stack[0]
			} else {
				for len(stack) > 1 && !hasSeparator(top, c) {
					stack = stack[:len(stack)-1]
					top = stack[len(stack)-1]
				}
			}
			fops = append(fops, compileSeparator(c, hard))
			i++
			continue
		}

		if c == '±' && i+1 < len(runes) {
			// A signed hour inside a time representation starts the UTC
			// offset, not another time-of-day component: switch to the
			// offset syntax so the element (and the minutes after it) are
			// scoped to the offset's own component stream.
			if top.name == "time" && runes[i+1] == 'h' {
				stack = append(stack, offsetSyntax)
				top = offsetSyntax
			}
			if kind, ok := top.digits[runes[i+1]]; ok {
				kind = resolveDateDigitKind(top, runes[i+1], kind, &sawMonth, &sawWeek)
				f, n, err := compileElement(runes, i, kind)
				if err != nil {
					return nil, err
				}
				f.scope = top.name
				fops = append(fops, f)
				i += n
				continue
			}
		}

		if kind, ok := top.digits[c]; ok {
			kind = resolveDateDigitKind(top, c, kind, &sawMonth, &sawWeek)
			f, n, err := compileElement(runes, i, kind)
			if err != nil {
				return nil, err
			}
			f.scope = top.name
			fops = append(fops, f)
			i += n
			continue
		}

		if top.name == "interval" {
			// A bare digit-letter at interval-top level (no leading "R" or
			// "P") opens a plain date or time endpoint, the interval
			// components with no designator of their own.
			peek := c
			if c == '±' && i+1 < len(runes) {
				peek = runes[i+1]
			}
			if _, ok := dateSyntax.digits[peek]; ok {
				stack = append(stack, dateSyntax)
				continue
			}
			if _, ok := timeSyntax.digits[peek]; ok {
				stack = append(stack, timeSyntax)
				continue
			}
		}

		return nil, stopFormat(i, "unrecognized character %q in format representation", c)
	}

	return fops, nil
}

func compileDesignator(c rune, d designator) (fop, int, error) {
	switch {
	case d.utc:
		return fop{kind: fopUTCDesignator, lit: string(c)}, 1, nil
	case d.coerceSet:
		return fop{kind: fopCoerce, lit: string(c), elemKind: d.coerce}, 1, nil
	default:
		return fop{kind: fopPrefixDesignator, lit: string(c), class: d.pushSyntax}, 1, nil
	}
}

func findSeparator(stack []*syntax, c rune) (hard bool, ok bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if h, ok := stack[i].separators[c]; ok {
			return h, true
		}
	}
	return false, false
}

func hasSeparator(s *syntax, c rune) bool {
	_, ok := s.separators[c]
	return ok
}

func compileSeparator(c rune, hard bool) fop {
	k := fopSeparator
	if hard {
		k = fopHardSeparator
	}
	return fop{kind: k, lit: string(c)}
}

// resolveDateDigitKind disambiguates a digit-letter whose meaning within
// the "date" syntax depends on what has already been seen in this
// representation: 'D' means DayOfWeek after a Week digit-letter, DayOfMonth
// after a Month digit-letter, and otherwise DayOfYear (an OrdinalDate).
// The dispatch happens at compile time rather than via a class push,
// since the digit-letter alphabet never mixes Month and DayOfYear (or
// Week) in one representation.
func resolveDateDigitKind(s *syntax, c rune, kind Kind, sawMonth, sawWeek *bool) Kind {
	if s.name != "date" {
		return kind
	}
	switch c {
	case 'M':
		*sawMonth = true
	case 'w':
		*sawWeek = true
	case 'D':
		switch {
		case *sawWeek:
			return KindDayOfWeek
		case *sawMonth:
			return KindDayOfMonth
		default:
			return KindDayOfYear
		}
	}
	return kind
}

// compileElement consumes a run of the digit-letter at runes[start]
// (which may be a '±' sign marker preceding the letter), followed by an
// optional fractional sub-element. It returns the compiled fop and the
// number of runes consumed.
func compileElement(runes []rune, start int, kind Kind) (fop, int, error) {
	i := start
	signed := false
	if runes[i] == '±' {
		signed = true
		i++
	}

	letter := runes[i]
	n := 0
	for i < len(runes) && runes[i] == letter {
		i++
		n++
	}
	repeatUnbounded := false
	if i < len(runes) && runes[i] == '̲' {
		repeatUnbounded = true
		i++
	}

	f := fop{
		kind:      fopElement,
		elemKind:  kind,
		minDigits: n,
		maxDigits: n,
		signed:    signed,
		fracSep:   ',',
	}
	if repeatUnbounded {
		// The underlined letter marks "repeat indefinitely" and does not
		// count toward the minimum width: "nn̲" is one required digit with
		// no upper bound.
		f.minDigits = n - 1
		f.maxDigits = -1
	}

	if i < len(runes) && (runes[i] == ',' || runes[i] == '.') {
		sep := byte(runes[i])
		save := i
		i++
		if i < len(runes) && isDigitLetter(runes[i]) {
			fletter := runes[i]
			fn := 0
			for i < len(runes) && runes[i] == fletter {
				i++
				fn++
			}
			fracUnbounded := false
			if i < len(runes) && runes[i] == '̲' {
				fracUnbounded = true
				i++
			}
			f.hasFrac = true
			f.fracSep = sep
			f.minFrac = fn
			f.maxFrac = fn
			if fracUnbounded {
				f.minFrac = fn - 1
				f.maxFrac = -1
			}
		} else {
			i = save // the separator belongs to whatever follows, not us
		}
	}

	f.re = compileElementRegex(f)
	return f, i - start, nil
}

func isDigitLetter(r rune) bool {
	switch r {
	case 'Y', 'M', 'w', 'D', 'h', 'm', 's', 'n':
		return true
	default:
		return false
	}
}

// compileElementRegex builds the regex an Element fop matches against in
// read mode: a required sign (if signed), a digit run bounded by
// (minDigits, maxDigits), and an optional fractional run introduced by
// fracSep. A signed element that matches no sign does not match at all;
// "±hh" never consumes an unsigned hour.
func compileElementRegex(f fop) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString(`^`)
	if f.signed {
		sb.WriteString(`([+-])`)
	}
	sb.WriteString(digitCountPattern(f.minDigits, f.maxDigits))
	if f.hasFrac {
		sb.WriteString(regexp.QuoteMeta(string(f.fracSep)))
		sb.WriteString(digitCountPattern(f.minFrac, f.maxFrac))
	}
	return regexp.MustCompile(sb.String())
}

func digitCountPattern(min, max int) string {
	if max < 0 {
		if min <= 0 {
			return `([0-9]+)`
		}
		return `([0-9]{` + itoa(min) + `,})`
	}
	if min == max {
		return `([0-9]{` + itoa(min) + `})`
	}
	return `([0-9]{` + itoa(min) + `,` + itoa(max) + `})`
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
