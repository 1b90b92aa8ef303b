package chrono

import (
	"strings"

	"github.com/govalues/decimal"
)

// decimalZero is the shared zero value, used as the default for a TimeUnit
// that carries an integer (non-fractional) value.
var decimalZero = decimal.Zero

// parseDecimal parses the digit run (and optional fractional run, already
// joined with a '.') produced by the format-repr scanner into a Decimal.
// It never returns a binary floating-point approximation: govalues/decimal
// keeps the exact coefficient/scale pair that was typed, which is what lets
// a value like "23,3" round-trip byte for byte. Grounded on the decimal
// dependency named in SPEC_FULL.md's DOMAIN STACK.
func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.Parse(s)
}

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.MustNew(v, 0)
}

// decimalQuantize rounds d to at most maxFrac fractional digits. A negative
// maxFrac means unbounded precision and returns d unchanged.
func decimalQuantize(d decimal.Decimal, maxFrac int) decimal.Decimal {
	if maxFrac < 0 || d.Scale() <= maxFrac {
		return d
	}
	return d.Rescale(maxFrac)
}

// decimalFractionDigits renders the fractional part of d (without sign or
// leading "0"/separator) quantized to at most maxFrac digits and padded
// with trailing zeros to at least minFrac digits.
func decimalFractionDigits(d decimal.Decimal, minFrac, maxFrac int) string {
	d = d.Abs()
	q := decimalQuantize(d, maxFrac)

	s := q.String()
	var frac string
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac = s[i+1:]
	}

	for len(frac) < minFrac {
		frac += "0"
	}
	if len(frac) > maxFrac && maxFrac >= 0 {
		frac = frac[:maxFrac]
	}
	return frac
}

// decimalWhole renders the integral part of d's absolute value as a decimal
// string with no sign and no leading zeros beyond what width requires.
func decimalWhole(d decimal.Decimal) string {
	s := d.Abs().String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return s
}

// floorDivDecimal returns the floored quotient and non-negative remainder
// of dividing total by modulus (a small positive integer, e.g. 60 or 24),
// used by the Time ± Duration carry propagation in arithmetic.go. The
// quotient is first estimated in floating point and then nudged to exactly
// bracket the remainder into [0, modulus) using exact decimal comparisons,
// since a fractional second must carry exactly, not approximately.
func floorDivDecimal(total decimal.Decimal, modulus int64) (carry int64, remainder decimal.Decimal) {
	f, _ := total.Float64()
	carry = int64(floorFloat(f / float64(modulus)))
	remainder, _ = total.Sub(decimalFromInt(carry * modulus))

	mod := decimalFromInt(modulus)
	for remainder.Sign() < 0 {
		carry--
		remainder, _ = remainder.Add(mod)
	}
	for remainder.Cmp(mod) >= 0 {
		carry++
		remainder, _ = remainder.Sub(mod)
	}
	return carry, remainder
}

func floorFloat(f float64) float64 {
	i := float64(int64(f))
	if f < i {
		return i - 1
	}
	return i
}
