// Package chrono implements ISO 8601:2004(E) representations of dates,
// times, durations, time intervals and recurring time intervals.
//
// Unlike most date libraries, which bake a handful of fixed "canonical"
// string layouts into the code, chrono treats a format representation
// (such as "YYYY-MM-DD" or "Pnn̲Ynn̲Mnn̲DTnn̲Hnn̲Mnn̲S") as a first-class value
// that both reads (parses) and formats (renders) other values. A format
// representation is compiled once, by NewFormat, into a sequence of format
// operations (fops) executed by a small stack machine in either format or
// read mode - see Format.Format and Format.Read.
//
// The algebraic core of the package is Merge, which combines two partial
// values - a lone TimeUnit, a Date missing its day, a Time missing its
// offset - into a more complete one. Merge is what lets the format machine
// assemble a date and a time that were parsed from two different runs of
// fops into a single DateTime, and it is also exported for direct use.
//
// chrono only implements the proleptic Gregorian calendar. It has no
// notion of a wall clock, no time zone database and no localization.
package chrono
