package chrono

import (
	"errors"
	"fmt"
)

// ErrUnsupportedRepresentation indicates that the requested value cannot be
// represented by the receiver, or that the requested component is absent.
var ErrUnsupportedRepresentation = errors.ErrUnsupported

// InvalidTimeUnitError reports that a TimeUnit was constructed with a value
// outside the inclusive range its Kind allows.
type InvalidTimeUnitError struct {
	Kind  Kind
	Value string
}

func (e *InvalidTimeUnitError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

// ValueError reports an accuracy-reduction violation (a present element
// following an absent one) or a negative cardinal TimeUnit.
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string {
	return e.Msg
}

func valueErrorf(format string, args ...any) error {
	return &ValueError{Msg: fmt.Sprintf(format, args...)}
}

// TimeUnitOverflowError is raised by Time arithmetic when a carry remains
// after propagating through hours. Partial holds the wrapped Time that
// resulted from the carry-less part of the operation, and Carry holds the
// number of whole days the caller must additionally apply.
type TimeUnitOverflowError struct {
	Partial Time
	Carry   int64
}

func (e *TimeUnitOverflowError) Error() string {
	return fmt.Sprintf("time arithmetic overflowed by %d day(s)", e.Carry)
}

// StopFormatError is raised by a format operation (fop) when, in format
// mode, a value cannot be rendered, or, in read mode, the input does not
// match what the fop expects, or a required merge fails.
type StopFormatError struct {
	Detail string
	// Pos is the rune offset at which the failure was detected: into the
	// input in read mode, or into the format representation when
	// compiling it fails; -1 when no offset applies.
	Pos int
}

func (e *StopFormatError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("format: %s (at offset %d)", e.Detail, e.Pos)
	}
	return fmt.Sprintf("format: %s", e.Detail)
}

func stopFormat(pos int, format string, args ...any) error {
	return &StopFormatError{Detail: fmt.Sprintf(format, args...), Pos: pos}
}
