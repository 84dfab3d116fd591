package model

import (
	"strconv"
	"time"
)

// NullInt holds an integer value that may be missing. A value is missing when
// the source cell was present but could not be parsed as a number.
//
// Design decision: We mirror the database/sql Null* convention (value plus
// validity flag) instead of using a pointer or a sentinel integer. The zero
// value is "missing", which is exactly what a freshly constructed record
// should report before coercion succeeds, and the flag keeps "unparseable"
// distinct from a legitimate zero.
type NullInt struct {
	// Value is the parsed integer. Only meaningful when Valid is true.
	Value int

	// Valid is true when Value holds a successfully parsed number.
	Valid bool
}

// NewInt returns a valid NullInt holding v.
func NewInt(v int) NullInt {
	return NullInt{Value: v, Valid: true}
}

// String returns the decimal representation, or the empty string when the
// value is missing. CSV output relies on this to render missing cells empty.
func (n NullInt) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.Itoa(n.Value)
}

// NullDate holds a calendar date that may be missing. A date is missing when
// the source text could not be combined into a full date.
type NullDate struct {
	// Value is the parsed date. Only meaningful when Valid is true.
	Value time.Time

	// Valid is true when Value holds a successfully parsed date.
	Valid bool
}

// NewDate returns a valid NullDate holding t.
func NewDate(t time.Time) NullDate {
	return NullDate{Value: t, Valid: true}
}

// dateLayout is the layout used to render dates in output files.
const dateLayout = "2006-01-02"

// String returns the date in ISO 8601 form (2021-03-05), or the empty string
// when the date is missing.
func (d NullDate) String() string {
	if !d.Valid {
		return ""
	}
	return d.Value.Format(dateLayout)
}
