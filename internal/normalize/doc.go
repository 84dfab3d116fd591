// Package normalize standardizes field names and coerces cell text into
// typed values.
//
// The transforms are small, independent, and composable: field name
// normalization, value whitespace cleanup, numeric coercion, and day-month
// plus year date combination. Coercions never fail; unparseable input comes
// back as a missing-value marker so a single bad cell cannot abort a run.
package normalize
