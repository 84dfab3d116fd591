package htmltable

import "errors"

// ErrTableNotFound is returned when no table in the document satisfies the
// selection criterion. This is a recoverable condition, not a failure: the
// circuits pipeline reports it and writes nothing, the results pipeline skips
// the season and carries on. Callers test for it with errors.Is.
var ErrTableNotFound = errors.New("no matching table found")
