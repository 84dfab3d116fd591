package fetch

import "errors"

var (
	// ErrBadStatus is returned when a page request completes with a
	// non-success HTTP status.
	ErrBadStatus = errors.New("page request returned an error status")

	// ErrNotStarted is returned when a page is requested from a Browser
	// that has not been started.
	ErrNotStarted = errors.New("browser is not started")

	// ErrAlreadyStarted is returned when Start is called on a running
	// Browser.
	ErrAlreadyStarted = errors.New("browser is already started")
)
