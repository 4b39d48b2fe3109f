package stimuli

import "errors"

// Failure kinds. Errors returned by this package wrap exactly one of these,
// so callers route on errors.Is rather than on message text.
var (
	// ErrInput marks missing, unreadable, or unparseable input tables.
	ErrInput = errors.New("input error")

	// ErrOutput marks failures encoding or writing the manifest.
	ErrOutput = errors.New("output error")

	// ErrConfig marks invalid option values, caught before any file I/O.
	ErrConfig = errors.New("config error")
)
