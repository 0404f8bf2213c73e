// Package errs defines common error variables used across the application.
package errs

import "errors"

// Download executor errors. All four are terminal for their job; none are
// retried automatically.
var (
	// ErrNoResults indicates that the audio search yielded nothing.
	ErrNoResults = errors.New("no search results")
	// ErrTimeout indicates that the job exceeded its wall-clock ceiling.
	ErrTimeout = errors.New("download timed out")
	// ErrFileNotFound indicates that the backend reported success but no
	// output file could be located under any known extension or prefix.
	ErrFileNotFound = errors.New("downloaded file not found")
	// ErrBackend indicates that the extraction backend failed unexpectedly.
	ErrBackend = errors.New("extraction backend error")
)

// Catalog errors.
var (
	// ErrNotFound indicates that the catalog has no entry for the given ID.
	ErrNotFound = errors.New("not found in catalog")
	// ErrCatalogUnavailable indicates that the catalog request itself failed.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

// Transport and input errors.
var (
	// ErrUnrecognizedLink indicates that the input matched no known link shape.
	ErrUnrecognizedLink = errors.New("unrecognized link")
	// ErrSessionExpired indicates that a callback arrived for a selection
	// that is no longer held.
	ErrSessionExpired = errors.New("session expired")
)

// Dependency errors.
var (
	// ErrBinaryNotFound indicates that a required binary was not found.
	ErrBinaryNotFound = errors.New("binary not found")
	// ErrUnsupportedPlatform indicates that the current platform is not supported.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
