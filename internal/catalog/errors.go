package catalog

import "errors"

var (
	// ErrDataUnavailable means no usable catalog could be built from the
	// initial source. The api-server treats this as fatal: without a
	// loaded catalog no recommendation is possible.
	ErrDataUnavailable = errors.New("catalog: no usable book records")

	// ErrNotFound means the requested reference title has no record in
	// the catalog. Recoverable: callers re-prompt or reformulate.
	ErrNotFound = errors.New("catalog: book not found")
)
