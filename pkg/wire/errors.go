package wire

import "errors"

// Sentinel errors for the conditions the dispatcher translates into
// HTTP status responses.
var (
	// ErrBadRequest means the request line or a header line is malformed.
	ErrBadRequest = errors.New("malformed request")

	// ErrIncompleteBody means the connection ended before Content-Length
	// bytes of body arrived.
	ErrIncompleteBody = errors.New("incomplete request body")

	// ErrForbiddenPath means a static path escapes the document root.
	ErrForbiddenPath = errors.New("path outside document root")

	// ErrNotFound means no route and no static file matched.
	ErrNotFound = errors.New("not found")
)
