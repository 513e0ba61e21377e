package artifact

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the card resolution and streaming path.
var (
	// ErrNotFound is returned when the card does not exist at its source.
	ErrNotFound = errors.New("artifact: card not found")
	// ErrConfiguration is returned when a required storage endpoint or
	// base URL is not configured for the selected source variant.
	ErrConfiguration = errors.New("artifact: card source not configured")
	// ErrUpstream is returned when the storage provider or remote origin
	// fails for any reason other than a missing card.
	ErrUpstream = errors.New("artifact: upstream unavailable")
	// ErrTransport is returned when writing the response body fails after
	// headers have been sent. It is unrecoverable for the request.
	ErrTransport = errors.New("artifact: response transport failed")
)

// UpstreamError represents a non-200 response from a card source.
// It implements the error interface and supports errors.Is() via Unwrap().
type UpstreamError struct {
	// StatusCode is the HTTP status code returned by the upstream.
	StatusCode int
	// URL is the fetched source URL, for logging. Presigned query
	// parameters are already stripped by the caller.
	URL string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("artifact: upstream returned %d for %s", e.StatusCode, e.URL)
}

// Unwrap returns the matching sentinel error for the status code,
// enabling errors.Is() checks against ErrNotFound and ErrUpstream.
// 403 maps to ErrNotFound alongside 404 because S3-compatible stores
// answer 403 for absent keys when the caller may not list the bucket.
func (e *UpstreamError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound, http.StatusForbidden:
		return ErrNotFound
	default:
		return ErrUpstream
	}
}
