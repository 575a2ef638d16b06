package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Fetch errors. Callers use errors.Is to tell them apart.
var (
	// ErrEmptyURL is returned when an image resolved to no URL at all.
	ErrEmptyURL = errors.New("empty image URL")

	// ErrRelativeURL is returned when a relative reference cannot be resolved
	// because no document base URL is known.
	ErrRelativeURL = errors.New("relative URL without a document base")

	// ErrUnsupportedScheme is returned for URL schemes the client cannot fetch.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")

	// ErrFileSchemeNotAllowed is returned when a file: URL is fetched by a
	// client built without WithLocalFiles. Local files are only readable for
	// documents that were themselves read from disk.
	ErrFileSchemeNotAllowed = errors.New("file URLs are only allowed for local documents")

	// ErrBodyTooLarge is returned when a response exceeds the configured size limit.
	ErrBodyTooLarge = errors.New("response body exceeds size limit")

	// ErrInvalidDataURL is returned for data: URLs that cannot be decoded.
	ErrInvalidDataURL = errors.New("invalid data URL")

	// ErrInvalidProxyAddress is returned when the proxy address format is invalid.
	// Expected format is "host:port".
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")

	// ErrTorNotRunning is returned when a client is requested from an embedded
	// Tor daemon that has not been started.
	ErrTorNotRunning = errors.New("embedded Tor daemon is not running")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the HTTP status code of the response.
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}
