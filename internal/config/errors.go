package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and can be matched with
// errors.Is.
var (
	// ErrNoSource is returned when no document to export from is given.
	ErrNoSource = errors.New("no source specified: provide a page URL, HTML file, or manifest")

	// ErrInvalidTimeout is returned when the per-request timeout is negative.
	// Zero disables the timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Zero disables the limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrConflictingProxies is returned when both --proxy and --tor are given.
	ErrConflictingProxies = errors.New("conflicting proxies: --proxy and --tor cannot be used together")

	// ErrConflictingInputModes is returned when --render is combined with a
	// manifest source, or --browser is given without --render.
	ErrConflictingInputModes = errors.New("conflicting input modes: --render needs a page URL or HTML file, and --browser needs --render")

	// ErrInvalidTorStartupTimeout is returned when --tor is set and the Tor
	// startup timeout is not positive.
	ErrInvalidTorStartupTimeout = errors.New("invalid tor startup timeout: must be positive")

	// ErrUnknownCharset is returned when --charset names an encoding that the
	// WHATWG encoding index does not know.
	ErrUnknownCharset = errors.New("unknown charset")
)
