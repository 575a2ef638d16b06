// Package log provides secure logging built on top of the standard slog
// package.
//
// Image URLs routinely carry credentials: pre-signed object storage links,
// CDN tokens and userinfo passwords. The SecureHandler masks these before
// a record reaches the underlying handler, so a failure log line naming the
// URL never leaks the signature that authorized it.
//
// # Security Features
//
// The SecureHandler sanitizes:
//   - Attributes whose key names a secret (authorization, cookie, token, ...)
//   - String values that look like bearer tokens, JWTs or access keys
//   - Signing parameters in URL query strings (X-Amz-Signature, sig, token, ...)
//   - Passwords in URL userinfo
//   - The same URLs when they appear inside error messages
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Error("image export failed",
//	    "url", "https://cdn.example.com/a.png?X-Amz-Signature=abcd", // signature masked
//	)
package log
