package model

import "errors"

// errNilFailure stands in for a nil error passed to Failed so that a failure
// outcome always carries a reason.
var errNilFailure = errors.New("export failed without a reported cause")

// Outcome is the result of exporting one image.
// It is either a success carrying the saved filename or a failure carrying the
// underlying error, never both. Use Succeeded and Failed to construct one.
type Outcome struct {
	filename string
	err      error
}

// Succeeded returns a success outcome for the given saved filename.
func Succeeded(filename string) Outcome {
	return Outcome{filename: filename}
}

// Failed returns a failure outcome with the given reason.
func Failed(err error) Outcome {
	if err == nil {
		err = errNilFailure
	}
	return Outcome{err: err}
}

// Success reports whether the export succeeded.
func (o Outcome) Success() bool {
	return o.err == nil
}

// Filename returns the saved filename, or "" for a failure.
func (o Outcome) Filename() string {
	return o.filename
}

// Err returns the failure reason, or nil for a success.
func (o Outcome) Err() error {
	return o.err
}

// Result summarizes a completed pipeline run.
// Individual outcomes are not retained; failures are logged as they occur.
type Result struct {
	// Exported is the number of images saved successfully.
	Exported int
}
