package export

import "errors"

// Export errors.
var (
	// ErrFetch wraps every failure to retrieve an image.
	ErrFetch = errors.New("fetch failed")

	// ErrSave wraps every failure of the save capability.
	ErrSave = errors.New("save failed")
)
