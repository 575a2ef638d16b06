package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned when a filename is empty or would escape the
// save target.
var ErrInvalidName = errors.New("invalid file name")

// Saver persists named bytes.
type Saver interface {
	// Save stores data under name. It must not return before the data is
	// written or the write has failed.
	Save(ctx context.Context, name string, data []byte) error
}

// SaverFunc adapts an ordinary function to the Saver interface.
type SaverFunc func(ctx context.Context, name string, data []byte) error

// Save calls f(ctx, name, data).
func (f SaverFunc) Save(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// validateName rejects names that are not a single path element.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
