package asset

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a source has nothing under the requested key.
	ErrNotFound = errors.New("asset: not found")

	// ErrUnsupportedFormat is returned when no backend can decode the key's format.
	ErrUnsupportedFormat = errors.New("asset: unsupported format")

	// ErrNotReady is returned when a handle's asset is read before the load finished.
	ErrNotReady = errors.New("asset: not ready")
)

// LoadError reports a failed asset load. It never escapes as a panic: consumers inspect it
// to show fallback content.
type LoadError struct {
	Key  string
	Mode Mode
	Err  error
}

// Error implements error.
func (e *LoadError) Error() string {
	return fmt.Sprintf("asset: load %q (%s): %v", e.Key, e.Mode, e.Err)
}

// Unwrap returns the underlying failure.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying failure for errors.Cause.
func (e *LoadError) Cause() error {
	return e.Err
}
