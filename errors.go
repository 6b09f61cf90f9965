package tinifycli

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("not found")
	// ErrNoOutput is returned when the compression API answers without a result URL
	ErrNoOutput = errors.New("response has no output url")
	// ErrMissingKey is returned when no API key was given, set in the environment or saved
	ErrMissingKey = errors.New("missing Tinify API key")
	// ErrEmptyKey is returned when a key is blank after trimming
	ErrEmptyKey = errors.New("key is empty")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// UsageError reports a command line that cannot be acted on.
// The entry point prints usage help for it and exits with status 1.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	if e.Err == nil {
		return "invalid usage"
	}
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError wraps err as a UsageError.
func NewUsageError(err error) error {
	return &UsageError{Err: err}
}

// DownloadError is returned when the compressed image could not be fetched
// from the result URL. It does not abort a run.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
