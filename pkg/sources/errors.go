package sources

import (
	"errors"
	"fmt"

	"github.com/kerbaras/tracker/pkg/utils"
)

var (
	// ErrEmptyQuery is a validation failure: no request is made.
	ErrEmptyQuery      = errors.New("empty search query")
	ErrUnknownCategory = errors.New("unknown category")
)

// FetchError wraps a network failure or a non-success response.
type FetchError struct {
	Status int // zero when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed with status %d", e.Status)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newFetchError(err error) *FetchError {
	var statusErr *utils.StatusError
	if errors.As(err, &statusErr) {
		return &FetchError{Status: statusErr.StatusCode, Err: err}
	}
	return &FetchError{Err: err}
}

// IsValidation reports whether err was raised before any request was issued.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrUnknownCategory)
}
