package navigator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidURL = errors.New("invalid profile url")
	ErrNotReady   = errors.New("page did not render")
	ErrAuthwall   = errors.New("redirected to login wall")
	ErrNotFound   = errors.New("profile not found")
)

// LoadError reports a page that never reached a scrapeable state
type LoadError struct {
	URL    string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %s: %v", e.URL, e.Reason, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
