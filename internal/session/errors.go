package session

import "errors"

// ErrClosed is returned by Do once Close has been called
var ErrClosed = errors.New("session closed")
