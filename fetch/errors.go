package fetch

import (
	"errors"
	"fmt"
)

var (
	ErrNoMatch        = errors.New("no element matches selector")
	ErrNoAttribute    = errors.New("attribute not present")
	ErrNotInteractive = errors.New("document is not interactive")
)

// FetchError is a network, DNS, timeout or status failure of a static fetch.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SessionError is a failure to start, drive or navigate a browser session.
type SessionError struct {
	Op  string
	URL string
	Err error
}

func (e *SessionError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("browser %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("browser %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }
