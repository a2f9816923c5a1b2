package scraper

import "fmt"

// ExtractionError means an expected element was absent, usually because the
// source page markup changed.
type ExtractionError struct {
	Field    string
	Selector string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract %s: selector %q: %v", e.Field, e.Selector, e.Err)
	}
	return fmt.Sprintf("extract %s: selector %q matched nothing", e.Field, e.Selector)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
