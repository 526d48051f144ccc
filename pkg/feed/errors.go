package feed

import "fmt"

// FetchError is a failure of a whole batch, as opposed to a single malformed record
type FetchError struct {
	Batch string // sources or content
	URL   string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Batch, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
