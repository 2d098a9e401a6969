package scryfall

import (
	"errors"
	"fmt"
)

// ErrSearchFailed matches any SearchError
var ErrSearchFailed = errors.New("card search failed")

// SearchError reports the page on which retrieval stopped. No partial results
// accompany it.
type SearchError struct {
	Page int
	Err  error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("card search failed on page %d: %v", e.Page, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

func (e *SearchError) Is(target error) bool {
	return target == ErrSearchFailed
}

// errMissingData is the cause when a page decodes without a data array
var errMissingData = errors.New("response has no data array")
