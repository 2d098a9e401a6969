package search

import "errors"

var (
	ErrMissingQuery   = errors.New("missing query")
	ErrInvalidRequest = errors.New("invalid request")
)

// MissingQueryError is returned when a search has no query text
type MissingQueryError struct{}

func (e *MissingQueryError) Error() string {
	return "a search query is required"
}

func (e *MissingQueryError) Is(target error) bool {
	return target == ErrMissingQuery
}

// InvalidRequestError reports an argument outside its allowed values
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string {
	return e.Err.Error()
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Err
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}
