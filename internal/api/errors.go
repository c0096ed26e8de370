package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches a NetworkError carrying HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmptyResult indicates a request succeeded but produced nothing usable.
var ErrEmptyResult = errors.New("empty result")

// NetworkError is returned for transport failures (Status == 0) and
// non-2xx responses.
type NetworkError struct {
	Method   string
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Endpoint, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: HTTP %d: %v", e.Method, e.Endpoint, e.Status, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Endpoint, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Is reports 404 responses as ErrNotFound.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// IsNotFound reports whether err is, or wraps, a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
