package api

import (
	"errors"
	"fmt"
)

// HTTPStatusError reports a response outside the 2xx range.
type HTTPStatusError struct {
	Code   int
	Method string
	URL    string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// TransportError reports a request that never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SchemaError reports a response body that does not match the expected shape.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("malformed payload: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ErrRejected matches any RejectedError.
var ErrRejected = errors.New("request rejected by server")

// RejectedError is returned by the typed endpoints when a well-formed payload
// carries success=false.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRejected.Error(), e.Message)
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an
// HTTPStatusError.
func StatusCode(err error) int {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}
