package practicum

import "fmt"

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError means the API answered with a non-200 status code.
type ResponseError struct {
	Endpoint   string
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("API %s returned status %d", e.Endpoint, e.StatusCode)
}
