package mercury

import "fmt"

// ValidationError reports a missing or malformed request parameter, caught
// before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RequestError is a non-2xx response from the Mercury API. The response body
// is carried verbatim for the caller's logs; requests are never retried.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Body)
}
