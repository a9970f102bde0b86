package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRequestFailed wraps every fetch failure: transport errors, timeouts,
// non-success responses and undecodable bodies alike.
var ErrRequestFailed = errors.New("network response was not ok")

// StatusError is a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	// Message is the API's own error text, when the body carried one.
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: %d %s", ErrRequestFailed, e.StatusCode, msg)
}

// Is makes errors.Is(err, ErrRequestFailed) hold for status errors.
func (e *StatusError) Is(target error) bool {
	return target == ErrRequestFailed
}
