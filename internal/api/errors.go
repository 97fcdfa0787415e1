package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ServerError is a non-success HTTP response
type ServerError struct {
	StatusCode int
	// Message is the server-supplied reason, or "HTTP <status>" when the
	// response carried none.
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// TransportError reports a request that received no response
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body of an unexpected shape
type ParseError struct {
	What string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response format for %s: %v", e.What, e.Err)
	}
	return "unexpected response format for " + e.What
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newServerError extracts a message from body: a JSON "message" or "error"
// field first, then the raw text, then the status line. A JSON body that is
// not an object carries no message and yields the status line.
func newServerError(status int, body []byte) *ServerError {
	fallback := fmt.Sprintf("HTTP %d", status)

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		msg := fallback
		if fields, ok := decoded.(map[string]any); ok {
			if text := stringField(fields, "message"); text != "" {
				msg = text
			} else if text := stringField(fields, "error"); text != "" {
				msg = text
			}
		}
		return &ServerError{StatusCode: status, Message: msg}
	}

	if len(body) > 0 {
		return &ServerError{StatusCode: status, Message: string(body)}
	}
	return &ServerError{StatusCode: status, Message: fallback}
}

func stringField(fields map[string]any, key string) string {
	text, _ := fields[key].(string)
	return text
}

// IsUnauthorized reports whether err is a 401 or 403 ServerError
func IsUnauthorized(err error) bool {
	var se *ServerError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == 401 || se.StatusCode == 403
}

// IsTransport reports whether err is a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
