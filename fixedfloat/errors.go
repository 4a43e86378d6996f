package fixedfloat

import (
	"errors"
	"fmt"
)

// SigningError means the request could not be signed. Nothing was sent.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("fixedfloat: signing request: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// TransportError wraps connection, TLS and timeout failures, and non-2xx
// replies that do not carry a response envelope.
type TransportError struct {
	Method     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fixedfloat: %s: http status %d: %v", e.Method, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fixedfloat: %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ApplicationError is a well-formed envelope with a non-zero code.
type ApplicationError struct {
	Method  string
	Code    int
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("fixedfloat: %s: code %d: %s", e.Method, e.Code, e.Message)
}

// DecodeError carries the raw body that did not match the expected schema.
type DecodeError struct {
	Method string
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fixedfloat: %s: decoding response: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transport failure. Application and
// decode errors will not change by sending the same request again.
func IsRetryable(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}
